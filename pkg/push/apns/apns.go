// Package apns wraps the APNs transport used for mobile alert pushes.
package apns

import (
	"fmt"
	"time"

	"github.com/sideshow/apns2"
	"github.com/sideshow/apns2/payload"
	"github.com/sideshow/apns2/token"
)

type Config struct {
	// AuthKey is the PEM-encoded .p8 signing key from the Apple developer portal.
	AuthKey  string
	KeyID    string
	TeamID   string
	Topic    string
	Sandbox  bool
	Disabled bool
}

type PushMessage struct {
	Title     string
	Body      string
	Sound     string
	Category  string
	ExtParams map[string]string
}

type PushResponse struct {
	ApnsID string
	Reason string
}

// IPusher is the mobile push contract used by the notification dispatcher.
type IPusher interface {
	Push(msg *PushMessage, deviceToken string) (*PushResponse, error)
}

type pusher struct {
	cfg    Config
	client *apns2.Client
}

// New creates a token-authenticated APNs client.
func New(cfg Config) (IPusher, error) {
	if cfg.AuthKey == "" || cfg.KeyID == "" || cfg.TeamID == "" {
		return nil, ErrMissingCredentials
	}

	authKey, err := token.AuthKeyFromBytes([]byte(cfg.AuthKey))
	if err != nil {
		return nil, fmt.Errorf("apns: failed to parse auth key: %w", err)
	}

	client := apns2.NewTokenClient(&token.Token{
		AuthKey: authKey,
		KeyID:   cfg.KeyID,
		TeamID:  cfg.TeamID,
	})
	if cfg.Sandbox {
		client = client.Development()
	} else {
		client = client.Production()
	}

	return &pusher{cfg: cfg, client: client}, nil
}

func (p *pusher) Push(msg *PushMessage, deviceToken string) (*PushResponse, error) {
	if msg == nil {
		return nil, ErrNilMessage
	}

	pl := payload.NewPayload().AlertTitle(msg.Title).AlertBody(msg.Body).Category(msg.Category)
	if msg.Sound != "" {
		pl = pl.Sound(msg.Sound)
	}
	for k, v := range msg.ExtParams {
		pl = pl.Custom(k, v)
	}

	resp, err := p.client.Push(&apns2.Notification{
		DeviceToken: deviceToken,
		Topic:       p.cfg.Topic,
		Expiration:  time.Now().Add(24 * time.Hour),
		Payload:     pl,
	})
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("apns: push rejected: %s", resp.Reason)
	}

	return &PushResponse{ApnsID: resp.ApnsID, Reason: resp.Reason}, nil
}
