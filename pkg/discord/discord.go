package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"stockwatch-srv/pkg/log"
	"stockwatch-srv/pkg/retry"
)

func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     30 * time.Second,
		},
	}
}

// DefaultConfig returns the default Discord config.
func DefaultConfig() Config {
	return Config{
		Timeout:         DefaultTimeout,
		RetryCount:      DefaultRetryCount,
		RetryDelay:      DefaultRetryDelay,
		DefaultUsername: DefaultUsername,
	}
}

// New creates a webhook client from a full Discord webhook URL.
func New(l log.Logger, webhookURL string) (IDiscord, error) {
	if webhookURL == "" {
		return nil, errWebhookRequired
	}
	id, token, err := parseWebhookURL(webhookURL)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	return &discordImpl{
		l:       l,
		webhook: &webhookInfo{id: id, token: token},
		config:  cfg,
		client:  newHTTPClient(cfg.Timeout),
	}, nil
}

func (d *discordImpl) webhookURL() string {
	return fmt.Sprintf(webhookURLTemplate, d.webhook.id, d.webhook.token)
}

func (d *discordImpl) sendRequest(ctx context.Context, payload *WebhookPayload) error {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.webhookURL(), bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", UserAgent)

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("discord webhook returned status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

func (d *discordImpl) sendWithRetry(ctx context.Context, payload *WebhookPayload) error {
	return retry.Do(ctx, retry.Config{
		MaxAttempts:   d.config.RetryCount,
		InitialDelay:  d.config.RetryDelay,
		MaxDelay:      d.config.RetryDelay * 8,
		BackoffFactor: 2.0,
	}, func() error {
		return d.sendRequest(ctx, payload)
	})
}

func (d *discordImpl) sendEmbed(ctx context.Context, embed Embed) error {
	embed.Title = truncateString(embed.Title, MaxTitleLen)
	embed.Description = truncateString(embed.Description, MaxDescriptionLen)
	embed.Timestamp = time.Now().Format(time.RFC3339)

	if err := validateEmbedLength(&embed); err != nil {
		return err
	}
	return d.sendWithRetry(ctx, &WebhookPayload{
		Username: d.config.DefaultUsername,
		Embeds:   []Embed{embed},
	})
}

func (d *discordImpl) SendError(ctx context.Context, title, description string, err error) error {
	var fields []EmbedField
	if err != nil {
		fields = append(fields, EmbedField{Name: "Error", Value: truncateString(err.Error(), 1024)})
	}
	return d.sendEmbed(ctx, Embed{
		Title:       title,
		Description: description,
		Color:       ColorError,
		Fields:      fields,
	})
}

func (d *discordImpl) SendWarning(ctx context.Context, title, description string) error {
	return d.sendEmbed(ctx, Embed{Title: title, Description: description, Color: ColorWarning})
}

func (d *discordImpl) SendInfo(ctx context.Context, title, description string) error {
	return d.sendEmbed(ctx, Embed{Title: title, Description: description, Color: ColorSuccess})
}

func (d *discordImpl) Close() error {
	d.client.CloseIdleConnections()
	return nil
}

func validateEmbedLength(embed *Embed) error {
	total := len(embed.Title) + len(embed.Description)
	for _, f := range embed.Fields {
		total += len(f.Name) + len(f.Value)
	}
	if total > MaxEmbedLength {
		return fmt.Errorf("embed too long: %d characters (max: %d)", total, MaxEmbedLength)
	}
	return nil
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
