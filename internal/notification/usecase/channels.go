package usecase

import (
	"context"

	"github.com/google/uuid"

	"stockwatch-srv/internal/bus"
	"stockwatch-srv/internal/model"
	"stockwatch-srv/internal/notification"
	pkgErrors "stockwatch-srv/pkg/errors"
	"stockwatch-srv/pkg/push/apns"
	"stockwatch-srv/pkg/retry"
)

func newJobID() string {
	return uuid.NewString()
}

// deliverPush publishes on the user's alert topic. Best-effort: subscribers
// not connected right now simply miss it, the at-most-once channel contract.
func (uc *implUseCase) deliverPush(ctx context.Context, event model.AlertTriggered) {
	job, ok := uc.newJob(ctx, event, model.ChannelPush, event.Alert.UserID)
	if !ok {
		return
	}

	uc.bus.Publish(bus.TopicUserAlert(event.Alert.UserID), notification.AlertNotification{
		JobID:       job.ID,
		AlertID:     event.Alert.ID,
		Symbol:      event.Alert.Symbol,
		Message:     event.Message,
		Price:       event.Tick.CurrentPrice,
		TriggeredAt: event.TriggeredAt,
	})
	uc.finishJob(ctx, job, model.JobDelivered, 1)
}

// deliverEmail hands the message to the mail transport with bounded
// exponential backoff. Exhaustion marks the job failed, never retries
// forever, never drops silently.
func (uc *implUseCase) deliverEmail(ctx context.Context, event model.AlertTriggered) {
	job, ok := uc.newJob(ctx, event, model.ChannelEmail, event.Alert.Email)
	if !ok {
		return
	}

	attempts := 0
	err := retry.Do(ctx, retry.Config{
		MaxAttempts:   uc.cfg.MaxAttempts,
		InitialDelay:  uc.cfg.InitialDelay,
		MaxDelay:      uc.cfg.MaxDelay,
		BackoffFactor: 2.0,
	}, func() error {
		attempts++
		return uc.mailer.Send(ctx, event.Alert.Email, emailSubject(event), event.Message)
	})
	if err != nil {
		dErr := pkgErrors.NewDeliveryError(string(model.ChannelEmail), err.Error())
		uc.logger.Errorf(ctx, "notification: email for alert %s failed after %d attempts: %v", event.Alert.ID, attempts, dErr)
		uc.finishJob(ctx, job, model.JobFailed, attempts)
		return
	}
	uc.finishJob(ctx, job, model.JobDelivered, attempts)
}

// deliverAPNs sends a mobile push to each of the user's registered devices.
// One delivered device counts as success.
func (uc *implUseCase) deliverAPNs(ctx context.Context, event model.AlertTriggered) {
	devices, err := uc.repo.ListDevices(ctx, event.Alert.UserID)
	if err != nil {
		uc.logger.Errorf(ctx, "internal.notification.usecase.deliverAPNs.ListDevices: %v", err)
		return
	}
	if len(devices) == 0 {
		return
	}

	job, ok := uc.newJob(ctx, event, model.ChannelAPNs, event.Alert.UserID)
	if !ok {
		return
	}

	msg := &apns.PushMessage{
		Title: event.Alert.Symbol + " alert",
		Body:  event.Message,
		Sound: "default",
		ExtParams: map[string]string{
			"alert_id": event.Alert.ID,
			"symbol":   event.Alert.Symbol,
		},
	}

	delivered := 0
	for _, device := range devices {
		if _, err := uc.pusher.Push(msg, device.DeviceToken); err != nil {
			uc.logger.Warnf(ctx, "notification: apns push to device %s failed: %v", device.ID, err)
			continue
		}
		delivered++
	}

	if delivered == 0 {
		uc.finishJob(ctx, job, model.JobFailed, len(devices))
		return
	}
	uc.finishJob(ctx, job, model.JobDelivered, 1)
}

func emailSubject(event model.AlertTriggered) string {
	return "Stock alert: " + event.Alert.Symbol
}
