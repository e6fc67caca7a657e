package usecase

import (
	"context"
	"fmt"

	"stockwatch-srv/internal/model"
)

const idempotencyKeyPrefix = "stockwatch:notif:idemp:"

// Submit enqueues a trigger event without blocking the tick path.
func (uc *implUseCase) Submit(ctx context.Context, event model.AlertTriggered) {
	if uc.closing.Load() {
		uc.logger.Warnf(ctx, "notification: dispatcher closing, dropping event for alert %s", event.Alert.ID)
		return
	}

	select {
	case uc.queue <- event:
	default:
		uc.logger.Errorf(ctx, "notification: queue full, dropping event for alert %s", event.Alert.ID)
	}
}

// Run starts the worker pool and blocks until the queue is closed and
// drained.
func (uc *implUseCase) Run() {
	defer close(uc.done)

	ctx := context.Background()
	uc.wg.Add(uc.cfg.Workers)
	for i := 0; i < uc.cfg.Workers; i++ {
		go uc.worker(ctx)
	}
	uc.wg.Wait()
}

// Shutdown stops intake and waits for queued events to be delivered.
func (uc *implUseCase) Shutdown(ctx context.Context) error {
	if uc.closing.Swap(true) {
		return nil
	}
	close(uc.queue)

	select {
	case <-uc.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (uc *implUseCase) worker(ctx context.Context) {
	defer uc.wg.Done()
	for event := range uc.queue {
		uc.process(ctx, event)
	}
}

// process fans one trigger out to its delivery channels, guarded by
// idempotency.
func (uc *implUseCase) process(ctx context.Context, event model.AlertTriggered) {
	if uc.alreadySeen(ctx, event.IdempotencyKey()) {
		uc.logger.Warnf(ctx, "notification: duplicate trigger %s suppressed", event.IdempotencyKey())
		return
	}

	uc.deliverPush(ctx, event)
	if event.Alert.Email != "" && uc.mailer != nil {
		uc.deliverEmail(ctx, event)
	}
	if uc.pusher != nil {
		uc.deliverAPNs(ctx, event)
	}
}

// alreadySeen reserves the idempotency key. Redis SETNX gives cross-process
// suppression; without Redis an in-memory map covers the single process.
func (uc *implUseCase) alreadySeen(ctx context.Context, key string) bool {
	if uc.redis != nil {
		set, err := uc.redis.SetNX(ctx, idempotencyKeyPrefix+key, 1, uc.cfg.IdempotencyTTL)
		if err == nil {
			return !set
		}
		uc.logger.Warnf(ctx, "notification: redis idempotency check failed, using local fallback: %v", err)
	}

	now := uc.clock()
	uc.seenMu.Lock()
	defer uc.seenMu.Unlock()

	for k, at := range uc.seen {
		if now.Sub(at) > uc.cfg.IdempotencyTTL {
			delete(uc.seen, k)
		}
	}
	if _, dup := uc.seen[key]; dup {
		return true
	}
	uc.seen[key] = now
	return false
}

// newJob persists the per-channel job record in its initial pending state.
func (uc *implUseCase) newJob(ctx context.Context, event model.AlertTriggered, channel model.NotificationChannel, recipient string) (model.NotificationJob, bool) {
	now := uc.clock()
	job := model.NotificationJob{
		ID:             newJobID(),
		AlertID:        event.Alert.ID,
		UserID:         event.Alert.UserID,
		Recipient:      recipient,
		Message:        event.Message,
		Channel:        channel,
		State:          model.JobPending,
		IdempotencyKey: event.IdempotencyKey(),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.CreateJob(ctx, job); err != nil {
		uc.logger.Errorf(ctx, "internal.notification.usecase.newJob.CreateJob: %v", err)
		return model.NotificationJob{}, false
	}
	return job, true
}

func (uc *implUseCase) finishJob(ctx context.Context, job model.NotificationJob, state model.JobState, attempts int) {
	if err := uc.repo.UpdateJob(ctx, job.ID, state, attempts); err != nil {
		uc.logger.Errorf(ctx, "internal.notification.usecase.finishJob.UpdateJob: %v", err)
	}

	if state == model.JobFailed && uc.ops != nil {
		// Fire-and-forget so a slow webhook never stalls a delivery worker.
		go func() {
			if err := uc.ops.SendWarning(context.Background(), "Notification delivery failed",
				fmt.Sprintf("channel=%s alert=%s attempts=%d", job.Channel, job.AlertID, attempts)); err != nil {
				uc.logger.Warnf(ctx, "notification: ops report failed: %v", err)
			}
		}()
	}
}
