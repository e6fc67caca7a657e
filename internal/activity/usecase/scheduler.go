package usecase

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cast"

	"stockwatch-srv/internal/activity"
	"stockwatch-srv/internal/bus"
	"stockwatch-srv/internal/model"
)

// MarketStatusEvent is the payload published on the market-status topic at
// session boundaries.
type MarketStatusEvent struct {
	Session string    `json:"session"`
	At      time.Time `json:"at"`
}

const (
	sessionOpen   = "open"
	sessionClosed = "closed"
)

func (uc *implUseCase) GetStatus(ctx context.Context) (model.ServerStatus, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.statusLocked(uc.clock()), nil
}

func (uc *implUseCase) IsActive() bool {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.effectiveState(uc.clock()) == model.StateActive
}

func (uc *implUseCase) ForceActivate(ctx context.Context, actor, reason string) (activity.OverrideResult, error) {
	return uc.force(ctx, actor, reason, model.StateActive)
}

func (uc *implUseCase) ForceDeactivate(ctx context.Context, actor, reason string) (activity.OverrideResult, error) {
	return uc.force(ctx, actor, reason, model.StateStandby)
}

func (uc *implUseCase) force(ctx context.Context, actor, reason string, want model.ActivityState) (activity.OverrideResult, error) {
	uc.mu.Lock()
	now := uc.clock()

	if uc.effectiveState(now) == want {
		uc.mu.Unlock()
		return activity.OverrideResult{
			Success: true,
			Message: "server already " + strings.ToLower(string(want)),
		}, nil
	}

	uc.override = &want
	uc.overrideBoundary = uc.nextBoundary(now)
	uc.current = want
	status := uc.statusLocked(now)
	uc.mu.Unlock()

	action := activity.ActionForceActivate
	if want == model.StateStandby {
		action = activity.ActionForceDeactivate
	}
	if err := uc.Log(ctx, actor, action, map[string]any{"reason": reason}); err != nil {
		uc.logger.Errorf(ctx, "internal.activity.usecase.force.Log: %v", err)
	}

	uc.bus.Publish(bus.TopicServerStatus, status)
	if want == model.StateActive {
		uc.fireSessionOpen(ctx)
	}

	return activity.OverrideResult{Success: true, Message: "server is now " + strings.ToLower(string(want))}, nil
}

func (uc *implUseCase) Log(ctx context.Context, actor, action string, details map[string]any) error {
	entry := model.ActivityLogEntry{
		ID:        uuid.NewString(),
		Action:    action,
		Details:   flattenDetails(details),
		Actor:     actor,
		CreatedAt: uc.clock(),
	}
	if err := uc.repo.Append(ctx, entry); err != nil {
		uc.logger.Errorf(ctx, "internal.activity.usecase.Log.repo.Append: %v", err)
		return err
	}
	return nil
}

// flattenDetails renders details as "k=v" pairs in key order so log rows are
// stable and greppable.
func flattenDetails(details map[string]any) string {
	if len(details) == 0 {
		return ""
	}
	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+cast.ToString(details[k]))
	}
	return strings.Join(pairs, " ")
}

// Reevaluate resolves override expiry and schedule boundaries. It is the only
// place the stored state mutates outside of a force command.
func (uc *implUseCase) Reevaluate(ctx context.Context) {
	uc.mu.Lock()
	now := uc.clock()

	if uc.override != nil && !uc.cfg.OverrideSticky && !now.Before(uc.overrideBoundary) {
		uc.override = nil
	}

	next := uc.effectiveState(now)
	if next == uc.current {
		uc.mu.Unlock()
		return
	}

	prev := uc.current
	uc.current = next
	status := uc.statusLocked(now)
	uc.mu.Unlock()

	uc.logger.Infof(ctx, "activity: transition %s -> %s", prev, next)
	if err := uc.Log(ctx, model.SystemActor, activity.ActionTransition, map[string]any{
		"from": string(prev),
		"to":   string(next),
	}); err != nil {
		uc.logger.Errorf(ctx, "internal.activity.usecase.Reevaluate.Log: %v", err)
	}

	uc.bus.Publish(bus.TopicServerStatus, status)
	session := sessionClosed
	if next == model.StateActive {
		session = sessionOpen
	}
	uc.bus.Publish(bus.TopicMarketStatus, MarketStatusEvent{Session: session, At: now})

	if next == model.StateActive {
		uc.fireSessionOpen(ctx)
	}
}

func (uc *implUseCase) OnSessionOpen(fn func(ctx context.Context)) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.onOpen = append(uc.onOpen, fn)
}

func (uc *implUseCase) fireSessionOpen(ctx context.Context) {
	uc.mu.Lock()
	fns := make([]func(ctx context.Context), len(uc.onOpen))
	copy(fns, uc.onOpen)
	uc.mu.Unlock()

	for _, fn := range fns {
		fn(ctx)
	}
}

func (uc *implUseCase) Run() {
	defer close(uc.done)

	ctx := context.Background()
	ticker := time.NewTicker(uc.cfg.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			uc.Reevaluate(ctx)
		case <-uc.quit:
			return
		}
	}
}

func (uc *implUseCase) Shutdown(ctx context.Context) error {
	close(uc.quit)
	select {
	case <-uc.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// statusLocked projects ServerStatus at now. Caller holds mu.
func (uc *implUseCase) statusLocked(now time.Time) model.ServerStatus {
	local := now.In(uc.loc)
	return model.ServerStatus{
		IsActive:    uc.effectiveState(now) == model.StateActive,
		Timezone:    uc.cfg.Timezone,
		ActiveHours: uc.cfg.OpenTime + "-" + uc.cfg.CloseTime,
		CurrentTime: local,
		NextStart:   uc.nextAt(local, uc.openMin),
		NextEnd:     uc.nextAt(local, uc.closeMin),
	}
}

// effectiveState applies the override, if still in force, over the schedule.
// Caller holds mu.
func (uc *implUseCase) effectiveState(now time.Time) model.ActivityState {
	if uc.override != nil && (uc.cfg.OverrideSticky || now.Before(uc.overrideBoundary)) {
		return *uc.override
	}
	return uc.scheduledState(now)
}

// scheduledState is the pure calendar answer: ACTIVE on weekdays within
// [open, close), STANDBY otherwise.
func (uc *implUseCase) scheduledState(now time.Time) model.ActivityState {
	local := now.In(uc.loc)
	if !isTradingDay(local) {
		return model.StateStandby
	}
	cur := local.Hour()*60 + local.Minute()
	if cur >= uc.openMin && cur < uc.closeMin {
		return model.StateActive
	}
	return model.StateStandby
}

// nextAt returns the next trading-day occurrence of the given wall-clock
// minute strictly after now.
func (uc *implUseCase) nextAt(local time.Time, minute int) time.Time {
	day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, uc.loc)
	for i := 0; i < 8; i++ {
		candidate := day.Add(time.Duration(minute) * time.Minute)
		if candidate.After(local) && isTradingDay(candidate) {
			return candidate
		}
		day = day.AddDate(0, 0, 1)
	}
	return day.Add(time.Duration(minute) * time.Minute)
}

// nextBoundary is the earliest upcoming open or close, used as the expiry of
// a non-sticky override.
func (uc *implUseCase) nextBoundary(now time.Time) time.Time {
	local := now.In(uc.loc)
	open := uc.nextAt(local, uc.openMin)
	cls := uc.nextAt(local, uc.closeMin)
	if open.Before(cls) {
		return open
	}
	return cls
}

func isTradingDay(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}
