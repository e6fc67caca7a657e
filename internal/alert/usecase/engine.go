package usecase

import (
	"context"
	"strconv"

	"stockwatch-srv/internal/alert"
	"stockwatch-srv/internal/model"
)

// Evaluate runs the tick against every eligible alert on its symbol.
// Per-symbol memory advances exactly once per tick, after evaluation, so
// predicates always see the state as of the previous tick.
func (uc *implUseCase) Evaluate(ctx context.Context, tick model.PriceTick) {
	if tick.Symbol == "" || tick.CurrentPrice <= 0 {
		uc.logger.Warnf(ctx, "alert: dropping malformed tick %+v", tick)
		return
	}

	view := uc.viewMemory(tick.Symbol)
	defer uc.advanceMemory(tick)

	for _, a := range uc.eligible(tick.Symbol) {
		ok, err := evalPredicate(a.Condition, a.Threshold, tick, view)
		if err != nil {
			uc.logger.Warnf(ctx, "alert %s on %s skipped: %v", a.ID, tick.Symbol, err)
			continue
		}
		if !ok {
			continue
		}
		uc.trigger(ctx, a, tick)
	}
}

// trigger marks the alert and hands the event to the dispatcher. The snapshot
// removal makes the trigger-once guarantee: the alert is gone from the
// evaluation set before the next tick can see it.
func (uc *implUseCase) trigger(ctx context.Context, a model.Alert, tick model.PriceTick) {
	now := uc.clock()

	if err := uc.repo.MarkTriggered(ctx, a.ID, now); err != nil {
		// Not persisted, not dispatched: the alert stays eligible and the
		// next satisfying tick retries.
		uc.logger.Errorf(ctx, "internal.alert.usecase.trigger.MarkTriggered: %v", err)
		return
	}
	uc.dropFromSnapshot(a.Symbol, a.ID)

	a.Triggered = true
	a.TriggeredAt = &now

	msg := a.Message
	if msg == "" {
		msg = synthesizeMessage(a.Condition, a.Threshold, tick)
	}

	uc.logger.Infof(ctx, "alert %s triggered on %s (%s)", a.ID, a.Symbol, a.Condition)
	uc.dispatcher.Submit(ctx, model.AlertTriggered{
		Alert:       a,
		Tick:        tick,
		Message:     msg,
		TriggeredAt: now,
	})
}

// WouldTrigger previews a condition against a tick using the same predicate
// table as the live path. It reads per-symbol memory but never advances it.
func (uc *implUseCase) WouldTrigger(ctx context.Context, tick model.PriceTick, condition model.AlertCondition, threshold *float64) (alert.Preview, error) {
	if !validCondition(condition) {
		return alert.Preview{}, alert.ErrInvalidCondition
	}

	ok, err := evalPredicate(condition, threshold, tick, uc.viewMemory(tick.Symbol))
	if err != nil {
		return alert.Preview{}, err
	}

	preview := alert.Preview{WouldTrigger: ok}
	if ok {
		preview.Message = synthesizeMessage(condition, threshold, tick)
	}
	return preview, nil
}

// viewMemory reads the symbol's tick memory without modifying it.
func (uc *implUseCase) viewMemory(symbol string) tickView {
	uc.memMu.Lock()
	defer uc.memMu.Unlock()

	m, ok := uc.mem[symbol]
	if !ok {
		return tickView{}
	}

	view := tickView{
		prevShortMA: m.prevShortMA,
		prevLongMA:  m.prevLongMA,
	}
	if len(m.volumes) >= minVolumeSamples {
		var sum float64
		for _, v := range m.volumes {
			sum += v
		}
		view.baseline = sum / float64(len(m.volumes))
		view.baselineOK = view.baseline > 0
	}
	return view
}

// advanceMemory folds the tick into the symbol's memory: previous MAs move
// forward only when the tick carries both averages, and the volume joins the
// rolling window.
func (uc *implUseCase) advanceMemory(tick model.PriceTick) {
	uc.memMu.Lock()
	defer uc.memMu.Unlock()

	m, ok := uc.mem[tick.Symbol]
	if !ok {
		m = &symbolMemory{}
		uc.mem[tick.Symbol] = m
	}

	if tick.ShortMA != nil && tick.LongMA != nil {
		short, long := *tick.ShortMA, *tick.LongMA
		m.prevShortMA = &short
		m.prevLongMA = &long
	}

	if tick.Volume > 0 {
		m.volumes = append(m.volumes, tick.Volume)
		if len(m.volumes) > volumeWindow {
			m.volumes = m.volumes[len(m.volumes)-volumeWindow:]
		}
	}
}

// synthesizeMessage builds the human-readable notification text: symbol,
// comparison, current value, threshold.
func synthesizeMessage(cond model.AlertCondition, threshold *float64, tick model.PriceTick) string {
	price := fmtNum(tick.CurrentPrice)

	switch cond {
	case model.ConditionAbove:
		return tick.Symbol + " price " + price + " is above " + fmtNum(*threshold)
	case model.ConditionBelow:
		return tick.Symbol + " price " + price + " is below " + fmtNum(*threshold)
	case model.ConditionEquals:
		return tick.Symbol + " price " + price + " reached " + fmtNum(*threshold)
	case model.ConditionPercentChangeUp:
		return tick.Symbol + " is up " + fmtNum(tick.DayChangePercent) + "% today (threshold " + fmtNum(*threshold) + "%)"
	case model.ConditionPercentChangeDown:
		return tick.Symbol + " is down " + fmtNum(tick.DayChangePercent) + "% today (threshold " + fmtNum(*threshold) + "%)"
	case model.ConditionVolumeSpike:
		return tick.Symbol + " volume " + fmtNum(tick.Volume) + " spiked past " + fmtNum(*threshold) + "x baseline"
	case model.ConditionVolumeDrop:
		return tick.Symbol + " volume " + fmtNum(tick.Volume) + " dropped under " + fmtNum(*threshold) + "x baseline"
	case model.ConditionRSIOverbought:
		return tick.Symbol + " RSI " + fmtNum(deref(tick.RSI)) + " is overbought"
	case model.ConditionRSIOversold:
		return tick.Symbol + " RSI " + fmtNum(deref(tick.RSI)) + " is oversold"
	case model.ConditionMACrossover:
		return tick.Symbol + " short MA crossed above long MA at " + price
	case model.ConditionMACrossunder:
		return tick.Symbol + " short MA crossed below long MA at " + price
	case model.ConditionNewHigh:
		return tick.Symbol + " price " + price + " made a new 52-week high"
	case model.ConditionNewLow:
		return tick.Symbol + " price " + price + " made a new 52-week low"
	}
	return tick.Symbol + " alert triggered at " + price
}

func fmtNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
