package usecase

import (
	"context"
	"math"
	"strings"
	"time"

	talib "github.com/markcheno/go-talib"

	"stockwatch-srv/internal/bus"
	"stockwatch-srv/internal/model"
	"stockwatch-srv/pkg/errors"
)

func (uc *implUseCase) Ingest(ctx context.Context, tick model.PriceTick) error {
	if err := validateTick(tick); err != nil {
		uc.logger.Warnf(ctx, "market: rejecting tick: %v", err)
		return err
	}

	tick.Symbol = strings.ToUpper(tick.Symbol)
	if tick.Timestamp.IsZero() {
		tick.Timestamp = time.Now()
	}
	if tick.PreviousClose > 0 && tick.DayChangePercent == 0 {
		tick.DayChange = tick.CurrentPrice - tick.PreviousClose
		tick.DayChangePercent = tick.DayChange / tick.PreviousClose * 100
	}

	uc.enrich(&tick)

	// Ticks are broadcast regardless of state so dashboards stay live.
	// Evaluation only runs while the market session is ACTIVE.
	uc.bus.Publish(bus.TopicStockUpdate(tick.Symbol), tick)

	if uc.gate.IsActive() {
		uc.engine.Evaluate(ctx, tick)
	}
	return nil
}

func (uc *implUseCase) IngestBatch(ctx context.Context, ticks []model.PriceTick) int {
	accepted := 0
	for _, tick := range ticks {
		if err := uc.Ingest(ctx, tick); err != nil {
			continue
		}
		accepted++
	}
	return accepted
}

// enrich back-fills missing indicators from the rolling close history and
// folds the new close in.
func (uc *implUseCase) enrich(tick *model.PriceTick) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	closes := append(uc.closes[tick.Symbol], tick.CurrentPrice)
	if len(closes) > uc.cfg.HistoryWindow {
		closes = closes[len(closes)-uc.cfg.HistoryWindow:]
	}
	uc.closes[tick.Symbol] = closes

	if tick.RSI == nil && len(closes) > uc.cfg.RSIPeriod {
		if v, ok := lastValid(talib.Rsi(closes, uc.cfg.RSIPeriod)); ok {
			tick.RSI = &v
		}
	}
	if tick.ShortMA == nil && len(closes) >= uc.cfg.ShortMAPeriod {
		if v, ok := lastValid(talib.Sma(closes, uc.cfg.ShortMAPeriod)); ok {
			tick.ShortMA = &v
		}
	}
	if tick.LongMA == nil && len(closes) >= uc.cfg.LongMAPeriod {
		if v, ok := lastValid(talib.Sma(closes, uc.cfg.LongMAPeriod)); ok {
			tick.LongMA = &v
		}
	}
}

// lastValid returns the final non-zero, non-NaN value of an indicator series.
func lastValid(series []float64) (float64, bool) {
	if len(series) == 0 {
		return 0, false
	}
	v := series[len(series)-1]
	if v == 0 || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

func validateTick(tick model.PriceTick) error {
	if strings.TrimSpace(tick.Symbol) == "" {
		return errors.NewUpstreamDataError("?", "tick has no symbol")
	}
	if tick.CurrentPrice <= 0 || math.IsNaN(tick.CurrentPrice) {
		return errors.NewUpstreamDataError(tick.Symbol, "non-positive price")
	}
	if tick.Volume < 0 {
		return errors.NewUpstreamDataError(tick.Symbol, "negative volume")
	}
	return nil
}
