package usecase

import (
	"math"

	"stockwatch-srv/internal/model"
	"stockwatch-srv/pkg/errors"
)

// tickView carries the per-symbol memory inputs a predicate may need beyond
// the tick itself: previous moving averages and the rolling volume baseline.
type tickView struct {
	prevShortMA *float64
	prevLongMA  *float64
	baseline    float64
	baselineOK  bool
}

// requiresThreshold reports whether the condition is meaningless without a
// user-supplied numeric threshold.
func requiresThreshold(cond model.AlertCondition) bool {
	switch cond {
	case model.ConditionAbove, model.ConditionBelow, model.ConditionEquals,
		model.ConditionPercentChangeUp, model.ConditionPercentChangeDown,
		model.ConditionVolumeSpike, model.ConditionVolumeDrop:
		return true
	}
	return false
}

func validCondition(cond model.AlertCondition) bool {
	for _, c := range model.ValidConditions {
		if c == cond {
			return true
		}
	}
	return false
}

// evalPredicate decides whether one condition is satisfied by a tick. It is
// the single predicate table: the live evaluation path and the dry-run
// preview both go through it, so they cannot diverge.
//
// A missing tick field required by the condition yields an UpstreamDataError;
// the caller skips that one evaluation and logs, never more.
func evalPredicate(cond model.AlertCondition, threshold *float64, tick model.PriceTick, view tickView) (bool, error) {
	if requiresThreshold(cond) && threshold == nil {
		return false, errors.NewUpstreamDataError(tick.Symbol, "condition "+string(cond)+" has no threshold")
	}

	switch cond {
	case model.ConditionAbove:
		return tick.CurrentPrice > *threshold, nil

	case model.ConditionBelow:
		return tick.CurrentPrice < *threshold, nil

	case model.ConditionEquals:
		// 1% tolerance relative to the current price, strict inequality.
		return math.Abs(tick.CurrentPrice-*threshold) < tick.CurrentPrice*0.01, nil

	case model.ConditionPercentChangeUp:
		return tick.DayChangePercent >= *threshold, nil

	case model.ConditionPercentChangeDown:
		return tick.DayChangePercent <= *threshold, nil

	case model.ConditionVolumeSpike:
		if !view.baselineOK {
			return false, errors.NewUpstreamDataError(tick.Symbol, "volume baseline not established")
		}
		return tick.Volume >= *threshold*view.baseline, nil

	case model.ConditionVolumeDrop:
		if !view.baselineOK {
			return false, errors.NewUpstreamDataError(tick.Symbol, "volume baseline not established")
		}
		return tick.Volume <= *threshold*view.baseline, nil

	case model.ConditionRSIOverbought:
		if tick.RSI == nil {
			return false, errors.NewUpstreamDataError(tick.Symbol, "rsi missing from tick")
		}
		limit := float64(defaultOverbought)
		if threshold != nil {
			limit = *threshold
		}
		return *tick.RSI >= limit, nil

	case model.ConditionRSIOversold:
		if tick.RSI == nil {
			return false, errors.NewUpstreamDataError(tick.Symbol, "rsi missing from tick")
		}
		limit := float64(defaultOversold)
		if threshold != nil {
			limit = *threshold
		}
		return *tick.RSI <= limit, nil

	case model.ConditionMACrossover:
		if tick.ShortMA == nil || tick.LongMA == nil {
			return false, errors.NewUpstreamDataError(tick.Symbol, "moving averages missing from tick")
		}
		if view.prevShortMA == nil || view.prevLongMA == nil {
			// First tick for the symbol: no crossing to observe yet.
			return false, nil
		}
		return *view.prevShortMA <= *view.prevLongMA && *tick.ShortMA > *tick.LongMA, nil

	case model.ConditionMACrossunder:
		if tick.ShortMA == nil || tick.LongMA == nil {
			return false, errors.NewUpstreamDataError(tick.Symbol, "moving averages missing from tick")
		}
		if view.prevShortMA == nil || view.prevLongMA == nil {
			return false, nil
		}
		return *view.prevShortMA >= *view.prevLongMA && *tick.ShortMA < *tick.LongMA, nil

	case model.ConditionNewHigh:
		if tick.FiftyTwoHigh == nil {
			return false, errors.NewUpstreamDataError(tick.Symbol, "52-week high missing from tick")
		}
		return tick.CurrentPrice > *tick.FiftyTwoHigh, nil

	case model.ConditionNewLow:
		if tick.FiftyTwoLow == nil {
			return false, errors.NewUpstreamDataError(tick.Symbol, "52-week low missing from tick")
		}
		return tick.CurrentPrice < *tick.FiftyTwoLow, nil
	}

	return false, errors.NewUpstreamDataError(tick.Symbol, "unknown condition "+string(cond))
}
