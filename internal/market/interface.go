package market

import (
	"context"

	"stockwatch-srv/internal/model"
)

// UseCase is the market-data ingester. It validates incoming ticks, enriches
// them with technical indicators computed from its rolling price history,
// broadcasts them per symbol, and feeds the evaluation engine while the
// scheduler is ACTIVE.
type UseCase interface {
	// Ingest processes one tick. Malformed ticks are rejected with an
	// UpstreamDataError; a rejected tick never reaches the engine or the
	// broadcast topics.
	Ingest(ctx context.Context, tick model.PriceTick) error

	// IngestBatch processes a feed batch tick by tick. One bad tick is
	// skipped and logged, the rest go through.
	IngestBatch(ctx context.Context, ticks []model.PriceTick) int
}

// Engine is the evaluation hook the ingester drives per tick.
type Engine interface {
	Evaluate(ctx context.Context, tick model.PriceTick)
}

// ActivityGate reports whether evaluation should run right now.
type ActivityGate interface {
	IsActive() bool
}
