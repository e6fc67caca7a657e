package usecase

import (
	"context"
	"sync"
	"testing"

	"stockwatch-srv/internal/bus"
	"stockwatch-srv/internal/market"
	"stockwatch-srv/internal/model"
)

type testLogger struct{}

func (testLogger) Debug(ctx context.Context, arg ...any)                   {}
func (testLogger) Debugf(ctx context.Context, template string, arg ...any) {}
func (testLogger) Info(ctx context.Context, arg ...any)                    {}
func (testLogger) Infof(ctx context.Context, template string, arg ...any)  {}
func (testLogger) Warn(ctx context.Context, arg ...any)                    {}
func (testLogger) Warnf(ctx context.Context, template string, arg ...any)  {}
func (testLogger) Error(ctx context.Context, arg ...any)                   {}
func (testLogger) Errorf(ctx context.Context, template string, arg ...any) {}
func (testLogger) Fatal(ctx context.Context, arg ...any)                   {}
func (testLogger) Fatalf(ctx context.Context, template string, arg ...any) {}

type recordBus struct {
	mu     sync.Mutex
	topics []string
	last   any
}

func (b *recordBus) Publish(topic string, payload any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.topics = append(b.topics, topic)
	b.last = payload
}

func (b *recordBus) Subscribe(topic string, h bus.Handler) func() { return func() {} }
func (b *recordBus) Close()                                       {}

type recordEngine struct {
	mu    sync.Mutex
	ticks []model.PriceTick
}

func (e *recordEngine) Evaluate(ctx context.Context, tick model.PriceTick) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.ticks = append(e.ticks, tick)
}

func (e *recordEngine) count() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.ticks)
}

type stubGate struct{ active bool }

func (g stubGate) IsActive() bool { return g.active }

func newIngester(active bool) (market.UseCase, *recordBus, *recordEngine) {
	b := &recordBus{}
	e := &recordEngine{}
	uc := New(testLogger{}, market.Config{}, b, e, stubGate{active: active})
	return uc, b, e
}

func TestIngest_BroadcastsAndEvaluates(t *testing.T) {
	uc, b, e := newIngester(true)

	err := uc.Ingest(context.Background(), model.PriceTick{
		Symbol:        "fpt",
		CurrentPrice:  105000,
		PreviousClose: 100000,
		Volume:        1000,
	})
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}

	if len(b.topics) != 1 || b.topics[0] != bus.TopicStockUpdate("FPT") {
		t.Fatalf("published topics %v, want [stock-update-FPT]", b.topics)
	}
	if e.count() != 1 {
		t.Fatalf("engine saw %d ticks, want 1", e.count())
	}

	published := b.last.(model.PriceTick)
	if published.Symbol != "FPT" {
		t.Fatalf("symbol = %q, want normalized FPT", published.Symbol)
	}
	if published.DayChangePercent != 5.0 {
		t.Fatalf("day change percent = %v, want computed 5.0", published.DayChangePercent)
	}
	if published.Timestamp.IsZero() {
		t.Fatal("timestamp not back-filled")
	}
}

func TestIngest_StandbySkipsEvaluation(t *testing.T) {
	uc, b, e := newIngester(false)

	err := uc.Ingest(context.Background(), model.PriceTick{Symbol: "FPT", CurrentPrice: 105000})
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}

	// Broadcast still happens, evaluation does not.
	if len(b.topics) != 1 {
		t.Fatalf("published %d events, want 1", len(b.topics))
	}
	if e.count() != 0 {
		t.Fatalf("engine saw %d ticks in STANDBY, want 0", e.count())
	}
}

func TestIngest_RejectsMalformedTick(t *testing.T) {
	uc, b, e := newIngester(true)
	ctx := context.Background()

	cases := []model.PriceTick{
		{CurrentPrice: 100},                      // no symbol
		{Symbol: "FPT"},                          // no price
		{Symbol: "FPT", CurrentPrice: -5},        // negative price
		{Symbol: "FPT", CurrentPrice: 100, Volume: -1}, // negative volume
	}
	for _, tick := range cases {
		if err := uc.Ingest(ctx, tick); err == nil {
			t.Errorf("tick %+v accepted, want rejection", tick)
		}
	}

	if len(b.topics) != 0 || e.count() != 0 {
		t.Fatal("rejected ticks must not be broadcast or evaluated")
	}
}

func TestIngest_BackfillsIndicators(t *testing.T) {
	uc, b, _ := newIngester(true)
	ctx := context.Background()

	prices := []float64{
		100, 101, 102, 101, 103, 104, 103, 105, 106, 105,
		107, 108, 107, 109, 110, 109, 111, 112, 111, 113,
		114, 113, 115, 116, 115, 117, 118, 117, 119, 120,
	}
	for _, p := range prices {
		if err := uc.Ingest(ctx, model.PriceTick{Symbol: "VNM", CurrentPrice: p}); err != nil {
			t.Fatalf("Ingest(%v): %v", p, err)
		}
	}

	published := b.last.(model.PriceTick)
	if published.RSI == nil {
		t.Fatal("RSI not back-filled after enough history")
	}
	if *published.RSI <= 0 || *published.RSI > 100 {
		t.Fatalf("RSI = %v, want within (0, 100]", *published.RSI)
	}
	if published.ShortMA == nil || published.LongMA == nil {
		t.Fatal("moving averages not back-filled")
	}
	if *published.ShortMA <= *published.LongMA {
		t.Fatalf("rising series: short MA %v should exceed long MA %v", *published.ShortMA, *published.LongMA)
	}
}

func TestIngestBatch_SkipsBadTicks(t *testing.T) {
	uc, _, e := newIngester(true)

	accepted := uc.IngestBatch(context.Background(), []model.PriceTick{
		{Symbol: "FPT", CurrentPrice: 105000},
		{Symbol: "", CurrentPrice: 1},
		{Symbol: "VNM", CurrentPrice: 80000},
	})
	if accepted != 2 {
		t.Fatalf("accepted %d ticks, want 2", accepted)
	}
	if e.count() != 2 {
		t.Fatalf("engine saw %d ticks, want 2", e.count())
	}
}
