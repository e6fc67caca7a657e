package usecase

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"stockwatch-srv/internal/alert"
	"stockwatch-srv/internal/alert/repository"
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

type memoryRepo struct {
	mu     sync.Mutex
	alerts map[string]model.Alert
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{alerts: make(map[string]model.Alert)}
}

func (r *memoryRepo) Create(ctx context.Context, a model.Alert) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.alerts[a.ID] = a
	return nil
}

func (r *memoryRepo) Update(ctx context.Context, a model.Alert) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.alerts[a.ID]
	if !ok || cur.UserID != a.UserID {
		return repository.ErrNotFound
	}
	r.alerts[a.ID] = a
	return nil
}

func (r *memoryRepo) Delete(ctx context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.alerts[id]
	if !ok || cur.UserID != userID {
		return repository.ErrNotFound
	}
	delete(r.alerts, id)
	return nil
}

func (r *memoryRepo) Get(ctx context.Context, userID, id string) (model.Alert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.alerts[id]
	if !ok || cur.UserID != userID {
		return model.Alert{}, repository.ErrNotFound
	}
	return cur, nil
}

func (r *memoryRepo) List(ctx context.Context, userID string, opts repository.ListOptions) ([]model.Alert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Alert
	for _, a := range r.alerts {
		if a.UserID != userID {
			continue
		}
		if opts.Symbol != "" && a.Symbol != opts.Symbol {
			continue
		}
		if opts.Triggered != nil && a.Triggered != *opts.Triggered {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (r *memoryRepo) ListEligible(ctx context.Context) ([]model.Alert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Alert
	for _, a := range r.alerts {
		if a.Eligible() {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *memoryRepo) MarkTriggered(ctx context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.alerts[id]
	if !ok {
		return repository.ErrNotFound
	}
	cur.Triggered = true
	cur.TriggeredAt = &at
	r.alerts[id] = cur
	return nil
}

func (r *memoryRepo) ClearTriggered(ctx context.Context, ids []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	match := func(id string) bool {
		if len(ids) == 0 {
			return true
		}
		for _, want := range ids {
			if want == id {
				return true
			}
		}
		return false
	}
	for id, a := range r.alerts {
		if a.Triggered && match(id) {
			a.Triggered = false
			a.TriggeredAt = nil
			r.alerts[id] = a
		}
	}
	return nil
}

type recordDispatcher struct {
	mu     sync.Mutex
	events []model.AlertTriggered
}

func (d *recordDispatcher) Submit(ctx context.Context, e model.AlertTriggered) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, e)
}

func (d *recordDispatcher) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.events)
}

func (d *recordDispatcher) last() model.AlertTriggered {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.events[len(d.events)-1]
}

func newTestEngine(t *testing.T) (*implUseCase, *memoryRepo, *recordDispatcher) {
	t.Helper()
	repo := newMemoryRepo()
	disp := &recordDispatcher{}
	uc, err := New(context.Background(), testLogger{}, repo, disp)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return uc.(*implUseCase), repo, disp
}

func f(v float64) *float64 { return &v }

func fptTick() model.PriceTick {
	return model.PriceTick{
		Symbol:           "FPT",
		CurrentPrice:     105000,
		PreviousClose:    100000,
		DayChange:        5000,
		DayChangePercent: 5.0,
		Volume:           1200000,
		Timestamp:        time.Now(),
	}
}

func TestEvaluate_AboveTriggers(t *testing.T) {
	uc, repo, disp := newTestEngine(t)
	ctx := context.Background()

	created, err := uc.Create(ctx, alert.CreateInput{
		UserID:    "user-1",
		Symbol:    "FPT",
		Type:      model.AlertTypePrice,
		Condition: model.ConditionAbove,
		Threshold: f(100000),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	uc.Evaluate(ctx, fptTick())

	if disp.count() != 1 {
		t.Fatalf("got %d dispatched events, want 1", disp.count())
	}
	event := disp.last()
	if event.Alert.ID != created.ID {
		t.Fatalf("event for alert %s, want %s", event.Alert.ID, created.ID)
	}
	if !strings.Contains(event.Message, "105000") || !strings.Contains(event.Message, "100000") {
		t.Fatalf("message %q must reference current price and threshold", event.Message)
	}

	stored, err := repo.Get(ctx, "user-1", created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !stored.Triggered || stored.TriggeredAt == nil {
		t.Fatal("alert not marked triggered in store")
	}
}

func TestEvaluate_TriggerOnce(t *testing.T) {
	uc, _, disp := newTestEngine(t)
	ctx := context.Background()

	if _, err := uc.Create(ctx, alert.CreateInput{
		UserID:    "user-1",
		Symbol:    "FPT",
		Condition: model.ConditionAbove,
		Threshold: f(100000),
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	uc.Evaluate(ctx, fptTick())
	uc.Evaluate(ctx, fptTick())
	uc.Evaluate(ctx, fptTick())

	if disp.count() != 1 {
		t.Fatalf("got %d events across repeated satisfying ticks, want 1", disp.count())
	}
}

func TestEvaluate_EqualsToleranceIsStrict(t *testing.T) {
	tick := model.PriceTick{Symbol: "VNM", CurrentPrice: 100}

	// |100 - 99| == 100*0.01 exactly: must not trigger.
	ok, err := evalPredicate(model.ConditionEquals, f(99), tick, tickView{})
	if err != nil {
		t.Fatalf("evalPredicate: %v", err)
	}
	if ok {
		t.Fatal("boundary |price-threshold| == price*0.01 must not trigger")
	}

	// Just inside the tolerance.
	ok, err = evalPredicate(model.ConditionEquals, f(99.01), tick, tickView{})
	if err != nil {
		t.Fatalf("evalPredicate: %v", err)
	}
	if !ok {
		t.Fatal("|price-threshold| < price*0.01 must trigger")
	}
}

func TestEvaluate_MissingRSISkips(t *testing.T) {
	uc, repo, disp := newTestEngine(t)
	ctx := context.Background()

	created, err := uc.Create(ctx, alert.CreateInput{
		UserID:    "user-1",
		Symbol:    "FPT",
		Type:      model.AlertTypeTechnical,
		Condition: model.ConditionRSIOverbought,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	uc.Evaluate(ctx, fptTick()) // no RSI on the tick

	if disp.count() != 0 {
		t.Fatalf("got %d events for tick without RSI, want 0", disp.count())
	}
	stored, _ := repo.Get(ctx, "user-1", created.ID)
	if stored.Triggered {
		t.Fatal("skipped evaluation must not mark the alert triggered")
	}

	// A later tick carrying RSI evaluates normally.
	tick := fptTick()
	tick.RSI = f(75)
	uc.Evaluate(ctx, tick)
	if disp.count() != 1 {
		t.Fatalf("got %d events once RSI present, want 1", disp.count())
	}
}

func TestEvaluate_MACrossoverNeedsPriorTick(t *testing.T) {
	uc, _, disp := newTestEngine(t)
	ctx := context.Background()

	if _, err := uc.Create(ctx, alert.CreateInput{
		UserID:    "user-1",
		Symbol:    "HPG",
		Type:      model.AlertTypeTechnical,
		Condition: model.ConditionMACrossover,
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	below := model.PriceTick{Symbol: "HPG", CurrentPrice: 25000, ShortMA: f(24000), LongMA: f(24500)}
	above := model.PriceTick{Symbol: "HPG", CurrentPrice: 25500, ShortMA: f(24800), LongMA: f(24600)}

	// First tick: no previous MA memory, cannot observe a crossing.
	uc.Evaluate(ctx, above)
	if disp.count() != 0 {
		t.Fatalf("first tick dispatched %d events, want 0", disp.count())
	}

	uc2, _, disp2 := newTestEngine(t)
	if _, err := uc2.Create(ctx, alert.CreateInput{
		UserID:    "user-1",
		Symbol:    "HPG",
		Type:      model.AlertTypeTechnical,
		Condition: model.ConditionMACrossover,
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	uc2.Evaluate(ctx, below)
	if disp2.count() != 0 {
		t.Fatalf("short below long dispatched %d events, want 0", disp2.count())
	}
	uc2.Evaluate(ctx, above)
	if disp2.count() != 1 {
		t.Fatalf("crossing dispatched %d events, want 1", disp2.count())
	}
}

func TestEvaluate_VolumeSpikeNeedsBaseline(t *testing.T) {
	uc, _, disp := newTestEngine(t)
	ctx := context.Background()

	if _, err := uc.Create(ctx, alert.CreateInput{
		UserID:    "user-1",
		Symbol:    "SSI",
		Type:      model.AlertTypeVolume,
		Condition: model.ConditionVolumeSpike,
		Threshold: f(2),
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	normal := func() model.PriceTick {
		return model.PriceTick{Symbol: "SSI", CurrentPrice: 30000, Volume: 100000}
	}

	// Fewer than the minimum samples: evaluation is skipped.
	for i := 0; i < minVolumeSamples; i++ {
		uc.Evaluate(ctx, normal())
	}
	if disp.count() != 0 {
		t.Fatalf("dispatched %d events before baseline established, want 0", disp.count())
	}

	spike := model.PriceTick{Symbol: "SSI", CurrentPrice: 30000, Volume: 250000}
	uc.Evaluate(ctx, spike)
	if disp.count() != 1 {
		t.Fatalf("dispatched %d events on 2.5x baseline volume, want 1", disp.count())
	}
}

func TestWouldTrigger_MatchesLivePath(t *testing.T) {
	uc, _, disp := newTestEngine(t)
	ctx := context.Background()

	tick := fptTick()

	preview, err := uc.WouldTrigger(ctx, tick, model.ConditionAbove, f(100000))
	if err != nil {
		t.Fatalf("WouldTrigger: %v", err)
	}
	if !preview.WouldTrigger {
		t.Fatal("preview should report a trigger")
	}
	if !strings.Contains(preview.Message, "105000") {
		t.Fatalf("preview message %q must reference the current price", preview.Message)
	}

	// Dry run is pure: nothing dispatched, no memory advanced.
	if disp.count() != 0 {
		t.Fatalf("dry run dispatched %d events, want 0", disp.count())
	}
	uc.memMu.Lock()
	if len(uc.mem) != 0 {
		uc.memMu.Unlock()
		t.Fatal("dry run advanced per-symbol memory")
	}
	uc.memMu.Unlock()

	// The live path agrees on the same tick.
	if _, err := uc.Create(ctx, alert.CreateInput{
		UserID:    "user-1",
		Symbol:    "FPT",
		Condition: model.ConditionAbove,
		Threshold: f(100000),
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	uc.Evaluate(ctx, tick)
	if disp.count() != 1 {
		t.Fatalf("live path dispatched %d events, want 1", disp.count())
	}
}

func TestWouldTrigger_InvalidCondition(t *testing.T) {
	uc, _, _ := newTestEngine(t)

	_, err := uc.WouldTrigger(context.Background(), fptTick(), "sideways", nil)
	if err != alert.ErrInvalidCondition {
		t.Fatalf("err = %v, want ErrInvalidCondition", err)
	}
}

func TestCreate_Validation(t *testing.T) {
	uc, _, _ := newTestEngine(t)
	ctx := context.Background()

	if _, err := uc.Create(ctx, alert.CreateInput{UserID: "u", Condition: model.ConditionAbove, Threshold: f(1)}); err != alert.ErrSymbolRequired {
		t.Fatalf("missing symbol: err = %v", err)
	}
	if _, err := uc.Create(ctx, alert.CreateInput{UserID: "u", Symbol: "FPT", Condition: "sideways"}); err != alert.ErrInvalidCondition {
		t.Fatalf("bad condition: err = %v", err)
	}
	if _, err := uc.Create(ctx, alert.CreateInput{UserID: "u", Symbol: "FPT", Condition: model.ConditionAbove}); err != alert.ErrThresholdRequired {
		t.Fatalf("missing threshold: err = %v", err)
	}

	created, err := uc.Create(ctx, alert.CreateInput{UserID: "u", Symbol: "fpt", Condition: model.ConditionAbove, Threshold: f(1)})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Symbol != "FPT" {
		t.Fatalf("symbol = %q, want normalized FPT", created.Symbol)
	}
}

func TestReset_RearmsAlert(t *testing.T) {
	uc, _, disp := newTestEngine(t)
	ctx := context.Background()

	created, err := uc.Create(ctx, alert.CreateInput{
		UserID:    "user-1",
		Symbol:    "FPT",
		Condition: model.ConditionAbove,
		Threshold: f(100000),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	uc.Evaluate(ctx, fptTick())
	uc.Evaluate(ctx, fptTick())
	if disp.count() != 1 {
		t.Fatalf("got %d events, want 1", disp.count())
	}

	reset, err := uc.Reset(ctx, "user-1", created.ID)
	if err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if reset.Triggered || reset.TriggeredAt != nil {
		t.Fatal("reset alert still flagged triggered")
	}

	uc.Evaluate(ctx, fptTick())
	if disp.count() != 2 {
		t.Fatalf("got %d events after reset, want 2", disp.count())
	}
}

func TestDelete_RemovesFromEvaluation(t *testing.T) {
	uc, _, disp := newTestEngine(t)
	ctx := context.Background()

	created, err := uc.Create(ctx, alert.CreateInput{
		UserID:    "user-1",
		Symbol:    "FPT",
		Condition: model.ConditionAbove,
		Threshold: f(100000),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := uc.Delete(ctx, "user-1", created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	uc.Evaluate(ctx, fptTick())
	if disp.count() != 0 {
		t.Fatalf("deleted alert dispatched %d events, want 0", disp.count())
	}
}

func TestUpdate_DeactivationLeavesEvaluation(t *testing.T) {
	uc, _, disp := newTestEngine(t)
	ctx := context.Background()

	created, err := uc.Create(ctx, alert.CreateInput{
		UserID:    "user-1",
		Symbol:    "FPT",
		Condition: model.ConditionAbove,
		Threshold: f(100000),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	inactive := false
	if _, err := uc.Update(ctx, "user-1", created.ID, alert.UpdateInput{IsActive: &inactive}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	uc.Evaluate(ctx, fptTick())
	if disp.count() != 0 {
		t.Fatalf("inactive alert dispatched %d events, want 0", disp.count())
	}

	active := true
	if _, err := uc.Update(ctx, "user-1", created.ID, alert.UpdateInput{IsActive: &active}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	uc.Evaluate(ctx, fptTick())
	if disp.count() != 1 {
		t.Fatalf("re-enabled alert dispatched %d events, want 1", disp.count())
	}
}
