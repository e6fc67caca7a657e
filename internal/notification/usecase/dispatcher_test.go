package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/friendsofgo/errors"

	"stockwatch-srv/internal/bus"
	"stockwatch-srv/internal/model"
	"stockwatch-srv/internal/notification"
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
	events map[string][]any
}

func newRecordBus() *recordBus {
	return &recordBus{events: make(map[string][]any)}
}

func (b *recordBus) Publish(topic string, payload any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events[topic] = append(b.events[topic], payload)
}

func (b *recordBus) Subscribe(topic string, h bus.Handler) func() { return func() {} }
func (b *recordBus) Close()                                       {}

func (b *recordBus) count(topic string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.events[topic])
}

type memoryRepo struct {
	mu      sync.Mutex
	jobs    map[string]model.NotificationJob
	devices []model.Device
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{jobs: make(map[string]model.NotificationJob)}
}

func (r *memoryRepo) CreateJob(ctx context.Context, job model.NotificationJob) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobs[job.ID] = job
	return nil
}

func (r *memoryRepo) UpdateJob(ctx context.Context, id string, state model.JobState, attempts int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.jobs[id]
	if !ok {
		return errors.New("job not found")
	}
	job.State = state
	job.Attempts = attempts
	r.jobs[id] = job
	return nil
}

func (r *memoryRepo) ListJobs(ctx context.Context, userID string, limit int) ([]model.NotificationJob, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.NotificationJob
	for _, j := range r.jobs {
		if j.UserID == userID {
			out = append(out, j)
		}
	}
	return out, nil
}

func (r *memoryRepo) SaveDevice(ctx context.Context, device model.Device) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.devices = append(r.devices, device)
	return nil
}

func (r *memoryRepo) DeleteDevice(ctx context.Context, userID, deviceToken string) error { return nil }

func (r *memoryRepo) ListDevices(ctx context.Context, userID string) ([]model.Device, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.Device(nil), r.devices...), nil
}

func (r *memoryRepo) jobsByChannel(channel model.NotificationChannel) []model.NotificationJob {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.NotificationJob
	for _, j := range r.jobs {
		if j.Channel == channel {
			out = append(out, j)
		}
	}
	return out
}

// flakyMailer fails a fixed number of times before succeeding.
type flakyMailer struct {
	mu       sync.Mutex
	failures int
	calls    int
}

func (m *flakyMailer) Send(ctx context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.calls <= m.failures {
		return errors.New("smtp unavailable")
	}
	return nil
}

func (m *flakyMailer) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func testConfig() notification.Config {
	return notification.Config{
		Workers:      2,
		QueueSize:    16,
		MaxAttempts:  3,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
	}
}

func triggerEvent(alertID string, at time.Time) model.AlertTriggered {
	return model.AlertTriggered{
		Alert: model.Alert{
			ID:     alertID,
			UserID: "user-1",
			Symbol: "FPT",
		},
		Tick:        model.PriceTick{Symbol: "FPT", CurrentPrice: 105000},
		Message:     "FPT price 105000 is above 100000",
		TriggeredAt: at,
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}

func TestDispatcher_PushDelivery(t *testing.T) {
	repo := newMemoryRepo()
	b := newRecordBus()
	uc := New(testLogger{}, testConfig(), repo, b, nil, nil, nil, nil).(*implUseCase)
	go uc.Run()
	defer uc.Shutdown(context.Background())

	uc.Submit(context.Background(), triggerEvent("alert-1", time.Now()))

	topic := bus.TopicUserAlert("user-1")
	waitFor(t, func() bool { return b.count(topic) == 1 })

	jobs := repo.jobsByChannel(model.ChannelPush)
	if len(jobs) != 1 {
		t.Fatalf("got %d push jobs, want 1", len(jobs))
	}
	if jobs[0].State != model.JobDelivered {
		t.Fatalf("job state = %s, want delivered", jobs[0].State)
	}
}

func TestDispatcher_DuplicateSuppression(t *testing.T) {
	repo := newMemoryRepo()
	b := newRecordBus()
	uc := New(testLogger{}, testConfig(), repo, b, nil, nil, nil, nil).(*implUseCase)
	go uc.Run()
	defer uc.Shutdown(context.Background())

	at := time.Now()
	uc.Submit(context.Background(), triggerEvent("alert-1", at))
	uc.Submit(context.Background(), triggerEvent("alert-1", at))

	topic := bus.TopicUserAlert("user-1")
	waitFor(t, func() bool { return b.count(topic) >= 1 })
	time.Sleep(50 * time.Millisecond)

	if n := b.count(topic); n != 1 {
		t.Fatalf("got %d pushes for duplicate events, want 1", n)
	}

	// A different trigger time is a distinct key.
	uc.Submit(context.Background(), triggerEvent("alert-1", at.Add(time.Minute)))
	waitFor(t, func() bool { return b.count(topic) == 2 })
}

func TestDispatcher_EmailRetrySucceeds(t *testing.T) {
	repo := newMemoryRepo()
	b := newRecordBus()
	mailer := &flakyMailer{failures: 2}
	uc := New(testLogger{}, testConfig(), repo, b, nil, mailer, nil, nil).(*implUseCase)
	go uc.Run()
	defer uc.Shutdown(context.Background())

	event := triggerEvent("alert-1", time.Now())
	event.Alert.Email = "user@example.com"
	uc.Submit(context.Background(), event)

	waitFor(t, func() bool {
		jobs := repo.jobsByChannel(model.ChannelEmail)
		return len(jobs) == 1 && jobs[0].State == model.JobDelivered
	})

	if mailer.callCount() != 3 {
		t.Fatalf("mailer called %d times, want 3", mailer.callCount())
	}
	jobs := repo.jobsByChannel(model.ChannelEmail)
	if jobs[0].Attempts != 3 {
		t.Fatalf("job attempts = %d, want 3", jobs[0].Attempts)
	}
}

func TestDispatcher_EmailExhaustionMarksFailed(t *testing.T) {
	repo := newMemoryRepo()
	b := newRecordBus()
	mailer := &flakyMailer{failures: 100}
	uc := New(testLogger{}, testConfig(), repo, b, nil, mailer, nil, nil).(*implUseCase)
	go uc.Run()
	defer uc.Shutdown(context.Background())

	event := triggerEvent("alert-1", time.Now())
	event.Alert.Email = "user@example.com"
	uc.Submit(context.Background(), event)

	waitFor(t, func() bool {
		jobs := repo.jobsByChannel(model.ChannelEmail)
		return len(jobs) == 1 && jobs[0].State == model.JobFailed
	})

	jobs := repo.jobsByChannel(model.ChannelEmail)
	if jobs[0].Attempts != 3 {
		t.Fatalf("job attempts = %d, want bounded at 3", jobs[0].Attempts)
	}
}

func TestDispatcher_SubmitNeverBlocks(t *testing.T) {
	repo := newMemoryRepo()
	b := newRecordBus()
	cfg := testConfig()
	cfg.QueueSize = 1
	// Workers never started: the queue can only hold one event.
	uc := New(testLogger{}, cfg, repo, b, nil, nil, nil, nil).(*implUseCase)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			uc.Submit(context.Background(), triggerEvent("alert-1", time.Now()))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Submit blocked on a full queue")
	}
	if len(uc.queue) != 1 {
		t.Fatalf("queue holds %d events, want 1 (rest dropped)", len(uc.queue))
	}
}

func TestDispatcher_ShutdownDrainsQueue(t *testing.T) {
	repo := newMemoryRepo()
	b := newRecordBus()
	uc := New(testLogger{}, testConfig(), repo, b, nil, nil, nil, nil).(*implUseCase)

	for i := 0; i < 5; i++ {
		uc.Submit(context.Background(), triggerEvent("alert-"+string(rune('a'+i)), time.Now()))
	}

	go uc.Run()
	if err := uc.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}

	topic := bus.TopicUserAlert("user-1")
	if n := b.count(topic); n != 5 {
		t.Fatalf("got %d pushes after drain, want 5", n)
	}

	// Events after shutdown are refused without panicking.
	uc.Submit(context.Background(), triggerEvent("late", time.Now()))
	if n := b.count(topic); n != 5 {
		t.Fatalf("late submit delivered, want refused")
	}
}
