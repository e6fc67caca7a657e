package usecase

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	gorillaws "github.com/gorilla/websocket"

	"stockwatch-srv/internal/activity"
	"stockwatch-srv/internal/bus"
	"stockwatch-srv/internal/model"
	ws "stockwatch-srv/internal/websocket"
)

type testLogger struct{}

func (testLogger) Debug(ctx context.Context, args ...any)                 {}
func (testLogger) Debugf(ctx context.Context, format string, args ...any) {}
func (testLogger) Info(ctx context.Context, args ...any)                  {}
func (testLogger) Infof(ctx context.Context, format string, args ...any)  {}
func (testLogger) Warn(ctx context.Context, args ...any)                  {}
func (testLogger) Warnf(ctx context.Context, format string, args ...any)  {}
func (testLogger) Error(ctx context.Context, args ...any)                 {}
func (testLogger) Errorf(ctx context.Context, format string, args ...any) {}
func (testLogger) Fatal(ctx context.Context, args ...any)                 {}
func (testLogger) Fatalf(ctx context.Context, format string, args ...any) {}

// stubActivity serves a fixed status snapshot.
type stubActivity struct {
	status model.ServerStatus
}

func (s *stubActivity) GetStatus(ctx context.Context) (model.ServerStatus, error) {
	return s.status, nil
}

func (s *stubActivity) ForceActivate(ctx context.Context, actor, reason string) (activity.OverrideResult, error) {
	return activity.OverrideResult{}, nil
}

func (s *stubActivity) ForceDeactivate(ctx context.Context, actor, reason string) (activity.OverrideResult, error) {
	return activity.OverrideResult{}, nil
}

func (s *stubActivity) IsActive() bool { return s.status.IsActive }

func (s *stubActivity) Log(ctx context.Context, actor, action string, details map[string]any) error {
	return nil
}

func (s *stubActivity) Reevaluate(ctx context.Context)              {}
func (s *stubActivity) OnSessionOpen(fn func(ctx context.Context))  {}
func (s *stubActivity) Run()                                        {}
func (s *stubActivity) Shutdown(ctx context.Context) error          { return nil }

type testEnv struct {
	uc  ws.UseCase
	bus bus.Bus
	srv *httptest.Server
}

// newTestEnv stands up the hub behind a plain HTTP upgrader so tests can dial
// real sockets. userID and symbols come from query params.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := testLogger{}
	b := bus.New(logger)
	uc := New(logger, ws.Config{
		PongWait:   time.Second,
		WriteWait:  time.Second,
		PingPeriod: 900 * time.Millisecond,
	}, b, &stubActivity{status: model.ServerStatus{IsActive: true, Timezone: "Asia/Ho_Chi_Minh"}})
	go uc.Run()

	upgrader := gorillaws.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		var symbols []string
		if raw := r.URL.Query().Get("symbols"); raw != "" {
			symbols = strings.Split(raw, ",")
		}
		if err := uc.Register(r.Context(), ws.ConnectionInput{
			UserID:  r.URL.Query().Get("user"),
			Symbols: symbols,
			Conn:    conn,
		}); err != nil {
			conn.Close()
		}
	}))

	t.Cleanup(func() {
		srv.Close()
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = uc.Shutdown(ctx)
		b.Close()
	})

	return &testEnv{uc: uc, bus: b, srv: srv}
}

func (e *testEnv) dial(t *testing.T, query string) *gorillaws.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(e.srv.URL, "http") + "/?" + query
	conn, _, err := gorillaws.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readEvent(t *testing.T, conn *gorillaws.Conn) ws.Event {
	t.Helper()

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, frame, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var ev ws.Event
	if err := json.Unmarshal(frame, &ev); err != nil {
		t.Fatalf("unmarshal %q: %v", frame, err)
	}
	return ev
}

func waitForStats(t *testing.T, uc ws.UseCase, want ws.HubStats) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		got, _ := uc.GetStats(context.Background())
		if got == want {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	got, _ := uc.GetStats(context.Background())
	t.Fatalf("stats = %+v, want %+v", got, want)
}

func TestConnect_ReceivesSnapshotFirst(t *testing.T) {
	env := newTestEnv(t)
	conn := env.dial(t, "user=u1")

	ev := readEvent(t, conn)
	if ev.Type != bus.TopicServerStatus {
		t.Fatalf("first event type = %q, want %q", ev.Type, bus.TopicServerStatus)
	}

	var status model.ServerStatus
	raw, _ := json.Marshal(ev.Data)
	if err := json.Unmarshal(raw, &status); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if !status.IsActive || status.Timezone != "Asia/Ho_Chi_Minh" {
		t.Fatalf("snapshot = %+v", status)
	}
}

func TestSymbolFilter_OnlySubscribedTicksArrive(t *testing.T) {
	env := newTestEnv(t)
	conn := env.dial(t, "user=u1&symbols=fpt")

	readEvent(t, conn) // snapshot
	waitForStats(t, env.uc, ws.HubStats{ActiveConnections: 1, UniqueUsers: 1})

	env.bus.Publish(bus.TopicStockUpdate("VNM"), model.PriceTick{Symbol: "VNM", CurrentPrice: 80000})
	env.bus.Publish(bus.TopicStockUpdate("FPT"), model.PriceTick{Symbol: "FPT", CurrentPrice: 105000})

	ev := readEvent(t, conn)
	if ev.Type != bus.TopicStockUpdate("FPT") {
		t.Fatalf("event type = %q, want FPT tick only", ev.Type)
	}
}

func TestUserAlert_RoutedToOwnerOnly(t *testing.T) {
	env := newTestEnv(t)
	owner := env.dial(t, "user=u1")
	other := env.dial(t, "user=u2")

	readEvent(t, owner)
	readEvent(t, other)
	waitForStats(t, env.uc, ws.HubStats{ActiveConnections: 2, UniqueUsers: 2})

	env.bus.Publish(bus.TopicUserAlert("u1"), map[string]string{"message": "FPT above 100000"})
	// A follow-up broadcast bounds the wait for the non-owner.
	env.bus.Publish(bus.TopicMarketStatus, map[string]string{"session": "open"})

	// Frames from distinct subscriptions are unordered; scan both.
	types := make(map[string]bool)
	types[readEvent(t, owner).Type] = true
	types[readEvent(t, owner).Type] = true
	if !types[bus.TopicUserAlert("u1")] {
		t.Fatalf("owner events = %v, alert missing", types)
	}
	if ev := readEvent(t, other); ev.Type != bus.TopicMarketStatus {
		t.Fatalf("other event type = %q, alert leaked across users", ev.Type)
	}
}

func TestStatusTransition_BroadcastToAll(t *testing.T) {
	env := newTestEnv(t)
	a := env.dial(t, "user=u1")
	b := env.dial(t, "user=u2")

	readEvent(t, a)
	readEvent(t, b)
	waitForStats(t, env.uc, ws.HubStats{ActiveConnections: 2, UniqueUsers: 2})

	env.bus.Publish(bus.TopicServerStatus, model.ServerStatus{IsActive: false})

	for _, conn := range []*gorillaws.Conn{a, b} {
		if ev := readEvent(t, conn); ev.Type != bus.TopicServerStatus {
			t.Fatalf("event type = %q", ev.Type)
		}
	}
}

func TestDisconnect_DropsSubscriptions(t *testing.T) {
	env := newTestEnv(t)
	conn := env.dial(t, "user=u1")

	readEvent(t, conn)
	waitForStats(t, env.uc, ws.HubStats{ActiveConnections: 1, UniqueUsers: 1})

	conn.Close()
	waitForStats(t, env.uc, ws.HubStats{})

	// Publishing after teardown must not panic the bus pump.
	env.bus.Publish(bus.TopicServerStatus, model.ServerStatus{IsActive: true})
}

func TestRegister_RejectsForeignConnType(t *testing.T) {
	logger := testLogger{}
	b := bus.New(logger)
	defer b.Close()
	uc := New(logger, ws.Config{}, b, &stubActivity{})

	err := uc.Register(context.Background(), ws.ConnectionInput{UserID: "u1", Conn: "not a socket"})
	if err != ws.ErrInvalidConn {
		t.Fatalf("err = %v, want ErrInvalidConn", err)
	}
}

func TestShutdown_ClosesClients(t *testing.T) {
	env := newTestEnv(t)
	conn := env.dial(t, "user=u1")

	readEvent(t, conn)
	waitForStats(t, env.uc, ws.HubStats{ActiveConnections: 1, UniqueUsers: 1})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := env.uc.Shutdown(ctx); err != nil {
		t.Fatalf("shutdown: %v", err)
	}

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func TestNormalizeSymbols(t *testing.T) {
	got := normalizeSymbols([]string{" fpt ", "FPT", "vnm", ""})
	if len(got) != 2 || got[0] != "FPT" || got[1] != "VNM" {
		t.Fatalf("normalizeSymbols = %v", got)
	}
}
