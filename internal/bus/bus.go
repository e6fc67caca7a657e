package bus

import (
	"context"
	"sync"

	"stockwatch-srv/pkg/log"
)

const subscriberBuffer = 64

type envelope struct {
	topic   string
	payload any
}

// subscription owns one listener: a buffered inbox drained by its own
// goroutine, so one stuck handler cannot stall the hub or its siblings.
type subscription struct {
	topic   string
	handler Handler
	inbox   chan envelope
	once    sync.Once
}

type hub struct {
	mu     sync.RWMutex
	topics map[string]map[*subscription]struct{}
	closed bool
	wg     sync.WaitGroup
	logger log.Logger
}

// New creates an in-process Bus.
func New(logger log.Logger) Bus {
	return &hub{
		topics: make(map[string]map[*subscription]struct{}),
		logger: logger,
	}
}

func (h *hub) Publish(topic string, payload any) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.closed {
		return
	}
	for sub := range h.topics[topic] {
		select {
		case sub.inbox <- envelope{topic: topic, payload: payload}:
		default:
			// Inbox full: drop. At-most-once, best-effort.
			h.logger.Warnf(context.Background(), "internal.bus.Publish: dropping message, slow subscriber on topic %s", topic)
		}
	}
}

func (h *hub) Subscribe(topic string, handler Handler) func() {
	sub := &subscription{
		topic:   topic,
		handler: handler,
		inbox:   make(chan envelope, subscriberBuffer),
	}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return func() {}
	}
	if h.topics[topic] == nil {
		h.topics[topic] = make(map[*subscription]struct{})
	}
	h.topics[topic][sub] = struct{}{}
	h.mu.Unlock()

	h.wg.Add(1)
	go h.pump(sub)

	return func() { h.unsubscribe(sub) }
}

func (h *hub) pump(sub *subscription) {
	defer h.wg.Done()
	for env := range sub.inbox {
		h.dispatch(sub, env)
	}
}

// dispatch isolates handler panics so one bad listener cannot take down the
// tick path publishing into the bus.
func (h *hub) dispatch(sub *subscription, env envelope) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Errorf(context.Background(), "internal.bus.dispatch: handler panic on topic %s: %v", env.topic, r)
		}
	}()
	sub.handler(env.topic, env.payload)
}

func (h *hub) unsubscribe(sub *subscription) {
	h.mu.Lock()
	if subs, ok := h.topics[sub.topic]; ok {
		delete(subs, sub)
		if len(subs) == 0 {
			delete(h.topics, sub.topic)
		}
	}
	h.mu.Unlock()

	sub.once.Do(func() { close(sub.inbox) })
}

func (h *hub) Close() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.closed = true
	var all []*subscription
	for _, subs := range h.topics {
		for sub := range subs {
			all = append(all, sub)
		}
	}
	h.topics = make(map[string]map[*subscription]struct{})
	h.mu.Unlock()

	for _, sub := range all {
		sub.once.Do(func() { close(sub.inbox) })
	}
	h.wg.Wait()
}
