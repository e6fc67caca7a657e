package bus

// Handler consumes one published payload. Handlers run on the subscriber's
// own goroutine; a slow handler never blocks publishers.
type Handler func(topic string, payload any)

// Bus is the topic-addressed publish/subscribe hub every other component
// publishes through. Delivery is at-most-once, best-effort: no queuing for
// absent subscribers, no replay for late ones. Clients needing current state
// must fetch a snapshot first, then subscribe for deltas.
type Bus interface {
	// Publish delivers payload to all listeners subscribed at call time.
	Publish(topic string, payload any)
	// Subscribe registers h for topic and returns a disposal handle.
	// Unsubscribing is safe in any order and does not affect other listeners.
	Subscribe(topic string, h Handler) (unsubscribe func())
	// Close tears down every subscription. Publish becomes a no-op.
	Close()
}
