package eventbus

import (
	"regexp"
	"sync"

	"storefront/internal/core/logger"

	"go.uber.org/zap"
)

// Handler is invoked with the payload passed to Emit.
// Payloads are opaque to the bus; subscribers assert the types they expect.
type Handler func(payload any)

// Token identifies a single subscription so it can be removed later.
type Token struct {
	id uint64
}

// subscription is the internal record behind a Token. Either topic or
// pattern is set, never both.
type subscription struct {
	id      uint64
	topic   string
	pattern *regexp.Regexp
	fn      Handler
}

// Bus is a synchronous publish/subscribe dispatcher. Exact-string topics
// live in a map, pattern topics in an ordered list checked on every Emit;
// both kinds are dispatched uniformly in subscription order.
//
// Dispatch is strictly synchronous: Emit does not return until every
// matching handler has run. A panicking handler is recovered and logged so
// the remaining handlers still run.
type Bus struct {
	mu       sync.Mutex
	nextID   uint64
	exact    map[string][]*subscription
	patterns []*subscription
}

// New creates an empty Bus.
func New() *Bus {
	return &Bus{
		exact: make(map[string][]*subscription),
	}
}

// Subscribe registers a handler for an exact topic name. Handlers for the
// same topic run in subscription order; duplicates are not deduplicated.
func (b *Bus) Subscribe(topic string, fn Handler) Token {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	sub := &subscription{id: b.nextID, topic: topic, fn: fn}
	b.exact[topic] = append(b.exact[topic], sub)
	return Token{id: sub.id}
}

// SubscribeMatch registers a handler for every emitted topic the pattern
// matches. Pattern handlers run after exact-topic handlers, in
// subscription order.
func (b *Bus) SubscribeMatch(pattern *regexp.Regexp, fn Handler) Token {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	sub := &subscription{id: b.nextID, pattern: pattern, fn: fn}
	b.patterns = append(b.patterns, sub)
	return Token{id: sub.id}
}

// Emit synchronously invokes all handlers matching the topic, passing
// payload to each. Emit never propagates a handler failure.
func (b *Bus) Emit(topic string, payload any) {
	b.mu.Lock()
	matched := make([]*subscription, 0, len(b.exact[topic])+len(b.patterns))
	matched = append(matched, b.exact[topic]...)
	for _, sub := range b.patterns {
		if sub.pattern.MatchString(topic) {
			matched = append(matched, sub)
		}
	}
	b.mu.Unlock()

	for _, sub := range matched {
		invoke(topic, sub.fn, payload)
	}
}

// invoke runs a single handler, isolating its panics from the caller and
// the remaining handlers.
func invoke(topic string, fn Handler, payload any) {
	defer func() {
		if r := recover(); r != nil {
			logger.Get().Error("Event handler panicked",
				zap.String("topic", topic),
				zap.Any("panic", r),
			)
		}
	}()
	fn(payload)
}

// Unsubscribe removes the subscription identified by the token. Unknown
// tokens are ignored.
func (b *Bus) Unsubscribe(token Token) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for topic, subs := range b.exact {
		for i, sub := range subs {
			if sub.id == token.id {
				b.exact[topic] = append(subs[:i], subs[i+1:]...)
				return
			}
		}
	}
	for i, sub := range b.patterns {
		if sub.id == token.id {
			b.patterns = append(b.patterns[:i], b.patterns[i+1:]...)
			return
		}
	}
}

// UnsubscribeTopic removes every handler registered for the exact topic.
func (b *Bus) UnsubscribeTopic(topic string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.exact, topic)
}
