package service

import (
	"sync"

	"github.com/google/uuid"
)

// Subscription delivers the latest value published on one topic. A slow
// reader only ever sees the newest value; older ones are dropped.
type Subscription[T any] struct {
	ID string
	C  <-chan T

	once   sync.Once
	cancel func()
}

// Close detaches the subscription. It is safe to call more than once.
func (s *Subscription[T]) Close() {
	s.once.Do(s.cancel)
}

// broadcaster fans values out to per-topic subscribers.
type broadcaster[T any] struct {
	mu   sync.RWMutex
	subs map[string]map[string]chan T // topic -> id -> channel
}

func newBroadcaster[T any]() *broadcaster[T] {
	return &broadcaster[T]{subs: make(map[string]map[string]chan T)}
}

func (b *broadcaster[T]) subscribe(topic string) *Subscription[T] {
	id := uuid.NewString()
	ch := make(chan T, 1)

	b.mu.Lock()
	if b.subs[topic] == nil {
		b.subs[topic] = make(map[string]chan T)
	}
	b.subs[topic][id] = ch
	b.mu.Unlock()

	return &Subscription[T]{
		ID: id,
		C:  ch,
		cancel: func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if topicSubs, ok := b.subs[topic]; ok {
				delete(topicSubs, id)
				if len(topicSubs) == 0 {
					delete(b.subs, topic)
				}
			}
		},
	}
}

// publish never blocks: a full channel has its stale value replaced.
// Publishers are serialized so the last publish is the value left buffered.
func (b *broadcaster[T]) publish(topic string, v T) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ch := range b.subs[topic] {
		select {
		case ch <- v:
			continue
		default:
		}
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- v:
		default:
		}
	}
}

func (b *broadcaster[T]) count(topic string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[topic])
}
