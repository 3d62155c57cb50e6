package event

import (
	"context"
	"sync"
)

// Recorder keeps published events in memory in place of a broker.
type Recorder struct {
	mu     sync.Mutex
	events []Recorded
}

type Recorded struct {
	RoutingKey string
	Payload    interface{}
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Publish(_ context.Context, routingKey string, payload interface{}) {
	r.mu.Lock()
	r.events = append(r.events, Recorded{RoutingKey: routingKey, Payload: payload})
	r.mu.Unlock()
}

func (r *Recorder) Close() {}

func (r *Recorder) Keys() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	keys := make([]string, 0, len(r.events))
	for _, e := range r.events {
		keys = append(keys, e.RoutingKey)
	}
	return keys
}

func (r *Recorder) Events() []Recorded {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Recorded, len(r.events))
	copy(out, r.events)
	return out
}
