package relay

import (
	"log"
	"sync"

	"stagetimer-cli/internal/model"
)

// subscriberBuffer sizes each subscriber's envelope queue. A slow surface
// drops frames rather than stalling the authoritative render loop; the
// per-frame rebroadcast self-heals whatever was dropped.
const subscriberBuffer = 16

// Subscriber is one connected surface's envelope queue.
type Subscriber struct {
	ch    chan model.Envelope
	ready bool
}

// C is the channel the transport writer drains.
func (s *Subscriber) C() <-chan model.Envelope { return s.ch }

// Hub fans canonical-state envelopes out to connected surfaces. Only
// surfaces that have signalled surfaceReady are broadcast targets; a
// surface that merely connected can still be sent direct replies (e.g.
// the snapshot answering requestState).
type Hub struct {
	mu   sync.Mutex
	subs map[*Subscriber]bool
}

func NewHub() *Hub {
	return &Hub{subs: map[*Subscriber]bool{}}
}

// Subscribe registers a connected, not-yet-ready surface.
func (h *Hub) Subscribe() *Subscriber {
	sub := &Subscriber{ch: make(chan model.Envelope, subscriberBuffer)}
	h.mu.Lock()
	h.subs[sub] = true
	h.mu.Unlock()
	return sub
}

// SetReady marks a surface as a live broadcast target. Called when its
// surfaceReady envelope arrives, i.e. when its rendering pipeline is
// actually initialized, not merely connected.
func (h *Hub) SetReady(sub *Subscriber) {
	h.mu.Lock()
	if h.subs[sub] {
		sub.ready = true
	}
	h.mu.Unlock()
}

// Unsubscribe drops a dead surface so broadcasts stop targeting it.
func (h *Hub) Unsubscribe(sub *Subscriber) {
	h.mu.Lock()
	if h.subs[sub] {
		delete(h.subs, sub)
		close(sub.ch)
	}
	h.mu.Unlock()
}

// Broadcast queues env for every ready surface. Sends never block: a full
// queue drops the envelope for that surface and the next heartbeat frame
// covers it.
func (h *Hub) Broadcast(env model.Envelope) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.subs {
		if !sub.ready {
			continue
		}
		select {
		case sub.ch <- env:
		default:
			log.Printf("relay: subscriber queue full, dropping %s envelope", env.Type)
		}
	}
}

// Send queues env for a single surface regardless of readiness.
func (h *Hub) Send(sub *Subscriber, env model.Envelope) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.subs[sub] {
		return
	}
	select {
	case sub.ch <- env:
	default:
		log.Printf("relay: subscriber queue full, dropping direct %s envelope", env.Type)
	}
}

// ReadyCount reports how many live broadcast targets exist.
func (h *Hub) ReadyCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := 0
	for sub := range h.subs {
		if sub.ready {
			n++
		}
	}
	return n
}
