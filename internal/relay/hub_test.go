package relay

import (
	"testing"

	"stagetimer-cli/internal/model"
)

func drain(sub *Subscriber) []model.Envelope {
	var out []model.Envelope
	for {
		select {
		case env := <-sub.C():
			out = append(out, env)
		default:
			return out
		}
	}
}

func TestHub_BroadcastOnlyReachesReadySurfaces(t *testing.T) {
	h := NewHub()
	ready := h.Subscribe()
	connected := h.Subscribe()
	h.SetReady(ready)

	h.Broadcast(stateAt(1))

	if got := drain(ready); len(got) != 1 {
		t.Fatalf("ready surface expected 1 envelope, got %d", len(got))
	}
	if got := drain(connected); len(got) != 0 {
		t.Fatalf("not-ready surface must receive nothing, got %d", len(got))
	}
	if h.ReadyCount() != 1 {
		t.Fatalf("expected 1 ready surface, got %d", h.ReadyCount())
	}
}

func TestHub_DirectSendIgnoresReadiness(t *testing.T) {
	h := NewHub()
	sub := h.Subscribe()

	// The snapshot answering requestState goes out before readiness.
	h.Send(sub, stateAt(7))
	got := drain(sub)
	if len(got) != 1 || got[0].State.Seq != 7 {
		t.Fatalf("expected direct snapshot, got %+v", got)
	}
}

func TestHub_UnsubscribeStopsTargeting(t *testing.T) {
	h := NewHub()
	sub := h.Subscribe()
	h.SetReady(sub)
	h.Unsubscribe(sub)

	h.Broadcast(stateAt(1)) // must not panic on the closed channel
	if h.ReadyCount() != 0 {
		t.Fatalf("expected no ready surfaces, got %d", h.ReadyCount())
	}
	if _, open := <-sub.C(); open {
		t.Fatalf("expected subscriber channel closed")
	}

	// Double unsubscribe is harmless.
	h.Unsubscribe(sub)
}

func TestHub_FullQueueDropsInsteadOfBlocking(t *testing.T) {
	h := NewHub()
	sub := h.Subscribe()
	h.SetReady(sub)

	// Nobody drains: the heartbeat must keep going regardless.
	for i := 0; i < subscriberBuffer*3; i++ {
		h.Broadcast(stateAt(int64(i + 1)))
	}
	got := drain(sub)
	if len(got) != subscriberBuffer {
		t.Fatalf("expected %d queued envelopes, got %d", subscriberBuffer, len(got))
	}
}
