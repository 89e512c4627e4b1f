// Package relay implements the state synchronization protocol between
// surfaces: monotonic-sequence acceptance on the receiving side and
// ready-gated broadcast on the authoritative side. The transport is an
// ordered-at-best, at-least-once channel; the protocol tolerates
// reordering and duplication instead of requiring more from it.
package relay

import (
	"sync"

	"stagetimer-cli/internal/model"
)

// Replica is a surface's read-only copy of the canonical state. It must
// be able to fully reconstruct a display from a single accepted snapshot
// at any time, which is what makes late-join and reload work.
type Replica struct {
	mu              sync.Mutex
	lastAcceptedSeq int64
	state           model.TimerState
	hasState        bool
}

func NewReplica() *Replica {
	return &Replica{lastAcceptedSeq: -1}
}

// Apply feeds one transport envelope into the replica and reports whether
// it changed the local state.
//
// State snapshots are accepted iff their seq is strictly greater than the
// last accepted one; anything else is discarded silently (duplicates and
// reordered delivery are normal, not errors). Blackout envelopes are
// absolute signals: they bypass the sequence check and are applied
// unconditionally, which is safe because they are idempotent sets.
func (r *Replica) Apply(env model.Envelope) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch env.Type {
	case model.EnvelopeState:
		if env.State == nil {
			return false
		}
		if env.State.Seq <= r.lastAcceptedSeq {
			return false
		}
		s := *env.State
		s.Normalize()
		r.state = s
		r.lastAcceptedSeq = s.Seq
		r.hasState = true
		return true

	case model.EnvelopeBlackout:
		if env.Blackout == nil || r.state.Blackout == *env.Blackout {
			return false
		}
		r.state.Blackout = *env.Blackout
		return true

	default:
		return false
	}
}

// Snapshot returns the current replica state and whether a canonical
// snapshot has been accepted yet.
func (r *Replica) Snapshot() (model.TimerState, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state, r.hasState
}

// LastAcceptedSeq returns the acceptance watermark (-1 before the first
// snapshot).
func (r *Replica) LastAcceptedSeq() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastAcceptedSeq
}
