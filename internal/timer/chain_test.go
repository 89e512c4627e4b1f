package timer

import (
	"testing"
	"time"

	"stagetimer-cli/internal/model"
)

func twoLinked() model.Profile {
	return model.Profile{
		Name: "show",
		Presets: []model.Preset{
			{
				ID:           "t-a",
				Name:         "A",
				Config:       model.PresetConfig{Mode: model.ModeCountdown, DurationMs: 3000, Format: model.FormatMS},
				LinkedToNext: true,
			},
			{
				ID:     "t-b",
				Name:   "B",
				Config: model.PresetConfig{Mode: model.ModeCountdown, DurationMs: 5000, Format: model.FormatMS},
			},
		},
	}
}

// immediate replaces the grace timer so tests stay deterministic.
func immediate(c *Controller) *[]func() {
	pending := &[]func(){}
	c.mu.Lock()
	c.schedule = func(d time.Duration, f func()) { *pending = append(*pending, f) }
	c.mu.Unlock()
	return pending
}

func TestSetProfileActivatesFirstPreset(t *testing.T) {
	c := New()
	c.SetProfile(twoLinked(), 0)
	s := c.Snapshot()
	if s.TimerName != "A" || s.TimerIndex != 0 || s.DurationMs != 3000 {
		t.Fatalf("expected preset A active, got %+v", s)
	}
	if s.ProfileName != "show" {
		t.Fatalf("expected profile identity in state, got %+v", s)
	}
}

func TestChainAutoAdvance(t *testing.T) {
	c := New()
	pending := immediate(c)
	c.SetProfile(twoLinked(), 0)

	c.Start(at(1000))
	c.Advance(at(4000))

	s := c.Snapshot()
	if !s.Ended {
		t.Fatalf("expected A ended, got %+v", s)
	}
	if s.Overtime {
		t.Fatalf("linked timer must not enter overtime, got %+v", s)
	}
	if len(*pending) != 1 {
		t.Fatalf("expected one scheduled advance, got %d", len(*pending))
	}

	(*pending)[0]()
	s = c.Snapshot()
	if s.TimerName != "B" || s.TimerIndex != 1 || s.DurationMs != 5000 {
		t.Fatalf("expected B active after advance, got %+v", s)
	}
	if !s.IsRunning || s.StartedAt == 0 {
		t.Fatalf("expected B running with fresh startedAt, got %+v", s)
	}
	if s.Ended || s.Overtime || s.PausedAccMs != 0 {
		t.Fatalf("expected B with clean run state, got %+v", s)
	}
}

func TestChainAdvanceFiresOnce(t *testing.T) {
	c := New()
	pending := immediate(c)
	c.SetProfile(twoLinked(), 0)

	c.Start(at(1000))
	c.Advance(at(4000))
	c.Advance(at(4016))
	c.Advance(at(4033))
	if len(*pending) != 1 {
		t.Fatalf("expected exactly one scheduled advance, got %d", len(*pending))
	}
}

func TestStaleAdvanceIsNoop(t *testing.T) {
	c := New()
	pending := immediate(c)
	c.SetProfile(twoLinked(), 0)

	c.Start(at(1000))
	c.Advance(at(4000))

	// The operator resets before the grace delay fires: the scheduled
	// advance must not clobber the reset state.
	c.Reset()
	before := c.Snapshot()
	(*pending)[0]()
	after := c.Snapshot()
	if before != after {
		t.Fatalf("stale advance clobbered state: %+v -> %+v", before, after)
	}
	if after.TimerName != "A" {
		t.Fatalf("expected A still active after reset, got %+v", after)
	}
}

func TestUnlinkedTimerEntersOvertimeInsteadOfAdvancing(t *testing.T) {
	c := New()
	pending := immediate(c)
	p := twoLinked()
	p.Presets[0].LinkedToNext = false
	c.SetProfile(p, 0)

	c.Start(at(1000))
	c.Advance(at(4000))

	s := c.Snapshot()
	if !s.Overtime || s.OvertimeStartedAt != 4000 {
		t.Fatalf("expected overtime, got %+v", s)
	}
	if len(*pending) != 0 {
		t.Fatalf("no advance may be scheduled without a link, got %d", len(*pending))
	}
}

func TestLastPresetInChainEntersOvertime(t *testing.T) {
	c := New()
	pending := immediate(c)
	c.SetProfile(twoLinked(), 0)
	c.Select(1) // B is last; linkedToNext irrelevant at the tail

	c.Start(at(1000))
	c.Advance(at(6000))
	if s := c.Snapshot(); !s.Overtime {
		t.Fatalf("tail preset must enter overtime, got %+v", s)
	}
	if len(*pending) != 0 {
		t.Fatalf("tail preset must not schedule an advance")
	}
}

func TestSelectByName(t *testing.T) {
	c := New()
	c.SetProfile(twoLinked(), 0)
	c.SelectByName("b")
	if s := c.Snapshot(); s.TimerName != "B" || s.TimerIndex != 1 {
		t.Fatalf("expected case-insensitive select of B, got %+v", s)
	}

	before := c.Snapshot()
	c.SelectByName("nope")
	if got := c.Snapshot(); got != before {
		t.Fatalf("unknown name must be a no-op, got %+v", got)
	}
}

func TestSelectOutOfRangeIsNoop(t *testing.T) {
	c := New()
	c.SetProfile(twoLinked(), 0)
	before := c.Snapshot()
	c.Select(7)
	c.Select(-1)
	if got := c.Snapshot(); got != before {
		t.Fatalf("out-of-range select mutated state: %+v", got)
	}
}

func TestSelectionKeepsBlackoutAndMessage(t *testing.T) {
	c := New()
	c.SetProfile(twoLinked(), 0)
	c.SetBlackout(true)
	c.ShowMessage("stand by")
	c.Select(1)
	s := c.Snapshot()
	if !s.Blackout || !s.Message.Visible {
		t.Fatalf("blackout/message must survive selection, got %+v", s)
	}
}
