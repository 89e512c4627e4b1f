package display

import (
	"testing"

	"stagetimer-cli/internal/model"
)

func chain(durationsMs []int64, linked []bool) []model.Preset {
	ps := make([]model.Preset, len(durationsMs))
	for i, d := range durationsMs {
		ps[i] = model.Preset{
			ID:           string(rune('a' + i)),
			Config:       model.PresetConfig{Mode: model.ModeCountdown, DurationMs: d},
			LinkedToNext: linked[i],
		}
	}
	return ps
}

func TestChainBounds(t *testing.T) {
	// a -> b -> c, d unlinked
	ps := chain([]int64{1000, 2000, 3000, 4000}, []bool{true, true, false, false})
	cases := []struct {
		active, wantFirst, wantLast int
	}{
		{0, 0, 2},
		{1, 0, 2},
		{2, 0, 2},
		{3, 3, 3},
	}
	for _, tc := range cases {
		first, last := ChainBounds(ps, tc.active)
		if first != tc.wantFirst || last != tc.wantLast {
			t.Fatalf("ChainBounds(active=%d): expected [%d,%d], got [%d,%d]",
				tc.active, tc.wantFirst, tc.wantLast, first, last)
		}
	}
	if first, last := ChainBounds(ps, 99); last >= first {
		t.Fatalf("out-of-range active must yield an empty chain, got [%d,%d]", first, last)
	}
}

func TestChainProgress(t *testing.T) {
	// Chain total 10s: 3s + 5s + 2s.
	ps := chain([]int64{3000, 5000, 2000}, []bool{true, true, false})

	// Second preset running, 2s in: (3000 + 2000) / 10000.
	s := model.TimerState{Mode: model.ModeCountdown, DurationMs: 5000, StartedAt: 1000, IsRunning: true}
	if got, want := ChainProgress(ps, 1, s, 3000), 0.5; got != want {
		t.Fatalf("ChainProgress: expected %v, got %v", want, got)
	}

	// Elapsed past the active duration clamps to it.
	if got := ChainProgress(ps, 1, s, 99000); got != 0.8 {
		t.Fatalf("expected clamped progress 0.8, got %v", got)
	}

	// Never started at the head of the chain.
	idle := model.TimerState{Mode: model.ModeCountdown, DurationMs: 3000}
	if got := ChainProgress(ps, 0, idle, 5000); got != 0 {
		t.Fatalf("expected zero progress before start, got %v", got)
	}
}

func TestChainProgress_ZeroTotal(t *testing.T) {
	ps := chain([]int64{0, 0}, []bool{true, false})
	s := model.TimerState{Mode: model.ModeCountdown}
	if got := ChainProgress(ps, 0, s, 1000); got != 0 {
		t.Fatalf("zero-duration chain must report 0, got %v", got)
	}
}
