package display

import (
	"testing"
	"time"

	"stagetimer-cli/internal/model"
)

func at(ms int64) time.Time { return time.UnixMilli(ms).UTC() }

func TestCompute_Deterministic(t *testing.T) {
	s := model.TimerState{
		Mode:       model.ModeCountdown,
		DurationMs: 300000,
		Format:     model.FormatMS,
		StartedAt:  1000,
		IsRunning:  true,
	}
	now := at(61000)
	first := Compute(s, now)
	for i := 0; i < 10; i++ {
		if got := Compute(s, now); got != first {
			t.Fatalf("Compute not deterministic: %+v vs %+v", got, first)
		}
	}
}

func TestCompute_Hidden(t *testing.T) {
	d := Compute(model.TimerState{Mode: model.ModeHidden, DurationMs: 5000}, at(1000))
	if d.Visible || d.Text != "" || d.ElapsedMs != 0 || d.RemainingMs != 0 {
		t.Fatalf("hidden mode must blank everything, got %+v", d)
	}
}

func TestCompute_ClockMode(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	d := Compute(model.TimerState{Mode: model.ModeClock}, now)
	if !d.Visible || d.Text != "09:26:53" {
		t.Fatalf("expected wall-clock text, got %+v", d)
	}
}

func TestCompute_NeverStartedShowsFullDuration(t *testing.T) {
	s := model.TimerState{Mode: model.ModeCountdown, DurationMs: 300000, Format: model.FormatMS}
	d := Compute(s, at(987654))
	if d.ElapsedMs != 0 || d.RemainingMs != 300000 {
		t.Fatalf("expected elapsed=0 remaining=300000, got %+v", d)
	}
	if d.Text != "05:00" {
		t.Fatalf("expected 05:00, got %q", d.Text)
	}
}

func TestCompute_Paused(t *testing.T) {
	s := model.TimerState{
		Mode:        model.ModeCountdown,
		DurationMs:  60000,
		Format:      model.FormatMS,
		PausedAccMs: 25000,
	}
	d := Compute(s, at(999999999))
	if d.ElapsedMs != 25000 || d.RemainingMs != 35000 {
		t.Fatalf("paused display wrong: %+v", d)
	}
}

func TestCompute_Running(t *testing.T) {
	s := model.TimerState{
		Mode:        model.ModeCountdown,
		DurationMs:  60000,
		Format:      model.FormatMS,
		StartedAt:   10000,
		PausedAccMs: 5000,
		IsRunning:   true,
	}
	// runningTime = now - startedAt + pausedAcc = 20000 + 5000
	d := Compute(s, at(30000))
	if d.ElapsedMs != 25000 || d.RemainingMs != 35000 {
		t.Fatalf("running display wrong: %+v", d)
	}
}

func TestCompute_CountdownRoundsUp(t *testing.T) {
	s := model.TimerState{
		Mode:       model.ModeCountdown,
		DurationMs: 5000,
		Format:     model.FormatS,
		StartedAt:  0,
		IsRunning:  false,
	}
	s.StartedAt = 1 // started at t=1ms
	s.IsRunning = true

	// 9999ms remaining style check: 1ms remaining still shows 1, not 0.
	d := Compute(s, at(5000)) // remaining = 1ms
	if d.Text != "1" {
		t.Fatalf("expected ceiling display 1 at 1ms remaining, got %q", d.Text)
	}
	d = Compute(s, at(5001)) // remaining = 0
	if d.Text != "0" || d.RemainingMs != 0 {
		t.Fatalf("expected 0 at completion, got %+v", d)
	}
}

func TestCompute_CountupUsesElapsedFloor(t *testing.T) {
	s := model.TimerState{
		Mode:      model.ModeCountup,
		Format:    model.FormatMS,
		StartedAt: 1000,
		IsRunning: true,
	}
	d := Compute(s, at(90999)) // 89.999s elapsed
	if d.Text != "01:29" {
		t.Fatalf("expected floor display 01:29, got %q", d.Text)
	}
}

func TestCompute_OvertimeOverridesFormat(t *testing.T) {
	s := model.TimerState{
		Mode:              model.ModeCountdown,
		DurationMs:        2000,
		Format:            model.FormatHMS,
		StartedAt:         1,
		IsRunning:         true,
		Overtime:          true,
		OvertimeStartedAt: 2001,
	}
	d := Compute(s, at(2001+61000))
	if !d.Overtime || d.Text != "+1:01" {
		t.Fatalf("expected +1:01 overtime display, got %+v", d)
	}
}

func TestCompute_ClockSecondLine(t *testing.T) {
	now := time.Date(2026, 3, 14, 20, 0, 0, 0, time.UTC)
	s := model.TimerState{Mode: model.ModeCountdownClock, DurationMs: 60000, Format: model.FormatMS}
	d := Compute(s, now)
	if d.ClockText != "20:00:00" {
		t.Fatalf("expected secondary clock line, got %+v", d)
	}
}

func TestFormatClock(t *testing.T) {
	cases := []struct {
		ms      int64
		f       model.Format
		roundUp bool
		want    string
	}{
		{9999, model.FormatS, true, "10"},
		{9999, model.FormatS, false, "9"},
		{0, model.FormatMS, true, "00:00"},
		{3599000, model.FormatMS, false, "59:59"},
		{3600000, model.FormatHMS, false, "1:00:00"},
		{-5, model.FormatHMS, true, "0:00:00"},
	}
	for _, tc := range cases {
		if got := FormatClock(tc.ms, tc.f, tc.roundUp); got != tc.want {
			t.Fatalf("FormatClock(%d, %q, %v): expected %q, got %q", tc.ms, tc.f, tc.roundUp, tc.want, got)
		}
	}
}

func TestWarn(t *testing.T) {
	s := model.TimerState{Mode: model.ModeCountdown, WarnYellowSec: 60, WarnOrangeSec: 15}
	cases := []struct {
		remainingMs int64
		want        WarnLevel
	}{
		{120000, WarnNone},
		{60000, WarnYellow},
		{15000, WarnOrange},
		{1, WarnOrange},
	}
	for _, tc := range cases {
		if got := Warn(s, tc.remainingMs); got != tc.want {
			t.Fatalf("Warn(%dms): expected %v, got %v", tc.remainingMs, tc.want, got)
		}
	}

	countup := model.TimerState{Mode: model.ModeCountup, WarnYellowSec: 60}
	if Warn(countup, 1000) != WarnNone {
		t.Fatalf("count-up must never warn")
	}
}

func TestFlashPhase(t *testing.T) {
	const start = 10000
	if FlashOn(start-1, start) {
		t.Fatalf("flash must be off before its anchor")
	}
	if !FlashOn(start, start) {
		t.Fatalf("flash must start bright")
	}
	if FlashOn(start+FlashCycleMs/2, start) {
		t.Fatalf("flash must be dark in its second half-cycle")
	}
	if FlashOn(start+FlashTotalMs, start) {
		t.Fatalf("flash must be off after its total duration")
	}
	if FlashDone(start+FlashTotalMs-1, start) {
		t.Fatalf("flash must not self-clear early")
	}
	if !FlashDone(start+FlashTotalMs, start) {
		t.Fatalf("flash must self-clear after %dms", FlashTotalMs)
	}
}
