// Package display derives what a surface draws from a canonical timer
// state and a timestamp. Everything here is pure: identical inputs yield
// identical outputs on every surface, which is the parity guarantee the
// whole synchronization design exists to uphold.
package display

import (
	"fmt"
	"time"

	"stagetimer-cli/internal/model"
)

// Display is the fully-derived render input for one frame.
type Display struct {
	Visible     bool
	Text        string
	ClockText   string // secondary line for the countdown-clock/countup-clock modes
	ElapsedMs   int64
	RemainingMs int64
	Overtime    bool
}

// Compute derives the display for state s at instant now. No I/O, no
// side effects; callable from either surface.
func Compute(s model.TimerState, now time.Time) Display {
	s.Normalize()
	nowMs := now.UnixMilli()

	if s.Mode == model.ModeHidden {
		return Display{}
	}
	if s.Mode == model.ModeClock {
		return Display{Visible: true, Text: Clock(now)}
	}

	var d Display
	d.Visible = true
	d.ElapsedMs, d.RemainingMs = Elapsed(s, nowMs)

	switch {
	case s.Overtime && s.OvertimeStartedAt != 0:
		// The overrun display takes precedence over the normal format.
		d.Overtime = true
		d.Text = OvertimeText(nowMs - s.OvertimeStartedAt)
	case s.Mode.IsCountdown():
		d.Text = FormatClock(d.RemainingMs, s.Format, true)
	default:
		d.Text = FormatClock(d.ElapsedMs, s.Format, false)
	}

	if s.Mode.ShowsClock() {
		d.ClockText = Clock(now)
	}
	return d
}

// Elapsed derives (elapsedMs, remainingMs) from the run-state anchors.
// Remaining never goes below zero; overrun is carried by the overtime
// fields instead.
func Elapsed(s model.TimerState, nowMs int64) (elapsedMs, remainingMs int64) {
	switch {
	case s.IsRunning && s.StartedAt != 0:
		running := nowMs - s.StartedAt + s.PausedAccMs
		if running < 0 {
			running = 0
		}
		return running, clampMs(s.DurationMs - running)
	case !s.IsRunning && s.PausedAccMs > 0:
		return s.PausedAccMs, clampMs(s.DurationMs - s.PausedAccMs)
	default:
		// Never started: show the full duration.
		return 0, s.DurationMs
	}
}

func clampMs(ms int64) int64 {
	if ms < 0 {
		return 0
	}
	return ms
}

// FormatClock renders a millisecond count per the display format. For
// countdowns roundUp must be true: 9999ms renders as the next whole unit
// up, so the display does not drop a second one tick early.
func FormatClock(ms int64, f model.Format, roundUp bool) string {
	if ms < 0 {
		ms = 0
	}
	var total int64
	if roundUp {
		total = (ms + 999) / 1000
	} else {
		total = ms / 1000
	}
	switch f {
	case model.FormatS:
		return fmt.Sprintf("%d", total)
	case model.FormatMS:
		return fmt.Sprintf("%02d:%02d", total/60, total%60)
	default:
		return fmt.Sprintf("%d:%02d:%02d", total/3600, (total%3600)/60, total%60)
	}
}

// OvertimeText renders the "+M:SS" overrun display.
func OvertimeText(overMs int64) string {
	if overMs < 0 {
		overMs = 0
	}
	total := overMs / 1000
	return fmt.Sprintf("+%d:%02d", total/60, total%60)
}

// Clock formats the wall-clock time for the time-of-day modes.
func Clock(now time.Time) string {
	return now.Format("15:04:05")
}

// WarnLevel classifies the remaining time against the configured
// thresholds. Purely presentational.
type WarnLevel int

const (
	WarnNone WarnLevel = iota
	WarnYellow
	WarnOrange
)

// Warn returns the recoloring level for remainingMs. Orange wins when both
// thresholds are crossed. Count-up and clock modes never warn.
func Warn(s model.TimerState, remainingMs int64) WarnLevel {
	if !s.Mode.IsCountdown() {
		return WarnNone
	}
	sec := (remainingMs + 999) / 1000
	if s.WarnOrangeSec > 0 && sec <= int64(s.WarnOrangeSec) {
		return WarnOrange
	}
	if s.WarnYellowSec > 0 && sec <= int64(s.WarnYellowSec) {
		return WarnYellow
	}
	return WarnNone
}

// Flash timing. The pulse is a fixed number of on/off cycles anchored to
// the flash start timestamp; phase is computed from now-startedAt, never
// from a per-frame counter, so independent render loops stay in lockstep.
const (
	FlashCycleMs = 400
	FlashCycles  = 3
	FlashTotalMs = FlashCycleMs * FlashCycles
)

// FlashOn reports whether the pulse is in its bright half-cycle at nowMs.
func FlashOn(nowMs, startedAt int64) bool {
	if startedAt == 0 {
		return false
	}
	dt := nowMs - startedAt
	if dt < 0 || dt >= FlashTotalMs {
		return false
	}
	return (dt/(FlashCycleMs/2))%2 == 0
}

// FlashDone reports whether the pulse has run its full duration.
func FlashDone(nowMs, startedAt int64) bool {
	return startedAt == 0 || nowMs-startedAt >= FlashTotalMs
}
