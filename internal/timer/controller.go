// Package timer owns the canonical TimerState on the authoritative
// surface. All mutations funnel through a single Controller so that the
// sequence number, the chain controller, and the broadcast hook observe
// every change exactly once.
package timer

import (
	"sync"
	"time"

	"stagetimer-cli/internal/display"
	"stagetimer-cli/internal/model"
)

// DefaultAdvanceGrace is the delay between a chained countdown ending and
// the successor starting, letting the "ended" visual register.
const DefaultAdvanceGrace = 1 * time.Second

// Controller is the single owner of the canonical state. Commands arrive
// from websocket and OSC goroutines while the frame tick arrives from the
// TUI, so every entry point takes the mutex.
type Controller struct {
	mu          sync.Mutex
	state       model.TimerState
	profile     model.Profile
	activeIndex int

	// epoch guards scheduled chain advances: any mutation that changes
	// what "the active timer" means bumps it, and a pending advance
	// whose epoch no longer matches is a no-op.
	epoch int64

	grace    time.Duration
	schedule func(d time.Duration, f func()) // test seam; defaults to time.AfterFunc

	notify func(model.TimerState)
}

// New returns a controller with an empty profile and default config.
func New() *Controller {
	c := &Controller{
		grace:    DefaultAdvanceGrace,
		schedule: func(d time.Duration, f func()) { time.AfterFunc(d, f) },
	}
	c.state = model.TimerState{
		Mode:   model.ModeCountdown,
		Format: model.FormatHMS,
	}
	return c
}

// OnChange registers the broadcast hook, invoked with a snapshot after
// every accepted mutation (never under the lock).
func (c *Controller) OnChange(f func(model.TimerState)) {
	c.mu.Lock()
	c.notify = f
	c.mu.Unlock()
}

// Snapshot returns a copy of the canonical state.
func (c *Controller) Snapshot() model.TimerState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// ActivePresets returns the profile's presets and the active index, for
// progress aggregation.
func (c *Controller) ActivePresets() ([]model.Preset, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ps := make([]model.Preset, len(c.profile.Presets))
	copy(ps, c.profile.Presets)
	return ps, c.activeIndex
}

func (c *Controller) changed() model.TimerState {
	c.state.Seq++
	return c.state
}

func (c *Controller) emit(snap model.TimerState, ok bool) {
	f := c.notify
	c.mu.Unlock()
	if ok && f != nil {
		f(snap)
	}
}

// Start begins a fresh run: any banked pause time and any previous
// ended/overtime outcome is discarded.
func (c *Controller) Start(now time.Time) {
	c.mu.Lock()
	c.state.IsRunning = true
	c.state.StartedAt = now.UnixMilli()
	c.state.PausedAccMs = 0
	c.state.Ended = false
	c.state.Overtime = false
	c.state.OvertimeStartedAt = 0
	c.epoch++
	c.emit(c.changed(), true)
}

// Pause banks the running time. A pause while not running is a no-op, not
// an error: duplicate keyboard or remote delivery must be tolerated.
func (c *Controller) Pause(now time.Time) {
	c.mu.Lock()
	if !c.state.IsRunning || c.state.StartedAt == 0 {
		c.emit(model.TimerState{}, false)
		return
	}
	c.state.PausedAccMs += now.UnixMilli() - c.state.StartedAt
	if c.state.PausedAccMs < 0 {
		c.state.PausedAccMs = 0
	}
	c.state.IsRunning = false
	c.state.StartedAt = 0
	c.emit(c.changed(), true)
}

// Resume continues from banked pause time; a resume with nothing banked
// is a no-op.
func (c *Controller) Resume(now time.Time) {
	c.mu.Lock()
	if c.state.IsRunning || c.state.PausedAccMs == 0 {
		c.emit(model.TimerState{}, false)
		return
	}
	c.state.IsRunning = true
	c.state.StartedAt = now.UnixMilli()
	c.emit(c.changed(), true)
}

// Reset returns the timer to never-started and invalidates any pending
// chain advance.
func (c *Controller) Reset() {
	c.mu.Lock()
	c.state.IsRunning = false
	c.state.StartedAt = 0
	c.state.PausedAccMs = 0
	c.state.Ended = false
	c.state.Overtime = false
	c.state.OvertimeStartedAt = 0
	c.epoch++
	c.emit(c.changed(), true)
}

// Toggle pauses a running timer, resumes a paused one, and starts a
// never-started one.
func (c *Controller) Toggle(now time.Time) {
	c.mu.Lock()
	running := c.state.IsRunning
	paused := !running && c.state.PausedAccMs > 0
	c.mu.Unlock()
	switch {
	case running:
		c.Pause(now)
	case paused:
		c.Resume(now)
	default:
		c.Start(now)
	}
}

// SetBlackout applies the absolute blackout signal. Idempotent: setting
// the current value changes nothing and broadcasts nothing.
func (c *Controller) SetBlackout(on bool) {
	c.mu.Lock()
	if c.state.Blackout == on {
		c.emit(model.TimerState{}, false)
		return
	}
	c.state.Blackout = on
	c.emit(c.changed(), true)
}

// ToggleBlackout flips the blackout signal.
func (c *Controller) ToggleBlackout() {
	c.mu.Lock()
	c.state.Blackout = !c.state.Blackout
	c.emit(c.changed(), true)
}

// TriggerFlash starts the one-shot pulse. Single-flight: while a flash is
// in progress further triggers are no-ops.
func (c *Controller) TriggerFlash(now time.Time) {
	c.mu.Lock()
	nowMs := now.UnixMilli()
	if c.state.Flash.Active && !display.FlashDone(nowMs, c.state.Flash.StartedAt) {
		c.emit(model.TimerState{}, false)
		return
	}
	c.state.Flash = model.Flash{Active: true, StartedAt: nowMs}
	c.emit(c.changed(), true)
}

// SetConfig applies a partial configuration update to the active timer.
func (c *Controller) SetConfig(p model.ConfigPatch) {
	c.mu.Lock()
	if p.Mode != nil {
		c.state.Mode = *p.Mode
	}
	if p.DurationMs != nil {
		c.state.DurationMs = *p.DurationMs
	}
	if p.Format != nil {
		c.state.Format = *p.Format
	}
	if p.Style != nil {
		c.state.Style = *p.Style
	}
	if p.WarnYellowSec != nil {
		c.state.WarnYellowSec = *p.WarnYellowSec
	}
	if p.WarnOrangeSec != nil {
		c.state.WarnOrangeSec = *p.WarnOrangeSec
	}
	c.state.Normalize()
	c.epoch++
	c.emit(c.changed(), true)
}

// SetDuration replaces the active duration, clamping negatives to zero.
func (c *Controller) SetDuration(seconds int64) {
	c.mu.Lock()
	if seconds < 0 {
		seconds = 0
	}
	c.state.DurationMs = seconds * 1000
	c.state.Normalize()
	c.epoch++
	c.emit(c.changed(), true)
}

// AdjustDuration adds deltaSeconds to the active duration, clamping at
// zero.
func (c *Controller) AdjustDuration(deltaSeconds int64) {
	c.mu.Lock()
	c.state.DurationMs += deltaSeconds * 1000
	if c.state.DurationMs < 0 {
		c.state.DurationMs = 0
	}
	c.epoch++
	c.emit(c.changed(), true)
}

// ShowMessage sets the operator message shown on the output surface.
func (c *Controller) ShowMessage(text string) {
	c.mu.Lock()
	c.state.Message = model.Message{Text: text, Visible: true}
	c.emit(c.changed(), true)
}

// HideMessage hides the operator message, keeping its text for re-show.
func (c *Controller) HideMessage() {
	c.mu.Lock()
	if !c.state.Message.Visible {
		c.emit(model.TimerState{}, false)
		return
	}
	c.state.Message.Visible = false
	c.emit(c.changed(), true)
}

// Apply dispatches a decoded remote command. The switch is exhaustive
// over the command vocabulary; unknown names were already rejected by the
// codec.
func (c *Controller) Apply(cmd model.Command, now time.Time) {
	switch cmd.Name {
	case model.CmdStart:
		c.Start(now)
	case model.CmdPause:
		c.Pause(now)
	case model.CmdResume:
		c.Resume(now)
	case model.CmdReset:
		c.Reset()
	case model.CmdToggle:
		c.Toggle(now)
	case model.CmdSetBlackout:
		if cmd.On != nil {
			c.SetBlackout(*cmd.On)
		} else {
			c.ToggleBlackout()
		}
	case model.CmdTriggerFlash:
		c.TriggerFlash(now)
	case model.CmdSetConfig:
		if cmd.Config != nil {
			c.SetConfig(*cmd.Config)
		}
	case model.CmdSelectTimer:
		if cmd.Index != nil {
			c.Select(*cmd.Index)
		} else if cmd.Timer != "" {
			c.SelectByName(cmd.Timer)
		}
	case model.CmdSetDuration:
		if cmd.Seconds != nil {
			c.SetDuration(*cmd.Seconds)
		}
	case model.CmdAdjustDuration:
		if cmd.DeltaSeconds != nil {
			c.AdjustDuration(*cmd.DeltaSeconds)
		}
	case model.CmdShowMessage:
		c.ShowMessage(cmd.Text)
	case model.CmdHideMessage:
		c.HideMessage()
	}
}
