package timer

import (
	"strings"
	"time"

	"stagetimer-cli/internal/display"
	"stagetimer-cli/internal/model"
)

// SetProfile loads a profile into the controller and activates its
// current preset (or the first one). profileIndex is the profile's
// position in the store listing, reported on the feedback namespace.
func (c *Controller) SetProfile(p model.Profile, profileIndex int) {
	c.mu.Lock()
	c.profile = p
	c.state.ProfileName = p.Name
	c.state.ProfileIndex = profileIndex
	idx := 0
	if i := p.FindPreset(p.CurrentPresetID); i >= 0 {
		idx = i
	}
	c.mu.Unlock()
	c.Select(idx)
}

// Select activates the preset at index: its configuration is loaded into
// the active-timer slot and the run state is reset. Out-of-range indexes
// are no-ops. Blackout and the operator message survive selection; they
// are output-surface state, not timer state.
func (c *Controller) Select(index int) {
	c.mu.Lock()
	if index < 0 || index >= len(c.profile.Presets) {
		c.emit(model.TimerState{}, false)
		return
	}
	c.loadPresetLocked(index)
	c.emit(c.changed(), true)
}

// SelectByName activates the first preset whose name matches
// (case-insensitive).
func (c *Controller) SelectByName(name string) {
	c.mu.Lock()
	for i := range c.profile.Presets {
		if strings.EqualFold(c.profile.Presets[i].Name, name) {
			c.loadPresetLocked(i)
			c.emit(c.changed(), true)
			return
		}
	}
	c.emit(model.TimerState{}, false)
}

func (c *Controller) loadPresetLocked(index int) {
	p := c.profile.Presets[index]
	c.activeIndex = index
	c.profile.CurrentPresetID = p.ID

	c.state.Mode = p.Config.Mode
	c.state.DurationMs = p.Config.DurationMs
	c.state.Format = p.Config.Format
	c.state.Style = p.Config.Style
	c.state.WarnYellowSec = p.Config.WarnYellowSec
	c.state.WarnOrangeSec = p.Config.WarnOrangeSec
	c.state.TimerName = p.Name
	c.state.TimerIndex = index

	c.state.IsRunning = false
	c.state.StartedAt = 0
	c.state.PausedAccMs = 0
	c.state.Ended = false
	c.state.Overtime = false
	c.state.OvertimeStartedAt = 0
	c.state.Normalize()
	c.epoch++
}

// Advance is the authoritative surface's per-frame hook. It self-clears a
// finished flash and fires the end-of-countdown transition exactly once:
// a linked successor schedules an automatic switch after the grace delay,
// otherwise the timer enters overtime.
func (c *Controller) Advance(now time.Time) {
	nowMs := now.UnixMilli()

	c.mu.Lock()
	if c.state.Flash.Active && display.FlashDone(nowMs, c.state.Flash.StartedAt) {
		c.state.Flash = model.Flash{}
		c.emit(c.changed(), true)
		c.mu.Lock()
	}

	if !c.endedNowLocked(nowMs) {
		c.emit(model.TimerState{}, false)
		return
	}

	// Guard against repeated firing across frames.
	c.state.Ended = true

	if c.hasLinkedSuccessorLocked() {
		epoch := c.epoch
		next := c.activeIndex + 1
		c.schedule(c.grace, func() { c.advanceChain(epoch, next) })
	} else {
		c.state.Overtime = true
		c.state.OvertimeStartedAt = nowMs
	}
	c.emit(c.changed(), true)
}

func (c *Controller) endedNowLocked(nowMs int64) bool {
	if !c.state.IsRunning || c.state.Ended || !c.state.Mode.IsCountdown() {
		return false
	}
	_, remaining := display.Elapsed(c.state, nowMs)
	return remaining == 0
}

func (c *Controller) hasLinkedSuccessorLocked() bool {
	i := c.activeIndex
	return i >= 0 && i < len(c.profile.Presets)-1 && c.profile.Presets[i].LinkedToNext
}

// advanceChain is the deferred half of the chain transition. The epoch
// check makes a stale advance a no-op: if a reset, selection, or config
// change landed after it was scheduled, the state it would clobber no
// longer exists.
func (c *Controller) advanceChain(epoch int64, next int) {
	c.mu.Lock()
	if epoch != c.epoch || next < 0 || next >= len(c.profile.Presets) {
		c.emit(model.TimerState{}, false)
		return
	}
	c.loadPresetLocked(next)
	c.mu.Unlock()
	c.Start(time.Now())
}
