package osc

import (
	"time"

	goosc "github.com/hypebeast/go-osc/osc"

	"stagetimer-cli/internal/display"
	"stagetimer-cli/internal/model"
)

const feedbackPrefix = prefix + "/feedback"

// Feedback pushes the display-relevant subset of the canonical state to
// an external consumer (button panel, lighting desk). Flags go out as
// int32 0/1, counts as whole seconds, and progress as float32 0..1,
// which is what external panel tables bind to.
type Feedback struct {
	client *goosc.Client
}

func NewFeedback(host string, port int) *Feedback {
	return &Feedback{client: goosc.NewClient(host, port)}
}

// Send reports one state observation. Send failures are returned for a
// single log line; feedback is best-effort.
func (f *Feedback) Send(s model.TimerState, presets []model.Preset, active int, now time.Time) error {
	for _, msg := range FeedbackMessages(s, presets, active, now) {
		if err := f.client.Send(msg); err != nil {
			return err
		}
	}
	return nil
}

// FeedbackMessages builds the outbound feedback namespace for one state
// observation. Split out from Send so the payload shapes are testable
// without a socket.
func FeedbackMessages(s model.TimerState, presets []model.Preset, active int, now time.Time) []*goosc.Message {
	s.Normalize()
	d := display.Compute(s, now)
	progress := display.ChainProgress(presets, active, s, now.UnixMilli())

	msg := func(suffix string, args ...interface{}) *goosc.Message {
		return goosc.NewMessage(feedbackPrefix+suffix, args...)
	}
	// Countdown remaining rounds up to whole seconds, same as the
	// rendered clock, so panels never read one second behind the display.
	remaining := d.RemainingMs / 1000
	if s.Mode.IsCountdown() {
		remaining = (d.RemainingMs + 999) / 1000
	}
	return []*goosc.Message{
		msg("/running", flag(s.IsRunning)),
		msg("/time", d.Text),
		msg("/remaining", int32(remaining)),
		msg("/elapsed", int32(d.ElapsedMs/1000)),
		msg("/progress", float32(progress)),
		msg("/overtime", flag(s.Overtime)),
		msg("/ended", flag(s.Ended)),
		msg("/blackout", flag(s.Blackout)),
		msg("/timer/name", s.TimerName),
		msg("/timer/index", int32(s.TimerIndex)),
		msg("/profile/name", s.ProfileName),
		msg("/profile/index", int32(s.ProfileIndex)),
	}
}

func flag(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
