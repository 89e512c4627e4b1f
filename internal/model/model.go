package model

// Mode selects which display-computation branch applies.
type Mode string

const (
	ModeCountdown      Mode = "countdown"
	ModeCountup        Mode = "countup"
	ModeClock          Mode = "clock"
	ModeCountdownClock Mode = "countdown-clock"
	ModeCountupClock   Mode = "countup-clock"
	ModeHidden         Mode = "hidden"
)

func (m Mode) IsCountdown() bool { return m == ModeCountdown || m == ModeCountdownClock }
func (m Mode) IsCountup() bool   { return m == ModeCountup || m == ModeCountupClock }
func (m Mode) ShowsClock() bool  { return m == ModeCountdownClock || m == ModeCountupClock }

// Format is purely presentational.
type Format string

const (
	FormatHMS Format = "hms" // H:MM:SS
	FormatMS  Format = "ms"  // MM:SS
	FormatS   Format = "s"   // SS
)

// Style holds inert presentation parameters threaded through the state
// object for the output surface. None of them affect timing.
type Style struct {
	Color      string `json:"color,omitempty"`
	Stroke     string `json:"stroke,omitempty"`
	Shadow     string `json:"shadow,omitempty"`
	Background string `json:"background,omitempty"`
}

// Flash is a one-shot, timestamp-anchored pulse. Both surfaces compute the
// same animation phase from now-StartedAt, so the pulse stays in lockstep
// even when the two render loops tick at different real moments.
type Flash struct {
	Active    bool  `json:"active"`
	StartedAt int64 `json:"startedAt,omitempty"` // epoch ms
}

// Message is the operator message shown on the output surface. It lives in
// the canonical state so a replica can render it from a single snapshot.
type Message struct {
	Text    string `json:"text,omitempty"`
	Visible bool   `json:"visible"`
}

// TimerState is the canonical timer state. The control surface owns the
// single authoritative instance; every other surface holds a read-only
// replica updated via accepted broadcasts.
//
// Elapsed/remaining time is never stored here. It is always derived on
// demand from (now, StartedAt, PausedAccMs, DurationMs, Mode); see the
// display package.
type TimerState struct {
	// Seq strictly increases with every state-affecting mutation.
	// Receivers discard any snapshot whose Seq is not strictly greater
	// than the last accepted one.
	Seq int64 `json:"seq"`

	Mode       Mode   `json:"mode"`
	DurationMs int64  `json:"durationMs"`
	Format     Format `json:"format"`

	// StartedAt is the epoch-ms instant of the last (re)start/resume.
	// Zero means never started, or paused-from-start.
	StartedAt int64 `json:"startedAt,omitempty"`

	// PausedAccMs banks elapsed milliseconds across pause/resume cycles.
	// Cleared only on a full reset.
	PausedAccMs int64 `json:"pausedAccMs,omitempty"`

	IsRunning bool `json:"isRunning"`
	Ended     bool `json:"ended"`

	Overtime          bool  `json:"overtime"`
	OvertimeStartedAt int64 `json:"overtimeStartedAt,omitempty"` // epoch ms

	// Blackout is an absolute signal, not a toggle. Duplicate delivery
	// is harmless.
	Blackout bool `json:"blackout"`

	Flash   Flash   `json:"flash"`
	Message Message `json:"message"`
	Style   Style   `json:"style"`

	// Remaining-seconds cutoffs that recolor the display. Derived-only;
	// they never affect state transitions.
	WarnYellowSec int `json:"warnYellowSec,omitempty"`
	WarnOrangeSec int `json:"warnOrangeSec,omitempty"`

	// Identity of the active preset/profile, reported on the feedback
	// namespace for external button panels.
	TimerName    string `json:"timerName,omitempty"`
	TimerIndex   int    `json:"timerIndex"`
	ProfileName  string `json:"profileName,omitempty"`
	ProfileIndex int    `json:"profileIndex"`
}

// Normalize coerces invalid fields to safe defaults. The design favors
// availability (always render something sane) over strict validation.
func (s *TimerState) Normalize() {
	switch s.Mode {
	case ModeCountdown, ModeCountup, ModeClock, ModeCountdownClock, ModeCountupClock, ModeHidden:
	default:
		s.Mode = ModeCountdown
	}
	switch s.Format {
	case FormatHMS, FormatMS, FormatS:
	default:
		s.Format = FormatHMS
	}
	if s.DurationMs < 0 {
		s.DurationMs = 0
	}
	if s.PausedAccMs < 0 {
		s.PausedAccMs = 0
	}
	if s.WarnYellowSec < 0 {
		s.WarnYellowSec = 0
	}
	if s.WarnOrangeSec < 0 {
		s.WarnOrangeSec = 0
	}
}

// PresetConfig is the subset of TimerState a preset configures.
type PresetConfig struct {
	Mode          Mode   `json:"mode"`
	DurationMs    int64  `json:"durationMs"`
	Format        Format `json:"format"`
	Style         Style  `json:"style"`
	WarnYellowSec int    `json:"warnYellowSec,omitempty"`
	WarnOrangeSec int    `json:"warnOrangeSec,omitempty"`
}

// Preset is one configured timer in a profile's ordered list.
type Preset struct {
	ID     string       `json:"id"`
	Name   string       `json:"name"`
	Config PresetConfig `json:"config"`

	// LinkedToNext chains this preset to its successor: on completion
	// the successor is loaded and started automatically.
	LinkedToNext bool `json:"linkedToNext"`
}

// Profile is a named ordered preset list.
type Profile struct {
	Name            string   `json:"name"`
	Presets         []Preset `json:"presets"`
	CurrentPresetID string   `json:"currentPresetId,omitempty"`
}

// FindPreset returns the index of the preset with the given id, or -1.
func (p Profile) FindPreset(id string) int {
	for i := range p.Presets {
		if p.Presets[i].ID == id {
			return i
		}
	}
	return -1
}
