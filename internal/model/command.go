package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// CommandName discriminates the command variants delivered over the
// command channel (output/remote -> authoritative surface). The handler
// switch in the timer controller is exhaustive over these.
type CommandName string

const (
	CmdStart          CommandName = "start"
	CmdPause          CommandName = "pause"
	CmdResume         CommandName = "resume"
	CmdReset          CommandName = "reset"
	CmdToggle         CommandName = "toggle"
	CmdSetBlackout    CommandName = "setBlackout"
	CmdTriggerFlash   CommandName = "triggerFlash"
	CmdSetConfig      CommandName = "setConfig"
	CmdSelectTimer    CommandName = "selectTimer"
	CmdSetDuration    CommandName = "setDuration"
	CmdAdjustDuration CommandName = "adjustDuration"
	CmdShowMessage    CommandName = "showMessage"
	CmdHideMessage    CommandName = "hideMessage"
)

// ConfigPatch is a partial update to the active timer's configuration.
// Nil fields are left untouched.
type ConfigPatch struct {
	Mode          *Mode   `json:"mode,omitempty"`
	DurationMs    *int64  `json:"durationMs,omitempty"`
	Format        *Format `json:"format,omitempty"`
	Style         *Style  `json:"style,omitempty"`
	WarnYellowSec *int    `json:"warnYellowSec,omitempty"`
	WarnOrangeSec *int    `json:"warnOrangeSec,omitempty"`
}

// Command is a tagged variant: Name selects the operation, the remaining
// fields carry that operation's arguments. Commands are fire-and-forget;
// no acknowledgment is sent.
type Command struct {
	Name CommandName `json:"name"`

	On           *bool        `json:"on,omitempty"`           // setBlackout
	Config       *ConfigPatch `json:"config,omitempty"`       // setConfig
	Index        *int         `json:"index,omitempty"`        // selectTimer (by position)
	Timer        string       `json:"timer,omitempty"`        // selectTimer (by name)
	Seconds      *int64       `json:"seconds,omitempty"`      // setDuration
	DeltaSeconds *int64       `json:"deltaSeconds,omitempty"` // adjustDuration
	Text         string       `json:"text,omitempty"`         // showMessage
}

// ParseCommand decodes a command envelope payload, rejecting unknown
// names. Argument values are not validated here; the controller coerces
// them to safe defaults on apply.
func ParseCommand(b []byte) (Command, error) {
	var c Command
	if err := json.Unmarshal(b, &c); err != nil {
		return Command{}, err
	}
	c.Name = CommandName(strings.TrimSpace(string(c.Name)))
	switch c.Name {
	case CmdStart, CmdPause, CmdResume, CmdReset, CmdToggle,
		CmdSetBlackout, CmdTriggerFlash, CmdSetConfig,
		CmdSelectTimer, CmdSetDuration, CmdAdjustDuration,
		CmdShowMessage, CmdHideMessage:
		return c, nil
	case "":
		return Command{}, fmt.Errorf("command: missing name")
	default:
		return Command{}, fmt.Errorf("command: unknown name %q", c.Name)
	}
}

// EnvelopeType discriminates transport messages between surfaces.
type EnvelopeType string

const (
	EnvelopeState        EnvelopeType = "state"
	EnvelopeCommand      EnvelopeType = "command"
	EnvelopeSurfaceReady EnvelopeType = "surfaceReady"
	EnvelopeRequestState EnvelopeType = "requestState"
	EnvelopeBlackout     EnvelopeType = "blackout"
)

// Envelope is the transport message. State snapshots are full (never
// deltas) so a late-joining surface converges from a single message.
// Blackout rides its own envelope type because it is an absolute signal
// applied outside the sequence check.
type Envelope struct {
	Type     EnvelopeType `json:"type"`
	State    *TimerState  `json:"state,omitempty"`
	Command  *Command     `json:"command,omitempty"`
	Blackout *bool        `json:"blackout,omitempty"`
}

// ParseEnvelope decodes a transport message and validates its type.
func ParseEnvelope(b []byte) (Envelope, error) {
	var e Envelope
	if err := json.Unmarshal(b, &e); err != nil {
		return Envelope{}, err
	}
	switch e.Type {
	case EnvelopeState, EnvelopeCommand, EnvelopeSurfaceReady, EnvelopeRequestState, EnvelopeBlackout:
		return e, nil
	default:
		return Envelope{}, fmt.Errorf("envelope: unknown type %q", e.Type)
	}
}

func StateEnvelope(s TimerState) Envelope   { return Envelope{Type: EnvelopeState, State: &s} }
func CommandEnvelope(c Command) Envelope    { return Envelope{Type: EnvelopeCommand, Command: &c} }
func BlackoutEnvelope(on bool) Envelope     { return Envelope{Type: EnvelopeBlackout, Blackout: &on} }
