// Package osc maps an OSC address namespace 1:1 onto the command channel
// so button panels and lighting desks can drive the timer, and reports
// the display-relevant subset of the canonical state back on a symmetric
// feedback namespace.
package osc

import (
	"context"
	"fmt"
	"log"
	"net"
	"strings"
	"time"

	goosc "github.com/hypebeast/go-osc/osc"

	"stagetimer-cli/internal/model"
)

const prefix = "/stagetimer"

// MapMessage translates one inbound OSC message into a command. The
// second return is false for addresses outside the namespace or messages
// whose arguments cannot be coerced.
func MapMessage(addr string, args []interface{}) (model.Command, bool) {
	switch addr {
	case prefix + "/start":
		return model.Command{Name: model.CmdStart}, true
	case prefix + "/pause":
		return model.Command{Name: model.CmdPause}, true
	case prefix + "/resume":
		return model.Command{Name: model.CmdResume}, true
	case prefix + "/toggle":
		return model.Command{Name: model.CmdToggle}, true
	case prefix + "/reset":
		return model.Command{Name: model.CmdReset}, true
	case prefix + "/flash":
		return model.Command{Name: model.CmdTriggerFlash}, true

	case prefix + "/select":
		if len(args) == 0 {
			return model.Command{}, false
		}
		if name, ok := args[0].(string); ok && strings.TrimSpace(name) != "" {
			return model.Command{Name: model.CmdSelectTimer, Timer: name}, true
		}
		if n, ok := intArg(args[0]); ok {
			idx := int(n)
			return model.Command{Name: model.CmdSelectTimer, Index: &idx}, true
		}
		return model.Command{}, false

	case prefix + "/duration":
		if len(args) == 0 {
			return model.Command{}, false
		}
		if n, ok := intArg(args[0]); ok {
			return model.Command{Name: model.CmdSetDuration, Seconds: &n}, true
		}
		return model.Command{}, false

	case prefix + "/duration/adjust":
		if len(args) == 0 {
			return model.Command{}, false
		}
		if n, ok := intArg(args[0]); ok {
			return model.Command{Name: model.CmdAdjustDuration, DeltaSeconds: &n}, true
		}
		return model.Command{}, false

	case prefix + "/blackout":
		// Bare address or a "toggle" argument flips the current value;
		// a numeric or boolean argument sets it absolutely.
		if len(args) == 0 {
			return model.Command{Name: model.CmdSetBlackout}, true
		}
		if s, ok := args[0].(string); ok && strings.EqualFold(strings.TrimSpace(s), "toggle") {
			return model.Command{Name: model.CmdSetBlackout}, true
		}
		if on, ok := boolArg(args[0]); ok {
			return model.Command{Name: model.CmdSetBlackout, On: &on}, true
		}
		return model.Command{}, false

	case prefix + "/message/show":
		if len(args) == 0 {
			return model.Command{}, false
		}
		if text, ok := args[0].(string); ok {
			return model.Command{Name: model.CmdShowMessage, Text: text}, true
		}
		return model.Command{}, false

	case prefix + "/message/hide":
		return model.Command{Name: model.CmdHideMessage}, true
	}
	return model.Command{}, false
}

func intArg(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case float32:
		return int64(n), true
	case float64:
		return int64(n), true
	default:
		return 0, false
	}
}

func boolArg(v interface{}) (bool, bool) {
	switch b := v.(type) {
	case bool:
		return b, true
	case int32:
		return b != 0, true
	case int64:
		return b != 0, true
	case float32:
		return b != 0, true
	default:
		return false, false
	}
}

// Server listens for OSC command messages on UDP and applies them.
type Server struct {
	Addr  string
	Apply func(model.Command, time.Time)
}

// Run serves until ctx is cancelled. Malformed or out-of-namespace
// messages are logged and dropped; the operator's show goes on.
func (s *Server) Run(ctx context.Context) error {
	conn, err := net.ListenPacket("udp", s.Addr)
	if err != nil {
		return fmt.Errorf("osc: listen %s: %w", s.Addr, err)
	}
	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	srv := &goosc.Server{
		Addr:       s.Addr,
		Dispatcher: dispatcher{apply: s.Apply},
	}
	err = srv.Serve(conn)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

type dispatcher struct {
	apply func(model.Command, time.Time)
}

func (d dispatcher) Dispatch(packet goosc.Packet) {
	d.dispatchPacket(packet)
}

func (d dispatcher) dispatchPacket(packet goosc.Packet) {
	switch p := packet.(type) {
	case *goosc.Message:
		cmd, ok := MapMessage(p.Address, p.Arguments)
		if !ok {
			log.Printf("osc: ignoring %s", p.Address)
			return
		}
		d.apply(cmd, time.Now())
	case *goosc.Bundle:
		for _, msg := range p.Messages {
			d.dispatchPacket(msg)
		}
		for _, b := range p.Bundles {
			d.dispatchPacket(b)
		}
	}
}
