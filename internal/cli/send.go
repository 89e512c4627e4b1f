package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"stagetimer-cli/internal/model"
	"stagetimer-cli/internal/relay"
)

const sendTimeout = 5 * time.Second

func newSendCmd(app *App) *cobra.Command {
	var (
		index      int
		timerN     string
		seconds    int64
		delta      int64
		on         bool
		off        bool
		mode       string
		formatName string
	)

	cmd := &cobra.Command{
		Use:   "send <command>",
		Short: "Send a command to a running control surface",
		Long: `Send one command over the websocket command channel.

Commands: start, pause, resume, reset, toggle, flash, blackout,
select, duration, adjust-duration, config.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := buildCommand(args[0], commandArgs{
				index: index, indexSet: cmd.Flags().Changed("index"),
				timer: timerN, seconds: seconds,
				secondsSet: cmd.Flags().Changed("seconds"),
				delta:      delta, deltaSet: cmd.Flags().Changed("delta"),
				on: on, off: off,
				mode: mode, format: formatName,
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := deliver(app, c); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"sent": c}})
		},
	}

	cmd.Flags().IntVar(&index, "index", 0, "Timer index (select)")
	cmd.Flags().StringVar(&timerN, "timer", "", "Timer name (select)")
	cmd.Flags().Int64Var(&seconds, "seconds", 0, "Duration in seconds (duration)")
	cmd.Flags().Int64Var(&delta, "delta", 0, "Signed seconds (adjust-duration)")
	cmd.Flags().BoolVar(&on, "on", false, "Enable (blackout)")
	cmd.Flags().BoolVar(&off, "off", false, "Disable (blackout)")
	cmd.Flags().StringVar(&mode, "mode", "", "Timer mode (config)")
	cmd.Flags().StringVar(&formatName, "clock-format", "", "Clock format hms|ms|s (config)")
	return cmd
}

type commandArgs struct {
	index      int
	indexSet   bool
	timer      string
	seconds    int64
	secondsSet bool
	delta      int64
	deltaSet   bool
	on         bool
	off        bool
	mode       string
	format     string
}

func buildCommand(verb string, a commandArgs) (model.Command, error) {
	switch verb {
	case "start":
		return model.Command{Name: model.CmdStart}, nil
	case "pause":
		return model.Command{Name: model.CmdPause}, nil
	case "resume":
		return model.Command{Name: model.CmdResume}, nil
	case "reset":
		return model.Command{Name: model.CmdReset}, nil
	case "toggle":
		return model.Command{Name: model.CmdToggle}, nil
	case "flash":
		return model.Command{Name: model.CmdTriggerFlash}, nil
	case "blackout":
		if a.on && a.off {
			return model.Command{}, fmt.Errorf("blackout takes at most one of --on/--off")
		}
		if !a.on && !a.off {
			return model.Command{Name: model.CmdSetBlackout}, nil
		}
		v := a.on
		return model.Command{Name: model.CmdSetBlackout, On: &v}, nil
	case "select":
		if a.timer != "" {
			return model.Command{Name: model.CmdSelectTimer, Timer: a.timer}, nil
		}
		if a.indexSet {
			i := a.index
			return model.Command{Name: model.CmdSelectTimer, Index: &i}, nil
		}
		return model.Command{}, fmt.Errorf("select requires --index or --timer")
	case "duration":
		if !a.secondsSet {
			return model.Command{}, fmt.Errorf("duration requires --seconds")
		}
		v := a.seconds
		return model.Command{Name: model.CmdSetDuration, Seconds: &v}, nil
	case "adjust-duration":
		if !a.deltaSet {
			return model.Command{}, fmt.Errorf("adjust-duration requires --delta")
		}
		v := a.delta
		return model.Command{Name: model.CmdAdjustDuration, DeltaSeconds: &v}, nil
	case "config":
		p := model.ConfigPatch{}
		set := false
		if a.mode != "" {
			m := model.Mode(a.mode)
			p.Mode = &m
			set = true
		}
		if a.format != "" {
			f := model.Format(a.format)
			p.Format = &f
			set = true
		}
		if a.secondsSet {
			ms := a.seconds * 1000
			p.DurationMs = &ms
			set = true
		}
		if !set {
			return model.Command{}, fmt.Errorf("config requires at least one of --mode/--clock-format/--seconds")
		}
		return model.Command{Name: model.CmdSetConfig, Config: &p}, nil
	default:
		return model.Command{}, fmt.Errorf("unknown command: %s", verb)
	}
}

// deliver round-trips one command through the control surface.
func deliver(app *App, c model.Command) error {
	s, err := openStore(app)
	if err != nil {
		return err
	}
	set, err := resolveSettings(app, s)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()
	return relay.SendCommand(ctx, connectURL(set), c)
}
