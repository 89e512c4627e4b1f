package cli

import (
	"testing"

	"stagetimer-cli/internal/model"
)

func TestBuildCommand(t *testing.T) {
	cases := []struct {
		verb string
		args commandArgs
		want model.CommandName
		err  bool
	}{
		{verb: "start", want: model.CmdStart},
		{verb: "pause", want: model.CmdPause},
		{verb: "resume", want: model.CmdResume},
		{verb: "reset", want: model.CmdReset},
		{verb: "toggle", want: model.CmdToggle},
		{verb: "flash", want: model.CmdTriggerFlash},
		{verb: "blackout", args: commandArgs{on: true}, want: model.CmdSetBlackout},
		{verb: "blackout", args: commandArgs{off: true}, want: model.CmdSetBlackout},
		{verb: "blackout", want: model.CmdSetBlackout},
		{verb: "blackout", args: commandArgs{on: true, off: true}, err: true},
		{verb: "select", args: commandArgs{indexSet: true, index: 2}, want: model.CmdSelectTimer},
		{verb: "select", args: commandArgs{timer: "Keynote"}, want: model.CmdSelectTimer},
		{verb: "select", err: true},
		{verb: "duration", args: commandArgs{secondsSet: true, seconds: 600}, want: model.CmdSetDuration},
		{verb: "duration", err: true},
		{verb: "adjust-duration", args: commandArgs{deltaSet: true, delta: -60}, want: model.CmdAdjustDuration},
		{verb: "adjust-duration", err: true},
		{verb: "config", args: commandArgs{mode: "countup"}, want: model.CmdSetConfig},
		{verb: "config", args: commandArgs{format: "ms", secondsSet: true, seconds: 90}, want: model.CmdSetConfig},
		{verb: "config", err: true},
		{verb: "explode", err: true},
	}

	for _, tc := range cases {
		c, err := buildCommand(tc.verb, tc.args)
		if tc.err {
			if err == nil {
				t.Fatalf("%s %+v: expected error", tc.verb, tc.args)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.verb, err)
		}
		if c.Name != tc.want {
			t.Fatalf("%s: got command %q, want %q", tc.verb, c.Name, tc.want)
		}
	}
}

func TestBuildCommandCarriesArguments(t *testing.T) {
	c, err := buildCommand("adjust-duration", commandArgs{deltaSet: true, delta: -60})
	if err != nil {
		t.Fatalf("buildCommand: %v", err)
	}
	if c.DeltaSeconds == nil || *c.DeltaSeconds != -60 {
		t.Fatalf("expected delta -60, got %+v", c)
	}

	c, err = buildCommand("blackout", commandArgs{off: true})
	if err != nil {
		t.Fatalf("buildCommand: %v", err)
	}
	if c.On == nil || *c.On {
		t.Fatalf("expected on=false, got %+v", c)
	}

	c, err = buildCommand("blackout", commandArgs{})
	if err != nil {
		t.Fatalf("buildCommand: %v", err)
	}
	if c.On != nil {
		t.Fatalf("expected toggle form without absolute value, got %+v", c)
	}

	c, err = buildCommand("select", commandArgs{timer: "Keynote"})
	if err != nil {
		t.Fatalf("buildCommand: %v", err)
	}
	if c.Timer != "Keynote" {
		t.Fatalf("expected timer name carried, got %+v", c)
	}

	c, err = buildCommand("config", commandArgs{mode: "countup", secondsSet: true, seconds: 90})
	if err != nil {
		t.Fatalf("buildCommand: %v", err)
	}
	if c.Config == nil || c.Config.Mode == nil || *c.Config.Mode != model.ModeCountup {
		t.Fatalf("expected mode patch, got %+v", c.Config)
	}
	if c.Config.DurationMs == nil || *c.Config.DurationMs != 90_000 {
		t.Fatalf("expected duration patch in ms, got %+v", c.Config)
	}
}
