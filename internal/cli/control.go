package cli

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"stagetimer-cli/internal/model"
	"stagetimer-cli/internal/osc"
	"stagetimer-cli/internal/relay"
	"stagetimer-cli/internal/server"
	"stagetimer-cli/internal/store"
	"stagetimer-cli/internal/timer"
	"stagetimer-cli/internal/tui"
)

// Minimum spacing between OSC feedback bursts. The render loop runs at
// up to 120 fps; panels do not need state that often.
const feedbackInterval = 100 * time.Millisecond

// runControlSurface wires the whole authoritative side together: the
// canonical controller, the websocket endpoint, optional OSC in/out, the
// command log, and the interactive TUI that drives the frame loop.
func runControlSurface(app *App) error {
	s, err := openStore(app)
	if err != nil {
		return err
	}
	name, err := resolveProfileName(app, s)
	if err != nil {
		return err
	}
	profile, err := s.LoadProfile(name)
	if err != nil {
		return err
	}
	set, err := resolveSettings(app, s)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ctrl := timer.New()
	ctrl.SetProfile(profile, s.ProfileIndex(name))

	hub := relay.NewHub()
	// Every mutation is pushed immediately; the per-frame heartbeat then
	// keeps replicas converged even if one of these is dropped.
	ctrl.OnChange(func(st model.TimerState) {
		hub.Broadcast(model.StateEnvelope(st))
	})

	srv, err := server.New(server.Config{Addr: set.Listen}, ctrl, hub)
	if err != nil {
		return err
	}

	elog, err := s.OpenEventLog(ctx)
	if err != nil {
		// The show can run without an audit trail.
		log.Printf("event log unavailable: %v", err)
	} else {
		defer elog.Close()
		srv.OnCommand = func(cmd model.Command) {
			if err := elog.Append(ctx, "remote", cmd, ctrl.Snapshot()); err != nil {
				log.Printf("event log: %v", err)
			}
		}
	}

	httpSrv := &http.Server{Addr: srv.Addr(), Handler: srv.Handler()}
	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("sync endpoint: %v", err)
		}
	}()
	defer httpSrv.Close()

	if set.OSCListen != "" {
		oscSrv := &osc.Server{
			Addr: set.OSCListen,
			Apply: func(cmd model.Command, now time.Time) {
				ctrl.Apply(cmd, now)
				if elog != nil {
					if err := elog.Append(ctx, "osc", cmd, ctrl.Snapshot()); err != nil {
						log.Printf("event log: %v", err)
					}
				}
			},
		}
		go func() {
			if err := oscSrv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("osc: %v", err)
			}
		}()
	}

	var fb *osc.Feedback
	if set.OSCFeedbackHost != "" {
		fb = osc.NewFeedback(set.OSCFeedbackHost, set.OSCFeedbackPort)
	}

	var lastFeedback time.Time
	onFrame := func(st model.TimerState) {
		// The heartbeat: replicas that missed a change converge on the
		// next frame without any acknowledgment machinery.
		hub.Broadcast(model.StateEnvelope(st))

		if fb != nil && time.Since(lastFeedback) >= feedbackInterval {
			lastFeedback = time.Now()
			presets, active := ctrl.ActivePresets()
			if err := fb.Send(st, presets, active, time.Now()); err != nil {
				log.Printf("osc feedback: %v", err)
			}
		}
	}

	return tui.RunControl(ctrl, set.FPS, onFrame)
}

// runOutputSurface attaches a replica to a running control surface.
func runOutputSurface(app *App, connect string) error {
	set := store.DefaultSettings()
	if s, err := openStore(app); err == nil {
		if loaded, err := resolveSettings(app, s); err == nil {
			set = loaded
		}
	}
	url := connect
	if url == "" {
		url = connectURL(set)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	replica := relay.NewReplica()
	ready := make(chan struct{})
	client := &relay.Client{URL: url, Replica: replica, Ready: ready}
	go func() {
		if err := client.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("relay: %v", err)
		}
	}()

	return tui.RunOutput(replica, set.FPS, func() { close(ready) })
}
