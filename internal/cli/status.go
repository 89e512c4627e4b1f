package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"stagetimer-cli/internal/display"
	"stagetimer-cli/internal/model"
)

func newStatusCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Fetch the canonical state from a running control surface",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			set, err := resolveSettings(app, s)
			if err != nil {
				return writeErr(cmd, err)
			}

			st, err := fetchState(cmd.Context(), stateURL(set))
			if err != nil {
				return writeErr(cmd, err)
			}

			now := time.Now()
			d := display.Compute(st, now)
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"state":       st,
				"display":     d.Text,
				"remainingMs": d.RemainingMs,
				"elapsedMs":   d.ElapsedMs,
				"overtime":    d.Overtime,
			}})
		},
	}
	return cmd
}

func fetchState(ctx context.Context, url string) (model.TimerState, error) {
	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return model.TimerState{}, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return model.TimerState{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return model.TimerState{}, fmt.Errorf("status: %s returned %s", url, resp.Status)
	}

	var st model.TimerState
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		return model.TimerState{}, err
	}
	st.Normalize()
	return st, nil
}
