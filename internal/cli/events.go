package cli

import (
	"github.com/spf13/cobra"
)

func newEventsCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "events",
		Short: "Inspect the command log",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List logged commands (newest-first)",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			elog, err := s.OpenEventLog(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			defer elog.Close()

			evs, err := elog.List(cmd.Context(), limit)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": evs})
		},
	}
	listCmd.Flags().IntVar(&limit, "limit", 200, "Max events to return")

	cmd.AddCommand(listCmd)
	return cmd
}
