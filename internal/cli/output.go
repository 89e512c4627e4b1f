package cli

import (
	"github.com/spf13/cobra"
)

func newOutputCmd(app *App) *cobra.Command {
	var connect string

	cmd := &cobra.Command{
		Use:   "output",
		Short: "Run an output surface attached to a control surface",
		Long: `Run a fullscreen output surface.

The output surface is a replica: it renders whatever canonical state the
control surface last published and sends nothing back except commands the
operator explicitly issues elsewhere. It reconnects on its own if the
control surface restarts.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOutputSurface(app, connect)
		},
	}

	cmd.Flags().StringVar(&connect, "connect", "", "Websocket endpoint of the control surface (default: derived from settings.yaml)")
	return cmd
}
