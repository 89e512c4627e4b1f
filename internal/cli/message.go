package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"stagetimer-cli/internal/model"
)

func newMessageCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "message",
		Short: "Show or hide the operator message on output surfaces",
	}

	showCmd := &cobra.Command{
		Use:   "show <text...>",
		Short: "Show a message (markdown) on all output surfaces",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.TrimSpace(strings.Join(args, " "))
			c := model.Command{Name: model.CmdShowMessage, Text: text}
			if err := deliver(app, c); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"sent": c}})
		},
	}

	hideCmd := &cobra.Command{
		Use:   "hide",
		Short: "Hide the operator message",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := model.Command{Name: model.CmdHideMessage}
			if err := deliver(app, c); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"sent": c}})
		},
	}

	cmd.AddCommand(showCmd)
	cmd.AddCommand(hideCmd)
	return cmd
}
