package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"stagetimer-cli/internal/model"
	"stagetimer-cli/internal/store"
)

func newProfilesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "Manage named preset collections",
	}
	cmd.AddCommand(newProfilesListCmd(app))
	cmd.AddCommand(newProfilesCreateCmd(app))
	cmd.AddCommand(newProfilesUseCmd(app))
	return cmd
}

func newProfilesListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List profiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			names, err := s.ListProfiles()
			if err != nil {
				return writeErr(cmd, err)
			}
			cfg, err := s.LoadConfig()
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": names, "current": cfg.CurrentProfile})
		},
	}
}

func newProfilesCreateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "create <name>",
		Short: "Create an empty profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			name, err := store.NormalizeProfileName(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			names, err := s.ListProfiles()
			if err != nil {
				return writeErr(cmd, err)
			}
			for _, n := range names {
				if n == name {
					return writeErr(cmd, fmt.Errorf("profile already exists: %s", name))
				}
			}
			p := model.Profile{Name: name}
			if err := s.SaveProfile(p); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": p})
		},
	}
}

func newProfilesUseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "use <name>",
		Short: "Make a profile the current one",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if len(args) != 1 {
				return writeErr(cmd, fmt.Errorf("use requires a profile name"))
			}
			name, err := store.NormalizeProfileName(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.SaveConfig(store.Config{CurrentProfile: name}); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"current": name}})
		},
	}
}
