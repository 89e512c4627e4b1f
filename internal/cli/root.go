package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"stagetimer-cli/internal/format"
	"stagetimer-cli/internal/store"
)

type App struct {
	Dir        string
	Profile    string
	Listen     string
	OSCListen  string
	PrettyJSON bool
	Format     string
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "stagetimer",
		Short:        "Stage timer control surface + output surfaces",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the control surface (authoritative; hosts the sync endpoint)
  stagetimer

  # Attach an output surface to a running control surface
  stagetimer output --connect ws://127.0.0.1:7110/ws

  # Scriptable commands against a running control surface
  stagetimer send start
  stagetimer send adjust-duration --delta -60
  stagetimer message show "5 minutes left"
  stagetimer status
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive control surface.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runControlSurface(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("STAGETIMER_DIR", ""), "Path to store dir (default: ~/.stagetimer)")
	cmd.PersistentFlags().StringVar(&app.Profile, "profile", envOr("STAGETIMER_PROFILE", ""), "Profile name (overrides currentProfile in config.json)")
	cmd.PersistentFlags().StringVar(&app.Listen, "listen", envOr("STAGETIMER_LISTEN", ""), "Sync endpoint address (overrides settings.yaml)")
	cmd.PersistentFlags().StringVar(&app.OSCListen, "osc-listen", envOr("STAGETIMER_OSC_LISTEN", ""), "OSC UDP address (overrides settings.yaml; empty disables)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("STAGETIMER_FORMAT", "json"), "Output format (json|yaml)")

	cmd.AddCommand(newOutputCmd(app))
	cmd.AddCommand(newSendCmd(app))
	cmd.AddCommand(newMessageCmd(app))
	cmd.AddCommand(newStatusCmd(app))
	cmd.AddCommand(newPresetsCmd(app))
	cmd.AddCommand(newProfilesCmd(app))
	cmd.AddCommand(newEventsCmd(app))

	return cmd
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}

// openStore resolves the store dir (flag > env > ~/.stagetimer) and makes
// sure it exists.
func openStore(app *App) (store.Store, error) {
	dir := strings.TrimSpace(app.Dir)
	if dir == "" {
		d, err := store.DefaultDir()
		if err != nil {
			return store.Store{}, err
		}
		dir = d
	}
	s := store.Store{Dir: dir}
	if err := s.Ensure(); err != nil {
		return store.Store{}, err
	}
	return s, nil
}

// resolveProfileName applies the --profile override on top of config.json.
func resolveProfileName(app *App, s store.Store) (string, error) {
	if p := strings.TrimSpace(app.Profile); p != "" {
		return store.NormalizeProfileName(p)
	}
	cfg, err := s.LoadConfig()
	if err != nil {
		return "", err
	}
	return cfg.CurrentProfile, nil
}

// resolveSettings loads settings.yaml and applies flag overrides.
func resolveSettings(app *App, s store.Store) (store.Settings, error) {
	set, err := s.LoadSettings()
	if err != nil {
		return store.Settings{}, err
	}
	if v := strings.TrimSpace(app.Listen); v != "" {
		set.Listen = v
	}
	if app.OSCListen != "" {
		set.OSCListen = strings.TrimSpace(app.OSCListen)
	}
	return set, nil
}

// connectURL derives the websocket endpoint from the resolved listen addr.
func connectURL(set store.Settings) string {
	return "ws://" + set.Listen + "/ws"
}

// stateURL derives the JSON snapshot endpoint from the resolved listen addr.
func stateURL(set store.Settings) string {
	return "http://" + set.Listen + "/state"
}
