package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"stagetimer-cli/internal/model"
	"stagetimer-cli/internal/store"
)

func newPresetsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "presets",
		Short: "Manage the active profile's timer presets",
	}
	cmd.AddCommand(newPresetsListCmd(app))
	cmd.AddCommand(newPresetsAddCmd(app))
	cmd.AddCommand(newPresetsRemoveCmd(app))
	cmd.AddCommand(newPresetsLinkCmd(app, true))
	cmd.AddCommand(newPresetsLinkCmd(app, false))
	cmd.AddCommand(newPresetsMoveCmd(app))
	return cmd
}

// loadActiveProfile resolves and loads the profile CLI preset commands
// operate on.
func loadActiveProfile(app *App) (model.Profile, store.Store, error) {
	s, err := openStore(app)
	if err != nil {
		return model.Profile{}, store.Store{}, err
	}
	name, err := resolveProfileName(app, s)
	if err != nil {
		return model.Profile{}, store.Store{}, err
	}
	p, err := s.LoadProfile(name)
	if err != nil {
		return model.Profile{}, store.Store{}, err
	}
	return p, s, nil
}

func newPresetsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List presets in order",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, _, err := loadActiveProfile(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": p.Presets, "profile": p.Name})
		},
	}
}

func newPresetsAddCmd(app *App) *cobra.Command {
	var (
		name       string
		mode       string
		seconds    int64
		formatName string
		warnYellow int
		warnOrange int
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Append a preset to the active profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, s, err := loadActiveProfile(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			preset := model.Preset{
				ID:   store.NewPresetID(),
				Name: strings.TrimSpace(name),
				Config: model.PresetConfig{
					Mode:          model.Mode(mode),
					DurationMs:    seconds * 1000,
					Format:        model.Format(formatName),
					WarnYellowSec: warnYellow,
					WarnOrangeSec: warnOrange,
				},
			}
			p.Presets = append(p.Presets, preset)
			if err := s.SaveProfile(p); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": preset})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Preset name")
	cmd.Flags().StringVar(&mode, "mode", "countdown", "Mode (countdown|countup|clock|countdown-clock|countup-clock|hidden)")
	cmd.Flags().Int64Var(&seconds, "duration", 300, "Duration in seconds")
	cmd.Flags().StringVar(&formatName, "format", "hms", "Clock format (hms|ms|s)")
	cmd.Flags().IntVar(&warnYellow, "warn-yellow", 0, "Yellow warning threshold in seconds (0 = off)")
	cmd.Flags().IntVar(&warnOrange, "warn-orange", 0, "Orange warning threshold in seconds (0 = off)")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newPresetsRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id-or-index>",
		Short: "Remove a preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, s, err := loadActiveProfile(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			i, err := presetIndex(p, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			removed := p.Presets[i]
			p.Presets = append(p.Presets[:i], p.Presets[i+1:]...)
			if p.CurrentPresetID == removed.ID {
				p.CurrentPresetID = ""
			}
			if err := s.SaveProfile(p); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": removed})
		},
	}
}

func newPresetsLinkCmd(app *App, link bool) *cobra.Command {
	use, short := "link <id-or-index>", "Chain a preset into its successor"
	if !link {
		use, short = "unlink <id-or-index>", "Break a preset's chain to its successor"
	}
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, s, err := loadActiveProfile(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			i, err := presetIndex(p, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			if link && i == len(p.Presets)-1 {
				return writeErr(cmd, fmt.Errorf("preset %s has no successor to chain into", args[0]))
			}
			p.Presets[i].LinkedToNext = link
			if err := s.SaveProfile(p); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": p.Presets[i]})
		},
	}
}

func newPresetsMoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "move <id-or-index> <to-index>",
		Short: "Reorder a preset",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, s, err := loadActiveProfile(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			from, err := presetIndex(p, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			to, err := strconv.Atoi(args[1])
			if err != nil || to < 0 || to >= len(p.Presets) {
				return writeErr(cmd, fmt.Errorf("invalid target index: %s", args[1]))
			}

			moved := p.Presets[from]
			p.Presets = append(p.Presets[:from], p.Presets[from+1:]...)
			rest := append([]model.Preset{}, p.Presets[to:]...)
			p.Presets = append(append(p.Presets[:to], moved), rest...)

			if err := s.SaveProfile(p); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": p.Presets})
		},
	}
}

// presetIndex resolves an id or zero-based position to a preset index.
func presetIndex(p model.Profile, ref string) (int, error) {
	if i := p.FindPreset(ref); i >= 0 {
		return i, nil
	}
	if i, err := strconv.Atoi(ref); err == nil && i >= 0 && i < len(p.Presets) {
		return i, nil
	}
	return 0, fmt.Errorf("preset not found: %s", ref)
}
