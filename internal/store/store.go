// Package store persists profiles (ordered preset lists), app settings,
// and the command event log under the stagetimer home directory.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"stagetimer-cli/internal/model"
)

const (
	configFileName   = "config.json"
	settingsFileName = "settings.yaml"
	profilesDirName  = "profiles"
)

// Config is the global config file: which profile is active.
type Config struct {
	CurrentProfile string `json:"currentProfile,omitempty"`
}

// Store reads and writes everything under Dir (default ~/.stagetimer).
type Store struct {
	Dir string
}

func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".stagetimer"), nil
}

func (s Store) Ensure() error {
	return os.MkdirAll(filepath.Join(s.Dir, profilesDirName), 0o755)
}

func (s Store) configPath() string { return filepath.Join(s.Dir, configFileName) }

func (s Store) profilePath(name string) string {
	return filepath.Join(s.Dir, profilesDirName, name+".json")
}

// LoadConfig returns the global config, defaulting to the "default"
// profile when the file is missing.
func (s Store) LoadConfig() (Config, error) {
	b, err := os.ReadFile(s.configPath())
	if errors.Is(err, os.ErrNotExist) {
		return Config{CurrentProfile: "default"}, nil
	}
	if err != nil {
		return Config{}, err
	}
	var cfg Config
	if err := json.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("store: %s: %w", s.configPath(), err)
	}
	if strings.TrimSpace(cfg.CurrentProfile) == "" {
		cfg.CurrentProfile = "default"
	}
	return cfg, nil
}

func (s Store) SaveConfig(cfg Config) error {
	if err := s.Ensure(); err != nil {
		return err
	}
	return writeFileAtomic(s.configPath(), mustJSON(cfg))
}

// NormalizeProfileName keeps profile names filesystem-safe.
func NormalizeProfileName(name string) (string, error) {
	name = strings.TrimSpace(strings.ToLower(name))
	if name == "" {
		return "", errors.New("store: empty profile name")
	}
	for _, r := range name {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '-' || r == '_' {
			continue
		}
		return "", fmt.Errorf("store: invalid profile name %q", name)
	}
	return name, nil
}

// LoadProfile reads a profile by name. A missing profile is not an
// error: it loads as an empty profile so a fresh install starts clean.
// Invalid preset fields are coerced to safe defaults on load.
func (s Store) LoadProfile(name string) (model.Profile, error) {
	name, err := NormalizeProfileName(name)
	if err != nil {
		return model.Profile{}, err
	}
	b, err := os.ReadFile(s.profilePath(name))
	if errors.Is(err, os.ErrNotExist) {
		return model.Profile{Name: name}, nil
	}
	if err != nil {
		return model.Profile{}, err
	}
	var p model.Profile
	if err := json.Unmarshal(b, &p); err != nil {
		return model.Profile{}, fmt.Errorf("store: %s: %w", s.profilePath(name), err)
	}
	p.Name = name
	normalizeProfile(&p)
	return p, nil
}

func (s Store) SaveProfile(p model.Profile) error {
	name, err := NormalizeProfileName(p.Name)
	if err != nil {
		return err
	}
	p.Name = name
	if err := s.Ensure(); err != nil {
		return err
	}
	normalizeProfile(&p)
	return writeFileAtomic(s.profilePath(name), mustJSONIndent(p))
}

// ListProfiles returns the stored profile names, sorted.
func (s Store) ListProfiles() ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(s.Dir, profilesDirName))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Strings(names)
	return names, nil
}

// ProfileIndex returns name's position in the sorted listing, or 0.
func (s Store) ProfileIndex(name string) int {
	names, err := s.ListProfiles()
	if err != nil {
		return 0
	}
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return 0
}

func normalizeProfile(p *model.Profile) {
	for i := range p.Presets {
		cfg := &p.Presets[i].Config
		st := model.TimerState{
			Mode:          cfg.Mode,
			DurationMs:    cfg.DurationMs,
			Format:        cfg.Format,
			WarnYellowSec: cfg.WarnYellowSec,
			WarnOrangeSec: cfg.WarnOrangeSec,
		}
		st.Normalize()
		cfg.Mode = st.Mode
		cfg.DurationMs = st.DurationMs
		cfg.Format = st.Format
		cfg.WarnYellowSec = st.WarnYellowSec
		cfg.WarnOrangeSec = st.WarnOrangeSec
	}
	// The tail preset never links onward.
	if n := len(p.Presets); n > 0 {
		p.Presets[n-1].LinkedToNext = false
	}
	if p.FindPreset(p.CurrentPresetID) < 0 {
		p.CurrentPresetID = ""
	}
}

func writeFileAtomic(path string, b []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func mustJSON(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}

func mustJSONIndent(v any) []byte {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		panic(err)
	}
	return append(b, '\n')
}
