package store

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Settings are the operator-editable app settings. Kept as YAML so they
// survive hand-editing between shows.
type Settings struct {
	// Listen is the websocket/state endpoint the output surfaces and
	// panel glue connect to.
	Listen string `yaml:"listen"`

	// OSCListen is the UDP endpoint for the remote-control namespace.
	// Empty disables OSC input.
	OSCListen string `yaml:"oscListen"`

	// OSCFeedback is where state feedback is pushed. Empty disables it.
	OSCFeedbackHost string `yaml:"oscFeedbackHost"`
	OSCFeedbackPort int    `yaml:"oscFeedbackPort"`

	// FPS bounds the render/heartbeat loop.
	FPS int `yaml:"fps"`
}

func DefaultSettings() Settings {
	return Settings{
		Listen:          "127.0.0.1:7110",
		OSCListen:       "",
		OSCFeedbackPort: 7112,
		FPS:             30,
	}
}

func (s Store) settingsPath() string { return filepath.Join(s.Dir, settingsFileName) }

// LoadSettings reads settings.yaml, filling gaps with defaults.
func (s Store) LoadSettings() (Settings, error) {
	def := DefaultSettings()
	b, err := os.ReadFile(s.settingsPath())
	if errors.Is(err, os.ErrNotExist) {
		return def, nil
	}
	if err != nil {
		return Settings{}, err
	}
	set := def
	if err := yaml.Unmarshal(b, &set); err != nil {
		return Settings{}, err
	}
	if set.Listen == "" {
		set.Listen = def.Listen
	}
	if set.FPS <= 0 || set.FPS > 120 {
		set.FPS = def.FPS
	}
	return set, nil
}

func (s Store) SaveSettings(set Settings) error {
	if err := s.Ensure(); err != nil {
		return err
	}
	b, err := yaml.Marshal(set)
	if err != nil {
		return err
	}
	return writeFileAtomic(s.settingsPath(), b)
}
