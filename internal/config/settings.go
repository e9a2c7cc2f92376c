package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultSolver is the executable used when neither the config file nor
// the command line names one.
const DefaultSolver = "clingo"

// DefaultModels is the model count applied when a block does not set :n.
// 0 would mean "all answer sets", so the default asks for one.
const DefaultModels = 1

// Settings holds persistent CLI defaults loaded from a config file.
// Flags set explicitly on the command line take precedence.
type Settings struct {
	Solver     string        `yaml:"solver"`
	Models     *int          `yaml:"models"`
	Options    string        `yaml:"options"`
	MaxRuntime time.Duration `yaml:"max_runtime"`

	History     bool   `yaml:"history"`
	HistoryPath string `yaml:"history_path"`

	TangleDir string `yaml:"tangle_dir"`
}

// LoadSettings reads a YAML config file into Settings.
// If the file does not exist, it returns zero-value Settings and nil error.
func LoadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Settings{}, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if s.Models != nil && *s.Models < 0 {
		return nil, fmt.Errorf("config %s: models must be non-negative", path)
	}

	return &s, nil
}
