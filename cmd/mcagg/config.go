package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// experimentConfig mirrors the reduce flags so a whole run can be pinned in
// one YAML file and replayed.
type experimentConfig struct {
	Tolerance   float64 `yaml:"tolerance"`
	Checkpoints []int   `yaml:"checkpoints"`
	Cap         int     `yaml:"cap"`
	Start       int     `yaml:"start"`
	Uniform     bool    `yaml:"uniform"`
	Steps       int     `yaml:"steps"`
}

// loadExperiment reads a YAML experiment file. A missing file is an error
// here: the flag was given explicitly, silence would hide a typo.
func loadExperiment(path string) (*experimentConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read experiment file: %w", err)
	}

	var cfg experimentConfig
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return &cfg, nil
}
