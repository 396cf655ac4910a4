package main

import (
	"os"

	"github.com/invopop/yaml"
)

// fileConfig is an optional defaults file in YAML or JSON form. Every field
// is a pointer so absent keys fall back to built-in defaults.
type fileConfig struct {
	Darkening       *float64 `json:"darkening"`
	LightColour     *string  `json:"light_colour"`
	DarkColour      *string  `json:"dark_colour"`
	DiscoverColours *bool    `json:"discover_colours"`
	Jobs            *int     `json:"jobs"`
	Verbose         *bool    `json:"verbose"`
}

// readConfig reads the defaults file.
func readConfig(path string) (fileConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fileConfig{}, err
	}

	var cfg fileConfig
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return fileConfig{}, err
	}

	return cfg, nil
}
