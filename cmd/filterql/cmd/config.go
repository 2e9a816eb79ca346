package cmd

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the optional filterql.yaml configuration consumed by the
// normalize and eval subcommands.
type Config struct {
	TextSearchTargets []string `yaml:"textSearchTargets"`
	IgnoreCase        bool     `yaml:"ignoreCase"`
	FoldDiacritics    bool     `yaml:"foldDiacritics"`
	Locale            string   `yaml:"locale"`
}

// loadConfig reads Config from path. An empty path yields the zero
// Config rather than an error, so subcommands work without a config
// file present.
func loadConfig(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
