package app

import (
	"errors"
	"fmt"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	InputPath string // results file (.hcl)

	// Type is a type expression that overrides the file's `type`
	// attribute. Empty means use the file's, or infer.
	Type    string
	Strict  bool
	Workers int

	// OutputFormat is "json" (default) or "hcl".
	OutputFormat string

	LogFormat string
	LogLevel  string
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.InputPath == "" {
		return nil, errors.New("InputPath is a required configuration field and cannot be empty")
	}
	if cfg.Workers < 0 {
		return nil, fmt.Errorf("workers must not be negative, got %d", cfg.Workers)
	}
	switch cfg.OutputFormat {
	case "":
		cfg.OutputFormat = "json"
	case "json", "hcl":
	default:
		return nil, fmt.Errorf("output format must be 'json' or 'hcl', got %q", cfg.OutputFormat)
	}
	return &cfg, nil
}
