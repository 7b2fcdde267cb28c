package config

import (
	"fmt"
	"slices"
	"strings"
)

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"json", "text"}
)

// Validate performs business-rule validation on the loaded configuration.
// Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Log.validate(); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	if err := c.Engine.validate(); err != nil {
		return fmt.Errorf("engine: %w", err)
	}
	return nil
}

func (l *LogConfig) validate() error {
	if !slices.Contains(logLevels, strings.ToLower(l.Level)) {
		return fmt.Errorf("level must be one of %s (got %q)", strings.Join(logLevels, ", "), l.Level)
	}
	if !slices.Contains(logFormats, strings.ToLower(l.Format)) {
		return fmt.Errorf("format must be one of %s (got %q)", strings.Join(logFormats, ", "), l.Format)
	}
	return nil
}

func (e *EngineConfig) validate() error {
	if e.ReviewLength < 1 {
		return fmt.Errorf("review_length must be >= 1 (got %d)", e.ReviewLength)
	}
	if e.BasicWordChance < 0 || e.BasicWordChance > 1 {
		return fmt.Errorf("basic_word_chance must be within [0, 1] (got %v)", e.BasicWordChance)
	}
	if e.FocusRatio < 0 || e.FocusRatio > 1 {
		return fmt.Errorf("focus_ratio must be within [0, 1] (got %v)", e.FocusRatio)
	}
	return nil
}
