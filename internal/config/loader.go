package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// EnvConfigPath names the config file when no path is given.
const EnvConfigPath = "GREEKQUIZ_CONFIG"

// Load reads configuration from an optional YAML file and the environment.
// Priority: ENV > YAML > defaults (via env-default tags). A .env file in the
// working directory is loaded into the environment first, if present.
// When path is empty, GREEKQUIZ_CONFIG is consulted; with neither set the
// configuration comes from ENV + defaults only.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: read .env: %w", err)
	}

	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}

	var cfg Config
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config: file %s: %w", path, err)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}
