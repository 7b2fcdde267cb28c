package config

// Config is the root application configuration.
type Config struct {
	DB      DBConfig      `yaml:"db"`
	Catalog CatalogConfig `yaml:"catalog"`
	Log     LogConfig     `yaml:"log"`
	Engine  EngineConfig  `yaml:"engine"`
}

// DBConfig holds the SQLite location. An empty path means the per-user
// data directory.
type DBConfig struct {
	Path string `yaml:"path" env:"GREEKQUIZ_DB"`
}

// CatalogConfig points at an optional catalog file (JSON, CSV or XLSX)
// replacing the built-in letters and vocabulary.
type CatalogConfig struct {
	Path  string `yaml:"path"  env:"GREEKQUIZ_CATALOG"`
	Sheet string `yaml:"sheet" env:"GREEKQUIZ_CATALOG_SHEET"` // empty = first sheet
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"GREEKQUIZ_LOG_LEVEL"  env-default:"warn"`
	Format string `yaml:"format" env:"GREEKQUIZ_LOG_FORMAT" env-default:"text"`
}

// EngineConfig tunes item selection and review sessions.
type EngineConfig struct {
	ReviewLength    int     `yaml:"review_length"     env:"GREEKQUIZ_REVIEW_LENGTH"     env-default:"15"`
	BasicWordChance float64 `yaml:"basic_word_chance" env:"GREEKQUIZ_BASIC_WORD_CHANCE" env-default:"0.2"`
	FocusRatio      float64 `yaml:"focus_ratio"       env:"GREEKQUIZ_FOCUS_RATIO"       env-default:"0.6666666666666666"`
	// Seed fixes the random source; 0 seeds from the clock.
	Seed uint64 `yaml:"seed" env:"GREEKQUIZ_SEED" env-default:"0"`
}
