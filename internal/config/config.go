package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"go.uber.org/dig"

	"github.com/dreamingbumblebee/biopaper-parser/internal/provider/openai"
)

// Config represents the parser configuration.
type Config struct {
	OpenAI  openai.Config
	Output  OutputConfig
	History HistoryConfig
	Log     LogConfig
}

// OutputConfig controls where run artifacts are written.
type OutputConfig struct {
	SummaryPath string `env:"COST_SUMMARY_PATH" envDefault:"cost_summary.json"`
}

// HistoryConfig controls the SQLite request history.
type HistoryConfig struct {
	Enabled bool   `env:"HISTORY_ENABLED" envDefault:"true"`
	DBPath  string `env:"HISTORY_DB_PATH" envDefault:"requests.db"`
}

// LogConfig controls log output.
type LogConfig struct {
	Dir string `env:"LOG_DIR" envDefault:"logs"`
}

// DepConfig is used for dependency injection with dig.
type DepConfig struct {
	dig.Out
	*OutputConfig
	*HistoryConfig
	*LogConfig
	*openai.Config
}

// Load loads environment files and parses configuration.
func Load() *Config {
	for _, file := range []string{".env"} {
		_ = godotenv.Load(file)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		panic(err)
	}

	return &cfg
}

// ParseDependenciesConfig returns pointers to sub-configs for dependency injection.
func ParseDependenciesConfig(cfg *Config) DepConfig {
	return DepConfig{
		dig.Out{},
		&cfg.Output,
		&cfg.History,
		&cfg.Log,
		&cfg.OpenAI,
	}
}
