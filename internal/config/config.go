// Package config loads application configuration from file and environment
// and initializes the global logger.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sells-group/divestwatch/internal/marketdata"
	"github.com/sells-group/divestwatch/internal/match"
)

// Config holds the full application configuration.
type Config struct {
	Dataset DatasetConfig     `yaml:"dataset" mapstructure:"dataset"`
	Server  ServerConfig      `yaml:"server" mapstructure:"server"`
	Market  marketdata.Config `yaml:"market" mapstructure:"market"`
	Match   match.Config      `yaml:"match" mapstructure:"match"`
	Log     LogConfig         `yaml:"log" mapstructure:"log"`
}

// DatasetConfig locates the reference dataset.
type DatasetConfig struct {
	CSVPath string `yaml:"csv_path" mapstructure:"csv_path"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from config.yaml (optional) and the environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("DIVESTWATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("dataset.csv_path", "data/bds_boycotts.csv")
	v.SetDefault("server.port", 8080)
	v.SetDefault("market.base_url", "https://query1.finance.yahoo.com")
	v.SetDefault("market.timeout_secs", 10)
	v.SetDefault("market.max_attempts", 3)
	v.SetDefault("market.rate_per_sec", 5)
	v.SetDefault("match.similarity_threshold", match.DefaultSimilarityThreshold)
	v.SetDefault("match.suggest_limit", match.DefaultSuggestLimit)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
