package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/adamwoolhether/clearlydefined/client"
	"github.com/adamwoolhether/clearlydefined/definitions"
)

const (
	envPrefix = "CLEARLYDEFINED"

	defaultTimeout     = 2 * time.Minute
	defaultBatchSize   = definitions.MaxBatchSize
	defaultConcurrency = 4
)

// Config is the resolved CLI configuration.
type Config struct {
	BaseURL     string        `mapstructure:"base_url"`
	Timeout     time.Duration `mapstructure:"timeout"`
	BatchSize   int           `mapstructure:"batch_size"`
	Concurrency int           `mapstructure:"concurrency"`
	UserAgent   string        `mapstructure:"user_agent"`
}

// flagKeys maps persistent flags to config keys.
var flagKeys = map[string]string{
	"base-url":    "base_url",
	"timeout":     "timeout",
	"batch-size":  "batch_size",
	"concurrency": "concurrency",
	"user-agent":  "user_agent",
}

func newViper() *viper.Viper {
	v := viper.New()

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("base_url", client.DefaultBaseURL)
	v.SetDefault("timeout", defaultTimeout)
	v.SetDefault("batch_size", defaultBatchSize)
	v.SetDefault("concurrency", defaultConcurrency)
	v.SetDefault("user_agent", client.DefaultUserAgent)
}

// bindFlags lets a flag that was set on the command line win over the
// environment and the config file.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	for name, key := range flagKeys {
		if f := flags.Lookup(name); f != nil {
			_ = v.BindPFlag(key, f)
		}
	}
}

// loadConfig resolves the configuration, reading path first when given.
func loadConfig(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("toml")

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Concurrency < 0 {
		return nil, fmt.Errorf("concurrency must not be negative, got %d", cfg.Concurrency)
	}

	return &cfg, nil
}
