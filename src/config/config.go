package config

import (
	"os"
	"strconv"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config holds the settings shared by every feasth_run command. Command
// line flags take precedence over the environment, which takes
// precedence over the config file.
type Config struct {
	Logging   LoggingConfig `yaml:"logging"`
	Output    string        `yaml:"output"`     // empty for stdout
	WarnLimit float64       `yaml:"warn_limit"` // threshold above which the model looks too small
	ModelSize uint64        `yaml:"model_size"` // 0 when it must come from the command line
}

type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

func DefaultConfig() *Config {
	return &Config{
		Logging:   LoggingConfig{Level: "info"},
		WarnLimit: 1.0,
	}
}

// Load reads a YAML config file. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, errors.Wrap(err, "failed to read config")
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, errors.Wrapf(err, "failed to parse config %s", path)
			}
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("FEASTH_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("FEASTH_OUTPUT"); v != "" {
		c.Output = v
	}
	if v := os.Getenv("FEASTH_WARN_LIMIT"); v != "" {
		limit, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return errors.Wrap(err, "FEASTH_WARN_LIMIT")
		}
		c.WarnLimit = limit
	}
	if v := os.Getenv("FEASTH_MODEL_SIZE"); v != "" {
		size, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return errors.Wrap(err, "FEASTH_MODEL_SIZE")
		}
		c.ModelSize = size
	}
	return nil
}

func (c *Config) Validate() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return errors.Errorf("unknown log level %q", c.Logging.Level)
	}
	if c.WarnLimit <= 0 {
		return errors.Errorf("warn_limit must be positive, got %v", c.WarnLimit)
	}
	return nil
}
