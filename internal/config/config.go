// Package config loads the tool's configuration file and fills in defaults.
package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/quantfold/fohlcv/pkg/errors"
)

// Config holds the persistent settings. Every field can be overridden per
// invocation by the corresponding command line flag.
type Config struct {
	// DataRoot is the directory under which downloaded series are stored.
	DataRoot string `yaml:"data_root" validate:"required"`
	// Interval is the default bar interval for downloads.
	Interval string `yaml:"interval" validate:"required"`
	// Format is the default output format, parquet or csv.
	Format string `yaml:"format" validate:"required,oneof=parquet csv"`
}

// Default returns the configuration used when no config file is present.
func Default() Config {
	return Config{
		DataRoot: "data",
		Interval: "1h",
		Format:   "parquet",
	}
}

// Load reads a YAML config file and validates it. Fields absent from the file
// keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()

	content, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to read config file %s", path)
	}

	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return Config{}, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to parse config file %s", path)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "invalid config file %s", path)
	}

	return cfg, nil
}
