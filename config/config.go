// Package config resolves the settings of the pprs tool.
//
// Values come, by increasing priority, from the defaults, a TOML or YAML
// file, and PPRS_* environment variables. Command-line flags are applied
// on top by the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/Rhymond/go-money"
	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// EnvPrefix is the prefix of the environment variables read by Load.
const EnvPrefix = "PPRS"

// DefaultSource is the historical location of the published workbook.
const DefaultSource = "history.xlsx"

// Config holds the pprs settings.
type Config struct {
	// Source is the workbook location: an http(s) URL or a local path.
	Source string `toml:"source" yaml:"source" envconfig:"SOURCE" validate:"required"`
	// OutputDir receives the generated reports.
	OutputDir string `toml:"output_dir" yaml:"output_dir" envconfig:"OUTPUT_DIR" validate:"required"`
	// Currency is the ISO 4217 code prices are quoted in, for display only.
	Currency string `toml:"currency" yaml:"currency" envconfig:"CURRENCY" validate:"len=3,currency"`
	// Timeout bounds the download of the source.
	Timeout time.Duration `toml:"timeout" yaml:"timeout" envconfig:"TIMEOUT" validate:"min=0"`
	// Workers bounds the number of reports rendered at once.
	Workers int `toml:"workers" yaml:"workers" envconfig:"WORKERS" validate:"min=1,max=64"`
	// Cache enables the daily download cache.
	Cache bool `toml:"cache" yaml:"cache" envconfig:"CACHE"`
	// CacheDir holds the cached downloads, defaults to the system temp dir.
	CacheDir string `toml:"cache_dir" yaml:"cache_dir" envconfig:"CACHE_DIR"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Source:    DefaultSource,
		OutputDir: "output",
		Currency:  money.EUR,
		Timeout:   time.Minute,
		Workers:   1,
	}
}

// Load reads the configuration from the defaults, the file at path if not
// empty, and the environment. The result is not validated yet, so that
// command-line flags can still be applied.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.decodeFile(path); err != nil {
			return nil, err
		}
	}
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("invalid environment: %w", err)
	}
	return cfg, nil
}

// decodeFile overrides cfg with the values found in the file at path.
func (cfg *Config) decodeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("cannot read config: %w", err)
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return fmt.Errorf("cannot decode %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.UnmarshalStrict(data, cfg); err != nil {
			return fmt.Errorf("cannot decode %s: %w", path, err)
		}
	default:
		return fmt.Errorf("unsupported config format %q, want .toml, .yaml or .yml", ext)
	}
	return nil
}

// Validate checks every field, and returns all the problems found.
func (cfg *Config) Validate() error {
	err := newValidator().Struct(cfg)
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	errs := make([]error, 0, len(verrs))
	for _, e := range verrs {
		errs = append(errs, fmt.Errorf("invalid %s %q: failed %q check", e.Field(), fmt.Sprint(e.Value()), e.Tag()))
	}
	return errors.Join(errs...)
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterValidation("currency", isCurrency)
	// Use the toml names in error messages, they match the file keys.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return strings.SplitN(fld.Tag.Get("toml"), ",", 2)[0]
	})
	return v
}

// isCurrency checks that the field is a currency code known to go-money.
func isCurrency(fl validator.FieldLevel) bool {
	return money.GetCurrency(fl.Field().String()) != nil
}
