// Package config loads the optional tendril.yaml project file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// DefaultFile is looked up in the working directory when no path is given.
const DefaultFile = "tendril.yaml"

// Config holds the settings shared by the CLI commands. Flags override it.
type Config struct {
	Script   string `yaml:"script"`
	FPS      int    `yaml:"fps" validate:"gte=1,lte=1000"`
	MaxDepth int    `yaml:"max_depth" validate:"gte=1,lte=4096"`
	Grid     Grid   `yaml:"grid"`
	Log      Log    `yaml:"log"`
	HTTP     HTTP   `yaml:"http"`
	Redis    Redis  `yaml:"redis"`
}

// Grid sizes the terminal canvas. Zero means fit the terminal.
type Grid struct {
	Width  int `yaml:"width" validate:"omitempty,gte=2,lte=1000"`
	Height int `yaml:"height" validate:"omitempty,gte=2,lte=1000"`
}

type Log struct {
	Level  string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	Format string `yaml:"format" validate:"omitempty,oneof=text json"`
	// File receives logs while the terminal canvas owns the screen.
	File string `yaml:"file"`
}

type HTTP struct {
	Addr string `yaml:"addr" validate:"omitempty,hostname_port"`
}

// Redis configures the diagnostics stream. An empty Addr disables it.
type Redis struct {
	Addr     string `yaml:"addr" validate:"omitempty,hostname_port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db" validate:"gte=0,lte=15"`
	Stream   string `yaml:"stream"`
	MaxLen   int64  `yaml:"max_len" validate:"gte=0"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Default returns the built-in settings.
func Default() Config {
	return Config{
		FPS:      60,
		MaxDepth: 64,
		Log:      Log{Level: "info", Format: "text"},
		HTTP:     HTTP{Addr: ":8080"},
		Redis:    Redis{Stream: "tendril:log", MaxLen: 10000},
	}
}

// Load reads path over the defaults. With an empty path it tries DefaultFile
// and silently falls back to the defaults when that does not exist.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every field bound.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("invalid config: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q (got %v)", fe.Namespace(), describe(fe), fe.Value()))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	if fe.Param() == "" {
		return fe.Tag()
	}
	return fe.Tag() + "=" + fe.Param()
}
