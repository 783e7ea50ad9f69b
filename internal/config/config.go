package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// DefaultPath is the config file read when no path is given. It may be absent.
const DefaultPath = "mcanim.yaml"

// EnvPrefix is the prefix of environment overrides. A double underscore separates nested keys,
// so MCANIM_RUNTIME__UP_AXIS sets runtime.up_axis.
const EnvPrefix = "MCANIM_"

// Config is the complete mcanim configuration: logging, tracing, the target runtime profile,
// export defaults and the batch export list.
type Config struct {
	Log       LogConfig       `koanf:"log"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
	Runtime   RuntimeConfig   `koanf:"runtime"`
	Export    ExportConfig    `koanf:"export"`
	Exports   []ExportJob     `koanf:"exports" validate:"dive"`
}

// LogConfig selects the slog level and handler.
type LogConfig struct {
	Level  string `koanf:"level" validate:"oneof=debug info warn error"`
	Format string `koanf:"format" validate:"oneof=text json"`
}

// TelemetryConfig enables the stdout span exporter.
type TelemetryConfig struct {
	Enabled     bool   `koanf:"enabled"`
	ServiceName string `koanf:"service_name" validate:"required_if=Enabled true"`
}

// RuntimeConfig describes the target runtime profile. Space and axis convention are fixed per
// profile, never per export.
type RuntimeConfig struct {
	Name   string `koanf:"name"`
	Space  string `koanf:"space" validate:"oneof=local world"`
	UpAxis string `koanf:"up_axis" validate:"oneof=y z"`
}

// ExportConfig holds defaults shared by every export.
type ExportConfig struct {
	Precision int     `koanf:"precision" validate:"min=-1"`
	Workers   int     `koanf:"workers" validate:"min=1"`
	FPS       float64 `koanf:"fps" validate:"gt=0"`
	Animation string  `koanf:"animation"` // glTF animation to import; empty selects the first
}

// ExportJob is one entry of the batch export list.
type ExportJob struct {
	Object        string `koanf:"object" validate:"required"`
	Output        string `koanf:"output" validate:"required"`
	ID            int    `koanf:"id" validate:"min=0"`
	Name          string `koanf:"name"`
	Type          string `koanf:"type"`
	Looping       *bool  `koanf:"looping"` // nil means true
	ResetWhenDone bool   `koanf:"reset_when_done"`
	FrameStart    *int   `koanf:"frame_start" validate:"omitempty,min=0"`
	FrameEnd      *int   `koanf:"frame_end" validate:"omitempty,min=0"`
}

// IsLooping returns the looping flag, defaulting to true.
func (j ExportJob) IsLooping() bool {
	return j.Looping == nil || *j.Looping
}

var defaults = map[string]any{
	"log.level":              "info",
	"log.format":             "text",
	"telemetry.enabled":      false,
	"telemetry.service_name": "mcanim",
	"runtime.name":           "default",
	"runtime.space":          "local",
	"runtime.up_axis":        "y",
	"export.precision":       -1,
	"export.workers":         1,
	"export.fps":             24.0,
}

var validate = validator.New()

// Load reads configuration from the YAML file at path, then environment variables, then defaults
// for keys neither of them set. A missing file is only an error when path is not DefaultPath.
//
// Parameters:
//   - path: the config file; "" means DefaultPath
//
// Returns:
//   - *Config: the validated configuration
//   - error: error if the file cannot be parsed or the result is invalid
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath
	}

	k := koanf.New(".")

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if !errors.Is(err, fs.ErrNotExist) || path != DefaultPath {
			return nil, fmt.Errorf("failed to load config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".", -1)
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	for key, value := range defaults {
		if !k.Exists(key) {
			if err := k.Set(key, value); err != nil {
				return nil, fmt.Errorf("failed to set default %s: %w", key, err)
			}
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints and returns every violation in one error.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var validatorErrs validator.ValidationErrors
	if !errors.As(err, &validatorErrs) {
		return fmt.Errorf("invalid config: %w", err)
	}

	fields := make([]string, 0, len(validatorErrs))
	for _, validatorErr := range validatorErrs {
		fields = append(fields, fmt.Sprintf("%s: %s", validatorErr.Namespace(), validatorErr.Tag()))
	}
	sort.Strings(fields)
	return fmt.Errorf("invalid config: %s", strings.Join(fields, ", "))
}

// NewLogger builds the slog logger described by the log section.
//
// Parameters:
//   - w: the destination of log records
//
// Returns:
//   - *slog.Logger: a text or JSON logger at the configured level
func (c LogConfig) NewLogger(w io.Writer) *slog.Logger {
	var level slog.Level
	switch c.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if c.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
