// Package config holds the runtime settings of the editor.
//
// Settings come from environment variables, and command-line flags may
// override them afterwards:
//
//	PPM_EDITOR_RADIUS         blur radius (default 1)
//	PPM_EDITOR_WORKERS        parallel workers (default 4)
//	PPM_EDITOR_REMAINDER      "last-band" or "drop" (default last-band)
//	PPM_EDITOR_LOG_LEVEL      logrus level name (default info)
//	PPM_EDITOR_PREVIEW_WIDTH  max preview width in pixels (default 256)
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/ironsheep/ppm-editor/internal/scheduler"
)

// Environment variable names.
const (
	EnvRadius       = "PPM_EDITOR_RADIUS"
	EnvWorkers      = "PPM_EDITOR_WORKERS"
	EnvRemainder    = "PPM_EDITOR_REMAINDER"
	EnvLogLevel     = "PPM_EDITOR_LOG_LEVEL"
	EnvPreviewWidth = "PPM_EDITOR_PREVIEW_WIDTH"
)

// Config is the resolved editor configuration.
type Config struct {
	Radius       int    `json:"radius"`
	Workers      int    `json:"workers"`
	Remainder    string `json:"remainder"`
	LogLevel     string `json:"log_level"`
	PreviewWidth int    `json:"preview_width"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Radius:       1,
		Workers:      scheduler.DefaultWorkers,
		Remainder:    scheduler.RemainderToLastBand.String(),
		LogLevel:     "info",
		PreviewWidth: 256,
	}
}

// FromEnv returns Default overlaid with the process environment.
func FromEnv() (Config, error) {
	return Load(os.Getenv)
}

// Load returns Default overlaid with the variables returned by getenv. Unset
// (empty) variables keep their defaults. The result is validated.
func Load(getenv func(string) string) (Config, error) {
	cfg := Default()

	if err := intFromEnv(getenv, EnvRadius, &cfg.Radius); err != nil {
		return cfg, err
	}
	if err := intFromEnv(getenv, EnvWorkers, &cfg.Workers); err != nil {
		return cfg, err
	}
	if err := intFromEnv(getenv, EnvPreviewWidth, &cfg.PreviewWidth); err != nil {
		return cfg, err
	}
	if v := getenv(EnvRemainder); v != "" {
		cfg.Remainder = v
	}
	if v := getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}

	return cfg, cfg.Validate()
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Radius < 0 {
		return fmt.Errorf("radius must not be negative, got %d", c.Radius)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.PreviewWidth < 0 {
		return fmt.Errorf("preview width must not be negative, got %d", c.PreviewWidth)
	}
	if _, err := c.RemainderPolicy(); err != nil {
		return err
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// RemainderPolicy parses the Remainder setting.
func (c Config) RemainderPolicy() (scheduler.RemainderPolicy, error) {
	return scheduler.ParseRemainderPolicy(c.Remainder)
}

// Level parses the LogLevel setting.
func (c Config) Level() (logrus.Level, error) {
	lvl, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel, fmt.Errorf("invalid log level: %w", err)
	}
	return lvl, nil
}

func intFromEnv(getenv func(string) string, key string, dst *int) error {
	v := getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) {
			err = numErr.Err
		}
		return fmt.Errorf("%s=%q: %w", key, v, err)
	}
	*dst = n
	return nil
}
