package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"syncacct/internal/platform/digest"
	apperrors "syncacct/internal/platform/errors"
	"syncacct/internal/platform/logging"
)

const (
	EnvHelper   = "SYNCACCT_HELPER"
	EnvDigest   = "SYNCACCT_DIGEST"
	EnvLogLevel = "SYNCACCT_LOG_LEVEL"
	EnvTimeout  = "SYNCACCT_TIMEOUT"

	helperName = "syntool"
)

type Config struct {
	Helper HelperConfig `yaml:"helper"`
	Digest DigestConfig `yaml:"digest"`
	Log    LogConfig    `yaml:"log"`

	// Source is the file the config was read from, empty when none was found.
	Source string `yaml:"-"`
}

type HelperConfig struct {
	Path string `yaml:"path"`
	// Timeout bounds one helper run. Zero waits for the helper indefinitely.
	Timeout time.Duration `yaml:"timeout"`
}

type DigestConfig struct {
	Algorithm string `yaml:"algorithm"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func Default() Config {
	return Config{
		Helper: HelperConfig{Path: DefaultHelperPath()},
		Digest: DigestConfig{Algorithm: string(digest.Default)},
		Log:    LogConfig{Level: "warn", Format: logging.FormatAuto},
	}
}

// DefaultHelperPath is the helper binary next to the running executable.
func DefaultHelperPath() string {
	name := helperName
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	exe, err := os.Executable()
	if err != nil {
		return name
	}
	return filepath.Join(filepath.Dir(exe), name)
}

// DefaultPath is where Load looks when no path is given.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "syncacct", "config.yaml")
}

// Load applies defaults, then the YAML file, then the process environment.
// An explicit path that does not exist is an error; a missing default file is
// not. The result is not validated: callers overlay their own settings first
// and then call Validate.
func Load(path string) (Config, error) {
	return LoadWithEnv(path, os.Getenv)
}

func LoadWithEnv(path string, getenv func(string) string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		if err := cfg.readFile(path); err != nil {
			if !explicit && errors.Is(err, apperrors.ErrNotFound) {
				path = ""
			} else {
				return Config{}, err
			}
		}
		cfg.Source = path
	}
	if err := cfg.applyEnv(getenv); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: config file %s", apperrors.ErrNotFound, path)
		}
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(payload, c); err != nil {
		return fmt.Errorf("decode config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	if value := strings.TrimSpace(getenv(EnvHelper)); value != "" {
		c.Helper.Path = value
	}
	if value := strings.TrimSpace(getenv(EnvDigest)); value != "" {
		c.Digest.Algorithm = value
	}
	if value := strings.TrimSpace(getenv(EnvLogLevel)); value != "" {
		c.Log.Level = value
	}
	if value := strings.TrimSpace(getenv(EnvTimeout)); value != "" {
		timeout, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", apperrors.ErrInvalidConfig, EnvTimeout, err)
		}
		c.Helper.Timeout = timeout
	}
	return nil
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Helper.Path) == "" {
		return fmt.Errorf("%w: helper path is required", apperrors.ErrInvalidConfig)
	}
	if c.Helper.Timeout < 0 {
		return fmt.Errorf("%w: helper timeout must not be negative", apperrors.ErrInvalidConfig)
	}
	if _, err := digest.ParseAlgorithm(c.Digest.Algorithm); err != nil {
		return err
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// Encode renders the effective configuration as YAML.
func (c Config) Encode() ([]byte, error) {
	payload, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return payload, nil
}
