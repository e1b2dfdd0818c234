package config

import (
	"errors"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	DefaultConfigFileName = "config.toml"
	DefaultDBName         = "cadence.db"

	// EnvDBPath overrides the configured database path when set.
	EnvDBPath = "CADENCE_DB"
)

type Config struct {
	DBPath string `toml:"db_path"`
	Debug  bool   `toml:"debug"`
}

// Dir returns the application's config directory, created on demand.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(base, "cadence")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

// LoadOrCreate reads the config file at path, writing the defaults first
// when no file exists yet. The CADENCE_DB environment variable overrides
// the configured database path.
func LoadOrCreate(path string) (Config, error) {
	cfg := defaultConfig(filepath.Dir(path))
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return applyEnv(cfg), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(filepath.Dir(path), DefaultDBName)
	}
	return applyEnv(cfg), nil
}

func applyEnv(cfg Config) Config {
	if p := os.Getenv(EnvDBPath); p != "" {
		cfg.DBPath = p
	}
	return cfg
}

func write(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultConfig(dir string) Config {
	return Config{DBPath: filepath.Join(dir, DefaultDBName)}
}
