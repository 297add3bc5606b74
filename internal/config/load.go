package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Load reads the YAML config at path over the defaults, then applies
// environment overrides. An empty path skips the file entirely; a missing
// file at an explicit path is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// applyEnv layers environment variables over the loaded config. Flat keys
// only; the YAML file is the place for full tuning.
func (c *Config) applyEnv() {
	if v := os.Getenv("FLOURISH_BIND"); v != "" {
		c.Server.Bind = v
	}
	if v := os.Getenv("FLOURISH_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}
	if v := os.Getenv("FLOURISH_DB"); v != "" {
		c.Database.Path = v
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		c.Redis.URL = v
	}
	if v := os.Getenv("FLOURISH_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}
