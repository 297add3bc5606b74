// Package config holds all flourish configuration.
package config

import "fmt"

// Config holds all flourish configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Redis      RedisConfig      `yaml:"redis"`
	Voice      VoiceConfig      `yaml:"voice"`
	Thresholds ThresholdsConfig `yaml:"thresholds"`
	Lexicon    LexiconConfig    `yaml:"lexicon"`
	Logging    LoggingConfig    `yaml:"logging"`
}

type ServerConfig struct {
	Bind string `yaml:"bind"`
	Port int    `yaml:"port"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type RedisConfig struct {
	URL        string `yaml:"url"`         // empty = in-process history
	TTLSeconds int    `yaml:"ttl_seconds"` // conversation window expiry
}

// VoiceConfig sets the fixed voice traits and the policy confidence the
// engine reports when no live estimator is wired in.
type VoiceConfig struct {
	Formality   float64 `yaml:"formality"`
	Warmth      float64 `yaml:"warmth"`
	Emoji       float64 `yaml:"emoji"`
	Conciseness float64 `yaml:"conciseness"`
	Confidence  float64 `yaml:"confidence"`
}

type ThresholdsConfig struct {
	PastRelevance   float64 `yaml:"past_relevance"`
	CollocRelevance float64 `yaml:"colloc_relevance"`
	ConfMin         float64 `yaml:"conf_min"`
	ChanceColloc    float64 `yaml:"chance_colloc"`
}

type LexiconConfig struct {
	// Phrases seed the collocation table on startup (idempotent).
	Phrases []string `yaml:"phrases"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`  // trace, debug, info, warn, error
	Format string `yaml:"format"` // "console" or "json"
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Bind: "127.0.0.1",
			Port: 38800,
		},
		Database: DatabaseConfig{
			Path: "", // resolved at runtime via store.DefaultDBPath()
		},
		Redis: RedisConfig{
			TTLSeconds: 86400,
		},
		Voice: VoiceConfig{
			Formality:   0.4,
			Warmth:      0.6,
			Emoji:       0.2,
			Conciseness: 0.6,
			Confidence:  0.6,
		},
		Thresholds: ThresholdsConfig{
			PastRelevance:   0.25,
			CollocRelevance: 0.20,
			ConfMin:         0.55,
			ChanceColloc:    0.35,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// ListenAddr returns the bind:port address string.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Bind, c.Server.Port)
}
