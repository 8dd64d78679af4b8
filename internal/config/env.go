package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// EnvConfig holds KEYDRILL_* overrides. Unset variables stay nil.
type EnvConfig struct {
	Mode           *string `env:"KEYDRILL_MODE"`
	Difficulty     *string `env:"KEYDRILL_DIFFICULTY"`
	Duration       *int    `env:"KEYDRILL_DURATION"`
	ReactionTarget *int    `env:"KEYDRILL_REACTION_TARGET"`
	ParagraphWords *int    `env:"KEYDRILL_PARAGRAPH_WORDS"`
	Addr           *string `env:"KEYDRILL_ADDR"`
	LogLevel       *string `env:"KEYDRILL_LOG_LEVEL"`
	LogFile        *string `env:"KEYDRILL_LOG_FILE"`
}

// LoadDotEnv loads the given .env files into the process environment
// without overriding variables already set. Missing files are skipped.
func LoadDotEnv(paths ...string) error {
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
	}
	return nil
}

// ParseEnv reads KEYDRILL_* variables.
func ParseEnv() (EnvConfig, error) {
	var cfg EnvConfig
	if err := env.Parse(&cfg); err != nil {
		return EnvConfig{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// FileConfig returns the overrides shaped like the TOML file so they can be
// layered with Overlay.
func (e EnvConfig) FileConfig() FileConfig {
	return FileConfig{
		Practice: PracticeConfig{
			Mode:           e.Mode,
			Difficulty:     e.Difficulty,
			Duration:       e.Duration,
			ReactionTarget: e.ReactionTarget,
			ParagraphWords: e.ParagraphWords,
		},
		Server: ServerConfig{Addr: e.Addr},
		Log:    LogConfig{Level: e.LogLevel, File: e.LogFile},
	}
}

// Load reads the TOML file at path and layers KEYDRILL_* variables on top.
func Load(path string) (FileConfig, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return FileConfig{}, err
	}
	envCfg, err := ParseEnv()
	if err != nil {
		return FileConfig{}, err
	}
	Overlay(&cfg, envCfg.FileConfig())
	return cfg, nil
}
