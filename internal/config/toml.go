// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Practice PracticeConfig `toml:"practice"`
	Server   ServerConfig   `toml:"server"`
	Log      LogConfig      `toml:"log"`
}

// PracticeConfig maps practice-related settings.
type PracticeConfig struct {
	Mode           *string `toml:"mode"`
	Difficulty     *string `toml:"difficulty"`
	Duration       *int    `toml:"duration"`
	ReactionTarget *int    `toml:"reaction-target"`
	ParagraphWords *int    `toml:"paragraph-words"`
}

// ServerConfig maps browser shell settings.
type ServerConfig struct {
	Addr *string `toml:"addr"`
}

// LogConfig maps logging settings.
type LogConfig struct {
	Level *string `toml:"level"`
	File  *string `toml:"file"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}

// Overlay copies every field set in src over dst.
func Overlay(dst *FileConfig, src FileConfig) {
	setString(&dst.Practice.Mode, src.Practice.Mode)
	setString(&dst.Practice.Difficulty, src.Practice.Difficulty)
	setInt(&dst.Practice.Duration, src.Practice.Duration)
	setInt(&dst.Practice.ReactionTarget, src.Practice.ReactionTarget)
	setInt(&dst.Practice.ParagraphWords, src.Practice.ParagraphWords)
	setString(&dst.Server.Addr, src.Server.Addr)
	setString(&dst.Log.Level, src.Log.Level)
	setString(&dst.Log.File, src.Log.File)
}

func setString(dst **string, src *string) {
	if src != nil {
		v := *src
		*dst = &v
	}
}

func setInt(dst **int, src *int) {
	if src != nil {
		v := *src
		*dst = &v
	}
}
