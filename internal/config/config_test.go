package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if cfg.Practice.Mode != nil || cfg.Server.Addr != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadConfigEmptyPath(t *testing.T) {
	if _, err := LoadConfig(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestLoadConfigValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, `
[practice]
mode = "paragraph"
difficulty = "hard"
duration = 30
reaction-target = 5
paragraph-words = 12

[server]
addr = ":9000"

[log]
level = "debug"
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if *cfg.Practice.Mode != "paragraph" || *cfg.Practice.Difficulty != "hard" {
		t.Fatalf("unexpected practice: %+v", cfg.Practice)
	}
	if *cfg.Practice.Duration != 30 || *cfg.Practice.ReactionTarget != 5 || *cfg.Practice.ParagraphWords != 12 {
		t.Fatalf("unexpected numbers: %+v", cfg.Practice)
	}
	if *cfg.Server.Addr != ":9000" || *cfg.Log.Level != "debug" || cfg.Log.File != nil {
		t.Fatalf("unexpected server/log: %+v %+v", cfg.Server, cfg.Log)
	}
}

func TestLoadConfigUnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, "[practice]\nlang = \"en\"\n")
	_, err := LoadConfig(path)
	if err == nil || !strings.Contains(err.Error(), "practice.lang") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, "[practice\n")
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, "[practice]\nmode = \"word\"\nduration = 30\n")
	t.Setenv("KEYDRILL_MODE", "reaction")
	t.Setenv("KEYDRILL_REACTION_TARGET", "7")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if *cfg.Practice.Mode != "reaction" || *cfg.Practice.ReactionTarget != 7 {
		t.Fatalf("env did not override: %+v", cfg.Practice)
	}
	if *cfg.Practice.Duration != 30 {
		t.Fatalf("file value lost: %+v", cfg.Practice)
	}
}

func TestParseEnvError(t *testing.T) {
	t.Setenv("KEYDRILL_DURATION", "soon")
	_, err := ParseEnv()
	if err == nil || !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env error, got %v", err)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	writeFile(t, path, "KEYDRILL_DIFFICULTY=medium\n")
	t.Setenv("KEYDRILL_DIFFICULTY", "")
	os.Unsetenv("KEYDRILL_DIFFICULTY")

	if err := LoadDotEnv(filepath.Join(dir, "missing.env"), path); err != nil {
		t.Fatalf("load dotenv: %v", err)
	}
	if got := os.Getenv("KEYDRILL_DIFFICULTY"); got != "medium" {
		t.Fatalf("expected medium, got %q", got)
	}
}

func TestXDGPaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/cfg")
	t.Setenv("XDG_DATA_HOME", "/tmp/data")
	if got := DefaultConfigPath(); got != filepath.Join("/tmp/cfg", "keydrill", "config.toml") {
		t.Fatalf("config path = %q", got)
	}
	if got := DefaultLogPath(); got != filepath.Join("/tmp/data", "keydrill", "keydrill.log") {
		t.Fatalf("log path = %q", got)
	}
}
