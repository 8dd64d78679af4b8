// Package main provides the CLI entrypoint for keydrill.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/keydrill/internal/config"
	"github.com/verte-zerg/keydrill/internal/generator"
	"github.com/verte-zerg/keydrill/internal/logging"
	"github.com/verte-zerg/keydrill/internal/model"
	"github.com/verte-zerg/keydrill/internal/server"
	"github.com/verte-zerg/keydrill/internal/session"
	"github.com/verte-zerg/keydrill/internal/stats"
	"github.com/verte-zerg/keydrill/internal/tui"
)

const (
	defaultMode       = string(model.ModeWord)
	defaultDifficulty = string(model.DifficultyEasy)
	defaultAddr       = "127.0.0.1:8787"
)

var (
	practiceMode           string
	practiceDifficulty     string
	practiceDuration       int
	practiceReactionTarget int
	practiceParagraphWords int

	logLevel string
	logFile  string

	serveAddr string

	wordsDifficulty string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "keydrill",
		Short:         "Reaction, word and paragraph typing drills",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPracticeCmd,
	}

	rootCmd.Flags().StringVar(&practiceMode, "mode", defaultMode, "initial mode: reaction, word or paragraph")
	rootCmd.Flags().StringVar(&practiceDifficulty, "difficulty", defaultDifficulty, "initial difficulty: easy, medium or hard")
	rootCmd.PersistentFlags().IntVar(&practiceDuration, "duration", session.DefaultDurationSec, "seconds per word/paragraph session")
	rootCmd.PersistentFlags().IntVar(&practiceReactionTarget, "reaction-target", session.DefaultReactionTarget, "hits per reaction session")
	rootCmd.PersistentFlags().IntVar(&practiceParagraphWords, "paragraph-words", generator.DefaultParagraphWords, "words per paragraph")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", logging.DefaultLevel, "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "log file for the terminal UI (default: XDG data dir)")

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newWordsCmd())

	return rootCmd
}

// loadSettings reads .env, the config file and KEYDRILL_* variables, then
// applies them to every flag the user did not set explicitly.
func loadSettings(cmd *cobra.Command) error {
	if err := config.LoadDotEnv(".env"); err != nil {
		return err
	}
	fileCfg, err := config.Load(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applySettings(cmd, fileCfg)
	return nil
}

func applySettings(cmd *cobra.Command, cfg config.FileConfig) {
	applyStringConfig(cmd, "mode", &practiceMode, cfg.Practice.Mode)
	applyStringConfig(cmd, "difficulty", &practiceDifficulty, cfg.Practice.Difficulty)
	applyIntConfig(cmd, "duration", &practiceDuration, cfg.Practice.Duration)
	applyIntConfig(cmd, "reaction-target", &practiceReactionTarget, cfg.Practice.ReactionTarget)
	applyIntConfig(cmd, "paragraph-words", &practiceParagraphWords, cfg.Practice.ParagraphWords)
	applyStringConfig(cmd, "addr", &serveAddr, cfg.Server.Addr)
	applyStringConfig(cmd, "log-level", &logLevel, cfg.Log.Level)
	applyStringConfig(cmd, "log-file", &logFile, cfg.Log.File)
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	if err := loadSettings(cmd); err != nil {
		return err
	}
	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	level, err := logging.ParseLevel(logLevel)
	if err != nil {
		return err
	}

	path := logFile
	if path == "" {
		path = config.DefaultLogPath()
	}
	f, err := logging.OpenFile(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			logErrf("failed to close log file: %v\n", cerr)
		}
	}()
	logger := logging.New(f, level)

	m := tui.NewModel(cfg, generator.New(), logger)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	if st, ok := m.LastStats(); ok {
		if err := stats.RenderSummary(cmd.OutOrStdout(), st); err != nil {
			return fmt.Errorf("failed to write summary: %w", err)
		}
	}
	return nil
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the browser version",
		Args:  cobra.NoArgs,
		RunE:  runServeCmd,
	}
	cmd.Flags().StringVar(&serveAddr, "addr", defaultAddr, "listen address")
	return cmd
}

func runServeCmd(cmd *cobra.Command, _ []string) error {
	if err := loadSettings(cmd); err != nil {
		return err
	}
	if _, err := buildConfig(); err != nil {
		return err
	}
	level, err := logging.ParseLevel(logLevel)
	if err != nil {
		return err
	}
	logger := logging.Console(os.Stderr, level)

	hub := server.NewHub(generator.New(), logger, sessionOptions()...)
	srv := server.New(hub, logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.Run(ctx, serveAddr)
}

func sessionOptions() []session.Option {
	return []session.Option{
		session.WithDuration(practiceDuration),
		session.WithReactionTarget(practiceReactionTarget),
		session.WithParagraphWords(practiceParagraphWords),
	}
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := ensureConfigFile(path); err != nil {
		return err
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// ensureConfigFile writes the commented template unless a file exists.
func ensureConfigFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat config: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func newWordsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "words",
		Short: "List the practice words for a difficulty",
		Args:  cobra.NoArgs,
		RunE:  runWordsCmd,
	}
	cmd.Flags().StringVar(&wordsDifficulty, "difficulty", defaultDifficulty, "easy, medium or hard")
	return cmd
}

func runWordsCmd(cmd *cobra.Command, _ []string) error {
	d, err := model.ParseDifficulty(wordsDifficulty)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if _, err := fmt.Fprintf(out, "# %s: %s\n", d.Label(), generator.Alphabet(d)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	for _, w := range generator.NewWithSeed(0).Words(d) {
		if _, err := fmt.Fprintln(out, w); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# keydrill configuration
# Uncomment a value to enable it. KEYDRILL_* environment variables override
# config values and CLI flags override both.

[practice]
# mode = %q             # reaction, word or paragraph
# difficulty = %q        # easy, medium or hard
# duration = %d             # Seconds per word/paragraph session
# reaction-target = %d      # Hits per reaction session
# paragraph-words = %d      # Words per paragraph

[server]
# addr = %q

[log]
# level = %q
# file = ""                 # Default: %s
`,
		defaultMode,
		defaultDifficulty,
		session.DefaultDurationSec,
		session.DefaultReactionTarget,
		generator.DefaultParagraphWords,
		defaultAddr,
		logging.DefaultLevel,
		config.DefaultLogPath(),
	)
}

// buildConfig validates the resolved practice settings.
func buildConfig() (model.Config, error) {
	mode, err := model.ParseMode(practiceMode)
	if err != nil {
		return model.Config{}, fmt.Errorf("--mode: %w", err)
	}
	difficulty, err := model.ParseDifficulty(practiceDifficulty)
	if err != nil {
		return model.Config{}, fmt.Errorf("--difficulty: %w", err)
	}
	if practiceDuration <= 0 {
		return model.Config{}, fmt.Errorf("--duration must be > 0")
	}
	if practiceReactionTarget <= 0 {
		return model.Config{}, fmt.Errorf("--reaction-target must be > 0")
	}
	if practiceParagraphWords <= 0 {
		return model.Config{}, fmt.Errorf("--paragraph-words must be > 0")
	}
	return model.Config{
		Mode:           mode,
		Difficulty:     difficulty,
		DurationSec:    practiceDuration,
		ReactionTarget: practiceReactionTarget,
		ParagraphWords: practiceParagraphWords,
	}, nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		_ = err
	}
}
