// Package main provides the CLI entrypoint for readaloud.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"math/rand"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/fang"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/readaloud/internal/config"
	"github.com/verte-zerg/readaloud/internal/generator"
	"github.com/verte-zerg/readaloud/internal/level"
	"github.com/verte-zerg/readaloud/internal/model"
	"github.com/verte-zerg/readaloud/internal/render"
	"github.com/verte-zerg/readaloud/internal/store"
	"github.com/verte-zerg/readaloud/internal/tui"
)

const version = "0.1.0"

const (
	defaultLevel      = "UKG"
	defaultMinutes    = 1.0
	defaultTroubleTop = 5
	defaultWrapWidth  = 80
)

const (
	sourceBuiltin    = "builtin"
	sourceBank       = "bank"
	sourceLevelsFile = "levels-file"
	sourceConfig     = "config"
)

var (
	practiceLevel      string
	practiceMinutes    float64
	practiceLevelsFile string
	practiceNoBank     bool
	practiceTroubleTop int

	generateSeed int64
)

func main() {
	if err := fang.Execute(
		context.Background(),
		newRootCmd(),
		fang.WithVersion(version),
		fang.WithNotifySignal(os.Interrupt, os.Kill),
	); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "readaloud",
		Short:         "Read-aloud practice with speech transcript scoring",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if err := loadDotEnv(".env"); err != nil {
				logErrf("failed to load .env: %v\n", err)
			}
		},
		RunE: runPracticeCmd,
	}

	addPracticeFlags(rootCmd)

	rootCmd.AddCommand(newGenerateCmd())
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newLevelsCmd())
	rootCmd.AddCommand(newBankCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func addPracticeFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&practiceLevel, "level", defaultLevel, "reading level")
	cmd.Flags().Float64Var(&practiceMinutes, "minutes", defaultMinutes, "target reading time in minutes")
	cmd.Flags().StringVar(&practiceLevelsFile, "levels-file", "", "TOML file with extra sentence pools")
	cmd.Flags().BoolVar(&practiceNoBank, "no-bank", false, "ignore the SQLite sentence bank")
	cmd.Flags().IntVar(&practiceTroubleTop, "top", defaultTroubleTop, "number of practice words to show")
}

// loadPracticeConfig merges the config file into the practice flags and
// resolves the level table.
func loadPracticeConfig(cmd *cobra.Command) (model.Config, level.Table, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Config{}, level.Table{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "level", &practiceLevel, fileCfg.Practice.Level)
	applyFloatConfig(cmd, "minutes", &practiceMinutes, fileCfg.Practice.Minutes)
	applyStringConfig(cmd, "levels-file", &practiceLevelsFile, fileCfg.Practice.LevelsFile)
	applyIntConfig(cmd, "top", &practiceTroubleTop, fileCfg.Practice.TroubleTop)
	useBank := true
	if fileCfg.Practice.UseBank != nil {
		useBank = *fileCfg.Practice.UseBank
	}
	if cmd.Flags().Changed("no-bank") {
		useBank = !practiceNoBank
	}

	cfg := model.Config{
		Level:      strings.TrimSpace(practiceLevel),
		Minutes:    practiceMinutes,
		LevelsFile: practiceLevelsFile,
		UseBank:    useBank,
		TroubleTop: practiceTroubleTop,
	}
	if err := validateConfig(cfg); err != nil {
		return model.Config{}, level.Table{}, err
	}

	table, _, err := resolveLevels(cmd.Context(), cfg, fileCfg, config.DefaultBankPath())
	if err != nil {
		return model.Config{}, level.Table{}, err
	}
	if _, err := table.Sentences(cfg.Level); err != nil {
		return model.Config{}, level.Table{}, unknownLevelError(cfg.Level, table)
	}
	return cfg, table, nil
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	cfg, table, err := loadPracticeConfig(cmd)
	if err != nil {
		return err
	}

	m, err := tui.NewModel(cfg, table, generator.NewSeeded())
	if err != nil {
		return fmt.Errorf("failed to generate passage: %w", err)
	}
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Print a reading passage",
		Args:  cobra.NoArgs,
		RunE:  runGenerateCmd,
	}
	addPracticeFlags(cmd)
	cmd.Flags().Int64Var(&generateSeed, "seed", 0, "random seed (0 uses the clock)")
	return cmd
}

func runGenerateCmd(cmd *cobra.Command, _ []string) error {
	cfg, table, err := loadPracticeConfig(cmd)
	if err != nil {
		return err
	}
	gen := generator.NewSeeded()
	if generateSeed != 0 {
		gen = generator.New(rand.New(rand.NewSource(generateSeed)))
	}
	passage, err := gen.Generate(table, cfg.Level, cfg.Minutes)
	if err != nil {
		return fmt.Errorf("failed to generate passage: %w", err)
	}
	out := cmd.OutOrStdout()
	if _, err := fmt.Fprintln(out, render.Passage(passage.Text, render.TerminalWidth(out, defaultWrapWidth))); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newLevelsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "levels",
		Short: "List reading levels",
		Args:  cobra.NoArgs,
		RunE:  runLevelsCmd,
	}
	cmd.Flags().StringVar(&practiceLevelsFile, "levels-file", "", "TOML file with extra sentence pools")
	cmd.Flags().BoolVar(&practiceNoBank, "no-bank", false, "ignore the SQLite sentence bank")
	return cmd
}

func runLevelsCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "levels-file", &practiceLevelsFile, fileCfg.Practice.LevelsFile)
	useBank := !practiceNoBank
	if !cmd.Flags().Changed("no-bank") && fileCfg.Practice.UseBank != nil {
		useBank = *fileCfg.Practice.UseBank
	}
	cfg := model.Config{LevelsFile: practiceLevelsFile, UseBank: useBank}
	table, sources, err := resolveLevels(cmd.Context(), cfg, fileCfg, config.DefaultBankPath())
	if err != nil {
		return err
	}
	return writeLevels(cmd.OutOrStdout(), table, sources)
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

func ensureConfigFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}
	return nil
}

// resolveLevels layers the built-in pools, the sentence bank, the levels file
// and the config [levels] table. Later layers replace earlier pools per level.
// The returned map records which layer each level came from.
func resolveLevels(ctx context.Context, cfg model.Config, fileCfg config.FileConfig, bankPath string) (level.Table, map[string]string, error) {
	table := level.Default()
	sources := map[string]string{}
	markSource(sources, table, sourceBuiltin)

	if cfg.UseBank && bankPath != "" {
		bank, err := loadBank(ctx, bankPath)
		if err != nil {
			return level.Table{}, nil, err
		}
		table = table.Merge(bank)
		markSource(sources, bank, sourceBank)
	}

	if cfg.LevelsFile != "" {
		extra, err := config.LoadLevels(cfg.LevelsFile)
		if err != nil {
			return level.Table{}, nil, fmt.Errorf("failed to load levels file: %w", err)
		}
		table = table.Merge(extra)
		markSource(sources, extra, sourceLevelsFile)
	}

	fromConfig := fileCfg.LevelTable()
	table = table.Merge(fromConfig)
	markSource(sources, fromConfig, sourceConfig)
	return table, sources, nil
}

// loadBank reads the sentence bank. A bank that was never created is empty.
func loadBank(ctx context.Context, path string) (level.Table, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return level.Table{}, nil
		}
		return level.Table{}, fmt.Errorf("failed to stat sentence bank: %w", err)
	}
	st, err := store.Open(path)
	if err != nil {
		return level.Table{}, fmt.Errorf("failed to open sentence bank: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close sentence bank: %v\n", cerr)
		}
	}()
	table, err := st.LoadTable(ctx)
	if err != nil {
		return level.Table{}, fmt.Errorf("failed to load sentence bank: %w", err)
	}
	return table, nil
}

func markSource(sources map[string]string, table level.Table, source string) {
	for _, name := range table.Levels() {
		sources[name] = source
	}
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

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# readaloud configuration
# Uncomment a value to enable it. CLI flags override config values.

[practice]
# level = %q            # Reading level
# minutes = %.1f          # Target reading time in minutes
# levels-file = ""        # TOML file with extra sentence pools
# use-bank = true         # Include levels imported into the sentence bank
# trouble-top = %d        # Number of practice words to show

# Extra sentence pools. These replace built-in or imported pools with the same name.
# [levels]
# "Grade 1" = ["The sun is hot.", "We play in the park."]
`,
		defaultLevel,
		defaultMinutes,
		defaultTroubleTop,
	)
}

func validateConfig(cfg model.Config) error {
	if cfg.Level == "" {
		return fmt.Errorf("--level must not be empty")
	}
	if err := generator.ValidateMinutes(cfg.Minutes); err != nil {
		return fmt.Errorf("--minutes: %w", err)
	}
	if cfg.TroubleTop < 0 {
		return fmt.Errorf("--top must be >= 0")
	}
	return nil
}

// loadDotEnv loads path into the environment without overriding variables
// that are already set. A missing file is not an error.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func unknownLevelError(name string, table level.Table) error {
	return fmt.Errorf("%w: %q (available: %s)", level.ErrUnknownLevel, name, strings.Join(table.Levels(), ", "))
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
