package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/readaloud/internal/config"
	"github.com/verte-zerg/readaloud/internal/level"
	"github.com/verte-zerg/readaloud/internal/sentences"
	"github.com/verte-zerg/readaloud/internal/stats"
	"github.com/verte-zerg/readaloud/internal/store"
)

var (
	bankPath    string
	bankLevel   string
	bankReplace bool
)

func newBankCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bank",
		Short: "Manage the sentence bank",
	}
	cmd.PersistentFlags().StringVar(&bankPath, "bank", "", "sentence bank path (default: XDG data dir)")
	cmd.AddCommand(newBankImportCmd())
	cmd.AddCommand(newBankListCmd())
	cmd.AddCommand(newBankRemoveCmd())
	return cmd
}

func newBankImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import sentences (one per line) into a level",
		Args:  cobra.ExactArgs(1),
		RunE:  runBankImportCmd,
	}
	cmd.Flags().StringVar(&bankLevel, "level", "", "level name (default: file name without extension)")
	cmd.Flags().BoolVar(&bankReplace, "replace", false, "replace the level's sentences instead of appending")
	return cmd
}

func runBankImportCmd(cmd *cobra.Command, args []string) error {
	path := args[0]
	name := strings.TrimSpace(bankLevel)
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	lines, err := sentences.Load(path)
	if err != nil {
		return fmt.Errorf("failed to load sentences: %w", err)
	}

	st, err := openBank()
	if err != nil {
		return err
	}
	defer closeBank(st)

	total, err := st.ImportSentences(cmd.Context(), name, lines, bankReplace)
	if err != nil {
		return fmt.Errorf("failed to import sentences: %w", err)
	}
	if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Imported %d sentences into %q (%d total)\n", len(lines), name, total); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newBankListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List levels stored in the sentence bank",
		Args:  cobra.NoArgs,
		RunE:  runBankListCmd,
	}
}

func runBankListCmd(cmd *cobra.Command, _ []string) error {
	st, err := openBank()
	if err != nil {
		return err
	}
	defer closeBank(st)

	infos, err := st.ListLevels(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list levels: %w", err)
	}
	out := cmd.OutOrStdout()
	if len(infos) == 0 {
		logErrln("Sentence bank is empty. Import with: readaloud bank import <file> --level <name>")
		return nil
	}
	table := stats.NewTable(
		stats.Column{Title: "Level"},
		stats.Column{Title: "Sentences", Right: true},
		stats.Column{Title: "Imported"},
	)
	for _, info := range infos {
		table.AddRow(info.Name, strconv.Itoa(info.Sentences), info.ImportedAt.Local().Format("2006-01-02 15:04"))
	}
	if err := table.Write(out); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newBankRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <level>",
		Short: "Remove a level from the sentence bank",
		Args:  cobra.ExactArgs(1),
		RunE:  runBankRemoveCmd,
	}
}

func runBankRemoveCmd(cmd *cobra.Command, args []string) error {
	st, err := openBank()
	if err != nil {
		return err
	}
	defer closeBank(st)

	removed, err := st.RemoveLevel(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to remove level: %w", err)
	}
	if !removed {
		return fmt.Errorf("level %q is not in the sentence bank", args[0])
	}
	if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Removed %q\n", args[0]); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func openBank() (*store.Store, error) {
	path := bankPath
	if path == "" {
		path = config.DefaultBankPath()
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sentence bank: %w", err)
	}
	return st, nil
}

func closeBank(st *store.Store) {
	if err := st.Close(); err != nil {
		logErrf("failed to close sentence bank: %v\n", err)
	}
}

// writeLevels prints each level with its pool size and the layer it came from.
func writeLevels(out io.Writer, levels level.Table, sources map[string]string) error {
	table := stats.NewTable(
		stats.Column{Title: "Level"},
		stats.Column{Title: "Sentences", Right: true},
		stats.Column{Title: "Source"},
	)
	for _, name := range levels.Levels() {
		pool, err := levels.Sentences(name)
		if err != nil {
			return err
		}
		table.AddRow(name, strconv.Itoa(len(pool)), sources[name])
	}
	if err := table.Write(out); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
