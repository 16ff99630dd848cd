package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/readaloud/internal/config"
	"github.com/verte-zerg/readaloud/internal/render"
	"github.com/verte-zerg/readaloud/internal/stats"
)

const (
	formatText = "text"
	formatYAML = "yaml"
)

var (
	checkText           string
	checkTextFile       string
	checkTranscript     string
	checkTranscriptFile string
	checkSeconds        float64
	checkFormat         string
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Score a transcript against a passage",
		Long: `Compare a speech transcript with the passage that was read aloud.

Words are judged position by position. Use "-" as a file name to read from stdin.`,
		Args: cobra.NoArgs,
		RunE: runCheckCmd,
	}
	cmd.Flags().StringVar(&checkText, "text", "", "expected passage text")
	cmd.Flags().StringVar(&checkTextFile, "text-file", "", "file with the expected passage")
	cmd.Flags().StringVar(&checkTranscript, "transcript", "", "recognized transcript")
	cmd.Flags().StringVar(&checkTranscriptFile, "transcript-file", "", "file with the recognized transcript")
	cmd.Flags().Float64Var(&checkSeconds, "seconds", 0, "elapsed reading time in seconds")
	cmd.Flags().StringVar(&checkFormat, "format", formatText, "output format (text or yaml)")
	cmd.Flags().IntVar(&practiceTroubleTop, "top", defaultTroubleTop, "number of practice words to show")
	cmd.MarkFlagsMutuallyExclusive("text", "text-file")
	cmd.MarkFlagsMutuallyExclusive("transcript", "transcript-file")
	return cmd
}

func runCheckCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "top", &practiceTroubleTop, fileCfg.Practice.TroubleTop)

	format := strings.ToLower(strings.TrimSpace(checkFormat))
	if format != formatText && format != formatYAML {
		return fmt.Errorf("--format must be %q or %q", formatText, formatYAML)
	}
	if checkSeconds < 0 {
		return fmt.Errorf("--seconds must be >= 0")
	}
	if practiceTroubleTop < 0 {
		return fmt.Errorf("--top must be >= 0")
	}
	if checkTextFile == "-" && checkTranscriptFile == "-" {
		return fmt.Errorf("only one of --text-file and --transcript-file can read stdin")
	}

	expected, err := readInput(cmd.InOrStdin(), checkText, checkTextFile)
	if err != nil {
		return fmt.Errorf("failed to read passage: %w", err)
	}
	if strings.TrimSpace(expected) == "" {
		return fmt.Errorf("--text or --text-file is required")
	}
	transcript, err := readInput(cmd.InOrStdin(), checkTranscript, checkTranscriptFile)
	if err != nil {
		return fmt.Errorf("failed to read transcript: %w", err)
	}

	report := stats.BuildReport(expected, transcript, checkSeconds, practiceTroubleTop)
	out := cmd.OutOrStdout()
	if format == formatYAML {
		return stats.WriteYAML(out, report)
	}
	if report.Result.RecognitionFailed {
		logErrln("transcript is a recognizer failure message; scoring it as no speech")
	}
	return writeCheckText(out, report)
}

func writeCheckText(out io.Writer, report stats.Report) error {
	line := render.Plain(report.Result)
	if render.UseColor(out) {
		line = render.Words(report.Result, render.TerminalWidth(out, defaultWrapWidth))
	}
	if line != "" {
		if _, err := fmt.Fprintf(out, "%s\n\n", line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	if err := stats.RenderReport(out, report); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// readInput returns value, or the contents of path when set. A path of "-"
// reads stdin.
func readInput(stdin io.Reader, value, path string) (string, error) {
	switch path {
	case "":
		return value, nil
	case "-":
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", err
		}
		return string(data), nil
	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
}
