// Package cli runs a configured conversion and presents the outcome.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/FSSCoding/fss-parse-word/pkg/converter"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Run executes one conversion with the loaded options and prints a summary.
func Run(ctx context.Context, opts converter.Options, logger *slog.Logger) error {
	report, err := converter.Convert(ctx, opts)
	if err != nil {
		printFailure(err)
		logger.Debug("Conversion failed", slog.Any("error", err))
		return err
	}

	fmt.Fprintf(os.Stdout, "%s %s -> %s\n",
		successStyle.Render("✓"), report.SourcePath, report.TargetPath)
	fmt.Fprintf(os.Stdout, "  %s %s\n", labelStyle.Render("direction"), report.Direction)
	if report.SourceHash != "" {
		fmt.Fprintf(os.Stdout, "  %s %s\n", labelStyle.Render("source sha256"), report.SourceHash)
	}
	if report.TargetHash != "" {
		fmt.Fprintf(os.Stdout, "  %s %s\n", labelStyle.Render("target sha256"), report.TargetHash)
	}
	if report.BackupPath != "" {
		fmt.Fprintf(os.Stdout, "  %s %s\n", labelStyle.Render("backup"), report.BackupPath)
	}
	fmt.Fprintf(os.Stdout, "  %s %d paragraphs, %d headings, %d tables, %d lists, %d links\n",
		labelStyle.Render("elements"),
		report.Paragraphs, report.Headings, report.Tables, report.Lists, report.Links)
	fmt.Fprintf(os.Stdout, "  %s %s\n", labelStyle.Render("elapsed"), report.Duration.Round(time.Millisecond))

	for _, w := range report.Warnings {
		fmt.Fprintf(os.Stdout, "  %s %s\n", warnStyle.Render("warning:"), w)
	}
	return nil
}

// printFailure renders the gate rejections with operator-facing hints; other
// errors pass through plainly.
func printFailure(err error) {
	mark := errorStyle.Render("✗")
	switch {
	case errors.Is(err, converter.ErrCollision):
		fmt.Fprintf(os.Stderr, "%s %v\n", mark, err)
		fmt.Fprintln(os.Stderr, warnStyle.Render("  The target holds content from a different source. Rename or remove it, then retry."))
	case errors.Is(err, converter.ErrUserCancelled):
		fmt.Fprintf(os.Stderr, "%s conversion cancelled\n", mark)
	case errors.Is(err, converter.ErrNoTerminal):
		fmt.Fprintf(os.Stderr, "%s %v\n", mark, err)
		fmt.Fprintln(os.Stderr, warnStyle.Render("  Run interactively or pass --force to approve the overwrite."))
	default:
		fmt.Fprintf(os.Stderr, "%s %v\n", mark, err)
	}
}
