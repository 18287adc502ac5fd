package safety

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/term"
)

// Prompter asks the operator a yes/no question. Implementations must return
// an error, not an implicit yes, when no interactive channel is available.
type Prompter interface {
	Confirm(question string) (bool, error)
}

// TerminalPrompter prompts on stdin/stdout and refuses to run without a
// controlling terminal.
type TerminalPrompter struct {
	In  io.Reader
	Out io.Writer
	// IsTerminal overrides TTY detection in tests; nil uses the real check.
	IsTerminal func() bool
}

// NewTerminalPrompter returns a prompter bound to the process stdin/stdout.
func NewTerminalPrompter() *TerminalPrompter {
	return &TerminalPrompter{In: os.Stdin, Out: os.Stdout}
}

// Confirm implements Prompter. Only "y" and "yes" (case-insensitive) count
// as affirmative.
func (p *TerminalPrompter) Confirm(question string) (bool, error) {
	isTTY := p.IsTerminal
	if isTTY == nil {
		isTTY = func() bool { return term.IsTerminal(int(os.Stdin.Fd())) }
	}
	if !isTTY() {
		return false, ErrNoTerminal
	}

	fmt.Fprintf(p.Out, "%s [y/N]: ", question)
	line, err := bufio.NewReader(p.In).ReadString('\n')
	if err != nil && line == "" {
		return false, fmt.Errorf("read confirmation: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

// AssumeYes is a Prompter that approves every question. Used by --force.
type AssumeYes struct{}

// Confirm implements Prompter.
func (AssumeYes) Confirm(string) (bool, error) { return true, nil }

// Gate orchestrates the pre-write safety checks. Both translation directions
// invoke it identically before the destination file is touched.
type Gate struct {
	policy   Policy
	prompter Prompter
	logger   *slog.Logger
}

// NewGate constructs a gate. A nil prompter falls back to the terminal
// prompter; a nil handler discards logs.
func NewGate(policy Policy, prompter Prompter, handler slog.Handler) *Gate {
	if prompter == nil {
		prompter = NewTerminalPrompter()
	}
	if handler == nil {
		handler = slog.NewTextHandler(io.Discard, nil)
	}
	return &Gate{
		policy:   policy,
		prompter: prompter,
		logger:   slog.New(handler).With(slog.String("component", "safetyGate")),
	}
}

// CheckAndPrepare runs the safety algorithm in order: unconditional collision
// check, overwrite confirmation, backup. It returns the backup path if one
// was created. Backup failure is logged and does not abort.
func (g *Gate) CheckAndPrepare(sourcePath, targetPath string) (backupPath string, err error) {
	collision, err := IsCollision(sourcePath, targetPath)
	if err != nil {
		return "", err
	}
	if collision {
		g.logger.Error("Target exists with different content",
			slog.String("source", sourcePath), slog.String("target", targetPath))
		return "", fmt.Errorf("%w: %s exists with different content", ErrCollision, targetPath)
	}

	if _, statErr := os.Stat(targetPath); statErr != nil {
		// Nothing to overwrite; nothing to confirm or back up.
		return "", nil
	}

	if g.policy.PreventOverwrite && g.policy.RequireConfirmation {
		ok, confirmErr := g.prompter.Confirm(fmt.Sprintf("File %q exists. Overwrite?", targetPath))
		if confirmErr != nil {
			return "", confirmErr
		}
		if !ok {
			return "", ErrUserCancelled
		}
	}

	if g.policy.CreateBackup {
		backupPath, err = Backup(targetPath, g.backupSuffix())
		if err != nil {
			g.logger.Warn("Backup failed, continuing without one",
				slog.String("target", targetPath), slog.String("error", err.Error()))
			return "", nil
		}
		if backupPath != "" {
			g.logger.Info("Backup created", slog.String("backup", backupPath))
		}
	}
	return backupPath, nil
}

func (g *Gate) backupSuffix() string {
	if g.policy.BackupSuffix != "" {
		return g.policy.BackupSuffix
	}
	return ".backup"
}
