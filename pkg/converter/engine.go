package converter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/FSSCoding/fss-parse-word/pkg/converter/encoding"
	"github.com/FSSCoding/fss-parse-word/pkg/converter/render"
	"github.com/FSSCoding/fss-parse-word/pkg/converter/safety"
	"github.com/FSSCoding/fss-parse-word/pkg/docmodel"
)

// Convert executes one conversion run: validate options, fingerprint the
// source, run the safety gate against the target, translate, and write the
// output atomically. The returned Report is populated even on late failures
// so callers can surface partial context.
func Convert(ctx context.Context, opts Options) (*Report, error) {
	start := time.Now()

	if err := opts.Validate(); err != nil {
		return nil, err
	}
	direction, err := opts.ResolvedDirection()
	if err != nil {
		return nil, err
	}
	targetPath := opts.ResolvedTargetPath(direction)

	logger := newLogger(opts.Logger)
	report := &Report{
		Direction:  direction,
		SourcePath: opts.SourcePath,
		TargetPath: targetPath,
	}
	defer report.finish(start)

	if _, err := os.Stat(opts.SourcePath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return report, fmt.Errorf("%w: %s", ErrMissingSource, opts.SourcePath)
		}
		return report, fmt.Errorf("stat source %s: %w", opts.SourcePath, err)
	}

	report.SourceHash, err = safety.Fingerprint(opts.SourcePath)
	if err != nil {
		return report, err
	}

	gate := safety.NewGate(opts.Safety, opts.Prompter, opts.Logger)
	report.BackupPath, err = gate.CheckAndPrepare(opts.SourcePath, targetPath)
	if err != nil {
		return report, err
	}

	if err := ctx.Err(); err != nil {
		return report, err
	}

	logger.Info("Starting conversion",
		slog.String("direction", string(direction)),
		slog.String("source", opts.SourcePath),
		slog.String("target", targetPath))

	switch direction {
	case DirectionDocToMarkup:
		err = convertDocToMarkup(ctx, opts, targetPath, report)
	case DirectionMarkupToDoc:
		err = convertMarkupToDoc(ctx, opts, targetPath, report)
	default:
		err = fmt.Errorf("%w: unreachable direction %q", ErrConfigValidation, direction)
	}
	if err != nil {
		return report, err
	}

	if opts.Safety.ValidateHash {
		report.TargetHash, err = safety.Fingerprint(targetPath)
		if err != nil {
			report.warn("post-write hash failed: " + err.Error())
		}
	}

	logger.Info("Conversion complete",
		slog.String("target", targetPath),
		slog.Duration("duration", time.Since(start)),
		slog.Int("warnings", len(report.Warnings)))
	return report, nil
}

func convertDocToMarkup(ctx context.Context, opts Options, targetPath string, report *Report) error {
	doc, err := docmodel.Open(opts.SourcePath)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStructuralConversion, err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	translator := newDocTranslator(opts.Logger)
	body, record := translator.Translate(doc)

	record.FileHash = report.SourceHash
	record.Timestamp = time.Now().UTC().Format(time.RFC3339)

	envelope, err := record.EncodeEnvelope()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStructuralConversion, err)
	}
	content := body + envelope

	if opts.VerifyOutput {
		if verifyErr := render.Verify(opts.Renderer, []byte(body)); verifyErr != nil {
			report.warn("output verification failed: " + verifyErr.Error())
		}
	}

	if err := writeFileAtomic(targetPath, []byte(content)); err != nil {
		return err
	}

	report.Paragraphs = len(doc.Paragraphs())
	report.Headings = len(record.HeadingLevels)
	report.Tables = len(record.Tables)
	report.Lists = len(record.Lists)
	report.Links = len(record.Hyperlinks)
	return nil
}

func convertMarkupToDoc(ctx context.Context, opts Options, targetPath string, report *Report) error {
	raw, err := os.ReadFile(opts.SourcePath)
	if err != nil {
		return fmt.Errorf("read source %s: %w", opts.SourcePath, err)
	}
	if encoding.IsBinary(raw) {
		return fmt.Errorf("%w: %s", ErrBinaryInput, opts.SourcePath)
	}

	normalized, encName, err := encoding.Normalize(raw, opts.DefaultEncoding)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBinaryInput, err)
	}
	if encName != "utf-8" {
		report.warn("source transcoded from " + encName)
	}

	cfg := opts.Style
	body, overrides := extractFrontMatter(normalized)
	if overrides != nil {
		cfg = overrides.Apply(cfg)
	}

	content := StripEnvelope(string(body))
	record, _ := DecodeEnvelope(string(body))

	var doc *docmodel.Document
	if opts.TemplatePath != "" {
		doc, err = docmodel.NewFromTemplate(opts.TemplatePath)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrStructuralConversion, err)
		}
	} else {
		doc = docmodel.New()
		setupDefaultStyles(doc, cfg)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	translator := newMarkupTranslator(opts.Logger, cfg, record)
	translator.Translate(doc, content)

	if err := saveDocAtomic(doc, targetPath); err != nil {
		return err
	}

	report.Paragraphs = len(doc.Paragraphs())
	report.Tables = len(doc.Tables())
	for _, p := range doc.Paragraphs() {
		switch {
		case strings.HasPrefix(p.Style, "Heading"), p.Style == "Title":
			report.Headings++
		case strings.HasPrefix(p.Style, "List"):
			report.Lists++
		}
	}
	return nil
}

// writeFileAtomic writes data through a temp file in the target's directory
// followed by a rename, so a crash never leaves a half-written target.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".convert-*.tmp")
	if err != nil {
		return fmt.Errorf("%w: create temp file: %v", ErrWriteFailed, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	return nil
}

// saveDocAtomic saves the document archive through a temp path plus rename.
func saveDocAtomic(doc *docmodel.Document, path string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".convert-*.docx")
	if err != nil {
		return fmt.Errorf("%w: create temp file: %v", ErrWriteFailed, err)
	}
	tmpPath := tmp.Name()
	tmp.Close()

	if err := doc.Save(tmpPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	return nil
}

func newLogger(handler slog.Handler) *slog.Logger {
	if handler == nil {
		handler = slog.NewTextHandler(io.Discard, nil)
	}
	return slog.New(handler).With(slog.String("component", "engine"))
}
