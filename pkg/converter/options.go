package converter

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/FSSCoding/fss-parse-word/pkg/converter/render"
	"github.com/FSSCoding/fss-parse-word/pkg/converter/safety"
	"github.com/FSSCoding/fss-parse-word/pkg/util"
)

// Options is the complete parameter set for one conversion run. Plain fields
// are decodable from configuration; fields tagged "-" are collaborators
// injected by the caller (or defaulted by Convert when nil).
type Options struct {
	// SourcePath is the input file. Required.
	SourcePath string `mapstructure:"source"`

	// TargetPath is the output file. Empty derives the path from the source by
	// swapping extensions.
	TargetPath string `mapstructure:"target"`

	// Direction selects the translator; DirectionAuto derives it from the
	// source extension.
	Direction Direction `mapstructure:"direction"`

	// TemplatePath, when set, supplies the style catalogue for markup-to-doc
	// output from an existing document instead of the built-in defaults.
	TemplatePath string `mapstructure:"template"`

	// Style is the formatting catalogue for markup-to-doc runs. Front matter
	// in the source overlays it.
	Style StyleConfig `mapstructure:"style"`

	// Safety is the pre-write gate policy.
	Safety SafetyPolicy `mapstructure:"safety"`

	// VerifyOutput renders doc-to-markup output through the markup engine as a
	// parseability check.
	VerifyOutput bool `mapstructure:"verify_output"`

	// DefaultEncoding names the fallback charset for markup input that is not
	// valid UTF-8 and defeats detection.
	DefaultEncoding string `mapstructure:"default_encoding"`

	// Logger receives structured logs; nil discards them.
	Logger slog.Handler `mapstructure:"-"`

	// Prompter answers the overwrite confirmation; nil uses the terminal.
	Prompter safety.Prompter `mapstructure:"-"`

	// Renderer verifies emitted markup; nil uses the default engine.
	Renderer render.Renderer `mapstructure:"-"`
}

// NewDefaultOptions returns Options with the default style catalogue and
// safety policy. SourcePath must still be set by the caller.
func NewDefaultOptions() Options {
	return Options{
		Direction: DirectionAuto,
		Style:     DefaultStyleConfig(),
		Safety:    DefaultSafetyPolicy(),
	}
}

// Validate checks the option set before any file is touched. Failures wrap
// ErrConfigValidation.
func (o *Options) Validate() error {
	if o.SourcePath == "" {
		return fmt.Errorf("%w: source path is required", ErrConfigValidation)
	}
	switch o.Direction {
	case DirectionAuto, DirectionDocToMarkup, DirectionMarkupToDoc:
	default:
		return fmt.Errorf("%w: unknown direction %q", ErrConfigValidation, o.Direction)
	}
	if o.Direction == DirectionAuto {
		if _, err := directionForSource(o.SourcePath); err != nil {
			return err
		}
	}
	return nil
}

// ResolvedDirection returns the concrete direction for this run.
func (o *Options) ResolvedDirection() (Direction, error) {
	if o.Direction != DirectionAuto {
		return o.Direction, nil
	}
	return directionForSource(o.SourcePath)
}

// ResolvedTargetPath returns the output path, deriving it from the source
// when none was given: document sources gain ".md", markup sources ".docx".
func (o *Options) ResolvedTargetPath(direction Direction) string {
	if o.TargetPath != "" {
		return o.TargetPath
	}
	dir := filepath.Dir(o.SourcePath)
	stem := util.Stem(o.SourcePath)
	if direction == DirectionDocToMarkup {
		return filepath.Join(dir, stem+ExtMarkdown)
	}
	return filepath.Join(dir, stem+ExtDocx)
}

func directionForSource(path string) (Direction, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ExtDocx:
		return DirectionDocToMarkup, nil
	case ExtMarkdown, ExtMarkdown2:
		return DirectionMarkupToDoc, nil
	}
	return "", fmt.Errorf("%w: cannot infer direction from extension of %q", ErrConfigValidation, path)
}
