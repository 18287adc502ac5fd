package converter

import "github.com/FSSCoding/fss-parse-word/pkg/converter/safety"

// Direction selects which translator a conversion run uses.
type Direction string

const (
	// DirectionAuto derives the direction from the source file extension.
	DirectionAuto Direction = "auto"
	// DirectionDocToMarkup converts a .docx document to Markdown.
	DirectionDocToMarkup Direction = "docx2md"
	// DirectionMarkupToDoc converts Markdown to a .docx document.
	DirectionMarkupToDoc Direction = "md2docx"
)

// SafetyPolicy is the safety gate's switch set, constructed once from flags
// and passed by reference into the gate; never mutated mid-run.
type SafetyPolicy = safety.Policy

// DefaultSafetyPolicy returns the policy used when no flags override it:
// everything on.
func DefaultSafetyPolicy() SafetyPolicy {
	return safety.DefaultPolicy()
}
