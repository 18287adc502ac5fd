package converter

// Metadata envelope wire markers. The opening marker begins a structured
// comment appended after the markup body; the payload between the markers is
// a JSON object (see ConversionRecord).
const (
	MetadataOpenMarker  = "<!-- CONVERSION_METADATA"
	MetadataCloseMarker = "-->"
)

// Defaults consulted when setting up viper and when constructing bare
// StyleConfig/SafetyPolicy values.
const (
	// DefaultBackupSuffix is appended to the target's extension when the gate
	// creates a pre-overwrite backup ("report.md" -> "report.md.backup").
	DefaultBackupSuffix = ".backup"

	// DefaultRuleMinLen is the minimum length at which a line of repeated
	// rule characters counts as a divider. DefaultHeaderBoxMinLen is the
	// minimum length of the '=' lines fencing a bordered header box. Both are
	// policy choices, not protocol requirements, so StyleConfig can override
	// them.
	DefaultRuleMinLen      = 10
	DefaultHeaderBoxMinLen = 20

	DefaultFontName         = "Calibri"
	DefaultFontSize         = 11.0
	DefaultLineSpacing      = 1.15
	DefaultHeadingFont      = "Calibri"
	DefaultParagraphSpacing = 6.0
	DefaultFirstLineIndent  = 0.0
	DefaultListSpacing      = 0.0
	DefaultListIndent       = 0.25
	DefaultTableStyle       = "Table Grid"
	DefaultTableAutoFit     = true
	DefaultCodeFont         = "Consolas"
	DefaultCodeSize         = 9.0
	DefaultCodeBackground   = "#F5F5F5"
	DefaultUseBuiltinStyles = true
)

// Fixed rendering details for constructs without a direct Markdown
// counterpart.
const (
	horizontalRuleWidth     = 50 // underscore characters per emitted rule
	horizontalRuleFontSize  = 8.0
	horizontalRuleColor     = "808080"
	horizontalRuleSpacing   = 3.0
	headerBoxFontSize       = 14.0
	headerBoxSpacing        = 4.0
	hyperlinkColor          = "0000FF"
	codeBlockIndent         = 0.25
	codeBlockSpacing        = 6.0
)

// File extensions recognized for direction auto-detection.
const (
	ExtDocx      = ".docx"
	ExtMarkdown  = ".md"
	ExtMarkdown2 = ".markdown"
)
