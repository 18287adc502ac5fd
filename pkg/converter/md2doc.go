package converter

import (
	"bytes"
	"io"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/adrg/frontmatter"

	"github.com/FSSCoding/fss-parse-word/pkg/docmodel"
)

// parserState enumerates the line-level parser states. The parser is a
// deliberate finite-state machine: fenced code is the only multi-line state,
// and every other construct is decided per line with bounded lookahead.
type parserState int

const (
	stateNormal parserState = iota
	stateInCodeBlock
)

var numberedItemRe = regexp.MustCompile(`^\s*\d+\.\s+`)

// tableSeparatorRe matches one cell of a table delimiter row ("---", ":--:").
var tableSeparatorRe = regexp.MustCompile(`^:?-{3,}:?$`)

// markupTranslator turns markup lines into document body elements.
type markupTranslator struct {
	logger *slog.Logger
	cfg    StyleConfig
	record *ConversionRecord // prior-conversion metadata, may be empty
}

func newMarkupTranslator(handler slog.Handler, cfg StyleConfig, record *ConversionRecord) *markupTranslator {
	if handler == nil {
		handler = slog.NewTextHandler(io.Discard, nil)
	}
	if record == nil {
		record = NewConversionRecord()
	}
	return &markupTranslator{
		logger: slog.New(handler).With(slog.String("component", "markupToDoc")),
		cfg:    cfg,
		record: record,
	}
}

// extractFrontMatter splits an optional YAML front-matter block from content
// and decodes it as style overrides. Any parse failure is treated as "no
// front matter": the original content is returned and the block, if present,
// passes through as body text.
func extractFrontMatter(content []byte) ([]byte, *StyleOverrides) {
	var overrides StyleOverrides
	body, err := frontmatter.Parse(bytes.NewReader(content), &overrides)
	if err != nil {
		return content, nil
	}
	if len(body) == len(content) {
		return content, nil
	}
	return body, &overrides
}

// Translate parses the markup body into doc. The body must already be
// stripped of its metadata envelope and front matter.
func (t *markupTranslator) Translate(doc *docmodel.Document, body string) {
	lines := strings.Split(body, "\n")

	state := stateNormal
	var codeBuf []string

	for i := 0; i < len(lines); i++ {
		line := lines[i]
		trimmed := strings.TrimSpace(line)

		if state == stateInCodeBlock {
			if strings.HasPrefix(trimmed, "```") {
				t.addCodeBlock(doc, codeBuf)
				codeBuf = nil
				state = stateNormal
				continue
			}
			codeBuf = append(codeBuf, line)
			continue
		}

		switch {
		case strings.HasPrefix(trimmed, "```"):
			state = stateInCodeBlock

		case trimmed == "":
			doc.AddParagraph("", "")

		case t.isHeaderBoxAt(lines, i):
			t.addHeaderBox(doc, strings.TrimSpace(lines[i+1]))
			i += 2

		case t.isHorizontalRule(trimmed):
			t.addHorizontalRule(doc)

		case strings.HasPrefix(trimmed, "#"):
			t.addHeading(doc, trimmed)

		case strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ") || strings.HasPrefix(trimmed, "+ "):
			p := doc.AddParagraph("", "List Bullet")
			applyInlineFormatting(p, trimmed[2:], &t.cfg)

		case numberedItemRe.MatchString(trimmed):
			p := doc.AddParagraph("", "List Number")
			applyInlineFormatting(p, numberedItemRe.ReplaceAllString(trimmed, ""), &t.cfg)

		case strings.HasPrefix(trimmed, "|"):
			i = t.addTable(doc, lines, i)

		case strings.HasPrefix(trimmed, ">"):
			p := doc.AddParagraph("", "Quote")
			applyInlineFormatting(p, strings.TrimSpace(strings.TrimPrefix(trimmed, ">")), &t.cfg)

		default:
			p := doc.AddParagraph("", "")
			applyInlineFormatting(p, line, &t.cfg)
			t.restoreAlignment(p, i)
		}
	}

	// An unterminated fence at end of input still renders its buffered lines.
	if state == stateInCodeBlock && len(codeBuf) > 0 {
		t.logger.Warn("Unterminated code fence at end of input", slog.Int("lines", len(codeBuf)))
		t.addCodeBlock(doc, codeBuf)
	}
}

// restoreAlignment reapplies a recorded center/right alignment for a body
// line. Restoration is best effort: a stale or absent record leaves the
// paragraph at its default alignment.
func (t *markupTranslator) restoreAlignment(p *docmodel.Paragraph, line int) {
	switch t.record.Styles[strconv.Itoa(line)] {
	case "center":
		p.Alignment = docmodel.AlignCenter
	case "right":
		p.Alignment = docmodel.AlignRight
	}
}

// isHorizontalRule recognizes the three canonical thematic-break spellings
// plus long runs of a single divider character (dash, equals, or the
// box-drawing horizontal) at or beyond the configured minimum.
func (t *markupTranslator) isHorizontalRule(trimmed string) bool {
	switch trimmed {
	case "---", "***", "___":
		return true
	}
	minLen := t.cfg.RuleMinLen
	if minLen <= 0 {
		minLen = DefaultRuleMinLen
	}
	runes := []rune(trimmed)
	if len(runes) < minLen {
		return false
	}
	first := runes[0]
	if !strings.ContainsRune("-=─", first) {
		return false
	}
	for _, r := range runes[1:] {
		if r != first {
			return false
		}
	}
	return true
}

// isHeaderBoxAt reports whether lines[i] opens a three-line bordered header:
// a '=' fence of at least the configured length, a non-divider title line,
// and a closing '=' fence.
func (t *markupTranslator) isHeaderBoxAt(lines []string, i int) bool {
	if i+2 >= len(lines) {
		return false
	}
	minLen := t.cfg.HeaderBoxMinLen
	if minLen <= 0 {
		minLen = DefaultHeaderBoxMinLen
	}
	isFence := func(s string) bool {
		s = strings.TrimSpace(s)
		return len(s) >= minLen && strings.Count(s, "=") == len(s)
	}
	title := strings.TrimSpace(lines[i+1])
	return isFence(lines[i]) && title != "" && !isDividerText(title) && isFence(lines[i+2])
}

// isDividerText reports whether every non-space character of s is a divider
// character, which disqualifies s as a header-box title.
func isDividerText(s string) bool {
	seen := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		seen = true
		if !strings.ContainsRune("=-_", r) {
			return false
		}
	}
	return seen
}

func (t *markupTranslator) addHeading(doc *docmodel.Document, trimmed string) {
	level := 0
	for level < len(trimmed) && trimmed[level] == '#' {
		level++
	}
	text := strings.TrimSpace(trimmed[level:])
	if level > 6 {
		level = 6
	}
	if text == "" {
		return
	}

	if t.cfg.UseBuiltinStyles {
		doc.AddHeading(text, level)
		return
	}

	// Custom mode formats the heading directly instead of referencing the
	// built-in style catalogue.
	before, after := t.cfg.HeadingSpacing(level)
	p := doc.AddParagraph("", "")
	p.SpacingBefore = before
	p.SpacingAfter = after
	p.KeepWithNext = true
	run := p.AddRun(text)
	run.Bold = true
	run.Font = t.cfg.HeadingFont
	run.Size = t.cfg.HeadingSize(level)
	run.Color = t.cfg.HeadingColor(level)
}

// addTable consumes the run of pipe-delimited lines starting at start and
// returns the index of the last line consumed, so the caller's loop resumes
// on the first line after the table.
func (t *markupTranslator) addTable(doc *docmodel.Document, lines []string, start int) int {
	end := start
	var grid [][]string
	for ; end < len(lines); end++ {
		trimmed := strings.TrimSpace(lines[end])
		if !strings.HasPrefix(trimmed, "|") {
			break
		}
		cells := splitTableRow(trimmed)
		if isSeparatorRow(cells) {
			continue
		}
		grid = append(grid, cells)
	}
	last := end - 1

	if len(grid) == 0 || len(grid[0]) == 0 {
		return last
	}
	cols := len(grid[0])

	table := doc.AddTable(len(grid), cols)
	table.Style = t.cfg.TableStyle
	table.AutoFit = t.cfg.TableAutoFit
	for r, row := range grid {
		for c := 0; c < cols; c++ {
			cell := table.Cell(r, c)
			if c < len(row) {
				cell.Text = row[c]
			}
			cell.Bold = r == 0
		}
	}
	return last
}

// splitTableRow breaks "| a | b |" into its trimmed cell values.
func splitTableRow(trimmed string) []string {
	parts := strings.Split(trimmed, "|")
	if len(parts) > 0 && strings.TrimSpace(parts[0]) == "" {
		parts = parts[1:]
	}
	if len(parts) > 0 && strings.TrimSpace(parts[len(parts)-1]) == "" {
		parts = parts[:len(parts)-1]
	}
	cells := make([]string, len(parts))
	for i, p := range parts {
		cells[i] = strings.TrimSpace(p)
	}
	return cells
}

func isSeparatorRow(cells []string) bool {
	if len(cells) == 0 {
		return false
	}
	for _, c := range cells {
		if !tableSeparatorRe.MatchString(c) {
			return false
		}
	}
	return true
}

// addCodeBlock renders buffered fence content as indented monospace
// paragraphs, one per source line.
func (t *markupTranslator) addCodeBlock(doc *docmodel.Document, buf []string) {
	for i, line := range buf {
		p := doc.AddParagraph("", "")
		p.LeftIndent = codeBlockIndent
		p.RightIndent = codeBlockIndent
		if i == 0 {
			p.SpacingBefore = codeBlockSpacing
		}
		if i == len(buf)-1 {
			p.SpacingAfter = codeBlockSpacing
		}
		run := p.AddRun(line)
		run.Font = t.cfg.CodeFont
		run.Size = t.cfg.CodeSize
	}
}

// addHorizontalRule emits the fixed visual divider: a centered gray
// underscore run.
func (t *markupTranslator) addHorizontalRule(doc *docmodel.Document) {
	p := doc.AddParagraph("", "")
	p.Alignment = docmodel.AlignCenter
	p.SpacingBefore = horizontalRuleSpacing
	p.SpacingAfter = horizontalRuleSpacing
	run := p.AddRun(strings.Repeat("_", horizontalRuleWidth))
	run.Color = horizontalRuleColor
	run.Size = horizontalRuleFontSize
}

// addHeaderBox emits the bordered title treatment for '='-fenced headers.
func (t *markupTranslator) addHeaderBox(doc *docmodel.Document, title string) {
	p := doc.AddParagraph("", "")
	p.Alignment = docmodel.AlignCenter
	p.BorderTop = true
	p.BorderBottom = true
	p.SpacingBefore = headerBoxSpacing
	p.SpacingAfter = headerBoxSpacing
	run := p.AddRun(title)
	run.Bold = true
	run.Size = headerBoxFontSize
}

// setupDefaultStyles registers the style catalogue used when the document is
// not built from a template.
func setupDefaultStyles(doc *docmodel.Document, cfg StyleConfig) {
	doc.DefineStyle(docmodel.Style{
		Name:            "Normal",
		Font:            cfg.FontName,
		Size:            cfg.FontSize,
		LineSpacing:     cfg.LineSpacing,
		SpacingAfter:    cfg.ParagraphSpacingAfter,
		FirstLineIndent: cfg.ParagraphFirstLineIndent,
	})
	doc.DefineStyle(docmodel.Style{
		Name:          "Title",
		Font:          cfg.HeadingFont,
		Size:          cfg.HeadingSize(1) + 4,
		Bold:          true,
		Color:         cfg.HeadingColor(1),
		SpacingBefore: 12,
		SpacingAfter:  8,
	})
	for level := 1; level <= 6; level++ {
		before, after := cfg.HeadingSpacing(level)
		doc.DefineStyle(docmodel.Style{
			Name:          "Heading " + strconv.Itoa(level),
			Font:          cfg.HeadingFont,
			Size:          cfg.HeadingSize(level),
			Bold:          true,
			Color:         cfg.HeadingColor(level),
			SpacingBefore: before,
			SpacingAfter:  after,
			KeepWithNext:  true,
		})
	}
	doc.DefineStyle(docmodel.Style{
		Name:         "List Bullet",
		Font:         cfg.FontName,
		Size:         cfg.FontSize,
		LeftIndent:   cfg.ListIndent,
		SpacingAfter: cfg.ListSpacing,
	})
	doc.DefineStyle(docmodel.Style{
		Name:         "List Number",
		Font:         cfg.FontName,
		Size:         cfg.FontSize,
		LeftIndent:   cfg.ListIndent,
		SpacingAfter: cfg.ListSpacing,
	})
	doc.DefineStyle(docmodel.Style{
		Name:         "Quote",
		Font:         cfg.FontName,
		Size:         cfg.FontSize,
		Color:        "404040",
		LeftIndent:   0.5,
		SpacingAfter: cfg.ParagraphSpacingAfter,
	})
}
