package converter

import (
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/FSSCoding/fss-parse-word/pkg/docmodel"
	"github.com/FSSCoding/fss-parse-word/pkg/util"
)

var styleDigit = regexp.MustCompile(`\d+`)

// runWrapper pairs a formatting predicate with its markup delimiters. The
// wrappers are applied in slice order, each wrapping the previous result, so
// the emitted nesting is deterministic and the counterpart inline parser can
// rely on it.
type runWrapper struct {
	applies func(docmodel.Run) bool
	open    string
	close   string
}

var runWrappers = []runWrapper{
	{func(r docmodel.Run) bool { return r.Superscript }, "<sup>", "</sup>"},
	{func(r docmodel.Run) bool { return r.Subscript }, "<sub>", "</sub>"},
	{func(r docmodel.Run) bool { return r.Strike }, "~~", "~~"},
	{func(r docmodel.Run) bool { return r.Underline }, "<u>", "</u>"},
	{func(r docmodel.Run) bool { return r.Bold && r.Italic }, "***", "***"},
	{func(r docmodel.Run) bool { return r.Bold && !r.Italic }, "**", "**"},
	{func(r docmodel.Run) bool { return r.Italic && !r.Bold }, "*", "*"},
}

// docTranslator walks a document's paragraph and table sequence, emitting
// markup lines and accumulating the ConversionRecord.
type docTranslator struct {
	logger *slog.Logger
	record *ConversionRecord
	line   int
}

func newDocTranslator(handler slog.Handler) *docTranslator {
	if handler == nil {
		handler = slog.NewTextHandler(io.Discard, nil)
	}
	return &docTranslator{
		logger: slog.New(handler).With(slog.String("component", "docToMarkup")),
		record: NewConversionRecord(),
	}
}

// Translate produces the markup body (no envelope) and the metadata record.
func (t *docTranslator) Translate(doc *docmodel.Document) (string, *ConversionRecord) {
	var lines []string

	for _, p := range doc.Paragraphs() {
		emitted := t.translateParagraph(p)
		if strings.TrimSpace(emitted) == "" {
			// Blank paragraphs are dropped outright, a deliberate lossy
			// normalization.
			continue
		}
		lines = append(lines, emitted)
		t.line++
	}

	for _, table := range doc.Tables() {
		block := t.translateTable(table)
		if block == "" {
			continue
		}
		lines = append(lines, block)
		t.line += strings.Count(block, "\n")
	}

	t.logger.Debug("Document walk complete",
		slog.Int("lines", len(lines)),
		slog.Int("headings", len(t.record.HeadingLevels)),
		slog.Int("tables", len(t.record.Tables)))

	return strings.Join(lines, "\n"), t.record
}

func (t *docTranslator) translateParagraph(p *docmodel.Paragraph) string {
	text := p.Text()
	if strings.TrimSpace(text) == "" {
		return ""
	}

	// Heading and list classification wins over inline-run formatting.
	if strings.HasPrefix(p.Style, "Heading") || strings.HasPrefix(p.Style, "Title") {
		level := headingLevelFromStyle(p.Style)
		t.record.HeadingLevels[t.line] = level
		return strings.Repeat("#", level) + " " + text
	}

	if isListStyle(p.Style) {
		t.record.Lists = append(t.record.Lists, ListEntry{Line: t.line, Style: p.Style})
		if strings.Contains(p.Style, "Bullet") || strings.Contains(p.Style, "bullet") {
			return "- " + text
		}
		return "1. " + text
	}

	formatted := t.translateRuns(p.Runs)

	switch p.Alignment {
	case docmodel.AlignCenter:
		t.record.Styles[strconv.Itoa(t.line)] = "center"
	case docmodel.AlignRight:
		t.record.Styles[strconv.Itoa(t.line)] = "right"
	}

	return formatted
}

// translateRuns wraps each run's text according to its attributes and
// rewrites hyperlink runs as markup links with a slug anchor.
func (t *docTranslator) translateRuns(runs []docmodel.Run) string {
	var out strings.Builder
	pos := 0

	for _, run := range runs {
		start := pos
		end := pos + utf8.RuneCountInString(run.Text)

		text := run.Text
		for _, w := range runWrappers {
			if w.applies(run) {
				text = w.open + text + w.close
			}
		}

		if run.Hyperlink != "" {
			t.record.Hyperlinks = append(t.record.Hyperlinks, LinkEntry{Start: start, End: end, Line: t.line})
			text = fmt.Sprintf("[%s](#%s)", run.Text, util.Slug(run.Text))
		}

		out.WriteString(text)
		pos = end
	}
	return out.String()
}

func (t *docTranslator) translateTable(table *docmodel.Table) string {
	if len(table.Rows) == 0 {
		return ""
	}

	data := make([][]string, 0, len(table.Rows))
	for _, row := range table.Rows {
		cells := make([]string, 0, len(row.Cells))
		for _, c := range row.Cells {
			cells = append(cells, strings.TrimSpace(c.Text))
		}
		data = append(data, cells)
	}
	if len(data) == 0 || len(data[0]) == 0 {
		return ""
	}

	t.record.Tables = append(t.record.Tables, TableEntry{
		Line: t.line,
		Rows: len(data),
		Cols: len(data[0]),
		Data: data,
	})

	out := make([]string, 0, len(data)+1)
	out = append(out, "| "+strings.Join(data[0], " | ")+" |")
	separators := make([]string, len(data[0]))
	for i := range separators {
		separators[i] = "---"
	}
	out = append(out, "| "+strings.Join(separators, " | ")+" |")
	for _, row := range data[1:] {
		out = append(out, "| "+strings.Join(row, " | ")+" |")
	}
	return strings.Join(out, "\n")
}

// headingLevelFromStyle parses the level embedded in a heading style name.
// "Title" is level 1; a style without a digit defaults to 1.
func headingLevelFromStyle(style string) int {
	if style == "Title" {
		return 1
	}
	digits := styleDigit.FindString(style)
	if digits == "" {
		return 1
	}
	level, err := strconv.Atoi(digits)
	if err != nil || level < 1 {
		return 1
	}
	if level > 6 {
		return 6
	}
	return level
}

func isListStyle(style string) bool {
	for _, marker := range []string{"List", "Bullet", "Number"} {
		if strings.Contains(style, marker) {
			return true
		}
	}
	return false
}
