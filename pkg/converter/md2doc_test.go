package converter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FSSCoding/fss-parse-word/pkg/docmodel"
)

func parseMarkup(t *testing.T, body string) *docmodel.Document {
	t.Helper()
	doc := docmodel.New()
	cfg := DefaultStyleConfig()
	setupDefaultStyles(doc, cfg)
	newMarkupTranslator(nil, cfg, nil).Translate(doc, body)
	return doc
}

func TestParseHeadings(t *testing.T) {
	doc := parseMarkup(t, "# One\n## Two\n###### Six\n####### Clamped")

	paras := doc.Paragraphs()
	require.Len(t, paras, 4)
	assert.Equal(t, "Heading 1", paras[0].Style)
	assert.Equal(t, "One", paras[0].Text())
	assert.Equal(t, "Heading 2", paras[1].Style)
	assert.Equal(t, "Heading 6", paras[2].Style)
	assert.Equal(t, "Heading 6", paras[3].Style)
	assert.Equal(t, "Clamped", paras[3].Text())
}

func TestParseCustomHeadingFormatting(t *testing.T) {
	doc := docmodel.New()
	cfg := DefaultStyleConfig()
	cfg.UseBuiltinStyles = false
	newMarkupTranslator(nil, cfg, nil).Translate(doc, "## Colored")

	paras := doc.Paragraphs()
	require.Len(t, paras, 1)
	assert.Empty(t, paras[0].Style)
	require.Len(t, paras[0].Runs, 1)
	run := paras[0].Runs[0]
	assert.True(t, run.Bold)
	assert.Equal(t, "C55A11", run.Color)
	assert.Equal(t, 14.0, run.Size)
}

func TestParseLists(t *testing.T) {
	doc := parseMarkup(t, "- alpha\n* beta\n+ gamma\n1. first\n12. twelfth")

	paras := doc.Paragraphs()
	require.Len(t, paras, 5)
	for i := 0; i < 3; i++ {
		assert.Equal(t, "List Bullet", paras[i].Style)
	}
	assert.Equal(t, "alpha", paras[0].Text())
	assert.Equal(t, "List Number", paras[3].Style)
	assert.Equal(t, "first", paras[3].Text())
	assert.Equal(t, "twelfth", paras[4].Text())
}

func TestParseBlockquote(t *testing.T) {
	doc := parseMarkup(t, "> quoted wisdom")

	paras := doc.Paragraphs()
	require.Len(t, paras, 1)
	assert.Equal(t, "Quote", paras[0].Style)
	assert.Equal(t, "quoted wisdom", paras[0].Text())
}

func TestParseTableReconstruction(t *testing.T) {
	doc := parseMarkup(t, "| A | B |\n| --- | --- |\n| 1 | 2 |")

	tables := doc.Tables()
	require.Len(t, tables, 1)
	table := tables[0]
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "A", table.Cell(0, 0).Text)
	assert.Equal(t, "B", table.Cell(0, 1).Text)
	assert.True(t, table.Cell(0, 0).Bold)
	assert.Equal(t, "1", table.Cell(1, 0).Text)
	assert.Equal(t, "2", table.Cell(1, 1).Text)
	assert.False(t, table.Cell(1, 0).Bold)
}

func TestParseTableDoesNotSwallowFollowingLine(t *testing.T) {
	doc := parseMarkup(t, "| A | B |\n| --- | --- |\n| 1 | 2 |\nTrailing paragraph.")

	require.Len(t, doc.Tables(), 1)
	paras := doc.Paragraphs()
	require.Len(t, paras, 1)
	assert.Equal(t, "Trailing paragraph.", paras[0].Text())
}

func TestParseCodeBlock(t *testing.T) {
	doc := parseMarkup(t, "```go\nfunc main() {}\n\nprintln(1)\n```\nafter")

	paras := doc.Paragraphs()
	require.Len(t, paras, 4)
	cfg := DefaultStyleConfig()
	assert.Equal(t, "func main() {}", paras[0].Text())
	assert.Equal(t, cfg.CodeFont, paras[0].Runs[0].Font)
	assert.Equal(t, cfg.CodeSize, paras[0].Runs[0].Size)
	assert.Equal(t, codeBlockIndent, paras[0].LeftIndent)
	assert.Equal(t, codeBlockSpacing, paras[0].SpacingBefore)
	assert.Equal(t, "println(1)", paras[2].Text())
	assert.Equal(t, codeBlockSpacing, paras[2].SpacingAfter)
	assert.Equal(t, "after", paras[3].Text())
}

func TestParseUnterminatedCodeBlockFlushes(t *testing.T) {
	doc := parseMarkup(t, "```\norphaned line")

	paras := doc.Paragraphs()
	require.Len(t, paras, 1)
	assert.Equal(t, "orphaned line", paras[0].Text())
	assert.Equal(t, DefaultStyleConfig().CodeFont, paras[0].Runs[0].Font)
}

func TestParseHorizontalRule(t *testing.T) {
	cases := []string{
		"---", "***", "___",
		strings.Repeat("-", 10),
		strings.Repeat("─", 16), // box-drawing divider
		strings.Repeat("=", 25), // lone fence
	}
	for _, line := range cases {
		t.Run(line, func(t *testing.T) {
			doc := parseMarkup(t, line)
			paras := doc.Paragraphs()
			require.Len(t, paras, 1)
			assert.Equal(t, docmodel.AlignCenter, paras[0].Alignment)
			assert.Equal(t, strings.Repeat("_", horizontalRuleWidth), paras[0].Text())
			assert.Equal(t, horizontalRuleColor, paras[0].Runs[0].Color)
		})
	}
}

func TestNonRuleRunsStayPlainText(t *testing.T) {
	cases := []string{
		"----",                  // below the length threshold
		strings.Repeat("_", 12), // underscores only divide as exact "___"
		strings.Repeat("─", 8),  // box-drawing run below threshold
	}
	for _, line := range cases {
		t.Run(line, func(t *testing.T) {
			doc := parseMarkup(t, line)
			paras := doc.Paragraphs()
			require.Len(t, paras, 1)
			assert.Equal(t, docmodel.AlignDefault, paras[0].Alignment)
			assert.Equal(t, line, paras[0].Text())
		})
	}
}

func TestParseHeaderBoxConsumesThreeLines(t *testing.T) {
	fence := strings.Repeat("=", 25)
	doc := parseMarkup(t, fence+"\nQUARTERLY REPORT\n"+fence+"\nbody text")

	paras := doc.Paragraphs()
	require.Len(t, paras, 2)
	box := paras[0]
	assert.Equal(t, "QUARTERLY REPORT", box.Text())
	assert.Equal(t, docmodel.AlignCenter, box.Alignment)
	assert.True(t, box.BorderTop)
	assert.True(t, box.BorderBottom)
	assert.True(t, box.Runs[0].Bold)
	assert.Equal(t, headerBoxFontSize, box.Runs[0].Size)

	assert.Equal(t, "body text", paras[1].Text())
}

func TestParseHeaderBoxRejectsDividerTitle(t *testing.T) {
	fence := strings.Repeat("=", 25)
	doc := parseMarkup(t, fence+"\n"+strings.Repeat("-", 20)+"\n"+fence)

	paras := doc.Paragraphs()
	require.Len(t, paras, 3)
	for _, p := range paras {
		assert.False(t, p.BorderTop)
		assert.Equal(t, docmodel.AlignCenter, p.Alignment)
		assert.Equal(t, strings.Repeat("_", horizontalRuleWidth), p.Text())
	}
}

func TestParseHeaderBoxRequiresMinimumFence(t *testing.T) {
	fence := strings.Repeat("=", 12) // below the 20-char default
	doc := parseMarkup(t, fence+"\nTITLE\n"+fence)

	for _, p := range doc.Paragraphs() {
		assert.False(t, p.BorderTop)
	}
}

func TestParseHeaderBoxThresholdConfigurable(t *testing.T) {
	doc := docmodel.New()
	cfg := DefaultStyleConfig()
	cfg.HeaderBoxMinLen = 5
	fence := strings.Repeat("=", 6)
	newMarkupTranslator(nil, cfg, nil).Translate(doc, fence+"\nTITLE\n"+fence)

	paras := doc.Paragraphs()
	require.Len(t, paras, 1)
	assert.True(t, paras[0].BorderTop)
}

func TestParseBlankLinesBecomeEmptyParagraphs(t *testing.T) {
	doc := parseMarkup(t, "one\n\ntwo")

	paras := doc.Paragraphs()
	require.Len(t, paras, 3)
	assert.Equal(t, "one", paras[0].Text())
	assert.Empty(t, paras[1].Text())
	assert.Equal(t, "two", paras[2].Text())
}

func TestRestoreAlignmentFromRecord(t *testing.T) {
	record := NewConversionRecord()
	record.Styles["1"] = "center"

	doc := docmodel.New()
	cfg := DefaultStyleConfig()
	newMarkupTranslator(nil, cfg, record).Translate(doc, "plain\ncentered line")

	paras := doc.Paragraphs()
	require.Len(t, paras, 2)
	assert.Equal(t, docmodel.AlignDefault, paras[0].Alignment)
	assert.Equal(t, docmodel.AlignCenter, paras[1].Alignment)
}
