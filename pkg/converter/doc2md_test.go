package converter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FSSCoding/fss-parse-word/pkg/docmodel"
)

func translateDoc(doc *docmodel.Document) (string, *ConversionRecord) {
	return newDocTranslator(nil).Translate(doc)
}

func TestTranslateHeadings(t *testing.T) {
	doc := docmodel.New()
	doc.AddHeading("Top", 1)
	doc.AddHeading("Nested", 3)
	doc.AddHeading("Document Title", 0)

	body, record := translateDoc(doc)
	lines := strings.Split(body, "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "# Top", lines[0])
	assert.Equal(t, "### Nested", lines[1])
	assert.Equal(t, "# Document Title", lines[2])

	assert.Equal(t, map[int]int{0: 1, 1: 3, 2: 1}, record.HeadingLevels)
}

func TestTranslateDropsBlankParagraphs(t *testing.T) {
	doc := docmodel.New()
	doc.AddParagraph("first", "")
	doc.AddParagraph("", "")
	doc.AddParagraph("   ", "")
	doc.AddParagraph("second", "")

	body, _ := translateDoc(doc)
	assert.Equal(t, "first\nsecond", body)
}

func TestTranslateRunWrapping(t *testing.T) {
	doc := docmodel.New()
	p := doc.AddParagraph("", "")
	b := p.AddRun("bold")
	b.Bold = true
	p.AddRun(" and ")
	i := p.AddRun("italic")
	i.Italic = true

	body, _ := translateDoc(doc)
	assert.Equal(t, "**bold** and *italic*", body)
}

func TestTranslateBoldItalicUsesTripleAsterisk(t *testing.T) {
	doc := docmodel.New()
	p := doc.AddParagraph("", "")
	run := p.AddRun("emphatic")
	run.Bold = true
	run.Italic = true

	body, _ := translateDoc(doc)
	assert.Equal(t, "***emphatic***", body)
}

func TestTranslateExtendedWrappers(t *testing.T) {
	doc := docmodel.New()
	p := doc.AddParagraph("", "")
	s := p.AddRun("old")
	s.Strike = true
	u := p.AddRun("new")
	u.Underline = true
	sup := p.AddRun("2")
	sup.Superscript = true
	sub := p.AddRun("n")
	sub.Subscript = true

	body, _ := translateDoc(doc)
	assert.Equal(t, "~~old~~<u>new</u><sup>2</sup><sub>n</sub>", body)
}

func TestTranslateBoldWrapsOutsideStrike(t *testing.T) {
	doc := docmodel.New()
	p := doc.AddParagraph("", "")
	run := p.AddRun("both")
	run.Bold = true
	run.Strike = true

	body, _ := translateDoc(doc)
	assert.Equal(t, "**~~both~~**", body)
}

func TestTranslateLists(t *testing.T) {
	doc := docmodel.New()
	doc.AddParagraph("first item", "List Bullet")
	doc.AddParagraph("second item", "List Number")

	body, record := translateDoc(doc)
	lines := strings.Split(body, "\n")
	assert.Equal(t, "- first item", lines[0])
	assert.Equal(t, "1. second item", lines[1])

	require.Len(t, record.Lists, 2)
	assert.Equal(t, ListEntry{Line: 0, Style: "List Bullet"}, record.Lists[0])
	assert.Equal(t, ListEntry{Line: 1, Style: "List Number"}, record.Lists[1])
}

func TestTranslateHyperlink(t *testing.T) {
	doc := docmodel.New()
	p := doc.AddParagraph("", "")
	p.AddRun("see ")
	link := p.AddRun("Section One")
	link.Hyperlink = "section-one"

	body, record := translateDoc(doc)
	assert.Equal(t, "see [Section One](#section-one)", body)

	require.Len(t, record.Hyperlinks, 1)
	assert.Equal(t, LinkEntry{Start: 4, End: 15, Line: 0}, record.Hyperlinks[0])
}

func TestTranslateAlignmentRecorded(t *testing.T) {
	doc := docmodel.New()
	doc.AddParagraph("leading", "")
	centered := doc.AddParagraph("middle", "")
	centered.Alignment = docmodel.AlignCenter
	flushed := doc.AddParagraph("edge", "")
	flushed.Alignment = docmodel.AlignRight

	_, record := translateDoc(doc)
	assert.Equal(t, map[string]string{"1": "center", "2": "right"}, record.Styles)
}

func TestTranslateTableExactLines(t *testing.T) {
	doc := docmodel.New()
	table := doc.AddTable(2, 2)
	table.Cell(0, 0).Text = "A"
	table.Cell(0, 1).Text = "B"
	table.Cell(1, 0).Text = "1"
	table.Cell(1, 1).Text = "2"

	body, record := translateDoc(doc)
	assert.Equal(t, "| A | B |\n| --- | --- |\n| 1 | 2 |", body)

	require.Len(t, record.Tables, 1)
	entry := record.Tables[0]
	assert.Equal(t, 2, entry.Rows)
	assert.Equal(t, 2, entry.Cols)
	assert.Equal(t, [][]string{{"A", "B"}, {"1", "2"}}, entry.Data)
}

func TestHeadingLevelFromStyle(t *testing.T) {
	assert.Equal(t, 1, headingLevelFromStyle("Title"))
	assert.Equal(t, 4, headingLevelFromStyle("Heading 4"))
	assert.Equal(t, 6, headingLevelFromStyle("Heading 9"))
	assert.Equal(t, 1, headingLevelFromStyle("Heading"))
}
