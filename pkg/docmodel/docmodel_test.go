package docmodel

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func saveAndReopen(t *testing.T, doc *Document) *Document {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.docx")
	require.NoError(t, doc.Save(path))
	reopened, err := Open(path)
	require.NoError(t, err)
	return reopened
}

func TestRoundTripParagraphsAndHeadings(t *testing.T) {
	doc := New()
	doc.AddHeading("Overview", 1)
	doc.AddHeading("Details", 2)
	doc.AddParagraph("Plain body text.", "")
	doc.AddParagraph("Indented quote.", "Quote")

	got := saveAndReopen(t, doc)
	paras := got.Paragraphs()
	require.Len(t, paras, 4)

	assert.Equal(t, "Heading 1", paras[0].Style)
	assert.Equal(t, "Overview", paras[0].Text())
	assert.Equal(t, "Heading 2", paras[1].Style)
	assert.Equal(t, "Plain body text.", paras[2].Text())
	assert.Equal(t, "Quote", paras[3].Style)
}

func TestRoundTripRunFormatting(t *testing.T) {
	doc := New()
	p := doc.AddParagraph("", "")
	p.AddRun("plain ")
	bold := p.AddRun("bold")
	bold.Bold = true
	both := p.AddRun(" emphatic")
	both.Bold = true
	both.Italic = true
	strike := p.AddRun(" gone")
	strike.Strike = true
	sup := p.AddRun("2")
	sup.Superscript = true

	got := saveAndReopen(t, doc)
	runs := got.Paragraphs()[0].Runs
	require.Len(t, runs, 5)

	assert.False(t, runs[0].Bold)
	assert.True(t, runs[1].Bold)
	assert.False(t, runs[1].Italic)
	assert.True(t, runs[2].Bold)
	assert.True(t, runs[2].Italic)
	assert.True(t, runs[3].Strike)
	assert.True(t, runs[4].Superscript)
	assert.Equal(t, "plain bold emphatic gone2", got.Paragraphs()[0].Text())
}

func TestRoundTripAlignment(t *testing.T) {
	doc := New()
	p := doc.AddParagraph("centered", "")
	p.Alignment = AlignCenter
	r := doc.AddParagraph("flushed", "")
	r.Alignment = AlignRight

	got := saveAndReopen(t, doc)
	assert.Equal(t, AlignCenter, got.Paragraphs()[0].Alignment)
	assert.Equal(t, AlignRight, got.Paragraphs()[1].Alignment)
}

func TestRoundTripTable(t *testing.T) {
	doc := New()
	table := doc.AddTable(2, 2)
	table.Cell(0, 0).Text = "A"
	table.Cell(0, 1).Text = "B"
	table.Cell(1, 0).Text = "1"
	table.Cell(1, 1).Text = "2"

	got := saveAndReopen(t, doc)
	tables := got.Tables()
	require.Len(t, tables, 1)
	require.Len(t, tables[0].Rows, 2)
	assert.Equal(t, "A", tables[0].Cell(0, 0).Text)
	assert.Equal(t, "B", tables[0].Cell(0, 1).Text)
	assert.Equal(t, "1", tables[0].Cell(1, 0).Text)
	assert.Equal(t, "2", tables[0].Cell(1, 1).Text)

	// Cell paragraphs stay out of the body paragraph sequence.
	assert.Empty(t, got.Paragraphs())
}

func TestRoundTripHyperlinkAnchor(t *testing.T) {
	doc := New()
	p := doc.AddParagraph("", "")
	link := p.AddRun("see details")
	link.Hyperlink = "details"

	got := saveAndReopen(t, doc)
	runs := got.Paragraphs()[0].Runs
	require.Len(t, runs, 1)
	assert.Equal(t, "details", runs[0].Hyperlink)
}

func TestRoundTripEscaping(t *testing.T) {
	doc := New()
	doc.AddParagraph(`a < b & "c" > d`, "")

	got := saveAndReopen(t, doc)
	assert.Equal(t, `a < b & "c" > d`, got.Paragraphs()[0].Text())
}

func TestTemplateStylesPassThrough(t *testing.T) {
	dir := t.TempDir()
	templatePath := filepath.Join(dir, "template.docx")

	template := New()
	template.DefineStyle(Style{Name: "Heading 1", Bold: true, Color: "FF0000", Size: 20})
	template.AddParagraph("template body, discarded", "")
	require.NoError(t, template.Save(templatePath))

	doc, err := NewFromTemplate(templatePath)
	require.NoError(t, err)
	doc.AddHeading("From template", 1)
	// Definitions after template load are ignored.
	doc.DefineStyle(Style{Name: "Heading 1", Color: "00FF00"})

	outPath := filepath.Join(dir, "out.docx")
	require.NoError(t, doc.Save(outPath))

	templateStyles, err := readArchivePart(templatePath, "word/styles.xml")
	require.NoError(t, err)
	outStyles, err := readArchivePart(outPath, "word/styles.xml")
	require.NoError(t, err)
	assert.Equal(t, string(templateStyles), string(outStyles))

	got, err := Open(outPath)
	require.NoError(t, err)
	require.Len(t, got.Paragraphs(), 1)
	assert.Equal(t, "From template", got.Paragraphs()[0].Text())
}

func TestStyleNameFromID(t *testing.T) {
	assert.Equal(t, "Heading 1", styleNameFromID("Heading1"))
	assert.Equal(t, "List Bullet", styleNameFromID("ListBullet"))
	assert.Equal(t, "Title", styleNameFromID("Title"))
	assert.Equal(t, "", styleNameFromID(""))
}
