package docmodel

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// WordprocessingML stores sizes in half-points, spacing in twentieths of a
// point, and indents in twips (1440 per inch). Line spacing multiples use
// 240 units per line with lineRule="auto".
const (
	halfPoints   = 2
	twentieths   = 20
	twipsPerInch = 1440
	lineUnit     = 240
)

const xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

const contentTypesXML = xmlHeader +
	`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
	`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
	`<Default Extension="xml" ContentType="application/xml"/>` +
	`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
	`<Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>` +
	`</Types>`

const rootRelsXML = xmlHeader +
	`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
	`</Relationships>`

const documentRelsXML = xmlHeader +
	`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>` +
	`</Relationships>`

const wordMLNamespace = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

// write emits the complete archive to w.
func (d *Document) write(w io.Writer) error {
	zw := zip.NewWriter(w)

	parts := []struct {
		name    string
		content []byte
	}{
		{"[Content_Types].xml", []byte(contentTypesXML)},
		{"_rels/.rels", []byte(rootRelsXML)},
		{"word/_rels/document.xml.rels", []byte(documentRelsXML)},
		{"word/document.xml", d.documentXML()},
		{"word/styles.xml", d.stylesXML()},
	}
	for _, part := range parts {
		pw, err := zw.Create(part.name)
		if err != nil {
			return fmt.Errorf("create part %s: %w", part.name, err)
		}
		if _, err := pw.Write(part.content); err != nil {
			return fmt.Errorf("write part %s: %w", part.name, err)
		}
	}
	return zw.Close()
}

func (d *Document) documentXML() []byte {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<w:document xmlns:w="` + wordMLNamespace + `"><w:body>`)
	for _, el := range d.body {
		switch v := el.(type) {
		case *Paragraph:
			writeParagraph(&b, v)
		case *Table:
			writeTable(&b, v)
		}
	}
	b.WriteString(`</w:body></w:document>`)
	return []byte(b.String())
}

func writeParagraph(b *strings.Builder, p *Paragraph) {
	b.WriteString(`<w:p>`)
	writeParagraphProps(b, p)
	for i := range p.Runs {
		writeRun(b, &p.Runs[i])
	}
	b.WriteString(`</w:p>`)
}

func writeParagraphProps(b *strings.Builder, p *Paragraph) {
	var props strings.Builder
	if p.Style != "" && p.Style != "Normal" {
		fmt.Fprintf(&props, `<w:pStyle w:val="%s"/>`, styleID(p.Style))
	}
	if p.KeepWithNext {
		props.WriteString(`<w:keepNext/>`)
	}
	if p.BorderTop || p.BorderBottom {
		props.WriteString(`<w:pBdr>`)
		if p.BorderTop {
			props.WriteString(`<w:top w:val="single" w:sz="16" w:space="1" w:color="000000"/>`)
		}
		if p.BorderBottom {
			props.WriteString(`<w:bottom w:val="single" w:sz="16" w:space="1" w:color="000000"/>`)
		}
		props.WriteString(`</w:pBdr>`)
	}
	if p.SpacingBefore > 0 || p.SpacingAfter > 0 || p.LineSpacing > 0 {
		props.WriteString(`<w:spacing`)
		if p.SpacingBefore > 0 {
			fmt.Fprintf(&props, ` w:before="%d"`, int(p.SpacingBefore*twentieths))
		}
		if p.SpacingAfter > 0 {
			fmt.Fprintf(&props, ` w:after="%d"`, int(p.SpacingAfter*twentieths))
		}
		if p.LineSpacing > 0 {
			fmt.Fprintf(&props, ` w:line="%d" w:lineRule="auto"`, int(p.LineSpacing*lineUnit))
		}
		props.WriteString(`/>`)
	}
	if p.LeftIndent > 0 || p.RightIndent > 0 || p.FirstLineIndent > 0 {
		props.WriteString(`<w:ind`)
		if p.LeftIndent > 0 {
			fmt.Fprintf(&props, ` w:left="%d"`, int(p.LeftIndent*twipsPerInch))
		}
		if p.RightIndent > 0 {
			fmt.Fprintf(&props, ` w:right="%d"`, int(p.RightIndent*twipsPerInch))
		}
		if p.FirstLineIndent > 0 {
			fmt.Fprintf(&props, ` w:firstLine="%d"`, int(p.FirstLineIndent*twipsPerInch))
		}
		props.WriteString(`/>`)
	}
	if p.Alignment != AlignDefault {
		fmt.Fprintf(&props, `<w:jc w:val="%s"/>`, jcFromAlignment(p.Alignment))
	}
	if props.Len() > 0 {
		b.WriteString(`<w:pPr>`)
		b.WriteString(props.String())
		b.WriteString(`</w:pPr>`)
	}
}

func writeRun(b *strings.Builder, r *Run) {
	open := `<w:r>`
	if r.Hyperlink != "" {
		fmt.Fprintf(b, `<w:hyperlink w:anchor="%s">`, escapeAttr(r.Hyperlink))
	}
	b.WriteString(open)

	var props strings.Builder
	if r.Font != "" {
		fmt.Fprintf(&props, `<w:rFonts w:ascii="%s" w:hAnsi="%s"/>`, escapeAttr(r.Font), escapeAttr(r.Font))
	}
	if r.Bold {
		props.WriteString(`<w:b/>`)
	}
	if r.Italic {
		props.WriteString(`<w:i/>`)
	}
	if r.Strike {
		props.WriteString(`<w:strike/>`)
	}
	if r.Underline {
		props.WriteString(`<w:u w:val="single"/>`)
	}
	if r.Superscript {
		props.WriteString(`<w:vertAlign w:val="superscript"/>`)
	} else if r.Subscript {
		props.WriteString(`<w:vertAlign w:val="subscript"/>`)
	}
	if r.Color != "" {
		fmt.Fprintf(&props, `<w:color w:val="%s"/>`, escapeAttr(r.Color))
	}
	if r.Size > 0 {
		fmt.Fprintf(&props, `<w:sz w:val="%d"/>`, int(r.Size*halfPoints))
	}
	if props.Len() > 0 {
		b.WriteString(`<w:rPr>`)
		b.WriteString(props.String())
		b.WriteString(`</w:rPr>`)
	}

	fmt.Fprintf(b, `<w:t xml:space="preserve">%s</w:t>`, escapeText(r.Text))
	b.WriteString(`</w:r>`)
	if r.Hyperlink != "" {
		b.WriteString(`</w:hyperlink>`)
	}
}

func writeTable(b *strings.Builder, t *Table) {
	b.WriteString(`<w:tbl><w:tblPr>`)
	if t.Style != "" {
		fmt.Fprintf(b, `<w:tblStyle w:val="%s"/>`, styleID(t.Style))
	}
	if t.AutoFit {
		b.WriteString(`<w:tblLayout w:type="autofit"/>`)
	}
	b.WriteString(`<w:tblBorders>` +
		`<w:top w:val="single" w:sz="4" w:color="auto"/>` +
		`<w:left w:val="single" w:sz="4" w:color="auto"/>` +
		`<w:bottom w:val="single" w:sz="4" w:color="auto"/>` +
		`<w:right w:val="single" w:sz="4" w:color="auto"/>` +
		`<w:insideH w:val="single" w:sz="4" w:color="auto"/>` +
		`<w:insideV w:val="single" w:sz="4" w:color="auto"/>` +
		`</w:tblBorders>`)
	b.WriteString(`</w:tblPr>`)
	for _, row := range t.Rows {
		b.WriteString(`<w:tr>`)
		for _, cell := range row.Cells {
			b.WriteString(`<w:tc><w:p>`)
			if cell.Text != "" {
				b.WriteString(`<w:r>`)
				if cell.Bold {
					b.WriteString(`<w:rPr><w:b/></w:rPr>`)
				}
				fmt.Fprintf(b, `<w:t xml:space="preserve">%s</w:t>`, escapeText(cell.Text))
				b.WriteString(`</w:r>`)
			}
			b.WriteString(`</w:p></w:tc>`)
		}
		b.WriteString(`</w:tr>`)
	}
	b.WriteString(`</w:tbl>`)
}

func (d *Document) stylesXML() []byte {
	if len(d.templateStyles) > 0 {
		return d.templateStyles
	}
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<w:styles xmlns:w="` + wordMLNamespace + `">`)
	for i := range d.styles {
		writeStyle(&b, &d.styles[i])
	}
	b.WriteString(`</w:styles>`)
	return []byte(b.String())
}

func writeStyle(b *strings.Builder, s *Style) {
	id := styleID(s.Name)
	fmt.Fprintf(b, `<w:style w:type="paragraph" w:styleId="%s">`, id)
	fmt.Fprintf(b, `<w:name w:val="%s"/>`, escapeAttr(s.Name))

	var pPr strings.Builder
	if s.KeepWithNext {
		pPr.WriteString(`<w:keepNext/>`)
	}
	if s.SpacingBefore > 0 || s.SpacingAfter > 0 || s.LineSpacing > 0 {
		pPr.WriteString(`<w:spacing`)
		if s.SpacingBefore > 0 {
			fmt.Fprintf(&pPr, ` w:before="%d"`, int(s.SpacingBefore*twentieths))
		}
		if s.SpacingAfter > 0 {
			fmt.Fprintf(&pPr, ` w:after="%d"`, int(s.SpacingAfter*twentieths))
		}
		if s.LineSpacing > 0 {
			fmt.Fprintf(&pPr, ` w:line="%d" w:lineRule="auto"`, int(s.LineSpacing*lineUnit))
		}
		pPr.WriteString(`/>`)
	}
	if s.FirstLineIndent > 0 || s.LeftIndent > 0 {
		pPr.WriteString(`<w:ind`)
		if s.LeftIndent > 0 {
			fmt.Fprintf(&pPr, ` w:left="%d"`, int(s.LeftIndent*twipsPerInch))
		}
		if s.FirstLineIndent > 0 {
			fmt.Fprintf(&pPr, ` w:firstLine="%d"`, int(s.FirstLineIndent*twipsPerInch))
		}
		pPr.WriteString(`/>`)
	}
	if pPr.Len() > 0 {
		b.WriteString(`<w:pPr>`)
		b.WriteString(pPr.String())
		b.WriteString(`</w:pPr>`)
	}

	var rPr strings.Builder
	if s.Font != "" {
		fmt.Fprintf(&rPr, `<w:rFonts w:ascii="%s" w:hAnsi="%s"/>`, escapeAttr(s.Font), escapeAttr(s.Font))
	}
	if s.Bold {
		rPr.WriteString(`<w:b/>`)
	}
	if s.Color != "" {
		fmt.Fprintf(&rPr, `<w:color w:val="%s"/>`, escapeAttr(s.Color))
	}
	if s.Size > 0 {
		fmt.Fprintf(&rPr, `<w:sz w:val="%d"/>`, int(s.Size*halfPoints))
	}
	if rPr.Len() > 0 {
		b.WriteString(`<w:rPr>`)
		b.WriteString(rPr.String())
		b.WriteString(`</w:rPr>`)
	}
	b.WriteString(`</w:style>`)
}

// styleID maps a display name to a style ID the way desktop Word does:
// spaces removed, e.g. "Heading 1" -> "Heading1".
func styleID(name string) string {
	return strings.ReplaceAll(name, " ", "")
}

func jcFromAlignment(a Alignment) string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	case AlignJustify:
		return "both"
	default:
		return "left"
	}
}

func escapeText(s string) string {
	var b strings.Builder
	if err := xml.EscapeText(&b, []byte(s)); err != nil {
		return s
	}
	return b.String()
}

func escapeAttr(s string) string {
	return escapeText(s)
}
