package docmodel

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// Open parses a .docx file into a Document. Unknown elements are skipped so
// files produced by full-featured editors still load.
func Open(path string) (*Document, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open archive %s: %w", path, err)
	}
	defer r.Close()

	styleNames := map[string]string{}
	if raw, err := readPart(&r.Reader, "word/styles.xml"); err == nil {
		styleNames = parseStyleNames(raw)
	}

	raw, err := readPart(&r.Reader, "word/document.xml")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	doc := New()
	if err := parseBody(raw, styleNames, doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return doc, nil
}

// readArchivePart extracts a single named part from a .docx archive on disk.
func readArchivePart(path, name string) ([]byte, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	defer r.Close()
	return readPart(&r.Reader, name)
}

func readPart(r *zip.Reader, name string) ([]byte, error) {
	for _, f := range r.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, fmt.Errorf("open %s: %w", name, err)
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, fmt.Errorf("%s not found in archive", name)
}

// parseStyleNames maps style IDs to display names ("Heading1" -> "Heading 1").
func parseStyleNames(raw []byte) map[string]string {
	names := map[string]string{}
	dec := xml.NewDecoder(bytes.NewReader(raw))
	var currentID string
	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		switch start.Name.Local {
		case "style":
			currentID = attrValue(start, "styleId")
		case "name":
			if currentID != "" {
				names[currentID] = attrValue(start, "val")
			}
		}
	}
	return names
}

// parseBody walks the document.xml token stream and appends paragraphs and
// tables to doc. Paragraphs inside table cells contribute only cell text.
func parseBody(raw []byte, styleNames map[string]string, doc *Document) error {
	dec := xml.NewDecoder(bytes.NewReader(raw))

	var (
		para       *Paragraph
		run        *Run
		inRunProps bool
		hyperlink  string

		table      *Table
		tableDepth int
		cellText   strings.Builder
	)

	flushParagraph := func() {
		if para == nil {
			return
		}
		if tableDepth == 0 {
			doc.body = append(doc.body, para)
		}
		para = nil
	}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("document.xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "tbl":
				if tableDepth == 0 {
					table = &Table{}
				}
				// Nested tables flatten into the outer cell's text.
				tableDepth++
			case "tr":
				if table != nil && tableDepth == 1 {
					table.Rows = append(table.Rows, Row{})
				}
			case "tc":
				if table != nil && tableDepth == 1 {
					cellText.Reset()
				}
			case "p":
				para = &Paragraph{}
			case "pStyle":
				if para != nil {
					id := attrValue(t, "val")
					if name, ok := styleNames[id]; ok && name != "" {
						para.Style = name
					} else {
						para.Style = styleNameFromID(id)
					}
				}
			case "jc":
				if para != nil {
					para.Alignment = alignmentFromJc(attrValue(t, "val"))
				}
			case "hyperlink":
				hyperlink = attrValue(t, "anchor")
				if hyperlink == "" {
					hyperlink = "external"
				}
			case "r":
				if para != nil {
					run = &Run{Hyperlink: hyperlink}
				}
			case "rPr":
				inRunProps = run != nil
			case "b":
				if inRunProps && toggleOn(t) {
					run.Bold = true
				}
			case "i":
				if inRunProps && toggleOn(t) {
					run.Italic = true
				}
			case "u":
				if inRunProps && attrValue(t, "val") != "none" {
					run.Underline = true
				}
			case "strike":
				if inRunProps && toggleOn(t) {
					run.Strike = true
				}
			case "vertAlign":
				if inRunProps {
					switch attrValue(t, "val") {
					case "superscript":
						run.Superscript = true
					case "subscript":
						run.Subscript = true
					}
				}
			case "t":
				if run != nil {
					var text string
					if err := dec.DecodeElement(&text, &t); err != nil {
						return fmt.Errorf("text run: %w", err)
					}
					run.Text += text
					if tableDepth > 0 {
						cellText.WriteString(text)
					}
				}
			}

		case xml.EndElement:
			switch t.Name.Local {
			case "rPr":
				inRunProps = false
			case "r":
				if para != nil && run != nil && run.Text != "" {
					para.Runs = append(para.Runs, *run)
				}
				run = nil
			case "hyperlink":
				hyperlink = ""
			case "p":
				flushParagraph()
			case "tc":
				if table != nil && tableDepth == 1 && len(table.Rows) > 0 {
					row := &table.Rows[len(table.Rows)-1]
					row.Cells = append(row.Cells, Cell{Text: strings.TrimSpace(cellText.String())})
					cellText.Reset()
				}
			case "tbl":
				tableDepth--
				if tableDepth == 0 && table != nil {
					doc.body = append(doc.body, table)
					table = nil
				}
			}
		}
	}
	return nil
}

func attrValue(el xml.StartElement, name string) string {
	for _, a := range el.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

// toggleOn reports whether a boolean property element is enabled. Presence
// means on unless an explicit val says otherwise.
func toggleOn(el xml.StartElement) bool {
	switch attrValue(el, "val") {
	case "false", "0", "none":
		return false
	}
	return true
}

func alignmentFromJc(val string) Alignment {
	switch val {
	case "center":
		return AlignCenter
	case "right", "end":
		return AlignRight
	case "both", "distribute":
		return AlignJustify
	case "left", "start":
		return AlignLeft
	}
	return AlignDefault
}

// styleNameFromID recovers a display name from a style ID when styles.xml is
// missing: "Heading1" -> "Heading 1", "ListBullet" -> "List Bullet".
func styleNameFromID(id string) string {
	if id == "" {
		return ""
	}
	var b strings.Builder
	for i, r := range id {
		if i > 0 && (r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' && !isDigit(rune(id[i-1]))) {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }
