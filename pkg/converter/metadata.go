package converter

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ListEntry records one list paragraph emitted to markup.
type ListEntry struct {
	Line  int    `json:"line"`
	Style string `json:"style"`
}

// TableEntry records one table emitted to markup, including the raw cell grid
// so the reverse translation can rebuild it exactly.
type TableEntry struct {
	Line int        `json:"line"`
	Rows int        `json:"rows"`
	Cols int        `json:"cols"`
	Data [][]string `json:"data"`
}

// LinkEntry records the character span of a hyperlink run within its
// paragraph. The link text itself lives in the markup.
type LinkEntry struct {
	Start int `json:"start"`
	End   int `json:"end"`
	Line  int `json:"line"`
}

// ConversionRecord is the round-trip metadata accumulated by the
// document-to-markup translator and embedded in the output as a structured
// comment. It is advisory: the markup stays fully renderable when the record
// is stripped, absent, or malformed, and the reverse translator applies it
// best-effort only.
type ConversionRecord struct {
	HeadingLevels map[int]int       `json:"headingLevels"`
	Lists         []ListEntry       `json:"lists"`
	Tables        []TableEntry      `json:"tables"`
	Hyperlinks    []LinkEntry       `json:"hyperlinks"`
	Styles        map[string]string `json:"styles"`
	FileHash      string            `json:"fileHash"`
	Timestamp     string            `json:"timestamp"`
}

// NewConversionRecord returns an empty record with allocated containers so
// JSON output always carries every field.
func NewConversionRecord() *ConversionRecord {
	return &ConversionRecord{
		HeadingLevels: map[int]int{},
		Lists:         []ListEntry{},
		Tables:        []TableEntry{},
		Hyperlinks:    []LinkEntry{},
		Styles:        map[string]string{},
	}
}

// recordSchema constrains the envelope payload shape. Anything that fails it
// is treated as absent rather than an error.
const recordSchema = `{
  "type": "object",
  "properties": {
    "headingLevels": {"type": "object", "additionalProperties": {"type": "integer"}},
    "lists": {"type": "array", "items": {"type": "object", "required": ["line", "style"]}},
    "tables": {"type": "array", "items": {"type": "object", "required": ["line", "rows", "cols", "data"]}},
    "hyperlinks": {"type": "array", "items": {"type": "object", "required": ["start", "end", "line"]}},
    "styles": {"type": "object", "additionalProperties": {"type": "string"}},
    "fileHash": {"type": "string"},
    "timestamp": {"type": "string"}
  }
}`

var recordSchemaLoader = gojsonschema.NewStringLoader(recordSchema)

// EncodeEnvelope renders the record as the trailing structured-comment block:
//
//	\n\n<!-- CONVERSION_METADATA\n{...}\n-->\n
func (r *ConversionRecord) EncodeEnvelope() (string, error) {
	payload, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal conversion record: %w", err)
	}
	return fmt.Sprintf("\n\n%s\n%s\n%s\n", MetadataOpenMarker, payload, MetadataCloseMarker), nil
}

// DecodeEnvelope extracts a ConversionRecord from markup content. The second
// return reports whether a well-formed envelope was found; on any parse or
// schema failure an empty record and false are returned, since the record is
// advisory.
func DecodeEnvelope(content string) (*ConversionRecord, bool) {
	payload, ok := envelopePayload(content)
	if !ok {
		return NewConversionRecord(), false
	}

	result, err := gojsonschema.Validate(recordSchemaLoader, gojsonschema.NewStringLoader(payload))
	if err != nil || !result.Valid() {
		return NewConversionRecord(), false
	}

	rec := NewConversionRecord()
	if err := json.Unmarshal([]byte(payload), rec); err != nil {
		return NewConversionRecord(), false
	}
	if rec.HeadingLevels == nil {
		rec.HeadingLevels = map[int]int{}
	}
	if rec.Styles == nil {
		rec.Styles = map[string]string{}
	}
	return rec, true
}

// StripEnvelope removes a trailing metadata block from content, tolerating
// trailing whitespace after the closing marker. Content without an envelope
// is returned unchanged.
func StripEnvelope(content string) string {
	idx := strings.LastIndex(content, "\n\n"+MetadataOpenMarker)
	if idx < 0 {
		return content
	}
	rest := content[idx:]
	end := strings.Index(rest, MetadataCloseMarker)
	if end < 0 {
		return content
	}
	if tail := strings.TrimSpace(rest[end+len(MetadataCloseMarker):]); tail != "" {
		// The marker pair is not at the end of the file; leave it alone.
		return content
	}
	return content[:idx]
}

// envelopePayload pulls the JSON text between the envelope markers.
func envelopePayload(content string) (string, bool) {
	open := strings.LastIndex(content, MetadataOpenMarker)
	if open < 0 {
		return "", false
	}
	rest := content[open+len(MetadataOpenMarker):]
	end := strings.Index(rest, MetadataCloseMarker)
	if end < 0 {
		return "", false
	}
	payload := strings.TrimSpace(rest[:end])
	if payload == "" {
		return "", false
	}
	return payload, true
}
