package converter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvelopeRoundTrip(t *testing.T) {
	record := NewConversionRecord()
	record.HeadingLevels[0] = 1
	record.HeadingLevels[4] = 3
	record.Lists = append(record.Lists, ListEntry{Line: 2, Style: "List Bullet"})
	record.Tables = append(record.Tables, TableEntry{
		Line: 6, Rows: 2, Cols: 2,
		Data: [][]string{{"A", "B"}, {"1", "2"}},
	})
	record.Hyperlinks = append(record.Hyperlinks, LinkEntry{Start: 5, End: 12, Line: 3})
	record.Styles["7"] = "center"
	record.FileHash = strings.Repeat("ab", 32)
	record.Timestamp = "2026-08-25T10:00:00Z"

	envelope, err := record.EncodeEnvelope()
	require.NoError(t, err)
	content := "# Title\n\nBody text." + envelope

	decoded, ok := DecodeEnvelope(content)
	require.True(t, ok)
	assert.Equal(t, record.HeadingLevels, decoded.HeadingLevels)
	assert.Equal(t, record.Lists, decoded.Lists)
	assert.Equal(t, record.Tables, decoded.Tables)
	assert.Equal(t, record.Hyperlinks, decoded.Hyperlinks)
	assert.Equal(t, record.Styles, decoded.Styles)
	assert.Equal(t, record.FileHash, decoded.FileHash)
	assert.Equal(t, record.Timestamp, decoded.Timestamp)
}

func TestDecodeEnvelopeAbsent(t *testing.T) {
	decoded, ok := DecodeEnvelope("# Just markup\n\nNo metadata here.")
	assert.False(t, ok)
	require.NotNil(t, decoded)
	assert.Empty(t, decoded.HeadingLevels)
}

func TestDecodeEnvelopeMalformedPayload(t *testing.T) {
	content := "body\n\n" + MetadataOpenMarker + "\n{not json at all\n" + MetadataCloseMarker + "\n"
	decoded, ok := DecodeEnvelope(content)
	assert.False(t, ok)
	assert.Empty(t, decoded.Tables)
}

func TestDecodeEnvelopeSchemaViolation(t *testing.T) {
	content := "body\n\n" + MetadataOpenMarker + `
{"headingLevels": {"0": "not-a-number"}}
` + MetadataCloseMarker + "\n"
	_, ok := DecodeEnvelope(content)
	assert.False(t, ok)
}

func TestStripEnvelope(t *testing.T) {
	record := NewConversionRecord()
	envelope, err := record.EncodeEnvelope()
	require.NoError(t, err)

	body := "# Title\n\nParagraph."
	assert.Equal(t, body, StripEnvelope(body+envelope))
}

func TestStripEnvelopeToleratesTrailingWhitespace(t *testing.T) {
	record := NewConversionRecord()
	envelope, err := record.EncodeEnvelope()
	require.NoError(t, err)

	body := "content"
	assert.Equal(t, body, StripEnvelope(body+envelope+"\n  \n"))
}

func TestStripEnvelopeLeavesMidDocumentMarkers(t *testing.T) {
	content := "before\n\n" + MetadataOpenMarker + "\n{}\n" + MetadataCloseMarker + "\nafter"
	assert.Equal(t, content, StripEnvelope(content))
}

func TestStripEnvelopeNoEnvelope(t *testing.T) {
	assert.Equal(t, "plain", StripEnvelope("plain"))
}
