// Package encoding normalizes markup input to UTF-8 before parsing and
// guards against binary files being fed to the text pipeline.
package encoding

import (
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/transform"
)

const (
	// nullCheckLen bounds the prefix inspected for null bytes.
	nullCheckLen = 1024
	// nullThreshold is the null-byte ratio above which content is considered
	// binary.
	nullThreshold = 0.15
)

// Normalize returns content as UTF-8 along with the detected source encoding
// name. Valid UTF-8 passes through untouched; other encodings are detected
// via golang.org/x/net/html/charset and transformed. When detection is
// uncertain and fallback names a known encoding, the fallback wins.
func Normalize(content []byte, fallback string) ([]byte, string, error) {
	if utf8.Valid(content) {
		return content, "utf-8", nil
	}

	enc, name, certain := charset.DetermineEncoding(content, "")
	if !certain && fallback != "" {
		if fbEnc, fbName := charset.Lookup(fallback); fbEnc != nil {
			enc, name = fbEnc, fbName
		}
	}
	if enc == nil {
		return content, name, fmt.Errorf("undetectable encoding")
	}

	decoded, err := io.ReadAll(transform.NewReader(bytes.NewReader(content), enc.NewDecoder()))
	if err != nil {
		return content, name, fmt.Errorf("decode from %s: %w", name, err)
	}
	return decoded, name, nil
}

// IsBinary reports whether content looks like binary data, using the
// null-byte ratio of the leading block.
func IsBinary(content []byte) bool {
	if len(content) == 0 {
		return false
	}
	limit := len(content)
	if limit > nullCheckLen {
		limit = nullCheckLen
	}
	nulls := bytes.Count(content[:limit], []byte{0x00})
	return float64(nulls)/float64(limit) > nullThreshold
}
