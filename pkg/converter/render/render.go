// Package render wraps a Markdown rendering engine used for parsing hints
// and output verification. The conversion engine does its own structural
// walk; this collaborator only confirms that emitted markup is parseable
// GFM (fenced code, tables) and can produce an HTML preview.
package render

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

// Renderer turns markup into HTML. Implementations must be safe for reuse
// across conversions.
type Renderer interface {
	RenderHTML(markup []byte) ([]byte, error)
}

// GoldmarkRenderer implements Renderer on the goldmark engine with the GFM
// extension set, matching the constructs the translators emit.
type GoldmarkRenderer struct {
	engine goldmark.Markdown
}

// New returns a ready GoldmarkRenderer.
func New() *GoldmarkRenderer {
	return &GoldmarkRenderer{
		engine: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		),
	}
}

// RenderHTML implements Renderer.
func (r *GoldmarkRenderer) RenderHTML(markup []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.engine.Convert(markup, &buf); err != nil {
		return nil, fmt.Errorf("render markup: %w", err)
	}
	return buf.Bytes(), nil
}

// Verify reports whether markup renders cleanly. It is used after
// document-to-markup emission as a parseability check on the output.
func Verify(r Renderer, markup []byte) error {
	if r == nil {
		r = New()
	}
	_, err := r.RenderHTML(markup)
	return err
}
