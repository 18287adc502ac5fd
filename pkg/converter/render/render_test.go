package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderHTML(t *testing.T) {
	markup := []byte("# Title\n\n| A | B |\n| --- | --- |\n| 1 | 2 |\n")
	html, err := New().RenderHTML(markup)
	require.NoError(t, err)
	assert.Contains(t, string(html), "<h1")
	assert.Contains(t, string(html), "<table>")
}

func TestVerify(t *testing.T) {
	assert.NoError(t, Verify(nil, []byte("plain **bold** text")))
	assert.NoError(t, Verify(New(), []byte("- item\n- item\n")))
}
