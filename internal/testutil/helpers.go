// Package testutil holds shared helpers for test setup.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/FSSCoding/fss-parse-word/pkg/docmodel"
)

// WriteFile writes content at path, creating parent directories as needed.
func WriteFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// WriteDoc builds a minimal document from heading/paragraph pairs and saves
// it at path. Each entry is rendered as a body paragraph; entries starting
// with "#" become level-1 headings.
func WriteDoc(t *testing.T, path string, lines ...string) {
	t.Helper()
	doc := docmodel.New()
	for _, line := range lines {
		if len(line) > 1 && line[0] == '#' {
			doc.AddHeading(line[2:], 1)
			continue
		}
		doc.AddParagraph(line, "")
	}
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, doc.Save(path))
}

// ScriptedPrompter answers overwrite confirmations from a fixed script and
// records the questions asked.
type ScriptedPrompter struct {
	Answers   []bool
	Err       error
	Questions []string
}

// Confirm pops the next scripted answer; an exhausted script answers false.
func (p *ScriptedPrompter) Confirm(question string) (bool, error) {
	p.Questions = append(p.Questions, question)
	if p.Err != nil {
		return false, p.Err
	}
	if len(p.Answers) == 0 {
		return false, nil
	}
	answer := p.Answers[0]
	p.Answers = p.Answers[1:]
	return answer, nil
}
