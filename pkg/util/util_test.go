package util_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/FSSCoding/fss-parse-word/pkg/util"
)

func TestStem(t *testing.T) {
	cases := []struct {
		path string
		want string
	}{
		{"report.docx", "report"},
		{"report.md", "report"},
		{"/tmp/docs/report.md", "report"},
		{"archive.tar.gz", "archive.tar"},
		{"noext", "noext"},
		{".hidden", ".hidden"},
	}
	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			assert.Equal(t, tc.want, util.Stem(tc.path))
		})
	}
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "section-one", util.Slug("Section One"))
	assert.Equal(t, "already-lower", util.Slug("already-lower"))
	assert.Equal(t, "a-b-c", util.Slug("A B C"))
	assert.Equal(t, "", util.Slug(""))
}

func TestNumberedBackup(t *testing.T) {
	taken := map[string]bool{}
	exists := func(name string) bool { return taken[name] }

	first := util.NumberedBackup("file.md", ".backup", exists)
	assert.Equal(t, "file.md.backup", first)
	taken[first] = true

	second := util.NumberedBackup("file.md", ".backup", exists)
	assert.Equal(t, "file.md.backup.1", second)
	taken[second] = true

	third := util.NumberedBackup("file.md", ".backup", exists)
	assert.Equal(t, "file.md.backup.2", third)
}
