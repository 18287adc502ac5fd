package util

import (
	"path/filepath"
	"strconv"
	"strings"
)

// Stem returns the base name of path without its final extension.
// "report.docx" and "report.md" share the stem "report".
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Slug converts visible link text into an in-document anchor: lowercased,
// spaces replaced with hyphens. Matches the anchor form common Markdown
// renderers generate for auto heading IDs.
func Slug(text string) string {
	return strings.ReplaceAll(strings.ToLower(text), " ", "-")
}

// NumberedBackup returns the first free backup name for path: path+suffix,
// then path+suffix+".1", ".2", and so on. exists reports whether a candidate
// name is already taken.
func NumberedBackup(path, suffix string, exists func(string) bool) string {
	candidate := path + suffix
	for counter := 1; exists(candidate); counter++ {
		candidate = path + suffix + "." + strconv.Itoa(counter)
	}
	return candidate
}
