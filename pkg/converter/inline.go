package converter

import (
	"regexp"
	"strings"

	"github.com/FSSCoding/fss-parse-word/pkg/docmodel"
)

// inlineRe matches, in priority order, triple emphasis, bold, italic, inline
// code, and link syntax. Matching is left-to-right and non-overlapping; the
// first alternative wins at each position, and nesting beyond this grammar is
// treated as literal text. This is the counterpart of the runWrappers order
// used on emission.
var inlineRe = regexp.MustCompile(`\*\*\*(.+?)\*\*\*|\*\*(.+?)\*\*|\*(.+?)\*|` + "`(.+?)`" + `|\[(.+?)\]\((.+?)\)`)

type inlineKind int

const (
	inlineBoldItalic inlineKind = iota
	inlineBold
	inlineItalic
	inlineCode
	inlineLink
)

type inlineMatch struct {
	start, end int
	kind       inlineKind
	text       string
	target     string // link destination, inlineLink only
}

// applyInlineFormatting splits line into alternating literal and styled runs
// and appends them to p. Inline code runs take the configured code font and
// size; link runs are rendered blue and underlined with the anchor retained.
func applyInlineFormatting(p *docmodel.Paragraph, line string, cfg *StyleConfig) {
	pos := 0
	for _, m := range inlineMatches(line) {
		if m.start > pos {
			p.AddRun(line[pos:m.start])
		}
		run := p.AddRun(m.text)
		switch m.kind {
		case inlineBoldItalic:
			run.Bold = true
			run.Italic = true
		case inlineBold:
			run.Bold = true
		case inlineItalic:
			run.Italic = true
		case inlineCode:
			run.Font = cfg.CodeFont
			run.Size = cfg.CodeSize
		case inlineLink:
			run.Color = hyperlinkColor
			run.Underline = true
			run.Hyperlink = strings.TrimPrefix(m.target, "#")
		}
		pos = m.end
	}
	if pos < len(line) {
		p.AddRun(line[pos:])
	}
}

// inlineMatches runs the combined pattern over line and classifies each
// match by which alternative captured.
func inlineMatches(line string) []inlineMatch {
	var out []inlineMatch
	for _, idx := range inlineRe.FindAllStringSubmatchIndex(line, -1) {
		m := inlineMatch{start: idx[0], end: idx[1]}
		switch {
		case idx[2] >= 0:
			m.kind = inlineBoldItalic
			m.text = line[idx[2]:idx[3]]
		case idx[4] >= 0:
			m.kind = inlineBold
			m.text = line[idx[4]:idx[5]]
		case idx[6] >= 0:
			m.kind = inlineItalic
			m.text = line[idx[6]:idx[7]]
		case idx[8] >= 0:
			m.kind = inlineCode
			m.text = line[idx[8]:idx[9]]
		case idx[10] >= 0:
			m.kind = inlineLink
			m.text = line[idx[10]:idx[11]]
			m.target = line[idx[12]:idx[13]]
		default:
			continue
		}
		out = append(out, m)
	}
	return out
}
