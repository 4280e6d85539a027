// Package docparse extracts and parses the documentation block above an
// annotated method. It recognizes a deliberately small convention: summary
// prose, @param name description, and @return/@returns description. It is
// not a general doc-comment parser.
package docparse

import (
	"regexp"
	"strings"
)

// Param is one @param entry, in source order.
type Param struct {
	Name string
	Text string
}

// Doc is the parsed form of a documentation block. Description and Returns
// are nil when the block carries no such content; the distinction between
// absent and empty matters to the metadata resolver's precedence rule.
type Doc struct {
	Description *string
	Params      []Param
	Returns     *string
}

// HasParams reports whether the block captured any @param entries.
func (d *Doc) HasParams() bool {
	return d != nil && len(d.Params) > 0
}

var (
	paramRe   = regexp.MustCompile(`^@param\s+([A-Za-z_][A-Za-z0-9_]*)\s*(.*)$`)
	returnsRe = regexp.MustCompile(`^@returns?\s+(.*)$`)
	tagRe     = regexp.MustCompile(`^@[A-Za-z]`)
)

// ExtractBlockAbove scans upward from the line preceding anchor and returns
// the documentation block contiguous with it, delimiters included.
//
// Two block forms are accepted: a /* ... */ comment whose terminator is the
// nearest non-blank line above the anchor, and a contiguous run of // lines
// (the native Go doc-comment form). Any other non-blank line ends the scan
// with no result: a block separated from the anchor by code is not its
// documentation.
func ExtractBlockAbove(lines []string, anchor int) (string, bool) {
	i := anchor - 1
	for i >= 0 && strings.TrimSpace(lines[i]) == "" {
		i--
	}
	if i < 0 {
		return "", false
	}

	trimmed := strings.TrimSpace(lines[i])
	if strings.HasPrefix(trimmed, "//") {
		end := i
		start := i
		for start-1 >= 0 && strings.HasPrefix(strings.TrimSpace(lines[start-1]), "//") {
			start--
		}
		return strings.Join(lines[start:end+1], "\n"), true
	}

	if !strings.HasSuffix(trimmed, "*/") {
		return "", false
	}
	end := i
	for j := end; j >= 0; j-- {
		if strings.Contains(lines[j], "/*") {
			return strings.Join(lines[j:end+1], "\n"), true
		}
	}
	return "", false
}

// Parse processes a raw documentation block line by line. Prose lines before
// the first tag become the description, joined with single spaces; unknown
// @tags are ignored so newer conventions do not break older parsers.
func Parse(raw string) Doc {
	var doc Doc
	var descParts []string
	sawTag := false

	for _, line := range strings.Split(raw, "\n") {
		content := stripCommentMarkers(line)
		if content == "" {
			continue
		}

		if m := paramRe.FindStringSubmatch(content); m != nil {
			sawTag = true
			doc.Params = append(doc.Params, Param{Name: m[1], Text: strings.TrimSpace(m[2])})
			continue
		}
		if m := returnsRe.FindStringSubmatch(content); m != nil {
			sawTag = true
			text := strings.TrimSpace(m[1])
			doc.Returns = &text
			continue
		}
		if tagRe.MatchString(content) {
			sawTag = true
			continue
		}
		if !sawTag {
			descParts = append(descParts, content)
		}
	}

	if len(descParts) > 0 {
		desc := strings.TrimSuffix(strings.Join(descParts, " "), "/")
		desc = strings.TrimSpace(desc)
		doc.Description = &desc
	}
	return doc
}

// stripCommentMarkers removes the comment syntax surrounding one line of a
// documentation block, leaving only its content.
func stripCommentMarkers(line string) string {
	s := strings.TrimSpace(line)
	switch {
	case strings.HasPrefix(s, "/**"):
		s = strings.TrimPrefix(s, "/**")
	case strings.HasPrefix(s, "/*"):
		s = strings.TrimPrefix(s, "/*")
	case strings.HasPrefix(s, "//"):
		s = strings.TrimPrefix(s, "//")
	case strings.HasPrefix(s, "*"):
		s = strings.TrimPrefix(s, "*")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "*/")
	return strings.TrimSpace(s)
}
