package document

import (
	"regexp"
	"strings"
)

// lineKind classifies a single line of the document.
type lineKind int

const (
	kindBlank lineKind = iota
	kindComment
	kindEntry
	kindItem
)

// entryRegex matches "KEY: value" or "KEY:" with a YAML-style identifier key.
var entryRegex = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*):(?:\s+(.*))?$`)

// line is one physical line of the document together with its classification.
type line struct {
	raw      string
	kind     lineKind
	indent   string
	disabled bool
	body     string // text after the indent and, for disabled lines, the comment marker
	key      string
	value    string
	section  string
}

// parseLine classifies raw. The section is filled in by Parse.
func parseLine(raw string) line {
	l := line{raw: raw}

	trimmed := strings.TrimLeft(raw, " \t")
	l.indent = raw[:len(raw)-len(trimmed)]

	if strings.TrimSpace(trimmed) == "" {
		l.kind = kindBlank
		return l
	}

	body := trimmed
	if strings.HasPrefix(trimmed, "#") {
		// "##" lines are prose written for the operator, never settings.
		if strings.HasPrefix(trimmed, "##") {
			l.kind = kindComment
			return l
		}
		l.disabled = true
		body = strings.TrimLeft(trimmed[1:], " ")
	}
	l.body = strings.TrimRight(body, " \t\r")

	switch {
	case l.body == "-" || strings.HasPrefix(l.body, "- "):
		l.kind = kindItem
		l.value = itemValue(strings.TrimSpace(strings.TrimPrefix(l.body, "-")))
	case entryRegex.MatchString(l.body):
		m := entryRegex.FindStringSubmatch(l.body)
		l.kind = kindEntry
		l.key = m[1]
		l.value = strings.TrimSpace(m[2])
	default:
		l.kind = kindComment
	}

	return l
}

// isSectionHeader reports whether l opens a top-level mapping such as "env:".
func (l line) isSectionHeader() bool {
	return l.kind == kindEntry && !l.disabled && l.indent == ""
}

// itemValue strips quotes and trailing comments from a list item.
func itemValue(s string) string {
	if len(s) > 0 && (s[0] == '"' || s[0] == '\'') {
		if end := strings.IndexByte(s[1:], s[0]); end >= 0 {
			return s[1 : end+1]
		}
		return s[1:]
	}
	if idx := strings.Index(s, " #"); idx >= 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}
