package document

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Match selects which lines are eligible for an update.
type Match int

const (
	// MatchAny updates an active entry, or enables a disabled one when no active entry exists.
	MatchAny Match = iota
	// MatchDisabled only replaces disabled placeholder lines.
	MatchDisabled
)

// String returns the string representation of the match mode.
func (m Match) String() string {
	switch m {
	case MatchDisabled:
		return "disabled"
	default:
		return "any"
	}
}

// Document is a parsed configuration file.
type Document struct {
	lines           []line
	trailingNewline bool
}

// Parse parses data into a Document. Parsing never fails: lines that are not
// recognised as entries or list items are kept as comments.
func Parse(data []byte) *Document {
	text := string(data)
	doc := &Document{trailingNewline: strings.HasSuffix(text, "\n")}
	text = strings.TrimSuffix(text, "\n")
	if text == "" && !doc.trailingNewline {
		return doc
	}

	section := ""
	for _, raw := range strings.Split(text, "\n") {
		l := parseLine(raw)
		if l.isSectionHeader() {
			section = l.key
		} else if l.indent == "" && l.kind != kindBlank && l.kind != kindComment && !l.disabled {
			section = ""
		}
		l.section = section
		doc.lines = append(doc.lines, l)
	}

	return doc
}

// Load reads and parses the document at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Parse(data), nil
}

// Bytes renders the document.
func (d *Document) Bytes() []byte {
	var sb strings.Builder
	for i, l := range d.lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(l.raw)
	}
	if d.trailingNewline {
		sb.WriteByte('\n')
	}
	return []byte(sb.String())
}

// Save writes the document to path, keeping the existing file mode.
func (d *Document) Save(path string) error {
	mode := os.FileMode(0o600)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.WriteFile(path, d.Bytes(), mode); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// Get returns the decoded value of the active entry key in section.
func (d *Document) Get(section, key string) (string, bool) {
	for _, l := range d.lines {
		if l.kind != kindEntry || l.disabled || l.indent == "" || l.section != section || l.key != key {
			continue
		}
		var v any
		if err := yaml.Unmarshal([]byte(l.value), &v); err != nil || v == nil {
			return l.value, true
		}
		return fmt.Sprint(v), true
	}
	return "", false
}

// Set writes value for key in section. The value is rendered as a YAML scalar.
// It returns ErrKeyNotFound when no eligible line exists, so a caller can tell
// "the field existed and was updated" from "nothing happened". An active line
// that already holds value is left byte for byte.
func (d *Document) Set(section, key string, value any, m Match) error {
	rendered, err := renderScalar(value)
	if err != nil {
		return fmt.Errorf("%s.%s: %w", section, key, err)
	}

	idx := d.findEntry(section, key, m)
	if idx < 0 {
		return fmt.Errorf("%w: %s.%s (%s)", ErrKeyNotFound, section, key, m)
	}
	if l := d.lines[idx]; !l.disabled && sameScalar(l.value, rendered) {
		return nil
	}

	d.replace(idx, key, rendered)
	return nil
}

// SetRaw is like Set but writes rendered verbatim, e.g. a pre-quoted `"256MB"`.
func (d *Document) SetRaw(section, key, rendered string, m Match) error {
	idx := d.findEntry(section, key, m)
	if idx < 0 {
		return fmt.Errorf("%w: %s.%s (%s)", ErrKeyNotFound, section, key, m)
	}

	d.replace(idx, key, rendered)
	return nil
}

// replace rewrites line idx as an active "key: rendered" entry.
func (d *Document) replace(idx int, key, rendered string) {
	l := d.lines[idx]
	l.raw = l.indent + key + ": " + rendered
	l.body = key + ": " + rendered
	l.value = rendered
	l.disabled = false
	d.lines[idx] = l
}

// EnableItem uncomments the list item in section whose value equals item.
// An item that is already enabled counts as a match.
func (d *Document) EnableItem(section, item string) error {
	disabled := -1
	for i, l := range d.lines {
		if l.kind != kindItem || l.indent == "" || l.section != section || l.value != item {
			continue
		}
		if !l.disabled {
			return nil
		}
		if disabled < 0 {
			disabled = i
		}
	}
	if disabled < 0 {
		return fmt.Errorf("%w: %s[%s]", ErrItemNotFound, section, item)
	}

	l := d.lines[disabled]
	l.raw = l.indent + l.body
	l.disabled = false
	d.lines[disabled] = l

	return nil
}

// HasItem reports whether an enabled list item matching item exists in section.
func (d *Document) HasItem(section, item string) bool {
	for _, l := range d.lines {
		if l.kind == kindItem && !l.disabled && l.indent != "" && l.section == section && l.value == item {
			return true
		}
	}
	return false
}

// findEntry returns the index of the line to update, or -1.
func (d *Document) findEntry(section, key string, m Match) int {
	active, disabled := -1, -1
	for i, l := range d.lines {
		if l.kind != kindEntry || l.indent == "" || l.section != section || l.key != key {
			continue
		}
		if l.disabled {
			if disabled < 0 {
				disabled = i
			}
		} else if active < 0 {
			active = i
		}
	}

	switch m {
	case MatchDisabled:
		return disabled
	default:
		if active >= 0 {
			return active
		}
		return disabled
	}
}

// sameScalar reports whether two rendered scalars decode to the same value.
func sameScalar(a, b string) bool {
	var va, vb any
	if yaml.Unmarshal([]byte(a), &va) != nil || yaml.Unmarshal([]byte(b), &vb) != nil {
		return a == b
	}
	return fmt.Sprintf("%T %v", va, va) == fmt.Sprintf("%T %v", vb, vb)
}

// renderScalar renders v as a single-line YAML scalar.
func renderScalar(v any) (string, error) {
	out, err := yaml.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to render value: %w", err)
	}
	s := strings.TrimSuffix(string(out), "\n")
	if !strings.Contains(s, "\n") {
		return s, nil
	}

	// yaml.v3 folds long plain scalars; fall back to a double-quoted string.
	str, ok := v.(string)
	if !ok || strings.ContainsAny(str, "\r\n") {
		return "", ErrMultiline
	}
	return strconv.Quote(str), nil
}
