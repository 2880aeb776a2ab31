// Package frontmatter splits raw Markdown documents into a metadata block
// and the remaining body text.
//
// The metadata block is bounded by two `---` delimiter lines. Every line
// strictly between the delimiters that contains a colon becomes one entry:
// the first colon splits key from value, both sides trimmed. Lines without
// a colon are skipped silently.
//
// The body does NOT start at the line after the closing delimiter. It starts
// at line index len(metadata)+2, counted from the top of the document. For a
// well-formed block where every line parses, the two positions coincide. A
// skipped colon-less line (including a blank line) inside the block shifts
// the body start above the closing delimiter by one line per skipped line,
// and a document without any delimiters still loses its first two lines.
// Downstream content relies on this offset arithmetic; keep it as is.
package frontmatter

import "strings"

// Delimiter marks the start and end of a metadata block. A line belongs to
// the delimiter set when its content begins with this marker.
const Delimiter = "---"

// Metadata is an ordered string-to-string mapping parsed from a metadata
// block. Setting an existing key overwrites its value without changing the
// key's position or the entry count.
type Metadata struct {
	keys   []string
	values map[string]string
}

// NewMetadata returns an empty Metadata.
func NewMetadata() *Metadata {
	return &Metadata{values: make(map[string]string)}
}

// Set stores value under key, preserving first-insertion order.
func (m *Metadata) Set(key, value string) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get returns the value for key and whether it is present.
func (m *Metadata) Get(key string) (string, bool) {
	v, ok := m.values[key]
	return v, ok
}

// GetDefault returns the value for key, or def when key is absent.
func (m *Metadata) GetDefault(key, def string) string {
	if v, ok := m.values[key]; ok {
		return v
	}
	return def
}

// Len returns the number of entries.
func (m *Metadata) Len() int { return len(m.keys) }

// Keys returns the keys in insertion order.
func (m *Metadata) Keys() []string { return m.keys }

// Parse splits a raw document into its metadata and body text.
//
// The returned body is the document from line len(metadata)+2 onward (see
// the package comment for why that offset is authoritative rather than the
// closing delimiter's actual position).
func Parse(input string) (*Metadata, string) {
	lines := strings.Split(input, "\n")
	meta := NewMetadata()

	delimiters := 0
	for _, line := range lines {
		if strings.HasPrefix(line, Delimiter) {
			delimiters++
			if delimiters == 2 {
				break
			}
			continue
		}
		if delimiters != 1 {
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		meta.Set(strings.TrimSpace(key), strings.TrimSpace(value))
	}

	offset := meta.Len() + 2
	if offset >= len(lines) {
		return meta, ""
	}
	return meta, strings.Join(lines[offset:], "\n")
}
