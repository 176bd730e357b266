// Package segment splits model responses into plain-text and fenced code
// segments in document order.
package segment

import "strings"

const fence = "```"

// DefaultLabel names code segments that carry no language tag
const DefaultLabel = "code"

// Kind tags a segment as text or code
type Kind string

const (
	KindText Kind = "text"
	KindCode Kind = "code"
)

// Segment is one unit of a parsed response
type Segment struct {
	Kind     Kind   `json:"kind"`
	Language string `json:"language,omitempty"`
	Content  string `json:"content"`
}

// IsCode reports whether the segment is a fenced code block
func (s Segment) IsCode() bool {
	return s.Kind == KindCode
}

// Label returns the display name for a code segment
func (s Segment) Label() string {
	if s.Language == "" {
		return DefaultLabel
	}
	return s.Language
}

// Parse scans text left to right for fenced blocks. A block opens with ```
// and an optional language tag, and closes at the next ```. Block bodies are
// trimmed; text between blocks is kept verbatim. An opening fence with no
// closing fence is left in the surrounding text.
func Parse(text string) []Segment {
	var segs []Segment
	pending := 0

	for pos := 0; ; {
		open := strings.Index(text[pos:], fence)
		if open < 0 {
			break
		}
		open += pos

		tagStart := open + len(fence)
		tagEnd := tagStart
		for tagEnd < len(text) && isTagByte(text[tagEnd]) {
			tagEnd++
		}

		closing := strings.Index(text[tagEnd:], fence)
		if closing < 0 {
			break
		}
		closing += tagEnd

		if open > pending {
			segs = append(segs, Segment{Kind: KindText, Content: text[pending:open]})
		}
		segs = append(segs, Segment{
			Kind:     KindCode,
			Language: text[tagStart:tagEnd],
			Content:  strings.TrimSpace(text[tagEnd:closing]),
		})

		pos = closing + len(fence)
		pending = pos
	}

	if len(segs) == 0 {
		return []Segment{{Kind: KindText, Content: text}}
	}
	if pending < len(text) {
		segs = append(segs, Segment{Kind: KindText, Content: text[pending:]})
	}
	return segs
}

// Reconstruct joins segments back into response text, writing each code body
// on its own lines between fences.
func Reconstruct(segs []Segment) string {
	var b strings.Builder
	for _, s := range segs {
		if !s.IsCode() {
			b.WriteString(s.Content)
			continue
		}
		b.WriteString(fence)
		b.WriteString(s.Language)
		b.WriteByte('\n')
		b.WriteString(s.Content)
		b.WriteByte('\n')
		b.WriteString(fence)
	}
	return b.String()
}

// HasCode reports whether any segment is a code block
func HasCode(segs []Segment) bool {
	for _, s := range segs {
		if s.IsCode() {
			return true
		}
	}
	return false
}

func isTagByte(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == '_', c == '+', c == '#', c == '-':
		return true
	}
	return false
}
