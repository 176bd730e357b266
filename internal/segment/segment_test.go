package segment

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Segment
	}{
		{
			name:     "no fences",
			input:    "This code adds two numbers.",
			expected: []Segment{{Kind: KindText, Content: "This code adds two numbers."}},
		},
		{
			name:     "empty response",
			input:    "",
			expected: []Segment{{Kind: KindText, Content: ""}},
		},
		{
			name:  "prose around a tagged block",
			input: "Intro\n```go\nfmt.Println(1)\n```\nOutro",
			expected: []Segment{
				{Kind: KindText, Content: "Intro\n"},
				{Kind: KindCode, Language: "go", Content: "fmt.Println(1)"},
				{Kind: KindText, Content: "\nOutro"},
			},
		},
		{
			name:  "block without language",
			input: "```\nx := 1\n```",
			expected: []Segment{
				{Kind: KindCode, Language: "", Content: "x := 1"},
			},
		},
		{
			name:  "adjacent blocks emit no empty text",
			input: "```a\n1\n``````b\n2\n```",
			expected: []Segment{
				{Kind: KindCode, Language: "a", Content: "1"},
				{Kind: KindCode, Language: "b", Content: "2"},
			},
		},
		{
			name:  "language tag with symbols",
			input: "```c++\nint x;\n```",
			expected: []Segment{
				{Kind: KindCode, Language: "c++", Content: "int x;"},
			},
		},
		{
			name:  "body on the fence line",
			input: "Run ```go fmt.Println()``` now",
			expected: []Segment{
				{Kind: KindText, Content: "Run "},
				{Kind: KindCode, Language: "go", Content: "fmt.Println()"},
				{Kind: KindText, Content: " now"},
			},
		},
		{
			name:  "body whitespace is trimmed",
			input: "```js\n\n   let a = 1;\n\n```",
			expected: []Segment{
				{Kind: KindCode, Language: "js", Content: "let a = 1;"},
			},
		},
		{
			name:     "unterminated fence stays literal",
			input:    "See ```python\nprint(1)",
			expected: []Segment{{Kind: KindText, Content: "See ```python\nprint(1)"}},
		},
		{
			name:  "dangling fence after a closed block",
			input: "```go\nx\n``` tail ```js\ny",
			expected: []Segment{
				{Kind: KindCode, Language: "go", Content: "x"},
				{Kind: KindText, Content: " tail ```js\ny"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Parse(tt.input))
		})
	}
}

func TestReconstruct_RoundTrip(t *testing.T) {
	type part struct {
		text string
		lang string
		code string
	}

	tests := []struct {
		name  string
		parts []part
	}{
		{
			name: "alternating text and code",
			parts: []part{
				{text: "Summary: prints a value.\n\n"},
				{lang: "go", code: "func main() {\n\tfmt.Println(42)\n}"},
				{text: "\n\nSuggestion: name the constant.\n"},
				{lang: "", code: "const answer = 42"},
				{text: "\nDone."},
			},
		},
		{
			name: "code only",
			parts: []part{
				{lang: "python", code: "print('hi')"},
				{lang: "bash", code: "echo hi"},
			},
		},
		{
			name:  "text only",
			parts: []part{{text: "Nothing to highlight here."}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b strings.Builder
			for _, p := range tt.parts {
				if p.code == "" {
					b.WriteString(p.text)
					continue
				}
				b.WriteString("```" + p.lang + "\n" + p.code + "\n```")
			}
			original := b.String()

			segs := Parse(original)

			assert.Equal(t, original, Reconstruct(segs))
			assert.Equal(t, segs, Parse(Reconstruct(segs)))
		})
	}
}

func TestSegmentHelpers(t *testing.T) {
	segs := Parse("text\n```\nbare\n```\n```rust\nfn main() {}\n```")

	assert.True(t, HasCode(segs))
	assert.False(t, HasCode(Parse("plain")))

	var labels []string
	for _, s := range segs {
		if s.IsCode() {
			labels = append(labels, s.Label())
		}
	}
	assert.Equal(t, []string{DefaultLabel, "rust"}, labels)
}
