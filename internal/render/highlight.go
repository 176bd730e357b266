// Package render turns parsed response segments into HTML blocks, with
// server-side syntax highlighting for code.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"regexp"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/microcosm-cc/bluemonday"

	"github.com/bizmatters/agent-builder/code-analyzer/internal/segment"
)

// DefaultStyle is the chroma style used when none is given
const DefaultStyle = "github"

// Block is one renderable unit of an analysis result
type Block struct {
	IsCode bool
	Label  string
	Text   string
	Code   string
	HTML   template.HTML
}

// Highlighter renders code with chroma and sanitizes the markup
type Highlighter struct {
	style     *chroma.Style
	formatter *html.Formatter
	policy    *bluemonday.Policy
}

// NewHighlighter creates a highlighter using the named chroma style
func NewHighlighter(styleName string) *Highlighter {
	if styleName == "" {
		styleName = DefaultStyle
	}

	policy := bluemonday.NewPolicy()
	policy.AllowElements("pre", "code", "span")
	policy.AllowAttrs("class").Matching(regexp.MustCompile(`^[a-zA-Z0-9 _-]+$`)).OnElements("pre", "code", "span")

	return &Highlighter{
		style:     styles.Get(styleName),
		formatter: html.New(html.WithClasses(true), html.TabWidth(4)),
		policy:    policy,
	}
}

// Highlight renders code as a sanitized HTML fragment. An unknown or empty
// language is guessed from the code, then falls back to plain text.
func (h *Highlighter) Highlight(language, code string) (template.HTML, error) {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return "", fmt.Errorf("failed to tokenise %s code: %w", language, err)
	}

	var buf bytes.Buffer
	if err := h.formatter.Format(&buf, h.style, iterator); err != nil {
		return "", fmt.Errorf("failed to format %s code: %w", language, err)
	}

	return template.HTML(h.policy.Sanitize(buf.String())), nil
}

// CSS returns the stylesheet for the highlighter's classes
func (h *Highlighter) CSS() (template.CSS, error) {
	var buf bytes.Buffer
	if err := h.formatter.WriteCSS(&buf, h.style); err != nil {
		return "", fmt.Errorf("failed to write highlight css: %w", err)
	}
	return template.CSS(buf.String()), nil
}

// Render converts segments into blocks in order. A code segment that cannot
// be highlighted is rendered as escaped preformatted text.
func (h *Highlighter) Render(segs []segment.Segment) []Block {
	blocks := make([]Block, 0, len(segs))
	for _, s := range segs {
		if !s.IsCode() {
			blocks = append(blocks, Block{Text: s.Content})
			continue
		}

		markup, err := h.Highlight(s.Language, s.Content)
		if err != nil {
			markup = template.HTML(`<pre class="chroma"><code>` + template.HTMLEscapeString(s.Content) + `</code></pre>`)
		}

		blocks = append(blocks, Block{
			IsCode: true,
			Label:  s.Label(),
			Code:   s.Content,
			HTML:   markup,
		})
	}
	return blocks
}
