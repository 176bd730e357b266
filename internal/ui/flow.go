// Package ui holds the form state machine behind the analyzer page.
package ui

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/bizmatters/agent-builder/code-analyzer/internal/segment"
)

// Phase is a step in the submission lifecycle
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSubmitting
	PhaseSuccess
	PhaseFailure
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseSubmitting:
		return "submitting"
	case PhaseSuccess:
		return "success"
	case PhaseFailure:
		return "failure"
	default:
		return "unknown"
	}
}

var (
	// ErrBlankSnippet is returned when the snippet is empty after trimming
	ErrBlankSnippet = errors.New("code snippet is blank")
	// ErrInFlight is returned when a submission is already running
	ErrInFlight = errors.New("analysis already in progress")
)

// fallbackErrorMessage is shown when a failure carries no message
const fallbackErrorMessage = "An error occurred"

// Analyzer is the request handler a Flow submits to
type Analyzer interface {
	Analyze(ctx context.Context, snippet string) (string, error)
}

// Page is a snapshot of the form state
type Page struct {
	Phase    Phase
	Snippet  string
	Response string
	Loading  bool
	Error    string
	Segments []segment.Segment
}

// CanSubmit reports whether the submit control is enabled
func (p Page) CanSubmit() bool {
	return !p.Loading && strings.TrimSpace(p.Snippet) != ""
}

// ShowError reports whether the error panel is visible
func (p Page) ShowError() bool {
	return p.Error != ""
}

// ShowResult reports whether the result panel is visible
func (p Page) ShowResult() bool {
	return p.Response != ""
}

// Flow drives one form through idle, submitting and a terminal phase
type Flow struct {
	analyzer Analyzer

	mu   sync.Mutex
	page Page
}

// NewFlow creates an idle flow
func NewFlow(analyzer Analyzer) *Flow {
	return &Flow{analyzer: analyzer}
}

// SetSnippet updates the input text without submitting
func (f *Flow) SetSnippet(snippet string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.page.Snippet = snippet
}

// CanSubmit reports whether Submit would start a request
func (f *Flow) CanSubmit() bool {
	return f.Page().CanSubmit()
}

// Page returns a copy of the current state
func (f *Flow) Page() Page {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.page
}

// Submit runs one analysis and waits for it to settle. It returns
// ErrInFlight or ErrBlankSnippet when the submission is blocked; analysis
// failures land in the page's Error instead.
func (f *Flow) Submit(ctx context.Context, snippet string) (Page, error) {
	f.mu.Lock()
	if f.page.Loading {
		f.mu.Unlock()
		return f.Page(), ErrInFlight
	}
	f.page.Snippet = snippet
	if strings.TrimSpace(snippet) == "" {
		page := f.page
		f.mu.Unlock()
		return page, ErrBlankSnippet
	}
	f.page = Page{
		Phase:   PhaseSubmitting,
		Snippet: snippet,
		Loading: true,
	}
	f.mu.Unlock()

	result, err := f.analyzer.Analyze(ctx, snippet)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.page.Loading = false
	if err != nil {
		f.page.Phase = PhaseFailure
		f.page.Error = err.Error()
		if f.page.Error == "" {
			f.page.Error = fallbackErrorMessage
		}
		return f.page, nil
	}

	f.page.Phase = PhaseSuccess
	f.page.Response = result
	f.page.Segments = segment.Parse(result)
	return f.page, nil
}
