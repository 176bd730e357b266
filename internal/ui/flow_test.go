package ui

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/bizmatters/agent-builder/code-analyzer/internal/segment"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// MockAnalyzer returns a canned result, optionally waiting on release first
type MockAnalyzer struct {
	result  string
	err     error
	started chan struct{}
	release chan struct{}
	calls   int
}

func (m *MockAnalyzer) Analyze(ctx context.Context, snippet string) (string, error) {
	m.calls++
	if m.started != nil {
		close(m.started)
	}
	if m.release != nil {
		<-m.release
	}
	return m.result, m.err
}

func TestFlow_SubmitSuccess(t *testing.T) {
	analyzer := &MockAnalyzer{result: "Adds numbers.\n```go\nx := 1 + 2\n```"}
	flow := NewFlow(analyzer)
	assert.Equal(t, PhaseIdle, flow.Page().Phase)

	page, err := flow.Submit(context.Background(), "const x = 1;")
	require.NoError(t, err)

	assert.Equal(t, PhaseSuccess, page.Phase)
	assert.False(t, page.Loading)
	assert.Empty(t, page.Error)
	assert.Equal(t, analyzer.result, page.Response)
	assert.Equal(t, []segment.Segment{
		{Kind: segment.KindText, Content: "Adds numbers.\n"},
		{Kind: segment.KindCode, Language: "go", Content: "x := 1 + 2"},
	}, page.Segments)
	assert.True(t, page.ShowResult())
	assert.False(t, page.ShowError())
	assert.True(t, page.CanSubmit())
}

func TestFlow_SubmitFailure(t *testing.T) {
	flow := NewFlow(&MockAnalyzer{err: errors.New("Failed to analyze code: No API key found")})

	page, err := flow.Submit(context.Background(), "const x = 1;")
	require.NoError(t, err)

	assert.Equal(t, PhaseFailure, page.Phase)
	assert.False(t, page.Loading)
	assert.Equal(t, "Failed to analyze code: No API key found", page.Error)
	assert.Empty(t, page.Response)
	assert.True(t, page.ShowError())
	assert.False(t, page.ShowResult())
}

func TestFlow_SubmitFailureWithoutMessage(t *testing.T) {
	flow := NewFlow(&MockAnalyzer{err: errors.New("")})

	page, err := flow.Submit(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, fallbackErrorMessage, page.Error)
}

func TestFlow_BlankSnippetIsBlocked(t *testing.T) {
	analyzer := &MockAnalyzer{result: "unused"}
	flow := NewFlow(analyzer)

	for _, snippet := range []string{"", "   ", "\n\t"} {
		page, err := flow.Submit(context.Background(), snippet)
		assert.ErrorIs(t, err, ErrBlankSnippet)
		assert.Equal(t, PhaseIdle, page.Phase)
		assert.False(t, page.CanSubmit())
	}
	assert.Equal(t, 0, analyzer.calls)
}

func TestFlow_ResubmitResetsState(t *testing.T) {
	analyzer := &MockAnalyzer{err: errors.New("API Error")}
	flow := NewFlow(analyzer)

	page, err := flow.Submit(context.Background(), "first")
	require.NoError(t, err)
	require.Equal(t, PhaseFailure, page.Phase)

	analyzer.err = nil
	analyzer.result = "This is an analysis result"

	page, err = flow.Submit(context.Background(), "second")
	require.NoError(t, err)
	assert.Equal(t, PhaseSuccess, page.Phase)
	assert.Empty(t, page.Error)
	assert.Equal(t, "This is an analysis result", page.Response)
	assert.Equal(t, "second", page.Snippet)
}

func TestFlow_InFlightBlocksSubmission(t *testing.T) {
	analyzer := &MockAnalyzer{
		result:  "done",
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	flow := NewFlow(analyzer)

	type outcome struct {
		page Page
		err  error
	}
	done := make(chan outcome, 1)
	go func() {
		page, err := flow.Submit(context.Background(), "const x = 1;")
		done <- outcome{page, err}
	}()

	select {
	case <-analyzer.started:
	case <-time.After(time.Second):
		t.Fatal("analyzer was not called")
	}

	during := flow.Page()
	assert.Equal(t, PhaseSubmitting, during.Phase)
	assert.True(t, during.Loading)
	assert.Empty(t, during.Response)
	assert.Empty(t, during.Error)
	assert.False(t, flow.CanSubmit())

	_, err := flow.Submit(context.Background(), "another")
	assert.ErrorIs(t, err, ErrInFlight)

	close(analyzer.release)
	result := <-done
	require.NoError(t, result.err)
	assert.Equal(t, PhaseSuccess, result.page.Phase)
	assert.Equal(t, 1, analyzer.calls)
	assert.True(t, flow.CanSubmit())
}

func TestFlow_SetSnippet(t *testing.T) {
	flow := NewFlow(&MockAnalyzer{})
	assert.False(t, flow.CanSubmit())

	flow.SetSnippet("fmt.Println()")
	assert.True(t, flow.CanSubmit())
}

func TestPhase_String(t *testing.T) {
	assert.Equal(t, "idle", PhaseIdle.String())
	assert.Equal(t, "submitting", PhaseSubmitting.String())
	assert.Equal(t, "success", PhaseSuccess.String())
	assert.Equal(t, "failure", PhaseFailure.String())
	assert.Equal(t, "unknown", Phase(42).String())
}
