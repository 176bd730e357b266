package analysis

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/bizmatters/agent-builder/code-analyzer/internal/logging"
	"github.com/bizmatters/agent-builder/code-analyzer/internal/metrics"
)

// DefaultModel is used when no model override is configured
const DefaultModel = "gemma-3-27b-it"

// Generator produces text for a single prompt
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeneratorFactory builds a Generator bound to a credential and model
type GeneratorFactory func(ctx context.Context, apiKey, model string) (Generator, error)

// Config carries the credential and model used for every analysis
type Config struct {
	APIKey    string
	ModelName string
}

// Analyzer turns a code snippet into a natural-language analysis
type Analyzer struct {
	apiKey    string
	model     string
	newClient GeneratorFactory
	tracer    trace.Tracer
	metrics   *metrics.AnalysisMetrics
}

// NewAnalyzer creates a new analyzer. A nil factory selects the GenAI client.
func NewAnalyzer(cfg Config, factory GeneratorFactory, m *metrics.AnalysisMetrics) *Analyzer {
	model := cfg.ModelName
	if model == "" {
		model = DefaultModel
	}
	if factory == nil {
		factory = NewGenAIProvider().NewGenerator
	}

	return &Analyzer{
		apiKey:    cfg.APIKey,
		model:     model,
		newClient: factory,
		tracer:    otel.Tracer("code-analyzer"),
		metrics:   m,
	}
}

// Model returns the model identifier requests are sent to
func (a *Analyzer) Model() string {
	return a.model
}

// Analyze sends the snippet to the model once and returns its text unmodified.
// Every failure is returned as *Error.
func (a *Analyzer) Analyze(ctx context.Context, snippet string) (result string, err error) {
	ctx, span := a.tracer.Start(ctx, "analysis.analyze")
	defer span.End()

	span.SetAttributes(
		attribute.String("model", a.model),
		attribute.Int("snippet.length", len(snippet)),
	)

	start := time.Now()
	if a.metrics != nil {
		a.metrics.RecordStarted(ctx, a.model)
	}

	defer func() {
		if r := recover(); r != nil {
			err = fromPanic(r)
		}

		elapsed := time.Since(start)
		if err != nil {
			span.RecordError(err)
			logging.Warnw("Analysis failed", "model", a.model, "error", err.Error())
			if a.metrics != nil {
				a.metrics.RecordFailed(ctx, a.model, errorType(err), elapsed)
			}
			return
		}
		if a.metrics != nil {
			a.metrics.RecordCompleted(ctx, a.model, elapsed)
		}
	}()

	if a.apiKey == "" {
		return "", &Error{Cause: ErrNoAPIKey}
	}

	client, err := a.newClient(ctx, a.apiKey, a.model)
	if err != nil {
		return "", &Error{Cause: err}
	}

	text, err := client.Generate(ctx, BuildPrompt(snippet))
	if err != nil {
		return "", &Error{Cause: err}
	}

	return text, nil
}

func errorType(err error) string {
	switch {
	case errors.Is(err, ErrNoAPIKey):
		return "configuration_error"
	case errors.Is(err, errUnknown):
		return "unknown_error"
	default:
		return "remote_error"
	}
}

func fromPanic(r interface{}) error {
	if e, ok := r.(error); ok {
		return &Error{Cause: e}
	}
	return &Error{Cause: errUnknown}
}

// Configured reports whether a credential is available
func (a *Analyzer) Configured() bool {
	return a.apiKey != ""
}
