package analysis

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/genai"

	"github.com/bizmatters/agent-builder/code-analyzer/internal/logging"
)

// GenAIProvider builds generators backed by the Google GenAI API.
// All generators it builds share one circuit breaker.
type GenAIProvider struct {
	breaker    *gobreaker.CircuitBreaker
	tracer     trace.Tracer
	baseURL    string
	httpClient *http.Client
}

// NewGenAIProvider creates a provider with its circuit breaker
func NewGenAIProvider() *GenAIProvider {
	settings := gobreaker.Settings{
		Name:        "genai",
		MaxRequests: 3,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 5
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logging.Warnw("Circuit breaker changed state", "name", name, "from", from.String(), "to", to.String())
		},
	}

	return &GenAIProvider{
		breaker: gobreaker.NewCircuitBreaker(settings),
		tracer:  otel.Tracer("genai-client"),
	}
}

// NewGenerator satisfies GeneratorFactory
func (p *GenAIProvider) NewGenerator(ctx context.Context, apiKey, model string) (Generator, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  p.httpClient,
		HTTPOptions: genai.HTTPOptions{BaseURL: p.baseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &GenAIGenerator{
		client:  client,
		model:   model,
		breaker: p.breaker,
		tracer:  p.tracer,
	}, nil
}

// GenAIGenerator sends prompts to one GenAI model
type GenAIGenerator struct {
	client  *genai.Client
	model   string
	breaker *gobreaker.CircuitBreaker
	tracer  trace.Tracer
}

// Generate calls GenerateContent once and returns the response text
func (g *GenAIGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, span := g.tracer.Start(ctx, "genai.generate_content")
	defer span.End()

	span.SetAttributes(
		attribute.String("model", g.model),
		attribute.Int("prompt.length", len(prompt)),
	)

	result, err := g.breaker.Execute(func() (interface{}, error) {
		resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
		if err != nil {
			return nil, err
		}
		return resp.Text(), nil
	})
	if err != nil {
		span.RecordError(err)
		return "", err
	}

	text := result.(string)
	span.SetAttributes(attribute.Int("response.length", len(text)))

	return text, nil
}
