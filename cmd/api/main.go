package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/trace"

	"github.com/bizmatters/agent-builder/code-analyzer/internal/analysis"
	"github.com/bizmatters/agent-builder/code-analyzer/internal/config"
	"github.com/bizmatters/agent-builder/code-analyzer/internal/gateway"
	"github.com/bizmatters/agent-builder/code-analyzer/internal/logging"
	"github.com/bizmatters/agent-builder/code-analyzer/internal/metrics"
	"github.com/bizmatters/agent-builder/code-analyzer/internal/render"
)

// @title Code Analyzer API
// @version 1.0
// @description Summarizes pasted code snippets and suggests improvements using a generative language model.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api

func main() {
	if err := config.LoadEnvFile(".env"); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load .env: %v\n", err)
		os.Exit(1)
	}

	cfg := config.FromEnv()
	logging.Init(cfg.LogLevel)
	defer logging.Sync()
	cfg.LogDefaults()

	tp, err := initTracer()
	if err != nil {
		logging.Fatalw("Failed to initialize tracer", "error", err.Error())
	}

	analysisMetrics, err := metrics.NewAnalysisMetrics()
	if err != nil {
		logging.Fatalw("Failed to initialize metrics", "error", err.Error())
	}

	// Initialize analysis layer
	analyzer := analysis.NewAnalyzer(cfg.Analysis(), analysis.NewGenAIProvider().NewGenerator, analysisMetrics)

	if mode := os.Getenv("GIN_MODE"); mode != "" {
		gin.SetMode(mode)
	}

	// Initialize gateway layer
	handler := gateway.NewHandler(analyzer, render.NewHighlighter(render.DefaultStyle))
	router, err := gateway.NewRouter(handler)
	if err != nil {
		logging.Fatalw("Failed to build router", "error", err.Error())
	}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second, // model calls are synchronous
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logging.Infow("Starting Code Analyzer server", "port", cfg.Port, "model", analyzer.Model())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatalw("Failed to start server", "error", err.Error())
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logging.Infow("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logging.Errorw("Server forced to shutdown", "error", err.Error())
	}
	if err := tp.Shutdown(ctx); err != nil {
		logging.Errorw("Failed to flush traces", "error", err.Error())
	}

	logging.Infow("Server exited")
}

// initTracer initializes OpenTelemetry tracing
func initTracer() (*trace.TracerProvider, error) {
	exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
	if err != nil {
		return nil, fmt.Errorf("failed to create stdout exporter: %w", err)
	}

	tp := trace.NewTracerProvider(
		trace.WithBatcher(exporter),
	)

	otel.SetTracerProvider(tp)

	return tp, nil
}
