package main

import (
	"os"

	"github.com/bizmatters/agent-builder/code-analyzer/internal/analysis"
)

func main() {
	if err := newRootCmd(analysis.NewGenAIProvider().NewGenerator).Execute(); err != nil {
		os.Exit(1)
	}
}
