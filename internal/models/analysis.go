package models

import "github.com/bizmatters/agent-builder/code-analyzer/internal/segment"

// AnalyzeRequest represents a code analysis request
type AnalyzeRequest struct {
	CodeSnippet string `json:"code_snippet" binding:"required"`
}

// AnalyzeResponse represents a code analysis response
type AnalyzeResponse struct {
	Analysis string            `json:"analysis"`
	Model    string            `json:"model"`
	Segments []segment.Segment `json:"segments"`
}
