package gateway

import (
	"errors"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bizmatters/agent-builder/code-analyzer/internal/logging"
	"github.com/bizmatters/agent-builder/code-analyzer/internal/models"
	"github.com/bizmatters/agent-builder/code-analyzer/internal/render"
	"github.com/bizmatters/agent-builder/code-analyzer/internal/ui"
)

// copiedMillis is how long a copy button shows its confirmation
const copiedMillis = 2000

// Analyzer is the analysis request handler used by the gateway
type Analyzer interface {
	ui.Analyzer
	Model() string
	Configured() bool
}

// Handler handles HTTP requests for the gateway layer
type Handler struct {
	analyzer    Analyzer
	highlighter *render.Highlighter
	css         template.CSS
}

// NewHandler creates a new gateway handler
func NewHandler(analyzer Analyzer, highlighter *render.Highlighter) *Handler {
	css, err := highlighter.CSS()
	if err != nil {
		logging.Warnw("Highlight stylesheet unavailable", "error", err.Error())
	}

	return &Handler{
		analyzer:    analyzer,
		highlighter: highlighter,
		css:         css,
	}
}

// pageView is the data rendered by index.html
type pageView struct {
	Page         ui.Page
	Blocks       []render.Block
	CSS          template.CSS
	CopiedMillis int
}

func (h *Handler) view(page ui.Page) pageView {
	return pageView{
		Page:         page,
		Blocks:       h.highlighter.Render(page.Segments),
		CSS:          h.css,
		CopiedMillis: copiedMillis,
	}
}

// Index renders the empty analyzer page
func (h *Handler) Index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", h.view(ui.Page{}))
}

// SubmitForm runs an analysis for the posted form and renders the result
func (h *Handler) SubmitForm(c *gin.Context) {
	snippet := c.PostForm("code_snippet")

	page, err := ui.NewFlow(h.analyzer).Submit(c.Request.Context(), snippet)
	if errors.Is(err, ui.ErrBlankSnippet) {
		c.HTML(http.StatusBadRequest, "index.html", h.view(page))
		return
	}
	if err != nil {
		_ = c.Error(err)
		c.HTML(http.StatusInternalServerError, "index.html", h.view(page))
		return
	}

	if page.Phase == ui.PhaseFailure {
		_ = c.Error(errors.New(page.Error))
	}
	c.HTML(http.StatusOK, "index.html", h.view(page))
}

// Analyze godoc
// @Summary Analyze code
// @Description Summarize a code snippet and suggest improvements using a generative model
// @Tags analysis
// @Accept json
// @Produce json
// @Param request body models.AnalyzeRequest true "Code snippet"
// @Success 200 {object} models.AnalyzeResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Router /analyze [post]
func (h *Handler) Analyze(c *gin.Context) {
	var req models.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: "Invalid request",
			Code:  models.ErrCodeInvalidRequest,
		})
		return
	}

	page, err := ui.NewFlow(h.analyzer).Submit(c.Request.Context(), req.CodeSnippet)
	if errors.Is(err, ui.ErrBlankSnippet) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: "Code snippet must not be blank",
			Code:  models.ErrCodeInvalidRequest,
		})
		return
	}
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Failed to start analysis",
			Code:  models.ErrCodeInternalError,
		})
		return
	}

	if page.Phase == ui.PhaseFailure {
		_ = c.Error(errors.New(page.Error))
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error: page.Error,
			Code:  models.ErrCodeAnalysisFailed,
			Details: map[string]string{
				"model": h.analyzer.Model(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, models.AnalyzeResponse{
		Analysis: page.Response,
		Model:    h.analyzer.Model(),
		Segments: page.Segments,
	})
}

// Health reports process liveness
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// Ready reports whether analyses can be served
func (h *Handler) Ready(c *gin.Context) {
	if !h.analyzer.Configured() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not ready",
			"error":  "API key not configured",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
