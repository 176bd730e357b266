package gateway

import (
	"embed"
	"html/template"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/bizmatters/agent-builder/code-analyzer/docs" // swagger docs
)

//go:embed templates/*.html
var templateFS embed.FS

// LoadTemplates parses the embedded page templates
func LoadTemplates() (*template.Template, error) {
	return template.ParseFS(templateFS, "templates/*.html")
}

// NewRouter wires middleware and routes for the handler
func NewRouter(h *Handler) (*gin.Engine, error) {
	tmpl, err := LoadTemplates()
	if err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(gin.Recovery(), RequestID(), StructuredLogging())
	router.SetHTMLTemplate(tmpl)

	// Health checks MUST be at the root for the WebService standard
	router.GET("/health", h.Health)
	router.GET("/ready", h.Ready)

	router.GET("/", h.Index)
	router.POST("/analyze", h.SubmitForm)

	api := router.Group("/api")
	api.POST("/analyze", h.Analyze)
	api.GET("/health", h.Health)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return router, nil
}
