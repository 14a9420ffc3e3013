// Package ui exposes the data workbench over HTTP: upload, profile,
// clean, filter, aggregate, query, chart, export, undo. All dataset state
// lives in the session store; handlers are thin translations between
// JSON and the pipeline packages.
package ui

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pratikkkbhere/DataPilot/internal/config"
	"github.com/pratikkkbhere/DataPilot/internal/session"
)

// Server is the workbench HTTP server.
type Server struct {
	router *gin.Engine
	store  *session.Store
	cfg    *config.Config
}

// NewServer wires the router against a fresh session store.
func NewServer(cfg *config.Config) *Server {
	gin.SetMode(cfg.Server.GinMode)

	s := &Server{
		router: gin.Default(),
		store:  session.NewStore(),
		cfg:    cfg,
	}
	s.router.MaxMultipartMemory = cfg.Upload.MaxFileSize
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)

	api := s.router.Group("/api")
	{
		api.POST("/upload", s.handleUpload)
		api.POST("/demo", s.handleDemo)

		sessions := api.Group("/sessions/:id")
		{
			sessions.GET("/summary", s.handleSummary)
			sessions.GET("/data", s.handleData)
			sessions.GET("/actions", s.handleActions)
			sessions.DELETE("", s.handleDelete)

			sessions.POST("/missing/preview", s.handleMissingPreview)
			sessions.POST("/missing/apply", s.handleMissingApply)
			sessions.POST("/find-replace/preview", s.handleFindReplacePreview)
			sessions.POST("/find-replace", s.handleFindReplace)
			sessions.POST("/undo", s.handleUndo)

			sessions.POST("/view", s.handleView)
			sessions.POST("/aggregate", s.handleAggregate)
			sessions.POST("/chart", s.handleChart)

			sessions.POST("/sql", s.handleSQL)
			sessions.POST("/visual-query", s.handleVisualQuery)
			sessions.GET("/templates", s.handleTemplates)
			sessions.GET("/schema", s.handleSchema)

			sessions.GET("/export", s.handleExport)
			sessions.GET("/report", s.handleReport)
		}
	}
}

// Run starts the server and the session janitor, blocking until the
// listener fails.
func (s *Server) Run(ctx context.Context) error {
	s.store.StartJanitor(ctx, time.Minute, 30*time.Minute)

	addr := ":" + s.cfg.Server.Port
	log.Printf("[Server] listening on %s", addr)
	return s.router.Run(addr)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(200, gin.H{
		"status":   "ok",
		"sessions": s.store.Len(),
	})
}
