// Package server exposes the JSON API: content generation, draft
// history, news monitoring, profile management and social publishing.
package server

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"pressdesk/internal/config"
	"pressdesk/internal/extract"
	"pressdesk/internal/news"
	"pressdesk/internal/publish"
	"pressdesk/internal/rewrite"
	"pressdesk/internal/store"
)

// Server wires the HTTP routes to the underlying services.
type Server struct {
	cfg        *config.Config
	log        *slog.Logger
	router     *gin.Engine
	db         *store.Database
	drafts     *store.DraftStore
	monitor    *news.Monitor
	extractor  *extract.Extractor
	generator  *rewrite.Service
	publishers publish.Registry
}

func New(
	cfg *config.Config,
	db *store.Database,
	drafts *store.DraftStore,
	monitor *news.Monitor,
	extractor *extract.Extractor,
	generator *rewrite.Service,
	publishers publish.Registry,
	log *slog.Logger,
) *Server {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		cfg:        cfg,
		log:        log,
		router:     gin.Default(),
		db:         db,
		drafts:     drafts,
		monitor:    monitor,
		extractor:  extractor,
		generator:  generator,
		publishers: publishers,
	}

	s.setupRoutes()

	return s
}

// Router exposes the underlying engine for tests and the HTTP server.
func (s *Server) Router() *gin.Engine {
	return s.router
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)

	// Uploaded photos must be reachable by the social platforms.
	s.router.Static("/uploads", s.cfg.UploadDir)

	api := s.router.Group("/api")
	{
		api.POST("/generate", s.handleGenerate)
		api.POST("/publish", s.handlePublish)
		api.GET("/news", s.handleNews)
		api.GET("/drafts", s.handleDrafts)
		api.GET("/profiles", s.handleListProfiles)
		api.GET("/profiles/:name", s.handleGetProfile)
		api.PUT("/profiles/:name", s.handlePutProfile)
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "pressdesk",
	})
}

func (s *Server) handleNews(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"items": s.monitor.Items(c.Request.Context()),
	})
}

func (s *Server) handleDrafts(c *gin.Context) {
	drafts, err := s.drafts.List()
	if err != nil {
		s.log.ErrorContext(c.Request.Context(), "Failed to list drafts",
			"error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to list drafts"})

		return
	}

	c.JSON(http.StatusOK, gin.H{"drafts": drafts})
}
