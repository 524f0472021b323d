// Package api exposes the risk engine over HTTP.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/aas-risk-engine/internal/coeff"
	"github.com/aas-risk-engine/internal/domain"
	"github.com/aas-risk-engine/internal/engine"
	"github.com/aas-risk-engine/internal/export"
	"github.com/aas-risk-engine/internal/middleware"
	"github.com/aas-risk-engine/internal/plugin"
	"github.com/aas-risk-engine/internal/scenario"
)

// Server is the HTTP server over the scenario store and risk engine.
type Server struct {
	config      *domain.Config
	store       *scenario.Store
	engine      *engine.Engine
	exporter    *export.Exporter
	registry    *plugin.Registry
	coeffs      *coeff.Store
	logger      *logrus.Logger
	router      *gin.Engine
	server      *http.Server
	rateLimiter *middleware.RateLimiter
}

// NewServer wires the HTTP surface.
func NewServer(cfg *domain.Config, store *scenario.Store, eng *engine.Engine,
	registry *plugin.Registry, coeffs *coeff.Store, logger *logrus.Logger) *Server {

	if cfg.Logging.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CorrelationID())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.SecurityHeaders())
	router.Use(corsMiddleware())

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	router.Use(rateLimiter.Middleware())

	s := &Server{
		config:      cfg,
		store:       store,
		engine:      eng,
		exporter:    export.NewExporter(store),
		registry:    registry,
		coeffs:      coeffs,
		logger:      logger,
		router:      router,
		rateLimiter: rateLimiter,
	}
	s.setupRoutes()
	return s
}

// Router exposes the configured handler, used by tests and embedding.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start runs the server until the context is canceled, then shuts down
// gracefully.
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.config.Server.ReadTimeout,
		WriteTimeout: s.config.Server.WriteTimeout,
		IdleTimeout:  s.config.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.WithField("addr", addr).Info("HTTP server listening")
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		s.rateLimiter.Stop()
		return err
	case <-ctx.Done():
	}
	s.rateLimiter.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return s.server.Shutdown(shutdownCtx)
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)

	v1 := s.router.Group("/api/v1")
	{
		v1.GET("/scenarios", s.handleListScenarios)
		v1.POST("/scenarios", s.handleCreateScenario)
		v1.POST("/scenarios/import", s.handleImportScenario)
		v1.GET("/scenarios/compare", s.handleCompareScenarios)
		v1.GET("/scenarios/impact", s.handleInterventionImpact)
		v1.GET("/scenarios/:id", s.handleGetScenario)
		v1.PUT("/scenarios/:id", s.handleUpdateScenario)
		v1.DELETE("/scenarios/:id", s.handleDeleteScenario)
		v1.POST("/scenarios/:id/clone", s.handleCloneScenario)
		v1.GET("/scenarios/:id/export", s.handleExportScenario)
		v1.GET("/scenarios/:id/trajectory", s.handleTrajectory)

		v1.POST("/compute", s.handleCompute)
		v1.GET("/plugins", s.handleListPlugins)
		v1.GET("/presets", s.handleListPresets)
		v1.GET("/presets/:name", s.handleGetPreset)
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
		"version":   domain.ModelVersion,
	})
}

// corsMiddleware adds CORS headers to responses
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, X-Correlation-ID")
		c.Header("Access-Control-Expose-Headers", "Content-Length, Content-Disposition, X-Correlation-ID")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
