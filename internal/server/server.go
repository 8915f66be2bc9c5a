// Package server exposes the analyzer over HTTP, mirroring the endpoints the
// frontend consumes: /analyze, /analyze-batch and health checks.
package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	sidewalkanalyzer "github.com/safestreets/sidewalk-analyzer"
)

// Server is the HTTP transport around an Analyzer.
type Server struct {
	analyzer *sidewalkanalyzer.Analyzer
	model    string
	logger   *zap.Logger
}

// New creates a Server. model is reported in the service banner.
func New(analyzer *sidewalkanalyzer.Analyzer, model string, logger *zap.Logger) *Server {
	return &Server{analyzer: analyzer, model: model, logger: logger}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router(debug bool) *gin.Engine {
	if !debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery(), s.cors(), s.requestLog())

	router.GET("/", s.handleRoot)
	router.GET("/health", s.handleHealth)
	router.POST("/analyze", s.handleAnalyze)
	router.POST("/analyze-batch", s.handleAnalyzeBatch)

	return router
}

// cors allows browser frontends on any origin to call the API.
func (s *Server) cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func (s *Server) requestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("elapsed", time.Since(start)),
		)
	}
}

func (s *Server) handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "SafeStreets CV API",
		"model":   s.model,
		"version": sidewalkanalyzer.Version,
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	healthy := s.analyzer.Healthy(c.Request.Context())
	status := http.StatusOK
	if !healthy {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{
		"status":       map[bool]string{true: "healthy", false: "degraded"}[healthy],
		"model_loaded": healthy,
	})
}
