package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	sidewalkanalyzer "github.com/safestreets/sidewalk-analyzer"
	"github.com/safestreets/sidewalk-analyzer/pkg/processing"
	"github.com/safestreets/sidewalk-analyzer/pkg/segmentation"
)

// handleAnalyze runs the full pipeline for one image. Fetch problems are the
// caller's fault (bad or dead URL, 400); anything else is a 500.
func (s *Server) handleAnalyze(c *gin.Context) {
	var req sidewalkanalyzer.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	s.logger.Info("analyzing image", zap.String("image_id", req.ImageID))

	result, err := s.analyzer.AnalyzeURL(c.Request.Context(), req.ImageID, req.ImageURL)
	if err != nil {
		switch {
		case errors.Is(err, processing.ErrFetch):
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Failed to fetch image: " + err.Error()})
		case errors.Is(err, segmentation.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		default:
			s.logger.Error("analysis failed", zap.String("image_id", req.ImageID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Analysis failed: " + err.Error()})
		}
		return
	}

	s.logger.Info("analysis complete",
		zap.String("image_id", req.ImageID),
		zap.String("quality", string(result.Quality)),
		zap.String("confidence", string(result.Confidence)),
	)
	c.JSON(http.StatusOK, result)
}

// handleAnalyzeBatch analyzes up to the batch limit of images. The response
// always carries one entry per processed item; individual failures surface
// as degraded results, never as a batch-level error.
func (s *Server) handleAnalyzeBatch(c *gin.Context) {
	var requests []sidewalkanalyzer.Request
	if err := c.ShouldBindJSON(&requests); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	s.logger.Info("analyzing batch", zap.Int("items", len(requests)))
	results := s.analyzer.AnalyzeBatch(c.Request.Context(), requests)
	c.JSON(http.StatusOK, results)
}
