package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/caribelotto/results-backend/internal/middleware"
	"github.com/caribelotto/results-backend/internal/services"
)

// ResultsHandler handles result-related HTTP requests
type ResultsHandler struct {
	results *services.ResultsService
}

// NewResultsHandler creates a new ResultsHandler
func NewResultsHandler(results *services.ResultsService) *ResultsHandler {
	return &ResultsHandler{results: results}
}

// GetIslands handles GET /islands
func (h *ResultsHandler) GetIslands(c *gin.Context) {
	c.JSON(http.StatusOK, h.results.Islands())
}

// GetAllSummaries handles GET /results
func (h *ResultsHandler) GetAllSummaries(c *gin.Context) {
	results, err := h.results.GetAllSummaries(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, results)
}

// GetLatest handles GET /results/:island/latest
func (h *ResultsHandler) GetLatest(c *gin.Context) {
	games, err := h.results.GetLatest(c.Request.Context(), c.Param("island"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, games)
}

// GetHistory handles GET /results/:island/history?days=N
func (h *ResultsHandler) GetHistory(c *gin.Context) {
	days := queryInt(c, "days", 7)
	games, err := h.results.GetHistory(c.Request.Context(), c.Param("island"), days)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, games)
}

// GetStatistics handles GET /statistics?island=KEY&days=N
func (h *ResultsHandler) GetStatistics(c *gin.Context) {
	days := queryInt(c, "days", 30)
	stats, err := h.results.GetStatistics(c.Request.Context(), c.Query("island"), days)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// SubmitManualResult handles POST /results/manual (admin only)
func (h *ResultsHandler) SubmitManualResult(c *gin.Context) {
	var entry services.ManualResult
	if err := c.ShouldBindJSON(&entry); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	game, err := h.results.SubmitManualResult(c.Request.Context(), entry, middleware.SessionFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, game)
}

// Health handles GET /health
func (h *ResultsHandler) Health(c *gin.Context) {
	if err := h.results.HealthCheck(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func queryInt(c *gin.Context, key string, fallback int) int {
	value, err := strconv.Atoi(c.Query(key))
	if err != nil || value < 1 {
		return fallback
	}
	return value
}
