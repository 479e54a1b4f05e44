package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/caribelotto/results-backend/internal/middleware"
	"github.com/caribelotto/results-backend/internal/models"
	"github.com/caribelotto/results-backend/internal/services"
)

// SubmissionHandler handles submission workflow HTTP requests
type SubmissionHandler struct {
	submissions *services.SubmissionService
}

// NewSubmissionHandler creates a new SubmissionHandler
func NewSubmissionHandler(submissions *services.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{submissions: submissions}
}

// Create handles POST /submissions
func (h *SubmissionHandler) Create(c *gin.Context) {
	var draft models.SubmissionDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	submission, err := h.submissions.Submit(c.Request.Context(), draft, middleware.SessionFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, submission)
}

// ListMine handles GET /submissions/mine
func (h *SubmissionHandler) ListMine(c *gin.Context) {
	submissions, err := h.submissions.ListByAuthor(c.Request.Context(), middleware.SessionFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, submissions)
}

// ListByStatus handles GET /submissions?status=PENDING&page=1&limit=20
// (admin only)
func (h *SubmissionHandler) ListByStatus(c *gin.Context) {
	status := models.SubmissionStatus(c.DefaultQuery("status", string(models.SubmissionStatusPending)))
	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 20)

	submissions, err := h.submissions.ListByStatus(c.Request.Context(), status, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, submissions)
}

// Approve handles POST /submissions/:id/approve (admin only)
func (h *SubmissionHandler) Approve(c *gin.Context) {
	h.review(c, h.submissions.Approve)
}

// Reject handles POST /submissions/:id/reject (admin only)
func (h *SubmissionHandler) Reject(c *gin.Context) {
	h.review(c, h.submissions.Reject)
}

func (h *SubmissionHandler) review(c *gin.Context, transition func(ctx context.Context, id primitive.ObjectID, reviewer models.Session) (*models.Submission, error)) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid submission id"})
		return
	}

	submission, err := transition(c.Request.Context(), id, middleware.SessionFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, submission)
}
