package services

import (
	"context"
	"errors"

	"github.com/google/logger"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/caribelotto/results-backend/internal/apperrors"
	"github.com/caribelotto/results-backend/internal/models"
	"github.com/caribelotto/results-backend/internal/repositories"
)

// SubmissionService runs the review workflow for client-authored
// content. Submissions are created pending, transitioned exactly once to
// approved or rejected by an admin, and never deleted.
type SubmissionService struct {
	repo repositories.SubmissionRepository
}

// NewSubmissionService creates a new SubmissionService
func NewSubmissionService(repo repositories.SubmissionRepository) *SubmissionService {
	return &SubmissionService{repo: repo}
}

// Submit creates a pending submission authored by the current session.
func (s *SubmissionService) Submit(ctx context.Context, draft models.SubmissionDraft, session models.Session) (*models.Submission, error) {
	if session.State != models.SessionIdentified {
		return nil, apperrors.Unauthenticated("sign in to submit content")
	}
	if !models.ValidSubmissionCategory(draft.Category) {
		return nil, apperrors.MalformedPayload("unknown submission category")
	}

	submission := &models.Submission{
		AuthorID:    session.Email,
		Category:    draft.Category,
		Island:      draft.Island,
		Description: draft.Description,
		ContactInfo: draft.ContactInfo,
		Status:      models.SubmissionStatusPending,
	}
	if err := s.repo.Create(ctx, submission); err != nil {
		return nil, apperrors.Internal(err)
	}

	logger.Infof("submission %s created by %s (%s, %s)", submission.ID.Hex(), submission.AuthorID, submission.Category, submission.Island)
	return submission, nil
}

// Approve transitions a pending submission to approved.
func (s *SubmissionService) Approve(ctx context.Context, id primitive.ObjectID, reviewer models.Session) (*models.Submission, error) {
	return s.review(ctx, id, models.SubmissionStatusApproved, reviewer)
}

// Reject transitions a pending submission to rejected.
func (s *SubmissionService) Reject(ctx context.Context, id primitive.ObjectID, reviewer models.Session) (*models.Submission, error) {
	return s.review(ctx, id, models.SubmissionStatusRejected, reviewer)
}

// ListByStatus returns submissions in a review state, newest first.
func (s *SubmissionService) ListByStatus(ctx context.Context, status models.SubmissionStatus, page, limit int) ([]*models.Submission, error) {
	return s.repo.FindByStatus(ctx, status, page, limit)
}

// ListByAuthor returns the submissions authored by the given session.
func (s *SubmissionService) ListByAuthor(ctx context.Context, session models.Session) ([]*models.Submission, error) {
	if session.State != models.SessionIdentified {
		return nil, apperrors.Unauthenticated("sign in to view submissions")
	}
	return s.repo.FindByAuthor(ctx, session.Email)
}

func (s *SubmissionService) review(ctx context.Context, id primitive.ObjectID, status models.SubmissionStatus, reviewer models.Session) (*models.Submission, error) {
	if reviewer.State != models.SessionIdentified {
		return nil, apperrors.Unauthenticated("sign in to review submissions")
	}
	if reviewer.Role != models.RoleAdmin {
		return nil, apperrors.Forbidden("only admins may review submissions")
	}

	// The pending check and the status write are one storage operation;
	// of two racing reviewers exactly one transition lands.
	submission, err := s.repo.UpdateStatusIfPending(ctx, id, status, reviewer.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NotFoundf("submission %s not found", id.Hex())
		}
		if errors.Is(err, repositories.ErrNotPending) {
			return nil, apperrors.InvalidTransitionf("submission %s has already been reviewed", id.Hex())
		}
		return nil, apperrors.Internal(err)
	}

	logger.Infof("submission %s %s by %s", id.Hex(), submission.Status, reviewer.Email)
	return submission, nil
}
