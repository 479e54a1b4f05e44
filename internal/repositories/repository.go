package repositories

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/caribelotto/results-backend/internal/models"
)

// ErrNotFound is returned when a lookup matches no document.
var ErrNotFound = errors.New("not found")

// ErrNotPending is returned by UpdateStatusIfPending when the record
// exists but has already left the pending state. The check-and-set is a
// single storage operation, so two racing reviewers can never both
// transition the same record.
var ErrNotPending = errors.New("submission is not pending")

// AccountRepository defines the interface for backend account data operations
type AccountRepository interface {
	Create(ctx context.Context, account *models.Account) error
	FindByEmail(ctx context.Context, email string) (*models.Account, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Account, error)
	FindAll(ctx context.Context) ([]*models.Account, error)
	Update(ctx context.Context, account *models.Account) error
}

// SubmissionRepository defines the interface for submission data
// operations. There is deliberately no Delete: submissions are an audit
// trail and only ever change status.
type SubmissionRepository interface {
	Create(ctx context.Context, submission *models.Submission) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Submission, error)
	FindByStatus(ctx context.Context, status models.SubmissionStatus, page, limit int) ([]*models.Submission, error)
	FindByAuthor(ctx context.Context, authorID string) ([]*models.Submission, error)
	// UpdateStatusIfPending atomically moves a pending submission to the
	// given status and stamps the reviewer. Returns ErrNotFound for an
	// unknown id and ErrNotPending when the record is already terminal.
	UpdateStatusIfPending(ctx context.Context, id primitive.ObjectID, status models.SubmissionStatus, reviewedBy string) (*models.Submission, error)
}

// ResultRepository defines the interface for cached normalized game
// results, keyed by island plus case-insensitive game name.
type ResultRepository interface {
	UpsertGame(ctx context.Context, game *models.GameAggregate) error
	FindByIsland(ctx context.Context, island string) ([]*models.GameAggregate, error)
	FindByGame(ctx context.Context, island, gameName string) (*models.GameAggregate, error)
}
