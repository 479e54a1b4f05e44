package services

import (
	"context"
	"sync"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/caribelotto/results-backend/internal/apperrors"
	"github.com/caribelotto/results-backend/internal/models"
	"github.com/caribelotto/results-backend/internal/repositories"
)

// memSubmissionRepo is an in-memory SubmissionRepository whose
// UpdateStatusIfPending is atomic under a mutex, matching the storage
// contract of the Mongo implementation.
type memSubmissionRepo struct {
	mu      sync.Mutex
	records map[primitive.ObjectID]*models.Submission
}

func newMemSubmissionRepo() *memSubmissionRepo {
	return &memSubmissionRepo{records: make(map[primitive.ObjectID]*models.Submission)}
}

func (r *memSubmissionRepo) Create(ctx context.Context, submission *models.Submission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	submission.ID = primitive.NewObjectID()
	clone := *submission
	r.records[submission.ID] = &clone
	return nil
}

func (r *memSubmissionRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.records[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	clone := *record
	return &clone, nil
}

func (r *memSubmissionRepo) FindByStatus(ctx context.Context, status models.SubmissionStatus, page, limit int) ([]*models.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Submission
	for _, record := range r.records {
		if record.Status == status {
			clone := *record
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *memSubmissionRepo) FindByAuthor(ctx context.Context, authorID string) ([]*models.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Submission
	for _, record := range r.records {
		if record.AuthorID == authorID {
			clone := *record
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *memSubmissionRepo) UpdateStatusIfPending(ctx context.Context, id primitive.ObjectID, status models.SubmissionStatus, reviewedBy string) (*models.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.records[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	if record.Status != models.SubmissionStatusPending {
		return nil, repositories.ErrNotPending
	}
	record.Status = status
	record.ReviewedBy = reviewedBy
	clone := *record
	return &clone, nil
}

var (
	clientSession = models.IdentifiedSession("client@example.com", models.RoleClient)
	adminSession  = models.IdentifiedSession("admin@example.com", models.RoleAdmin)
)

func validDraft() models.SubmissionDraft {
	return models.SubmissionDraft{
		Category:    models.SubmissionCategoryHotel,
		Island:      "st-lucia",
		Description: "Beachfront rooms",
		ContactInfo: "758-555-0101",
	}
}

func TestSubmitRequiresSession(t *testing.T) {
	service := NewSubmissionService(newMemSubmissionRepo())

	_, err := service.Submit(context.Background(), validDraft(), models.GuestSession())
	if apperrors.KindOf(err) != apperrors.KindUnauthenticated {
		t.Fatalf("expected Unauthenticated, got %v", err)
	}
}

func TestSubmitForcesPendingAndAuthor(t *testing.T) {
	service := NewSubmissionService(newMemSubmissionRepo())

	submission, err := service.Submit(context.Background(), validDraft(), clientSession)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if submission.Status != models.SubmissionStatusPending {
		t.Errorf("expected pending status, got %v", submission.Status)
	}
	if submission.AuthorID != clientSession.Email {
		t.Errorf("expected author from session, got %q", submission.AuthorID)
	}
}

func TestSubmitRejectsUnknownCategory(t *testing.T) {
	service := NewSubmissionService(newMemSubmissionRepo())

	draft := validDraft()
	draft.Category = "realestate"
	_, err := service.Submit(context.Background(), draft, clientSession)
	if apperrors.KindOf(err) != apperrors.KindMalformedPayload {
		t.Fatalf("expected MalformedPayload, got %v", err)
	}
}

func TestReviewRequiresAdmin(t *testing.T) {
	repo := newMemSubmissionRepo()
	service := NewSubmissionService(repo)
	submission, err := service.Submit(context.Background(), validDraft(), clientSession)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	if _, err := service.Approve(context.Background(), submission.ID, clientSession); apperrors.KindOf(err) != apperrors.KindForbidden {
		t.Errorf("client approve: expected Forbidden, got %v", err)
	}
	if _, err := service.Reject(context.Background(), submission.ID, models.GuestSession()); apperrors.KindOf(err) != apperrors.KindUnauthenticated {
		t.Errorf("guest reject: expected Unauthenticated, got %v", err)
	}
}

func TestReviewTerminality(t *testing.T) {
	repo := newMemSubmissionRepo()
	service := NewSubmissionService(repo)
	submission, err := service.Submit(context.Background(), validDraft(), clientSession)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	approved, err := service.Approve(context.Background(), submission.ID, adminSession)
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if approved.Status != models.SubmissionStatusApproved {
		t.Fatalf("expected approved, got %v", approved.Status)
	}

	_, err = service.Reject(context.Background(), submission.ID, adminSession)
	if apperrors.KindOf(err) != apperrors.KindInvalidTransition {
		t.Fatalf("expected InvalidTransition after approval, got %v", err)
	}

	// Status unchanged by the failed reject.
	record, err := repo.FindByID(context.Background(), submission.ID)
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if record.Status != models.SubmissionStatusApproved {
		t.Errorf("status mutated by failed transition: %v", record.Status)
	}
}

func TestReviewUnknownID(t *testing.T) {
	service := NewSubmissionService(newMemSubmissionRepo())

	_, err := service.Approve(context.Background(), primitive.NewObjectID(), adminSession)
	if apperrors.KindOf(err) != apperrors.KindNotFound {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

func TestConcurrentReviewRace(t *testing.T) {
	repo := newMemSubmissionRepo()
	service := NewSubmissionService(repo)
	submission, err := service.Submit(context.Background(), validDraft(), clientSession)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	var wg sync.WaitGroup
	results := make(chan error, 2)
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, err := service.Approve(context.Background(), submission.ID, adminSession)
		results <- err
	}()
	go func() {
		defer wg.Done()
		_, err := service.Reject(context.Background(), submission.ID, adminSession)
		results <- err
	}()
	wg.Wait()
	close(results)

	var successes, invalid int
	for err := range results {
		if err == nil {
			successes++
			continue
		}
		if apperrors.KindOf(err) == apperrors.KindInvalidTransition {
			invalid++
		} else {
			t.Errorf("unexpected error from racing review: %v", err)
		}
	}
	if successes != 1 || invalid != 1 {
		t.Fatalf("expected exactly one success and one InvalidTransition, got %d/%d", successes, invalid)
	}
}

func TestStatusTransitionRules(t *testing.T) {
	if !models.SubmissionStatusPending.CanTransitionTo(models.SubmissionStatusApproved) {
		t.Error("pending -> approved should be legal")
	}
	if !models.SubmissionStatusPending.CanTransitionTo(models.SubmissionStatusRejected) {
		t.Error("pending -> rejected should be legal")
	}
	if models.SubmissionStatusApproved.CanTransitionTo(models.SubmissionStatusRejected) {
		t.Error("approved is terminal")
	}
	if models.SubmissionStatusRejected.CanTransitionTo(models.SubmissionStatusApproved) {
		t.Error("rejected is terminal")
	}
	if models.SubmissionStatusPending.CanTransitionTo(models.SubmissionStatusPending) {
		t.Error("pending -> pending is not a transition")
	}
}
