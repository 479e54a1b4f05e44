package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/caribelotto/results-backend/internal/models"
	"github.com/caribelotto/results-backend/internal/repositories"
)

// SubmissionRepository implements the repositories.SubmissionRepository interface
type SubmissionRepository struct {
	collection *mongo.Collection
}

// NewSubmissionRepository creates a new SubmissionRepository
func NewSubmissionRepository(db *mongo.Database) repositories.SubmissionRepository {
	return &SubmissionRepository{
		collection: db.Collection("submissions"),
	}
}

// Create creates a new submission
func (r *SubmissionRepository) Create(ctx context.Context, submission *models.Submission) error {
	submission.CreatedAt = time.Now()
	submission.UpdatedAt = time.Now()
	res, err := r.collection.InsertOne(ctx, submission)
	if err != nil {
		return err
	}
	submission.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// FindByID finds a submission by ID
func (r *SubmissionRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Submission, error) {
	var submission models.Submission
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&submission)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}
	return &submission, nil
}

// FindByStatus finds submissions by status, newest first
func (r *SubmissionRepository) FindByStatus(ctx context.Context, status models.SubmissionStatus, page, limit int) ([]*models.Submission, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	opts := options.Find().
		SetSort(bson.M{"createdAt": -1}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{"status": status}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var submissions []*models.Submission
	if err := cursor.All(ctx, &submissions); err != nil {
		return nil, err
	}
	if submissions == nil {
		submissions = []*models.Submission{}
	}
	return submissions, nil
}

// FindByAuthor finds all submissions created by the given author
func (r *SubmissionRepository) FindByAuthor(ctx context.Context, authorID string) ([]*models.Submission, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := r.collection.Find(ctx, bson.M{"authorId": authorID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var submissions []*models.Submission
	if err := cursor.All(ctx, &submissions); err != nil {
		return nil, err
	}
	if submissions == nil {
		submissions = []*models.Submission{}
	}
	return submissions, nil
}

// UpdateStatusIfPending transitions a pending submission in one
// findAndModify round trip. The status filter makes the check-and-set
// atomic at the storage boundary; a concurrent reviewer who lost the
// race sees ErrNotPending.
func (r *SubmissionRepository) UpdateStatusIfPending(ctx context.Context, id primitive.ObjectID, status models.SubmissionStatus, reviewedBy string) (*models.Submission, error) {
	filter := bson.M{
		"_id":    id,
		"status": models.SubmissionStatusPending,
	}
	update := bson.M{
		"$set": bson.M{
			"status":     status,
			"reviewedBy": reviewedBy,
			"updatedAt":  time.Now(),
		},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var submission models.Submission
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&submission)
	if err == nil {
		return &submission, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	// Distinguish "unknown id" from "already reviewed" for error
	// reporting only; the transition itself happened (or not) above.
	count, countErr := r.collection.CountDocuments(ctx, bson.M{"_id": id})
	if countErr != nil {
		return nil, countErr
	}
	if count == 0 {
		return nil, repositories.ErrNotFound
	}
	return nil, repositories.ErrNotPending
}
