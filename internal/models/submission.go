package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SubmissionStatus is the review state of client-authored content.
// Pending is the only non-terminal state.
type SubmissionStatus string

const (
	SubmissionStatusPending  SubmissionStatus = "PENDING"
	SubmissionStatusApproved SubmissionStatus = "APPROVED"
	SubmissionStatusRejected SubmissionStatus = "REJECTED"
)

// CanTransitionTo reports whether a status change is legal. Approved and
// rejected are terminal; there is no re-review.
func (s SubmissionStatus) CanTransitionTo(next SubmissionStatus) bool {
	if s != SubmissionStatusPending {
		return false
	}
	return next == SubmissionStatusApproved || next == SubmissionStatusRejected
}

// SubmissionCategory classifies what a client is advertising.
type SubmissionCategory string

const (
	SubmissionCategoryLottery   SubmissionCategory = "lottery"
	SubmissionCategorySports    SubmissionCategory = "sports"
	SubmissionCategoryHotel     SubmissionCategory = "hotel"
	SubmissionCategoryEvent     SubmissionCategory = "event"
	SubmissionCategoryCommodity SubmissionCategory = "commodity"
)

// ValidSubmissionCategory reports whether c is one of the known
// categories.
func ValidSubmissionCategory(c SubmissionCategory) bool {
	switch c {
	case SubmissionCategoryLottery, SubmissionCategorySports,
		SubmissionCategoryHotel, SubmissionCategoryEvent,
		SubmissionCategoryCommodity:
		return true
	}
	return false
}

// Submission is client-authored content pending admin review. Records
// are never deleted, only status-transitioned, to keep an audit trail.
type Submission struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	AuthorID    string             `bson:"authorId" json:"authorId"`
	Category    SubmissionCategory `bson:"category" json:"category"`
	Island      string             `bson:"island" json:"island"`
	Description string             `bson:"description" json:"description"`
	ContactInfo string             `bson:"contactInfo" json:"contactInfo"`
	Status      SubmissionStatus   `bson:"status" json:"status"`
	ReviewedBy  string             `bson:"reviewedBy,omitempty" json:"reviewedBy,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// SubmissionDraft is the client-supplied part of a submission. Author
// and status are assigned by the service, never by the caller.
type SubmissionDraft struct {
	Category    SubmissionCategory `json:"category" binding:"required"`
	Island      string             `json:"island" binding:"required"`
	Description string             `json:"description" binding:"required"`
	ContactInfo string             `json:"contactInfo" binding:"required"`
}
