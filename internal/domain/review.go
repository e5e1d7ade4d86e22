package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	MinRating = 1
	MaxRating = 5
)

// Review is a rating plus text authored by a user against a listing.
type Review struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"userId"`
	ListingID uuid.UUID  `json:"-"`
	Rating    int32      `json:"rating"`
	Title     string     `json:"reviewTitle"`
	Body      string     `json:"reviewDescription"`
	CreatedAt time.Time  `json:"createdAt"`
	DeletedAt *time.Time `json:"-"`
}

// Validate checks the required review fields.
func (r *Review) Validate() error {
	if r.Title == "" || r.Body == "" {
		return Invalid("Review Data Incomplete")
	}
	if r.Rating < MinRating || r.Rating > MaxRating {
		return Invalid("Rating must be between 1 and 5")
	}
	return nil
}

// ReviewRepository persists listing reviews.
type ReviewRepository interface {
	// Create inserts the review; the listing must exist and not be deleted.
	Create(ctx context.Context, review *Review) (*Review, error)
	GetByListingID(ctx context.Context, listingID uuid.UUID) ([]*Review, error)
	// SoftDelete removes the review only when authored by userID.
	SoftDelete(ctx context.Context, userID, reviewID uuid.UUID) (int64, error)
}
