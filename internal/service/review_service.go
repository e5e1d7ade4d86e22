package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/teamprojectsorg/My-Home-Web-BE/internal/domain"
)

// ReviewService handles listing reviews
type ReviewService struct {
	reviewRepo domain.ReviewRepository
}

// NewReviewService creates a new ReviewService
func NewReviewService(reviewRepo domain.ReviewRepository) *ReviewService {
	return &ReviewService{reviewRepo: reviewRepo}
}

// Create validates and inserts a review against a live listing
func (s *ReviewService) Create(ctx context.Context, userID, listingID uuid.UUID, rating int32, title, body string) (*domain.Review, error) {
	review := &domain.Review{
		ID:        uuid.New(),
		UserID:    userID,
		ListingID: listingID,
		Rating:    rating,
		Title:     title,
		Body:      body,
	}
	if err := review.Validate(); err != nil {
		return nil, err
	}
	return s.reviewRepo.Create(ctx, review)
}

// GetForListing retrieves the reviews of a listing
func (s *ReviewService) GetForListing(ctx context.Context, listingID uuid.UUID) ([]*domain.Review, error) {
	return s.reviewRepo.GetByListingID(ctx, listingID)
}

// Delete removes a review authored by the caller
func (s *ReviewService) Delete(ctx context.Context, userID, reviewID uuid.UUID) error {
	affected, err := s.reviewRepo.SoftDelete(ctx, userID, reviewID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
