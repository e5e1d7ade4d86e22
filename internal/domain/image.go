package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ListingImage is a stored-object-backed asset attached to a listing. Rows
// are created only after the object upload has succeeded, so an image row
// always carries its final URL and listing id.
type ListingImage struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"-"`
	ListingID   uuid.UUID  `json:"-"`
	Description string     `json:"description"`
	URL         string     `json:"url"`
	CreatedAt   time.Time  `json:"-"`
	DeletedAt   *time.Time `json:"-"`
}

// ListingImageRepository persists listing images.
type ListingImageRepository interface {
	Create(ctx context.Context, image *ListingImage) (*ListingImage, error)
	GetByListingID(ctx context.Context, listingID uuid.UUID) ([]*ListingImage, error)
	// SoftDelete removes the image only when the listing is owned by userID.
	SoftDelete(ctx context.Context, userID, listingID, imageID uuid.UUID) (int64, error)
}
