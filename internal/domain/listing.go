package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type ListingType string
type ListingCategory string

const (
	ListingSale  ListingType = "SALE"
	ListingRent  ListingType = "RENT"
	ListingLease ListingType = "LEASE"
)

const (
	CategoryLand  ListingCategory = "LAND"
	CategoryHouse ListingCategory = "HOUSE"
)

// Valid reports whether t is one of the declared listing types.
func (t ListingType) Valid() bool {
	switch t {
	case ListingSale, ListingRent, ListingLease:
		return true
	}
	return false
}

// Valid reports whether c is one of the declared listing categories.
func (c ListingCategory) Valid() bool {
	switch c {
	case CategoryLand, CategoryHouse:
		return true
	}
	return false
}

// Listing is a property for sale, rent or lease. The id is server-minted.
// SquareFeet is set only for LAND listings, Bedrooms only for HOUSE listings.
type Listing struct {
	ID           uuid.UUID       `json:"id"`
	UserID       uuid.UUID       `json:"-"`
	Location     string          `json:"location"`
	Area         string          `json:"area"`
	Category     ListingCategory `json:"category"`
	ListingType  ListingType     `json:"listingType"`
	SquareFeet   *int64          `json:"squareFeet,omitempty"`
	Bedrooms     *int64          `json:"bedrooms,omitempty"`
	Details      string          `json:"details"`
	Highlights   []string        `json:"highlights"`
	Price        int64           `json:"price"`
	Sold         bool            `json:"sold"`
	IsAvailable  bool            `json:"isAvailable"`
	ThumbnailURL *string         `json:"thumbnail"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"-"`
	DeletedAt    *time.Time      `json:"-"`
}

// Validate checks a listing for creation: required fields, enum membership,
// and the category-dependent size field (squareFeet for LAND, bedrooms for
// HOUSE; exactly one of the two).
func (l *Listing) Validate() error {
	if l.Location == "" || l.Area == "" || l.Details == "" {
		return Invalid("Listing Data Incomplete")
	}
	if !l.ListingType.Valid() {
		return Invalid("ListingType can be SALE, RENT or LEASE")
	}
	if !l.Category.Valid() {
		return Invalid("Category can be LAND or HOUSE")
	}
	if l.Price < 0 {
		return Invalid("Price must be a non-negative integer")
	}
	for _, h := range l.Highlights {
		if h == "" {
			return Invalid("Each highlight must be a non-empty string")
		}
	}
	switch l.Category {
	case CategoryLand:
		if l.SquareFeet == nil {
			return Invalid("SquareFeet is required for LAND listings")
		}
		if l.Bedrooms != nil {
			return Invalid("Bedrooms is not applicable to LAND listings")
		}
		if *l.SquareFeet < 0 {
			return Invalid("SquareFeet must be a non-negative integer")
		}
	case CategoryHouse:
		if l.Bedrooms == nil {
			return Invalid("Bedrooms is required for HOUSE listings")
		}
		if l.SquareFeet != nil {
			return Invalid("SquareFeet is not applicable to HOUSE listings")
		}
		if *l.Bedrooms < 0 {
			return Invalid("Bedrooms must be a non-negative integer")
		}
	}
	return nil
}

// ListingUpdate is a sparse field set for partial updates. Category is fixed
// at creation and cannot be changed.
type ListingUpdate struct {
	Location    *string      `json:"location"`
	Area        *string      `json:"area"`
	ListingType *ListingType `json:"listingType"`
	SquareFeet  *int64       `json:"squareFeet"`
	Bedrooms    *int64       `json:"bedrooms"`
	Details     *string      `json:"details"`
	Highlights  *[]string    `json:"highlights"`
	Price       *int64       `json:"price"`
	Sold        *bool        `json:"sold"`
	IsAvailable *bool        `json:"isAvailable"`
}

// HasChanges reports whether any recognized field is present.
func (u *ListingUpdate) HasChanges() bool {
	return u.Location != nil || u.Area != nil || u.ListingType != nil ||
		u.SquareFeet != nil || u.Bedrooms != nil || u.Details != nil ||
		u.Highlights != nil || u.Price != nil || u.Sold != nil || u.IsAvailable != nil
}

// ValidateFor checks the present fields against the listing's category.
func (u *ListingUpdate) ValidateFor(category ListingCategory) error {
	for _, s := range []*string{u.Location, u.Area, u.Details} {
		if s != nil && *s == "" {
			return Invalid("Listing fields cannot be empty")
		}
	}
	if u.ListingType != nil && !u.ListingType.Valid() {
		return Invalid("ListingType can be SALE, RENT or LEASE")
	}
	if u.Price != nil && *u.Price < 0 {
		return Invalid("Price must be a non-negative integer")
	}
	if u.Highlights != nil {
		for _, h := range *u.Highlights {
			if h == "" {
				return Invalid("Each highlight must be a non-empty string")
			}
		}
	}
	if u.SquareFeet != nil {
		if category != CategoryLand {
			return Invalid("SquareFeet is not applicable to HOUSE listings")
		}
		if *u.SquareFeet < 0 {
			return Invalid("SquareFeet must be a non-negative integer")
		}
	}
	if u.Bedrooms != nil {
		if category != CategoryHouse {
			return Invalid("Bedrooms is not applicable to LAND listings")
		}
		if *u.Bedrooms < 0 {
			return Invalid("Bedrooms must be a non-negative integer")
		}
	}
	return nil
}

// ListingDetail is a listing joined with its owner's public profile and its
// images, the shape served on listing reads.
type ListingDetail struct {
	Listing
	CreatedBy PublicProfile   `json:"createdBy"`
	Images    []*ListingImage `json:"images"`
}

// ListingRepository persists property listings.
type ListingRepository interface {
	Create(ctx context.Context, listing *Listing) (*Listing, error)
	GetByID(ctx context.Context, id uuid.UUID) (*ListingDetail, error)
	GetAll(ctx context.Context) ([]*ListingDetail, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]*ListingDetail, error)
	// GetOwned returns the listing only when it is owned by userID; absent and
	// not-owned are both ErrNotFound.
	GetOwned(ctx context.Context, userID, id uuid.UUID) (*Listing, error)
	Update(ctx context.Context, userID, id uuid.UUID, update ListingUpdate) (int64, *Listing, error)
	SetThumbnailURL(ctx context.Context, userID, id uuid.UUID, url string) (int64, error)
}
