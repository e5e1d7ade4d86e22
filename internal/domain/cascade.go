package domain

import (
	"context"

	"github.com/google/uuid"
)

// CascadeRepository deletes a parent entity together with its dependents in a
// single transaction. The cascade is an explicit pre-delete step, not a
// database-level ON DELETE CASCADE, so each step is observable and the same
// path works whether or not the store declares foreign-key cascades.
//
// Dependents per parent:
//
//	Listing: its images, its reviews
//	Profile: images of the user's listings, reviews on those listings,
//	         reviews authored by the user, the listings themselves
//
// Both methods scope the parent delete to userID; zero affected parent rows
// aborts the transaction and surfaces as ErrNotFound (absent and not-owned
// are indistinguishable to the caller).
type CascadeRepository interface {
	DeleteListing(ctx context.Context, userID, listingID uuid.UUID) error
	DeleteProfile(ctx context.Context, userID uuid.UUID) error
}
