package service

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/teamprojectsorg/My-Home-Web-BE/internal/domain"
)

// ListingService handles listing CRUD and listing-bound media
type ListingService struct {
	listingRepo domain.ListingRepository
	imageRepo   domain.ListingImageRepository
	cascadeRepo domain.CascadeRepository
	media       *MediaService
}

// NewListingService creates a new ListingService
func NewListingService(listingRepo domain.ListingRepository, imageRepo domain.ListingImageRepository, cascadeRepo domain.CascadeRepository, media *MediaService) *ListingService {
	return &ListingService{
		listingRepo: listingRepo,
		imageRepo:   imageRepo,
		cascadeRepo: cascadeRepo,
		media:       media,
	}
}

// GetAll retrieves all live listings
func (s *ListingService) GetAll(ctx context.Context) ([]*domain.ListingDetail, error) {
	return s.listingRepo.GetAll(ctx)
}

// GetByID retrieves one listing
func (s *ListingService) GetByID(ctx context.Context, id uuid.UUID) (*domain.ListingDetail, error) {
	return s.listingRepo.GetByID(ctx, id)
}

// GetMine retrieves the caller's listings
func (s *ListingService) GetMine(ctx context.Context, userID uuid.UUID) ([]*domain.ListingDetail, error) {
	return s.listingRepo.GetByUserID(ctx, userID)
}

// Create validates and inserts a listing. The id is server-minted and the
// sold flag always starts false.
func (s *ListingService) Create(ctx context.Context, userID uuid.UUID, listing *domain.Listing) (*domain.Listing, error) {
	listing.ID = uuid.New()
	listing.UserID = userID
	listing.Sold = false
	if err := listing.Validate(); err != nil {
		return nil, err
	}
	return s.listingRepo.Create(ctx, listing)
}

// Update applies a sparse field set to an owned listing. The present fields
// are validated against the listing's category, which is fixed at creation.
func (s *ListingService) Update(ctx context.Context, userID, id uuid.UUID, update domain.ListingUpdate) (*domain.Listing, error) {
	if !update.HasChanges() {
		return nil, domain.ErrNoFieldsProvided
	}

	owned, err := s.listingRepo.GetOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := update.ValidateFor(owned.Category); err != nil {
		return nil, err
	}

	_, listing, err := s.listingRepo.Update(ctx, userID, id, update)
	return listing, err
}

// Delete removes an owned listing and cascades to its images and reviews in
// a single transaction.
func (s *ListingService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.cascadeRepo.DeleteListing(ctx, userID, id)
}

// ValidateUpload checks an upload header against the media pipeline's size
// and type rules without processing it.
func (s *ListingService) ValidateUpload(file *multipart.FileHeader) error {
	return s.media.ValidateHeader(file)
}

// SetThumbnail runs the upload through the media pipeline and attaches the
// resulting URL to an owned listing. The key is deterministic per listing so
// repeated uploads overwrite.
func (s *ListingService) SetThumbnail(ctx context.Context, userID, id uuid.UUID, file *multipart.FileHeader) (string, error) {
	if _, err := s.listingRepo.GetOwned(ctx, userID, id); err != nil {
		return "", err
	}

	key := thumbnailKey(id)
	url, err := s.media.ProcessAndStore(ctx, file, key)
	if err != nil {
		return "", err
	}

	affected, err := s.listingRepo.SetThumbnailURL(ctx, userID, id, url)
	if err != nil {
		return "", err
	}
	if affected == 0 {
		return "", domain.ErrNotFound
	}
	return url, nil
}

// AddImage uploads one image for an owned listing and attaches it atomically:
// the image row is inserted only after the object upload succeeds, carrying
// its final URL, so no unattached row can exist.
func (s *ListingService) AddImage(ctx context.Context, userID, listingID uuid.UUID, file *multipart.FileHeader, description string) (*domain.ListingImage, error) {
	if _, err := s.listingRepo.GetOwned(ctx, userID, listingID); err != nil {
		return nil, err
	}

	imageID := uuid.New()
	key := imageKey(listingID, imageID)
	url, err := s.media.ProcessAndStore(ctx, file, key)
	if err != nil {
		return nil, err
	}

	image, err := s.imageRepo.Create(ctx, &domain.ListingImage{
		ID:          imageID,
		UserID:      userID,
		ListingID:   listingID,
		Description: description,
		URL:         url,
	})
	if err != nil {
		// The object is already stored; undo it so a failed attach leaves
		// neither a row nor an orphaned object behind.
		if rmErr := s.media.Remove(ctx, key); rmErr != nil {
			log.Error().Err(rmErr).Str("key", key).Msg("Failed to remove object after attach failure")
		}
		return nil, err
	}
	return image, nil
}

// DeleteImage removes one image of an owned listing
func (s *ListingService) DeleteImage(ctx context.Context, userID, listingID, imageID uuid.UUID) error {
	affected, err := s.imageRepo.SoftDelete(ctx, userID, listingID, imageID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func thumbnailKey(listingID uuid.UUID) string {
	return fmt.Sprintf("listings/%s/thumbnail.jpg", listingID)
}

func imageKey(listingID, imageID uuid.UUID) string {
	return fmt.Sprintf("listings/%s/images/%s.jpg", listingID, imageID)
}
