package testutil

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/teamprojectsorg/My-Home-Web-BE/internal/domain"
)

// MockProfileRepository is a mock implementation of domain.ProfileRepository
type MockProfileRepository struct {
	Profiles map[uuid.UUID]*domain.Profile
	CreateFn func(ctx context.Context, profile *domain.Profile) (*domain.Profile, error)
	UpdateFn func(ctx context.Context, userID uuid.UUID, update domain.ProfileUpdate) (int64, *domain.Profile, error)
}

// NewMockProfileRepository creates a new MockProfileRepository
func NewMockProfileRepository() *MockProfileRepository {
	return &MockProfileRepository{
		Profiles: make(map[uuid.UUID]*domain.Profile),
	}
}

// Create registers a new profile
func (m *MockProfileRepository) Create(ctx context.Context, profile *domain.Profile) (*domain.Profile, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, profile)
	}
	if _, ok := m.Profiles[profile.UserID]; ok {
		return nil, domain.ErrProfileExists
	}
	profile.CreatedAt = time.Now()
	profile.UpdatedAt = profile.CreatedAt
	m.Profiles[profile.UserID] = profile
	return profile, nil
}

// GetByUserID retrieves a profile by user ID
func (m *MockProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	if profile, ok := m.Profiles[userID]; ok {
		return profile, nil
	}
	return nil, domain.ErrProfileNotRegistered
}

// Update applies a sparse update to a stored profile
func (m *MockProfileRepository) Update(ctx context.Context, userID uuid.UUID, update domain.ProfileUpdate) (int64, *domain.Profile, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, userID, update)
	}
	profile, ok := m.Profiles[userID]
	if !ok {
		return 0, nil, domain.ErrProfileNotRegistered
	}
	if update.FirstName != nil {
		profile.FirstName = *update.FirstName
	}
	if update.Surname != nil {
		profile.Surname = *update.Surname
	}
	if update.Residence != nil {
		profile.Residence = *update.Residence
	}
	if update.Area != nil {
		profile.Area = *update.Area
	}
	if update.LegalID != nil {
		profile.LegalID = *update.LegalID
	}
	if update.LegalIDType != nil {
		profile.LegalIDType = *update.LegalIDType
	}
	if update.PhoneNumber != nil {
		profile.PhoneNumber = *update.PhoneNumber
	}
	profile.UpdatedAt = time.Now()
	return 1, profile, nil
}

// SetAvatarURL stores the avatar URL for a profile
func (m *MockProfileRepository) SetAvatarURL(ctx context.Context, userID uuid.UUID, url string) (int64, error) {
	profile, ok := m.Profiles[userID]
	if !ok {
		return 0, nil
	}
	profile.AvatarURL = &url
	return 1, nil
}

// AddProfile adds a profile to the mock repository (helper for tests)
func (m *MockProfileRepository) AddProfile(profile *domain.Profile) {
	m.Profiles[profile.UserID] = profile
}

// MockListingRepository is a mock implementation of domain.ListingRepository
type MockListingRepository struct {
	Listings map[uuid.UUID]*domain.Listing
	Owners   map[uuid.UUID]domain.PublicProfile
	CreateFn func(ctx context.Context, listing *domain.Listing) (*domain.Listing, error)
	UpdateFn func(ctx context.Context, userID, id uuid.UUID, update domain.ListingUpdate) (int64, *domain.Listing, error)
}

// NewMockListingRepository creates a new MockListingRepository
func NewMockListingRepository() *MockListingRepository {
	return &MockListingRepository{
		Listings: make(map[uuid.UUID]*domain.Listing),
		Owners:   make(map[uuid.UUID]domain.PublicProfile),
	}
}

// Create stores a new listing
func (m *MockListingRepository) Create(ctx context.Context, listing *domain.Listing) (*domain.Listing, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, listing)
	}
	listing.CreatedAt = time.Now()
	listing.UpdatedAt = listing.CreatedAt
	m.Listings[listing.ID] = listing
	return listing, nil
}

func (m *MockListingRepository) detail(listing *domain.Listing) *domain.ListingDetail {
	return &domain.ListingDetail{
		Listing:   *listing,
		CreatedBy: m.Owners[listing.UserID],
		Images:    []*domain.ListingImage{},
	}
}

// GetByID retrieves a listing with owner and images
func (m *MockListingRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ListingDetail, error) {
	if listing, ok := m.Listings[id]; ok {
		return m.detail(listing), nil
	}
	return nil, domain.ErrNotFound
}

// GetAll retrieves every stored listing
func (m *MockListingRepository) GetAll(ctx context.Context) ([]*domain.ListingDetail, error) {
	details := []*domain.ListingDetail{}
	for _, listing := range m.Listings {
		details = append(details, m.detail(listing))
	}
	return details, nil
}

// GetByUserID retrieves the listings owned by a user
func (m *MockListingRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.ListingDetail, error) {
	details := []*domain.ListingDetail{}
	for _, listing := range m.Listings {
		if listing.UserID == userID {
			details = append(details, m.detail(listing))
		}
	}
	return details, nil
}

// GetOwned retrieves a listing only when owned by userID
func (m *MockListingRepository) GetOwned(ctx context.Context, userID, id uuid.UUID) (*domain.Listing, error) {
	listing, ok := m.Listings[id]
	if !ok || listing.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return listing, nil
}

// Update applies a sparse update to an owned listing
func (m *MockListingRepository) Update(ctx context.Context, userID, id uuid.UUID, update domain.ListingUpdate) (int64, *domain.Listing, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, userID, id, update)
	}
	listing, ok := m.Listings[id]
	if !ok || listing.UserID != userID {
		return 0, nil, nil
	}
	if update.Location != nil {
		listing.Location = *update.Location
	}
	if update.Area != nil {
		listing.Area = *update.Area
	}
	if update.ListingType != nil {
		listing.ListingType = *update.ListingType
	}
	if update.SquareFeet != nil {
		listing.SquareFeet = update.SquareFeet
	}
	if update.Bedrooms != nil {
		listing.Bedrooms = update.Bedrooms
	}
	if update.Details != nil {
		listing.Details = *update.Details
	}
	if update.Highlights != nil {
		listing.Highlights = *update.Highlights
	}
	if update.Price != nil {
		listing.Price = *update.Price
	}
	if update.Sold != nil {
		listing.Sold = *update.Sold
	}
	if update.IsAvailable != nil {
		listing.IsAvailable = *update.IsAvailable
	}
	listing.UpdatedAt = time.Now()
	return 1, listing, nil
}

// SetThumbnailURL stores the thumbnail URL for an owned listing
func (m *MockListingRepository) SetThumbnailURL(ctx context.Context, userID, id uuid.UUID, url string) (int64, error) {
	listing, ok := m.Listings[id]
	if !ok || listing.UserID != userID {
		return 0, nil
	}
	listing.ThumbnailURL = &url
	return 1, nil
}

// AddListing adds a listing to the mock repository (helper for tests)
func (m *MockListingRepository) AddListing(listing *domain.Listing) {
	m.Listings[listing.ID] = listing
}

// MockListingImageRepository is a mock implementation of domain.ListingImageRepository
type MockListingImageRepository struct {
	Images   map[uuid.UUID]*domain.ListingImage
	Listings *MockListingRepository
	CreateFn func(ctx context.Context, image *domain.ListingImage) (*domain.ListingImage, error)
}

// NewMockListingImageRepository creates a new MockListingImageRepository
// backed by the given listing repository for ownership checks
func NewMockListingImageRepository(listings *MockListingRepository) *MockListingImageRepository {
	return &MockListingImageRepository{
		Images:   make(map[uuid.UUID]*domain.ListingImage),
		Listings: listings,
	}
}

// Create stores a new listing image
func (m *MockListingImageRepository) Create(ctx context.Context, image *domain.ListingImage) (*domain.ListingImage, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, image)
	}
	image.CreatedAt = time.Now()
	m.Images[image.ID] = image
	return image, nil
}

// GetByListingID retrieves the images attached to a listing
func (m *MockListingImageRepository) GetByListingID(ctx context.Context, listingID uuid.UUID) ([]*domain.ListingImage, error) {
	images := []*domain.ListingImage{}
	for _, image := range m.Images {
		if image.ListingID == listingID {
			images = append(images, image)
		}
	}
	return images, nil
}

// SoftDelete removes an image when the listing is owned by userID
func (m *MockListingImageRepository) SoftDelete(ctx context.Context, userID, listingID, imageID uuid.UUID) (int64, error) {
	image, ok := m.Images[imageID]
	if !ok || image.ListingID != listingID {
		return 0, nil
	}
	listing, ok := m.Listings.Listings[listingID]
	if !ok || listing.UserID != userID {
		return 0, nil
	}
	delete(m.Images, imageID)
	return 1, nil
}

// MockReviewRepository is a mock implementation of domain.ReviewRepository
type MockReviewRepository struct {
	Reviews  map[uuid.UUID]*domain.Review
	Listings *MockListingRepository
	CreateFn func(ctx context.Context, review *domain.Review) (*domain.Review, error)
}

// NewMockReviewRepository creates a new MockReviewRepository backed by the
// given listing repository for the live-listing guard
func NewMockReviewRepository(listings *MockListingRepository) *MockReviewRepository {
	return &MockReviewRepository{
		Reviews:  make(map[uuid.UUID]*domain.Review),
		Listings: listings,
	}
}

// Create stores a review when the target listing exists
func (m *MockReviewRepository) Create(ctx context.Context, review *domain.Review) (*domain.Review, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, review)
	}
	if _, ok := m.Listings.Listings[review.ListingID]; !ok {
		return nil, domain.ErrNotFound
	}
	review.CreatedAt = time.Now()
	m.Reviews[review.ID] = review
	return review, nil
}

// GetByListingID retrieves the reviews of a listing
func (m *MockReviewRepository) GetByListingID(ctx context.Context, listingID uuid.UUID) ([]*domain.Review, error) {
	reviews := []*domain.Review{}
	for _, review := range m.Reviews {
		if review.ListingID == listingID {
			reviews = append(reviews, review)
		}
	}
	return reviews, nil
}

// SoftDelete removes a review when authored by userID
func (m *MockReviewRepository) SoftDelete(ctx context.Context, userID, reviewID uuid.UUID) (int64, error) {
	review, ok := m.Reviews[reviewID]
	if !ok || review.UserID != userID {
		return 0, nil
	}
	delete(m.Reviews, reviewID)
	return 1, nil
}

// MockCascadeRepository is a mock implementation of domain.CascadeRepository
type MockCascadeRepository struct {
	Profiles        *MockProfileRepository
	Listings        *MockListingRepository
	Images          *MockListingImageRepository
	Reviews         *MockReviewRepository
	DeleteListingFn func(ctx context.Context, userID, listingID uuid.UUID) error
	DeleteProfileFn func(ctx context.Context, userID uuid.UUID) error
}

// NewMockCascadeRepository creates a new MockCascadeRepository over the given
// mock repositories
func NewMockCascadeRepository(profiles *MockProfileRepository, listings *MockListingRepository, images *MockListingImageRepository, reviews *MockReviewRepository) *MockCascadeRepository {
	return &MockCascadeRepository{
		Profiles: profiles,
		Listings: listings,
		Images:   images,
		Reviews:  reviews,
	}
}

func (m *MockCascadeRepository) deleteListingRows(listingID uuid.UUID) {
	for id, image := range m.Images.Images {
		if image.ListingID == listingID {
			delete(m.Images.Images, id)
		}
	}
	for id, review := range m.Reviews.Reviews {
		if review.ListingID == listingID {
			delete(m.Reviews.Reviews, id)
		}
	}
	delete(m.Listings.Listings, listingID)
}

// DeleteListing removes an owned listing and its dependents
func (m *MockCascadeRepository) DeleteListing(ctx context.Context, userID, listingID uuid.UUID) error {
	if m.DeleteListingFn != nil {
		return m.DeleteListingFn(ctx, userID, listingID)
	}
	listing, ok := m.Listings.Listings[listingID]
	if !ok || listing.UserID != userID {
		return domain.ErrNotFound
	}
	m.deleteListingRows(listingID)
	return nil
}

// DeleteProfile removes a profile, its listings and their dependents, and the
// user's authored reviews
func (m *MockCascadeRepository) DeleteProfile(ctx context.Context, userID uuid.UUID) error {
	if m.DeleteProfileFn != nil {
		return m.DeleteProfileFn(ctx, userID)
	}
	if _, ok := m.Profiles.Profiles[userID]; !ok {
		return domain.ErrProfileNotRegistered
	}
	for id, listing := range m.Listings.Listings {
		if listing.UserID == userID {
			m.deleteListingRows(id)
		}
	}
	for id, review := range m.Reviews.Reviews {
		if review.UserID == userID {
			delete(m.Reviews.Reviews, id)
		}
	}
	delete(m.Profiles.Profiles, userID)
	return nil
}

// MockObjectStore is an in-memory implementation of storage.ObjectStore
type MockObjectStore struct {
	mu      sync.Mutex
	Objects map[string][]byte
	PutFn   func(ctx context.Context, key string, data io.Reader, size int64, contentType string) (string, error)
}

// NewMockObjectStore creates a new MockObjectStore
func NewMockObjectStore() *MockObjectStore {
	return &MockObjectStore{
		Objects: make(map[string][]byte),
	}
}

// Put stores an object and returns a fake public URL
func (m *MockObjectStore) Put(ctx context.Context, key string, data io.Reader, size int64, contentType string) (string, error) {
	if m.PutFn != nil {
		return m.PutFn(ctx, key, data, size, contentType)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, data); err != nil {
		return "", err
	}
	m.mu.Lock()
	m.Objects[key] = buf.Bytes()
	m.mu.Unlock()
	return fmt.Sprintf("https://storage.test/%s", key), nil
}

// Remove deletes a stored object
func (m *MockObjectStore) Remove(ctx context.Context, key string) error {
	m.mu.Lock()
	delete(m.Objects, key)
	m.mu.Unlock()
	return nil
}
