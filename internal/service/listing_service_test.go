package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/teamprojectsorg/My-Home-Web-BE/internal/domain"
	"github.com/teamprojectsorg/My-Home-Web-BE/internal/testutil"
)

type listingFixture struct {
	svc      *ListingService
	listings *testutil.MockListingRepository
	images   *testutil.MockListingImageRepository
	cascade  *testutil.MockCascadeRepository
	store    *testutil.MockObjectStore
}

func newListingFixture() *listingFixture {
	profileRepo := testutil.NewMockProfileRepository()
	listingRepo := testutil.NewMockListingRepository()
	imageRepo := testutil.NewMockListingImageRepository(listingRepo)
	reviewRepo := testutil.NewMockReviewRepository(listingRepo)
	cascadeRepo := testutil.NewMockCascadeRepository(profileRepo, listingRepo, imageRepo, reviewRepo)
	store := testutil.NewMockObjectStore()
	media := NewMediaService(store, 2)
	return &listingFixture{
		svc:      NewListingService(listingRepo, imageRepo, cascadeRepo, media),
		listings: listingRepo,
		images:   imageRepo,
		cascade:  cascadeRepo,
		store:    store,
	}
}

func int64Ptr(v int64) *int64 { return &v }

func validLandListing() *domain.Listing {
	return &domain.Listing{
		Location:    "Tema Community 25",
		Area:        "Greater Accra",
		Category:    domain.CategoryLand,
		ListingType: domain.ListingSale,
		SquareFeet:  int64Ptr(5000),
		Details:     "Serviced plot close to the motorway",
		Highlights:  []string{"Walled", "Gated community"},
		Price:       85000,
		IsAvailable: true,
	}
}

func validHouseListing() *domain.Listing {
	return &domain.Listing{
		Location:    "Kumasi Ahodwo",
		Area:        "Ashanti",
		Category:    domain.CategoryHouse,
		ListingType: domain.ListingRent,
		Bedrooms:    int64Ptr(3),
		Details:     "Three bedroom self compound",
		Price:       2500,
		IsAvailable: true,
	}
}

func TestCreateListing_MintsIDAndClearsSold(t *testing.T) {
	f := newListingFixture()
	userID := uuid.New()

	listing := validLandListing()
	listing.Sold = true // client-supplied value must not survive

	created, err := f.svc.Create(context.Background(), userID, listing)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if created.ID == uuid.Nil {
		t.Error("Expected a server-minted id")
	}
	if created.UserID != userID {
		t.Errorf("Expected owner %s, got %s", userID, created.UserID)
	}
	if created.Sold {
		t.Error("Expected sold to start false")
	}
}

func TestCreateListing_LandRequiresSquareFeet(t *testing.T) {
	f := newListingFixture()

	listing := validLandListing()
	listing.SquareFeet = nil

	_, err := f.svc.Create(context.Background(), uuid.New(), listing)
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput, got %v", err)
	}
}

func TestCreateListing_LandRejectsBedrooms(t *testing.T) {
	f := newListingFixture()

	listing := validLandListing()
	listing.Bedrooms = int64Ptr(2)

	_, err := f.svc.Create(context.Background(), uuid.New(), listing)
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput, got %v", err)
	}
}

func TestCreateListing_HouseRequiresBedrooms(t *testing.T) {
	f := newListingFixture()

	listing := validHouseListing()
	listing.Bedrooms = nil

	_, err := f.svc.Create(context.Background(), uuid.New(), listing)
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput, got %v", err)
	}
}

func TestCreateListing_RejectsNegativePrice(t *testing.T) {
	f := newListingFixture()

	listing := validLandListing()
	listing.Price = -1

	_, err := f.svc.Create(context.Background(), uuid.New(), listing)
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput, got %v", err)
	}
}

func TestCreateListing_RejectsEmptyHighlight(t *testing.T) {
	f := newListingFixture()

	listing := validLandListing()
	listing.Highlights = []string{"Walled", ""}

	_, err := f.svc.Create(context.Background(), uuid.New(), listing)
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput, got %v", err)
	}
}

func TestUpdateListing_Success(t *testing.T) {
	f := newListingFixture()
	userID := uuid.New()

	created, err := f.svc.Create(context.Background(), userID, validHouseListing())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	price := int64(3000)
	sold := true
	updated, err := f.svc.Update(context.Background(), userID, created.ID, domain.ListingUpdate{Price: &price, Sold: &sold})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if updated.Price != 3000 {
		t.Errorf("Expected price 3000, got %d", updated.Price)
	}
	if !updated.Sold {
		t.Error("Expected sold to be true")
	}
}

func TestUpdateListing_NoFields(t *testing.T) {
	f := newListingFixture()

	_, err := f.svc.Update(context.Background(), uuid.New(), uuid.New(), domain.ListingUpdate{})
	if !errors.Is(err, domain.ErrNoFieldsProvided) {
		t.Errorf("Expected ErrNoFieldsProvided, got %v", err)
	}
}

func TestUpdateListing_NotOwned(t *testing.T) {
	f := newListingFixture()
	owner := uuid.New()

	created, err := f.svc.Create(context.Background(), owner, validLandListing())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	price := int64(90000)
	_, err = f.svc.Update(context.Background(), uuid.New(), created.ID, domain.ListingUpdate{Price: &price})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for a non-owner, got %v", err)
	}
}

func TestUpdateListing_SizeFieldCheckedAgainstStoredCategory(t *testing.T) {
	f := newListingFixture()
	userID := uuid.New()

	created, err := f.svc.Create(context.Background(), userID, validLandListing())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// Bedrooms never applies to a LAND listing, whatever the update says.
	_, err = f.svc.Update(context.Background(), userID, created.ID, domain.ListingUpdate{Bedrooms: int64Ptr(4)})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput, got %v", err)
	}
}

func TestDeleteListing_CascadesToImagesAndReviews(t *testing.T) {
	f := newListingFixture()
	userID := uuid.New()

	created, err := f.svc.Create(context.Background(), userID, validLandListing())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	imageID := uuid.New()
	f.images.Images[imageID] = &domain.ListingImage{ID: imageID, ListingID: created.ID}
	reviewID := uuid.New()
	f.cascade.Reviews.Reviews[reviewID] = &domain.Review{ID: reviewID, UserID: uuid.New(), ListingID: created.ID}

	if err := f.svc.Delete(context.Background(), userID, created.ID); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(f.listings.Listings) != 0 {
		t.Error("Expected listing to be deleted")
	}
	if len(f.images.Images) != 0 {
		t.Error("Expected images to be deleted with the listing")
	}
	if len(f.cascade.Reviews.Reviews) != 0 {
		t.Error("Expected reviews to be deleted with the listing")
	}
}

func TestDeleteListing_NotOwned(t *testing.T) {
	f := newListingFixture()
	owner := uuid.New()

	created, err := f.svc.Create(context.Background(), owner, validLandListing())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	err = f.svc.Delete(context.Background(), uuid.New(), created.ID)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for a non-owner, got %v", err)
	}
	if len(f.listings.Listings) != 1 {
		t.Error("Expected listing to survive a non-owner delete")
	}
}

func TestSetThumbnail_Success(t *testing.T) {
	f := newListingFixture()
	userID := uuid.New()

	created, err := f.svc.Create(context.Background(), userID, validLandListing())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	file := makeUpload(t, "front.jpg", "image/jpeg", jpegPayload(t))
	url, err := f.svc.SetThumbnail(context.Background(), userID, created.ID, file)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	wantKey := "listings/" + created.ID.String() + "/thumbnail.jpg"
	if _, ok := f.store.Objects[wantKey]; !ok {
		t.Errorf("Expected object under %s", wantKey)
	}
	if got := f.listings.Listings[created.ID].ThumbnailURL; got == nil || *got != url {
		t.Errorf("Expected thumbnail URL %s to be persisted, got %v", url, got)
	}
}

func TestSetThumbnail_NotOwned(t *testing.T) {
	f := newListingFixture()
	owner := uuid.New()

	created, err := f.svc.Create(context.Background(), owner, validLandListing())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	file := makeUpload(t, "front.jpg", "image/jpeg", jpegPayload(t))
	_, err = f.svc.SetThumbnail(context.Background(), uuid.New(), created.ID, file)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for a non-owner, got %v", err)
	}
	if len(f.store.Objects) != 0 {
		t.Error("Expected no object to be stored for a non-owner")
	}
}

func TestAddImage_Success(t *testing.T) {
	f := newListingFixture()
	userID := uuid.New()

	created, err := f.svc.Create(context.Background(), userID, validLandListing())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	file := makeUpload(t, "garden.png", "image/png", pngPayload(t))
	image, err := f.svc.AddImage(context.Background(), userID, created.ID, file, "the back garden")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if image.Description != "the back garden" {
		t.Errorf("Expected description to be stored, got %s", image.Description)
	}
	if image.URL == "" {
		t.Error("Expected the image row to carry its object URL")
	}
	if len(f.store.Objects) != 1 {
		t.Errorf("Expected one stored object, got %d", len(f.store.Objects))
	}
}

func TestAddImage_AttachFailureRemovesObject(t *testing.T) {
	f := newListingFixture()
	userID := uuid.New()

	created, err := f.svc.Create(context.Background(), userID, validLandListing())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	f.images.CreateFn = func(ctx context.Context, image *domain.ListingImage) (*domain.ListingImage, error) {
		return nil, errors.New("insert failed")
	}

	file := makeUpload(t, "garden.png", "image/png", pngPayload(t))
	_, err = f.svc.AddImage(context.Background(), userID, created.ID, file, "")
	if err == nil {
		t.Fatal("Expected an error when the attach fails")
	}
	if len(f.store.Objects) != 0 {
		t.Error("Expected the uploaded object to be removed after a failed attach")
	}
}

func TestDeleteImage_NotOwned(t *testing.T) {
	f := newListingFixture()
	owner := uuid.New()

	created, err := f.svc.Create(context.Background(), owner, validLandListing())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	imageID := uuid.New()
	f.images.Images[imageID] = &domain.ListingImage{ID: imageID, ListingID: created.ID}

	err = f.svc.DeleteImage(context.Background(), uuid.New(), created.ID, imageID)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for a non-owner, got %v", err)
	}
	if len(f.images.Images) != 1 {
		t.Error("Expected image to survive a non-owner delete")
	}
}
