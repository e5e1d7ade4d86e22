package handler

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/teamprojectsorg/My-Home-Web-BE/internal/domain"
	"github.com/teamprojectsorg/My-Home-Web-BE/internal/middleware"
	"github.com/teamprojectsorg/My-Home-Web-BE/internal/service"
)

// ListingHandler handles listing-related HTTP requests
type ListingHandler struct {
	listingService *service.ListingService
}

// NewListingHandler creates a new ListingHandler
func NewListingHandler(listingService *service.ListingService) *ListingHandler {
	return &ListingHandler{listingService: listingService}
}

// CreateListingRequest represents the listing creation request
type CreateListingRequest struct {
	Location    string   `json:"location"`
	Area        string   `json:"area"`
	Category    string   `json:"category"`
	ListingType string   `json:"listingType"`
	SquareFeet  *int64   `json:"squareFeet"`
	Bedrooms    *int64   `json:"bedrooms"`
	Details     string   `json:"details"`
	Highlights  []string `json:"highlights"`
	Price       *int64   `json:"price"`
	IsAvailable *bool    `json:"isAvailable"`
}

// GetListings handles GET /api/listing
func (h *ListingHandler) GetListings(c echo.Context) error {
	listings, err := h.listingService.GetAll(c.Request().Context())
	if err != nil {
		return Internal(c, err, "Failed to get listings")
	}
	if listings == nil {
		listings = []*domain.ListingDetail{}
	}
	return OK(c, listings)
}

// GetMyListings handles GET /api/listing/mylisting
func (h *ListingHandler) GetMyListings(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return Fail(c, http.StatusUnauthorized, "No Token Provided")
	}

	listings, err := h.listingService.GetMine(c.Request().Context(), userID)
	if err != nil {
		return Internal(c, err, "Failed to get listings")
	}
	if listings == nil {
		listings = []*domain.ListingDetail{}
	}
	return OK(c, listings)
}

// GetListing handles GET /api/listing/:listingID
func (h *ListingHandler) GetListing(c echo.Context) error {
	listingID, err := uuid.Parse(c.Param("listingID"))
	if err != nil {
		return Fail(c, http.StatusBadRequest, "Invalid Listing ID")
	}

	listing, err := h.listingService.GetByID(c.Request().Context(), listingID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return Fail(c, http.StatusBadRequest, "Listing Not Found")
		}
		return Internal(c, err, "Failed to get listing")
	}
	return OK(c, listing)
}

// CreateListing handles POST /api/listing
func (h *ListingHandler) CreateListing(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return Fail(c, http.StatusUnauthorized, "No Token Provided")
	}

	var req CreateListingRequest
	if err := c.Bind(&req); err != nil {
		return Fail(c, http.StatusBadRequest, "Invalid Request Body")
	}
	if req.Price == nil || req.IsAvailable == nil {
		return Fail(c, http.StatusBadRequest, "Listing Data Incomplete")
	}

	listing, err := h.listingService.Create(c.Request().Context(), userID, &domain.Listing{
		Location:    req.Location,
		Area:        req.Area,
		Category:    domain.ListingCategory(req.Category),
		ListingType: domain.ListingType(req.ListingType),
		SquareFeet:  req.SquareFeet,
		Bedrooms:    req.Bedrooms,
		Details:     req.Details,
		Highlights:  req.Highlights,
		Price:       *req.Price,
		IsAvailable: *req.IsAvailable,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return Fail(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, domain.ErrProfileNotRegistered):
			return Fail(c, http.StatusBadRequest, "Profile Not Registered")
		}
		return Internal(c, err, "Failed to create listing")
	}

	log.Info().Str("user_id", userID.String()).Str("listing_id", listing.ID.String()).Msg("Listing created")

	return OK(c, listing)
}

// UpdateListing handles PUT /api/listing/:listingID
func (h *ListingHandler) UpdateListing(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return Fail(c, http.StatusUnauthorized, "No Token Provided")
	}

	listingID, err := uuid.Parse(c.Param("listingID"))
	if err != nil {
		return Fail(c, http.StatusBadRequest, "Invalid Listing ID")
	}

	var update domain.ListingUpdate
	if err := c.Bind(&update); err != nil {
		return Fail(c, http.StatusBadRequest, "Invalid Request Body")
	}

	listing, err := h.listingService.Update(c.Request().Context(), userID, listingID, update)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNoFieldsProvided):
			return Fail(c, http.StatusBadRequest, "No Listing Data Provided")
		case errors.Is(err, domain.ErrInvalidInput):
			return Fail(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, domain.ErrNotFound):
			return Fail(c, http.StatusBadRequest, "Listing Not Found Or Not Owned By User")
		}
		return Internal(c, err, "Failed to update listing")
	}

	return OK(c, listing)
}

// DeleteListing handles DELETE /api/listing/:listingID
func (h *ListingHandler) DeleteListing(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return Fail(c, http.StatusUnauthorized, "No Token Provided")
	}

	listingID, err := uuid.Parse(c.Param("listingID"))
	if err != nil {
		return Fail(c, http.StatusBadRequest, "Invalid Listing ID")
	}

	if err := h.listingService.Delete(c.Request().Context(), userID, listingID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return Fail(c, http.StatusBadRequest, "Listing Not Found Or Not Owned By User")
		}
		return Internal(c, err, "Failed to delete listing")
	}

	log.Info().Str("user_id", userID.String()).Str("listing_id", listingID.String()).Msg("Listing deleted")

	return OK(c, nil)
}

// UploadThumbnail handles POST /api/listing/:listingID/thumbnail
func (h *ListingHandler) UploadThumbnail(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return Fail(c, http.StatusUnauthorized, "No Token Provided")
	}

	listingID, err := uuid.Parse(c.Param("listingID"))
	if err != nil {
		return Fail(c, http.StatusBadRequest, "Invalid Listing ID")
	}

	file, err := c.FormFile("image")
	if err != nil {
		return Fail(c, http.StatusBadRequest, "No File Received")
	}

	url, err := h.listingService.SetThumbnail(c.Request().Context(), userID, listingID, file)
	if err != nil {
		return h.mediaError(c, err)
	}

	log.Info().Str("listing_id", listingID.String()).Msg("Thumbnail updated")

	return OK(c, map[string]string{"thumbnail": url})
}

// UploadImages handles POST /api/listing/:listingID/image. Multiple files may
// be sent under the "image" field; a per-file description is read from the
// form value keyed by the file's original name. All files are validated
// before any is processed.
func (h *ListingHandler) UploadImages(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return Fail(c, http.StatusUnauthorized, "No Token Provided")
	}

	listingID, err := uuid.Parse(c.Param("listingID"))
	if err != nil {
		return Fail(c, http.StatusBadRequest, "Invalid Listing ID")
	}

	form, err := c.MultipartForm()
	if err != nil {
		return Fail(c, http.StatusBadRequest, "No File Received")
	}
	files := form.File["image"]
	if len(files) == 0 {
		return Fail(c, http.StatusBadRequest, "No File Received")
	}

	for _, file := range files {
		if err := h.listingService.ValidateUpload(file); err != nil {
			return h.mediaError(c, err)
		}
	}

	images := make([]*domain.ListingImage, 0, len(files))
	for _, file := range files {
		image, err := h.listingService.AddImage(c.Request().Context(), userID, listingID, file, c.FormValue(file.Filename))
		if err != nil {
			return h.mediaError(c, err)
		}
		images = append(images, image)
	}

	log.Info().Str("listing_id", listingID.String()).Int("count", len(images)).Msg("Listing images uploaded")

	return OK(c, images)
}

// DeleteImage handles DELETE /api/listing/:listingID/image/:imageID
func (h *ListingHandler) DeleteImage(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return Fail(c, http.StatusUnauthorized, "No Token Provided")
	}

	listingID, err := uuid.Parse(c.Param("listingID"))
	if err != nil {
		return Fail(c, http.StatusBadRequest, "Invalid Listing ID")
	}
	imageID, err := uuid.Parse(c.Param("imageID"))
	if err != nil {
		return Fail(c, http.StatusBadRequest, "Invalid Image ID")
	}

	if err := h.listingService.DeleteImage(c.Request().Context(), userID, listingID, imageID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return Fail(c, http.StatusBadRequest, "Listing Or Image Not Found")
		}
		return Internal(c, err, "Failed to delete image")
	}

	return OK(c, nil)
}

// mediaError maps media-pipeline failures onto the envelope
func (h *ListingHandler) mediaError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrFileTooLarge):
		return Fail(c, http.StatusBadRequest, "File Too Large. Maximum Size Is 20MB")
	case errors.Is(err, domain.ErrUnsupportedMedia):
		return Fail(c, http.StatusBadRequest, "Only JPEG and PNG is supported")
	case errors.Is(err, domain.ErrInvalidInput):
		return Fail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		return Fail(c, http.StatusBadRequest, "Listing Not Found Or Not Owned By User")
	}
	return Internal(c, err, "Failed to process upload")
}
