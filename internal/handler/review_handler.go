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

// ReviewHandler handles review-related HTTP requests
type ReviewHandler struct {
	reviewService *service.ReviewService
}

// NewReviewHandler creates a new ReviewHandler
func NewReviewHandler(reviewService *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// CreateReviewRequest represents the review creation request
type CreateReviewRequest struct {
	Rating *int32 `json:"rating"`
	Title  string `json:"reviewTitle"`
	Body   string `json:"reviewDescription"`
}

// CreateReview handles POST /api/listing/:listingID/review
func (h *ReviewHandler) CreateReview(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return Fail(c, http.StatusUnauthorized, "No Token Provided")
	}

	listingID, err := uuid.Parse(c.Param("listingID"))
	if err != nil {
		return Fail(c, http.StatusBadRequest, "Invalid Listing ID")
	}

	var req CreateReviewRequest
	if err := c.Bind(&req); err != nil {
		return Fail(c, http.StatusBadRequest, "Invalid Request Body")
	}
	if req.Rating == nil {
		return Fail(c, http.StatusBadRequest, "Review Data Incomplete")
	}

	review, err := h.reviewService.Create(c.Request().Context(), userID, listingID, *req.Rating, req.Title, req.Body)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return Fail(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, domain.ErrNotFound):
			return Fail(c, http.StatusBadRequest, "Listing Not Found")
		}
		return Internal(c, err, "Failed to create review")
	}

	log.Info().Str("listing_id", listingID.String()).Str("review_id", review.ID.String()).Msg("Review created")

	return OK(c, review)
}

// GetReviews handles GET /api/listing/:listingID/reviews
func (h *ReviewHandler) GetReviews(c echo.Context) error {
	listingID, err := uuid.Parse(c.Param("listingID"))
	if err != nil {
		return Fail(c, http.StatusBadRequest, "Invalid Listing ID")
	}

	reviews, err := h.reviewService.GetForListing(c.Request().Context(), listingID)
	if err != nil {
		return Internal(c, err, "Failed to get reviews")
	}
	if reviews == nil {
		reviews = []*domain.Review{}
	}
	return OK(c, reviews)
}

// DeleteReview handles DELETE /api/review/:reviewID
func (h *ReviewHandler) DeleteReview(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return Fail(c, http.StatusUnauthorized, "No Token Provided")
	}

	reviewID, err := uuid.Parse(c.Param("reviewID"))
	if err != nil {
		return Fail(c, http.StatusBadRequest, "Invalid Review ID")
	}

	if err := h.reviewService.Delete(c.Request().Context(), userID, reviewID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return Fail(c, http.StatusBadRequest, "Review Not Found Or Not Owned By User")
		}
		return Internal(c, err, "Failed to delete review")
	}

	return OK(c, nil)
}
