package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/teamprojectsorg/My-Home-Web-BE/internal/middleware"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, rateLimiter *middleware.RateLimiter, profileHandler *ProfileHandler, listingHandler *ListingHandler, reviewHandler *ReviewHandler) {
	api := e.Group("/api")

	// Public listing routes
	api.GET("/listing", listingHandler.GetListings)
	api.GET("/listing/:listingID", listingHandler.GetListing)
	api.GET("/listing/:listingID/reviews", reviewHandler.GetReviews)
	api.GET("/profile/:userID", profileHandler.GetPublicProfile)

	// Profile routes (protected)
	profile := api.Group("/profile")
	profile.Use(authMiddleware.Authenticate(), middleware.RateLimitMiddleware(rateLimiter))
	profile.GET("", profileHandler.GetProfile)
	profile.POST("", profileHandler.RegisterProfile)
	profile.PUT("", profileHandler.UpdateProfile)
	profile.DELETE("", profileHandler.DeleteProfile)
	profile.POST("/avatar", profileHandler.UploadAvatar)

	// Listing routes (protected)
	listing := api.Group("/listing")
	listing.Use(authMiddleware.Authenticate(), middleware.RateLimitMiddleware(rateLimiter))
	listing.GET("/mylisting", listingHandler.GetMyListings)
	listing.POST("", listingHandler.CreateListing)
	listing.PUT("/:listingID", listingHandler.UpdateListing)
	listing.DELETE("/:listingID", listingHandler.DeleteListing)
	listing.POST("/:listingID/thumbnail", listingHandler.UploadThumbnail)
	listing.POST("/:listingID/image", listingHandler.UploadImages)
	listing.DELETE("/:listingID/image/:imageID", listingHandler.DeleteImage)
	listing.POST("/:listingID/review", reviewHandler.CreateReview)

	// Review routes (protected)
	review := api.Group("/review")
	review.Use(authMiddleware.Authenticate(), middleware.RateLimitMiddleware(rateLimiter))
	review.DELETE("/:reviewID", reviewHandler.DeleteReview)
}
