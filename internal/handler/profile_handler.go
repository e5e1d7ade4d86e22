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

// ProfileHandler handles profile-related HTTP requests
type ProfileHandler struct {
	profileService *service.ProfileService
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(profileService *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// RegisterProfileRequest represents the profile registration request
type RegisterProfileRequest struct {
	FirstName   string `json:"firstName"`
	Surname     string `json:"surname"`
	Residence   string `json:"residence"`
	Area        string `json:"area"`
	LegalID     string `json:"legalId"`
	LegalIDType string `json:"legalIdType"`
	PhoneNumber string `json:"phoneNumber"`
}

// GetProfile handles GET /api/profile
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return Fail(c, http.StatusUnauthorized, "No Token Provided")
	}

	profile, err := h.profileService.GetProfile(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotRegistered) {
			return Fail(c, http.StatusBadRequest, "Profile Not Registered")
		}
		return Internal(c, err, "Failed to get profile")
	}

	return OK(c, profile)
}

// GetPublicProfile handles GET /api/profile/:userID, serving the masked
// projection of another user's profile.
func (h *ProfileHandler) GetPublicProfile(c echo.Context) error {
	targetID, err := uuid.Parse(c.Param("userID"))
	if err != nil {
		return Fail(c, http.StatusBadRequest, "Invalid User ID")
	}

	public, err := h.profileService.GetPublicProfile(c.Request().Context(), targetID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotRegistered) {
			return Fail(c, http.StatusBadRequest, "Profile Not Registered")
		}
		return Internal(c, err, "Failed to get public profile")
	}

	return OK(c, public)
}

// RegisterProfile handles POST /api/profile
func (h *ProfileHandler) RegisterProfile(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return Fail(c, http.StatusUnauthorized, "No Token Provided")
	}

	var req RegisterProfileRequest
	if err := c.Bind(&req); err != nil {
		return Fail(c, http.StatusBadRequest, "Invalid Request Body")
	}

	profile, err := h.profileService.Register(c.Request().Context(), &domain.Profile{
		UserID:      userID,
		FirstName:   req.FirstName,
		Surname:     req.Surname,
		Residence:   req.Residence,
		Area:        req.Area,
		LegalID:     req.LegalID,
		LegalIDType: domain.LegalIDType(req.LegalIDType),
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return Fail(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, domain.ErrProfileExists):
			return Fail(c, http.StatusBadRequest, "Profile Already Exists")
		}
		return Internal(c, err, "Failed to register profile")
	}

	log.Info().Str("user_id", userID.String()).Msg("Profile registered")

	return OK(c, profile)
}

// UpdateProfile handles PUT /api/profile
func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return Fail(c, http.StatusUnauthorized, "No Token Provided")
	}

	var update domain.ProfileUpdate
	if err := c.Bind(&update); err != nil {
		return Fail(c, http.StatusBadRequest, "Invalid Request Body")
	}

	profile, err := h.profileService.Update(c.Request().Context(), userID, update)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNoFieldsProvided):
			return Fail(c, http.StatusBadRequest, "No Profile Data Provided")
		case errors.Is(err, domain.ErrInvalidInput):
			return Fail(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, domain.ErrProfileNotRegistered):
			return Fail(c, http.StatusBadRequest, "Profile Not Registered")
		}
		return Internal(c, err, "Failed to update profile")
	}

	return OK(c, profile)
}

// DeleteProfile handles DELETE /api/profile
func (h *ProfileHandler) DeleteProfile(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return Fail(c, http.StatusUnauthorized, "No Token Provided")
	}

	if err := h.profileService.Delete(c.Request().Context(), userID); err != nil {
		if errors.Is(err, domain.ErrProfileNotRegistered) {
			return Fail(c, http.StatusBadRequest, "Profile Not Registered")
		}
		return Internal(c, err, "Failed to delete profile")
	}

	log.Info().Str("user_id", userID.String()).Msg("Profile deleted")

	return OK(c, nil)
}

// UploadAvatar handles POST /api/profile/avatar
func (h *ProfileHandler) UploadAvatar(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return Fail(c, http.StatusUnauthorized, "No Token Provided")
	}

	file, err := c.FormFile("image")
	if err != nil {
		return Fail(c, http.StatusBadRequest, "No File Received")
	}

	url, err := h.profileService.SetAvatar(c.Request().Context(), userID, file)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrFileTooLarge):
			return Fail(c, http.StatusBadRequest, "File Too Large. Maximum Size Is 20MB")
		case errors.Is(err, domain.ErrUnsupportedMedia):
			return Fail(c, http.StatusBadRequest, "Only JPEG and PNG is supported")
		case errors.Is(err, domain.ErrInvalidInput):
			return Fail(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, domain.ErrProfileNotRegistered):
			return Fail(c, http.StatusBadRequest, "Profile Not Registered")
		}
		return Internal(c, err, "Failed to upload avatar")
	}

	log.Info().Str("user_id", userID.String()).Msg("Avatar updated")

	return OK(c, map[string]string{"avatarUrl": url})
}
