package service

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/google/uuid"

	"github.com/teamprojectsorg/My-Home-Web-BE/internal/domain"
)

// ProfileService handles profile registration, reads, updates and deletion
type ProfileService struct {
	profileRepo domain.ProfileRepository
	cascadeRepo domain.CascadeRepository
	media       *MediaService
}

// NewProfileService creates a new ProfileService
func NewProfileService(profileRepo domain.ProfileRepository, cascadeRepo domain.CascadeRepository, media *MediaService) *ProfileService {
	return &ProfileService{profileRepo: profileRepo, cascadeRepo: cascadeRepo, media: media}
}

// GetProfile retrieves the caller's own profile
func (s *ProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	return s.profileRepo.GetByUserID(ctx, userID)
}

// GetPublicProfile retrieves another user's profile, masked to the public
// projection.
func (s *ProfileService) GetPublicProfile(ctx context.Context, userID uuid.UUID) (*domain.PublicProfile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	public := profile.Public()
	return &public, nil
}

// Register creates the caller's profile. A user can hold at most one.
func (s *ProfileService) Register(ctx context.Context, profile *domain.Profile) (*domain.Profile, error) {
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	return s.profileRepo.Create(ctx, profile)
}

// Update applies a sparse field set to the caller's profile
func (s *ProfileService) Update(ctx context.Context, userID uuid.UUID, update domain.ProfileUpdate) (*domain.Profile, error) {
	if !update.HasChanges() {
		return nil, domain.ErrNoFieldsProvided
	}
	if err := update.Validate(); err != nil {
		return nil, err
	}
	_, profile, err := s.profileRepo.Update(ctx, userID, update)
	return profile, err
}

// Delete removes the caller's profile and cascades to listings, images and
// reviews in a single transaction.
func (s *ProfileService) Delete(ctx context.Context, userID uuid.UUID) error {
	return s.cascadeRepo.DeleteProfile(ctx, userID)
}

// SetAvatar runs the upload through the media pipeline and attaches the
// resulting URL to the caller's profile. Repeated uploads overwrite the same
// object key.
func (s *ProfileService) SetAvatar(ctx context.Context, userID uuid.UUID, file *multipart.FileHeader) (string, error) {
	// Fail before transcoding when there is no profile to attach to.
	if _, err := s.profileRepo.GetByUserID(ctx, userID); err != nil {
		return "", err
	}

	key := avatarKey(userID)
	url, err := s.media.ProcessAndStore(ctx, file, key)
	if err != nil {
		return "", err
	}

	affected, err := s.profileRepo.SetAvatarURL(ctx, userID, url)
	if err != nil {
		return "", err
	}
	if affected == 0 {
		return "", domain.ErrProfileNotRegistered
	}
	return url, nil
}

// avatarKey is deterministic per user so repeated avatar uploads overwrite
func avatarKey(userID uuid.UUID) string {
	return fmt.Sprintf("avatars/%s.jpg", userID)
}
