package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type LegalIDType string

const (
	LegalIDPassport   LegalIDType = "PASSPORT"
	LegalIDNationalID LegalIDType = "NATIONAL_ID"
	LegalIDLicense    LegalIDType = "LICENSE"
)

// Valid reports whether t is one of the declared legal-id types.
func (t LegalIDType) Valid() bool {
	switch t {
	case LegalIDPassport, LegalIDNationalID, LegalIDLicense:
		return true
	}
	return false
}

// Profile is the marketplace extension of an identity-provider user. The user
// id is minted by the identity provider; at most one profile exists per user.
type Profile struct {
	UserID      uuid.UUID   `json:"userId"`
	FirstName   string      `json:"firstName"`
	Surname     string      `json:"surname"`
	Residence   string      `json:"residence"`
	Area        string      `json:"area"`
	LegalID     string      `json:"legalId"`
	LegalIDType LegalIDType `json:"legalIdType"`
	PhoneNumber string      `json:"phoneNumber"`
	AvatarURL   *string     `json:"avatarUrl"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
	DeletedAt   *time.Time  `json:"-"`
}

// PublicProfile is the projection of a profile visible to non-owners. The
// field list is deliberately closed: residence, legal id and phone number
// never leave the owner's own reads.
type PublicProfile struct {
	UserID    uuid.UUID `json:"userId"`
	FirstName string    `json:"firstName"`
	Surname   string    `json:"surname"`
	AvatarURL *string   `json:"avatarUrl"`
	CreatedAt time.Time `json:"createdAt"`
}

// Public returns the non-owner projection of the profile.
func (p *Profile) Public() PublicProfile {
	return PublicProfile{
		UserID:    p.UserID,
		FirstName: p.FirstName,
		Surname:   p.Surname,
		AvatarURL: p.AvatarURL,
		CreatedAt: p.CreatedAt,
	}
}

// Validate checks the required fields for profile registration.
func (p *Profile) Validate() error {
	if p.FirstName == "" || p.Surname == "" || p.Residence == "" || p.Area == "" ||
		p.LegalID == "" || p.LegalIDType == "" || p.PhoneNumber == "" {
		return Invalid("Profile Data Incomplete")
	}
	if !p.LegalIDType.Valid() {
		return Invalid("LegalIdType can be PASSPORT, NATIONAL_ID or LICENSE")
	}
	return nil
}

// ProfileUpdate is a sparse field set for partial updates. Nil fields are
// left untouched.
type ProfileUpdate struct {
	FirstName   *string      `json:"firstName"`
	Surname     *string      `json:"surname"`
	Residence   *string      `json:"residence"`
	Area        *string      `json:"area"`
	LegalID     *string      `json:"legalId"`
	LegalIDType *LegalIDType `json:"legalIdType"`
	PhoneNumber *string      `json:"phoneNumber"`
}

// HasChanges reports whether any recognized field is present.
func (u *ProfileUpdate) HasChanges() bool {
	return u.FirstName != nil || u.Surname != nil || u.Residence != nil ||
		u.Area != nil || u.LegalID != nil || u.LegalIDType != nil || u.PhoneNumber != nil
}

// Validate checks the fields that are present.
func (u *ProfileUpdate) Validate() error {
	for _, s := range []*string{u.FirstName, u.Surname, u.Residence, u.Area, u.LegalID, u.PhoneNumber} {
		if s != nil && *s == "" {
			return Invalid("Profile fields cannot be empty")
		}
	}
	if u.LegalIDType != nil && !u.LegalIDType.Valid() {
		return Invalid("LegalIdType can be PASSPORT, NATIONAL_ID or LICENSE")
	}
	return nil
}

// ProfileRepository persists user profiles.
type ProfileRepository interface {
	Create(ctx context.Context, profile *Profile) (*Profile, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*Profile, error)
	Update(ctx context.Context, userID uuid.UUID, update ProfileUpdate) (int64, *Profile, error)
	SetAvatarURL(ctx context.Context, userID uuid.UUID, url string) (int64, error)
}
