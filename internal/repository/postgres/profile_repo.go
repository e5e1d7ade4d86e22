package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/teamprojectsorg/My-Home-Web-BE/internal/domain"
)

const profileColumns = `user_id, first_name, surname, residence, area, legal_id, legal_id_type, phone_number, avatar_url, created_at, updated_at`

// ProfileRepository implements domain.ProfileRepository using PostgreSQL
type ProfileRepository struct {
	pool *pgxpool.Pool
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(pool *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{pool: pool}
}

// Create registers a profile for a user. A soft-deleted profile under the
// same user id is revived with the new data; a live one yields
// domain.ErrProfileExists.
func (r *ProfileRepository) Create(ctx context.Context, profile *domain.Profile) (*domain.Profile, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO user_profiles (user_id, first_name, surname, residence, area, legal_id, legal_id_type, phone_number)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id) DO UPDATE
		SET first_name = EXCLUDED.first_name,
		    surname = EXCLUDED.surname,
		    residence = EXCLUDED.residence,
		    area = EXCLUDED.area,
		    legal_id = EXCLUDED.legal_id,
		    legal_id_type = EXCLUDED.legal_id_type,
		    phone_number = EXCLUDED.phone_number,
		    avatar_url = NULL,
		    updated_at = now(),
		    deleted_at = NULL
		WHERE user_profiles.deleted_at IS NOT NULL
		RETURNING `+profileColumns,
		profile.UserID, profile.FirstName, profile.Surname, profile.Residence,
		profile.Area, profile.LegalID, string(profile.LegalIDType), profile.PhoneNumber,
	)

	created, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProfileExists
		}
		return nil, fmt.Errorf("create profile: %w", err)
	}
	return created, nil
}

// GetByUserID retrieves a profile by its user id
func (r *ProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+profileColumns+`
		FROM user_profiles
		WHERE user_id = $1 AND deleted_at IS NULL`,
		userID,
	)

	profile, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProfileNotRegistered
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return profile, nil
}

// Update applies the sparse field set and returns the affected-row count and
// the post-update snapshot.
func (r *ProfileRepository) Update(ctx context.Context, userID uuid.UUID, update domain.ProfileUpdate) (int64, *domain.Profile, error) {
	var set []string
	var args []any
	add := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.FirstName != nil {
		add("first_name", *update.FirstName)
	}
	if update.Surname != nil {
		add("surname", *update.Surname)
	}
	if update.Residence != nil {
		add("residence", *update.Residence)
	}
	if update.Area != nil {
		add("area", *update.Area)
	}
	if update.LegalID != nil {
		add("legal_id", *update.LegalID)
	}
	if update.LegalIDType != nil {
		add("legal_id_type", string(*update.LegalIDType))
	}
	if update.PhoneNumber != nil {
		add("phone_number", *update.PhoneNumber)
	}
	if len(set) == 0 {
		return 0, nil, domain.ErrNoFieldsProvided
	}

	args = append(args, userID)
	query := fmt.Sprintf(`
		UPDATE user_profiles
		SET %s, updated_at = now()
		WHERE user_id = $%d AND deleted_at IS NULL
		RETURNING %s`,
		strings.Join(set, ", "), len(args), profileColumns,
	)

	profile, err := scanProfile(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil, domain.ErrProfileNotRegistered
		}
		return 0, nil, fmt.Errorf("update profile: %w", err)
	}
	return 1, profile, nil
}

// SetAvatarURL persists the avatar object URL on the profile
func (r *ProfileRepository) SetAvatarURL(ctx context.Context, userID uuid.UUID, url string) (int64, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE user_profiles
		SET avatar_url = $2, updated_at = now()
		WHERE user_id = $1 AND deleted_at IS NULL`,
		userID, url,
	)
	if err != nil {
		return 0, fmt.Errorf("set avatar url: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanProfile(row pgx.Row) (*domain.Profile, error) {
	var p domain.Profile
	var legalIDType string
	err := row.Scan(
		&p.UserID, &p.FirstName, &p.Surname, &p.Residence, &p.Area,
		&p.LegalID, &legalIDType, &p.PhoneNumber, &p.AvatarURL,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.LegalIDType = domain.LegalIDType(legalIDType)
	return &p, nil
}
