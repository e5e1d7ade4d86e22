package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"github.com/teamprojectsorg/My-Home-Web-BE/internal/domain"
)

// cascadeStep is one child-deletion statement of a parent delete. Steps run
// in declared order inside the parent's transaction; the parameter is the
// parent's scoping id (listing id or user id).
type cascadeStep struct {
	child string
	query string
}

// listingCascade runs before a listing row is tombstoned.
var listingCascade = []cascadeStep{
	{
		child: "listing_images",
		query: `UPDATE listing_images SET deleted_at = now()
		        WHERE listing_id = $1 AND deleted_at IS NULL`,
	},
	{
		child: "listing_reviews",
		query: `UPDATE listing_reviews SET deleted_at = now()
		        WHERE listing_id = $1 AND deleted_at IS NULL`,
	},
}

// profileCascade runs before a profile row is tombstoned. Images and reviews
// of the user's listings go first, then reviews the user authored elsewhere,
// then the listings themselves.
var profileCascade = []cascadeStep{
	{
		child: "listing_images",
		query: `UPDATE listing_images SET deleted_at = now()
		        WHERE deleted_at IS NULL AND listing_id IN (
		            SELECT id FROM property_listings WHERE user_id = $1 AND deleted_at IS NULL
		        )`,
	},
	{
		child: "listing_reviews",
		query: `UPDATE listing_reviews SET deleted_at = now()
		        WHERE deleted_at IS NULL AND listing_id IN (
		            SELECT id FROM property_listings WHERE user_id = $1 AND deleted_at IS NULL
		        )`,
	},
	{
		child: "authored_reviews",
		query: `UPDATE listing_reviews SET deleted_at = now()
		        WHERE user_id = $1 AND deleted_at IS NULL`,
	},
	{
		child: "property_listings",
		query: `UPDATE property_listings SET deleted_at = now()
		        WHERE user_id = $1 AND deleted_at IS NULL`,
	},
}

// txBeginner opens the transaction a cascade runs in. pgxpool.Pool
// satisfies it.
type txBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// CascadeRepository implements domain.CascadeRepository using PostgreSQL.
// Each parent deletion runs its child steps and the parent tombstone in one
// transaction; any failure rolls back the whole operation.
type CascadeRepository struct {
	db txBeginner
}

// NewCascadeRepository creates a new CascadeRepository
func NewCascadeRepository(pool *pgxpool.Pool) *CascadeRepository {
	return &CascadeRepository{db: pool}
}

// DeleteListing deletes a listing and its dependents. The ownership check
// happens before any row is touched; absent and not-owned both return
// domain.ErrNotFound.
func (r *CascadeRepository) DeleteListing(ctx context.Context, userID, listingID uuid.UUID) error {
	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		var one int
		err := tx.QueryRow(ctx, `
			SELECT 1 FROM property_listings
			WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL
			FOR UPDATE`,
			listingID, userID,
		).Scan(&one)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrNotFound
			}
			return fmt.Errorf("lock listing: %w", err)
		}

		if err := runCascade(ctx, tx, listingCascade, "listing", listingID); err != nil {
			return err
		}

		tag, err := tx.Exec(ctx, `
			UPDATE property_listings SET deleted_at = now()
			WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL`,
			listingID, userID,
		)
		if err != nil {
			return fmt.Errorf("delete listing: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}

// DeleteProfile deletes the caller's profile and everything hanging off it.
func (r *CascadeRepository) DeleteProfile(ctx context.Context, userID uuid.UUID) error {
	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		var one int
		err := tx.QueryRow(ctx, `
			SELECT 1 FROM user_profiles
			WHERE user_id = $1 AND deleted_at IS NULL
			FOR UPDATE`,
			userID,
		).Scan(&one)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrProfileNotRegistered
			}
			return fmt.Errorf("lock profile: %w", err)
		}

		if err := runCascade(ctx, tx, profileCascade, "profile", userID); err != nil {
			return err
		}

		tag, err := tx.Exec(ctx, `
			UPDATE user_profiles SET deleted_at = now()
			WHERE user_id = $1 AND deleted_at IS NULL`,
			userID,
		)
		if err != nil {
			return fmt.Errorf("delete profile: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrProfileNotRegistered
		}
		return nil
	})
}

// runCascade executes the child steps in order, logging affected rows per step
func runCascade(ctx context.Context, tx pgx.Tx, steps []cascadeStep, parent string, id uuid.UUID) error {
	for _, step := range steps {
		tag, err := tx.Exec(ctx, step.query, id)
		if err != nil {
			return fmt.Errorf("cascade %s %s: %w", parent, step.child, err)
		}
		log.Debug().
			Str("parent", parent).
			Str("parent_id", id.String()).
			Str("child", step.child).
			Int64("rows", tag.RowsAffected()).
			Msg("cascade step")
	}
	return nil
}
