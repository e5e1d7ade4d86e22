package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/teamprojectsorg/My-Home-Web-BE/internal/domain"
)

// ReviewRepository implements domain.ReviewRepository using PostgreSQL
type ReviewRepository struct {
	pool *pgxpool.Pool
}

// NewReviewRepository creates a new ReviewRepository
func NewReviewRepository(pool *pgxpool.Pool) *ReviewRepository {
	return &ReviewRepository{pool: pool}
}

// Create inserts a review. The insert is guarded by a live-listing check in
// the same statement; a deleted or unknown listing yields domain.ErrNotFound.
func (r *ReviewRepository) Create(ctx context.Context, review *domain.Review) (*domain.Review, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO listing_reviews (id, user_id, listing_id, rating, title, body)
		SELECT $1, $2, l.id, $4, $5, $6
		FROM property_listings l
		WHERE l.id = $3 AND l.deleted_at IS NULL
		RETURNING created_at`,
		review.ID, review.UserID, review.ListingID, review.Rating, review.Title, review.Body,
	)
	if err := row.Scan(&review.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("create review: %w", err)
	}
	return review, nil
}

// GetByListingID retrieves the live reviews of a listing, newest first
func (r *ReviewRepository) GetByListingID(ctx context.Context, listingID uuid.UUID) ([]*domain.Review, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, listing_id, rating, title, body, created_at
		FROM listing_reviews
		WHERE listing_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC`,
		listingID,
	)
	if err != nil {
		return nil, fmt.Errorf("query reviews: %w", err)
	}
	defer rows.Close()

	var reviews []*domain.Review
	for rows.Next() {
		var rv domain.Review
		if err := rows.Scan(&rv.ID, &rv.UserID, &rv.ListingID, &rv.Rating, &rv.Title, &rv.Body, &rv.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		reviews = append(reviews, &rv)
	}
	return reviews, rows.Err()
}

// SoftDelete tombstones a review, scoped to its author
func (r *ReviewRepository) SoftDelete(ctx context.Context, userID, reviewID uuid.UUID) (int64, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE listing_reviews
		SET deleted_at = now()
		WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL`,
		reviewID, userID,
	)
	if err != nil {
		return 0, fmt.Errorf("delete review: %w", err)
	}
	return tag.RowsAffected(), nil
}
