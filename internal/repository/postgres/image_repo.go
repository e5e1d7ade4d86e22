package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/teamprojectsorg/My-Home-Web-BE/internal/domain"
)

// ListingImageRepository implements domain.ListingImageRepository using PostgreSQL
type ListingImageRepository struct {
	pool *pgxpool.Pool
}

// NewListingImageRepository creates a new ListingImageRepository
func NewListingImageRepository(pool *pgxpool.Pool) *ListingImageRepository {
	return &ListingImageRepository{pool: pool}
}

// Create inserts an image row. The row carries its final URL and listing id;
// attachment is atomic with creation.
func (r *ListingImageRepository) Create(ctx context.Context, image *domain.ListingImage) (*domain.ListingImage, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO listing_images (id, user_id, listing_id, description, url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`,
		image.ID, image.UserID, image.ListingID, image.Description, image.URL,
	)
	if err := row.Scan(&image.CreatedAt); err != nil {
		return nil, fmt.Errorf("create listing image: %w", err)
	}
	return image, nil
}

// GetByListingID retrieves the live images of a listing
func (r *ListingImageRepository) GetByListingID(ctx context.Context, listingID uuid.UUID) ([]*domain.ListingImage, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, listing_id, description, url, created_at
		FROM listing_images
		WHERE listing_id = $1 AND deleted_at IS NULL
		ORDER BY created_at`,
		listingID,
	)
	if err != nil {
		return nil, fmt.Errorf("query listing images: %w", err)
	}
	defer rows.Close()

	var images []*domain.ListingImage
	for rows.Next() {
		var img domain.ListingImage
		if err := rows.Scan(&img.ID, &img.UserID, &img.ListingID, &img.Description, &img.URL, &img.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan listing image: %w", err)
		}
		images = append(images, &img)
	}
	return images, rows.Err()
}

// SoftDelete tombstones an image. The delete is scoped through the parent
// listing's owner, so a non-owner observes the same zero-row result as a
// missing image.
func (r *ListingImageRepository) SoftDelete(ctx context.Context, userID, listingID, imageID uuid.UUID) (int64, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE listing_images i
		SET deleted_at = now()
		FROM property_listings l
		WHERE i.id = $1 AND i.listing_id = $2 AND i.deleted_at IS NULL
		  AND l.id = i.listing_id AND l.user_id = $3 AND l.deleted_at IS NULL`,
		imageID, listingID, userID,
	)
	if err != nil {
		return 0, fmt.Errorf("delete listing image: %w", err)
	}
	return tag.RowsAffected(), nil
}
