package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/teamprojectsorg/My-Home-Web-BE/internal/domain"
)

const listingColumns = `id, user_id, location, area, category, listing_type, square_feet, bedrooms, details, highlights, price, sold, is_available, thumbnail_url, created_at, updated_at`

// ListingRepository implements domain.ListingRepository using PostgreSQL
type ListingRepository struct {
	pool *pgxpool.Pool
}

// NewListingRepository creates a new ListingRepository
func NewListingRepository(pool *pgxpool.Pool) *ListingRepository {
	return &ListingRepository{pool: pool}
}

// Create inserts a new listing
func (r *ListingRepository) Create(ctx context.Context, listing *domain.Listing) (*domain.Listing, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO property_listings (id, user_id, location, area, category, listing_type, square_feet, bedrooms, details, highlights, price, sold, is_available)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING `+listingColumns,
		listing.ID, listing.UserID, listing.Location, listing.Area,
		string(listing.Category), string(listing.ListingType),
		listing.SquareFeet, listing.Bedrooms, listing.Details, listing.Highlights,
		listing.Price, listing.Sold, listing.IsAvailable,
	)

	created, err := scanListing(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
			return nil, domain.ErrProfileNotRegistered
		}
		return nil, fmt.Errorf("create listing: %w", err)
	}
	return created, nil
}

// GetByID retrieves a listing with its owner projection and images
func (r *ListingRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ListingDetail, error) {
	details, err := r.queryDetails(ctx, `WHERE l.id = $1 AND l.deleted_at IS NULL`, id)
	if err != nil {
		return nil, err
	}
	if len(details) == 0 {
		return nil, domain.ErrNotFound
	}
	return details[0], nil
}

// GetAll retrieves all live listings, newest first
func (r *ListingRepository) GetAll(ctx context.Context) ([]*domain.ListingDetail, error) {
	return r.queryDetails(ctx, `WHERE l.deleted_at IS NULL`)
}

// GetByUserID retrieves the caller's listings, newest first
func (r *ListingRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.ListingDetail, error) {
	return r.queryDetails(ctx, `WHERE l.user_id = $1 AND l.deleted_at IS NULL`, userID)
}

// GetOwned retrieves a listing scoped to its owner. Absent and not-owned both
// return domain.ErrNotFound.
func (r *ListingRepository) GetOwned(ctx context.Context, userID, id uuid.UUID) (*domain.Listing, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+listingColumns+`
		FROM property_listings
		WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL`,
		id, userID,
	)

	listing, err := scanListing(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get owned listing: %w", err)
	}
	return listing, nil
}

// Update applies the sparse field set, scoped to the owner, and returns the
// affected-row count and the post-update snapshot.
func (r *ListingRepository) Update(ctx context.Context, userID, id uuid.UUID, update domain.ListingUpdate) (int64, *domain.Listing, error) {
	var set []string
	var args []any
	add := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.Location != nil {
		add("location", *update.Location)
	}
	if update.Area != nil {
		add("area", *update.Area)
	}
	if update.ListingType != nil {
		add("listing_type", string(*update.ListingType))
	}
	if update.SquareFeet != nil {
		add("square_feet", *update.SquareFeet)
	}
	if update.Bedrooms != nil {
		add("bedrooms", *update.Bedrooms)
	}
	if update.Details != nil {
		add("details", *update.Details)
	}
	if update.Highlights != nil {
		add("highlights", *update.Highlights)
	}
	if update.Price != nil {
		add("price", *update.Price)
	}
	if update.Sold != nil {
		add("sold", *update.Sold)
	}
	if update.IsAvailable != nil {
		add("is_available", *update.IsAvailable)
	}
	if len(set) == 0 {
		return 0, nil, domain.ErrNoFieldsProvided
	}

	args = append(args, id, userID)
	query := fmt.Sprintf(`
		UPDATE property_listings
		SET %s, updated_at = now()
		WHERE id = $%d AND user_id = $%d AND deleted_at IS NULL
		RETURNING %s`,
		strings.Join(set, ", "), len(args)-1, len(args), listingColumns,
	)

	listing, err := scanListing(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil, domain.ErrNotFound
		}
		return 0, nil, fmt.Errorf("update listing: %w", err)
	}
	return 1, listing, nil
}

// SetThumbnailURL persists the thumbnail object URL, scoped to the owner
func (r *ListingRepository) SetThumbnailURL(ctx context.Context, userID, id uuid.UUID, url string) (int64, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE property_listings
		SET thumbnail_url = $3, updated_at = now()
		WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL`,
		id, userID, url,
	)
	if err != nil {
		return 0, fmt.Errorf("set thumbnail url: %w", err)
	}
	return tag.RowsAffected(), nil
}

// queryDetails runs the listing/owner join for the given WHERE clause and
// batch-loads the images of the returned listings.
func (r *ListingRepository) queryDetails(ctx context.Context, where string, args ...any) ([]*domain.ListingDetail, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT l.`+strings.ReplaceAll(listingColumns, ", ", ", l.")+`,
		       p.first_name, p.surname, p.avatar_url, p.created_at
		FROM property_listings l
		JOIN user_profiles p ON p.user_id = l.user_id
		`+where+`
		ORDER BY l.created_at DESC`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("query listings: %w", err)
	}
	defer rows.Close()

	var details []*domain.ListingDetail
	for rows.Next() {
		var d domain.ListingDetail
		var category, listingType string
		err := rows.Scan(
			&d.ID, &d.UserID, &d.Location, &d.Area, &category, &listingType,
			&d.SquareFeet, &d.Bedrooms, &d.Details, &d.Highlights, &d.Price,
			&d.Sold, &d.IsAvailable, &d.ThumbnailURL, &d.CreatedAt, &d.UpdatedAt,
			&d.CreatedBy.FirstName, &d.CreatedBy.Surname, &d.CreatedBy.AvatarURL,
			&d.CreatedBy.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan listing: %w", err)
		}
		d.Category = domain.ListingCategory(category)
		d.ListingType = domain.ListingType(listingType)
		d.CreatedBy.UserID = d.UserID
		d.Images = []*domain.ListingImage{}
		details = append(details, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate listings: %w", err)
	}

	if err := r.attachImages(ctx, details); err != nil {
		return nil, err
	}
	return details, nil
}

// attachImages loads the live images for the given listings in one query
func (r *ListingRepository) attachImages(ctx context.Context, details []*domain.ListingDetail) error {
	if len(details) == 0 {
		return nil
	}

	byID := make(map[uuid.UUID]*domain.ListingDetail, len(details))
	ids := make([]uuid.UUID, 0, len(details))
	for _, d := range details {
		byID[d.ID] = d
		ids = append(ids, d.ID)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, listing_id, description, url, created_at
		FROM listing_images
		WHERE listing_id = ANY($1) AND deleted_at IS NULL
		ORDER BY created_at`,
		ids,
	)
	if err != nil {
		return fmt.Errorf("query listing images: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var img domain.ListingImage
		if err := rows.Scan(&img.ID, &img.UserID, &img.ListingID, &img.Description, &img.URL, &img.CreatedAt); err != nil {
			return fmt.Errorf("scan listing image: %w", err)
		}
		if d, ok := byID[img.ListingID]; ok {
			d.Images = append(d.Images, &img)
		}
	}
	return rows.Err()
}

func scanListing(row pgx.Row) (*domain.Listing, error) {
	var l domain.Listing
	var category, listingType string
	err := row.Scan(
		&l.ID, &l.UserID, &l.Location, &l.Area, &category, &listingType,
		&l.SquareFeet, &l.Bedrooms, &l.Details, &l.Highlights, &l.Price,
		&l.Sold, &l.IsAvailable, &l.ThumbnailURL, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	l.Category = domain.ListingCategory(category)
	l.ListingType = domain.ListingType(listingType)
	return &l, nil
}
