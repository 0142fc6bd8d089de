package mysql

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"streetmarket/internal/domain"
)

type MySQLArtworkRepository struct {
	db *sql.DB
}

func NewMySQLArtworkRepository(db *sql.DB) *MySQLArtworkRepository {
	return &MySQLArtworkRepository{db: db}
}

const artworkColumns = `id, artist_id, title, description, medium, price, views, likes,
        is_published, tags, dim_width, dim_height, dim_unit, time_spent, sold_date,
        created_at, updated_at`

func (r *MySQLArtworkRepository) Create(ctx context.Context, artwork *domain.Artwork) error {
	query := `
        INSERT INTO artworks (` + artworkColumns + `)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	var width, height sql.NullFloat64
	var unit sql.NullString
	if artwork.Dimensions != nil {
		width = sql.NullFloat64{Float64: artwork.Dimensions.Width, Valid: true}
		height = sql.NullFloat64{Float64: artwork.Dimensions.Height, Valid: true}
		unit = sql.NullString{String: string(artwork.Dimensions.Unit), Valid: true}
	}

	_, err := r.db.ExecContext(ctx, query,
		artwork.ID, artwork.ArtistID, artwork.Title, artwork.Description,
		string(artwork.Medium), artwork.Price, artwork.Views, artwork.Likes,
		artwork.IsPublished, strings.Join(artwork.Tags, ","),
		width, height, unit,
		artwork.TimeSpent, artwork.SoldDate,
		artwork.CreatedAt, artwork.UpdatedAt)
	return err
}

func (r *MySQLArtworkRepository) GetByID(ctx context.Context, artworkID string) (*domain.Artwork, error) {
	query := `SELECT ` + artworkColumns + ` FROM artworks WHERE id = ?`

	artwork, err := scanArtwork(r.db.QueryRowContext(ctx, query, artworkID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return artwork, err
}

func (r *MySQLArtworkRepository) List(ctx context.Context) ([]*domain.Artwork, error) {
	query := `SELECT ` + artworkColumns + ` FROM artworks ORDER BY created_at DESC`
	return r.queryArtworks(ctx, query)
}

func (r *MySQLArtworkRepository) ListPublished(ctx context.Context) ([]*domain.Artwork, error) {
	query := `SELECT ` + artworkColumns + ` FROM artworks WHERE is_published = TRUE ORDER BY created_at DESC`
	return r.queryArtworks(ctx, query)
}

func (r *MySQLArtworkRepository) ListByArtist(ctx context.Context, artistID string) ([]*domain.Artwork, error) {
	query := `SELECT ` + artworkColumns + ` FROM artworks WHERE artist_id = ? ORDER BY created_at DESC`
	return r.queryArtworks(ctx, query, artistID)
}

func (r *MySQLArtworkRepository) Search(ctx context.Context, term string) ([]*domain.Artwork, error) {
	query := `
        SELECT ` + artworkColumns + ` FROM artworks
        WHERE is_published = TRUE
          AND (title LIKE ? OR description LIKE ? OR tags LIKE ?)
        ORDER BY created_at DESC
    `
	pattern := "%" + term + "%"
	return r.queryArtworks(ctx, query, pattern, pattern, pattern)
}

func (r *MySQLArtworkRepository) Update(ctx context.Context, artwork *domain.Artwork) error {
	query := `
        UPDATE artworks
        SET title = ?, description = ?, medium = ?, price = ?, is_published = ?,
            tags = ?, dim_width = ?, dim_height = ?, dim_unit = ?, time_spent = ?,
            sold_date = ?, updated_at = ?
        WHERE id = ?
    `
	var width, height sql.NullFloat64
	var unit sql.NullString
	if artwork.Dimensions != nil {
		width = sql.NullFloat64{Float64: artwork.Dimensions.Width, Valid: true}
		height = sql.NullFloat64{Float64: artwork.Dimensions.Height, Valid: true}
		unit = sql.NullString{String: string(artwork.Dimensions.Unit), Valid: true}
	}

	result, err := r.db.ExecContext(ctx, query,
		artwork.Title, artwork.Description, string(artwork.Medium),
		artwork.Price, artwork.IsPublished, strings.Join(artwork.Tags, ","),
		width, height, unit, artwork.TimeSpent, artwork.SoldDate,
		time.Now(), artwork.ID)
	if err != nil {
		return err
	}
	return requireRowAffected(result)
}

func (r *MySQLArtworkRepository) Delete(ctx context.Context, artworkID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM artworks WHERE id = ?`, artworkID)
	if err != nil {
		return err
	}
	return requireRowAffected(result)
}

func (r *MySQLArtworkRepository) IncrementViews(ctx context.Context, artworkID string) error {
	query := `UPDATE artworks SET views = views + 1 WHERE id = ?`
	result, err := r.db.ExecContext(ctx, query, artworkID)
	if err != nil {
		return err
	}
	return requireRowAffected(result)
}

func (r *MySQLArtworkRepository) AddLike(ctx context.Context, artworkID string, delta int) error {
	query := `UPDATE artworks SET likes = likes + ? WHERE id = ?`
	result, err := r.db.ExecContext(ctx, query, delta, artworkID)
	if err != nil {
		return err
	}
	return requireRowAffected(result)
}

func (r *MySQLArtworkRepository) queryArtworks(ctx context.Context, query string, args ...interface{}) ([]*domain.Artwork, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var artworks []*domain.Artwork
	for rows.Next() {
		artwork, err := scanArtwork(rows)
		if err != nil {
			return nil, err
		}
		artworks = append(artworks, artwork)
	}

	return artworks, rows.Err()
}

func scanArtwork(row rowScanner) (*domain.Artwork, error) {
	var artwork domain.Artwork
	var medium, tags string
	var width, height sql.NullFloat64
	var unit sql.NullString
	var soldDate sql.NullTime

	err := row.Scan(
		&artwork.ID, &artwork.ArtistID, &artwork.Title, &artwork.Description,
		&medium, &artwork.Price, &artwork.Views, &artwork.Likes,
		&artwork.IsPublished, &tags, &width, &height, &unit,
		&artwork.TimeSpent, &soldDate,
		&artwork.CreatedAt, &artwork.UpdatedAt)
	if err != nil {
		return nil, err
	}

	artwork.Medium = domain.Medium(medium)
	artwork.Tags = splitList(tags)
	if width.Valid && height.Valid && unit.Valid {
		artwork.Dimensions = &domain.Dimensions{
			Width:  width.Float64,
			Height: height.Float64,
			Unit:   domain.DimensionUnit(unit.String),
		}
	}
	if soldDate.Valid {
		artwork.SoldDate = &soldDate.Time
	}

	return &artwork, nil
}
