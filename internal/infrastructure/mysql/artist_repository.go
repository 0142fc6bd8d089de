package mysql

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"streetmarket/internal/domain"
)

type MySQLArtistRepository struct {
	db *sql.DB
}

func NewMySQLArtistRepository(db *sql.DB) *MySQLArtistRepository {
	return &MySQLArtistRepository{db: db}
}

const artistColumns = `id, name, bio, city, country, lat, lng, popularity, likes, specialties, hourly_rate, created_at, updated_at`

func (r *MySQLArtistRepository) Create(ctx context.Context, artist *domain.Artist) error {
	query := `
        INSERT INTO artists (` + artistColumns + `)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	_, err := r.db.ExecContext(ctx, query,
		artist.ID, artist.Name, artist.Bio,
		artist.Location.City, artist.Location.Country,
		artist.Location.Lat, artist.Location.Lng,
		artist.Popularity, artist.Likes,
		strings.Join(artist.Specialties, ","),
		artist.HourlyRate, artist.CreatedAt, artist.UpdatedAt)
	return err
}

func (r *MySQLArtistRepository) GetByID(ctx context.Context, artistID string) (*domain.Artist, error) {
	query := `SELECT ` + artistColumns + ` FROM artists WHERE id = ?`

	artist, err := scanArtist(r.db.QueryRowContext(ctx, query, artistID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return artist, err
}

func (r *MySQLArtistRepository) List(ctx context.Context) ([]*domain.Artist, error) {
	query := `SELECT ` + artistColumns + ` FROM artists ORDER BY popularity DESC`
	return r.queryArtists(ctx, query)
}

func (r *MySQLArtistRepository) ListTrending(ctx context.Context, limit int) ([]*domain.Artist, error) {
	query := `SELECT ` + artistColumns + ` FROM artists ORDER BY popularity DESC LIMIT ?`
	return r.queryArtists(ctx, query, limit)
}

func (r *MySQLArtistRepository) Search(ctx context.Context, term string) ([]*domain.Artist, error) {
	query := `
        SELECT ` + artistColumns + ` FROM artists
        WHERE name LIKE ? OR city LIKE ? OR specialties LIKE ?
        ORDER BY popularity DESC
    `
	pattern := "%" + term + "%"
	return r.queryArtists(ctx, query, pattern, pattern, pattern)
}

func (r *MySQLArtistRepository) Update(ctx context.Context, artist *domain.Artist) error {
	query := `
        UPDATE artists
        SET name = ?, bio = ?, city = ?, country = ?, lat = ?, lng = ?,
            specialties = ?, hourly_rate = ?, updated_at = ?
        WHERE id = ?
    `
	result, err := r.db.ExecContext(ctx, query,
		artist.Name, artist.Bio,
		artist.Location.City, artist.Location.Country,
		artist.Location.Lat, artist.Location.Lng,
		strings.Join(artist.Specialties, ","),
		artist.HourlyRate, time.Now(), artist.ID)
	if err != nil {
		return err
	}
	return requireRowAffected(result)
}

func (r *MySQLArtistRepository) Delete(ctx context.Context, artistID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM artists WHERE id = ?`, artistID)
	if err != nil {
		return err
	}
	return requireRowAffected(result)
}

func (r *MySQLArtistRepository) AddLike(ctx context.Context, artistID string, likeDelta, popularityDelta int) error {
	query := `UPDATE artists SET likes = likes + ?, popularity = popularity + ?, updated_at = ? WHERE id = ?`
	result, err := r.db.ExecContext(ctx, query, likeDelta, popularityDelta, time.Now(), artistID)
	if err != nil {
		return err
	}
	return requireRowAffected(result)
}

func (r *MySQLArtistRepository) queryArtists(ctx context.Context, query string, args ...interface{}) ([]*domain.Artist, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var artists []*domain.Artist
	for rows.Next() {
		artist, err := scanArtist(rows)
		if err != nil {
			return nil, err
		}
		artists = append(artists, artist)
	}

	return artists, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanArtist(row rowScanner) (*domain.Artist, error) {
	var artist domain.Artist
	var specialties string

	err := row.Scan(
		&artist.ID, &artist.Name, &artist.Bio,
		&artist.Location.City, &artist.Location.Country,
		&artist.Location.Lat, &artist.Location.Lng,
		&artist.Popularity, &artist.Likes,
		&specialties, &artist.HourlyRate,
		&artist.CreatedAt, &artist.UpdatedAt)
	if err != nil {
		return nil, err
	}

	artist.Specialties = splitList(specialties)
	return &artist, nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

func requireRowAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
