package mysql

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"streetmarket/internal/domain"
)

type MySQLPerformanceRepository struct {
	db *sql.DB
}

func NewMySQLPerformanceRepository(db *sql.DB) *MySQLPerformanceRepository {
	return &MySQLPerformanceRepository{db: db}
}

const performanceColumns = `id, artist_id, location, start_time, end_time, cash_collected, notes, created_at`

func (r *MySQLPerformanceRepository) Create(ctx context.Context, performance *domain.Performance) error {
	query := `
        INSERT INTO performances (` + performanceColumns + `)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)
    `
	_, err := r.db.ExecContext(ctx, query,
		performance.ID, performance.ArtistID, performance.Location,
		performance.StartTime, performance.EndTime, performance.CashCollected,
		performance.Notes, performance.CreatedAt)
	return err
}

func (r *MySQLPerformanceRepository) GetByID(ctx context.Context, performanceID string) (*domain.Performance, error) {
	query := `SELECT ` + performanceColumns + ` FROM performances WHERE id = ?`

	performance, err := scanPerformance(r.db.QueryRowContext(ctx, query, performanceID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return performance, err
}

func (r *MySQLPerformanceRepository) ListByArtist(ctx context.Context, artistID string) ([]*domain.Performance, error) {
	query := `SELECT ` + performanceColumns + ` FROM performances WHERE artist_id = ? ORDER BY start_time DESC`

	rows, err := r.db.QueryContext(ctx, query, artistID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var performances []*domain.Performance
	for rows.Next() {
		performance, err := scanPerformance(rows)
		if err != nil {
			return nil, err
		}
		performances = append(performances, performance)
	}

	return performances, rows.Err()
}

func (r *MySQLPerformanceRepository) End(ctx context.Context, performanceID string, endTime time.Time, cashCollected float64, notes string) error {
	query := `UPDATE performances SET end_time = ?, cash_collected = ?, notes = ? WHERE id = ?`
	result, err := r.db.ExecContext(ctx, query, endTime, cashCollected, notes, performanceID)
	if err != nil {
		return err
	}
	return requireRowAffected(result)
}

func (r *MySQLPerformanceRepository) Delete(ctx context.Context, performanceID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM performances WHERE id = ?`, performanceID)
	if err != nil {
		return err
	}
	return requireRowAffected(result)
}

func scanPerformance(row rowScanner) (*domain.Performance, error) {
	var performance domain.Performance
	var endTime sql.NullTime

	err := row.Scan(
		&performance.ID, &performance.ArtistID, &performance.Location,
		&performance.StartTime, &endTime, &performance.CashCollected,
		&performance.Notes, &performance.CreatedAt)
	if err != nil {
		return nil, err
	}

	if endTime.Valid {
		performance.EndTime = &endTime.Time
	}
	return &performance, nil
}
