package mysql

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"streetmarket/internal/domain"
)

type MySQLCommissionRepository struct {
	db *sql.DB
}

func NewMySQLCommissionRepository(db *sql.DB) *MySQLCommissionRepository {
	return &MySQLCommissionRepository{db: db}
}

const commissionColumns = `id, artist_id, client_name, client_email, work_type, budget,
        location, description, status, notes, created_at, updated_at`

func (r *MySQLCommissionRepository) Create(ctx context.Context, commission *domain.Commission) error {
	query := `
        INSERT INTO commissions (` + commissionColumns + `)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	_, err := r.db.ExecContext(ctx, query,
		commission.ID, commission.ArtistID, commission.ClientName, commission.ClientEmail,
		commission.WorkType, commission.Budget, commission.Location, commission.Description,
		string(commission.Status), commission.Notes, commission.CreatedAt, commission.UpdatedAt)
	return err
}

func (r *MySQLCommissionRepository) GetByID(ctx context.Context, commissionID string) (*domain.Commission, error) {
	query := `SELECT ` + commissionColumns + ` FROM commissions WHERE id = ?`

	commission, err := scanCommission(r.db.QueryRowContext(ctx, query, commissionID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return commission, err
}

func (r *MySQLCommissionRepository) ListByArtist(ctx context.Context, artistID string) ([]*domain.Commission, error) {
	query := `SELECT ` + commissionColumns + ` FROM commissions WHERE artist_id = ? ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, artistID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var commissions []*domain.Commission
	for rows.Next() {
		commission, err := scanCommission(rows)
		if err != nil {
			return nil, err
		}
		commissions = append(commissions, commission)
	}

	return commissions, rows.Err()
}

func (r *MySQLCommissionRepository) UpdateStatus(ctx context.Context, commissionID string, status domain.CommissionStatus, notes string, updatedAt time.Time) error {
	query := `UPDATE commissions SET status = ?, notes = ?, updated_at = ? WHERE id = ?`
	result, err := r.db.ExecContext(ctx, query, string(status), notes, updatedAt, commissionID)
	if err != nil {
		return err
	}
	return requireRowAffected(result)
}

func (r *MySQLCommissionRepository) Delete(ctx context.Context, commissionID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM commissions WHERE id = ?`, commissionID)
	if err != nil {
		return err
	}
	return requireRowAffected(result)
}

func scanCommission(row rowScanner) (*domain.Commission, error) {
	var commission domain.Commission
	var status string

	err := row.Scan(
		&commission.ID, &commission.ArtistID, &commission.ClientName, &commission.ClientEmail,
		&commission.WorkType, &commission.Budget, &commission.Location, &commission.Description,
		&status, &commission.Notes, &commission.CreatedAt, &commission.UpdatedAt)
	if err != nil {
		return nil, err
	}

	commission.Status = domain.CommissionStatus(status)
	return &commission, nil
}
