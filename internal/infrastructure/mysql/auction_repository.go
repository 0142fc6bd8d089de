package mysql

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"streetmarket/internal/domain"
)

type MySQLAuctionRepository struct {
	db *sql.DB
}

func NewMySQLAuctionRepository(db *sql.DB) *MySQLAuctionRepository {
	return &MySQLAuctionRepository{db: db}
}

func (r *MySQLAuctionRepository) Create(ctx context.Context, auction *domain.Auction) error {
	query := `
        INSERT INTO auctions (id, artwork_id, starting_bid, current_bid, end_time, is_active, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)
    `
	_, err := r.db.ExecContext(ctx, query,
		auction.ID, auction.ArtworkID, auction.StartingBid, auction.CurrentBid,
		auction.EndTime, auction.IsActive, auction.CreatedAt, auction.UpdatedAt)
	return err
}

func (r *MySQLAuctionRepository) GetByID(ctx context.Context, auctionID string) (*domain.Auction, error) {
	query := `
        SELECT id, artwork_id, starting_bid, current_bid, end_time, is_active, created_at, updated_at
        FROM auctions WHERE id = ?
    `

	var auction domain.Auction
	err := r.db.QueryRowContext(ctx, query, auctionID).Scan(
		&auction.ID, &auction.ArtworkID, &auction.StartingBid, &auction.CurrentBid,
		&auction.EndTime, &auction.IsActive, &auction.CreatedAt, &auction.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	bids, err := r.loadBids(ctx, auctionID)
	if err != nil {
		return nil, err
	}
	auction.Bidders = bids

	return &auction, nil
}

func (r *MySQLAuctionRepository) List(ctx context.Context) ([]*domain.Auction, error) {
	query := `
        SELECT id, artwork_id, starting_bid, current_bid, end_time, is_active, created_at, updated_at
        FROM auctions ORDER BY end_time DESC
    `
	return r.queryAuctions(ctx, query)
}

func (r *MySQLAuctionRepository) ListActive(ctx context.Context) ([]*domain.Auction, error) {
	query := `
        SELECT id, artwork_id, starting_bid, current_bid, end_time, is_active, created_at, updated_at
        FROM auctions WHERE is_active = TRUE ORDER BY end_time DESC
    `
	return r.queryAuctions(ctx, query)
}

// AppendBid moves currentBid/endTime and records the bidder in a single
// transaction so the bid sequence can never get ahead of the auction row.
func (r *MySQLAuctionRepository) AppendBid(ctx context.Context, auctionID string, bid domain.Bid, currentBid float64, endTime time.Time) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`UPDATE auctions SET current_bid = ?, end_time = ?, updated_at = ? WHERE id = ?`,
		currentBid, endTime, time.Now(), auctionID)
	if err != nil {
		return err
	}
	if err := requireRowAffected(result); err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO auction_bids (auction_id, user_id, amount, bid_time) VALUES (?, ?, ?, ?)`,
		auctionID, bid.UserID, bid.Amount, bid.Timestamp)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *MySQLAuctionRepository) SetInactive(ctx context.Context, auctionID string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE auctions SET is_active = FALSE, updated_at = ? WHERE id = ?`,
		time.Now(), auctionID)
	if err != nil {
		return err
	}
	return requireRowAffected(result)
}

func (r *MySQLAuctionRepository) queryAuctions(ctx context.Context, query string, args ...interface{}) ([]*domain.Auction, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var auctions []*domain.Auction
	for rows.Next() {
		var auction domain.Auction
		err := rows.Scan(
			&auction.ID, &auction.ArtworkID, &auction.StartingBid, &auction.CurrentBid,
			&auction.EndTime, &auction.IsActive, &auction.CreatedAt, &auction.UpdatedAt)
		if err != nil {
			return nil, err
		}
		auctions = append(auctions, &auction)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, auction := range auctions {
		bids, err := r.loadBids(ctx, auction.ID)
		if err != nil {
			return nil, err
		}
		auction.Bidders = bids
	}

	return auctions, nil
}

// loadBids returns bids in acceptance order (insertion order, not the
// client-supplied timestamps).
func (r *MySQLAuctionRepository) loadBids(ctx context.Context, auctionID string) ([]domain.Bid, error) {
	query := `
        SELECT user_id, amount, bid_time
        FROM auction_bids
        WHERE auction_id = ?
        ORDER BY id ASC
    `

	rows, err := r.db.QueryContext(ctx, query, auctionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bids []domain.Bid
	for rows.Next() {
		var bid domain.Bid
		if err := rows.Scan(&bid.UserID, &bid.Amount, &bid.Timestamp); err != nil {
			return nil, err
		}
		bids = append(bids, bid)
	}

	return bids, rows.Err()
}
