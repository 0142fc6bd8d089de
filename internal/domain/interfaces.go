package domain

import (
	"context"
	"time"
)

// Repository interfaces
type ArtistRepository interface {
	Create(ctx context.Context, artist *Artist) error
	GetByID(ctx context.Context, artistID string) (*Artist, error)
	List(ctx context.Context) ([]*Artist, error)
	ListTrending(ctx context.Context, limit int) ([]*Artist, error)
	Search(ctx context.Context, term string) ([]*Artist, error)
	Update(ctx context.Context, artist *Artist) error
	Delete(ctx context.Context, artistID string) error
	// AddLike adjusts likes by likeDelta and popularity by popularityDelta.
	AddLike(ctx context.Context, artistID string, likeDelta, popularityDelta int) error
}

type ArtworkRepository interface {
	Create(ctx context.Context, artwork *Artwork) error
	GetByID(ctx context.Context, artworkID string) (*Artwork, error)
	List(ctx context.Context) ([]*Artwork, error)
	ListPublished(ctx context.Context) ([]*Artwork, error)
	ListByArtist(ctx context.Context, artistID string) ([]*Artwork, error)
	Search(ctx context.Context, term string) ([]*Artwork, error)
	Update(ctx context.Context, artwork *Artwork) error
	Delete(ctx context.Context, artworkID string) error
	IncrementViews(ctx context.Context, artworkID string) error
	AddLike(ctx context.Context, artworkID string, delta int) error
}

type AuctionRepository interface {
	Create(ctx context.Context, auction *Auction) error
	GetByID(ctx context.Context, auctionID string) (*Auction, error)
	List(ctx context.Context) ([]*Auction, error)
	ListActive(ctx context.Context) ([]*Auction, error)
	// AppendBid records an accepted bid and moves currentBid/endTime in one
	// write. The bid sequence is append-only.
	AppendBid(ctx context.Context, auctionID string, bid Bid, currentBid float64, endTime time.Time) error
	// SetInactive flips isActive to false. Irreversible.
	SetInactive(ctx context.Context, auctionID string) error
}

type CommissionRepository interface {
	Create(ctx context.Context, commission *Commission) error
	GetByID(ctx context.Context, commissionID string) (*Commission, error)
	ListByArtist(ctx context.Context, artistID string) ([]*Commission, error)
	UpdateStatus(ctx context.Context, commissionID string, status CommissionStatus, notes string, updatedAt time.Time) error
	Delete(ctx context.Context, commissionID string) error
}

type PerformanceRepository interface {
	Create(ctx context.Context, performance *Performance) error
	GetByID(ctx context.Context, performanceID string) (*Performance, error)
	ListByArtist(ctx context.Context, artistID string) ([]*Performance, error)
	End(ctx context.Context, performanceID string, endTime time.Time, cashCollected float64, notes string) error
	Delete(ctx context.Context, performanceID string) error
}

// Event interfaces
type EventPublisher interface {
	PublishBidEvent(ctx context.Context, event *BidEvent) error
}

// Notification interfaces
type AuctionBroadcaster interface {
	BroadcastToAuction(ctx context.Context, auctionID string, message interface{}) error
	// CloseAuction drops all live subscribers of an ended auction.
	CloseAuction(auctionID string) error
}

// Cache interface for derived analytics. Best effort: a miss or failure
// falls through to recomputation.
type StatsCache interface {
	GetFinancialStats(ctx context.Context, key string) (*FinancialStats, error)
	SetFinancialStats(ctx context.Context, key string, stats *FinancialStats) error
}

// Leader election interface
type LeaderElection interface {
	BecomeLeader(ctx context.Context, instanceID string) (bool, error)
	IsLeader(ctx context.Context, instanceID string) (bool, error)
	ReleaseLeadership(ctx context.Context, instanceID string) error
}

// WebSocket interfaces
type WebSocketConnection interface {
	Send(message interface{}) error
	Close() error
	UserID() string
	AuctionID() string
}

type ConnectionManager interface {
	RegisterConnection(userID, auctionID string, conn WebSocketConnection) error
	UnregisterConnection(userID, auctionID string) error
	GetConnectionsForAuction(auctionID string) []WebSocketConnection
	BroadcastToAuction(auctionID string, message interface{}) error
	CloseAndUnregisterConnections(auctionID string) error
}
