package services

import (
	"context"
	"sync"
	"time"

	"streetmarket/internal/domain"
	"streetmarket/pkg/logger"

	"go.uber.org/zap"
)

func testLogger() logger.Logger {
	return logger.NewWithZap(zap.NewNop().Sugar())
}

// fakeClock lets tests move time forward explicitly.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(now time.Time) *fakeClock {
	return &fakeClock{now: now}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type fakeAuctionRepo struct {
	mu       sync.Mutex
	auctions map[string]*domain.Auction
}

func newFakeAuctionRepo() *fakeAuctionRepo {
	return &fakeAuctionRepo{auctions: make(map[string]*domain.Auction)}
}

func (r *fakeAuctionRepo) Create(_ context.Context, auction *domain.Auction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *auction
	r.auctions[auction.ID] = &stored
	return nil
}

func (r *fakeAuctionRepo) GetByID(_ context.Context, auctionID string) (*domain.Auction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	auction, ok := r.auctions[auctionID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *auction
	copied.Bidders = append([]domain.Bid(nil), auction.Bidders...)
	return &copied, nil
}

func (r *fakeAuctionRepo) List(ctx context.Context) ([]*domain.Auction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Auction
	for _, auction := range r.auctions {
		copied := *auction
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeAuctionRepo) ListActive(ctx context.Context) ([]*domain.Auction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Auction
	for _, auction := range r.auctions {
		if auction.IsActive {
			copied := *auction
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeAuctionRepo) AppendBid(_ context.Context, auctionID string, bid domain.Bid, currentBid float64, endTime time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	auction, ok := r.auctions[auctionID]
	if !ok {
		return domain.ErrNotFound
	}
	auction.Bidders = append(auction.Bidders, bid)
	auction.CurrentBid = currentBid
	auction.EndTime = endTime
	auction.UpdatedAt = bid.Timestamp
	return nil
}

func (r *fakeAuctionRepo) SetInactive(_ context.Context, auctionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	auction, ok := r.auctions[auctionID]
	if !ok {
		return domain.ErrNotFound
	}
	auction.IsActive = false
	return nil
}

type fakeArtworkRepo struct {
	mu       sync.Mutex
	artworks map[string]*domain.Artwork
}

func newFakeArtworkRepo() *fakeArtworkRepo {
	return &fakeArtworkRepo{artworks: make(map[string]*domain.Artwork)}
}

func (r *fakeArtworkRepo) Create(_ context.Context, artwork *domain.Artwork) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *artwork
	r.artworks[artwork.ID] = &stored
	return nil
}

func (r *fakeArtworkRepo) GetByID(_ context.Context, artworkID string) (*domain.Artwork, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	artwork, ok := r.artworks[artworkID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *artwork
	return &copied, nil
}

func (r *fakeArtworkRepo) List(ctx context.Context) ([]*domain.Artwork, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Artwork
	for _, artwork := range r.artworks {
		copied := *artwork
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeArtworkRepo) ListPublished(ctx context.Context) ([]*domain.Artwork, error) {
	all, _ := r.List(ctx)
	var out []*domain.Artwork
	for _, artwork := range all {
		if artwork.IsPublished {
			out = append(out, artwork)
		}
	}
	return out, nil
}

func (r *fakeArtworkRepo) ListByArtist(ctx context.Context, artistID string) ([]*domain.Artwork, error) {
	all, _ := r.List(ctx)
	var out []*domain.Artwork
	for _, artwork := range all {
		if artwork.ArtistID == artistID {
			out = append(out, artwork)
		}
	}
	return out, nil
}

func (r *fakeArtworkRepo) Search(ctx context.Context, term string) ([]*domain.Artwork, error) {
	return r.List(ctx)
}

func (r *fakeArtworkRepo) Update(_ context.Context, artwork *domain.Artwork) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.artworks[artwork.ID]; !ok {
		return domain.ErrNotFound
	}
	stored := *artwork
	r.artworks[artwork.ID] = &stored
	return nil
}

func (r *fakeArtworkRepo) Delete(_ context.Context, artworkID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.artworks[artworkID]; !ok {
		return domain.ErrNotFound
	}
	delete(r.artworks, artworkID)
	return nil
}

func (r *fakeArtworkRepo) IncrementViews(_ context.Context, artworkID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	artwork, ok := r.artworks[artworkID]
	if !ok {
		return domain.ErrNotFound
	}
	artwork.Views++
	return nil
}

func (r *fakeArtworkRepo) AddLike(_ context.Context, artworkID string, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	artwork, ok := r.artworks[artworkID]
	if !ok {
		return domain.ErrNotFound
	}
	artwork.Likes += delta
	return nil
}

type fakeCommissionRepo struct {
	mu          sync.Mutex
	commissions map[string]*domain.Commission
}

func newFakeCommissionRepo() *fakeCommissionRepo {
	return &fakeCommissionRepo{commissions: make(map[string]*domain.Commission)}
}

func (r *fakeCommissionRepo) Create(_ context.Context, commission *domain.Commission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *commission
	r.commissions[commission.ID] = &stored
	return nil
}

func (r *fakeCommissionRepo) GetByID(_ context.Context, commissionID string) (*domain.Commission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	commission, ok := r.commissions[commissionID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *commission
	return &copied, nil
}

func (r *fakeCommissionRepo) ListByArtist(_ context.Context, artistID string) ([]*domain.Commission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Commission
	for _, commission := range r.commissions {
		if commission.ArtistID == artistID {
			copied := *commission
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeCommissionRepo) UpdateStatus(_ context.Context, commissionID string, status domain.CommissionStatus, notes string, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	commission, ok := r.commissions[commissionID]
	if !ok {
		return domain.ErrNotFound
	}
	commission.Status = status
	commission.Notes = notes
	commission.UpdatedAt = updatedAt
	return nil
}

func (r *fakeCommissionRepo) Delete(_ context.Context, commissionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.commissions[commissionID]; !ok {
		return domain.ErrNotFound
	}
	delete(r.commissions, commissionID)
	return nil
}

type fakePerformanceRepo struct {
	mu           sync.Mutex
	performances map[string]*domain.Performance
}

func newFakePerformanceRepo() *fakePerformanceRepo {
	return &fakePerformanceRepo{performances: make(map[string]*domain.Performance)}
}

func (r *fakePerformanceRepo) Create(_ context.Context, performance *domain.Performance) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *performance
	r.performances[performance.ID] = &stored
	return nil
}

func (r *fakePerformanceRepo) GetByID(_ context.Context, performanceID string) (*domain.Performance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	performance, ok := r.performances[performanceID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *performance
	return &copied, nil
}

func (r *fakePerformanceRepo) ListByArtist(_ context.Context, artistID string) ([]*domain.Performance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Performance
	for _, performance := range r.performances {
		if performance.ArtistID == artistID {
			copied := *performance
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakePerformanceRepo) End(_ context.Context, performanceID string, endTime time.Time, cashCollected float64, notes string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	performance, ok := r.performances[performanceID]
	if !ok {
		return domain.ErrNotFound
	}
	performance.EndTime = &endTime
	performance.CashCollected = cashCollected
	performance.Notes = notes
	return nil
}

func (r *fakePerformanceRepo) Delete(_ context.Context, performanceID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.performances[performanceID]; !ok {
		return domain.ErrNotFound
	}
	delete(r.performances, performanceID)
	return nil
}

// recordingPublisher captures events instead of touching redis.
type recordingPublisher struct {
	mu     sync.Mutex
	events []*domain.BidEvent
}

func (p *recordingPublisher) PublishBidEvent(_ context.Context, event *domain.BidEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) eventsOfType(eventType domain.BidEventType) []*domain.BidEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []*domain.BidEvent
	for _, event := range p.events {
		if event.Type == eventType {
			out = append(out, event)
		}
	}
	return out
}

type recordingBroadcaster struct {
	mu     sync.Mutex
	closed []string
}

func (b *recordingBroadcaster) BroadcastToAuction(_ context.Context, auctionID string, message interface{}) error {
	return nil
}

func (b *recordingBroadcaster) CloseAuction(auctionID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = append(b.closed, auctionID)
	return nil
}

type fakeStatsCache struct {
	mu    sync.Mutex
	stats map[string]*domain.FinancialStats
}

func newFakeStatsCache() *fakeStatsCache {
	return &fakeStatsCache{stats: make(map[string]*domain.FinancialStats)}
}

func (c *fakeStatsCache) GetFinancialStats(_ context.Context, key string) (*domain.FinancialStats, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats[key], nil
}

func (c *fakeStatsCache) SetFinancialStats(_ context.Context, key string, stats *domain.FinancialStats) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stats[key] = stats
	return nil
}
