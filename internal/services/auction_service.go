package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"streetmarket/internal/domain"
	"streetmarket/pkg/logger"
	"streetmarket/pkg/utils"
)

// Clock abstracts time.Now for deterministic tests.
type Clock func() time.Time

// AuctionService owns the lifecycle of auctions: bid validation, monotonic
// bid increase, deadline enforcement and termination. All writes for one
// auction are serialized through a per-auction mutex; the strictly
// increasing currentBid invariant depends on it.
type AuctionService struct {
	auctions    domain.AuctionRepository
	artworks    domain.ArtworkRepository
	events      domain.EventPublisher
	broadcaster domain.AuctionBroadcaster
	countdown   time.Duration
	now         Clock
	locks       map[string]*sync.Mutex
	locksMu     sync.Mutex
	log         logger.Logger
}

// DefaultBidCountdown is the window an accepted bid guarantees before the
// auction may close.
const DefaultBidCountdown = 120 * time.Second

func NewAuctionService(
	auctions domain.AuctionRepository,
	artworks domain.ArtworkRepository,
	events domain.EventPublisher,
	broadcaster domain.AuctionBroadcaster,
	countdown time.Duration,
	now Clock,
	log logger.Logger,
) *AuctionService {
	if countdown <= 0 {
		countdown = DefaultBidCountdown
	}
	if now == nil {
		now = time.Now
	}
	return &AuctionService{
		auctions:    auctions,
		artworks:    artworks,
		events:      events,
		broadcaster: broadcaster,
		countdown:   countdown,
		now:         now,
		locks:       make(map[string]*sync.Mutex),
		log:         log,
	}
}

func (s *AuctionService) CreateAuction(ctx context.Context, artworkID string, startingBid float64, endTime time.Time) (*domain.Auction, error) {
	if artworkID == "" {
		return nil, fmt.Errorf("%w: artworkId is required", domain.ErrValidation)
	}
	if startingBid < 0 {
		return nil, fmt.Errorf("%w: starting bid must not be negative", domain.ErrValidation)
	}
	now := s.now()
	if !endTime.After(now) {
		return nil, fmt.Errorf("%w: end time must be in the future", domain.ErrValidation)
	}

	if _, err := s.artworks.GetByID(ctx, artworkID); err != nil {
		return nil, err
	}

	// At most one auction per artwork may be active at once.
	active, err := s.auctions.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	for _, a := range active {
		if a.ArtworkID == artworkID {
			return nil, fmt.Errorf("artwork %s: %w", artworkID, domain.ErrAuctionOngoing)
		}
	}

	auction := &domain.Auction{
		ID:          utils.GenerateID("auction"),
		ArtworkID:   artworkID,
		StartingBid: startingBid,
		CurrentBid:  startingBid,
		EndTime:     endTime,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.auctions.Create(ctx, auction); err != nil {
		return nil, err
	}

	s.log.Info("Auction created", "auction_id", auction.ID, "artwork_id", artworkID,
		"starting_bid", startingBid, "end_time", endTime)
	return auction, nil
}

func (s *AuctionService) GetAuction(ctx context.Context, auctionID string) (*domain.Auction, error) {
	return s.auctions.GetByID(ctx, auctionID)
}

func (s *AuctionService) ListAuctions(ctx context.Context) ([]*domain.Auction, error) {
	return s.auctions.List(ctx)
}

// GetActiveAuction returns the active auction ending furthest in the
// future, replacing the legacy "is any auction ongoing" flag with a query
// derived from the auction records themselves.
func (s *AuctionService) GetActiveAuction(ctx context.Context) (*domain.Auction, error) {
	active, err := s.auctions.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	if len(active) == 0 {
		return nil, domain.ErrNotFound
	}
	return active[0], nil
}

// PlaceBid validates a bid against the current bid and deadline, then
// records it. Preconditions are checked in a fixed order: the auction
// exists, it is active, the amount strictly exceeds the current bid, and
// the deadline has not passed. A bid arriving after the deadline
// terminates the auction as a side effect before being rejected.
//
// Returns the updated current bid on success.
func (s *AuctionService) PlaceBid(ctx context.Context, auctionID, userID string, amount float64) (float64, error) {
	if auctionID == "" || userID == "" {
		return 0, fmt.Errorf("%w: auctionId and userId are required", domain.ErrValidation)
	}
	if amount <= 0 {
		return 0, fmt.Errorf("%w: bid amount must be positive", domain.ErrValidation)
	}

	mu := s.lockFor(auctionID)
	mu.Lock()
	defer mu.Unlock()

	auction, err := s.auctions.GetByID(ctx, auctionID)
	if err != nil {
		return 0, err
	}

	if !auction.IsActive {
		return 0, fmt.Errorf("auction %s: %w", auctionID, domain.ErrAuctionNotActive)
	}

	if amount <= auction.CurrentBid {
		return 0, fmt.Errorf("%w: current bid is %.2f", domain.ErrBidTooLow, auction.CurrentBid)
	}

	now := s.now()
	if now.After(auction.EndTime) {
		// Late bid resolves the expired auction before being rejected.
		if err := s.terminate(ctx, auction); err != nil {
			return 0, err
		}
		return 0, fmt.Errorf("auction %s: %w", auctionID, domain.ErrAuctionExpired)
	}

	// A bid inside the countdown window pushes the persisted deadline out,
	// never in: clients see the timer reset, the stored endTime stays
	// authoritative.
	endTime := auction.EndTime
	extended := false
	if auction.EndTime.Sub(now) < s.countdown {
		endTime = now.Add(s.countdown)
		extended = true
	}

	bid := domain.Bid{UserID: userID, Amount: amount, Timestamp: now}
	if err := s.auctions.AppendBid(ctx, auctionID, bid, amount, endTime); err != nil {
		return 0, err
	}

	s.emit(ctx, auctionID, &domain.BidEvent{
		Type:      domain.BidAccepted,
		AuctionID: auctionID,
		UserID:    userID,
		Amount:    amount,
		EndTime:   endTime,
		Timestamp: now,
	})
	if extended {
		s.emit(ctx, auctionID, &domain.BidEvent{
			Type:      domain.AuctionExtended,
			AuctionID: auctionID,
			EndTime:   endTime,
			Timestamp: now,
		})
	}

	s.log.Info("Bid accepted", "auction_id", auctionID, "user_id", userID,
		"amount", amount, "end_time", endTime)
	return amount, nil
}

// EndAuction terminates an auction. Ending an already-ended auction is a
// no-op; there is no reopen.
func (s *AuctionService) EndAuction(ctx context.Context, auctionID string) error {
	if auctionID == "" {
		return fmt.Errorf("%w: auctionId is required", domain.ErrValidation)
	}

	mu := s.lockFor(auctionID)
	mu.Lock()
	defer mu.Unlock()

	auction, err := s.auctions.GetByID(ctx, auctionID)
	if err != nil {
		return err
	}

	if !auction.IsActive {
		return nil
	}

	return s.terminate(ctx, auction)
}

func (s *AuctionService) terminate(ctx context.Context, auction *domain.Auction) error {
	if err := s.auctions.SetInactive(ctx, auction.ID); err != nil {
		return err
	}

	now := s.now()
	s.emit(ctx, auction.ID, &domain.BidEvent{
		Type:      domain.AuctionClosed,
		AuctionID: auction.ID,
		Amount:    auction.CurrentBid,
		Timestamp: now,
	})
	if s.broadcaster != nil {
		if err := s.broadcaster.CloseAuction(auction.ID); err != nil {
			s.log.Error("Failed to close auction feed", "auction_id", auction.ID, "error", err)
		}
	}

	s.log.Info("Auction ended", "auction_id", auction.ID, "final_bid", auction.CurrentBid)
	return nil
}

// emit publishes and broadcasts an event best effort; delivery failures
// never fail the bid itself.
func (s *AuctionService) emit(ctx context.Context, auctionID string, event *domain.BidEvent) {
	if s.events != nil {
		if err := s.events.PublishBidEvent(ctx, event); err != nil {
			s.log.Error("Failed to publish bid event", "auction_id", auctionID,
				"type", event.Type, "error", err)
		}
	}
	if s.broadcaster != nil {
		if err := s.broadcaster.BroadcastToAuction(ctx, auctionID, event); err != nil {
			s.log.Error("Failed to broadcast bid event", "auction_id", auctionID,
				"type", event.Type, "error", err)
		}
	}
}

func (s *AuctionService) lockFor(auctionID string) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()

	mu, ok := s.locks[auctionID]
	if !ok {
		mu = &sync.Mutex{}
		s.locks[auctionID] = mu
	}
	return mu
}
