package services

import (
	"context"
	"fmt"
	"time"

	"streetmarket/internal/domain"
	"streetmarket/pkg/logger"

	"github.com/robfig/cron/v3"
)

// AuctionSweeper ends active auctions whose deadline has passed, so an
// expired auction does not wait for a late bid to resolve it. Only the
// elected leader instance sweeps.
type AuctionSweeper struct {
	cron       *cron.Cron
	auctions   domain.AuctionRepository
	auctionSvc *AuctionService
	leader     domain.LeaderElection
	instanceID string
	interval   time.Duration
	now        Clock
	log        logger.Logger
}

func NewAuctionSweeper(
	auctions domain.AuctionRepository,
	auctionSvc *AuctionService,
	leader domain.LeaderElection,
	instanceID string,
	interval time.Duration,
	now Clock,
	log logger.Logger,
) *AuctionSweeper {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	if now == nil {
		now = time.Now
	}
	return &AuctionSweeper{
		cron:       cron.New(cron.WithSeconds()),
		auctions:   auctions,
		auctionSvc: auctionSvc,
		leader:     leader,
		instanceID: instanceID,
		interval:   interval,
		now:        now,
		log:        log,
	}
}

func (s *AuctionSweeper) Start(ctx context.Context) error {
	s.log.Info("Starting auction sweeper", "interval", s.interval)

	_, err := s.cron.AddFunc(fmt.Sprintf("@every %s", s.interval), func() {
		s.Sweep(ctx)
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	return nil
}

func (s *AuctionSweeper) Stop() error {
	s.log.Info("Stopping auction sweeper")
	s.cron.Stop()
	return nil
}

// Sweep terminates every active auction past its deadline.
func (s *AuctionSweeper) Sweep(ctx context.Context) {
	if s.leader != nil {
		isLeader, err := s.leader.IsLeader(ctx, s.instanceID)
		if err != nil {
			s.log.Error("Leader check failed", "error", err)
			return
		}
		if !isLeader {
			return
		}
	}

	active, err := s.auctions.ListActive(ctx)
	if err != nil {
		s.log.Error("Failed to list active auctions", "error", err)
		return
	}

	now := s.now()
	for _, auction := range active {
		if auction.State(now) != domain.AuctionStateExpiredUnresolved {
			continue
		}

		if err := s.auctionSvc.EndAuction(ctx, auction.ID); err != nil {
			s.log.Error("Failed to end expired auction", "auction_id", auction.ID, "error", err)
			continue
		}
		s.log.Info("Expired auction ended", "auction_id", auction.ID, "end_time", auction.EndTime)
	}
}
