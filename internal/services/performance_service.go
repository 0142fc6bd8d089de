package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"streetmarket/internal/domain"
	"streetmarket/pkg/logger"
	"streetmarket/pkg/utils"
)

type PerformanceService struct {
	performances domain.PerformanceRepository
	now          Clock
	log          logger.Logger
}

func NewPerformanceService(performances domain.PerformanceRepository, now Clock, log logger.Logger) *PerformanceService {
	if now == nil {
		now = time.Now
	}
	return &PerformanceService{performances: performances, now: now, log: log}
}

// StartPerformance opens a performance with no end time; it stays out of
// all stats until ended.
func (s *PerformanceService) StartPerformance(ctx context.Context, artistID, location string) (*domain.Performance, error) {
	if artistID == "" {
		return nil, fmt.Errorf("%w: artistId is required", domain.ErrValidation)
	}

	now := s.now()
	performance := &domain.Performance{
		ID:        utils.GenerateID("performance"),
		ArtistID:  artistID,
		Location:  location,
		StartTime: now,
		CreatedAt: now,
	}

	if err := s.performances.Create(ctx, performance); err != nil {
		return nil, err
	}

	s.log.Info("Performance started", "performance_id", performance.ID, "artist_id", artistID)
	return performance, nil
}

func (s *PerformanceService) EndPerformance(ctx context.Context, performanceID string, cashCollected float64, notes string) error {
	if cashCollected < 0 {
		return fmt.Errorf("%w: cash collected must not be negative", domain.ErrValidation)
	}

	performance, err := s.performances.GetByID(ctx, performanceID)
	if err != nil {
		return err
	}
	if performance.Completed() {
		return fmt.Errorf("%w: performance already ended", domain.ErrValidation)
	}

	return s.performances.End(ctx, performanceID, s.now(), cashCollected, notes)
}

func (s *PerformanceService) ListByArtist(ctx context.Context, artistID string) ([]*domain.Performance, error) {
	if artistID == "" {
		return nil, fmt.Errorf("%w: artistId is required", domain.ErrValidation)
	}
	return s.performances.ListByArtist(ctx, artistID)
}

func (s *PerformanceService) DeletePerformance(ctx context.Context, performanceID string) error {
	return s.performances.Delete(ctx, performanceID)
}

// GetStats summarizes completed performances, optionally limited to those
// started inside the [startDate, endDate] window.
func (s *PerformanceService) GetStats(ctx context.Context, artistID string, startDate, endDate *time.Time) (*domain.PerformanceStats, error) {
	performances, err := s.ListByArtist(ctx, artistID)
	if err != nil {
		return nil, err
	}

	var filtered []*domain.Performance
	for _, performance := range performances {
		if !performance.Completed() {
			continue
		}
		if !inRange(performance.StartTime, startDate, endDate) {
			continue
		}
		filtered = append(filtered, performance)
	}

	var totalHours, totalCash float64
	for _, performance := range filtered {
		totalHours += performance.Hours()
		totalCash += performance.CashCollected
	}

	stats := &domain.PerformanceStats{
		TotalPerformances: len(filtered),
		TotalHours:        math.Round(totalHours*10) / 10,
		TotalCash:         totalCash,
	}
	if totalHours > 0 {
		stats.AveragePerHour = round2(totalCash / totalHours)
	}
	if len(filtered) > 0 {
		stats.AveragePerPerformance = round2(totalCash / float64(len(filtered)))
	}

	return stats, nil
}
