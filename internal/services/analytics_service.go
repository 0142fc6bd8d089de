package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"streetmarket/internal/domain"
	"streetmarket/pkg/logger"
)

// AnalyticsService merges artwork sales, completed commissions and street
// performances into one financial summary per artist. The computation is a
// pure function of the source records and the optional date window; the
// redis cache in front of it is best effort.
type AnalyticsService struct {
	artworks     domain.ArtworkRepository
	commissions  domain.CommissionRepository
	performances domain.PerformanceRepository
	cache        domain.StatsCache
	log          logger.Logger
}

func NewAnalyticsService(
	artworks domain.ArtworkRepository,
	commissions domain.CommissionRepository,
	performances domain.PerformanceRepository,
	cache domain.StatsCache,
	log logger.Logger,
) *AnalyticsService {
	return &AnalyticsService{
		artworks:     artworks,
		commissions:  commissions,
		performances: performances,
		cache:        cache,
		log:          log,
	}
}

// GetFinancialStats aggregates an artist's income over an optional
// inclusive [startDate, endDate] window. Either bound may be nil. An
// artist with no records yields zero sums, not an error.
func (s *AnalyticsService) GetFinancialStats(ctx context.Context, artistID string, startDate, endDate *time.Time) (*domain.FinancialStats, error) {
	if artistID == "" {
		return nil, fmt.Errorf("%w: artistId is required", domain.ErrValidation)
	}

	cacheKey := statsCacheKey(artistID, startDate, endDate)
	if s.cache != nil {
		cached, err := s.cache.GetFinancialStats(ctx, cacheKey)
		if err != nil {
			s.log.Warn("Stats cache read failed", "artist_id", artistID, "error", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	artworks, err := s.artworks.ListByArtist(ctx, artistID)
	if err != nil {
		return nil, err
	}

	var soldArtworks []*domain.Artwork
	for _, artwork := range artworks {
		if !artwork.Sold() {
			continue
		}
		if !inRange(*artwork.SoldDate, startDate, endDate) {
			continue
		}
		soldArtworks = append(soldArtworks, artwork)
	}

	var salesIncome float64
	for _, artwork := range soldArtworks {
		salesIncome += artwork.Price
	}

	// Commission income ignores the date window: every completed
	// commission counts regardless of when it completed.
	commissions, err := s.commissions.ListByArtist(ctx, artistID)
	if err != nil {
		return nil, err
	}
	var commissionIncome float64
	for _, commission := range commissions {
		if commission.Status == domain.CommissionCompleted {
			commissionIncome += commission.Budget
		}
	}

	performances, err := s.performances.ListByArtist(ctx, artistID)
	if err != nil {
		return nil, err
	}
	var performanceIncome float64
	for _, performance := range performances {
		if !performance.Completed() {
			continue
		}
		if !inRange(performance.StartTime, startDate, endDate) {
			continue
		}
		performanceIncome += performance.CashCollected
	}

	totalIncome := salesIncome + commissionIncome + performanceIncome

	stats := &domain.FinancialStats{
		TotalIncome:         totalIncome,
		TotalExpenses:       0, // no expense tracking
		NetIncome:           totalIncome,
		MediumProfitability: mediumProfitability(soldArtworks),
		PerformanceIncome:   performanceIncome,
		CommissionIncome:    commissionIncome,
		SalesIncome:         salesIncome,
	}

	if len(soldArtworks) > 0 {
		stats.AveragePrice = round2(salesIncome / float64(len(soldArtworks)))
	}
	stats.PricePerHour = pricePerHour(soldArtworks)
	stats.PricePerSqM = pricePerSquareMeter(soldArtworks)

	if s.cache != nil {
		if err := s.cache.SetFinancialStats(ctx, cacheKey, stats); err != nil {
			s.log.Warn("Stats cache write failed", "artist_id", artistID, "error", err)
		}
	}

	return stats, nil
}

// pricePerHour restricts to sold artworks with recorded working hours.
// Nil when no artwork qualifies: the metric is absent, not zero.
func pricePerHour(soldArtworks []*domain.Artwork) *float64 {
	var totalPrice, totalHours float64
	for _, artwork := range soldArtworks {
		if artwork.TimeSpent > 0 {
			totalPrice += artwork.Price
			totalHours += artwork.TimeSpent
		}
	}
	if totalHours <= 0 {
		return nil
	}
	value := round2(totalPrice / totalHours)
	return &value
}

func pricePerSquareMeter(soldArtworks []*domain.Artwork) *float64 {
	var totalPrice, totalArea float64
	for _, artwork := range soldArtworks {
		if artwork.Dimensions == nil {
			continue
		}
		totalArea += artwork.Dimensions.AreaSquareMeters()
		totalPrice += artwork.Price
	}
	if totalArea <= 0 {
		return nil
	}
	value := round2(totalPrice / totalArea)
	return &value
}

func mediumProfitability(soldArtworks []*domain.Artwork) map[string]domain.MediumStats {
	grouped := make(map[string]domain.MediumStats)
	for _, artwork := range soldArtworks {
		entry := grouped[string(artwork.Medium)]
		entry.Income += artwork.Price
		entry.Count++
		grouped[string(artwork.Medium)] = entry
	}

	for medium, entry := range grouped {
		entry.AveragePrice = round2(entry.Income / float64(entry.Count))
		grouped[medium] = entry
	}

	return grouped
}

func inRange(t time.Time, startDate, endDate *time.Time) bool {
	if startDate != nil && t.Before(*startDate) {
		return false
	}
	if endDate != nil && t.After(*endDate) {
		return false
	}
	return true
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func statsCacheKey(artistID string, startDate, endDate *time.Time) string {
	format := func(t *time.Time) string {
		if t == nil {
			return "-"
		}
		return t.Format(time.RFC3339)
	}
	return fmt.Sprintf("%s:%s:%s", artistID, format(startDate), format(endDate))
}
