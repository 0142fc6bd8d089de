package services

import (
	"context"
	"testing"
	"time"

	"streetmarket/internal/domain"

	"github.com/stretchr/testify/require"
)

type analyticsFixture struct {
	svc          *AnalyticsService
	artworks     *fakeArtworkRepo
	commissions  *fakeCommissionRepo
	performances *fakePerformanceRepo
	cache        *fakeStatsCache
}

func newAnalyticsFixture(t *testing.T, cache *fakeStatsCache) *analyticsFixture {
	t.Helper()

	artworks := newFakeArtworkRepo()
	commissions := newFakeCommissionRepo()
	performances := newFakePerformanceRepo()

	var statsCache domain.StatsCache
	if cache != nil {
		statsCache = cache
	}

	return &analyticsFixture{
		svc:          NewAnalyticsService(artworks, commissions, performances, statsCache, testLogger()),
		artworks:     artworks,
		commissions:  commissions,
		performances: performances,
		cache:        cache,
	}
}

func soldArtwork(id string, price float64, soldDate time.Time) *domain.Artwork {
	return &domain.Artwork{
		ID:       id,
		ArtistID: "artist-1",
		Title:    id,
		Medium:   domain.MediumSpray,
		Price:    price,
		SoldDate: &soldDate,
	}
}

func TestFinancialStatsRequiresArtist(t *testing.T) {
	f := newAnalyticsFixture(t, nil)

	_, err := f.svc.GetFinancialStats(context.Background(), "", nil, nil)
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestFinancialStatsEmpty(t *testing.T) {
	f := newAnalyticsFixture(t, nil)

	stats, err := f.svc.GetFinancialStats(context.Background(), "artist-1", nil, nil)
	require.NoError(t, err)

	require.Zero(t, stats.TotalIncome)
	require.Zero(t, stats.NetIncome)
	require.Zero(t, stats.AveragePrice)
	require.Nil(t, stats.PricePerHour)
	require.Nil(t, stats.PricePerSqM)
	require.NotNil(t, stats.MediumProfitability)
	require.Empty(t, stats.MediumProfitability)
}

func TestFinancialStatsAggregates(t *testing.T) {
	f := newAnalyticsFixture(t, nil)
	ctx := context.Background()
	soldAt := time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC)

	artwork := soldArtwork("artwork-1", 1000, soldAt)
	artwork.TimeSpent = 10
	artwork.Dimensions = &domain.Dimensions{Width: 200, Height: 100, Unit: domain.UnitCentimeters}
	require.NoError(t, f.artworks.Create(ctx, artwork))

	unsold := &domain.Artwork{ID: "artwork-2", ArtistID: "artist-1", Title: "wip", Medium: domain.MediumMural, Price: 9999}
	require.NoError(t, f.artworks.Create(ctx, unsold))

	require.NoError(t, f.commissions.Create(ctx, &domain.Commission{
		ID: "commission-1", ArtistID: "artist-1", ClientName: "c", Budget: 500,
		Status: domain.CommissionCompleted,
	}))
	require.NoError(t, f.commissions.Create(ctx, &domain.Commission{
		ID: "commission-2", ArtistID: "artist-1", ClientName: "c", Budget: 300,
		Status: domain.CommissionPending,
	}))

	started := time.Date(2025, 5, 12, 18, 0, 0, 0, time.UTC)
	ended := started.Add(2 * time.Hour)
	require.NoError(t, f.performances.Create(ctx, &domain.Performance{
		ID: "performance-1", ArtistID: "artist-1", StartTime: started, EndTime: &ended,
		CashCollected: 200,
	}))
	require.NoError(t, f.performances.Create(ctx, &domain.Performance{
		ID: "performance-2", ArtistID: "artist-1", StartTime: started.Add(time.Hour),
		CashCollected: 50, // ongoing, ignored
	}))

	stats, err := f.svc.GetFinancialStats(ctx, "artist-1", nil, nil)
	require.NoError(t, err)

	require.Equal(t, 1000.0, stats.SalesIncome)
	require.Equal(t, 500.0, stats.CommissionIncome)
	require.Equal(t, 200.0, stats.PerformanceIncome)
	require.Equal(t, 1700.0, stats.TotalIncome)
	require.Equal(t, 1700.0, stats.NetIncome)
	require.Zero(t, stats.TotalExpenses)
	require.Equal(t, 1000.0, stats.AveragePrice)

	require.NotNil(t, stats.PricePerHour)
	require.Equal(t, 100.0, *stats.PricePerHour)

	// 200cm x 100cm = 2 square meters.
	require.NotNil(t, stats.PricePerSqM)
	require.Equal(t, 500.0, *stats.PricePerSqM)

	require.Equal(t, domain.MediumStats{Income: 1000, Count: 1, AveragePrice: 1000}, stats.MediumProfitability["Spray"])
}

func TestFinancialStatsDateWindow(t *testing.T) {
	f := newAnalyticsFixture(t, nil)
	ctx := context.Background()

	require.NoError(t, f.artworks.Create(ctx, soldArtwork("artwork-in", 400, time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC))))
	require.NoError(t, f.artworks.Create(ctx, soldArtwork("artwork-out", 600, time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC))))

	// Completed commissions count regardless of when they completed.
	require.NoError(t, f.commissions.Create(ctx, &domain.Commission{
		ID: "commission-1", ArtistID: "artist-1", ClientName: "c", Budget: 250,
		Status: domain.CommissionCompleted,
		UpdatedAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}))

	start := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC)

	stats, err := f.svc.GetFinancialStats(ctx, "artist-1", &start, &end)
	require.NoError(t, err)

	require.Equal(t, 400.0, stats.SalesIncome)
	require.Equal(t, 250.0, stats.CommissionIncome)
	require.Equal(t, 650.0, stats.TotalIncome)
}

func TestFinancialStatsSkipsHourAndAreaWhenUnrecorded(t *testing.T) {
	f := newAnalyticsFixture(t, nil)
	ctx := context.Background()

	// Sold, but no hours and no dimensions recorded.
	require.NoError(t, f.artworks.Create(ctx, soldArtwork("artwork-1", 800, time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC))))

	stats, err := f.svc.GetFinancialStats(ctx, "artist-1", nil, nil)
	require.NoError(t, err)

	require.Equal(t, 800.0, stats.SalesIncome)
	require.Nil(t, stats.PricePerHour)
	require.Nil(t, stats.PricePerSqM)
}

func TestFinancialStatsIsRepeatable(t *testing.T) {
	f := newAnalyticsFixture(t, nil)
	ctx := context.Background()

	require.NoError(t, f.artworks.Create(ctx, soldArtwork("artwork-1", 350, time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC))))

	first, err := f.svc.GetFinancialStats(ctx, "artist-1", nil, nil)
	require.NoError(t, err)
	second, err := f.svc.GetFinancialStats(ctx, "artist-1", nil, nil)
	require.NoError(t, err)

	require.Equal(t, first, second)
}

func TestFinancialStatsCacheHit(t *testing.T) {
	cache := newFakeStatsCache()
	f := newAnalyticsFixture(t, cache)
	ctx := context.Background()

	require.NoError(t, f.artworks.Create(ctx, soldArtwork("artwork-1", 100, time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC))))

	first, err := f.svc.GetFinancialStats(ctx, "artist-1", nil, nil)
	require.NoError(t, err)
	require.Equal(t, 100.0, first.SalesIncome)

	// New sale is invisible until the cache entry expires.
	require.NoError(t, f.artworks.Create(ctx, soldArtwork("artwork-2", 900, time.Date(2025, 5, 11, 0, 0, 0, 0, time.UTC))))

	second, err := f.svc.GetFinancialStats(ctx, "artist-1", nil, nil)
	require.NoError(t, err)
	require.Equal(t, 100.0, second.SalesIncome)
}

func TestDimensionsAreaConversion(t *testing.T) {
	cm := domain.Dimensions{Width: 200, Height: 100, Unit: domain.UnitCentimeters}
	require.InDelta(t, 2.0, cm.AreaSquareMeters(), 1e-9)

	m := domain.Dimensions{Width: 2, Height: 3, Unit: domain.UnitMeters}
	require.InDelta(t, 6.0, m.AreaSquareMeters(), 1e-9)

	ft := domain.Dimensions{Width: 10, Height: 10, Unit: domain.UnitFeet}
	require.InDelta(t, 9.2903, ft.AreaSquareMeters(), 1e-4)
}
