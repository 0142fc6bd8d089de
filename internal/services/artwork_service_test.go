package services

import (
	"context"
	"testing"
	"time"

	"streetmarket/internal/domain"

	"github.com/stretchr/testify/require"
)

func newArtworkFixture(t *testing.T) (*ArtworkService, *fakeArtworkRepo, *fakeClock) {
	t.Helper()
	clock := newFakeClock(time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC))
	repo := newFakeArtworkRepo()
	return NewArtworkService(repo, clock.Now, testLogger()), repo, clock
}

func TestCreateArtworkValidation(t *testing.T) {
	svc, _, _ := newArtworkFixture(t)
	ctx := context.Background()

	_, err := svc.CreateArtwork(ctx, CreateArtworkInput{Title: "Untitled"})
	require.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.CreateArtwork(ctx, CreateArtworkInput{ArtistID: "artist-1"})
	require.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.CreateArtwork(ctx, CreateArtworkInput{ArtistID: "artist-1", Title: "Untitled", Price: -10})
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestListTopRanksByViewsAndLikes(t *testing.T) {
	svc, repo, _ := newArtworkFixture(t)
	ctx := context.Background()

	seed := []struct {
		id        string
		views     int
		likes     int
		published bool
	}{
		{"artwork-low", 10, 1, true},
		{"artwork-high", 100, 50, true},
		{"artwork-mid", 40, 5, true},
		{"artwork-hidden", 500, 500, false},
	}
	for _, a := range seed {
		require.NoError(t, repo.Create(ctx, &domain.Artwork{
			ID: a.id, ArtistID: "artist-1", Title: a.id, Medium: domain.MediumSpray,
			Views: a.views, Likes: a.likes, IsPublished: a.published,
		}))
	}

	top, err := svc.ListTop(ctx, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	require.Equal(t, "artwork-high", top[0].ID)
	require.Equal(t, "artwork-mid", top[1].ID)
}

func TestMarkSoldStampsSaleDate(t *testing.T) {
	svc, repo, _ := newArtworkFixture(t)
	ctx := context.Background()

	artwork, err := svc.CreateArtwork(ctx, CreateArtworkInput{
		ArtistID: "artist-1", Title: "Concrete Bloom", Medium: domain.MediumMural, Price: 1200,
	})
	require.NoError(t, err)
	require.False(t, artwork.Sold())

	soldDate := time.Date(2025, 6, 2, 15, 0, 0, 0, time.UTC)
	require.NoError(t, svc.MarkSold(ctx, artwork.ID, soldDate))

	stored, err := repo.GetByID(ctx, artwork.ID)
	require.NoError(t, err)
	require.True(t, stored.Sold())
	require.Equal(t, soldDate, *stored.SoldDate)

	require.ErrorIs(t, svc.MarkSold(ctx, "artwork-missing", soldDate), domain.ErrNotFound)
}

func TestViewAndLikeCounters(t *testing.T) {
	svc, repo, _ := newArtworkFixture(t)
	ctx := context.Background()

	artwork, err := svc.CreateArtwork(ctx, CreateArtworkInput{
		ArtistID: "artist-1", Title: "Concrete Bloom", Medium: domain.MediumMural,
	})
	require.NoError(t, err)

	require.NoError(t, svc.RecordView(ctx, artwork.ID))
	require.NoError(t, svc.RecordView(ctx, artwork.ID))
	require.NoError(t, svc.LikeArtwork(ctx, artwork.ID))
	require.NoError(t, svc.UnlikeArtwork(ctx, artwork.ID))
	require.NoError(t, svc.LikeArtwork(ctx, artwork.ID))

	stored, err := repo.GetByID(ctx, artwork.ID)
	require.NoError(t, err)
	require.Equal(t, 2, stored.Views)
	require.Equal(t, 1, stored.Likes)
}
