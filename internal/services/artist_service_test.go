package services

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"streetmarket/internal/domain"

	"github.com/stretchr/testify/require"
)

type fakeArtistRepo struct {
	mu      sync.Mutex
	artists map[string]*domain.Artist
}

func newFakeArtistRepo() *fakeArtistRepo {
	return &fakeArtistRepo{artists: make(map[string]*domain.Artist)}
}

func (r *fakeArtistRepo) Create(_ context.Context, artist *domain.Artist) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *artist
	r.artists[artist.ID] = &stored
	return nil
}

func (r *fakeArtistRepo) GetByID(_ context.Context, artistID string) (*domain.Artist, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	artist, ok := r.artists[artistID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *artist
	return &copied, nil
}

func (r *fakeArtistRepo) List(context.Context) ([]*domain.Artist, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Artist
	for _, artist := range r.artists {
		copied := *artist
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeArtistRepo) ListTrending(ctx context.Context, limit int) ([]*domain.Artist, error) {
	all, _ := r.List(ctx)
	sort.SliceStable(all, func(i, j int) bool { return all[i].Popularity > all[j].Popularity })
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r *fakeArtistRepo) Search(ctx context.Context, term string) ([]*domain.Artist, error) {
	return r.List(ctx)
}

func (r *fakeArtistRepo) Update(_ context.Context, artist *domain.Artist) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.artists[artist.ID]; !ok {
		return domain.ErrNotFound
	}
	stored := *artist
	r.artists[artist.ID] = &stored
	return nil
}

func (r *fakeArtistRepo) Delete(_ context.Context, artistID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.artists[artistID]; !ok {
		return domain.ErrNotFound
	}
	delete(r.artists, artistID)
	return nil
}

func (r *fakeArtistRepo) AddLike(_ context.Context, artistID string, likeDelta, popularityDelta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	artist, ok := r.artists[artistID]
	if !ok {
		return domain.ErrNotFound
	}
	artist.Likes += likeDelta
	artist.Popularity += popularityDelta
	return nil
}

func newArtistFixture(t *testing.T) (*ArtistService, *fakeArtistRepo) {
	t.Helper()
	clock := newFakeClock(time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC))
	repo := newFakeArtistRepo()
	return NewArtistService(repo, clock.Now, testLogger()), repo
}

func TestCreateArtistValidation(t *testing.T) {
	svc, _ := newArtistFixture(t)
	ctx := context.Background()

	_, err := svc.CreateArtist(ctx, CreateArtistInput{Bio: "paints walls"})
	require.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.CreateArtist(ctx, CreateArtistInput{Name: "Nadia"})
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestLikeArtistMovesPopularity(t *testing.T) {
	svc, repo := newArtistFixture(t)
	ctx := context.Background()

	artist, err := svc.CreateArtist(ctx, CreateArtistInput{Name: "Nadia", Bio: "paints walls"})
	require.NoError(t, err)

	require.NoError(t, svc.LikeArtist(ctx, artist.ID))
	require.NoError(t, svc.LikeArtist(ctx, artist.ID))

	stored, err := repo.GetByID(ctx, artist.ID)
	require.NoError(t, err)
	require.Equal(t, 2, stored.Likes)
	require.Equal(t, 10, stored.Popularity)

	require.NoError(t, svc.UnlikeArtist(ctx, artist.ID))

	stored, err = repo.GetByID(ctx, artist.ID)
	require.NoError(t, err)
	require.Equal(t, 1, stored.Likes)
	require.Equal(t, 5, stored.Popularity)
}

func TestListTrendingDefaultLimit(t *testing.T) {
	svc, repo := newArtistFixture(t)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		require.NoError(t, repo.Create(ctx, &domain.Artist{
			ID: string(rune('a' + i)), Name: "artist", Bio: "bio", Popularity: i,
		}))
	}

	trending, err := svc.ListTrending(ctx, 0)
	require.NoError(t, err)
	require.Len(t, trending, 6)
	require.Equal(t, 9, trending[0].Popularity)
}
