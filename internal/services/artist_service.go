package services

import (
	"context"
	"fmt"
	"time"

	"streetmarket/internal/domain"
	"streetmarket/pkg/logger"
	"streetmarket/pkg/utils"
)

type ArtistService struct {
	artists domain.ArtistRepository
	now     Clock
	log     logger.Logger
}

func NewArtistService(artists domain.ArtistRepository, now Clock, log logger.Logger) *ArtistService {
	if now == nil {
		now = time.Now
	}
	return &ArtistService{artists: artists, now: now, log: log}
}

type CreateArtistInput struct {
	Name        string
	Bio         string
	Location    domain.Location
	Specialties []string
	HourlyRate  float64
}

func (s *ArtistService) CreateArtist(ctx context.Context, input CreateArtistInput) (*domain.Artist, error) {
	if input.Name == "" || input.Bio == "" {
		return nil, fmt.Errorf("%w: name and bio are required", domain.ErrValidation)
	}

	now := s.now()
	artist := &domain.Artist{
		ID:          utils.GenerateID("artist"),
		Name:        input.Name,
		Bio:         input.Bio,
		Location:    input.Location,
		Specialties: input.Specialties,
		HourlyRate:  input.HourlyRate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.artists.Create(ctx, artist); err != nil {
		return nil, err
	}

	s.log.Info("Artist created", "artist_id", artist.ID, "name", artist.Name)
	return artist, nil
}

func (s *ArtistService) GetArtist(ctx context.Context, artistID string) (*domain.Artist, error) {
	return s.artists.GetByID(ctx, artistID)
}

func (s *ArtistService) ListArtists(ctx context.Context) ([]*domain.Artist, error) {
	return s.artists.List(ctx)
}

func (s *ArtistService) ListTrending(ctx context.Context, limit int) ([]*domain.Artist, error) {
	if limit <= 0 {
		limit = 6
	}
	return s.artists.ListTrending(ctx, limit)
}

func (s *ArtistService) SearchArtists(ctx context.Context, term string) ([]*domain.Artist, error) {
	return s.artists.Search(ctx, term)
}

func (s *ArtistService) UpdateArtist(ctx context.Context, artist *domain.Artist) error {
	if artist.ID == "" {
		return fmt.Errorf("%w: artist id is required", domain.ErrValidation)
	}
	return s.artists.Update(ctx, artist)
}

func (s *ArtistService) DeleteArtist(ctx context.Context, artistID string) error {
	return s.artists.Delete(ctx, artistID)
}

// LikeArtist bumps likes and the popularity score used by trending.
func (s *ArtistService) LikeArtist(ctx context.Context, artistID string) error {
	return s.artists.AddLike(ctx, artistID, 1, 5)
}

func (s *ArtistService) UnlikeArtist(ctx context.Context, artistID string) error {
	return s.artists.AddLike(ctx, artistID, -1, -5)
}
