package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"streetmarket/internal/domain"
	"streetmarket/pkg/logger"
	"streetmarket/pkg/utils"
)

type ArtworkService struct {
	artworks domain.ArtworkRepository
	now      Clock
	log      logger.Logger
}

func NewArtworkService(artworks domain.ArtworkRepository, now Clock, log logger.Logger) *ArtworkService {
	if now == nil {
		now = time.Now
	}
	return &ArtworkService{artworks: artworks, now: now, log: log}
}

type CreateArtworkInput struct {
	ArtistID    string
	Title       string
	Description string
	Medium      domain.Medium
	Price       float64
	IsPublished bool
	Tags        []string
	Dimensions  *domain.Dimensions
	TimeSpent   float64
}

func (s *ArtworkService) CreateArtwork(ctx context.Context, input CreateArtworkInput) (*domain.Artwork, error) {
	if input.ArtistID == "" || input.Title == "" {
		return nil, fmt.Errorf("%w: artistId and title are required", domain.ErrValidation)
	}
	if input.Price < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", domain.ErrValidation)
	}

	now := s.now()
	artwork := &domain.Artwork{
		ID:          utils.GenerateID("artwork"),
		ArtistID:    input.ArtistID,
		Title:       input.Title,
		Description: input.Description,
		Medium:      input.Medium,
		Price:       input.Price,
		IsPublished: input.IsPublished,
		Tags:        input.Tags,
		Dimensions:  input.Dimensions,
		TimeSpent:   input.TimeSpent,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.artworks.Create(ctx, artwork); err != nil {
		return nil, err
	}

	s.log.Info("Artwork created", "artwork_id", artwork.ID, "artist_id", artwork.ArtistID)
	return artwork, nil
}

func (s *ArtworkService) GetArtwork(ctx context.Context, artworkID string) (*domain.Artwork, error) {
	return s.artworks.GetByID(ctx, artworkID)
}

func (s *ArtworkService) ListArtworks(ctx context.Context) ([]*domain.Artwork, error) {
	return s.artworks.List(ctx)
}

func (s *ArtworkService) ListPublished(ctx context.Context) ([]*domain.Artwork, error) {
	return s.artworks.ListPublished(ctx)
}

func (s *ArtworkService) ListByArtist(ctx context.Context, artistID string) ([]*domain.Artwork, error) {
	return s.artworks.ListByArtist(ctx, artistID)
}

// ListTop ranks published artworks by views+likes.
func (s *ArtworkService) ListTop(ctx context.Context, limit int) ([]*domain.Artwork, error) {
	if limit <= 0 {
		limit = 12
	}

	artworks, err := s.artworks.ListPublished(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(artworks, func(i, j int) bool {
		return artworks[i].Views+artworks[i].Likes > artworks[j].Views+artworks[j].Likes
	})

	if len(artworks) > limit {
		artworks = artworks[:limit]
	}
	return artworks, nil
}

func (s *ArtworkService) SearchArtworks(ctx context.Context, term string) ([]*domain.Artwork, error) {
	return s.artworks.Search(ctx, term)
}

func (s *ArtworkService) UpdateArtwork(ctx context.Context, artwork *domain.Artwork) error {
	if artwork.ID == "" {
		return fmt.Errorf("%w: artwork id is required", domain.ErrValidation)
	}
	return s.artworks.Update(ctx, artwork)
}

// MarkSold stamps the sale date used by the financial aggregation.
func (s *ArtworkService) MarkSold(ctx context.Context, artworkID string, soldDate time.Time) error {
	artwork, err := s.artworks.GetByID(ctx, artworkID)
	if err != nil {
		return err
	}
	artwork.SoldDate = &soldDate
	return s.artworks.Update(ctx, artwork)
}

func (s *ArtworkService) DeleteArtwork(ctx context.Context, artworkID string) error {
	return s.artworks.Delete(ctx, artworkID)
}

func (s *ArtworkService) RecordView(ctx context.Context, artworkID string) error {
	return s.artworks.IncrementViews(ctx, artworkID)
}

func (s *ArtworkService) LikeArtwork(ctx context.Context, artworkID string) error {
	return s.artworks.AddLike(ctx, artworkID, 1)
}

func (s *ArtworkService) UnlikeArtwork(ctx context.Context, artworkID string) error {
	return s.artworks.AddLike(ctx, artworkID, -1)
}
