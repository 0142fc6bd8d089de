package services

import (
	"context"
	"fmt"
	"time"

	"streetmarket/internal/domain"
	"streetmarket/pkg/logger"
	"streetmarket/pkg/utils"
)

type CommissionService struct {
	commissions domain.CommissionRepository
	now         Clock
	log         logger.Logger
}

func NewCommissionService(commissions domain.CommissionRepository, now Clock, log logger.Logger) *CommissionService {
	if now == nil {
		now = time.Now
	}
	return &CommissionService{commissions: commissions, now: now, log: log}
}

type CreateCommissionInput struct {
	ArtistID    string
	ClientName  string
	ClientEmail string
	WorkType    string
	Budget      float64
	Location    string
	Description string
}

// CreateCommission registers a client request. Every commission starts
// Pending regardless of what the client sends.
func (s *CommissionService) CreateCommission(ctx context.Context, input CreateCommissionInput) (*domain.Commission, error) {
	if input.ArtistID == "" || input.ClientName == "" {
		return nil, fmt.Errorf("%w: artistId and clientName are required", domain.ErrValidation)
	}
	if input.Budget < 0 {
		return nil, fmt.Errorf("%w: budget must not be negative", domain.ErrValidation)
	}

	now := s.now()
	commission := &domain.Commission{
		ID:          utils.GenerateID("commission"),
		ArtistID:    input.ArtistID,
		ClientName:  input.ClientName,
		ClientEmail: input.ClientEmail,
		WorkType:    input.WorkType,
		Budget:      input.Budget,
		Location:    input.Location,
		Description: input.Description,
		Status:      domain.CommissionPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.commissions.Create(ctx, commission); err != nil {
		return nil, err
	}

	s.log.Info("Commission created", "commission_id", commission.ID, "artist_id", commission.ArtistID)
	return commission, nil
}

func (s *CommissionService) GetCommission(ctx context.Context, commissionID string) (*domain.Commission, error) {
	return s.commissions.GetByID(ctx, commissionID)
}

func (s *CommissionService) ListByArtist(ctx context.Context, artistID string) ([]*domain.Commission, error) {
	if artistID == "" {
		return nil, fmt.Errorf("%w: artistId is required", domain.ErrValidation)
	}
	return s.commissions.ListByArtist(ctx, artistID)
}

func (s *CommissionService) UpdateStatus(ctx context.Context, commissionID string, status domain.CommissionStatus, notes string) error {
	if !status.Valid() {
		return fmt.Errorf("%w: unknown commission status %q", domain.ErrValidation, status)
	}
	return s.commissions.UpdateStatus(ctx, commissionID, status, notes, s.now())
}

func (s *CommissionService) DeleteCommission(ctx context.Context, commissionID string) error {
	return s.commissions.Delete(ctx, commissionID)
}

// GetStats counts commissions per status; only Completed ones carry value.
func (s *CommissionService) GetStats(ctx context.Context, artistID string) (*domain.CommissionStats, error) {
	commissions, err := s.ListByArtist(ctx, artistID)
	if err != nil {
		return nil, err
	}

	stats := &domain.CommissionStats{Total: len(commissions)}
	for _, commission := range commissions {
		switch commission.Status {
		case domain.CommissionPending:
			stats.Pending++
		case domain.CommissionAccepted:
			stats.Accepted++
		case domain.CommissionInProgress:
			stats.InProgress++
		case domain.CommissionCompleted:
			stats.Completed++
			stats.TotalValue += commission.Budget
		case domain.CommissionRejected:
			stats.Rejected++
		}
	}

	return stats, nil
}
