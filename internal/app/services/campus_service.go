package services

import (
	"context"
	"fmt"

	"github.com/vdab/fietsen/internal/app/models"
	"github.com/vdab/fietsen/internal/app/repositories"
	"github.com/vdab/fietsen/internal/pkg/apperrors"
	"github.com/vdab/fietsen/internal/pkg/logger"
)

// CampusService defines the interface for campus-related operations
type CampusService interface {
	Create(ctx context.Context, name string, address models.Address) (*models.Campus, error)
	// Get returns the campus with its instructor roster
	Get(ctx context.Context, id int64) (*models.Campus, error)
}

// campusServiceImpl implements the CampusService interface
type campusServiceImpl struct {
	repos *repositories.Repositories
}

// NewCampusService creates a new campus service instance
func NewCampusService(repos *repositories.Repositories) CampusService {
	return &campusServiceImpl{repos: repos}
}

func (s *campusServiceImpl) Create(ctx context.Context, name string, address models.Address) (*models.Campus, error) {
	campus, err := models.NewCampus(name, address)
	if err != nil {
		return nil, err
	}

	err = s.repos.TxManager.WithTransaction(ctx, func(ctx context.Context) error {
		return s.repos.CampusRepository.Create(ctx, campus)
	})
	if err != nil {
		return nil, err
	}

	logger.Info().Int64("campusID", campus.ID).Str("name", campus.Name).Msg("Campus created")
	return campus, nil
}

func (s *campusServiceImpl) Get(ctx context.Context, id int64) (*models.Campus, error) {
	if err := validateID(apperrors.EntityCampus, id); err != nil {
		return nil, err
	}

	campus, err := s.repos.CampusRepository.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error getting campus: %w", err)
	}
	if campus == nil {
		return nil, apperrors.NewEntityNotFoundError(apperrors.EntityCampus, id)
	}
	return campus, nil
}
