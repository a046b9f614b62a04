package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/vdab/fietsen/internal/app/models"
	"github.com/vdab/fietsen/internal/app/repositories"
	"github.com/vdab/fietsen/internal/pkg/apperrors"
)

// ResponsibilityService defines the interface for responsibility-related operations
type ResponsibilityService interface {
	// Create fails with apperrors.ErrConflict when a responsibility with the same name,
	// ignoring case, already exists
	Create(ctx context.Context, name string) (*models.Responsibility, error)
	Get(ctx context.Context, id int64) (*models.Responsibility, error)
	// GetByName matches case-insensitively
	GetByName(ctx context.Context, name string) (*models.Responsibility, error)
}

// responsibilityServiceImpl implements the ResponsibilityService interface
type responsibilityServiceImpl struct {
	repos *repositories.Repositories
}

// NewResponsibilityService creates a new responsibility service instance
func NewResponsibilityService(repos *repositories.Repositories) ResponsibilityService {
	return &responsibilityServiceImpl{repos: repos}
}

func (s *responsibilityServiceImpl) Create(ctx context.Context, name string) (*models.Responsibility, error) {
	responsibility, err := models.NewResponsibility(name)
	if err != nil {
		return nil, err
	}

	err = s.repos.TxManager.WithTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.repos.ResponsibilityRepository.FindByName(ctx, name)
		if err != nil {
			return fmt.Errorf("error checking responsibility name: %w", err)
		}
		if existing != nil {
			return apperrors.NewConflictError(fmt.Sprintf("responsibility %q already exists", existing.Name()))
		}
		return s.repos.ResponsibilityRepository.Create(ctx, responsibility)
	})
	if errors.Is(err, apperrors.ErrConstraintViolation) {
		return nil, apperrors.NewConflictError(fmt.Sprintf("responsibility %q already exists", name))
	}
	if err != nil {
		return nil, err
	}
	return responsibility, nil
}

func (s *responsibilityServiceImpl) Get(ctx context.Context, id int64) (*models.Responsibility, error) {
	if err := validateID(apperrors.EntityResponsibility, id); err != nil {
		return nil, err
	}

	responsibility, err := s.repos.ResponsibilityRepository.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error getting responsibility: %w", err)
	}
	if responsibility == nil {
		return nil, apperrors.NewEntityNotFoundError(apperrors.EntityResponsibility, id)
	}
	return responsibility, nil
}

func (s *responsibilityServiceImpl) GetByName(ctx context.Context, name string) (*models.Responsibility, error) {
	responsibility, err := s.repos.ResponsibilityRepository.FindByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("error getting responsibility: %w", err)
	}
	if responsibility == nil {
		return nil, &apperrors.CustomError{
			Err:     apperrors.ErrResourceNotFound,
			Message: fmt.Sprintf("responsibility %q not found", name),
			Code:    "ENTITY_NOT_FOUND",
		}
	}
	return responsibility, nil
}
