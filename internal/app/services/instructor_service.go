package services

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/vdab/fietsen/internal/app/models"
	"github.com/vdab/fietsen/internal/app/repositories"
	"github.com/vdab/fietsen/internal/pkg/apperrors"
	"github.com/vdab/fietsen/internal/pkg/logger"
	"github.com/vdab/fietsen/internal/pkg/metrics"
)

// CreateInstructorInput carries the fields of a new instructor
type CreateInstructorInput struct {
	FirstName string
	LastName  string
	Salary    decimal.Decimal
	Email     string
	Gender    models.Gender
	CampusID  int64
	Nicknames []string
}

// InstructorService defines the interface for instructor-related operations
type InstructorService interface {
	Create(ctx context.Context, input CreateInstructorInput) (*models.Instructor, error)
	// Get returns an EntityNotFound error when the instructor does not exist
	Get(ctx context.Context, id int64) (*models.Instructor, error)
	// Delete detaches the instructor from its campus and responsibilities and removes it.
	// Deleting an unknown id is a no-op.
	Delete(ctx context.Context, id int64) error
	// RaiseSalary raises the salary of exactly one instructor by percentage
	RaiseSalary(ctx context.Context, id int64, percentage decimal.Decimal) (*models.Instructor, error)
	// BulkRaise raises every salary in one statement and returns the number of updated instructors
	BulkRaise(ctx context.Context, percentage decimal.Decimal) (int64, error)
	AddNickname(ctx context.Context, id int64, nickname string) (*models.Instructor, error)
	RemoveNickname(ctx context.Context, id int64, nickname string) (*models.Instructor, error)
	AssignResponsibility(ctx context.Context, id, responsibilityID int64) (*models.Instructor, error)
	UnassignResponsibility(ctx context.Context, id, responsibilityID int64) (*models.Instructor, error)
	// List returns all instructors by ascending salary with their campus loaded
	List(ctx context.Context) ([]*models.Instructor, error)
	ListBySalaryRange(ctx context.Context, lo, hi decimal.Decimal) ([]*models.Instructor, error)
	EmailAddresses(ctx context.Context) ([]string, error)
	IDAndEmails(ctx context.Context) ([]models.IDAndEmail, error)
	// MaxSalary returns apperrors.ErrNoInstructors when there are no instructors
	MaxSalary(ctx context.Context) (decimal.Decimal, error)
	CountPerSalary(ctx context.Context) ([]models.CountPerSalary, error)
}

// instructorServiceImpl implements the InstructorService interface
type instructorServiceImpl struct {
	repos   *repositories.Repositories
	metrics *metrics.Metrics
}

// NewInstructorService creates a new instructor service instance
func NewInstructorService(repos *repositories.Repositories, m *metrics.Metrics) InstructorService {
	return &instructorServiceImpl{
		repos:   repos,
		metrics: m,
	}
}

func (s *instructorServiceImpl) Create(ctx context.Context, input CreateInstructorInput) (*models.Instructor, error) {
	if err := validateID(apperrors.EntityCampus, input.CampusID); err != nil {
		return nil, err
	}

	instructor, err := inTx(ctx, s.repos, func(ctx context.Context) (*models.Instructor, error) {
		campus, err := s.repos.CampusRepository.FindByID(ctx, input.CampusID)
		if err != nil {
			return nil, fmt.Errorf("error getting campus: %w", err)
		}
		if campus == nil {
			return nil, apperrors.NewEntityNotFoundError(apperrors.EntityCampus, input.CampusID)
		}

		instructor, err := models.NewInstructor(input.FirstName, input.LastName, input.Salary, input.Email, input.Gender, campus)
		if err != nil {
			return nil, err
		}
		for _, nickname := range input.Nicknames {
			instructor.AddNickname(nickname)
		}

		if err := s.repos.InstructorRepository.Create(ctx, instructor); err != nil {
			return nil, err
		}
		return instructor, nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.IncrementInstructorsCreated()
	return instructor, nil
}

func (s *instructorServiceImpl) Get(ctx context.Context, id int64) (*models.Instructor, error) {
	if err := validateID(apperrors.EntityInstructor, id); err != nil {
		return nil, err
	}
	return s.find(ctx, id)
}

// find loads an instructor that must exist
func (s *instructorServiceImpl) find(ctx context.Context, id int64) (*models.Instructor, error) {
	instructor, err := s.repos.InstructorRepository.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error getting instructor: %w", err)
	}
	if instructor == nil {
		return nil, apperrors.NewEntityNotFoundError(apperrors.EntityInstructor, id)
	}
	return instructor, nil
}

func (s *instructorServiceImpl) Delete(ctx context.Context, id int64) error {
	if err := validateID(apperrors.EntityInstructor, id); err != nil {
		return err
	}

	deleted, err := inTx(ctx, s.repos, func(ctx context.Context) (bool, error) {
		instructor, err := s.repos.InstructorRepository.FindByID(ctx, id)
		if err != nil || instructor == nil {
			return false, err
		}
		instructor.Detach()
		if err := s.repos.InstructorRepository.Delete(ctx, id); err != nil {
			return false, err
		}
		return true, nil
	})
	if err != nil {
		return err
	}

	if deleted {
		s.metrics.IncrementInstructorsDeleted()
		logger.Info().Int64("instructorID", id).Msg("Instructor deleted")
	}
	return nil
}

// modify locks and loads the instructor, applies mutate and flushes the result in one transaction
func (s *instructorServiceImpl) modify(ctx context.Context, id int64, mutate func(ctx context.Context, instructor *models.Instructor) error) (*models.Instructor, error) {
	if err := validateID(apperrors.EntityInstructor, id); err != nil {
		return nil, err
	}

	return inTx(ctx, s.repos, func(ctx context.Context) (*models.Instructor, error) {
		instructor, err := s.repos.InstructorRepository.FindByIDForUpdate(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("error getting instructor: %w", err)
		}
		if instructor == nil {
			return nil, apperrors.NewEntityNotFoundError(apperrors.EntityInstructor, id)
		}
		if err := mutate(ctx, instructor); err != nil {
			return nil, err
		}
		if err := s.repos.InstructorRepository.Update(ctx, instructor); err != nil {
			return nil, err
		}
		return instructor, nil
	})
}

func (s *instructorServiceImpl) RaiseSalary(ctx context.Context, id int64, percentage decimal.Decimal) (*models.Instructor, error) {
	instructor, err := s.modify(ctx, id, func(_ context.Context, instructor *models.Instructor) error {
		instructor.RaiseSalary(percentage)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.IncrementSalaryRaises()
	logger.Info().Int64("instructorID", id).
		Str("percentage", percentage.String()).
		Str("salary", instructor.Salary().String()).
		Msg("Salary raised")
	return instructor, nil
}

func (s *instructorServiceImpl) BulkRaise(ctx context.Context, percentage decimal.Decimal) (int64, error) {
	updated, err := inTx(ctx, s.repos, func(ctx context.Context) (int64, error) {
		return s.repos.InstructorRepository.BulkRaise(ctx, percentage)
	})
	if err != nil {
		return 0, err
	}

	s.metrics.AddBulkRaisedSalaries(updated)
	return updated, nil
}

func (s *instructorServiceImpl) AddNickname(ctx context.Context, id int64, nickname string) (*models.Instructor, error) {
	if nickname == "" {
		return nil, apperrors.NewValidationError("nickname cannot be empty")
	}
	return s.modify(ctx, id, func(_ context.Context, instructor *models.Instructor) error {
		instructor.AddNickname(nickname)
		return nil
	})
}

func (s *instructorServiceImpl) RemoveNickname(ctx context.Context, id int64, nickname string) (*models.Instructor, error) {
	return s.modify(ctx, id, func(_ context.Context, instructor *models.Instructor) error {
		instructor.RemoveNickname(nickname)
		return nil
	})
}

func (s *instructorServiceImpl) AssignResponsibility(ctx context.Context, id, responsibilityID int64) (*models.Instructor, error) {
	return s.modify(ctx, id, func(ctx context.Context, instructor *models.Instructor) error {
		responsibility, err := s.findResponsibility(ctx, responsibilityID)
		if err != nil {
			return err
		}
		instructor.AddResponsibility(responsibility)
		return nil
	})
}

func (s *instructorServiceImpl) UnassignResponsibility(ctx context.Context, id, responsibilityID int64) (*models.Instructor, error) {
	return s.modify(ctx, id, func(ctx context.Context, instructor *models.Instructor) error {
		responsibility, err := s.findResponsibility(ctx, responsibilityID)
		if err != nil {
			return err
		}
		instructor.RemoveResponsibility(responsibility)
		return nil
	})
}

func (s *instructorServiceImpl) findResponsibility(ctx context.Context, id int64) (*models.Responsibility, error) {
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

// List loads the campus of every instructor explicitly; instructors of one campus share it
func (s *instructorServiceImpl) List(ctx context.Context) ([]*models.Instructor, error) {
	return inTx(ctx, s.repos, func(ctx context.Context) ([]*models.Instructor, error) {
		instructors, err := s.repos.InstructorRepository.FindAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("error listing instructors: %w", err)
		}
		for _, instructor := range instructors {
			if _, err := s.repos.InstructorRepository.LoadCampus(ctx, instructor); err != nil {
				return nil, err
			}
		}
		return instructors, nil
	})
}

func (s *instructorServiceImpl) ListBySalaryRange(ctx context.Context, lo, hi decimal.Decimal) ([]*models.Instructor, error) {
	if lo.GreaterThan(hi) {
		return nil, apperrors.NewValidationError("lower bound %s exceeds upper bound %s", lo, hi)
	}
	return s.repos.InstructorRepository.FindBySalaryBetween(ctx, lo, hi)
}

func (s *instructorServiceImpl) EmailAddresses(ctx context.Context) ([]string, error) {
	return s.repos.InstructorRepository.FindEmailAddresses(ctx)
}

func (s *instructorServiceImpl) IDAndEmails(ctx context.Context) ([]models.IDAndEmail, error) {
	return s.repos.InstructorRepository.FindIDAndEmails(ctx)
}

func (s *instructorServiceImpl) MaxSalary(ctx context.Context) (decimal.Decimal, error) {
	return s.repos.InstructorRepository.FindMaxSalary(ctx)
}

func (s *instructorServiceImpl) CountPerSalary(ctx context.Context) ([]models.CountPerSalary, error) {
	return s.repos.InstructorRepository.FindCountPerSalary(ctx)
}
