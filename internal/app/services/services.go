// Package services holds the application services. Each mutating operation runs
// its repository reads, the domain mutation and the flush inside one transaction.
package services

import (
	"context"
	"fmt"

	"github.com/vdab/fietsen/internal/app/repositories"
	"github.com/vdab/fietsen/internal/pkg/apperrors"
	"github.com/vdab/fietsen/internal/pkg/metrics"
)

// Services groups the application services
type Services struct {
	InstructorService     InstructorService
	CampusService         CampusService
	ResponsibilityService ResponsibilityService
	CourseService         CourseService
}

// NewServices creates every service on the given repositories
func NewServices(repos *repositories.Repositories, m *metrics.Metrics) *Services {
	return &Services{
		InstructorService:     NewInstructorService(repos, m),
		CampusService:         NewCampusService(repos),
		ResponsibilityService: NewResponsibilityService(repos),
		CourseService:         NewCourseService(repos),
	}
}

// validateID validates an entity id
func validateID(entity string, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: %s ID must be positive", apperrors.ErrValidationFailed, entity)
	}
	return nil
}

// inTx runs fn in a transaction and hands its result back
func inTx[T any](ctx context.Context, repos *repositories.Repositories, fn func(ctx context.Context) (T, error)) (T, error) {
	var result T
	err := repos.TxManager.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		result, err = fn(ctx)
		return err
	})
	return result, err
}
