package memory

import (
	"context"

	"github.com/vdab/fietsen/internal/app/models"
	"github.com/vdab/fietsen/internal/pkg/apperrors"
)

// ResponsibilityRepository is the in-memory repositories.ResponsibilityRepository
type ResponsibilityRepository struct {
	store *Store
}

func (r *ResponsibilityRepository) Create(ctx context.Context, responsibility *models.Responsibility) error {
	if responsibility.ID != 0 {
		return apperrors.NewValidationError("responsibility %d is already persisted", responsibility.ID)
	}
	return r.store.write(func(t *tables) error {
		if t.responsibilityByName(responsibility.Name()) != 0 {
			return constraintError("responsibility %q already exists", responsibility.Name())
		}
		responsibility.ID = t.id()
		t.responsibilities[responsibility.ID] = responsibility.Name()
		return nil
	})
}

func (r *ResponsibilityRepository) FindByID(ctx context.Context, id int64) (*models.Responsibility, error) {
	var responsibility *models.Responsibility
	r.store.read(func(t *tables) {
		if name, ok := t.responsibilities[id]; ok {
			responsibility = models.RestoreResponsibility(id, name)
		}
	})
	return responsibility, nil
}

func (r *ResponsibilityRepository) FindByName(ctx context.Context, name string) (*models.Responsibility, error) {
	var responsibility *models.Responsibility
	r.store.read(func(t *tables) {
		if id := t.responsibilityByName(name); id != 0 {
			responsibility = models.RestoreResponsibility(id, t.responsibilities[id])
		}
	})
	return responsibility, nil
}

func (t *tables) responsibilityByName(name string) int64 {
	for id, stored := range t.responsibilities {
		if models.NormalizeName(stored) == models.NormalizeName(name) {
			return id
		}
	}
	return 0
}
