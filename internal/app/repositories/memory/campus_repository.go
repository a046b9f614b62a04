package memory

import (
	"context"

	"github.com/vdab/fietsen/internal/app/models"
	"github.com/vdab/fietsen/internal/pkg/apperrors"
)

// CampusRepository is the in-memory repositories.CampusRepository
type CampusRepository struct {
	store *Store
}

func (r *CampusRepository) Create(ctx context.Context, campus *models.Campus) error {
	if campus.ID != 0 {
		return apperrors.NewValidationError("campus %d is already persisted", campus.ID)
	}
	return r.store.write(func(t *tables) error {
		campus.ID = t.id()
		t.campuses[campus.ID] = campusRecord{name: campus.Name, address: campus.Address}
		return nil
	})
}

// FindByID loads the campus with its roster ordered by instructor id
func (r *CampusRepository) FindByID(ctx context.Context, id int64) (*models.Campus, error) {
	var campus *models.Campus
	r.store.read(func(t *tables) {
		if _, ok := t.campuses[id]; !ok {
			return
		}
		g := newGraph(t)
		campus = g.campus(id, true)
		for _, instructorID := range sortedKeys(t.instructors) {
			if t.instructors[instructorID].campusID == id {
				g.instructor(instructorID, true)
			}
		}
	})
	return campus, nil
}

func (r *CampusRepository) FindByName(ctx context.Context, name string) (*models.Campus, error) {
	var campus *models.Campus
	r.store.read(func(t *tables) {
		for _, id := range sortedKeys(t.campuses) {
			if record := t.campuses[id]; record.name == name {
				campus = models.RestoreCampus(id, record.name, record.address)
				return
			}
		}
	})
	return campus, nil
}
