package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/vdab/fietsen/internal/app/models"
	"github.com/vdab/fietsen/internal/pkg/apperrors"
)

// InstructorRepository is the in-memory repositories.InstructorRepository
type InstructorRepository struct {
	store *Store
}

func (r *InstructorRepository) Create(ctx context.Context, instructor *models.Instructor) error {
	if instructor.ID != 0 {
		return apperrors.NewValidationError("instructor %d is already persisted", instructor.ID)
	}
	if instructor.Campus().ID <= 0 {
		return apperrors.NewValidationError("campus must be persisted before its instructors")
	}

	return r.store.write(func(t *tables) error {
		id := t.id()
		if err := t.putInstructor(id, instructor); err != nil {
			return err
		}
		instructor.ID = id
		return nil
	})
}

func (r *InstructorRepository) FindByID(ctx context.Context, id int64) (*models.Instructor, error) {
	var instructor *models.Instructor
	r.store.read(func(t *tables) {
		if _, ok := t.instructors[id]; ok {
			instructor = newGraph(t).instructor(id, true)
		}
	})
	return instructor, nil
}

// FindByIDForUpdate needs no row lock: transactions on the store already run one at a time
func (r *InstructorRepository) FindByIDForUpdate(ctx context.Context, id int64) (*models.Instructor, error) {
	return r.FindByID(ctx, id)
}

func (r *InstructorRepository) Update(ctx context.Context, instructor *models.Instructor) error {
	return r.store.write(func(t *tables) error {
		if _, ok := t.instructors[instructor.ID]; !ok {
			return fmt.Errorf("%w: instructor %d", apperrors.ErrResourceNotFound, instructor.ID)
		}
		return t.putInstructor(instructor.ID, instructor)
	})
}

// putInstructor checks the row the way the schema constraints do and stores it
func (t *tables) putInstructor(id int64, instructor *models.Instructor) error {
	salary, err := storedSalary(instructor.Salary())
	if err != nil {
		return err
	}
	campusID := instructor.Campus().ID
	if _, ok := t.campuses[campusID]; !ok {
		return constraintError("campus %d does not exist", campusID)
	}
	for otherID, other := range t.instructors {
		if otherID != id && models.NormalizeEmail(other.email) == models.NormalizeEmail(instructor.Email()) {
			return constraintError("email %q is already in use", instructor.Email())
		}
	}

	record := instructorRecord{
		firstName: instructor.FirstName(),
		lastName:  instructor.LastName(),
		salary:    salary,
		email:     instructor.Email(),
		gender:    instructor.Gender(),
		campusID:  campusID,
		nicknames: instructor.Nicknames(),
	}
	for _, responsibility := range instructor.Responsibilities() {
		if responsibility.ID <= 0 {
			return apperrors.NewValidationError("responsibility %q must be persisted before it is linked", responsibility.Name())
		}
		if _, ok := t.responsibilities[responsibility.ID]; !ok {
			return constraintError("responsibility %d does not exist", responsibility.ID)
		}
		record.responsibilities = append(record.responsibilities, responsibility.ID)
	}
	t.instructors[id] = record
	return nil
}

func (r *InstructorRepository) Delete(ctx context.Context, id int64) error {
	return r.store.write(func(t *tables) error {
		delete(t.instructors, id)
		return nil
	})
}

func (r *InstructorRepository) FindAll(ctx context.Context) ([]*models.Instructor, error) {
	return r.find(func(instructorRecord) bool { return true }, false), nil
}

func (r *InstructorRepository) FindBySalaryBetween(ctx context.Context, lo, hi decimal.Decimal) ([]*models.Instructor, error) {
	return r.find(func(record instructorRecord) bool {
		return record.salary.GreaterThanOrEqual(lo) && record.salary.LessThanOrEqual(hi)
	}, true), nil
}

// find returns the matching instructors ordered by salary, then id
func (r *InstructorRepository) find(match func(instructorRecord) bool, loadCampus bool) []*models.Instructor {
	instructors := []*models.Instructor{}
	r.store.read(func(t *tables) {
		g := newGraph(t)
		for _, id := range t.instructorIDsBySalary() {
			if match(t.instructors[id]) {
				instructors = append(instructors, g.instructor(id, loadCampus))
			}
		}
	})
	return instructors
}

func (t *tables) instructorIDsBySalary() []int64 {
	ids := sortedKeys(t.instructors)
	sort.SliceStable(ids, func(a, b int) bool {
		return t.instructors[ids[a]].salary.LessThan(t.instructors[ids[b]].salary)
	})
	return ids
}

func (r *InstructorRepository) FindEmailAddresses(ctx context.Context) ([]string, error) {
	emails := []string{}
	r.store.read(func(t *tables) {
		for _, id := range sortedKeys(t.instructors) {
			emails = append(emails, t.instructors[id].email)
		}
	})
	return emails, nil
}

func (r *InstructorRepository) FindIDAndEmails(ctx context.Context) ([]models.IDAndEmail, error) {
	projections := []models.IDAndEmail{}
	r.store.read(func(t *tables) {
		for _, id := range sortedKeys(t.instructors) {
			projections = append(projections, models.IDAndEmail{ID: id, Email: t.instructors[id].email})
		}
	})
	return projections, nil
}

func (r *InstructorRepository) FindMaxSalary(ctx context.Context) (decimal.Decimal, error) {
	var highest decimal.NullDecimal
	r.store.read(func(t *tables) {
		for _, record := range t.instructors {
			if !highest.Valid || record.salary.GreaterThan(highest.Decimal) {
				highest = decimal.NullDecimal{Decimal: record.salary, Valid: true}
			}
		}
	})
	if !highest.Valid {
		return decimal.Zero, apperrors.ErrNoInstructors
	}
	return highest.Decimal, nil
}

func (r *InstructorRepository) FindCountPerSalary(ctx context.Context) ([]models.CountPerSalary, error) {
	counts := []models.CountPerSalary{}
	r.store.read(func(t *tables) {
		for _, id := range t.instructorIDsBySalary() {
			salary := t.instructors[id].salary
			if n := len(counts); n > 0 && counts[n-1].Salary.Equal(salary) {
				counts[n-1].Count++
				continue
			}
			counts = append(counts, models.CountPerSalary{Salary: salary, Count: 1})
		}
	})
	return counts, nil
}

// BulkRaise raises all salaries or, when one of them overflows, none
func (r *InstructorRepository) BulkRaise(ctx context.Context, percentage decimal.Decimal) (int64, error) {
	var updated int64
	err := r.store.write(func(t *tables) error {
		for id, record := range t.instructors {
			salary, err := storedSalary(models.RaisedSalary(record.salary, percentage))
			if err != nil {
				return err
			}
			record.salary = salary
			t.instructors[id] = record
			updated++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return updated, nil
}

func (r *InstructorRepository) LoadCampus(ctx context.Context, instructor *models.Instructor) (*models.Campus, error) {
	reference := instructor.Campus()
	if reference.Loaded() {
		return reference, nil
	}

	var campus *models.Campus
	r.store.read(func(t *tables) {
		if record, ok := t.campuses[reference.ID]; ok {
			campus = models.RestoreCampus(reference.ID, record.name, record.address)
		}
	})
	if campus == nil {
		return nil, fmt.Errorf("error loading campus %d: %w", reference.ID, apperrors.ErrResourceNotFound)
	}

	for _, sharing := range reference.Instructors() {
		if err := sharing.ResolveCampus(campus); err != nil {
			return nil, err
		}
	}
	return campus, nil
}
