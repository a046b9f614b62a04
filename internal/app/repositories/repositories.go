package repositories

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/vdab/fietsen/internal/app/models"
	"github.com/vdab/fietsen/internal/db"
)

// Lookups by id return (nil, nil) when nothing matches: absence is not an error.
// Every method runs on the transaction carried by ctx when there is one.

// InstructorRepository is the storage contract of the Instructor aggregate
type InstructorRepository interface {
	// Create stores a new instructor with its nicknames and responsibility links and assigns its id.
	// The campus and the linked responsibilities must already be persisted.
	Create(ctx context.Context, instructor *models.Instructor) error
	// FindByID loads the instructor with its campus, nicknames and responsibilities
	FindByID(ctx context.Context, id int64) (*models.Instructor, error)
	// FindByIDForUpdate is FindByID that also keeps concurrent writers of the instructor
	// waiting until the transaction in ctx ends. Use it for read-modify-write.
	FindByIDForUpdate(ctx context.Context, id int64) (*models.Instructor, error)
	// Update writes the scalar fields, the nickname set and the responsibility links
	Update(ctx context.Context, instructor *models.Instructor) error
	// Delete removes the instructor, its nicknames and links; absent ids are a no-op
	Delete(ctx context.Context, id int64) error
	// FindAll returns all instructors ordered by ascending salary. Campuses are
	// references (id only); use LoadCampus to load them.
	FindAll(ctx context.Context) ([]*models.Instructor, error)
	// FindBySalaryBetween returns the instructors with lo <= salary <= hi, campus loaded by the same query
	FindBySalaryBetween(ctx context.Context, lo, hi decimal.Decimal) ([]*models.Instructor, error)
	FindEmailAddresses(ctx context.Context) ([]string, error)
	FindIDAndEmails(ctx context.Context) ([]models.IDAndEmail, error)
	// FindMaxSalary returns apperrors.ErrNoInstructors when there are no instructors
	FindMaxSalary(ctx context.Context) (decimal.Decimal, error)
	FindCountPerSalary(ctx context.Context) ([]models.CountPerSalary, error)
	// BulkRaise raises every salary by percentage in one set-based statement and
	// returns the number of updated instructors
	BulkRaise(ctx context.Context, percentage decimal.Decimal) (int64, error)
	// LoadCampus replaces a campus reference by the loaded campus, for every
	// instructor sharing that reference
	LoadCampus(ctx context.Context, instructor *models.Instructor) (*models.Campus, error)
}

// CampusRepository is the storage contract of the Campus aggregate
type CampusRepository interface {
	Create(ctx context.Context, campus *models.Campus) error
	// FindByID loads the campus with its full instructor roster
	FindByID(ctx context.Context, id int64) (*models.Campus, error)
	// FindByName returns the campus without its roster
	FindByName(ctx context.Context, name string) (*models.Campus, error)
}

// ResponsibilityRepository stores responsibilities. Loaded responsibilities do not
// carry their instructor side; it is filled in by the instructors they get linked to.
type ResponsibilityRepository interface {
	Create(ctx context.Context, responsibility *models.Responsibility) error
	FindByID(ctx context.Context, id int64) (*models.Responsibility, error)
	// FindByName matches case-insensitively
	FindByName(ctx context.Context, name string) (*models.Responsibility, error)
}

// CourseRepository stores courses and group courses
type CourseRepository interface {
	Create(ctx context.Context, course *models.Course) error
	CreateGroupCourse(ctx context.Context, course *models.GroupCourse) error
	// FindAll returns every course, group courses included, ordered by name
	FindAll(ctx context.Context) ([]*models.Course, error)
	FindGroupCourses(ctx context.Context) ([]*models.GroupCourse, error)
}

// Repositories holds all the repository instances and the transaction manager they share
type Repositories struct {
	InstructorRepository     InstructorRepository
	CampusRepository         CampusRepository
	ResponsibilityRepository ResponsibilityRepository
	CourseRepository         CourseRepository
	TxManager                db.TxManager
}

// NewRepositories initializes the PostgreSQL repositories
func NewRepositories(database *db.PostgresDB) *Repositories {
	return &Repositories{
		InstructorRepository:     NewInstructorRepository(database),
		CampusRepository:         NewCampusRepository(database),
		ResponsibilityRepository: NewResponsibilityRepository(database),
		CourseRepository:         NewCourseRepository(database),
		TxManager:                database,
	}
}
