// Package memory implements the repository contracts on an in-process store.
// It keeps rows, not object graphs: every read materializes fresh entities the way
// the PostgreSQL repositories do, so services behave the same on both.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vdab/fietsen/internal/app/models"
	"github.com/vdab/fietsen/internal/app/repositories"
	"github.com/vdab/fietsen/internal/db"
	"github.com/vdab/fietsen/internal/pkg/apperrors"
)

// maxSalary is the first value that no longer fits NUMERIC(10,2)
var maxSalary = decimal.New(1, 8)

type campusRecord struct {
	name    string
	address models.Address
}

type instructorRecord struct {
	firstName        string
	lastName         string
	salary           decimal.Decimal
	email            string
	gender           models.Gender
	campusID         int64
	nicknames        []string
	responsibilities []int64
}

type courseRecord struct {
	name     string
	group    bool
	from, to time.Time
}

type tables struct {
	nextID           int64
	campuses         map[int64]campusRecord
	instructors      map[int64]instructorRecord
	responsibilities map[int64]string
	courses          map[int64]courseRecord
}

func newTables() tables {
	return tables{
		campuses:         make(map[int64]campusRecord),
		instructors:      make(map[int64]instructorRecord),
		responsibilities: make(map[int64]string),
		courses:          make(map[int64]courseRecord),
	}
}

func (t tables) clone() tables {
	c := newTables()
	c.nextID = t.nextID
	for id, r := range t.campuses {
		c.campuses[id] = r
	}
	for id, r := range t.instructors {
		r.nicknames = append([]string(nil), r.nicknames...)
		r.responsibilities = append([]int64(nil), r.responsibilities...)
		c.instructors[id] = r
	}
	for id, name := range t.responsibilities {
		c.responsibilities[id] = name
	}
	for id, course := range t.courses {
		c.courses[id] = course
	}
	return c
}

func (t *tables) id() int64 {
	t.nextID++
	return t.nextID
}

// Store is the shared state of the memory repositories. Transactions are
// serialized; a failed transaction restores the snapshot taken when it began.
type Store struct {
	mu   sync.Mutex
	txMu sync.Mutex
	data tables
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{data: newTables()}
}

type txKey struct{}

// WithTransaction implements db.TxManager. Nested calls join the outer transaction.
func (s *Store) WithTransaction(ctx context.Context, fn db.TransactionFn) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	snapshot := s.data.clone()
	s.mu.Unlock()

	committed := false
	defer func() {
		if !committed {
			s.mu.Lock()
			s.data = snapshot
			s.mu.Unlock()
		}
	}()

	if err := fn(context.WithValue(ctx, txKey{}, s)); err != nil {
		return err
	}
	committed = true
	return nil
}

func (s *Store) read(fn func(t *tables)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.data)
}

// write applies fn to a copy of the tables and keeps it only when fn succeeds,
// so a failing statement leaves no partial changes behind.
func (s *Store) write(fn func(t *tables) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	working := s.data.clone()
	if err := fn(&working); err != nil {
		return err
	}
	s.data = working
	return nil
}

// NewRepositories wires all memory repositories on one store
func NewRepositories() *repositories.Repositories {
	store := NewStore()
	return &repositories.Repositories{
		InstructorRepository:     &InstructorRepository{store: store},
		CampusRepository:         &CampusRepository{store: store},
		ResponsibilityRepository: &ResponsibilityRepository{store: store},
		CourseRepository:         &CourseRepository{store: store},
		TxManager:                store,
	}
}

func constraintError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", apperrors.ErrConstraintViolation, fmt.Sprintf(format, args...))
}

// storedSalary mimics the NUMERIC(10,2) column: rounding to two digits, overflow rejected
func storedSalary(salary decimal.Decimal) (decimal.Decimal, error) {
	rounded := salary.Round(models.SalaryScale)
	if rounded.Abs().GreaterThanOrEqual(maxSalary) {
		return decimal.Zero, fmt.Errorf("%w: %s", apperrors.ErrSalaryOverflow, rounded)
	}
	if rounded.IsNegative() {
		return decimal.Zero, constraintError("salary %s is negative", rounded)
	}
	return rounded, nil
}

func sortedKeys[V any](m map[int64]V) []int64 {
	ids := make([]int64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(a, b int) bool { return ids[a] < ids[b] })
	return ids
}
