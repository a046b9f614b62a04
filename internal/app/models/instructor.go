package models

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/vdab/fietsen/internal/pkg/apperrors"
)

// SalaryScale is the number of fraction digits of the persisted salary column
const SalaryScale = 2

// Instructor (docent) belongs to exactly one campus, set at construction.
// Nicknames and responsibilities behave as sets; responsibility links are mirrored
// on the Responsibility side by AddResponsibility/RemoveResponsibility.
type Instructor struct {
	ID int64

	firstName string
	lastName  string
	salary    decimal.Decimal
	email     string
	gender    Gender
	campus    *Campus

	nicknames        map[string]struct{}
	responsibilities map[string]*Responsibility
}

// NewInstructor creates an instructor that has not been persisted yet and puts it
// on the roster of campus.
func NewInstructor(firstName, lastName string, salary decimal.Decimal, email string, gender Gender, campus *Campus) (*Instructor, error) {
	switch {
	case strings.TrimSpace(firstName) == "":
		return nil, apperrors.NewValidationError("first name cannot be empty")
	case strings.TrimSpace(lastName) == "":
		return nil, apperrors.NewValidationError("last name cannot be empty")
	case salary.IsNegative():
		return nil, apperrors.NewValidationError("salary cannot be negative")
	case !strings.Contains(email, "@"):
		return nil, apperrors.NewValidationError("invalid email address %q", email)
	case !gender.Valid():
		return nil, apperrors.NewValidationError("unknown gender %q", gender)
	case campus == nil:
		return nil, apperrors.NewValidationError("an instructor needs a campus")
	}
	return RestoreInstructor(0, firstName, lastName, salary, email, gender, campus), nil
}

// RestoreInstructor rebuilds a persisted instructor without validation
func RestoreInstructor(id int64, firstName, lastName string, salary decimal.Decimal, email string, gender Gender, campus *Campus) *Instructor {
	i := &Instructor{
		ID:               id,
		firstName:        firstName,
		lastName:         lastName,
		salary:           salary,
		email:            email,
		gender:           gender,
		campus:           campus,
		nicknames:        make(map[string]struct{}),
		responsibilities: make(map[string]*Responsibility),
	}
	campus.attach(i)
	return i
}

func (i *Instructor) FirstName() string       { return i.firstName }
func (i *Instructor) LastName() string        { return i.lastName }
func (i *Instructor) Salary() decimal.Decimal { return i.salary }
func (i *Instructor) Email() string           { return i.email }
func (i *Instructor) Gender() Gender          { return i.gender }
func (i *Instructor) Campus() *Campus         { return i.campus }

// key is the set identity of an instructor: its e-mail address, case-insensitive
func (i *Instructor) key() string {
	return NormalizeEmail(i.email)
}

// NormalizeEmail is the comparison key of an e-mail address, matching the
// unique index on lower(emailadres)
func NormalizeEmail(email string) string {
	return strings.ToLower(email)
}

// Equal reports whether both instructors have the same e-mail address, ignoring case
func (i *Instructor) Equal(other *Instructor) bool {
	return other != nil && i.key() == other.key()
}

// RaisedSalary applies a percentage raise to salary with decimal arithmetic and
// rounds half away from zero to SalaryScale, the way the NUMERIC column stores it.
func RaisedSalary(salary, percentage decimal.Decimal) decimal.Decimal {
	return salary.Add(salary.Mul(percentage).Shift(-2)).Round(SalaryScale)
}

// RaiseSalary multiplies the salary by (1 + percentage/100).
// No bounds are checked here; storage rejects salaries it cannot hold.
func (i *Instructor) RaiseSalary(percentage decimal.Decimal) {
	i.salary = RaisedSalary(i.salary, percentage)
}

// ResolveCampus replaces a campus reference by the loaded campus with the same id
func (i *Instructor) ResolveCampus(campus *Campus) error {
	if campus == nil || campus.ID != i.campus.ID {
		return apperrors.NewValidationError("campus %d cannot replace campus %d", campusID(campus), i.campus.ID)
	}
	if campus == i.campus {
		return nil
	}
	i.campus.detach(i)
	i.campus = campus
	campus.attach(i)
	return nil
}

func campusID(c *Campus) int64 {
	if c == nil {
		return 0
	}
	return c.ID
}

// AddNickname returns true when the nickname was not present yet
func (i *Instructor) AddNickname(nickname string) bool {
	if _, ok := i.nicknames[nickname]; ok {
		return false
	}
	i.nicknames[nickname] = struct{}{}
	return true
}

// RemoveNickname returns true when the nickname was present
func (i *Instructor) RemoveNickname(nickname string) bool {
	if _, ok := i.nicknames[nickname]; !ok {
		return false
	}
	delete(i.nicknames, nickname)
	return true
}

// HasNickname reports whether the instructor carries nickname
func (i *Instructor) HasNickname(nickname string) bool {
	_, ok := i.nicknames[nickname]
	return ok
}

// Nicknames returns the nicknames in sorted order
func (i *Instructor) Nicknames() []string {
	out := make([]string, 0, len(i.nicknames))
	for n := range i.nicknames {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// HasResponsibility reports whether a responsibility equal to r is held
func (i *Instructor) HasResponsibility(r *Responsibility) bool {
	if r == nil {
		return false
	}
	_, ok := i.responsibilities[r.Key()]
	return ok
}

// Responsibilities returns the held responsibilities sorted by normalized name
func (i *Instructor) Responsibilities() []*Responsibility {
	out := make([]*Responsibility, 0, len(i.responsibilities))
	for _, r := range i.responsibilities {
		out = append(out, r)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Key() < out[b].Key() })
	return out
}

// AddResponsibility links the instructor and r on both sides.
// It returns false, leaving both sides untouched, when the instructor already holds a
// responsibility equal to r or r already lists an instructor equal to this one.
// Links therefore always pair exactly one instance on each side.
func (i *Instructor) AddResponsibility(r *Responsibility) bool {
	if r == nil || i.HasResponsibility(r) || r.HasInstructor(i) {
		return false
	}
	i.responsibilities[r.Key()] = r
	r.instructors[i.key()] = i
	return true
}

// RemoveResponsibility unlinks the instructor and the held responsibility equal to r
// on both sides. It returns true when such a responsibility was held; removing an
// absent link is a no-op.
func (i *Instructor) RemoveResponsibility(r *Responsibility) bool {
	if r == nil {
		return false
	}
	stored, held := i.responsibilities[r.Key()]
	if !held {
		return false
	}
	delete(i.responsibilities, stored.Key())
	if stored.instructors[i.key()] == i {
		delete(stored.instructors, i.key())
	}
	return true
}

// Detach removes the instructor from its campus roster and from every responsibility.
// Call it before deleting the instructor so no loaded entity keeps referring to it.
func (i *Instructor) Detach() {
	for _, r := range i.Responsibilities() {
		i.RemoveResponsibility(r)
	}
	i.campus.detach(i)
}
