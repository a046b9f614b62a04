package models

import (
	"sort"
	"strings"

	"github.com/vdab/fietsen/internal/pkg/apperrors"
)

// NormalizeName is the comparison key of a responsibility name.
// Equality, hashing and lookups all go through it.
func NormalizeName(name string) string {
	return strings.ToLower(name)
}

// Responsibility (verantwoordelijkheid) is a named role. Names are compared
// case-insensitively; the original casing is kept for display.
// Its instructor set mirrors Instructor.Responsibilities.
type Responsibility struct {
	ID int64

	name        string
	instructors map[string]*Instructor
}

// NewResponsibility creates a responsibility that has not been persisted yet
func NewResponsibility(name string) (*Responsibility, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.NewValidationError("responsibility name cannot be empty")
	}
	return RestoreResponsibility(0, name), nil
}

// RestoreResponsibility rebuilds a persisted responsibility
func RestoreResponsibility(id int64, name string) *Responsibility {
	return &Responsibility{ID: id, name: name, instructors: make(map[string]*Instructor)}
}

// Name returns the name with its original casing
func (r *Responsibility) Name() string {
	return r.name
}

// Key is the normalized name, usable as map key
func (r *Responsibility) Key() string {
	return NormalizeName(r.name)
}

// Equal compares names case-insensitively
func (r *Responsibility) Equal(other *Responsibility) bool {
	return other != nil && r.Key() == other.Key()
}

// HasInstructor reports whether an instructor equal to i is linked
func (r *Responsibility) HasInstructor(i *Instructor) bool {
	if i == nil {
		return false
	}
	_, ok := r.instructors[i.key()]
	return ok
}

// Instructors returns the linked instructors sorted by e-mail address
func (r *Responsibility) Instructors() []*Instructor {
	out := make([]*Instructor, 0, len(r.instructors))
	for _, i := range r.instructors {
		out = append(out, i)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].key() < out[b].key() })
	return out
}

// AddInstructor links i and the responsibility on both sides, with the same
// rules as Instructor.AddResponsibility.
func (r *Responsibility) AddInstructor(i *Instructor) bool {
	if i == nil {
		return false
	}
	return i.AddResponsibility(r)
}

// RemoveInstructor unlinks the linked instructor equal to i on both sides.
// It returns true when such an instructor was linked; removing an absent link is a no-op.
func (r *Responsibility) RemoveInstructor(i *Instructor) bool {
	if i == nil {
		return false
	}
	stored, linked := r.instructors[i.key()]
	if !linked {
		return false
	}
	if !stored.RemoveResponsibility(r) {
		delete(r.instructors, i.key())
	}
	return true
}
