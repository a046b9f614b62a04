package models

import (
	"strings"

	"github.com/vdab/fietsen/internal/pkg/apperrors"
)

// Campus is a training location. Its instructor roster is a view maintained by
// Instructor: an instructor joins the roster of the campus it is constructed with
// and leaves it on Detach. Campus never adds instructors itself.
type Campus struct {
	ID      int64
	Name    string
	Address Address

	loaded      bool
	instructors []*Instructor
}

// NewCampus creates a campus that has not been persisted yet
func NewCampus(name string, address Address) (*Campus, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.NewValidationError("campus name cannot be empty")
	}
	return &Campus{Name: name, Address: address, loaded: true}, nil
}

// RestoreCampus rebuilds a persisted campus
func RestoreCampus(id int64, name string, address Address) *Campus {
	return &Campus{ID: id, Name: name, Address: address, loaded: true}
}

// CampusReference returns a campus of which only the id is known.
// Name and Address stay empty until the campus is loaded.
func CampusReference(id int64) *Campus {
	return &Campus{ID: id}
}

// Loaded reports whether name and address were loaded
func (c *Campus) Loaded() bool {
	return c.loaded
}

// Instructors returns the roster. The slice is a copy.
func (c *Campus) Instructors() []*Instructor {
	out := make([]*Instructor, len(c.instructors))
	copy(out, c.instructors)
	return out
}

// HasInstructor reports whether i is on the roster
func (c *Campus) HasInstructor(i *Instructor) bool {
	return c.indexOf(i) >= 0
}

func (c *Campus) indexOf(i *Instructor) int {
	for idx, candidate := range c.instructors {
		if candidate == i {
			return idx
		}
	}
	return -1
}

func (c *Campus) attach(i *Instructor) {
	if c.indexOf(i) < 0 {
		c.instructors = append(c.instructors, i)
	}
}

func (c *Campus) detach(i *Instructor) {
	if idx := c.indexOf(i); idx >= 0 {
		c.instructors = append(c.instructors[:idx], c.instructors[idx+1:]...)
	}
}
