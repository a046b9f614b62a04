// Package models holds the campus/instructor/responsibility domain and keeps the
// associations between them consistent on every mutation.
package models

import (
	"strings"

	"github.com/vdab/fietsen/internal/pkg/apperrors"
)

// Gender defines the instructor gender as stored in the geslacht column
type Gender string

const (
	GenderMan   Gender = "MAN"
	GenderWoman Gender = "WOMAN"
)

// Valid reports whether g is one of the known genders
func (g Gender) Valid() bool {
	return g == GenderMan || g == GenderWoman
}

// ParseGender parses a gender case-insensitively
func ParseGender(s string) (Gender, error) {
	g := Gender(strings.ToUpper(strings.TrimSpace(s)))
	if !g.Valid() {
		return "", apperrors.NewValidationError("unknown gender %q", s)
	}
	return g, nil
}

// UnmarshalText lets Gender be decoded from JSON and query strings
func (g *Gender) UnmarshalText(text []byte) error {
	parsed, err := ParseGender(string(text))
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}
