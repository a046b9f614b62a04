package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vdab/fietsen/internal/pkg/apperrors"
)

func TestGroupCourseDates(t *testing.T) {
	from := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	course, err := NewGroupCourse("Excel", from, from)
	require.NoError(t, err)
	assert.Equal(t, "Excel", course.Name)

	_, err = NewGroupCourse("Excel", from, from.AddDate(0, 0, -1))
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = NewGroupCourse("", from, from)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestParseGender(t *testing.T) {
	g, err := ParseGender(" woman ")
	require.NoError(t, err)
	assert.Equal(t, GenderWoman, g)

	_, err = ParseGender("other")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	var decoded Gender
	require.NoError(t, decoded.UnmarshalText([]byte("man")))
	assert.Equal(t, GenderMan, decoded)
}

func TestAddressIsStructurallyEqual(t *testing.T) {
	assert.Equal(t, NewAddress("Main", "1", "1000", "City"), NewAddress("Main", "1", "1000", "City"))
	assert.True(t, NewAddress("Main", "1", "1000", "City") == NewAddress("Main", "1", "1000", "City"))
	assert.False(t, NewAddress("Main", "1", "1000", "City") == NewAddress("Main", "2", "1000", "City"))
}
