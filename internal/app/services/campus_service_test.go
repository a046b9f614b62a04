package services

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vdab/fietsen/internal/app/models"
	"github.com/vdab/fietsen/internal/app/repositories/memory"
	"github.com/vdab/fietsen/internal/pkg/apperrors"
	"github.com/vdab/fietsen/internal/pkg/metrics"
)

func newTestServices() *Services {
	return NewServices(memory.NewRepositories(), metrics.New())
}

func TestCampusService(t *testing.T) {
	ctx := context.Background()
	svc := newTestServices()

	t.Run("rejects an empty name", func(t *testing.T) {
		_, err := svc.CampusService.Create(ctx, " ", models.Address{})
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("get returns the roster", func(t *testing.T) {
		campus, err := svc.CampusService.Create(ctx, "HQ", models.NewAddress("Main", "1", "1000", "City"))
		require.NoError(t, err)

		instructor, err := svc.InstructorService.Create(ctx, CreateInstructorInput{
			FirstName: "Jo", LastName: "Doe", Salary: decimal.NewFromInt(1000),
			Email: "jo@x.be", Gender: models.GenderMan, CampusID: campus.ID,
		})
		require.NoError(t, err)

		found, err := svc.CampusService.Get(ctx, campus.ID)
		require.NoError(t, err)
		assert.Equal(t, models.NewAddress("Main", "1", "1000", "City"), found.Address)
		require.Len(t, found.Instructors(), 1)
		member := found.Instructors()[0]
		assert.Equal(t, instructor.ID, member.ID)
		assert.Same(t, found, member.Campus())
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := svc.CampusService.Get(ctx, 999)
		assert.True(t, apperrors.IsEntityNotFound(err, apperrors.EntityCampus))
	})
}

func TestResponsibilityService(t *testing.T) {
	ctx := context.Background()
	svc := newTestServices()

	created, err := svc.ResponsibilityService.Create(ctx, "Safety")
	require.NoError(t, err)
	assert.Positive(t, created.ID)

	t.Run("names are unique ignoring case", func(t *testing.T) {
		_, err := svc.ResponsibilityService.Create(ctx, "SAFETY")
		assert.ErrorIs(t, err, apperrors.ErrConflict)
	})

	t.Run("get by id and by name", func(t *testing.T) {
		byID, err := svc.ResponsibilityService.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Safety", byID.Name())

		byName, err := svc.ResponsibilityService.GetByName(ctx, "safety")
		require.NoError(t, err)
		assert.Equal(t, created.ID, byName.ID)
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := svc.ResponsibilityService.Get(ctx, 999)
		assert.True(t, apperrors.IsEntityNotFound(err, apperrors.EntityResponsibility))

		_, err = svc.ResponsibilityService.GetByName(ctx, "Cooking")
		assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
	})

	t.Run("empty name", func(t *testing.T) {
		_, err := svc.ResponsibilityService.Create(ctx, "")
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})
}

func TestCourseService(t *testing.T) {
	ctx := context.Background()
	svc := newTestServices()

	_, err := svc.CourseService.Create(ctx, "Wiskunde")
	require.NoError(t, err)

	from := time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)
	_, err = svc.CourseService.CreateGroupCourse(ctx, "Boekhouden", from, from.AddDate(0, 0, 14))
	require.NoError(t, err)

	_, err = svc.CourseService.CreateGroupCourse(ctx, "Backwards", from, from.AddDate(0, 0, -1))
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	courses, err := svc.CourseService.List(ctx)
	require.NoError(t, err)
	assert.Len(t, courses, 2)

	groups, err := svc.CourseService.ListGroupCourses(ctx)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "Boekhouden", groups[0].Name)
}
