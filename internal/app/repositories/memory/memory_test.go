package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/vdab/fietsen/internal/app/models"
	"github.com/vdab/fietsen/internal/app/repositories"
	"github.com/vdab/fietsen/internal/pkg/apperrors"
)

type MemoryStoreSuite struct {
	suite.Suite
	repos  *repositories.Repositories
	ctx    context.Context
	campus *models.Campus
}

func TestMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(MemoryStoreSuite))
}

func (s *MemoryStoreSuite) SetupTest() {
	s.repos = NewRepositories()
	s.ctx = context.Background()

	campus, err := models.NewCampus("Brussel", models.NewAddress("Koningsstraat", "1", "1000", "Brussel"))
	s.Require().NoError(err)
	s.Require().NoError(s.repos.CampusRepository.Create(s.ctx, campus))
	s.campus = campus
}

func (s *MemoryStoreSuite) newInstructor(email, salary string) *models.Instructor {
	instructor, err := models.NewInstructor("Jan", "Peeters", decimal.RequireFromString(salary), email, models.GenderMan, s.campus)
	s.Require().NoError(err)
	s.Require().NoError(s.repos.InstructorRepository.Create(s.ctx, instructor))
	return instructor
}

func (s *MemoryStoreSuite) TestInstructorLookups() {
	s.Run("finds a created instructor with its campus loaded", func() {
		created := s.newInstructor("jan@example.com", "1000")
		s.NotZero(created.ID)

		found, err := s.repos.InstructorRepository.FindByID(s.ctx, created.ID)
		s.Require().NoError(err)
		s.Require().NotNil(found)
		s.True(found.Equal(created))
		s.True(found.Campus().Loaded())
		s.Equal("Brussel", found.Campus().Name)
	})

	s.Run("returns nil for an unknown id", func() {
		found, err := s.repos.InstructorRepository.FindByID(s.ctx, 9999)
		s.Require().NoError(err)
		s.Nil(found)
	})

	s.Run("rejects a second instructor with the same email in another case", func() {
		instructor, err := models.NewInstructor("Piet", "Peeters", decimal.NewFromInt(10), "JAN@example.com", models.GenderMan, s.campus)
		s.Require().NoError(err)

		err = s.repos.InstructorRepository.Create(s.ctx, instructor)
		s.ErrorIs(err, apperrors.ErrConstraintViolation)
		s.Zero(instructor.ID)
	})
}

func (s *MemoryStoreSuite) TestFindAllUsesCampusReferences() {
	first := s.newInstructor("a@example.com", "2000")
	second := s.newInstructor("b@example.com", "1000")

	all, err := s.repos.InstructorRepository.FindAll(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(all, 2)
	s.Equal(second.ID, all[0].ID)
	s.Equal(first.ID, all[1].ID)

	s.False(all[0].Campus().Loaded())
	s.Same(all[0].Campus(), all[1].Campus())

	campus, err := s.repos.InstructorRepository.LoadCampus(s.ctx, all[0])
	s.Require().NoError(err)
	s.True(campus.Loaded())
	s.Same(campus, all[0].Campus())
	s.Same(campus, all[1].Campus())
}

func (s *MemoryStoreSuite) TestUpdateFlushesCollections() {
	instructor := s.newInstructor("jan@example.com", "1000")

	responsibility, err := models.NewResponsibility("EHBO")
	s.Require().NoError(err)
	s.Require().NoError(s.repos.ResponsibilityRepository.Create(s.ctx, responsibility))

	instructor.AddNickname("Jantje")
	instructor.AddResponsibility(responsibility)
	s.Require().NoError(s.repos.InstructorRepository.Update(s.ctx, instructor))

	found, err := s.repos.InstructorRepository.FindByID(s.ctx, instructor.ID)
	s.Require().NoError(err)
	s.Equal([]string{"Jantje"}, found.Nicknames())
	s.Require().Len(found.Responsibilities(), 1)
	s.Equal("EHBO", found.Responsibilities()[0].Name())
	s.True(found.Responsibilities()[0].HasInstructor(found))
}

func (s *MemoryStoreSuite) TestUpdateUnknownInstructor() {
	instructor := models.RestoreInstructor(42, "Jan", "Peeters", decimal.NewFromInt(1), "x@example.com", models.GenderMan, s.campus)
	err := s.repos.InstructorRepository.Update(s.ctx, instructor)
	s.ErrorIs(err, apperrors.ErrResourceNotFound)
}

func (s *MemoryStoreSuite) TestAggregates() {
	s.Run("max salary of an empty set is an error", func() {
		_, err := s.repos.InstructorRepository.FindMaxSalary(s.ctx)
		s.ErrorIs(err, apperrors.ErrNoInstructors)
	})

	s.newInstructor("a@example.com", "1000")
	s.newInstructor("b@example.com", "2000")
	s.newInstructor("c@example.com", "1000")

	s.Run("max salary", func() {
		highest, err := s.repos.InstructorRepository.FindMaxSalary(s.ctx)
		s.Require().NoError(err)
		s.True(highest.Equal(decimal.NewFromInt(2000)))
	})

	s.Run("count per salary", func() {
		counts, err := s.repos.InstructorRepository.FindCountPerSalary(s.ctx)
		s.Require().NoError(err)
		s.Require().Len(counts, 2)
		s.True(counts[0].Salary.Equal(decimal.NewFromInt(1000)))
		s.EqualValues(2, counts[0].Count)
		s.EqualValues(1, counts[1].Count)
	})

	s.Run("salary range is inclusive", func() {
		found, err := s.repos.InstructorRepository.FindBySalaryBetween(s.ctx, decimal.NewFromInt(1000), decimal.NewFromInt(1500))
		s.Require().NoError(err)
		s.Len(found, 2)
		s.True(found[0].Campus().Loaded())
	})

	s.Run("email projections are ordered by id", func() {
		emails, err := s.repos.InstructorRepository.FindEmailAddresses(s.ctx)
		s.Require().NoError(err)
		s.Equal([]string{"a@example.com", "b@example.com", "c@example.com"}, emails)

		pairs, err := s.repos.InstructorRepository.FindIDAndEmails(s.ctx)
		s.Require().NoError(err)
		s.Len(pairs, 3)
		s.Equal("b@example.com", pairs[1].Email)
	})
}

func (s *MemoryStoreSuite) TestBulkRaise() {
	s.Run("raises every salary", func() {
		s.newInstructor("a@example.com", "1000")
		s.newInstructor("b@example.com", "2000")

		updated, err := s.repos.InstructorRepository.BulkRaise(s.ctx, decimal.NewFromInt(10))
		s.Require().NoError(err)
		s.EqualValues(2, updated)

		highest, err := s.repos.InstructorRepository.FindMaxSalary(s.ctx)
		s.Require().NoError(err)
		s.Equal("2200", highest.String())
	})

	s.Run("an overflow leaves every salary untouched", func() {
		_, err := s.repos.InstructorRepository.BulkRaise(s.ctx, decimal.NewFromInt(10000000))
		s.ErrorIs(err, apperrors.ErrSalaryOverflow)

		highest, err := s.repos.InstructorRepository.FindMaxSalary(s.ctx)
		s.Require().NoError(err)
		s.Equal("2200", highest.String())
	})
}

func (s *MemoryStoreSuite) TestTransactionRollback() {
	errBoom := errors.New("boom")

	err := s.repos.TxManager.WithTransaction(s.ctx, func(ctx context.Context) error {
		instructor, err := models.NewInstructor("Jan", "Peeters", decimal.NewFromInt(1), "jan@example.com", models.GenderMan, s.campus)
		s.Require().NoError(err)
		s.Require().NoError(s.repos.InstructorRepository.Create(ctx, instructor))
		return errBoom
	})
	s.ErrorIs(err, errBoom)

	emails, err := s.repos.InstructorRepository.FindEmailAddresses(s.ctx)
	s.Require().NoError(err)
	s.Empty(emails)
}

func (s *MemoryStoreSuite) TestCampusRoster() {
	first := s.newInstructor("a@example.com", "1000")
	second := s.newInstructor("b@example.com", "1000")

	campus, err := s.repos.CampusRepository.FindByID(s.ctx, s.campus.ID)
	s.Require().NoError(err)
	roster := campus.Instructors()
	s.Require().Len(roster, 2)
	s.Equal(first.ID, roster[0].ID)
	s.Equal(second.ID, roster[1].ID)
	s.Same(campus, roster[0].Campus())

	missing, err := s.repos.CampusRepository.FindByID(s.ctx, 9999)
	s.Require().NoError(err)
	s.Nil(missing)
}

func (s *MemoryStoreSuite) TestResponsibilityNames() {
	responsibility, err := models.NewResponsibility("Kok")
	s.Require().NoError(err)
	s.Require().NoError(s.repos.ResponsibilityRepository.Create(s.ctx, responsibility))

	found, err := s.repos.ResponsibilityRepository.FindByName(s.ctx, "KOK")
	s.Require().NoError(err)
	s.Require().NotNil(found)
	s.Equal(responsibility.ID, found.ID)
	s.Equal("Kok", found.Name())

	duplicate, err := models.NewResponsibility("kok")
	s.Require().NoError(err)
	s.ErrorIs(s.repos.ResponsibilityRepository.Create(s.ctx, duplicate), apperrors.ErrConstraintViolation)
}

func (s *MemoryStoreSuite) TestCourses() {
	course, err := models.NewCourse("Wiskunde")
	s.Require().NoError(err)
	s.Require().NoError(s.repos.CourseRepository.Create(s.ctx, course))

	from := time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC)
	group, err := models.NewGroupCourse("Boekhouden", from, from.AddDate(0, 3, 0))
	s.Require().NoError(err)
	s.Require().NoError(s.repos.CourseRepository.CreateGroupCourse(s.ctx, group))

	all, err := s.repos.CourseRepository.FindAll(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(all, 2)
	s.Equal("Boekhouden", all[0].Name)

	groups, err := s.repos.CourseRepository.FindGroupCourses(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(groups, 1)
	s.True(groups[0].From.Equal(from))
}
