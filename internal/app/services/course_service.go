package services

import (
	"context"
	"time"

	"github.com/vdab/fietsen/internal/app/models"
	"github.com/vdab/fietsen/internal/app/repositories"
)

// CourseService defines the interface for course-related operations
type CourseService interface {
	Create(ctx context.Context, name string) (*models.Course, error)
	CreateGroupCourse(ctx context.Context, name string, from, to time.Time) (*models.GroupCourse, error)
	List(ctx context.Context) ([]*models.Course, error)
	ListGroupCourses(ctx context.Context) ([]*models.GroupCourse, error)
}

// courseServiceImpl implements the CourseService interface
type courseServiceImpl struct {
	repos *repositories.Repositories
}

// NewCourseService creates a new course service instance
func NewCourseService(repos *repositories.Repositories) CourseService {
	return &courseServiceImpl{repos: repos}
}

func (s *courseServiceImpl) Create(ctx context.Context, name string) (*models.Course, error) {
	course, err := models.NewCourse(name)
	if err != nil {
		return nil, err
	}
	if err := s.repos.CourseRepository.Create(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *courseServiceImpl) CreateGroupCourse(ctx context.Context, name string, from, to time.Time) (*models.GroupCourse, error) {
	course, err := models.NewGroupCourse(name, from, to)
	if err != nil {
		return nil, err
	}
	if err := s.repos.CourseRepository.CreateGroupCourse(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *courseServiceImpl) List(ctx context.Context) ([]*models.Course, error) {
	return s.repos.CourseRepository.FindAll(ctx)
}

func (s *courseServiceImpl) ListGroupCourses(ctx context.Context) ([]*models.GroupCourse, error) {
	return s.repos.CourseRepository.FindGroupCourses(ctx)
}
