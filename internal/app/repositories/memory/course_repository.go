package memory

import (
	"context"
	"sort"

	"github.com/vdab/fietsen/internal/app/models"
)

// CourseRepository is the in-memory repositories.CourseRepository
type CourseRepository struct {
	store *Store
}

func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	return r.store.write(func(t *tables) error {
		course.ID = t.id()
		t.courses[course.ID] = courseRecord{name: course.Name}
		return nil
	})
}

func (r *CourseRepository) CreateGroupCourse(ctx context.Context, course *models.GroupCourse) error {
	if course.To.Before(course.From) {
		return constraintError("group course %q ends before it starts", course.Name)
	}
	return r.store.write(func(t *tables) error {
		course.ID = t.id()
		t.courses[course.ID] = courseRecord{name: course.Name, group: true, from: course.From, to: course.To}
		return nil
	})
}

func (r *CourseRepository) FindAll(ctx context.Context) ([]*models.Course, error) {
	courses := []*models.Course{}
	r.store.read(func(t *tables) {
		for _, id := range sortedKeys(t.courses) {
			courses = append(courses, &models.Course{ID: id, Name: t.courses[id].name})
		}
	})
	sort.SliceStable(courses, func(a, b int) bool { return courses[a].Name < courses[b].Name })
	return courses, nil
}

func (r *CourseRepository) FindGroupCourses(ctx context.Context) ([]*models.GroupCourse, error) {
	courses := []*models.GroupCourse{}
	r.store.read(func(t *tables) {
		for _, id := range sortedKeys(t.courses) {
			if record := t.courses[id]; record.group {
				courses = append(courses, &models.GroupCourse{
					Course: models.Course{ID: id, Name: record.name},
					From:   record.from,
					To:     record.to,
				})
			}
		}
	})
	sort.SliceStable(courses, func(a, b int) bool { return courses[a].From.Before(courses[b].From) })
	return courses, nil
}
