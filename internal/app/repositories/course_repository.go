package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/vdab/fietsen/internal/app/models"
	"github.com/vdab/fietsen/internal/db"
	"github.com/vdab/fietsen/internal/pkg/dberrors"
)

// PostgresCourseRepository stores courses; a group course is a courses row plus a group_courses row
type PostgresCourseRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new PostgresCourseRepository
func NewCourseRepository(database *db.PostgresDB) *PostgresCourseRepository {
	return &PostgresCourseRepository{
		db: database,
		sb: newStatementBuilder(),
	}
}

func (r *PostgresCourseRepository) Create(ctx context.Context, course *models.Course) error {
	sql, args, err := r.sb.Insert("courses").
		Columns("name").
		Values(course.Name).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create course query: %w", err)
	}

	if err := r.db.Conn(ctx).QueryRow(ctx, sql, args...).Scan(&course.ID); err != nil {
		return fmt.Errorf("error creating course: %w", dberrors.Classify(err))
	}
	return nil
}

func (r *PostgresCourseRepository) CreateGroupCourse(ctx context.Context, course *models.GroupCourse) error {
	return r.db.WithTransaction(ctx, func(ctx context.Context) error {
		if err := r.Create(ctx, &course.Course); err != nil {
			return err
		}

		sql, args, err := r.sb.Insert("group_courses").
			Columns("id", "van", "tot").
			Values(course.ID, course.From, course.To).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build create group course query: %w", err)
		}

		if _, err := r.db.Conn(ctx).Exec(ctx, sql, args...); err != nil {
			course.ID = 0
			return fmt.Errorf("error creating group course: %w", dberrors.Classify(err))
		}
		return nil
	})
}

func (r *PostgresCourseRepository) FindAll(ctx context.Context) ([]*models.Course, error) {
	sql, args, err := r.sb.Select("id", "name").From("courses").OrderBy("name", "id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get courses query: %w", err)
	}

	courses := []*models.Course{}
	err = forEachRow(ctx, r.db.Conn(ctx), sql, args, func(rows pgx.Rows) error {
		course := &models.Course{}
		if err := rows.Scan(&course.ID, &course.Name); err != nil {
			return err
		}
		courses = append(courses, course)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error querying courses: %w", err)
	}
	return courses, nil
}

func (r *PostgresCourseRepository) FindGroupCourses(ctx context.Context) ([]*models.GroupCourse, error) {
	sql, args, err := r.sb.Select("c.id", "c.name", "g.van", "g.tot").
		From("group_courses g").
		Join("courses c ON c.id = g.id").
		OrderBy("g.van", "c.id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get group courses query: %w", err)
	}

	courses := []*models.GroupCourse{}
	err = forEachRow(ctx, r.db.Conn(ctx), sql, args, func(rows pgx.Rows) error {
		course := &models.GroupCourse{}
		if err := rows.Scan(&course.ID, &course.Name, &course.From, &course.To); err != nil {
			return err
		}
		courses = append(courses, course)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error querying group courses: %w", err)
	}
	return courses, nil
}
