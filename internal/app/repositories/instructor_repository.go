package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/vdab/fietsen/internal/app/models"
	"github.com/vdab/fietsen/internal/db"
	"github.com/vdab/fietsen/internal/pkg/apperrors"
	"github.com/vdab/fietsen/internal/pkg/dberrors"
	"github.com/vdab/fietsen/internal/pkg/logger"
)

// PostgresInstructorRepository handles instructor database operations
type PostgresInstructorRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewInstructorRepository creates a new PostgresInstructorRepository
func NewInstructorRepository(database *db.PostgresDB) *PostgresInstructorRepository {
	return &PostgresInstructorRepository{
		db: database,
		sb: newStatementBuilder(),
	}
}

// Create inserts the instructor row, its nicknames and its responsibility links in one transaction
func (r *PostgresInstructorRepository) Create(ctx context.Context, instructor *models.Instructor) error {
	if instructor.ID != 0 {
		return apperrors.NewValidationError("instructor %d is already persisted", instructor.ID)
	}
	if instructor.Campus().ID <= 0 {
		return apperrors.NewValidationError("campus must be persisted before its instructors")
	}

	err := r.db.WithTransaction(ctx, func(ctx context.Context) error {
		sql, args, err := r.sb.Insert("instructors").
			Columns("voornaam", "achternaam", "wedde", "emailadres", "geslacht", "campusid").
			Values(instructor.FirstName(), instructor.LastName(), instructor.Salary(),
				instructor.Email(), string(instructor.Gender()), instructor.Campus().ID).
			Suffix("RETURNING id").
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build create instructor query: %w", err)
		}

		if err := r.db.Conn(ctx).QueryRow(ctx, sql, args...).Scan(&instructor.ID); err != nil {
			logger.Error().Err(err).Str("email", instructor.Email()).Msg("Error executing create instructor query")
			return fmt.Errorf("error creating instructor: %w", dberrors.Classify(err))
		}

		return r.writeCollections(ctx, instructor)
	})
	if err != nil {
		instructor.ID = 0
		return err
	}

	logger.Info().Int64("instructorID", instructor.ID).Msg("Instructor created successfully")
	return nil
}

// FindByID retrieves an instructor by ID with campus, nicknames and responsibilities
func (r *PostgresInstructorRepository) FindByID(ctx context.Context, id int64) (*models.Instructor, error) {
	return r.findByID(ctx, id, "")
}

// FindByIDForUpdate is FindByID holding a row lock on the instructor until the
// surrounding transaction ends
func (r *PostgresInstructorRepository) FindByIDForUpdate(ctx context.Context, id int64) (*models.Instructor, error) {
	return r.findByID(ctx, id, "FOR UPDATE OF i")
}

func (r *PostgresInstructorRepository) findByID(ctx context.Context, id int64, lock string) (*models.Instructor, error) {
	query := r.sb.Select(append(append([]string{}, instructorColumns...), campusColumns...)...).
		From("instructors i").
		Join("campuses c ON c.id = i.campusid").
		Where(squirrel.Eq{"i.id": id})
	if lock != "" {
		query = query.Suffix(lock)
	}
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get instructor query: %w", err)
	}

	var instructor *models.Instructor
	err = r.db.WithTransaction(ctx, func(ctx context.Context) error {
		var row instructorRow
		var campus campusRow
		q := r.db.Conn(ctx)
		if err := q.QueryRow(ctx, sql, args...).Scan(append(row.dest(), campus.dest()...)...); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil
			}
			logger.Error().Err(err).Int64("instructorID", id).Msg("Error scanning instructor row")
			return fmt.Errorf("error getting instructor by ID: %w", err)
		}

		found := row.restore(campusSet{}.loaded(campus))
		if err := loadCollections(ctx, q, r.sb, []*models.Instructor{found}); err != nil {
			return err
		}
		instructor = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return instructor, nil
}

// Update flushes the instructor: scalar columns, nickname set and responsibility links
func (r *PostgresInstructorRepository) Update(ctx context.Context, instructor *models.Instructor) error {
	return r.db.WithTransaction(ctx, func(ctx context.Context) error {
		sql, args, err := r.sb.Update("instructors").
			SetMap(map[string]interface{}{
				"voornaam":   instructor.FirstName(),
				"achternaam": instructor.LastName(),
				"wedde":      instructor.Salary(),
				"emailadres": instructor.Email(),
				"geslacht":   string(instructor.Gender()),
			}).
			Where(squirrel.Eq{"id": instructor.ID}).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build update instructor query: %w", err)
		}

		cmdTag, err := r.db.Conn(ctx).Exec(ctx, sql, args...)
		if err != nil {
			logger.Error().Err(err).Int64("instructorID", instructor.ID).Msg("Error executing update instructor query")
			return fmt.Errorf("error updating instructor: %w", dberrors.Classify(err))
		}
		if cmdTag.RowsAffected() == 0 {
			return fmt.Errorf("%w: instructor %d", apperrors.ErrResourceNotFound, instructor.ID)
		}

		return r.writeCollections(ctx, instructor)
	})
}

// writeCollections replaces the stored nicknames and links by the in-memory sets
func (r *PostgresInstructorRepository) writeCollections(ctx context.Context, instructor *models.Instructor) error {
	q := r.db.Conn(ctx)

	statements := []squirrel.Sqlizer{
		r.sb.Delete("instructor_nicknames").Where(squirrel.Eq{"instructorid": instructor.ID}),
		r.sb.Delete("instructor_responsibilities").Where(squirrel.Eq{"instructorid": instructor.ID}),
	}

	if nicknames := instructor.Nicknames(); len(nicknames) > 0 {
		insert := r.sb.Insert("instructor_nicknames").Columns("instructorid", "bijnaam")
		for _, nickname := range nicknames {
			insert = insert.Values(instructor.ID, nickname)
		}
		statements = append(statements, insert)
	}

	if responsibilities := instructor.Responsibilities(); len(responsibilities) > 0 {
		insert := r.sb.Insert("instructor_responsibilities").Columns("instructorid", "responsibilityid")
		for _, responsibility := range responsibilities {
			if responsibility.ID <= 0 {
				return apperrors.NewValidationError("responsibility %q must be persisted before it is linked", responsibility.Name())
			}
			insert = insert.Values(instructor.ID, responsibility.ID)
		}
		statements = append(statements, insert)
	}

	for _, statement := range statements {
		sql, args, err := statement.ToSql()
		if err != nil {
			return fmt.Errorf("failed to build instructor collections query: %w", err)
		}
		if _, err := q.Exec(ctx, sql, args...); err != nil {
			logger.Error().Err(err).Int64("instructorID", instructor.ID).Msg("Error writing instructor collections")
			return fmt.Errorf("error writing instructor collections: %w", dberrors.Classify(err))
		}
	}
	return nil
}

// Delete deletes an instructor by ID. Nicknames and links go with it (ON DELETE CASCADE).
func (r *PostgresInstructorRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("instructors").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete instructor query: %w", err)
	}

	cmdTag, err := r.db.Conn(ctx).Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("instructorID", id).Msg("Error executing delete instructor query")
		return fmt.Errorf("error deleting instructor: %w", dberrors.Classify(err))
	}
	if cmdTag.RowsAffected() == 0 {
		logger.Debug().Int64("instructorID", id).Msg("Delete of unknown instructor ignored")
	}
	return nil
}

// FindAll retrieves all instructors by ascending salary
func (r *PostgresInstructorRepository) FindAll(ctx context.Context) ([]*models.Instructor, error) {
	query := r.sb.Select(instructorColumns...).
		From("instructors i").
		OrderBy("i.wedde ASC", "i.id ASC")

	campuses := campusSet{}
	return r.findInstructors(ctx, query, func(rows pgx.Rows) (*models.Instructor, error) {
		var row instructorRow
		if err := rows.Scan(row.dest()...); err != nil {
			return nil, err
		}
		return row.restore(campuses.reference(row.campusID)), nil
	})
}

// FindBySalaryBetween loads the campus in the same query, avoiding one query per instructor
func (r *PostgresInstructorRepository) FindBySalaryBetween(ctx context.Context, lo, hi decimal.Decimal) ([]*models.Instructor, error) {
	query := r.sb.Select(append(append([]string{}, instructorColumns...), campusColumns...)...).
		From("instructors i").
		Join("campuses c ON c.id = i.campusid").
		Where(squirrel.And{squirrel.GtOrEq{"i.wedde": lo}, squirrel.LtOrEq{"i.wedde": hi}}).
		OrderBy("i.wedde ASC", "i.id ASC")

	campuses := campusSet{}
	return r.findInstructors(ctx, query, func(rows pgx.Rows) (*models.Instructor, error) {
		var row instructorRow
		var campus campusRow
		if err := rows.Scan(append(row.dest(), campus.dest()...)...); err != nil {
			return nil, err
		}
		return row.restore(campuses.loaded(campus)), nil
	})
}

func (r *PostgresInstructorRepository) findInstructors(ctx context.Context, query squirrel.SelectBuilder, scan func(pgx.Rows) (*models.Instructor, error)) ([]*models.Instructor, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build instructors query: %w", err)
	}

	instructors := []*models.Instructor{}
	err = r.db.WithTransaction(ctx, func(ctx context.Context) error {
		q := r.db.Conn(ctx)
		err := forEachRow(ctx, q, sql, args, func(rows pgx.Rows) error {
			instructor, err := scan(rows)
			if err != nil {
				return err
			}
			instructors = append(instructors, instructor)
			return nil
		})
		if err != nil {
			return fmt.Errorf("error querying instructors: %w", err)
		}
		return loadCollections(ctx, q, r.sb, instructors)
	})
	if err != nil {
		return nil, err
	}
	return instructors, nil
}

// FindEmailAddresses projects the e-mail address of every instructor
func (r *PostgresInstructorRepository) FindEmailAddresses(ctx context.Context) ([]string, error) {
	sql, args, err := r.sb.Select("emailadres").From("instructors").OrderBy("id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build email addresses query: %w", err)
	}

	emails := []string{}
	err = forEachRow(ctx, r.db.Conn(ctx), sql, args, func(rows pgx.Rows) error {
		var email string
		if err := rows.Scan(&email); err != nil {
			return err
		}
		emails = append(emails, email)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error querying email addresses: %w", err)
	}
	return emails, nil
}

// FindIDAndEmails projects (id, email) pairs
func (r *PostgresInstructorRepository) FindIDAndEmails(ctx context.Context) ([]models.IDAndEmail, error) {
	sql, args, err := r.sb.Select("id", "emailadres").From("instructors").OrderBy("id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build id and email query: %w", err)
	}

	projections := []models.IDAndEmail{}
	err = forEachRow(ctx, r.db.Conn(ctx), sql, args, func(rows pgx.Rows) error {
		var p models.IDAndEmail
		if err := rows.Scan(&p.ID, &p.Email); err != nil {
			return err
		}
		projections = append(projections, p)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error querying id and email projections: %w", err)
	}
	return projections, nil
}

// FindMaxSalary returns the highest salary, or apperrors.ErrNoInstructors
func (r *PostgresInstructorRepository) FindMaxSalary(ctx context.Context) (decimal.Decimal, error) {
	sql, args, err := r.sb.Select("MAX(wedde)").From("instructors").ToSql()
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to build max salary query: %w", err)
	}

	var highest decimal.NullDecimal
	if err := r.db.Conn(ctx).QueryRow(ctx, sql, args...).Scan(&highest); err != nil {
		logger.Error().Err(err).Msg("Error executing max salary query")
		return decimal.Zero, fmt.Errorf("error getting max salary: %w", err)
	}
	if !highest.Valid {
		return decimal.Zero, apperrors.ErrNoInstructors
	}
	return highest.Decimal, nil
}

// FindCountPerSalary groups the instructors by salary
func (r *PostgresInstructorRepository) FindCountPerSalary(ctx context.Context) ([]models.CountPerSalary, error) {
	sql, args, err := r.sb.Select("wedde", "COUNT(*)").
		From("instructors").
		GroupBy("wedde").
		OrderBy("wedde").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build count per salary query: %w", err)
	}

	counts := []models.CountPerSalary{}
	err = forEachRow(ctx, r.db.Conn(ctx), sql, args, func(rows pgx.Rows) error {
		var c models.CountPerSalary
		if err := rows.Scan(&c.Salary, &c.Count); err != nil {
			return err
		}
		counts = append(counts, c)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error querying count per salary: %w", err)
	}
	return counts, nil
}

// BulkRaise is a single UPDATE over all rows: it either updates every salary or none
func (r *PostgresInstructorRepository) BulkRaise(ctx context.Context, percentage decimal.Decimal) (int64, error) {
	sql, args, err := r.sb.Update("instructors").
		Set("wedde", squirrel.Expr("wedde + wedde * ?::numeric / 100", percentage)).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build bulk raise query: %w", err)
	}

	cmdTag, err := r.db.Conn(ctx).Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("percentage", percentage.String()).Msg("Error executing bulk raise")
		return 0, fmt.Errorf("error raising salaries: %w", dberrors.Classify(err))
	}

	logger.Info().Str("percentage", percentage.String()).Int64("updated", cmdTag.RowsAffected()).Msg("Salaries raised")
	return cmdTag.RowsAffected(), nil
}

// LoadCampus loads the campus row of a campus reference
func (r *PostgresInstructorRepository) LoadCampus(ctx context.Context, instructor *models.Instructor) (*models.Campus, error) {
	reference := instructor.Campus()
	if reference.Loaded() {
		return reference, nil
	}

	sql, args, err := r.sb.Select(campusColumns...).
		From("campuses c").
		Where(squirrel.Eq{"c.id": reference.ID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build load campus query: %w", err)
	}

	var row campusRow
	if err := r.db.Conn(ctx).QueryRow(ctx, sql, args...).Scan(row.dest()...); err != nil {
		logger.Error().Err(err).Int64("campusID", reference.ID).Msg("Error loading campus")
		return nil, fmt.Errorf("error loading campus %d: %w", reference.ID, err)
	}

	campus := campusSet{}.loaded(row)
	for _, sharing := range reference.Instructors() {
		if err := sharing.ResolveCampus(campus); err != nil {
			return nil, err
		}
	}
	return campus, nil
}
