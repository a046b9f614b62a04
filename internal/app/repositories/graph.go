package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/vdab/fietsen/internal/app/models"
	"github.com/vdab/fietsen/internal/db"
	"github.com/vdab/fietsen/internal/pkg/logger"
)

var (
	instructorColumns = []string{"i.id", "i.voornaam", "i.achternaam", "i.wedde", "i.emailadres", "i.geslacht", "i.campusid"}
	campusColumns     = []string{"c.id", "c.name", "c.straat", "c.huisnr", "c.postcode", "c.gemeente"}
)

func newStatementBuilder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// instructorRow is one instructors row before it is attached to a campus
type instructorRow struct {
	id        int64
	firstName string
	lastName  string
	salary    decimal.Decimal
	email     string
	gender    string
	campusID  int64
}

func (r *instructorRow) dest() []any {
	return []any{&r.id, &r.firstName, &r.lastName, &r.salary, &r.email, &r.gender, &r.campusID}
}

func (r *instructorRow) restore(campus *models.Campus) *models.Instructor {
	return models.RestoreInstructor(r.id, r.firstName, r.lastName, r.salary, r.email, models.Gender(r.gender), campus)
}

// campusRow scans the campus columns
type campusRow struct {
	id      int64
	name    string
	address models.Address
}

func (r *campusRow) dest() []any {
	return []any{&r.id, &r.name, &r.address.Street, &r.address.HouseNumber, &r.address.PostalCode, &r.address.Municipality}
}

// campusSet keeps one *Campus per id within a result so the rosters stay complete
type campusSet map[int64]*models.Campus

func (s campusSet) loaded(row campusRow) *models.Campus {
	if c, ok := s[row.id]; ok {
		return c
	}
	c := models.RestoreCampus(row.id, row.name, row.address)
	s[row.id] = c
	return c
}

func (s campusSet) reference(id int64) *models.Campus {
	if c, ok := s[id]; ok {
		return c
	}
	c := models.CampusReference(id)
	s[id] = c
	return c
}

// loadCollections fills nicknames and responsibilities of instructors with two queries,
// whatever the number of instructors. Responsibilities are shared per id.
func loadCollections(ctx context.Context, q db.Querier, sb squirrel.StatementBuilderType, instructors []*models.Instructor) error {
	if len(instructors) == 0 {
		return nil
	}
	byID := make(map[int64]*models.Instructor, len(instructors))
	ids := make([]int64, 0, len(instructors))
	for _, i := range instructors {
		byID[i.ID] = i
		ids = append(ids, i.ID)
	}

	sql, args, err := sb.Select("instructorid", "bijnaam").
		From("instructor_nicknames").
		Where(squirrel.Eq{"instructorid": ids}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build nicknames query: %w", err)
	}
	err = forEachRow(ctx, q, sql, args, func(rows pgx.Rows) error {
		var instructorID int64
		var nickname string
		if err := rows.Scan(&instructorID, &nickname); err != nil {
			return err
		}
		byID[instructorID].AddNickname(nickname)
		return nil
	})
	if err != nil {
		return fmt.Errorf("error loading nicknames: %w", err)
	}

	sql, args, err = sb.Select("ir.instructorid", "r.id", "r.naam").
		From("instructor_responsibilities ir").
		Join("responsibilities r ON r.id = ir.responsibilityid").
		Where(squirrel.Eq{"ir.instructorid": ids}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build responsibilities query: %w", err)
	}
	responsibilities := make(map[int64]*models.Responsibility)
	err = forEachRow(ctx, q, sql, args, func(rows pgx.Rows) error {
		var instructorID, responsibilityID int64
		var name string
		if err := rows.Scan(&instructorID, &responsibilityID, &name); err != nil {
			return err
		}
		r, ok := responsibilities[responsibilityID]
		if !ok {
			r = models.RestoreResponsibility(responsibilityID, name)
			responsibilities[responsibilityID] = r
		}
		byID[instructorID].AddResponsibility(r)
		return nil
	})
	if err != nil {
		return fmt.Errorf("error loading responsibilities: %w", err)
	}
	return nil
}

// forEachRow runs a query and hands every row to scan
func forEachRow(ctx context.Context, q db.Querier, sql string, args []any, scan func(pgx.Rows) error) error {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("sql", sql).Msg("Error executing query")
		return err
	}
	defer rows.Close()

	for rows.Next() {
		if err := scan(rows); err != nil {
			logger.Error().Err(err).Str("sql", sql).Msg("Error scanning row")
			return err
		}
	}
	return rows.Err()
}
