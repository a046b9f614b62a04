package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/vdab/fietsen/internal/app/models"
	"github.com/vdab/fietsen/internal/db"
	"github.com/vdab/fietsen/internal/pkg/apperrors"
	"github.com/vdab/fietsen/internal/pkg/dberrors"
	"github.com/vdab/fietsen/internal/pkg/logger"
)

// PostgresCampusRepository handles campus database operations
type PostgresCampusRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewCampusRepository creates a new PostgresCampusRepository
func NewCampusRepository(database *db.PostgresDB) *PostgresCampusRepository {
	return &PostgresCampusRepository{
		db: database,
		sb: newStatementBuilder(),
	}
}

// Create creates a new campus and assigns its id
func (r *PostgresCampusRepository) Create(ctx context.Context, campus *models.Campus) error {
	if campus.ID != 0 {
		return apperrors.NewValidationError("campus %d is already persisted", campus.ID)
	}

	sql, args, err := r.sb.Insert("campuses").
		Columns("name", "straat", "huisnr", "postcode", "gemeente").
		Values(campus.Name, campus.Address.Street, campus.Address.HouseNumber,
			campus.Address.PostalCode, campus.Address.Municipality).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create campus SQL")
		return fmt.Errorf("failed to build create campus query: %w", err)
	}

	if err := r.db.Conn(ctx).QueryRow(ctx, sql, args...).Scan(&campus.ID); err != nil {
		logger.Error().Err(err).Str("name", campus.Name).Msg("Error executing create campus query")
		return fmt.Errorf("error creating campus: %w", dberrors.Classify(err))
	}
	return nil
}

// FindByID retrieves a campus with its instructor roster
func (r *PostgresCampusRepository) FindByID(ctx context.Context, id int64) (*models.Campus, error) {
	sql, args, err := r.sb.Select(campusColumns...).
		From("campuses c").
		Where(squirrel.Eq{"c.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get campus query: %w", err)
	}

	rosterSQL, rosterArgs, err := r.sb.Select(instructorColumns...).
		From("instructors i").
		Where(squirrel.Eq{"i.campusid": id}).
		OrderBy("i.id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build campus roster query: %w", err)
	}

	var campus *models.Campus
	err = r.db.WithTransaction(ctx, func(ctx context.Context) error {
		q := r.db.Conn(ctx)
		var row campusRow
		if err := q.QueryRow(ctx, sql, args...).Scan(row.dest()...); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil
			}
			logger.Error().Err(err).Int64("campusID", id).Msg("Error scanning campus row")
			return fmt.Errorf("error getting campus by ID: %w", err)
		}
		loaded := campusSet{}.loaded(row)

		var instructors []*models.Instructor
		err := forEachRow(ctx, q, rosterSQL, rosterArgs, func(rows pgx.Rows) error {
			var instructor instructorRow
			if err := rows.Scan(instructor.dest()...); err != nil {
				return err
			}
			instructors = append(instructors, instructor.restore(loaded))
			return nil
		})
		if err != nil {
			return fmt.Errorf("error loading campus roster: %w", err)
		}

		if err := loadCollections(ctx, q, r.sb, instructors); err != nil {
			return err
		}
		campus = loaded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return campus, nil
}

// FindByName retrieves the campus row with the given name
func (r *PostgresCampusRepository) FindByName(ctx context.Context, name string) (*models.Campus, error) {
	sql, args, err := r.sb.Select(campusColumns...).
		From("campuses c").
		Where(squirrel.Eq{"c.name": name}).
		OrderBy("c.id").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get campus by name query: %w", err)
	}

	var row campusRow
	if err := r.db.Conn(ctx).QueryRow(ctx, sql, args...).Scan(row.dest()...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		logger.Error().Err(err).Str("name", name).Msg("Error scanning campus row")
		return nil, fmt.Errorf("error getting campus by name: %w", err)
	}
	return campusSet{}.loaded(row), nil
}
