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

// PostgresResponsibilityRepository handles responsibility database operations
type PostgresResponsibilityRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewResponsibilityRepository creates a new PostgresResponsibilityRepository
func NewResponsibilityRepository(database *db.PostgresDB) *PostgresResponsibilityRepository {
	return &PostgresResponsibilityRepository{
		db: database,
		sb: newStatementBuilder(),
	}
}

// Create creates a responsibility. Names are unique case-insensitively
// (responsibilities_naam_key), a duplicate surfaces as apperrors.ErrConstraintViolation.
func (r *PostgresResponsibilityRepository) Create(ctx context.Context, responsibility *models.Responsibility) error {
	if responsibility.ID != 0 {
		return apperrors.NewValidationError("responsibility %d is already persisted", responsibility.ID)
	}

	sql, args, err := r.sb.Insert("responsibilities").
		Columns("naam").
		Values(responsibility.Name()).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create responsibility query: %w", err)
	}

	if err := r.db.Conn(ctx).QueryRow(ctx, sql, args...).Scan(&responsibility.ID); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "responsibilities_naam_key") {
			logger.Warn().Str("name", responsibility.Name()).Msg("Attempted to create duplicate responsibility")
		} else {
			logger.Error().Err(err).Str("name", responsibility.Name()).Msg("Error executing create responsibility query")
		}
		return fmt.Errorf("error creating responsibility: %w", dberrors.Classify(err))
	}
	return nil
}

// FindByID retrieves a responsibility by ID
func (r *PostgresResponsibilityRepository) FindByID(ctx context.Context, id int64) (*models.Responsibility, error) {
	return r.findOne(ctx, squirrel.Eq{"id": id})
}

// FindByName retrieves a responsibility by name, ignoring case
func (r *PostgresResponsibilityRepository) FindByName(ctx context.Context, name string) (*models.Responsibility, error) {
	return r.findOne(ctx, squirrel.Expr("lower(naam) = ?", models.NormalizeName(name)))
}

func (r *PostgresResponsibilityRepository) findOne(ctx context.Context, where squirrel.Sqlizer) (*models.Responsibility, error) {
	sql, args, err := r.sb.Select("id", "naam").
		From("responsibilities").
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get responsibility query: %w", err)
	}

	var id int64
	var name string
	if err := r.db.Conn(ctx).QueryRow(ctx, sql, args...).Scan(&id, &name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		logger.Error().Err(err).Msg("Error scanning responsibility row")
		return nil, fmt.Errorf("error getting responsibility: %w", err)
	}
	return models.RestoreResponsibility(id, name), nil
}
