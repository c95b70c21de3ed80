package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gesapp/ges-backend/internal/app/models"
	"github.com/gesapp/ges-backend/internal/pkg/apperrors"
	"github.com/gesapp/ges-backend/internal/pkg/dberrors"
	"github.com/gesapp/ges-backend/internal/pkg/logger"
)

// ProgramRepository handles program database operations
type ProgramRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewProgramRepository creates a new ProgramRepository
func NewProgramRepository(db *pgxpool.Pool) *ProgramRepository {
	return &ProgramRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new program and returns its id
func (r *ProgramRepository) Create(ctx context.Context, program *models.Program) (int64, error) {
	sql, args, err := r.sb.Insert("programs").
		Columns("code", "name", "department", "description").
		Values(program.Code, program.Name, program.Department, program.Description).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create program query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if dberrors.IsDuplicateKeyError(err) {
			return 0, apperrors.ErrProgramCodeExists
		}
		logger.Error().Err(err).Msg("Error executing create program query")
		return 0, fmt.Errorf("error creating program: %w", err)
	}

	program.ID = id
	return id, nil
}

// GetByID retrieves a program by ID
func (r *ProgramRepository) GetByID(ctx context.Context, id int64) (*models.Program, error) {
	sql, args, err := r.sb.Select("id", "code", "name", "department", "description").
		From("programs").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get program query: %w", err)
	}

	program := &models.Program{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&program.ID, &program.Code, &program.Name,
		&program.Department, &program.Description,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProgramNotFound
		}
		logger.Error().Err(err).Int64("programID", id).Msg("Error scanning program row")
		return nil, fmt.Errorf("error getting program by ID: %w", err)
	}
	return program, nil
}

// GetAll retrieves all programs ordered by code
func (r *ProgramRepository) GetAll(ctx context.Context) ([]*models.Program, error) {
	sql, args, err := r.sb.Select("id", "code", "name", "department", "description").
		From("programs").
		OrderBy("code ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get all programs query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get all programs query")
		return nil, fmt.Errorf("error querying programs: %w", err)
	}
	defer rows.Close()

	programs := []*models.Program{}
	for rows.Next() {
		program := &models.Program{}
		if err := rows.Scan(
			&program.ID, &program.Code, &program.Name,
			&program.Department, &program.Description,
		); err != nil {
			return nil, fmt.Errorf("error scanning program row: %w", err)
		}
		programs = append(programs, program)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating program rows: %w", err)
	}
	return programs, nil
}

// Update persists changes to an existing program
func (r *ProgramRepository) Update(ctx context.Context, program *models.Program) error {
	sql, args, err := r.sb.Update("programs").
		SetMap(map[string]interface{}{
			"code":        program.Code,
			"name":        program.Name,
			"department":  program.Department,
			"description": program.Description,
		}).
		Where(squirrel.Eq{"id": program.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update program query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateKeyError(err) {
			return apperrors.ErrProgramCodeExists
		}
		logger.Error().Err(err).Int64("programID", program.ID).Msg("Error executing update program query")
		return fmt.Errorf("error updating program: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrProgramNotFound
	}
	return nil
}

// Delete removes a program. Enrolled users keep their accounts with the
// program reference cleared by the schema.
func (r *ProgramRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("programs").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete program query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("programID", id).Msg("Error executing delete program query")
		return fmt.Errorf("error deleting program: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrProgramNotFound
	}
	return nil
}

// CodeExists checks whether another program already uses the code
func (r *ProgramRepository) CodeExists(ctx context.Context, code string, excludeID int64) (bool, error) {
	pred := squirrel.And{squirrel.Eq{"code": code}}
	if excludeID > 0 {
		pred = append(pred, squirrel.NotEq{"id": excludeID})
	}

	sql, args, err := r.sb.Select("1").
		From("programs").
		Where(pred).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build exists query: %w", err)
	}

	var exists bool
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking program code existence: %w", err)
	}
	return exists, nil
}
