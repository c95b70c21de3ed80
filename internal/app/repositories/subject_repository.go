package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gesapp/ges-backend/internal/app/models"
	"github.com/gesapp/ges-backend/internal/db"
	"github.com/gesapp/ges-backend/internal/pkg/apperrors"
	"github.com/gesapp/ges-backend/internal/pkg/dberrors"
	"github.com/gesapp/ges-backend/internal/pkg/logger"
)

// SubjectRepository handles subject database operations
type SubjectRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewSubjectRepository creates a new SubjectRepository
func NewSubjectRepository(db *pgxpool.Pool) *SubjectRepository {
	return &SubjectRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// subjectSelect joins the owning program so reads return it embedded
func (r *SubjectRepository) subjectSelect() squirrel.SelectBuilder {
	return r.sb.Select(
		"s.id", "s.program_id", "s.course_code", "s.title", "s.description", "s.credits",
		"p.id", "p.code", "p.name", "p.department", "p.description",
	).
		From("subjects s").
		Join("programs p ON p.id = s.program_id")
}

func scanSubject(row pgx.Row) (*models.Subject, error) {
	subject := &models.Subject{Program: &models.Program{}}
	err := row.Scan(
		&subject.ID, &subject.ProgramID, &subject.CourseCode,
		&subject.Title, &subject.Description, &subject.Credits,
		&subject.Program.ID, &subject.Program.Code, &subject.Program.Name,
		&subject.Program.Department, &subject.Program.Description,
	)
	if err != nil {
		return nil, err
	}
	return subject, nil
}

// Create inserts a new subject and returns its id
func (r *SubjectRepository) Create(ctx context.Context, subject *models.Subject) (int64, error) {
	sql, args, err := r.sb.Insert("subjects").
		Columns("program_id", "course_code", "title", "description", "credits").
		Values(subject.ProgramID, subject.CourseCode, subject.Title,
			subject.Description, subject.Credits).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create subject query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if dberrors.IsDuplicateKeyError(err) {
			return 0, apperrors.ErrCourseCodeExists
		}
		logger.Error().Err(err).Msg("Error executing create subject query")
		return 0, fmt.Errorf("error creating subject: %w", err)
	}

	subject.ID = id
	return id, nil
}

// GetByID retrieves a subject with its program and assigned teachers
func (r *SubjectRepository) GetByID(ctx context.Context, id int64) (*models.Subject, error) {
	sql, args, err := r.subjectSelect().
		Where(squirrel.Eq{"s.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get subject query: %w", err)
	}

	subject, err := scanSubject(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSubjectNotFound
		}
		logger.Error().Err(err).Int64("subjectID", id).Msg("Error scanning subject row")
		return nil, fmt.Errorf("error getting subject by ID: %w", err)
	}

	teacherIDs, err := r.GetTeacherIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	subject.TeacherIDs = teacherIDs
	return subject, nil
}

// GetAll retrieves all subjects with programs and teacher assignments
func (r *SubjectRepository) GetAll(ctx context.Context) ([]*models.Subject, error) {
	sql, args, err := r.subjectSelect().
		OrderBy("s.course_code ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get all subjects query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get all subjects query")
		return nil, fmt.Errorf("error querying subjects: %w", err)
	}
	defer rows.Close()

	subjects := []*models.Subject{}
	for rows.Next() {
		subject, err := scanSubject(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning subject row: %w", err)
		}
		subjects = append(subjects, subject)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating subject rows: %w", err)
	}

	for _, subject := range subjects {
		teacherIDs, err := r.GetTeacherIDs(ctx, subject.ID)
		if err != nil {
			return nil, err
		}
		subject.TeacherIDs = teacherIDs
	}
	return subjects, nil
}

// Update persists changes to an existing subject
func (r *SubjectRepository) Update(ctx context.Context, subject *models.Subject) error {
	sql, args, err := r.sb.Update("subjects").
		SetMap(map[string]interface{}{
			"program_id":  subject.ProgramID,
			"course_code": subject.CourseCode,
			"title":       subject.Title,
			"description": subject.Description,
			"credits":     subject.Credits,
		}).
		Where(squirrel.Eq{"id": subject.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update subject query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateKeyError(err) {
			return apperrors.ErrCourseCodeExists
		}
		logger.Error().Err(err).Int64("subjectID", subject.ID).Msg("Error executing update subject query")
		return fmt.Errorf("error updating subject: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrSubjectNotFound
	}
	return nil
}

// Delete removes a subject together with its schedules and teacher links
func (r *SubjectRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("subjects").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete subject query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("subjectID", id).Msg("Error executing delete subject query")
		return fmt.Errorf("error deleting subject: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrSubjectNotFound
	}
	return nil
}

// CourseCodeExists checks whether another subject already uses the course code
func (r *SubjectRepository) CourseCodeExists(ctx context.Context, courseCode string, excludeID int64) (bool, error) {
	pred := squirrel.And{squirrel.Eq{"course_code": courseCode}}
	if excludeID > 0 {
		pred = append(pred, squirrel.NotEq{"id": excludeID})
	}

	sql, args, err := r.sb.Select("1").
		From("subjects").
		Where(pred).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build exists query: %w", err)
	}

	var exists bool
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking course code existence: %w", err)
	}
	return exists, nil
}

// GetTeacherIDs retrieves the ids of teachers assigned to a subject
func (r *SubjectRepository) GetTeacherIDs(ctx context.Context, subjectID int64) ([]int64, error) {
	sql, args, err := r.sb.Select("teacher_id").
		From("subject_teachers").
		Where(squirrel.Eq{"subject_id": subjectID}).
		OrderBy("teacher_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get teacher ids query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying subject teachers: %w", err)
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning teacher id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating teacher id rows: %w", err)
	}
	return ids, nil
}

// ReplaceTeachers swaps the full teacher assignment of a subject in one
// transaction.
func (r *SubjectRepository) ReplaceTeachers(ctx context.Context, subjectID int64, teacherIDs []int64) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		delSQL, delArgs, err := r.sb.Delete("subject_teachers").
			Where(squirrel.Eq{"subject_id": subjectID}).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build clear teachers query: %w", err)
		}
		if _, err := tx.Exec(ctx, delSQL, delArgs...); err != nil {
			return fmt.Errorf("error clearing subject teachers: %w", err)
		}

		if len(teacherIDs) == 0 {
			return nil
		}

		insert := r.sb.Insert("subject_teachers").Columns("subject_id", "teacher_id")
		for _, teacherID := range teacherIDs {
			insert = insert.Values(subjectID, teacherID)
		}
		insSQL, insArgs, err := insert.ToSql()
		if err != nil {
			return fmt.Errorf("failed to build assign teachers query: %w", err)
		}
		if _, err := tx.Exec(ctx, insSQL, insArgs...); err != nil {
			logger.Error().Err(err).Int64("subjectID", subjectID).Msg("Error assigning subject teachers")
			return fmt.Errorf("error assigning subject teachers: %w", err)
		}
		return nil
	})
}
