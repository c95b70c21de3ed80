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
	"github.com/gesapp/ges-backend/internal/pkg/logger"
)

var scheduleColumns = []string{"id", "subject_id", "day", "start_time", "end_time", "room"}

// ScheduleRepository handles schedule database operations
type ScheduleRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewScheduleRepository creates a new ScheduleRepository
func NewScheduleRepository(db *pgxpool.Pool) *ScheduleRepository {
	return &ScheduleRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanSchedule(row pgx.Row) (*models.Schedule, error) {
	schedule := &models.Schedule{}
	err := row.Scan(
		&schedule.ID, &schedule.SubjectID, &schedule.Day,
		&schedule.StartTime, &schedule.EndTime, &schedule.Room,
	)
	if err != nil {
		return nil, err
	}
	return schedule, nil
}

// Create inserts a new schedule slot and returns its id
func (r *ScheduleRepository) Create(ctx context.Context, schedule *models.Schedule) (int64, error) {
	sql, args, err := r.sb.Insert("schedules").
		Columns("subject_id", "day", "start_time", "end_time", "room").
		Values(schedule.SubjectID, schedule.Day, schedule.StartTime,
			schedule.EndTime, schedule.Room).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create schedule query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing create schedule query")
		return 0, fmt.Errorf("error creating schedule: %w", err)
	}

	schedule.ID = id
	return id, nil
}

// GetByID retrieves a schedule slot by ID
func (r *ScheduleRepository) GetByID(ctx context.Context, id int64) (*models.Schedule, error) {
	sql, args, err := r.sb.Select(scheduleColumns...).
		From("schedules").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get schedule query: %w", err)
	}

	schedule, err := scanSchedule(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrScheduleNotFound
		}
		logger.Error().Err(err).Int64("scheduleID", id).Msg("Error scanning schedule row")
		return nil, fmt.Errorf("error getting schedule by ID: %w", err)
	}
	return schedule, nil
}

func (r *ScheduleRepository) list(ctx context.Context, builder squirrel.SelectBuilder) ([]*models.Schedule, error) {
	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list schedules query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list schedules query")
		return nil, fmt.Errorf("error querying schedules: %w", err)
	}
	defer rows.Close()

	schedules := []*models.Schedule{}
	for rows.Next() {
		schedule, err := scanSchedule(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning schedule row: %w", err)
		}
		schedules = append(schedules, schedule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating schedule rows: %w", err)
	}
	return schedules, nil
}

// GetAll retrieves all schedule slots
func (r *ScheduleRepository) GetAll(ctx context.Context) ([]*models.Schedule, error) {
	return r.list(ctx, r.sb.Select(scheduleColumns...).
		From("schedules").
		OrderBy("subject_id ASC", "day ASC", "start_time ASC"))
}

// ListBySubject retrieves the slots of one subject
func (r *ScheduleRepository) ListBySubject(ctx context.Context, subjectID int64) ([]*models.Schedule, error) {
	return r.list(ctx, r.sb.Select(scheduleColumns...).
		From("schedules").
		Where(squirrel.Eq{"subject_id": subjectID}).
		OrderBy("day ASC", "start_time ASC"))
}

// Update persists changes to an existing schedule slot
func (r *ScheduleRepository) Update(ctx context.Context, schedule *models.Schedule) error {
	sql, args, err := r.sb.Update("schedules").
		SetMap(map[string]interface{}{
			"subject_id": schedule.SubjectID,
			"day":        schedule.Day,
			"start_time": schedule.StartTime,
			"end_time":   schedule.EndTime,
			"room":       schedule.Room,
		}).
		Where(squirrel.Eq{"id": schedule.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update schedule query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("scheduleID", schedule.ID).Msg("Error executing update schedule query")
		return fmt.Errorf("error updating schedule: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrScheduleNotFound
	}
	return nil
}

// Delete removes a schedule slot
func (r *ScheduleRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("schedules").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete schedule query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("scheduleID", id).Msg("Error executing delete schedule query")
		return fmt.Errorf("error deleting schedule: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrScheduleNotFound
	}
	return nil
}
