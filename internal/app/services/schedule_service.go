package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/gesapp/ges-backend/internal/app/models"
	"github.com/gesapp/ges-backend/internal/app/models/dto"
	"github.com/gesapp/ges-backend/internal/app/repositories"
	"github.com/gesapp/ges-backend/internal/app/validation"
	"github.com/gesapp/ges-backend/internal/pkg/apperrors"
)

// ScheduleService handles class schedule management
type ScheduleService struct {
	scheduleRepo repositories.IScheduleRepository
	subjectRepo  repositories.ISubjectRepository
	logger       zerolog.Logger
}

// NewScheduleService creates a new ScheduleService
func NewScheduleService(
	scheduleRepo repositories.IScheduleRepository,
	subjectRepo repositories.ISubjectRepository,
	logger zerolog.Logger,
) *ScheduleService {
	return &ScheduleService{
		scheduleRepo: scheduleRepo,
		subjectRepo:  subjectRepo,
		logger:       logger,
	}
}

func (s *ScheduleService) validate(ctx context.Context, schedule *models.Schedule) error {
	fields := validation.ValidateSchedule(schedule)

	if _, err := s.subjectRepo.GetByID(ctx, schedule.SubjectID); err != nil {
		if errors.Is(err, apperrors.ErrSubjectNotFound) {
			fields.Add("subject_id", fmt.Sprintf("Subject %d does not exist.", schedule.SubjectID))
		} else {
			return err
		}
	}

	if fields.HasErrors() {
		return apperrors.NewValidationError(fields)
	}
	return nil
}

// CreateSchedule creates a new schedule slot for a subject
func (s *ScheduleService) CreateSchedule(ctx context.Context, req *dto.CreateScheduleRequest) (*dto.ScheduleResponse, error) {
	schedule := req.ToModel()
	if err := s.validate(ctx, schedule); err != nil {
		return nil, err
	}

	if _, err := s.scheduleRepo.Create(ctx, schedule); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("scheduleID", schedule.ID).Int64("subjectID", schedule.SubjectID).Msg("Schedule created")
	return dto.NewScheduleResponse(schedule), nil
}

// GetSchedule retrieves one schedule slot
func (s *ScheduleService) GetSchedule(ctx context.Context, id int64) (*dto.ScheduleResponse, error) {
	schedule, err := s.scheduleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewScheduleResponse(schedule), nil
}

// ListSchedules retrieves schedule slots, optionally filtered by subject
func (s *ScheduleService) ListSchedules(ctx context.Context, subjectID int64) ([]*dto.ScheduleResponse, error) {
	var (
		schedules []*models.Schedule
		err       error
	)
	if subjectID > 0 {
		schedules, err = s.scheduleRepo.ListBySubject(ctx, subjectID)
	} else {
		schedules, err = s.scheduleRepo.GetAll(ctx)
	}
	if err != nil {
		return nil, err
	}
	return dto.NewScheduleResponseList(schedules), nil
}

// UpdateSchedule replaces the fields of a schedule slot
func (s *ScheduleService) UpdateSchedule(ctx context.Context, id int64, req *dto.CreateScheduleRequest) (*dto.ScheduleResponse, error) {
	if _, err := s.scheduleRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}

	schedule := req.ToModel()
	schedule.ID = id
	if err := s.validate(ctx, schedule); err != nil {
		return nil, err
	}

	if err := s.scheduleRepo.Update(ctx, schedule); err != nil {
		return nil, err
	}
	return dto.NewScheduleResponse(schedule), nil
}

// DeleteSchedule removes a schedule slot
func (s *ScheduleService) DeleteSchedule(ctx context.Context, id int64) error {
	return s.scheduleRepo.Delete(ctx, id)
}
