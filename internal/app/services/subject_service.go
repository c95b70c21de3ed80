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

// SubjectService handles subject management and teacher assignment
type SubjectService struct {
	subjectRepo repositories.ISubjectRepository
	programRepo repositories.IProgramRepository
	userRepo    repositories.IUserRepository
	logger      zerolog.Logger
}

// NewSubjectService creates a new SubjectService
func NewSubjectService(
	subjectRepo repositories.ISubjectRepository,
	programRepo repositories.IProgramRepository,
	userRepo repositories.IUserRepository,
	logger zerolog.Logger,
) *SubjectService {
	return &SubjectService{
		subjectRepo: subjectRepo,
		programRepo: programRepo,
		userRepo:    userRepo,
		logger:      logger,
	}
}

func (s *SubjectService) validate(ctx context.Context, subject *models.Subject, excludeID int64) error {
	fields := validation.ValidateSubject(subject)

	if _, err := s.programRepo.GetByID(ctx, subject.ProgramID); err != nil {
		if errors.Is(err, apperrors.ErrProgramNotFound) {
			fields.Add("program_id", fmt.Sprintf("Program %d does not exist.", subject.ProgramID))
		} else {
			return err
		}
	}

	taken, err := s.subjectRepo.CourseCodeExists(ctx, subject.CourseCode, excludeID)
	if err != nil {
		return err
	}
	if taken {
		fields.Add("course_code", "A subject with this course code already exists.")
	}

	if fields.HasErrors() {
		return apperrors.NewValidationError(fields)
	}
	return nil
}

// CreateSubject creates a new subject under an existing program
func (s *SubjectService) CreateSubject(ctx context.Context, req *dto.CreateSubjectRequest) (*dto.SubjectResponse, error) {
	subject := req.ToModel()
	if err := s.validate(ctx, subject, 0); err != nil {
		return nil, err
	}

	if _, err := s.subjectRepo.Create(ctx, subject); err != nil {
		return nil, s.mapCourseCodeConflict(err)
	}

	s.logger.Info().Int64("subjectID", subject.ID).Str("courseCode", subject.CourseCode).Msg("Subject created")
	return s.GetSubject(ctx, subject.ID)
}

// GetSubject retrieves one subject with its program and teachers
func (s *SubjectService) GetSubject(ctx context.Context, id int64) (*dto.SubjectResponse, error) {
	subject, err := s.subjectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewSubjectResponse(subject), nil
}

// ListSubjects retrieves all subjects
func (s *SubjectService) ListSubjects(ctx context.Context) ([]*dto.SubjectResponse, error) {
	subjects, err := s.subjectRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewSubjectResponseList(subjects), nil
}

// UpdateSubject replaces the mutable fields of a subject
func (s *SubjectService) UpdateSubject(ctx context.Context, id int64, req *dto.CreateSubjectRequest) (*dto.SubjectResponse, error) {
	if _, err := s.subjectRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}

	subject := req.ToModel()
	subject.ID = id
	if err := s.validate(ctx, subject, id); err != nil {
		return nil, err
	}

	if err := s.subjectRepo.Update(ctx, subject); err != nil {
		return nil, s.mapCourseCodeConflict(err)
	}
	return s.GetSubject(ctx, id)
}

// DeleteSubject removes a subject with its schedules and assignments
func (s *SubjectService) DeleteSubject(ctx context.Context, id int64) error {
	return s.subjectRepo.Delete(ctx, id)
}

// AssignTeachers replaces the teacher set of a subject. Every referenced
// user must exist and carry the teacher role.
func (s *SubjectService) AssignTeachers(ctx context.Context, subjectID int64, req *dto.AssignTeachersRequest) (*dto.SubjectResponse, error) {
	if _, err := s.subjectRepo.GetByID(ctx, subjectID); err != nil {
		if errors.Is(err, apperrors.ErrSubjectNotFound) {
			return nil, apperrors.NewResourceNotFoundError("Subject not found.")
		}
		return nil, err
	}

	fields := dto.FieldErrors{}
	seen := map[int64]bool{}
	ids := make([]int64, 0, len(req.TeacherIDs))
	for _, teacherID := range req.TeacherIDs {
		if seen[teacherID] {
			continue
		}
		seen[teacherID] = true

		user, err := s.userRepo.GetByID(ctx, teacherID)
		if err != nil {
			if errors.Is(err, apperrors.ErrUserNotFound) {
				fields.Add("teacher_ids", fmt.Sprintf("User %d does not exist.", teacherID))
				continue
			}
			return nil, err
		}
		if user.Role != models.RoleTeacher {
			fields.Add("teacher_ids", fmt.Sprintf("User %d is not a teacher.", teacherID))
			continue
		}
		ids = append(ids, teacherID)
	}
	if fields.HasErrors() {
		return nil, apperrors.NewValidationError(fields)
	}

	if err := s.subjectRepo.ReplaceTeachers(ctx, subjectID, ids); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("subjectID", subjectID).Int("teachers", len(ids)).Msg("Subject teachers replaced")
	return s.GetSubject(ctx, subjectID)
}

func (s *SubjectService) mapCourseCodeConflict(err error) error {
	if errors.Is(err, apperrors.ErrCourseCodeExists) {
		fields := dto.FieldErrors{}
		fields.Add("course_code", "A subject with this course code already exists.")
		return apperrors.NewValidationError(fields)
	}
	return err
}
