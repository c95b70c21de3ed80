package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/gesapp/ges-backend/internal/app/models"
	"github.com/gesapp/ges-backend/internal/app/models/dto"
	"github.com/gesapp/ges-backend/internal/app/repositories"
	"github.com/gesapp/ges-backend/internal/pkg/apperrors"
	"github.com/gesapp/ges-backend/internal/pkg/auth"
)

// ProgramService handles academic program management
type ProgramService struct {
	programRepo repositories.IProgramRepository
	userRepo    repositories.IUserRepository
	logger      zerolog.Logger
}

// NewProgramService creates a new ProgramService
func NewProgramService(
	programRepo repositories.IProgramRepository,
	userRepo repositories.IUserRepository,
	logger zerolog.Logger,
) *ProgramService {
	return &ProgramService{
		programRepo: programRepo,
		userRepo:    userRepo,
		logger:      logger,
	}
}

func (s *ProgramService) checkCode(ctx context.Context, code string, excludeID int64) error {
	taken, err := s.programRepo.CodeExists(ctx, code, excludeID)
	if err != nil {
		return err
	}
	if taken {
		fields := dto.FieldErrors{}
		fields.Add("code", "A program with this code already exists.")
		return apperrors.NewValidationError(fields)
	}
	return nil
}

// CreateProgram creates a new program
func (s *ProgramService) CreateProgram(ctx context.Context, req *dto.CreateProgramRequest) (*dto.ProgramResponse, error) {
	if err := s.checkCode(ctx, req.Code, 0); err != nil {
		return nil, err
	}

	program := req.ToModel()
	if _, err := s.programRepo.Create(ctx, program); err != nil {
		return nil, s.mapCodeConflict(err)
	}

	s.logger.Info().Int64("programID", program.ID).Str("code", program.Code).Msg("Program created")
	return dto.NewProgramResponse(program), nil
}

// GetProgram retrieves one program
func (s *ProgramService) GetProgram(ctx context.Context, id int64) (*dto.ProgramResponse, error) {
	program, err := s.programRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewProgramResponse(program), nil
}

// ListPrograms retrieves all programs
func (s *ProgramService) ListPrograms(ctx context.Context) ([]*dto.ProgramResponse, error) {
	programs, err := s.programRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewProgramResponseList(programs), nil
}

// UpdateProgram replaces the mutable fields of a program
func (s *ProgramService) UpdateProgram(ctx context.Context, id int64, req *dto.CreateProgramRequest) (*dto.ProgramResponse, error) {
	if _, err := s.programRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	if err := s.checkCode(ctx, req.Code, id); err != nil {
		return nil, err
	}

	program := req.ToModel()
	program.ID = id
	if err := s.programRepo.Update(ctx, program); err != nil {
		return nil, s.mapCodeConflict(err)
	}
	return dto.NewProgramResponse(program), nil
}

// DeleteProgram removes a program
func (s *ProgramService) DeleteProgram(ctx context.Context, id int64) error {
	return s.programRepo.Delete(ctx, id)
}

// ListStudents retrieves the students enrolled in a program.
// The program must exist even when it has no students.
func (s *ProgramService) ListStudents(ctx context.Context, programID int64) ([]*dto.UserResponse, error) {
	if _, err := s.programRepo.GetByID(ctx, programID); err != nil {
		if errors.Is(err, apperrors.ErrProgramNotFound) {
			return nil, apperrors.NewResourceNotFoundError("Program not found.")
		}
		return nil, err
	}

	students, err := s.userRepo.ListByProgram(ctx, programID, models.RoleStudent)
	if err != nil {
		return nil, err
	}
	return dto.NewUserResponseList(students), nil
}

// EnrollStudent provisions a student account enrolled in the given program.
func (s *ProgramService) EnrollStudent(ctx context.Context, programID int64, req *dto.RegisterStudentRequest) (*dto.UserResponse, error) {
	if _, err := s.programRepo.GetByID(ctx, programID); err != nil {
		if errors.Is(err, apperrors.ErrProgramNotFound) {
			return nil, apperrors.NewResourceNotFoundError("Program not found.")
		}
		return nil, err
	}

	req.Email = normalizeHandle(req.Email)
	req.Username = normalizeHandle(req.Username)

	fields := dto.FieldErrors{}
	if req.StudentID == "" {
		fields.Add("student_id", "Student ID is required for students.")
	}

	taken, err := s.userRepo.EmailExists(ctx, req.Email, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		fields.Add("email", "A user with this email already exists.")
	}

	taken, err = s.userRepo.UsernameExists(ctx, req.Username, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		fields.Add("username", "A user with this username already exists.")
	}

	if req.StudentID != "" {
		taken, err = s.userRepo.StudentIDExists(ctx, req.StudentID, 0)
		if err != nil {
			return nil, err
		}
		if taken {
			fields.Add("student_id", "A user with this student ID already exists.")
		}
	}

	if fields.HasErrors() {
		return nil, apperrors.NewValidationError(fields)
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to hash password")
		return nil, err
	}

	gender := models.Gender(req.Gender)
	if gender == "" {
		gender = models.GenderOther
	}

	student := &models.User{
		FirstName:     req.FirstName,
		MiddleName:    optional(req.MiddleName),
		LastName:      req.LastName,
		Email:         req.Email,
		Username:      req.Username,
		Password:      hashed,
		Gender:        gender,
		Role:          models.RoleStudent,
		StudentID:     optional(req.StudentID),
		Address:       optional(req.Address),
		ContactNumber: optional(req.ContactNumber),
		ProgramID:     &programID,
		IsActive:      true,
	}

	id, err := s.userRepo.Create(ctx, student)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrEmailAlreadyExists):
			fields.Add("email", "A user with this email already exists.")
		case errors.Is(err, apperrors.ErrUsernameAlreadyExists):
			fields.Add("username", "A user with this username already exists.")
		case errors.Is(err, apperrors.ErrStudentIDAlreadyExists):
			fields.Add("student_id", "A user with this student ID already exists.")
		default:
			return nil, err
		}
		return nil, apperrors.NewValidationError(fields)
	}
	student.ID = id

	s.logger.Info().Int64("userID", id).Int64("programID", programID).Msg("Student enrolled")
	return dto.NewUserResponse(student), nil
}

// mapCodeConflict converts the constraint violation into the same field
// error the pre-check produces.
func (s *ProgramService) mapCodeConflict(err error) error {
	if errors.Is(err, apperrors.ErrProgramCodeExists) {
		fields := dto.FieldErrors{}
		fields.Add("code", "A program with this code already exists.")
		return apperrors.NewValidationError(fields)
	}
	return err
}
