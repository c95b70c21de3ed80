package services

import (
	"context"
	"errors"
	"mime/multipart"

	"github.com/rs/zerolog"

	"github.com/gesapp/ges-backend/internal/app/models"
	"github.com/gesapp/ges-backend/internal/app/models/dto"
	"github.com/gesapp/ges-backend/internal/app/repositories"
	"github.com/gesapp/ges-backend/internal/app/validation"
	"github.com/gesapp/ges-backend/internal/pkg/apperrors"
	"github.com/gesapp/ges-backend/internal/pkg/auth"
	"github.com/gesapp/ges-backend/internal/pkg/filestorage"
)

// UserService handles profile and account management
type UserService struct {
	userRepo repositories.IUserRepository
	storage  filestorage.FileStorage
	logger   zerolog.Logger
}

// NewUserService creates a new UserService
func NewUserService(
	userRepo repositories.IUserRepository,
	storage filestorage.FileStorage,
	logger zerolog.Logger,
) *UserService {
	return &UserService{
		userRepo: userRepo,
		storage:  storage,
		logger:   logger,
	}
}

// GetProfile returns the profile of the authenticated user
func (s *UserService) GetProfile(ctx context.Context, userID int64) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return dto.NewUserResponse(user), nil
}

// UpdateProfile applies a partial profile update. Email, role and password
// are never touched here.
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.MiddleName != nil {
		user.MiddleName = req.MiddleName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Username != nil {
		user.Username = normalizeHandle(*req.Username)
	}
	if req.Gender != nil {
		user.Gender = models.Gender(*req.Gender)
	}
	if req.StudentID != nil {
		user.StudentID = req.StudentID
	}
	if req.Address != nil {
		user.Address = req.Address
	}
	if req.ContactNumber != nil {
		user.ContactNumber = req.ContactNumber
	}
	if req.ProgramID != nil {
		user.ProgramID = req.ProgramID
	}

	fields := validation.ValidateUserProfile(user)

	if req.Username != nil {
		taken, err := s.userRepo.UsernameExists(ctx, user.Username, user.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			fields.Add("username", "A user with this username already exists.")
		}
	}
	if req.StudentID != nil && *req.StudentID != "" {
		taken, err := s.userRepo.StudentIDExists(ctx, *req.StudentID, user.ID)
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

	if err := s.userRepo.Update(ctx, user); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrUsernameAlreadyExists):
			fields.Add("username", "A user with this username already exists.")
		case errors.Is(err, apperrors.ErrStudentIDAlreadyExists):
			fields.Add("student_id", "A user with this student ID already exists.")
		default:
			return nil, err
		}
		return nil, apperrors.NewValidationError(fields)
	}

	return dto.NewUserResponse(user), nil
}

// UpdateAvatar stores the uploaded image and records its path on the user.
// The previous avatar file is removed after a successful swap.
func (s *UserService) UpdateAvatar(ctx context.Context, userID int64, file *multipart.FileHeader) (*dto.UserResponse, error) {
	if fields := validation.ValidateAvatar(file.Size); fields.HasErrors() {
		return nil, apperrors.NewValidationError(fields)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	path, err := s.storage.SaveFileWithPath(file, "avatars")
	if err != nil {
		s.logger.Error().Err(err).Int64("userID", userID).Msg("Failed to store avatar")
		return nil, err
	}

	if err := s.userRepo.UpdateAvatar(ctx, userID, &path); err != nil {
		if delErr := s.storage.DeleteFile(path); delErr != nil {
			s.logger.Warn().Err(delErr).Str("path", path).Msg("Failed to remove orphaned avatar")
		}
		return nil, err
	}

	if user.Avatar != nil {
		if err := s.storage.DeleteFile(*user.Avatar); err != nil {
			s.logger.Warn().Err(err).Str("path", *user.Avatar).Msg("Failed to remove replaced avatar")
		}
	}

	user.Avatar = &path
	return dto.NewUserResponse(user), nil
}

// CreateUser provisions an account with an explicit role. Reserved for
// administrators; this is how teacher and admin accounts come to exist.
func (s *UserService) CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	req.Email = normalizeHandle(req.Email)
	req.Username = normalizeHandle(req.Username)

	gender := models.Gender(req.Gender)
	if gender == "" {
		gender = models.GenderOther
	}

	user := &models.User{
		FirstName:     req.FirstName,
		MiddleName:    optional(req.MiddleName),
		LastName:      req.LastName,
		Email:         req.Email,
		Username:      req.Username,
		Gender:        gender,
		Role:          models.Role(req.Role),
		StudentID:     optional(req.StudentID),
		Address:       optional(req.Address),
		ContactNumber: optional(req.ContactNumber),
		IsActive:      true,
		IsStaff:       req.IsStaff,
	}

	fields := validation.ValidateUserProfile(user)

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
	user.Password = hashed

	id, err := s.userRepo.Create(ctx, user)
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
	user.ID = id

	s.logger.Info().Int64("userID", user.ID).Str("role", req.Role).Msg("User provisioned")
	return dto.NewUserResponse(user), nil
}
