package services

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/gesapp/ges-backend/internal/app/models"
	"github.com/gesapp/ges-backend/internal/app/models/dto"
	"github.com/gesapp/ges-backend/internal/app/repositories"
	"github.com/gesapp/ges-backend/internal/pkg/apperrors"
	"github.com/gesapp/ges-backend/internal/pkg/auth"
)

// AuthService handles authentication operations
type AuthService struct {
	userRepo   repositories.IUserRepository
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo repositories.IUserRepository,
	jwtService *auth.JWTService,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

// LoginStudent authenticates a student by student number and password.
// Unknown student numbers and deactivated accounts report the same way
// so the login form does not reveal which accounts exist.
func (s *AuthService) LoginStudent(ctx context.Context, req *dto.StudentLoginRequest) (*dto.LoginResponse, error) {
	if req.StudentID == "" || req.Password == "" {
		return nil, apperrors.NewMissingCredentialsError("Student ID and password are required")
	}

	user, err := s.userRepo.GetByStudentID(ctx, req.StudentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.NewCustomError(apperrors.ErrInvalidCredentials, "Invalid student ID or user not found")
		}
		return nil, err
	}

	return s.issueForUser(user, "Invalid student ID or user not found", req.Password)
}

// LoginTeacher authenticates a teacher by email and password
func (s *AuthService) LoginTeacher(ctx context.Context, req *dto.TeacherLoginRequest) (*dto.LoginResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, apperrors.NewMissingCredentialsError("Email and password are required")
	}

	user, err := s.userRepo.GetByEmailAndRole(ctx, normalizeHandle(req.Email), models.RoleTeacher)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.NewCustomError(apperrors.ErrInvalidCredentials, "Invalid email or user not found")
		}
		return nil, err
	}

	return s.issueForUser(user, "Invalid email or user not found", req.Password)
}

func (s *AuthService) issueForUser(user *models.User, unknownMsg, password string) (*dto.LoginResponse, error) {
	if !user.IsActive {
		s.logger.Warn().Int64("userID", user.ID).Msg("Login attempt on inactive account")
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidCredentials, unknownMsg)
	}

	if !auth.CheckPassword(user.Password, password) {
		return nil, apperrors.NewCustomError(apperrors.ErrIncorrectPassword, "Incorrect password")
	}

	access, refresh, _, _, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		s.logger.Error().Err(err).Int64("userID", user.ID).Msg("Failed to generate token pair")
		return nil, err
	}

	return &dto.LoginResponse{
		Refresh: refresh,
		Access:  access,
		User:    dto.NewUserResponse(user),
	}, nil
}

// Refresh exchanges a valid refresh token for a fresh token pair
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*dto.TokenPairResponse, error) {
	claims, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		if errors.Is(err, auth.ErrExpiredToken) {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, apperrors.ErrTokenInvalid
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, apperrors.ErrTokenInvalid
	}
	if !user.IsActive {
		return nil, apperrors.ErrTokenInvalid
	}

	access, refresh, _, _, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		s.logger.Error().Err(err).Int64("userID", user.ID).Msg("Failed to rotate token pair")
		return nil, err
	}

	return &dto.TokenPairResponse{Refresh: refresh, Access: access}, nil
}

// RegisterStudent creates a student account. The role is always student
// regardless of what the request carries.
func (s *AuthService) RegisterStudent(ctx context.Context, req *dto.RegisterStudentRequest) (*dto.UserResponse, error) {
	req.Email = normalizeHandle(req.Email)
	req.Username = normalizeHandle(req.Username)

	fields := dto.FieldErrors{}

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

	user := &models.User{
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
		IsActive:      true,
	}

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

	s.logger.Info().Int64("userID", user.ID).Msg("Student registered")
	return dto.NewUserResponse(user), nil
}

// optional maps an empty form value to SQL NULL
func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

// normalizeHandle lowercases login handles so email and username
// uniqueness is case-insensitive.
func normalizeHandle(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}
