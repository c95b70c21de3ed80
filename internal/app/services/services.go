package services

import (
	"github.com/rs/zerolog"

	"github.com/gesapp/ges-backend/internal/app/repositories"
	"github.com/gesapp/ges-backend/internal/pkg/auth"
	"github.com/gesapp/ges-backend/internal/pkg/filestorage"
)

// Services holds all service instances
type Services struct {
	Auth     *AuthService
	User     *UserService
	Program  *ProgramService
	Subject  *SubjectService
	Schedule *ScheduleService
}

// NewServices wires services onto the repository layer
func NewServices(
	repos *repositories.Repositories,
	jwtService *auth.JWTService,
	storage filestorage.FileStorage,
	logger zerolog.Logger,
) *Services {
	return &Services{
		Auth:     NewAuthService(repos.User, jwtService, logger),
		User:     NewUserService(repos.User, storage, logger),
		Program:  NewProgramService(repos.Program, repos.User, logger),
		Subject:  NewSubjectService(repos.Subject, repos.Program, repos.User, logger),
		Schedule: NewScheduleService(repos.Schedule, repos.Subject, logger),
	}
}
