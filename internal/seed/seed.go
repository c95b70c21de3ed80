package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/gesapp/ges-backend/internal/app/models"
	appRepos "github.com/gesapp/ges-backend/internal/app/repositories"
	"github.com/gesapp/ges-backend/internal/pkg/auth"
)

const (
	defaultAdminEmail    = "admin@ges.local"
	defaultAdminUsername = "admin"
	defaultAdminPassword = "ChangeMe123!"
)

// CreateDefaultData provisions the initial superuser so a fresh deployment
// can log in and create further accounts. Existing installs are left alone.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)

	exists, err := userRepo.EmailExists(ctx, defaultAdminEmail, 0)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	hashed, err := auth.HashPassword(defaultAdminPassword)
	if err != nil {
		return err
	}

	admin := &models.User{
		FirstName:   "System",
		LastName:    "Administrator",
		Email:       defaultAdminEmail,
		Username:    defaultAdminUsername,
		Password:    hashed,
		Gender:      models.GenderOther,
		Role:        models.RoleAdmin,
		IsActive:    true,
		IsStaff:     true,
		IsSuperuser: true,
	}

	if _, err := userRepo.Create(ctx, admin); err != nil {
		// Another instance may have seeded concurrently
		if errors.Is(err, context.Canceled) {
			return err
		}
		lgr.Warn().Err(err).Msg("Default superuser not created")
		return nil
	}

	lgr.Info().Str("email", defaultAdminEmail).Msg("Default superuser created; change the password immediately")
	return nil
}
