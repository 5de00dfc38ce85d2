package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/Sujith8257/hostel-ms-sub000/internal/app/models"
	appRepos "github.com/Sujith8257/hostel-ms-sub000/internal/app/repositories"
	"github.com/Sujith8257/hostel-ms-sub000/internal/config"
	"github.com/Sujith8257/hostel-ms-sub000/internal/pkg/apperrors"
	pkgAuth "github.com/Sujith8257/hostel-ms-sub000/internal/pkg/auth"
)

// CreateDefaultData creates the default admin account if it doesn't exist.
// Every other record in the system is created through the API.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, cfg *config.Config, lgr zerolog.Logger) error {
	profileRepo := appRepos.NewProfileRepository(dbPool)

	adminEmail := cfg.Seed.AdminEmail
	if adminEmail == "" {
		lgr.Info().Msg("No seed admin email configured, skipping default data")
		return nil
	}

	_, err := profileRepo.GetByEmail(ctx, adminEmail)
	if err == nil {
		lgr.Info().Str("email", adminEmail).Msg("Admin account already exists, skipping creation")
		return nil
	}
	if !errors.Is(err, apperrors.ErrProfileNotFound) {
		lgr.Error().Err(err).Msg("Error checking for existing admin account")
		return err
	}

	password := cfg.Seed.AdminPassword
	if password == "" {
		lgr.Warn().Msg("No seed admin password configured, skipping admin creation")
		return nil
	}

	hashedPassword, err := pkgAuth.HashPassword(password)
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing admin password")
		return err
	}

	admin := &appModels.Profile{
		Email:    adminEmail,
		Password: hashedPassword,
		FullName: "System Administrator",
		Role:     appModels.RoleAdmin,
		IsActive: true,
	}

	if err := profileRepo.Create(ctx, admin); err != nil {
		// Another instance may have created it between the check and the insert
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			lgr.Info().Str("email", adminEmail).Msg("Admin account created concurrently, skipping")
			return nil
		}
		lgr.Error().Err(err).Msg("Error creating default admin account")
		return err
	}

	lgr.Info().Str("email", adminEmail).Msg("Default admin account created")
	return nil
}
