package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	appModels "github.com/selim/alumnihub/internal/app/models"
	appRepos "github.com/selim/alumnihub/internal/app/repositories"
	"github.com/selim/alumnihub/internal/db"
	"github.com/selim/alumnihub/internal/pkg/auth"
)

const (
	defaultAdminEmail = "admin@alumnihub.app"
	// Only used on first boot; operators should rotate it immediately.
	defaultAdminPassword = "Admin123!"
)

// CreateDefaultData seeds the default admin account if it doesn't exist.
// Admin accounts are never created through registration, so a fresh
// deployment gets exactly one here.
func CreateDefaultData(ctx context.Context, database *db.PostgresDB, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(database.Pool)
	profileRepo := appRepos.NewProfileRepository(database.Pool)

	existing, err := userRepo.FindByEmail(ctx, defaultAdminEmail)
	if err != nil {
		return fmt.Errorf("failed to check for existing admin user: %w", err)
	}
	if existing != nil {
		lgr.Info().Msg("Admin user already exists, skipping creation")
		return nil
	}

	lgr.Info().Msg("Creating default admin user...")

	hashedPassword, err := auth.HashPassword(defaultAdminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	var adminID int64
	err = database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		admin := &appModels.User{
			Email:    defaultAdminEmail,
			Password: hashedPassword,
			Role:     appModels.RoleAdmin,
			Status:   appModels.UserActive,
		}

		adminID, err = userRepo.Create(ctx, tx, admin)
		if err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}

		profile := &appModels.Profile{
			UserID:    adminID,
			FirstName: "System",
			LastName:  "Administrator",
		}
		if _, err := profileRepo.Create(ctx, tx, profile); err != nil {
			return fmt.Errorf("failed to create admin profile: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	lgr.Info().Int64("adminID", adminID).Msg("Default admin user created successfully")
	return nil
}
