// Package seed provisions the admin credential out of band.
package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/emirkaya/staffdesk/internal/app/models"
	"github.com/emirkaya/staffdesk/internal/app/repositories"
	"github.com/emirkaya/staffdesk/internal/config"
	"github.com/emirkaya/staffdesk/internal/pkg/auth"
)

// EnsureAdminCredential creates the admin login if it does not exist.
// This is the only writer of the credential store; the running system
// never updates or deletes credentials.
func EnsureAdminCredential(ctx context.Context, dbPool *pgxpool.Pool, cfg *config.Config, lgr zerolog.Logger) error {
	credentialRepo := repositories.NewCredentialRepository(dbPool)

	exists, err := credentialRepo.UsernameExists(ctx, cfg.Admin.Username)
	if err != nil {
		return fmt.Errorf("error checking admin credential: %w", err)
	}
	if exists {
		lgr.Info().Str("username", cfg.Admin.Username).Msg("Admin credential already exists, skipping creation")
		return nil
	}

	if cfg.Admin.Password == "" {
		lgr.Warn().Str("username", cfg.Admin.Username).Msg("No admin password configured, skipping credential provisioning")
		return nil
	}

	hashedPassword, err := auth.HashPassword(cfg.Admin.Password)
	if err != nil {
		return fmt.Errorf("error hashing admin password: %w", err)
	}

	cred := &models.Credential{
		Username:     cfg.Admin.Username,
		PasswordHash: hashedPassword,
	}
	if err := credentialRepo.Create(ctx, cred); err != nil {
		return fmt.Errorf("error creating admin credential: %w", err)
	}

	lgr.Info().Str("username", cred.Username).Int64("sno", cred.SequenceNumber).Msg("Admin credential created")
	return nil
}
