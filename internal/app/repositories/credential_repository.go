package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emirkaya/staffdesk/internal/app/models"
	"github.com/emirkaya/staffdesk/internal/pkg/apperrors"
)

// ICredentialRepository is the read/provision surface of the
// credential store. Credentials are never updated or deleted.
type ICredentialRepository interface {
	GetByUsername(ctx context.Context, username string) (*models.Credential, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	Create(ctx context.Context, cred *models.Credential) error
}

// CredentialRepository handles database operations for credentials
type CredentialRepository struct {
	db *pgxpool.Pool
}

// NewCredentialRepository creates a new credential repository
func NewCredentialRepository(db *pgxpool.Pool) *CredentialRepository {
	return &CredentialRepository{
		db: db,
	}
}

// GetByUsername retrieves a credential by exact username match.
func (r *CredentialRepository) GetByUsername(ctx context.Context, username string) (*models.Credential, error) {
	query := `
		SELECT sno, username, password_hash
		FROM credentials
		WHERE username = $1
	`

	var cred models.Credential
	err := r.db.QueryRow(ctx, query, username).Scan(
		&cred.SequenceNumber,
		&cred.Username,
		&cred.PasswordHash,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCredentialNotFound
		}
		return nil, fmt.Errorf("error retrieving credential: %w", err)
	}

	return &cred, nil
}

// UsernameExists checks whether a credential with the username exists.
func (r *CredentialRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM credentials WHERE username = $1)`,
		username).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking credential existence: %w", err)
	}
	return exists, nil
}

// Create inserts a credential, assigning the next sequence number in
// the same statement. Used only by the provisioning step; the unique
// constraints on sno and username are the final arbiter.
func (r *CredentialRepository) Create(ctx context.Context, cred *models.Credential) error {
	query := `
		INSERT INTO credentials (sno, username, password_hash)
		SELECT COALESCE(MAX(sno), 0) + 1, $1, $2
		FROM credentials
		RETURNING sno
	`

	err := r.db.QueryRow(ctx, query, cred.Username, cred.PasswordHash).Scan(&cred.SequenceNumber)
	if err != nil {
		return fmt.Errorf("error creating credential: %w", err)
	}

	return nil
}
