package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emirkaya/staffdesk/internal/app/models"
	"github.com/emirkaya/staffdesk/internal/app/models/dto"
	"github.com/emirkaya/staffdesk/internal/pkg/apperrors"
	"github.com/emirkaya/staffdesk/internal/pkg/auth"
)

// fakeCredentialRepo is an in-memory credential store keyed by username.
type fakeCredentialRepo struct {
	credentials map[string]*models.Credential
}

func newFakeCredentialRepo() *fakeCredentialRepo {
	return &fakeCredentialRepo{credentials: make(map[string]*models.Credential)}
}

func (r *fakeCredentialRepo) GetByUsername(_ context.Context, username string) (*models.Credential, error) {
	cred, ok := r.credentials[username]
	if !ok {
		return nil, apperrors.ErrCredentialNotFound
	}
	copied := *cred
	return &copied, nil
}

func (r *fakeCredentialRepo) UsernameExists(_ context.Context, username string) (bool, error) {
	_, ok := r.credentials[username]
	return ok, nil
}

func (r *fakeCredentialRepo) Create(_ context.Context, cred *models.Credential) error {
	cred.SequenceNumber = int64(len(r.credentials) + 1)
	r.credentials[cred.Username] = cred
	return nil
}

func newTestAuthService(t *testing.T) (AuthService, *auth.JWTService) {
	t.Helper()

	repo := newFakeCredentialRepo()
	hash, err := auth.HashPassword("admin123")
	require.NoError(t, err)
	repo.credentials["admin"] = &models.Credential{
		SequenceNumber: 1,
		Username:       "admin",
		PasswordHash:   hash,
	}

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "staffdesk.test",
	})

	return NewAuthService(repo, jwtService, zerolog.Nop()), jwtService
}

func TestLogin_Success(t *testing.T) {
	svc, jwtService := newTestAuthService(t)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "admin",
		Password: "admin123",
	})
	require.NoError(t, err)

	assert.Equal(t, "admin", resp.Username)
	assert.Equal(t, 3600, resp.ExpiresIn)

	claims, err := jwtService.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(1), claims.SubjectID)
	assert.Equal(t, "admin", claims.Username)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "admin",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLogin_UnknownUsername(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "nobody",
		Password: "admin123",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

// An unknown username and a wrong password must be indistinguishable
// to the caller.
func TestLogin_FailureModesMatch(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, unknownErr := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "nobody", Password: "admin123",
	})
	_, wrongErr := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "admin", Password: "wrong",
	})

	require.Error(t, unknownErr)
	require.Error(t, wrongErr)
	assert.Equal(t, unknownErr.Error(), wrongErr.Error())
}
