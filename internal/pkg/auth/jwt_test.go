package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emirkaya/staffdesk/internal/app/models"
	"github.com/emirkaya/staffdesk/internal/pkg/apperrors"
)

func newTestService(exp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:      "test-secret-key",
		AccessTokenExp: exp,
		TokenIssuer:    "staffdesk.test",
	})
}

func testCredential() *models.Credential {
	return &models.Credential{
		SequenceNumber: 1,
		Username:       "admin",
		PasswordHash:   "irrelevant",
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := newTestService(time.Hour)

	token, expiresIn, err := svc.GenerateToken(testCredential())
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, 3600, expiresIn)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(1), claims.SubjectID)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, "staffdesk.test", claims.Issuer)
	assert.NotEmpty(t, claims.ID)
}

func TestValidateToken_Expired(t *testing.T) {
	svc := newTestService(-time.Minute)

	token, _, err := svc.GenerateToken(testCredential())
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	issuer := newTestService(time.Hour)
	token, _, err := issuer.GenerateToken(testCredential())
	require.NoError(t, err)

	verifier := NewJWTService(JWTConfig{
		SecretKey:      "a-different-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "staffdesk.test",
	})

	_, err = verifier.ValidateToken(token)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestValidateToken_Garbage(t *testing.T) {
	svc := newTestService(time.Hour)

	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		_, err := svc.ValidateToken(tok)
		assert.Error(t, err, "token %q should be rejected", tok)
	}
}

func TestValidateToken_Tampered(t *testing.T) {
	svc := newTestService(time.Hour)

	token, _, err := svc.GenerateToken(testCredential())
	require.NoError(t, err)

	tampered := token[:len(token)-4] + "AAAA"
	_, err = svc.ValidateToken(tampered)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestExtractBearerToken(t *testing.T) {
	token, err := ExtractBearerToken("Bearer abc123")
	require.NoError(t, err)
	assert.Equal(t, "abc123", token)

	// A raw token without the scheme is accepted as-is.
	token, err = ExtractBearerToken("abc123")
	require.NoError(t, err)
	assert.Equal(t, "abc123", token)

	_, err = ExtractBearerToken("")
	assert.ErrorIs(t, err, apperrors.ErrTokenFormat)
}
