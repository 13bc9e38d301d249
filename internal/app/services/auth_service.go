package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/emirkaya/staffdesk/internal/app/models/dto"
	"github.com/emirkaya/staffdesk/internal/app/repositories"
	"github.com/emirkaya/staffdesk/internal/pkg/apperrors"
	"github.com/emirkaya/staffdesk/internal/pkg/auth"
)

// authService implements AuthService against the credential store.
type authService struct {
	credentialRepo repositories.ICredentialRepository
	jwtService     *auth.JWTService
	logger         zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(credentialRepo repositories.ICredentialRepository, jwtService *auth.JWTService, logger zerolog.Logger) AuthService {
	return &authService{
		credentialRepo: credentialRepo,
		jwtService:     jwtService,
		logger:         logger,
	}
}

// Login verifies the credential and issues a session token. An unknown
// username and a wrong password produce the identical error; callers
// must not be able to tell which one occurred.
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	cred, err := s.credentialRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, apperrors.ErrCredentialNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error looking up credential: %w", err)
	}

	if !auth.CheckPassword(cred.PasswordHash, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, expiresIn, err := s.jwtService.GenerateToken(cred)
	if err != nil {
		return nil, fmt.Errorf("error generating token: %w", err)
	}

	s.logger.Info().Str("username", cred.Username).Int64("sno", cred.SequenceNumber).Msg("Admin logged in")

	return &dto.LoginResponse{
		Token:     token,
		Username:  cred.Username,
		ExpiresIn: expiresIn,
	}, nil
}
