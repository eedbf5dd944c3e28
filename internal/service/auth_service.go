package service

import (
	"context"
	"errors"

	"firefly-assistant/internal/dto"
	"firefly-assistant/internal/models"
	"firefly-assistant/pkg/auth"

	"go.uber.org/zap"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAuthDisabled       = errors.New("authentication is disabled")
)

// AuthService authenticates the single configured operator.
type AuthService struct {
	user       *models.User
	jwtManager *auth.JWTManager
	logger     *zap.Logger
}

// NewAuthService hashes password once at startup. An empty password disables login.
func NewAuthService(username, password string, jwtManager *auth.JWTManager, logger *zap.Logger) (*AuthService, error) {
	s := &AuthService{jwtManager: jwtManager, logger: logger}
	if password == "" {
		logger.Warn("AUTH_PASSWORD is empty, login is disabled")
		return s, nil
	}

	hashedPassword, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	s.user = models.NewUser(username, hashedPassword)
	return s, nil
}

func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	if s.user == nil {
		return nil, ErrAuthDisabled
	}
	if req.Username != s.user.Username || !auth.CheckPasswordHash(req.Password, s.user.PasswordHash) {
		s.logger.Warn("Failed login attempt", zap.String("username", req.Username))
		return nil, ErrInvalidCredentials
	}
	return s.issueTokens()
}

func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.AuthResponse, error) {
	if s.user == nil {
		return nil, ErrAuthDisabled
	}

	claims, err := s.jwtManager.ValidateToken(refreshToken)
	if err != nil || claims.TokenType != auth.TokenTypeRefresh {
		return nil, ErrInvalidCredentials
	}
	if claims.UserID != s.user.ID.String() {
		return nil, ErrInvalidCredentials
	}
	return s.issueTokens()
}

func (s *AuthService) issueTokens() (*dto.AuthResponse, error) {
	accessToken, err := s.jwtManager.GenerateToken(s.user.ID.String(), s.user.Username)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(s.user.ID.String(), s.user.Username)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.jwtManager.GetTokenDuration().Seconds()),
		User: dto.UserResponse{
			ID:       s.user.ID.String(),
			Username: s.user.Username,
		},
	}, nil
}
