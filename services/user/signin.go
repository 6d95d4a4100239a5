package user

import (
	"context"
	"errors"
	"strings"

	"localconnect/database/repository"
	"localconnect/models"
	"localconnect/utils"

	"go.uber.org/zap"
)

// Login authenticates by username or email and issues a one hour user token.
func (s *DefaultUserService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	identifier := strings.TrimSpace(req.Login())
	if identifier == "" {
		return nil, ErrIdentifierRequired
	}

	u, err := s.Repo.GetByIdentifier(ctx, identifier)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		s.Logger.Error("Login: failed to fetch user", zap.Error(err))
		return nil, err
	}
	if !CheckPassword(u.PasswordHash, req.Password) {
		return nil, ErrInvalidCredentials
	}

	subject := u.ID.Hex()
	token, err := utils.GenerateToken(subject, u.Email, utils.RoleUser, utils.UserTokenTTL)
	if err != nil {
		s.Logger.Error("Login: failed to generate token", zap.Error(err))
		return nil, err
	}
	if s.Sessions != nil {
		if err := s.Sessions.Save(ctx, utils.RoleUser, subject, token, utils.UserTokenTTL); err != nil {
			s.Logger.Error("Login: failed to record session", zap.Error(err))
			return nil, err
		}
	}

	return &models.AuthResponse{
		Message: "Login successful",
		Token:   token,
		User:    *publicUser(u),
	}, nil
}

// Logout revokes token.
func (s *DefaultUserService) Logout(ctx context.Context, userID, token string) error {
	if s.Sessions == nil {
		return nil
	}
	return s.Sessions.Revoke(ctx, utils.RoleUser, userID, token)
}

// GetUserByID returns the public view of a user.
func (s *DefaultUserService) GetUserByID(ctx context.Context, userID string) (*models.PublicUser, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return publicUser(u), nil
}
