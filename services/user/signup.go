package user

import (
	"context"
	"errors"

	userRepo "localconnect/database/repository/user"
	"localconnect/models"

	"go.uber.org/zap"
)

// Signup validates the request, hashes the password and creates the account.
func (s *DefaultUserService) Signup(ctx context.Context, req models.SignupRequest) (*models.PublicUser, error) {
	req = NormalizeSignup(req)
	if err := ValidateSignup(req); err != nil {
		return nil, err
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		s.Logger.Error("Signup: failed to hash password", zap.Error(err))
		return nil, err
	}

	u := &models.User{
		Username:     req.Username,
		Phone:        req.Phone,
		Email:        req.Email,
		PasswordHash: hash,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, userRepo.ErrTaken) {
			return nil, ErrAccountTaken
		}
		s.Logger.Error("Signup: failed to create user", zap.Error(err))
		return nil, err
	}

	s.Logger.Info("user signed up", zap.String("userId", u.ID.Hex()))
	return publicUser(u), nil
}

func publicUser(u *models.User) *models.PublicUser {
	return &models.PublicUser{
		ID:       u.ID.Hex(),
		Username: u.Username,
		Email:    u.Email,
		Phone:    u.Phone,
	}
}
