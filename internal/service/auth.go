package service

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/bookloans/library-service/internal/errs"
	"github.com/bookloans/library-service/internal/model"
	"github.com/bookloans/library-service/pkg/auth"
)

const bcryptCost = 10

func (s *Service) Register(ctx context.Context, req model.UserCreateRequest) (model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return model.User{}, errors.Wrap(err, "hash password")
	}
	return s.repo.CreateUser(ctx, model.User{
		Username: req.Username,
		Password: string(hash),
		UserRole: req.Role,
	})
}

// Login answers with a single error for unknown users and wrong passwords,
// so a caller cannot probe which usernames exist.
func (s *Service) Login(ctx context.Context, req model.AuthRequest) (model.AuthResponse, error) {
	user, err := s.repo.GetUserByName(ctx, req.Username)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return model.AuthResponse{}, errs.ErrBadCredentials
		}
		return model.AuthResponse{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return model.AuthResponse{}, errs.ErrBadCredentials
	}

	token, expiresAt, err := auth.NewToken(s.jwtCfg, auth.Profile{
		UserID:   user.UserID,
		Username: user.Username,
		Role:     user.UserRole,
	})
	if err != nil {
		return model.AuthResponse{}, errors.Wrap(err, "sign token")
	}
	s.log.Debug("user logged in", zap.String("username", user.Username))

	return model.AuthResponse{
		AccessToken: token,
		ExpiresIn:   int(expiresAt.Unix()),
	}, nil
}

func (s *Service) GetUser(ctx context.Context, id int) (model.User, error) {
	return s.repo.GetUser(ctx, id)
}

// DeleteUser checks existence first so a missing id reports not found
// instead of silently succeeding.
func (s *Service) DeleteUser(ctx context.Context, id int) error {
	if _, err := s.repo.GetUser(ctx, id); err != nil {
		return err
	}
	return s.repo.DeleteUser(ctx, id)
}
