package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ecommerce-api/internal/config"
	"ecommerce-api/internal/user/model"
	appErrors "ecommerce-api/pkg/errors"
	"ecommerce-api/pkg/utils"
)

// UserRepository is the persistence surface the service needs. Satisfied by
// repository.UserRepository in production and by stubs in tests.
type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
}

type UserService struct {
	repo   UserRepository
	config *config.Config
}

func NewService(repo UserRepository, cfg *config.Config) *UserService {
	return &UserService{
		repo:   repo,
		config: cfg,
	}
}

func (s *UserService) accessTokenTTL() time.Duration {
	return time.Duration(s.config.JWT.AccessTokenTTLMinutes) * time.Minute
}

func (s *UserService) Signup(ctx context.Context, request *model.SignupRequest) (*model.TokenResponse, error) {
	if err := utils.ValidateStruct(request); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	if _, err := s.repo.GetUserByUsername(ctx, request.Username); err == nil {
		return nil, appErrors.ErrUserAlreadyExists
	} else if !errors.Is(err, appErrors.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing username: %w", err)
	}

	if _, err := s.repo.GetUserByEmail(ctx, request.Email); err == nil {
		return nil, appErrors.ErrUserAlreadyExists
	} else if !errors.Is(err, appErrors.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	}

	hashedPassword, err := utils.HashPassword(request.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Username:       request.Username,
		Email:          request.Email,
		PasswordHashed: hashedPassword,
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	return s.issueToken(user.Username)
}

func (s *UserService) Login(ctx context.Context, request *model.LoginRequest) (*model.TokenResponse, error) {
	if err := utils.ValidateStruct(request); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	user, err := s.repo.GetUserByUsername(ctx, request.Username)
	if err != nil {
		if errors.Is(err, appErrors.ErrUserNotFound) {
			// Same error as a wrong password, so responses do not reveal
			// whether the username exists.
			return nil, appErrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !utils.CheckPassword(user.PasswordHashed, request.Password) {
		return nil, appErrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, appErrors.ErrUserInactive
	}

	return s.issueToken(user.Username)
}

func (s *UserService) issueToken(username string) (*model.TokenResponse, error) {
	token, err := utils.GenerateToken(username, s.config.JWT.Secret, s.accessTokenTTL())
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &model.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	}, nil
}
