package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"supplyease/internal/config"
	"supplyease/internal/dto"
	"supplyease/internal/model"
	"supplyease/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

const (
	bcryptCost       = 12
	defaultAdminName = "admin"
)

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error)
	ListUsers(ctx context.Context) ([]dto.UserResponse, error)
	// EnsureAdmin creates the default admin account when no admin exists.
	EnsureAdmin(ctx context.Context) error
	// UpsertUser creates username or resets its password and role.
	UpsertUser(ctx context.Context, username, password, role string) (*dto.UserResponse, error)
}

type authService struct {
	repo repository.UserRepository
	cfg  *config.Config
}

func NewAuthService(repo repository.UserRepository, cfg *config.Config) AuthService {
	return &authService{repo: repo, cfg: cfg}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.repo.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.generateToken(user, time.Duration(s.cfg.JWTExpirationHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   s.cfg.JWTExpirationHours * 3600,
		User:        toUserResponse(user),
	}, nil
}

func (s *authService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, err
	}
	user := &model.User{Username: req.Username, PasswordHash: string(hash), Role: req.Role}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	resp := toUserResponse(user)
	return &resp, nil
}

func (s *authService) ListUsers(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, len(users))
	for i := range users {
		out[i] = toUserResponse(&users[i])
	}
	return out, nil
}

func (s *authService) EnsureAdmin(ctx context.Context) error {
	n, err := s.repo.CountByRole(ctx, model.RoleAdmin)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	if _, err := s.UpsertUser(ctx, defaultAdminName, s.cfg.DefaultAdminPassword, model.RoleAdmin); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	log.Warn().Str("username", defaultAdminName).Msg("no admin account found, default admin created; change its password")
	return nil
}

func (s *authService) UpsertUser(ctx context.Context, username, password, role string) (*dto.UserResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, err
	}
	user, err := s.repo.FindByUsername(ctx, username)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		user = &model.User{Username: username, PasswordHash: string(hash), Role: role}
		err = s.repo.Create(ctx, user)
	case err == nil:
		user.PasswordHash = string(hash)
		user.Role = role
		err = s.repo.Update(ctx, user)
	}
	if err != nil {
		return nil, err
	}
	resp := toUserResponse(user)
	return &resp, nil
}

func (s *authService) generateToken(user *model.User, duration time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"role":     user.Role,
		"exp":      now.Add(duration).Unix(),
		"iat":      now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func toUserResponse(u *model.User) dto.UserResponse {
	return dto.UserResponse{ID: u.ID, Username: u.Username, Role: u.Role}
}
