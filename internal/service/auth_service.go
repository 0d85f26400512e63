package service

import (
	"context"
	"fmt"
	"time"

	appErr "github.com/xxxsen/volcano/internal/pkg/errors"
	"github.com/xxxsen/volcano/internal/pkg/jwt"
	"github.com/xxxsen/volcano/internal/pkg/password"
)

const (
	msgIncompleteRegister = "Request body incomplete, both email and password are required"
	msgIncompleteLogin    = "Request body incomplete, email and password are required"
	msgUserExists         = "User already exists"
	msgBadCredentials     = "Incorrect email or password"
)

type LoginResult struct {
	Token     string `json:"token"`
	TokenType string `json:"token_type"`
	ExpiresIn int64  `json:"expires_in"`
}

type AuthService struct {
	users     UserStore
	jwtSecret []byte
	jwtTTL    time.Duration
	now       func() time.Time
}

func NewAuthService(users UserStore, secret []byte, ttl time.Duration) *AuthService {
	return &AuthService{users: users, jwtSecret: secret, jwtTTL: ttl, now: time.Now}
}

func (s *AuthService) Register(ctx context.Context, email, plainPassword string) error {
	if email == "" || plainPassword == "" {
		return appErr.New(appErr.ErrInvalid, msgIncompleteRegister)
	}
	_, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		return appErr.New(appErr.ErrConflict, msgUserExists)
	}
	if !appErr.IsNotFound(err) {
		return fmt.Errorf("lookup user: %w", err)
	}
	hash, err := password.Hash(plainPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.users.Create(ctx, email, hash); err != nil {
		if appErr.IsConflict(err) {
			return appErr.New(appErr.ErrConflict, msgUserExists)
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// Login never tells an unknown email apart from a wrong password.
func (s *AuthService) Login(ctx context.Context, email, plainPassword string) (*LoginResult, error) {
	if email == "" || plainPassword == "" {
		return nil, appErr.New(appErr.ErrInvalid, msgIncompleteLogin)
	}
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if appErr.IsNotFound(err) {
			return nil, appErr.New(appErr.ErrUnauthorized, msgBadCredentials)
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if err := password.Compare(user.PasswordHash, plainPassword); err != nil {
		return nil, appErr.New(appErr.ErrUnauthorized, msgBadCredentials)
	}
	token, err := jwt.GenerateToken(user.Email, s.jwtSecret, s.jwtTTL, s.now())
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &LoginResult{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: int64(s.jwtTTL / time.Second),
	}, nil
}
