package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shashiranjanraj/staybook/app/models"
	"github.com/shashiranjanraj/staybook/pkg/auth"
	"github.com/shashiranjanraj/staybook/pkg/logger"
	"github.com/shashiranjanraj/staybook/pkg/rbac"
)

// Session is the result of a successful login.
type Session struct {
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expires_at"`
	User      *auth.User `json:"user"`
}

type AuthService struct {
	users    UserStore
	profiles ProfileStore
	tokens   *auth.Tokens
}

func NewAuthService(users UserStore, profiles ProfileStore, tokens *auth.Tokens) *AuthService {
	return &AuthService{users: users, profiles: profiles, tokens: tokens}
}

// Login checks the credentials and issues a session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	u, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !auth.CheckPassword(u.PasswordHash, password) {
		logger.WithCtx(ctx).Info("login rejected", "user_id", u.ID)
		return nil, ErrInvalidCredentials
	}

	token, exp, err := s.tokens.Issue(u.ID)
	if err != nil {
		return nil, fmt.Errorf("auth: issue token: %w", err)
	}
	logger.WithCtx(ctx).Info("login", "user_id", u.ID)
	return &Session{Token: token, ExpiresAt: exp, User: u.Identity()}, nil
}

// NewUser describes an account created from the CLI or the seeders.
type NewUser struct {
	Email    string
	Password string
	FullName string
	Role     rbac.Role
}

// CreateUser stores the identity and its profile. Running it again for
// the same email resets the password, name and role.
func (s *AuthService) CreateUser(ctx context.Context, in NewUser) (*models.User, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, errors.New("auth: email and password are required")
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("auth: hash password: %w", err)
	}

	u := &models.User{Email: email, PasswordHash: hash, FullName: in.FullName}
	if err := s.users.Save(ctx, u); err != nil {
		return nil, err
	}

	p := &models.Profile{ID: u.ID, Role: rbac.ParseRole(string(in.Role)), FullName: in.FullName}
	if err := s.profiles.Upsert(ctx, p); err != nil {
		return nil, err
	}
	return u, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
