package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/staybook/pkg/auth"
	"github.com/shashiranjanraj/staybook/pkg/rbac"
)

func TestCreateUserAndLogin(t *testing.T) {
	s := newStores(t)
	tokens := auth.NewTokens("test-secret", time.Hour)
	svc := NewAuthService(s.users, s.profiles, tokens)
	ctx := context.Background()

	u, err := svc.CreateUser(ctx, NewUser{Email: " Admin@Example.com ", Password: "s3cret", FullName: "Admin", Role: rbac.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", u.Email)

	role, err := s.profiles.RoleOf(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, rbac.RoleAdmin, role)

	sess, err := svc.Login(ctx, "ADMIN@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, u.ID, sess.User.ID)

	claims, err := tokens.Parse(sess.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)

	_, err = svc.Login(ctx, "admin@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(ctx, "nobody@example.com", "s3cret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestCreateUserIsIdempotent(t *testing.T) {
	s := newStores(t)
	svc := NewAuthService(s.users, s.profiles, auth.NewTokens("k", time.Hour))
	ctx := context.Background()

	first, err := svc.CreateUser(ctx, NewUser{Email: "a@b.c", Password: "one", Role: rbac.RoleAdmin})
	require.NoError(t, err)
	second, err := svc.CreateUser(ctx, NewUser{Email: "a@b.c", Password: "two", Role: rbac.RoleGuest})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	role, err := s.profiles.RoleOf(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, rbac.RoleGuest, role)

	_, err = svc.Login(ctx, "a@b.c", "one")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(ctx, "a@b.c", "two")
	assert.NoError(t, err)

	_, err = svc.CreateUser(ctx, NewUser{Email: "", Password: "x"})
	assert.Error(t, err)
}
