// Package auth is the identity provider: it issues session tokens, reads
// them back from requests and resolves the signed-in user.
package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

// CookieName carries the session token for browser clients.
const CookieName = "staybook_token"

// User is the identity record exposed to the rest of the application.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FullName  string `json:"full_name,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// UserFinder loads identity records. It returns (nil, nil) when the user
// does not exist.
type UserFinder interface {
	FindUser(ctx context.Context, id string) (*User, error)
}

// Identity resolves the user behind a request. A request without
// credentials yields (nil, nil); errors are reserved for lookup failures.
type Identity interface {
	CurrentUser(r *http.Request) (*User, error)
}

// TokenIdentity reads a bearer token or session cookie and loads the user.
type TokenIdentity struct {
	Tokens *Tokens
	Users  UserFinder
}

// CurrentUser implements Identity. Invalid or expired tokens and deleted
// users are treated as anonymous.
func (ti *TokenIdentity) CurrentUser(r *http.Request) (*User, error) {
	raw := TokenFromRequest(r)
	if raw == "" {
		return nil, nil
	}

	claims, err := ti.Tokens.Parse(raw)
	if err != nil {
		if errors.Is(err, ErrInvalidToken) {
			return nil, nil
		}
		return nil, err
	}

	return ti.Users.FindUser(r.Context(), claims.UserID)
}

// TokenFromRequest prefers the Authorization header over the cookie.
func TokenFromRequest(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		scheme, token, ok := strings.Cut(h, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
	}
	if c, err := r.Cookie(CookieName); err == nil {
		return c.Value
	}
	return ""
}

type ctxKey struct{}

// WithUser stores the resolved user in ctx.
func WithUser(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, ctxKey{}, u)
}

// UserFromCtx returns the user stored by WithUser.
func UserFromCtx(ctx context.Context) (*User, bool) {
	u, ok := ctx.Value(ctxKey{}).(*User)
	return u, ok && u != nil
}
