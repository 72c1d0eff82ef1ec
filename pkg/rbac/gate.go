package rbac

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/shashiranjanraj/staybook/pkg/auth"
	"github.com/shashiranjanraj/staybook/pkg/logger"
	"github.com/shashiranjanraj/staybook/pkg/metrics"
	"github.com/shashiranjanraj/staybook/pkg/response"
)

// RoleSource reads a user's profile role. A user without a profile is a
// guest and must be reported as (RoleGuest, nil).
type RoleSource interface {
	RoleOf(ctx context.Context, userID string) (Role, error)
}

// DefaultLookupTimeout bounds the identity and role lookup.
const DefaultLookupTimeout = 3 * time.Second

// Resolver builds a Session for a request from the identity provider and
// the profile store.
type Resolver struct {
	Identity auth.Identity
	Roles    RoleSource
	Timeout  time.Duration
}

type resolved struct {
	session Session
	user    *auth.User
	err     error
}

// Resolve looks up the requester. Any failure, including the timeout
// expiring, is returned wrapped in ErrLookupFailed.
func (res *Resolver) Resolve(r *http.Request) (Session, *auth.User, error) {
	timeout := res.Timeout
	if timeout <= 0 {
		timeout = DefaultLookupTimeout
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeout)
	defer cancel()

	done := make(chan resolved, 1)
	go func() {
		s, u, err := res.lookup(r.WithContext(ctx))
		done <- resolved{session: s, user: u, err: err}
	}()

	select {
	case out := <-done:
		if out.err != nil {
			return Anonymous, nil, fmt.Errorf("%w: %w", ErrLookupFailed, out.err)
		}
		return out.session, out.user, nil
	case <-ctx.Done():
		return Anonymous, nil, fmt.Errorf("%w: %w", ErrLookupFailed, ctx.Err())
	}
}

func (res *Resolver) lookup(r *http.Request) (Session, *auth.User, error) {
	user, err := res.Identity.CurrentUser(r)
	if err != nil {
		return Anonymous, nil, err
	}
	if user == nil {
		return Anonymous, nil, nil
	}

	role, err := res.Roles.RoleOf(r.Context(), user.ID)
	if err != nil {
		return Anonymous, nil, err
	}
	return Session{Authenticated: true, Role: role}, user, nil
}

// Gate protects everything under /admin. Browsers are redirected with 302;
// JSON clients get 401 (login required) or 403 with the redirect target in
// the envelope. A failed lookup is treated as an anonymous session.
func Gate(res *Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.Path
			if !IsProtected(path) {
				next.ServeHTTP(w, r)
				return
			}

			session, user, err := res.Resolve(r)
			if err != nil {
				logger.WithCtx(r.Context()).Warn("admin gate: session lookup failed",
					"path", path, "error", err)
				metrics.GateLookupFailures.Inc()
				session, user = Anonymous, nil
			}

			decision := Authorize(path, session)
			metrics.GateDecisions.WithLabelValues(decision.String()).Inc()
			if !decision.Allowed() {
				deny(w, r, decision)
				return
			}

			if user != nil {
				r = r.WithContext(auth.WithUser(r.Context(), user))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func deny(w http.ResponseWriter, r *http.Request, d Decision) {
	if !wantsJSON(r) {
		http.Redirect(w, r, d.Target, http.StatusFound)
		return
	}
	status := http.StatusForbidden
	if d.Target == LoginPath {
		status = http.StatusUnauthorized
	}
	response.Denied(w, status, d.Target)
}

func wantsJSON(r *http.Request) bool {
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		return true
	}
	return strings.EqualFold(r.Header.Get("X-Requested-With"), "XMLHttpRequest")
}

