// Package rbac decides which requests may reach the admin area.
//
// The policy is a pure function over an explicit Session value; the Gate
// middleware is the only place that talks to the identity provider and
// turns a Decision into an HTTP redirect.
package rbac

import (
	"errors"
	"strings"
)

// Role is a profile's access tier.
type Role string

const (
	RoleGuest Role = "guest"
	RoleAdmin Role = "admin"
)

// ParseRole maps stored role strings onto the closed Role set. Anything
// unrecognised is a guest.
func ParseRole(s string) Role {
	if Role(strings.ToLower(strings.TrimSpace(s))) == RoleAdmin {
		return RoleAdmin
	}
	return RoleGuest
}

func (r Role) IsAdmin() bool { return r == RoleAdmin }

// Session is what the identity lookup learned about the requester.
type Session struct {
	Authenticated bool
	Role          Role
}

// Anonymous is the session of a requester without valid credentials.
var Anonymous = Session{}

// Decision is either Allow or a redirect to Target.
type Decision struct {
	Target string
}

// Allow lets the request through.
var Allow = Decision{}

// RedirectTo denies the request and names where to send the requester.
func RedirectTo(target string) Decision { return Decision{Target: target} }

func (d Decision) Allowed() bool { return d.Target == "" }

func (d Decision) String() string {
	if d.Allowed() {
		return "allow"
	}
	return "redirect:" + d.Target
}

// ErrLookupFailed reports that the session could not be resolved. Callers
// treat it as an anonymous session.
var ErrLookupFailed = errors.New("rbac: session lookup failed")

const (
	AdminPrefix = "/admin"
	LoginPath   = "/login"
	HomePath    = "/"
)

// Authorize applies the admin gate rules in order; the first match wins.
func Authorize(path string, s Session) Decision {
	if !IsProtected(path) {
		return Allow
	}
	if !s.Authenticated {
		return RedirectTo(LoginPath)
	}
	if !s.Role.IsAdmin() {
		return RedirectTo(HomePath)
	}
	return Allow
}

// IsProtected reports whether path is /admin or lives below it.
func IsProtected(path string) bool {
	if !strings.HasPrefix(path, AdminPrefix) {
		return false
	}
	rest := path[len(AdminPrefix):]
	return rest == "" || rest[0] == '/'
}
