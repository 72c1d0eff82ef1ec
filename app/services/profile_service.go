package services

import (
	"context"
	"errors"

	"github.com/shashiranjanraj/staybook/app/models"
	"github.com/shashiranjanraj/staybook/pkg/auth"
	"github.com/shashiranjanraj/staybook/pkg/rbac"
)

// DefaultGuestName is shown when neither the profile nor the identity
// carries a name.
const DefaultGuestName = "Royal Guest"

// ProfileView is the merged profile returned to the signed-in user.
type ProfileView struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	AvatarURL string    `json:"avatar_url"`
	Role      rbac.Role `json:"role"`
	IsAdmin   bool      `json:"is_admin"`
}

type ProfileService struct {
	profiles ProfileStore
}

func NewProfileService(profiles ProfileStore) *ProfileService {
	return &ProfileService{profiles: profiles}
}

// Show merges the stored profile with the identity's metadata. Profile
// values win; a missing profile means a guest.
func (s *ProfileService) Show(ctx context.Context, u *auth.User) (*ProfileView, error) {
	p, err := s.profiles.Find(ctx, u.ID)
	if errors.Is(err, ErrNotFound) {
		p = &models.Profile{ID: u.ID, Role: rbac.RoleGuest}
	} else if err != nil {
		return nil, err
	}

	role := rbac.ParseRole(string(p.Role))
	return &ProfileView{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  firstNonEmpty(p.FullName, u.FullName, DefaultGuestName),
		AvatarURL: firstNonEmpty(p.AvatarURL, u.AvatarURL),
		Role:      role,
		IsAdmin:   role.IsAdmin(),
	}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
