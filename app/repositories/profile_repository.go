package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shashiranjanraj/staybook/app/models"
	"github.com/shashiranjanraj/staybook/pkg/rbac"
)

// ProfileRepository reads application profiles.
type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) Find(ctx context.Context, id string) (*models.Profile, error) {
	var p models.Profile
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

// RoleOf implements rbac.RoleSource. A user without a profile is a guest.
func (r *ProfileRepository) RoleOf(ctx context.Context, userID string) (rbac.Role, error) {
	p, err := r.Find(ctx, userID)
	if errors.Is(err, ErrNotFound) {
		return rbac.RoleGuest, nil
	}
	if err != nil {
		return "", fmt.Errorf("profiles: role: %w", err)
	}
	return rbac.ParseRole(string(p.Role)), nil
}

// Upsert writes the profile, replacing role and metadata on conflict.
func (r *ProfileRepository) Upsert(ctx context.Context, p *models.Profile) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"role", "full_name", "avatar_url", "updated_at"}),
	}).Create(p).Error
	if err != nil {
		return fmt.Errorf("profiles: upsert: %w", err)
	}
	return nil
}
