package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/staybook/app/models"
	"github.com/shashiranjanraj/staybook/pkg/auth"
)

// UserRepository handles identity records.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

// FindUser implements auth.UserFinder.
func (r *UserRepository) FindUser(ctx context.Context, id string) (*auth.User, error) {
	u, err := r.FindByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return u.Identity(), nil
}

// Save inserts the user or, when the email exists, refreshes its
// credentials and metadata. u.ID is set to the stored id.
func (r *UserRepository) Save(ctx context.Context, u *models.User) error {
	existing, err := r.FindByEmail(ctx, u.Email)
	switch {
	case errors.Is(err, ErrNotFound):
		if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
			return fmt.Errorf("users: create: %w", err)
		}
		return nil
	case err != nil:
		return err
	}

	u.ID = existing.ID
	err = r.db.WithContext(ctx).Model(existing).Updates(map[string]any{
		"password_hash": u.PasswordHash,
		"full_name":     u.FullName,
		"avatar_url":    u.AvatarURL,
	}).Error
	if err != nil {
		return fmt.Errorf("users: update: %w", err)
	}
	return nil
}
