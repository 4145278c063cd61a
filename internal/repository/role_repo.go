package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/justsurfingit/Odd-Jobs-Marketplace/internal/models"
)

type RoleRepo struct{ db *gorm.DB }

func NewRoleRepo(db *gorm.DB) *RoleRepo {
	return &RoleRepo{db: db}
}

func (r *RoleRepo) ListByUser(ctx context.Context, userID string) ([]models.Role, error) {
	var roles []models.Role
	err := r.db.WithContext(ctx).Model(&models.UserRole{}).
		Where("user_id = ?", userID).
		Order("role ASC").
		Pluck("role", &roles).Error
	if err != nil {
		return nil, translate(err)
	}
	return roles, nil
}

func (r *RoleRepo) ListAll(ctx context.Context) ([]models.UserRole, error) {
	var out []models.UserRole
	if err := r.db.WithContext(ctx).Order("user_id, role").Find(&out).Error; err != nil {
		return nil, translate(err)
	}
	return out, nil
}

func (r *RoleRepo) Grant(ctx context.Context, userID string, role models.Role) error {
	row := models.UserRole{ID: uuid.NewString(), UserID: userID, Role: role}
	return translate(r.db.WithContext(ctx).Create(&row).Error)
}

func (r *RoleRepo) Revoke(ctx context.Context, userID string, role models.Role) error {
	res := r.db.WithContext(ctx).Where("user_id = ? AND role = ?", userID, role).Delete(&models.UserRole{})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
