package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/justsurfingit/Odd-Jobs-Marketplace/internal/models"
)

type ProfileRepo struct{ db *gorm.DB }

func NewProfileRepo(db *gorm.DB) *ProfileRepo {
	return &ProfileRepo{db: db}
}

func (r *ProfileRepo) GetByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	var p models.Profile
	if err := r.db.WithContext(ctx).First(&p, "user_id = ?", userID).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (r *ProfileRepo) List(ctx context.Context) ([]models.Profile, error) {
	var out []models.Profile
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, translate(err)
	}
	return out, nil
}

func (r *ProfileRepo) ListByUserIDs(ctx context.Context, userIDs []string) ([]models.Profile, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	var out []models.Profile
	if err := r.db.WithContext(ctx).Where("user_id IN ?", userIDs).Find(&out).Error; err != nil {
		return nil, translate(err)
	}
	return out, nil
}

func (r *ProfileRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.Profile{}).Count(&n).Error; err != nil {
		return 0, translate(err)
	}
	return n, nil
}

func (r *ProfileRepo) Create(ctx context.Context, p *models.Profile) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.AccountStatus == "" {
		p.AccountStatus = models.AccountActive
	}
	return translate(r.db.WithContext(ctx).Create(p).Error)
}

func (r *ProfileRepo) UpdateByUserID(ctx context.Context, userID string, fields map[string]any) (*models.Profile, error) {
	return r.update(ctx, "user_id = ?", userID, fields)
}

func (r *ProfileRepo) update(ctx context.Context, where, key string, fields map[string]any) (*models.Profile, error) {
	res := r.db.WithContext(ctx).Model(&models.Profile{}).Where(where, key).Updates(without(fields, "id", "user_id"))
	if res.Error != nil {
		return nil, translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	var p models.Profile
	if err := r.db.WithContext(ctx).First(&p, where, key).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}
