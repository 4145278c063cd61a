package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/justsurfingit/Odd-Jobs-Marketplace/internal/models"
)

type ApplicationRepo struct{ db *gorm.DB }

func NewApplicationRepo(db *gorm.DB) *ApplicationRepo {
	return &ApplicationRepo{db: db}
}

func (r *ApplicationRepo) Exists(ctx context.Context, jobID, applicantID string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.JobApplication{}).
		Where("job_id = ? AND applicant_id = ?", jobID, applicantID).
		Count(&n).Error
	if err != nil {
		return false, translate(err)
	}
	return n > 0, nil
}

func (r *ApplicationRepo) Create(ctx context.Context, a *models.JobApplication) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.Status == "" {
		a.Status = models.ApplicationPending
	}
	return translate(r.db.WithContext(ctx).Create(a).Error)
}

func (r *ApplicationRepo) ListByJob(ctx context.Context, jobID string) ([]models.JobApplication, error) {
	var out []models.JobApplication
	err := r.db.WithContext(ctx).Where("job_id = ?", jobID).Order("created_at DESC").Find(&out).Error
	if err != nil {
		return nil, translate(err)
	}
	return out, nil
}

func (r *ApplicationRepo) ListByApplicant(ctx context.Context, applicantID string) ([]models.JobApplication, error) {
	var out []models.JobApplication
	err := r.db.WithContext(ctx).Where("applicant_id = ?", applicantID).Order("created_at DESC").Find(&out).Error
	if err != nil {
		return nil, translate(err)
	}
	return out, nil
}

func (r *ApplicationRepo) UpdateStatus(ctx context.Context, id string, status models.ApplicationStatus) (*models.JobApplication, error) {
	res := r.db.WithContext(ctx).Model(&models.JobApplication{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return nil, translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	var a models.JobApplication
	if err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &a, nil
}
