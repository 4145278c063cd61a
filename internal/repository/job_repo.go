package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/justsurfingit/Odd-Jobs-Marketplace/internal/models"
)

type JobRepo struct{ db *gorm.DB }

func NewJobRepo(db *gorm.DB) *JobRepo {
	return &JobRepo{db: db}
}

func (r *JobRepo) Get(ctx context.Context, id string) (*models.Job, error) {
	var j models.Job
	if err := r.db.WithContext(ctx).First(&j, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &j, nil
}

func (r *JobRepo) ListByIDs(ctx context.Context, ids []string) ([]models.Job, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var out []models.Job
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&out).Error; err != nil {
		return nil, translate(err)
	}
	return out, nil
}

func (r *JobRepo) filtered(ctx context.Context, f JobFilter) *gorm.DB {
	qb := r.db.WithContext(ctx).Model(&models.Job{})
	if f.Category != "" {
		qb = qb.Where("category = ?", f.Category)
	}
	if f.Province != "" {
		qb = qb.Where("province = ?", f.Province)
	}
	if f.Status != "" {
		qb = qb.Where("status = ?", f.Status)
	}
	if f.PublisherID != "" {
		qb = qb.Where("publisher_id = ?", f.PublisherID)
	}
	return qb
}

func (r *JobRepo) List(ctx context.Context, f JobFilter) ([]models.Job, error) {
	var out []models.Job
	if err := r.filtered(ctx, f).Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, translate(err)
	}
	return out, nil
}

func (r *JobRepo) Count(ctx context.Context, f JobFilter) (int64, error) {
	var n int64
	if err := r.filtered(ctx, f).Count(&n).Error; err != nil {
		return 0, translate(err)
	}
	return n, nil
}

func (r *JobRepo) Create(ctx context.Context, j *models.Job) error {
	if j.ID == "" {
		j.ID = uuid.NewString()
	}
	if j.Status == "" {
		j.Status = models.JobOpen
	}
	return translate(r.db.WithContext(ctx).Create(j).Error)
}

func (r *JobRepo) Update(ctx context.Context, id string, fields map[string]any) (*models.Job, error) {
	res := r.db.WithContext(ctx).Model(&models.Job{}).Where("id = ?", id).Updates(without(fields, "id", "publisher_id"))
	if res.Error != nil {
		return nil, translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.Get(ctx, id)
}

func (r *JobRepo) DeleteWithApplications(ctx context.Context, id string) (int64, error) {
	var removed int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		apps := tx.Where("job_id = ?", id).Delete(&models.JobApplication{})
		if apps.Error != nil {
			return apps.Error
		}
		job := tx.Where("id = ?", id).Delete(&models.Job{})
		if job.Error != nil {
			return job.Error
		}
		if job.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		removed = apps.RowsAffected
		return nil
	})
	if err != nil {
		return 0, translate(err)
	}
	return removed, nil
}
