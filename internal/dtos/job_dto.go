package dtos

import (
	"strings"
	"time"

	"github.com/justsurfingit/Odd-Jobs-Marketplace/internal/models"
)

// DateLayout is the wire format for calendar dates (estimated date, birth date).
const DateLayout = "2006-01-02"

type JobCreationRequest struct {
	Title         string  `json:"title" validate:"min=5"`
	Description   string  `json:"description" validate:"min=20"`
	Category      string  `json:"category" validate:"required,category"`
	Province      string  `json:"province" validate:"required,province"`
	Budget        float64 `json:"budget" validate:"gt=0"`
	EstimatedDate string  `json:"estimated_date" validate:"omitempty,date"`
}

// Normalize trims the free-text fields before validation.
func (r *JobCreationRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	r.EstimatedDate = strings.TrimSpace(r.EstimatedDate)
}

func (r *JobCreationRequest) Validate() error { return validateStruct(r) }

// ToJob builds an open job owned by publisherID. Call Validate first.
func (r *JobCreationRequest) ToJob(publisherID string) *models.Job {
	return &models.Job{
		Title:         r.Title,
		Description:   r.Description,
		Category:      models.JobCategory(r.Category),
		Province:      models.Province(r.Province),
		Budget:        r.Budget,
		Status:        models.JobOpen,
		EstimatedDate: parseDate(r.EstimatedDate),
		PublisherID:   publisherID,
	}
}

// JobEditRequest is the admin edit form. Every field is written back on save.
type JobEditRequest struct {
	Title         string  `json:"title" validate:"min=5"`
	Description   string  `json:"description" validate:"min=20"`
	Category      string  `json:"category" validate:"required,category"`
	Province      string  `json:"province" validate:"required,province"`
	Budget        float64 `json:"budget" validate:"gte=0"`
	Status        string  `json:"status" validate:"required,job_status"`
	EstimatedDate string  `json:"estimated_date" validate:"omitempty,date"`
	AssignedTo    string  `json:"assigned_to" validate:"omitempty,uuid"`
}

// NewJobEditRequest pre-populates the form from the stored record.
func NewJobEditRequest(j *models.Job) JobEditRequest {
	req := JobEditRequest{
		Title:       j.Title,
		Description: j.Description,
		Category:    string(j.Category),
		Province:    string(j.Province),
		Budget:      j.Budget,
		Status:      string(j.Status),
	}
	if j.EstimatedDate != nil {
		req.EstimatedDate = j.EstimatedDate.Format(DateLayout)
	}
	if j.AssignedTo != nil {
		req.AssignedTo = *j.AssignedTo
	}
	return req
}

func (r *JobEditRequest) Validate() error {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	r.AssignedTo = strings.TrimSpace(r.AssignedTo)
	return validateStruct(r)
}

// Fields returns the column map for a full-record update. publisher_id is never included.
func (r *JobEditRequest) Fields() map[string]any {
	return map[string]any{
		"title":          r.Title,
		"description":    r.Description,
		"category":       models.JobCategory(r.Category),
		"province":       models.Province(r.Province),
		"budget":         r.Budget,
		"status":         models.JobStatus(r.Status),
		"estimated_date": parseDate(r.EstimatedDate),
		"assigned_to":    optional(r.AssignedTo),
	}
}

type JobStatusRequest struct {
	Status string `json:"status" validate:"required,job_status"`
}

func (r *JobStatusRequest) Validate() error { return validateStruct(r) }

type ApplicationCreationRequest struct {
	Message string `json:"message" validate:"max=2000"`
}

func (r *ApplicationCreationRequest) Validate() error { return validateStruct(r) }

type ApplicationStatusRequest struct {
	Status string `json:"status" validate:"required,application_status"`
}

func (r *ApplicationStatusRequest) Validate() error { return validateStruct(r) }

func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return nil
	}
	return &t
}

// optional maps an empty or blank string to nil so it is stored as NULL.
func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
