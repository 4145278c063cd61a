package models

import (
	"time"
)

type Job struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Title         string      `gorm:"not null" json:"title"`
	Description   string      `gorm:"type:text;not null" json:"description"`
	Category      JobCategory `gorm:"type:text;not null;index" json:"category"`
	Province      Province    `gorm:"type:text;not null;index" json:"province"`
	Budget        float64     `gorm:"type:numeric(12,2);not null;check:budget >= 0" json:"budget"`
	Status        JobStatus   `gorm:"type:text;not null;default:'open';index" json:"status"`
	EstimatedDate *time.Time  `gorm:"type:date" json:"estimated_date"`

	// Set once on insert, never part of an update.
	PublisherID string  `gorm:"type:uuid;not null;index" json:"publisher_id"`
	AssignedTo  *string `gorm:"type:uuid" json:"assigned_to"`

	Applications []JobApplication `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

type JobApplication struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	JobID       string            `gorm:"type:uuid;not null;uniqueIndex:idx_job_applicant" json:"job_id"`
	ApplicantID string            `gorm:"type:uuid;not null;uniqueIndex:idx_job_applicant;index" json:"applicant_id"`
	Message     *string           `gorm:"type:text" json:"message"`
	Status      ApplicationStatus `gorm:"type:text;not null;default:'pending'" json:"status"`
}

type Profile struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID    string `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	FirstName string `gorm:"not null" json:"first_name"`
	LastName  string `gorm:"not null" json:"last_name"`
	Email     string `gorm:"not null" json:"email"`

	Phone            *string       `json:"phone"`
	DNINIE           *string       `gorm:"column:dni_nie" json:"dni_nie"`
	Address          *string       `json:"address"`
	Province         *Province     `gorm:"type:text" json:"province"`
	BirthDate        *time.Time    `gorm:"type:date" json:"birth_date"`
	AccountStatus    AccountStatus `gorm:"type:text;not null;default:'active'" json:"account_status"`
	PaymentMethod    *string       `json:"payment_method"`
	CollectionMethod *string       `json:"collection_method"`
}

// FullName joins first and last name the way listings show a person.
func (p Profile) FullName() string {
	switch {
	case p.FirstName == "":
		return p.LastName
	case p.LastName == "":
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}

type UserRole struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	UserID string `gorm:"type:uuid;not null;uniqueIndex:idx_user_role" json:"user_id"`
	Role   Role   `gorm:"type:text;not null;default:'user';uniqueIndex:idx_user_role" json:"role"`
}

func (UserRole) TableName() string { return "user_roles" }
