// Package repository is the data-access boundary. Storage engines report missing rows as ErrNotFound
// and uniqueness violations as ErrConflict; callers never inspect engine error codes.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/justsurfingit/Odd-Jobs-Marketplace/internal/models"
)

var (
	ErrNotFound = errors.New("record not found")
	ErrConflict = errors.New("conflicting record")
)

// SQLSTATEs postgres raises for a duplicate key and for a malformed uuid literal.
const (
	pgUniqueViolation = "23505"
	pgInvalidText     = "22P02"
)

// JobFilter holds equality constraints. Zero fields constrain nothing.
type JobFilter struct {
	Category    models.JobCategory
	Province    models.Province
	Status      models.JobStatus
	PublisherID string
}

type JobStore interface {
	Get(ctx context.Context, id string) (*models.Job, error)
	ListByIDs(ctx context.Context, ids []string) ([]models.Job, error)
	// List returns matches newest first.
	List(ctx context.Context, f JobFilter) ([]models.Job, error)
	Count(ctx context.Context, f JobFilter) (int64, error)
	Create(ctx context.Context, j *models.Job) error
	Update(ctx context.Context, id string, fields map[string]any) (*models.Job, error)
	// DeleteWithApplications removes the job and every application referencing it, all or nothing.
	// It returns the number of applications removed.
	DeleteWithApplications(ctx context.Context, id string) (int64, error)
}

type ApplicationStore interface {
	Exists(ctx context.Context, jobID, applicantID string) (bool, error)
	// Create fails with ErrConflict when the (job, applicant) pair already exists.
	Create(ctx context.Context, a *models.JobApplication) error
	// ListByJob and ListByApplicant return newest first.
	ListByJob(ctx context.Context, jobID string) ([]models.JobApplication, error)
	ListByApplicant(ctx context.Context, applicantID string) ([]models.JobApplication, error)
	UpdateStatus(ctx context.Context, id string, status models.ApplicationStatus) (*models.JobApplication, error)
}

type ProfileStore interface {
	GetByUserID(ctx context.Context, userID string) (*models.Profile, error)
	// List returns every profile newest first.
	List(ctx context.Context) ([]models.Profile, error)
	ListByUserIDs(ctx context.Context, userIDs []string) ([]models.Profile, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, p *models.Profile) error
	UpdateByUserID(ctx context.Context, userID string, fields map[string]any) (*models.Profile, error)
}

type RoleStore interface {
	ListByUser(ctx context.Context, userID string) ([]models.Role, error)
	ListAll(ctx context.Context) ([]models.UserRole, error)
	// Grant fails with ErrConflict when the user already holds the role.
	Grant(ctx context.Context, userID string, role models.Role) error
	// Revoke removes exactly the (user, role) row. It returns ErrNotFound when there is none.
	Revoke(ctx context.Context, userID string, role models.Role) error
}

// Store bundles the four entity stores behind one value.
type Store struct {
	Jobs         JobStore
	Applications ApplicationStore
	Profiles     ProfileStore
	Roles        RoleStore
}

// NewGormStore wires every store to the same gorm handle.
func NewGormStore(db *gorm.DB) *Store {
	return &Store{
		Jobs:         NewJobRepo(db),
		Applications: NewApplicationRepo(db),
		Profiles:     NewProfileRepo(db),
		Roles:        NewRoleRepo(db),
	}
}

// translate maps engine errors onto the boundary's typed errors.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %v", ErrConflict, err)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%w: %s", ErrConflict, pgErr.ConstraintName)
		case pgInvalidText:
			// ids are uuid columns; a key that cannot be one matches no row
			return ErrNotFound
		}
	}
	return err
}

// without returns a copy of fields minus the given keys.
func without(fields map[string]any, keys ...string) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		out[k] = v
	}
	for _, k := range keys {
		delete(out, k)
	}
	return out
}
