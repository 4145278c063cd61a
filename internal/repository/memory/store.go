// Package memory keeps every entity in process memory behind one lock. It honours the same contract
// as the gorm store, including the (job, applicant) and (user, role) uniqueness constraints.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/justsurfingit/Odd-Jobs-Marketplace/internal/models"
	"github.com/justsurfingit/Odd-Jobs-Marketplace/internal/repository"
)

type Store struct {
	mu       sync.RWMutex
	now      func() time.Time
	jobs     map[string]models.Job
	apps     map[string]models.JobApplication
	profiles map[string]models.Profile
	roles    map[string]models.UserRole
}

// NewStore returns an empty store. Timestamps strictly increase so "newest first" is deterministic.
func NewStore() *Store {
	var (
		clockMu sync.Mutex
		last    time.Time
	)
	return &Store{
		now: func() time.Time {
			clockMu.Lock()
			defer clockMu.Unlock()
			t := time.Now().UTC()
			if !t.After(last) {
				t = last.Add(time.Microsecond)
			}
			last = t
			return t
		},
		jobs:     map[string]models.Job{},
		apps:     map[string]models.JobApplication{},
		profiles: map[string]models.Profile{},
		roles:    map[string]models.UserRole{},
	}
}

// Repositories exposes the store through the repository interfaces.
func (s *Store) Repositories() *repository.Store {
	return &repository.Store{
		Jobs:         jobStore{s},
		Applications: applicationStore{s},
		Profiles:     profileStore{s},
		Roles:        roleStore{s},
	}
}

// ---------------- JOBS ----------------

type jobStore struct{ s *Store }

func (j jobStore) Get(_ context.Context, id string) (*models.Job, error) {
	j.s.mu.RLock()
	defer j.s.mu.RUnlock()
	job, ok := j.s.jobs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &job, nil
}

func (j jobStore) ListByIDs(_ context.Context, ids []string) ([]models.Job, error) {
	j.s.mu.RLock()
	defer j.s.mu.RUnlock()
	var out []models.Job
	for _, id := range ids {
		if job, ok := j.s.jobs[id]; ok {
			out = append(out, job)
		}
	}
	return out, nil
}

func matches(job models.Job, f repository.JobFilter) bool {
	return (f.Category == "" || job.Category == f.Category) &&
		(f.Province == "" || job.Province == f.Province) &&
		(f.Status == "" || job.Status == f.Status) &&
		(f.PublisherID == "" || job.PublisherID == f.PublisherID)
}

func (j jobStore) List(_ context.Context, f repository.JobFilter) ([]models.Job, error) {
	j.s.mu.RLock()
	defer j.s.mu.RUnlock()
	var out []models.Job
	for _, job := range j.s.jobs {
		if matches(job, f) {
			out = append(out, job)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].CreatedAt.After(out[b].CreatedAt) })
	return out, nil
}

func (j jobStore) Count(ctx context.Context, f repository.JobFilter) (int64, error) {
	list, err := j.List(ctx, f)
	return int64(len(list)), err
}

func (j jobStore) Create(_ context.Context, job *models.Job) error {
	j.s.mu.Lock()
	defer j.s.mu.Unlock()
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	if _, dup := j.s.jobs[job.ID]; dup {
		return fmt.Errorf("%w: job %s", repository.ErrConflict, job.ID)
	}
	if job.Status == "" {
		job.Status = models.JobOpen
	}
	now := j.s.now()
	job.CreatedAt, job.UpdatedAt = now, now
	j.s.jobs[job.ID] = *job
	return nil
}

func (j jobStore) Update(_ context.Context, id string, fields map[string]any) (*models.Job, error) {
	j.s.mu.Lock()
	defer j.s.mu.Unlock()
	job, ok := j.s.jobs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	for k, v := range fields {
		if err := setJobField(&job, k, v); err != nil {
			return nil, err
		}
	}
	job.UpdatedAt = j.s.now()
	j.s.jobs[id] = job
	return &job, nil
}

func (j jobStore) DeleteWithApplications(_ context.Context, id string) (int64, error) {
	j.s.mu.Lock()
	defer j.s.mu.Unlock()
	if _, ok := j.s.jobs[id]; !ok {
		return 0, repository.ErrNotFound
	}
	var removed int64
	for appID, a := range j.s.apps {
		if a.JobID == id {
			delete(j.s.apps, appID)
			removed++
		}
	}
	delete(j.s.jobs, id)
	return removed, nil
}

// ---------------- APPLICATIONS ----------------

type applicationStore struct{ s *Store }

func (a applicationStore) Exists(_ context.Context, jobID, applicantID string) (bool, error) {
	a.s.mu.RLock()
	defer a.s.mu.RUnlock()
	return a.s.existsLocked(jobID, applicantID), nil
}

func (s *Store) existsLocked(jobID, applicantID string) bool {
	for _, app := range s.apps {
		if app.JobID == jobID && app.ApplicantID == applicantID {
			return true
		}
	}
	return false
}

func (a applicationStore) Create(_ context.Context, app *models.JobApplication) error {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	if _, ok := a.s.jobs[app.JobID]; !ok {
		return fmt.Errorf("job %s: %w", app.JobID, repository.ErrNotFound)
	}
	if a.s.existsLocked(app.JobID, app.ApplicantID) {
		return fmt.Errorf("%w: idx_job_applicant", repository.ErrConflict)
	}
	if app.ID == "" {
		app.ID = uuid.NewString()
	}
	if app.Status == "" {
		app.Status = models.ApplicationPending
	}
	app.CreatedAt = a.s.now()
	a.s.apps[app.ID] = *app
	return nil
}

func (a applicationStore) list(keep func(models.JobApplication) bool) []models.JobApplication {
	a.s.mu.RLock()
	defer a.s.mu.RUnlock()
	var out []models.JobApplication
	for _, app := range a.s.apps {
		if keep(app) {
			out = append(out, app)
		}
	}
	sort.Slice(out, func(i, k int) bool { return out[i].CreatedAt.After(out[k].CreatedAt) })
	return out
}

func (a applicationStore) ListByJob(_ context.Context, jobID string) ([]models.JobApplication, error) {
	return a.list(func(app models.JobApplication) bool { return app.JobID == jobID }), nil
}

func (a applicationStore) ListByApplicant(_ context.Context, applicantID string) ([]models.JobApplication, error) {
	return a.list(func(app models.JobApplication) bool { return app.ApplicantID == applicantID }), nil
}

func (a applicationStore) UpdateStatus(_ context.Context, id string, status models.ApplicationStatus) (*models.JobApplication, error) {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	app, ok := a.s.apps[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	app.Status = status
	a.s.apps[id] = app
	return &app, nil
}

// ---------------- PROFILES ----------------

type profileStore struct{ s *Store }

func (p profileStore) GetByUserID(_ context.Context, userID string) (*models.Profile, error) {
	p.s.mu.RLock()
	defer p.s.mu.RUnlock()
	if prof, ok := p.s.profileByUserLocked(userID); ok {
		return &prof, nil
	}
	return nil, repository.ErrNotFound
}

func (s *Store) profileByUserLocked(userID string) (models.Profile, bool) {
	for _, prof := range s.profiles {
		if prof.UserID == userID {
			return prof, true
		}
	}
	return models.Profile{}, false
}

func (p profileStore) List(_ context.Context) ([]models.Profile, error) {
	p.s.mu.RLock()
	defer p.s.mu.RUnlock()
	out := make([]models.Profile, 0, len(p.s.profiles))
	for _, prof := range p.s.profiles {
		out = append(out, prof)
	}
	sort.Slice(out, func(i, k int) bool { return out[i].CreatedAt.After(out[k].CreatedAt) })
	return out, nil
}

func (p profileStore) ListByUserIDs(_ context.Context, userIDs []string) ([]models.Profile, error) {
	p.s.mu.RLock()
	defer p.s.mu.RUnlock()
	var out []models.Profile
	for _, id := range userIDs {
		if prof, ok := p.s.profileByUserLocked(id); ok {
			out = append(out, prof)
		}
	}
	return out, nil
}

func (p profileStore) Count(_ context.Context) (int64, error) {
	p.s.mu.RLock()
	defer p.s.mu.RUnlock()
	return int64(len(p.s.profiles)), nil
}

func (p profileStore) Create(_ context.Context, prof *models.Profile) error {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	if _, dup := p.s.profileByUserLocked(prof.UserID); dup {
		return fmt.Errorf("%w: profiles_user_id", repository.ErrConflict)
	}
	if prof.ID == "" {
		prof.ID = uuid.NewString()
	}
	if prof.AccountStatus == "" {
		prof.AccountStatus = models.AccountActive
	}
	now := p.s.now()
	prof.CreatedAt, prof.UpdatedAt = now, now
	p.s.profiles[prof.ID] = *prof
	return nil
}

func (p profileStore) UpdateByUserID(_ context.Context, userID string, fields map[string]any) (*models.Profile, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	prof, ok := p.s.profileByUserLocked(userID)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return p.apply(prof, fields)
}

func (p profileStore) apply(prof models.Profile, fields map[string]any) (*models.Profile, error) {
	for k, v := range fields {
		if err := setProfileField(&prof, k, v); err != nil {
			return nil, err
		}
	}
	prof.UpdatedAt = p.s.now()
	p.s.profiles[prof.ID] = prof
	return &prof, nil
}

// ---------------- ROLES ----------------

type roleStore struct{ s *Store }

func (r roleStore) ListByUser(_ context.Context, userID string) ([]models.Role, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []models.Role
	for _, ur := range r.s.roles {
		if ur.UserID == userID {
			out = append(out, ur.Role)
		}
	}
	sort.Slice(out, func(i, k int) bool { return out[i] < out[k] })
	return out, nil
}

func (r roleStore) ListAll(_ context.Context) ([]models.UserRole, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]models.UserRole, 0, len(r.s.roles))
	for _, ur := range r.s.roles {
		out = append(out, ur)
	}
	sort.Slice(out, func(i, k int) bool {
		if out[i].UserID != out[k].UserID {
			return out[i].UserID < out[k].UserID
		}
		return out[i].Role < out[k].Role
	})
	return out, nil
}

func roleKey(userID string, role models.Role) string { return userID + "/" + string(role) }

func (r roleStore) Grant(_ context.Context, userID string, role models.Role) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := roleKey(userID, role)
	if _, dup := r.s.roles[key]; dup {
		return fmt.Errorf("%w: idx_user_role", repository.ErrConflict)
	}
	r.s.roles[key] = models.UserRole{ID: uuid.NewString(), CreatedAt: r.s.now(), UserID: userID, Role: role}
	return nil
}

func (r roleStore) Revoke(_ context.Context, userID string, role models.Role) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := roleKey(userID, role)
	if _, ok := r.s.roles[key]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.roles, key)
	return nil
}
