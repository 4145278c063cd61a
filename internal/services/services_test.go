package services

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justsurfingit/Odd-Jobs-Marketplace/internal/auth"
	"github.com/justsurfingit/Odd-Jobs-Marketplace/internal/models"
	"github.com/justsurfingit/Odd-Jobs-Marketplace/internal/repository"
	"github.com/justsurfingit/Odd-Jobs-Marketplace/internal/repository/memory"
)

type recorder struct {
	mu   sync.Mutex
	keys []string
}

func (r *recorder) Publish(_ context.Context, key string, _ any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.keys = append(r.keys, key)
	return nil
}

func (r *recorder) Close() error { return nil }

func (r *recorder) published() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.keys...)
}

type fixture struct {
	store *repository.Store
	pub   *recorder
	jobs  *JobService
	apps  *ApplicationService
	prof  *ProfileService
	admin *AdminService
}

func newFixture() *fixture {
	store := memory.NewStore().Repositories()
	pub := &recorder{}
	return &fixture{
		store: store,
		pub:   pub,
		jobs:  NewJobService(store, pub, nil),
		apps:  NewApplicationService(store, pub, nil),
		prof:  NewProfileService(store, pub, nil),
		admin: NewAdminService(store, pub, nil),
	}
}

func user(id string) auth.Session {
	return auth.Session{UserID: id, Authenticated: true, Roles: []models.Role{models.RoleUser}}
}

func admin(id string) auth.Session {
	return auth.Session{UserID: id, Authenticated: true, Roles: []models.Role{models.RoleUser, models.RoleAdmin}}
}

func (f *fixture) addProfile(t *testing.T, userID, first, last, email string) *models.Profile {
	t.Helper()
	p := &models.Profile{UserID: userID, FirstName: first, LastName: last, Email: email}
	require.NoError(t, f.store.Profiles.Create(context.Background(), p))
	return p
}

func (f *fixture) addJob(t *testing.T, publisher, title string, cat models.JobCategory, prov models.Province, status models.JobStatus) *models.Job {
	t.Helper()
	j := &models.Job{
		Title: title, Description: "Descripción suficientemente larga del trabajo",
		Category: cat, Province: prov, Budget: 50, Status: status, PublisherID: publisher,
	}
	require.NoError(t, f.store.Jobs.Create(context.Background(), j))
	return j
}

func newID() string { return uuid.NewString() }

func allOpen(t *testing.T, jobs []models.Job) {
	t.Helper()
	for _, j := range jobs {
		assert.Equal(t, models.JobOpen, j.Status)
	}
}

func ids(jobs []models.Job) []string {
	out := make([]string, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, j.ID)
	}
	return out
}

func containsAll(t *testing.T, super, sub []string) {
	t.Helper()
	set := map[string]bool{}
	for _, id := range super {
		set[id] = true
	}
	for _, id := range sub {
		assert.True(t, set[id], "missing %s", id)
	}
}
