package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justsurfingit/Odd-Jobs-Marketplace/internal/dtos"
	"github.com/justsurfingit/Odd-Jobs-Marketplace/internal/events"
	"github.com/justsurfingit/Odd-Jobs-Marketplace/internal/models"
)

func TestAdminService_RequiresAdmin(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	plain := user(newID())
	job := f.addJob(t, newID(), "Trabajo", models.CategoryOtros, "madrid", models.JobOpen)

	_, err := f.admin.Stats(ctx, plain)
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = f.admin.ListJobs(ctx, plain, AdminJobsQuery{})
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = f.admin.SetJobStatus(ctx, plain, job.ID, models.JobCancelled)
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = f.admin.DeleteJob(ctx, plain, job.ID)
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = f.admin.GrantRole(ctx, plain, plain.UserID, models.RoleAdmin)
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = f.admin.ListUsers(ctx, plain, AdminUsersQuery{})
	assert.ErrorIs(t, err, ErrForbidden)

	stored, err := f.store.Jobs.Get(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, models.JobOpen, stored.Status)
}

func TestAdminService_Stats(t *testing.T) {
	f := newFixture()
	pub := newID()
	f.addProfile(t, pub, "Pablo", "Ruiz", "pablo@example.com")
	f.addJob(t, pub, "Uno", models.CategoryOtros, "madrid", models.JobOpen)
	f.addJob(t, pub, "Dos", models.CategoryOtros, "madrid", models.JobCompleted)
	f.addJob(t, pub, "Tres", models.CategoryOtros, "madrid", models.JobCancelled)

	st, err := f.admin.Stats(context.Background(), admin(newID()))
	require.NoError(t, err)
	assert.Equal(t, Stats{TotalUsers: 1, TotalJobs: 3, OpenJobs: 1, CompletedJobs: 1}, *st)
}

func TestAdminService_ListJobsFilters(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	pub := newID()
	f.addProfile(t, pub, "Pablo", "Ruiz", "pablo@example.com")
	sink := f.addJob(t, pub, "Fregadero roto", models.CategoryReparaciones, "madrid", models.JobOpen)
	f.addJob(t, pub, "Mudanza piso", models.CategoryMudanzas, "madrid", models.JobCompleted)
	f.addJob(t, newID(), "Clases de inglés", models.CategoryClases, "madrid", models.JobCancelled)

	rows, err := f.admin.ListJobs(ctx, admin(newID()), AdminJobsQuery{Status: "all", Category: "all"})
	require.NoError(t, err)
	assert.Len(t, rows, 3, "admin sees every status")

	rows, err = f.admin.ListJobs(ctx, admin(newID()), AdminJobsQuery{Search: "FREGA"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, sink.ID, rows[0].ID)
	assert.Equal(t, "Pablo Ruiz", rows[0].PublisherName)

	rows, err = f.admin.ListJobs(ctx, admin(newID()), AdminJobsQuery{Status: "completed", Category: "mudanzas"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Mudanza piso", rows[0].Title)

	rows, err = f.admin.ListJobs(ctx, admin(newID()), AdminJobsQuery{Category: "clases"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Empty(t, rows[0].PublisherName)
}

func TestAdminService_EditJobCancelLeavesRecord(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	job := f.addJob(t, newID(), "Pintar habitación", models.CategoryReparaciones, "madrid", models.JobOpen)
	before, err := f.store.Jobs.Get(ctx, job.ID)
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		form, err := f.admin.GetJobForEdit(ctx, admin(newID()), job.ID)
		require.NoError(t, err)
		form.Title = "Edición descartada"
	}

	after, err := f.store.Jobs.Get(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestAdminService_UpdateJobFullRecord(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	owner, worker := newID(), newID()
	job := f.addJob(t, owner, "Pintar habitación", models.CategoryReparaciones, "madrid", models.JobOpen)

	form, err := f.admin.GetJobForEdit(ctx, admin(newID()), job.ID)
	require.NoError(t, err)
	form.Status = string(models.JobAssigned)
	form.AssignedTo = worker
	form.Budget = 0
	form.EstimatedDate = "2025-03-01"

	got, err := f.admin.UpdateJob(ctx, admin(newID()), job.ID, form)
	require.NoError(t, err)
	assert.Equal(t, models.JobAssigned, got.Status)
	assert.Equal(t, owner, got.PublisherID)
	require.NotNil(t, got.AssignedTo)
	assert.Equal(t, worker, *got.AssignedTo)
	assert.Zero(t, got.Budget)

	form.Title = "No"
	_, err = f.admin.UpdateJob(ctx, admin(newID()), job.ID, form)
	var verr *dtos.ValidationError
	assert.ErrorAs(t, err, &verr)

	_, err = f.admin.UpdateJob(ctx, admin(newID()), newID(), &dtos.JobEditRequest{
		Title: "Trabajo válido", Description: "Una descripción suficientemente larga",
		Category: "otros", Province: "madrid", Status: "open",
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAdminService_SetJobStatusPermissive(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	job := f.addJob(t, newID(), "Trabajo", models.CategoryOtros, "madrid", models.JobCompleted)

	for _, st := range []models.JobStatus{models.JobOpen, models.JobCancelled, models.JobApproved, models.JobOpen} {
		got, err := f.admin.SetJobStatus(ctx, admin(newID()), job.ID, st)
		require.NoError(t, err)
		assert.Equal(t, st, got.Status)
	}
	_, err := f.admin.SetJobStatus(ctx, admin(newID()), job.ID, "archived")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestAdminService_DeleteJobRemovesApplications(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	job := f.addJob(t, newID(), "Trabajo", models.CategoryOtros, "madrid", models.JobOpen)
	for i := 0; i < 3; i++ {
		_, err := f.apps.Apply(ctx, user(newID()), job.ID, &dtos.ApplicationCreationRequest{})
		require.NoError(t, err)
	}

	n, err := f.admin.DeleteJob(ctx, admin(newID()), job.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)

	_, err = f.store.Jobs.Get(ctx, job.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	rows, err := f.admin.ListJobApplications(ctx, admin(newID()), job.ID)
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.Contains(t, f.pub.published(), events.JobDeleted)

	_, err = f.admin.DeleteJob(ctx, admin(newID()), job.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAdminService_Applications(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	job := f.addJob(t, newID(), "Trabajo", models.CategoryOtros, "madrid", models.JobOpen)
	known, unknown := newID(), newID()
	f.addProfile(t, known, "Marta", "López", "marta@example.com")
	app, err := f.apps.Apply(ctx, user(known), job.ID, &dtos.ApplicationCreationRequest{Message: "Hola"})
	require.NoError(t, err)
	_, err = f.apps.Apply(ctx, user(unknown), job.ID, &dtos.ApplicationCreationRequest{})
	require.NoError(t, err)

	rows, err := f.admin.ListJobApplications(ctx, admin(newID()), job.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Nil(t, rows[0].Applicant)
	require.NotNil(t, rows[1].Applicant)
	assert.Equal(t, "marta@example.com", rows[1].Applicant.Email)

	got, err := f.admin.SetApplicationStatus(ctx, admin(newID()), app.ID, models.ApplicationAccepted)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationAccepted, got.Status)

	stored, err := f.store.Jobs.Get(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, models.JobOpen, stored.Status, "accepting does not touch the job")
	assert.Nil(t, stored.AssignedTo)

	_, err = f.admin.SetApplicationStatus(ctx, admin(newID()), app.ID, "maybe")
	assert.ErrorIs(t, err, ErrInvalidStatus)
	_, err = f.admin.SetApplicationStatus(ctx, admin(newID()), newID(), models.ApplicationRejected)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAdminService_ListUsersSearch(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	ana, luis := newID(), newID()
	f.addProfile(t, ana, "Ana", "García", "ana@example.com")
	f.addProfile(t, luis, "Luis", "Martín", "luis@correo.es")
	dni := "12345678Z"
	_, err := f.store.Profiles.UpdateByUserID(ctx, luis, map[string]any{"dni_nie": &dni, "account_status": models.AccountSuspended})
	require.NoError(t, err)
	require.NoError(t, f.store.Roles.Grant(ctx, ana, models.RoleUser))
	require.NoError(t, f.store.Roles.Grant(ctx, ana, models.RoleAdmin))

	tests := []struct {
		name string
		q    AdminUsersQuery
		want []string
	}{
		{"everyone", AdminUsersQuery{}, []string{luis, ana}},
		{"by last name", AdminUsersQuery{Search: "garc"}, []string{ana}},
		{"by email", AdminUsersQuery{Search: "CORREO.ES"}, []string{luis}},
		{"by national id", AdminUsersQuery{Search: "678z"}, []string{luis}},
		{"by status", AdminUsersQuery{AccountStatus: "suspended"}, []string{luis}},
		{"status all", AdminUsersQuery{AccountStatus: "all"}, []string{luis, ana}},
		{"no match", AdminUsersQuery{Search: "zzz"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := f.admin.ListUsers(ctx, admin(newID()), tt.q)
			require.NoError(t, err)
			got := make([]string, 0, len(rows))
			for _, r := range rows {
				got = append(got, r.UserID)
			}
			assert.Equal(t, tt.want, got)
		})
	}

	rows, err := f.admin.ListUsers(ctx, admin(newID()), AdminUsersQuery{Search: "ana"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.ElementsMatch(t, []models.Role{models.RoleUser, models.RoleAdmin}, rows[0].Roles)
}

func TestAdminService_UpdateUser(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	u := newID()
	f.addProfile(t, u, "Ana", "García", "ana@example.com")

	form, err := f.admin.GetUserForEdit(ctx, admin(newID()), u)
	require.NoError(t, err)
	form.Email = "ana.garcia@example.com"
	form.AccountStatus = string(models.AccountPending)

	got, err := f.admin.UpdateUser(ctx, admin(newID()), u, form)
	require.NoError(t, err)
	assert.Equal(t, "ana.garcia@example.com", got.Email)
	assert.Equal(t, models.AccountPending, got.AccountStatus)

	form.Email = "no-es-un-email"
	_, err = f.admin.UpdateUser(ctx, admin(newID()), u, form)
	var verr *dtos.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "email")
}

func TestAdminService_ToggleAccountStatus(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	u := newID()
	f.addProfile(t, u, "Ana", "García", "ana@example.com")
	_, err := f.store.Profiles.UpdateByUserID(ctx, u, map[string]any{"account_status": models.AccountSuspended})
	require.NoError(t, err)

	got, err := f.admin.ToggleAccountStatus(ctx, admin(newID()), u)
	require.NoError(t, err)
	assert.Equal(t, models.AccountActive, got.AccountStatus)

	got, err = f.admin.ToggleAccountStatus(ctx, admin(newID()), u)
	require.NoError(t, err)
	assert.Equal(t, models.AccountSuspended, got.AccountStatus)

	for i := 0; i < 5; i++ {
		got, err = f.admin.ToggleAccountStatus(ctx, admin(newID()), u)
		require.NoError(t, err)
		assert.NotEqual(t, models.AccountPending, got.AccountStatus)
	}

	_, err = f.store.Profiles.UpdateByUserID(ctx, u, map[string]any{"account_status": models.AccountPending})
	require.NoError(t, err)
	got, err = f.admin.ToggleAccountStatus(ctx, admin(newID()), u)
	require.NoError(t, err)
	assert.Equal(t, models.AccountActive, got.AccountStatus)
}

func TestAdminService_RoleToggleRoundTrip(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	u := newID()
	require.NoError(t, f.store.Roles.Grant(ctx, u, models.RoleUser))
	adm := admin(newID())

	before, err := f.admin.ListRoles(ctx, adm, u)
	require.NoError(t, err)

	roles, err := f.admin.GrantRole(ctx, adm, u, models.RoleAdmin)
	require.NoError(t, err)
	assert.ElementsMatch(t, []models.Role{models.RoleUser, models.RoleAdmin}, roles)

	roles, err = f.admin.GrantRole(ctx, adm, u, models.RoleAdmin)
	require.NoError(t, err)
	assert.Len(t, roles, 2)

	roles, err = f.admin.RevokeRole(ctx, adm, u, models.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, before, roles)

	roles, err = f.admin.RevokeRole(ctx, adm, u, models.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, []models.Role{models.RoleUser}, roles)

	_, err = f.admin.GrantRole(ctx, adm, u, "owner")
	assert.ErrorIs(t, err, ErrInvalidRole)

	assert.Equal(t, []string{events.RoleGranted, events.RoleRevoked}, f.pub.published())
}
