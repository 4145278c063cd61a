package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justsurfingit/Odd-Jobs-Marketplace/internal/auth"
	"github.com/justsurfingit/Odd-Jobs-Marketplace/internal/dtos"
	"github.com/justsurfingit/Odd-Jobs-Marketplace/internal/events"
	"github.com/justsurfingit/Odd-Jobs-Marketplace/internal/models"
)

func TestApplicationService_ApplyTwiceYieldsOneRow(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	a, b := newID(), newID()
	job := f.addJob(t, b, "Fix kitchen sink", models.CategoryReparaciones, "madrid", models.JobOpen)

	app, err := f.apps.Apply(ctx, user(a), job.ID, &dtos.ApplicationCreationRequest{Message: "I can do this"})
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationPending, app.Status)
	require.NotNil(t, app.Message)
	assert.Equal(t, "I can do this", *app.Message)

	_, err = f.apps.Apply(ctx, user(a), job.ID, &dtos.ApplicationCreationRequest{Message: "otra vez"})
	assert.ErrorIs(t, err, ErrAlreadyApplied)

	rows, err := f.store.Applications.ListByJob(ctx, job.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "I can do this", *rows[0].Message)

	applied, err := f.apps.HasApplied(ctx, user(a), job.ID)
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, []string{events.ApplicationCreated}, f.pub.published())
}

func TestApplicationService_ApplyRules(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	owner := newID()
	open := f.addJob(t, owner, "Abierto", models.CategoryOtros, "madrid", models.JobOpen)
	assigned := f.addJob(t, owner, "Asignado", models.CategoryOtros, "madrid", models.JobAssigned)

	tests := []struct {
		name  string
		sess  auth.Session
		jobID string
		want  error
	}{
		{"anonymous", auth.Anonymous(), open.ID, ErrUnauthenticated},
		{"own job", user(owner), open.ID, ErrOwnJob},
		{"not open", user(newID()), assigned.ID, ErrJobNotOpen},
		{"missing job", user(newID()), newID(), ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.apps.Apply(ctx, tt.sess, tt.jobID, &dtos.ApplicationCreationRequest{})
			assert.ErrorIs(t, err, tt.want)
		})
	}

	rows, err := f.store.Applications.ListByJob(ctx, open.ID)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestApplicationService_EmptyMessageStoredAsNull(t *testing.T) {
	f := newFixture()
	job := f.addJob(t, newID(), "Trabajo", models.CategoryOtros, "madrid", models.JobOpen)

	app, err := f.apps.Apply(context.Background(), user(newID()), job.ID, &dtos.ApplicationCreationRequest{Message: "   "})
	require.NoError(t, err)
	assert.Nil(t, app.Message)
}

func TestApplicationService_ListMineJoinsJobSummary(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	me, owner := newID(), newID()
	first := f.addJob(t, owner, "Primero", models.CategoryClases, "madrid", models.JobOpen)
	second := f.addJob(t, owner, "Segundo", models.CategoryMudanzas, "sevilla", models.JobOpen)
	_, err := f.apps.Apply(ctx, user(me), first.ID, &dtos.ApplicationCreationRequest{})
	require.NoError(t, err)
	_, err = f.apps.Apply(ctx, user(me), second.ID, &dtos.ApplicationCreationRequest{})
	require.NoError(t, err)
	_, err = f.apps.Apply(ctx, user(newID()), first.ID, &dtos.ApplicationCreationRequest{})
	require.NoError(t, err)

	mine, err := f.apps.ListMine(ctx, user(me))
	require.NoError(t, err)
	require.Len(t, mine, 2)
	require.NotNil(t, mine[0].Job)
	assert.Equal(t, "Segundo", mine[0].Job.Title)
	assert.Equal(t, models.CategoryMudanzas, mine[0].Job.Category)
	assert.Equal(t, "Primero", mine[1].Job.Title)

	_, err = f.apps.ListMine(ctx, auth.Anonymous())
	assert.ErrorIs(t, err, ErrUnauthenticated)
}
