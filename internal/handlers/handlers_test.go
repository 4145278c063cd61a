package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justsurfingit/Odd-Jobs-Marketplace/internal/auth"
	"github.com/justsurfingit/Odd-Jobs-Marketplace/internal/models"
	"github.com/justsurfingit/Odd-Jobs-Marketplace/internal/repository"
	"github.com/justsurfingit/Odd-Jobs-Marketplace/internal/repository/memory"
	"github.com/justsurfingit/Odd-Jobs-Marketplace/internal/services"
)

const testSecret = "handler-secret"

type testAPI struct {
	t      *testing.T
	router *gin.Engine
	store  *repository.Store
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	return newTestAPIWithStore(t, memory.NewStore().Repositories())
}

func newTestAPIWithStore(t *testing.T, store *repository.Store) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	r := NewRouter(RouterConfig{
		ServiceName:  "marketplace-test",
		CORSOrigins:  []string{"*"},
		Jobs:         services.NewJobService(store, nil, log),
		Applications: services.NewApplicationService(store, nil, log),
		Profiles:     services.NewProfileService(store, nil, log),
		Admin:        services.NewAdminService(store, nil, log),
		Sessions:     auth.NewResolver(auth.NewVerifier(testSecret), store.Roles),
		Log:          log,
	})
	return &testAPI{t: t, router: r, store: store}
}

func (a *testAPI) token(userID string) string {
	tok, err := auth.IssueToken(testSecret, userID, userID+"@example.com", time.Hour)
	require.NoError(a.t, err)
	return tok
}

func (a *testAPI) do(method, path, userID string, body any) (*httptest.ResponseRecorder, map[string]any) {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("Authorization", "Bearer "+a.token(userID))
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	var out map[string]any
	if w.Body.Len() > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &out)
	}
	return w, out
}

func (a *testAPI) makeAdmin(userID string) {
	require.NoError(a.t, a.store.Roles.Grant(context.Background(), userID, models.RoleAdmin))
}

func (a *testAPI) addJob(publisher string, status models.JobStatus) *models.Job {
	j := &models.Job{
		Title: "Montar armario", Description: "Montar un armario de tres puertas en el dormitorio",
		Category: models.CategoryOtros, Province: "madrid", Budget: 80, Status: status, PublisherID: publisher,
	}
	require.NoError(a.t, a.store.Jobs.Create(context.Background(), j))
	return j
}

func TestHealthAndEnums(t *testing.T) {
	api := newTestAPI(t)

	w, body := api.do(http.MethodGet, "/api/v1/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", body["status"])

	w, body = api.do(http.MethodGet, "/api/v1/meta/enums", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, body["provinces"], 52)
	assert.Len(t, body["categories"], 8)
	first := body["job_statuses"].([]any)[0].(map[string]any)
	assert.Equal(t, "open", first["value"])
	assert.Equal(t, "Abierto", first["label"])
}

func TestCreateJob(t *testing.T) {
	api := newTestAPI(t)
	me := uuid.NewString()

	w, _ := api.do(http.MethodPost, "/api/v1/jobs", "", map[string]any{"title": "Fix kitchen sink"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, body := api.do(http.MethodPost, "/api/v1/jobs", me, map[string]any{
		"title": "Fix", "description": "The kitchen sink is leaky", "category": "reparaciones", "province": "madrid", "budget": 50,
	})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "validation_failed", body["error"])
	assert.Contains(t, body["fields"], "title")

	w, body = api.do(http.MethodPost, "/api/v1/jobs", me, map[string]any{
		"title": "Fix kitchen sink", "description": "The kitchen sink is leaky", "category": "reparaciones", "province": "madrid", "budget": 50,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	job := body["job"].(map[string]any)
	assert.Equal(t, "open", job["status"])
	assert.Equal(t, me, job["publisher_id"])

	w, body = api.do(http.MethodGet, "/api/v1/me/jobs?group=open", me, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, body["jobs"], 1)
}

func TestListJobsOnlyOpen(t *testing.T) {
	api := newTestAPI(t)
	pub := uuid.NewString()
	open := api.addJob(pub, models.JobOpen)
	api.addJob(pub, models.JobCancelled)

	w, body := api.do(http.MethodGet, "/api/v1/jobs?category=all&province=all", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	jobs := body["jobs"].([]any)
	require.Len(t, jobs, 1)
	assert.Equal(t, open.ID, jobs[0].(map[string]any)["id"])

	w, body = api.do(http.MethodGet, "/api/v1/jobs?category=limpieza", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, body["jobs"])
}

func TestApplyFlow(t *testing.T) {
	api := newTestAPI(t)
	a, b := uuid.NewString(), uuid.NewString()
	job := api.addJob(b, models.JobOpen)
	path := "/api/v1/jobs/" + job.ID

	_, body := api.do(http.MethodGet, path, "", nil)
	assert.Equal(t, map[string]any{"available": false, "reason": "login_required", "has_applied": false}, body["apply"])

	_, body = api.do(http.MethodGet, path, b, nil)
	assert.Equal(t, "own_job", body["apply"].(map[string]any)["reason"])

	_, body = api.do(http.MethodGet, path, a, nil)
	assert.Equal(t, true, body["apply"].(map[string]any)["available"])

	w, body := api.do(http.MethodPost, path+"/applications", a, map[string]any{"message": "I can do this"})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "applied", body["outcome"])

	w, body = api.do(http.MethodPost, path+"/applications", a, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "already_applied", body["outcome"])
	assert.Equal(t, true, body["has_applied"])

	rows, err := api.store.Applications.ListByJob(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	_, body = api.do(http.MethodGet, path+"/application", a, nil)
	assert.Equal(t, true, body["has_applied"])

	w, body = api.do(http.MethodPost, path+"/applications", b, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "own_job", body["error"])

	w, body = api.do(http.MethodGet, "/api/v1/me/applications", a, nil)
	require.Equal(t, http.StatusOK, w.Code)
	apps := body["applications"].([]any)
	require.Len(t, apps, 1)
	assert.Equal(t, job.Title, apps[0].(map[string]any)["job"].(map[string]any)["title"])
}

func TestApplyToClosedJob(t *testing.T) {
	api := newTestAPI(t)
	job := api.addJob(uuid.NewString(), models.JobAssigned)

	w, body := api.do(http.MethodPost, "/api/v1/jobs/"+job.ID+"/applications", uuid.NewString(), nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "job_not_open", body["error"])
	assert.Equal(t, msgJobNotOpen, body["message"])
}

func TestJobNotFound(t *testing.T) {
	api := newTestAPI(t)
	w, body := api.do(http.MethodGet, "/api/v1/jobs/"+uuid.NewString(), "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "not_found", body["error"])
}

func TestSessionProvisionsAndProfile(t *testing.T) {
	api := newTestAPI(t)
	me := uuid.NewString()

	w, body := api.do(http.MethodGet, "/api/v1/me/session", me, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, body["is_admin"])
	assert.Equal(t, []any{"user"}, body["roles"])

	w, body = api.do(http.MethodPut, "/api/v1/me/profile", me, map[string]any{
		"first_name": "Ana", "last_name": "García", "phone": "", "province": "madrid", "email": "hacker@example.com",
	})
	require.Equal(t, http.StatusOK, w.Code)
	p := body["profile"].(map[string]any)
	assert.Equal(t, "Ana", p["first_name"])
	assert.Nil(t, p["phone"])
	assert.Equal(t, me+"@example.com", p["email"])

	w, body = api.do(http.MethodPut, "/api/v1/me/profile", me, map[string]any{
		"first_name": "Ana", "last_name": "García", "province": "atlantida",
	})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "validation_failed", body["error"])
	assert.Contains(t, body["fields"], "province")

	w, body = api.do(http.MethodGet, "/api/v1/me/profile", me, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "madrid", body["province"])
}

func TestSessionKeepsRevokedRole(t *testing.T) {
	api := newTestAPI(t)
	adm, u := uuid.NewString(), uuid.NewString()
	api.makeAdmin(adm)
	w, _ := api.do(http.MethodGet, "/api/v1/me/session", u, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, body := api.do(http.MethodDelete, "/api/v1/admin/users/"+u+"/roles/user", adm, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, body["roles"])

	w, body = api.do(http.MethodGet, "/api/v1/me/session", u, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, body["roles"])
}

func TestAdminRoutesRequireAdmin(t *testing.T) {
	api := newTestAPI(t)
	plain := uuid.NewString()

	for _, path := range []string{"/api/v1/admin/stats", "/api/v1/admin/jobs", "/api/v1/admin/users"} {
		w, _ := api.do(http.MethodGet, path, plain, nil)
		assert.Equal(t, http.StatusForbidden, w.Code, path)
		w, _ = api.do(http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestAdminJobManagement(t *testing.T) {
	api := newTestAPI(t)
	adm := uuid.NewString()
	api.makeAdmin(adm)
	job := api.addJob(uuid.NewString(), models.JobOpen)
	for i := 0; i < 3; i++ {
		w, _ := api.do(http.MethodPost, "/api/v1/jobs/"+job.ID+"/applications", uuid.NewString(), nil)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w, body := api.do(http.MethodGet, "/api/v1/admin/stats", adm, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, body["open_jobs"])

	w, body = api.do(http.MethodPatch, "/api/v1/admin/jobs/"+job.ID+"/status", adm, map[string]any{"status": "archived"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w, body = api.do(http.MethodPatch, "/api/v1/admin/jobs/"+job.ID+"/status", adm, map[string]any{"status": "completed"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "completed", body["job"].(map[string]any)["status"])

	w, body = api.do(http.MethodGet, "/api/v1/admin/jobs/"+job.ID, adm, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, job.Title, body["title"])
	assert.NotContains(t, body, "publisher_id")

	w, body = api.do(http.MethodGet, "/api/v1/admin/jobs/"+job.ID+"/applications", adm, nil)
	require.Equal(t, http.StatusOK, w.Code)
	apps := body["applications"].([]any)
	require.Len(t, apps, 3)
	appID := apps[0].(map[string]any)["id"].(string)

	w, body = api.do(http.MethodPatch, "/api/v1/admin/applications/"+appID+"/status", adm, map[string]any{"status": "accepted"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "accepted", body["application"].(map[string]any)["status"])

	w, body = api.do(http.MethodDelete, "/api/v1/admin/jobs/"+job.ID, adm, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 3, body["applications_removed"])

	w, body = api.do(http.MethodGet, "/api/v1/admin/jobs/"+job.ID+"/applications", adm, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, body["applications"])
}

func TestAdminUserManagement(t *testing.T) {
	api := newTestAPI(t)
	adm, u := uuid.NewString(), uuid.NewString()
	api.makeAdmin(adm)
	w, _ := api.do(http.MethodGet, "/api/v1/me/session", u, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, body := api.do(http.MethodGet, "/api/v1/admin/users?q="+u[:8], adm, nil)
	require.Equal(t, http.StatusOK, w.Code)
	users := body["users"].([]any)
	require.Len(t, users, 1)
	assert.Equal(t, []any{"user"}, users[0].(map[string]any)["roles"])

	w, body = api.do(http.MethodPost, "/api/v1/admin/users/"+u+"/toggle-status", adm, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "suspended", body["user"].(map[string]any)["account_status"])
	assert.Equal(t, msgUserSuspended, body["message"])

	w, body = api.do(http.MethodPut, "/api/v1/admin/users/"+u+"/roles/admin", adm, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.ElementsMatch(t, []any{"user", "admin"}, body["roles"])

	w, body = api.do(http.MethodDelete, "/api/v1/admin/users/"+u+"/roles/admin", adm, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []any{"user"}, body["roles"])

	w, body = api.do(http.MethodPut, "/api/v1/admin/users/"+u+"/roles/owner", adm, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_role", body["error"])

	w, body = api.do(http.MethodGet, "/api/v1/admin/users/"+u, adm, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body["first_name"], body["last_name"] = "Ana", "García"
	w, body = api.do(http.MethodPut, "/api/v1/admin/users/"+u, adm, body)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Ana", body["user"].(map[string]any)["first_name"])
	assert.Equal(t, "suspended", body["user"].(map[string]any)["account_status"])
}

type failingJobs struct{ repository.JobStore }

func (failingJobs) List(context.Context, repository.JobFilter) ([]models.Job, error) {
	return nil, errors.New("connection refused")
}

func TestListFailureReturnsEmptyCollection(t *testing.T) {
	store := memory.NewStore().Repositories()
	store.Jobs = failingJobs{store.Jobs}
	api := newTestAPIWithStore(t, store)

	w, body := api.do(http.MethodGet, "/api/v1/jobs", "", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, []any{}, body["jobs"])
	assert.Equal(t, msgJobsLoadFailed, body["message"])
	assert.NotContains(t, w.Body.String(), "connection refused")
}
