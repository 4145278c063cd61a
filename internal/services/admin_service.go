package services

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/justsurfingit/Odd-Jobs-Marketplace/internal/auth"
	"github.com/justsurfingit/Odd-Jobs-Marketplace/internal/dtos"
	"github.com/justsurfingit/Odd-Jobs-Marketplace/internal/events"
	"github.com/justsurfingit/Odd-Jobs-Marketplace/internal/models"
	"github.com/justsurfingit/Odd-Jobs-Marketplace/internal/repository"
)

// AdminService is the platform management surface. Every method requires the admin role.
type AdminService struct {
	base
}

func NewAdminService(store *repository.Store, pub events.Publisher, log logrus.FieldLogger) *AdminService {
	return &AdminService{base: newBase(store, pub, log)}
}

type Stats struct {
	TotalUsers    int64 `json:"total_users"`
	TotalJobs     int64 `json:"total_jobs"`
	OpenJobs      int64 `json:"open_jobs"`
	CompletedJobs int64 `json:"completed_jobs"`
}

func (s *AdminService) Stats(ctx context.Context, sess auth.Session) (*Stats, error) {
	if err := requireAdmin(sess); err != nil {
		return nil, err
	}
	var (
		st  Stats
		err error
	)
	if st.TotalUsers, err = s.store.Profiles.Count(ctx); err != nil {
		return nil, s.fail("count users", err, nil)
	}
	if st.TotalJobs, err = s.store.Jobs.Count(ctx, repository.JobFilter{}); err != nil {
		return nil, s.fail("count jobs", err, nil)
	}
	if st.OpenJobs, err = s.store.Jobs.Count(ctx, repository.JobFilter{Status: models.JobOpen}); err != nil {
		return nil, s.fail("count open jobs", err, nil)
	}
	if st.CompletedJobs, err = s.store.Jobs.Count(ctx, repository.JobFilter{Status: models.JobCompleted}); err != nil {
		return nil, s.fail("count completed jobs", err, nil)
	}
	return &st, nil
}

type AdminJobsQuery struct {
	Search   string `form:"q"`
	Status   string `form:"status"`
	Category string `form:"category"`
}

type AdminJobRow struct {
	models.Job
	PublisherName string `json:"publisher_name"`
}

// ListJobs reads every job once, then applies the title search and equality filters locally.
func (s *AdminService) ListJobs(ctx context.Context, sess auth.Session, q AdminJobsQuery) ([]AdminJobRow, error) {
	if err := requireAdmin(sess); err != nil {
		return nil, err
	}
	jobs, err := s.store.Jobs.List(ctx, repository.JobFilter{})
	if err != nil {
		return nil, s.fail("list all jobs", err, nil)
	}
	ids := make([]string, 0, len(jobs))
	for _, j := range jobs {
		ids = append(ids, j.PublisherID)
	}
	profiles, err := s.profilesByUser(ctx, ids)
	if err != nil {
		return nil, s.fail("list publishers", err, nil)
	}

	needle := strings.ToLower(strings.TrimSpace(q.Search))
	out := make([]AdminJobRow, 0, len(jobs))
	for _, j := range jobs {
		if needle != "" && !containsFold(j.Title, needle) {
			continue
		}
		if !isAll(q.Status) && string(j.Status) != q.Status {
			continue
		}
		if !isAll(q.Category) && string(j.Category) != q.Category {
			continue
		}
		row := AdminJobRow{Job: j}
		if p, ok := profiles[j.PublisherID]; ok {
			row.PublisherName = p.FullName()
		}
		out = append(out, row)
	}
	return out, nil
}

// GetJobForEdit returns the edit form pre-populated from the stored job.
func (s *AdminService) GetJobForEdit(ctx context.Context, sess auth.Session, id string) (*dtos.JobEditRequest, error) {
	if err := requireAdmin(sess); err != nil {
		return nil, err
	}
	job, err := s.store.Jobs.Get(ctx, id)
	if err != nil {
		return nil, s.fail("get job", err, logrus.Fields{"job_id": id})
	}
	form := dtos.NewJobEditRequest(job)
	return &form, nil
}

// UpdateJob writes the whole form back. The publisher never changes.
func (s *AdminService) UpdateJob(ctx context.Context, sess auth.Session, id string, req *dtos.JobEditRequest) (*models.Job, error) {
	if err := requireAdmin(sess); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	job, err := s.store.Jobs.Update(ctx, id, req.Fields())
	if err != nil {
		return nil, s.fail("update job", err, logrus.Fields{"job_id": id})
	}
	s.log.WithFields(logrus.Fields{"job_id": id, "admin_id": sess.UserID}).Info("job updated")
	s.publish(ctx, events.JobUpdated, job)
	return job, nil
}

// SetJobStatus accepts any valid status from any other.
func (s *AdminService) SetJobStatus(ctx context.Context, sess auth.Session, id string, status models.JobStatus) (*models.Job, error) {
	if err := requireAdmin(sess); err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	job, err := s.store.Jobs.Update(ctx, id, map[string]any{"status": status})
	if err != nil {
		return nil, s.fail("set job status", err, logrus.Fields{"job_id": id})
	}
	s.publish(ctx, events.JobStatusChanged, map[string]any{"job_id": id, "status": status})
	return job, nil
}

// DeleteJob removes the job and its applications in one transaction and returns how many
// applications went with it.
func (s *AdminService) DeleteJob(ctx context.Context, sess auth.Session, id string) (int64, error) {
	if err := requireAdmin(sess); err != nil {
		return 0, err
	}
	n, err := s.store.Jobs.DeleteWithApplications(ctx, id)
	if err != nil {
		return 0, s.fail("delete job", err, logrus.Fields{"job_id": id})
	}
	s.log.WithFields(logrus.Fields{"job_id": id, "admin_id": sess.UserID, "applications": n}).Info("job deleted")
	s.publish(ctx, events.JobDeleted, map[string]any{"job_id": id, "applications_removed": n})
	return n, nil
}

type Applicant struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

type AdminApplicationRow struct {
	models.JobApplication
	// Applicant is nil when the applicant has no profile.
	Applicant *Applicant `json:"applicant"`
}

func (s *AdminService) ListJobApplications(ctx context.Context, sess auth.Session, jobID string) ([]AdminApplicationRow, error) {
	if err := requireAdmin(sess); err != nil {
		return nil, err
	}
	fields := logrus.Fields{"job_id": jobID}
	apps, err := s.store.Applications.ListByJob(ctx, jobID)
	if err != nil {
		return nil, s.fail("list job applications", err, fields)
	}
	ids := make([]string, 0, len(apps))
	for _, a := range apps {
		ids = append(ids, a.ApplicantID)
	}
	profiles, err := s.profilesByUser(ctx, ids)
	if err != nil {
		return nil, s.fail("list applicants", err, fields)
	}
	out := make([]AdminApplicationRow, 0, len(apps))
	for _, a := range apps {
		row := AdminApplicationRow{JobApplication: a}
		if p, ok := profiles[a.ApplicantID]; ok {
			row.Applicant = &Applicant{FirstName: p.FirstName, LastName: p.LastName, Email: p.Email}
		}
		out = append(out, row)
	}
	return out, nil
}

// SetApplicationStatus changes only the application; the parent job is left as it is.
func (s *AdminService) SetApplicationStatus(ctx context.Context, sess auth.Session, id string, status models.ApplicationStatus) (*models.JobApplication, error) {
	if err := requireAdmin(sess); err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	app, err := s.store.Applications.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, s.fail("set application status", err, logrus.Fields{"application_id": id})
	}
	s.publish(ctx, events.ApplicationStatusChanged, map[string]any{"application_id": id, "job_id": app.JobID, "status": status})
	return app, nil
}

type AdminUsersQuery struct {
	Search        string `form:"q"`
	AccountStatus string `form:"account_status"`
}

type AdminUserRow struct {
	models.Profile
	Roles []models.Role `json:"roles"`
}

// ListUsers reads every profile and role row once, then searches name, email and national id locally.
func (s *AdminService) ListUsers(ctx context.Context, sess auth.Session, q AdminUsersQuery) ([]AdminUserRow, error) {
	if err := requireAdmin(sess); err != nil {
		return nil, err
	}
	profiles, err := s.store.Profiles.List(ctx)
	if err != nil {
		return nil, s.fail("list users", err, nil)
	}
	roleRows, err := s.store.Roles.ListAll(ctx)
	if err != nil {
		return nil, s.fail("list roles", err, nil)
	}
	roles := make(map[string][]models.Role)
	for _, r := range roleRows {
		roles[r.UserID] = append(roles[r.UserID], r.Role)
	}

	needle := strings.ToLower(strings.TrimSpace(q.Search))
	out := make([]AdminUserRow, 0, len(profiles))
	for _, p := range profiles {
		if needle != "" && !matchesUser(p, needle) {
			continue
		}
		if !isAll(q.AccountStatus) && string(p.AccountStatus) != q.AccountStatus {
			continue
		}
		r := roles[p.UserID]
		if r == nil {
			r = []models.Role{}
		}
		out = append(out, AdminUserRow{Profile: p, Roles: r})
	}
	return out, nil
}

func matchesUser(p models.Profile, needle string) bool {
	return containsFold(p.FirstName, needle) ||
		containsFold(p.LastName, needle) ||
		containsFold(p.Email, needle) ||
		(p.DNINIE != nil && containsFold(*p.DNINIE, needle))
}

// GetUserForEdit returns the admin edit form pre-populated from the stored profile.
func (s *AdminService) GetUserForEdit(ctx context.Context, sess auth.Session, userID string) (*dtos.UserEditRequest, error) {
	if err := requireAdmin(sess); err != nil {
		return nil, err
	}
	p, err := s.store.Profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, s.fail("get user", err, logrus.Fields{"user_id": userID})
	}
	form := dtos.NewUserEditRequest(p)
	return &form, nil
}

func (s *AdminService) UpdateUser(ctx context.Context, sess auth.Session, userID string, req *dtos.UserEditRequest) (*models.Profile, error) {
	if err := requireAdmin(sess); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	p, err := s.store.Profiles.UpdateByUserID(ctx, userID, req.Fields())
	if err != nil {
		return nil, s.fail("update user", err, logrus.Fields{"user_id": userID})
	}
	s.log.WithFields(logrus.Fields{"user_id": userID, "admin_id": sess.UserID}).Info("user updated")
	s.publish(ctx, events.UserUpdated, map[string]any{"user_id": userID})
	return p, nil
}

// ToggleAccountStatus flips active and suspended. A pending account becomes active.
func (s *AdminService) ToggleAccountStatus(ctx context.Context, sess auth.Session, userID string) (*models.Profile, error) {
	if err := requireAdmin(sess); err != nil {
		return nil, err
	}
	fields := logrus.Fields{"user_id": userID}
	p, err := s.store.Profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, s.fail("get user", err, fields)
	}
	next := p.AccountStatus.Toggled()
	p, err = s.store.Profiles.UpdateByUserID(ctx, userID, map[string]any{"account_status": next})
	if err != nil {
		return nil, s.fail("toggle account status", err, fields)
	}
	s.publish(ctx, events.UserStatusChanged, map[string]any{"user_id": userID, "account_status": next})
	return p, nil
}

func (s *AdminService) ListRoles(ctx context.Context, sess auth.Session, userID string) ([]models.Role, error) {
	if err := requireAdmin(sess); err != nil {
		return nil, err
	}
	roles, err := s.store.Roles.ListByUser(ctx, userID)
	if err != nil {
		return nil, s.fail("list user roles", err, logrus.Fields{"user_id": userID})
	}
	if roles == nil {
		roles = []models.Role{}
	}
	return roles, nil
}

// GrantRole inserts one role row. Granting a held role is a no-op.
func (s *AdminService) GrantRole(ctx context.Context, sess auth.Session, userID string, role models.Role) ([]models.Role, error) {
	if err := requireAdmin(sess); err != nil {
		return nil, err
	}
	if !role.Valid() {
		return nil, ErrInvalidRole
	}
	err := s.store.Roles.Grant(ctx, userID, role)
	switch {
	case err == nil:
		s.publish(ctx, events.RoleGranted, map[string]any{"user_id": userID, "role": role})
	case !errors.Is(err, repository.ErrConflict):
		return nil, s.fail("grant role", err, logrus.Fields{"user_id": userID, "role": role})
	}
	return s.ListRoles(ctx, sess, userID)
}

// RevokeRole deletes exactly one role row. Revoking a role the user lacks is a no-op.
func (s *AdminService) RevokeRole(ctx context.Context, sess auth.Session, userID string, role models.Role) ([]models.Role, error) {
	if err := requireAdmin(sess); err != nil {
		return nil, err
	}
	if !role.Valid() {
		return nil, ErrInvalidRole
	}
	err := s.store.Roles.Revoke(ctx, userID, role)
	switch {
	case err == nil:
		s.publish(ctx, events.RoleRevoked, map[string]any{"user_id": userID, "role": role})
	case !errors.Is(err, repository.ErrNotFound):
		return nil, s.fail("revoke role", err, logrus.Fields{"user_id": userID, "role": role})
	}
	return s.ListRoles(ctx, sess, userID)
}
