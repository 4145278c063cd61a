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

type JobService struct {
	base
}

func NewJobService(store *repository.Store, pub events.Publisher, log logrus.FieldLogger) *JobService {
	return &JobService{base: newBase(store, pub, log)}
}

// ListJobsQuery filters the public listing. "all" or empty means no constraint.
type ListJobsQuery struct {
	Category string `form:"category"`
	Province string `form:"province"`
	Search   string `form:"q"`
}

// List returns open jobs newest first.
func (s *JobService) List(ctx context.Context, q ListJobsQuery) ([]models.Job, error) {
	f := repository.JobFilter{Status: models.JobOpen}
	if !isAll(q.Category) {
		f.Category = models.JobCategory(strings.TrimSpace(q.Category))
	}
	if !isAll(q.Province) {
		f.Province = models.Province(strings.TrimSpace(q.Province))
	}
	jobs, err := s.store.Jobs.List(ctx, f)
	if err != nil {
		return nil, s.fail("list jobs", err, logrus.Fields{"category": q.Category, "province": q.Province})
	}
	if jobs == nil {
		jobs = []models.Job{}
	}
	needle := strings.ToLower(strings.TrimSpace(q.Search))
	if needle == "" {
		return jobs, nil
	}
	out := make([]models.Job, 0, len(jobs))
	for _, j := range jobs {
		if containsFold(j.Title, needle) || containsFold(j.Description, needle) {
			out = append(out, j)
		}
	}
	return out, nil
}

// Gate reasons.
const (
	ReasonLoginRequired  = "login_required"
	ReasonJobNotOpen     = "job_not_open"
	ReasonOwnJob         = "own_job"
	ReasonAlreadyApplied = "already_applied"
)

// ApplyGate tells the client whether to offer the apply control. It is advisory;
// ApplicationService.Apply enforces the same rules.
type ApplyGate struct {
	Available  bool   `json:"available"`
	Reason     string `json:"reason,omitempty"`
	HasApplied bool   `json:"has_applied"`
}

func gateFor(sess auth.Session, job *models.Job, hasApplied bool) ApplyGate {
	switch {
	case job.Status != models.JobOpen:
		return ApplyGate{Reason: ReasonJobNotOpen, HasApplied: hasApplied}
	case !sess.Authenticated:
		return ApplyGate{Reason: ReasonLoginRequired}
	case sess.UserID == job.PublisherID:
		return ApplyGate{Reason: ReasonOwnJob}
	case hasApplied:
		return ApplyGate{Reason: ReasonAlreadyApplied, HasApplied: true}
	}
	return ApplyGate{Available: true}
}

type JobDetail struct {
	Job           *models.Job `json:"job"`
	PublisherName string      `json:"publisher_name"`
	Apply         ApplyGate   `json:"apply"`
}

// Get loads one job, its publisher's name and the viewer's apply gate.
func (s *JobService) Get(ctx context.Context, sess auth.Session, id string) (*JobDetail, error) {
	job, err := s.store.Jobs.Get(ctx, id)
	if err != nil {
		return nil, s.fail("get job", err, logrus.Fields{"job_id": id})
	}
	detail := &JobDetail{Job: job}

	pub, err := s.store.Profiles.GetByUserID(ctx, job.PublisherID)
	switch {
	case err == nil:
		detail.PublisherName = pub.FullName()
	case !errors.Is(err, repository.ErrNotFound):
		s.log.WithError(err).WithField("job_id", id).Warn("publisher lookup failed")
	}

	hasApplied := false
	if sess.Authenticated && sess.UserID != job.PublisherID {
		hasApplied, err = s.store.Applications.Exists(ctx, job.ID, sess.UserID)
		if err != nil {
			return nil, s.fail("check application", err, logrus.Fields{"job_id": id, "user_id": sess.UserID})
		}
	}
	detail.Apply = gateFor(sess, job, hasApplied)
	return detail, nil
}

// Create validates the request and inserts an open job owned by the caller. Nothing is written when
// validation fails.
func (s *JobService) Create(ctx context.Context, sess auth.Session, req *dtos.JobCreationRequest) (*models.Job, error) {
	if err := requireUser(sess); err != nil {
		return nil, err
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	job := req.ToJob(sess.UserID)
	if err := s.store.Jobs.Create(ctx, job); err != nil {
		return nil, s.fail("create job", err, logrus.Fields{"user_id": sess.UserID})
	}
	s.log.WithFields(logrus.Fields{"job_id": job.ID, "user_id": sess.UserID}).Info("job created")
	s.publish(ctx, events.JobCreated, job)
	return job, nil
}

// MyJobs is the owner's list partitioned by status. Counts covers every status plus "all".
type MyJobs struct {
	Group  string         `json:"group"`
	Jobs   []models.Job   `json:"jobs"`
	Counts map[string]int `json:"counts"`
}

// ListMine loads the caller's jobs once and partitions them locally. group is "all" or a job status.
func (s *JobService) ListMine(ctx context.Context, sess auth.Session, group string) (*MyJobs, error) {
	if err := requireUser(sess); err != nil {
		return nil, err
	}
	if isAll(group) {
		group = models.FilterAll
	} else if !models.JobStatus(group).Valid() {
		return nil, ErrInvalidStatus
	}
	jobs, err := s.store.Jobs.List(ctx, repository.JobFilter{PublisherID: sess.UserID})
	if err != nil {
		return nil, s.fail("list my jobs", err, logrus.Fields{"user_id": sess.UserID})
	}
	out := &MyJobs{Group: group, Jobs: make([]models.Job, 0, len(jobs)), Counts: map[string]int{models.FilterAll: len(jobs)}}
	for _, st := range models.AllJobStatuses() {
		out.Counts[string(st)] = 0
	}
	for _, j := range jobs {
		out.Counts[string(j.Status)]++
		if group == models.FilterAll || string(j.Status) == group {
			out.Jobs = append(out.Jobs, j)
		}
	}
	return out, nil
}
