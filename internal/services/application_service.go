package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/justsurfingit/Odd-Jobs-Marketplace/internal/auth"
	"github.com/justsurfingit/Odd-Jobs-Marketplace/internal/dtos"
	"github.com/justsurfingit/Odd-Jobs-Marketplace/internal/events"
	"github.com/justsurfingit/Odd-Jobs-Marketplace/internal/models"
	"github.com/justsurfingit/Odd-Jobs-Marketplace/internal/repository"
)

type ApplicationService struct {
	base
}

func NewApplicationService(store *repository.Store, pub events.Publisher, log logrus.FieldLogger) *ApplicationService {
	return &ApplicationService{base: newBase(store, pub, log)}
}

func (s *ApplicationService) HasApplied(ctx context.Context, sess auth.Session, jobID string) (bool, error) {
	if err := requireUser(sess); err != nil {
		return false, err
	}
	ok, err := s.store.Applications.Exists(ctx, jobID, sess.UserID)
	if err != nil {
		return false, s.fail("check application", err, logrus.Fields{"job_id": jobID, "user_id": sess.UserID})
	}
	return ok, nil
}

// Apply records a pending application from the caller. A second attempt for the same job returns
// ErrAlreadyApplied and leaves the first row as the only one.
func (s *ApplicationService) Apply(ctx context.Context, sess auth.Session, jobID string, req *dtos.ApplicationCreationRequest) (*models.JobApplication, error) {
	if err := requireUser(sess); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	fields := logrus.Fields{"job_id": jobID, "user_id": sess.UserID}
	job, err := s.store.Jobs.Get(ctx, jobID)
	if err != nil {
		return nil, s.fail("get job", err, fields)
	}
	if job.Status != models.JobOpen {
		return nil, ErrJobNotOpen
	}
	if job.PublisherID == sess.UserID {
		return nil, ErrOwnJob
	}

	app := &models.JobApplication{JobID: job.ID, ApplicantID: sess.UserID, Status: models.ApplicationPending}
	if msg := strings.TrimSpace(req.Message); msg != "" {
		app.Message = &msg
	}
	if err := s.store.Applications.Create(ctx, app); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrAlreadyApplied
		}
		return nil, s.fail("create application", err, fields)
	}
	s.log.WithFields(fields).Info("application created")
	s.publish(ctx, events.ApplicationCreated, app)
	return app, nil
}

// JobSummary is the slice of a job shown next to an application.
type JobSummary struct {
	ID            string             `json:"id"`
	Title         string             `json:"title"`
	Category      models.JobCategory `json:"category"`
	Province      models.Province    `json:"province"`
	Budget        float64            `json:"budget"`
	Status        models.JobStatus   `json:"status"`
	EstimatedDate *time.Time         `json:"estimated_date"`
}

func summarize(j models.Job) *JobSummary {
	return &JobSummary{
		ID:            j.ID,
		Title:         j.Title,
		Category:      j.Category,
		Province:      j.Province,
		Budget:        j.Budget,
		Status:        j.Status,
		EstimatedDate: j.EstimatedDate,
	}
}

type MyApplication struct {
	ID        string                   `json:"id"`
	Message   *string                  `json:"message"`
	Status    models.ApplicationStatus `json:"status"`
	CreatedAt time.Time                `json:"created_at"`
	// Job is nil when the job has since been removed.
	Job *JobSummary `json:"job"`
}

// ListMine returns the caller's applications newest first, each with its job summary.
func (s *ApplicationService) ListMine(ctx context.Context, sess auth.Session) ([]MyApplication, error) {
	if err := requireUser(sess); err != nil {
		return nil, err
	}
	fields := logrus.Fields{"user_id": sess.UserID}
	apps, err := s.store.Applications.ListByApplicant(ctx, sess.UserID)
	if err != nil {
		return nil, s.fail("list my applications", err, fields)
	}
	ids := make([]string, 0, len(apps))
	for _, a := range apps {
		ids = append(ids, a.JobID)
	}
	jobs, err := s.store.Jobs.ListByIDs(ctx, uniq(ids))
	if err != nil {
		return nil, s.fail("list application jobs", err, fields)
	}
	byID := make(map[string]models.Job, len(jobs))
	for _, j := range jobs {
		byID[j.ID] = j
	}

	out := make([]MyApplication, 0, len(apps))
	for _, a := range apps {
		row := MyApplication{ID: a.ID, Message: a.Message, Status: a.Status, CreatedAt: a.CreatedAt}
		if j, ok := byID[a.JobID]; ok {
			row.Job = summarize(j)
		}
		out = append(out, row)
	}
	return out, nil
}
