package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/justsurfingit/Odd-Jobs-Marketplace/internal/dtos"
	"github.com/justsurfingit/Odd-Jobs-Marketplace/internal/services"
)

type JobHandler struct {
	JobService         *services.JobService
	ApplicationService *services.ApplicationService
}

// NewJobHandler creates the handler with dependencies
func NewJobHandler(j *services.JobService, a *services.ApplicationService) *JobHandler {
	return &JobHandler{JobService: j, ApplicationService: a}
}

// GET /api/v1/jobs?category=&province=&q=
func (h *JobHandler) List(c *gin.Context) {
	var q services.ListJobsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}
	jobs, err := h.JobService.List(c.Request.Context(), q)
	if err != nil {
		respondListError(c, "jobs", err, msgJobsLoadFailed)
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobs": jobs, "count": len(jobs)})
}

// GET /api/v1/jobs/:id
func (h *JobHandler) Get(c *gin.Context) {
	detail, err := h.JobService.Get(c.Request.Context(), sessionFrom(c), c.Param("id"))
	if err != nil {
		respondError(c, err, msgJobLoadFailed)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// POST /api/v1/jobs
func (h *JobHandler) Create(c *gin.Context) {
	var req dtos.JobCreationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	job, err := h.JobService.Create(c.Request.Context(), sessionFrom(c), &req)
	if err != nil {
		respondError(c, err, msgJobCreateFailed)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"job": job, "message": msgJobCreated})
}

// GET /api/v1/jobs/:id/application
func (h *JobHandler) HasApplied(c *gin.Context) {
	ok, err := h.ApplicationService.HasApplied(c.Request.Context(), sessionFrom(c), c.Param("id"))
	if err != nil {
		respondError(c, err, msgJobLoadFailed)
		return
	}
	c.JSON(http.StatusOK, gin.H{"has_applied": ok})
}

// POST /api/v1/jobs/:id/applications
// A repeated application is answered as success with outcome "already_applied".
func (h *JobHandler) Apply(c *gin.Context) {
	var req dtos.ApplicationCreationRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		badRequest(c, err)
		return
	}
	app, err := h.ApplicationService.Apply(c.Request.Context(), sessionFrom(c), c.Param("id"), &req)
	switch {
	case errors.Is(err, services.ErrAlreadyApplied):
		c.JSON(http.StatusOK, gin.H{"outcome": "already_applied", "has_applied": true, "message": msgAlreadyApplied})
	case err != nil:
		respondError(c, err, msgApplyFailed)
	default:
		c.JSON(http.StatusCreated, gin.H{"outcome": "applied", "has_applied": true, "application": app, "message": msgApplied})
	}
}

// GET /api/v1/me/jobs?group=all|open|assigned|completed|...
func (h *JobHandler) ListMine(c *gin.Context) {
	mine, err := h.JobService.ListMine(c.Request.Context(), sessionFrom(c), c.Query("group"))
	if err != nil {
		respondListError(c, "jobs", err, msgJobsLoadFailed)
		return
	}
	c.JSON(http.StatusOK, mine)
}

// GET /api/v1/me/applications
func (h *JobHandler) ListMyApplications(c *gin.Context) {
	apps, err := h.ApplicationService.ListMine(c.Request.Context(), sessionFrom(c))
	if err != nil {
		respondListError(c, "applications", err, msgAppsLoadFailed)
		return
	}
	c.JSON(http.StatusOK, gin.H{"applications": apps})
}
