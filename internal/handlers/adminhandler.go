package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/justsurfingit/Odd-Jobs-Marketplace/internal/dtos"
	"github.com/justsurfingit/Odd-Jobs-Marketplace/internal/models"
	"github.com/justsurfingit/Odd-Jobs-Marketplace/internal/services"
)

type AdminHandler struct {
	AdminService *services.AdminService
}

func NewAdminHandler(a *services.AdminService) *AdminHandler {
	return &AdminHandler{AdminService: a}
}

// GET /api/v1/admin/stats
func (h *AdminHandler) Stats(c *gin.Context) {
	st, err := h.AdminService.Stats(c.Request.Context(), sessionFrom(c))
	if err != nil {
		respondError(c, err, msgStatsFailed)
		return
	}
	c.JSON(http.StatusOK, st)
}

// GET /api/v1/admin/jobs?q=&status=&category=
func (h *AdminHandler) ListJobs(c *gin.Context) {
	var q services.AdminJobsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}
	rows, err := h.AdminService.ListJobs(c.Request.Context(), sessionFrom(c), q)
	if err != nil {
		respondListError(c, "jobs", err, msgJobsLoadFailed)
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobs": rows, "count": len(rows)})
}

// GET /api/v1/admin/jobs/:id
func (h *AdminHandler) GetJob(c *gin.Context) {
	form, err := h.AdminService.GetJobForEdit(c.Request.Context(), sessionFrom(c), c.Param("id"))
	if err != nil {
		respondError(c, err, msgJobLoadFailed)
		return
	}
	c.JSON(http.StatusOK, form)
}

// PUT /api/v1/admin/jobs/:id
func (h *AdminHandler) UpdateJob(c *gin.Context) {
	var req dtos.JobEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	job, err := h.AdminService.UpdateJob(c.Request.Context(), sessionFrom(c), c.Param("id"), &req)
	if err != nil {
		respondError(c, err, msgJobUpdateFailed)
		return
	}
	c.JSON(http.StatusOK, gin.H{"job": job, "message": msgJobUpdated})
}

// PATCH /api/v1/admin/jobs/:id/status
func (h *AdminHandler) SetJobStatus(c *gin.Context) {
	var req dtos.JobStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := req.Validate(); err != nil {
		respondError(c, err, msgStatusFailed)
		return
	}
	job, err := h.AdminService.SetJobStatus(c.Request.Context(), sessionFrom(c), c.Param("id"), models.JobStatus(req.Status))
	if err != nil {
		respondError(c, err, msgStatusFailed)
		return
	}
	c.JSON(http.StatusOK, gin.H{"job": job, "message": msgStatusUpdated})
}

// DELETE /api/v1/admin/jobs/:id
func (h *AdminHandler) DeleteJob(c *gin.Context) {
	n, err := h.AdminService.DeleteJob(c.Request.Context(), sessionFrom(c), c.Param("id"))
	if err != nil {
		respondError(c, err, msgJobDeleteFailed)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true, "applications_removed": n, "message": msgJobDeleted})
}

// GET /api/v1/admin/jobs/:id/applications
func (h *AdminHandler) ListJobApplications(c *gin.Context) {
	rows, err := h.AdminService.ListJobApplications(c.Request.Context(), sessionFrom(c), c.Param("id"))
	if err != nil {
		respondListError(c, "applications", err, msgAppsLoadFailed)
		return
	}
	c.JSON(http.StatusOK, gin.H{"applications": rows})
}

// PATCH /api/v1/admin/applications/:id/status
func (h *AdminHandler) SetApplicationStatus(c *gin.Context) {
	var req dtos.ApplicationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := req.Validate(); err != nil {
		respondError(c, err, msgStatusFailed)
		return
	}
	app, err := h.AdminService.SetApplicationStatus(c.Request.Context(), sessionFrom(c), c.Param("id"), models.ApplicationStatus(req.Status))
	if err != nil {
		respondError(c, err, msgStatusFailed)
		return
	}
	c.JSON(http.StatusOK, gin.H{"application": app, "message": msgStatusUpdated})
}

// GET /api/v1/admin/users?q=&account_status=
func (h *AdminHandler) ListUsers(c *gin.Context) {
	var q services.AdminUsersQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}
	rows, err := h.AdminService.ListUsers(c.Request.Context(), sessionFrom(c), q)
	if err != nil {
		respondListError(c, "users", err, msgUsersLoadFailed)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": rows, "count": len(rows)})
}

// GET /api/v1/admin/users/:id
func (h *AdminHandler) GetUser(c *gin.Context) {
	form, err := h.AdminService.GetUserForEdit(c.Request.Context(), sessionFrom(c), c.Param("id"))
	if err != nil {
		respondError(c, err, msgUsersLoadFailed)
		return
	}
	c.JSON(http.StatusOK, form)
}

// PUT /api/v1/admin/users/:id
func (h *AdminHandler) UpdateUser(c *gin.Context) {
	var req dtos.UserEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	p, err := h.AdminService.UpdateUser(c.Request.Context(), sessionFrom(c), c.Param("id"), &req)
	if err != nil {
		respondError(c, err, msgUserFailed)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": p, "message": msgUserUpdated})
}

// POST /api/v1/admin/users/:id/toggle-status
func (h *AdminHandler) ToggleStatus(c *gin.Context) {
	p, err := h.AdminService.ToggleAccountStatus(c.Request.Context(), sessionFrom(c), c.Param("id"))
	if err != nil {
		respondError(c, err, msgStatusFailed)
		return
	}
	msg := msgUserSuspended
	if p.AccountStatus == models.AccountActive {
		msg = msgUserActivated
	}
	c.JSON(http.StatusOK, gin.H{"user": p, "message": msg})
}

// GET /api/v1/admin/users/:id/roles
func (h *AdminHandler) ListRoles(c *gin.Context) {
	roles, err := h.AdminService.ListRoles(c.Request.Context(), sessionFrom(c), c.Param("id"))
	if err != nil {
		respondListError(c, "roles", err, msgRolesLoadFailed)
		return
	}
	c.JSON(http.StatusOK, gin.H{"roles": roles})
}

// PUT /api/v1/admin/users/:id/roles/:role
func (h *AdminHandler) GrantRole(c *gin.Context) {
	roles, err := h.AdminService.GrantRole(c.Request.Context(), sessionFrom(c), c.Param("id"), models.Role(c.Param("role")))
	if err != nil {
		respondError(c, err, msgRoleFailed)
		return
	}
	c.JSON(http.StatusOK, gin.H{"roles": roles, "message": msgRoleAdded})
}

// DELETE /api/v1/admin/users/:id/roles/:role
func (h *AdminHandler) RevokeRole(c *gin.Context) {
	roles, err := h.AdminService.RevokeRole(c.Request.Context(), sessionFrom(c), c.Param("id"), models.Role(c.Param("role")))
	if err != nil {
		respondError(c, err, msgRoleFailed)
		return
	}
	c.JSON(http.StatusOK, gin.H{"roles": roles, "message": msgRoleRemoved})
}
