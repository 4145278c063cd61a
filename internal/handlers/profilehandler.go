package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/justsurfingit/Odd-Jobs-Marketplace/internal/dtos"
	"github.com/justsurfingit/Odd-Jobs-Marketplace/internal/services"
)

type ProfileHandler struct {
	ProfileService *services.ProfileService
}

func NewProfileHandler(p *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{ProfileService: p}
}

// GET /api/v1/me/session
func (h *ProfileHandler) Session(c *gin.Context) {
	sess, err := h.ProfileService.Provision(c.Request.Context(), sessionFrom(c))
	if err != nil {
		respondError(c, err, msgSessionFailed)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user_id":       sess.UserID,
		"email":         sess.Email,
		"authenticated": sess.Authenticated,
		"roles":         sess.Roles,
		"is_admin":      sess.IsAdmin(),
	})
}

// GET /api/v1/me/profile
func (h *ProfileHandler) Get(c *gin.Context) {
	p, err := h.ProfileService.GetMine(c.Request.Context(), sessionFrom(c))
	if err != nil {
		respondError(c, err, msgProfileLoad)
		return
	}
	c.JSON(http.StatusOK, p)
}

// PUT /api/v1/me/profile
func (h *ProfileHandler) Update(c *gin.Context) {
	var req dtos.ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	p, err := h.ProfileService.UpdateMine(c.Request.Context(), sessionFrom(c), &req)
	if err != nil {
		respondError(c, err, msgProfileFailed)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": p, "message": msgProfileUpdated})
}
