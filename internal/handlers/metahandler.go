package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/justsurfingit/Odd-Jobs-Marketplace/internal/models"
)

type option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type labeled interface {
	~string
	Label() string
}

func options[T labeled](values []T) []option {
	out := make([]option, 0, len(values))
	for _, v := range values {
		out = append(out, option{Value: string(v), Label: v.Label()})
	}
	return out
}

// Enums is the GET /api/v1/meta/enums body: every enumeration key in display order with its label.
func Enums(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"categories":           options(models.AllCategories()),
		"provinces":            options(models.AllProvinces()),
		"job_statuses":         options(models.AllJobStatuses()),
		"application_statuses": options(models.AllApplicationStatuses()),
		"account_statuses":     options(models.AllAccountStatuses()),
		"roles":                options(models.AllRoles()),
	})
}

// HealthCheck reports readiness; ping checks the store when one is wired.
func HealthCheck(ping func(context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ping != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := ping(ctx); err != nil {
				_ = c.Error(err)
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
