package handlers

import (
	"context"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/justsurfingit/Odd-Jobs-Marketplace/internal/services"
)

type RouterConfig struct {
	ServiceName string
	CORSOrigins []string

	Jobs         *services.JobService
	Applications *services.ApplicationService
	Profiles     *services.ProfileService
	Admin        *services.AdminService

	Sessions SessionResolver
	Ping     func(context.Context) error
	Log      logrus.FieldLogger
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	cfg.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	cfg.MaxAge = 12 * time.Hour
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}

func NewRouter(rc RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware(rc.ServiceName))
	r.Use(RequestLogger(rc.Log))
	r.Use(cors.New(corsConfig(rc.CORSOrigins)))

	jobHandler := NewJobHandler(rc.Jobs, rc.Applications)
	profileHandler := NewProfileHandler(rc.Profiles)
	adminHandler := NewAdminHandler(rc.Admin)

	api := r.Group("/api/v1")
	{
		api.GET("/health", HealthCheck(rc.Ping))
		api.GET("/meta/enums", Enums)

		public := api.Group("", OptionalAuth(rc.Sessions))
		public.GET("/jobs", jobHandler.List)
		public.GET("/jobs/:id", jobHandler.Get)

		secured := api.Group("", Authenticate(rc.Sessions))
		{
			secured.POST("/jobs", jobHandler.Create)
			secured.GET("/jobs/:id/application", jobHandler.HasApplied)
			secured.POST("/jobs/:id/applications", jobHandler.Apply)

			secured.GET("/me/session", profileHandler.Session)
			secured.GET("/me/profile", profileHandler.Get)
			secured.PUT("/me/profile", profileHandler.Update)
			secured.GET("/me/jobs", jobHandler.ListMine)
			secured.GET("/me/applications", jobHandler.ListMyApplications)
		}

		admin := api.Group("/admin", Authenticate(rc.Sessions), RequireAdmin())
		{
			admin.GET("/stats", adminHandler.Stats)

			admin.GET("/jobs", adminHandler.ListJobs)
			admin.GET("/jobs/:id", adminHandler.GetJob)
			admin.PUT("/jobs/:id", adminHandler.UpdateJob)
			admin.PATCH("/jobs/:id/status", adminHandler.SetJobStatus)
			admin.DELETE("/jobs/:id", adminHandler.DeleteJob)
			admin.GET("/jobs/:id/applications", adminHandler.ListJobApplications)
			admin.PATCH("/applications/:id/status", adminHandler.SetApplicationStatus)

			admin.GET("/users", adminHandler.ListUsers)
			admin.GET("/users/:id", adminHandler.GetUser)
			admin.PUT("/users/:id", adminHandler.UpdateUser)
			admin.POST("/users/:id/toggle-status", adminHandler.ToggleStatus)
			admin.GET("/users/:id/roles", adminHandler.ListRoles)
			admin.PUT("/users/:id/roles/:role", adminHandler.GrantRole)
			admin.DELETE("/users/:id/roles/:role", adminHandler.RevokeRole)
		}
	}
	return r
}
