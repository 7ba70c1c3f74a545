package handlers

import (
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/sjperalta/aml-lists-api/internal/config"
	"github.com/sjperalta/aml-lists-api/internal/middleware"
	"github.com/sjperalta/aml-lists-api/internal/models"
)

// NewRouter builds the HTTP engine with every /api/v1 route
func NewRouter(h *Handlers, cfg *config.Config) *gin.Engine {
	router := gin.New()

	// Global middleware
	if cfg.SentryDSN != "" {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger("/api/v1/health"))
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	v1 := router.Group("/api/v1")
	{
		// Public
		v1.GET("/health", h.Health.Index)
		v1.POST("/auth/login", h.Auth.Login)

		protected := v1.Group("")
		protected.Use(middleware.Auth(cfg.JWTSecret))
		{
			protected.POST("/auth/logout", h.Auth.Logout)
			protected.GET("/auth/me", h.Auth.Me)
			protected.GET("/reference/origin-sources", h.Health.OriginSources)
			protected.GET("/dashboard", h.Dashboard.Stats)

			protected.GET("/customers", h.Customer.Index)
			protected.GET("/customers/:customer_no", h.Customer.Show)
			protected.POST("/customers/import", h.Customer.Import)

			protected.GET("/black-list", h.List.BlackList)
			protected.GET("/white-list", h.List.WhiteList)
			protected.GET("/screening/coincidences", h.Screening.Coincidences)

			protected.GET("/transactions", h.Transaction.Index)
			protected.GET("/transactions/:id", h.Transaction.Show)

			maker := protected.Group("")
			maker.Use(middleware.RequireRole(models.RoleMaker))
			{
				maker.POST("/transactions", h.Transaction.Create)
				maker.POST("/transactions/batch", h.Transaction.CreateBatch)
				maker.POST("/imports/black-list", h.Import.BlackList)
			}

			approver := protected.Group("")
			approver.Use(middleware.RequireRole(models.RoleApprover))
			{
				approver.POST("/transactions/:id/approve", h.Transaction.Approve)
				approver.POST("/transactions/:id/reject", h.Transaction.Reject)
			}

			protected.GET("/imports/archive", h.Import.Archive)
			protected.GET("/audits", h.Audit.Index)
			protected.GET("/exports/:collection", h.Export.Export)
			protected.POST("/admin/reset", h.Admin.Reset)

			protected.GET("/jobs/status", h.Job.Status)
			protected.POST("/jobs/:name/run", h.Job.Run)
		}
	}

	return router
}
