package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/sdpjss/community-registry-backend/config"
	"github.com/sdpjss/community-registry-backend/database"
	"github.com/sdpjss/community-registry-backend/internal/auditlog"
	"github.com/sdpjss/community-registry-backend/internal/auth"
	"github.com/sdpjss/community-registry-backend/internal/board"
	"github.com/sdpjss/community-registry-backend/internal/category"
	"github.com/sdpjss/community-registry-backend/internal/courier"
	"github.com/sdpjss/community-registry-backend/internal/donation"
	"github.com/sdpjss/community-registry-backend/internal/khandan"
	"github.com/sdpjss/community-registry-backend/internal/notice"
	"github.com/sdpjss/community-registry-backend/internal/team"
	"github.com/sdpjss/community-registry-backend/middleware"
	"github.com/sdpjss/community-registry-backend/utils"
)

// Setup wires every module onto the engine. Repositories and services are
// built here against the shared database handle.
func Setup(r *gin.Engine, cfg *config.Config) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimiter())
	api.Use(middleware.AuditMiddleware())

	// ========== Modules ==========
	auditRepo := auditlog.NewRepository(database.DB)
	auditSvc := auditlog.NewService(auditRepo)
	auditHandler := auditlog.NewHandler(auditSvc)

	khandanRepo := khandan.NewRepository(database.DB)
	khandanSvc := khandan.NewService(khandanRepo)
	khandanHandler := khandan.NewHandler(khandanSvc)

	authRepo := auth.NewRepository(database.DB)
	authSvc := auth.NewService(authRepo, khandanRepo, cfg, &utils.RedisStore{}, utils.SendRecoveryCode)
	authHandler := auth.NewHandler(authSvc)

	categoryRepo := category.NewRepository(database.DB)
	categorySvc := category.NewService(categoryRepo)
	categoryHandler := category.NewHandler(categorySvc)

	courierRepo := courier.NewRepository(database.DB)
	courierSvc := courier.NewService(courierRepo)
	courierHandler := courier.NewHandler(courierSvc)

	gateway := donation.NewRazorpayGateway(cfg.RazorpayKey, cfg.RazorpaySecret)
	donationRepo := donation.NewRepository(database.DB)
	donationSvc := donation.NewService(donationRepo, categoryRepo, courierRepo, gateway, auditSvc, cfg)
	donationHandler := donation.NewHandler(donationSvc)

	noticeRepo := notice.NewRepository(database.DB)
	noticeSvc := notice.NewService(noticeRepo)
	noticeHandler := notice.NewHandler(noticeSvc)

	boardRepo := board.NewRepository(database.DB)
	boardSvc := board.NewService(boardRepo)
	boardHandler := board.NewHandler(boardSvc)

	teamRepo := team.NewRepository(database.DB)
	teamSvc := team.NewService(teamRepo)
	teamHandler := team.NewHandler(teamSvc)

	// ========== Public routes ==========
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/refresh", authHandler.Refresh)

		recovery := authGroup.Group("/recovery")
		recovery.Use(middleware.RecoveryRateLimiter())
		{
			recovery.POST("/request", authHandler.RequestRecoveryCode)
			recovery.POST("/verify", authHandler.VerifyRecoveryCode)
			recovery.POST("/commit", authHandler.CommitNewPassword)
		}
	}

	api.GET("/khandans", khandanHandler.List)
	api.GET("/khandans/:khandanId/members", authHandler.KhandanMembers)
	api.GET("/categories", categoryHandler.List)
	api.GET("/notices", noticeHandler.ListPublic)
	api.GET("/jobs", boardHandler.ListJobs)
	api.GET("/staffs", boardHandler.ListStaffs)
	api.GET("/advertisements", boardHandler.ListAds)
	api.GET("/team-members", teamHandler.ListPublic)

	// ========== Member routes ==========
	member := api.Group("/")
	member.Use(middleware.AuthMiddleware(cfg))
	{
		member.GET("/me", authHandler.Me)

		donations := member.Group("/donations")
		{
			donations.POST("", donationHandler.Create)
			donations.POST("/verify", donationHandler.Verify)
			donations.POST("/payment-failed", donationHandler.ReportFailure)
			donations.GET("/my", donationHandler.MyDonations)
			donations.GET("/:orderId/receipt", donationHandler.Receipt)
		}

		member.POST("/jobs", boardHandler.CreateJob)
		member.PUT("/jobs/:jobId", boardHandler.UpdateJob)
		member.DELETE("/jobs/:jobId", boardHandler.DeleteJob)

		member.POST("/staffs", boardHandler.CreateStaff)
		member.PUT("/staffs/:staffId", boardHandler.UpdateStaff)
		member.DELETE("/staffs/:staffId", boardHandler.DeleteStaff)

		member.POST("/advertisements", boardHandler.CreateAd)
		member.PUT("/advertisements/:adId", boardHandler.UpdateAd)
		member.DELETE("/advertisements/:adId", boardHandler.DeleteAd)
	}

	// ========== Admin routes ==========
	api.POST("/admin/login", authHandler.AdminLogin)

	admin := api.Group("/admin")
	admin.Use(middleware.AdminMiddleware(cfg))
	{
		admin.GET("/users", authHandler.ListUsers)
		admin.GET("/users/counts", authHandler.Counts)
		admin.GET("/users/years", authHandler.AvailableYears)
		admin.GET("/users/:userId", authHandler.GetUser)
		admin.PATCH("/users/:userId/approval", authHandler.SetApproval)

		admin.POST("/khandans", khandanHandler.Create)
		admin.PUT("/khandans/:khandanId", khandanHandler.Update)
		admin.DELETE("/khandans/:khandanId", khandanHandler.Delete)
		admin.GET("/khandans/counts", khandanHandler.Counts)
		admin.GET("/khandans/years", khandanHandler.AvailableYears)

		admin.POST("/categories", categoryHandler.Create)
		admin.PUT("/categories/:id", categoryHandler.Update)
		admin.DELETE("/categories/:id", categoryHandler.Delete)

		admin.POST("/courier-charges", courierHandler.CreateRule)
		admin.PUT("/courier-charges/:id", courierHandler.UpdateRule)
		admin.DELETE("/courier-charges/:id", courierHandler.DeleteRule)
		admin.GET("/courier-charges", courierHandler.ListRules)

		admin.POST("/donations", donationHandler.AdminCreate)
		admin.GET("/donations", donationHandler.List)
		admin.GET("/donations/stats", donationHandler.Stats)
		admin.GET("/donations/years", donationHandler.AvailableYears)
		admin.GET("/donations/export", donationHandler.Export)
		admin.GET("/donations/:orderId", donationHandler.Get)
		admin.GET("/donations/:orderId/receipt", donationHandler.Receipt)

		admin.POST("/notices", noticeHandler.Create)
		admin.PUT("/notices/:noticeId", noticeHandler.Update)
		admin.DELETE("/notices/:noticeId", noticeHandler.Delete)
		admin.GET("/notices", noticeHandler.ListAll)

		admin.POST("/team-members", teamHandler.Create)
		admin.PUT("/team-members/:memberId", teamHandler.Update)
		admin.DELETE("/team-members/:memberId", teamHandler.Delete)
		admin.GET("/team-members", teamHandler.ListAll)

		admin.GET("/audit-logs", auditHandler.List)
	}
}
