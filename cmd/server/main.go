package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"

	"github.com/takamaro111/construction-management-app/internal/config"
	"github.com/takamaro111/construction-management-app/internal/constants"
	"github.com/takamaro111/construction-management-app/internal/database"
	"github.com/takamaro111/construction-management-app/internal/email"
	"github.com/takamaro111/construction-management-app/internal/handlers"
	"github.com/takamaro111/construction-management-app/internal/identity"
	"github.com/takamaro111/construction-management-app/internal/middleware"
	"github.com/takamaro111/construction-management-app/internal/realtime"
	"github.com/takamaro111/construction-management-app/internal/repository"
	"github.com/takamaro111/construction-management-app/internal/services"
	"github.com/takamaro111/construction-management-app/internal/storage"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Object storage for photos and documents
	store, err := storage.NewLocalStorage(cfg.StorageDir, cfg.PublicBaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	sessionStore, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	// Configure session options based on environment
	isProduction := cfg.GinMode == "release"
	sessionStore.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax (1=Strict, 2=Lax, 3=None)
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, sessionStore))

	db := database.GetDB()

	// Repositories
	companyRepo := repository.NewCompanyRepository(db)
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	photoRepo := repository.NewPhotoRepository(db)
	documentRepo := repository.NewDocumentRepository(db)
	reportRepo := repository.NewReportRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)
	chatRepo := repository.NewChatRepository(db)
	dashboardRepo := repository.NewDashboardRepository(db)

	// Infrastructure
	idp := identity.NewGormProvider(db)
	mailer := email.NewSender(cfg)
	broker := realtime.NewBroker(logger)

	// Services
	authService := services.NewAuthService(companyRepo, userRepo, idp, logger)
	memberService := services.NewMemberService(userRepo, companyRepo, idp, mailer, cfg.AppURL, logger)
	projectService := services.NewProjectService(projectRepo)
	attachmentService := services.NewAttachmentService(photoRepo, documentRepo, store, logger)
	reportService := services.NewReportService(reportRepo)
	scheduleService := services.NewScheduleService(scheduleRepo)
	chatService := services.NewChatService(chatRepo, userRepo, broker)
	companyService := services.NewCompanyService(companyRepo)
	dashboardService := services.NewDashboardService(dashboardRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	memberHandler := handlers.NewMemberHandler(memberService)
	projectHandler := handlers.NewProjectHandler(projectService)
	photoHandler := handlers.NewPhotoHandler(attachmentService)
	documentHandler := handlers.NewDocumentHandler(attachmentService)
	reportHandler := handlers.NewReportHandler(reportService)
	scheduleHandler := handlers.NewScheduleHandler(scheduleService)
	chatHandler := handlers.NewChatHandler(chatService)
	companyHandler := handlers.NewCompanyHandler(companyService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	// Uploaded objects are served directly off disk
	r.Static("/files", cfg.StorageDir)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Construction Management API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), middleware.LoadCurrentUser(), authHandler.GetCurrentUser)
			auth.PUT("/me", middleware.RequireAuth(), authHandler.UpdateProfile)
			auth.PUT("/password", middleware.RequireAuth(), authHandler.ChangePassword)
		}

		// Company routes (protected; rename is admin-only)
		company := api.Group("/company")
		company.Use(middleware.RequireAuth(), middleware.LoadCurrentUser())
		{
			company.GET("", companyHandler.Get)
			company.PUT("", middleware.RequireAdmin(), companyHandler.Update)
		}

		// Dashboard routes (protected)
		dashboard := api.Group("/dashboard")
		dashboard.Use(middleware.RequireAuth(), middleware.LoadCurrentUser())
		{
			dashboard.GET("/stats", dashboardHandler.Stats)
		}

		// Member routes (protected; lifecycle operations are admin-only)
		members := api.Group("/members")
		members.Use(middleware.RequireAuth(), middleware.LoadCurrentUser())
		{
			members.GET("", memberHandler.ListMembers)
			members.POST("/invite", middleware.RequireAdmin(), memberHandler.Invite)
			members.DELETE("/:id", middleware.RequireAdmin(), memberHandler.Delete)
			members.POST("/reset-password", middleware.RequireAdmin(), memberHandler.ResetPassword)
			members.POST("/:id/password", middleware.RequireAdmin(), memberHandler.GetPassword)
		}

		// Project routes (protected)
		projects := api.Group("/projects")
		projects.Use(middleware.RequireAuth(), middleware.LoadCurrentUser())
		{
			projects.POST("", projectHandler.CreateProject)
			projects.GET("", projectHandler.ListProjects)
			projects.GET("/board", projectHandler.GetBoard)
			projects.GET("/:id", projectHandler.GetProject)
			projects.PUT("/:id", projectHandler.UpdateProject)
			projects.PATCH("/:id/status", projectHandler.MoveStatus)
			projects.DELETE("/:id", projectHandler.DeleteProject)
		}

		// Photo routes (protected)
		photos := api.Group("/photos")
		photos.Use(middleware.RequireAuth(), middleware.LoadCurrentUser())
		{
			photos.POST("", photoHandler.Upload)
			photos.GET("", photoHandler.List)
			photos.DELETE("/:id", photoHandler.Delete)
		}

		// Document routes (protected)
		documents := api.Group("/documents")
		documents.Use(middleware.RequireAuth(), middleware.LoadCurrentUser())
		{
			documents.POST("", documentHandler.Upload)
			documents.GET("", documentHandler.List)
			documents.DELETE("/:id", documentHandler.Delete)
		}

		// Report routes (protected)
		reports := api.Group("/reports")
		reports.Use(middleware.RequireAuth(), middleware.LoadCurrentUser())
		{
			reports.POST("", reportHandler.CreateReport)
			reports.GET("", reportHandler.ListReports)
			reports.GET("/:id", reportHandler.GetReport)
			reports.PUT("/:id", reportHandler.UpdateReport)
			reports.DELETE("/:id", reportHandler.DeleteReport)
		}

		// Schedule routes (protected)
		schedules := api.Group("/schedules")
		schedules.Use(middleware.RequireAuth(), middleware.LoadCurrentUser())
		{
			schedules.POST("", scheduleHandler.CreateSchedule)
			schedules.GET("", scheduleHandler.ListSchedules)
			schedules.GET("/:id", scheduleHandler.GetSchedule)
			schedules.PUT("/:id", scheduleHandler.UpdateSchedule)
			schedules.DELETE("/:id", scheduleHandler.DeleteSchedule)
		}

		// Chat routes (protected)
		chats := api.Group("/chats")
		chats.Use(middleware.RequireAuth(), middleware.LoadCurrentUser())
		{
			chats.POST("", chatHandler.CreateChat)
			chats.GET("", chatHandler.ListChats)
			chats.GET("/:id/messages", chatHandler.ListMessages)
			chats.POST("/:id/messages", chatHandler.SendMessage)
			chats.GET("/:id/stream", chatHandler.Stream)
		}
	}

	// Start server
	log.Println("Server starting on :8080")
	if err := r.Run(":8080"); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
