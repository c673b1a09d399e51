package server

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"monagenda.fr/myagenda/internal/config"
	"monagenda.fr/myagenda/internal/handler"
	"monagenda.fr/myagenda/internal/middleware"
	"monagenda.fr/myagenda/internal/repository"
	"monagenda.fr/myagenda/internal/service"
	"monagenda.fr/myagenda/internal/task"
	"monagenda.fr/myagenda/pkg/storage"
)

type Server struct {
	engine    *gin.Engine
	scheduler *task.Scheduler
}

func New(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	userRepo := repository.NewUserRepository(db)
	homeworkRepo := repository.NewHomeworkRepository(db)
	completionRepo := repository.NewCompletionRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	// Optional capabilities are opted into through configuration.
	var searchSvc service.SearchService
	if cfg.SearchEnabled {
		meiliClient := meilisearch.New(cfg.MeiliSearchHost, meilisearch.WithAPIKey(cfg.MeiliMasterKey))
		searchSvc = service.NewMeiliSearchService(meiliClient)
	}

	var fileStorage storage.FileStorage
	if cfg.UploadsEnabled {
		var err error
		fileStorage, err = storage.NewCloudinaryStorage()
		if err != nil {
			log.Fatalf("failed to initialize cloudinary storage: %v", err)
		}
	}

	notificationSvc := service.NewNotificationService(notificationRepo, redisClient)
	authSvc := service.NewAuthService(userRepo)
	adminSvc := service.NewAdminService(userRepo)
	homeworkSvc := service.NewHomeworkService(homeworkRepo, userRepo, completionRepo, commentRepo, notificationSvc, searchSvc, fileStorage)
	completionSvc := service.NewCompletionService(completionRepo, homeworkRepo)
	commentSvc := service.NewCommentService(commentRepo, homeworkRepo, notificationSvc)
	agendaSvc := service.NewAgendaService(homeworkRepo)

	authHandler := handler.NewAuthHandler(authSvc)
	adminHandler := handler.NewAdminHandler(adminSvc)
	homeworkHandler := handler.NewHomeworkHandler(homeworkSvc, completionSvc, commentSvc, redisClient)
	notificationHandler := handler.NewNotificationHandler(notificationSvc, redisClient)
	agendaHandler := handler.NewAgendaHandler(agendaSvc)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	setupCORS(router, cfg)

	authMiddleware := middleware.NewAuthMiddleware(userRepo)

	router.POST("/register", authHandler.Register)
	router.POST("/login", authHandler.Login)
	router.GET("/logout", authHandler.Logout)

	// The unread badge is polled from every page, logged in or not.
	router.GET("/notifications/unread-count", authMiddleware.OptionalAuth(), notificationHandler.UnreadCount)

	protected := router.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		protected.GET("/me", authHandler.Me)

		protected.GET("/events", homeworkHandler.List)
		protected.POST("/events", homeworkHandler.Create)
		protected.GET("/events/:id", homeworkHandler.Get)
		protected.PUT("/events/:id", homeworkHandler.Update)
		protected.DELETE("/events/:id", homeworkHandler.Delete)
		protected.GET("/events/:id/ical", homeworkHandler.ExportICal)
		protected.POST("/events/:id/toggle-completion", homeworkHandler.ToggleCompletion)
		protected.POST("/events/:id/comments", homeworkHandler.CreateComment)

		protected.GET("/agenda", agendaHandler.MonthView)

		protected.GET("/notifications", notificationHandler.List)
		protected.POST("/notifications/:id/read", notificationHandler.MarkAsRead)
		protected.POST("/notifications/read-all", notificationHandler.MarkAllAsRead)
		protected.GET("/notifications/ws", notificationHandler.HandleWebSocket)

		if fileStorage != nil {
			uploadHandler := handler.NewUploadHandler(fileStorage)
			protected.POST("/upload", uploadHandler.Upload)
		}

		adminGroup := protected.Group("/admin")
		adminGroup.Use(authMiddleware.RequireAdmin())
		{
			adminGroup.GET("/users", adminHandler.ListUsers)
			adminGroup.DELETE("/users/:id", adminHandler.DeleteUser)
			adminGroup.POST("/users/:id/toggle-admin", adminHandler.ToggleAdmin)
		}
	}

	scheduler := task.NewScheduler()
	scheduler.Register(task.NewReminderTask(homeworkRepo, userRepo, notificationRepo, cfg.ReminderCron))
	scheduler.Register(task.NewCleanupTask(homeworkRepo, cfg.CleanupCron))

	return &Server{
		engine:    router,
		scheduler: scheduler,
	}
}

// Run starts the background sweeps then serves HTTP until the listener fails.
func (s *Server) Run(addr string) error {
	s.scheduler.RunAll(context.Background())
	s.scheduler.Start()
	defer s.scheduler.Stop()

	return s.engine.Run(addr)
}

func setupCORS(router *gin.Engine, cfg *config.Config) {
	origins := strings.Split(cfg.AllowedOrigins, ",")

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
