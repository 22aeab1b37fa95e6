package app

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"tasktracker/internal/config"
	"tasktracker/internal/handlers"
	"tasktracker/internal/pdf"
	"tasktracker/internal/repositories"
	"tasktracker/internal/routes"
	"tasktracker/internal/services"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	_ "tasktracker/docs"
)

func Run() {
	cfg := config.LoadConfig()

	if !cfg.Server.Dev {
		gin.SetMode(gin.ReleaseMode)
	}

	// === DB ===
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatal("Ошибка подключения к БД: ", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Ошибка закрытия БД: %v", err)
		}
	}()

	// === Repos ===
	userRepo := repositories.NewUserRepository(db)
	companyRepo := repositories.NewCompanyRepository(db)
	accessRepo := repositories.NewAccessRepository(db)
	taskRepo := repositories.NewTaskRepository(db)
	tagRepo := repositories.NewTagRepository(db)
	commentRepo := repositories.NewCommentRepository(db)
	checklistRepo := repositories.NewChecklistRepository(db)
	notificationRepo := repositories.NewNotificationRepository(db)
	feedbackRepo := repositories.NewFeedbackRepository(db)
	attachmentRepo := repositories.NewAttachmentRepository(db)
	bindingRepo := repositories.NewChatBindingRepository(db)
	processRepo := repositories.NewBusinessProcessRepository(db)

	// === Services ===
	jwtSecret := []byte(cfg.Auth.JWTSecret)
	sessionTTL := time.Duration(cfg.Auth.SessionTTLDays) * 24 * time.Hour

	emailService := services.NewEmailService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
	)
	telegramService := services.NewTelegramService(cfg.Telegram.BotToken, userRepo, bindingRepo)

	accessService := services.NewAccessService(userRepo, accessRepo)
	authService := services.NewAuthService(userRepo, cfg.Telegram.BotToken, jwtSecret, sessionTTL)
	userService := services.NewUserService(userRepo)
	companyService := services.NewCompanyService(companyRepo, userRepo)
	taskService := services.NewTaskService(taskRepo, tagRepo)
	commentService := services.NewCommentService(commentRepo, checklistRepo, taskRepo)
	notificationService := services.NewNotificationService(notificationRepo, accessRepo)
	feedbackService := services.NewFeedbackService(feedbackRepo, companyRepo, userRepo, emailService)
	bindingService := services.NewChatBindingService(bindingRepo)
	processService := services.NewBusinessProcessService(processRepo)
	attachmentService := services.NewAttachmentService(attachmentRepo, taskRepo, cfg.Files.RootDir)

	pdfGen := pdf.NewReportGenerator(cfg.Files.RootDir, cfg.Files.ReportFont)
	reportService := services.NewReportService(taskRepo, userRepo, companyRepo, pdfGen)

	// === Handlers ===
	authHandler := handlers.NewAuthHandler(authService)
	companyHandler := handlers.NewCompanyHandler(companyService)
	userHandler := handlers.NewUserHandler(userService, accessService)
	taskHandler := handlers.NewTaskHandler(taskService, accessService, notificationService, telegramService, tagRepo)
	commentHandler := handlers.NewCommentHandler(commentService)
	tagHandler := handlers.NewTagHandler(tagRepo)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	feedbackHandler := handlers.NewFeedbackHandler(feedbackService, userService)
	bindingHandler := handlers.NewBindingHandler(bindingService)
	processHandler := handlers.NewProcessHandler(processService)
	fileHandler := handlers.NewFileHandler(attachmentService)
	reportHandler := handlers.NewReportHandler(reportService)

	// === Gin ===
	router := gin.Default()
	router.Use(corsMiddleware())

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Роуты (JWT и tenant-контекст — внутри SetupRoutes)
	routes.SetupRoutes(
		router,
		jwtSecret,
		accessService,
		authHandler,
		companyHandler,
		userHandler,
		taskHandler,
		commentHandler,
		tagHandler,
		notificationHandler,
		feedbackHandler,
		bindingHandler,
		processHandler,
		fileHandler,
		reportHandler,
	)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Сервер запущен на %s", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("Ошибка запуска сервера: ", err)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization, X-User-Id")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
