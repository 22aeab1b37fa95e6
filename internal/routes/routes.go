package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tasktracker/internal/authz"
	"tasktracker/internal/handlers"
	"tasktracker/internal/middleware"
	"tasktracker/internal/services"
)

func SetupRoutes(
	r *gin.Engine,
	jwtSecret []byte,
	access services.AccessService,
	authHandler *handlers.AuthHandler,
	companyHandler *handlers.CompanyHandler,
	userHandler *handlers.UserHandler,
	taskHandler *handlers.TaskHandler,
	commentHandler *handlers.CommentHandler,
	tagHandler *handlers.TagHandler,
	notificationHandler *handlers.NotificationHandler,
	feedbackHandler *handlers.FeedbackHandler,
	bindingHandler *handlers.BindingHandler,
	processHandler *handlers.ProcessHandler,
	fileHandler *handlers.FileHandler,
	reportHandler *handlers.ReportHandler,
) *gin.Engine {

	// ---- public
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.POST("/auth/telegram", authHandler.TelegramAuth)
	r.POST("/auth/login", authHandler.Login)

	// ---- protected
	r.Use(middleware.AuthMiddleware(jwtSecret))
	r.Use(middleware.CallerContext(access))

	// COMPANIES
	companies := r.Group("/companies")
	{
		companies.POST("/", companyHandler.Create)
		companies.GET("/my", companyHandler.GetMy)
		companies.PUT("/my", companyHandler.UpdateMy)
	}

	// USERS
	users := r.Group("/users")
	{
		users.POST("/", userHandler.Provision)
		users.GET("/", userHandler.List)
		users.PUT("/me", userHandler.UpdateMe)
		users.GET("/:id", userHandler.GetByID)
		users.PUT("/:id/role", userHandler.ChangeRole)
		users.POST("/:id/deactivate", userHandler.Deactivate)
		users.POST("/:id/activate", userHandler.Activate)
	}

	// TASKS
	tasks := r.Group("/tasks")
	{
		tasks.POST("/", taskHandler.Create)
		tasks.GET("/", taskHandler.List)
		tasks.GET("/:id", taskHandler.GetByID)
		tasks.PUT("/:id", taskHandler.Update)
		tasks.DELETE("/:id", taskHandler.Delete)
		tasks.POST("/:id/status", taskHandler.ChangeStatus)
		tasks.POST("/:id/assign", taskHandler.Assign)
		tasks.POST("/:id/restore", taskHandler.Restore)
		tasks.GET("/:id/activity", taskHandler.Activity)
		tasks.POST("/:id/tags", taskHandler.AttachTag)
		tasks.DELETE("/:id/tags/:tag_id", taskHandler.DetachTag)

		tasks.POST("/:id/comments", commentHandler.Create)
		tasks.GET("/:id/comments", commentHandler.List)
		tasks.POST("/:id/checklist", commentHandler.AddChecklistItem)
		tasks.GET("/:id/checklist", commentHandler.ListChecklist)

		tasks.POST("/:id/files", fileHandler.Upload)
		tasks.GET("/:id/files", fileHandler.ListByTask)
	}

	// COMMENTS / CHECKLIST (по id элемента)
	r.PUT("/comments/:id", commentHandler.Update)
	r.DELETE("/comments/:id", commentHandler.Delete)
	r.POST("/checklist/:id/toggle", commentHandler.ToggleChecklistItem)
	r.DELETE("/checklist/:id", commentHandler.DeleteChecklistItem)

	// TAGS
	tags := r.Group("/tags")
	{
		tags.POST("/", tagHandler.Create)
		tags.GET("/", tagHandler.List)
		tags.DELETE("/:id", tagHandler.Delete)
	}

	// FILES
	r.GET("/files/:id", fileHandler.Download)
	r.DELETE("/files/:id", fileHandler.Delete)

	// NOTIFICATIONS
	notifications := r.Group("/notifications")
	{
		notifications.GET("/", notificationHandler.List)
		notifications.POST("/read-all", notificationHandler.MarkAllRead)
		notifications.POST("/:id/read", notificationHandler.MarkRead)
	}

	// FEEDBACK
	feedback := r.Group("/feedback")
	{
		feedback.POST("/", feedbackHandler.Submit)
		feedback.GET("/", feedbackHandler.List)
	}

	// CHAT BINDINGS (руководители)
	bindings := r.Group("/chat-bindings",
		middleware.RequireRoles(authz.RoleDirector, authz.RoleDepartmentHead, authz.RoleAdmin),
	)
	{
		bindings.POST("/", bindingHandler.Bind)
		bindings.GET("/", bindingHandler.List)
		bindings.DELETE("/:id", bindingHandler.Unbind)
	}

	// BUSINESS PROCESSES (руководители)
	processes := r.Group("/processes",
		middleware.RequireRoles(authz.RoleDirector, authz.RoleDepartmentHead, authz.RoleAdmin),
	)
	{
		processes.POST("/", processHandler.Create)
		processes.GET("/", processHandler.List)
		processes.GET("/:id", processHandler.GetByID)
		processes.PUT("/:id", processHandler.Update)
		processes.DELETE("/:id", processHandler.Delete)
	}

	// REPORTS (руководители)
	reports := r.Group("/reports",
		middleware.RequireRoles(authz.RoleDirector, authz.RoleDepartmentHead, authz.RoleAdmin),
	)
	{
		reports.GET("/tasks", reportHandler.TaskReport)
	}

	return r
}
