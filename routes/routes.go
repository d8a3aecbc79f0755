package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/anibalps/escola-backend/controllers"
	"github.com/anibalps/escola-backend/middleware"
	"github.com/anibalps/escola-backend/services"
)

func SetupRouter(r *gin.Engine, db *gorm.DB, pipeline *services.UploadPipeline) *gin.Engine {
	r.GET("/health", controllers.HealthCheck)

	api := r.Group("/api")
	api.Use(middleware.DBMiddleware(db), middleware.UploaderMiddleware(pipeline))

	auth := api.Group("/auth")
	{
		auth.POST("/public-register", controllers.PublicRegister)
		auth.POST("/login", controllers.Login)
		auth.POST("/verify-email", controllers.VerifyEmail)
		auth.POST("/check-email", controllers.CheckEmail)
		auth.POST("/forgot-password", controllers.ForgotPassword)
		auth.PUT("/reset-password/:token", controllers.ResetPassword)
		auth.POST("/register-by-admin", middleware.AuthMiddleware(), middleware.RequireRoles("admin"), controllers.RegisterByAdmin)
	}

	users := api.Group("/users")
	{
		users.Use(middleware.AuthMiddleware())
		users.GET("", middleware.RequireRoles("admin"), controllers.GetUsers)
		users.GET("/profile", controllers.GetProfile)
		users.PUT("/profile", controllers.UpdateProfile)
		users.PUT("/change-password", controllers.ChangePassword)
		users.PUT("/:id", middleware.RequireRoles("admin"), controllers.UpdatePermissions)
		users.DELETE("/:id", middleware.RequireRoles("admin"), controllers.DeleteUser)
	}

	// Conteúdo do site: leitura pública, escrita por admin/secretaria
	news := api.Group("/news")
	{
		news.GET("", controllers.GetNews)
		news.POST("", middleware.AuthMiddleware(), middleware.RequireRoles("admin", "secretaria"), controllers.CreateNews)
		news.PUT("/:id", middleware.AuthMiddleware(), middleware.RequireRoles("admin", "secretaria"), controllers.UpdateNews)
		news.DELETE("/:id", middleware.AuthMiddleware(), middleware.RequireRoles("admin", "secretaria"), controllers.DeleteNews)
	}

	notices := api.Group("/notices")
	{
		notices.GET("", controllers.GetNotices)
		notices.POST("", middleware.AuthMiddleware(), middleware.RequireRoles("admin", "secretaria"), controllers.CreateNotice)
		notices.DELETE("/:id", middleware.AuthMiddleware(), middleware.RequireRoles("admin"), controllers.DeleteNotice)
	}

	events := api.Group("/events")
	{
		events.GET("", controllers.GetEvents)
		events.POST("", middleware.AuthMiddleware(), middleware.RequireRoles("admin", "secretaria"), controllers.CreateEvent)
		events.PUT("/:id", middleware.AuthMiddleware(), middleware.RequireRoles("admin", "secretaria"), controllers.UpdateEvent)
		events.DELETE("/:id", middleware.AuthMiddleware(), middleware.RequireRoles("admin", "secretaria"), controllers.DeleteEvent)
	}

	history := api.Group("/history")
	{
		history.GET("", controllers.GetHistory)
		history.POST("", middleware.AuthMiddleware(), middleware.RequireRoles("admin"), controllers.CreateHistory)
		history.PUT("/:id", middleware.AuthMiddleware(), middleware.RequireRoles("admin"), controllers.UpdateHistory)
		history.DELETE("/:id", middleware.AuthMiddleware(), middleware.RequireRoles("admin"), controllers.DeleteHistory)
	}

	gallery := api.Group("/gallery")
	{
		gallery.GET("", controllers.GetGallery)
		gallery.POST("", middleware.AuthMiddleware(), middleware.RequireRoles("admin", "secretaria"), controllers.UploadGalleryImages)
		gallery.DELETE("/album/:albumName", middleware.AuthMiddleware(), middleware.RequireRoles("admin", "secretaria"), controllers.DeleteGalleryAlbum)
		gallery.DELETE("/:id", middleware.AuthMiddleware(), middleware.RequireRoles("admin", "secretaria"), controllers.DeleteGalleryImage)
	}

	team := api.Group("/team")
	{
		team.GET("", controllers.GetTeam)
		team.POST("", middleware.AuthMiddleware(), middleware.RequireRoles("admin"), controllers.CreateTeamMember)
		team.PUT("/:id", middleware.AuthMiddleware(), middleware.RequireRoles("admin"), controllers.UpdateTeamMember)
		team.DELETE("/:id", middleware.AuthMiddleware(), middleware.RequireRoles("admin"), controllers.DeleteTeamMember)
	}

	menu := api.Group("/menu")
	{
		menu.GET("", controllers.GetMenu)
		menu.POST("", middleware.AuthMiddleware(), middleware.RequireRoles("admin", "secretaria"), controllers.UploadMenu)
	}

	schedules := api.Group("/schedules")
	{
		schedules.GET("", controllers.GetSchedules)
		schedules.POST("", middleware.AuthMiddleware(), middleware.RequireRoles("admin", "secretaria"), controllers.UploadSchedule)
		schedules.DELETE("/:className", middleware.AuthMiddleware(), middleware.RequireRoles("admin", "secretaria"), controllers.DeleteSchedule)
	}

	files := api.Group("/files")
	{
		files.POST("/upload", middleware.AuthMiddleware(), middleware.RequireRoles("admin", "secretaria"), controllers.UploadFile)
	}

	api.POST("/chat", controllers.HandleChatMessage)

	return r
}
