package routes

import (
	"net/http"

	"refhub_backend/internal/handlers"
	"refhub_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все HTTP маршруты.
func RegisterRoutes(ginRouter *gin.Engine, appHandlers *handlers.AppHandlers) {
	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := ginRouter.Group("/api/v1")

	// Публичные маршруты: регистрация, вход, обновление токена
	appHandlers.AuthHandler.RegisterRoutes(api)

	// Маршруты, требующие аутентификации
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware())
	{
		appHandlers.JobHandler.RegisterRoutes(protected)
		appHandlers.ReferralHandler.RegisterRoutes(protected)
		appHandlers.WalletHandler.RegisterRoutes(protected)
		appHandlers.DisputeHandler.RegisterRoutes(protected)
	}

	// Админские маршруты
	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		appHandlers.DisputeHandler.RegisterAdminRoutes(admin)
	}
}
