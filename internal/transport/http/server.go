package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	appsvc "course-catalog/internal/app"
	"course-catalog/internal/bootstrap"
	"course-catalog/internal/cache"
	"course-catalog/internal/platform/rabbitmq"
	"course-catalog/internal/repository"
	"course-catalog/internal/transport/http/handler"
	"course-catalog/internal/transport/http/middleware"
	"course-catalog/internal/transport/http/response"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), middleware.Recovery(app.Config.Log.ErrorDetails))

	var catalogCache appsvc.CatalogCache
	if app.Redis != nil {
		catalogCache = cache.NewCatalogCache(
			app.Redis,
			time.Duration(app.Config.Redis.CatalogTTLSeconds)*time.Second,
		)
	}
	var auditPublisher appsvc.AuditPublisher
	if app.MQConn != nil {
		auditPublisher = rabbitmq.NewAuditPublisher(app.MQConn, app.Config.RabbitMQ.AuditQueue)
	}

	userRepo := repository.NewUserRepository(app.DB)
	courseRepo := repository.NewCourseRepository(app.DB)
	auditRepo := repository.NewAuditEventRepository(app.DB)
	authService := appsvc.NewAuthService(userRepo)
	userService := appsvc.NewUserService(userRepo, auditPublisher)
	courseService := appsvc.NewCourseService(courseRepo, auditRepo, catalogCache, auditPublisher)

	userHandler := handler.NewUserHandler(userService)
	courseHandler := handler.NewCourseHandler(courseService)
	healthHandler := handler.NewHealthHandler(app)

	requireAuth := middleware.BasicAuth(authService)

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Welcome to the Course Catalog REST API!",
		})
	})
	router.GET("/healthz", healthHandler.Check)

	api := router.Group("/api")
	api.GET("/users", requireAuth, userHandler.Current)
	api.POST("/users", userHandler.Register)

	api.GET("/courses", courseHandler.List)
	api.POST("/courses", requireAuth, courseHandler.Create)
	api.GET("/courses/:id", courseHandler.Get)
	api.PUT("/courses/:id", requireAuth, courseHandler.Update)
	api.DELETE("/courses/:id", requireAuth, courseHandler.Delete)
	api.GET("/courses/:id/audit", requireAuth, courseHandler.AuditTrail)

	router.NoRoute(func(c *gin.Context) {
		response.Message(c, http.StatusNotFound, "Route Not Found")
	})

	return router
}
