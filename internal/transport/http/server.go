package http

import (
	nethttp "net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	appsvc "artifai/internal/app"
	"artifai/internal/bootstrap"
	"artifai/internal/cache"
	"artifai/internal/platform/rabbitmq"
	"artifai/internal/repository"
	"artifai/internal/transport/http/handler"
	"artifai/internal/transport/http/middleware"
	"artifai/web"
)

func NewRouter(app *bootstrap.App) (*gin.Engine, error) {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()

	templates, err := web.Templates()
	if err != nil {
		return nil, err
	}
	router.SetHTMLTemplate(templates)

	userRepo := repository.NewUserRepository(app.DB)
	imageRepo := repository.NewImageRepository(app.DB)

	var revoker appsvc.SessionRevoker
	if app.Redis != nil {
		revoker = cache.NewSessionRevocations(app.Redis)
	}
	var events appsvc.ImageEventPublisher
	if app.MQConn != nil {
		events = rabbitmq.NewImageEventPublisher(app.MQConn, app.Config.RabbitMQ.ImageEventQueue)
	}

	authService := appsvc.NewAuthService(
		userRepo,
		revoker,
		app.Config.Auth.SessionSecret,
		time.Duration(app.Config.Auth.SessionTTLMinutes)*time.Minute,
	)
	imageService := appsvc.NewImageService(imageRepo, appsvc.NewImageGenerator(app.ImageClient), events)
	statusService := appsvc.NewStatusService(userRepo, imageRepo, app.DatabaseBackend)

	pageHandler := handler.NewPageHandler(imageService, authService)
	authHandler := handler.NewAuthHandler(authService, handler.SessionCookie{
		Name:   app.Config.Auth.CookieName,
		Secure: app.Config.Auth.CookieSecure,
	})
	imageHandler := handler.NewImageHandler(imageService)
	statusHandler := handler.NewStatusHandler(statusService)
	healthHandler := handler.NewHealthHandler(app)

	router.Use(
		middleware.RequestLogger(app.Logger),
		middleware.Prometheus(),
		middleware.Recovery(pageHandler.InternalError),
		middleware.LoadSession(authService, app.Config.Auth.CookieName),
	)
	router.StaticFS("/static", nethttp.FS(web.Static()))
	router.NoRoute(pageHandler.NotFound)

	router.GET("/healthz", healthHandler.Check)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.GET("/", pageHandler.Home)
	router.GET("/login", authHandler.LoginPage)
	router.POST("/login", authHandler.Login)
	router.GET("/register", authHandler.RegisterPage)
	router.POST("/register", authHandler.Register)
	router.GET("/logout", authHandler.Logout)

	pages := router.Group("/")
	pages.Use(middleware.RequirePageUser())
	pages.GET("/generator", pageHandler.Generator)
	pages.GET("/gallery", pageHandler.Gallery)
	pages.GET("/profile", pageHandler.Profile)

	api := router.Group("/api")
	api.Use(middleware.RequireUser())
	api.POST("/generate", imageHandler.Generate)
	api.GET("/images", imageHandler.List)
	api.POST("/images/:id/favorite", imageHandler.ToggleFavorite)
	api.DELETE("/images/:id", imageHandler.Delete)
	api.GET("/database-status", statusHandler.Database)

	return router, nil
}
