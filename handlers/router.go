package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"ruedo-cms/authz"
	"ruedo-cms/config"
	"ruedo-cms/helper"
	"ruedo-cms/middleware"
	"ruedo-cms/repositories"
	"ruedo-cms/services"
)

// Dependencies are the long-lived resources the router is built from.
type Dependencies struct {
	Config    *config.Config
	DB        *gorm.DB
	Blacklist repositories.TokenBlacklistRepository
	Engine    *authz.Engine
}

// NewRouter wires repositories, services and handlers and registers every route.
func NewRouter(deps Dependencies) (*gin.Engine, error) {
	cfg := deps.Config

	translator, err := helper.ValidationTranslator()
	if err != nil {
		return nil, err
	}
	h := helper.NewHTTPHelper(translator)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(deps.DB)
	categoryRepo := repositories.NewCategoryRepository(deps.DB)
	eventRepo := repositories.NewEventRepository(deps.DB)
	savedRepo := repositories.NewSavedEventRepository(deps.DB)
	newsRepo := repositories.NewNewsRepository(deps.DB)
	blockRepo := repositories.NewContentBlockRepository(deps.DB)
	interviewRepo := repositories.NewInterviewRepository(deps.DB)

	// Initialize services
	tokenService := services.NewTokenService(cfg, userRepo, deps.Blacklist)
	authService := services.NewAuthService(userRepo, tokenService)
	userService := services.NewUserService(userRepo, deps.Engine)
	categoryService := services.NewCategoryService(categoryRepo, deps.Engine)
	eventService := services.NewEventService(eventRepo, categoryRepo, deps.Engine)
	savedService := services.NewSavedEventService(savedRepo, eventRepo, deps.Engine)
	newsService := services.NewNewsService(newsRepo, deps.Engine)
	blockService := services.NewContentBlockService(newsRepo, blockRepo, deps.Engine)
	interviewService := services.NewInterviewService(interviewRepo, deps.Engine)

	// Initialize handlers
	authHandler := NewAuthHandler(authService, userService, h)
	userHandler := NewUserHandler(userService, h, cfg.PageSize)
	savedHandler := NewSavedEventHandler(savedService, h, cfg.PageSize)
	eventHandler := NewEventHandler(eventService, h, cfg.PageSize)
	categoryHandler := NewCategoryHandler(categoryService, h, cfg.PageSize)
	newsHandler := NewNewsHandler(newsService, blockService, h, cfg.PageSize)
	interviewHandler := NewInterviewHandler(interviewService, h, cfg.PageSize)

	authenticator := middleware.NewAuthenticator(tokenService, userRepo, h)
	requireAuth := authenticator.RequireAuth()

	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	api.Use(authenticator.AuthMiddleware())
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login/", middleware.LoginRateLimit(cfg.LoginRateLimit, cfg.LoginRateBurst, h), authHandler.Login)
			auth.POST("/refresh/", authHandler.Refresh)
			auth.POST("/logout/", authHandler.Logout)
		}

		users := api.Group("/usuarios")
		{
			users.POST("/registro/", authHandler.Register)

			// Everything else needs a principal
			me := users.Group("")
			me.Use(requireAuth)
			{
				me.GET("/perfil/", authHandler.GetProfile)
				me.PATCH("/perfil/", authHandler.UpdateProfile)
				me.PUT("/perfil/", authHandler.UpdateProfile)
				me.POST("/cambiar-password/", authHandler.ChangePassword)

				me.GET("/mis-eventos/", savedHandler.List)
				me.POST("/mis-eventos/", savedHandler.Create)
				me.GET("/mis-eventos/:id/", savedHandler.Get)
				me.PATCH("/mis-eventos/:id/", savedHandler.Update)
				me.PUT("/mis-eventos/:id/", savedHandler.Update)
				me.DELETE("/mis-eventos/:id/", savedHandler.Delete)

				me.GET("/", userHandler.List)
				me.GET("/:id/", userHandler.Get)
				me.PATCH("/:id/", userHandler.Update)
				me.PUT("/:id/", userHandler.Update)
				me.DELETE("/:id/", userHandler.Delete)
			}
		}

		events := api.Group("/eventos")
		{
			events.GET("/categorias/", categoryHandler.List)
			events.GET("/categorias/:slug/", categoryHandler.Get)
			events.POST("/categorias/", requireAuth, categoryHandler.Create)
			events.PUT("/categorias/:slug/", requireAuth, categoryHandler.Update)
			events.PATCH("/categorias/:slug/", requireAuth, categoryHandler.Update)
			events.DELETE("/categorias/:slug/", requireAuth, categoryHandler.Delete)

			events.GET("/", eventHandler.List)
			events.GET("/:id/", eventHandler.Get)
			events.POST("/", requireAuth, eventHandler.Create)
			events.PUT("/:id/", requireAuth, eventHandler.Update)
			events.PATCH("/:id/", requireAuth, eventHandler.Update)
			events.DELETE("/:id/", requireAuth, eventHandler.Delete)
		}

		news := api.Group("/noticias")
		{
			news.GET("/", newsHandler.List)
			news.GET("/:slug/", newsHandler.Get)
			news.POST("/", requireAuth, newsHandler.Create)
			news.PUT("/:slug/", requireAuth, newsHandler.Update)
			news.PATCH("/:slug/", requireAuth, newsHandler.Update)
			news.DELETE("/:slug/", requireAuth, newsHandler.Delete)

			news.GET("/:slug/bloques/", newsHandler.ListBlocks)
			news.GET("/:slug/bloques/:id/", newsHandler.GetBlock)
			news.POST("/:slug/bloques/", requireAuth, newsHandler.CreateBlock)
			news.PUT("/:slug/bloques/:id/", requireAuth, newsHandler.UpdateBlock)
			news.PATCH("/:slug/bloques/:id/", requireAuth, newsHandler.UpdateBlock)
			news.DELETE("/:slug/bloques/:id/", requireAuth, newsHandler.DeleteBlock)
		}

		interviews := api.Group("/entrevistas")
		{
			interviews.GET("/", interviewHandler.List)
			interviews.GET("/:slug/", interviewHandler.Get)
			interviews.POST("/", requireAuth, interviewHandler.Create)
			interviews.PUT("/:slug/", requireAuth, interviewHandler.Update)
			interviews.PATCH("/:slug/", requireAuth, interviewHandler.Update)
			interviews.DELETE("/:slug/", requireAuth, interviewHandler.Delete)
		}
	}

	return router, nil
}
