package httpapi

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/srrview/backend/internal/auth"
	"github.com/srrview/backend/internal/config"
	"github.com/srrview/backend/internal/http/handlers"
	"github.com/srrview/backend/internal/http/middleware"
	"github.com/srrview/backend/internal/service"
	"github.com/srrview/backend/internal/store"

	_ "github.com/srrview/backend/docs"
)

func Router(cfg config.Config, snapshots *store.Store, dashboard *service.DashboardService, sessions *auth.Manager, logger zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Session-Token", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if cfg.CORSAllowed == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = []string{cfg.CORSAllowed}
	}
	r.Use(cors.New(corsCfg))

	h := &handlers.Handler{
		Store:     snapshots,
		Dashboard: dashboard,
		Sessions:  sessions,
		Validator: validator.New(),
		Logger:    logger,
	}

	r.GET("/healthz", h.Healthz)

	api := r.Group("/api")
	api.POST("/login", h.Login)

	authed := api.Group("")
	authed.Use(middleware.Session(sessions))
	{
		authed.POST("/logout", h.Logout)
		authed.GET("/dashboard", h.DashboardView)
		authed.GET("/cases", h.CasesList)
		authed.GET("/export/:table", h.Export)
		authed.POST("/refresh", h.Refresh)
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}
