package v1

import (
	"log/slog"

	"riverpatch-inquiry-backend/config"
	"riverpatch-inquiry-backend/internal/delivery/http/middleware"
	"riverpatch-inquiry-backend/internal/domain"
	"riverpatch-inquiry-backend/pkg/apperror"
	"riverpatch-inquiry-backend/pkg/security"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	InquiryUC      domain.InquiryUsecase
	HealthUC       domain.HealthUsecase
	SecurityLogger *security.SecurityLogger
	Log            *slog.Logger
	Config         *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	policy := middleware.NewOriginPolicy(deps.Config.AllowedOrigins)

	// Global Middlewares
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Log))
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware(policy, deps.SecurityLogger, deps.Log))
	r.Use(middleware.SecurityHeadersMiddleware(deps.Config.IsProduction()))
	r.Use(middleware.BodyLimit(deps.Config.MaxBodyBytes))
	r.Use(middleware.ErrorHandler(deps.Config.ExposeErrorDetails, deps.Log))

	NewHealthHandler(r, policy, deps.HealthUC)
	NewInquiryHandler(r, policy, deps.InquiryUC, deps.SecurityLogger, deps.Log)

	if deps.Config.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	r.NoRoute(func(c *gin.Context) {
		c.Error(apperror.NotFound("Not found."))
	})

	return r
}
