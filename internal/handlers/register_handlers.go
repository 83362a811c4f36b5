package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/giantprolu/gestiondecompte/cmd/docs"
	"github.com/giantprolu/gestiondecompte/internal/core/domain"
	portssvc "github.com/giantprolu/gestiondecompte/internal/core/ports/services"
	"github.com/giantprolu/gestiondecompte/internal/middleware"
	"github.com/giantprolu/gestiondecompte/internal/platform/config"
	"github.com/giantprolu/gestiondecompte/internal/utils"
)

// RegisterRoutes sets up all application routes, injecting dependencies
// through the service container interfaces.
func RegisterRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer, posthogClient *utils.PosthogClientWrapper) {
	registerCustomValidators()

	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	registerAuthRoutes(r, cfg, services)
	setupAPIV1Routes(r, cfg, services, posthogClient)
	setupSwaggerRoutes(r, cfg)
}

// registerCustomValidators wires binding-tag validators used by the DTOs.
func registerCustomValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("recurrencefreq", func(fl validator.FieldLevel) bool {
		return domain.RecurrenceFrequency(fl.Field().String()).Valid()
	})
}

// setupAPIV1Routes configures the authenticated /api/v1 group.
func setupAPIV1Routes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer, posthogClient *utils.PosthogClientWrapper) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret), middleware.PosthogMiddleware(posthogClient))

	registerUserRoutes(v1, services.User)
	RegisterAccountRoutes(v1, services.Account)
	registerTransactionRoutes(v1, services.Transaction)
	registerCreditRoutes(v1, services.Credit)
	registerRecurringRoutes(v1, services.Recurring)
	registerClosureRoutes(v1, services.Closure)
	registerShareRoutes(v1, services.Share)
	registerNotificationRoutes(v1, services.Notification)
}

// setupSwaggerRoutes configures the swagger documentation routes.
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
