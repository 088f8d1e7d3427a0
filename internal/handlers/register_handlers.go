package handlers

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/graceway/travel_accounting/internal/core/domain"
	portssvc "github.com/graceway/travel_accounting/internal/core/ports/services"
	"github.com/graceway/travel_accounting/internal/middleware"
	"github.com/graceway/travel_accounting/pkg/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	r.Use(newCORSMiddleware(cfg))

	// Health check and landing routes stay outside the actor requirement.
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})
	r.GET("/", getHome)

	setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1", middleware.ActorMiddleware(), newRateLimitMiddleware(cfg))

	RegisterAccountRoutes(v1, services.Registry, services.Balance)
	RegisterJournalRoutes(v1, services.Ledger)
	RegisterReportingRoutes(v1, services.Statement)
}

// init wires domain validations into gin's binding layer so they apply to
// every consumer of this package, tests included.
func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("accountcategory", func(fl validator.FieldLevel) bool {
			return domain.AccountCategory(fl.Field().String()).IsValid()
		})
	}
}

func newCORSMiddleware(cfg *config.Config) gin.HandlerFunc {
	corsCfg := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "X-Actor-ID", "X-Request-ID")
	return cors.New(corsCfg)
}

func newRateLimitMiddleware(cfg *config.Config) gin.HandlerFunc {
	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		log.Printf("Warning: invalid RATE_LIMIT %q, defaulting to 100-M", cfg.RateLimit)
		rate, _ = limiter.NewRateFromFormatted("100-M")
	}
	return middleware.RateLimit(limiter.New(memory.NewStore(), rate))
}
