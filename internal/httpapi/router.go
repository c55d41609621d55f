package httpapi

import (
	"github.com/gin-gonic/gin"

	"github.com/yourorg/hr-field-resolver/internal/config"
	"github.com/yourorg/hr-field-resolver/internal/facade"
	"github.com/yourorg/hr-field-resolver/internal/httpapi/middleware"
)

// NewRouter assembles the gin engine: middleware chain, route groups, and
// handlers bound to the given Facade. Mirrors the teacher's router.go
// shape (trusted proxies, multipart memory cap, ordered middleware).
func NewRouter(cfg *config.Config, f *facade.Facade) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		panic(err)
	}
	r.MaxMultipartMemory = 8 << 20 // 8MB in-memory threshold before spilling to tmp files

	r.Use(
		middleware.CORS(cfg),
		middleware.RequestID(),
		middleware.MetricsMiddleware(),
		middleware.ErrorHandler(),
	)

	h := NewHandlers(f)

	r.GET("/health", h.Health)
	r.GET("/metrics", h.Metrics)

	api := r.Group("/api")
	{
		api.POST("/ingest", middleware.RateLimit(cfg.IngestRateLimit, cfg.RateLimitWindow), h.Ingest)

		files := api.Group("/files/:id")
		files.Use(middleware.RateLimit(cfg.MapRateLimit, cfg.RateLimitWindow))
		{
			files.GET("/detect-entity", h.DetectEntity)
			files.POST("/auto-map", h.AutoMap)
			files.POST("/validate", h.Validate)
			files.POST("/transform", h.Transform)
			files.GET("/quality-gate", h.QualityGate)
		}
	}

	return r
}
