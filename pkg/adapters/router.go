package adapters

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RouterConfig はルーターの組み立てに必要な依存関係です。
type RouterConfig struct {
	RoastHandler   *RoastHandler
	CORSEnabled    bool
	AllowedOrigin  string
	MetricsHandler http.Handler // nil なら /metrics を公開しない
}

// NewRouter は gin.Engine を組み立てます。
func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(RequestID(), RequestLogger(), Recovery())

	r.GET("/health", HealthCheck)
	if cfg.MetricsHandler != nil {
		r.GET("/metrics", gin.WrapH(cfg.MetricsHandler))
	}

	api := r.Group("/api")
	if cfg.CORSEnabled {
		api.Use(CORS(cfg.AllowedOrigin))
	}
	{
		api.POST("/roast", cfg.RoastHandler.Roast)
		api.OPTIONS("/roast", Preflight)
	}

	return r
}
