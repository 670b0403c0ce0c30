package http

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RouterConfig holds what the router needs besides the handlers
type RouterConfig struct {
	APIToken    string
	CORSOrigins []string
	Logger      *zap.Logger
	// Accounts enables HTTP Basic auth for dashboard users; nil allows only the token
	Accounts Authenticator
}

// NewRouter wires the dashboard routes.
// /healthz is public; everything under /api/v1 requires authentication.
func NewRouter(cfg RouterConfig, h *Handler) *gin.Engine {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(CorrelationIDMiddleware())
	router.Use(RequestLoggingMiddleware(log))
	router.Use(configureCORS(cfg.CORSOrigins))

	router.GET("/healthz", h.Health)

	v1 := router.Group("/api/v1")
	v1.Use(AuthMiddleware(cfg.APIToken, cfg.Accounts))
	{
		v1.GET("/panels", h.ListPanels)
		v1.GET("/panels/:panel", h.QueryPanel)
		v1.GET("/panels/:panel/export", h.ExportPanel)
		v1.GET("/trend", h.GetSalesTrend)
		v1.GET("/finance/summary", h.GetFinanceSummary)
	}

	return router
}
