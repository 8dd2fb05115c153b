package api

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"comrent-backend/config"
	"comrent-backend/internal/mw"
)

// NewRouter creates and configures the Gin router. The unit routes are
// never response-cached: both clients poll them and must always see the
// live registry. Caching is reserved for the archive reads.
func NewRouter(h *Handler, cfg *config.Config) *gin.Engine {
	r := gin.New()
	r.Use(mw.Logger(), gin.Recovery(), mw.Metrics())

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	if len(cfg.Server.AllowedOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.Server.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	cacheTTL := time.Duration(cfg.Server.CacheTTLSeconds) * time.Second
	caching := mw.Cache(cache.New(cacheTTL, 2*cacheTTL), cacheTTL)

	api := r.Group("/api")
	api.Use(mw.RateLimiter(rate.Limit(cfg.Server.RateLimitPerSec), cfg.Server.RateLimitBurst))
	{
		api.GET("/units", h.GetUnits)
		api.POST("/units", h.CreateUnit)
		api.PUT("/units", h.UpdateUnit)
		api.DELETE("/units", h.DeleteUnit)

		api.GET("/messages", h.GetMessages)
		api.GET("/messages/all", h.GetAllMessages)
		api.POST("/messages", h.PostMessage)
		api.PUT("/messages", h.MarkMessagesRead)

		api.GET("/pricing", h.GetPricing)
		api.POST("/pricing", h.CreatePricing)
		api.PUT("/pricing", h.UpdatePricing)
		api.DELETE("/pricing", h.DeletePricing)

		api.GET("/notifications", h.GetNotifications)
		api.GET("/audit", h.GetAuditLog)

		api.GET("/email-template", h.GetEmailTemplate)
		api.POST("/email-template", h.UpdateEmailTemplate)
		api.POST("/invoices", h.SendInvoice)

		api.GET("/sessions/history", caching, h.GetSessionHistory)
		api.GET("/sessions/history/daily", caching, h.GetDailySessionStats)
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}
