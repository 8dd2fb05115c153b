package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"comrent-backend/internal/model"
)

const defaultHistoryDays = 120

func sinceParam(c *gin.Context) time.Time {
	days := defaultHistoryDays
	if v := c.Query("days"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			days = n
		}
	}
	return time.Now().AddDate(0, 0, -days)
}

// GetSessionHistory handles GET /api/sessions/history: the raw archived
// session records the analytics charts consume.
func (h *Handler) GetSessionHistory(c *gin.Context) {
	recs, err := h.History.List(c.Request.Context(), sinceParam(c))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to read session history"})
		return
	}
	if recs == nil {
		recs = []model.SessionRecord{}
	}
	c.JSON(http.StatusOK, recs)
}

// GetDailySessionStats handles GET /api/sessions/history/daily: per-day
// session counts and revenue.
func (h *Handler) GetDailySessionStats(c *gin.Context) {
	stats, err := h.History.Daily(c.Request.Context(), sinceParam(c))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to aggregate session history"})
		return
	}
	c.JSON(http.StatusOK, stats)
}
