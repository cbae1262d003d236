package admin

import (
	"github.com/gofiber/fiber/v2"
	"github.com/learning-master/api/database"
	"github.com/learning-master/api/utils/response"
)

// StatsHandler serves the admin dashboard aggregates
type StatsHandler struct {
	analytics *database.AnalyticsStore
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(analytics *database.AnalyticsStore) *StatsHandler {
	return &StatsHandler{
		analytics: analytics,
	}
}

// AdminStats returns platform-wide counts for the admin dashboard
func (h *StatsHandler) AdminStats(c *fiber.Ctx) error {
	stats, err := h.analytics.Stats()
	if err != nil {
		return response.InternalServerError(c, "Failed to load stats")
	}
	return response.Success(c, stats)
}
