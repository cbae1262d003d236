package enrollment

import (
	"github.com/gofiber/fiber/v2"
	"github.com/learning-master/api/database"
	"github.com/learning-master/api/services"
	"github.com/learning-master/api/utils/response"
)

// EnrollmentHandler serves enrollment views built from the analytics store
type EnrollmentHandler struct {
	analytics *database.AnalyticsStore
	catalog   *services.CatalogService
}

// NewEnrollmentHandler creates a new enrollment handler
func NewEnrollmentHandler(analytics *database.AnalyticsStore, catalog *services.CatalogService) *EnrollmentHandler {
	return &EnrollmentHandler{
		analytics: analytics,
		catalog:   catalog,
	}
}

// EnrolledClasses returns every class a user has purchased, each joined with
// its instructor record
func (h *EnrollmentHandler) EnrolledClasses(c *fiber.Ctx) error {
	email := c.Params("email")

	rows, err := h.analytics.EnrolledClasses(email)
	if err != nil {
		return response.InternalServerError(c, "Failed to load enrolled classes")
	}
	return response.Success(c, rows)
}

// PopularInstructors returns the top instructors by total enrollment
func (h *EnrollmentHandler) PopularInstructors(c *fiber.Ctx) error {
	rankings, err := h.catalog.PopularInstructors(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to load popular instructors")
	}
	return response.Success(c, rankings)
}
