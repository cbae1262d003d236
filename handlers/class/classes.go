package class

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/learning-master/api/model"
	"github.com/learning-master/api/services"
	"github.com/learning-master/api/utils/response"
	"github.com/learning-master/api/utils/validation"
	"gorm.io/gorm"
)

// ClassHandler handles class catalog and moderation requests
type ClassHandler struct {
	db      *gorm.DB
	catalog *services.CatalogService
}

// NewClassHandler creates a new class handler
func NewClassHandler(db *gorm.DB, catalog *services.CatalogService) *ClassHandler {
	return &ClassHandler{
		db:      db,
		catalog: catalog,
	}
}

// NewClassRequest represents a class submission. AvailableSeats arrives as
// either a number or a numeric string, so it is coerced after parsing.
type NewClassRequest struct {
	Name            string      `json:"name" validate:"required"`
	Description     string      `json:"description,omitempty"`
	Image           string      `json:"image,omitempty"`
	VideoLink       string      `json:"videoLink,omitempty"`
	InstructorName  string      `json:"instructorName" validate:"required"`
	InstructorEmail string      `json:"instructorEmail" validate:"required,email"`
	Price           float64     `json:"price"`
	AvailableSeats  interface{} `json:"availableSeats"`
}

// coerceSeats accepts the seat count as a JSON number or numeric string
func coerceSeats(v interface{}) (int, error) {
	switch seats := v.(type) {
	case float64:
		return int(seats), nil
	case string:
		return strconv.Atoi(strings.TrimSpace(seats))
	case nil:
		return 0, nil
	default:
		return 0, strconv.ErrSyntax
	}
}

// NewClass submits a class for approval. Every new class starts pending with
// zero enrollment.
func (h *ClassHandler) NewClass(c *fiber.Ctx) error {
	var req NewClassRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Name == "" {
		return response.BadRequest(c, "Class name is required")
	}
	if req.InstructorEmail == "" || !validation.ValidateEmail(req.InstructorEmail) {
		return response.BadRequest(c, "A valid instructor email is required")
	}

	seats, err := coerceSeats(req.AvailableSeats)
	if err != nil {
		return response.BadRequest(c, "Invalid seat count")
	}

	class := model.Class{
		Name:            validation.SanitizeString(req.Name),
		Description:     req.Description,
		Image:           req.Image,
		VideoLink:       req.VideoLink,
		InstructorName:  req.InstructorName,
		InstructorEmail: req.InstructorEmail,
		Price:           req.Price,
		AvailableSeats:  seats,
		TotalEnrolled:   0,
		Status:          model.StatusPending,
	}
	if err := h.db.Create(&class).Error; err != nil {
		return response.InternalServerError(c, "Failed to create class")
	}

	return response.Created(c, "Class submitted for approval", class)
}

// ListApproved returns approved classes. Registered on both /classes and
// /approved-classes; the two paths always answer identically.
func (h *ClassHandler) ListApproved(c *fiber.Ctx) error {
	var classes []model.Class
	if err := h.db.Where("status = ?", model.StatusApproved).Find(&classes).Error; err != nil {
		return response.InternalServerError(c, "Failed to load classes")
	}
	return response.Success(c, classes)
}

// ListByInstructor returns an instructor's classes, any status
func (h *ClassHandler) ListByInstructor(c *fiber.Ctx) error {
	return h.listByInstructorStatus(c, "")
}

// ListPendingByInstructor returns an instructor's pending classes
func (h *ClassHandler) ListPendingByInstructor(c *fiber.Ctx) error {
	return h.listByInstructorStatus(c, model.StatusPending)
}

// ListApprovedByInstructor returns an instructor's approved classes
func (h *ClassHandler) ListApprovedByInstructor(c *fiber.Ctx) error {
	return h.listByInstructorStatus(c, model.StatusApproved)
}

func (h *ClassHandler) listByInstructorStatus(c *fiber.Ctx, status string) error {
	email := c.Params("email")

	query := h.db.Where("instructor_email = ?", email)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var classes []model.Class
	if err := query.Find(&classes).Error; err != nil {
		return response.InternalServerError(c, "Failed to load classes")
	}
	return response.Success(c, classes)
}

// ListAll returns every class regardless of status, for moderation
func (h *ClassHandler) ListAll(c *fiber.Ctx) error {
	var classes []model.Class
	if err := h.db.Find(&classes).Error; err != nil {
		return response.InternalServerError(c, "Failed to load classes")
	}
	return response.Success(c, classes)
}

// ChangeStatusRequest represents a moderation decision
type ChangeStatusRequest struct {
	Status string `json:"status" validate:"required"`
	Reason string `json:"reason,omitempty"`
}

// ChangeStatus records a moderation decision. Status must be one of the
// canonical values; anything else is rejected.
func (h *ClassHandler) ChangeStatus(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid class id")
	}

	var req ChangeStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if !model.IsValidStatus(req.Status) {
		return response.BadRequest(c, "Status must be pending, approved or denied")
	}

	result := h.db.Model(&model.Class{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"status": req.Status,
			"reason": req.Reason,
		})
	if result.Error != nil {
		return response.InternalServerError(c, "Failed to update class status")
	}
	if result.RowsAffected == 0 {
		return response.NotFound(c, "Class not found")
	}

	return response.SuccessWithMessage(c, "Class status updated", fiber.Map{
		"modifiedCount": result.RowsAffected,
	})
}

// ChangeReasonRequest carries a feedback note for an instructor
type ChangeReasonRequest struct {
	Reason string `json:"reason"`
}

// ChangeReason updates a class's feedback note without touching its status
func (h *ClassHandler) ChangeReason(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid class id")
	}

	var req ChangeReasonRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	result := h.db.Model(&model.Class{}).Where("id = ?", id).
		Update("reason", req.Reason)
	if result.Error != nil {
		return response.InternalServerError(c, "Failed to update reason")
	}
	if result.RowsAffected == 0 {
		return response.NotFound(c, "Class not found")
	}

	return response.SuccessWithMessage(c, "Reason updated", fiber.Map{
		"modifiedCount": result.RowsAffected,
	})
}

// UpdateClassRequest represents an instructor editing their class
type UpdateClassRequest struct {
	Name           string      `json:"name,omitempty"`
	Description    string      `json:"description,omitempty"`
	Image          string      `json:"image,omitempty"`
	VideoLink      string      `json:"videoLink,omitempty"`
	Price          float64     `json:"price,omitempty"`
	AvailableSeats interface{} `json:"availableSeats,omitempty"`
}

// UpdateClass edits a class. Any edit sends the class back through
// moderation, so status always resets to pending.
func (h *ClassHandler) UpdateClass(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid class id")
	}

	var req UpdateClassRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	var class model.Class
	if err := h.db.First(&class, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Class not found")
		}
		return response.InternalServerError(c, "Failed to load class")
	}

	updates := map[string]interface{}{
		"status": model.StatusPending,
	}
	if req.Name != "" {
		updates["name"] = validation.SanitizeString(req.Name)
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.Image != "" {
		updates["image"] = req.Image
	}
	if req.VideoLink != "" {
		updates["video_link"] = req.VideoLink
	}
	if req.Price != 0 {
		updates["price"] = req.Price
	}
	if req.AvailableSeats != nil {
		seats, err := coerceSeats(req.AvailableSeats)
		if err != nil {
			return response.BadRequest(c, "Invalid seat count")
		}
		updates["available_seats"] = seats
	}

	if err := h.db.Model(&class).Updates(updates).Error; err != nil {
		return response.InternalServerError(c, "Failed to update class")
	}

	return response.SuccessWithMessage(c, "Class updated and sent back for approval", class)
}

// GetClass returns one class by id
func (h *ClassHandler) GetClass(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid class id")
	}

	var class model.Class
	if err := h.db.First(&class, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Class not found")
		}
		return response.InternalServerError(c, "Failed to load class")
	}
	return response.Success(c, class)
}

// PopularClasses returns the top classes by enrollment
func (h *ClassHandler) PopularClasses(c *fiber.Ctx) error {
	classes, err := h.catalog.PopularClasses(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to load popular classes")
	}
	return response.Success(c, classes)
}
