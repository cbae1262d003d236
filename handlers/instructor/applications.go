package instructor

import (
	"github.com/gofiber/fiber/v2"
	"github.com/learning-master/api/model"
	"github.com/learning-master/api/utils/response"
	"github.com/learning-master/api/utils/validation"
	"gorm.io/gorm"
)

// ApplicationHandler handles instructor applications and promotions
type ApplicationHandler struct {
	db       *gorm.DB
	validate *validation.Validator
}

// NewApplicationHandler creates a new application handler
func NewApplicationHandler(db *gorm.DB) *ApplicationHandler {
	return &ApplicationHandler{
		db:       db,
		validate: validation.NewValidator(),
	}
}

// ApplyRequest represents an instructor application
type ApplyRequest struct {
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Experience string `json:"experience,omitempty"`
}

// Apply records an instructor application
func (h *ApplicationHandler) Apply(c *fiber.Ctx) error {
	var req ApplyRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validate.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	application := model.InstructorApplication{
		Name:       validation.SanitizeString(req.Name),
		Email:      req.Email,
		Experience: req.Experience,
	}
	if err := h.db.Create(&application).Error; err != nil {
		return response.InternalServerError(c, "Failed to submit application")
	}

	return response.Created(c, "Application submitted", application)
}

// ListApplications returns every instructor application
func (h *ApplicationHandler) ListApplications(c *fiber.Ctx) error {
	var applications []model.InstructorApplication
	if err := h.db.Find(&applications).Error; err != nil {
		return response.InternalServerError(c, "Failed to load applications")
	}
	return response.Success(c, applications)
}

// GetApplicationByEmail returns one applicant's application
func (h *ApplicationHandler) GetApplicationByEmail(c *fiber.Ctx) error {
	email := c.Params("email")

	var application model.InstructorApplication
	if err := h.db.Where("email = ?", email).First(&application).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Application not found")
		}
		return response.InternalServerError(c, "Failed to load application")
	}
	return response.Success(c, application)
}

// ChangeRole promotes an applicant to instructor. The email must have both
// an application and a user account; only the user record changes, the
// application stays for the audit trail.
func (h *ApplicationHandler) ChangeRole(c *fiber.Ctx) error {
	email := c.Params("email")

	var application model.InstructorApplication
	if err := h.db.Where("email = ?", email).First(&application).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Application not found")
		}
		return response.InternalServerError(c, "Failed to load application")
	}

	var user model.User
	if err := h.db.Where("email = ?", email).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to load user")
	}

	if err := h.db.Model(&user).Update("role", model.RoleInstructor).Error; err != nil {
		return response.InternalServerError(c, "Failed to update role")
	}

	return response.SuccessWithMessage(c, "User promoted to instructor", user)
}

// DeleteApplication removes an instructor application
func (h *ApplicationHandler) DeleteApplication(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid application id")
	}

	result := h.db.Delete(&model.InstructorApplication{}, id)
	if result.Error != nil {
		return response.InternalServerError(c, "Failed to delete application")
	}
	if result.RowsAffected == 0 {
		return response.NotFound(c, "Application not found")
	}

	return response.SuccessWithMessage(c, "Application deleted", fiber.Map{
		"deletedCount": result.RowsAffected,
	})
}
