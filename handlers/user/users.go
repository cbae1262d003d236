package user

import (
	"github.com/gofiber/fiber/v2"
	"github.com/learning-master/api/model"
	"github.com/learning-master/api/utils/response"
	"github.com/learning-master/api/utils/validation"
	"gorm.io/gorm"
)

// UserHandler handles user account requests
type UserHandler struct {
	db *gorm.DB
}

// NewUserHandler creates a new user handler
func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{
		db: db,
	}
}

// NewUserRequest represents a user registration request
type NewUserRequest struct {
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	PhotoURL string `json:"photoUrl,omitempty"`
	Gender   string `json:"gender,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`
	About    string `json:"about,omitempty"`
	Skills   string `json:"skills,omitempty"`
}

// NewUser registers a user. Registration is idempotent by email: a repeat
// call reports the existing account and mutates nothing.
func (h *UserHandler) NewUser(c *fiber.Ctx) error {
	var req NewUserRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Email == "" || !validation.ValidateEmail(req.Email) {
		return response.BadRequest(c, "A valid email is required")
	}
	if req.Name == "" {
		return response.BadRequest(c, "Name is required")
	}

	var existing model.User
	err := h.db.Where("email = ?", req.Email).First(&existing).Error
	if err == nil {
		return response.SuccessWithMessage(c, "User already exists.", existing)
	}
	if err != gorm.ErrRecordNotFound {
		return response.InternalServerError(c, "Failed to look up user")
	}

	// Role is always "user" at registration; promotion goes through the
	// instructor application flow or an admin update.
	user := model.User{
		Name:     validation.SanitizeString(req.Name),
		Email:    req.Email,
		PhotoURL: req.PhotoURL,
		Gender:   req.Gender,
		Phone:    req.Phone,
		Address:  req.Address,
		About:    req.About,
		Skills:   req.Skills,
		Role:     model.RoleUser,
	}
	if err := h.db.Create(&user).Error; err != nil {
		return response.InternalServerError(c, "Failed to create user")
	}

	return response.Created(c, "User created successfully", user)
}

// ListUsers returns every user account
func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	var users []model.User
	if err := h.db.Find(&users).Error; err != nil {
		return response.InternalServerError(c, "Failed to load users")
	}
	return response.Success(c, users)
}

// GetUserByID returns one user by numeric id
func (h *UserHandler) GetUserByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid user id")
	}

	var user model.User
	if err := h.db.First(&user, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to load user")
	}
	return response.Success(c, user)
}

// GetUserByEmail returns one user by email
func (h *UserHandler) GetUserByEmail(c *fiber.Ctx) error {
	email := c.Params("email")

	var user model.User
	if err := h.db.Where("email = ?", email).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to load user")
	}
	return response.Success(c, user)
}

// DeleteUser removes a user account
func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid user id")
	}

	result := h.db.Delete(&model.User{}, id)
	if result.Error != nil {
		return response.InternalServerError(c, "Failed to delete user")
	}
	if result.RowsAffected == 0 {
		return response.NotFound(c, "User not found")
	}

	return response.SuccessWithMessage(c, "User deleted successfully", fiber.Map{
		"deletedCount": result.RowsAffected,
	})
}

// AdminUpdateRequest represents an admin-side user update. The deployed
// frontend submits the new role under the key "option"; "role" is accepted
// too and wins when both are present.
type AdminUpdateRequest struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	PhotoURL string `json:"photoUrl,omitempty"`
	Role     string `json:"role,omitempty"`
	Option   string `json:"option,omitempty"`
	About    string `json:"about,omitempty"`
	Skills   string `json:"skills,omitempty"`
}

func (r AdminUpdateRequest) role() string {
	if r.Role != "" {
		return r.Role
	}
	return r.Option
}

// UpdateUserByAdmin updates any user field, including role
func (h *UserHandler) UpdateUserByAdmin(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid user id")
	}

	var req AdminUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	role := req.role()
	if role != "" && role != model.RoleUser &&
		role != model.RoleInstructor && role != model.RoleAdmin {
		return response.BadRequest(c, "Invalid role")
	}
	if req.Email != "" && !validation.ValidateEmail(req.Email) {
		return response.BadRequest(c, "Invalid email")
	}

	var user model.User
	if err := h.db.First(&user, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to load user")
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = validation.SanitizeString(req.Name)
	}
	if req.Email != "" {
		updates["email"] = req.Email
	}
	if req.PhotoURL != "" {
		updates["photo_url"] = req.PhotoURL
	}
	if role != "" {
		updates["role"] = role
	}
	if req.About != "" {
		updates["about"] = req.About
	}
	if req.Skills != "" {
		updates["skills"] = req.Skills
	}

	if err := h.db.Model(&user).Updates(updates).Error; err != nil {
		return response.InternalServerError(c, "Failed to update user")
	}

	return response.SuccessWithMessage(c, "User updated successfully", user)
}

// ProfileUpdateRequest represents a self-service profile update. Email and
// role are not editable here.
type ProfileUpdateRequest struct {
	Name     string `json:"name,omitempty"`
	PhotoURL string `json:"photoUrl,omitempty"`
	Gender   string `json:"gender,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`
	About    string `json:"about,omitempty"`
	Skills   string `json:"skills,omitempty"`
}

// UpdateProfile updates a user's own profile fields
func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid user id")
	}

	var req ProfileUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	var user model.User
	if err := h.db.First(&user, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to load user")
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = validation.SanitizeString(req.Name)
	}
	if req.PhotoURL != "" {
		updates["photo_url"] = req.PhotoURL
	}
	if req.Gender != "" {
		updates["gender"] = req.Gender
	}
	if req.Phone != "" {
		updates["phone"] = req.Phone
	}
	if req.Address != "" {
		updates["address"] = req.Address
	}
	if req.About != "" {
		updates["about"] = req.About
	}
	if req.Skills != "" {
		updates["skills"] = req.Skills
	}

	if err := h.db.Model(&user).Updates(updates).Error; err != nil {
		return response.InternalServerError(c, "Failed to update profile")
	}

	return response.SuccessWithMessage(c, "Profile updated successfully", user)
}

// ListInstructors returns every user with the instructor role
func (h *UserHandler) ListInstructors(c *fiber.Ctx) error {
	var instructors []model.User
	if err := h.db.Where("role = ?", model.RoleInstructor).Find(&instructors).Error; err != nil {
		return response.InternalServerError(c, "Failed to load instructors")
	}
	return response.Success(c, instructors)
}
