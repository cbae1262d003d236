package cart

import (
	"github.com/gofiber/fiber/v2"
	"github.com/learning-master/api/model"
	"github.com/learning-master/api/utils/response"
	"github.com/learning-master/api/utils/validation"
	"gorm.io/gorm"
)

// CartHandler handles shopping cart requests
type CartHandler struct {
	db *gorm.DB
}

// NewCartHandler creates a new cart handler
func NewCartHandler(db *gorm.DB) *CartHandler {
	return &CartHandler{
		db: db,
	}
}

// AddToCartRequest represents a cart addition
type AddToCartRequest struct {
	ClassID   uint   `json:"classId" validate:"required"`
	UserEmail string `json:"userEmail" validate:"required,email"`
}

// AddToCart puts a class in a user's cart. Duplicate additions are allowed,
// matching how the cart has always behaved.
func (h *CartHandler) AddToCart(c *fiber.Ctx) error {
	var req AddToCartRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.ClassID == 0 {
		return response.BadRequest(c, "Class id is required")
	}
	if req.UserEmail == "" || !validation.ValidateEmail(req.UserEmail) {
		return response.BadRequest(c, "A valid user email is required")
	}

	item := model.CartItem{
		ClassID:   req.ClassID,
		UserEmail: req.UserEmail,
	}
	if err := h.db.Create(&item).Error; err != nil {
		return response.InternalServerError(c, "Failed to add to cart")
	}

	return response.Created(c, "Added to cart", item)
}

// GetCartItem probes whether a class sits in a user's cart. It projects only
// the class id, so the frontend can toggle its add button.
func (h *CartHandler) GetCartItem(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid class id")
	}
	email := c.Query("email")

	var item model.CartItem
	err = h.db.Where("class_id = ? AND user_email = ?", id, email).First(&item).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.Success(c, nil)
		}
		return response.InternalServerError(c, "Failed to look up cart item")
	}

	return response.Success(c, fiber.Map{"classId": item.ClassID})
}

// GetCart returns the full class records for everything in a user's cart
func (h *CartHandler) GetCart(c *fiber.Ctx) error {
	email := c.Params("email")

	var items []model.CartItem
	if err := h.db.Where("user_email = ?", email).Find(&items).Error; err != nil {
		return response.InternalServerError(c, "Failed to load cart")
	}

	if len(items) == 0 {
		return response.Success(c, []model.Class{})
	}

	classIDs := make([]uint, 0, len(items))
	for _, item := range items {
		classIDs = append(classIDs, item.ClassID)
	}

	var classes []model.Class
	if err := h.db.Where("id IN ?", classIDs).Find(&classes).Error; err != nil {
		return response.InternalServerError(c, "Failed to load cart classes")
	}

	return response.Success(c, classes)
}

// DeleteCartItem removes one cart line by class id
func (h *CartHandler) DeleteCartItem(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid class id")
	}

	var item model.CartItem
	if err := h.db.Where("class_id = ?", id).First(&item).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.SuccessWithMessage(c, "Cart item not found", fiber.Map{
				"deletedCount": 0,
			})
		}
		return response.InternalServerError(c, "Failed to look up cart item")
	}

	result := h.db.Delete(&item)
	if result.Error != nil {
		return response.InternalServerError(c, "Failed to delete cart item")
	}

	return response.SuccessWithMessage(c, "Cart item removed", fiber.Map{
		"deletedCount": result.RowsAffected,
	})
}
