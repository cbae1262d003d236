package auth

import (
	"github.com/gofiber/fiber/v2"
	authutil "github.com/learning-master/api/utils/auth"
	"github.com/learning-master/api/utils/response"
	"github.com/learning-master/api/utils/validation"
)

// TokenHandler issues API tokens
type TokenHandler struct {
	jwtManager *authutil.JWTManager
}

// NewTokenHandler creates a new token handler
func NewTokenHandler(jwtManager *authutil.JWTManager) *TokenHandler {
	return &TokenHandler{
		jwtManager: jwtManager,
	}
}

// TokenRequest represents a token exchange request
type TokenRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name,omitempty"`
}

// SetToken exchanges a user identity for a signed JWT. The response shape
// is pinned to {token} for client compatibility.
func (h *TokenHandler) SetToken(c *fiber.Ctx) error {
	var req TokenRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Email == "" || !validation.ValidateEmail(req.Email) {
		return response.BadRequest(c, "A valid email is required")
	}

	token, err := h.jwtManager.GenerateToken(req.Email, req.Name)
	if err != nil {
		return response.InternalServerError(c, "Failed to generate token")
	}

	return c.JSON(fiber.Map{"token": token})
}
