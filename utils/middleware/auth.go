package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/learning-master/api/model"
	"github.com/learning-master/api/utils/auth"
	"github.com/learning-master/api/utils/response"
	"gorm.io/gorm"
)

// AuthMiddleware handles JWT authentication and role checks. The role gates
// re-read the users table on every request instead of trusting anything in
// the token, so a role change takes effect immediately.
type AuthMiddleware struct {
	jwtManager *auth.JWTManager
	db         *gorm.DB
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(jwtManager *auth.JWTManager, db *gorm.DB) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager: jwtManager,
		db:         db,
	}
}

// Required is middleware that requires a valid JWT token. A missing token is
// a 401; a malformed or expired one is a 403.
func (m *AuthMiddleware) Required() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return response.Unauthorized(c, "Missing authorization token")
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return response.Unauthorized(c, "Invalid authorization format")
		}

		claims, err := m.jwtManager.ValidateToken(parts[1])
		if err != nil {
			if err == auth.ErrExpiredToken {
				return response.Forbidden(c, "Token has expired")
			}
			return response.Forbidden(c, "Invalid token")
		}

		// Store identity in context for downstream handlers
		c.Locals("user_email", claims.Email)
		c.Locals("claims", claims)

		return c.Next()
	}
}

// RequireAdmin gates a route to admin users. Must run after Required. A claim
// email with no matching user record is denied, not dereferenced.
func (m *AuthMiddleware) RequireAdmin() fiber.Handler {
	return m.requireRole(model.RoleAdmin)
}

// RequireInstructor gates a route to instructors; admins pass as well. Must
// run after Required. Same fail-closed rule for unknown emails.
func (m *AuthMiddleware) RequireInstructor() fiber.Handler {
	return m.requireRole(model.RoleInstructor, model.RoleAdmin)
}

func (m *AuthMiddleware) requireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		email, ok := GetUserEmail(c)
		if !ok || email == "" {
			return response.Unauthorized(c, "Unauthorized access")
		}

		var user model.User
		if err := m.db.Where("email = ?", email).First(&user).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				// No user record for the claim email: deny
				return response.Unauthorized(c, "Unauthorized access")
			}
			return response.InternalServerError(c, "Failed to load user")
		}

		for _, r := range roles {
			if user.Role == r {
				c.Locals("user", &user)
				return c.Next()
			}
		}

		return response.Unauthorized(c, "Unauthorized access")
	}
}

// GetUserEmail extracts the authenticated email from context
func GetUserEmail(c *fiber.Ctx) (string, bool) {
	email := c.Locals("user_email")
	if email == nil {
		return "", false
	}
	e, ok := email.(string)
	return e, ok
}

// GetClaims extracts full claims from context
func GetClaims(c *fiber.Ctx) (*auth.Claims, bool) {
	claims := c.Locals("claims")
	if claims == nil {
		return nil, false
	}
	claimsData, ok := claims.(*auth.Claims)
	return claimsData, ok
}

// GetUser extracts the user record loaded by a role gate from context
func GetUser(c *fiber.Ctx) (*model.User, bool) {
	user := c.Locals("user")
	if user == nil {
		return nil, false
	}
	u, ok := user.(*model.User)
	return u, ok
}
