package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/learning-master/api/model"
	"github.com/learning-master/api/utils/auth"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupAuthTest(t *testing.T) (*fiber.App, *gorm.DB, *auth.JWTManager) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&model.User{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	jwtManager := auth.NewJWTManager(auth.JWTConfig{
		Secret: "test-secret-key",
		Expiry: time.Hour,
		Issuer: "learning-master-test",
	})

	authMiddleware := NewAuthMiddleware(jwtManager, db)

	ok := func(c *fiber.Ctx) error { return c.SendString("ok") }

	app := fiber.New()
	app.Get("/protected", authMiddleware.Required(), ok)
	app.Get("/admin-only", authMiddleware.Required(), authMiddleware.RequireAdmin(), ok)
	app.Get("/instructor-only", authMiddleware.Required(), authMiddleware.RequireInstructor(), ok)

	return app, db, jwtManager
}

func request(t *testing.T, app *fiber.App, path, token string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

func TestRequiredMissingToken(t *testing.T) {
	app, _, _ := setupAuthTest(t)

	resp := request(t, app, "/protected", "")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}
}

func TestRequiredInvalidToken(t *testing.T) {
	app, _, _ := setupAuthTest(t)

	resp := request(t, app, "/protected", "not-a-real-token")
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("status = %d, want 403", resp.StatusCode)
	}
}

func TestRequiredExpiredToken(t *testing.T) {
	app, _, _ := setupAuthTest(t)

	expired := auth.NewJWTManager(auth.JWTConfig{
		Secret: "test-secret-key",
		Expiry: -time.Minute,
		Issuer: "learning-master-test",
	})
	token, err := expired.GenerateToken("someone@example.com", "Someone")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	resp := request(t, app, "/protected", token)
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("status = %d, want 403", resp.StatusCode)
	}
}

func TestRoleGateDeniesUnknownEmail(t *testing.T) {
	app, _, jwtManager := setupAuthTest(t)

	// Valid token, but no user row behind the claim email
	token, err := jwtManager.GenerateToken("ghost@example.com", "Ghost")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	for _, path := range []string{"/admin-only", "/instructor-only"} {
		resp := request(t, app, path, token)
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("%s status = %d, want 401", path, resp.StatusCode)
		}
	}
}

func TestRoleGateDeniesWrongRole(t *testing.T) {
	app, db, jwtManager := setupAuthTest(t)

	user := model.User{Name: "Plain User", Email: "plain@example.com", Role: model.RoleUser}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}

	token, err := jwtManager.GenerateToken(user.Email, user.Name)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	for _, path := range []string{"/admin-only", "/instructor-only"} {
		resp := request(t, app, path, token)
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("%s status = %d, want 401", path, resp.StatusCode)
		}
	}
}

func TestRoleGateAllowsMatchingRole(t *testing.T) {
	app, db, jwtManager := setupAuthTest(t)

	adminUser := model.User{Name: "Admin", Email: "admin@example.com", Role: model.RoleAdmin}
	instructorUser := model.User{Name: "Instructor", Email: "teach@example.com", Role: model.RoleInstructor}
	for _, u := range []*model.User{&adminUser, &instructorUser} {
		if err := db.Create(u).Error; err != nil {
			t.Fatalf("failed to seed user: %v", err)
		}
	}

	adminToken, err := jwtManager.GenerateToken(adminUser.Email, adminUser.Name)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	instructorToken, err := jwtManager.GenerateToken(instructorUser.Email, instructorUser.Name)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	if resp := request(t, app, "/admin-only", adminToken); resp.StatusCode != http.StatusOK {
		t.Errorf("admin on /admin-only: status = %d, want 200", resp.StatusCode)
	}
	if resp := request(t, app, "/instructor-only", instructorToken); resp.StatusCode != http.StatusOK {
		t.Errorf("instructor on /instructor-only: status = %d, want 200", resp.StatusCode)
	}

	// Admins pass the instructor gate too
	if resp := request(t, app, "/instructor-only", adminToken); resp.StatusCode != http.StatusOK {
		t.Errorf("admin on /instructor-only: status = %d, want 200", resp.StatusCode)
	}

	// Instructors do not pass the admin gate
	if resp := request(t, app, "/admin-only", instructorToken); resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("instructor on /admin-only: status = %d, want 401", resp.StatusCode)
	}
}
