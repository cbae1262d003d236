package cart

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/learning-master/api/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupHandler(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&model.Class{}, &model.CartItem{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	handler := NewCartHandler(db)
	app := fiber.New()
	app.Post("/add-to-cart", handler.AddToCart)
	app.Get("/cart-item/:id", handler.GetCartItem)
	app.Get("/cart/:email", handler.GetCart)
	app.Delete("/delete-cart-item/:id", handler.DeleteCartItem)

	return app, db
}

func TestAddToCartAndProbe(t *testing.T) {
	app, _ := setupHandler(t)

	payload, _ := json.Marshal(map[string]interface{}{
		"classId":   1,
		"userEmail": "buyer@example.com",
	})
	req := httptest.NewRequest(http.MethodPost, "/add-to-cart", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("add-to-cart status = %d, want 201", resp.StatusCode)
	}

	// Probe hits for the owner
	req = httptest.NewRequest(http.MethodGet, "/cart-item/1?email=buyer@example.com", nil)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	var envelope struct {
		Data *struct {
			ClassID uint `json:"classId"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if envelope.Data == nil || envelope.Data.ClassID != 1 {
		t.Errorf("probe = %+v, want classId 1", envelope.Data)
	}

	// Probe misses for a different user
	req = httptest.NewRequest(http.MethodGet, "/cart-item/1?email=other@example.com", nil)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	envelope.Data = nil
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if envelope.Data != nil {
		t.Errorf("expected nil data for another user's probe, got %+v", envelope.Data)
	}
}

func TestGetCartResolvesClassRecords(t *testing.T) {
	app, db := setupHandler(t)

	classes := []model.Class{
		{Name: "Go Basics", InstructorEmail: "i@example.com", Status: model.StatusApproved, AvailableSeats: 5},
		{Name: "SQL Deep Dive", InstructorEmail: "i@example.com", Status: model.StatusApproved, AvailableSeats: 5},
	}
	for i := range classes {
		if err := db.Create(&classes[i]).Error; err != nil {
			t.Fatalf("failed to seed class: %v", err)
		}
	}
	items := []model.CartItem{
		{ClassID: classes[0].ID, UserEmail: "buyer@example.com"},
		{ClassID: classes[1].ID, UserEmail: "buyer@example.com"},
		{ClassID: classes[0].ID, UserEmail: "other@example.com"},
	}
	for i := range items {
		if err := db.Create(&items[i]).Error; err != nil {
			t.Fatalf("failed to seed cart: %v", err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/cart/buyer@example.com", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	var envelope struct {
		Data []model.Class `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(envelope.Data) != 2 {
		t.Errorf("cart resolved %d classes, want 2", len(envelope.Data))
	}
}

func TestDeleteCartItemByClassID(t *testing.T) {
	app, db := setupHandler(t)

	item := model.CartItem{ClassID: 42, UserEmail: "buyer@example.com"}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("failed to seed cart: %v", err)
	}

	req := httptest.NewRequest(http.MethodDelete, "/delete-cart-item/42", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var count int64
	db.Model(&model.CartItem{}).Count(&count)
	if count != 0 {
		t.Errorf("expected cart row removed, %d remain", count)
	}

	// Deleting an id that is not in any cart reports zero, not an error
	req = httptest.NewRequest(http.MethodDelete, "/delete-cart-item/42", nil)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("repeat delete status = %d, want 200", resp.StatusCode)
	}
}
