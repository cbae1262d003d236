package class

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
	if err := db.AutoMigrate(&model.Class{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	handler := NewClassHandler(db, nil)
	app := fiber.New()
	app.Post("/new-class", handler.NewClass)
	app.Get("/classes", handler.ListApproved)
	app.Get("/approved-classes", handler.ListApproved)
	app.Put("/change-status/:id", handler.ChangeStatus)
	app.Put("/update-class/:id", handler.UpdateClass)

	return app, db
}

func sendJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) *http.Response {
	t.Helper()

	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal body: %v", err)
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

func seedClass(t *testing.T, db *gorm.DB, status string) model.Class {
	t.Helper()

	class := model.Class{
		Name:            "Go Basics",
		InstructorName:  "Test Instructor",
		InstructorEmail: "instructor@example.com",
		Price:           1500,
		AvailableSeats:  10,
		Status:          status,
	}
	if err := db.Create(&class).Error; err != nil {
		t.Fatalf("failed to seed class: %v", err)
	}
	return class
}

func TestNewClassStartsPending(t *testing.T) {
	app, db := setupHandler(t)

	resp := sendJSON(t, app, http.MethodPost, "/new-class", map[string]interface{}{
		"name":            "Concurrency Workshop",
		"instructorName":  "Test Instructor",
		"instructorEmail": "instructor@example.com",
		"price":           2500,
		"availableSeats":  "30", // numeric strings are accepted
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}

	var class model.Class
	if err := db.Where("name = ?", "Concurrency Workshop").First(&class).Error; err != nil {
		t.Fatalf("failed to load class: %v", err)
	}
	if class.Status != model.StatusPending {
		t.Errorf("status = %q, want pending", class.Status)
	}
	if class.AvailableSeats != 30 {
		t.Errorf("availableSeats = %d, want 30", class.AvailableSeats)
	}
	if class.TotalEnrolled != 0 {
		t.Errorf("totalEnrolled = %d, want 0", class.TotalEnrolled)
	}
}

func TestChangeStatusPersistsDecision(t *testing.T) {
	app, db := setupHandler(t)
	class := seedClass(t, db, model.StatusPending)

	resp := sendJSON(t, app, http.MethodPut, "/change-status/1", map[string]string{
		"status": model.StatusDenied,
		"reason": "Outline is too thin",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var got model.Class
	if err := db.First(&got, class.ID).Error; err != nil {
		t.Fatalf("failed to reload class: %v", err)
	}
	if got.Status != model.StatusDenied {
		t.Errorf("status = %q, want denied", got.Status)
	}
	if got.Reason != "Outline is too thin" {
		t.Errorf("reason = %q, want the submitted reason", got.Reason)
	}
}

func TestChangeStatusRejectsUnknownStatus(t *testing.T) {
	app, db := setupHandler(t)
	class := seedClass(t, db, model.StatusPending)

	resp := sendJSON(t, app, http.MethodPut, "/change-status/1", map[string]string{
		"status": "published",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}

	var got model.Class
	if err := db.First(&got, class.ID).Error; err != nil {
		t.Fatalf("failed to reload class: %v", err)
	}
	if got.Status != model.StatusPending {
		t.Errorf("status mutated to %q", got.Status)
	}
}

func TestUpdateClassResetsStatusToPending(t *testing.T) {
	app, db := setupHandler(t)
	class := seedClass(t, db, model.StatusApproved)

	resp := sendJSON(t, app, http.MethodPut, "/update-class/1", map[string]interface{}{
		"price": 1800,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var got model.Class
	if err := db.First(&got, class.ID).Error; err != nil {
		t.Fatalf("failed to reload class: %v", err)
	}
	if got.Status != model.StatusPending {
		t.Errorf("status = %q, want pending after an edit", got.Status)
	}
	if got.Price != 1800 {
		t.Errorf("price = %v, want 1800", got.Price)
	}
}

func TestApprovedRoutesAnswerIdentically(t *testing.T) {
	app, db := setupHandler(t)
	seedClass(t, db, model.StatusApproved)
	seedClass(t, db, model.StatusPending)

	for _, path := range []string{"/classes", "/approved-classes"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("%s status = %d, want 200", path, resp.StatusCode)
		}

		var envelope struct {
			Data []model.Class `json:"data"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if len(envelope.Data) != 1 {
			t.Errorf("%s returned %d classes, want only the approved one", path, len(envelope.Data))
		}
	}
}
