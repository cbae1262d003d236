package services

import (
	"testing"

	"github.com/learning-master/api/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.Class{},
		&model.CartItem{},
		&model.Payment{},
		&model.Enrollment{},
		&model.EnrollmentClass{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func seedClass(t *testing.T, db *gorm.DB, name string, seats, enrolled int) model.Class {
	t.Helper()

	class := model.Class{
		Name:            name,
		InstructorName:  "Test Instructor",
		InstructorEmail: "instructor@example.com",
		Price:           1500,
		AvailableSeats:  seats,
		TotalEnrolled:   enrolled,
		Status:          model.StatusApproved,
	}
	if err := db.Create(&class).Error; err != nil {
		t.Fatalf("failed to seed class: %v", err)
	}
	return class
}

func TestCompletePaymentMultiClass(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCheckoutService(db, nil)

	classA := seedClass(t, db, "Go Basics", 5, 2)
	classB := seedClass(t, db, "SQL Deep Dive", 3, 0)

	// Two cart rows for the buyer, plus another user's row holding classA
	for _, item := range []model.CartItem{
		{ClassID: classA.ID, UserEmail: "buyer@example.com"},
		{ClassID: classB.ID, UserEmail: "buyer@example.com"},
		{ClassID: classA.ID, UserEmail: "other@example.com"},
	} {
		if err := db.Create(&item).Error; err != nil {
			t.Fatalf("failed to seed cart: %v", err)
		}
	}

	outcome, err := svc.CompletePayment(PaymentInput{
		UserEmail:     "buyer@example.com",
		TransactionID: "txn-001",
		Amount:        3000,
		ClassIDs:      []uint{classA.ID, classB.ID},
		RawPayload:    []byte(`{"transactionId":"txn-001"}`),
	})
	if err != nil {
		t.Fatalf("CompletePayment failed: %v", err)
	}

	var gotA model.Class
	if err := db.First(&gotA, classA.ID).Error; err != nil {
		t.Fatalf("failed to reload class: %v", err)
	}
	if gotA.AvailableSeats != 4 || gotA.TotalEnrolled != 3 {
		t.Errorf("classA seats/enrolled = %d/%d, want 4/3", gotA.AvailableSeats, gotA.TotalEnrolled)
	}
	var gotB model.Class
	if err := db.First(&gotB, classB.ID).Error; err != nil {
		t.Fatalf("failed to reload class: %v", err)
	}
	if gotB.AvailableSeats != 2 || gotB.TotalEnrolled != 1 {
		t.Errorf("classB seats/enrolled = %d/%d, want 2/1", gotB.AvailableSeats, gotB.TotalEnrolled)
	}

	var enrollments []model.Enrollment
	if err := db.Preload("Classes").Find(&enrollments).Error; err != nil {
		t.Fatalf("failed to load enrollments: %v", err)
	}
	if len(enrollments) != 1 {
		t.Fatalf("expected 1 enrollment, got %d", len(enrollments))
	}
	if len(enrollments[0].Classes) != 2 {
		t.Errorf("expected enrollment to cover 2 classes, got %d", len(enrollments[0].Classes))
	}

	// Every cart row holding a purchased class is gone, whoever owned it
	var cartCount int64
	db.Model(&model.CartItem{}).Count(&cartCount)
	if cartCount != 0 {
		t.Errorf("expected empty cart table, got %d rows", cartCount)
	}
	if outcome.DeletedResult != 3 {
		t.Errorf("DeletedResult = %d, want 3", outcome.DeletedResult)
	}

	var payments []model.Payment
	if err := db.Find(&payments).Error; err != nil {
		t.Fatalf("failed to load payments: %v", err)
	}
	if len(payments) != 1 {
		t.Fatalf("expected 1 payment, got %d", len(payments))
	}
	if payments[0].TransactionID != "txn-001" {
		t.Errorf("payment transaction = %s, want txn-001", payments[0].TransactionID)
	}
	if payments[0].Date.IsZero() {
		t.Error("expected payment date fallback to be set")
	}
}

func TestCompletePaymentSingleClassCartScope(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCheckoutService(db, nil)

	class := seedClass(t, db, "Go Basics", 5, 0)

	for _, item := range []model.CartItem{
		{ClassID: class.ID, UserEmail: "buyer@example.com"},
		{ClassID: class.ID, UserEmail: "other@example.com"},
	} {
		if err := db.Create(&item).Error; err != nil {
			t.Fatalf("failed to seed cart: %v", err)
		}
	}

	_, err := svc.CompletePayment(PaymentInput{
		UserEmail:     "buyer@example.com",
		TransactionID: "txn-002",
		Amount:        1500,
		ClassIDs:      []uint{class.ID},
		SingleClassID: class.ID,
		RawPayload:    []byte(`{}`),
	})
	if err != nil {
		t.Fatalf("CompletePayment failed: %v", err)
	}

	// Only the buyer's row goes; the other user's cart survives
	var remaining []model.CartItem
	if err := db.Find(&remaining).Error; err != nil {
		t.Fatalf("failed to load cart: %v", err)
	}
	if len(remaining) != 1 || remaining[0].UserEmail != "other@example.com" {
		t.Errorf("expected only other@example.com's cart row to remain, got %+v", remaining)
	}
}

func TestCompletePaymentNoSeatsRollsBack(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCheckoutService(db, nil)

	open := seedClass(t, db, "Go Basics", 5, 0)
	full := seedClass(t, db, "Sold Out", 0, 10)

	if err := db.Create(&model.CartItem{ClassID: open.ID, UserEmail: "buyer@example.com"}).Error; err != nil {
		t.Fatalf("failed to seed cart: %v", err)
	}

	_, err := svc.CompletePayment(PaymentInput{
		UserEmail:     "buyer@example.com",
		TransactionID: "txn-003",
		Amount:        3000,
		ClassIDs:      []uint{open.ID, full.ID},
		RawPayload:    []byte(`{}`),
	})
	if err != ErrNoAvailableSeats {
		t.Fatalf("expected ErrNoAvailableSeats, got %v", err)
	}

	// Nothing moved: seats, cart, enrollments and payments are untouched
	var got model.Class
	if err := db.First(&got, open.ID).Error; err != nil {
		t.Fatalf("failed to reload class: %v", err)
	}
	if got.AvailableSeats != 5 || got.TotalEnrolled != 0 {
		t.Errorf("open class mutated: seats/enrolled = %d/%d", got.AvailableSeats, got.TotalEnrolled)
	}

	var cartCount, enrollCount, paymentCount int64
	db.Model(&model.CartItem{}).Count(&cartCount)
	db.Model(&model.Enrollment{}).Count(&enrollCount)
	db.Model(&model.Payment{}).Count(&paymentCount)
	if cartCount != 1 || enrollCount != 0 || paymentCount != 0 {
		t.Errorf("rollback incomplete: cart=%d enrollments=%d payments=%d", cartCount, enrollCount, paymentCount)
	}
}

func TestCompletePaymentLastSeatNeverGoesNegative(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCheckoutService(db, nil)

	class := seedClass(t, db, "Final Seat", 1, 9)

	_, err := svc.CompletePayment(PaymentInput{
		UserEmail:     "first@example.com",
		TransactionID: "txn-010",
		ClassIDs:      []uint{class.ID},
		RawPayload:    []byte(`{}`),
	})
	if err != nil {
		t.Fatalf("first purchase failed: %v", err)
	}

	_, err = svc.CompletePayment(PaymentInput{
		UserEmail:     "second@example.com",
		TransactionID: "txn-011",
		ClassIDs:      []uint{class.ID},
		RawPayload:    []byte(`{}`),
	})
	if err != ErrNoAvailableSeats {
		t.Fatalf("second purchase: expected ErrNoAvailableSeats, got %v", err)
	}

	var got model.Class
	if err := db.First(&got, class.ID).Error; err != nil {
		t.Fatalf("failed to reload class: %v", err)
	}
	if got.AvailableSeats != 0 {
		t.Errorf("availableSeats = %d, want 0 and never negative", got.AvailableSeats)
	}
	if got.TotalEnrolled != 10 {
		t.Errorf("totalEnrolled = %d, want 10", got.TotalEnrolled)
	}

	var paymentCount int64
	db.Model(&model.Payment{}).Count(&paymentCount)
	if paymentCount != 1 {
		t.Errorf("expected only the first payment to land, got %d", paymentCount)
	}
}

func TestCompletePaymentUnknownClasses(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCheckoutService(db, nil)

	_, err := svc.CompletePayment(PaymentInput{
		UserEmail:     "buyer@example.com",
		TransactionID: "txn-004",
		ClassIDs:      []uint{999},
		RawPayload:    []byte(`{}`),
	})
	if err != ErrClassesNotFound {
		t.Fatalf("expected ErrClassesNotFound, got %v", err)
	}
}
