package services

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/learning-master/api/model"
	"github.com/learning-master/api/utils/cache"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	// ErrClassesNotFound means none of the requested class IDs exist
	ErrClassesNotFound = errors.New("no matching classes found")
	// ErrNoAvailableSeats means at least one requested class is full
	ErrNoAvailableSeats = errors.New("no available seats")
)

// PaymentInput is the resolved payment submission. RawPayload carries the
// submitted document verbatim for the payment record.
type PaymentInput struct {
	UserEmail     string
	TransactionID string
	Amount        float64
	Date          time.Time
	ClassIDs      []uint
	SingleClassID uint
	RawPayload    []byte
}

// PaymentOutcome reports each effect of a completed checkout
type PaymentOutcome struct {
	PaymentResult  *model.Payment    `json:"paymentResult"`
	DeletedResult  int64             `json:"deletedResult"`
	EnrolledResult *model.Enrollment `json:"enrolledResult"`
	UpdatedResult  int64             `json:"updatedResult"`
}

// CheckoutService completes payments: seat accounting, enrollment, cart
// cleanup and the payment record all commit or roll back together.
type CheckoutService struct {
	db    *gorm.DB
	cache *cache.RedisCache
}

// NewCheckoutService creates a checkout service. cache may be nil.
func NewCheckoutService(db *gorm.DB, redisCache *cache.RedisCache) *CheckoutService {
	return &CheckoutService{
		db:    db,
		cache: redisCache,
	}
}

// CompletePayment runs the full checkout inside one transaction. If any
// requested class has no seats left, nothing is mutated.
func (s *CheckoutService) CompletePayment(input PaymentInput) (*PaymentOutcome, error) {
	outcome := &PaymentOutcome{}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var classes []model.Class
		if err := tx.Where("id IN ?", input.ClassIDs).Find(&classes).Error; err != nil {
			return err
		}
		if len(classes) == 0 {
			return ErrClassesNotFound
		}

		for _, class := range classes {
			if class.AvailableSeats <= 0 {
				return ErrNoAvailableSeats
			}
		}

		// The seats guard is repeated in the WHERE clause so a concurrent
		// checkout that takes the last seat first cannot drive the count
		// negative; a short update means someone else won the seat.
		updated := tx.Model(&model.Class{}).
			Where("id IN ? AND available_seats > 0", input.ClassIDs).
			Updates(map[string]interface{}{
				"available_seats": gorm.Expr("available_seats - 1"),
				"total_enrolled":  gorm.Expr("total_enrolled + 1"),
			})
		if updated.Error != nil {
			return updated.Error
		}
		if updated.RowsAffected != int64(len(classes)) {
			return ErrNoAvailableSeats
		}
		outcome.UpdatedResult = updated.RowsAffected

		enrollment := &model.Enrollment{
			UserEmail:     input.UserEmail,
			TransactionID: input.TransactionID,
		}
		for _, class := range classes {
			enrollment.Classes = append(enrollment.Classes, model.EnrollmentClass{
				ClassID: class.ID,
			})
		}
		if err := tx.Create(enrollment).Error; err != nil {
			return err
		}
		outcome.EnrolledResult = enrollment

		// Single-class purchases remove that user's cart line; multi-class
		// purchases clear every cart line holding one of the classes.
		var deleted *gorm.DB
		if input.SingleClassID != 0 {
			deleted = tx.Where("class_id = ? AND user_email = ?", input.SingleClassID, input.UserEmail).
				Delete(&model.CartItem{})
		} else {
			deleted = tx.Where("class_id IN ?", input.ClassIDs).
				Delete(&model.CartItem{})
		}
		if deleted.Error != nil {
			return deleted.Error
		}
		outcome.DeletedResult = deleted.RowsAffected

		date := input.Date
		if date.IsZero() {
			date = time.Now()
		}
		payment := &model.Payment{
			UserEmail:     input.UserEmail,
			TransactionID: input.TransactionID,
			Amount:        input.Amount,
			Date:          date,
			Payload:       datatypes.JSON(input.RawPayload),
		}
		if err := tx.Create(payment).Error; err != nil {
			return err
		}
		outcome.PaymentResult = payment

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidatePopular()

	return outcome, nil
}

// invalidatePopular drops the popularity caches after enrollment counts move
func (s *CheckoutService) invalidatePopular() {
	if s.cache == nil {
		return
	}
	ctx := context.Background()
	for _, key := range []string{CacheKeyPopularClasses, CacheKeyPopularInstructors} {
		if err := s.cache.Delete(ctx, key); err != nil {
			log.Printf("⚠️ Failed to invalidate cache key %s: %v", key, err)
		}
	}
}
