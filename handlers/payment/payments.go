package payment

import (
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/learning-master/api/model"
	"github.com/learning-master/api/services"
	"github.com/learning-master/api/services/gateway"
	"github.com/learning-master/api/utils/response"
	"github.com/learning-master/api/utils/validation"
	"gorm.io/gorm"
)

// PaymentHandler handles payment intents, checkout and payment history
type PaymentHandler struct {
	db       *gorm.DB
	gateway  gateway.PaymentGateway
	checkout *services.CheckoutService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(db *gorm.DB, pg gateway.PaymentGateway, checkout *services.CheckoutService) *PaymentHandler {
	return &PaymentHandler{
		db:       db,
		gateway:  pg,
		checkout: checkout,
	}
}

// PaymentIntentRequest carries the cart total
type PaymentIntentRequest struct {
	Price float64 `json:"price" validate:"required"`
}

// CreatePaymentIntent opens a card payment for the given total. The response
// shape is pinned to {clientSecret} for client compatibility.
func (h *PaymentHandler) CreatePaymentIntent(c *fiber.Ctx) error {
	var req PaymentIntentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Price <= 0 {
		return response.BadRequest(c, "Price must be positive")
	}

	clientSecret, err := h.gateway.CreatePaymentIntent(req.Price)
	if err != nil {
		return response.InternalServerError(c, "Failed to create payment intent")
	}

	return c.JSON(fiber.Map{"clientSecret": clientSecret})
}

// PaymentInfoRequest represents a completed payment submission
type PaymentInfoRequest struct {
	UserEmail     string  `json:"userEmail" validate:"required,email"`
	TransactionID string  `json:"transactionId" validate:"required"`
	Price         float64 `json:"price"`
	Date          string  `json:"date,omitempty"`
	ClassIDs      []uint  `json:"classesId" validate:"required,min=1"`
}

// PaymentInfo records a completed payment: seat counts, enrollment, cart
// cleanup and the payment row all land in one transaction. An optional
// ?classId= query narrows cart cleanup to that single class.
func (h *PaymentHandler) PaymentInfo(c *fiber.Ctx) error {
	raw := c.Body()

	var req PaymentInfoRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.UserEmail == "" || !validation.ValidateEmail(req.UserEmail) {
		return response.BadRequest(c, "A valid user email is required")
	}
	if req.TransactionID == "" {
		return response.BadRequest(c, "Transaction id is required")
	}
	if len(req.ClassIDs) == 0 {
		return response.BadRequest(c, "At least one class id is required")
	}

	singleClassID := uint(c.QueryInt("classId"))

	var date time.Time
	if req.Date != "" {
		if parsed, err := time.Parse(time.RFC3339, req.Date); err == nil {
			date = parsed
		}
	}

	outcome, err := h.checkout.CompletePayment(services.PaymentInput{
		UserEmail:     req.UserEmail,
		TransactionID: req.TransactionID,
		Amount:        req.Price,
		Date:          date,
		ClassIDs:      req.ClassIDs,
		SingleClassID: singleClassID,
		RawPayload:    raw,
	})
	if err != nil {
		switch err {
		case services.ErrClassesNotFound:
			return response.NotFound(c, "No matching classes found")
		case services.ErrNoAvailableSeats:
			return response.BadRequest(c, "No available seats")
		default:
			return response.InternalServerError(c, "Failed to record payment")
		}
	}

	return response.Success(c, outcome)
}

// PaymentHistory returns a user's payments, most recent purchase first
func (h *PaymentHandler) PaymentHistory(c *fiber.Ctx) error {
	email := c.Params("email")

	var payments []model.Payment
	if err := h.db.Where("user_email = ?", email).Order("date DESC").Find(&payments).Error; err != nil {
		return response.InternalServerError(c, "Failed to load payment history")
	}
	return response.Success(c, payments)
}

// PaymentHistoryLength returns a user's payment count. The response shape is
// pinned to {total}.
func (h *PaymentHandler) PaymentHistoryLength(c *fiber.Ctx) error {
	email := c.Params("email")

	var total int64
	if err := h.db.Model(&model.Payment{}).Where("user_email = ?", email).Count(&total).Error; err != nil {
		return response.InternalServerError(c, "Failed to count payments")
	}
	return c.JSON(fiber.Map{"total": total})
}
