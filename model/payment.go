package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Payment stores the payment payload submitted by the client at checkout.
// Payload keeps the raw JSON body verbatim; the indexed columns exist only so
// history can be queried without unpacking it.
type Payment struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
	UserEmail     string         `gorm:"index;not null" json:"userEmail"`
	TransactionID string         `gorm:"type:varchar(100);index" json:"transactionId"`
	Amount        float64        `json:"amount"`
	Date          time.Time      `gorm:"index" json:"date"`
	Payload       datatypes.JSON `json:"payload"`
}
