package model

import (
	"time"
)

// CartItem is a pending intent to purchase a class. The pair (ClassID,
// UserEmail) is deliberately not unique-constrained; duplicate adds are
// possible and checkout deletes all matching rows.
type CartItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	ClassID   uint      `gorm:"index;not null" json:"classId"`
	UserEmail string    `gorm:"index;not null" json:"userEmail"`
}
