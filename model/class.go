package model

import (
	"time"

	"gorm.io/gorm"
)

// Class review statuses. Every new or edited class goes back to pending until
// an admin approves or denies it.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusDenied   = "denied"
)

// IsValidStatus reports whether s is one of the canonical review statuses.
func IsValidStatus(s string) bool {
	return s == StatusPending || s == StatusApproved || s == StatusDenied
}

// Class represents a purchasable course offering created by an instructor.
// InstructorEmail is an application-level reference into users, not a foreign
// key.
type Class struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
	Name            string         `gorm:"not null" json:"name"`
	Description     string         `gorm:"type:text" json:"description"`
	Image           string         `gorm:"type:text" json:"image"`
	VideoLink       string         `gorm:"type:text" json:"videoLink"`
	InstructorName  string         `json:"instructorName"`
	InstructorEmail string         `gorm:"index;not null" json:"instructorEmail"`
	Price           float64        `gorm:"not null" json:"price"`
	AvailableSeats  int            `gorm:"not null" json:"availableSeats"`
	TotalEnrolled   int            `gorm:"not null;default:0" json:"totalEnrolled"`
	Status          string         `gorm:"type:varchar(20);default:'pending'" json:"status"`
	Reason          string         `gorm:"type:text" json:"reason,omitempty"`
}
