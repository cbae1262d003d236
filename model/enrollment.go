package model

import (
	"time"
)

// Enrollment is created once per completed checkout and covers every class in
// that purchase. Rows are immutable after insert.
type Enrollment struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	CreatedAt     time.Time `json:"created_at"`
	UserEmail     string    `gorm:"index;not null" json:"userEmail"`
	TransactionID string    `gorm:"type:varchar(100);index" json:"transactionId"`

	Classes []EnrollmentClass `gorm:"foreignKey:EnrollmentID;constraint:OnDelete:CASCADE" json:"classesId,omitempty"`
}

// EnrollmentClass links an enrollment to one purchased class.
type EnrollmentClass struct {
	ID           uint `gorm:"primaryKey" json:"-"`
	EnrollmentID uint `gorm:"index;not null" json:"-"`
	ClassID      uint `gorm:"index;not null" json:"classId"`
}
