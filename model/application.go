package model

import (
	"time"
)

// InstructorApplication is submitted by a user who wants to teach. Approving
// it flips the role on the users table; the application row survives until an
// admin deletes it explicitly.
type InstructorApplication struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	Name       string    `gorm:"not null" json:"name"`
	Email      string    `gorm:"index;not null" json:"email"`
	Experience string    `gorm:"type:text" json:"experience"`
}

// TableName keeps the short collection name the frontend already knows.
func (InstructorApplication) TableName() string {
	return "applied_instructors"
}
