package model

import (
	"time"

	"gorm.io/gorm"
)

// User roles. Every self-registered account starts as RoleUser; promotion to
// instructor happens through the application workflow, admin is assigned
// manually.
const (
	RoleUser       = "user"
	RoleInstructor = "instructor"
	RoleAdmin      = "admin"
)

// User represents a registered user in the marketplace
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	Name      string         `gorm:"not null" json:"name"`
	Email     string         `gorm:"uniqueIndex;not null" json:"email"`
	PhotoURL  string         `gorm:"type:text" json:"photoUrl"`
	Gender    string         `gorm:"type:varchar(20)" json:"gender"`
	Phone     string         `gorm:"type:varchar(30)" json:"phone"`
	Address   string         `gorm:"type:text" json:"address"`
	Role      string         `gorm:"type:varchar(20);default:'user'" json:"role"` // user, instructor, admin
	About     string         `gorm:"type:text" json:"about,omitempty"`
	Skills    string         `gorm:"type:text" json:"skills,omitempty"`
}
