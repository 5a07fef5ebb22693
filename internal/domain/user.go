package domain

import "time"

// User Model
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"unique;not null" json:"email"` // Unique login email
	Password  string    `gorm:"not null" json:"-"`            // Bcrypt hash, never serialized
	GoogleID  *string   `gorm:"uniqueIndex" json:"-"`         // Set for google sign-ins instead of a password
	Name      string    `json:"name"`
	Gender    string    `json:"gender"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Profiles  []Profile `gorm:"constraint:OnDelete:CASCADE" json:"profiles,omitempty"` // One-to-many relationship with Profile
}
