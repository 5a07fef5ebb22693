package domain

import "time"

// Workout Model
type Workout struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Title     string     `gorm:"not null" json:"title"`
	Day       string     `gorm:"not null" json:"day"`             // One of SUNDAY..SATURDAY
	ProfileID uint       `gorm:"index;not null" json:"profileId"` // Foreign key to Profile
	CreatedAt time.Time  `json:"createdAt"`
	Exercises []Exercise `gorm:"constraint:OnDelete:CASCADE" json:"exercises,omitempty"` // One-to-many relationship with Exercise
}
