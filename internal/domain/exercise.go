package domain

import "time"

// Exercise Model
type Exercise struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	WorkoutID uint      `gorm:"index;not null" json:"workoutId"` // Foreign key to Workout
	CreatedAt time.Time `json:"createdAt"`
	Sets      []Set     `gorm:"constraint:OnDelete:CASCADE" json:"sets,omitempty"` // One-to-many relationship with Set
}
