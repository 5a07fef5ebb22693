package domain

import "time"

// Weight units and weight types a profile (or a single set) can use
const (
	UnitKG  = "KG"
	UnitLBS = "LBS"

	WeightTypeTotal   = "TOTAL"
	WeightTypePerSide = "PER_SIDE"
)

// Profile Model
type Profile struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"not null" json:"name"`
	UserID     uint      `gorm:"index;not null" json:"userId"` // Foreign key to User
	Active     bool      `gorm:"default:false" json:"active"`  // At most one active profile per user
	WeightUnit string    `gorm:"default:KG" json:"weightUnit"`
	WeightType string    `gorm:"default:PER_SIDE" json:"weightType"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
	Workouts   []Workout `gorm:"constraint:OnDelete:CASCADE" json:"workouts,omitempty"` // One-to-many relationship with Workout
}
