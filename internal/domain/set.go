package domain

import "time"

// Set Model
type Set struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Reps       int       `gorm:"not null" json:"reps"`             // Must be >= 1
	Weight     float64   `gorm:"not null" json:"weight"`           // Must be >= 0
	Unit       string    `gorm:"not null" json:"unit"`             // KG or LBS
	WeightType string    `gorm:"not null" json:"weightType"`       // TOTAL or PER_SIDE
	ExerciseID uint      `gorm:"index;not null" json:"exerciseId"` // Foreign key to Exercise
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
