package client

import "time"

// API types as the client sees them, mirroring the server's JSON

type User struct {
	ID     uint   `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Gender string `json:"gender"`
}

type Profile struct {
	ID         uint      `json:"id"`
	Name       string    `json:"name"`
	UserID     uint      `json:"userId"`
	Active     bool      `json:"active"`
	WeightUnit string    `json:"weightUnit"`
	WeightType string    `json:"weightType"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
	Workouts   []Workout `json:"workouts,omitempty"`
}

type Workout struct {
	ID        uint       `json:"id"`
	Title     string     `json:"title"`
	Day       string     `json:"day"`
	ProfileID uint       `json:"profileId"`
	CreatedAt time.Time  `json:"createdAt"`
	Exercises []Exercise `json:"exercises,omitempty"`
}

type Exercise struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	WorkoutID uint      `json:"workoutId"`
	CreatedAt time.Time `json:"createdAt"`
	Sets      []Set     `json:"sets,omitempty"`
}

type Set struct {
	ID         uint      `json:"id"`
	Reps       int       `json:"reps"`
	Weight     float64   `json:"weight"`
	Unit       string    `json:"unit"`
	WeightType string    `json:"weightType"`
	ExerciseID uint      `json:"exerciseId"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Request bodies

type RegisterInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CreateProfileInput struct {
	Name       string `json:"name"`
	WeightUnit string `json:"weightUnit,omitempty"`
	WeightType string `json:"weightType,omitempty"`
	Active     *bool  `json:"active,omitempty"`
}

type UpdateProfileInput struct {
	Name       *string `json:"name,omitempty"`
	Active     *bool   `json:"active,omitempty"`
	WeightUnit *string `json:"weightUnit,omitempty"`
	WeightType *string `json:"weightType,omitempty"`
}

type SetInput struct {
	Reps       int     `json:"reps"`
	Weight     float64 `json:"weight"`
	Unit       string  `json:"unit"`
	WeightType string  `json:"weightType"`
}

type ExerciseInput struct {
	Name string     `json:"name"`
	Sets []SetInput `json:"sets,omitempty"`
}

type CreateWorkoutInput struct {
	Title     string          `json:"title"`
	Day       string          `json:"day"`
	ProfileID uint            `json:"profileId,omitempty"`
	Exercises []ExerciseInput `json:"exercises,omitempty"`
}

type UpdateWorkoutInput struct {
	Title *string `json:"title,omitempty"`
	Day   *string `json:"day,omitempty"`
}

type UpdateSetInput struct {
	Reps       *int     `json:"reps,omitempty"`
	Weight     *float64 `json:"weight,omitempty"`
	Unit       *string  `json:"unit,omitempty"`
	WeightType *string  `json:"weightType,omitempty"`
}
