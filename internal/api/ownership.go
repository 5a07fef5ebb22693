package api

import (
	"errors"

	"gainz_journal/internal/domain"

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

// Sentinels for the two ways an ownership walk can fail. Existence is
// always checked before ownership, so a missing entity is a 404 and an
// entity owned by someone else is a 403.
var (
	errNotFound = errors.New("not found")
	errNotOwned = errors.New("not owned")
)

// findOwnedProfile fetches a profile and confirms it belongs to userID
func findOwnedProfile(db *gorm.DB, id, userID uint) (*domain.Profile, error) {
	var profile domain.Profile
	if err := db.First(&profile, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errNotFound
		}
		return nil, err
	}
	if profile.UserID != userID {
		return nil, errNotOwned
	}
	return &profile, nil
}

// findOwnedWorkout walks Workout -> Profile and confirms ownership
func findOwnedWorkout(db *gorm.DB, id, userID uint) (*domain.Workout, error) {
	var workout domain.Workout
	if err := db.First(&workout, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errNotFound
		}
		return nil, err
	}
	if _, err := findOwnedProfile(db, workout.ProfileID, userID); err != nil {
		return nil, err
	}
	return &workout, nil
}

// findOwnedExercise walks Exercise -> Workout -> Profile. The parent
// workout is returned alongside the exercise so callers can reach the
// rest of the chain without re-querying.
func findOwnedExercise(db *gorm.DB, id, userID uint) (*domain.Exercise, *domain.Workout, error) {
	var exercise domain.Exercise
	if err := db.First(&exercise, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, errNotFound
		}
		return nil, nil, err
	}
	workout, err := findOwnedWorkout(db, exercise.WorkoutID, userID)
	if err != nil {
		return nil, nil, err
	}
	return &exercise, workout, nil
}

// findOwnedSet walks the full Set -> Exercise -> Workout -> Profile chain
func findOwnedSet(db *gorm.DB, id, userID uint) (*domain.Set, *domain.Exercise, *domain.Workout, error) {
	var set domain.Set
	if err := db.First(&set, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, nil, errNotFound
		}
		return nil, nil, nil, err
	}
	exercise, workout, err := findOwnedExercise(db, set.ExerciseID, userID)
	if err != nil {
		return nil, nil, nil, err
	}
	return &set, exercise, workout, nil
}

// respondOwnershipErr maps an ownership walk failure onto the response
func respondOwnershipErr(c *gin.Context, err error, entity string) {
	switch {
	case errors.Is(err, errNotFound):
		notFound(c, entity)
	case errors.Is(err, errNotOwned):
		notOwned(c)
	default:
		serverError(c, err, "Failed to load "+entity)
	}
}
