package api

import (
	"net/http" // HTTP status codes

	"gainz_journal/internal/cache"
	"gainz_journal/internal/domain"

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// CreateExerciseRequest is the body for POST /api/exercise. Sets are
// optional and created in the same transaction as the exercise.
type CreateExerciseRequest struct {
	Name      string             `json:"name"`
	WorkoutID uint               `json:"workoutId"`
	Sets      []NestedSetRequest `json:"sets"`
}

// UpdateExerciseRequest is the body for PUT /api/exercise/:id
type UpdateExerciseRequest struct {
	Name *string `json:"name"`
}

// GetExercisesHandler lists a workout's exercises, oldest first, with
// their sets. The workoutId filter is required and ownership-checked
// before the query.
func GetExercisesHandler(db *gorm.DB, store cache.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		workoutID, ok := parseIDQuery(c, "workoutId", "Workout ID is required")
		if !ok {
			return
		}
		if _, err := findOwnedWorkout(db, workoutID, requesterID(c)); err != nil {
			respondOwnershipErr(c, err, "Workout")
			return
		}
		key := cache.ExercisesKey(workoutID)
		var exercises []domain.Exercise
		if found, err := store.Get(c.Request.Context(), key, &exercises); err == nil && found {
			c.Header("X-Cache", "HIT")
			c.JSON(http.StatusOK, gin.H{"exercises": exercises})
			return
		}
		err := db.Where("workout_id = ?", workoutID).
			Preload("Sets", func(db *gorm.DB) *gorm.DB { return db.Order("created_at asc, id asc") }).
			Order("created_at asc, id asc").
			Find(&exercises).Error
		if err != nil {
			serverError(c, err, "Failed to get exercises")
			return
		}
		_ = store.Set(c.Request.Context(), key, exercises, cache.DefaultTTL)
		c.Header("X-Cache", "MISS")
		c.JSON(http.StatusOK, gin.H{"exercises": exercises})
	}
}

// GetExerciseByIDHandler returns one owned exercise with its sets
func GetExerciseByIDHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c)
		if !ok {
			return
		}
		if _, _, err := findOwnedExercise(db, id, requesterID(c)); err != nil {
			respondOwnershipErr(c, err, "Exercise")
			return
		}
		var exercise domain.Exercise
		err := db.
			Preload("Sets", func(db *gorm.DB) *gorm.DB { return db.Order("created_at asc, id asc") }).
			First(&exercise, id).Error
		if err != nil {
			serverError(c, err, "Failed to get exercise")
			return
		}
		c.JSON(http.StatusOK, gin.H{"exercise": exercise})
	}
}

// CreateExerciseHandler creates an exercise under an owned workout,
// optionally with nested sets, in a single transaction
func CreateExerciseHandler(db *gorm.DB, store cache.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := requesterID(c)
		var req CreateExerciseRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "Invalid request")
			return
		}
		if req.Name == "" || req.WorkoutID == 0 {
			badRequest(c, "Please provide all required fields")
			return
		}
		for _, set := range req.Sets {
			if msg := validateSetValues(set.Reps, set.Weight, set.Unit, set.WeightType); msg != "" {
				badRequest(c, msg)
				return
			}
		}
		workout, err := findOwnedWorkout(db, req.WorkoutID, userID)
		if err != nil {
			respondOwnershipErr(c, err, "Workout")
			return
		}
		sets := make([]domain.Set, 0, len(req.Sets))
		for _, set := range req.Sets {
			sets = append(sets, domain.Set{
				Reps:       set.Reps,
				Weight:     set.Weight,
				Unit:       set.Unit,
				WeightType: set.WeightType,
			})
		}
		exercise := domain.Exercise{Name: req.Name, WorkoutID: req.WorkoutID, Sets: sets}
		// The exercise and its nested sets commit or roll back together
		err = db.Transaction(func(tx *gorm.DB) error {
			return tx.Create(&exercise).Error
		})
		if err != nil {
			serverError(c, err, "Failed to create exercise")
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id":     userID,
			"exercise_id": exercise.ID,
			"workout_id":  req.WorkoutID,
		}).Info("Exercise created")
		invalidate(c, store,
			cache.ExercisesKey(req.WorkoutID),
			cache.WorkoutsKey(workout.ProfileID),
			cache.ProfilesKey(userID))
		c.JSON(http.StatusCreated, gin.H{"exercise": exercise})
	}
}

// UpdateExerciseHandler merges the supplied fields into an owned exercise
func UpdateExerciseHandler(db *gorm.DB, store cache.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c)
		if !ok {
			return
		}
		userID := requesterID(c)
		exercise, workout, err := findOwnedExercise(db, id, userID)
		if err != nil {
			respondOwnershipErr(c, err, "Exercise")
			return
		}
		var req UpdateExerciseRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "Invalid request")
			return
		}
		if req.Name != nil {
			if *req.Name == "" {
				badRequest(c, "Name is required")
				return
			}
			if err := db.Model(exercise).Update("name", *req.Name).Error; err != nil {
				serverError(c, err, "Failed to update exercise")
				return
			}
		}
		var updated domain.Exercise
		err = db.
			Preload("Sets", func(db *gorm.DB) *gorm.DB { return db.Order("created_at asc, id asc") }).
			First(&updated, id).Error
		if err != nil {
			serverError(c, err, "Failed to update exercise")
			return
		}
		invalidate(c, store,
			cache.ExercisesKey(exercise.WorkoutID),
			cache.WorkoutsKey(workout.ProfileID),
			cache.ProfilesKey(userID))
		c.JSON(http.StatusOK, gin.H{"exercise": updated})
	}
}

// DeleteExerciseHandler removes an exercise and its sets in one
// transaction
func DeleteExerciseHandler(db *gorm.DB, store cache.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c)
		if !ok {
			return
		}
		userID := requesterID(c)
		exercise, workout, err := findOwnedExercise(db, id, userID)
		if err != nil {
			respondOwnershipErr(c, err, "Exercise")
			return
		}
		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("exercise_id = ?", id).Delete(&domain.Set{}).Error; err != nil {
				return err // Return error to rollback
			}
			return tx.Delete(&domain.Exercise{}, id).Error
		})
		if err != nil {
			serverError(c, err, "Failed to delete exercise")
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id":     userID,
			"exercise_id": id,
		}).Info("Exercise deleted")
		invalidate(c, store,
			cache.SetsKey(id),
			cache.ExercisesKey(exercise.WorkoutID),
			cache.WorkoutsKey(workout.ProfileID),
			cache.ProfilesKey(userID))
		c.JSON(http.StatusOK, gin.H{"message": "Exercise removed"})
	}
}
