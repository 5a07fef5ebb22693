package api

import (
	"errors"
	"net/http" // HTTP status codes

	"gainz_journal/internal/cache"
	"gainz_journal/internal/domain"

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// NestedSetRequest is a set created inline with its parent exercise
type NestedSetRequest struct {
	Reps       int     `json:"reps"`
	Weight     float64 `json:"weight"`
	Unit       string  `json:"unit"`
	WeightType string  `json:"weightType"`
}

// NestedExerciseRequest is an exercise created inline with its workout
type NestedExerciseRequest struct {
	Name string             `json:"name"`
	Sets []NestedSetRequest `json:"sets"`
}

// CreateWorkoutRequest is the body for POST /api/workout. Exercises and
// their sets are optional and created in the same transaction as the
// workout.
type CreateWorkoutRequest struct {
	Title     string                  `json:"title"`
	Day       string                  `json:"day"`
	ProfileID uint                    `json:"profileId"`
	Exercises []NestedExerciseRequest `json:"exercises"`
}

// UpdateWorkoutRequest is the body for PUT /api/workout/:id
type UpdateWorkoutRequest struct {
	Title *string `json:"title"`
	Day   *string `json:"day"`
}

// validateNestedExercises checks every inline exercise and set before
// anything is persisted
func validateNestedExercises(exercises []NestedExerciseRequest) string {
	for _, exercise := range exercises {
		if exercise.Name == "" {
			return "Exercise name is required"
		}
		for _, set := range exercise.Sets {
			if msg := validateSetValues(set.Reps, set.Weight, set.Unit, set.WeightType); msg != "" {
				return msg
			}
		}
	}
	return ""
}

// buildNestedExercises converts the request tree into domain models
func buildNestedExercises(exercises []NestedExerciseRequest) []domain.Exercise {
	out := make([]domain.Exercise, 0, len(exercises))
	for _, exercise := range exercises {
		sets := make([]domain.Set, 0, len(exercise.Sets))
		for _, set := range exercise.Sets {
			sets = append(sets, domain.Set{
				Reps:       set.Reps,
				Weight:     set.Weight,
				Unit:       set.Unit,
				WeightType: set.WeightType,
			})
		}
		out = append(out, domain.Exercise{Name: exercise.Name, Sets: sets})
	}
	return out
}

// GetWorkoutsHandler lists a profile's workouts, newest first, with
// their exercises and sets. The profileId filter is required and
// ownership-checked before the query.
func GetWorkoutsHandler(db *gorm.DB, store cache.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		profileID, ok := parseIDQuery(c, "profileId", "Profile ID is required")
		if !ok {
			return
		}
		if _, err := findOwnedProfile(db, profileID, requesterID(c)); err != nil {
			respondOwnershipErr(c, err, "Profile")
			return
		}
		key := cache.WorkoutsKey(profileID)
		var workouts []domain.Workout
		if found, err := store.Get(c.Request.Context(), key, &workouts); err == nil && found {
			c.Header("X-Cache", "HIT")
			c.JSON(http.StatusOK, gin.H{"workouts": workouts})
			return
		}
		err := db.Where("profile_id = ?", profileID).
			Preload("Exercises", func(db *gorm.DB) *gorm.DB { return db.Order("created_at asc, id asc") }).
			Preload("Exercises.Sets", func(db *gorm.DB) *gorm.DB { return db.Order("created_at asc, id asc") }).
			Order("created_at desc, id desc").
			Find(&workouts).Error
		if err != nil {
			serverError(c, err, "Failed to get workouts")
			return
		}
		_ = store.Set(c.Request.Context(), key, workouts, cache.DefaultTTL)
		c.Header("X-Cache", "MISS")
		c.JSON(http.StatusOK, gin.H{"workouts": workouts})
	}
}

// GetWorkoutByIDHandler returns one owned workout with its tree
func GetWorkoutByIDHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c)
		if !ok {
			return
		}
		if _, err := findOwnedWorkout(db, id, requesterID(c)); err != nil {
			respondOwnershipErr(c, err, "Workout")
			return
		}
		var workout domain.Workout
		err := db.
			Preload("Exercises", func(db *gorm.DB) *gorm.DB { return db.Order("created_at asc, id asc") }).
			Preload("Exercises.Sets", func(db *gorm.DB) *gorm.DB { return db.Order("created_at asc, id asc") }).
			First(&workout, id).Error
		if err != nil {
			serverError(c, err, "Failed to get workout")
			return
		}
		c.JSON(http.StatusOK, gin.H{"workout": workout})
	}
}

// CreateWorkoutHandler creates a workout, optionally with nested
// exercises and sets, in a single transaction. Without a profileId the
// workout lands on the user's active profile; a user with no profiles
// gets a client-facing error rather than an implicit profile.
func CreateWorkoutHandler(db *gorm.DB, store cache.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := requesterID(c)
		var req CreateWorkoutRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "Invalid request")
			return
		}
		if req.Title == "" || req.Day == "" {
			badRequest(c, "Please provide all required fields")
			return
		}
		if msg := validateDay(req.Day); msg != "" {
			badRequest(c, msg)
			return
		}
		if msg := validateNestedExercises(req.Exercises); msg != "" {
			badRequest(c, msg)
			return
		}
		profileID := req.ProfileID
		if profileID != 0 {
			if _, err := findOwnedProfile(db, profileID, userID); err != nil {
				respondOwnershipErr(c, err, "Profile")
				return
			}
		} else {
			// Fall back to the active profile
			var active domain.Profile
			err := db.Where("user_id = ? AND active = ?", userID, true).First(&active).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				badRequest(c, "Select or create a profile first")
				return
			}
			if err != nil {
				serverError(c, err, "Failed to create workout")
				return
			}
			profileID = active.ID
		}
		workout := domain.Workout{
			Title:     req.Title,
			Day:       req.Day,
			ProfileID: profileID,
			Exercises: buildNestedExercises(req.Exercises),
		}
		// The workout and all nested rows commit or roll back together
		err := db.Transaction(func(tx *gorm.DB) error {
			return tx.Create(&workout).Error
		})
		if err != nil {
			serverError(c, err, "Failed to create workout")
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id":    userID,
			"workout_id": workout.ID,
			"profile_id": profileID,
			"exercises":  len(workout.Exercises),
		}).Info("Workout created")
		invalidate(c, store, cache.WorkoutsKey(profileID), cache.ProfilesKey(userID))
		c.JSON(http.StatusCreated, gin.H{"workout": workout})
	}
}

// UpdateWorkoutHandler merges the supplied fields into an owned workout
func UpdateWorkoutHandler(db *gorm.DB, store cache.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c)
		if !ok {
			return
		}
		userID := requesterID(c)
		workout, err := findOwnedWorkout(db, id, userID)
		if err != nil {
			respondOwnershipErr(c, err, "Workout")
			return
		}
		var req UpdateWorkoutRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "Invalid request")
			return
		}
		if req.Title != nil && *req.Title == "" {
			badRequest(c, "Title is required")
			return
		}
		if req.Day != nil {
			if msg := validateDay(*req.Day); msg != "" {
				badRequest(c, msg)
				return
			}
		}
		updates := map[string]any{}
		if req.Title != nil {
			updates["title"] = *req.Title
		}
		if req.Day != nil {
			updates["day"] = *req.Day
		}
		if len(updates) > 0 {
			if err := db.Model(workout).Updates(updates).Error; err != nil {
				serverError(c, err, "Failed to update workout")
				return
			}
		}
		var updated domain.Workout
		err = db.
			Preload("Exercises", func(db *gorm.DB) *gorm.DB { return db.Order("created_at asc, id asc") }).
			Preload("Exercises.Sets", func(db *gorm.DB) *gorm.DB { return db.Order("created_at asc, id asc") }).
			First(&updated, id).Error
		if err != nil {
			serverError(c, err, "Failed to update workout")
			return
		}
		invalidate(c, store, cache.WorkoutsKey(workout.ProfileID), cache.ProfilesKey(userID))
		c.JSON(http.StatusOK, gin.H{"workout": updated})
	}
}

// DeleteWorkoutHandler removes a workout and its exercises and sets in
// one transaction
func DeleteWorkoutHandler(db *gorm.DB, store cache.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c)
		if !ok {
			return
		}
		userID := requesterID(c)
		workout, err := findOwnedWorkout(db, id, userID)
		if err != nil {
			respondOwnershipErr(c, err, "Workout")
			return
		}
		var exerciseIDs []uint
		if err := db.Model(&domain.Exercise{}).Where("workout_id = ?", id).
			Pluck("id", &exerciseIDs).Error; err != nil {
			serverError(c, err, "Failed to delete workout")
			return
		}
		err = db.Transaction(func(tx *gorm.DB) error {
			if len(exerciseIDs) > 0 {
				if err := tx.Where("exercise_id IN ?", exerciseIDs).Delete(&domain.Set{}).Error; err != nil {
					return err // Return error to rollback
				}
			}
			if err := tx.Where("workout_id = ?", id).Delete(&domain.Exercise{}).Error; err != nil {
				return err // Return error to rollback
			}
			return tx.Delete(&domain.Workout{}, id).Error
		})
		if err != nil {
			serverError(c, err, "Failed to delete workout")
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id":    userID,
			"workout_id": id,
		}).Info("Workout deleted")
		keys := []string{cache.WorkoutsKey(workout.ProfileID), cache.ExercisesKey(id), cache.ProfilesKey(userID)}
		for _, eid := range exerciseIDs {
			keys = append(keys, cache.SetsKey(eid))
		}
		invalidate(c, store, keys...)
		c.JSON(http.StatusOK, gin.H{"message": "Workout removed"})
	}
}
