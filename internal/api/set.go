package api

import (
	"net/http" // HTTP status codes

	"gainz_journal/internal/cache"
	"gainz_journal/internal/domain"

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// CreateSetRequest is the body for POST /api/set
type CreateSetRequest struct {
	Reps       int     `json:"reps"`
	Weight     float64 `json:"weight"`
	Unit       string  `json:"unit"`
	WeightType string  `json:"weightType"`
	ExerciseID uint    `json:"exerciseId"`
}

// UpdateSetRequest is the body for PUT /api/set/:id. Pointer fields
// give merge semantics: unsupplied fields keep their values.
type UpdateSetRequest struct {
	Reps       *int     `json:"reps"`
	Weight     *float64 `json:"weight"`
	Unit       *string  `json:"unit"`
	WeightType *string  `json:"weightType"`
}

// GetSetsHandler lists an exercise's sets, newest first. The exerciseId
// filter is required and ownership-checked before the query.
func GetSetsHandler(db *gorm.DB, store cache.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		exerciseID, ok := parseIDQuery(c, "exerciseId", "Exercise ID is required")
		if !ok {
			return
		}
		if _, _, err := findOwnedExercise(db, exerciseID, requesterID(c)); err != nil {
			respondOwnershipErr(c, err, "Exercise")
			return
		}
		key := cache.SetsKey(exerciseID)
		var sets []domain.Set
		if found, err := store.Get(c.Request.Context(), key, &sets); err == nil && found {
			c.Header("X-Cache", "HIT")
			c.JSON(http.StatusOK, gin.H{"sets": sets})
			return
		}
		err := db.Where("exercise_id = ?", exerciseID).
			Order("created_at desc, id desc").
			Find(&sets).Error
		if err != nil {
			serverError(c, err, "Failed to get sets")
			return
		}
		_ = store.Set(c.Request.Context(), key, sets, cache.DefaultTTL)
		c.Header("X-Cache", "MISS")
		c.JSON(http.StatusOK, gin.H{"sets": sets})
	}
}

// CreateSetHandler logs a set against an owned exercise. All numeric
// and enum constraints are checked before any row is written.
func CreateSetHandler(db *gorm.DB, store cache.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := requesterID(c)
		var req CreateSetRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "Invalid request")
			return
		}
		if req.ExerciseID == 0 || req.Reps == 0 || req.Unit == "" || req.WeightType == "" {
			badRequest(c, "Please provide all required fields")
			return
		}
		if msg := validateSetValues(req.Reps, req.Weight, req.Unit, req.WeightType); msg != "" {
			badRequest(c, msg)
			return
		}
		_, workout, err := findOwnedExercise(db, req.ExerciseID, userID)
		if err != nil {
			respondOwnershipErr(c, err, "Exercise")
			return
		}
		set := domain.Set{
			Reps:       req.Reps,
			Weight:     req.Weight,
			Unit:       req.Unit,
			WeightType: req.WeightType,
			ExerciseID: req.ExerciseID,
		}
		if err := db.Create(&set).Error; err != nil {
			serverError(c, err, "Failed to create set")
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id":     userID,
			"set_id":      set.ID,
			"exercise_id": req.ExerciseID,
		}).Info("Set created")
		invalidate(c, store,
			cache.SetsKey(req.ExerciseID),
			cache.ExercisesKey(workout.ID),
			cache.WorkoutsKey(workout.ProfileID),
			cache.ProfilesKey(userID))
		c.JSON(http.StatusCreated, gin.H{"set": set})
	}
}

// UpdateSetHandler merges the supplied fields into an owned set
func UpdateSetHandler(db *gorm.DB, store cache.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c)
		if !ok {
			return
		}
		userID := requesterID(c)
		set, _, workout, err := findOwnedSet(db, id, userID)
		if err != nil {
			respondOwnershipErr(c, err, "Set")
			return
		}
		var req UpdateSetRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "Invalid request")
			return
		}
		// Effective values after the merge must still satisfy the
		// set constraints
		reps, weight, unit, weightType := set.Reps, set.Weight, set.Unit, set.WeightType
		if req.Reps != nil {
			reps = *req.Reps
		}
		if req.Weight != nil {
			weight = *req.Weight
		}
		if req.Unit != nil {
			unit = *req.Unit
		}
		if req.WeightType != nil {
			weightType = *req.WeightType
		}
		if msg := validateSetValues(reps, weight, unit, weightType); msg != "" {
			badRequest(c, msg)
			return
		}
		updates := map[string]any{
			"reps":        reps,
			"weight":      weight,
			"unit":        unit,
			"weight_type": weightType,
		}
		if err := db.Model(set).Updates(updates).Error; err != nil {
			serverError(c, err, "Failed to update set")
			return
		}
		set.Reps, set.Weight, set.Unit, set.WeightType = reps, weight, unit, weightType
		invalidate(c, store,
			cache.SetsKey(set.ExerciseID),
			cache.ExercisesKey(workout.ID),
			cache.WorkoutsKey(workout.ProfileID),
			cache.ProfilesKey(userID))
		c.JSON(http.StatusOK, gin.H{"set": set})
	}
}

// DeleteSetHandler removes one owned set
func DeleteSetHandler(db *gorm.DB, store cache.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c)
		if !ok {
			return
		}
		userID := requesterID(c)
		set, _, workout, err := findOwnedSet(db, id, userID)
		if err != nil {
			respondOwnershipErr(c, err, "Set")
			return
		}
		if err := db.Delete(&domain.Set{}, id).Error; err != nil {
			serverError(c, err, "Failed to delete set")
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id": userID,
			"set_id":  id,
		}).Info("Set deleted")
		invalidate(c, store,
			cache.SetsKey(set.ExerciseID),
			cache.ExercisesKey(workout.ID),
			cache.WorkoutsKey(workout.ProfileID),
			cache.ProfilesKey(userID))
		c.JSON(http.StatusOK, gin.H{"message": "Set deleted successfully"})
	}
}
