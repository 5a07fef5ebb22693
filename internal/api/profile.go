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

// CreateProfileRequest is the body for POST /api/profile
type CreateProfileRequest struct {
	Name       string `json:"name"`
	WeightUnit string `json:"weightUnit"`
	WeightType string `json:"weightType"`
	Active     *bool  `json:"active"`
}

// UpdateProfileRequest is the body for PUT /api/profile/:id. Pointer
// fields give merge semantics: unsupplied fields keep their values.
type UpdateProfileRequest struct {
	Name       *string `json:"name"`
	Active     *bool   `json:"active"`
	WeightUnit *string `json:"weightUnit"`
	WeightType *string `json:"weightType"`
}

// invalidate drops cache keys after a mutation; cache errors are soft
func invalidate(c *gin.Context, store cache.Store, keys ...string) {
	if err := store.Delete(c.Request.Context(), keys...); err != nil {
		logrus.WithFields(logrus.Fields{"error": err.Error()}).Warn("Cache invalidation failed")
	}
}

// GetProfilesHandler returns all of the user's profiles with their full
// workout trees, cached per user
func GetProfilesHandler(db *gorm.DB, store cache.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := requesterID(c)
		key := cache.ProfilesKey(userID)
		var profiles []domain.Profile
		if found, err := store.Get(c.Request.Context(), key, &profiles); err == nil && found {
			c.Header("X-Cache", "HIT")
			c.JSON(http.StatusOK, gin.H{"profiles": profiles})
			return
		}
		err := db.Where("user_id = ?", userID).
			Preload("Workouts", func(db *gorm.DB) *gorm.DB { return db.Order("created_at desc, id desc") }).
			Preload("Workouts.Exercises", func(db *gorm.DB) *gorm.DB { return db.Order("created_at asc, id asc") }).
			Preload("Workouts.Exercises.Sets", func(db *gorm.DB) *gorm.DB { return db.Order("created_at asc, id asc") }).
			Find(&profiles).Error
		if err != nil {
			serverError(c, err, "Failed to get profiles")
			return
		}
		_ = store.Set(c.Request.Context(), key, profiles, cache.DefaultTTL)
		c.Header("X-Cache", "MISS")
		c.JSON(http.StatusOK, gin.H{"profiles": profiles})
	}
}

// GetProfileByIDHandler returns one owned profile with its workout tree
func GetProfileByIDHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c)
		if !ok {
			return
		}
		if _, err := findOwnedProfile(db, id, requesterID(c)); err != nil {
			respondOwnershipErr(c, err, "Profile")
			return
		}
		var profile domain.Profile
		err := db.
			Preload("Workouts", func(db *gorm.DB) *gorm.DB { return db.Order("created_at desc, id desc") }).
			Preload("Workouts.Exercises", func(db *gorm.DB) *gorm.DB { return db.Order("created_at asc, id asc") }).
			Preload("Workouts.Exercises.Sets", func(db *gorm.DB) *gorm.DB { return db.Order("created_at asc, id asc") }).
			First(&profile, id).Error
		if err != nil {
			serverError(c, err, "Failed to get profile")
			return
		}
		c.JSON(http.StatusOK, gin.H{"profile": profile})
	}
}

// CreateProfileHandler creates a profile. The first profile a user
// creates becomes active automatically; later ones stay inactive unless
// activation is requested explicitly, in which case the previously
// active profile is deactivated in the same transaction.
func CreateProfileHandler(db *gorm.DB, store cache.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := requesterID(c)
		var req CreateProfileRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "Invalid request")
			return
		}
		if req.Name == "" {
			badRequest(c, "Name is required")
			return
		}
		if req.WeightUnit != "" {
			if msg := validateUnit(req.WeightUnit); msg != "" {
				badRequest(c, msg)
				return
			}
		} else {
			req.WeightUnit = domain.UnitKG
		}
		if req.WeightType != "" {
			if msg := validateWeightType(req.WeightType); msg != "" {
				badRequest(c, msg)
				return
			}
		} else {
			req.WeightType = domain.WeightTypePerSide
		}
		// Check if user already has an active profile
		var activeCount int64
		if err := db.Model(&domain.Profile{}).
			Where("user_id = ? AND active = ?", userID, true).
			Count(&activeCount).Error; err != nil {
			serverError(c, err, "Failed to create profile")
			return
		}
		explicit := req.Active != nil && *req.Active
		profile := domain.Profile{
			Name:       req.Name,
			UserID:     userID,
			WeightUnit: req.WeightUnit,
			WeightType: req.WeightType,
			Active:     explicit || activeCount == 0, // First profile is forced active
		}
		err := db.Transaction(func(tx *gorm.DB) error {
			if explicit {
				// Deactivate and activate in one transaction
				if err := tx.Model(&domain.Profile{}).
					Where("user_id = ?", userID).
					Update("active", false).Error; err != nil {
					return err // Return error to rollback
				}
			}
			return tx.Create(&profile).Error
		})
		if err != nil {
			serverError(c, err, "Failed to create profile")
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id":    userID,
			"profile_id": profile.ID,
			"active":     profile.Active,
		}).Info("Profile created")
		invalidate(c, store, cache.ProfilesKey(userID))
		c.JSON(http.StatusCreated, gin.H{"profile": profile})
	}
}

// UpdateProfileHandler merges the supplied fields into an owned profile.
// Activating a profile deactivates every other profile of the user in
// the same transaction, so two concurrent activations can never leave
// two active rows.
func UpdateProfileHandler(db *gorm.DB, store cache.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c)
		if !ok {
			return
		}
		userID := requesterID(c)
		if _, err := findOwnedProfile(db, id, userID); err != nil {
			respondOwnershipErr(c, err, "Profile")
			return
		}
		var req UpdateProfileRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "Invalid request")
			return
		}
		if req.WeightUnit != nil {
			if msg := validateUnit(*req.WeightUnit); msg != "" {
				badRequest(c, msg)
				return
			}
		}
		if req.WeightType != nil {
			if msg := validateWeightType(*req.WeightType); msg != "" {
				badRequest(c, msg)
				return
			}
		}
		if req.Name != nil && *req.Name == "" {
			badRequest(c, "Name is required")
			return
		}
		updates := map[string]any{}
		if req.Name != nil {
			updates["name"] = *req.Name
		}
		if req.Active != nil {
			updates["active"] = *req.Active
		}
		if req.WeightUnit != nil {
			updates["weight_unit"] = *req.WeightUnit
		}
		if req.WeightType != nil {
			updates["weight_type"] = *req.WeightType
		}
		err := db.Transaction(func(tx *gorm.DB) error {
			if req.Active != nil && *req.Active {
				// Single atomic set-active: deactivate the rest first
				if err := tx.Model(&domain.Profile{}).
					Where("user_id = ? AND id <> ?", userID, id).
					Update("active", false).Error; err != nil {
					return err // Return error to rollback
				}
			}
			if len(updates) == 0 {
				return nil
			}
			return tx.Model(&domain.Profile{}).Where("id = ?", id).Updates(updates).Error
		})
		if err != nil {
			serverError(c, err, "Failed to update profile")
			return
		}
		var profile domain.Profile
		err = db.
			Preload("Workouts", func(db *gorm.DB) *gorm.DB { return db.Order("created_at desc, id desc") }).
			Preload("Workouts.Exercises", func(db *gorm.DB) *gorm.DB { return db.Order("created_at asc, id asc") }).
			Preload("Workouts.Exercises.Sets", func(db *gorm.DB) *gorm.DB { return db.Order("created_at asc, id asc") }).
			First(&profile, id).Error
		if err != nil {
			serverError(c, err, "Failed to update profile")
			return
		}
		invalidate(c, store, cache.ProfilesKey(userID))
		c.JSON(http.StatusOK, gin.H{"profile": profile})
	}
}

// DeleteProfileHandler deletes a profile and every descendant workout,
// exercise and set in one transaction. When the deleted profile was the
// active one, the oldest remaining profile is promoted and returned so
// the client can re-sync its current profile.
func DeleteProfileHandler(db *gorm.DB, store cache.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c)
		if !ok {
			return
		}
		userID := requesterID(c)
		profile, err := findOwnedProfile(db, id, userID)
		if err != nil {
			respondOwnershipErr(c, err, "Profile")
			return
		}
		// Descendant ids, needed for both deletion and cache invalidation
		var workoutIDs []uint
		if err := db.Model(&domain.Workout{}).Where("profile_id = ?", id).
			Pluck("id", &workoutIDs).Error; err != nil {
			serverError(c, err, "Failed to delete profile")
			return
		}
		var exerciseIDs []uint
		if len(workoutIDs) > 0 {
			if err := db.Model(&domain.Exercise{}).Where("workout_id IN ?", workoutIDs).
				Pluck("id", &exerciseIDs).Error; err != nil {
				serverError(c, err, "Failed to delete profile")
				return
			}
		}
		var newActive *domain.Profile
		err = db.Transaction(func(tx *gorm.DB) error {
			if len(exerciseIDs) > 0 {
				if err := tx.Where("exercise_id IN ?", exerciseIDs).Delete(&domain.Set{}).Error; err != nil {
					return err // Return error to rollback
				}
			}
			if len(workoutIDs) > 0 {
				if err := tx.Where("workout_id IN ?", workoutIDs).Delete(&domain.Exercise{}).Error; err != nil {
					return err // Return error to rollback
				}
			}
			if err := tx.Where("profile_id = ?", id).Delete(&domain.Workout{}).Error; err != nil {
				return err // Return error to rollback
			}
			if err := tx.Delete(&domain.Profile{}, id).Error; err != nil {
				return err // Return error to rollback
			}
			// Promote the oldest remaining profile when the active one is gone
			if profile.Active {
				var next domain.Profile
				err := tx.Where("user_id = ?", userID).
					Order("created_at asc, id asc").
					First(&next).Error
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil // No profiles left: terminal state
				}
				if err != nil {
					return err
				}
				if err := tx.Model(&next).Update("active", true).Error; err != nil {
					return err // Return error to rollback
				}
				next.Active = true
				newActive = &next
			}
			return nil // Commit transaction
		})
		if err != nil {
			serverError(c, err, "Failed to delete profile")
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id":    userID,
			"profile_id": id,
			"was_active": profile.Active,
		}).Info("Profile deleted")
		keys := []string{cache.ProfilesKey(userID), cache.WorkoutsKey(id)}
		for _, wid := range workoutIDs {
			keys = append(keys, cache.ExercisesKey(wid))
		}
		for _, eid := range exerciseIDs {
			keys = append(keys, cache.SetsKey(eid))
		}
		invalidate(c, store, keys...)
		c.JSON(http.StatusOK, gin.H{
			"message":          "Profile deleted successfully",
			"newActiveProfile": newActive,
		})
	}
}
