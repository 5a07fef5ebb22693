package cache

import "strconv"

// Cache keys are deterministic per filter target so mutating handlers can
// invalidate exactly the lists they touched.

// ProfilesKey is the cache key for a user's profile list
func ProfilesKey(userID uint) string {
	return "profiles:user:" + strconv.FormatUint(uint64(userID), 10)
}

// WorkoutsKey is the cache key for a profile's workout list
func WorkoutsKey(profileID uint) string {
	return "workouts:profile:" + strconv.FormatUint(uint64(profileID), 10)
}

// ExercisesKey is the cache key for a workout's exercise list
func ExercisesKey(workoutID uint) string {
	return "exercises:workout:" + strconv.FormatUint(uint64(workoutID), 10)
}

// SetsKey is the cache key for an exercise's set list
func SetsKey(exerciseID uint) string {
	return "sets:exercise:" + strconv.FormatUint(uint64(exerciseID), 10)
}
