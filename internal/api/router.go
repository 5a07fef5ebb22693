package api

import (
	"net/http" // HTTP status codes
	"time"

	"gainz_journal/internal/cache"
	"gainz_journal/internal/config"
	"gainz_journal/internal/middleware"

	"github.com/gin-contrib/cors" // CORS middleware
	"github.com/gin-gonic/gin"    // Gin web framework
	limit "github.com/yangxikun/gin-limit-by-key"
	"golang.org/x/time/rate"
	"gorm.io/gorm" // GORM ORM library
)

// NewRouter wires every route onto a gin engine. Register and login are
// public; everything else sits behind the JWT middleware.
func NewRouter(db *gorm.DB, store cache.Store, cfg *config.Config) *gin.Engine {
	SetProdMode(cfg.IsProd)

	r := gin.Default() // Gin router instance

	// CORS for the SPA origins
	corsCfg := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowCredentials = !corsCfg.AllowAllOrigins
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	r.Use(cors.New(corsCfg))

	// Per-IP rate limit, roughly 1000 requests per 15 minutes
	r.Use(limit.NewRateLimiter(func(c *gin.Context) string {
		return c.ClientIP()
	}, func(c *gin.Context) (*rate.Limiter, time.Duration) {
		return rate.NewLimiter(rate.Every(900*time.Millisecond), 50), time.Hour
	}, func(c *gin.Context) {
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests"})
	}))

	// Liveness probe
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Auth routes
	auth := r.Group("/api/auth")
	auth.POST("/register", RegisterHandler(db, cfg.JWTSecret)) // Registration endpoint
	auth.POST("/login", LoginHandler(db, cfg.JWTSecret))       // Login endpoint

	// Everything else requires a valid bearer token
	protected := r.Group("/api")
	protected.Use(middleware.JWTAuthMiddleware(db, cfg.JWTSecret))

	protected.GET("/auth/user", GetUserHandler(db))
	protected.PUT("/users/me", UpdateUserHandler(db))

	profile := protected.Group("/profile")
	profile.GET("", GetProfilesHandler(db, store))
	profile.POST("", CreateProfileHandler(db, store))
	profile.GET("/:id", GetProfileByIDHandler(db))
	profile.PUT("/:id", UpdateProfileHandler(db, store))
	profile.DELETE("/:id", DeleteProfileHandler(db, store))

	workout := protected.Group("/workout")
	workout.GET("", GetWorkoutsHandler(db, store))
	workout.POST("", CreateWorkoutHandler(db, store))
	workout.GET("/:id", GetWorkoutByIDHandler(db))
	workout.PUT("/:id", UpdateWorkoutHandler(db, store))
	workout.DELETE("/:id", DeleteWorkoutHandler(db, store))

	exercise := protected.Group("/exercise")
	exercise.GET("", GetExercisesHandler(db, store))
	exercise.POST("", CreateExerciseHandler(db, store))
	exercise.GET("/:id", GetExerciseByIDHandler(db))
	exercise.PUT("/:id", UpdateExerciseHandler(db, store))
	exercise.DELETE("/:id", DeleteExerciseHandler(db, store))

	set := protected.Group("/set")
	set.GET("", GetSetsHandler(db, store))
	set.POST("", CreateSetHandler(db, store))
	set.PUT("/:id", UpdateSetHandler(db, store))
	set.DELETE("/:id", DeleteSetHandler(db, store))

	return r
}
