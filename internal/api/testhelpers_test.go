package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"net/http"
	"net/http/httptest"
	"testing"

	"gainz_journal/internal/cache"
	"gainz_journal/internal/config"
	"gainz_journal/internal/db"
	"gainz_journal/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

// newTestRouter builds a router over a fresh in-memory database
func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// each sqlite connection gets its own in-memory database
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	cfg := &config.Config{JWTSecret: testSecret}
	return NewRouter(gdb, cache.NewMemory(), cfg), gdb
}

// doJSON performs one request against the router and returns the recorder
func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	// the rate limiter's state is global and keyed by client IP, so give
	// each test its own address to keep tests isolated from one another
	h := fnv.New32a()
	h.Write([]byte(t.Name()))
	s := h.Sum32()
	req.RemoteAddr = fmt.Sprintf("10.%d.%d.%d:1234", byte(s>>16), byte(s>>8), byte(s))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// decode unmarshals a recorder body into dest
func decode(t *testing.T, w *httptest.ResponseRecorder, dest any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), dest); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
}

type authEnvelope struct {
	User struct {
		ID    uint   `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
	} `json:"user"`
	Token            string           `json:"token"`
	CurrentProfileID *uint            `json:"currentProfileId"`
	Profiles         []domain.Profile `json:"profiles"`
}

// registerUser creates a user via the API and returns the token plus
// the default profile's id
func registerUser(t *testing.T, r *gin.Engine, email, name string) (string, uint) {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":    email,
		"password": "supersecret",
		"name":     name,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register %s: status %d body %s", email, w.Code, w.Body.String())
	}
	var resp authEnvelope
	decode(t, w, &resp)
	if len(resp.Profiles) != 1 {
		t.Fatalf("register %s: expected 1 default profile, got %d", email, len(resp.Profiles))
	}
	return resp.Token, resp.Profiles[0].ID
}

// createWorkout creates a workout for a profile and returns it
func createWorkout(t *testing.T, r *gin.Engine, token string, profileID uint, title string) domain.Workout {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/workout", token, map[string]any{
		"title":     title,
		"day":       "MONDAY",
		"profileId": profileID,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create workout: status %d body %s", w.Code, w.Body.String())
	}
	var resp struct {
		Workout domain.Workout `json:"workout"`
	}
	decode(t, w, &resp)
	return resp.Workout
}

// createExercise creates an exercise under a workout and returns it
func createExercise(t *testing.T, r *gin.Engine, token string, workoutID uint, name string) domain.Exercise {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/exercise", token, map[string]any{
		"name":      name,
		"workoutId": workoutID,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create exercise: status %d body %s", w.Code, w.Body.String())
	}
	var resp struct {
		Exercise domain.Exercise `json:"exercise"`
	}
	decode(t, w, &resp)
	return resp.Exercise
}

// createSet logs a set under an exercise and returns it
func createSet(t *testing.T, r *gin.Engine, token string, exerciseID uint) domain.Set {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/set", token, map[string]any{
		"reps":       8,
		"weight":     60.0,
		"unit":       "KG",
		"weightType": "TOTAL",
		"exerciseId": exerciseID,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create set: status %d body %s", w.Code, w.Body.String())
	}
	var resp struct {
		Set domain.Set `json:"set"`
	}
	decode(t, w, &resp)
	return resp.Set
}
