package client

import (
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"gainz_journal/internal/api"
	"gainz_journal/internal/cache"
	"gainz_journal/internal/config"
	"gainz_journal/internal/db"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// newTestServer runs the real API over an in-memory database
func newTestServer(t *testing.T) *httptest.Server {
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
	cfg := &config.Config{JWTSecret: "client-test-secret"}
	srv := httptest.NewServer(api.NewRouter(gdb, cache.NewMemory(), cfg))
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(t *testing.T, baseURL, dir string) *Client {
	t.Helper()
	storage, err := NewFileStorage(dir)
	if err != nil {
		t.Fatalf("storage: %v", err)
	}
	c, err := New(baseURL, storage)
	if err != nil {
		t.Fatalf("client: %v", err)
	}
	return c
}

func TestClientRegisterBootstrapsState(t *testing.T) {
	srv := newTestServer(t)
	dir := t.TempDir()
	c := newTestClient(t, srv.URL, dir)

	err := c.Register(RegisterInput{Email: "a@x.com", Password: "supersecret", Name: "Alice"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if c.Token == "" {
		t.Errorf("expected a token")
	}
	if c.Profiles.Len() != 1 {
		t.Fatalf("expected 1 profile, got %d", c.Profiles.Len())
	}
	if c.CurrentProfileID == nil {
		t.Fatalf("expected a current profile id")
	}

	// Token must have been written through to storage
	if _, err := os.Stat(filepath.Join(dir, "token.json")); err != nil {
		t.Errorf("expected token to be persisted: %v", err)
	}
}

func TestClientRestoresPersistedState(t *testing.T) {
	srv := newTestServer(t)
	dir := t.TempDir()
	c := newTestClient(t, srv.URL, dir)
	if err := c.Register(RegisterInput{Email: "a@x.com", Password: "supersecret", Name: "Alice"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	restored := newTestClient(t, srv.URL, dir)
	if restored.Token != c.Token {
		t.Errorf("expected the token to survive a restart")
	}
	if restored.Profiles.Len() != 1 {
		t.Errorf("expected profiles to survive a restart, got %d", restored.Profiles.Len())
	}
}

func TestClientWorkoutFlow(t *testing.T) {
	srv := newTestServer(t)
	c := newTestClient(t, srv.URL, t.TempDir())
	if err := c.Register(RegisterInput{Email: "a@x.com", Password: "supersecret", Name: "Alice"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	workout, err := c.CreateWorkout(CreateWorkoutInput{
		Title: "Push Day",
		Day:   "MONDAY",
		Exercises: []ExerciseInput{
			{Name: "Bench Press", Sets: []SetInput{{Reps: 8, Weight: 60, Unit: "KG", WeightType: "TOTAL"}}},
		},
	})
	if err != nil {
		t.Fatalf("create workout: %v", err)
	}
	if _, ok := c.Workouts.Get(workout.ID); !ok {
		t.Errorf("expected the workout to land in the store")
	}

	fetched, err := c.FetchWorkouts(*c.CurrentProfileID)
	if err != nil {
		t.Fatalf("fetch workouts: %v", err)
	}
	if len(fetched) != 1 || len(fetched[0].Exercises) != 1 {
		t.Errorf("expected 1 workout with 1 exercise, got %+v", fetched)
	}

	if err := c.DeleteWorkout(workout.ID); err != nil {
		t.Fatalf("delete workout: %v", err)
	}
	if c.Workouts.Len() != 0 {
		t.Errorf("expected the workout store to be empty")
	}
}

func TestClientProfileSwitch(t *testing.T) {
	srv := newTestServer(t)
	c := newTestClient(t, srv.URL, t.TempDir())
	if err := c.Register(RegisterInput{Email: "a@x.com", Password: "supersecret", Name: "Alice"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	firstID := *c.CurrentProfileID

	second, err := c.CreateProfile(CreateProfileInput{Name: "Cutting"})
	if err != nil {
		t.Fatalf("create profile: %v", err)
	}
	if second.Active {
		t.Errorf("expected the second profile to be inactive")
	}

	active := true
	if _, err := c.UpdateProfile(second.ID, UpdateProfileInput{Active: &active}); err != nil {
		t.Fatalf("activate profile: %v", err)
	}
	if *c.CurrentProfileID != second.ID {
		t.Errorf("expected the current profile to follow the activation")
	}
	if first, ok := c.Profiles.Get(firstID); !ok || first.Active {
		t.Errorf("expected the cached first profile to be deactivated")
	}

	// Deleting the active profile promotes the remaining one
	if err := c.DeleteProfile(second.ID); err != nil {
		t.Fatalf("delete profile: %v", err)
	}
	if c.CurrentProfileID == nil || *c.CurrentProfileID != firstID {
		t.Errorf("expected the promoted profile to become current")
	}
}

func TestClientLogoutClearsEverything(t *testing.T) {
	srv := newTestServer(t)
	dir := t.TempDir()
	c := newTestClient(t, srv.URL, dir)
	if err := c.Register(RegisterInput{Email: "a@x.com", Password: "supersecret", Name: "Alice"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	if err := c.Logout(); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if c.Token != "" || c.Profiles.Len() != 0 || c.CurrentProfileID != nil {
		t.Errorf("expected all client state to be cleared")
	}
	if _, err := os.Stat(filepath.Join(dir, "token.json")); !os.IsNotExist(err) {
		t.Errorf("expected persisted state to be wiped")
	}
}

func TestClientSurfacesServerErrors(t *testing.T) {
	srv := newTestServer(t)
	c := newTestClient(t, srv.URL, t.TempDir())

	err := c.Login(LoginInput{Email: "nobody@x.com", Password: "nope"})
	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("expected an APIError, got %v", err)
	}
	if apiErr.Status != 401 {
		t.Errorf("expected status 401, got %d", apiErr.Status)
	}
	if apiErr.Message != "Invalid credentials" {
		t.Errorf("expected the server message, got %q", apiErr.Message)
	}
}
