package api

import (
	"net/http"
	"testing"

	"gainz_journal/internal/domain"
)

func TestRegisterCreatesDefaultActiveProfile(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":    "a@x.com",
		"password": "supersecret",
		"name":     "Alice",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body %s", w.Code, w.Body.String())
	}
	var resp authEnvelope
	decode(t, w, &resp)
	if resp.Token == "" {
		t.Errorf("expected a token")
	}
	if len(resp.Profiles) != 1 {
		t.Fatalf("expected exactly one profile, got %d", len(resp.Profiles))
	}
	if !resp.Profiles[0].Active {
		t.Errorf("expected the default profile to be active")
	}
	if resp.User.Email != "a@x.com" {
		t.Errorf("expected email a@x.com, got %s", resp.User.Email)
	}
}

func TestRegisterRejectsMissingFields(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email": "a@x.com",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	r, _ := newTestRouter(t)
	registerUser(t, r, "a@x.com", "Alice")

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":    "a@x.com",
		"password": "supersecret",
		"name":     "Alice Again",
	})
	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d body %s", w.Code, w.Body.String())
	}
}

func TestRegisterSurfacesStorageErrors(t *testing.T) {
	r, gdb := newTestRouter(t)

	// A broken users table is a server fault, not a duplicate account
	if err := gdb.Migrator().DropTable(&domain.User{}); err != nil {
		t.Fatalf("drop table: %v", err)
	}
	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":    "a@x.com",
		"password": "supersecret",
		"name":     "Alice",
	})
	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d body %s", w.Code, w.Body.String())
	}
}

func TestLoginReturnsActiveProfile(t *testing.T) {
	r, _ := newTestRouter(t)
	registerUser(t, r, "a@x.com", "Alice")

	w := doJSON(t, r, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "a@x.com",
		"password": "supersecret",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body %s", w.Code, w.Body.String())
	}
	var resp authEnvelope
	decode(t, w, &resp)
	if resp.Token == "" {
		t.Errorf("expected a token")
	}
	if resp.CurrentProfileID == nil {
		t.Fatalf("expected a currentProfileId")
	}
	if len(resp.Profiles) != 1 || !resp.Profiles[0].Active {
		t.Errorf("expected one active profile, got %+v", resp.Profiles)
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	r, _ := newTestRouter(t)
	registerUser(t, r, "a@x.com", "Alice")

	w := doJSON(t, r, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "a@x.com",
		"password": "wrongpassword",
	})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/auth/user", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/api/auth/user", "not-a-jwt", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 with a malformed token, got %d", w.Code)
	}
}

func TestGetUserReturnsCurrentProfile(t *testing.T) {
	r, _ := newTestRouter(t)
	token, profileID := registerUser(t, r, "a@x.com", "Alice")

	w := doJSON(t, r, http.MethodGet, "/api/auth/user", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body %s", w.Code, w.Body.String())
	}
	var resp authEnvelope
	decode(t, w, &resp)
	if resp.CurrentProfileID == nil || *resp.CurrentProfileID != profileID {
		t.Errorf("expected currentProfileId %d, got %v", profileID, resp.CurrentProfileID)
	}
}
