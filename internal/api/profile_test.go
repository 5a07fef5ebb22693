package api

import (
	"fmt"
	"net/http"
	"testing"

	"gainz_journal/internal/domain"
)

type profileEnvelope struct {
	Profile domain.Profile `json:"profile"`
}

type profilesEnvelope struct {
	Profiles []domain.Profile `json:"profiles"`
}

func TestCreateSubsequentProfileDefaultsInactive(t *testing.T) {
	r, _ := newTestRouter(t)
	token, firstID := registerUser(t, r, "a@x.com", "Alice")

	w := doJSON(t, r, http.MethodPost, "/api/profile", token, map[string]any{"name": "Cutting"})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body %s", w.Code, w.Body.String())
	}
	var resp profileEnvelope
	decode(t, w, &resp)
	if resp.Profile.Active {
		t.Errorf("expected second profile to default to inactive")
	}
	if resp.Profile.WeightUnit != domain.UnitKG || resp.Profile.WeightType != domain.WeightTypePerSide {
		t.Errorf("expected KG/PER_SIDE defaults, got %s/%s", resp.Profile.WeightUnit, resp.Profile.WeightType)
	}

	// The first profile must still be the active one
	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/profile/%d", firstID), token, nil)
	var first profileEnvelope
	decode(t, w, &first)
	if !first.Profile.Active {
		t.Errorf("expected the first profile to stay active")
	}
}

func TestActivateProfileDeactivatesOthers(t *testing.T) {
	r, _ := newTestRouter(t)
	token, firstID := registerUser(t, r, "a@x.com", "Alice")

	w := doJSON(t, r, http.MethodPost, "/api/profile", token, map[string]any{"name": "Cutting"})
	var second profileEnvelope
	decode(t, w, &second)

	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/profile/%d", second.Profile.ID), token,
		map[string]any{"active": true})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodGet, "/api/profile", token, nil)
	var list profilesEnvelope
	decode(t, w, &list)
	activeCount := 0
	for _, p := range list.Profiles {
		if p.Active {
			activeCount++
			if p.ID != second.Profile.ID {
				t.Errorf("expected profile %d to be the active one, got %d", second.Profile.ID, p.ID)
			}
		}
		if p.ID == firstID && p.Active {
			t.Errorf("expected the first profile to be deactivated")
		}
	}
	if activeCount != 1 {
		t.Errorf("expected exactly one active profile, got %d", activeCount)
	}
}

func TestCreateProfileExplicitActiveDeactivatesOthers(t *testing.T) {
	r, _ := newTestRouter(t)
	token, firstID := registerUser(t, r, "a@x.com", "Alice")

	w := doJSON(t, r, http.MethodPost, "/api/profile", token,
		map[string]any{"name": "Bulking", "active": true})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body %s", w.Code, w.Body.String())
	}
	var resp profileEnvelope
	decode(t, w, &resp)
	if !resp.Profile.Active {
		t.Fatalf("expected the new profile to be active")
	}

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/profile/%d", firstID), token, nil)
	var first profileEnvelope
	decode(t, w, &first)
	if first.Profile.Active {
		t.Errorf("expected the first profile to be deactivated")
	}
}

func TestDeleteActiveProfilePromotesRemaining(t *testing.T) {
	r, _ := newTestRouter(t)
	token, firstID := registerUser(t, r, "a@x.com", "Alice")

	w := doJSON(t, r, http.MethodPost, "/api/profile", token, map[string]any{"name": "Cutting"})
	var second profileEnvelope
	decode(t, w, &second)

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/profile/%d", firstID), token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body %s", w.Code, w.Body.String())
	}
	var resp struct {
		NewActiveProfile *domain.Profile `json:"newActiveProfile"`
	}
	decode(t, w, &resp)
	if resp.NewActiveProfile == nil {
		t.Fatalf("expected a promoted profile in the response")
	}
	if resp.NewActiveProfile.ID != second.Profile.ID || !resp.NewActiveProfile.Active {
		t.Errorf("expected profile %d to be promoted, got %+v", second.Profile.ID, resp.NewActiveProfile)
	}

	w = doJSON(t, r, http.MethodGet, "/api/profile", token, nil)
	var list profilesEnvelope
	decode(t, w, &list)
	if len(list.Profiles) != 1 || !list.Profiles[0].Active {
		t.Errorf("expected a single active profile to remain, got %+v", list.Profiles)
	}
}

func TestDeleteLastProfileLeavesTerminalState(t *testing.T) {
	r, _ := newTestRouter(t)
	token, firstID := registerUser(t, r, "a@x.com", "Alice")

	w := doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/profile/%d", firstID), token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body %s", w.Code, w.Body.String())
	}
	var resp struct {
		NewActiveProfile *domain.Profile `json:"newActiveProfile"`
	}
	decode(t, w, &resp)
	if resp.NewActiveProfile != nil {
		t.Errorf("expected no promoted profile, got %+v", resp.NewActiveProfile)
	}

	// currentProfileId resolves to null once no profiles remain
	w = doJSON(t, r, http.MethodGet, "/api/auth/user", token, nil)
	var user authEnvelope
	decode(t, w, &user)
	if user.CurrentProfileID != nil {
		t.Errorf("expected null currentProfileId, got %v", user.CurrentProfileID)
	}

	// Workout creation without a profile must fail with a client error
	w = doJSON(t, r, http.MethodPost, "/api/workout", token,
		map[string]any{"title": "Push Day", "day": "MONDAY"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 without any profile, got %d body %s", w.Code, w.Body.String())
	}
}

func TestDeleteProfileCascades(t *testing.T) {
	r, gdb := newTestRouter(t)
	token, profileID := registerUser(t, r, "a@x.com", "Alice")

	workout := createWorkout(t, r, token, profileID, "Push Day")
	exercise := createExercise(t, r, token, workout.ID, "Bench Press")
	createSet(t, r, token, exercise.ID)

	w := doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/profile/%d", profileID), token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body %s", w.Code, w.Body.String())
	}

	var workouts, exercises, sets int64
	gdb.Model(&domain.Workout{}).Count(&workouts)
	gdb.Model(&domain.Exercise{}).Count(&exercises)
	gdb.Model(&domain.Set{}).Count(&sets)
	if workouts != 0 || exercises != 0 || sets != 0 {
		t.Errorf("expected no orphans, got %d workouts, %d exercises, %d sets", workouts, exercises, sets)
	}
}

func TestProfileValidation(t *testing.T) {
	r, _ := newTestRouter(t)
	token, _ := registerUser(t, r, "a@x.com", "Alice")

	w := doJSON(t, r, http.MethodPost, "/api/profile", token,
		map[string]any{"name": "Bulking", "weightUnit": "STONE"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for an invalid unit, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/api/profile", token, map[string]any{})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for a missing name, got %d", w.Code)
	}
}

func TestProfileOwnership(t *testing.T) {
	r, _ := newTestRouter(t)
	_, profileA := registerUser(t, r, "a@x.com", "Alice")
	tokenB, _ := registerUser(t, r, "b@x.com", "Bob")

	w := doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/profile/%d", profileA), tokenB, nil)
	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403 for another user's profile, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPut, "/api/profile/9999", tokenB, map[string]any{"name": "X"})
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for an unknown profile, got %d", w.Code)
	}
}
