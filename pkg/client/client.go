// Package client is a Go client for the Gainz Journal API. It keeps a
// normalized local copy of server state, mirrored to durable storage on
// every change, the way the web client mirrors its store to
// localStorage. State is only mutated after a completed server round
// trip.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// APIError is a non-2xx response with the server-supplied message
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// Client wraps the REST surface and the cached client state
type Client struct {
	baseURL string
	http    *http.Client
	storage Storage

	Token            string
	CurrentProfileID *uint
	User             *User
	Profiles         *EntityStore[Profile]
	Workouts         *EntityStore[Workout]
	Exercises        *EntityStore[Exercise]
	Sets             *EntityStore[Set]
}

// New builds a client and restores any previously persisted state
func New(baseURL string, storage Storage) (*Client, error) {
	c := &Client{
		baseURL:   baseURL,
		http:      http.DefaultClient,
		storage:   storage,
		Profiles:  NewEntityStore(func(p Profile) uint { return p.ID }),
		Workouts:  NewEntityStore(func(w Workout) uint { return w.ID }),
		Exercises: NewEntityStore(func(e Exercise) uint { return e.ID }),
		Sets:      NewEntityStore(func(s Set) uint { return s.ID }),
	}
	if _, err := storage.Load("token", &c.Token); err != nil {
		return nil, err
	}
	if _, err := storage.Load("currentProfileId", &c.CurrentProfileID); err != nil {
		return nil, err
	}
	if _, err := storage.Load("profiles", c.Profiles); err != nil {
		return nil, err
	}
	if _, err := storage.Load("workouts", c.Workouts); err != nil {
		return nil, err
	}
	if _, err := storage.Load("exercises", c.Exercises); err != nil {
		return nil, err
	}
	if _, err := storage.Load("sets", c.Sets); err != nil {
		return nil, err
	}
	return c, nil
}

// do performs one request and decodes the response body into out
func (c *Client) do(method, path string, body, out any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}
	req, err := http.NewRequest(method, c.baseURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var envelope struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&envelope)
		if envelope.Error == "" {
			envelope.Error = "Something went wrong"
		}
		return &APIError{Status: resp.StatusCode, Message: envelope.Error}
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// persistAuth writes the auth keys through to storage
func (c *Client) persistAuth() error {
	if err := c.storage.Save("token", c.Token); err != nil {
		return err
	}
	return c.storage.Save("currentProfileId", c.CurrentProfileID)
}

type authResponse struct {
	User             User      `json:"user"`
	Token            string    `json:"token"`
	CurrentProfileID *uint     `json:"currentProfileId"`
	Profiles         []Profile `json:"profiles"`
}

// Register creates an account; the server responds with the default
// active profile
func (c *Client) Register(in RegisterInput) error {
	var resp authResponse
	if err := c.do(http.MethodPost, "/api/auth/register", in, &resp); err != nil {
		return err
	}
	c.User = &resp.User
	c.Token = resp.Token
	c.Profiles.Replace(resp.Profiles)
	if len(resp.Profiles) > 0 {
		id := resp.Profiles[0].ID
		c.CurrentProfileID = &id
	}
	if err := c.persistAuth(); err != nil {
		return err
	}
	return c.storage.Save("profiles", c.Profiles)
}

// Login authenticates and bootstraps the cached state
func (c *Client) Login(in LoginInput) error {
	var resp authResponse
	if err := c.do(http.MethodPost, "/api/auth/login", in, &resp); err != nil {
		return err
	}
	c.User = &resp.User
	c.Token = resp.Token
	c.CurrentProfileID = resp.CurrentProfileID
	c.Profiles.Replace(resp.Profiles)
	if err := c.persistAuth(); err != nil {
		return err
	}
	return c.storage.Save("profiles", c.Profiles)
}

// FetchUser refreshes the user and active profile from the server
func (c *Client) FetchUser() error {
	var resp authResponse
	if err := c.do(http.MethodGet, "/api/auth/user", nil, &resp); err != nil {
		return err
	}
	c.User = &resp.User
	c.CurrentProfileID = resp.CurrentProfileID
	for _, p := range resp.Profiles {
		c.Profiles.Put(p)
	}
	if err := c.persistAuth(); err != nil {
		return err
	}
	return c.storage.Save("profiles", c.Profiles)
}

// UpdateMe partially updates the user's name and gender
func (c *Client) UpdateMe(name, gender *string) error {
	body := map[string]any{}
	if name != nil {
		body["name"] = *name
	}
	if gender != nil {
		body["gender"] = *gender
	}
	var resp authResponse
	if err := c.do(http.MethodPut, "/api/users/me", body, &resp); err != nil {
		return err
	}
	c.User = &resp.User
	return nil
}

// Logout drops all cached state and wipes durable storage
func (c *Client) Logout() error {
	c.Token = ""
	c.User = nil
	c.CurrentProfileID = nil
	c.Profiles.Clear()
	c.Workouts.Clear()
	c.Exercises.Clear()
	c.Sets.Clear()
	return c.storage.Clear()
}

// FetchProfiles replaces the profile collection from the server
func (c *Client) FetchProfiles() ([]Profile, error) {
	var resp struct {
		Profiles []Profile `json:"profiles"`
	}
	if err := c.do(http.MethodGet, "/api/profile", nil, &resp); err != nil {
		return nil, err
	}
	c.Profiles.Replace(resp.Profiles)
	return resp.Profiles, c.storage.Save("profiles", c.Profiles)
}

// CreateProfile creates a profile and caches it
func (c *Client) CreateProfile(in CreateProfileInput) (*Profile, error) {
	var resp struct {
		Profile Profile `json:"profile"`
	}
	if err := c.do(http.MethodPost, "/api/profile", in, &resp); err != nil {
		return nil, err
	}
	c.Profiles.Put(resp.Profile)
	if resp.Profile.Active {
		id := resp.Profile.ID
		c.CurrentProfileID = &id
		if err := c.persistAuth(); err != nil {
			return nil, err
		}
	}
	return &resp.Profile, c.storage.Save("profiles", c.Profiles)
}

// UpdateProfile merges fields into a profile. Activating a profile
// re-syncs every cached profile, since the server deactivates the rest.
func (c *Client) UpdateProfile(id uint, in UpdateProfileInput) (*Profile, error) {
	var resp struct {
		Profile Profile `json:"profile"`
	}
	if err := c.do(http.MethodPut, "/api/profile/"+strconv.FormatUint(uint64(id), 10), in, &resp); err != nil {
		return nil, err
	}
	if in.Active != nil && *in.Active {
		for _, p := range c.Profiles.List() {
			if p.ID != id && p.Active {
				p.Active = false
				c.Profiles.Put(p)
			}
		}
		c.CurrentProfileID = &resp.Profile.ID
		if err := c.persistAuth(); err != nil {
			return nil, err
		}
	}
	c.Profiles.Put(resp.Profile)
	return &resp.Profile, c.storage.Save("profiles", c.Profiles)
}

// DeleteProfile removes a profile; when the server promotes a new
// active profile the cached current profile follows it
func (c *Client) DeleteProfile(id uint) error {
	var resp struct {
		Message          string   `json:"message"`
		NewActiveProfile *Profile `json:"newActiveProfile"`
	}
	if err := c.do(http.MethodDelete, "/api/profile/"+strconv.FormatUint(uint64(id), 10), nil, &resp); err != nil {
		return err
	}
	c.Profiles.Delete(id)
	if resp.NewActiveProfile != nil {
		c.Profiles.Put(*resp.NewActiveProfile)
		pid := resp.NewActiveProfile.ID
		c.CurrentProfileID = &pid
	} else if c.CurrentProfileID != nil && *c.CurrentProfileID == id {
		c.CurrentProfileID = nil
	}
	if err := c.persistAuth(); err != nil {
		return err
	}
	return c.storage.Save("profiles", c.Profiles)
}

// FetchWorkouts replaces the workout collection for a profile
func (c *Client) FetchWorkouts(profileID uint) ([]Workout, error) {
	var resp struct {
		Workouts []Workout `json:"workouts"`
	}
	path := "/api/workout?profileId=" + url.QueryEscape(strconv.FormatUint(uint64(profileID), 10))
	if err := c.do(http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	c.Workouts.Replace(resp.Workouts)
	return resp.Workouts, c.storage.Save("workouts", c.Workouts)
}

// CreateWorkout creates a workout, optionally with nested exercises
func (c *Client) CreateWorkout(in CreateWorkoutInput) (*Workout, error) {
	var resp struct {
		Workout Workout `json:"workout"`
	}
	if err := c.do(http.MethodPost, "/api/workout", in, &resp); err != nil {
		return nil, err
	}
	c.Workouts.Put(resp.Workout)
	return &resp.Workout, c.storage.Save("workouts", c.Workouts)
}

// UpdateWorkout merges fields into a workout
func (c *Client) UpdateWorkout(id uint, in UpdateWorkoutInput) (*Workout, error) {
	var resp struct {
		Workout Workout `json:"workout"`
	}
	if err := c.do(http.MethodPut, "/api/workout/"+strconv.FormatUint(uint64(id), 10), in, &resp); err != nil {
		return nil, err
	}
	c.Workouts.Put(resp.Workout)
	return &resp.Workout, c.storage.Save("workouts", c.Workouts)
}

// DeleteWorkout removes a workout and its cached descendants
func (c *Client) DeleteWorkout(id uint) error {
	if err := c.do(http.MethodDelete, "/api/workout/"+strconv.FormatUint(uint64(id), 10), nil, nil); err != nil {
		return err
	}
	for _, e := range c.Exercises.List() {
		if e.WorkoutID == id {
			for _, s := range c.Sets.List() {
				if s.ExerciseID == e.ID {
					c.Sets.Delete(s.ID)
				}
			}
			c.Exercises.Delete(e.ID)
		}
	}
	c.Workouts.Delete(id)
	if err := c.storage.Save("workouts", c.Workouts); err != nil {
		return err
	}
	if err := c.storage.Save("exercises", c.Exercises); err != nil {
		return err
	}
	return c.storage.Save("sets", c.Sets)
}

// FetchExercises replaces the exercise collection for a workout
func (c *Client) FetchExercises(workoutID uint) ([]Exercise, error) {
	var resp struct {
		Exercises []Exercise `json:"exercises"`
	}
	path := "/api/exercise?workoutId=" + url.QueryEscape(strconv.FormatUint(uint64(workoutID), 10))
	if err := c.do(http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	c.Exercises.Replace(resp.Exercises)
	return resp.Exercises, c.storage.Save("exercises", c.Exercises)
}

// CreateExercise creates an exercise, optionally with nested sets
func (c *Client) CreateExercise(workoutID uint, in ExerciseInput) (*Exercise, error) {
	body := map[string]any{"name": in.Name, "workoutId": workoutID, "sets": in.Sets}
	var resp struct {
		Exercise Exercise `json:"exercise"`
	}
	if err := c.do(http.MethodPost, "/api/exercise", body, &resp); err != nil {
		return nil, err
	}
	c.Exercises.Put(resp.Exercise)
	return &resp.Exercise, c.storage.Save("exercises", c.Exercises)
}

// UpdateExercise renames an exercise
func (c *Client) UpdateExercise(id uint, name string) (*Exercise, error) {
	var resp struct {
		Exercise Exercise `json:"exercise"`
	}
	body := map[string]any{"name": name}
	if err := c.do(http.MethodPut, "/api/exercise/"+strconv.FormatUint(uint64(id), 10), body, &resp); err != nil {
		return nil, err
	}
	c.Exercises.Put(resp.Exercise)
	return &resp.Exercise, c.storage.Save("exercises", c.Exercises)
}

// DeleteExercise removes an exercise and its cached sets
func (c *Client) DeleteExercise(id uint) error {
	if err := c.do(http.MethodDelete, "/api/exercise/"+strconv.FormatUint(uint64(id), 10), nil, nil); err != nil {
		return err
	}
	for _, s := range c.Sets.List() {
		if s.ExerciseID == id {
			c.Sets.Delete(s.ID)
		}
	}
	c.Exercises.Delete(id)
	if err := c.storage.Save("exercises", c.Exercises); err != nil {
		return err
	}
	return c.storage.Save("sets", c.Sets)
}

// FetchSets replaces the set collection for an exercise
func (c *Client) FetchSets(exerciseID uint) ([]Set, error) {
	var resp struct {
		Sets []Set `json:"sets"`
	}
	path := "/api/set?exerciseId=" + url.QueryEscape(strconv.FormatUint(uint64(exerciseID), 10))
	if err := c.do(http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	c.Sets.Replace(resp.Sets)
	return resp.Sets, c.storage.Save("sets", c.Sets)
}

// CreateSet logs a set against an exercise
func (c *Client) CreateSet(exerciseID uint, in SetInput) (*Set, error) {
	body := map[string]any{
		"reps":       in.Reps,
		"weight":     in.Weight,
		"unit":       in.Unit,
		"weightType": in.WeightType,
		"exerciseId": exerciseID,
	}
	var resp struct {
		Set Set `json:"set"`
	}
	if err := c.do(http.MethodPost, "/api/set", body, &resp); err != nil {
		return nil, err
	}
	c.Sets.Put(resp.Set)
	return &resp.Set, c.storage.Save("sets", c.Sets)
}

// UpdateSet merges fields into a set
func (c *Client) UpdateSet(id uint, in UpdateSetInput) (*Set, error) {
	var resp struct {
		Set Set `json:"set"`
	}
	if err := c.do(http.MethodPut, "/api/set/"+strconv.FormatUint(uint64(id), 10), in, &resp); err != nil {
		return nil, err
	}
	c.Sets.Put(resp.Set)
	return &resp.Set, c.storage.Save("sets", c.Sets)
}

// DeleteSet removes a set
func (c *Client) DeleteSet(id uint) error {
	if err := c.do(http.MethodDelete, "/api/set/"+strconv.FormatUint(uint64(id), 10), nil, nil); err != nil {
		return err
	}
	c.Sets.Delete(id)
	return c.storage.Save("sets", c.Sets)
}
