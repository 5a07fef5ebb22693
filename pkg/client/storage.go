package client

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// Storage is the durable mirror of client state, the localStorage
// counterpart. Every relevant store mutation writes through; Clear
// wipes everything on logout.
type Storage interface {
	Load(key string, dest any) (bool, error)
	Save(key string, value any) error
	Clear() error
}

// Keys mirrored to storage, matching the web client's localStorage keys
var storageKeys = []string{
	"token",
	"currentProfileId",
	"profiles",
	"workouts",
	"exercises",
	"sets",
}

// FileStorage persists each key as a JSON file under a directory
type FileStorage struct {
	dir string
}

// NewFileStorage creates the directory if needed
func NewFileStorage(dir string) (*FileStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileStorage{dir: dir}, nil
}

func (f *FileStorage) path(key string) string {
	return filepath.Join(f.dir, key+".json")
}

// Load reads a key into dest; the bool reports whether it existed
func (f *FileStorage) Load(key string, dest any) (bool, error) {
	data, err := os.ReadFile(f.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, json.Unmarshal(data, dest)
}

// Save writes a key as JSON
func (f *FileStorage) Save(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return os.WriteFile(f.path(key), data, 0o644)
}

// Clear removes every mirrored key
func (f *FileStorage) Clear() error {
	for _, key := range storageKeys {
		if err := os.Remove(f.path(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	return nil
}
