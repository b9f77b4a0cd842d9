package cart

import (
	"encoding/json"
	"os"
)

// Store persists the serialized cart under a single key, the way the web
// client keeps it in local storage.
type Store interface {
	Load() []Line
	Save(lines []Line) error
}

// FileStore keeps the cart as a JSON file on disk.
type FileStore struct {
	Path string
}

// Load returns the persisted lines. Any read or parse failure is treated as
// an empty cart rather than an error.
func (s *FileStore) Load() []Line {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil
	}
	var lines []Line
	if err := json.Unmarshal(data, &lines); err != nil {
		return nil
	}
	return lines
}

func (s *FileStore) Save(lines []Line) error {
	data, err := json.Marshal(lines)
	if err != nil {
		return err
	}
	return os.WriteFile(s.Path, data, 0644)
}
