package playlist

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// PersistError reports a playlist save/load failure with its file path.
type PersistError struct {
	Path string
	Err  error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("playlist file %s: %v", e.Path, e.Err)
}

func (e *PersistError) Unwrap() error { return e.Err }

// Save writes the store's entries to path as a JSON array of path strings.
// The write is atomic: a temp file in the same directory is renamed over
// the target.
func (s *Store) Save(path string) error {
	data, err := json.MarshalIndent(s.paths, "", "  ")
	if err != nil {
		return &PersistError{Path: path, Err: err}
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &PersistError{Path: path, Err: err}
	}

	tmp, err := os.CreateTemp(dir, ".playlist-*.json")
	if err != nil {
		return &PersistError{Path: path, Err: err}
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &PersistError{Path: path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &PersistError{Path: path, Err: err}
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return &PersistError{Path: path, Err: err}
	}

	return nil
}

// Load replaces the store's contents with the entries read from path. On any
// failure (unreadable file, non-array JSON) the store is left untouched and
// a PersistError is returned. Duplicate paths in the file collapse to their
// first occurrence, matching Add semantics.
func (s *Store) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &PersistError{Path: path, Err: err}
	}

	var entries []string
	if err := json.Unmarshal(data, &entries); err != nil {
		return &PersistError{Path: path, Err: err}
	}

	s.Clear()
	s.Add(entries...)
	return nil
}
