package space

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/lotvision/parking-monitor/internal/logger"
)

// ConfigError reports a configuration file that exists but cannot be used:
// unparseable JSON, a space without exactly four points, or negative
// coordinates. The store refuses to proceed with corrupted geometry.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("space configuration %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// Store owns the ordered parking space sequence and keeps it consistent
// with its JSON file: every mutation persists the full sequence before
// returning. Mutations arrive from HTTP control handlers while the pipeline
// reads snapshots, hence the mutex.
type Store struct {
	mu     sync.Mutex
	path   string
	spaces []ParkingSpace
}

// Open loads the store from path. A missing file yields an empty store,
// not an error; a present-but-malformed file yields a ConfigError.
func Open(path string) (*Store, error) {
	spaces, err := load(path)
	if err != nil {
		return nil, err
	}
	logger.Info("SpaceStore", "loaded %d spaces from %s", len(spaces), path)
	return &Store{path: path, spaces: spaces}, nil
}

// Path returns the active configuration file path.
func (s *Store) Path() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.path
}

// Count returns the number of defined spaces.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.spaces)
}

// Snapshot returns a copy of the space sequence, safe for the caller to
// hold across an evaluation while mutations continue.
func (s *Store) Snapshot() []ParkingSpace {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ParkingSpace, len(s.spaces))
	copy(out, s.spaces)
	return out
}

// Append adds a space at the tail and persists the full sequence.
func (s *Store) Append(sp ParkingSpace) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.spaces = append(s.spaces, sp)
	if err := save(s.path, s.spaces); err != nil {
		// Roll back so memory and disk do not diverge.
		s.spaces = s.spaces[:len(s.spaces)-1]
		return err
	}
	logger.Info("SpaceStore", "space #%d added (%d total)", len(s.spaces), len(s.spaces))
	return nil
}

// RemoveLast pops the most recently added space and persists the shorter
// sequence. The second return is false when no spaces are defined; callers
// decide whether that is worth reporting.
func (s *Store) RemoveLast() (ParkingSpace, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.spaces) == 0 {
		return ParkingSpace{}, false, nil
	}
	last := s.spaces[len(s.spaces)-1]
	s.spaces = s.spaces[:len(s.spaces)-1]
	if err := save(s.path, s.spaces); err != nil {
		s.spaces = append(s.spaces, last)
		return ParkingSpace{}, false, err
	}
	logger.Info("SpaceStore", "last space removed (%d remaining)", len(s.spaces))
	return last, true, nil
}

// Reload swaps the store to a different configuration file and loads it.
// On failure the previous file and sequence stay active.
func (s *Store) Reload(path string) error {
	spaces, err := load(path)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.path = path
	s.spaces = spaces
	s.mu.Unlock()
	logger.Info("SpaceStore", "switched to %s (%d spaces)", path, len(spaces))
	return nil
}

func load(path string) ([]ParkingSpace, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, &ConfigError{Path: path, Err: err}
	}

	// Decode through a variable-length point list so a wrong vertex count
	// is caught here rather than truncated or zero-padded.
	var raw [][]Point
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &ConfigError{Path: path, Err: err}
	}

	spaces := make([]ParkingSpace, 0, len(raw))
	for i, points := range raw {
		sp, err := FromPoints(points)
		if err != nil {
			return nil, &ConfigError{Path: path, Err: fmt.Errorf("space %d: %w", i, err)}
		}
		spaces = append(spaces, sp)
	}
	return spaces, nil
}

// save writes the full sequence to a temp file in the same directory and
// renames it over the target, so a crash mid-write never leaves a partial
// configuration behind.
func save(path string, spaces []ParkingSpace) error {
	if spaces == nil {
		spaces = []ParkingSpace{}
	}
	data, err := json.Marshal(spaces)
	if err != nil {
		return fmt.Errorf("encode spaces: %w", err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write spaces: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
