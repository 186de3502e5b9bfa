// Package state implements the durable checkpoint store: one JSON document
// per task id with an in-memory read cache.
package state

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
	"go.drover.dev/drover/internal/core/domain"
	"go.drover.dev/drover/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

const recordExt = ".json"

// DefaultDir is the state directory used when none is configured.
const DefaultDir = ".drover/state"

var _ ports.StateStore = (*Store)(nil)

// record is the on-disk envelope. The checksum covers the serialized state
// so a torn or hand-edited record is detected on load.
type record struct {
	Checksum string                `json:"checksum"`
	State    domain.ExecutionState `json:"state"`
}

// Store implements ports.StateStore on a flat directory of JSON records.
type Store struct {
	mu    sync.RWMutex
	dir   string
	cache map[string]*domain.ExecutionState
}

// NewStore creates a Store rooted at dir, creating it if needed.
func NewStore(dir string) (*Store, error) {
	dir = filepath.Clean(dir)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, zerr.Wrap(err, "failed to create state directory")
	}
	return &Store{
		dir:   dir,
		cache: make(map[string]*domain.ExecutionState),
	}, nil
}

// SetDir points the store at a different directory, dropping the cache.
func (s *Store) SetDir(dir string) error {
	dir = filepath.Clean(dir)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return zerr.Wrap(err, "failed to create state directory")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.dir = dir
	s.cache = make(map[string]*domain.ExecutionState)
	return nil
}

// recordPath maps a task id to its record file, rejecting ids that would
// escape the state directory.
func (s *Store) recordPath(taskID string) (string, error) {
	if taskID == "" || strings.ContainsAny(taskID, "/\\") || taskID == "." || taskID == ".." {
		return "", zerr.With(zerr.New("invalid task id for state record"), "task_id", taskID)
	}
	return filepath.Join(s.dir, taskID+recordExt), nil
}

func checksum(state *domain.ExecutionState) (string, error) {
	data, err := json.Marshal(state)
	if err != nil {
		return "", zerr.Wrap(err, "failed to marshal state for checksum")
	}
	return strconv.FormatUint(xxhash.Sum64(data), 16), nil
}

// Save persists the state, replacing any existing record. The cache entry
// is invalidated on every write; the next Load repopulates it from disk.
func (s *Store) Save(state *domain.ExecutionState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path, err := s.recordPath(state.TaskID)
	if err != nil {
		return err
	}

	sum, err := checksum(state)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(record{Checksum: sum, State: *state.Clone()}, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal state record")
	}

	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec // Record path is derived from a validated id
		return zerr.With(zerr.Wrap(err, "failed to write state record"), "task_id", state.TaskID)
	}

	delete(s.cache, state.TaskID)
	return nil
}

// Load retrieves the state for a task id, consulting the cache first.
// Returns nil, nil when no record exists.
func (s *Store) Load(taskID string) (*domain.ExecutionState, error) {
	s.mu.RLock()
	if cached, ok := s.cache[taskID]; ok {
		s.mu.RUnlock()
		return cached.Clone(), nil
	}
	dir := s.dir
	s.mu.RUnlock()

	state, err := s.readRecord(dir, taskID)
	if err != nil || state == nil {
		return nil, err
	}

	s.mu.Lock()
	s.cache[taskID] = state.Clone()
	s.mu.Unlock()

	return state, nil
}

func (s *Store) readRecord(dir, taskID string) (*domain.ExecutionState, error) {
	if taskID == "" || strings.ContainsAny(taskID, "/\\") {
		return nil, zerr.With(zerr.New("invalid task id for state record"), "task_id", taskID)
	}

	data, err := os.ReadFile(filepath.Join(dir, taskID+recordExt)) //nolint:gosec // Record path is derived from a validated id
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to read state record"), "task_id", taskID)
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to unmarshal state record"), "task_id", taskID)
	}

	sum, err := checksum(&rec.State)
	if err != nil {
		return nil, err
	}
	if sum != rec.Checksum {
		return nil, zerr.With(domain.ErrStateCorrupted, "task_id", taskID)
	}

	return &rec.State, nil
}

// Delete removes the record for a task id. Missing records are not an error.
func (s *Store) Delete(taskID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path, err := s.recordPath(taskID)
	if err != nil {
		return err
	}
	delete(s.cache, taskID)

	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return zerr.With(zerr.Wrap(err, "failed to delete state record"), "task_id", taskID)
	}
	return nil
}

// List returns every persisted state, reading records concurrently and
// sorted by task id for stable output.
func (s *Store) List() ([]domain.ExecutionState, error) {
	s.mu.RLock()
	dir := s.dir
	s.mu.RUnlock()

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to read state directory")
	}

	var mu sync.Mutex
	var states []domain.ExecutionState

	g := new(errgroup.Group)
	g.SetLimit(runtime.NumCPU())

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, recordExt) {
			continue
		}
		taskID := strings.TrimSuffix(name, recordExt)

		g.Go(func() error {
			state, err := s.readRecord(dir, taskID)
			if err != nil {
				return err
			}
			if state == nil {
				return nil
			}
			mu.Lock()
			states = append(states, *state)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(states, func(i, j int) bool { return states[i].TaskID < states[j].TaskID })
	return states, nil
}
