// Package storage provides the project store port and its backends.
// The core never touches persistence; callers load a project, run the
// core, and save the result through this interface.
package storage

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"mapiker/core/types"
	"mapiker/internal/errors"
)

// Backend is a storage backend type
type Backend string

const (
	BackendMemory   Backend = "memory"
	BackendFile     Backend = "file"
	BackendPostgres Backend = "postgres"
)

// Store is the project store port. Saves are atomic from the caller's
// perspective: either the whole updated record is persisted or nothing
// is. A save carrying a stale Rev fails with a STORAGE_ERROR so a
// superseded recompute is discarded instead of clobbering newer state.
type Store interface {
	// Get retrieves a project by id
	Get(ctx context.Context, id string) (*types.Project, error)

	// Save persists the full project record and bumps its Rev
	Save(ctx context.Context, project *types.Project) error

	// List lists all project ids
	List(ctx context.Context) ([]string, error)

	// Delete removes a project
	Delete(ctx context.Context, id string) error

	// Close closes the store
	Close() error
}

// prepare assigns identity and timestamps before a save.
func prepare(project *types.Project) {
	if project.ID == "" {
		project.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	if project.CreatedAt.IsZero() {
		project.CreatedAt = now
	}
	project.UpdatedAt = now
}

// staleRev builds the optimistic-concurrency failure.
func staleRev(id string, have, want int64) error {
	return errors.Newf(errors.TypeStorage, "stale revision for project %s: save carries rev %d, store has %d", id, have, want)
}

// MemoryStore is an in-memory backend, used in tests and by the CLI.
type MemoryStore struct {
	mu       sync.RWMutex
	projects map[string]*types.Project
}

// NewMemoryStore creates a memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{projects: make(map[string]*types.Project)}
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*types.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	project, ok := s.projects[id]
	if !ok {
		return nil, errors.NotFound("project", id)
	}
	clone := *project
	return &clone, nil
}

func (s *MemoryStore) Save(ctx context.Context, project *types.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prepare(project)
	if existing, ok := s.projects[project.ID]; ok && existing.Rev != project.Rev {
		return staleRev(project.ID, project.Rev, existing.Rev)
	}
	project.Rev++

	clone := *project
	s.projects[project.ID] = &clone
	return nil
}

func (s *MemoryStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.projects))
	for id := range s.projects {
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.projects[id]; !ok {
		return errors.NotFound("project", id)
	}
	delete(s.projects, id)
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}

// FileStore persists each project as a JSON file under a base path.
type FileStore struct {
	mu       sync.RWMutex
	basePath string
}

// NewFileStore creates a file store
func NewFileStore(basePath string) (*FileStore, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, errors.Storage("failed to create storage directory", err)
	}
	return &FileStore{basePath: basePath}, nil
}

func (s *FileStore) path(id string) string {
	return filepath.Join(s.basePath, id+".json")
}

func (s *FileStore) Get(ctx context.Context, id string) (*types.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFound("project", id)
		}
		return nil, errors.Storage("failed to read project", err)
	}

	var project types.Project
	if err := json.Unmarshal(data, &project); err != nil {
		return nil, errors.Storage("failed to unmarshal project", err)
	}
	return &project, nil
}

func (s *FileStore) Save(ctx context.Context, project *types.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prepare(project)

	if data, err := os.ReadFile(s.path(project.ID)); err == nil {
		var existing types.Project
		if err := json.Unmarshal(data, &existing); err == nil && existing.Rev != project.Rev {
			return staleRev(project.ID, project.Rev, existing.Rev)
		}
	}
	project.Rev++

	data, err := json.MarshalIndent(project, "", "  ")
	if err != nil {
		return errors.Storage("failed to marshal project", err)
	}

	// Write-then-rename keeps the save atomic.
	tmp := s.path(project.ID) + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return errors.Storage("failed to write project", err)
	}
	if err := os.Rename(tmp, s.path(project.ID)); err != nil {
		return errors.Storage("failed to commit project", err)
	}
	return nil
}

func (s *FileStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.basePath)
	if err != nil {
		return nil, errors.Storage("failed to read storage directory", err)
	}

	var ids []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		ids = append(ids, entry.Name()[:len(entry.Name())-len(".json")])
	}
	return ids, nil
}

func (s *FileStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path(id)); err != nil {
		if os.IsNotExist(err) {
			return errors.NotFound("project", id)
		}
		return errors.Storage("failed to delete project", err)
	}
	return nil
}

func (s *FileStore) Close() error {
	return nil
}

// Config selects and parameterizes a backend.
type Config struct {
	// Backend is the backend type
	Backend Backend `json:"backend"`

	// Path is the base directory for the file backend
	Path string `json:"path,omitempty"`

	// DSN is the connection string for the postgres backend
	DSN string `json:"dsn,omitempty"`
}

// Open creates a store from config.
func Open(cfg Config) (Store, error) {
	switch cfg.Backend {
	case BackendMemory, "":
		return NewMemoryStore(), nil
	case BackendFile:
		path := cfg.Path
		if path == "" {
			path = ".mapiker"
		}
		return NewFileStore(path)
	case BackendPostgres:
		return NewPostgresStore(cfg.DSN)
	default:
		return nil, errors.Newf(errors.TypeConfig, "unsupported storage backend: %s", cfg.Backend)
	}
}
