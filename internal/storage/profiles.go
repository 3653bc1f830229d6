package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/n1rna/paramschema/internal/logger"
	"github.com/n1rna/paramschema/internal/schema"
)

const (
	indexFile     = "index.json"
	fileExtension = ".json"
)

var (
	// ErrProfileNotFound is returned when no profile matches a name or UUID
	ErrProfileNotFound = errors.New("profile not found")
	// ErrProfileExists is returned when saving a new profile under a taken name
	ErrProfileExists = errors.New("profile already exists")
)

// Profile is a named set of parameter values for one schema
type Profile struct {
	Entity `yaml:",inline"`
	Schema string        `json:"schema" yaml:"schema"`
	Values schema.Values `json:"values" yaml:"values"`
}

// NewProfile creates an unsaved profile with a fresh UUID
func NewProfile(name, description, schemaRef string, values schema.Values) *Profile {
	if values == nil {
		values = schema.Values{}
	}
	return &Profile{
		Entity: NewEntity(name, description),
		Schema: schemaRef,
		Values: values,
	}
}

// Summary returns the index entry for the profile
func (p *Profile) Summary() EntitySummary {
	return EntitySummary{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Schema:      p.Schema,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ProfileStore keeps profiles under dir as <uuid>.json with an index.json
type ProfileStore struct {
	dir       string
	indexPath string
	mu        sync.Mutex
}

// NewProfileStore creates the store, making dir if needed
func NewProfileStore(dir string) (*ProfileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return &ProfileStore{
		dir:       dir,
		indexPath: filepath.Join(dir, indexFile),
	}, nil
}

// Save writes a profile. A profile whose name belongs to a different UUID is
// rejected with ErrProfileExists.
func (s *ProfileStore) Save(p *Profile) error {
	if p.Name == "" {
		return fmt.Errorf("profile name cannot be empty")
	}
	if p.ID == "" {
		p.Entity = NewEntity(p.Name, p.Description)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	index, err := s.loadIndex()
	if err != nil {
		return fmt.Errorf("failed to load index: %w", err)
	}
	if id, ok := index.NameToID[p.Name]; ok && id != p.ID {
		return fmt.Errorf("%w: %s", ErrProfileExists, p.Name)
	}

	if _, existing := index.Summaries[p.ID]; existing {
		p.UpdatedAt = time.Now().UTC()
	}

	if err := s.writeJSON(s.profilePath(p.ID), p); err != nil {
		return fmt.Errorf("failed to write profile: %w", err)
	}

	index.Add(p.Summary())
	if err := s.writeJSON(s.indexPath, index); err != nil {
		return fmt.Errorf("failed to save index: %w", err)
	}

	logger.Debug("saved profile %s (%s)", p.Name, p.ID)
	return nil
}

// Get loads a profile by name or UUID
func (s *ProfileStore) Get(nameOrUUID string) (*Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.resolve(nameOrUUID)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.profilePath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrProfileNotFound, nameOrUUID)
		}
		return nil, fmt.Errorf("failed to read profile file: %w", err)
	}

	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
	}
	if p.Values == nil {
		p.Values = schema.Values{}
	}
	return &p, nil
}

// List returns profile summaries sorted by name
func (s *ProfileStore) List() ([]EntitySummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	index, err := s.loadIndex()
	if err != nil {
		return nil, fmt.Errorf("failed to load index: %w", err)
	}
	return index.List(), nil
}

// Delete removes a profile by name or UUID
func (s *ProfileStore) Delete(nameOrUUID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	index, err := s.loadIndex()
	if err != nil {
		return fmt.Errorf("failed to load index: %w", err)
	}
	id, ok := index.Resolve(nameOrUUID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrProfileNotFound, nameOrUUID)
	}

	if err := os.Remove(s.profilePath(id)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove profile file: %w", err)
	}

	index.Remove(id)
	if err := s.writeJSON(s.indexPath, index); err != nil {
		return fmt.Errorf("failed to save index: %w", err)
	}

	logger.Debug("deleted profile %s", id)
	return nil
}

func (s *ProfileStore) resolve(nameOrUUID string) (string, error) {
	index, err := s.loadIndex()
	if err != nil {
		return "", fmt.Errorf("failed to load index: %w", err)
	}
	id, ok := index.Resolve(nameOrUUID)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrProfileNotFound, nameOrUUID)
	}
	return id, nil
}

func (s *ProfileStore) profilePath(id string) string {
	return filepath.Join(s.dir, id+fileExtension)
}

func (s *ProfileStore) loadIndex() (*Index, error) {
	index := NewIndex()

	data, err := os.ReadFile(s.indexPath)
	if err != nil {
		if os.IsNotExist(err) {
			return index, nil
		}
		return nil, fmt.Errorf("failed to read index file: %w", err)
	}

	if err := json.Unmarshal(data, index); err != nil {
		return nil, fmt.Errorf("failed to unmarshal index: %w", err)
	}
	return index, nil
}

// writeJSON writes v to a temporary file and renames it into place
func (s *ProfileStore) writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
