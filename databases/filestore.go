package databases

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nyayasetu/legal-aid-api/models"
)

// FileStore is the flat-file IncidentStore variant, meant for zero-infra
// deployments. Every write is a read-modify-write of the whole record set,
// serialized by a process-local mutex; it is not safe to run two server
// processes against the same file.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore returns a store backed by the JSON file at path. The file is
// created and seeded with demo records on first use.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

var _ IncidentStore = (*FileStore)(nil)

func seedIncidents() []models.Incident {
	return []models.Incident{
		{
			ID:          "CASE-2024-001",
			CaseID:      "CASE-2024-001",
			Description: "Phone snatching at CP Outer Circle",
			Status:      models.StatusPending,
			Analysis:    `{"classification":{"type":"Theft","priority":"High"}}`,
			Category:    "Theft",
			Priority:    "High",
			CreatedAt:   time.Date(2024, 2, 3, 0, 0, 0, 0, time.UTC),
			UpdatedAt:   time.Date(2024, 2, 3, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:          "CASE-2024-002",
			CaseID:      "CASE-2024-002",
			Description: "Online payment fraud reporting",
			Status:      models.StatusDrafting,
			Analysis:    `{"classification":{"type":"Cyber","priority":"Medium"}}`,
			Category:    "Cyber",
			Priority:    "Medium",
			CreatedAt:   time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC),
			UpdatedAt:   time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC),
		},
	}
}

// load reads the whole record set, seeding the file when it does not exist.
// Callers must hold the mutex.
func (s *FileStore) load() ([]models.Incident, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		seeds := seedIncidents()
		if err := s.save(seeds); err != nil {
			return nil, err
		}
		return seeds, nil
	}
	if err != nil {
		return nil, err
	}

	var incidents []models.Incident
	if err := json.Unmarshal(data, &incidents); err != nil {
		return nil, err
	}
	return incidents, nil
}

// save persists the whole record set. Callers must hold the mutex.
func (s *FileStore) save(incidents []models.Incident) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(incidents, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}

func matches(i *models.Incident, idOrCaseID string) bool {
	return i.ID == idOrCaseID || (i.CaseID != "" && i.CaseID == idOrCaseID)
}

// Create prepends a new record so the file stays newest-first
func (s *FileStore) Create(_ context.Context, incident models.Incident) (*models.Incident, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	incidents, err := s.load()
	if err != nil {
		return nil, err
	}

	if incident.ID == "" {
		incident.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	incident.CreatedAt = now
	incident.UpdatedAt = now

	incidents = append([]models.Incident{incident}, incidents...)
	if err := s.save(incidents); err != nil {
		return nil, err
	}
	return &incident, nil
}

// Get fetches an incident by opaque id or case code
func (s *FileStore) Get(_ context.Context, idOrCaseID string) (*models.Incident, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	incidents, err := s.load()
	if err != nil {
		return nil, err
	}
	for i := range incidents {
		if matches(&incidents[i], idOrCaseID) {
			found := incidents[i]
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

// List returns matching incidents newest-created first
func (s *FileStore) List(_ context.Context, filter models.IncidentFilter) ([]models.Incident, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	incidents, err := s.load()
	if err != nil {
		return nil, err
	}

	result := []models.Incident{}
	search := strings.ToLower(filter.Search)
	for _, inc := range incidents {
		if filter.Status != "" && inc.Status != filter.Status {
			continue
		}
		if filter.Category != "" && inc.Category != filter.Category {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(inc.ID), search) &&
			!strings.Contains(strings.ToLower(inc.CaseID), search) &&
			!strings.Contains(strings.ToLower(inc.Description), search) {
			continue
		}
		result = append(result, inc)
	}

	sort.SliceStable(result, func(a, b int) bool {
		return result[a].CreatedAt.After(result[b].CreatedAt)
	})
	return result, nil
}

// Update merges the supplied fields and rewrites the whole file
func (s *FileStore) Update(_ context.Context, idOrCaseID string, update models.IncidentUpdate) (*models.Incident, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	incidents, err := s.load()
	if err != nil {
		return nil, err
	}

	for i := range incidents {
		if !matches(&incidents[i], idOrCaseID) {
			continue
		}
		update.Apply(&incidents[i])
		incidents[i].UpdatedAt = time.Now().UTC()
		if err := s.save(incidents); err != nil {
			return nil, err
		}
		found := incidents[i]
		return &found, nil
	}
	return nil, ErrNotFound
}

// SoftDelete marks the record DELETED; the record stays in the file
func (s *FileStore) SoftDelete(ctx context.Context, idOrCaseID string) (*models.Incident, error) {
	deleted := models.StatusDeleted
	return s.Update(ctx, idOrCaseID, models.IncidentUpdate{Status: &deleted})
}
