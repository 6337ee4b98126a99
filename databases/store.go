package databases

import (
	"context"
	"errors"
	"fmt"

	"github.com/nyayasetu/legal-aid-api/config"
	"github.com/nyayasetu/legal-aid-api/models"
)

// ErrNotFound is returned by every store variant when no record matches the
// given id or case code
var ErrNotFound = errors.New("incident not found")

// IncidentStore is the persistence contract every case record flows through.
// Exactly one variant is authoritative per deployment: the mongo-backed store
// (atomic per-record updates, safe under concurrent writers) or the
// flat-file store (whole-file read-modify-write, single writer only).
type IncidentStore interface {
	// Create assigns an opaque id and timestamps, then persists the record
	Create(ctx context.Context, incident models.Incident) (*models.Incident, error)
	// Get matches the opaque id or the human-readable case code
	Get(ctx context.Context, idOrCaseID string) (*models.Incident, error)
	// List returns matching cases ordered newest-created first
	List(ctx context.Context, filter models.IncidentFilter) ([]models.Incident, error)
	// Update merges only the supplied fields and refreshes updatedAt
	Update(ctx context.Context, idOrCaseID string, update models.IncidentUpdate) (*models.Incident, error)
	// SoftDelete transitions the record to DELETED; it remains retrievable
	SoftDelete(ctx context.Context, idOrCaseID string) (*models.Incident, error)
}

// NewStore selects the store variant from config. "mongo" requires DB_URI and
// DB_NAME; anything else falls back to the flat-file variant.
func NewStore(conf *config.Config) (IncidentStore, error) {
	switch conf.StoreBackend {
	case "mongo":
		client, err := NewClient(conf)
		if err != nil {
			return nil, fmt.Errorf("failed to create mongo client: %w", err)
		}
		if err := client.Connect(); err != nil {
			return nil, fmt.Errorf("failed to connect to mongo: %w", err)
		}
		return NewIncidentDatabase(NewDatabase(conf, client)), nil
	case "file", "":
		return NewFileStore(conf.DataFile), nil
	default:
		return nil, fmt.Errorf("unknown STORE_BACKEND %q", conf.StoreBackend)
	}
}
