package databases

// go generate: mockery --name DatabaseHelper

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nyayasetu/legal-aid-api/models"
)

const incidentName = "incidents"

// IncidentDatabase is the mongo-backed IncidentStore variant. Concurrency
// control is delegated to mongo's atomic single-record updates.
type IncidentDatabase struct {
	db DatabaseHelper
}

// NewIncidentDatabase initializes a new incident store with the provided db connection
func NewIncidentDatabase(db DatabaseHelper) *IncidentDatabase {
	return &IncidentDatabase{
		db: db,
	}
}

var _ IncidentStore = (*IncidentDatabase)(nil)

// idFilter matches a record on either the opaque id or the case code, since
// both forms show up in links and URLs
func idFilter(idOrCaseID string) bson.M {
	return bson.M{"$or": []bson.M{
		{"_id": idOrCaseID},
		{"caseId": idOrCaseID},
	}}
}

// Create inserts a new incident, assigning the opaque id and timestamps
func (c *IncidentDatabase) Create(ctx context.Context, incident models.Incident) (*models.Incident, error) {
	if incident.ID == "" {
		incident.ID = primitive.NewObjectID().Hex()
	}
	now := time.Now().UTC()
	incident.CreatedAt = now
	incident.UpdatedAt = now

	if _, err := c.db.Collection(incidentName).InsertOne(ctx, incident); err != nil {
		return nil, err
	}
	return &incident, nil
}

// Get fetches an incident by opaque id or case code
func (c *IncidentDatabase) Get(ctx context.Context, idOrCaseID string) (*models.Incident, error) {
	incident := &models.Incident{}
	err := c.db.Collection(incidentName).FindOne(ctx, idFilter(idOrCaseID)).Decode(incident)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return incident, nil
}

// List returns incidents newest-created first, optionally narrowed by
// status, category and a case-insensitive substring search
func (c *IncidentDatabase) List(ctx context.Context, filter models.IncidentFilter) ([]models.Incident, error) {
	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.Search != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(filter.Search), Options: "i"}
		query["$or"] = []bson.M{
			{"_id": re},
			{"caseId": re},
			{"description": re},
		}
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cr, err := c.db.Collection(incidentName).Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}

	var incidents []models.Incident
	if err := cr.Decode(&incidents); err != nil {
		return nil, err
	}
	if incidents == nil {
		incidents = []models.Incident{}
	}
	return incidents, nil
}

// Update applies the non-nil fields atomically and returns the updated record
func (c *IncidentDatabase) Update(ctx context.Context, idOrCaseID string, update models.IncidentUpdate) (*models.Incident, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	setField(set, "description", update.Description)
	setField(set, "status", update.Status)
	setField(set, "analysis", update.Analysis)
	setField(set, "category", update.Category)
	setField(set, "priority", update.Priority)
	setField(set, "imageUrl", update.ImageURL)
	setField(set, "location", update.Location)
	setField(set, "firDraft", update.FIRDraft)
	setField(set, "officerId", update.OfficerID)
	setField(set, "officerName", update.OfficerName)
	setField(set, "policeStation", update.PoliceStation)

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	incident := &models.Incident{}
	err := c.db.Collection(incidentName).
		FindOneAndUpdate(ctx, idFilter(idOrCaseID), bson.M{"$set": set}, opts).
		Decode(incident)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return incident, nil
}

// SoftDelete marks the record DELETED; the record stays retrievable
func (c *IncidentDatabase) SoftDelete(ctx context.Context, idOrCaseID string) (*models.Incident, error) {
	deleted := models.StatusDeleted
	return c.Update(ctx, idOrCaseID, models.IncidentUpdate{Status: &deleted})
}

func setField(set bson.M, key string, value *string) {
	if value != nil {
		set[key] = *value
	}
}
