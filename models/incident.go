package models

import (
	"encoding/json"
	"time"
)

// Case statuses. DELETED and FILED are terminal; DELETED records stay
// retrievable (soft delete only, nothing is ever physically erased).
const (
	StatusPending    = "PENDING"
	StatusProcessed  = "PROCESSED"
	StatusDrafting   = "DRAFTING"
	StatusDraftSaved = "DRAFT_SAVED"
	StatusAccepted   = "ACCEPTED"
	StatusRejected   = "REJECTED"
	StatusFiled      = "FILED"
	StatusDeleted    = "DELETED"
)

// Incident holds the structure for a case record as stored in the incidents
// collection (or the flat file, which shares the bson field names)
type Incident struct {
	ID            string    `json:"id" bson:"_id"`
	CaseID        string    `json:"caseId,omitempty" bson:"caseId,omitempty"`
	Description   string    `json:"description" bson:"description"`
	Status        string    `json:"status" bson:"status"`
	Analysis      string    `json:"analysis,omitempty" bson:"analysis,omitempty"`
	Category      string    `json:"category,omitempty" bson:"category,omitempty"`
	Priority      string    `json:"priority,omitempty" bson:"priority,omitempty"`
	ImageURL      string    `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
	Location      string    `json:"location,omitempty" bson:"location,omitempty"`
	FIRDraft      string    `json:"firDraft,omitempty" bson:"firDraft,omitempty"`
	OfficerID     string    `json:"officerId,omitempty" bson:"officerId,omitempty"`
	OfficerName   string    `json:"officerName,omitempty" bson:"officerName,omitempty"`
	PoliceStation string    `json:"policeStation,omitempty" bson:"policeStation,omitempty"`
	CreatedAt     time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt" bson:"updatedAt"`
}

// SetAnalysis serializes a classification onto the record and denormalizes
// the category/priority columns used by list filtering
func (i *Incident) SetAnalysis(c *Classification) {
	if c == nil {
		return
	}
	b, err := json.Marshal(c)
	if err != nil {
		return
	}
	i.Analysis = string(b)
	i.Category = c.Classification.Type
	i.Priority = c.Classification.Priority
}

// GetAnalysis deserializes the stored classification, returning nil when the
// record carries none or the payload is unreadable
func (i *Incident) GetAnalysis() *Classification {
	if i.Analysis == "" {
		return nil
	}
	var c Classification
	if err := json.Unmarshal([]byte(i.Analysis), &c); err != nil {
		return nil
	}
	return &c
}

// IncidentUpdate carries a partial update; only non-nil fields are applied
type IncidentUpdate struct {
	Description   *string
	Status        *string
	Analysis      *string
	Category      *string
	Priority      *string
	ImageURL      *string
	Location      *string
	FIRDraft      *string
	OfficerID     *string
	OfficerName   *string
	PoliceStation *string
}

// Apply merges the non-nil fields onto an incident record
func (u IncidentUpdate) Apply(i *Incident) {
	if u.Description != nil {
		i.Description = *u.Description
	}
	if u.Status != nil {
		i.Status = *u.Status
	}
	if u.Analysis != nil {
		i.Analysis = *u.Analysis
	}
	if u.Category != nil {
		i.Category = *u.Category
	}
	if u.Priority != nil {
		i.Priority = *u.Priority
	}
	if u.ImageURL != nil {
		i.ImageURL = *u.ImageURL
	}
	if u.Location != nil {
		i.Location = *u.Location
	}
	if u.FIRDraft != nil {
		i.FIRDraft = *u.FIRDraft
	}
	if u.OfficerID != nil {
		i.OfficerID = *u.OfficerID
	}
	if u.OfficerName != nil {
		i.OfficerName = *u.OfficerName
	}
	if u.PoliceStation != nil {
		i.PoliceStation = *u.PoliceStation
	}
}

// IncidentFilter narrows a List call; zero values match everything
type IncidentFilter struct {
	Status   string
	Category string
	Search   string
}
