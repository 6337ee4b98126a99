package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/nyayasetu/legal-aid-api/api"
	"github.com/nyayasetu/legal-aid-api/cases"
	"github.com/nyayasetu/legal-aid-api/classifier"
	"github.com/nyayasetu/legal-aid-api/config"
	"github.com/nyayasetu/legal-aid-api/databases"
	"github.com/nyayasetu/legal-aid-api/models"
)

// Incident exported for testing purposes
type Incident struct {
	Store        databases.IncidentStore
	Orchestrator *classifier.Orchestrator
	Drafter      classifier.Drafter
}

// IncidentCreateRequest is the officer/public case intake payload
type IncidentCreateRequest struct {
	Description string                 `json:"description"`
	Type        string                 `json:"type"`
	ImageURL    string                 `json:"imageUrl"`
	Location    string                 `json:"location"`
	Analysis    *models.Classification `json:"analysis"`
}

// IncidentPutRequest carries a partial update keyed by id in the body
type IncidentPutRequest struct {
	ID          string                 `json:"id"`
	Description *string                `json:"description"`
	Status      *string                `json:"status"`
	FIRDraft    *string                `json:"firDraft"`
	Analysis    *models.Classification `json:"analysis"`
}

// IncidentPatchRequest carries the officer triage fields
type IncidentPatchRequest struct {
	Status        *string `json:"status"`
	FIRDraft      *string `json:"firDraft"`
	OfficerID     *string `json:"officerId"`
	OfficerName   *string `json:"officerName"`
	PoliceStation *string `json:"policeStation"`
}

// DraftFIRRequest optionally overrides the stored description/classification
type DraftFIRRequest struct {
	Description string                 `json:"description"`
	Analysis    *models.Classification `json:"analysis"`
}

// ListIncidentsHandler returns cases newest first, narrowed by the
// status/category/search query params
func (i Incident) ListIncidentsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	filter := models.IncidentFilter{
		Status:   r.URL.Query().Get("status"),
		Category: r.URL.Query().Get("category"),
		Search:   r.URL.Query().Get("search"),
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()
	dbResp, err := i.Store.List(ctx, filter)
	if err != nil {
		config.ErrorStatus("failed to list incidents", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// CreateIncidentHandler files a new case, classifying server-side when the
// caller did not supply an analysis
func (i Incident) CreateIncidentHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	req := IncidentCreateRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if strings.TrimSpace(req.Description) == "" {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": "Description is required"}`))
		return
	}

	analysis := req.Analysis
	if analysis == nil {
		analysis = i.Orchestrator.Analyze(r.Context(), req.Description, "", "")
	}

	incident := models.Incident{
		CaseID:      cases.NewCaseCode(time.Now()),
		Description: req.Description,
		Status:      cases.InitialStatus(req.Type),
		ImageURL:    req.ImageURL,
		Location:    req.Location,
	}
	incident.SetAnalysis(analysis)

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()
	saved, err := i.Store.Create(ctx, incident)
	if err != nil {
		config.ErrorStatus("failed to create incident", http.StatusInternalServerError, w, err)
		return
	}
	broadcastCaseEvent("case_created", saved)

	b, err := json.Marshal(saved)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// IncidentByIDHandler returns a case given an opaque id or case code
func (i Incident) IncidentByIDHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	incidentID := mux.Vars(r)["incident_id"]

	zap.S().Debugf("incident_id: %v", incidentID)

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()
	dbResp, err := i.Store.Get(ctx, incidentID)
	if err != nil {
		if errors.Is(err, databases.ErrNotFound) {
			config.ErrorStatus("incident not found", http.StatusNotFound, w, err)
			return
		}
		config.ErrorStatus("failed to get incident by ID", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// UpdateIncidentHandler applies a partial update keyed by the id in the body
func (i Incident) UpdateIncidentHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	req := IncidentPutRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if req.ID == "" {
		config.ErrorStatus("id is required", http.StatusBadRequest, w, fmt.Errorf("missing id"))
		return
	}

	update := models.IncidentUpdate{
		Description: req.Description,
		Status:      req.Status,
		FIRDraft:    req.FIRDraft,
	}
	if req.Analysis != nil {
		serialized := models.Incident{}
		serialized.SetAnalysis(req.Analysis)
		update.Analysis = &serialized.Analysis
		update.Category = &serialized.Category
		update.Priority = &serialized.Priority
	}

	i.applyUpdate(w, r, req.ID, update)
}

// PatchIncidentHandler applies the officer triage fields to a case
func (i Incident) PatchIncidentHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	incidentID := mux.Vars(r)["incident_id"]

	req := IncidentPatchRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	update := models.IncidentUpdate{
		Status:        req.Status,
		FIRDraft:      req.FIRDraft,
		OfficerID:     req.OfficerID,
		OfficerName:   req.OfficerName,
		PoliceStation: req.PoliceStation,
	}

	i.applyUpdate(w, r, incidentID, update)
}

// applyUpdate validates the requested status change against the lifecycle
// table, runs the store update and broadcasts the result
func (i Incident) applyUpdate(w http.ResponseWriter, r *http.Request, idOrCaseID string, update models.IncidentUpdate) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	current, err := i.Store.Get(ctx, idOrCaseID)
	if err != nil {
		if errors.Is(err, databases.ErrNotFound) {
			config.ErrorStatus("incident not found", http.StatusNotFound, w, err)
			return
		}
		config.ErrorStatus("failed to get incident by ID", http.StatusInternalServerError, w, err)
		return
	}

	if update.Status != nil {
		if !cases.ValidStatus(*update.Status) {
			config.ErrorStatus("unknown status", http.StatusBadRequest, w, fmt.Errorf("unknown status %q", *update.Status))
			return
		}
		if !cases.CanTransition(current.Status, *update.Status) {
			config.ErrorStatus("illegal status transition", http.StatusBadRequest, w,
				fmt.Errorf("cannot transition from %s to %s", current.Status, *update.Status))
			return
		}
	}

	updated, err := i.Store.Update(ctx, idOrCaseID, update)
	if err != nil {
		if errors.Is(err, databases.ErrNotFound) {
			config.ErrorStatus("incident not found", http.StatusNotFound, w, err)
			return
		}
		config.ErrorStatus("failed to update incident", http.StatusInternalServerError, w, err)
		return
	}
	broadcastCaseEvent("case_updated", updated)

	b, err := json.Marshal(updated)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// DeleteIncidentHandler soft deletes a case; the record stays retrievable and
// a repeated delete succeeds
func (i Incident) DeleteIncidentHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	incidentID := mux.Vars(r)["incident_id"]

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()
	deleted, err := i.Store.SoftDelete(ctx, incidentID)
	if err != nil {
		if errors.Is(err, databases.ErrNotFound) {
			config.ErrorStatus("incident not found", http.StatusNotFound, w, err)
			return
		}
		config.ErrorStatus("failed to delete incident", http.StatusInternalServerError, w, err)
		return
	}
	broadcastCaseEvent("case_deleted", deleted)

	b, err := json.Marshal(map[string]interface{}{
		"success":  true,
		"incident": deleted,
	})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// DraftFIRHandler generates an FIR draft from the stored case (or the
// body-supplied description), persists it and moves the case into drafting.
// Drafting has no fallback, a failed draft call is a hard error.
func (i Incident) DraftFIRHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	incidentID := mux.Vars(r)["incident_id"]

	req := DraftFIRRequest{}
	if r.Body != nil {
		// body is optional, a bare POST drafts from the stored record
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	description := req.Description
	analysis := req.Analysis
	stored, err := i.Store.Get(ctx, incidentID)
	if err == nil {
		if stored.Description != "" {
			description = stored.Description
		}
		if a := stored.GetAnalysis(); a != nil {
			analysis = a
		}
	} else if !errors.Is(err, databases.ErrNotFound) {
		config.ErrorStatus("failed to get incident by ID", http.StatusInternalServerError, w, err)
		return
	}

	if strings.TrimSpace(description) == "" {
		config.ErrorStatus("no description to draft from", http.StatusNotFound,
			w, fmt.Errorf("incident %s has no resolvable description", incidentID))
		return
	}

	draft, err := i.Drafter.Draft(r.Context(), description, analysis)
	if err != nil {
		config.ErrorStatus("failed to generate FIR draft", http.StatusInternalServerError, w, err)
		return
	}

	if stored != nil {
		update := models.IncidentUpdate{FIRDraft: &draft}
		if cases.CanTransition(stored.Status, models.StatusDrafting) {
			drafting := models.StatusDrafting
			update.Status = &drafting
		}
		if updated, err := i.Store.Update(ctx, incidentID, update); err != nil {
			zap.S().Warnw("failed to persist FIR draft", "incident", incidentID, "error", err)
		} else {
			broadcastCaseEvent("case_updated", updated)
		}
	}

	b, err := json.Marshal(map[string]string{"firDraft": draft})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
