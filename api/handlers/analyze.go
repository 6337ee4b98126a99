package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/nyayasetu/legal-aid-api/api"
	"github.com/nyayasetu/legal-aid-api/cases"
	"github.com/nyayasetu/legal-aid-api/classifier"
	"github.com/nyayasetu/legal-aid-api/config"
	"github.com/nyayasetu/legal-aid-api/databases"
	"github.com/nyayasetu/legal-aid-api/models"
)

// Analyze exported for testing purposes
type Analyze struct {
	Store        databases.IncidentStore
	Orchestrator *classifier.Orchestrator
}

// AnalyzeRequest is the citizen intake payload
type AnalyzeRequest struct {
	Description      string `json:"description"`
	UserType         string `json:"userType"`
	Image            string `json:"image"`
	Location         string `json:"location"`
	KnowledgeBaseURI string `json:"knowledgeBaseUri"`
}

// AnalyzeResponse is the classification plus the case identifier it was filed
// under. The id may be a demo placeholder when persistence is down.
type AnalyzeResponse struct {
	*models.Classification
	ID string `json:"id"`
}

// AnalyzeHandler classifies an incident description and files it as a new
// case. Persistence failures are swallowed so the citizen still gets the
// classification back.
func (a Analyze) AnalyzeHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	req := AnalyzeRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	if strings.TrimSpace(req.Description) == "" {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": "Description is required"}`))
		return
	}

	classification := a.Orchestrator.Analyze(r.Context(), req.Description, req.Image, req.KnowledgeBaseURI)

	incident := models.Incident{
		CaseID:      cases.NewCaseCode(time.Now()),
		Description: req.Description,
		Status:      cases.AnalyzeStatus(req.UserType),
		Location:    req.Location,
	}
	incident.SetAnalysis(classification)

	savedID := fmt.Sprintf("demo-id-%d", time.Now().UnixMilli())
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()
	saved, err := a.Store.Create(ctx, incident)
	if err != nil {
		// availability over durability: the caller still gets their
		// classification under a placeholder id
		zap.S().Warnw("failed to persist analyzed incident, returning placeholder id",
			"error", err)
	} else {
		savedID = saved.ID
		broadcastCaseEvent("case_created", saved)
	}

	b, err := json.Marshal(AnalyzeResponse{Classification: classification, ID: savedID})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
