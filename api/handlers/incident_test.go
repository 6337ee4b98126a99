package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/nyayasetu/legal-aid-api/api/handlers"
	"github.com/nyayasetu/legal-aid-api/classifier"
	"github.com/nyayasetu/legal-aid-api/models"
)

// stubDrafter returns a canned FIR draft, or an error when set
type stubDrafter struct {
	draft string
	err   error
}

func (s stubDrafter) Draft(ctx context.Context, description string, analysis *models.Classification) (string, error) {
	return s.draft, s.err
}

func newTestIncident(t *testing.T) handlers.Incident {
	t.Helper()
	return handlers.Incident{
		Store:        newTestStore(t),
		Orchestrator: classifier.NewOrchestrator(nil),
		Drafter:      stubDrafter{draft: "FIRST INFORMATION REPORT"},
	}
}

func TestCreateIncidentRoundTrip(t *testing.T) {
	inc := newTestIncident(t)

	body := `{"description": "Someone stole my bicycle from the society gate", "type": "public"}`
	req := httptest.NewRequest("POST", "/api/v1/incidents", strings.NewReader(body))
	rr := httptest.NewRecorder()
	http.HandlerFunc(inc.CreateIncidentHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var created models.Incident
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.Regexp(t, `^CASE-\d{4}-\d{4}$`, created.CaseID)
	assert.Equal(t, models.StatusPending, created.Status)
	// analysis ran server-side since the body carried none
	assert.Equal(t, "Theft / Snatching", created.Category)

	// fetch by opaque id and by case code, both must resolve
	for _, key := range []string{created.ID, created.CaseID} {
		getReq := httptest.NewRequest("GET", "/api/v1/incidents/"+key, nil)
		getReq = mux.SetURLVars(getReq, map[string]string{"incident_id": key})
		getRR := httptest.NewRecorder()
		http.HandlerFunc(inc.IncidentByIDHandler).ServeHTTP(getRR, getReq)

		assert.Equal(t, http.StatusOK, getRR.Code)
		var got models.Incident
		assert.NoError(t, json.Unmarshal(getRR.Body.Bytes(), &got))
		assert.Equal(t, created.ID, got.ID)
	}
}

func TestCreateIncidentMissingDescription(t *testing.T) {
	inc := newTestIncident(t)

	req := httptest.NewRequest("POST", "/api/v1/incidents", strings.NewReader(`{}`))
	rr := httptest.NewRecorder()
	http.HandlerFunc(inc.CreateIncidentHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestIncidentByIDHandlerNotFound(t *testing.T) {
	inc := newTestIncident(t)

	req := httptest.NewRequest("GET", "/api/v1/incidents/does-not-exist", nil)
	req = mux.SetURLVars(req, map[string]string{"incident_id": "does-not-exist"})
	rr := httptest.NewRecorder()
	http.HandlerFunc(inc.IncidentByIDHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestListIncidentsHandlerFilters(t *testing.T) {
	inc := newTestIncident(t)

	req := httptest.NewRequest("GET", "/api/v1/incidents?status=DRAFTING", nil)
	rr := httptest.NewRecorder()
	http.HandlerFunc(inc.ListIncidentsHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var incidents []models.Incident
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &incidents))
	assert.Len(t, incidents, 1)
	assert.Equal(t, "CASE-2024-002", incidents[0].CaseID)
}

func TestUpdateIncidentHandlerMissingID(t *testing.T) {
	inc := newTestIncident(t)

	req := httptest.NewRequest("PUT", "/api/v1/incidents", strings.NewReader(`{"status": "ACCEPTED"}`))
	rr := httptest.NewRecorder()
	http.HandlerFunc(inc.UpdateIncidentHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestUpdateIncidentHandlerNotFound(t *testing.T) {
	inc := newTestIncident(t)

	req := httptest.NewRequest("PUT", "/api/v1/incidents", strings.NewReader(`{"id": "missing", "status": "ACCEPTED"}`))
	rr := httptest.NewRecorder()
	http.HandlerFunc(inc.UpdateIncidentHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestPatchIncidentHandlerLegalTransition(t *testing.T) {
	inc := newTestIncident(t)

	// seeded CASE-2024-001 starts PENDING; an officer accepting it is legal
	body := `{"status": "ACCEPTED", "officerName": "SI Sharma", "policeStation": "Connaught Place PS"}`
	req := httptest.NewRequest("PATCH", "/api/v1/incidents/CASE-2024-001", strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"incident_id": "CASE-2024-001"})
	rr := httptest.NewRecorder()
	http.HandlerFunc(inc.PatchIncidentHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var updated models.Incident
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &updated))
	assert.Equal(t, models.StatusAccepted, updated.Status)
	assert.Equal(t, "SI Sharma", updated.OfficerName)
}

func TestPatchIncidentHandlerIllegalTransition(t *testing.T) {
	inc := newTestIncident(t)

	// PENDING cannot jump straight to FILED
	req := httptest.NewRequest("PATCH", "/api/v1/incidents/CASE-2024-001", strings.NewReader(`{"status": "FILED"}`))
	req = mux.SetURLVars(req, map[string]string{"incident_id": "CASE-2024-001"})
	rr := httptest.NewRecorder()
	http.HandlerFunc(inc.PatchIncidentHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestPatchIncidentHandlerUnknownStatus(t *testing.T) {
	inc := newTestIncident(t)

	req := httptest.NewRequest("PATCH", "/api/v1/incidents/CASE-2024-001", strings.NewReader(`{"status": "BOGUS"}`))
	req = mux.SetURLVars(req, map[string]string{"incident_id": "CASE-2024-001"})
	rr := httptest.NewRecorder()
	http.HandlerFunc(inc.PatchIncidentHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestDeleteIncidentHandlerIdempotent(t *testing.T) {
	inc := newTestIncident(t)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest("DELETE", "/api/v1/incidents/CASE-2024-001", nil)
		req = mux.SetURLVars(req, map[string]string{"incident_id": "CASE-2024-001"})
		rr := httptest.NewRecorder()
		http.HandlerFunc(inc.DeleteIncidentHandler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var resp struct {
			Success  bool            `json:"success"`
			Incident models.Incident `json:"incident"`
		}
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, models.StatusDeleted, resp.Incident.Status)
	}
}

func TestDraftFIRHandlerFromStoredCase(t *testing.T) {
	inc := newTestIncident(t)

	req := httptest.NewRequest("POST", "/api/v1/incidents/CASE-2024-001/draft-fir", strings.NewReader(`{}`))
	req = mux.SetURLVars(req, map[string]string{"incident_id": "CASE-2024-001"})
	rr := httptest.NewRecorder()
	http.HandlerFunc(inc.DraftFIRHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp map[string]string
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "FIRST INFORMATION REPORT", resp["firDraft"])

	// draft is persisted and the case moves into drafting
	stored, err := inc.Store.Get(req.Context(), "CASE-2024-001")
	assert.NoError(t, err)
	assert.Equal(t, "FIRST INFORMATION REPORT", stored.FIRDraft)
	assert.Equal(t, models.StatusDrafting, stored.Status)
}

func TestDraftFIRHandlerNoResolvableDescription(t *testing.T) {
	inc := newTestIncident(t)

	req := httptest.NewRequest("POST", "/api/v1/incidents/missing/draft-fir", strings.NewReader(`{}`))
	req = mux.SetURLVars(req, map[string]string{"incident_id": "missing"})
	rr := httptest.NewRecorder()
	http.HandlerFunc(inc.DraftFIRHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestDraftFIRHandlerDraftServiceFailure(t *testing.T) {
	inc := newTestIncident(t)
	inc.Drafter = stubDrafter{err: errors.New("mocked-error")}

	req := httptest.NewRequest("POST", "/api/v1/incidents/CASE-2024-001/draft-fir", strings.NewReader(`{}`))
	req = mux.SetURLVars(req, map[string]string{"incident_id": "CASE-2024-001"})
	rr := httptest.NewRecorder()
	http.HandlerFunc(inc.DraftFIRHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
