package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/nyayasetu/legal-aid-api/api"
	"github.com/nyayasetu/legal-aid-api/classifier"
	"github.com/nyayasetu/legal-aid-api/config"
	"github.com/nyayasetu/legal-aid-api/databases"
	"github.com/nyayasetu/legal-aid-api/models"
)

// App stores the router, the case store and the AI client, so they can be reused
type App struct {
	Router *mux.Router
	Store  databases.IncidentStore
	Config config.Config
	Gemini *classifier.GeminiClient
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	// setup go-guardian for the officer-only routes
	g := api.Guard{Conf: &a.Config}
	g.SetupGoGuardian()

	r := mux.NewRouter()

	orchestrator := classifier.NewOrchestrator(a.Gemini)
	an := Analyze{Store: a.Store, Orchestrator: orchestrator}
	inc := Incident{Store: a.Store, Orchestrator: orchestrator, Drafter: a.Gemini}
	ref := Reference{Gemini: a.Gemini}

	// healthchex
	r.HandleFunc("/health", healthCheckHandler)

	// live case feed for dashboards
	r.HandleFunc("/ws/cases", HandleCaseFeed)

	apiCreate := r.PathPrefix("/api/v1").Subrouter()

	apiCreate.Handle("/auth/token", api.Middleware(http.HandlerFunc(g.CreateToken))).Methods("POST")
	apiCreate.Handle("/auth/logout", api.Middleware(http.HandlerFunc(api.RevokeToken))).Methods("DELETE")

	// citizen intake stays open; triage and drafting are officer actions
	apiCreate.Handle("/analyze", http.HandlerFunc(an.AnalyzeHandler)).Methods("POST")
	apiCreate.Handle("/upload-reference", http.HandlerFunc(ref.UploadReferenceHandler)).Methods("POST")

	apiCreate.Handle("/incidents", http.HandlerFunc(inc.ListIncidentsHandler)).Methods("GET")
	apiCreate.Handle("/incidents", http.HandlerFunc(inc.CreateIncidentHandler)).Methods("POST")
	apiCreate.Handle("/incidents", api.Middleware(http.HandlerFunc(inc.UpdateIncidentHandler))).Methods("PUT")
	apiCreate.Handle("/incidents/{incident_id}", http.HandlerFunc(inc.IncidentByIDHandler)).Methods("GET")
	apiCreate.Handle("/incidents/{incident_id}", api.Middleware(http.HandlerFunc(inc.PatchIncidentHandler))).Methods("PATCH")
	apiCreate.Handle("/incidents/{incident_id}", api.Middleware(http.HandlerFunc(inc.DeleteIncidentHandler))).Methods("DELETE")
	apiCreate.Handle("/incidents/{incident_id}/draft-fir", api.Middleware(http.HandlerFunc(inc.DraftFIRHandler))).Methods("POST")

	return r
}

// Initialize is invoked by main to select the case store and create a router
func (a *App) Initialize() error {

	store, err := databases.NewStore(&a.Config)
	if err != nil {
		// if we fail to reach the backing store, then kill the pod
		zap.S().With(err).Error("failed to initialize case store")
		return err
	}
	a.Store = store
	zap.S().Infow("legal-aid-api case store ready", "backend", a.Config.StoreBackend)

	a.Gemini = classifier.NewGeminiClient(a.Config.GeminiAPIKey, a.Config.GeminiModel)
	if !a.Gemini.Enabled() {
		zap.S().Warn("GEMINI_API_KEY not set, classification will use the rule engine only")
	}

	// initialize api router
	a.initializeRoutes()
	return nil

}

func (a *App) initializeRoutes() {
	a.Router = a.New()
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	b, _ := json.Marshal(models.HealthCheckResponse{
		Alive: true,
	})
	_, _ = io.WriteString(w, string(b))
}
