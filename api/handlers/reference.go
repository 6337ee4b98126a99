package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/nyayasetu/legal-aid-api/classifier"
	"github.com/nyayasetu/legal-aid-api/config"
)

// Reference exported for testing purposes
type Reference struct {
	Gemini *classifier.GeminiClient
}

// UploadReferenceHandler accepts a PDF of a legal reference (a bare act, a
// circular), stages it in a temp file and forwards it to the AI file store.
// The returned URI is usable as knowledgeBaseUri on later analyze calls.
func (u Reference) UploadReferenceHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		config.ErrorStatus("failed to parse multipart form", http.StatusBadRequest, w, err)
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		config.ErrorStatus("no file provided", http.StatusBadRequest, w, err)
		return
	}
	defer file.Close()

	if !u.Gemini.Enabled() {
		config.ErrorStatus("reference upload requires the AI service", http.StatusServiceUnavailable,
			w, fmt.Errorf("GEMINI_API_KEY is not configured"))
		return
	}

	tmpPath := filepath.Join(os.TempDir(), fmt.Sprintf("legal-ref-%d.pdf", time.Now().UnixMilli()))
	tmp, err := os.Create(tmpPath)
	if err != nil {
		config.ErrorStatus("failed to stage upload", http.StatusInternalServerError, w, err)
		return
	}
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, file); err != nil {
		tmp.Close()
		config.ErrorStatus("failed to stage upload", http.StatusInternalServerError, w, err)
		return
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		tmp.Close()
		config.ErrorStatus("failed to stage upload", http.StatusInternalServerError, w, err)
		return
	}

	fileURI, err := u.Gemini.UploadReference(r.Context(), tmp, "application/pdf")
	tmp.Close()
	if err != nil {
		config.ErrorStatus("failed to upload reference", http.StatusInternalServerError, w, err)
		return
	}
	zap.S().Infow("uploaded legal reference", "fileUri", fileURI)

	b, err := json.Marshal(map[string]interface{}{
		"success": true,
		"fileUri": fileURI,
	})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
