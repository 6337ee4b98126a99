package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/nyayasetu/legal-aid-api/models"
)

const defaultGeminiBaseURL = "https://generativelanguage.googleapis.com"

// GeminiClient calls the Google generative-language REST API. Construct with
// NewGeminiClient; an empty API key leaves the client disabled so the
// orchestrator routes everything to the rule engine.
type GeminiClient struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// NewGeminiClient returns a client for the given credential and model name
func NewGeminiClient(apiKey, model string) *GeminiClient {
	return &GeminiClient{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultGeminiBaseURL,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

// NewGeminiClientWithBaseURL is used by tests to point the client at a stub server
func NewGeminiClientWithBaseURL(apiKey, model, baseURL string) *GeminiClient {
	c := NewGeminiClient(apiKey, model)
	c.baseURL = baseURL
	return c
}

// Enabled reports whether a credential is configured
func (g *GeminiClient) Enabled() bool {
	return g != nil && g.apiKey != ""
}

type generatePart struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
	FileData   *fileData   `json:"file_data,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type fileData struct {
	MimeType string `json:"mime_type,omitempty"`
	FileURI  string `json:"file_uri"`
}

type generateRequest struct {
	Contents []generateContent `json:"contents"`
}

type generateContent struct {
	Parts []generatePart `json:"parts"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// generate performs one generateContent call and returns the concatenated
// text of the first candidate
func (g *GeminiClient) generate(ctx context.Context, parts []generatePart) (string, error) {
	if !g.Enabled() {
		return "", errors.New("gemini: GEMINI_API_KEY is not configured")
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", g.baseURL, g.model, g.apiKey)
	body, err := json.Marshal(generateRequest{Contents: []generateContent{{Parts: parts}}})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("gemini error %d: %s", resp.StatusCode, string(b))
	}

	var result generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}
	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("gemini returned no candidates")
	}

	var sb strings.Builder
	for _, p := range result.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return sb.String(), nil
}

// ClassifyWithAI asks Gemini for a structured classification. Every failure
// mode, missing credential, transport error, unparsable output, schema
// violation, collapses to nil so the caller can fall back deterministically.
// One attempt only; no retries.
func (g *GeminiClient) ClassifyWithAI(ctx context.Context, description, imageBase64, knowledgeBaseURI string) *models.Classification {
	if !g.Enabled() {
		zap.S().Warn("no GEMINI_API_KEY found, falling back to rule engine")
		return nil
	}

	parts := []generatePart{{Text: analysisPrompt(description)}}
	if imageBase64 != "" {
		parts = append(parts, generatePart{InlineData: &inlineData{
			MimeType: "image/jpeg",
			Data:     stripDataURIHeader(imageBase64),
		}})
	}
	if knowledgeBaseURI != "" {
		parts = append(parts, generatePart{FileData: &fileData{
			MimeType: "application/pdf",
			FileURI:  knowledgeBaseURI,
		}})
	}

	text, err := g.generate(ctx, parts)
	if err != nil {
		zap.S().Warnw("gemini analysis failed", "error", err)
		return nil
	}

	jsonStr, ok := extractJSON(text)
	if !ok {
		zap.S().Warnw("gemini returned no JSON object", "text", truncate(text, 200))
		return nil
	}

	var c models.Classification
	if err := json.Unmarshal([]byte(jsonStr), &c); err != nil {
		zap.S().Warnw("failed to parse gemini JSON", "error", err)
		return nil
	}
	if err := c.Validate(); err != nil {
		zap.S().Warnw("gemini classification failed schema validation", "error", err)
		return nil
	}
	return &c
}

// Draft produces the formal FIR text for a case. There is no deterministic
// fallback for drafting, so failures surface as errors.
func (g *GeminiClient) Draft(ctx context.Context, description string, analysis *models.Classification) (string, error) {
	text, err := g.generate(ctx, []generatePart{{Text: draftPrompt(description, analysis)}})
	if err != nil {
		return "", fmt.Errorf("failed to draft FIR: %w", err)
	}
	return strings.TrimSpace(text), nil
}

type uploadFileResponse struct {
	File struct {
		URI string `json:"uri"`
	} `json:"file"`
}

// UploadReference pushes a knowledge-base document to the Gemini files API
// and returns the reference URI to pass back on later classification calls
func (g *GeminiClient) UploadReference(ctx context.Context, content io.Reader, mimeType string) (string, error) {
	if !g.Enabled() {
		return "", errors.New("gemini: GEMINI_API_KEY is not configured")
	}

	url := fmt.Sprintf("%s/upload/v1beta/files?key=%s", g.baseURL, g.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, content)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mimeType)
	req.Header.Set("X-Goog-Upload-Protocol", "raw")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("gemini file upload error %d: %s", resp.StatusCode, string(b))
	}

	var result uploadFileResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}
	if result.File.URI == "" {
		return "", errors.New("gemini file upload returned no uri")
	}
	return result.File.URI, nil
}

// extractJSON pulls the first balanced JSON object out of raw model output,
// which may be wrapped in prose or markdown code fences. The scan is string
// aware so braces inside values do not break the balance count.
func extractJSON(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}

// stripDataURIHeader removes a leading "data:image/...;base64," header if the
// client sent a full data URI instead of bare base64
func stripDataURIHeader(s string) string {
	if i := strings.IndexByte(s, ','); i >= 0 && strings.HasPrefix(s, "data:") {
		return s[i+1:]
	}
	return s
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
