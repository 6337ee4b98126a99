package classifier

import (
	"context"

	"github.com/nyayasetu/legal-aid-api/models"
)

// Drafter generates formal report text from a case description and its
// classification. Unlike classification there is no deterministic fallback;
// a failed draft is an error the caller must surface.
type Drafter interface {
	Draft(ctx context.Context, description string, analysis *models.Classification) (string, error)
}

var _ Drafter = (*GeminiClient)(nil)
