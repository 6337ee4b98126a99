package classifier

import (
	"context"

	"go.uber.org/zap"

	"github.com/nyayasetu/legal-aid-api/models"
)

// AIClassifier is the outbound AI dependency of the orchestrator; a nil
// result means the attempt failed and the rule engine takes over
type AIClassifier interface {
	Enabled() bool
	ClassifyWithAI(ctx context.Context, description, imageBase64, knowledgeBaseURI string) *models.Classification
}

// Orchestrator produces a classification for every valid request. It tries
// the AI classifier once and falls back to the deterministic rule engine, so
// classification availability never depends on the external service.
type Orchestrator struct {
	AI    AIClassifier
	Rules RuleEngine
}

// NewOrchestrator wires the orchestrator with its AI dependency
func NewOrchestrator(ai AIClassifier) *Orchestrator {
	return &Orchestrator{AI: ai}
}

// Analyze classifies an incident description. Total for non-empty input:
// never returns nil.
func (o *Orchestrator) Analyze(ctx context.Context, description, imageBase64, knowledgeBaseURI string) *models.Classification {
	if o.AI != nil && o.AI.Enabled() {
		if c := o.AI.ClassifyWithAI(ctx, description, imageBase64, knowledgeBaseURI); c != nil {
			return c
		}
		zap.S().Info("AI classification unavailable, using rule engine")
	}
	return o.Rules.Classify(description, imageBase64 != "")
}
