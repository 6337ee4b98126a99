package models

import (
	"errors"
	"strings"
)

// Statute identifies which criminal code a legal section belongs to
type Statute string

// Statute values as they appear on the wire
const (
	StatuteBNS   Statute = "BNS"
	StatuteIPC   Statute = "IPC"
	StatuteOther Statute = "Other"
)

// Confidence levels for a classification
const (
	ConfidenceHigh   = "High"
	ConfidenceMedium = "Medium"
	ConfidenceLow    = "Low"
)

// LegalSection is one statutory section cited by a classification
type LegalSection struct {
	Section    string  `json:"section" bson:"section"`
	Law        Statute `json:"law" bson:"law"`
	Title      string  `json:"title" bson:"title"`
	Punishment string  `json:"punishment" bson:"punishment"`
}

// OffenseDetails holds the core legal categorization of an incident
type OffenseDetails struct {
	Type                 string `json:"type" bson:"type"`
	Cognizable           bool   `json:"cognizable" bson:"cognizable"`
	FIRRequired          bool   `json:"fir_required" bson:"firRequired"`
	ArrestWithoutWarrant bool   `json:"arrest_without_warrant" bson:"arrestWithoutWarrant"`
	Priority             string `json:"priority,omitempty" bson:"priority,omitempty"`
}

// Guidance holds the procedural advice attached to a classification
type Guidance struct {
	ImmediateAction  string `json:"immediate_action" bson:"immediateAction"`
	EvidenceHandling string `json:"evidence_handling" bson:"evidenceHandling"`
	LegalSteps       string `json:"legal_steps" bson:"legalSteps"`
}

// Classification is the structured legal analysis of one incident. The field
// names mirror the JSON schema the Gemini prompt requests, so a validated
// model response unmarshals straight into this struct.
type Classification struct {
	Summary         string         `json:"summary" bson:"summary"`
	Classification  OffenseDetails `json:"classification" bson:"classification"`
	Sections        []LegalSection `json:"sections" bson:"sections"`
	Guidance        Guidance       `json:"guidance" bson:"guidance"`
	MissingFacts    []string       `json:"missing_facts" bson:"missingFacts"`
	ConfidenceScore string         `json:"confidence_score" bson:"confidenceScore"`
	VisualAnalysis  string         `json:"visual_analysis,omitempty" bson:"visualAnalysis,omitempty"`
}

// Validate checks the invariants every classification must satisfy before it
// leaves the adapter: populated summary, offense type, all three guidance
// fields and a recognized confidence level
func (c *Classification) Validate() error {
	if strings.TrimSpace(c.Summary) == "" {
		return errors.New("classification missing summary")
	}
	if strings.TrimSpace(c.Classification.Type) == "" {
		return errors.New("classification missing offense type")
	}
	if strings.TrimSpace(c.Guidance.ImmediateAction) == "" ||
		strings.TrimSpace(c.Guidance.EvidenceHandling) == "" ||
		strings.TrimSpace(c.Guidance.LegalSteps) == "" {
		return errors.New("classification missing guidance fields")
	}
	switch c.ConfidenceScore {
	case ConfidenceHigh, ConfidenceMedium, ConfidenceLow:
	default:
		return errors.New("classification has invalid confidence score")
	}
	if c.Sections == nil {
		c.Sections = []LegalSection{}
	}
	if c.MissingFacts == nil {
		c.MissingFacts = []string{}
	}
	return nil
}
