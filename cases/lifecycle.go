// Package cases owns the case lifecycle: status transitions, case-code
// assignment and the officer hand-off fields. All status changes funnel
// through CanTransition so illegal jumps are rejected before they reach a
// store update.
package cases

import (
	"fmt"
	"strconv"
	"time"

	"github.com/nyayasetu/legal-aid-api/models"
)

// transitions holds the allowed moves between explicit pairs. DRAFTING is
// reachable from any non-terminal state and DELETED from anywhere, handled
// separately in CanTransition.
var transitions = map[string][]string{
	models.StatusPending:    {models.StatusAccepted, models.StatusRejected},
	models.StatusAccepted:   {models.StatusFiled},
	models.StatusDraftSaved: {models.StatusFiled},
	models.StatusDrafting:   {models.StatusDraftSaved, models.StatusFiled},
}

// IsTerminal reports whether a status admits no further transitions other
// than soft delete
func IsTerminal(status string) bool {
	return status == models.StatusFiled || status == models.StatusDeleted
}

// CanTransition validates a requested status change. Soft delete is one-way
// but idempotent: DELETED -> DELETED is allowed so a repeated delete call
// stays error-free.
func CanTransition(from, to string) bool {
	if to == models.StatusDeleted {
		return true
	}
	if from == models.StatusDeleted {
		return false
	}
	if from == to {
		return true
	}
	if to == models.StatusDrafting {
		return !IsTerminal(from)
	}
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// InitialStatus returns the intake status for a submitter role: citizens
// land in triage, officer submissions arrive already processed
func InitialStatus(userType string) string {
	if userType == "police" {
		return models.StatusProcessed
	}
	return models.StatusPending
}

// AnalyzeStatus returns the status a case created from /analyze starts in;
// officer-initiated analyses go straight to the draft editor
func AnalyzeStatus(userType string) string {
	if userType == "police" {
		return models.StatusDrafting
	}
	return models.StatusPending
}

// NewCaseCode generates the human-readable case code, distinct from the
// store's opaque record id: CASE-<year>-<last 4 digits of epoch millis>
func NewCaseCode(now time.Time) string {
	millis := strconv.FormatInt(now.UnixMilli(), 10)
	return fmt.Sprintf("CASE-%d-%s", now.Year(), millis[len(millis)-4:])
}

// ValidStatus reports whether s is one of the known case statuses
func ValidStatus(s string) bool {
	switch s {
	case models.StatusPending, models.StatusProcessed, models.StatusDrafting,
		models.StatusDraftSaved, models.StatusAccepted, models.StatusRejected,
		models.StatusFiled, models.StatusDeleted:
		return true
	}
	return false
}
