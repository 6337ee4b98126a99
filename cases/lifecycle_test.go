package cases_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/nyayasetu/legal-aid-api/cases"
	"github.com/nyayasetu/legal-aid-api/models"
)

func TestCanTransition(t *testing.T) {
	// officer triage
	assert.True(t, cases.CanTransition(models.StatusPending, models.StatusAccepted))
	assert.True(t, cases.CanTransition(models.StatusPending, models.StatusRejected))
	assert.False(t, cases.CanTransition(models.StatusRejected, models.StatusAccepted))

	// draft editor is reachable from any non-terminal state
	assert.True(t, cases.CanTransition(models.StatusPending, models.StatusDrafting))
	assert.True(t, cases.CanTransition(models.StatusProcessed, models.StatusDrafting))
	assert.True(t, cases.CanTransition(models.StatusAccepted, models.StatusDrafting))
	assert.False(t, cases.CanTransition(models.StatusFiled, models.StatusDrafting))

	// explicit save and filing
	assert.True(t, cases.CanTransition(models.StatusDrafting, models.StatusDraftSaved))
	assert.True(t, cases.CanTransition(models.StatusDraftSaved, models.StatusFiled))
	assert.False(t, cases.CanTransition(models.StatusPending, models.StatusFiled))
}

func TestCanTransitionSoftDelete(t *testing.T) {
	// one-way from anywhere, idempotent
	assert.True(t, cases.CanTransition(models.StatusPending, models.StatusDeleted))
	assert.True(t, cases.CanTransition(models.StatusFiled, models.StatusDeleted))
	assert.True(t, cases.CanTransition(models.StatusDeleted, models.StatusDeleted))
	assert.False(t, cases.CanTransition(models.StatusDeleted, models.StatusPending))
	assert.False(t, cases.CanTransition(models.StatusDeleted, models.StatusDrafting))
}

func TestInitialStatus(t *testing.T) {
	assert.Equal(t, models.StatusPending, cases.InitialStatus("public"))
	assert.Equal(t, models.StatusProcessed, cases.InitialStatus("police"))
	assert.Equal(t, models.StatusPending, cases.InitialStatus(""))

	assert.Equal(t, models.StatusDrafting, cases.AnalyzeStatus("police"))
	assert.Equal(t, models.StatusPending, cases.AnalyzeStatus("public"))
}

func TestNewCaseCode(t *testing.T) {
	now := time.Date(2024, 5, 17, 10, 30, 0, 0, time.UTC)
	code := cases.NewCaseCode(now)
	assert.Regexp(t, `^CASE-2024-\d{4}$`, code)
}

func TestValidStatus(t *testing.T) {
	assert.True(t, cases.ValidStatus(models.StatusDraftSaved))
	assert.False(t, cases.ValidStatus("ARCHIVED"))
	assert.False(t, cases.ValidStatus(""))
}
