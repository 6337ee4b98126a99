package databases

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nyayasetu/legal-aid-api/models"
)

func newTestFileStore(t *testing.T) *FileStore {
	t.Helper()
	return NewFileStore(filepath.Join(t.TempDir(), "incidents.json"))
}

func TestFileStoreSeedsOnFirstUse(t *testing.T) {
	s := newTestFileStore(t)

	incidents, err := s.List(context.Background(), models.IncidentFilter{})

	assert.NoError(t, err)
	assert.Len(t, incidents, 2)
	assert.Equal(t, "CASE-2024-001", incidents[0].CaseID)
	assert.Equal(t, "CASE-2024-002", incidents[1].CaseID)

	_, err = os.Stat(s.path)
	assert.NoError(t, err)
}

func TestFileStoreCreateAndGet(t *testing.T) {
	s := newTestFileStore(t)

	created, err := s.Create(context.Background(), models.Incident{
		CaseID:      "CASE-2026-4242",
		Description: "Wallet stolen in the metro",
		Status:      models.StatusPending,
	})
	assert.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	// lookup by opaque id and by case code must hit the same record
	byID, err := s.Get(context.Background(), created.ID)
	assert.NoError(t, err)
	byCode, err := s.Get(context.Background(), "CASE-2026-4242")
	assert.NoError(t, err)
	assert.Equal(t, byID.ID, byCode.ID)
	assert.Equal(t, "Wallet stolen in the metro", byID.Description)
}

func TestFileStoreGetNotFound(t *testing.T) {
	s := newTestFileStore(t)

	_, err := s.Get(context.Background(), "nope")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStoreListNewestFirst(t *testing.T) {
	s := newTestFileStore(t)

	created, err := s.Create(context.Background(), models.Incident{
		Description: "Fresh complaint",
		Status:      models.StatusPending,
	})
	assert.NoError(t, err)

	incidents, err := s.List(context.Background(), models.IncidentFilter{})
	assert.NoError(t, err)
	assert.Equal(t, created.ID, incidents[0].ID)
}

func TestFileStoreListFilters(t *testing.T) {
	s := newTestFileStore(t)

	byStatus, err := s.List(context.Background(), models.IncidentFilter{Status: models.StatusDrafting})
	assert.NoError(t, err)
	assert.Len(t, byStatus, 1)
	assert.Equal(t, "CASE-2024-002", byStatus[0].CaseID)

	byCategory, err := s.List(context.Background(), models.IncidentFilter{Category: "Theft"})
	assert.NoError(t, err)
	assert.Len(t, byCategory, 1)

	bySearch, err := s.List(context.Background(), models.IncidentFilter{Search: "snatching"})
	assert.NoError(t, err)
	assert.Len(t, bySearch, 1)
	assert.Equal(t, "CASE-2024-001", bySearch[0].CaseID)

	none, err := s.List(context.Background(), models.IncidentFilter{Search: "zzz-no-match"})
	assert.NoError(t, err)
	assert.Empty(t, none)
}

func TestFileStoreUpdateMergesFields(t *testing.T) {
	s := newTestFileStore(t)

	status := models.StatusAccepted
	officer := "SI Sharma"
	updated, err := s.Update(context.Background(), "CASE-2024-001", models.IncidentUpdate{
		Status:      &status,
		OfficerName: &officer,
	})

	assert.NoError(t, err)
	assert.Equal(t, models.StatusAccepted, updated.Status)
	assert.Equal(t, "SI Sharma", updated.OfficerName)
	// untouched fields survive the merge
	assert.Equal(t, "Phone snatching at CP Outer Circle", updated.Description)

	_, err = s.Update(context.Background(), "missing", models.IncidentUpdate{Status: &status})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStoreSoftDeleteIdempotent(t *testing.T) {
	s := newTestFileStore(t)

	first, err := s.SoftDelete(context.Background(), "CASE-2024-001")
	assert.NoError(t, err)
	assert.Equal(t, models.StatusDeleted, first.Status)

	second, err := s.SoftDelete(context.Background(), "CASE-2024-001")
	assert.NoError(t, err)
	assert.Equal(t, models.StatusDeleted, second.Status)

	// still retrievable after delete
	got, err := s.Get(context.Background(), "CASE-2024-001")
	assert.NoError(t, err)
	assert.Equal(t, models.StatusDeleted, got.Status)
}
