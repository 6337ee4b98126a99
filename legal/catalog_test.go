package legal_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nyayasetu/legal-aid-api/legal"
	"github.com/nyayasetu/legal-aid-api/models"
)

func TestFind(t *testing.T) {
	s, ok := legal.Find(models.StatuteBNS, "303(2)")
	assert.True(t, ok)
	assert.Equal(t, "Theft (Snatching)", s.Title)
	assert.Equal(t, models.StatuteBNS, s.Law)

	s, ok = legal.Find(models.StatuteIPC, "323")
	assert.True(t, ok)
	assert.Equal(t, "Voluntarily causing hurt", s.Title)
}

func TestFindUnknownSection(t *testing.T) {
	_, ok := legal.Find(models.StatuteIPC, "999")
	assert.False(t, ok)

	_, ok = legal.Find(models.StatuteOther, "303(2)")
	assert.False(t, ok)
}

func TestMustFindPanicsOnUnknown(t *testing.T) {
	assert.Panics(t, func() { legal.MustFind(models.StatuteBNS, "000") })
	assert.NotPanics(t, func() { legal.MustFind(models.StatuteIPC, "379") })
}
