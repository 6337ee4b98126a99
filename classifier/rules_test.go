package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nyayasetu/legal-aid-api/models"
)

func TestRuleEngineTheft(t *testing.T) {
	engine := RuleEngine{}

	c := engine.Classify("Someone snatched my phone near the bus stop", false)

	assert.Equal(t, "Theft / Snatching", c.Classification.Type)
	assert.True(t, c.Classification.Cognizable)
	assert.True(t, c.Classification.FIRRequired)
	assert.Equal(t, models.ConfidenceHigh, c.ConfidenceScore)

	laws := make(map[models.Statute]bool)
	for _, s := range c.Sections {
		laws[s.Law] = true
	}
	assert.True(t, laws[models.StatuteBNS], "expected a BNS section")
	assert.True(t, laws[models.StatuteIPC], "expected an IPC section")
}

func TestRuleEngineTheftWinsOverAssault(t *testing.T) {
	engine := RuleEngine{}

	// both families match; theft takes precedence
	c := engine.Classify("They beat me up and stole my wallet", false)

	assert.Equal(t, "Theft / Snatching", c.Classification.Type)
}

func TestRuleEngineAssault(t *testing.T) {
	engine := RuleEngine{}

	c := engine.Classify("My landlord hit me during an argument", false)

	assert.Equal(t, "Voluntarily Causing Hurt", c.Classification.Type)
	assert.False(t, c.Classification.Cognizable)
	assert.Equal(t, models.ConfidenceMedium, c.ConfidenceScore)
	assert.Len(t, c.Sections, 2)
}

func TestRuleEngineDefault(t *testing.T) {
	engine := RuleEngine{}

	c := engine.Classify("My neighbour plays loud music every night", false)

	assert.Equal(t, "General / Unclassified", c.Classification.Type)
	assert.Empty(t, c.Sections)
	assert.NotEmpty(t, c.MissingFacts)
	assert.Equal(t, models.ConfidenceLow, c.ConfidenceScore)
}

func TestRuleEngineImageNote(t *testing.T) {
	engine := RuleEngine{}

	withImage := engine.Classify("Someone snatched my phone", true)
	withoutImage := engine.Classify("Someone snatched my phone", false)

	assert.NotEmpty(t, withImage.VisualAnalysis)
	assert.Empty(t, withoutImage.VisualAnalysis)
}

func TestRuleEngineCaseInsensitive(t *testing.T) {
	engine := RuleEngine{}

	c := engine.Classify("SOMEONE STOLE MY SCOOTER", false)

	assert.Equal(t, "Theft / Snatching", c.Classification.Type)
}
