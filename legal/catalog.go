// Package legal provides the static catalog of statutory sections the
// deterministic classifier cites. The catalog is read-only reference data;
// anything beyond it comes from the AI classifier and is never invented here.
package legal

import "github.com/nyayasetu/legal-aid-api/models"

type catalogKey struct {
	law     models.Statute
	section string
}

var sections = map[catalogKey]models.LegalSection{
	{models.StatuteBNS, "303(2)"}: {
		Section:    "303(2)",
		Law:        models.StatuteBNS,
		Title:      "Theft (Snatching)",
		Punishment: "Up to 3 years / Fine",
	},
	{models.StatuteIPC, "379"}: {
		Section:    "379",
		Law:        models.StatuteIPC,
		Title:      "Theft",
		Punishment: "Up to 3 years",
	},
	{models.StatuteBNS, "115(2)"}: {
		Section:    "115(2)",
		Law:        models.StatuteBNS,
		Title:      "Voluntarily causing hurt",
		Punishment: "Up to 1 year / Fine",
	},
	{models.StatuteIPC, "323"}: {
		Section:    "323",
		Law:        models.StatuteIPC,
		Title:      "Voluntarily causing hurt",
		Punishment: "Up to 1 year / Fine",
	},
}

// Find looks up a section by statute and section id
func Find(law models.Statute, section string) (models.LegalSection, bool) {
	s, ok := sections[catalogKey{law, section}]
	return s, ok
}

// MustFind returns the catalog entry or panics; reserved for the seeded rule
// templates whose sections are known at compile time
func MustFind(law models.Statute, section string) models.LegalSection {
	s, ok := Find(law, section)
	if !ok {
		panic("legal: unknown catalog section " + string(law) + " " + section)
	}
	return s
}
