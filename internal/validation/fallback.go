package validation

import "strings"

// FallbackRequirement is a hardcoded requirement entry used when the
// knowledge store is unavailable. Only a handful of sections carry one.
type FallbackRequirement struct {
	MustInclude   []string
	CannotInclude []string
	Minimum       string
	Currency      string
	Format        string
}

// fallbackRequirements is keyed by lowercased section label.
var fallbackRequirements = map[string]FallbackRequirement{
	"company name": {
		MustInclude:   []string{"Limited", "LLC", "PJSC"},
		CannotInclude: []string{"Bank", "Insurance"},
		Format:        "Must end with appropriate legal suffix",
	},
	"registered office": {
		MustInclude: []string{"ADGM", "Abu Dhabi"},
		Format:      "Must be within ADGM jurisdiction",
	},
	"share capital": {
		Minimum:  "AED 150,000 for private companies",
		Currency: "AED or USD accepted",
		Format:   "Must specify authorized and issued capital",
	},
}

// FallbackRequirementFor returns the hardcoded requirement for a section
// label, if one exists.
func FallbackRequirementFor(sectionLabel string) (FallbackRequirement, bool) {
	req, ok := fallbackRequirements[strings.ToLower(sectionLabel)]
	return req, ok
}
