package knowledge

import "github.com/nadim/adgm-agent/internal/types"

// Collection names partition the corpus by concern. Every regulation item
// belongs to exactly one collection at insertion time.
const (
	CollectionIncorporation = "adgm_incorporation"
	CollectionCompliance    = "adgm_compliance"
	CollectionEmployment    = "adgm_employment"
	CollectionTemplates     = "adgm_templates"
	CollectionWebContent    = "adgm_web_content"
)

// collectionDescriptions documents what each collection holds
var collectionDescriptions = map[string]string{
	CollectionIncorporation: "Company formation, incorporation, AoA, MoA templates and requirements",
	CollectionCompliance:    "Compliance requirements, annual filings, regulatory guidance",
	CollectionEmployment:    "Employment contracts, HR policies and requirements",
	CollectionTemplates:     "Official ADGM document templates and forms",
	CollectionWebContent:    "Content scraped from ADGM website pages",
}

// AllCollections returns every known collection name in a stable order.
func AllCollections() []string {
	return []string{
		CollectionIncorporation,
		CollectionCompliance,
		CollectionEmployment,
		CollectionTemplates,
		CollectionWebContent,
	}
}

// Describe returns the human description of a collection, or empty string
// for an unknown name.
func Describe(name string) string {
	return collectionDescriptions[name]
}

// CollectionsFor maps a document type to the collections consulted when
// validating it. Unknown types fall back to the incorporation collection.
func CollectionsFor(docType types.DocumentType) []string {
	switch docType {
	case types.DocTypeMemorandum, types.DocTypeArticles:
		return []string{CollectionIncorporation, CollectionTemplates}
	case types.DocTypeApplication:
		return []string{CollectionIncorporation, CollectionCompliance}
	case types.DocTypeBoardResolution:
		return []string{CollectionTemplates, CollectionCompliance}
	case types.DocTypeEmploymentContract:
		return []string{CollectionEmployment}
	default:
		return []string{CollectionIncorporation}
	}
}
