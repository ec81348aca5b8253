// Package corpus builds the regulatory knowledge corpus from a fixed
// registry of official ADGM sources: guidance web pages, checklist PDFs,
// and DOCX templates. Fetched text is cleaned, chunked, and indexed into
// the knowledge store's collections.
package corpus

import (
	"github.com/nadim/adgm-agent/internal/db"
	"github.com/nadim/adgm-agent/internal/knowledge"
)

// Source describes one registry entry to ingest.
type Source struct {
	URL         string
	Kind        string // db.SourceType constant
	Category    string // incorporation, compliance, employment, templates
	DocType     string // checklist, resolution, contract (documents only)
	Description string
}

// DefaultSources returns the built-in ADGM source registry.
func DefaultSources() []Source {
	return []Source{
		// Guidance web pages
		{
			URL:         "https://www.adgm.com/registration-authority/registration-and-incorporation",
			Kind:        db.SourceTypeWebPage,
			Category:    "incorporation",
			Description: "General Incorporation, AoA, MoA, Registers, UBO, Board Resolutions",
		},
		{
			URL:         "https://www.adgm.com/setting-up",
			Kind:        db.SourceTypeWebPage,
			Category:    "incorporation",
			Description: "Incorporation, SPV, LLC, Other Forms & Templates",
		},
		{
			URL:         "https://www.adgm.com/legal-framework/guidance-and-policy-statements",
			Kind:        db.SourceTypeWebPage,
			Category:    "compliance",
			Description: "Guidance, Templates, Policy Statements",
		},
		{
			URL:         "https://www.adgm.com/operating-in-adgm/obligations-of-adgm-registered-entities/annual-filings/annual-accounts",
			Kind:        db.SourceTypeWebPage,
			Category:    "compliance",
			Description: "Annual Accounts & Filings",
		},
		// Checklist PDFs
		{
			URL:         "https://www.adgm.com/documents/registration-authority/registration-and-incorporation/checklist/branch-non-financial-services-20231228.pdf",
			Kind:        db.SourceTypePDF,
			Category:    "compliance",
			DocType:     "checklist",
			Description: "Checklist - Company Set-up (Branch Non-Financial Services)",
		},
		{
			URL:         "https://www.adgm.com/documents/registration-authority/registration-and-incorporation/checklist/private-company-limited-by-guarantee-non-financial-services-20231228.pdf",
			Kind:        db.SourceTypePDF,
			Category:    "compliance",
			DocType:     "checklist",
			Description: "Checklist - Private Company Limited",
		},
		// DOCX templates
		{
			URL:         "https://assets.adgm.com/download/assets/adgm-ra-resolution-multiple-incorporate-shareholders-LTD-incorporation-v2.docx",
			Kind:        db.SourceTypeDocx,
			Category:    "templates",
			DocType:     "resolution",
			Description: "Resolution for Incorporation (LTD - Multiple Shareholders)",
		},
		{
			URL:         "https://assets.adgm.com/download/assets/ADGM+Standard+Employment+Contract+Template+-+ER+2024+(Feb+2025).docx",
			Kind:        db.SourceTypeDocx,
			Category:    "employment",
			DocType:     "contract",
			Description: "Standard Employment Contract Template (2024 update)",
		},
		{
			URL:         "https://assets.adgm.com/download/assets/Templates_SHReso_AmendmentArticles-v1-20220107.docx",
			Kind:        db.SourceTypeDocx,
			Category:    "templates",
			DocType:     "resolution",
			Description: "Shareholder Resolution - Amendment of Articles",
		},
	}
}

// CollectionFor maps a source to the knowledge collection it feeds.
// Web pages always land in the web-content collection; documents land in
// the collection matching their category, defaulting to compliance.
func CollectionFor(source Source) string {
	if source.Kind == db.SourceTypeWebPage {
		return knowledge.CollectionWebContent
	}

	switch source.Category {
	case "incorporation":
		return knowledge.CollectionIncorporation
	case "compliance":
		return knowledge.CollectionCompliance
	case "employment":
		return knowledge.CollectionEmployment
	case "templates":
		return knowledge.CollectionTemplates
	default:
		return knowledge.CollectionCompliance
	}
}
