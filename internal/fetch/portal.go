// Package fetch - portal.go provides portal detection and portal-specific selectors.
package fetch

import (
	"net/url"
	"path"
	"strings"

	"github.com/nadim/adgm-agent/internal/db"
)

// Portal represents a known regulatory content portal.
type Portal string

const (
	// PortalADGM is the main ADGM website (registration authority, guidance, downloads)
	PortalADGM Portal = "adgm"
	// PortalRulebook is the Thomson Reuters hosted ADGM rulebook
	PortalRulebook Portal = "rulebook"
	// PortalUnknown is an unrecognized portal
	PortalUnknown Portal = "unknown"
)

// DetectPortal identifies the regulatory portal from a URL.
func DetectPortal(urlStr string) Portal {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return PortalUnknown
	}

	host := strings.ToLower(parsed.Host)

	// Rulebook is checked first: its host also matches "adgm"
	if strings.Contains(host, "adgm.thomsonreuters.com") {
		return PortalRulebook
	}

	if strings.Contains(host, "adgm.com") ||
		strings.Contains(host, "assets.adgm.com") {
		return PortalADGM
	}

	return PortalUnknown
}

// DetectSourceKind classifies a source URL by its file extension.
// Returns one of the db.SourceType constants.
func DetectSourceKind(urlStr string) string {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return db.SourceTypeWebPage
	}

	switch strings.ToLower(path.Ext(parsed.Path)) {
	case ".pdf":
		return db.SourceTypePDF
	case ".docx", ".doc":
		return db.SourceTypeDocx
	default:
		return db.SourceTypeWebPage
	}
}

// PortalContentSelectors returns content selectors optimized for a specific portal.
func PortalContentSelectors(portal Portal) []string {
	switch portal {
	case PortalRulebook:
		return []string{
			".rulebook-content",
			".rule-content",
			"#rulebook-content",
			".gwt-HTML",
			"#content",
		}
	case PortalADGM:
		return []string{
			".page-content",
			".registration-content",
			".guidance-content",
			"main",
			"article",
			".content",
		}
	default:
		return RegulationPageSelectors()
	}
}

// PortalNoiseSelectors returns noise exclusion selectors for a specific portal.
func PortalNoiseSelectors(portal Portal) []string {
	// Common noise selectors for all portals
	common := []string{
		// Contact and enquiry forms
		"form",
		".enquiry-form",
		".contact-form",
		"[data-testid='enquiry-form']",

		// Social and share buttons
		".social-share",
		".share-buttons",
		".social-links",

		// Cookie and GDPR
		".cookie-banner",
		".cookie-consent",
		".gdpr-notice",

		// Generic navigation already handled in fetch.go
	}

	switch portal {
	case PortalRulebook:
		return append(common,
			".rulebook-toc",
			".breadcrumb",
			".version-selector",
			".print-controls",
		)
	case PortalADGM:
		return append(common,
			".hero-banner",
			".related-links",
			".newsletter-signup",
			".download-app",
		)
	default:
		return common
	}
}
