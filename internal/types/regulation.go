// Package types provides type definitions for structured data used throughout the adgm-agent system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// RegulationItem is an atomic piece of regulatory knowledge. Items are
// immutable once stored; re-upserting the same ID replaces the stored copy.
type RegulationItem struct {
	ID                  string   `json:"id"`
	DocumentTitle       string   `json:"document_title"`
	SectionLabel        string   `json:"section_label"`
	RegulationReference string   `json:"regulation_reference"`
	Category            string   `json:"category"`
	Content             string   `json:"content"`
	Keywords            []string `json:"keywords,omitempty"`
	SourceType          string   `json:"source_type,omitempty"`
	SourceURL           string   `json:"source_url,omitempty"`
}

// RegulationMeta echoes a RegulationItem's fields minus its content.
// It travels with query results so callers can cite the source passage.
type RegulationMeta struct {
	ID                  string `json:"id"`
	DocumentTitle       string `json:"document_title"`
	SectionLabel        string `json:"section_label"`
	RegulationReference string `json:"regulation_reference"`
	Category            string `json:"category"`
	SourceType          string `json:"source_type,omitempty"`
	SourceURL           string `json:"source_url,omitempty"`
}

// Meta returns the metadata echo of the item.
func (r RegulationItem) Meta() RegulationMeta {
	return RegulationMeta{
		ID:                  r.ID,
		DocumentTitle:       r.DocumentTitle,
		SectionLabel:        r.SectionLabel,
		RegulationReference: r.RegulationReference,
		Category:            r.Category,
		SourceType:          r.SourceType,
		SourceURL:           r.SourceURL,
	}
}

// QueryResult is one nearest-neighbor hit from the knowledge store.
// Distance is non-negative; smaller means more relevant. Results are
// ephemeral and never persisted.
type QueryResult struct {
	Content    string         `json:"content"`
	Metadata   RegulationMeta `json:"metadata"`
	Distance   float64        `json:"distance"`
	Collection string         `json:"collection"`
}

// KnowledgeStats summarizes the state of the knowledge store. Count
// failures for individual collections land in Errors rather than failing
// the whole stats call.
type KnowledgeStats struct {
	Collections map[string]int64  `json:"collections"`
	Errors      map[string]string `json:"errors,omitempty"`
	TotalItems  int64             `json:"total_items"`
	Status      string            `json:"status"`
}
