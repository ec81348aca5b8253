// Package steps defines the stages of the document analysis pipeline and
// their dependency ordering.
package steps

import (
	"fmt"
	"sort"
)

// Step categories group stages for progress reporting.
const (
	CategoryIngestion  = "ingestion"
	CategoryValidation = "validation"
	CategoryAnalysis   = "analysis"
	CategoryReporting  = "reporting"
)

// StepDefinition defines metadata for a pipeline stage
type StepDefinition struct {
	Name         string
	Category     string
	Dependencies []string
	Optional     []string
}

// StepRegistry holds all stage definitions
var StepRegistry = map[string]StepDefinition{
	"ingest_document": {
		Name:         "ingest_document",
		Category:     CategoryIngestion,
		Dependencies: []string{},
		Optional:     []string{},
	},
	"classify_document": {
		Name:         "classify_document",
		Category:     CategoryIngestion,
		Dependencies: []string{"ingest_document"},
		Optional:     []string{},
	},
	"validate_sections": {
		Name:         "validate_sections",
		Category:     CategoryValidation,
		Dependencies: []string{"classify_document"},
		Optional:     []string{},
	},
	"match_checklist": {
		Name:         "match_checklist",
		Category:     CategoryValidation,
		Dependencies: []string{"classify_document"},
		Optional:     []string{},
	},
	"detect_red_flags": {
		Name:         "detect_red_flags",
		Category:     CategoryAnalysis,
		Dependencies: []string{"classify_document"},
		Optional:     []string{},
	},
	"check_completeness": {
		Name:         "check_completeness",
		Category:     CategoryAnalysis,
		Dependencies: []string{"classify_document"},
		Optional:     []string{},
	},
	"suggest_clauses": {
		Name:         "suggest_clauses",
		Category:     CategoryAnalysis,
		Dependencies: []string{"detect_red_flags"},
		Optional:     []string{},
	},
	"assemble_report": {
		Name:         "assemble_report",
		Category:     CategoryReporting,
		Dependencies: []string{"validate_sections", "detect_red_flags", "check_completeness"},
		Optional:     []string{"match_checklist", "suggest_clauses"},
	},
}

// DependencyError represents a dependency validation error
type DependencyError struct {
	Step                string
	MissingDependencies []string
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("missing dependencies: %v", e.MissingDependencies)
}

// ValidateDependencies checks that all required dependencies of a stage
// are in the completed set.
func ValidateDependencies(completed map[string]bool, stepName string) error {
	def, ok := StepRegistry[stepName]
	if !ok {
		return fmt.Errorf("unknown step: %s", stepName)
	}

	var missing []string
	for _, dep := range def.Dependencies {
		if !completed[dep] {
			missing = append(missing, dep)
		}
	}

	if len(missing) > 0 {
		return &DependencyError{
			Step:                stepName,
			MissingDependencies: missing,
		}
	}

	return nil
}

// AvailableSteps returns stages whose dependencies are all completed and
// that have not run yet, sorted by name.
func AvailableSteps(completed map[string]bool) []string {
	var available []string

	for stepName := range StepRegistry {
		if completed[stepName] {
			continue
		}
		if err := ValidateDependencies(completed, stepName); err != nil {
			continue
		}
		available = append(available, stepName)
	}

	sort.Strings(available)
	return available
}

// BlockedSteps returns stages that cannot run yet, sorted by name.
func BlockedSteps(completed map[string]bool) []string {
	var blocked []string

	for stepName := range StepRegistry {
		if completed[stepName] {
			continue
		}
		if err := ValidateDependencies(completed, stepName); err != nil {
			blocked = append(blocked, stepName)
		}
	}

	sort.Strings(blocked)
	return blocked
}
