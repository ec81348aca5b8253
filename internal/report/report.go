// Package report assembles the final analysis report from compliance
// checks, red flags, and completeness results.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/nadim/adgm-agent/internal/types"
)

// Status is the overall verdict for a document.
type Status string

const (
	StatusCompliant          Status = "COMPLIANT"
	StatusPartiallyCompliant Status = "PARTIALLY_COMPLIANT"
	StatusNeedsRevision      Status = "NEEDS_REVISION"
	StatusNonCompliant       Status = "NON_COMPLIANT"
	StatusCriticalIssues     Status = "CRITICAL_ISSUES"
)

const (
	maxRecommendations = 10
	maxCriticalFixes   = 5
	maxMissingSections = 3
	maxCheckFixes      = 3
	maxWarningFixes    = 2
)

// Report is the assembled view of one analysis, ready for display or
// serialization.
type Report struct {
	DocumentID   string             `json:"document_id"`
	DocumentName string             `json:"document_name"`
	DocumentType types.DocumentType `json:"document_type"`

	OverallStatus     Status  `json:"overall_status"`
	ComplianceScore   float64 `json:"compliance_score"`
	CompletenessScore float64 `json:"completeness_score"`

	CriticalIssues int `json:"critical_issues"`
	Warnings       int `json:"warnings"`
	InfoItems      int `json:"info_items"`

	Flags            []types.DocumentFlag    `json:"flags"`
	ComplianceChecks []types.ComplianceCheck `json:"compliance_checks"`
	MissingSections  []string                `json:"missing_sections"`

	ExecutiveSummary string   `json:"executive_summary"`
	Recommendations  []string `json:"recommendations"`
	NextSteps        []string `json:"next_steps"`

	GeneratedAt time.Time `json:"generated_at"`
}

// Build assembles a Report from a completed analysis.
func Build(analysis *types.DocumentAnalysis) *Report {
	critical, warnings, info := countBySeverity(analysis.Flags)

	var completeness float64
	var missing []string
	if analysis.Completeness != nil {
		completeness = analysis.Completeness.Score * 100
		missing = analysis.Completeness.MissingSections
	}

	status := overallStatus(analysis.ComplianceScore, critical, warnings)

	report := &Report{
		DocumentID:        analysis.ID,
		DocumentName:      analysis.OriginalFilename,
		DocumentType:      analysis.DocumentType,
		OverallStatus:     status,
		ComplianceScore:   analysis.ComplianceScore,
		CompletenessScore: completeness,
		CriticalIssues:    critical,
		Warnings:          warnings,
		InfoItems:         info,
		Flags:             analysis.Flags,
		ComplianceChecks:  analysis.ComplianceChecks,
		MissingSections:   missing,
		GeneratedAt:       time.Now(),
	}

	report.ExecutiveSummary = executiveSummary(report)
	report.Recommendations = recommendations(report)
	report.NextSteps = nextSteps(status)

	return report
}

// countBySeverity buckets flags into critical / warning / informational.
// High and medium findings count as warnings; low and info are
// informational.
func countBySeverity(flags []types.DocumentFlag) (critical, warnings, info int) {
	for _, flag := range flags {
		switch flag.Severity {
		case types.SeverityCritical:
			critical++
		case types.SeverityHigh, types.SeverityMedium:
			warnings++
		default:
			info++
		}
	}
	return critical, warnings, info
}

func overallStatus(score float64, critical, warnings int) Status {
	switch {
	case critical > 0:
		return StatusCriticalIssues
	case score >= 90:
		return StatusCompliant
	case score >= 70:
		return StatusPartiallyCompliant
	case warnings > 5:
		return StatusNeedsRevision
	default:
		return StatusNonCompliant
	}
}

func executiveSummary(r *Report) string {
	var parts []string

	parts = append(parts, fmt.Sprintf("Analysis of %s completed on %s.",
		documentTypeName(r.DocumentType), r.GeneratedAt.Format("2006-01-02 15:04")))

	switch {
	case r.ComplianceScore >= 90:
		parts = append(parts, fmt.Sprintf("The document demonstrates high compliance (%.1f%%) with ADGM requirements.", r.ComplianceScore))
	case r.ComplianceScore >= 70:
		parts = append(parts, fmt.Sprintf("The document shows moderate compliance (%.1f%%) with several areas requiring attention.", r.ComplianceScore))
	default:
		parts = append(parts, fmt.Sprintf("The document has significant compliance issues (%.1f%%) that must be addressed.", r.ComplianceScore))
	}

	if r.CriticalIssues > 0 {
		parts = append(parts, fmt.Sprintf("CRITICAL: %d critical issues identified that require immediate attention.", r.CriticalIssues))
	}
	if r.Warnings > 0 {
		parts = append(parts, fmt.Sprintf("%d warnings noted that should be addressed for best practice compliance.", r.Warnings))
	}
	if r.InfoItems > 0 {
		parts = append(parts, fmt.Sprintf("%d informational items provided for guidance.", r.InfoItems))
	}

	switch {
	case r.CompletenessScore >= 95:
		parts = append(parts, "Document structure and required sections are complete.")
	case r.CompletenessScore >= 80:
		parts = append(parts, "Document is mostly complete with minor sections missing.")
	default:
		parts = append(parts, "Document is missing several required sections and information.")
	}

	if len(r.MissingSections) > 0 {
		listed := r.MissingSections
		suffix := ""
		if len(listed) > maxMissingSections {
			suffix = fmt.Sprintf(" and %d others", len(listed)-maxMissingSections)
			listed = listed[:maxMissingSections]
		}
		parts = append(parts, fmt.Sprintf("Key missing sections include: %s%s.", strings.Join(listed, ", "), suffix))
	}

	return strings.Join(parts, " ")
}

// documentTypeName returns a display name for a document type.
func documentTypeName(docType types.DocumentType) string {
	switch docType {
	case types.DocTypeMemorandum:
		return "Memorandum of Association"
	case types.DocTypeArticles:
		return "Articles of Association"
	case types.DocTypeApplication:
		return "Incorporation Application"
	case types.DocTypeBoardResolution:
		return "Board Resolution"
	case types.DocTypeEmploymentContract:
		return "Employment Contract"
	default:
		return "Document"
	}
}

// recommendations builds a prioritized action list: critical fixes first,
// then missing sections, then failing compliance checks, then warning
// fixes. Falls back to general guidance when nothing specific surfaced.
func recommendations(r *Report) []string {
	var recs []string

	criticalSeen := 0
	for _, flag := range r.Flags {
		if flag.Severity != types.SeverityCritical || flag.SuggestedFix == "" {
			continue
		}
		recs = append(recs, "CRITICAL: "+flag.SuggestedFix)
		criticalSeen++
		if criticalSeen == maxCriticalFixes {
			break
		}
	}

	for i, section := range r.MissingSections {
		if i == maxMissingSections {
			break
		}
		recs = append(recs, "Add required section: "+section)
	}

	checkSeen := 0
	for _, check := range r.ComplianceChecks {
		if check.Compliant || len(check.Recommendations) == 0 {
			continue
		}
		recs = append(recs, check.Recommendations[0])
		checkSeen++
		if checkSeen == maxCheckFixes {
			break
		}
	}

	warningSeen := 0
	for _, flag := range r.Flags {
		if (flag.Severity != types.SeverityHigh && flag.Severity != types.SeverityMedium) || flag.SuggestedFix == "" {
			continue
		}
		recs = append(recs, "Improve: "+flag.SuggestedFix)
		warningSeen++
		if warningSeen == maxWarningFixes {
			break
		}
	}

	if len(recs) == 0 {
		recs = []string{
			"Review document for completeness against ADGM requirements",
			"Ensure all mandatory sections are present and properly formatted",
			"Verify compliance with current ADGM regulations",
		}
	}

	if len(recs) > maxRecommendations {
		recs = recs[:maxRecommendations]
	}
	return recs
}

func nextSteps(status Status) []string {
	switch status {
	case StatusCriticalIssues:
		return []string{
			"Address all critical issues before proceeding with submission",
			"Review document with legal counsel if needed",
			"Re-submit for analysis after corrections",
		}
	case StatusNonCompliant, StatusNeedsRevision:
		return []string{
			"Revise document to address compliance gaps",
			"Add missing required sections",
			"Ensure all ADGM requirements are met",
		}
	case StatusPartiallyCompliant:
		return []string{
			"Address remaining warnings and issues",
			"Verify compliance improvements",
			"Consider final legal review before submission",
		}
	default:
		return []string{
			"Document is ready for submission to ADGM",
			"Keep copy of analysis report for records",
			"Monitor for any regulation updates",
		}
	}
}

// Format renders the report for console display.
func Format(r *Report) string {
	var lines []string
	divider := strings.Repeat("=", 80)

	lines = append(lines, divider)
	lines = append(lines, "ADGM CORPORATE AGENT - DOCUMENT ANALYSIS REPORT")
	lines = append(lines, divider, "")

	lines = append(lines, fmt.Sprintf("Document: %s", r.DocumentName))
	lines = append(lines, fmt.Sprintf("Type: %s", documentTypeName(r.DocumentType)))
	lines = append(lines, fmt.Sprintf("Analysis Date: %s", r.GeneratedAt.Format("2006-01-02 15:04:05")))
	lines = append(lines, fmt.Sprintf("Status: %s", r.OverallStatus), "")

	lines = append(lines, "COMPLIANCE SCORES", strings.Repeat("-", 20))
	lines = append(lines, fmt.Sprintf("Overall Compliance: %.1f%%", r.ComplianceScore))
	lines = append(lines, fmt.Sprintf("Completeness: %.1f%%", r.CompletenessScore), "")

	lines = append(lines, "ISSUE SUMMARY", strings.Repeat("-", 15))
	lines = append(lines, fmt.Sprintf("Critical Issues: %d", r.CriticalIssues))
	lines = append(lines, fmt.Sprintf("Warnings: %d", r.Warnings))
	lines = append(lines, fmt.Sprintf("Informational: %d", r.InfoItems), "")

	lines = append(lines, "EXECUTIVE SUMMARY", strings.Repeat("-", 18))
	lines = append(lines, r.ExecutiveSummary, "")

	var criticals []types.DocumentFlag
	for _, flag := range r.Flags {
		if flag.Severity == types.SeverityCritical {
			criticals = append(criticals, flag)
		}
	}
	if len(criticals) > 0 {
		lines = append(lines, "CRITICAL ISSUES", strings.Repeat("-", 16))
		for i, flag := range criticals {
			lines = append(lines, fmt.Sprintf("%d. %s", i+1, flag.Title))
			lines = append(lines, fmt.Sprintf("   %s", flag.Description))
			if flag.SuggestedFix != "" {
				lines = append(lines, fmt.Sprintf("   Fix: %s", flag.SuggestedFix))
			}
			lines = append(lines, "")
		}
	}

	if len(r.Recommendations) > 0 {
		lines = append(lines, "RECOMMENDATIONS", strings.Repeat("-", 15))
		for i, rec := range r.Recommendations {
			lines = append(lines, fmt.Sprintf("%d. %s", i+1, rec))
		}
		lines = append(lines, "")
	}

	lines = append(lines, divider)
	return strings.Join(lines, "\n")
}

// SummaryStats aggregates results across multiple analyses.
type SummaryStats struct {
	TotalDocuments      int            `json:"total_documents"`
	AverageCompliance   float64        `json:"average_compliance_score"`
	AverageCompleteness float64        `json:"average_completeness_score"`
	TotalFlags          int            `json:"total_flags"`
	TotalCriticalIssues int            `json:"total_critical_issues"`
	DocumentsByType     map[string]int `json:"document_types_processed"`
	PeriodStart         time.Time      `json:"period_start"`
	PeriodEnd           time.Time      `json:"period_end"`
}

// Summarize computes aggregate statistics over a batch of analyses.
// Returns the zero value for an empty batch.
func Summarize(analyses []types.DocumentAnalysis) SummaryStats {
	if len(analyses) == 0 {
		return SummaryStats{}
	}

	stats := SummaryStats{
		TotalDocuments:  len(analyses),
		DocumentsByType: make(map[string]int),
		PeriodStart:     analyses[0].CreatedAt,
		PeriodEnd:       analyses[0].CreatedAt,
	}

	var complianceSum, completenessSum float64
	for _, a := range analyses {
		complianceSum += a.ComplianceScore
		if a.Completeness != nil {
			completenessSum += a.Completeness.Score * 100
		}
		stats.TotalFlags += len(a.Flags)
		for _, flag := range a.Flags {
			if flag.Severity == types.SeverityCritical {
				stats.TotalCriticalIssues++
			}
		}
		stats.DocumentsByType[string(a.DocumentType)]++
		if a.CreatedAt.Before(stats.PeriodStart) {
			stats.PeriodStart = a.CreatedAt
		}
		if a.CreatedAt.After(stats.PeriodEnd) {
			stats.PeriodEnd = a.CreatedAt
		}
	}

	stats.AverageCompliance = round2(complianceSum / float64(len(analyses)))
	stats.AverageCompleteness = round2(completenessSum / float64(len(analyses)))
	return stats
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
