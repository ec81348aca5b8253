// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/nadim/adgm-agent/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintAnalysisSummary outputs a human-readable summary of a completed analysis.
func (p *Printer) PrintAnalysisSummary(analysis *types.DocumentAnalysis) {
	if analysis == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Document: %s\n", analysis.OriginalFilename))
	sb.WriteString(fmt.Sprintf("Type:     %s\n", analysis.DocumentType))
	sb.WriteString(fmt.Sprintf("Status:   %s\n", analysis.Status))
	sb.WriteString(fmt.Sprintf("Score:    %.2f / 100\n", analysis.ComplianceScore))

	if analysis.Completeness != nil {
		sb.WriteString(fmt.Sprintf("Complete: %.0f%%\n", analysis.Completeness.Score*100))
	}

	if len(analysis.Flags) > 0 {
		sb.WriteString(fmt.Sprintf("Flags:    %d raised\n", len(analysis.Flags)))
	}

	if len(analysis.Recommendations) > 0 {
		sb.WriteString("\nRecommendations:\n")
		count := min(len(analysis.Recommendations), 3)
		for i := 0; i < count; i++ {
			rec := analysis.Recommendations[i]
			if len(rec) > 50 {
				rec = rec[:47] + "..."
			}
			sb.WriteString(fmt.Sprintf("  • %s\n", rec))
		}
		if len(analysis.Recommendations) > 3 {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(analysis.Recommendations)-3))
		}
	}

	p.printBox("ANALYSIS SUMMARY", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintComplianceChecks outputs per-section compliance findings.
func (p *Printer) PrintComplianceChecks(checks []types.ComplianceCheck) {
	if len(checks) == 0 {
		return
	}

	compliant := 0
	for _, c := range checks {
		if c.Compliant {
			compliant++
		}
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d of %d checks compliant\n\n", compliant, len(checks)))

	count := min(len(checks), maxItemsToShow)
	for i := 0; i < count; i++ {
		check := checks[i]
		marker := "✓"
		if !check.Compliant {
			marker = "✗"
		}
		sb.WriteString(fmt.Sprintf("%s %s\n", marker, check.Section))
		if len(check.Issues) > 0 {
			issue := check.Issues[0]
			if len(issue) > 48 {
				issue = issue[:45] + "..."
			}
			sb.WriteString(fmt.Sprintf("  %s\n", issue))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(checks) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more checks", len(checks)-maxItemsToShow))
	}

	p.printBox("COMPLIANCE CHECKS", sb.String())
}

// PrintFlags outputs any red flags raised against the document.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintFlags(flags []types.DocumentFlag) {
	if len(flags) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ NO RED FLAGS FOUND")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d red flags:\n\n", len(flags)))

	count := min(len(flags), maxItemsToShow)
	for i := 0; i < count; i++ {
		flag := flags[i]
		sb.WriteString(fmt.Sprintf("⚠ [%s] %s\n", flag.Severity, flag.Title))
		desc := flag.Description
		if len(desc) > 48 {
			desc = desc[:45] + "..."
		}
		sb.WriteString(fmt.Sprintf("  %s\n", desc))
		if flag.ADGMReference != "" {
			sb.WriteString(fmt.Sprintf("  Ref: %s\n", flag.ADGMReference))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(flags) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more flags", len(flags)-maxItemsToShow))
	}

	p.printBox("RED FLAGS", sb.String())
}

// PrintChecklist outputs the checklist coverage result.
func (p *Printer) PrintChecklist(result *types.ChecklistResult) {
	if result == nil || result.TotalItems == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Completed: %d / %d (%.1f%%)\n",
		result.CompletedItems, result.TotalItems, result.CompliancePercentage))

	if len(result.MissingItems) > 0 {
		sb.WriteString("\nMissing items:\n")
		count := min(len(result.MissingItems), maxItemsToShow)
		for i := 0; i < count; i++ {
			item := result.MissingItems[i]
			if len(item) > 50 {
				item = item[:47] + "..."
			}
			sb.WriteString(fmt.Sprintf("  • %s\n", item))
		}
		if len(result.MissingItems) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(result.MissingItems)-maxItemsToShow))
		}
	}

	p.printBox("CHECKLIST COVERAGE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintKnowledgeStats outputs per-collection knowledge base item counts.
func (p *Printer) PrintKnowledgeStats(stats types.KnowledgeStats) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Status: %s\n", stats.Status))
	sb.WriteString(fmt.Sprintf("Total items: %d\n", stats.TotalItems))

	if len(stats.Collections) > 0 {
		sb.WriteString("\n")
		names := make([]string, 0, len(stats.Collections))
		for name := range stats.Collections {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			sb.WriteString(fmt.Sprintf("  %-28s %d\n", name, stats.Collections[name]))
		}
	}

	if len(stats.Errors) > 0 {
		sb.WriteString("\nErrors:\n")
		for name, msg := range stats.Errors {
			if len(msg) > 40 {
				msg = msg[:37] + "..."
			}
			sb.WriteString(fmt.Sprintf("  %s: %s\n", name, msg))
		}
	}

	p.printBox("KNOWLEDGE BASE", strings.TrimSuffix(sb.String(), "\n"))
}
