// Package llm - extractor.go provides generic LLM-based structured extraction.
package llm

import (
	"fmt"
	"strings"
)

// ExtractionSchema defines the structure for LLM-based content extraction.
// It provides a reusable way to define what information to extract from text.
type ExtractionSchema struct {
	Name        string        // Schema name (e.g., "CorporateFacts", "ChecklistItems")
	Description string        // System prompt preamble describing the extraction task
	Fields      []SchemaField // Expected output fields
}

// SchemaField defines a single field in the extraction output.
type SchemaField struct {
	Name        string // JSON field name
	Type        string // Type hint: "string", "[]string", "map[string]string"
	Description string // Description for the LLM
	Required    bool   // Whether this field is required
}

// BuildExtractionPrompt constructs the LLM prompt from schema and input text.
func BuildExtractionPrompt(schema ExtractionSchema, inputText string) string {
	var sb strings.Builder

	// System description
	sb.WriteString(schema.Description)
	sb.WriteString("\n\n")

	// Output schema
	sb.WriteString("Return ONLY valid JSON matching this exact structure:\n{\n")
	for i, field := range schema.Fields {
		typeHint := field.Type
		if typeHint == "" {
			typeHint = "string"
		}
		requiredHint := ""
		if field.Required {
			requiredHint = " (required)"
		}
		sb.WriteString(fmt.Sprintf("  \"%s\": %s%s", field.Name, typeHint, requiredHint))
		if field.Description != "" {
			sb.WriteString(fmt.Sprintf(" // %s", field.Description))
		}
		if i < len(schema.Fields)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}\n\n")

	// Instructions
	sb.WriteString("IMPORTANT:\n")
	sb.WriteString("- Extract information directly from the text, do not invent or summarize.\n")
	sb.WriteString("- Return ONLY the JSON object, no markdown, no explanation, no code blocks.\n\n")

	// Input text
	sb.WriteString("Input text:\n\"\"\"\n")
	sb.WriteString(inputText)
	sb.WriteString("\n\"\"\"\n")

	return sb.String()
}

// --- Predefined Schemas ---

// CorporateFactsSchema returns the extraction schema for incorporation
// documents. Extracts the factual particulars a reviewer cross-checks
// against the application.
func CorporateFactsSchema() ExtractionSchema {
	return ExtractionSchema{
		Name: "CorporateFacts",
		Description: `You are an expert corporate document parser. COPY TEXT VERBATIM - do not paraphrase, summarize, or reword.
Your task is to extract the factual particulars from a corporate legal document.
IMPORTANT: Preserve the exact wording from the original text.
Goal: Extract the company particulars, capital details, and the people named in the document.
EXCLUDE: Boilerplate recitals, signature formatting, page headers and footers.`,
		Fields: []SchemaField{
			{
				Name:        "company_name",
				Type:        "\"string\"",
				Description: "Full company name including legal suffix, copied verbatim",
				Required:    true,
			},
			{
				Name:        "registered_office",
				Type:        "\"string\"",
				Description: "Registered office address as stated in the document",
				Required:    false,
			},
			{
				Name:        "share_capital",
				Type:        "\"string\"",
				Description: "Share capital amount and currency, copied verbatim",
				Required:    false,
			},
			{
				Name:        "objects",
				Type:        "\"string\"",
				Description: "The stated objects or purpose of the company",
				Required:    false,
			},
			{
				Name:        "subscribers",
				Type:        "[\"string\"]",
				Description: "Names of subscribers or shareholders - copy each name verbatim",
				Required:    false,
			},
			{
				Name:        "directors",
				Type:        "[\"string\"]",
				Description: "Names of directors named in the document",
				Required:    false,
			},
		},
	}
}

// ChecklistItemsSchema returns the extraction schema for procedural
// checklist documents (set-up checklists, filing requirement lists).
func ChecklistItemsSchema() ExtractionSchema {
	return ExtractionSchema{
		Name: "ChecklistItems",
		Description: `You are an expert regulatory analyst. Your task is to extract the itemized requirements from a procedural checklist document.
Each item is one concrete requirement an applicant must satisfy.`,
		Fields: []SchemaField{
			{
				Name:        "document_title",
				Type:        "\"string\"",
				Description: "Title of the checklist document",
				Required:    true,
			},
			{
				Name:        "applies_to",
				Type:        "\"string\"",
				Description: "Entity type or filing the checklist applies to (e.g., 'branch non-financial services')",
				Required:    true,
			},
			{
				Name:        "items",
				Type:        "[\"string\"]",
				Description: "Each checklist requirement, copied verbatim, one entry per item",
				Required:    true,
			},
			{
				Name:        "supporting_documents",
				Type:        "[\"string\"]",
				Description: "Documents the applicant must attach or submit",
				Required:    false,
			},
		},
	}
}
