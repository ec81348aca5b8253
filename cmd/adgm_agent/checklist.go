package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nadim/adgm-agent/internal/types"
	"github.com/nadim/adgm-agent/internal/validation"
)

var checklistCmd = &cobra.Command{
	Use:   "checklist",
	Short: "List incorporation filing documents still missing",
	Long:  `Compares the documents uploaded so far against the ADGM incorporation filing requirements for a document type and lists what is still missing.`,
	RunE:  runChecklist,
}

var (
	checklistDocType  string
	checklistUploaded []string
)

func init() {
	checklistCmd.Flags().StringVarP(&checklistDocType, "type", "t", "", "Document type the filing is for (required)")
	checklistCmd.Flags().StringSliceVarP(&checklistUploaded, "uploaded", "u", nil, "Documents already uploaded (repeatable)")
	_ = checklistCmd.MarkFlagRequired("type")

	rootCmd.AddCommand(checklistCmd)
}

func runChecklist(_ *cobra.Command, _ []string) error {
	docType := types.DocumentType(checklistDocType)
	if !docType.Known() {
		return fmt.Errorf("unknown document type: %s", checklistDocType)
	}

	missing := validation.MissingDocuments(docType, checklistUploaded)
	if len(missing) == 0 {
		_, _ = fmt.Fprintf(os.Stdout, "No outstanding filing documents for %s\n", docType)
		return nil
	}

	_, _ = fmt.Fprintf(os.Stdout, "Missing documents for %s:\n", docType)
	for _, doc := range missing {
		_, _ = fmt.Fprintf(os.Stdout, "  - %s\n", doc)
	}
	return nil
}
