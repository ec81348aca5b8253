package ingestion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText_Empty(t *testing.T) {
	assert.Equal(t, "", CleanText(""))
	assert.Equal(t, "", CleanText("   \n\t\n  "))
}

func TestCleanText_NormalizesLineEndings(t *testing.T) {
	got := CleanText("line one\r\nline two\rline three")
	assert.Equal(t, "line one\nline two\nline three", got)
}

func TestCleanText_CollapsesInternalSpaces(t *testing.T) {
	got := CleanText("The  company   shall  maintain a register.")
	assert.Equal(t, "The company shall maintain a register.", got)
}

func TestCleanText_PreservesIndentation(t *testing.T) {
	got := CleanText("Title line\n    indented  clause text")
	assert.Equal(t, "Title line\n    indented clause text", got)
}

func TestCleanText_PreservesBullets(t *testing.T) {
	got := CleanText("- first item\n  - nested item")
	assert.Equal(t, "- first item\n  - nested item", got)
}

func TestCleanText_ReducesBlankLineRuns(t *testing.T) {
	got := CleanText("first\n\n\n\n\nsecond")
	assert.Equal(t, "first\n\nsecond", got)
}

func TestCleanLegalText_FlattensWhitespace(t *testing.T) {
	got := CleanLegalText("Article 1.\n\n\tThe   company shall comply.")
	assert.Equal(t, "Article 1. The company shall comply.", got)
}

func TestCleanLegalText_KeepsLegalPunctuation(t *testing.T) {
	got := CleanLegalText(`Section 2.1: duties (a) include; see [Schedule 1] - the "Rules".`)
	assert.Contains(t, got, "2.1:")
	assert.Contains(t, got, "(a)")
	assert.Contains(t, got, "[Schedule 1]")
	assert.Contains(t, got, `"Rules"`)
}

func TestCleanLegalText_DropsNoise(t *testing.T) {
	got := CleanLegalText("Fees £500 → payable © ADGM")
	assert.NotContains(t, got, "£")
	assert.NotContains(t, got, "→")
	assert.NotContains(t, got, "©")
	assert.Contains(t, got, "500")
	assert.Contains(t, got, "ADGM")
}
