// Package extractor turns classified page text into a field mapping.
package extractor

import (
	"regexp"
	"strings"

	"intakeflow/internal/domain"
)

// headerLines is how many leading lines are searched for header tokens
// (identifier, month/year).
const headerLines = 5

// Extractor pulls structured fields out of OCR text. It is stateless and
// safe for concurrent use.
type Extractor struct{}

// New returns an Extractor.
func New() *Extractor { return &Extractor{} }

// Extract returns the field mapping for text of the given type. Every key of
// the type's schema is present; absent values are nil. Unknown pages map to
// their raw text only.
func (e *Extractor) Extract(text string, docType domain.DocumentType) map[string]any {
	switch docType {
	case domain.DocumentTypeBlankSheet:
		return e.BlankSheet(text).Map()
	case domain.DocumentTypeTargetForm:
		return e.TargetForm(text).Map()
	default:
		return map[string]any{domain.FieldRawText: text}
	}
}

func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, "\r")
	}
	return lines
}

func firstLines(text string, n int) []string {
	lines := splitLines(text)
	if len(lines) > n {
		lines = lines[:n]
	}
	return lines
}

var monthYearPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(janvier|février|mars|avril|mai|juin|juillet|août|septembre|octobre|novembre|décembre)\s+\d{4}\b`),
	regexp.MustCompile(`\b\d{1,2}[/-]\d{4}\b`),
}

// monthYear returns the first month/year token found in the header lines.
func monthYear(text string) *string {
	for _, line := range firstLines(text, headerLines) {
		for _, re := range monthYearPatterns {
			if m := re.FindString(line); m != "" {
				return &m
			}
		}
	}
	return nil
}
