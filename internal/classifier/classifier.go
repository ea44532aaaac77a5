// Package classifier assigns a document type to OCR'd page text by keyword
// and pattern scoring.
package classifier

import (
	"math"
	"regexp"
	"strings"

	"intakeflow/internal/domain"
)

// decisionThreshold is the minimum score a type needs to win.
const decisionThreshold = 0.3

var (
	titlePhrases = []string{"le studio des parfums", "studio des parfums", "studio parfums"}

	blankSheetKeywords = []string{"fiches manquantes", "doublons", "tel", "mail"}

	monthYearPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(janvier|février|mars|avril|mai|juin|juillet|août|septembre|octobre|novembre|décembre)\s+\d{4}\b`),
		regexp.MustCompile(`\b\d{1,2}/\d{4}\b`),
		regexp.MustCompile(`\b\d{1,2}-\d{4}\b`),
	}
)

// Classifier scores text against the target-form and blank-sheet profiles.
// It holds no state; Classify is deterministic.
type Classifier struct{}

// New returns a Classifier.
func New() *Classifier { return &Classifier{} }

// Classify returns the document type and its confidence in [0,1]. UNKNOWN
// still reports the higher of the two scores.
func (c *Classifier) Classify(text string) (domain.DocumentType, float64) {
	lower := strings.ToLower(text)
	target := TargetFormScore(lower)
	blank := BlankSheetScore(lower)

	switch {
	case target > blank && target > decisionThreshold:
		return domain.DocumentTypeTargetForm, target
	case blank > target && blank > decisionThreshold:
		return domain.DocumentTypeBlankSheet, blank
	default:
		return domain.DocumentTypeUnknown, math.Max(target, blank)
	}
}

// TargetFormScore scores lowercased text against the target form profile.
func TargetFormScore(lower string) float64 {
	score := 0.0
	for _, phrase := range titlePhrases {
		if strings.Contains(lower, phrase) {
			score += 0.8
			break
		}
	}
	if strings.Contains(lower, "parfum") {
		score += 0.2
	}
	if strings.Contains(lower, "studio") {
		score += 0.2
	}
	return math.Min(score, 1.0)
}

// BlankSheetScore scores lowercased text against the blank sheet profile.
func BlankSheetScore(lower string) float64 {
	score := 0.0
	matched := 0
	for _, kw := range blankSheetKeywords {
		if strings.Contains(lower, kw) {
			score += 0.25
			matched++
		}
	}
	for _, re := range monthYearPatterns {
		if re.MatchString(lower) {
			score += 0.3
			break
		}
	}
	if matched >= 3 {
		score += 0.2
	}
	return math.Min(score, 1.0)
}
