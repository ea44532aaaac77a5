package extractor

import (
	"regexp"
	"strings"

	"intakeflow/internal/domain"
)

// keywordWindow is how many characters after a keyword are scanned for numbers.
const keywordWindow = 200

var numberRe = regexp.MustCompile(`\b\d+\b`)

// BlankSheet extracts the month/year header and the numbered lists of a
// blank tally sheet.
func (e *Extractor) BlankSheet(text string) domain.BlankSheetFields {
	return domain.BlankSheetFields{
		MonthYear:    monthYear(text),
		MissingForms: numbersAfter(text, "fiches manquantes"),
		Duplicates:   numbersAfter(text, "doublons"),
		Phones:       numbersAfter(text, "tel"),
		Mails:        numbersAfter(text, "mail"),
	}
}

// numbersAfter returns the distinct numeric tokens found in the window that
// follows the first occurrence of keyword, in first-seen order.
func numbersAfter(text, keyword string) []string {
	lower := strings.ToLower(text)
	pos := strings.Index(lower, keyword)
	if pos < 0 {
		return []string{}
	}
	window := []rune(lower[pos+len(keyword):])
	if len(window) > keywordWindow {
		window = window[:keywordWindow]
	}

	seen := make(map[string]bool)
	out := []string{}
	for _, n := range numberRe.FindAllString(string(window), -1) {
		if seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}
