package normalizer

import (
	"strings"
	"unicode"

	"github.com/agext/levenshtein"
	"go.uber.org/zap"
)

const maxCountryDistance = 2

// CountryCorrector maps free-text country values to canonical French names.
type CountryCorrector struct{}

// NewCountryCorrector returns a CountryCorrector.
func NewCountryCorrector() *CountryCorrector { return &CountryCorrector{} }

// Correct tries, in order: exact canonical name, ISO code, known variant,
// fuzzy match. The first hit wins. Unmatched input comes back trimmed and
// uncorrected.
func (c *CountryCorrector) Correct(country string) (string, bool) {
	if country == "" {
		return country, false
	}
	trimmed := strings.TrimSpace(country)
	if contains(validCountries, trimmed) {
		return trimmed, false
	}

	if len([]rune(trimmed)) <= 3 && isAlpha(trimmed) {
		if name, ok := countryCodes[strings.ToUpper(trimmed)]; ok {
			return c.corrected(country, name)
		}
	}

	lower := strings.ToLower(trimmed)
	if name, ok := countryVariants[lower]; ok {
		return c.corrected(country, name)
	}

	best, bestDist := "", maxCountryDistance+1
	for _, valid := range validCountries {
		if d := levenshtein.Distance(lower, strings.ToLower(valid), nil); d < bestDist {
			best, bestDist = valid, d
		}
	}
	if best != "" {
		return c.corrected(country, best)
	}
	return trimmed, false
}

// IsCanonical reports whether country is already a canonical name.
func (c *CountryCorrector) IsCanonical(country string) bool {
	return contains(validCountries, country)
}

func (c *CountryCorrector) corrected(from, to string) (string, bool) {
	zap.L().Debug("normalizer.CountryCorrector: corrected", zap.String("from", from), zap.String("to", to))
	return to, true
}

func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
