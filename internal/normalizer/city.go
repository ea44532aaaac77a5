package normalizer

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	cityDigitsRe    = regexp.MustCompile(`\d+`)
	cityWhitespace  = regexp.MustCompile(`\s+`)
	citySeparatorRe = regexp.MustCompile(`[ \-']`)
)

// cityLowercaseWords stay lowercase unless they open the name.
var cityLowercaseWords = map[string]bool{
	"de": true, "du": true, "des": true, "le": true, "la": true, "les": true, "l": true,
	"sur": true, "sous": true, "en": true, "aux": true, "et": true, "à": true,
	"lez": true, "lès": true,
}

// CityNormalizer cleans free-text city names.
type CityNormalizer struct{}

// NewCityNormalizer returns a CityNormalizer.
func NewCityNormalizer() *CityNormalizer { return &CityNormalizer{} }

// Normalize drops postal codes, collapses whitespace and applies French
// place-name capitalization. Separators (space, hyphen, apostrophe) are kept.
func (n *CityNormalizer) Normalize(city string) string {
	if city == "" {
		return city
	}
	cleaned := cityDigitsRe.ReplaceAllString(city, "")
	cleaned = strings.TrimSpace(cityWhitespace.ReplaceAllString(cleaned, " "))
	if cleaned == "" {
		return cleaned
	}

	// Casers are not safe for concurrent use.
	title := cases.Title(language.French)

	var b strings.Builder
	words := 0
	last := 0
	emit := func(word string) {
		if word == "" {
			return
		}
		lower := strings.ToLower(word)
		if words > 0 && cityLowercaseWords[lower] {
			b.WriteString(lower)
		} else {
			b.WriteString(title.String(lower))
		}
		words++
	}
	for _, loc := range citySeparatorRe.FindAllStringIndex(cleaned, -1) {
		emit(cleaned[last:loc[0]])
		b.WriteString(cleaned[loc[0]:loc[1]])
		last = loc[1]
	}
	emit(cleaned[last:])
	return b.String()
}
