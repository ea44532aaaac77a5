package normalizer

import "strings"

// PhoneErrorKind classifies a phone that could not be formatted.
type PhoneErrorKind string

const (
	PhoneErrNone          PhoneErrorKind = ""
	PhoneErrNoCountry     PhoneErrorKind = "no_country"
	PhoneErrInvalidLength PhoneErrorKind = "invalid_length"
)

// PhoneResult is the outcome of PhoneValidator.Validate. Normalized is nil
// for empty input and for numbers of the wrong length.
type PhoneResult struct {
	Normalized *string
	Modified   bool
	Err        PhoneErrorKind
}

type phoneRule struct {
	minDigits int
	maxDigits int
	chunks    []int
	// chunksMax replaces chunks for numbers of maxDigits length, when set.
	chunksMax []int
	sep       string
}

var phoneRules = map[string]phoneRule{
	"France":      {minDigits: 10, maxDigits: 10, chunks: []int{2, 2, 2, 2, 2}, sep: " "},
	"Belgique":    {minDigits: 9, maxDigits: 10, chunks: []int{3, 2, 2, 2}, chunksMax: []int{2, 2, 2, 2, 2}, sep: " "},
	"Suisse":      {minDigits: 9, maxDigits: 10, chunks: []int{3, 3, 2, 2}, sep: " "},
	"États-Unis":  {minDigits: 10, maxDigits: 10, chunks: []int{3, 3, 4}, sep: "-"},
	"Canada":      {minDigits: 10, maxDigits: 10, chunks: []int{3, 3, 4}, sep: "-"},
	"Royaume-Uni": {minDigits: 10, maxDigits: 11, chunks: []int{4, 3, 4}, sep: " "},
	"Allemagne":   {minDigits: 10, maxDigits: 11, chunks: []int{3, 3, 4}, sep: " "},
	"Espagne":     {minDigits: 9, maxDigits: 9, chunks: []int{3, 2, 2, 2}, sep: " "},
	"Italie":      {minDigits: 9, maxDigits: 10, chunks: []int{3, 3, 3}, sep: " "},
	"Portugal":    {minDigits: 9, maxDigits: 9, chunks: []int{3, 2, 2, 2}, sep: " "},
	"Pays-Bas":    {minDigits: 9, maxDigits: 10, chunks: []int{2, 3, 4}, sep: " "},
	"Maroc":       {minDigits: 9, maxDigits: 10, chunks: []int{4, 2, 2, 2}, sep: " "},
	"Algérie":     {minDigits: 9, maxDigits: 10, chunks: []int{4, 2, 2, 2}, sep: " "},
	"Tunisie":     {minDigits: 8, maxDigits: 8, chunks: []int{2, 3, 3}, sep: " "},
}

// PhoneValidator formats phone numbers by country convention.
type PhoneValidator struct{}

// NewPhoneValidator returns a PhoneValidator.
func NewPhoneValidator() *PhoneValidator { return &PhoneValidator{} }

// SupportsCountry reports whether country has formatting rules.
func (p *PhoneValidator) SupportsCountry(country string) bool {
	_, ok := phoneRules[country]
	return ok
}

// Validate strips phone to digits and formats it for country. Modified is
// true when the formatted value differs from the input text.
func (p *PhoneValidator) Validate(phone string, country *string) PhoneResult {
	if phone == "" {
		return PhoneResult{}
	}
	digits := DigitsOnly(phone)
	if digits == "" {
		return PhoneResult{}
	}

	var rule phoneRule
	ok := false
	if country != nil {
		rule, ok = phoneRules[*country]
	}
	if !ok {
		return PhoneResult{Normalized: &digits, Err: PhoneErrNoCountry}
	}

	if n := len(digits); n < rule.minDigits || n > rule.maxDigits {
		return PhoneResult{Err: PhoneErrInvalidLength}
	}

	formatted := rule.format(digits)
	return PhoneResult{Normalized: &formatted, Modified: formatted != phone}
}

func (r phoneRule) format(digits string) string {
	sizes := r.chunks
	if r.chunksMax != nil && len(digits) == r.maxDigits {
		sizes = r.chunksMax
	}

	chunks := make([]string, 0, len(sizes))
	start := 0
	for _, size := range sizes {
		if start+size <= len(digits) {
			chunks = append(chunks, digits[start:start+size])
			start += size
		}
	}
	if start < len(digits) {
		if len(chunks) > 0 {
			chunks[len(chunks)-1] += digits[start:]
		} else {
			chunks = append(chunks, digits[start:])
		}
	}
	// A number that cannot fill the template is left as raw digits.
	if len(chunks) < len(sizes) {
		return digits
	}
	return strings.Join(chunks, r.sep)
}

// DigitsOnly drops every non-digit character.
func DigitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
