package extractor

import (
	"regexp"
	"sort"
	"strings"

	"intakeflow/internal/domain"
)

var (
	titlePhrases = []string{"le studio des parfums", "studio des parfums", "studio parfums"}

	identifierRe       = regexp.MustCompile(`\b\d{8,10}\b`)
	spacedIdentifierRe = regexp.MustCompile(`\b(\d{4})\s+(\d{5})\b`)

	genderTokens = []string{"mr ", "mr.", "mme ", "mlle ", "ms.", "ms "}
	checkMarks   = []string{"☑", "✓", "✅", "[x]", " x "}

	trailingPunctRe = regexp.MustCompile(`[^\p{L}\p{N}_\s@./+-]+$`)
	phoneKeepRe     = regexp.MustCompile(`[^\d+]`)
)

// Label synonyms per field.
var (
	labelsFirstName  = []string{"prenom", "prénom", "first name"}
	labelsLastName   = []string{"nom", "last name", "name"}
	labelsDate       = []string{"date"}
	labelsCity       = []string{"ville", "city"}
	labelsCountry    = []string{"pays", "country"}
	labelsPhone      = []string{"tel", "phone", "phone nb"}
	labelsEmail      = []string{"email"}
	labelsProfession = []string{"profession"}
	labelsBirthDate  = []string{"date de naissance", "date naissance", "birthday"}
)

// allLabels is every known label, used to reject a short label that is the
// tail of a longer one ("name" inside "First name").
var allLabels = func() []string {
	var all []string
	for _, group := range [][]string{
		labelsFirstName, labelsLastName, labelsDate, labelsCity, labelsCountry,
		labelsPhone, labelsEmail, labelsProfession, labelsBirthDate,
	} {
		all = append(all, group...)
	}
	return all
}()

// terminatorLabels is the alternation of every known label, longest first.
// A value ends where one of them starts later on the same line.
var terminatorLabels = func() string {
	ordered := append([]string(nil), allLabels...)
	sort.SliceStable(ordered, func(i, j int) bool { return len(ordered[i]) > len(ordered[j]) })
	quoted := make([]string, len(ordered))
	for i, l := range ordered {
		quoted[i] = regexp.QuoteMeta(l)
	}
	return strings.Join(quoted, "|")
}()

var labelPatterns = map[string]*regexp.Regexp{}

func init() {
	for _, l := range allLabels {
		labelPatterns[l] = regexp.MustCompile(
			`(?i)(?:^|[^\p{L}])(` + regexp.QuoteMeta(l) + `)\s*:\s*([^:]+?)(?:\s+(?:` + terminatorLabels + `):|$)`,
		)
	}
}

// TargetForm extracts every field of the target intake form.
func (e *Extractor) TargetForm(text string) domain.TargetFormFields {
	lower := strings.ToLower(text)
	f := domain.TargetFormFields{
		Identifier: identifier(text),
		Gender:     gender(text),
		FirstName:  fieldValue(text, labelsFirstName),
		LastName:   fieldValue(text, labelsLastName),
		Date:       fieldValue(text, labelsDate),
		City:       fieldValue(text, labelsCity),
		Country:    fieldValue(text, labelsCountry),
		Email:      fieldValue(text, labelsEmail),
		Profession: fieldValue(text, labelsProfession),
		BirthDate:  fieldValue(text, labelsBirthDate),
	}
	for _, p := range titlePhrases {
		if strings.Contains(lower, p) {
			f.TitleDetected = true
			break
		}
	}
	if raw := fieldValue(text, labelsPhone); raw != nil {
		formatted := formatPhone(*raw)
		f.Phone = &formatted
	}
	return f
}

// identifier finds the form reference in the header lines. References always
// start with "20"; OCR commonly reads that prefix as "6", "06" or "020", or
// splits the number with a space.
func identifier(text string) *string {
	for _, line := range firstLines(text, headerLines) {
		for _, raw := range identifierRe.FindAllString(line, -1) {
			ident := strings.TrimLeft(raw, "0")
			var out string
			switch {
			case strings.HasPrefix(ident, "20"):
				out = ident
			case strings.HasPrefix(ident, "62"):
				out = "202" + ident[2:]
			case strings.HasPrefix(ident, "6"):
				out = "20" + ident[1:]
			default:
				continue
			}
			return &out
		}
		for _, m := range spacedIdentifierRe.FindAllStringSubmatch(line, -1) {
			combined := m[1] + m[2]
			if strings.HasPrefix(combined, "20") {
				return &combined
			}
		}
	}
	return nil
}

// gender returns the ticked salutation, if any line carries both a
// salutation and a check mark.
func gender(text string) *string {
	for _, line := range splitLines(text) {
		lower := strings.ToLower(line)
		if !containsAny(lower, genderTokens) || !containsAny(line, checkMarks) {
			continue
		}
		var g string
		switch {
		case containsAny(lower, []string{"mr ", "mr."}):
			g = "Mr"
		case strings.Contains(lower, "mme "):
			g = "Mme"
		case strings.Contains(lower, "mlle "):
			g = "Mlle"
		case containsAny(lower, []string{"ms.", "ms "}):
			g = "Ms"
		default:
			continue
		}
		return &g
	}
	return nil
}

// fieldValue scans lines for "label: value" using the longest labels first.
// The value stops at the next known label on the line or at end of line.
func fieldValue(text string, labels []string) *string {
	ordered := make([]string, len(labels))
	copy(ordered, labels)
	sort.SliceStable(ordered, func(i, j int) bool { return len(ordered[i]) > len(ordered[j]) })

	for _, line := range splitLines(text) {
		for _, label := range ordered {
			re := labelPatterns[label]
			for _, m := range re.FindAllStringSubmatchIndex(line, -1) {
				if shadowed(line, m[2], m[3]) {
					continue
				}
				value := strings.TrimSpace(line[m[4]:m[5]])
				value = trailingPunctRe.ReplaceAllString(value, "")
				value = strings.TrimSuffix(value, ".")
				value = strings.TrimSpace(value)
				if value == "" {
					return nil
				}
				return &value
			}
		}
	}
	return nil
}

// shadowed reports whether the label at line[start:end] is only the tail of
// a longer known label.
func shadowed(line string, start, end int) bool {
	matched := end - start
	prefix := strings.ToLower(line[:end])
	for _, l := range allLabels {
		if len(l) > matched && strings.HasSuffix(prefix, l) {
			return true
		}
	}
	return false
}

// formatPhone is a display-only pass: keep the international prefix and
// group the rest in pairs.
func formatPhone(raw string) string {
	clean := phoneKeepRe.ReplaceAllString(raw, "")
	var prefix, digits string
	switch {
	case strings.HasPrefix(clean, "+33"):
		prefix, digits = "+33 ", clean[3:]
	case strings.HasPrefix(clean, "0033"):
		prefix, digits = "0033 ", clean[4:]
	default:
		digits = clean
	}
	pairs := make([]string, 0, len(digits)/2+1)
	for i := 0; i < len(digits); i += 2 {
		end := i + 2
		if end > len(digits) {
			end = len(digits)
		}
		pairs = append(pairs, digits[i:end])
	}
	return prefix + strings.Join(pairs, " ")
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
