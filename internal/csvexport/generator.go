package csvexport

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"intakeflow/internal/domain"
)

// TargetFormColumns is the header row of the target-form CSV.
var TargetFormColumns = []string{
	domain.FieldIdentifier,
	domain.FieldGender,
	domain.FieldLastName,
	domain.FieldFirstName,
	domain.FieldDate,
	domain.FieldCity,
	domain.FieldCountry,
	domain.FieldPhone,
	domain.FieldEmail,
	domain.FieldProfession,
	domain.FieldBirthDate,
}

const (
	identifierLength = 9
	prefixLength     = 6
)

// Generator renders target-form pages as a ';'-delimited CSV, re-cleaning
// the raw extracted strings on the way.
type Generator struct{}

// NewGenerator returns a Generator.
func NewGenerator() *Generator { return &Generator{} }

// Generate writes the header and one row per target-form page. It also
// returns the number of data rows so callers can treat zero as not found.
func (g *Generator) Generate(pages []domain.ProcessedPage) ([]byte, int, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = ';'

	if err := w.Write(TargetFormColumns); err != nil {
		return nil, 0, fmt.Errorf("csvexport.Generate: %w", err)
	}

	var forms []domain.ProcessedPage
	for _, p := range pages {
		if p.DocumentType == domain.DocumentTypeTargetForm {
			forms = append(forms, p)
		}
	}
	prefix := detectPrefix(forms)

	for i, p := range forms {
		data := p.ExtractedData
		ident := cleanIdentifier(field(data, domain.FieldIdentifier))
		if ident == "" && prefix != "" {
			ident = fmt.Sprintf("%s%03d", prefix, i+1)
		}
		row := []string{
			ident,
			cleanSimple(field(data, domain.FieldGender)),
			cleanSimple(field(data, domain.FieldLastName)),
			cleanSimple(field(data, domain.FieldFirstName)),
			cleanDate(field(data, domain.FieldDate)),
			cleanCity(field(data, domain.FieldCity)),
			cleanCountry(field(data, domain.FieldCountry)),
			cleanPhone(field(data, domain.FieldPhone)),
			cleanEmail(field(data, domain.FieldEmail)),
			cleanSimple(field(data, domain.FieldProfession)),
			cleanDate(field(data, domain.FieldBirthDate)),
		}
		if err := w.Write(row); err != nil {
			return nil, 0, fmt.Errorf("csvexport.Generate: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, 0, fmt.Errorf("csvexport.Generate: %w", err)
	}
	return buf.Bytes(), len(forms), nil
}

func field(data map[string]any, key string) string {
	if v := domain.StringField(data, key); v != nil {
		return *v
	}
	return ""
}

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	nonDigitRe   = regexp.MustCompile(`\D`)

	emailRe    = regexp.MustCompile(`(?i)[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,}`)
	ocrEmailRe = regexp.MustCompile(`(?i)([A-Z0-9._%-]+(?:\s+[A-Z0-9._%-]+)*)\s*@\s*([A-Z0-9.-]+\.[A-Z]{2,})`)
	dateRe     = regexp.MustCompile(`(\d{1,2})[/-](\d{1,2})[/-](\d{2,4})`)

	cityLabelRe    = regexp.MustCompile(`(?i)ville\s*:\s*`)
	countryLabelRe = regexp.MustCompile(`(?i)pays\s*:\s*`)
	cityCutRe      = regexp.MustCompile(`(?i)pays\s*:`)
	countryCutRe   = regexp.MustCompile(`(?i)ville\s*:`)
)

// mergedLabelRe marks the start of a neighbouring field that OCR glued onto a value.
var mergedLabelRe = regexp.MustCompile(`(?i)(pays|ville|tel|email|profession|date|nom|prénom|date de naissance):`)

func cleanSimple(v string) string {
	v = whitespaceRe.ReplaceAllString(strings.TrimSpace(v), " ")
	if loc := mergedLabelRe.FindStringIndex(v); loc != nil {
		v = v[:loc[0]]
	}
	return strings.TrimSpace(v)
}

func cleanEmail(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}
	if m := emailRe.FindString(v); m != "" {
		return m
	}
	if m := ocrEmailRe.FindStringSubmatch(v); m != nil {
		return whitespaceRe.ReplaceAllString(m[1], "") + "@" + whitespaceRe.ReplaceAllString(m[2], "")
	}
	return ""
}

func cleanPhone(v string) string {
	if v == "" {
		return ""
	}
	digits := nonDigitRe.ReplaceAllString(v, "")
	switch {
	case len(digits) == 10 && strings.HasPrefix(digits, "0"):
		return pairs(digits)
	case len(digits) == 11 && strings.HasPrefix(digits, "33"):
		return "+33 " + pairs(digits[2:])
	default:
		return strings.TrimSpace(v)
	}
}

func pairs(digits string) string {
	out := make([]string, 0, len(digits)/2+1)
	for i := 0; i < len(digits); i += 2 {
		end := i + 2
		if end > len(digits) {
			end = len(digits)
		}
		out = append(out, digits[i:end])
	}
	return strings.Join(out, " ")
}

// cleanDate normalizes to DD/MM/YYYY. Ambiguous dates are read day first.
func cleanDate(v string) string {
	if v == "" {
		return ""
	}
	m := dateRe.FindStringSubmatch(v)
	if m == nil {
		return strings.TrimSpace(v)
	}
	p1, _ := strconv.Atoi(m[1])
	p2, _ := strconv.Atoi(m[2])
	year := m[3]
	if len(year) == 2 {
		if y, _ := strconv.Atoi(year); y <= 30 {
			year = "20" + year
		} else {
			year = "19" + year
		}
	}
	day, month := p1, p2
	if p1 <= 12 && p2 > 12 {
		day, month = p2, p1
	}
	return fmt.Sprintf("%02d/%02d/%s", day, month, year)
}

func cleanCity(v string) string {
	if v == "" {
		return ""
	}
	v = cityLabelRe.ReplaceAllString(v, "")
	if loc := cityCutRe.FindStringIndex(v); loc != nil {
		v = v[:loc[0]]
	}
	return strings.TrimSpace(v)
}

func cleanCountry(v string) string {
	if v == "" {
		return ""
	}
	v = countryLabelRe.ReplaceAllString(v, "")
	if loc := countryCutRe.FindStringIndex(v); loc != nil {
		v = v[:loc[0]]
	}
	return strings.TrimSpace(v)
}

// cleanIdentifier keeps at most nine digits and forces the "20" prefix.
func cleanIdentifier(v string) string {
	digits := nonDigitRe.ReplaceAllString(v, "")
	if digits == "" {
		return ""
	}
	if len(digits) > identifierLength {
		digits = digits[:identifierLength]
	}
	if !strings.HasPrefix(digits, "20") {
		if len(digits) > 2 {
			digits = "20" + digits[2:]
		} else {
			digits = "20"
		}
	}
	return digits
}

// detectPrefix returns the six-digit prefix shared by the usable
// identifiers of the batch, or "" when there is none.
func detectPrefix(forms []domain.ProcessedPage) string {
	var idents []string
	for _, p := range forms {
		if id := cleanIdentifier(field(p.ExtractedData, domain.FieldIdentifier)); len(id) >= prefixLength {
			idents = append(idents, id)
		}
	}
	if len(idents) == 0 {
		return ""
	}
	prefix := idents[0]
	for _, id := range idents[1:] {
		i := 0
		for i < len(prefix) && i < len(id) && prefix[i] == id[i] {
			i++
		}
		prefix = prefix[:i]
	}
	if len(prefix) < prefixLength {
		return ""
	}
	return prefix[:prefixLength]
}
