package normalizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"intakeflow/internal/normalizer"
)

func strPtr(s string) *string { return &s }

func TestPhoneValidator_Validate(t *testing.T) {
	tests := []struct {
		name     string
		phone    string
		country  *string
		want     *string
		modified bool
		errKind  normalizer.PhoneErrorKind
	}{
		{"france raw digits", "0612345678", strPtr("France"), strPtr("06 12 34 56 78"), true, normalizer.PhoneErrNone},
		{"france already formatted", "06 12 34 56 78", strPtr("France"), strPtr("06 12 34 56 78"), false, normalizer.PhoneErrNone},
		{"france too short", "061234", strPtr("France"), nil, false, normalizer.PhoneErrInvalidLength},
		{"no country", "0612345678", nil, strPtr("0612345678"), false, normalizer.PhoneErrNoCountry},
		{"unsupported country", "06-12", strPtr("Narnia"), strPtr("0612"), false, normalizer.PhoneErrNoCountry},
		{"empty", "", strPtr("France"), nil, false, normalizer.PhoneErrNone},
		{"no digits", "abc", strPtr("France"), nil, false, normalizer.PhoneErrNone},
		{"united states", "(555) 123-4567", strPtr("États-Unis"), strPtr("555-123-4567"), true, normalizer.PhoneErrNone},
		{"belgium nine digits", "012345678", strPtr("Belgique"), strPtr("012 34 56 78"), true, normalizer.PhoneErrNone},
		{"belgium ten digits", "0412345678", strPtr("Belgique"), strPtr("04 12 34 56 78"), true, normalizer.PhoneErrNone},
		{"uk eleven digits", "02071234567", strPtr("Royaume-Uni"), strPtr("0207 123 4567"), true, normalizer.PhoneErrNone},
		{"uk short template falls back to digits", "0207123456", strPtr("Royaume-Uni"), strPtr("0207123456"), false, normalizer.PhoneErrNone},
		{"tunisia", "20123456", strPtr("Tunisie"), strPtr("20 123 456"), true, normalizer.PhoneErrNone},
	}
	v := normalizer.NewPhoneValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := v.Validate(tt.phone, tt.country)
			assert.Equal(t, tt.want, got.Normalized)
			assert.Equal(t, tt.modified, got.Modified)
			assert.Equal(t, tt.errKind, got.Err)
		})
	}
}

func TestCountryCorrector_Correct(t *testing.T) {
	tests := []struct {
		in        string
		want      string
		corrected bool
	}{
		{"France", "France", false},
		{"  France ", "France", false},
		{"FR", "France", true},
		{"fr", "France", true},
		{"usa", "États-Unis", true},
		{"United States", "États-Unis", true},
		{"Holland", "Pays-Bas", true},
		{"coree du sud", "Corée du Sud", true},
		{"Frence", "France", true},
		{"Allemagn", "Allemagne", true},
		{"Narnia", "Narnia", false},
		{"", "", false},
	}
	c := normalizer.NewCountryCorrector()
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, corrected := c.Correct(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.corrected, corrected)
		})
	}
}

func TestCountryCorrector_CanonicalIsFixedPoint(t *testing.T) {
	c := normalizer.NewCountryCorrector()
	for _, in := range []string{"FR", "Frence", "holland", "USA"} {
		first, _ := c.Correct(in)
		second, corrected := c.Correct(first)
		assert.Equal(t, first, second)
		assert.False(t, corrected)
		assert.True(t, c.IsCanonical(second))
	}
}

func TestCityNormalizer_Normalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"93100 MONTREUIL", "Montreuil"},
		{"Paris 75001", "Paris"},
		{"aix-en-provence", "Aix-en-Provence"},
		{"saint-germain-en-laye", "Saint-Germain-en-Laye"},
		{"l'haÿ-les-roses", "L'Haÿ-les-Roses"},
		{"boulogne-billancourt", "Boulogne-Billancourt"},
		{"le havre", "Le Havre"},
		{"  saint   denis ", "Saint Denis"},
		{"75001", ""},
		{"", ""},
	}
	n := normalizer.NewCityNormalizer()
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, n.Normalize(tt.in))
		})
	}
}
