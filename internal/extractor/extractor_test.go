package extractor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intakeflow/internal/domain"
	"intakeflow/internal/extractor"
)

const frenchForm = `LE STUDIO DES PARFUMS
202201005
Mr ☑  Mme ☐
Nom: Dupont Prénom: Marie
Date: 12/03/2024
Ville: 93100 Montreuil Pays: France
Tel: 06.12.34.56.78
Email: marie@gmail.com
Profession: Parfumeuse.
Date de naissance: 01/02/1990`

func strPtr(s string) *string { return &s }

func TestTargetForm_FrenchLabels(t *testing.T) {
	f := extractor.New().TargetForm(frenchForm)

	assert.True(t, f.TitleDetected)
	assert.Equal(t, strPtr("202201005"), f.Identifier)
	assert.Equal(t, strPtr("Mr"), f.Gender)
	assert.Equal(t, strPtr("Dupont"), f.LastName)
	assert.Equal(t, strPtr("Marie"), f.FirstName)
	assert.Equal(t, strPtr("12/03/2024"), f.Date)
	assert.Equal(t, strPtr("93100 Montreuil"), f.City)
	assert.Equal(t, strPtr("France"), f.Country)
	assert.Equal(t, strPtr("06 12 34 56 78"), f.Phone)
	assert.Equal(t, strPtr("marie@gmail.com"), f.Email)
	assert.Equal(t, strPtr("Parfumeuse"), f.Profession)
	assert.Equal(t, strPtr("01/02/1990"), f.BirthDate)
}

func TestTargetForm_EnglishLabels(t *testing.T) {
	text := "studio des parfums\nFirst name: Marie\nLast name: Dupont\nCity: Paris\nCountry: France\nPhone: +33 6 12 34 56 78"
	f := extractor.New().TargetForm(text)

	assert.Equal(t, strPtr("Marie"), f.FirstName)
	assert.Equal(t, strPtr("Dupont"), f.LastName)
	assert.Equal(t, strPtr("Paris"), f.City)
	assert.Equal(t, strPtr("France"), f.Country)
	assert.Equal(t, strPtr("+33 61 23 45 67 8"), f.Phone)
	assert.Nil(t, f.Email)
	assert.Nil(t, f.Gender)
}

func TestTargetForm_ValueEndsAtAnyKnownLabel(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		field func(domain.TargetFormFields) *string
		want  string
	}{
		{"first name before name", "Prénom: Jean Name: Dupont", func(f domain.TargetFormFields) *string { return f.FirstName }, "Jean"},
		{"name after first name", "Prénom: Jean Name: Dupont", func(f domain.TargetFormFields) *string { return f.LastName }, "Dupont"},
		{"last name before unaccented prenom", "Nom: Dupont Prenom: Jean", func(f domain.TargetFormFields) *string { return f.LastName }, "Dupont"},
		{"unaccented prenom", "Nom: Dupont Prenom: Jean", func(f domain.TargetFormFields) *string { return f.FirstName }, "Jean"},
		{"profession before birth date", "Profession: Chef Date de naissance: 01/02/1990", func(f domain.TargetFormFields) *string { return f.Profession }, "Chef"},
		{"birth date after profession", "Profession: Chef Date de naissance: 01/02/1990", func(f domain.TargetFormFields) *string { return f.BirthDate }, "01/02/1990"},
		{"profession before short birth label", "Profession: Chef Date naissance: 01/02/1990", func(f domain.TargetFormFields) *string { return f.Profession }, "Chef"},
		{"city before birthday", "Ville: Paris Birthday: 01/02/1990", func(f domain.TargetFormFields) *string { return f.City }, "Paris"},
		{"city before phone nb", "Ville: Lyon Phone nb: 0612345678", func(f domain.TargetFormFields) *string { return f.City }, "Lyon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.field(extractor.New().TargetForm(tt.text))
			require.NotNil(t, got)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestTargetForm_Identifier(t *testing.T) {
	tests := []struct {
		name string
		text string
		want *string
	}{
		{"nominal", "202201005", strPtr("202201005")},
		{"leading zero", "0202201005", strPtr("202201005")},
		{"six misread", "612201005", strPtr("2012201005")},
		{"sixty-two misread", "622010050", strPtr("2022010050")},
		{"spaced", "Ref 2022 01008", strPtr("202201008")},
		{"not in header", "a\nb\nc\nd\ne\n202201005", nil},
		{"no digits", "Nom: Dupont", nil},
		{"other prefix", "123456789", nil},
	}
	x := extractor.New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, x.TargetForm(tt.text).Identifier)
		})
	}
}

func TestTargetForm_Gender(t *testing.T) {
	x := extractor.New()
	assert.Equal(t, strPtr("Mme"), x.TargetForm("Mme ✓ Mlle").Gender)
	assert.Equal(t, strPtr("Ms"), x.TargetForm("[x] Ms. Smith").Gender)
	assert.Nil(t, x.TargetForm("Mr  Mme  Mlle").Gender)
}

func TestTargetForm_DegradesToNil(t *testing.T) {
	x := extractor.New()
	for _, text := range []string{"", "Nom:", "Nom:    ", "Tel: ::::", ":::\n\n::"} {
		assert.NotPanics(t, func() {
			f := x.TargetForm(text)
			assert.Nil(t, f.LastName)
			assert.Nil(t, f.Phone)
		})
	}
}

func TestExtract_TargetFormHasAllKeys(t *testing.T) {
	m := extractor.New().Extract("studio parfums", domain.DocumentTypeTargetForm)
	keys := []string{
		domain.FieldTitleDetected, domain.FieldIdentifier, domain.FieldGender, domain.FieldLastName,
		domain.FieldFirstName, domain.FieldDate, domain.FieldCity, domain.FieldCountry,
		domain.FieldPhone, domain.FieldEmail, domain.FieldProfession, domain.FieldBirthDate,
	}
	require.Len(t, m, len(keys))
	for _, k := range keys {
		assert.Contains(t, m, k)
	}
	assert.Equal(t, true, m[domain.FieldTitleDetected])
	assert.Nil(t, m[domain.FieldEmail])
}

func TestBlankSheet(t *testing.T) {
	text := "Mars 2024\nFiches manquantes: 3, 4, 3\nDoublons: 12 15\nTel: 7\nMail: 9"
	f := extractor.New().BlankSheet(text)

	assert.Equal(t, strPtr("Mars 2024"), f.MonthYear)
	assert.Equal(t, []string{"3", "4", "12", "15", "7", "9"}, f.MissingForms)
	assert.Equal(t, []string{"12", "15", "7", "9"}, f.Duplicates)
	assert.Equal(t, []string{"7", "9"}, f.Phones)
	assert.Equal(t, []string{"9"}, f.Mails)
}

func TestBlankSheet_NumericMonthAndMissingKeywords(t *testing.T) {
	f := extractor.New().BlankSheet("03/2024\nrien")

	assert.Equal(t, strPtr("03/2024"), f.MonthYear)
	assert.Equal(t, []string{}, f.MissingForms)
	assert.Equal(t, []string{}, f.Mails)
}

func TestExtract_Unknown(t *testing.T) {
	m := extractor.New().Extract("bruit", domain.DocumentTypeUnknown)
	assert.Equal(t, map[string]any{domain.FieldRawText: "bruit"}, m)
}
