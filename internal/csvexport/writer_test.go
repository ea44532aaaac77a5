package csvexport_test

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"intakeflow/internal/csvexport"
	"intakeflow/internal/domain"
)

func strPtr(s string) *string { return &s }

func sampleCustomers() []domain.Customer {
	return []domain.Customer{
		{
			ID:        uuid.New(),
			Reference: strPtr("202201001"),
			LastName:  strPtr("Dupont"),
			FirstName: strPtr("Marie"),
			Email:     strPtr("marie@gmail.com"),
			Phone:     strPtr("06 12 34 56 78"),
			Job:       strPtr("Parfumeuse"),
			City:      strPtr("Montreuil"),
			Country:   strPtr("France"),
		},
		{ID: uuid.New(), LastName: strPtr("Martin")},
	}
}

func TestWriter_Customers(t *testing.T) {
	var buf bytes.Buffer
	w := csvexport.NewWriter(&buf)
	require.NoError(t, w.WriteHeader())
	require.NoError(t, w.WriteCustomers(sampleCustomers()))
	w.Flush()
	require.NoError(t, w.Error())

	r := csv.NewReader(&buf)
	r.Comma = ';'
	rows, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"référence", "nom", "prénom", "email", "téléphone", "profession", "ville", "pays"}, rows[0])
	assert.Equal(t, []string{"202201001", "Dupont", "Marie", "marie@gmail.com", "06 12 34 56 78", "Parfumeuse", "Montreuil", "France"}, rows[1])
	assert.Equal(t, []string{"", "Martin", "", "", "", "", "", ""}, rows[2])
	assert.NotContains(t, buf.String(), "\r\n")
}

func TestCustomersXLSX(t *testing.T) {
	data, err := csvexport.CustomersXLSX(sampleCustomers())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close() //nolint:errcheck

	rows, err := f.GetRows("Clients")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "référence", rows[0][0])
	assert.Equal(t, "Dupont", rows[1][1])
	assert.Equal(t, "Martin", rows[2][1])
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "scan_mars_2024", csvexport.SanitizeFilename("scan mars 2024!!"))
	assert.Equal(t, "a_b", csvexport.SanitizeFilename("__a___b__"))
}

func TestGeneratedCSVName(t *testing.T) {
	id := uuid.MustParse("12345678-9abc-def0-1234-56789abcdef0")
	now := time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC)
	assert.Equal(t, "studio_parfums_lot_mars_20240305_140709_12345678.csv",
		csvexport.GeneratedCSVName("lot mars.pdf", now, id))
}
