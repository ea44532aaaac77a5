package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"intakeflow/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// customerColumns defines the customer export header row.
var customerColumns = []string{
	"référence",
	"nom",
	"prénom",
	"email",
	"téléphone",
	"profession",
	"ville",
	"pays",
}

// Writer wraps csv.Writer for exporting customers as ';'-delimited CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	cw := csv.NewWriter(w)
	cw.Comma = ';'
	return &Writer{csv: cw}
}

// WriteHeader writes the customer header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(customerColumns)
}

// WriteCustomers converts a batch of customers to CSV rows and writes them.
func (w *Writer) WriteCustomers(customers []domain.Customer) error {
	for i := range customers {
		if err := w.csv.Write(customerToRow(&customers[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

func customerToRow(c *domain.Customer) []string {
	return []string{
		deref(c.Reference),
		deref(c.LastName),
		deref(c.FirstName),
		deref(c.Email),
		deref(c.Phone),
		deref(c.Job),
		deref(c.City),
		deref(c.Country),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

const customerSheet = "Clients"

// CustomersXLSX renders customers as a single-sheet workbook.
func CustomersXLSX(customers []domain.Customer) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close() //nolint:errcheck

	if _, err := f.NewSheet(customerSheet); err != nil {
		return nil, fmt.Errorf("csvexport.CustomersXLSX: %w", err)
	}
	_ = f.DeleteSheet("Sheet1")
	idx, _ := f.GetSheetIndex(customerSheet)
	f.SetActiveSheet(idx)

	for i, h := range customerColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(customerSheet, cell, h)
	}
	for r := range customers {
		for col, v := range customerToRow(&customers[r]) {
			cell, _ := excelize.CoordinatesToCellName(col+1, r+2)
			_ = f.SetCellValue(customerSheet, cell, v)
		}
	}

	_ = f.SetColWidth(customerSheet, "A", "A", 14) // reference
	_ = f.SetColWidth(customerSheet, "B", "C", 20) // names
	_ = f.SetColWidth(customerSheet, "D", "D", 32) // email
	_ = f.SetColWidth(customerSheet, "E", "H", 18)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("csvexport.CustomersXLSX: %w", err)
	}
	return buf.Bytes(), nil
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a name for use in object keys and Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized download name.
// Format: {sanitized_name}_{YYYY-MM-DD}.{ext}
func BuildFilename(name, ext string) string {
	return fmt.Sprintf("%s_%s.%s", SanitizeFilename(name), time.Now().Format("2006-01-02"), ext)
}

// GeneratedCSVName names a target-form export produced from sourceName.
// Format: studio_parfums_{base}_{YYYYMMDD_HHMMSS}_{id8}.csv
func GeneratedCSVName(sourceName string, now time.Time, id uuid.UUID) string {
	base := strings.TrimSuffix(sourceName, ".pdf")
	base = strings.TrimSuffix(base, ".PDF")
	return fmt.Sprintf("studio_parfums_%s_%s_%s.csv",
		SanitizeFilename(base), now.Format("20060102_150405"), id.String()[:8])
}
