package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ProcessedPage is the classification and extraction result for one page.
type ProcessedPage struct {
	PageNumber    int            `json:"page_number"`
	DocumentType  DocumentType   `json:"document_type"`
	Confidence    float64        `json:"confidence"`
	RawText       string         `json:"raw_text"`
	ExtractedData map[string]any `json:"extracted_data"`
}

// BatchSummary aggregates page outcomes for one uploaded document.
type BatchSummary struct {
	TotalPages       int `json:"total_pages"`
	BlankSheets      int `json:"blank_sheets"`
	TargetForms      int `json:"studio_parfums_sheets"`
	UnknownSheets    int `json:"unknown_sheets"`
	ProcessingErrors int `json:"processing_errors"`
}

// BatchResult is the outcome of running the page pipeline over one PDF.
type BatchResult struct {
	FileName       string          `json:"filename"`
	TotalPages     int             `json:"total_pages"`
	ProcessedPages []ProcessedPage `json:"processed_pages"`
	Summary        BatchSummary    `json:"summary"`

	// Pages holds the single-page PDFs in page order. Not serialized.
	Pages [][]byte `json:"-"`
}

// CandidateRecord is the normalized projection of a target-form page.
type CandidateRecord struct {
	FirstName      *string `json:"first_name"`
	LastName       *string `json:"last_name"`
	Email          *string `json:"email"`
	Phone          *string `json:"phone"`
	Job            *string `json:"job"`
	City           *string `json:"city"`
	Country        *string `json:"country"`
	Reference      *string `json:"reference"`
	Date           *string `json:"date"`
	VerifiedEmail  *bool   `json:"verified_email"`
	VerifiedDomain *bool   `json:"verified_domain"`
	VerifiedPhone  *bool   `json:"verified_phone"`
}

// Customer is an accepted, deduplicated identity record.
type Customer struct {
	ID             uuid.UUID `db:"id" json:"id"`
	FirstName      *string   `db:"first_name" json:"first_name"`
	LastName       *string   `db:"last_name" json:"last_name"`
	Email          *string   `db:"email" json:"email"`
	Phone          *string   `db:"phone" json:"phone"`
	Job            *string   `db:"job" json:"job"`
	City           *string   `db:"city" json:"city"`
	Country        *string   `db:"country" json:"country"`
	Reference      *string   `db:"reference" json:"reference"`
	Date           *string   `db:"date" json:"date"`
	VerifiedEmail  *bool     `db:"verified_email" json:"verified_email"`
	VerifiedDomain *bool     `db:"verified_domain" json:"verified_domain"`
	VerifiedPhone  *bool     `db:"verified_phone" json:"verified_phone"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// CustomerReview is a candidate held for manual reconciliation.
type CustomerReview struct {
	ID             uuid.UUID  `db:"id" json:"id"`
	FirstName      *string    `db:"first_name" json:"first_name"`
	LastName       *string    `db:"last_name" json:"last_name"`
	Email          *string    `db:"email" json:"email"`
	Phone          *string    `db:"phone" json:"phone"`
	Job            *string    `db:"job" json:"job"`
	City           *string    `db:"city" json:"city"`
	Country        *string    `db:"country" json:"country"`
	Reference      *string    `db:"reference" json:"reference"`
	Date           *string    `db:"date" json:"date"`
	VerifiedEmail  *bool      `db:"verified_email" json:"verified_email"`
	VerifiedDomain *bool      `db:"verified_domain" json:"verified_domain"`
	VerifiedPhone  *bool      `db:"verified_phone" json:"verified_phone"`
	Type           ReviewType `db:"type" json:"type"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`
}

// CustomerFromCandidate builds an unsaved Customer from a candidate.
func CustomerFromCandidate(c *CandidateRecord) *Customer {
	return &Customer{
		FirstName:      c.FirstName,
		LastName:       c.LastName,
		Email:          c.Email,
		Phone:          c.Phone,
		Job:            c.Job,
		City:           c.City,
		Country:        c.Country,
		Reference:      c.Reference,
		Date:           c.Date,
		VerifiedEmail:  c.VerifiedEmail,
		VerifiedDomain: c.VerifiedDomain,
		VerifiedPhone:  c.VerifiedPhone,
	}
}

// ReviewFromCandidate builds an unsaved CustomerReview from a candidate.
func ReviewFromCandidate(c *CandidateRecord, reviewType ReviewType) *CustomerReview {
	return &CustomerReview{
		FirstName:      c.FirstName,
		LastName:       c.LastName,
		Email:          c.Email,
		Phone:          c.Phone,
		Job:            c.Job,
		City:           c.City,
		Country:        c.Country,
		Reference:      c.Reference,
		Date:           c.Date,
		VerifiedEmail:  c.VerifiedEmail,
		VerifiedDomain: c.VerifiedDomain,
		VerifiedPhone:  c.VerifiedPhone,
		Type:           reviewType,
	}
}

// PromoteReview copies every non-identity field of a review into a new Customer.
func PromoteReview(r *CustomerReview) *Customer {
	return &Customer{
		FirstName:      r.FirstName,
		LastName:       r.LastName,
		Email:          r.Email,
		Phone:          r.Phone,
		Job:            r.Job,
		City:           r.City,
		Country:        r.Country,
		Reference:      r.Reference,
		Date:           r.Date,
		VerifiedEmail:  r.VerifiedEmail,
		VerifiedDomain: r.VerifiedDomain,
		VerifiedPhone:  r.VerifiedPhone,
	}
}

// CustomerFile is an attachment owned by exactly one of a customer or a
// review record.
type CustomerFile struct {
	ID               uuid.UUID  `db:"id" json:"id"`
	CustomerID       *uuid.UUID `db:"customer_id" json:"customer_id"`
	CustomerReviewID *uuid.UUID `db:"customer_review_id" json:"customer_review_id"`
	FileName         string     `db:"file_name" json:"file_name"`
	FileType         FileType   `db:"file_type" json:"file_type"`
	FileSize         int64      `db:"file_size" json:"file_size"`
	ContentType      string     `db:"content_type" json:"content_type"`
	S3Bucket         string     `db:"s3_bucket" json:"-"`
	S3Key            string     `db:"s3_key" json:"-"`
	UploadedAt       time.Time  `db:"uploaded_at" json:"uploaded_at"`
}

// GeneratedFile is a CSV export produced from an uploaded document.
type GeneratedFile struct {
	ID          uuid.UUID `db:"id" json:"id"`
	FileName    string    `db:"file_name" json:"filename"`
	SourceName  string    `db:"source_name" json:"source_name"`
	TargetForms int       `db:"target_forms" json:"total_studio_parfums_found"`
	SizeBytes   int64     `db:"size_bytes" json:"size_bytes"`
	S3Bucket    string    `db:"s3_bucket" json:"-"`
	S3Key       string    `db:"s3_key" json:"-"`
	CreatedAt   time.Time `db:"created_at" json:"created"`
}

// LoginEvent is one audited login with its resolved location.
type LoginEvent struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Username  string    `db:"username" json:"username"`
	IPAddress string    `db:"ip_address" json:"ip_address"`
	City      string    `db:"city" json:"city"`
	Country   string    `db:"country" json:"country"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// IngestOutcome records where one target-form page landed.
type IngestOutcome struct {
	PageNumber  int         `json:"page_number"`
	RecordID    uuid.UUID   `json:"record_id"`
	Destination Destination `json:"destination"`
	ReviewType  ReviewType  `json:"review_type,omitempty"`
	Error       string      `json:"error,omitempty"`
}

// IngestReport is the outcome of ingesting every target-form page of a PDF.
type IngestReport struct {
	FileName  string          `json:"filename"`
	Summary   BatchSummary    `json:"summary"`
	Outcomes  []IngestOutcome `json:"outcomes"`
	Customers int             `json:"customers_created"`
	Reviews   int             `json:"reviews_created"`
}

// TargetFormFields is the typed view of a target-form extraction.
type TargetFormFields struct {
	TitleDetected bool
	Identifier    *string
	Gender        *string
	LastName      *string
	FirstName     *string
	Date          *string
	City          *string
	Country       *string
	Phone         *string
	Email         *string
	Profession    *string
	BirthDate     *string
}

// Map returns the extraction mapping with every key present.
func (f TargetFormFields) Map() map[string]any {
	return map[string]any{
		FieldTitleDetected: f.TitleDetected,
		FieldIdentifier:    nullable(f.Identifier),
		FieldGender:        nullable(f.Gender),
		FieldLastName:      nullable(f.LastName),
		FieldFirstName:     nullable(f.FirstName),
		FieldDate:          nullable(f.Date),
		FieldCity:          nullable(f.City),
		FieldCountry:       nullable(f.Country),
		FieldPhone:         nullable(f.Phone),
		FieldEmail:         nullable(f.Email),
		FieldProfession:    nullable(f.Profession),
		FieldBirthDate:     nullable(f.BirthDate),
	}
}

// BlankSheetFields is the typed view of a blank-sheet extraction.
type BlankSheetFields struct {
	MonthYear    *string
	MissingForms []string
	Duplicates   []string
	Phones       []string
	Mails        []string
}

// Map returns the extraction mapping with every key present.
func (f BlankSheetFields) Map() map[string]any {
	return map[string]any{
		FieldMonthYear:    nullable(f.MonthYear),
		FieldMissingForms: nonNil(f.MissingForms),
		FieldDuplicates:   nonNil(f.Duplicates),
		FieldPhones:       nonNil(f.Phones),
		FieldMails:        nonNil(f.Mails),
	}
}

// StringField reads a string value out of an extraction mapping. Missing
// keys, nil values, non-strings and blank strings all read as nil.
func StringField(fields map[string]any, key string) *string {
	v, ok := fields[key]
	if !ok || v == nil {
		return nil
	}
	var s string
	switch t := v.(type) {
	case string:
		s = t
	case *string:
		if t == nil {
			return nil
		}
		s = *t
	default:
		return nil
	}
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

func nullable(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
