package domain

// FileType represents the allowed file types for attachments.
type FileType string

const (
	FileTypePDF FileType = "pdf"
	FileTypeJPG FileType = "jpg"
	FileTypePNG FileType = "png"
)

// AllowedFileTypes maps FileType to its MIME content type.
var AllowedFileTypes = map[FileType]string{
	FileTypePDF: "application/pdf",
	FileTypeJPG: "image/jpeg",
	FileTypePNG: "image/png",
}

// AllowedContentTypes maps MIME content types back to FileType.
var AllowedContentTypes = map[string]FileType{
	"application/pdf": FileTypePDF,
	"image/jpeg":      FileTypeJPG,
	"image/png":       FileTypePNG,
}

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"pdf":  FileTypePDF,
	"jpg":  FileTypeJPG,
	"jpeg": FileTypeJPG,
	"png":  FileTypePNG,
}

// DocumentType is the classification assigned to one OCR'd page.
type DocumentType string

const (
	DocumentTypeBlankSheet DocumentType = "blank_sheet"
	DocumentTypeTargetForm DocumentType = "studio_parfums"
	DocumentTypeUnknown    DocumentType = "unknown"
)

// ReviewType explains why a candidate was held for manual review.
type ReviewType string

const (
	ReviewTypeDuplicateEmail ReviewType = "Doublon - Mail"
	ReviewTypeDuplicatePhone ReviewType = "Doublon - Phone"
	ReviewTypeDuplicateBoth  ReviewType = "Doublon - Mail et Phone"
	ReviewTypeInvalidPhone   ReviewType = "Erreur - Numéro"
	ReviewTypeModified       ReviewType = "Modifié"
)

// ValidReviewTypes is used to validate list filters.
var ValidReviewTypes = map[ReviewType]bool{
	ReviewTypeDuplicateEmail: true,
	ReviewTypeDuplicatePhone: true,
	ReviewTypeDuplicateBoth:  true,
	ReviewTypeInvalidPhone:   true,
	ReviewTypeModified:       true,
}

// Destination is the table a candidate record landed in.
type Destination string

const (
	DestinationCustomer Destination = "customer"
	DestinationReview   Destination = "customer_review"
)

// Extracted field keys shared by the extractor, the CSV generator and the
// reconciliation service.
const (
	FieldTitleDetected = "title_detected"
	FieldIdentifier    = "identifiant"
	FieldGender        = "genre"
	FieldLastName      = "nom"
	FieldFirstName     = "prenom"
	FieldDate          = "date"
	FieldCity          = "ville"
	FieldCountry       = "pays"
	FieldPhone         = "tel"
	FieldEmail         = "email"
	FieldProfession    = "profession"
	FieldBirthDate     = "date_naissance"
	FieldRawText       = "raw_text"

	FieldMonthYear    = "month_year"
	FieldMissingForms = "fiches_manquantes"
	FieldDuplicates   = "doublons"
	FieldPhones       = "tel"
	FieldMails        = "mail"
)
