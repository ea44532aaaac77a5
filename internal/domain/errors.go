package domain

import "errors"

var (
	ErrNotFound               = errors.New("resource not found")
	ErrCustomerNotFound       = errors.New("customer not found")
	ErrReviewNotFound         = errors.New("customer review not found")
	ErrFileNotFound           = errors.New("customer file not found")
	ErrGeneratedFileNotFound  = errors.New("generated file not found")
	ErrDuplicateCustomerEmail = errors.New("a customer with this email already exists")
	ErrUnsupportedFileType    = errors.New("unsupported file type")
	ErrFileTooLarge           = errors.New("file exceeds maximum allowed size")
	ErrUploadFailed           = errors.New("file upload to storage failed")
	ErrInvalidUpload          = errors.New("file must be a non-empty PDF")
	ErrMalformedDocument      = errors.New("document cannot be parsed as a PDF")
	ErrOCRService             = errors.New("ocr service error")
	ErrNoTargetForms          = errors.New("no target forms found in document")
	ErrInvalidReviewType      = errors.New("invalid review type")
	ErrEmptyUpdate            = errors.New("update contains no fields")
)
