package port

import (
	"context"

	"intakeflow/internal/domain"
)

// PageSplitter splits a PDF into single-page PDFs.
type PageSplitter interface {
	Split(pdf []byte, maxPages int) ([][]byte, error)
}

// OCRGateway recognizes the text of one single-page PDF.
type OCRGateway interface {
	Recognize(ctx context.Context, page []byte) (string, error)
}

// DomainChecker reports whether the domain of an email address can receive
// mail, with a human-readable diagnostic. It never fails.
type DomainChecker interface {
	CheckDomain(ctx context.Context, email string) (bool, string)
}

// DeliverabilityChecker asks a reputation service whether an address is
// deliverable. Any failure reports false.
type DeliverabilityChecker interface {
	IsDeliverable(ctx context.Context, email string) bool
}

// PhoneIntelligence looks up carrier data for a phone number. Failures yield
// an unknown (nil) validity.
type PhoneIntelligence interface {
	Verify(ctx context.Context, phone string) domain.PhoneIntel
}

// Geolocator resolves an IP address to a city and country.
type Geolocator interface {
	Locate(ctx context.Context, ip string) domain.Location
}
