package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"intakeflow/internal/domain"
)

// MockPageSplitter is a mock implementation of port.PageSplitter.
type MockPageSplitter struct {
	mock.Mock
}

func (m *MockPageSplitter) Split(pdf []byte, maxPages int) ([][]byte, error) {
	args := m.Called(pdf, maxPages)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([][]byte), args.Error(1)
}

// MockOCRGateway is a mock implementation of port.OCRGateway.
type MockOCRGateway struct {
	mock.Mock
}

func (m *MockOCRGateway) Recognize(ctx context.Context, page []byte) (string, error) {
	args := m.Called(ctx, page)
	return args.String(0), args.Error(1)
}

// MockDomainChecker is a mock implementation of port.DomainChecker.
type MockDomainChecker struct {
	mock.Mock
}

func (m *MockDomainChecker) CheckDomain(ctx context.Context, email string) (bool, string) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.String(1)
}

// MockDeliverabilityChecker is a mock implementation of port.DeliverabilityChecker.
type MockDeliverabilityChecker struct {
	mock.Mock
}

func (m *MockDeliverabilityChecker) IsDeliverable(ctx context.Context, email string) bool {
	args := m.Called(ctx, email)
	return args.Bool(0)
}

// MockPhoneIntelligence is a mock implementation of port.PhoneIntelligence.
type MockPhoneIntelligence struct {
	mock.Mock
}

func (m *MockPhoneIntelligence) Verify(ctx context.Context, phone string) domain.PhoneIntel {
	args := m.Called(ctx, phone)
	return args.Get(0).(domain.PhoneIntel)
}

// MockGeolocator is a mock implementation of port.Geolocator.
type MockGeolocator struct {
	mock.Mock
}

func (m *MockGeolocator) Locate(ctx context.Context, ip string) domain.Location {
	args := m.Called(ctx, ip)
	return args.Get(0).(domain.Location)
}

// MockReviewNotifier is a mock implementation of port.ReviewNotifier.
type MockReviewNotifier struct {
	mock.Mock
}

func (m *MockReviewNotifier) NotifyReviewQueue(ctx context.Context, digest domain.ReviewDigest) error {
	args := m.Called(ctx, digest)
	return args.Error(0)
}
