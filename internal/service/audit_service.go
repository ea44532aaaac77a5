package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"intakeflow/internal/domain"
	"intakeflow/internal/port"
)

// AuditService records logins with the location of the client address.
type AuditService interface {
	RecordLogin(ctx context.Context, username, ip string) (*domain.LoginEvent, error)
	ListLogins(ctx context.Context, offset, limit int) ([]domain.LoginEvent, int, error)
}

type auditService struct {
	events  port.LoginEventRepository
	locator port.Geolocator
}

// NewAuditService creates a new AuditService implementation.
func NewAuditService(events port.LoginEventRepository, locator port.Geolocator) AuditService {
	return &auditService{events: events, locator: locator}
}

func (s *auditService) RecordLogin(ctx context.Context, username, ip string) (*domain.LoginEvent, error) {
	loc := s.locator.Locate(ctx, ip)
	event := &domain.LoginEvent{
		Username:  strings.TrimSpace(username),
		IPAddress: ip,
		City:      loc.City,
		Country:   loc.Country,
	}
	if err := s.events.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("auditService.RecordLogin: %w", err)
	}
	zap.L().Info("auditService.RecordLogin",
		zap.String("username", event.Username), zap.String("ip", ip),
		zap.String("city", loc.City), zap.String("country", loc.Country))
	return event, nil
}

func (s *auditService) ListLogins(ctx context.Context, offset, limit int) ([]domain.LoginEvent, int, error) {
	return s.events.List(ctx, offset, limit)
}
