package normalizer

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"go.uber.org/zap"

	"intakeflow/internal/port"
)

// Resolver is the subset of *net.Resolver used by the MX validator.
type Resolver interface {
	LookupMX(ctx context.Context, name string) ([]*net.MX, error)
	LookupHost(ctx context.Context, host string) ([]string, error)
}

type mxValidator struct {
	resolver Resolver
	timeout  time.Duration
}

// NewMXValidator returns a DomainChecker that resolves MX records with the
// system resolver.
func NewMXValidator(timeout time.Duration) port.DomainChecker {
	return NewMXValidatorWithResolver(net.DefaultResolver, timeout)
}

// NewMXValidatorWithResolver returns a DomainChecker using r.
func NewMXValidatorWithResolver(r Resolver, timeout time.Duration) port.DomainChecker {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &mxValidator{resolver: r, timeout: timeout}
}

// CheckDomain reports whether the domain of email has MX records.
func (v *mxValidator) CheckDomain(ctx context.Context, email string) (bool, string) {
	parts := strings.Split(email, "@")
	if len(parts) < 2 {
		return false, "Invalid email format (no @)"
	}
	dom := strings.ToLower(strings.TrimSpace(parts[1]))
	if dom == "" {
		return false, "Empty domain"
	}
	ok, diag := v.hasMX(ctx, dom)
	zap.L().Debug("mxValidator.CheckDomain", zap.String("domain", dom), zap.Bool("valid", ok), zap.String("diagnostic", diag))
	return ok, diag
}

func (v *mxValidator) hasMX(ctx context.Context, dom string) (bool, string) {
	ctx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	records, err := v.resolver.LookupMX(ctx, dom)
	if err == nil {
		if len(records) == 0 {
			return false, "No MX records found"
		}
		hosts := make([]string, 0, 3)
		for _, mx := range records {
			if len(hosts) == 3 {
				break
			}
			hosts = append(hosts, mx.Host)
		}
		return true, "MX records found: " + strings.Join(hosts, ", ")
	}

	var dnsErr *net.DNSError
	switch {
	case errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &dnsErr) && dnsErr.IsTimeout):
		return false, "DNS query timeout"
	case errors.As(err, &dnsErr) && dnsErr.IsNotFound:
		// The resolver reports NXDOMAIN and NODATA alike; an address lookup
		// tells them apart.
		if addrs, hostErr := v.resolver.LookupHost(ctx, dom); hostErr == nil && len(addrs) > 0 {
			return false, "Domain exists but has no MX records"
		}
		return false, "Domain does not exist (NXDOMAIN)"
	default:
		return false, fmt.Sprintf("Error: %v", err)
	}
}
