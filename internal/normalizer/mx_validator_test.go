package normalizer_test

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"intakeflow/internal/normalizer"
)

type fakeResolver struct {
	mx      []*net.MX
	mxErr   error
	hosts   []string
	hostErr error
}

func (f *fakeResolver) LookupMX(context.Context, string) ([]*net.MX, error) { return f.mx, f.mxErr }

func (f *fakeResolver) LookupHost(context.Context, string) ([]string, error) {
	return f.hosts, f.hostErr
}

func TestMXValidator_CheckDomain(t *testing.T) {
	notFound := &net.DNSError{Err: "no such host", IsNotFound: true}
	tests := []struct {
		name      string
		email     string
		resolver  *fakeResolver
		wantValid bool
		wantDiag  string
	}{
		{
			name:  "records found",
			email: "a@example.com",
			resolver: &fakeResolver{mx: []*net.MX{
				{Host: "mx1.example.com."}, {Host: "mx2.example.com."}, {Host: "mx3.example.com."}, {Host: "mx4.example.com."},
			}},
			wantValid: true,
			wantDiag:  "MX records found: mx1.example.com., mx2.example.com., mx3.example.com.",
		},
		{"empty answer", "a@example.com", &fakeResolver{}, false, "No MX records found"},
		{"nxdomain", "a@nope.invalid", &fakeResolver{mxErr: notFound, hostErr: notFound}, false, "Domain does not exist (NXDOMAIN)"},
		{"no mx but host exists", "a@example.com", &fakeResolver{mxErr: notFound, hosts: []string{"93.184.216.34"}}, false, "Domain exists but has no MX records"},
		{"timeout", "a@example.com", &fakeResolver{mxErr: &net.DNSError{Err: "i/o timeout", IsTimeout: true}}, false, "DNS query timeout"},
		{"other error", "a@example.com", &fakeResolver{mxErr: errors.New("boom")}, false, "Error: boom"},
		{"no at sign", "example.com", &fakeResolver{}, false, "Invalid email format (no @)"},
		{"empty domain", "a@ ", &fakeResolver{}, false, "Empty domain"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := normalizer.NewMXValidatorWithResolver(tt.resolver, time.Second)
			valid, diag := v.CheckDomain(context.Background(), tt.email)
			assert.Equal(t, tt.wantValid, valid)
			assert.Equal(t, tt.wantDiag, diag)
		})
	}
}
