package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/manish-env/shopify-order-tracking/internal/domain"
)

func TestKindOf(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")
	tests := []struct {
		name string
		err  error
		want domain.ErrorKind
	}{
		{"nil", nil, ""},
		{"plain_error_is_internal", cause, domain.KindInternalError},
		{"domain_error", domain.NewError(domain.KindNotFound, nil), domain.KindNotFound},
		{"wrapped_domain_error", fmt.Errorf("lookup: %w", domain.NewError(domain.KindRateLimited, nil)), domain.KindRateLimited},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := domain.KindOf(tt.err); got != tt.want {
				t.Fatalf("KindOf(%v) = %q, want %q", tt.err, got, tt.want)
			}
		})
	}
}

func TestError_UnwrapAndMessage(t *testing.T) {
	cause := errors.New("status 401")
	err := domain.NewError(domain.KindUpstreamAuthError, cause)

	if !errors.Is(err, cause) {
		t.Fatalf("errors.Is must see the cause")
	}
	if err.Message() != "Order service authentication failed" {
		t.Fatalf("unexpected message: %q", err.Message())
	}
	if err.Error() != "UpstreamAuthError: status 401" {
		t.Fatalf("unexpected error string: %q", err.Error())
	}
}

func TestErrorKind_UnknownFallsBackToInternalMessage(t *testing.T) {
	if got := domain.ErrorKind("Whatever").Message(); got != "Internal server error" {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestOrderCandidate_OrderNumber(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]string{"#1001": "1001", "1001": "1001", "": "", "##7": "#7"} {
		o := domain.OrderCandidate{DisplayName: in}
		if got := o.OrderNumber(); got != want {
			t.Fatalf("OrderNumber(%q) = %q, want %q", in, got, want)
		}
	}
}
