package probe

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestError_Message(t *testing.T) {
	underlying := errors.New("connection refused")

	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name:     "connect failure with cause",
			err:      newConnectError("10.0.0.1", underlying),
			contains: []string{"10.0.0.1", "connect failed", "connection refused"},
		},
		{
			name:     "missing nonce without cause",
			err:      newNoNonceError("10.0.0.2", nil),
			contains: []string{"10.0.0.2", "no nonce"},
		},
		{
			name:     "query failure names the query",
			err:      newQueryError("10.0.0.3", "bver", underlying),
			contains: []string{"10.0.0.3", "query failed", `"bver"`},
		},
		{
			name:     "filter mismatch",
			err:      newFilterMismatchError("10.0.0.4"),
			contains: []string{"10.0.0.4", "filter mismatch"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, want := range tt.contains {
				if !strings.Contains(msg, want) {
					t.Errorf("Error() = %q, missing %q", msg, want)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	underlying := errors.New("boom")
	err := newQueryError("10.0.0.1", "temp", underlying)

	if !errors.Is(err, underlying) {
		t.Error("errors.Is did not find the underlying error")
	}
}

func TestReasonOf(t *testing.T) {
	err := newNoNonceError("10.0.0.1", nil)

	r, ok := ReasonOf(err)
	if !ok || r != ReasonNoNonce {
		t.Errorf("ReasonOf = (%v, %v), want (ReasonNoNonce, true)", r, ok)
	}

	// Works through wrapping
	wrapped := fmt.Errorf("session aborted: %w", err)
	r, ok = ReasonOf(wrapped)
	if !ok || r != ReasonNoNonce {
		t.Errorf("ReasonOf(wrapped) = (%v, %v), want (ReasonNoNonce, true)", r, ok)
	}

	if _, ok := ReasonOf(errors.New("plain")); ok {
		t.Error("ReasonOf matched a non-probe error")
	}
	if _, ok := ReasonOf(nil); ok {
		t.Error("ReasonOf matched nil")
	}
}

func TestReasonPredicates(t *testing.T) {
	tests := []struct {
		err  error
		pred func(error) bool
		want bool
	}{
		{newConnectError("a", nil), IsConnectFailed, true},
		{newConnectError("a", nil), IsNoNonce, false},
		{newNoNonceError("a", nil), IsNoNonce, true},
		{newQueryError("a", "free", nil), IsQueryFailed, true},
		{newFilterMismatchError("a"), IsFilterMismatch, true},
		{errors.New("plain"), IsFilterMismatch, false},
	}

	for i, tt := range tests {
		if got := tt.pred(tt.err); got != tt.want {
			t.Errorf("case %d: predicate = %v, want %v", i, got, tt.want)
		}
	}
}

func TestReason_String(t *testing.T) {
	tests := []struct {
		r    Reason
		want string
	}{
		{ReasonConnectFailed, "connect failed"},
		{ReasonNoNonce, "no nonce"},
		{ReasonQueryFailed, "query failed"},
		{ReasonFilterMismatch, "filter mismatch"},
		{Reason(99), "Reason(99)"},
	}

	for _, tt := range tests {
		if got := tt.r.String(); got != tt.want {
			t.Errorf("Reason(%d).String() = %q, want %q", tt.r, got, tt.want)
		}
	}
}
