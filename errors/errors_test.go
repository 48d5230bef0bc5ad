package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "detail only",
			err:  InvalidArgument(OpDispatch, "timeout_ms must be positive"),
			want: "[dispatch] invalid_argument: timeout_ms must be positive",
		},
		{
			name: "detail and cause",
			err:  RequestFailed(fmt.Errorf("dial tcp: connection refused")),
			want: "[dispatch] request_failed: request failed (caused by: dial tcp: connection refused)",
		},
		{
			name: "handle in detail",
			err:  InvalidHandle(OpRead, 0x100000001),
			want: "[read] invalid_handle: invalid or already-freed handle: 0x100000001",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Fatalf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestError_Message(t *testing.T) {
	err := RequestFailed(fmt.Errorf("no such host"))
	got := err.Message()
	if strings.Contains(got, "[") {
		t.Fatalf("Message() should not carry the bracketed prefix, got %q", got)
	}
	if !strings.Contains(got, "no such host") {
		t.Fatalf("Message() lost the cause, got %q", got)
	}

	if got := Shutdown(OpDispatch).Message(); got != "client has been shut down" {
		t.Fatalf("Message() = %q", got)
	}
}

func TestError_Is(t *testing.T) {
	timeoutA := Timeout(5)
	timeoutB := Timeout(5000)
	if !stderrors.Is(timeoutA, timeoutB) {
		t.Fatal("two timeout errors should match regardless of detail")
	}
	if stderrors.Is(timeoutA, Shutdown(OpDispatch)) {
		t.Fatal("timeout should not match shutdown")
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("boom")
	err := Internal(OpDispatch, cause)
	if !stderrors.Is(err, cause) {
		t.Fatal("Internal should wrap its cause")
	}
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		err  error
		name string
		want Code
	}{
		{name: "nil", err: nil, want: CodeOK},
		{name: "structured", err: Timeout(10), want: CodeTimeout},
		{name: "wrapped structured", err: fmt.Errorf("outer: %w", InvalidHandle(OpFree, 7)), want: CodeInvalidHandle},
		{name: "plain", err: fmt.Errorf("plain"), want: CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CodeOf(tt.err); got != tt.want {
				t.Fatalf("CodeOf() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCodesAreDistinct(t *testing.T) {
	codes := []Code{
		CodeOK, CodeNullPointer, CodeInvalidUTF8, CodeInvalidHeaders,
		CodeRequestFailed, CodeInvalidHandle, CodeBufferTooSmall,
		CodeInternal, CodeTimeout, CodeShutdown, CodeInvalidArgument,
	}
	seen := make(map[Code]bool, len(codes))
	for _, c := range codes {
		if seen[c] {
			t.Fatalf("duplicate code value %d", c)
		}
		seen[c] = true
	}
}
