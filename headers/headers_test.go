package headers

import (
	stderrors "errors"
	"testing"

	lverrors "github.com/nominal-io/lvhttp/errors"
)

func TestParse(t *testing.T) {
	tests := []struct {
		want    map[string]string
		name    string
		blob    string
		wantErr bool
	}{
		{name: "empty string", blob: "", want: nil},
		{name: "whitespace only", blob: "  \n\t ", want: nil},
		{name: "empty object", blob: "{}", want: map[string]string{}},
		{
			name: "simple headers",
			blob: `{"Authorization": "Bearer token", "X-Trace-Id": "abc123"}`,
			want: map[string]string{"Authorization": "Bearer token", "X-Trace-Id": "abc123"},
		},
		{name: "malformed JSON", blob: `{"Authorization": `, wantErr: true},
		{name: "array not object", blob: `["a", "b"]`, wantErr: true},
		{name: "bare string", blob: `"Authorization"`, wantErr: true},
		{name: "numeric value", blob: `{"Content-Length": 42}`, wantErr: true},
		{name: "null value", blob: `{"Accept": null}`, wantErr: true},
		{name: "nested object value", blob: `{"X-Meta": {"a": "b"}}`, wantErr: true},
		{name: "empty header name", blob: `{"": "v"}`, wantErr: true},
		{name: "space in header name", blob: `{"Bad Name": "v"}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.blob)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q) succeeded, want error", tt.blob)
				}
				if !stderrors.Is(err, &lverrors.Error{Code: lverrors.CodeInvalidHeaders}) {
					t.Fatalf("Parse(%q) error code = %d, want CodeInvalidHeaders", tt.blob, lverrors.CodeOf(err))
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", tt.blob, err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Parse(%q) = %v, want %v", tt.blob, got, tt.want)
			}
			for k, v := range tt.want {
				if got[k] != v {
					t.Fatalf("Parse(%q)[%q] = %q, want %q", tt.blob, k, got[k], v)
				}
			}
		})
	}
}
