package headers

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nominal-io/lvhttp/errors"
)

// Parse converts a JSON object blob into a header map. An empty or
// whitespace-only input yields a nil map, meaning no extra headers.
// Name matching is the transport's concern; names are passed through
// as written.
func Parse(blob string) (map[string]string, error) {
	if strings.TrimSpace(blob) == "" {
		return nil, nil
	}

	var raw map[string]any
	if err := json.Unmarshal([]byte(blob), &raw); err != nil {
		return nil, errors.InvalidHeaders("failed to parse headers JSON", err)
	}

	out := make(map[string]string, len(raw))
	for name, value := range raw {
		if !validName(name) {
			return nil, errors.InvalidHeaders(fmt.Sprintf("invalid header name %q", name), nil)
		}
		s, ok := value.(string)
		if !ok {
			return nil, errors.InvalidHeaders(fmt.Sprintf("header value for %q must be a string", name), nil)
		}
		out[name] = s
	}
	return out, nil
}

// validName reports whether name is a valid HTTP field name (RFC 9110
// token: one or more tchar).
func validName(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		if !isTokenChar(name[i]) {
			return false
		}
	}
	return true
}

func isTokenChar(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	}
	switch c {
	case '!', '#', '$', '%', '&', '\'', '*', '+', '-', '.', '^', '_', '`', '|', '~':
		return true
	}
	return false
}
