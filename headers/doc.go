// Package headers parses the headers argument of the verb entry points.
//
// The wire shape is a JSON object mapping header names to string values,
// e.g. {"Authorization": "Bearer token"}. An empty or whitespace-only blob
// means no extra headers. Anything else - malformed JSON, a non-object, a
// non-string value, an invalid header name - is a local validation failure
// reported before any network attempt.
package headers
