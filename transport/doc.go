// Package transport performs one HTTP request to completion.
//
// The Transport interface is the seam between the handle/response core and
// the network: given method, URL, headers, and body it produces a status
// plus a fully buffered body, or a transport-level error. Connection
// establishment, TLS, DNS, redirect following, and compression all live
// behind this interface. Timeouts arrive through the context.
//
// Client is the production implementation over net/http with a pooled,
// timeout-tuned http.Transport. Use it instead of http.DefaultClient so
// dial and handshake timeouts are always set.
package transport
