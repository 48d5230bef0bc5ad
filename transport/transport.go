package transport

import (
	"context"
)

// Request describes one HTTP request to perform. It is transient:
// constructed by the dispatch layer, handed to a Transport, discarded.
type Request struct {
	Header map[string]string
	Method string
	URL    string
	Body   []byte
}

// Response is the completed result of a Request. The body is fully
// buffered; there is no streaming at this seam.
type Response struct {
	Body   []byte
	Status uint32
}

// Transport executes one request to completion or failure.
type Transport interface {
	// Do performs the request, honoring ctx cancellation and deadline.
	Do(ctx context.Context, req *Request) (*Response, error)
	// Close releases any held resources, such as pooled connections.
	Close() error
}
