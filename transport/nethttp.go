package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

// Default timeouts and pool limits for the net/http transport.
const (
	DefaultConnectTimeout  = 10 * time.Second
	DefaultKeepAlive       = 30 * time.Second
	DefaultIdleConnTimeout = 90 * time.Second

	// DefaultMaxBodySize caps buffered response bodies (64 MB). The ABI
	// reports body length as a 32-bit int, and LabVIEW allocates the read
	// buffer up front, so unbounded bodies are a caller hazard.
	DefaultMaxBodySize = 64 << 20
)

// Client performs requests with a shared, pooled net/http client.
// Per-request timeouts come from the context, not the http.Client.
type Client struct {
	hc      *http.Client
	maxBody int64
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithMaxBodySize caps the buffered response body size in bytes.
// Zero means DefaultMaxBodySize.
func WithMaxBodySize(n int64) ClientOption {
	return func(c *Client) {
		if n > 0 {
			c.maxBody = n
		}
	}
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.hc = hc
	}
}

// NewClient creates a Client with production defaults.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		hc: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout:   DefaultConnectTimeout,
					KeepAlive: DefaultKeepAlive,
				}).DialContext,
				MaxIdleConns:          100,
				MaxIdleConnsPerHost:   10,
				IdleConnTimeout:       DefaultIdleConnTimeout,
				TLSHandshakeTimeout:   10 * time.Second,
				ExpectContinueTimeout: 1 * time.Second,
			},
		},
		maxBody: DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Do performs req and buffers the whole response body.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	var body io.Reader
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, err
	}
	for name, value := range req.Header {
		httpReq.Header.Set(name, value)
	}

	resp, err := c.hc.Do(httpReq)
	if err != nil {
		return nil, err
	}

	data, readErr := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	// Close error is intentionally ignored after the full body read
	_ = resp.Body.Close()
	if readErr != nil {
		return nil, readErr
	}
	if int64(len(data)) > c.maxBody {
		return nil, fmt.Errorf("response body exceeds %d byte limit", c.maxBody)
	}

	return &Response{
		Status: uint32(resp.StatusCode),
		Body:   data,
	}, nil
}

// Close releases pooled idle connections.
func (c *Client) Close() error {
	c.hc.CloseIdleConnections()
	return nil
}
