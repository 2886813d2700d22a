package client

import (
	"net/http"
	"time"
)

// Option represents a client option.
type Option func(*Client)

// WithHTTPClient sets the http client used for all calls; install the
// authenticated transport here.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithCatalogTTL sets how long muscle-group and exercise listings are cached.
func WithCatalogTTL(ttl time.Duration) Option {
	return func(c *Client) {
		c.catalogTTL = ttl
	}
}
