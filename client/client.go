package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/liftlog/liftlog-go/apierror"
	"github.com/liftlog/liftlog-go/schema"
)

const defaultCatalogTTL = 5 * time.Minute

// Client is the typed gateway to the LiftLog HTTP API. All outgoing calls
// flow through a single http.Client, so an authenticated transport installed
// there covers every endpoint uniformly. Failures are classified exactly
// once, here, into the apierror taxonomy.
type Client struct {
	baseURL    string
	httpClient *http.Client
	catalog    *gocache.Cache
	catalogTTL time.Duration
}

// New creates a Client for the service rooted at baseURL.
func New(baseURL string, options ...Option) *Client {
	ret := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
		catalogTTL: defaultCatalogTTL,
	}
	for _, opt := range options {
		opt(ret)
	}
	ret.catalog = gocache.New(ret.catalogTTL, 2*ret.catalogTTL)
	return ret
}

// HTTPClient exposes the underlying http client.
func (c *Client) HTTPClient() *http.Client {
	return c.httpClient
}

// do issues one JSON request and decodes a JSON response into out (when out
// is non-nil). Every failure comes back classified.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return apierror.Server("encoding request", err)
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return apierror.Server("building request", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	return c.send(req, out)
}

// send executes a prepared request and classifies its outcome.
func (c *Client) send(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return classifyTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return apierror.Server("malformed response payload", err)
		}
		return nil
	}
	return classifyStatus(resp)
}

// classifyTransportError separates errors already classified by the
// authenticated transport (session expiry, storage) from plain
// connectivity failures. http.Client wraps transport errors in *url.Error,
// so unwrap through the chain first.
func classifyTransportError(err error) error {
	var classified *apierror.Error
	if errors.As(err, &classified) {
		return classified
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return apierror.Network(err)
}

// classifyStatus maps a non-2xx response to the error taxonomy: a
// structured body with a message is a domain error the user can act on,
// anything else is an unexpected server failure.
func classifyStatus(resp *http.Response) error {
	data, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if readErr == nil && resp.StatusCode < 500 {
		var body schema.ErrorResponse
		if err := json.Unmarshal(data, &body); err == nil && body.Message != "" {
			return apierror.Domain(body.Message)
		}
	}
	return apierror.Server(
		fmt.Sprintf("unexpected status %d", resp.StatusCode),
		fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(data))),
	)
}
