package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Operation names used in errors and metrics labels.
const (
	OpList   = "list"
	OpGet    = "get"
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
)

// RequestFailed reports a failed store operation: either a non-2xx response
// (Status set, Err nil) or a transport failure (Status zero, Err set).
type RequestFailed struct {
	Op     string
	Status int
	Err    error
}

func (e *RequestFailed) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("store: %s: unexpected status %d", e.Op, e.Status)
}

func (e *RequestFailed) Unwrap() error { return e.Err }

// Client issues CRUD requests against the /users collection of a base URL.
// The base URL is passed in explicitly at construction, never read from the
// environment here.
type Client struct {
	base    string
	hc      *http.Client
	metrics *Metrics
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.hc = hc }
}

// WithMetrics attaches request instrumentation.
func WithMetrics(m *Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// New creates a Client for the given base URL, e.g. "http://localhost:3001".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		base: strings.TrimRight(baseURL, "/"),
		hc:   &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// List fetches all records.
func (c *Client) List(ctx context.Context) ([]Record, error) {
	var out []Record
	if err := c.do(ctx, OpList, http.MethodGet, c.base+"/users", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get fetches a single record by id.
func (c *Client) Get(ctx context.Context, id string) (Record, error) {
	var out Record
	if err := c.do(ctx, OpGet, http.MethodGet, c.itemURL(id), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create persists a new record. The server assigns the id.
func (c *Client) Create(ctx context.Context, data map[string]any) (Record, error) {
	var out Record
	if err := c.do(ctx, OpCreate, http.MethodPost, c.base+"/users", data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Update replaces a record's fields wholesale. No partial patch semantics.
func (c *Client) Update(ctx context.Context, id string, data map[string]any) (Record, error) {
	var out Record
	if err := c.do(ctx, OpUpdate, http.MethodPut, c.itemURL(id), data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes a record.
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, OpDelete, http.MethodDelete, c.itemURL(id), nil, nil)
}

func (c *Client) itemURL(id string) string {
	return c.base + "/users/" + url.PathEscape(id)
}

// do performs one round-trip: optional JSON request body, optional JSON
// response decode. Any transport error or non-2xx status becomes a
// *RequestFailed.
func (c *Client) do(ctx context.Context, op, method, u string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return &RequestFailed{Op: op, Err: err}
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return &RequestFailed{Op: op, Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		c.observe(op, "transport_error", start)
		return &RequestFailed{Op: op, Err: err}
	}
	defer resp.Body.Close()

	c.observe(op, fmt.Sprintf("%d", resp.StatusCode), start)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return &RequestFailed{Op: op, Status: resp.StatusCode}
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &RequestFailed{Op: op, Err: err}
	}
	return nil
}

func (c *Client) observe(op, code string, start time.Time) {
	if c.metrics == nil {
		return
	}
	c.metrics.requests.WithLabelValues(op, code).Inc()
	c.metrics.duration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}
