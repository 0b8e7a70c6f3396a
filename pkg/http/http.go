// Package http is the fluent outbound HTTP client used for RajaOngkir and
// Slack calls. Every request is made once, with no retry, and timed into
// storefront_upstream_* metrics under the client's service name.
//
//	ro := http.NewClient("rajaongkir", "https://api.rajaongkir.com/starter").
//	    WithHeader("key", apiKey)
//
//	resp, err := ro.Get("/city").
//	    Query("province", "9").
//	    WithContext(ctx).
//	    Send()
//
//	var body cityResponse
//	err = resp.JSON(&body)
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	gohttp "net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shashiranjanraj/storefront/pkg/metrics"
)

var defaultTransport = &gohttp.Transport{
	Proxy:               gohttp.ProxyFromEnvironment,
	MaxIdleConns:        100,
	MaxIdleConnsPerHost: 20,
	IdleConnTimeout:     90 * time.Second,
}

// maxBody caps how much of a response is read into memory.
const maxBody = 8 << 20

// Client holds per-service defaults.
type Client struct {
	service string
	baseURL string
	headers map[string]string
	timeout time.Duration
	hc      *gohttp.Client
}

// NewClient returns a client for service rooted at baseURL (may be empty
// for absolute URLs).
func NewClient(service, baseURL string) *Client {
	return &Client{
		service: service,
		baseURL: strings.TrimRight(baseURL, "/"),
		headers: map[string]string{"Accept": "application/json"},
		timeout: 30 * time.Second,
		hc:      &gohttp.Client{Transport: defaultTransport},
	}
}

// WithHeader sets a header sent on every request.
func (c *Client) WithHeader(key, value string) *Client {
	c.headers[key] = value
	return c
}

// WithTimeout sets the request timeout.
func (c *Client) WithTimeout(d time.Duration) *Client {
	if d > 0 {
		c.timeout = d
	}
	return c
}

func (c *Client) Get(path string) *Request  { return c.newRequest(gohttp.MethodGet, path) }
func (c *Client) Post(path string) *Request { return c.newRequest(gohttp.MethodPost, path) }

func (c *Client) newRequest(method, path string) *Request {
	headers := make(map[string]string, len(c.headers)+1)
	for k, v := range c.headers {
		headers[k] = v
	}
	return &Request{
		client:  c,
		method:  method,
		url:     c.baseURL + path,
		headers: headers,
		query:   url.Values{},
		ctx:     context.Background(),
	}
}

// ------------------- Request -------------------

// Request is a fluent request builder.
type Request struct {
	client  *Client
	method  string
	url     string
	headers map[string]string
	query   url.Values
	body    any
	ctx     context.Context
}

func (r *Request) Query(key, value string) *Request {
	r.query.Set(key, value)
	return r
}

// Body sets a value sent as a JSON body.
func (r *Request) Body(v any) *Request {
	r.body = v
	return r
}

func (r *Request) WithContext(ctx context.Context) *Request {
	r.ctx = ctx
	return r
}

// ------------------- Send -------------------

// Send executes the request. Non-2xx statuses are not errors; use Throw.
func (r *Request) Send() (*Response, error) {
	resp, err := r.do()
	if err != nil {
		return nil, fmt.Errorf("http: %s %s %s: %w", r.client.service, r.method, r.url, err)
	}
	return resp, nil
}

func (r *Request) do() (*Response, error) {
	var body io.Reader
	if r.body != nil {
		b, err := json.Marshal(r.body)
		if err != nil {
			return nil, fmt.Errorf("marshal body: %w", err)
		}
		body = bytes.NewReader(b)
	}

	ctx, cancel := context.WithTimeout(r.ctx, r.client.timeout)
	defer cancel()

	target := r.url
	if len(r.query) > 0 {
		target += "?" + r.query.Encode()
	}

	req, err := gohttp.NewRequestWithContext(ctx, r.method, target, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	for k, v := range r.headers {
		req.Header.Set(k, v)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := r.client.hc.Do(req)
	if err != nil {
		metrics.ObserveUpstream(r.client.service, 0, start)
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	metrics.ObserveUpstream(r.client.service, resp.StatusCode, start)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	return &Response{StatusCode: resp.StatusCode, Raw: raw}, nil
}

// ------------------- Response -------------------

type Response struct {
	StatusCode int
	Raw        []byte
}

// OK reports a 2xx status.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

func (r *Response) JSON(dest any) error {
	if err := json.Unmarshal(r.Raw, dest); err != nil {
		return fmt.Errorf("http: decode JSON: %w", err)
	}
	return nil
}

// Throw returns an error for a non-2xx status. The body is truncated.
func (r *Response) Throw() error {
	if r.OK() {
		return nil
	}
	snippet := r.Raw
	if len(snippet) > 256 {
		snippet = snippet[:256]
	}
	return fmt.Errorf("http: unexpected status %d: %s", r.StatusCode, snippet)
}
