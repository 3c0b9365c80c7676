// Package api is the HTTP client of the upstream notes API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/render"

	"example.com/notely-web/internal/lib/logger/sl"
)

// Client issues requests against one base URL. Failures are returned as they
// come, without retries.
type Client struct {
	baseURL      string
	http         *http.Client
	log          *slog.Logger
	credentialed bool
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func WithLogger(log *slog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// New returns a credentialed client.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		http:         &http.Client{},
		log:          slog.New(slog.NewTextHandler(io.Discard, nil)),
		credentialed: true,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Authenticated returns a copy that forwards the browser's cookies.
func (c *Client) Authenticated() *Client {
	cp := *c
	cp.credentialed = true
	return &cp
}

// Public returns a copy that never sends cookies.
func (c *Client) Public() *Client {
	cp := *c
	cp.credentialed = false
	return &cp
}

func (c *Client) BaseURL() string { return c.baseURL }

type cookiesKey struct{}

// WithCookies attaches the browser's cookies to ctx for credentialed calls.
func WithCookies(ctx context.Context, cookies []*http.Cookie) context.Context {
	return context.WithValue(ctx, cookiesKey{}, cookies)
}

func cookiesFrom(ctx context.Context) []*http.Cookie {
	cookies, _ := ctx.Value(cookiesKey{}).([]*http.Cookie)
	return cookies
}

// HasCookies reports whether ctx carries any forwarded cookie.
func HasCookies(ctx context.Context) bool {
	return len(cookiesFrom(ctx)) > 0
}

// do sends body as JSON and decodes the response payload into out. It returns
// the cookies the upstream set.
func (c *Client) do(ctx context.Context, op, method, path string, body, out any) ([]*http.Cookie, error) {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.credentialed {
		for _, ck := range cookiesFrom(ctx) {
			req.AddCookie(ck)
		}
	}

	log := c.log.With(slog.String("op", op), slog.String("method", method), slog.String("path", path))

	resp, err := c.http.Do(req)
	if err != nil {
		log.Debug("upstream unreachable", sl.Err(err))
		return nil, &Error{Kind: KindTransport, Op: op, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Op: op, Status: resp.StatusCode, Err: err}
	}
	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := statusError(op, resp.StatusCode, raw)
		log.Debug("upstream error", slog.Int("status", resp.StatusCode), slog.String("kind", apiErr.Kind.String()))
		return nil, apiErr
	}

	if out != nil {
		if err := render.DecodeJSON(bytes.NewReader(Payload(raw)), out); err != nil {
			return nil, fmt.Errorf("%s: decode: %w", op, err)
		}
	}
	return resp.Cookies(), nil
}
