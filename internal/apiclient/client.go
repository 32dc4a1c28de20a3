package apiclient

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

	"go.uber.org/zap"
)

const maxResponseBytes = 8 << 20

// Client talks to the EduMarket REST API. It is safe for concurrent use;
// per-request credentials travel on the context (see ContextWithTokens).
type Client struct {
	base string
	hc   *http.Client
	log  *zap.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.hc = hc
		}
	}
}

// WithTimeout caps each round trip. Zero keeps the transport default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			hc := *c.hc
			hc.Timeout = d
			c.hc = &hc
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		base: strings.TrimRight(baseURL, "/"),
		hc:   &http.Client{},
		log:  zap.NewNop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Client) BaseURL() string { return c.base }

func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPatch, path, body, out)
}

func (c *Client) Delete(ctx context.Context, path string) error {
	return c.Do(ctx, http.MethodDelete, path, nil, nil)
}

// Do performs one round trip. On success the unwrapped payload is decoded
// into out (when out is non-nil). Every failure is an *Error.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	fail := func(kind Kind, status int, msg string, err error) error {
		return &Error{Kind: kind, Method: method, Path: path, Status: status, Message: msg, Err: err}
	}

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fail(KindTransport, 0, GenericMessage, fmt.Errorf("encode body: %w", err))
		}
		rdr = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+"/"+strings.TrimLeft(path, "/"), rdr)
	if err != nil {
		return fail(KindTransport, 0, GenericMessage, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	tokens := TokensFromContext(ctx)
	if tokens != nil {
		if tok := tokens.Token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		c.log.Warn("api.request.fail", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return fail(KindTransport, 0, GenericMessage, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fail(KindTransport, resp.StatusCode, GenericMessage, fmt.Errorf("read body: %w", err))
	}
	c.log.Debug("api.request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)

	env, isEnvelope := parseEnvelope(raw)

	if resp.StatusCode == http.StatusUnauthorized {
		if tokens != nil {
			tokens.Clear()
		}
		return fail(KindHTTP, resp.StatusCode, orGeneric(env.message), ErrUnauthorized)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fail(KindHTTP, resp.StatusCode, orGeneric(env.message), nil)
	}

	payload := json.RawMessage(raw)
	if isEnvelope {
		if !env.success {
			return fail(KindBusiness, resp.StatusCode, orGeneric(env.message), nil)
		}
		payload = env.data
	}
	if out == nil || len(bytes.TrimSpace(payload)) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fail(KindTransport, resp.StatusCode, GenericMessage, fmt.Errorf("decode %s: %w", path, err))
	}
	return nil
}

type envelope struct {
	success bool
	message string
	data    json.RawMessage
}

// parseEnvelope reports whether raw is an object carrying a "success" key.
// The message is extracted from any object body, envelope or not, so error
// statuses can surface it.
func parseEnvelope(raw []byte) (envelope, bool) {
	var env envelope
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return env, false
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return env, false
	}
	env.message = messageOf(fields["message"])
	env.data = fields["data"]
	succ, ok := fields["success"]
	if !ok {
		return env, false
	}
	if err := json.Unmarshal(succ, &env.success); err != nil {
		// a non-boolean success is treated as a failure envelope
		env.success = false
	}
	return env, true
}

// DecodeList decodes either a bare JSON array or a paginated object whose
// "data" field holds the array.
func DecodeList(raw json.RawMessage, out any) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	switch trimmed[0] {
	case '[':
		return json.Unmarshal(trimmed, out)
	case '{':
		var page struct {
			Data json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(trimmed, &page); err != nil {
			return err
		}
		return DecodeList(page.Data, out)
	}
	return errors.New("apiclient: list payload is neither array nor object")
}
