// Package client contains the HTTP clients for the punchlog backend.
// Each resource area gets its own independently configured client; all
// of them learn the current bearer token through SetCredential, the
// registration surface the session store broadcasts to.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	goerrors "github.com/goliatone/go-errors"
)

// DefaultTimeout bounds every request issued by a Client.
const DefaultTimeout = 15 * time.Second

// Client is the shared plumbing for one resource area: a base URL, an
// http.Client, and the current bearer credential.
type Client struct {
	base string
	http *http.Client

	mu    sync.RWMutex
	token string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout overrides the default request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// New returns a client rooted at the given base URL.
func New(base string, opts ...Option) *Client {
	c := &Client{
		base: strings.TrimRight(base, "/"),
		http: &http.Client{Timeout: DefaultTimeout},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// SetCredential records the bearer token attached to all subsequent
// requests from this client. There is no way to unset it: logout stops
// new authenticated traffic at the session layer, and a fresh login
// simply replaces the token.
func (c *Client) SetCredential(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) credential() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// errorBody is the error payload shape the backend returns.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (e errorBody) text() string {
	if e.Error != "" {
		return e.Error
	}
	return e.Message
}

// do issues a JSON request. A non-nil body is encoded as JSON; a
// non-nil out receives the decoded response. Non-2xx responses are
// converted to categorized errors carrying the server's message when
// one was decodable.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint := c.base + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return goerrors.Wrap(err, goerrors.CategoryBadInput, "unable to encode request body")
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, payload)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryBadInput, "unable to build request")
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token := c.credential(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryOperation, "request failed")
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return c.statusError(res)
	}

	if out == nil {
		io.Copy(io.Discard, res.Body)
		return nil
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryOperation, "unable to decode response body")
	}

	return nil
}

// statusError maps a non-2xx response to a categorized error.
func (c *Client) statusError(res *http.Response) error {
	msg := fmt.Sprintf("server returned %s", res.Status)

	var body errorBody
	if err := json.NewDecoder(res.Body).Decode(&body); err == nil && body.text() != "" {
		msg = body.text()
	}

	switch res.StatusCode {
	case http.StatusUnauthorized:
		return goerrors.New(msg, goerrors.CategoryAuth).WithCode(goerrors.CodeUnauthorized)
	case http.StatusForbidden:
		return goerrors.New(msg, goerrors.CategoryAuth).WithCode(goerrors.CodeForbidden)
	case http.StatusConflict:
		return goerrors.New(msg, goerrors.CategoryConflict).WithCode(goerrors.CodeConflict)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return goerrors.New(msg, goerrors.CategoryBadInput).WithCode(goerrors.CodeBadRequest)
	default:
		return goerrors.New(msg, goerrors.CategoryOperation)
	}
}
