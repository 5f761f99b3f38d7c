// Package livestock is the Go client for the livestock service API. It wraps
// the raw endpoints with the fetch behavior mobile screens need: paged
// activity feeds with optimistic status updates, and a badge watcher that
// deduplicates and retries polls.
package livestock

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

const defaultTimeout = 15 * time.Second

// APIError carries the envelope error code and message returned by the
// service, plus the HTTP status.
type APIError struct {
	StatusCode int
	Code       string `json:"code"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("livestock api: %d %s: %s", e.StatusCode, e.Code, e.Message)
}

// IsAuthError reports whether err is an API error the client must not retry,
// a 401 or 403. Re-authentication is the caller's job.
func IsAuthError(err error) bool {
	apiErr, ok := err.(*APIError)
	if !ok {
		return false
	}
	return apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden
}

type errorEnvelope struct {
	Success bool `json:"success"`
	Error   struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Client is a thin authenticated wrapper over the HTTP API. It is safe for
// concurrent use.
type Client struct {
	http *resty.Client
}

// New builds a client for the given base URL. The token is attached as a
// bearer credential on every request.
func New(baseURL, token string) *Client {
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(defaultTimeout).
		SetAuthToken(token)

	return &Client{http: httpClient}
}

// SetToken replaces the bearer token, for use after re-authentication.
func (c *Client) SetToken(token string) {
	c.http.SetAuthToken(token)
}

// Responses are always decoded as JSON even when a proxy or handler forgets
// the Content-Type header, hence ForceContentType on every request.
func (c *Client) get(ctx context.Context, path string, query map[string]string, out any) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(query).
		SetResult(out).
		SetError(&errorEnvelope{}).
		ForceContentType("application/json").
		Get(path)
	return wrapResponse(resp, err)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(out).
		SetError(&errorEnvelope{}).
		ForceContentType("application/json").
		Put(path)
	return wrapResponse(resp, err)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(out).
		SetError(&errorEnvelope{}).
		ForceContentType("application/json").
		Post(path)
	return wrapResponse(resp, err)
}

func wrapResponse(resp *resty.Response, err error) error {
	if err != nil {
		return fmt.Errorf("livestock api request failed: %w", err)
	}
	if resp.IsError() {
		apiErr := &APIError{StatusCode: resp.StatusCode(), Code: "UNKNOWN"}
		if env, ok := resp.Error().(*errorEnvelope); ok && env.Error.Code != "" {
			apiErr.Code = env.Error.Code
			apiErr.Message = env.Error.Message
		}
		return apiErr
	}
	return nil
}
