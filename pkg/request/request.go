package request

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Version is reported to the service in the x-goog-api-client header.
const Version = "0.1.0"

const (
	headerAPIKey    = "x-goog-api-key"
	headerAPIClient = "x-goog-api-client"
	clientName      = "genai-go"
)

// Requester performs a model call and returns the raw successful response.
// Implementations must return a non-nil error for every non-2xx response.
// The caller owns and must close the returned body.
type Requester interface {
	MakeModelRequest(ctx context.Context, model string, task Task, apiKey string, stream bool, body []byte, opts RequestOptions) (*http.Response, error)
}

var _ Requester = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets the logger. Calls are logged at debug level and failures
// at warn level. Without a logger nothing is logged.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// WithRetryInterval sets the initial backoff interval between retries.
func WithRetryInterval(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.retryInterval = d
		}
	}
}

// Client is the default HTTP Requester. It is safe for concurrent use.
type Client struct {
	httpClient    *http.Client
	log           *slog.Logger
	retryInterval time.Duration

	clientOnce    sync.Once
	defaultClient *http.Client
}

// New creates a Client. Without options it uses an HTTP client with a
// 10-minute timeout and logs nothing.
func New(opts ...Option) *Client {
	c := &Client{
		log:           slog.New(slog.DiscardHandler),
		retryInterval: defaultRetryInterval,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// client returns the configured client or a cached default client.
func (c *Client) client() *http.Client {
	if c.httpClient != nil {
		return c.httpClient
	}

	c.clientOnce.Do(func() {
		c.defaultClient = &http.Client{Timeout: 10 * time.Minute}
	})

	return c.defaultClient
}

// logger tolerates a zero Client built without New.
func (c *Client) logger() *slog.Logger {
	if c.log != nil {
		return c.log
	}

	return slog.New(slog.DiscardHandler)
}

// URL returns the endpoint for a model task:
// {baseURL}/{apiVersion}/{model}:{task}, with ?alt=sse when streaming.
func URL(model string, task Task, stream bool, opts RequestOptions) string {
	opts = opts.withDefaults()

	u := fmt.Sprintf("%s/%s/%s:%s", strings.TrimRight(opts.BaseURL, "/"), opts.APIVersion, model, task)
	if stream {
		u += "?alt=sse"
	}

	return u
}

// Headers builds the request headers: content type, client identification,
// API key, then custom headers. Custom headers may not replace any of the
// reserved ones.
func Headers(apiKey string, opts RequestOptions) (http.Header, error) {
	h := make(http.Header)
	h.Set("Content-Type", "application/json")

	client := clientName + "/" + Version
	if opts.APIClient != "" {
		client += " " + opts.APIClient
	}
	h.Set(headerAPIClient, client)
	h.Set(headerAPIKey, apiKey)

	for name, value := range opts.CustomHeaders {
		if strings.EqualFold(name, headerAPIClient) {
			return nil, &RequestInputError{
				Message: fmt.Sprintf("header name %s can only be set using the APIClient field", name),
			}
		}
		if h.Get(name) != "" {
			return nil, &RequestInputError{
				Message: fmt.Sprintf("cannot set reserved header name %s", name),
			}
		}
		h.Set(name, value)
	}

	return h, nil
}

// MakeModelRequest posts body to the model task endpoint and returns the
// response once a 2xx status is received.
func (c *Client) MakeModelRequest(
	ctx context.Context,
	model string,
	task Task,
	apiKey string,
	stream bool,
	body []byte,
	opts RequestOptions,
) (*http.Response, error) {
	url := URL(model, task, stream, opts)

	header, err := Headers(apiKey, opts)
	if err != nil {
		return nil, err
	}

	if opts.MaxRetries > 0 {
		return c.sendWithRetry(ctx, url, header, body, opts)
	}

	return c.send(ctx, url, header, body, opts)
}

// send performs a single HTTP attempt.
func (c *Client) send(ctx context.Context, url string, header http.Header, body []byte, opts RequestOptions) (*http.Response, error) {
	cancel := context.CancelFunc(func() {})
	if opts.Timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		cancel()
		return nil, &Error{URL: url, Err: err}
	}
	req.Header = header.Clone()

	log := c.logger()
	start := time.Now()

	resp, err := c.client().Do(req) //nolint:gosec // URL is built from configured BaseURL and model id.
	if err != nil {
		cancel()
		log.WarnContext(ctx, "model request failed", "url", url, "duration", time.Since(start), "error", err)

		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, &AbortError{URL: url, Err: ctxErr}
		}

		return nil, &Error{URL: url, Err: err}
	}

	log.DebugContext(ctx, "model request",
		"url", url,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer cancel()
		defer func() { _ = resp.Body.Close() }()

		fe := newFetchError(url, resp)
		log.WarnContext(ctx, "model request rejected", "url", url, "status", resp.StatusCode, "message", fe.Message)

		return nil, fe
	}

	// The timeout must outlive Do: it still governs reading the body.
	resp.Body = &cancelOnClose{ReadCloser: resp.Body, cancel: cancel}

	return resp, nil
}

// newFetchError builds a FetchError from a non-2xx response, taking the
// message and details from a JSON error body when present.
func newFetchError(url string, resp *http.Response) *FetchError {
	fe := &FetchError{
		URL:        url,
		StatusCode: resp.StatusCode,
		StatusText: statusText(resp),
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		fe.RetryAfter = ParseRetryAfter(resp.Header.Get("Retry-After"))
	}

	raw, _ := io.ReadAll(resp.Body)

	var payload struct {
		Error struct {
			Message string        `json:"message"`
			Details []ErrorDetail `json:"details"`
		} `json:"error"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil && payload.Error.Message != "" {
		fe.Message = payload.Error.Message
		fe.Details = payload.Error.Details
	} else {
		fe.Message = strings.TrimSpace(string(raw))
	}

	return fe
}

// DecodeJSON decodes a successful response body into dest and closes it.
func DecodeJSON(resp *http.Response, dest any) error {
	defer func() { _ = resp.Body.Close() }()

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return &ResponseError{Err: err}
	}

	return nil
}

type cancelOnClose struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (c *cancelOnClose) Close() error {
	err := c.ReadCloser.Close()
	c.cancel()

	return err
}

// IsAbort reports whether err is an AbortError.
func IsAbort(err error) bool {
	var ae *AbortError
	return errors.As(err, &ae)
}
