package request

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const errorPrefix = "[GoogleGenerativeAI Error]: "

// Error reports a failure to reach the service, such as a refused
// connection or a request that could not be built.
type Error struct {
	URL string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%serror fetching from %s: %v", errorPrefix, e.URL, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// ErrorDetail is one entry of the "details" array of an API error body.
type ErrorDetail struct {
	Type     string            `json:"@type,omitempty"`
	Reason   string            `json:"reason,omitempty"`
	Domain   string            `json:"domain,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// FetchError is returned when the service answers with a non-2xx status.
type FetchError struct {
	URL        string
	StatusCode int
	StatusText string
	Message    string
	Details    []ErrorDetail
	RetryAfter time.Duration // Parsed from Retry-After; zero when absent.
}

func (e *FetchError) Error() string {
	msg := fmt.Sprintf("%serror fetching from %s: [%d %s]", errorPrefix, e.URL, e.StatusCode, e.StatusText)
	if e.Message != "" {
		msg += " " + e.Message
	}

	return msg
}

// Retryable reports whether the status is worth retrying (429 or 5xx).
func (e *FetchError) Retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= http.StatusInternalServerError
}

// AbortError is returned when the call's context is cancelled or its
// timeout expires before a response arrives.
type AbortError struct {
	URL string
	Err error
}

func (e *AbortError) Error() string {
	return fmt.Sprintf("%srequest aborted when fetching %s: %v", errorPrefix, e.URL, e.Err)
}

func (e *AbortError) Unwrap() error { return e.Err }

// RequestInputError reports invalid request options or an unencodable payload.
// No network call is made when it is returned.
type RequestInputError struct {
	Message string
}

func (e *RequestInputError) Error() string { return errorPrefix + e.Message }

// ResponseError is returned when a successful response body cannot be decoded.
type ResponseError struct {
	Err error
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("%sdecode response: %v", errorPrefix, e.Err)
}

func (e *ResponseError) Unwrap() error { return e.Err }

// ParseRetryAfter parses a Retry-After header value given either as seconds
// or as an HTTP-date. It returns zero if unparseable or in the past.
func ParseRetryAfter(val string) time.Duration {
	if val == "" {
		return 0
	}
	if secs, err := strconv.Atoi(val); err == nil {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(val); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}

	return 0
}

// statusText strips the numeric code from resp.Status ("404 Not Found" -> "Not Found").
func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}

	return text
}
