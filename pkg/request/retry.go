package request

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v5"
)

const (
	defaultRetryInterval    = 500 * time.Millisecond
	defaultRetryMaxInterval = 15 * time.Second
)

// sendWithRetry repeats send while it fails with a retryable FetchError, up
// to opts.MaxRetries extra attempts. A Retry-After from the service replaces
// the computed backoff interval. The last FetchError is returned unchanged;
// a context that ends while waiting yields an AbortError.
func (c *Client) sendWithRetry(ctx context.Context, url string, header http.Header, body []byte, opts RequestOptions) (*http.Response, error) {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = c.retryInterval
	exp.MaxInterval = max(defaultRetryMaxInterval, c.retryInterval)

	var last error
	attempt := 0
	operation := func() (*http.Response, error) {
		attempt++

		resp, err := c.send(ctx, url, header, body, opts)
		if err == nil {
			return resp, nil
		}
		last = err

		var fe *FetchError
		if !errors.As(err, &fe) || !fe.Retryable() {
			return nil, backoff.Permanent(err)
		}

		c.logger().InfoContext(ctx, "retrying model request",
			"url", url,
			"attempt", attempt,
			"status", fe.StatusCode,
			"retry_after", fe.RetryAfter,
		)

		if secs := int(fe.RetryAfter.Round(time.Second) / time.Second); secs > 0 {
			return nil, backoff.RetryAfter(secs)
		}

		return nil, err
	}

	resp, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(exp),
		backoff.WithMaxTries(uint(opts.MaxRetries)+1), //nolint:gosec // MaxRetries is positive here.
	)
	if err == nil {
		return resp, nil
	}

	var permanent *backoff.PermanentError
	if errors.As(err, &permanent) {
		return nil, permanent.Err
	}

	var ae *AbortError
	if ctxErr := ctx.Err(); ctxErr != nil && !errors.As(err, &ae) {
		return nil, &AbortError{URL: url, Err: ctxErr}
	}

	var ra *backoff.RetryAfterError
	if errors.As(err, &ra) && last != nil {
		return nil, last
	}

	return nil, err
}
