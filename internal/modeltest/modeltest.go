// Package modeltest provides a recording request.Requester for tests of the
// model wrappers and the layers built on them.
package modeltest

import (
	"context"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/germanamz/genai/pkg/request"
)

var _ request.Requester = (*FakeRequester)(nil)

// RecordedCall is one invocation seen by a FakeRequester.
type RecordedCall struct {
	Model   string
	Task    request.Task
	APIKey  string
	Stream  bool
	Body    string
	Options request.RequestOptions
}

// FakeRequester records calls and answers each with Response, or Err when
// set. It lets wrapper tests inspect exactly what reaches the request helper.
type FakeRequester struct {
	Response string
	Err      error

	mu    sync.Mutex
	calls []RecordedCall
}

// MakeModelRequest implements request.Requester.
func (f *FakeRequester) MakeModelRequest(
	_ context.Context,
	model string,
	task request.Task,
	apiKey string,
	stream bool,
	body []byte,
	opts request.RequestOptions,
) (*http.Response, error) {
	f.mu.Lock()
	f.calls = append(f.calls, RecordedCall{
		Model:   model,
		Task:    task,
		APIKey:  apiKey,
		Stream:  stream,
		Body:    string(body),
		Options: opts,
	})
	f.mu.Unlock()

	if f.Err != nil {
		return nil, f.Err
	}

	return &http.Response{
		StatusCode: http.StatusOK,
		Status:     "200 OK",
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(f.Response)),
	}, nil
}

// Calls returns the recorded calls in order.
func (f *FakeRequester) Calls() []RecordedCall {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]RecordedCall(nil), f.calls...)
}

// LastCall returns the most recent call. The bool is false when none was made.
func (f *FakeRequester) LastCall() (RecordedCall, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.calls) == 0 {
		return RecordedCall{}, false
	}

	return f.calls[len(f.calls)-1], true
}
