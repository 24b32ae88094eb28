// Package model holds the state and call path shared by every model wrapper:
// the normalized model identifier, the API key, default request options and
// the Requester that performs the network call.
package model

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/germanamz/genai/pkg/request"
)

// ErrEmptyModelName is returned when a wrapper is built without a model name.
var ErrEmptyModelName = errors.New("model: must provide a model name, e.g. {Model: \"my-model-name\"}")

// Params identifies the remote model.
type Params struct {
	Model string
}

// Normalize returns the namespaced model identifier. A name containing "/"
// already carries its namespace ("models/x", "tunedModels/x") and is returned
// verbatim, whatever else it contains. Any other name is prefixed with
// "models/". The empty name is rejected.
func Normalize(name string) (string, error) {
	if name == "" {
		return "", ErrEmptyModelName
	}
	if strings.Contains(name, "/") {
		return name, nil
	}

	return "models/" + name, nil
}

// Option configures a Base.
type Option func(*Base)

// WithRequestOptions sets the instance-level request defaults. Several calls
// are merged in order.
func WithRequestOptions(opts request.RequestOptions) Option {
	return func(b *Base) {
		b.defaults = request.Merge(b.defaults, opts)
	}
}

// WithRequester replaces the request helper, e.g. to share one
// request.Client or to inject a fake in tests.
func WithRequester(r request.Requester) Option {
	return func(b *Base) {
		if r != nil {
			b.requester = r
		}
	}
}

// Base is embedded by the modality wrappers. It is immutable after New and
// safe for concurrent use.
type Base struct {
	id        string
	apiKey    string
	defaults  request.RequestOptions
	requester request.Requester
}

// New normalizes params.Model and applies opts. Without WithRequester the
// wrapper uses request.New().
func New(apiKey string, params Params, opts ...Option) (Base, error) {
	id, err := Normalize(params.Model)
	if err != nil {
		return Base{}, err
	}

	b := Base{id: id, apiKey: apiKey}
	for _, opt := range opts {
		opt(&b)
	}
	if b.requester == nil {
		b.requester = request.New()
	}
	b.defaults = b.defaults.Clone()

	return b, nil
}

// ID returns the namespaced model identifier.
func (b Base) ID() string { return b.id }

// APIKey returns the key sent with every call.
func (b Base) APIKey() string { return b.apiKey }

// RequestOptions returns a copy of the instance-level defaults.
func (b Base) RequestOptions() request.RequestOptions { return b.defaults.Clone() }

// Call encodes payload, sends it to task with the defaults merged under
// perCall, and decodes a successful response into dest. Errors from the
// Requester are returned as is.
func (b Base) Call(ctx context.Context, task request.Task, payload, dest any, perCall ...request.SingleRequestOptions) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return &request.RequestInputError{Message: fmt.Sprintf("encode %s request: %v", task, err)}
	}

	opts := request.Merge(b.defaults, perCall...)

	resp, err := b.requester.MakeModelRequest(ctx, b.id, task, b.apiKey, false, body, opts)
	if err != nil {
		return err
	}

	return request.DecodeJSON(resp, dest)
}
