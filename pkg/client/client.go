// Package client is the entry point of the library: it holds an API key and
// hands out model wrappers for each modality.
package client

import (
	"github.com/germanamz/genai/pkg/models/image"
	"github.com/germanamz/genai/pkg/models/model"
	"github.com/germanamz/genai/pkg/models/speech"
	"github.com/germanamz/genai/pkg/models/text"
	"github.com/germanamz/genai/pkg/request"
)

// Option configures a GoogleGenerativeAI client.
type Option func(*GoogleGenerativeAI)

// WithRequester makes every wrapper share r instead of each creating its own
// request.Client.
func WithRequester(r request.Requester) Option {
	return func(g *GoogleGenerativeAI) {
		if r != nil {
			g.requester = r
		}
	}
}

// GoogleGenerativeAI constructs model wrappers bound to one API key.
type GoogleGenerativeAI struct {
	apiKey    string
	requester request.Requester
}

// New creates a client. Without WithRequester all wrappers share a single
// request.New() client.
func New(apiKey string, opts ...Option) *GoogleGenerativeAI {
	g := &GoogleGenerativeAI{apiKey: apiKey}
	for _, opt := range opts {
		opt(g)
	}
	if g.requester == nil {
		g.requester = request.New()
	}

	return g
}

// APIKey returns the key handed to every wrapper.
func (g *GoogleGenerativeAI) APIKey() string { return g.apiKey }

func (g *GoogleGenerativeAI) options(opts []request.RequestOptions) []model.Option {
	out := []model.Option{model.WithRequester(g.requester)}
	for _, o := range opts {
		out = append(out, model.WithRequestOptions(o))
	}

	return out
}

// GenerativeModel returns a text/content model wrapper.
func (g *GoogleGenerativeAI) GenerativeModel(params text.Params, opts ...request.RequestOptions) (*text.Model, error) {
	return text.New(g.apiKey, params, g.options(opts)...)
}

// ImageGenerationModel returns an image model wrapper.
func (g *GoogleGenerativeAI) ImageGenerationModel(params model.Params, opts ...request.RequestOptions) (*image.Model, error) {
	return image.New(g.apiKey, params, g.options(opts)...)
}

// SpeechGenerationModel returns a speech model wrapper.
func (g *GoogleGenerativeAI) SpeechGenerationModel(params model.Params, opts ...request.RequestOptions) (*speech.Model, error) {
	return speech.New(g.apiKey, params, g.options(opts)...)
}
