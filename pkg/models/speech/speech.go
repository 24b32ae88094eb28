// Package speech provides the speech-generation model wrapper.
package speech

import (
	"context"

	"github.com/germanamz/genai/pkg/content"
	"github.com/germanamz/genai/pkg/models/model"
	"github.com/germanamz/genai/pkg/request"
)

// Model calls the generateSpeech endpoint.
type Model struct {
	model.Base
}

// New creates a Model. params.Model is normalized as described by
// model.Normalize.
func New(apiKey string, params model.Params, opts ...model.Option) (*Model, error) {
	base, err := model.New(apiKey, params, opts...)
	if err != nil {
		return nil, err
	}

	return &Model{Base: base}, nil
}

// GenerateSpeech makes a single non-streaming call to the model. The audio
// comes back inline, as a file reference, or both.
func (m *Model) GenerateSpeech(ctx context.Context, in content.SpeechInput, opts ...request.SingleRequestOptions) (*content.SpeechGenerationResponse, error) {
	var resp content.SpeechGenerationResponse
	if err := m.Call(ctx, request.TaskGenerateSpeech, in.SpeechRequest(), &resp, opts...); err != nil {
		return nil, err
	}

	return &resp, nil
}
