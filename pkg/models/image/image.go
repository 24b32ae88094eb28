// Package image provides the image-generation model wrapper.
package image

import (
	"context"

	"github.com/germanamz/genai/pkg/content"
	"github.com/germanamz/genai/pkg/models/model"
	"github.com/germanamz/genai/pkg/request"
)

// Model calls the generateImages endpoint.
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

// GenerateImages makes a single non-streaming call to the model. The
// response holds as many images as the request's NumberOfImages. Fields set
// in opts take precedence over the options the model was built with.
func (m *Model) GenerateImages(ctx context.Context, in content.ImageInput, opts ...request.SingleRequestOptions) (*content.ImageGenerationResponse, error) {
	var resp content.ImageGenerationResponse
	if err := m.Call(ctx, request.TaskGenerateImages, in.ImageRequest(), &resp, opts...); err != nil {
		return nil, err
	}

	return &resp, nil
}
