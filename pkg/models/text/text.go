// Package text provides the content-generation model wrapper: text
// generation, token counting and embeddings.
package text

import (
	"context"

	"github.com/germanamz/genai/pkg/content"
	"github.com/germanamz/genai/pkg/models/model"
	"github.com/germanamz/genai/pkg/request"
)

// Params identifies the model and optionally sets request defaults that
// apply to every GenerateContent and CountTokens call.
type Params struct {
	Model             string
	GenerationConfig  *content.GenerationConfig
	SafetySettings    []content.SafetySetting
	SystemInstruction *content.Content
}

// Model calls the generateContent family of endpoints.
type Model struct {
	model.Base

	generationConfig  *content.GenerationConfig
	safetySettings    []content.SafetySetting
	systemInstruction *content.Content
}

// New creates a Model. params.Model is normalized as described by
// model.Normalize.
func New(apiKey string, params Params, opts ...model.Option) (*Model, error) {
	base, err := model.New(apiKey, model.Params{Model: params.Model}, opts...)
	if err != nil {
		return nil, err
	}

	return &Model{
		Base:              base,
		generationConfig:  params.GenerationConfig,
		safetySettings:    params.SafetySettings,
		systemInstruction: params.SystemInstruction,
	}, nil
}

// withDefaults fills request fields the caller left unset from the model
// defaults.
func (m *Model) withDefaults(req content.GenerateContentRequest) content.GenerateContentRequest {
	if req.GenerationConfig == nil {
		req.GenerationConfig = m.generationConfig
	}
	if req.SafetySettings == nil {
		req.SafetySettings = m.safetySettings
	}
	if req.SystemInstruction == nil {
		req.SystemInstruction = m.systemInstruction
	}

	return req
}

// GenerateContent makes a single non-streaming call to the model. Fields
// set in opts take precedence over the options the model was built with.
func (m *Model) GenerateContent(ctx context.Context, in content.ContentInput, opts ...request.SingleRequestOptions) (*content.GenerateContentResponse, error) {
	req := m.withDefaults(in.ContentRequest())

	var resp content.GenerateContentResponse
	if err := m.Call(ctx, request.TaskGenerateContent, req, &resp, opts...); err != nil {
		return nil, err
	}

	return &resp, nil
}

// countTokensRequest nests the full request so that model defaults such as
// the system instruction are counted too.
type countTokensRequest struct {
	GenerateContentRequest generateContentWithModel `json:"generateContentRequest"`
}

type generateContentWithModel struct {
	Model string `json:"model"`
	content.GenerateContentRequest
}

// CountTokens counts the tokens in the input as the model would see it.
func (m *Model) CountTokens(ctx context.Context, in content.ContentInput, opts ...request.SingleRequestOptions) (*content.CountTokensResponse, error) {
	req := countTokensRequest{
		GenerateContentRequest: generateContentWithModel{
			Model:                  m.ID(),
			GenerateContentRequest: m.withDefaults(in.ContentRequest()),
		},
	}

	var resp content.CountTokensResponse
	if err := m.Call(ctx, request.TaskCountTokens, req, &resp, opts...); err != nil {
		return nil, err
	}

	return &resp, nil
}

// EmbedContent returns the embedding of a single input.
func (m *Model) EmbedContent(ctx context.Context, in content.EmbedInput, opts ...request.SingleRequestOptions) (*content.EmbedContentResponse, error) {
	var resp content.EmbedContentResponse
	if err := m.Call(ctx, request.TaskEmbedContent, in.EmbedRequest(), &resp, opts...); err != nil {
		return nil, err
	}

	return &resp, nil
}

// BatchEmbedContents embeds several inputs in one call. Each request is
// addressed to this model.
func (m *Model) BatchEmbedContents(ctx context.Context, ins []content.EmbedInput, opts ...request.SingleRequestOptions) (*content.BatchEmbedContentsResponse, error) {
	batch := content.BatchEmbedContentsRequest{Requests: make([]content.EmbedContentRequest, len(ins))}
	for i, in := range ins {
		r := in.EmbedRequest()
		r.Model = m.ID()
		batch.Requests[i] = r
	}

	var resp content.BatchEmbedContentsResponse
	if err := m.Call(ctx, request.TaskBatchEmbedContents, batch, &resp, opts...); err != nil {
		return nil, err
	}

	return &resp, nil
}
