// Package gentools turns the text, image and speech models into toolbox
// tools.
package gentools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/germanamz/genai/pkg/content"
	"github.com/germanamz/genai/pkg/request"
	"github.com/germanamz/genai/pkg/storage"
	"github.com/germanamz/genai/pkg/tools/toolbox"
)

// Tool names.
const (
	GenerateText   = "generate_text"
	GenerateImage  = "generate_image"
	GenerateSpeech = "generate_speech"
)

// ErrEmptyPrompt is returned when a tool is called without a prompt.
var ErrEmptyPrompt = errors.New("prompt is required")

// TextGenerator is satisfied by *text.Model.
type TextGenerator interface {
	GenerateContent(ctx context.Context, in content.ContentInput, opts ...request.SingleRequestOptions) (*content.GenerateContentResponse, error)
}

// ImageGenerator is satisfied by *image.Model.
type ImageGenerator interface {
	GenerateImages(ctx context.Context, in content.ImageInput, opts ...request.SingleRequestOptions) (*content.ImageGenerationResponse, error)
}

// SpeechGenerator is satisfied by *speech.Model.
type SpeechGenerator interface {
	GenerateSpeech(ctx context.Context, in content.SpeechInput, opts ...request.SingleRequestOptions) (*content.SpeechGenerationResponse, error)
}

// Generators selects which tools are built. Nil generators are left out.
// Sink receives inline media from the image and speech tools.
type Generators struct {
	Text   TextGenerator
	Image  ImageGenerator
	Speech SpeechGenerator
	Sink   storage.Sink
}

// Tools returns one tool per configured generator.
func Tools(g Generators) []toolbox.Tool {
	sink := g.Sink
	if sink == nil {
		sink = storage.NewDir(".")
	}

	var tools []toolbox.Tool
	if g.Text != nil {
		tools = append(tools, textTool(g.Text))
	}
	if g.Image != nil {
		tools = append(tools, imageTool(g.Image, sink))
	}
	if g.Speech != nil {
		tools = append(tools, speechTool(g.Speech, sink))
	}

	return tools
}

type textInput struct {
	Prompt          string   `json:"prompt"`
	System          string   `json:"system,omitempty"`
	Temperature     *float64 `json:"temperature,omitempty"`
	MaxOutputTokens int      `json:"max_output_tokens,omitempty"`
}

func textTool(m TextGenerator) toolbox.Tool {
	return toolbox.Tool{
		Name:        GenerateText,
		Description: "Generate text from a prompt. Returns the model's reply.",
		InputSchema: json.RawMessage(`{
  "type": "object",
  "properties": {
    "prompt": {"type": "string", "description": "What to ask the model"},
    "system": {"type": "string", "description": "Optional system instruction"},
    "temperature": {"type": "number", "minimum": 0},
    "max_output_tokens": {"type": "integer", "minimum": 1}
  },
  "required": ["prompt"]
}`),
		Handler: func(ctx context.Context, raw json.RawMessage) (string, error) {
			var in textInput
			if err := decode(GenerateText, raw, &in); err != nil {
				return "", err
			}

			req := content.Prompt(in.Prompt).ContentRequest()
			if in.System != "" {
				sys := content.Content{Parts: []content.Part{content.Text(in.System)}}
				req.SystemInstruction = &sys
			}
			if in.Temperature != nil || in.MaxOutputTokens > 0 {
				req.GenerationConfig = &content.GenerationConfig{
					Temperature:     in.Temperature,
					MaxOutputTokens: in.MaxOutputTokens,
				}
			}

			resp, err := m.GenerateContent(ctx, req)
			if err != nil {
				return "", err
			}

			return resp.Text()
		},
	}
}

type imageInput struct {
	Prompt         string `json:"prompt"`
	NumberOfImages int    `json:"number_of_images,omitempty"`
	AspectRatio    string `json:"aspect_ratio,omitempty"`
	NegativePrompt string `json:"negative_prompt,omitempty"`
	Name           string `json:"name,omitempty"`
}

func imageTool(m ImageGenerator, sink storage.Sink) toolbox.Tool {
	return toolbox.Tool{
		Name:        GenerateImage,
		Description: "Generate images from a description. Returns one stored location per line.",
		InputSchema: json.RawMessage(`{
  "type": "object",
  "properties": {
    "prompt": {"type": "string", "description": "Image description"},
    "number_of_images": {"type": "integer", "minimum": 1, "maximum": 8},
    "aspect_ratio": {"type": "string", "enum": ["1:1", "3:4", "4:3", "9:16", "16:9"]},
    "negative_prompt": {"type": "string"},
    "name": {"type": "string", "description": "File name stem, defaults to \"image\""}
  },
  "required": ["prompt"]
}`),
		Handler: func(ctx context.Context, raw json.RawMessage) (string, error) {
			var in imageInput
			if err := decode(GenerateImage, raw, &in); err != nil {
				return "", err
			}

			resp, err := m.GenerateImages(ctx, content.ImageGenerationRequest{
				Prompt:         in.Prompt,
				NumberOfImages: in.NumberOfImages,
				AspectRatio:    in.AspectRatio,
				NegativePrompt: in.NegativePrompt,
			})
			if err != nil {
				return "", err
			}

			return save(ctx, sink, stem(in.Name, "image"), resp.Images)
		},
	}
}

type speechInput struct {
	Prompt       string `json:"prompt"`
	Voice        string `json:"voice,omitempty"`
	LanguageCode string `json:"language_code,omitempty"`
	Name         string `json:"name,omitempty"`
}

func speechTool(m SpeechGenerator, sink storage.Sink) toolbox.Tool {
	return toolbox.Tool{
		Name:        GenerateSpeech,
		Description: "Synthesize speech from text. Returns the stored audio location.",
		InputSchema: json.RawMessage(`{
  "type": "object",
  "properties": {
    "prompt": {"type": "string", "description": "Text to speak"},
    "voice": {"type": "string"},
    "language_code": {"type": "string", "description": "BCP-47 code, e.g. en-US"},
    "name": {"type": "string", "description": "File name stem, defaults to \"speech\""}
  },
  "required": ["prompt"]
}`),
		Handler: func(ctx context.Context, raw json.RawMessage) (string, error) {
			var in speechInput
			if err := decode(GenerateSpeech, raw, &in); err != nil {
				return "", err
			}

			resp, err := m.GenerateSpeech(ctx, content.SpeechGenerationRequest{
				Prompt:       in.Prompt,
				Voice:        in.Voice,
				LanguageCode: in.LanguageCode,
			})
			if err != nil {
				return "", err
			}

			return save(ctx, sink, stem(in.Name, "speech"), []content.GeneratedMedia{resp.GeneratedMedia})
		},
	}
}

// prompter is implemented by every tool input.
type prompter interface{ prompt() string }

func (i textInput) prompt() string   { return i.Prompt }
func (i imageInput) prompt() string  { return i.Prompt }
func (i speechInput) prompt() string { return i.Prompt }

func decode[T prompter](name string, raw json.RawMessage, dest *T) error {
	if err := toolbox.Decode(name, raw, dest); err != nil {
		return err
	}
	if strings.TrimSpace((*dest).prompt()) == "" {
		return fmt.Errorf("%s: %w", name, ErrEmptyPrompt)
	}

	return nil
}

func save(ctx context.Context, sink storage.Sink, name string, media []content.GeneratedMedia) (string, error) {
	locs, err := storage.Save(ctx, sink, name, media)
	if err != nil {
		return "", err
	}

	return strings.Join(locs, "\n"), nil
}

func stem(name, fallback string) string {
	if name == "" {
		return fallback
	}

	return name
}
