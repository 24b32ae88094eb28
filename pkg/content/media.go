package content

// ImageGenerationRequest is the body of a generateImages call.
type ImageGenerationRequest struct {
	Prompt         string `json:"prompt"`
	NumberOfImages int    `json:"numberOfImages,omitempty"`
	NegativePrompt string `json:"negativePrompt,omitempty"`
	AspectRatio    string `json:"aspectRatio,omitempty"`
}

// ImageInput is accepted by GenerateImages: a Prompt or a full
// ImageGenerationRequest.
type ImageInput interface {
	ImageRequest() ImageGenerationRequest
}

// ImageRequest uses the prompt as the image description.
func (p Prompt) ImageRequest() ImageGenerationRequest {
	return ImageGenerationRequest{Prompt: string(p)}
}

// ImageRequest returns r unchanged.
func (r ImageGenerationRequest) ImageRequest() ImageGenerationRequest { return r }

// ImageGenerationResponse holds the generated pictures, as many as
// NumberOfImages asked for.
type ImageGenerationResponse struct {
	Images []GeneratedMedia `json:"images"`
}

// SpeechGenerationRequest is the body of a generateSpeech call.
type SpeechGenerationRequest struct {
	Prompt        string `json:"prompt"`
	Voice         string `json:"voice,omitempty"`
	LanguageCode  string `json:"languageCode,omitempty"`
	AudioEncoding string `json:"audioEncoding,omitempty"`
}

// SpeechInput is accepted by GenerateSpeech: a Prompt or a full
// SpeechGenerationRequest.
type SpeechInput interface {
	SpeechRequest() SpeechGenerationRequest
}

// SpeechRequest uses the prompt as the text to speak.
func (p Prompt) SpeechRequest() SpeechGenerationRequest {
	return SpeechGenerationRequest{Prompt: string(p)}
}

// SpeechRequest returns r unchanged.
func (r SpeechGenerationRequest) SpeechRequest() SpeechGenerationRequest { return r }

// SpeechGenerationResponse carries the generated audio inline, as a file
// reference, or both.
type SpeechGenerationResponse struct {
	GeneratedMedia
}
