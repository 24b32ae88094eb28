package content

import (
	"slices"
	"strings"
)

// SafetySetting sets the blocking threshold for one harm category. Values
// are passed through as strings, e.g. "HARM_CATEGORY_HARASSMENT" and
// "BLOCK_ONLY_HIGH".
type SafetySetting struct {
	Category  string `json:"category"`
	Threshold string `json:"threshold"`
}

// SafetyRating is the service's assessment of one harm category.
type SafetyRating struct {
	Category    string `json:"category"`
	Probability string `json:"probability"`
	Blocked     bool   `json:"blocked,omitempty"`
}

// GenerationConfig tunes sampling. Nil pointers leave the service default.
type GenerationConfig struct {
	CandidateCount   int      `json:"candidateCount,omitempty"`
	StopSequences    []string `json:"stopSequences,omitempty"`
	MaxOutputTokens  int      `json:"maxOutputTokens,omitempty"`
	Temperature      *float64 `json:"temperature,omitempty"`
	TopP             *float64 `json:"topP,omitempty"`
	TopK             *int     `json:"topK,omitempty"`
	ResponseMIMEType string   `json:"responseMimeType,omitempty"`
}

// GenerateContentRequest is the body of a generateContent call.
type GenerateContentRequest struct {
	Contents          []Content         `json:"contents"`
	SystemInstruction *Content          `json:"systemInstruction,omitempty"`
	GenerationConfig  *GenerationConfig `json:"generationConfig,omitempty"`
	SafetySettings    []SafetySetting   `json:"safetySettings,omitempty"`
}

// ContentInput is accepted by GenerateContent and CountTokens: a Prompt,
// Parts, or a full GenerateContentRequest.
type ContentInput interface {
	ContentRequest() GenerateContentRequest
}

// Parts is a list of parts sent as a single user turn.
type Parts []Part

// ContentRequest wraps the prompt in a single user turn.
func (p Prompt) ContentRequest() GenerateContentRequest {
	return GenerateContentRequest{Contents: []Content{UserContent(Text(string(p)))}}
}

// ContentRequest wraps the parts in a single user turn.
func (p Parts) ContentRequest() GenerateContentRequest {
	return GenerateContentRequest{Contents: []Content{UserContent(p...)}}
}

// ContentRequest returns r unchanged.
func (r GenerateContentRequest) ContentRequest() GenerateContentRequest { return r }

// Candidate is one generated answer.
type Candidate struct {
	Index         int            `json:"index"`
	Content       Content        `json:"content"`
	FinishReason  string         `json:"finishReason,omitempty"`
	FinishMessage string         `json:"finishMessage,omitempty"`
	SafetyRatings []SafetyRating `json:"safetyRatings,omitempty"`
}

// PromptFeedback reports why a prompt was blocked, if it was.
type PromptFeedback struct {
	BlockReason        string         `json:"blockReason,omitempty"`
	BlockReasonMessage string         `json:"blockReasonMessage,omitempty"`
	SafetyRatings      []SafetyRating `json:"safetyRatings,omitempty"`
}

// UsageMetadata reports token counts for a call.
type UsageMetadata struct {
	PromptTokenCount     int `json:"promptTokenCount"`
	CandidatesTokenCount int `json:"candidatesTokenCount"`
	TotalTokenCount      int `json:"totalTokenCount"`
}

// GenerateContentResponse is the result of a generateContent call.
type GenerateContentResponse struct {
	Candidates     []Candidate     `json:"candidates,omitempty"`
	PromptFeedback *PromptFeedback `json:"promptFeedback,omitempty"`
	UsageMetadata  *UsageMetadata  `json:"usageMetadata,omitempty"`
}

// badFinishReasons mark a candidate whose content must not be returned as text.
var badFinishReasons = []string{
	"SAFETY", "RECITATION", "LANGUAGE", "BLOCKLIST", "PROHIBITED_CONTENT", "SPII", "OTHER",
}

// BlockedError is returned by GenerateContentResponse.Text when the prompt
// or the first candidate was blocked.
type BlockedError struct {
	Message  string
	Response GenerateContentResponse
}

func (e *BlockedError) Error() string { return "[GoogleGenerativeAI Error]: " + e.Message }

// Text concatenates the text parts of the first candidate. An empty
// response without feedback yields "".
func (r GenerateContentResponse) Text() (string, error) {
	if len(r.Candidates) == 0 {
		if r.PromptFeedback != nil {
			return "", &BlockedError{Message: "text not available. " + r.blockMessage(), Response: r}
		}

		return "", nil
	}

	first := r.Candidates[0]
	if slices.Contains(badFinishReasons, first.FinishReason) {
		return "", &BlockedError{Message: r.blockMessage(), Response: r}
	}

	var sb strings.Builder
	for _, p := range first.Content.Parts {
		sb.WriteString(p.Text)
	}

	return sb.String(), nil
}

func (r GenerateContentResponse) blockMessage() string {
	if len(r.Candidates) == 0 && r.PromptFeedback != nil {
		msg := "response was blocked"
		if r.PromptFeedback.BlockReason != "" {
			msg += " due to " + r.PromptFeedback.BlockReason
		}
		if r.PromptFeedback.BlockReasonMessage != "" {
			msg += ": " + r.PromptFeedback.BlockReasonMessage
		}

		return msg
	}

	first := r.Candidates[0]
	msg := "candidate was blocked due to " + first.FinishReason
	if first.FinishMessage != "" {
		msg += ": " + first.FinishMessage
	}

	return msg
}

// CountTokensResponse is the result of a countTokens call.
type CountTokensResponse struct {
	TotalTokens int `json:"totalTokens"`
}
