package content_test

import (
	"encoding/json"
	"testing"

	"github.com/germanamz/genai/pkg/content"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlob_RoundTrip(t *testing.T) {
	b := content.NewBlob("audio/mpeg", []byte("sound"))
	assert.Equal(t, "c291bmQ=", b.Data)

	data, err := b.Bytes()
	require.NoError(t, err)
	assert.Equal(t, []byte("sound"), data)
}

func TestBlob_BadBase64(t *testing.T) {
	_, err := content.Blob{Data: "!!!"}.Bytes()
	assert.Error(t, err)
}

func TestPrompt_ContentRequest(t *testing.T) {
	req := content.Prompt("hello").ContentRequest()

	require.Len(t, req.Contents, 1)
	assert.Equal(t, content.RoleUser, req.Contents[0].Role)
	assert.Equal(t, []content.Part{{Text: "hello"}}, req.Contents[0].Parts)
}

func TestParts_ContentRequest(t *testing.T) {
	parts := content.Parts{
		content.Text("describe"),
		{InlineData: content.NewBlob("image/png", []byte{1})},
	}

	req := parts.ContentRequest()

	require.Len(t, req.Contents, 1)
	assert.Len(t, req.Contents[0].Parts, 2)
}

func TestRequest_PassThrough(t *testing.T) {
	img := content.ImageGenerationRequest{Prompt: "cat", NumberOfImages: 2}
	assert.Equal(t, img, img.ImageRequest())

	sp := content.SpeechGenerationRequest{Prompt: "hi", Voice: "Kore"}
	assert.Equal(t, sp, sp.SpeechRequest())

	gen := content.GenerateContentRequest{Contents: []content.Content{content.UserContent(content.Text("x"))}}
	assert.Equal(t, gen, gen.ContentRequest())
}

func TestPrompt_MediaRequests(t *testing.T) {
	assert.Equal(t, "A fluffy cat", content.Prompt("A fluffy cat").ImageRequest().Prompt)
	assert.Equal(t, "A fluffy cat", content.Prompt("A fluffy cat").SpeechRequest().Prompt)
	assert.Equal(t, "A fluffy cat", content.Prompt("A fluffy cat").EmbedRequest().Content.Parts[0].Text)
}

func TestSpeechResponse_Decode(t *testing.T) {
	raw := `{"inlineData":{"mimeType":"audio/wav","data":"AAEC"},"fileData":{"mimeType":"audio/wav","fileUri":"https://files/abc"}}`

	var resp content.SpeechGenerationResponse
	require.NoError(t, json.Unmarshal([]byte(raw), &resp))

	require.NotNil(t, resp.InlineData)
	data, err := resp.InlineData.Bytes()
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 1, 2}, data)
	require.NotNil(t, resp.FileData)
	assert.Equal(t, "https://files/abc", resp.FileData.FileURI)
}

func TestText_Concatenates(t *testing.T) {
	resp := content.GenerateContentResponse{
		Candidates: []content.Candidate{{
			Content:      content.Content{Role: content.RoleModel, Parts: []content.Part{content.Text("Hello, "), content.Text("world")}},
			FinishReason: "STOP",
		}},
	}

	text, err := resp.Text()
	require.NoError(t, err)
	assert.Equal(t, "Hello, world", text)
}

func TestText_Empty(t *testing.T) {
	text, err := content.GenerateContentResponse{}.Text()
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestText_PromptBlocked(t *testing.T) {
	resp := content.GenerateContentResponse{
		PromptFeedback: &content.PromptFeedback{BlockReason: "SAFETY"},
	}

	_, err := resp.Text()

	var blocked *content.BlockedError
	require.ErrorAs(t, err, &blocked)
	assert.Contains(t, err.Error(), "response was blocked due to SAFETY")
}

func TestText_CandidateBlocked(t *testing.T) {
	resp := content.GenerateContentResponse{
		Candidates: []content.Candidate{{FinishReason: "RECITATION", FinishMessage: "quoted"}},
	}

	_, err := resp.Text()

	var blocked *content.BlockedError
	require.ErrorAs(t, err, &blocked)
	assert.Contains(t, err.Error(), "candidate was blocked due to RECITATION: quoted")
}
