package client_test

import (
	"context"
	"testing"

	"github.com/germanamz/genai/internal/modeltest"
	"github.com/germanamz/genai/pkg/client"
	"github.com/germanamz/genai/pkg/content"
	"github.com/germanamz/genai/pkg/models/model"
	"github.com/germanamz/genai/pkg/models/text"
	"github.com/germanamz/genai/pkg/request"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_StoresKey(t *testing.T) {
	g := client.New("apiKey")
	assert.Equal(t, "apiKey", g.APIKey())
}

func TestGenerativeModel_RequiresName(t *testing.T) {
	g := client.New("apiKey")

	_, err := g.GenerativeModel(text.Params{})
	assert.ErrorIs(t, err, model.ErrEmptyModelName)
}

func TestWrappersShareRequester(t *testing.T) {
	fake := &modeltest.FakeRequester{Response: `{}`}
	g := client.New("apiKey", client.WithRequester(fake))

	tm, err := g.GenerativeModel(text.Params{Model: "gemini-pro"}, request.RequestOptions{APIVersion: "v6"})
	require.NoError(t, err)
	im, err := g.ImageGenerationModel(model.Params{Model: "imagen"})
	require.NoError(t, err)
	sm, err := g.SpeechGenerationModel(model.Params{Model: "tunedModels/voice"}, request.RequestOptions{Timeout: 5})
	require.NoError(t, err)

	ctx := context.Background()
	_, err = tm.GenerateContent(ctx, content.Prompt("a"))
	require.NoError(t, err)
	_, err = im.GenerateImages(ctx, content.Prompt("b"))
	require.NoError(t, err)
	_, err = sm.GenerateSpeech(ctx, content.Prompt("c"))
	require.NoError(t, err)

	calls := fake.Calls()
	require.Len(t, calls, 3)

	assert.Equal(t, "models/gemini-pro", calls[0].Model)
	assert.Equal(t, request.TaskGenerateContent, calls[0].Task)
	assert.Equal(t, "v6", calls[0].Options.APIVersion)

	assert.Equal(t, "models/imagen", calls[1].Model)
	assert.Equal(t, request.TaskGenerateImages, calls[1].Task)
	assert.Empty(t, calls[1].Options.APIVersion)

	assert.Equal(t, "tunedModels/voice", calls[2].Model)
	assert.Equal(t, request.TaskGenerateSpeech, calls[2].Task)
	assert.EqualValues(t, 5, calls[2].Options.Timeout)

	for _, c := range calls {
		assert.Equal(t, "apiKey", c.APIKey)
	}
}

func TestMultipleOptionSetsMerge(t *testing.T) {
	fake := &modeltest.FakeRequester{Response: `{"images":[]}`}
	g := client.New("apiKey", client.WithRequester(fake))

	im, err := g.ImageGenerationModel(model.Params{Model: "imagen"},
		request.RequestOptions{APIVersion: "v6", APIClient: "a"},
		request.RequestOptions{APIClient: "b"})
	require.NoError(t, err)

	opts := im.RequestOptions()
	assert.Equal(t, "v6", opts.APIVersion)
	assert.Equal(t, "b", opts.APIClient)
}
