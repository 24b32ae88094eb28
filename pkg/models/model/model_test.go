package model_test

import (
	"context"
	"errors"
	"testing"

	"github.com/germanamz/genai/internal/modeltest"
	"github.com/germanamz/genai/pkg/models/model"
	"github.com/germanamz/genai/pkg/request"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"my-model", "models/my-model"},
		{"models/my-model", "models/my-model"},
		{"tunedModels/my-model", "tunedModels/my-model"},
		{"a/b/c", "a/b/c"},
		{"/leading", "/leading"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := model.Normalize(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalize_Empty(t *testing.T) {
	_, err := model.Normalize("")
	assert.ErrorIs(t, err, model.ErrEmptyModelName)
}

func TestNew_Empty(t *testing.T) {
	_, err := model.New("key", model.Params{})
	assert.ErrorIs(t, err, model.ErrEmptyModelName)
}

func TestNew_DefaultsCopied(t *testing.T) {
	headers := map[string]string{"x-a": "1"}

	b, err := model.New("key", model.Params{Model: "m"},
		model.WithRequestOptions(request.RequestOptions{CustomHeaders: headers}))
	require.NoError(t, err)

	headers["x-a"] = "changed"
	assert.Equal(t, "1", b.RequestOptions().CustomHeaders["x-a"])

	got := b.RequestOptions()
	got.CustomHeaders["x-a"] = "mutated"
	assert.Equal(t, "1", b.RequestOptions().CustomHeaders["x-a"])
}

func TestCall_PassesMergedOptions(t *testing.T) {
	fake := &modeltest.FakeRequester{Response: `{"value":"ok"}`}

	b, err := model.New("key", model.Params{Model: "m"},
		model.WithRequester(fake),
		model.WithRequestOptions(request.RequestOptions{APIVersion: "v6", BaseURL: "http://base"}))
	require.NoError(t, err)

	var out struct {
		Value string `json:"value"`
	}
	err = b.Call(context.Background(), request.TaskGenerateContent, map[string]string{"q": "hello"}, &out,
		request.SingleRequestOptions{APIVersion: "v7"})
	require.NoError(t, err)
	assert.Equal(t, "ok", out.Value)

	call, ok := fake.LastCall()
	require.True(t, ok)
	assert.Equal(t, "models/m", call.Model)
	assert.Equal(t, "key", call.APIKey)
	assert.False(t, call.Stream)
	assert.JSONEq(t, `{"q":"hello"}`, call.Body)
	assert.Equal(t, "v7", call.Options.APIVersion)
	assert.Equal(t, "http://base", call.Options.BaseURL)
}

func TestCall_ErrorUnchanged(t *testing.T) {
	sentinel := errors.New("boom")
	fake := &modeltest.FakeRequester{Err: sentinel}

	b, err := model.New("key", model.Params{Model: "m"}, model.WithRequester(fake))
	require.NoError(t, err)

	var out map[string]any
	err = b.Call(context.Background(), request.TaskGenerateContent, struct{}{}, &out)
	assert.Same(t, sentinel, err)
}

func TestCall_UnencodablePayload(t *testing.T) {
	fake := &modeltest.FakeRequester{}

	b, err := model.New("key", model.Params{Model: "m"}, model.WithRequester(fake))
	require.NoError(t, err)

	var out map[string]any
	err = b.Call(context.Background(), request.TaskGenerateContent, make(chan int), &out)

	var inputErr *request.RequestInputError
	require.ErrorAs(t, err, &inputErr)
	assert.Empty(t, fake.Calls())
}
