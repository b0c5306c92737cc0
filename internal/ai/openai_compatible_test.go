package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAICompatibleClient_CreateImage(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/images/generations", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"data":[{"url":"https://cdn.example/1.png"},{"url":"https://cdn.example/2.png"}]}`))
	}))
	defer srv.Close()

	client := NewOpenAICompatibleClient(ImageConfig{BaseURL: srv.URL + "/v1/", APIKey: "sk-test", Model: "dall-e-3"}, time.Second)
	url, err := client.CreateImage(context.Background(), ImageRequest{Prompt: "a cat", Size: SizeWide})
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.example/1.png", url)
	assert.Equal(t, "dall-e-3", got["model"])
	assert.Equal(t, "a cat", got["prompt"])
	assert.EqualValues(t, 1, got["n"])
	assert.Equal(t, SizeWide, got["size"])
}

func TestOpenAICompatibleClient_ProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"Incorrect API key provided"}}`))
	}))
	defer srv.Close()

	client := NewOpenAICompatibleClient(ImageConfig{BaseURL: srv.URL}, time.Second)
	_, err := client.CreateImage(context.Background(), ImageRequest{Prompt: "a cat", Size: SizeSquare})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
	assert.Contains(t, err.Error(), "Incorrect API key provided")
}

func TestOpenAICompatibleClient_MalformedResponses(t *testing.T) {
	for name, body := range map[string]string{
		"not json":   `<html>`,
		"empty data": `{"data":[]}`,
		"empty url":  `{"data":[{"b64_json":"abc"}]}`,
	} {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(body))
			}))
			defer srv.Close()

			client := NewOpenAICompatibleClient(ImageConfig{BaseURL: srv.URL}, time.Second)
			_, err := client.CreateImage(context.Background(), ImageRequest{Prompt: "p", Size: SizeSquare})
			assert.Error(t, err)
		})
	}
}

func TestFakeImageClient(t *testing.T) {
	fake := NewFakeImageClient()

	url, err := fake.CreateImage(context.Background(), ImageRequest{Prompt: "p", Size: SizeTall})
	require.NoError(t, err)
	assert.Equal(t, "https://images.invalid/fake/1-1024x1792.png", url)

	fake.FailWith(errors.New("quota exceeded"))
	_, err = fake.CreateImage(context.Background(), ImageRequest{Prompt: "q", Size: SizeSquare})
	assert.EqualError(t, err, "quota exceeded")

	reqs := fake.Requests()
	require.Len(t, reqs, 2)
	assert.Equal(t, "q", reqs[1].Prompt)
}
