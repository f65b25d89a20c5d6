package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamChatDeliversDeltas(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chat", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var request struct {
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&request))
		require.Len(t, request.Messages, 2)
		assert.Equal(t, "user", request.Messages[1].Role)

		w.Header().Set("Content-Type", "text/event-stream")
		_, _ = w.Write([]byte("data: {\"choices\":[{\"delta\":{\"content\":\"Hel\"}}]}\n\n"))
		_, _ = w.Write([]byte("data: {\"choices\":[{\"delta\":{\"content\":\"lo\"}}]}\n\n"))
		_, _ = w.Write([]byte("data: [DONE]\n\n"))
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, "test-key", time.Minute)
	stream, err := client.StreamChat(context.Background(), []*Message{
		{Role: RoleAssistant, Content: "hi there"},
		{Role: RoleUser, Content: "hello"},
	})
	require.NoError(t, err)
	defer stream.Close()

	fragments := drain(t, stream)
	assert.Equal(t, []string{"Hel", "lo"}, fragments)
}

func TestStreamChatReportsBackendError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error": "rate limit exceeded"}`))
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, "test-key", time.Minute)
	_, err := client.StreamChat(context.Background(), []*Message{{Role: RoleUser, Content: "hello"}})
	require.Error(t, err)
	assert.Equal(t, "rate limit exceeded", err.Error())
}

func TestStreamChatGenericErrorOnUnparseableBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream exploded"))
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, "test-key", time.Minute)
	_, err := client.StreamChat(context.Background(), []*Message{{Role: RoleUser, Content: "hello"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestGenerateImage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/generate-image", r.URL.Path)

		var request struct {
			Prompt string `json:"prompt"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&request))
		assert.Equal(t, "draw me a picture of a cat", request.Prompt)

		_, _ = w.Write([]byte(`{"description": "A cat.", "imageUrl": "https://img.example/cat.png"}`))
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, "test-key", time.Minute)
	result, err := client.GenerateImage(context.Background(), "draw me a picture of a cat")
	require.NoError(t, err)
	assert.Equal(t, "A cat.", result.Description)
	assert.Equal(t, "https://img.example/cat.png", result.ImageURL)
}

func TestGenerateImageWithoutDescription(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"imageUrl": "x"}`))
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, "test-key", time.Minute)
	result, err := client.GenerateImage(context.Background(), "generate an image of a dog")
	require.NoError(t, err)
	assert.Empty(t, result.Description)
	assert.Equal(t, "x", result.ImageURL)
}

func TestGenerateImageMissingURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"description": "no image though"}`))
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, "test-key", time.Minute)
	_, err := client.GenerateImage(context.Background(), "generate an image of a dog")
	assert.Error(t, err)
}

func TestGenerateImageError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": "model unavailable"}`))
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, "test-key", time.Minute)
	_, err := client.GenerateImage(context.Background(), "generate an image of a dog")
	require.Error(t, err)
	assert.Equal(t, "model unavailable", err.Error())
}
