package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
)

const (
	chatPath  = "/chat"
	imagePath = "/generate-image"
)

// HTTPClient implements Client against the backend's HTTP surface.
type HTTPClient struct {
	host           string
	apiKey         string
	requestTimeout time.Duration
	// No global timeout: a chat stream stays open for as long as the
	// backend keeps producing, bounded only by the caller's context.
	httpClient *http.Client
}

// NewHTTPClient instantiates and returns a new backend client.
// requestTimeout bounds single-shot calls only, never the chat stream.
func NewHTTPClient(host, apiKey string, requestTimeout time.Duration) *HTTPClient {
	return &HTTPClient{
		host:           host,
		apiKey:         apiKey,
		requestTimeout: requestTimeout,
		httpClient:     &http.Client{},
	}
}

type wireMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Messages []wireMessage `json:"messages"`
}

type imageRequest struct {
	Prompt string `json:"prompt"`
}

// StreamChat sends the full message log and returns the response stream.
// A non-success status is reported before any delta is produced.
func (c *HTTPClient) StreamChat(ctx context.Context, messages []*Message) (Stream, error) {
	request := chatRequest{Messages: make([]wireMessage, 0, len(messages))}
	for _, message := range messages {
		request.Messages = append(request.Messages, wireMessage{Role: message.Role, Content: message.Content})
	}

	response, err := c.post(ctx, chatPath, request, "text/event-stream")
	if err != nil {
		return nil, err
	}
	if response.StatusCode != http.StatusOK {
		defer response.Body.Close()
		return nil, c.decodeError(response)
	}
	return newSSEStream(response.Body), nil
}

// GenerateImage performs the single-shot image generation call.
func (c *HTTPClient) GenerateImage(ctx context.Context, prompt string) (*ImageResult, error) {
	if c.requestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.requestTimeout)
		defer cancel()
	}

	response, err := c.post(ctx, imagePath, imageRequest{Prompt: prompt}, "application/json")
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()
	if response.StatusCode != http.StatusOK {
		return nil, c.decodeError(response)
	}

	result := &ImageResult{}
	if err := json.NewDecoder(response.Body).Decode(result); err != nil {
		return nil, errors.Wrap(err, "decoding image response")
	}
	if result.ImageURL == "" {
		return nil, errors.New("image response is missing imageUrl")
	}
	return result, nil
}

func (c *HTTPClient) post(ctx context.Context, path string, payload any, accept string) (*http.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, "marshaling request")
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.host+path, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "creating request")
	}
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Accept", accept)
	request.Header.Set("Authorization", "Bearer "+c.apiKey)

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, errors.Wrap(err, "sending request")
	}
	return response, nil
}

// decodeError turns a non-success response into an error, preferring the
// backend's own `error` field over a generic status message.
func (c *HTTPClient) decodeError(response *http.Response) error {
	body, err := io.ReadAll(response.Body)
	if err == nil {
		var envelope struct {
			Error string `json:"error"`
		}
		if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error != "" {
			return errors.New(envelope.Error)
		}
	}
	return fmt.Errorf("request failed with status %d", response.StatusCode)
}
