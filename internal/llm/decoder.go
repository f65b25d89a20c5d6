package llm

import (
	"bufio"
	"encoding/json"
	"io"
	"strings"

	"github.com/nexusai/nexus/internal/debug"
)

const (
	framePrefix  = "data: "
	doneSentinel = "[DONE]"
)

// chatCompletionChunk is the streaming delta envelope emitted by the backend.
type chatCompletionChunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
}

// sseStream decodes a chunked `data: <json>` body into delta events.
// Frames are newline-delimited, so a multi-byte rune split across two
// reads of the body is reassembled before any fragment is emitted.
type sseStream struct {
	body   io.ReadCloser
	reader *bufio.Reader
	err    error
}

func newSSEStream(body io.ReadCloser) *sseStream {
	return &sseStream{
		body:   body,
		reader: bufio.NewReader(body),
	}
}

// Recv returns the next delta event, or io.EOF once the [DONE] sentinel is
// seen or the body is exhausted. Lines without the frame prefix, malformed
// JSON and frames without delta content are all consumed silently.
func (s *sseStream) Recv() (*StreamEvent, error) {
	if s.err != nil {
		return nil, s.err
	}
	for {
		line, err := s.reader.ReadString('\n')
		if err != nil {
			if err != io.EOF {
				s.err = err
				return nil, err
			}
			s.err = io.EOF
			// An unterminated final line is still a candidate frame.
			if event, _ := decodeFrame(line); event != nil {
				return event, nil
			}
			return nil, io.EOF
		}
		event, done := decodeFrame(line)
		if done {
			s.err = io.EOF
			return nil, io.EOF
		}
		if event != nil {
			return event, nil
		}
	}
}

// Close releases the underlying body.
func (s *sseStream) Close() {
	s.body.Close()
}

// decodeFrame extracts the delta fragment from a single line. It returns a
// nil event when the line carries nothing to emit, and done when the line is
// the termination sentinel.
func decodeFrame(line string) (event *StreamEvent, done bool) {
	line = strings.TrimRight(line, "\r\n")
	if !strings.HasPrefix(line, framePrefix) {
		return nil, false
	}
	payload := strings.TrimSpace(line[len(framePrefix):])
	if payload == doneSentinel {
		return nil, true
	}

	var chunk chatCompletionChunk
	if err := json.Unmarshal([]byte(payload), &chunk); err != nil {
		debug.Logger().Debug("skipping malformed frame", "payload", payload, "error", err)
		return nil, false
	}
	if len(chunk.Choices) == 0 || chunk.Choices[0].Delta.Content == "" {
		return nil, false
	}
	return &StreamEvent{Content: chunk.Choices[0].Delta.Content}, false
}
