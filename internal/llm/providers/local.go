// File path: internal/llm/providers/local.go
package providers

import (
	"context"
	"fmt"
	"strings"
)

// Message is one turn of a completion request.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request describes a single non-streaming completion round trip.
type Request struct {
	Model     string
	MaxTokens int64
	Messages  []Message
}

// Provider is the completion boundary: one synchronous request, one text
// response or an error.
type Provider interface {
	Complete(ctx context.Context, req Request) (string, error)
	Name() string
}

// LocalProvider echoes the last message back. It stands in for the real
// provider in offline runs and tests.
type LocalProvider struct{}

func NewLocalProvider() *LocalProvider {
	return &LocalProvider{}
}

func (l *LocalProvider) Complete(ctx context.Context, req Request) (string, error) {
	if len(req.Messages) == 0 {
		return "", fmt.Errorf("no messages provided")
	}
	last := req.Messages[len(req.Messages)-1].Content
	return "[local-stub] " + strings.TrimSpace(last), nil
}

func (l *LocalProvider) Name() string {
	return "local"
}
