// File path: internal/llm/providers/openai_client.go
package providers

import (
	"context"
	"fmt"

	openai "github.com/openai/openai-go/v2"

	"github.com/sgci-marketing/persona-studio/internal/common"
)

// OpenAIProvider sends chat completion requests to the OpenAI API.
type OpenAIProvider struct {
	client openai.Client
}

func NewOpenAIProvider(client openai.Client) *OpenAIProvider {
	return &OpenAIProvider{client: client}
}

func (o *OpenAIProvider) Complete(ctx context.Context, req Request) (string, error) {
	logger := common.Logger()
	if req.Model == "" {
		return "", fmt.Errorf("model required")
	}
	params := openai.ChatCompletionNewParams{Model: openai.ChatModel(req.Model)}
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(req.MaxTokens)
	}
	for _, msg := range req.Messages {
		switch msg.Role {
		case "system":
			params.Messages = append(params.Messages, openai.SystemMessage(msg.Content))
		case "assistant":
			params.Messages = append(params.Messages, openai.AssistantMessage(msg.Content))
		case "user":
			params.Messages = append(params.Messages, openai.UserMessage(msg.Content))
		default:
			return "", fmt.Errorf("unsupported role %q", msg.Role)
		}
	}
	logger.Debug("llm: sending completion request", "model", req.Model, "messages", len(req.Messages), "max_tokens", req.MaxTokens)
	resp, err := o.client.Chat.Completions.New(ctx, params)
	if err != nil {
		logger.Error("llm: completion failed", "model", req.Model, "error", err)
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned")
	}
	logger.Debug("llm: completion succeeded", "model", req.Model)
	return resp.Choices[0].Message.Content, nil
}

func (o *OpenAIProvider) Name() string {
	return "openai"
}
