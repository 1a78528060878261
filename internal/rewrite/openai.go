package rewrite

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const rewriteTemperature = 0.7

// OpenAIRewriter calls OpenAI's chat-completion API to produce the
// sectioned rewrite. One request, one response, no retry.
type OpenAIRewriter struct {
	client openai.Client
	model  string
}

func NewOpenAIRewriter(apiKey, model string) *OpenAIRewriter {
	return &OpenAIRewriter{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}
}

func (r *OpenAIRewriter) Rewrite(ctx context.Context, req Request) (string, error) {
	prompt := BuildPrompt(req)

	resp, err := r.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(r.model),
		Temperature: openai.Float(rewriteTemperature),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("no choices in response")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", errors.New("completion is empty")
	}

	return content, nil
}
