package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/bryanwahyu/darkwatch/internal/domain/classifier"
	"github.com/bryanwahyu/darkwatch/internal/infra/classifier/prompt"
)

const maxTokens = 2048

type Client struct {
	*openai.Client
	Model string
}

func NewClient(apiKey, model string) *Client {
	return &Client{Client: openai.NewClient(apiKey), Model: model}
}

// Classify asks the chat model for a structured classification.
func (c *Client) Classify(ctx context.Context, text, modelType string) (*classifier.Result, error) {
	model := c.Model
	if model == "" {
		model = "o3-2025-04-16"
	}
	req := openai.ChatCompletionRequest{
		Model: model,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompt.GetSystemPrompt()},
			{Role: openai.ChatMessageRoleUser, Content: prompt.GetUserPrompt(text)},
		},
	}
	// For reasoning models (o1/o3/o4/gpt-5*) use MaxCompletionTokens instead of MaxTokens
	if strings.HasPrefix(model, "o1") || strings.HasPrefix(model, "o3") || strings.HasPrefix(model, "o4") || strings.HasPrefix(model, "gpt-5") {
		req.MaxCompletionTokens = maxTokens
	} else {
		req.MaxTokens = maxTokens
	}

	started := time.Now()
	resp, err := c.CreateChatCompletion(ctx, req)
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == 429 {
			return nil, classifier.ErrQuotaExceeded
		}
		return nil, fmt.Errorf("failed to create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: empty completion", classifier.ErrUnavailable)
	}

	res, err := prompt.ParseResult(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}
	res.ModelType = model
	res.ProcessingTime = time.Since(started).Seconds()
	return res, nil
}

// ClassifyBatch classifies texts one by one; the chat API has no batch mode.
func (c *Client) ClassifyBatch(ctx context.Context, texts []string, modelType string) ([]*classifier.Result, error) {
	out := make([]*classifier.Result, 0, len(texts))
	for _, text := range texts {
		res, err := c.Classify(ctx, text, modelType)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, nil
}
