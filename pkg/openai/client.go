package openai

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	openai "github.com/sashabaranov/go-openai"
)

type Client struct {
	client *openai.Client
	model  string
}

func NewClient(baseUrl, apiKey, model string, proxy *url.URL) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseUrl != "" {
		cfg.BaseURL = baseUrl
	}

	transport := &http.Transport{}
	if proxy != nil {
		transport.Proxy = http.ProxyURL(proxy)
	}
	// No client timeout: script analysis of long inputs can take minutes,
	// the caller bounds the wait through ctx.
	cfg.HTTPClient = &http.Client{Transport: transport}

	if model == "" {
		model = openai.GPT4oMini
	}

	return &Client{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

// ChatCompletion sends one system+user exchange and returns the assistant
// reply text.
func (c *Client) ChatCompletion(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
