// Package imagegen calls an OpenAI-compatible image generation endpoint.
package imagegen

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
)

// Aspect ratios accepted by the API, mapped to concrete pixel sizes.
var aspectSizes = map[string]string{
	"16:9": "1792x1024",
	"1:1":  "1024x1024",
	"9:16": "1024x1792",
}

type Client struct {
	http  *resty.Client
	model string
}

func NewClient(baseUrl, apiKey, model string, proxy *url.URL) *Client {
	httpClient := resty.New().
		SetBaseURL(baseUrl).
		SetAuthToken(apiKey).
		SetTimeout(2 * time.Minute)
	if proxy != nil {
		httpClient.SetProxy(proxy.String())
	}
	if model == "" {
		model = "dall-e-3"
	}
	return &Client{http: httpClient, model: model}
}

type generateReq struct {
	Model          string `json:"model"`
	Prompt         string `json:"prompt"`
	N              int    `json:"n"`
	Size           string `json:"size"`
	ResponseFormat string `json:"response_format"`
}

type generateRes struct {
	Data []struct {
		B64JSON string `json:"b64_json"`
	} `json:"data"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// GenerateImage renders one image for the prompt and returns the raw bytes.
func (c *Client) GenerateImage(ctx context.Context, prompt, aspect string) ([]byte, error) {
	size, ok := aspectSizes[aspect]
	if !ok {
		return nil, fmt.Errorf("unsupported aspect ratio %q", aspect)
	}

	var res generateRes
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(generateReq{
			Model:          c.model,
			Prompt:         prompt,
			N:              1,
			Size:           size,
			ResponseFormat: "b64_json",
		}).
		SetResult(&res).
		SetError(&res).
		Post("/images/generations")
	if err != nil {
		return nil, fmt.Errorf("image generation request: %w", err)
	}
	if resp.IsError() {
		if res.Error != nil {
			return nil, fmt.Errorf("image generation: %s (%s)", res.Error.Message, res.Error.Type)
		}
		return nil, fmt.Errorf("image generation: status %d", resp.StatusCode())
	}
	if len(res.Data) == 0 || res.Data[0].B64JSON == "" {
		return nil, fmt.Errorf("image generation returned no image")
	}

	raw, err := base64.StdEncoding.DecodeString(res.Data[0].B64JSON)
	if err != nil {
		return nil, fmt.Errorf("decode image payload: %w", err)
	}
	return raw, nil
}
