// Package tts calls an OpenAI-compatible speech synthesis endpoint.
package tts

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
)

const outputMime = "audio/mpeg"

type Client struct {
	http  *resty.Client
	model string
}

func NewClient(baseUrl, apiKey, model string, proxy *url.URL) *Client {
	httpClient := resty.New().
		SetBaseURL(baseUrl).
		SetAuthToken(apiKey).
		SetTimeout(time.Minute)
	if proxy != nil {
		httpClient.SetProxy(proxy.String())
	}
	if model == "" {
		model = "tts-1"
	}
	return &Client{http: httpClient, model: model}
}

type speechReq struct {
	Model          string  `json:"model"`
	Input          string  `json:"input"`
	Voice          string  `json:"voice"`
	Speed          float64 `json:"speed,omitempty"`
	ResponseFormat string  `json:"response_format"`
}

// Synthesize produces narration audio for the text. speakingRate is the
// playback speed multiplier in [0.7, 1.3].
func (c *Client) Synthesize(ctx context.Context, text, voice string, speakingRate float64) ([]byte, string, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(speechReq{
			Model:          c.model,
			Input:          text,
			Voice:          voice,
			Speed:          speakingRate,
			ResponseFormat: "mp3",
		}).
		Post("/audio/speech")
	if err != nil {
		return nil, "", fmt.Errorf("speech synthesis request: %w", err)
	}
	if resp.IsError() {
		return nil, "", fmt.Errorf("speech synthesis: status %d: %s", resp.StatusCode(), resp.String())
	}

	audio := resp.Body()
	if len(audio) == 0 {
		return nil, "", fmt.Errorf("speech synthesis returned empty audio")
	}
	return audio, outputMime, nil
}
