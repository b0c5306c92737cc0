package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	SizeSquare = "1024x1024"
	SizeWide   = "1792x1024"
	SizeTall   = "1024x1792"
)

type ImageRequest struct {
	Prompt string
	Size   string
}

// ImageClient produces a single image for a prompt and returns its URL.
type ImageClient interface {
	CreateImage(ctx context.Context, req ImageRequest) (string, error)
}

type ImageConfig struct {
	BaseURL string
	APIKey  string
	Model   string
}

// OpenAICompatibleClient talks to any service exposing the OpenAI
// /images/generations endpoint.
type OpenAICompatibleClient struct {
	cfg        ImageConfig
	httpClient *http.Client
}

func NewOpenAICompatibleClient(cfg ImageConfig, timeout time.Duration) *OpenAICompatibleClient {
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &OpenAICompatibleClient{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *OpenAICompatibleClient) CreateImage(ctx context.Context, req ImageRequest) (string, error) {
	reqBody := map[string]interface{}{
		"model":  c.cfg.Model,
		"prompt": req.Prompt,
		"n":      1,
		"size":   req.Size,
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal image request failed: %w", err)
	}

	url := strings.TrimRight(c.cfg.BaseURL, "/") + "/images/generations"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("build image request failed: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("image request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read image response failed: %w", err)
	}
	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("image response status %d: %s", resp.StatusCode, providerMessage(raw))
	}

	var parsed struct {
		Data []struct {
			URL string `json:"url"`
		} `json:"data"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("parse image json failed: %w", err)
	}
	if len(parsed.Data) == 0 {
		return "", fmt.Errorf("empty image data")
	}
	if parsed.Data[0].URL == "" {
		return "", fmt.Errorf("image response has no url")
	}
	return parsed.Data[0].URL, nil
}

// providerMessage prefers the provider's error.message over the raw body.
func providerMessage(raw []byte) string {
	var body struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && body.Error.Message != "" {
		return body.Error.Message
	}
	return strings.TrimSpace(string(raw))
}
