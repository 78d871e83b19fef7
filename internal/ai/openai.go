// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// openAIProvider implements the Transformer interface using the OpenAI
// image edits API (POST /images/edits with multipart form data).
type openAIProvider struct {
	config ProviderConfig
	client *http.Client
}

// newOpenAI creates a new OpenAI provider.
func newOpenAI(cfg ProviderConfig) *openAIProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}
	return &openAIProvider{
		config: cfg,
		client: &http.Client{Timeout: 120 * time.Second},
	}
}

func (p *openAIProvider) Name() string { return "openai" }

// Transform uploads the source image with the theme prompt to the image
// edits endpoint and decodes the first b64_json result. An empty data
// array yields ErrNoImage.
func (p *openAIProvider) Transform(ctx context.Context, mimeType string, image []byte, prompt string) ([]byte, string, error) {
	var form bytes.Buffer
	writer := multipart.NewWriter(&form)

	filename := "image.png"
	if mimeType == "image/jpeg" {
		filename = "image.jpg"
	} else if mimeType == "image/webp" {
		filename = "image.webp"
	}

	imagePart, err := writer.CreateFormFile("image", filename)
	if err != nil {
		return nil, "", fmt.Errorf("openai form image: %w", err)
	}
	if _, err := imagePart.Write(image); err != nil {
		return nil, "", fmt.Errorf("openai write image: %w", err)
	}

	if err := writer.WriteField("prompt", prompt); err != nil {
		return nil, "", fmt.Errorf("openai write prompt: %w", err)
	}
	if err := writer.WriteField("model", p.config.Model); err != nil {
		return nil, "", fmt.Errorf("openai write model: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("openai close form: %w", err)
	}

	formBytes := form.Bytes()
	url := p.config.BaseURL + "/images/edits"

	newReq := func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(formBytes))
		if err != nil {
			return nil, fmt.Errorf("openai request: %w", err)
		}
		req.Header.Set("Content-Type", writer.FormDataContentType())
		req.Header.Set("Authorization", "Bearer "+p.config.APIKey)
		return req, nil
	}

	resp, err := doWithRetry(ctx, p.client, newReq)
	if err != nil {
		return nil, "", fmt.Errorf("openai http: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("openai read body: %w", err)
	}

	var result openAIImageResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, "", fmt.Errorf("openai unmarshal: %w", err)
	}

	if result.Error != nil {
		return nil, "", fmt.Errorf("openai API error: %s", result.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("openai API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	for _, d := range result.Data {
		if d.B64JSON != "" {
			imgBytes, err := base64.StdEncoding.DecodeString(d.B64JSON)
			if err != nil {
				return nil, "", fmt.Errorf("openai decode base64: %w", err)
			}
			// gpt-image-1 returns PNG unless output_format says otherwise.
			return imgBytes, "image/png", nil
		}
	}

	return nil, "", ErrNoImage
}

// --- OpenAI API types ---

type openAIImageData struct {
	B64JSON string `json:"b64_json"`
	URL     string `json:"url"`
}

type openAIError struct {
	Message string `json:"message"`
}

type openAIImageResponse struct {
	Data  []openAIImageData `json:"data"`
	Error *openAIError      `json:"error,omitempty"`
}
