package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const (
	classifyTimeout = 30 * time.Second
	generateTimeout = 45 * time.Second
)

// Client calls a HuggingFace-style inference endpoint. It holds read-only
// configuration and a shared pooled http.Client, so a single instance is safe
// to use across concurrent requests.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates an inference client for the given API base URL and
// bearer token. The token may be empty for unauthenticated endpoints.
func NewClient(baseURL, token string) *Client {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &Client{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{},
	}
}

// LabelScore is one entry of a classification response, ranked by score
type LabelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

type classifyRequest struct {
	Inputs string `json:"inputs"`
}

// Classify runs text classification against the given model. It returns the
// ranked label/score pairs, or an error on any transport, status, or payload
// problem. Callers are expected to degrade to local classification on error.
func (c *Client) Classify(ctx context.Context, model, text string) ([]LabelScore, error) {
	ctx, cancel := context.WithTimeout(ctx, classifyTimeout)
	defer cancel()

	body, err := c.post(ctx, model, classifyRequest{Inputs: text})
	if err != nil {
		return nil, err
	}

	var labels []LabelScore
	if err := json.Unmarshal(body, &labels); err != nil {
		// Some models nest the ranking one level deeper
		var nested [][]LabelScore
		if err2 := json.Unmarshal(body, &nested); err2 != nil || len(nested) == 0 {
			return nil, fmt.Errorf("unexpected classification response shape: %w", err)
		}
		labels = nested[0]
	}

	if len(labels) == 0 {
		return nil, fmt.Errorf("empty classification response for model %s", model)
	}

	return labels, nil
}

type generateRequest struct {
	Inputs     string             `json:"inputs"`
	Parameters generateParameters `json:"parameters"`
}

type generateParameters struct {
	MaxLength int `json:"max_length"`
}

type generateResponse struct {
	GeneratedText string `json:"generated_text"`
}

// Generate runs text generation against the given model and returns the
// trimmed generated text. An empty generation is reported as an error.
func (c *Client) Generate(ctx context.Context, model, prompt string, maxLength int) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, generateTimeout)
	defer cancel()

	body, err := c.post(ctx, model, generateRequest{
		Inputs:     prompt,
		Parameters: generateParameters{MaxLength: maxLength},
	})
	if err != nil {
		return "", err
	}

	var results []generateResponse
	if err := json.Unmarshal(body, &results); err != nil {
		return "", fmt.Errorf("unexpected generation response shape: %w", err)
	}
	if len(results) == 0 {
		return "", fmt.Errorf("empty generation response for model %s", model)
	}

	text := strings.TrimSpace(results[0].GeneratedText)
	if text == "" {
		return "", fmt.Errorf("model %s generated no text", model)
	}

	return text, nil
}

// post sends a JSON payload to {baseURL}/{model} and returns the response
// body on HTTP 200
func (c *Client) post(ctx context.Context, model string, payload interface{}) ([]byte, error) {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+model, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("inference request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("inference API returned status %d for model %s", resp.StatusCode, model)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	return buf.Bytes(), nil
}
