// Package oracle wraps the optional text-classification assist service. The
// engine never depends on it for correctness: every caller must produce a
// usable result when the oracle is absent, slow or failing.
package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// ClassifyRequest carries everything the assist service sees about a file:
// its name, headers, a handful of sample rows and the local prior guess.
type ClassifyRequest struct {
	FileName   string            `json:"file_name"`
	Headers    []string          `json:"headers"`
	SampleRows [][]string        `json:"sample_rows"`
	PriorGuess map[string]string `json:"prior_guess,omitempty"`
}

type HeaderMapping struct {
	OriginalHeader string  `json:"original_header"`
	SuggestedField string  `json:"suggested_field"`
	Confidence     float64 `json:"confidence"`
}

type ClassifyResponse struct {
	Classification string          `json:"classification"`
	Confidence     float64         `json:"confidence"`
	Reasoning      string          `json:"reasoning"`
	Mappings       []HeaderMapping `json:"mappings"`
	Warnings       []string        `json:"warnings"`
	Suggestions    []string        `json:"suggestions"`
}

// Classifier is the oracle contract. A nil Classifier is a valid deployment.
type Classifier interface {
	Classify(ctx context.Context, req ClassifyRequest) (ClassifyResponse, error)
}

// Client calls the assist service over HTTP.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// APIError represents an assist-service error response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("oracle API error [%d]: %s", e.StatusCode, e.Message)
}

// Classify implements Classifier.
func (c *Client) Classify(ctx context.Context, req ClassifyRequest) (ClassifyResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return ClassifyResponse{}, fmt.Errorf("failed to marshal classify request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/classify", bytes.NewReader(body))
	if err != nil {
		return ClassifyResponse{}, fmt.Errorf("failed to build classify request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return ClassifyResponse{}, fmt.Errorf("classify request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ClassifyResponse{}, &APIError{StatusCode: resp.StatusCode, Message: resp.Status}
	}

	var out ClassifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return ClassifyResponse{}, fmt.Errorf("failed to decode classify response: %w", err)
	}
	return out, nil
}
