package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bryanwahyu/darkwatch/internal/domain/classifier"
)

const defaultTimeout = 30 * time.Second

// Client talks to the model-serving API over HTTP.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
	}
}

type predictRequest struct {
	Text      string `json:"text"`
	ModelType string `json:"model_type,omitempty"`
}

type batchPredictRequest struct {
	Texts     []string `json:"texts"`
	ModelType string   `json:"model_type,omitempty"`
}

type batchPredictResponse struct {
	Results []*classifier.Result `json:"results"`
}

// Classify sends text to the prediction endpoint.
func (c *Client) Classify(ctx context.Context, text, modelType string) (*classifier.Result, error) {
	body, err := c.post(ctx, "/predict", predictRequest{Text: text, ModelType: modelType})
	if err != nil {
		return nil, err
	}
	var res classifier.Result
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, fmt.Errorf("decoding prediction: %w", err)
	}
	return &res, nil
}

// ClassifyBatch sends up to the service's batch limit in one call.
func (c *Client) ClassifyBatch(ctx context.Context, texts []string, modelType string) ([]*classifier.Result, error) {
	body, err := c.post(ctx, "/predict/batch", batchPredictRequest{Texts: texts, ModelType: modelType})
	if err != nil {
		return nil, err
	}
	var res batchPredictResponse
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, fmt.Errorf("decoding batch prediction: %w", err)
	}
	return res.Results, nil
}

// Health pings the service health endpoint.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", classifier.ErrUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: health returned %d", classifier.ErrUnavailable, resp.StatusCode)
	}
	return nil
}

func (c *Client) post(ctx context.Context, path string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", classifier.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return body, nil
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, classifier.ErrQuotaExceeded
	case resp.StatusCode >= 500:
		return nil, fmt.Errorf("%w: %s returned %d", classifier.ErrUnavailable, path, resp.StatusCode)
	default:
		return nil, fmt.Errorf("%s returned %d: %s", path, resp.StatusCode, truncate(body, 200))
	}
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
