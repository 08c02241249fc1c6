package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPPredictor calls an ROI model served over HTTP. The endpoint receives
// {"locality": ..., "price": ...} and answers {"roi": ...}.
type HTTPPredictor struct {
	url    string
	client *http.Client
}

// NewHTTPPredictor creates a predictor for url with a per-call timeout.
func NewHTTPPredictor(url string, timeout time.Duration) *HTTPPredictor {
	return &HTTPPredictor{url: url, client: &http.Client{Timeout: timeout}}
}

type predictRequest struct {
	Locality string  `json:"locality"`
	Price    float64 `json:"price"`
}

type predictResponse struct {
	ROI   *float64 `json:"roi"`
	Error string   `json:"error,omitempty"`
}

// Predict posts the query and decodes the model's ROI percentage.
func (p *HTTPPredictor) Predict(ctx context.Context, locality string, price float64) (float64, error) {
	body, err := json.Marshal(predictRequest{Locality: locality, Price: price})
	if err != nil {
		return 0, fmt.Errorf("predictor: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("predictor: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := p.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("predictor: call %s: %w", p.url, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(res.Body, 256))
		return 0, fmt.Errorf("predictor: unexpected status %d: %s", res.StatusCode, bytes.TrimSpace(snippet))
	}

	var out predictResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return 0, fmt.Errorf("predictor: decode response: %w", err)
	}
	if out.Error != "" {
		return 0, fmt.Errorf("predictor: model error: %s", out.Error)
	}
	if out.ROI == nil {
		return 0, fmt.Errorf("predictor: response has no roi")
	}
	return *out.ROI, nil
}
