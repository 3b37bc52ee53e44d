// Package scoring calls the external code scoring service.
package scoring

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/club-portal-api/internal/config"
	"github.com/rs/zerolog"
)

// Client posts submitted archives to the scoring endpoint. The request
// carries the archive as a hex string; one attempt, bounded by the
// configured timeout, no retries.
type Client struct {
	endpoint   string
	httpClient *http.Client
	log        zerolog.Logger
}

type scoreRequest struct {
	Code string `json:"code"`
}

type scoreResponse struct {
	Score float64 `json:"score"`
}

// NewClient creates a scoring client from configuration
func NewClient(cfg *config.ScoringConfig, log zerolog.Logger) *Client {
	return &Client{
		endpoint: cfg.Endpoint,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		log: log.With().Str("component", "scoring").Logger(),
	}
}

// Score submits the archive bytes and returns the numeric score from
// the service. Any transport, status or decoding failure is returned as
// an error; the caller decides how to degrade.
func (c *Client) Score(ctx context.Context, code []byte) (float64, error) {
	payload, err := json.Marshal(scoreRequest{Code: hex.EncodeToString(code)})
	if err != nil {
		return 0, fmt.Errorf("failed to encode scoring request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return 0, fmt.Errorf("failed to build scoring request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("scoring request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, fmt.Errorf("scoring service returned status %d", resp.StatusCode)
	}

	var result scoreResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return 0, fmt.Errorf("failed to decode scoring response: %w", err)
	}

	c.log.Debug().Float64("score", result.Score).Msg("Scoring call completed")
	return result.Score, nil
}
