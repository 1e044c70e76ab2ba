// Package remote provides a semantic scorer adapter backed by an HTTP
// scoring server.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/refscore/refscore/internal/core/ports/driven"
)

// Ensure Scorer implements the interface.
var _ driven.SemanticScorer = (*Scorer)(nil)

// Default configuration values.
const (
	DefaultBaseURL       = "http://localhost:8090"
	DefaultModel         = "bleurt-20"
	DefaultTimeout       = 60 * time.Second
	DefaultRatePerSecond = 4
)

// Config holds configuration for the remote scorer.
type Config struct {
	// BaseURL is the scoring server base URL (default: http://localhost:8090).
	BaseURL string

	// Model is the scoring model identifier (default: bleurt-20).
	Model string

	// Timeout is the per-request timeout (default: 60s). Model scoring
	// is slow; the default is deliberately generous.
	Timeout time.Duration

	// RatePerSecond caps sustained request rate (default: 4, burst 1).
	RatePerSecond float64
}

// Scorer scores text pairs via a remote model server.
type Scorer struct {
	client  *http.Client
	limiter *rate.Limiter
	baseURL string
	model   string
}

// scoreRequest is the scoring API request format.
type scoreRequest struct {
	Model     string `json:"model"`
	Reference string `json:"reference"`
	Candidate string `json:"candidate"`
}

// scoreResponse is the scoring API response format.
type scoreResponse struct {
	Score float64 `json:"score"`
}

// NewScorer creates a new remote scorer.
func NewScorer(cfg Config) *Scorer {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RatePerSecond <= 0 {
		cfg.RatePerSecond = DefaultRatePerSecond
	}

	return &Scorer{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(cfg.RatePerSecond), 1),
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		model:   cfg.Model,
	}
}

// Score returns the model score for candidate against reference.
func (s *Scorer) Score(ctx context.Context, reference, candidate string) (float64, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return 0, fmt.Errorf("rate limit wait: %w", err)
	}

	reqBody := scoreRequest{
		Model:     s.model,
		Reference: reference,
		Candidate: candidate,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return 0, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		s.baseURL+"/score",
		bytes.NewReader(jsonBody),
	)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return 0, fmt.Errorf("scorer error (status %d): failed to read response", resp.StatusCode)
		}
		return 0, fmt.Errorf("scorer error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var scoreResp scoreResponse
	if err := json.NewDecoder(resp.Body).Decode(&scoreResp); err != nil {
		return 0, fmt.Errorf("decode response: %w", err)
	}

	return scoreResp.Score, nil
}

// Ping validates the server is reachable by requesting its root path.
// Any 2xx status counts as alive, as does 404: servers that only route
// /score are still usable.
func (s *Scorer) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/", http.NoBody)
	if err != nil {
		return fmt.Errorf("scorer: failed to create ping request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("scorer: ping failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil
	}
	return fmt.Errorf("scorer: server returned status %d", resp.StatusCode)
}

// Close releases resources.
func (s *Scorer) Close() error {
	s.client.CloseIdleConnections()
	return nil
}

// Model returns the scoring model identifier in use.
func (s *Scorer) Model() string {
	return s.model
}
