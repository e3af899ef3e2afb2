// Package datafair queries the ADEME Data Fair open-data API, which
// hosts the Base Carbone emission factors and the published BEGES
// reports as searchable datasets.
package datafair

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/carbonscore-labs/carbonscore-cli/internal/core/domain"
)

// Default configuration values.
const (
	DefaultBaseURL = "https://data.ademe.fr/data-fair/api/v1/datasets"
	DefaultTimeout = 30 * time.Second
)

// Dataset identifiers on data.ademe.fr.
const (
	DatasetBaseCarbone = "base-carboner"
	DatasetBEGES       = "bilan-ges"
)

// maxErrorBody caps how much of an error response ends up in messages.
const maxErrorBody = 512

// Config holds configuration for the Data Fair client.
type Config struct {
	// BaseURL is the datasets API root (default: data.ademe.fr).
	BaseURL string

	// Timeout is the request timeout (default: 30s).
	Timeout time.Duration

	// RateLimit caps outgoing requests per second (default: 2).
	RateLimit rate.Limit

	// Burst is the rate limiter burst size (default: 4).
	Burst int

	// HTTPClient overrides the default client, mainly for tests.
	HTTPClient *http.Client
}

// Client is a read-only client for Data Fair dataset lines.
type Client struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
}

// NewClient creates a Data Fair client with sensible defaults.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RateLimit == 0 {
		cfg.RateLimit = rate.Limit(2)
	}
	if cfg.Burst == 0 {
		cfg.Burst = 4
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		limiter:    rate.NewLimiter(cfg.RateLimit, cfg.Burst),
	}
}

// linesQuery holds the supported /lines query parameters.
type linesQuery struct {
	q      string
	size   int
	page   int
	fields []string
	sort   string
}

// linesResponse is the Data Fair /lines response envelope.
type linesResponse struct {
	Total   int              `json:"total"`
	Results []map[string]any `json:"results"`
}

// lines fetches one page of dataset rows.
func (c *Client) lines(ctx context.Context, dataset string, query linesQuery) (*linesResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	if query.q != "" {
		params.Set("q", query.q)
	}
	if query.size > 0 {
		params.Set("size", strconv.Itoa(query.size))
	}
	if query.page > 0 {
		params.Set("page", strconv.Itoa(query.page))
	}
	if len(query.fields) > 0 {
		params.Set("select", strings.Join(query.fields, ","))
	}
	if query.sort != "" {
		params.Set("sort", query.sort)
	}

	endpoint := fmt.Sprintf("%s/%s/lines?%s", c.baseURL, dataset, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("data fair request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("%w: data fair dataset %s", domain.ErrRateLimited, dataset)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("data fair dataset %s: status %d: %s",
			dataset, resp.StatusCode, truncate(string(body), maxErrorBody))
	}

	var lines linesResponse
	if err := json.Unmarshal(body, &lines); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &lines, nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
