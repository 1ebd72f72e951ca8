package draftresult

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/kihw/draftlens/internal/role"
)

// HTTPClient calls an externally-hosted analyzeDraft rating service
// over HTTP: a configured base URL, a bounded-timeout http.Client, and
// JSON request/response bodies. This is the only concrete Analyzer in
// this module — the rating composition itself is computed by that
// external service and consumed here only through the Analyzer
// interface.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPClient builds a client against baseURL ("http://host:port"),
// with requests bounded by timeout.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type analyzeDraftRequest struct {
	Dataset string            `json:"dataset"`
	Team    map[string]string `json:"team"`
	Enemy   map[string]string `json:"enemy"`
}

// AnalyzeDraft implements Analyzer by POSTing to <baseURL>/analyzeDraft
// and decoding the response as a DraftResult.
func (c *HTTPClient) AnalyzeDraft(dataset Dataset, team map[role.Role]string, enemy map[role.Role]string) (DraftResult, error) {
	req := analyzeDraftRequest{
		Dataset: dataset.Name(),
		Team:    roleMapToStrings(team),
		Enemy:   roleMapToStrings(enemy),
	}

	body, err := json.Marshal(req)
	if err != nil {
		return DraftResult{}, fmt.Errorf("draftresult: encode request: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.httpClient.Timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/analyzeDraft", bytes.NewReader(body))
	if err != nil {
		return DraftResult{}, fmt.Errorf("draftresult: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return DraftResult{}, fmt.Errorf("draftresult: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return DraftResult{}, fmt.Errorf("draftresult: oracle returned status %d", resp.StatusCode)
	}

	var result DraftResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return DraftResult{}, fmt.Errorf("draftresult: decode response: %w", err)
	}
	return result, nil
}

func roleMapToStrings(m map[role.Role]string) map[string]string {
	out := make(map[string]string, len(m))
	for r, champ := range m {
		out[r.String()] = champ
	}
	return out
}
