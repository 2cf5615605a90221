package proposal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gmtools/campaigner/campaign"
)

// Client asks a remote service — typically a language-model wrapper —
// for outcome candidates. Only the structured response is consumed; any
// narrative generation stays on the far side of the wire.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type proposeRequest struct {
	Description string `json:"description"`
}

type proposeResponse struct {
	Outcomes []campaign.Outcome `json:"outcomes"`
}

func (c *Client) Propose(ctx context.Context, description string) ([]campaign.Outcome, error) {
	body, err := json.Marshal(proposeRequest{Description: description})
	if err != nil {
		return nil, fmt.Errorf("marshal proposal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/outcomes", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build proposal request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("proposal request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("proposal source returned %d: %s", resp.StatusCode, b)
	}

	var out proposeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode proposal response: %w", err)
	}
	if len(out.Outcomes) == 0 {
		return nil, fmt.Errorf("proposal source returned no outcomes")
	}

	for i, o := range out.Outcomes {
		if o.ExtraMonths.IsNegative() || o.ExtraCost.IsNegative() {
			return nil, fmt.Errorf("outcome %d has negative deltas", i)
		}
	}
	return out.Outcomes, nil
}
