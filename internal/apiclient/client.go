// internal/apiclient/client.go
package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/nclex-prep/backend/internal/question"
)

const defaultTimeout = 10 * time.Second

// Client talks to the question supply service.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a Client for the service at baseURL (trailing slash trimmed).
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}
}

// FetchRandomQuestion requests one random question, excluding the given
// ids. A 204 response is reported as question.ErrExhausted; any other
// non-200 status is a transient error.
func (c *Client) FetchRandomQuestion(ctx context.Context, exclude []string) (*question.Question, error) {
	endpoint := c.baseURL + "/questions/random"
	if len(exclude) > 0 {
		endpoint += "?exclude=" + url.QueryEscape(strings.Join(exclude, ","))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil, question.ErrExhausted
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch question (%d)", resp.StatusCode)
	}

	var q question.Question
	if err := json.NewDecoder(resp.Body).Decode(&q); err != nil {
		return nil, fmt.Errorf("decode question: %w", err)
	}
	return &q, nil
}
