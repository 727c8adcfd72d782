package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

// searchQuery is the fixed search tuned for state-legislature coverage.
const searchQuery = "(state legislature OR state legislative OR state lawmakers)"

// ErrMissingAPIKey is returned before any network call when no credential
// is configured.
var ErrMissingAPIKey = errors.New("news api key is not configured")

// FetchParams narrows a fetch. From/To are ISO dates; BaseURL overrides the
// configured endpoint for this call only.
type FetchParams struct {
	From    string
	To      string
	BaseURL string
}

type Client interface {
	FetchEverything(ctx context.Context, p FetchParams) (Response, error)
}

type newsAPIClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(baseURL, apiKey string, httpClient *http.Client) Client {
	return &newsAPIClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    httpClient,
	}
}

func (c *newsAPIClient) FetchEverything(ctx context.Context, p FetchParams) (Response, error) {
	if c.apiKey == "" {
		return Response{}, ErrMissingAPIKey
	}

	base := c.baseURL
	if p.BaseURL != "" {
		base = p.BaseURL
	}

	u, err := url.Parse(base)
	if err != nil {
		return Response{}, fmt.Errorf("invalid news api url: %w", err)
	}

	q := u.Query()
	q.Set("q", searchQuery)
	q.Set("language", "en")
	if p.From != "" {
		q.Set("from", p.From)
	}
	if p.To != "" {
		q.Set("to", p.To)
	}
	q.Set("sortBy", "publishedAt")
	q.Set("apiKey", c.apiKey)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return Response{}, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Response{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Response{}, fmt.Errorf("news api returned status %d", resp.StatusCode)
	}

	var out Response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Response{}, fmt.Errorf("decoding news api response: %w", err)
	}
	return out, nil
}
