// Package client provides an HTTP client for the VocabTracker API
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/vocabtracker/backend/internal/models"
)

// ErrUnauthorized is returned when the server rejects the session token.
var ErrUnauthorized = fmt.Errorf("unauthorized")

// Client talks to the VocabTracker API over HTTP.
//
// Every request carries the session token when one is set. When the
// server responds with 401 the OnUnauthorized callback fires once per
// failed request, letting the owner drop the session and return to
// login. Requests are attempted exactly once.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	token          string
	OnUnauthorized func()
}

// New creates a new API client for the given base URL
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// SetToken stores the session token used for authenticated requests
func (c *Client) SetToken(token string) {
	c.token = token
}

// Token returns the current session token
func (c *Client) Token() string {
	return c.token
}

// errorResponse matches the server's error body shape
type errorResponse struct {
	Error string `json:"error"`
}

// do sends a request with JSON body and decodes the JSON response into out.
//
// "body" parameter may be nil for requests without a payload.
// "out" parameter may be nil when the response body is discarded.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewBuffer(data)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		if c.OnUnauthorized != nil {
			c.OnUnauthorized()
		}
		return ErrUnauthorized
	}

	if resp.StatusCode >= 400 {
		var errResp errorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Error != "" {
			return fmt.Errorf("%s", errResp.Error)
		}
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// Register creates a new account and stores the returned session token
func (c *Client) Register(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	err := c.do(ctx, http.MethodPost, "/auth/register", nil, &models.AuthRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return nil, err
	}
	c.token = resp.Token
	return &resp, nil
}

// Login authenticates and stores the returned session token
func (c *Client) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", nil, &models.AuthRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return nil, err
	}
	c.token = resp.Token
	return &resp, nil
}

// ListVocabularies fetches entries filtered by date and search term.
//
// A zero "date" parameter requests entries for all dates. An empty
// "search" parameter disables the substring filter.
func (c *Client) ListVocabularies(ctx context.Context, date models.Date, search string) ([]models.Vocabulary, error) {
	query := url.Values{}
	if !date.IsZero() {
		query.Set("date", date.Key())
	}
	if search != "" {
		query.Set("search", search)
	}

	var resp models.VocabListResponse
	if err := c.do(ctx, http.MethodGet, "/vocab", query, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Vocabularies, nil
}

// CreateVocabulary creates a new entry
func (c *Client) CreateVocabulary(ctx context.Context, req *models.CreateVocabRequest) (*models.Vocabulary, error) {
	var vocab models.Vocabulary
	if err := c.do(ctx, http.MethodPost, "/vocab", nil, req, &vocab); err != nil {
		return nil, err
	}
	return &vocab, nil
}

// UpdateVocabulary applies a partial update to an entry
func (c *Client) UpdateVocabulary(ctx context.Context, id int, req *models.UpdateVocabRequest) (*models.Vocabulary, error) {
	var vocab models.Vocabulary
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/vocab/%d", id), nil, req, &vocab); err != nil {
		return nil, err
	}
	return &vocab, nil
}

// DeleteVocabulary removes an entry by id
func (c *Client) DeleteVocabulary(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/vocab/%d", id), nil, nil, nil)
}
