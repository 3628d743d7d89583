package tracker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// API defines the backend operations the UI depends on. It is implemented by
// *Client and can be substituted in tests.
type API interface {
	Login(ctx context.Context, creds Credentials) (*TokenResponse, error)
	Signup(ctx context.Context, req SignupRequest) (*TokenResponse, error)
	ListBooks(ctx context.Context, status string) ([]Book, error)
	CreateBook(ctx context.Context, payload BookPayload) (*Book, error)
	UpdateBook(ctx context.Context, id string, payload BookPayload) (*Book, error)
	DeleteBook(ctx context.Context, id string) error
	FetchStats(ctx context.Context) (*Stats, error)
	FetchRecommendations(ctx context.Context) (*RecommendationsResponse, error)
	SetToken(token string)
	ClearToken()
}

// Ensure Client implements API at compile time.
var _ API = (*Client)(nil)

// Client talks to the Book Tracker HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string

	mu    sync.RWMutex
	token string
}

const (
	defaultAPIURL    = "http://127.0.0.1:8000"
	defaultUserAgent = "booktrack/0.1"
	// Recommendations proxy an LLM call on the backend and can take a while.
	requestTimeout = 30 * time.Second
)

// APIError carries a backend-reported failure. Detail holds the message field
// of the error body when the backend supplied one.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if strings.TrimSpace(e.Detail) != "" {
		return e.Detail
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

// NewClient builds a Client for the given base URL.
func NewClient(apiURL string) (*Client, error) {
	base, err := parseBaseURL(apiURL)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// SetToken records the bearer token attached to subsequent requests.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// ClearToken removes the stored bearer token.
func (c *Client) ClearToken() {
	c.SetToken("")
}

func (c *Client) currentToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Login exchanges credentials for a session token.
func (c *Client) Login(ctx context.Context, creds Credentials) (*TokenResponse, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload TokenResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", creds, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// Signup registers a new account and returns its session token.
func (c *Client) Signup(ctx context.Context, req SignupRequest) (*TokenResponse, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload TokenResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/signup", req, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// ListBooks retrieves the user's books. An empty status fetches all of them;
// otherwise the backend filters server-side via the status_filter parameter.
func (c *Client) ListBooks(ctx context.Context, status string) ([]Book, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	rel := &url.URL{Path: "/api/books"}
	if s := strings.TrimSpace(status); s != "" {
		values := url.Values{}
		values.Set("status_filter", s)
		rel.RawQuery = values.Encode()
	}
	var books []Book
	if err := c.doURL(ctx, http.MethodGet, rel, nil, &books); err != nil {
		return nil, err
	}
	return books, nil
}

// CreateBook adds a new book and returns the server-assigned record.
func (c *Client) CreateBook(ctx context.Context, payload BookPayload) (*Book, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var book Book
	if err := c.do(ctx, http.MethodPost, "/api/books", payload, &book); err != nil {
		return nil, err
	}
	return &book, nil
}

// UpdateBook replaces every field of an existing book.
func (c *Client) UpdateBook(ctx context.Context, id string, payload BookPayload) (*Book, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("book id required")
	}
	var book Book
	if err := c.do(ctx, http.MethodPut, "/api/books/"+url.PathEscape(id), payload, &book); err != nil {
		return nil, err
	}
	return &book, nil
}

// DeleteBook removes a book. The backend answers 204 with no body.
func (c *Client) DeleteBook(ctx context.Context, id string) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("book id required")
	}
	return c.do(ctx, http.MethodDelete, "/api/books/"+url.PathEscape(id), nil, nil)
}

// FetchStats retrieves the aggregate reading statistics.
func (c *Client) FetchStats(ctx context.Context) (*Stats, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var stats Stats
	if err := c.do(ctx, http.MethodGet, "/api/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// FetchRecommendations retrieves AI-generated book suggestions. A response
// without a recommendations field yields an empty list.
func (c *Client) FetchRecommendations(ctx context.Context) (*RecommendationsResponse, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload RecommendationsResponse
	if err := c.do(ctx, http.MethodGet, "/api/recommendations", nil, &payload); err != nil {
		return nil, err
	}
	if payload.Recommendations == nil {
		payload.Recommendations = []Recommendation{}
	}
	return &payload, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, dest any) error {
	rel := &url.URL{Path: path}
	return c.doURL(ctx, method, rel, body, dest)
}

// doURL is the single chokepoint for backend access: it injects the JSON
// content type and the bearer token, performs exactly one round trip, and
// translates non-2xx responses into *APIError.
func (c *Client) doURL(ctx context.Context, method string, rel *url.URL, body, dest any) error {
	reqURL := c.baseURL.ResolveReference(rel)

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if token := c.currentToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp)
	}
	if dest == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// decodeError parses the backend's JSON error body. FastAPI reports failures
// as {"detail": "..."}; message is accepted as a fallback spelling.
func decodeError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return apiErr
	}
	var body struct {
		Detail  string `json:"detail"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Detail != "" {
			apiErr.Detail = body.Detail
		} else {
			apiErr.Detail = body.Message
		}
	}
	return apiErr
}

func parseBaseURL(apiURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiURL)
	if trimmed == "" {
		trimmed = defaultAPIURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api_url %q: %w", apiURL, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
