// Package client is a typed wrapper over the coaching center REST API. It
// decodes the response envelope into plain values and reports failed calls as
// *errors.Error carrying the server's code, status and field details.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/coaching-center-api/internal/models"
	appErrors "github.com/noah-isme/coaching-center-api/pkg/errors"
)

// DefaultBaseURL is used when no base URL is configured.
const DefaultBaseURL = "http://localhost:5001/api"

// Client calls the API. It is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger

	mu    sync.RWMutex
	token string
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithToken sets the bearer token sent with every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithLogger attaches a logger for request tracing.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New builds a Client for baseURL, e.g. "https://example.com/api".
func New(baseURL string, opts ...Option) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken replaces the bearer token. An empty token clears it.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Token returns the current bearer token.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// ListParams selects a page of a collection. Filters become query parameters
// verbatim, e.g. {"featured": "true"}.
type ListParams struct {
	Page    int               `json:"page,omitempty"`
	Limit   int               `json:"limit,omitempty"`
	Sort    string            `json:"sort,omitempty"`
	Filters map[string]string `json:"filters,omitempty"`
}

// Values renders the params as a query string.
func (p ListParams) Values() url.Values {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Sort != "" {
		q.Set("sort", p.Sort)
	}
	keys := make([]string, 0, len(p.Filters))
	for k := range p.Filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if v := p.Filters[k]; v != "" {
			q.Set(k, v)
		}
	}
	return q
}

// Page is one decoded list response.
type Page[T any] struct {
	Items      []T                `json:"items"`
	Count      int                `json:"count"`
	Pagination *models.Pagination `json:"pagination,omitempty"`
}

type envelope struct {
	Success    bool               `json:"success"`
	Count      *int               `json:"count"`
	Data       json.RawMessage    `json:"data"`
	Pagination *models.Pagination `json:"pagination"`
	Message    string             `json:"message"`
	Error      *appErrors.Error   `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body interface{}) (*envelope, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("api call",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		if resp.StatusCode >= http.StatusBadRequest {
			return nil, appErrors.New("HTTP_ERROR", resp.StatusCode, http.StatusText(resp.StatusCode))
		}
		return nil, fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	if !env.Success || resp.StatusCode >= http.StatusBadRequest {
		if env.Error == nil {
			return nil, appErrors.New("HTTP_ERROR", resp.StatusCode, http.StatusText(resp.StatusCode))
		}
		if env.Error.Status == 0 {
			env.Error.Status = resp.StatusCode
		}
		return nil, env.Error
	}
	return &env, nil
}

func getOne[T any](ctx context.Context, c *Client, method, path string, body interface{}) (*T, error) {
	env, err := c.do(ctx, method, path, nil, body)
	if err != nil {
		return nil, err
	}
	var out T
	if err := json.Unmarshal(env.Data, &out); err != nil {
		return nil, fmt.Errorf("decode data: %w", err)
	}
	return &out, nil
}

func getList[T any](ctx context.Context, c *Client, path string, params ListParams) (*Page[T], error) {
	env, err := c.do(ctx, http.MethodGet, path, params.Values(), nil)
	if err != nil {
		return nil, err
	}
	page := &Page[T]{Items: []T{}, Pagination: env.Pagination}
	if len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, &page.Items); err != nil {
			return nil, fmt.Errorf("decode list: %w", err)
		}
	}
	page.Count = len(page.Items)
	if env.Count != nil {
		page.Count = *env.Count
	}
	return page, nil
}

// message runs a call whose response only carries a message.
func (c *Client) message(ctx context.Context, method, path string, body interface{}) (string, error) {
	env, err := c.do(ctx, method, path, nil, body)
	if err != nil {
		return "", err
	}
	return env.Message, nil
}

func itemPath(resource, id string) string {
	return "/" + resource + "/" + url.PathEscape(id)
}
