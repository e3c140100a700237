// Package client adalah API client dashboard admin: memanggil REST API,
// menormalkan berbagai bentuk envelope list menjadi satu kontrak entity,
// dan men-cache hasil per kombinasi parameter.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// SessionProvider menyediakan kredensial bearer. Client tidak tahu dari mana
// kredensial berasal (login password, SSO, dsb) — hanya minta, refresh, dan
// bersihkan.
type SessionProvider interface {
	GetCredential() string
	Refresh(ctx context.Context) error
	Clear()
}

// APIError adalah respons non-2xx dari server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api error %d", e.StatusCode)
}

// MutationResult adalah respons create/update/delete: {message?, data?}.
type MutationResult struct {
	Message string
	Data    json.RawMessage
}

type Client struct {
	baseURL string
	http    *http.Client
	session SessionProvider
	cache   *queryCache
}

type Option func(*Client)

// WithHTTPClient mengganti http.Client bawaan (timeout 15 detik).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithCacheTTL mengatur umur cache hasil list.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *Client) { c.cache = newQueryCache(ttl) }
}

func New(baseURL string, session SessionProvider, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
		session: session,
		cache:   newQueryCache(30 * time.Second),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do menjalankan satu request dengan bearer token. Respons 401 memicu
// tepat satu refresh lalu retry; endpoint auth sendiri tidak pernah di-retry
// supaya tidak berputar. Kalau refresh gagal, sesi dibersihkan dan error
// 401 awal diteruskan ke pemanggil.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body interface{}) ([]byte, error) {
	data, status, err := c.doOnce(ctx, method, path, query, body)
	if err != nil {
		return nil, err
	}
	if status == http.StatusUnauthorized && !isAuthPath(path) {
		if refreshErr := c.session.Refresh(ctx); refreshErr != nil {
			c.session.Clear()
			return nil, apiErrorFrom(status, data)
		}
		data, status, err = c.doOnce(ctx, method, path, query, body)
		if err != nil {
			return nil, err
		}
	}
	if status < 200 || status >= 300 {
		return nil, apiErrorFrom(status, data)
	}
	return data, nil
}

func (c *Client) doOnce(ctx context.Context, method, path string, query url.Values, body interface{}) ([]byte, int, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, 0, err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, 0, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cred := c.session.GetCredential(); cred != "" {
		req.Header.Set("Authorization", "Bearer "+cred)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, err
	}
	return data, resp.StatusCode, nil
}

func (c *Client) mutate(ctx context.Context, method, path string, body interface{}) (*MutationResult, error) {
	data, err := c.do(ctx, method, path, nil, body)
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("unable to parse mutation response: %w", err)
	}
	return &MutationResult{Message: envelope.Message, Data: envelope.Data}, nil
}

func isAuthPath(path string) bool {
	return strings.HasPrefix(path, "/api/auth/")
}

func apiErrorFrom(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status}
	var envelope struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		apiErr.Message = envelope.Message
	}
	return apiErr
}
