package connection

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/yndnr/microdog-go/internal/core/domain"
)

// HTTPClient talks to the JSON API.
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

// NewHTTPClient creates a client for server, adding http:// when no
// scheme is given.
func NewHTTPClient(server string) *HTTPClient {
	baseURL := strings.TrimRight(server, "/")
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "http://" + baseURL
	}
	return &HTTPClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// BaseURL returns the base URL of the client.
func (c *HTTPClient) BaseURL() string {
	return c.baseURL
}

// Get performs a GET request.
func (c *HTTPClient) Get(ctx context.Context, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "microdog-cli")
	return c.client.Do(req)
}

// Post performs a POST request with a JSON body.
func (c *HTTPClient) Post(ctx context.Context, path string, body any) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "microdog-cli")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.client.Do(req)
}

// Health returns the server's health data.
func (c *HTTPClient) Health(ctx context.Context) (map[string]any, error) {
	resp, err := c.Get(ctx, "/health")
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	var data map[string]any
	if err := ParseResponse(resp, &data); err != nil {
		return nil, err
	}
	return data, nil
}

// Resolve posts request to /v1/resolve. A miss returns ok=false and no
// error.
func (c *HTTPClient) Resolve(ctx context.Context, request []byte) (response uint32, ok bool, err error) {
	resp, err := c.Post(ctx, "/v1/resolve", map[string]string{"request": domain.EncodeHex(request)})
	if err != nil {
		return 0, false, fmt.Errorf("request failed: %w", err)
	}

	var data struct {
		Found    bool   `json:"found"`
		Response uint32 `json:"response"`
	}
	if err := ParseResponse(resp, &data); err != nil {
		var serr *ServerError
		if errors.As(err, &serr) && serr.Code == domain.ErrRequestNotFound.Code {
			return 0, false, nil
		}
		return 0, false, err
	}
	return data.Response, data.Found, nil
}

// envelope mirrors the server's response wrapper.
type envelope struct {
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// ParseResponse decodes the envelope's data into target. Error replies
// become *ServerError.
func ParseResponse(resp *http.Response, target any) error {
	defer resp.Body.Close()

	var env envelope
	decodeErr := json.NewDecoder(resp.Body).Decode(&env)

	if resp.StatusCode >= 400 {
		if decodeErr == nil && env.Code != "" {
			return &ServerError{Code: env.Code, Message: env.Message}
		}
		return fmt.Errorf("request failed with status %d", resp.StatusCode)
	}
	if decodeErr != nil {
		return fmt.Errorf("parse response: %w", decodeErr)
	}
	if target != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, target); err != nil {
			return fmt.Errorf("parse response data: %w", err)
		}
	}
	return nil
}
