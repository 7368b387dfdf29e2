// Package apiclient работает с удалённым API турниров.
//
// Каждый вызов проходит через token bucket, а конверт API
// {success, data, message} снимается до декодирования.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	DefaultTimeout           = 30 * time.Second
	DefaultRequestsPerMinute = 600
)

// Config хранит настройки клиента API.
type Config struct {
	BaseURL           string
	Timeout           time.Duration
	RequestsPerMinute int
	HTTPClient        *http.Client
	Logger            *slog.Logger
}

// Client: JSON-клиент API турниров с ограничением частоты запросов.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// New создает клиента, незаданные поля Config заполняются значениями по умолчанию.
func New(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RequestsPerMinute <= 0 {
		cfg.RequestsPerMinute = DefaultRequestsPerMinute
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	rps := float64(cfg.RequestsPerMinute) / 60.0
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: cfg.HTTPClient,
		limiter:    rate.NewLimiter(rate.Limit(rps), max(1, cfg.RequestsPerMinute/60)),
		logger:     cfg.Logger,
	}
}

// BaseURL возвращает корень API, с которым создан клиент.
func (c *Client) BaseURL() string { return c.baseURL }

// APIError: неуспешный ответ API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("tournament api %d: %s", e.StatusCode, e.Message)
}

// IsNotFound сообщает, является ли err ошибкой APIError со статусом 404.
func IsNotFound(err error) bool {
	return HasStatus(err, http.StatusNotFound)
}

// HasStatus сообщает, является ли err ошибкой APIError с данным статусом.
func HasStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}

func (c *Client) Get(ctx context.Context, path string, query url.Values, dst any) error {
	return c.decode(c.Do(ctx, http.MethodGet, path, query, nil))(dst)
}

func (c *Client) Post(ctx context.Context, path string, body, dst any) error {
	return c.decode(c.Do(ctx, http.MethodPost, path, nil, body))(dst)
}

func (c *Client) Put(ctx context.Context, path string, body, dst any) error {
	return c.decode(c.Do(ctx, http.MethodPut, path, nil, body))(dst)
}

func (c *Client) Delete(ctx context.Context, path string, dst any) error {
	return c.decode(c.Do(ctx, http.MethodDelete, path, nil, nil))(dst)
}

func (c *Client) decode(payload json.RawMessage, err error) func(dst any) error {
	return func(dst any) error {
		if err != nil {
			return err
		}
		if dst == nil || len(payload) == 0 {
			return nil
		}
		if err := json.Unmarshal(payload, dst); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	}
}

// Do выполняет запрос с учетом лимита и возвращает данные без конверта.
// Пустой ответ (204, пустое тело) возвращается как nil.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body any) (json.RawMessage, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	c.logger.Debug("tournament api call",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: errorMessage(resp.StatusCode, raw)}
	}

	return unwrap(resp.StatusCode, raw)
}

type envelope struct {
	Success    *bool           `json:"success"`
	StatusCode *int            `json:"statusCode"`
	Message    json.RawMessage `json:"message"`
	Data       json.RawMessage `json:"data"`
}

// unwrap снимает конверт {success, data, message}, если он есть.
func unwrap(status int, raw []byte) (json.RawMessage, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, nil
	}
	if raw[0] != '{' {
		return raw, nil
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return raw, nil
	}
	if env.Success == nil && env.StatusCode == nil {
		return raw, nil
	}
	if env.Success != nil && !*env.Success {
		msg := messageText(env.Message)
		if msg == "" {
			msg = "request was not successful"
		}
		return nil, &APIError{StatusCode: status, Message: msg}
	}
	if env.Data == nil {
		return nil, nil
	}
	return env.Data, nil
}

func errorMessage(status int, body []byte) string {
	var env envelope
	if err := json.Unmarshal(body, &env); err == nil {
		if msg := messageText(env.Message); msg != "" {
			return msg
		}
	}
	return fmt.Sprintf("Error %d: %s", status, http.StatusText(status))
}

// messageText принимает и "message": "x", и "message": ["x", "y"].
func messageText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return strings.Join(list, "; ")
	}
	return ""
}
