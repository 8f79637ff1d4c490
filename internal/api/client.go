package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"bilty/internal/log"
	"bilty/internal/store"
)

const defaultTimeout = 30 * time.Second

// Client is the single point of HTTP access to the backend. It attaches
// the bearer token when one is stored and persists the token and user
// snapshot as a side effect of login/register.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  store.TokenStore
	users   store.UserCache
	logger  *log.Logger
	now     func() time.Time
}

// Config wires a Client. HTTPClient and Logger are optional.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	Tokens     store.TokenStore
	Users      store.UserCache
	Logger     *log.Logger
	Now        func() time.Time
}

func New(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(log.Config{Component: log.ComponentAPI})
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    httpClient,
		tokens:  cfg.Tokens,
		users:   cfg.Users,
		logger:  logger,
		now:     now,
	}
}

// do issues one request and normalizes every outcome into the envelope.
// A transport failure becomes {success:false, error:"Network error
// occurred"}; a non-2xx status carries the server's error message or a
// generic one. It never returns an error to the caller.
func do[T any](ctx context.Context, c *Client, method, endpoint string, body any) Response[T] {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fail[T](fmt.Sprintf("encode request: %v", err))
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return fail[T](fmt.Sprintf("build request: %v", err))
	}
	req.Header.Set("Content-Type", "application/json")
	if token, ok := c.tokens.Token(); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.WarnContext(ctx, "request failed",
			log.FieldMethod, method,
			log.FieldEndpoint, endpoint,
			log.FieldError, err)
		return fail[T](errNetwork)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fail[T](errNetwork)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var serverErr struct {
			Error  string       `json:"error"`
			Errors []FieldError `json:"errors"`
		}
		_ = json.Unmarshal(raw, &serverErr)
		msg := serverErr.Error
		if msg == "" {
			msg = fmt.Sprintf("HTTP error! status: %d", resp.StatusCode)
		}
		return Response[T]{Success: false, Error: msg, Errors: serverErr.Errors}
	}

	var envelope Response[T]
	if err := json.Unmarshal(raw, &envelope); err != nil {
		c.logger.WarnContext(ctx, "malformed response",
			log.FieldEndpoint, endpoint,
			log.FieldError, err)
		return fail[T]("malformed response from server")
	}
	return envelope
}

// Health checks backend availability.
func (c *Client) Health(ctx context.Context) Response[json.RawMessage] {
	return do[json.RawMessage](ctx, c, http.MethodGet, "/health", nil)
}
