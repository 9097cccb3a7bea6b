// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package backend provides the client for the hosted TechTalk backend.
package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ClientError represents an error from the backend client.
type ClientError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeConnection
	ErrTypeTimeout
	ErrTypeUnauthorized
	ErrTypeInvalidResponse
	ErrTypeRejected // backend refused the request (4xx other than auth)
	ErrTypeStorage
)

// Sentinel errors for easy checking.
var (
	ErrTimeout      = &ClientError{Type: ErrTypeTimeout, Message: "request timed out"}
	ErrUnauthorized = &ClientError{Type: ErrTypeUnauthorized, Message: "not authorized"}
	ErrNoSession    = &ClientError{Type: ErrTypeUnauthorized, Message: "no active session"}
)

// apiError is the error body shape the backend returns. The auth and rest
// surfaces disagree on the field name, so all candidates are tried.
type apiError struct {
	Message          string `json:"message"`
	Msg              string `json:"msg"`
	ErrorField       string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

func (e apiError) text() string {
	for _, s := range []string{e.Message, e.Msg, e.ErrorDescription, e.ErrorField} {
		if s != "" {
			return s
		}
	}
	return ""
}

// decodeError turns a non-2xx response into a ClientError.
func decodeError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	msg := ""
	var ae apiError
	if json.Unmarshal(body, &ae) == nil {
		msg = ae.text()
	}
	if msg == "" {
		msg = "unexpected status " + resp.Status
	}

	t := ErrTypeRejected
	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		t = ErrTypeUnauthorized
	case resp.StatusCode >= 500:
		t = ErrTypeConnection
	}
	return &ClientError{Type: t, Message: msg}
}

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// Config holds configuration options for the backend client.
type Config struct {
	// BaseURL is the backend project base URL (e.g. https://abc.supabase.co)
	BaseURL string

	// AnonKey is the project's public anon API key, sent on every request.
	AnonKey string

	// StateDir is where the client persists the restored session
	// (default: the config directory). Empty disables persistence.
	StateDir string

	// Timeout for REST and storage requests (default: 30s)
	Timeout time.Duration
}

// =============================================================================
// CLIENT
// =============================================================================

// Client handles communication with the hosted backend. It is safe for
// concurrent use; all mutable state (the session) is mutex-guarded.
type Client struct {
	config     Config
	httpClient *http.Client

	mu       sync.Mutex
	session  *Session
	watchers []chan AuthChange
}

// New creates a backend client. The base URL must be a valid http(s) URL.
func New(cfg Config) (*Client, error) {
	u, err := url.Parse(cfg.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, &ClientError{Type: ErrTypeConnection, Message: "invalid backend URL", Cause: err}
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	return &Client{
		config: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}, nil
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// do executes a request with the standard auth headers applied and maps
// transport failures onto the client error taxonomy.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	req.Header.Set("apikey", c.config.AnonKey)
	if req.Header.Get("Authorization") == "" {
		token := c.config.AnonKey
		if s := c.Session(); s != nil {
			token = s.AccessToken
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrTimeout
		}
		return nil, &ClientError{Type: ErrTypeConnection, Message: "backend unreachable", Cause: err}
	}
	return resp, nil
}
