// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package backend provides the client for the hosted TechTalk backend.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// sessionFile is the session persistence file inside StateDir, the TUI
// analogue of the browser's local storage session.
const sessionFile = "session.json"

// =============================================================================
// SESSION
// =============================================================================

// Session is the authenticated state returned by the backend. UserID is the
// session identity (the JWT subject); it doubles as the profile id.
type Session struct {
	UserID       string    `json:"user_id"`
	Email        string    `json:"email"`
	DisplayName  string    `json:"display_name"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// Expired reports whether the session's access token has expired.
func (s *Session) Expired() bool {
	return !s.ExpiresAt.IsZero() && time.Now().After(s.ExpiresAt)
}

// AuthChange is delivered to auth watchers on every session transition.
// Session is nil when the identity was cleared.
type AuthChange struct {
	Session *Session
}

// =============================================================================
// WIRE TYPES
// =============================================================================

type signUpRequest struct {
	Email    string         `json:"email"`
	Password string         `json:"password"`
	Data     map[string]any `json:"data,omitempty"`
}

type passwordGrantRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	RefreshToken string `json:"refresh_token"`
	User         struct {
		ID           string         `json:"id"`
		Email        string         `json:"email"`
		UserMetadata map[string]any `json:"user_metadata"`
	} `json:"user"`
}

// =============================================================================
// AUTH OPERATIONS
// =============================================================================

// SignUp registers a new account with the display name stored in the auth
// metadata. The backend sends a confirmation email; no session is created
// until the address is confirmed, so nothing is persisted here.
func (c *Client) SignUp(ctx context.Context, email, password, displayName string) error {
	body, err := json.Marshal(signUpRequest{
		Email:    email,
		Password: password,
		Data:     map[string]any{"display_name": displayName},
	})
	if err != nil {
		return &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to marshal request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/auth/v1/signup", bytes.NewReader(body))
	if err != nil {
		return &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decodeError(resp)
	}
	return nil
}

// SignIn exchanges credentials for a session, persists it, and notifies
// auth watchers. The returned session carries the identity used by every
// row-level operation.
func (c *Client) SignIn(ctx context.Context, email, password string) (*Session, error) {
	body, err := json.Marshal(passwordGrantRequest{Email: email, Password: password})
	if err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to marshal request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.config.BaseURL+"/auth/v1/token?grant_type=password", bytes.NewReader(body))
	if err != nil {
		return nil, &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp)
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode token response", Cause: err}
	}

	session := sessionFromToken(tr)
	c.setSession(session)
	return session, nil
}

// SignOut revokes the current session with the backend, clears local state,
// and notifies auth watchers. Clearing happens even when the revoke call
// fails: a dead token is not worth keeping.
func (c *Client) SignOut(ctx context.Context) error {
	s := c.Session()
	if s == nil {
		return ErrNoSession
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/auth/v1/logout", nil)
	if err != nil {
		return &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Authorization", "Bearer "+s.AccessToken)

	resp, err := c.do(req)
	c.setSession(nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		return decodeError(resp)
	}
	return nil
}

// Session returns a copy of the current session, or nil when there is none
// or it has expired. An expired session is treated identically to no
// session (the gate redirects either way).
func (c *Client) Session() *Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil || c.session.Expired() {
		return nil
	}
	s := *c.session
	return &s
}

// RestoreSession loads a previously persisted session from StateDir.
// Returns nil (no error) when no usable session exists: a failed restore
// and no session look the same to the caller.
func (c *Client) RestoreSession() *Session {
	if c.config.StateDir == "" {
		return nil
	}

	data, err := os.ReadFile(filepath.Join(c.config.StateDir, sessionFile))
	if err != nil {
		return nil
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil || s.AccessToken == "" {
		return nil
	}
	if s.UserID == "" || s.ExpiresAt.IsZero() {
		// Older session files may predate these fields; recover them
		// from the token claims.
		fillFromClaims(&s)
	}
	if s.UserID == "" || s.Expired() {
		return nil
	}

	c.setSession(&s)
	return c.Session()
}

// AuthChanges registers a watcher for session transitions. The channel is
// buffered; a watcher that stops draining loses updates rather than
// blocking the client.
func (c *Client) AuthChanges() <-chan AuthChange {
	ch := make(chan AuthChange, 4)
	c.mu.Lock()
	c.watchers = append(c.watchers, ch)
	c.mu.Unlock()
	return ch
}

// =============================================================================
// INTERNALS
// =============================================================================

// setSession swaps the current session, persists or removes the session
// file, and fans the change out to watchers.
func (c *Client) setSession(s *Session) {
	c.mu.Lock()
	c.session = s
	watchers := make([]chan AuthChange, len(c.watchers))
	copy(watchers, c.watchers)
	c.mu.Unlock()

	if c.config.StateDir != "" {
		path := filepath.Join(c.config.StateDir, sessionFile)
		if s == nil {
			_ = os.Remove(path)
		} else if data, err := json.Marshal(s); err == nil {
			_ = os.MkdirAll(c.config.StateDir, 0o755)
			_ = os.WriteFile(path, data, 0o600)
		}
	}

	var copyOf *Session
	if s != nil {
		dup := *s
		copyOf = &dup
	}
	for _, ch := range watchers {
		select {
		case ch <- AuthChange{Session: copyOf}:
		default:
		}
	}
}

// sessionFromToken builds a Session from a password-grant response,
// preferring the response fields and falling back to the token claims.
func sessionFromToken(tr tokenResponse) *Session {
	s := &Session{
		UserID:       tr.User.ID,
		Email:        tr.User.Email,
		AccessToken:  tr.AccessToken,
		RefreshToken: tr.RefreshToken,
	}
	if tr.ExpiresIn > 0 {
		s.ExpiresAt = time.Now().Add(time.Duration(tr.ExpiresIn) * time.Second)
	}
	if name, ok := tr.User.UserMetadata["display_name"].(string); ok {
		s.DisplayName = name
	}
	if s.UserID == "" || s.ExpiresAt.IsZero() {
		fillFromClaims(s)
	}
	return s
}

// fillFromClaims recovers identity fields from the access token. The token
// is decoded without signature verification: the backend is the verifier,
// the client only needs the subject and expiry for local bookkeeping.
func fillFromClaims(s *Session) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(s.AccessToken, claims); err != nil {
		return
	}
	if s.UserID == "" {
		if sub, err := claims.GetSubject(); err == nil {
			s.UserID = sub
		}
	}
	if s.ExpiresAt.IsZero() {
		if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
			s.ExpiresAt = exp.Time
		}
	}
	if s.Email == "" {
		if email, ok := claims["email"].(string); ok {
			s.Email = email
		}
	}
	if s.DisplayName == "" {
		if meta, ok := claims["user_metadata"].(map[string]any); ok {
			if name, ok := meta["display_name"].(string); ok {
				s.DisplayName = name
			}
		}
	}
}

// IsUnauthorized reports whether err is an authorization failure.
func IsUnauthorized(err error) bool {
	var ce *ClientError
	return errors.As(err, &ce) && ce.Type == ErrTypeUnauthorized
}

// IsTimeout reports whether err is a timeout.
func IsTimeout(err error) bool {
	var ce *ClientError
	return errors.As(err, &ce) && ce.Type == ErrTypeTimeout
}
