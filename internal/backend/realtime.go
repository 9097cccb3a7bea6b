// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package backend provides the client for the hosted TechTalk backend.
package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"
)

// =============================================================================
// FEED EVENT TYPES
// =============================================================================

// FeedEventType is a change-feed event kind.
type FeedEventType string

const (
	FeedInsert FeedEventType = "INSERT"
	FeedUpdate FeedEventType = "UPDATE"
	FeedDelete FeedEventType = "DELETE"
)

// FeedEvent is one decoded change-feed notification: a row snapshot for
// inserts and updates, the previous snapshot for updates and deletes.
// Rows are raw JSON; typed decoding belongs to the model package.
type FeedEvent struct {
	Table  string
	Type   FeedEventType
	Row    json.RawMessage
	OldRow json.RawMessage
}

// =============================================================================
// WIRE PROTOCOL
// =============================================================================

// The feed speaks phoenix-channel framing: a join per topic, heartbeats on
// the reserved "phoenix" topic, and change notifications as
// "postgres_changes" events on the joined topic.

const (
	heartbeatInterval = 25 * time.Second
	eventBuffer       = 32
)

type wireMessage struct {
	Topic   string          `json:"topic"`
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
	Ref     string          `json:"ref,omitempty"`
}

type changeSpec struct {
	Event  string `json:"event"`
	Schema string `json:"schema"`
	Table  string `json:"table"`
	Filter string `json:"filter,omitempty"`
}

type joinPayload struct {
	Config struct {
		PostgresChanges []changeSpec `json:"postgres_changes"`
	} `json:"config"`
}

type changePayload struct {
	Data struct {
		Type      string          `json:"type"`
		Table     string          `json:"table"`
		Record    json.RawMessage `json:"record"`
		OldRecord json.RawMessage `json:"old_record"`
	} `json:"data"`
}

// =============================================================================
// SUBSCRIPTION
// =============================================================================

// Subscription is a change-feed handle for one table, scoped by event types
// and an optional row filter. The lifecycle is Start once, Stop once; Stop
// is idempotent and closes the Events channel, so a consumer draining the
// channel observes termination. Each subscription owns one websocket.
type Subscription struct {
	client *Client
	topic  string
	table  string
	types  []FeedEventType
	filter string

	events  chan FeedEvent
	limiter *rate.Limiter

	mu      sync.Mutex
	started bool
	stopped bool
	cancel  context.CancelFunc
	conn    *websocket.Conn
	done    chan struct{}
}

// Subscribe creates a subscription for the named table. types selects which
// event kinds are delivered; filter is an optional server-side row filter
// such as "conversation_id=eq.<id>". The subscription is inert until Start.
func (c *Client) Subscribe(table string, types []FeedEventType, filter string) *Subscription {
	return &Subscription{
		client:  c,
		topic:   "realtime:" + table + ":" + uuid.NewString(),
		table:   table,
		types:   types,
		filter:  filter,
		events:  make(chan FeedEvent, eventBuffer),
		limiter: rate.NewLimiter(rate.Every(3*time.Second), 1),
		done:    make(chan struct{}),
	}
}

// Events returns the channel of decoded feed events. The channel is closed
// after Stop (or a non-recoverable failure), never before.
func (s *Subscription) Events() <-chan FeedEvent {
	return s.events
}

// Start dials the feed endpoint, joins the topic, and begins delivering
// events. The context bounds the whole subscription: cancelling it is
// equivalent to Stop.
func (s *Subscription) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.started || s.stopped {
		s.mu.Unlock()
		return &ClientError{Type: ErrTypeConnection, Message: "subscription already started"}
	}
	s.started = true
	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.mu.Unlock()

	conn, err := s.dial(runCtx)
	if err != nil {
		cancel()
		close(s.done)
		close(s.events)
		return err
	}
	s.setConn(conn)

	go s.run(runCtx)
	return nil
}

// Stop tears the subscription down: no events are delivered after it
// returns. Safe to call more than once and before Start.
func (s *Subscription) Stop() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	started := s.started
	cancel := s.cancel
	conn := s.conn
	s.mu.Unlock()

	if !started {
		close(s.done)
		close(s.events)
		return
	}

	cancel()
	if conn != nil {
		_ = conn.Close() // unblocks the read loop
	}
	<-s.done
}

// =============================================================================
// CONNECTION MANAGEMENT
// =============================================================================

// feedURL converts the backend base URL into the websocket feed endpoint.
func (s *Subscription) feedURL() string {
	base := s.client.config.BaseURL
	switch {
	case strings.HasPrefix(base, "https://"):
		base = "wss://" + strings.TrimPrefix(base, "https://")
	case strings.HasPrefix(base, "http://"):
		base = "ws://" + strings.TrimPrefix(base, "http://")
	}
	return base + "/realtime/v1/websocket?apikey=" + url.QueryEscape(s.client.config.AnonKey) + "&vsn=1.0.0"
}

func (s *Subscription) dial(ctx context.Context) (*websocket.Conn, error) {
	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}

	header := http.Header{}
	if sess := s.client.Session(); sess != nil {
		header.Set("Authorization", "Bearer "+sess.AccessToken)
	}

	conn, _, err := dialer.DialContext(ctx, s.feedURL(), header)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeConnection, Message: "feed dial failed", Cause: err}
	}

	if err := s.join(conn); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return conn, nil
}

// join sends the topic join frame carrying the change specs.
func (s *Subscription) join(conn *websocket.Conn) error {
	var jp joinPayload
	for _, t := range s.types {
		jp.Config.PostgresChanges = append(jp.Config.PostgresChanges, changeSpec{
			Event:  string(t),
			Schema: "public",
			Table:  s.table,
			Filter: s.filter,
		})
	}
	payload, err := json.Marshal(jp)
	if err != nil {
		return &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to marshal join", Cause: err}
	}

	msg := wireMessage{Topic: s.topic, Event: "phx_join", Payload: payload, Ref: uuid.NewString()}
	if err := conn.WriteJSON(msg); err != nil {
		return &ClientError{Type: ErrTypeConnection, Message: "feed join failed", Cause: err}
	}
	return nil
}

// setConn installs the active socket. A socket arriving after Stop (a
// redial finishing mid-teardown) is closed on the spot: Stop already closed
// the previous conn and will not come back for this one, so installing it
// would leave the read loop blocked on a socket nobody closes.
func (s *Subscription) setConn(conn *websocket.Conn) {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		_ = conn.Close()
		return
	}
	s.conn = conn
	s.mu.Unlock()
}

// run is the read loop. It owns the events channel: the channel closes
// exactly once, when the loop exits.
func (s *Subscription) run(ctx context.Context) {
	defer func() {
		close(s.done)
		close(s.events)
	}()

	heartbeatStop := s.startHeartbeat(ctx)
	defer heartbeatStop()

	for {
		s.mu.Lock()
		conn := s.conn
		s.mu.Unlock()
		if conn == nil {
			// Stop won the race before the first socket was installed.
			return
		}

		var msg wireMessage
		err := conn.ReadJSON(&msg)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			// Redial with the rate limiter pacing attempts, then rejoin.
			_ = conn.Close()
			if err := s.limiter.Wait(ctx); err != nil {
				return
			}
			next, dialErr := s.dial(ctx)
			if dialErr != nil {
				if ctx.Err() != nil {
					return
				}
				continue
			}
			s.setConn(next)
			continue
		}

		if msg.Event != "postgres_changes" || msg.Topic != s.topic {
			continue
		}

		var cp changePayload
		if err := json.Unmarshal(msg.Payload, &cp); err != nil {
			continue // malformed payloads are dropped, not trusted
		}

		ev := FeedEvent{
			Table:  cp.Data.Table,
			Type:   FeedEventType(cp.Data.Type),
			Row:    cp.Data.Record,
			OldRow: cp.Data.OldRecord,
		}
		select {
		case s.events <- ev:
		case <-ctx.Done():
			return
		}
	}
}

// startHeartbeat keeps the connection alive with phoenix heartbeats.
func (s *Subscription) startHeartbeat(ctx context.Context) func() {
	ticker := time.NewTicker(heartbeatInterval)
	stopped := make(chan struct{})

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-stopped:
				return
			case <-ticker.C:
				s.mu.Lock()
				conn := s.conn
				s.mu.Unlock()
				if conn == nil {
					continue
				}
				hb := wireMessage{Topic: "phoenix", Event: "heartbeat", Payload: json.RawMessage("{}"), Ref: uuid.NewString()}
				_ = conn.WriteJSON(hb) // a write failure surfaces via the read loop
			}
		}
	}()

	return func() { close(stopped) }
}
