// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jeranaias/techtalk-tui/internal/backend"
)

func newClient(t *testing.T, baseURL string) *backend.Client {
	t.Helper()
	c, err := backend.New(backend.Config{BaseURL: baseURL, AnonKey: "anon", Timeout: 5 * time.Second})
	if err != nil {
		t.Fatalf("backend.New: %v", err)
	}
	return c
}

// =============================================================================
// PROFILES
// =============================================================================

func TestProfilesOthersExcludesSelf(t *testing.T) {
	var got *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Clone(context.Background())
		w.Write([]byte(`[{"profile_id":"a","display_name":"Alice","is_online":true}]`))
	}))
	defer srv.Close()

	p := NewProfiles(newClient(t, srv.URL))
	profiles, err := p.Others(context.Background(), "me")
	if err != nil {
		t.Fatalf("Others: %v", err)
	}
	if len(profiles) != 1 || profiles[0].ID != "a" {
		t.Errorf("profiles = %+v", profiles)
	}
	if q := got.URL.Query().Get("profile_id"); q != "neq.me" {
		t.Errorf("profile_id filter = %q", q)
	}
	if q := got.URL.Query().Get("order"); q != "created_at.asc" {
		t.Errorf("order = %q, want oldest first", q)
	}
}

func TestProfilesEnsureExisting(t *testing.T) {
	inserts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			inserts++
		}
		w.Write([]byte(`[{"profile_id":"me","display_name":"Ada","is_online":true}]`))
	}))
	defer srv.Close()

	p := NewProfiles(newClient(t, srv.URL))
	prof, err := p.Ensure(context.Background(), "me", "Ada")
	if err != nil {
		t.Fatalf("Ensure: %v", err)
	}
	if prof.ID != "me" || prof.DisplayName != "Ada" {
		t.Errorf("profile = %+v", prof)
	}
	if inserts != 0 {
		t.Errorf("existing profile was re-inserted")
	}
}

func TestProfilesEnsureCreates(t *testing.T) {
	var insertBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			json.NewDecoder(r.Body).Decode(&insertBody)
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`[{"profile_id":"me","display_name":"Ada","is_online":true}]`))
			return
		}
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	p := NewProfiles(newClient(t, srv.URL))
	prof, err := p.Ensure(context.Background(), "me", "Ada")
	if err != nil {
		t.Fatalf("Ensure: %v", err)
	}
	if prof.ID != "me" {
		t.Errorf("profile = %+v", prof)
	}
	if insertBody["profile_id"] != "me" || insertBody["display_name"] != "Ada" {
		t.Errorf("insert body = %v", insertBody)
	}
	if online, _ := insertBody["is_online"].(bool); !online {
		t.Error("created profile not marked online")
	}
}

func TestProfilesSetOfflineStampsLastSeen(t *testing.T) {
	var patch map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch {
			t.Errorf("method = %s", r.Method)
		}
		json.NewDecoder(r.Body).Decode(&patch)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	p := NewProfiles(newClient(t, srv.URL))
	if err := p.SetOffline(context.Background(), "me"); err != nil {
		t.Fatalf("SetOffline: %v", err)
	}
	if online, _ := patch["is_online"].(bool); online {
		t.Error("is_online not cleared")
	}
	stamp, _ := patch["last_seen"].(string)
	if _, err := time.Parse(time.RFC3339, stamp); err != nil {
		t.Errorf("last_seen = %q: %v", stamp, err)
	}
}

// =============================================================================
// CONVERSATIONS
// =============================================================================

func TestConversationsResolveFindsEitherOrder(t *testing.T) {
	var got *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Clone(context.Background())
		w.Write([]byte(`[{"conversation_id":"c1","user1_id":"peer","user2_id":"me"}]`))
	}))
	defer srv.Close()

	c := NewConversations(newClient(t, srv.URL))
	conv, err := c.Resolve(context.Background(), "me", "peer")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if conv.ID != "c1" || !conv.Involves("me", "peer") {
		t.Errorf("conversation = %+v", conv)
	}
	if conv.Peer("me") != "peer" {
		t.Errorf("Peer = %q", conv.Peer("me"))
	}

	want := "(and(user1_id.eq.me,user2_id.eq.peer),and(user1_id.eq.peer,user2_id.eq.me))"
	if q := got.URL.Query().Get("or"); q != want {
		t.Errorf("or = %q, want %q", q, want)
	}
}

func TestConversationsResolveCreates(t *testing.T) {
	var insertBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			json.NewDecoder(r.Body).Decode(&insertBody)
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`[{"conversation_id":"c-new","user1_id":"me","user2_id":"peer"}]`))
			return
		}
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewConversations(newClient(t, srv.URL))
	conv, err := c.Resolve(context.Background(), "me", "peer")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if conv.ID != "c-new" {
		t.Errorf("conversation = %+v", conv)
	}
	if insertBody["user1_id"] != "me" || insertBody["user2_id"] != "peer" {
		t.Errorf("insert body = %v", insertBody)
	}
}

// =============================================================================
// MESSAGES
// =============================================================================

func TestMessagesHistoryOrdered(t *testing.T) {
	var got *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Clone(context.Background())
		w.Write([]byte(`[
			{"message_id":"m1","conversation_id":"c1","sender_id":"a","content":"hi","created_at":"2025-03-01T12:00:00Z"},
			{"message_id":"m2","conversation_id":"c1","sender_id":"b","content":"hey","created_at":"2025-03-01T12:00:05Z"}
		]`))
	}))
	defer srv.Close()

	m := NewMessages(newClient(t, srv.URL))
	history, err := m.History(context.Background(), "c1")
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(history) != 2 || history[0].ID != "m1" || history[1].ID != "m2" {
		t.Errorf("history = %+v", history)
	}

	q := got.URL.Query()
	if q.Get("conversation_id") != "eq.c1" {
		t.Errorf("conversation_id = %q", q.Get("conversation_id"))
	}
	if q.Get("order") != "created_at.asc" {
		t.Errorf("order = %q", q.Get("order"))
	}
}

func TestMessagesSendReturnsStored(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		if body["content"] != "hello" || body["sender_id"] != "me" {
			t.Errorf("body = %v", body)
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`[{"message_id":"m9","conversation_id":"c1","sender_id":"me","content":"hello","created_at":"2025-03-01T12:00:00Z"}]`))
	}))
	defer srv.Close()

	m := NewMessages(newClient(t, srv.URL))
	msg, err := m.Send(context.Background(), "c1", "me", "hello")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if msg.ID != "m9" || !msg.SentBy("me") {
		t.Errorf("message = %+v", msg)
	}
}

// =============================================================================
// AVATARS
// =============================================================================

var pngBytes = append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 64)...)

func TestAvatarUpload(t *testing.T) {
	var uploadPath, patchURL string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost:
			uploadPath = r.URL.Path
			w.Write([]byte(`{}`))
		case r.Method == http.MethodPatch:
			var patch map[string]string
			json.NewDecoder(r.Body).Decode(&patch)
			patchURL = patch["profile_picture"]
			w.WriteHeader(http.StatusNoContent)
		}
	}))
	defer srv.Close()

	client := newClient(t, srv.URL)
	a := NewAvatars(client, NewProfiles(client), "images")

	url, err := a.Upload(context.Background(), "me", "face.png", pngBytes)
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	const prefix = "/storage/v1/object/images/profile-pictures/me-"
	if len(uploadPath) <= len(prefix) || uploadPath[:len(prefix)] != prefix {
		t.Errorf("upload path = %q", uploadPath)
	}
	if uploadPath[len(uploadPath)-4:] != ".png" {
		t.Errorf("upload path extension = %q", uploadPath)
	}
	if patchURL != url {
		t.Errorf("profile URL %q != returned URL %q", patchURL, url)
	}
}

func TestAvatarUploadValidatesBeforeNetwork(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer srv.Close()

	client := newClient(t, srv.URL)
	a := NewAvatars(client, NewProfiles(client), "images")

	t.Run("too large", func(t *testing.T) {
		big := make([]byte, MaxAvatarBytes+1)
		copy(big, pngBytes)
		_, err := a.Upload(context.Background(), "me", "big.png", big)
		if !errors.Is(err, ErrAvatarTooLarge) {
			t.Errorf("err = %v", err)
		}
	})
	t.Run("not an image", func(t *testing.T) {
		_, err := a.Upload(context.Background(), "me", "notes.txt", []byte("plain text, not pixels"))
		if !errors.Is(err, ErrAvatarNotImage) {
			t.Errorf("err = %v", err)
		}
	})

	if requests != 0 {
		t.Errorf("validation failures reached the network: %d requests", requests)
	}
}
