// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package sync

import (
	"testing"
	"time"

	"github.com/jeranaias/techtalk-tui/internal/model"
)

func message(id string, at time.Time) model.Message {
	return model.Message{ID: id, ConversationID: "conv-1", SenderID: "a", Content: "m-" + id, CreatedAt: at}
}

func assertOrder(t *testing.T, tl *Timeline, want ...string) {
	t.Helper()
	got := tl.All()
	if len(got) != len(want) {
		gotIDs := make([]string, len(got))
		for i, m := range got {
			gotIDs[i] = m.ID
		}
		t.Fatalf("timeline = %v, want %v", gotIDs, want)
	}
	for i := range want {
		if got[i].ID != want[i] {
			gotIDs := make([]string, len(got))
			for j, m := range got {
				gotIDs[j] = m.ID
			}
			t.Fatalf("timeline = %v, want %v", gotIDs, want)
		}
	}
}

func TestTimelineOrdersByTimestamp(t *testing.T) {
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	tl := NewTimeline("conv-1")
	tl.Insert(message("2", base.Add(2*time.Second)))
	tl.Insert(message("1", base.Add(1*time.Second)))
	tl.Insert(message("3", base.Add(3*time.Second)))
	assertOrder(t, tl, "1", "2", "3")
}

func TestTimelineDedupesByID(t *testing.T) {
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	tl := NewTimeline("conv-1")
	tl.Insert(message("1", base))
	tl.Insert(message("1", base))
	assertOrder(t, tl, "1")
}

func TestTimelineLoadFeedRace(t *testing.T) {
	// The feed may deliver a message before or after the history load that
	// also contains it; both orders must converge on the same timeline.
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	history := []model.Message{message("1", base), message("2", base.Add(time.Second))}

	t.Run("feed after load", func(t *testing.T) {
		tl := NewTimeline("conv-1")
		tl.Replace(history)
		tl.Insert(message("2", base.Add(time.Second)))
		assertOrder(t, tl, "1", "2")
	})
	t.Run("feed before load", func(t *testing.T) {
		tl := NewTimeline("conv-1")
		tl.Insert(message("2", base.Add(time.Second)))
		tl.Replace(history)
		assertOrder(t, tl, "1", "2")
	})
}

func TestTimelineRejectsOtherConversations(t *testing.T) {
	tl := NewTimeline("conv-1")
	stray := model.Message{ID: "x", ConversationID: "conv-2", CreatedAt: time.Now()}
	tl.Insert(stray)
	if tl.Len() != 0 {
		t.Fatalf("len = %d, want 0", tl.Len())
	}
}

func TestTimelineLast(t *testing.T) {
	tl := NewTimeline("conv-1")
	if _, ok := tl.Last(); ok {
		t.Fatal("Last on empty timeline reported ok")
	}

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	tl.Insert(message("1", base))
	tl.Insert(message("2", base.Add(time.Second)))
	last, ok := tl.Last()
	if !ok || last.ID != "2" {
		t.Fatalf("Last = %+v, %v", last, ok)
	}
}
