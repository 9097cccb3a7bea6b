// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package messages

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/jeranaias/techtalk-tui/internal/backend"
	"github.com/jeranaias/techtalk-tui/internal/chat"
	"github.com/jeranaias/techtalk-tui/internal/model"
	appsync "github.com/jeranaias/techtalk-tui/internal/sync"
	"github.com/jeranaias/techtalk-tui/internal/ui/components"
	"github.com/jeranaias/techtalk-tui/internal/ui/styles"
)

// focusTarget selects which pane receives keystrokes.
type focusTarget int

const (
	focusRoster focusTarget = iota
	focusComposer
)

// Services bundles the domain services the view calls.
type Services struct {
	Client        *backend.Client
	Profiles      *chat.Profiles
	Conversations *chat.Conversations
	Messages      *chat.Messages
	Avatars       *chat.Avatars
}

// =============================================================================
// MODEL
// =============================================================================

// Model is the signed-in chat view.
type Model struct {
	theme *styles.Theme
	log   zerolog.Logger
	svc   Services

	session *backend.Session
	self    model.Profile

	roster     *appsync.Roster
	rosterList *components.RosterList
	header     *components.Header
	composer   *components.Composer
	overlay    *components.AvatarOverlay
	viewport   viewport.Model
	spinner    spinner.Model

	// Open conversation state. gen increments on every peer switch and
	// stamps every async result belonging to that conversation.
	gen          int
	peer         model.Profile
	conversation model.Conversation
	timeline     *appsync.Timeline
	opening      bool

	profileSub *backend.Subscription
	messageSub *backend.Subscription

	focus      focusTarget
	timeFormat string
	errText    string
	width      int
	height     int
}

// New creates the chat view for an authenticated session.
func New(theme *styles.Theme, svc Services, session *backend.Session, self model.Profile, timeFormat string, log zerolog.Logger) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.Spinner

	vp := viewport.New(80, 20)

	return Model{
		theme:   theme,
		log:     log,
		svc:     svc,
		session: session,
		self:    self,
		// The profile feed handle exists before Init's start command runs,
		// so Close can stop it no matter how the start races a teardown.
		profileSub: svc.Client.Subscribe(chat.TableProfiles,
			[]backend.FeedEventType{backend.FeedInsert, backend.FeedUpdate, backend.FeedDelete}, ""),
		roster:     appsync.NewRoster(session.UserID),
		rosterList: components.NewRosterList(theme),
		header:     components.NewHeader(theme),
		composer:   components.NewComposer(theme),
		overlay:    components.NewAvatarOverlay(theme),
		viewport:   vp,
		spinner:    sp,
		focus:      focusRoster,
		timeFormat: timeFormat,
	}
}

// Init starts the roster load, the profile change feed, and the header
// clock.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.loadRosterCmd(),
		m.startProfileFeedCmd(),
		m.markOnlineCmd(),
		m.spinner.Tick,
		clockTickCmd(),
	)
}

// Close tears down both change-feed subscriptions. Called by the app shell
// on sign-out and on quit. The handles are installed on the model before
// their start commands run, and stopping an unstarted subscription makes
// its Start fail, so a start still in flight cannot leak a feed.
func (m *Model) Close() {
	if m.messageSub != nil {
		m.messageSub.Stop()
		m.messageSub = nil
	}
	if m.profileSub != nil {
		m.profileSub.Stop()
		m.profileSub = nil
	}
}

// visibleRoster applies the sidebar's search filter to the roster cache.
func (m *Model) visibleRoster() []model.Profile {
	return m.roster.Filter(m.rosterList.Query())
}

func (m *Model) setSize(width, height int) {
	m.width = width
	m.height = height
	m.theme.SetSize(width, height)

	sidebarWidth := 28
	if width < 80 {
		sidebarWidth = width / 3
	}
	contentWidth := width - sidebarWidth - 2

	m.rosterList.SetSize(sidebarWidth, height-2)
	m.header.SetWidth(contentWidth)
	m.composer.SetWidth(contentWidth)
	m.viewport.Width = contentWidth
	m.viewport.Height = height - 10
	if m.viewport.Height < 3 {
		m.viewport.Height = 3
	}
	m.refreshViewport()
}
