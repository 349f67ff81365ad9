package ui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"deloconnect/internal/api"
	"deloconnect/internal/chat"
	"deloconnect/internal/config"
	"deloconnect/internal/store"
	"deloconnect/internal/types"
)

type chatHistoryMsg struct {
	err error
}

type feedEventMsg struct {
	message types.Message
	ok      bool
}

type feedStateMsg struct {
	state chat.FeedState
	ok    bool
}

type chatSentMsg struct {
	err error
}

type sessionActionMsg struct {
	action api.Action
	err    error
}

// chatPage renders one session's chat thread: REST history merged with
// the live WebSocket feed, a composer, and the session lifecycle
// actions behind a notes modal.
type chatPage struct {
	ctx    context.Context
	client *api.Client
	prefs  *store.PrefsStore
	styles Styles

	vm        *chat.ViewModel
	feed      *chat.Feed
	stopFeed  context.CancelFunc
	feedState chat.FeedState

	viewport  viewport.Model
	composer  textinput.Model
	composing bool

	// modal state for escalate/complete/cancel
	action     api.Action
	notes      textinput.Model
	submitting bool

	// composer history recall, loaded lazily from the prefs store
	history    []string
	historyIdx int

	sidebarOpen bool

	width, height int
}

func newChatPage(ctx context.Context, client *api.Client, cfg *config.Config, prefs *store.PrefsStore, styles Styles, session types.Session) *chatPage {
	vm := chat.NewViewModel(client, session.ChatID)
	vm.AttachSession(session)

	composer := textinput.New()
	composer.Placeholder = "message"
	composer.CharLimit = 500

	notes := textinput.New()
	notes.Placeholder = "notes (optional)"
	notes.CharLimit = 500

	feedCtx, stopFeed := context.WithCancel(ctx)
	feed := chat.NewFeed(chat.FeedURL(cfg.WSBaseURL, session.ChatID), client.Token())
	go feed.Run(feedCtx)

	sidebarOpen := true
	if prefs != nil {
		sidebarOpen = prefs.GetBool(store.KeySidebarOpen, true)
	}

	return &chatPage{
		ctx:         ctx,
		client:      client,
		prefs:       prefs,
		styles:      styles,
		vm:          vm,
		feed:        feed,
		stopFeed:    stopFeed,
		feedState:   chat.FeedConnecting,
		viewport:    viewport.New(80, 20),
		composer:    composer,
		notes:       notes,
		sidebarOpen: sidebarOpen,
	}
}

// init loads history and starts draining the feed. The feed is already
// running, so anything that arrives mid-fetch lands in the view-model's
// buffer and is merged when the history resolves.
func (p *chatPage) init() tea.Cmd {
	ctx, vm := p.ctx, p.vm
	load := func() tea.Msg {
		return chatHistoryMsg{err: vm.LoadHistory(ctx)}
	}
	return tea.Batch(load, p.waitEvent(), p.waitState())
}

func (p *chatPage) waitEvent() tea.Cmd {
	events := p.feed.Events()
	return func() tea.Msg {
		m, ok := <-events
		return feedEventMsg{message: m, ok: ok}
	}
}

func (p *chatPage) waitState() tea.Cmd {
	states := p.feed.States()
	return func() tea.Msg {
		s, ok := <-states
		return feedStateMsg{state: s, ok: ok}
	}
}

func (p *chatPage) close() {
	if p.stopFeed != nil {
		p.stopFeed()
	}
}

func (p *chatPage) setSize(w, h int) {
	p.width, p.height = w, h
	vw := w
	if p.sidebarOpen {
		vw -= SidebarWidth
	}
	if vw < 20 {
		vw = 20
	}
	p.viewport.Width = vw
	p.viewport.Height = h - InputHeight - StatusBarHeight
	p.composer.Width = vw - 4
	p.notes.Width = vw - 8
	p.refresh()
}

func (p *chatPage) capturing() bool { return p.composing || p.action != "" }

func (p *chatPage) update(msg tea.Msg, toast *Toast) (tea.Cmd, tea.Cmd) {
	switch msg := msg.(type) {
	case chatHistoryMsg:
		if msg.err != nil {
			return nil, toast.Show("history: "+msg.err.Error(), ToastError)
		}
		p.refresh()
		p.viewport.GotoBottom()
		return nil, nil

	case feedEventMsg:
		if !msg.ok {
			return nil, nil
		}
		p.vm.ApplyLive(msg.message)
		p.refresh()
		p.viewport.GotoBottom()
		return p.waitEvent(), nil

	case feedStateMsg:
		if !msg.ok {
			return nil, nil
		}
		p.feedState = msg.state
		return p.waitState(), nil

	case chatSentMsg:
		p.refresh()
		if msg.err != nil {
			return nil, toast.Show("send failed: "+msg.err.Error(), ToastError)
		}
		p.viewport.GotoBottom()
		return nil, nil

	case sessionActionMsg:
		p.submitting = false
		if msg.err != nil {
			p.refresh()
			return nil, toast.Show(string(msg.action)+" failed: "+msg.err.Error(), ToastError)
		}
		p.action = ""
		p.notes.Reset()
		p.notes.Blur()
		p.refresh()
		return nil, toast.Show("session "+pastTense(msg.action), ToastSuccess)

	case tea.KeyMsg:
		return p.handleKey(msg)
	}

	var cmd tea.Cmd
	p.viewport, cmd = p.viewport.Update(msg)
	return cmd, nil
}

func (p *chatPage) handleKey(msg tea.KeyMsg) (tea.Cmd, tea.Cmd) {
	if p.action != "" {
		switch msg.Type {
		case tea.KeyEsc:
			p.action = ""
			p.notes.Reset()
			p.notes.Blur()
		case tea.KeyEnter:
			if !p.submitting {
				return p.runAction(), nil
			}
		default:
			var cmd tea.Cmd
			p.notes, cmd = p.notes.Update(msg)
			return cmd, nil
		}
		return nil, nil
	}

	if p.composing {
		switch msg.Type {
		case tea.KeyEsc:
			p.composing = false
			p.composer.Blur()
		case tea.KeyUp:
			p.recallHistory()
		case tea.KeyEnter:
			text := strings.TrimSpace(p.composer.Value())
			if text == "" {
				return nil, nil
			}
			p.composer.Reset()
			if p.prefs != nil {
				_ = p.prefs.AppendHistory("chat:"+p.vm.ChatID(), text)
				p.history, p.historyIdx = nil, 0
			}
			ctx, vm := p.ctx, p.vm
			send := func() tea.Msg {
				err := vm.Send(ctx, types.SenderHR, text, time.Now().UTC().Format(time.RFC3339))
				return chatSentMsg{err: err}
			}
			p.refresh()
			return send, nil
		default:
			var cmd tea.Cmd
			p.composer, cmd = p.composer.Update(msg)
			return cmd, nil
		}
		return nil, nil
	}

	switch msg.String() {
	case "i":
		p.composing = true
		return p.composer.Focus(), nil
	case "e":
		p.action = api.ActionEscalate
		return p.notes.Focus(), nil
	case "c":
		p.action = api.ActionComplete
		return p.notes.Focus(), nil
	case "x":
		p.action = api.ActionCancel
		return p.notes.Focus(), nil
	case "ctrl+o":
		p.sidebarOpen = !p.sidebarOpen
		if p.prefs != nil {
			_ = p.prefs.SetBool(store.KeySidebarOpen, p.sidebarOpen)
		}
		p.setSize(p.width, p.height)
		return nil, nil
	}

	var cmd tea.Cmd
	p.viewport, cmd = p.viewport.Update(msg)
	return cmd, nil
}

func (p *chatPage) runAction() tea.Cmd {
	p.submitting = true
	ctx, vm := p.ctx, p.vm
	action, notes := p.action, p.notes.Value()
	return func() tea.Msg {
		var err error
		switch action {
		case api.ActionEscalate:
			err = vm.Escalate(ctx, notes)
		case api.ActionComplete:
			err = vm.Complete(ctx, notes)
		case api.ActionCancel:
			err = vm.Cancel(ctx, notes)
		}
		return sessionActionMsg{action: action, err: err}
	}
}

// recallHistory cycles previously sent messages into the composer,
// newest first.
func (p *chatPage) recallHistory() {
	if p.history == nil && p.prefs != nil {
		p.history, _ = p.prefs.History("chat:"+p.vm.ChatID(), 50)
	}
	if len(p.history) == 0 {
		return
	}
	p.composer.SetValue(p.history[p.historyIdx%len(p.history)])
	p.composer.CursorEnd()
	p.historyIdx++
}

func pastTense(a api.Action) string {
	switch a {
	case api.ActionEscalate:
		return "escalated"
	case api.ActionComplete:
		return "completed"
	case api.ActionCancel:
		return "cancelled"
	}
	return string(a)
}

// refresh re-renders the message transcript into the viewport.
func (p *chatPage) refresh() {
	var sb strings.Builder
	for _, m := range p.vm.Messages() {
		sender := p.styles.Bold.Render(string(m.Sender))
		if m.Sender == types.SenderHR {
			sender = p.styles.Success.Render(string(m.Sender))
		}
		sb.WriteString(p.styles.Muted.Render(m.Timestamp) + " " + sender + ": " + m.Text + "\n")
	}
	p.viewport.SetContent(sb.String())
}

func (p *chatPage) view() string {
	status := p.styles.Success.Render("live")
	if p.feedState != chat.FeedConnected {
		status = p.styles.Warning.Render("feed " + p.feedState.String() + " · may be stale")
	}

	title := "Chat " + p.vm.ChatID()
	if s, ok := p.vm.Session(); ok {
		title += " · " + s.SessionID + " (" + string(s.Status) + ")"
	}

	main := p.styles.Title.Render(title) + " " + status + "\n" +
		p.viewport.View() + "\n" +
		p.composerView()

	if p.action != "" {
		main += "\n" + p.styles.Modal.Render(
			p.styles.Bold.Render(string(p.action)+" session")+"\n"+
				p.notes.View()+"\n"+
				p.styles.Muted.Render("enter confirm · esc cancel"))
	}

	if !p.sidebarOpen {
		return main
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, main, p.sidebar())
}

func (p *chatPage) composerView() string {
	if p.composing {
		return p.composer.View()
	}
	return p.styles.Muted.Render("press i to compose")
}

func (p *chatPage) sidebar() string {
	s, ok := p.vm.Session()
	if !ok {
		return ""
	}
	lines := []string{
		p.styles.Bold.Render("Session"),
		"id: " + s.SessionID,
		"employee: " + s.EmployeeID,
		"status: " + string(s.Status),
		"scheduled: " + s.ScheduledAt,
	}
	if s.Notes != "" {
		lines = append(lines, "notes: "+s.Notes)
	}
	return p.styles.Sidebar.Width(SidebarWidth - 2).Render(strings.Join(lines, "\n"))
}
