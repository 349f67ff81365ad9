package ui

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"deloconnect/internal/api"
	"deloconnect/internal/listview"
	"deloconnect/internal/types"
)

type bucketsMsg struct {
	buckets *api.SessionBuckets
	err     error
}

// sessionsPage lists every session across the three status buckets with
// search, sort and pagination over the combined set.
type sessionsPage struct {
	ctx    context.Context
	client *api.Client
	styles Styles

	list      *listview.Model[types.Session]
	search    textinput.Model
	searching bool
	cursor    int
	loading   bool
	loaded    bool

	width, height int
}

func newSessionsPage(ctx context.Context, client *api.Client, styles Styles) *sessionsPage {
	ti := textinput.New()
	ti.Placeholder = "search sessions"
	ti.CharLimit = 64

	lv := listview.New(
		func(s types.Session) []string {
			return []string{s.SessionID, s.EmployeeID, s.ChatID, string(s.Status)}
		},
		map[string]func(types.Session) string{
			"scheduled": func(s types.Session) string { return s.ScheduledAt },
			"status":    func(s types.Session) string { return string(s.Status) },
			"employee":  func(s types.Session) string { return s.EmployeeID },
		},
	)

	return &sessionsPage{
		ctx:    ctx,
		client: client,
		styles: styles,
		list:   lv,
		search: ti,
	}
}

func (p *sessionsPage) setSize(w, h int) {
	p.width, p.height = w, h
	p.search.Width = w - 4
}

func (p *sessionsPage) capturing() bool { return p.searching }

func (p *sessionsPage) load() tea.Cmd {
	p.loading = true
	ctx, client := p.ctx, p.client
	return func() tea.Msg {
		buckets, err := client.FetchSessionBuckets(ctx)
		return bucketsMsg{buckets: buckets, err: err}
	}
}

func (p *sessionsPage) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case bucketsMsg:
		p.loading = false
		if msg.err != nil {
			return func() tea.Msg { return errMsg{err: msg.err} }
		}
		p.loaded = true
		combined := make([]types.Session, 0,
			len(msg.buckets.Active)+len(msg.buckets.Pending)+len(msg.buckets.Completed))
		combined = append(combined, msg.buckets.Active...)
		combined = append(combined, msg.buckets.Pending...)
		combined = append(combined, msg.buckets.Completed...)
		p.list.SetItems(combined)
		p.clampCursor()
		return nil

	case tea.KeyMsg:
		if p.searching {
			switch msg.Type {
			case tea.KeyEsc:
				p.searching = false
				p.search.Blur()
			case tea.KeyEnter:
				p.searching = false
				p.search.Blur()
			default:
				var cmd tea.Cmd
				p.search, cmd = p.search.Update(msg)
				p.list.SetSearch(p.search.Value())
				p.cursor = 0
				return cmd
			}
			return nil
		}

		switch msg.String() {
		case "/":
			p.searching = true
			return p.search.Focus()
		case "r":
			return p.load()
		case "s":
			p.list.SortBy("scheduled")
		case "S":
			p.list.SortBy("status")
		case "up", "k":
			if p.cursor > 0 {
				p.cursor--
			}
		case "down", "j":
			if p.cursor < len(p.list.PageItems())-1 {
				p.cursor++
			}
		case "left", "h":
			p.list.PrevPage()
			p.clampCursor()
		case "right", "l":
			p.list.NextPage()
			p.clampCursor()
		case "enter":
			items := p.list.PageItems()
			if p.cursor < len(items) {
				s := items[p.cursor]
				return func() tea.Msg { return openChatMsg{session: s} }
			}
		}
	}
	return nil
}

func (p *sessionsPage) clampCursor() {
	if n := len(p.list.PageItems()); p.cursor >= n {
		p.cursor = n - 1
	}
	if p.cursor < 0 {
		p.cursor = 0
	}
}

func (p *sessionsPage) view() string {
	if p.loading && !p.loaded {
		return p.styles.Muted.Render("loading sessions...")
	}

	out := p.styles.Title.Render("Sessions") + "\n"
	if p.searching || p.search.Value() != "" {
		out += p.search.View() + "\n"
	}

	items := p.list.PageItems()
	if len(items) == 0 {
		return out + p.styles.Muted.Render("no sessions")
	}

	table := NewSimpleTable("", []string{"Session", "Employee", "Status", "Scheduled"})
	for _, s := range items {
		table.AddRow(s.SessionID, s.EmployeeID, string(s.Status), s.ScheduledAt)
	}
	rendered := table.View(p.styles)
	out += highlightRow(rendered, p.cursor, p.styles)

	out += p.styles.Muted.Render(fmt.Sprintf("page %s of %s · %s sessions · / search · s sort",
		strconv.Itoa(p.list.Page()), strconv.Itoa(p.list.TotalPages()), strconv.Itoa(p.list.Len())))
	return out
}
