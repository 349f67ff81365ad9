package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"deloconnect/internal/api"
	"deloconnect/internal/profile"
)

type profileMsg struct {
	view *profile.View
	err  error
}

// profilePage renders the signed-in user's composite profile.
type profilePage struct {
	ctx    context.Context
	client *api.Client
	styles Styles

	data     *profile.View
	viewport viewport.Model
	loading  bool
}

func newProfilePage(ctx context.Context, client *api.Client, styles Styles) *profilePage {
	return &profilePage{
		ctx:      ctx,
		client:   client,
		styles:   styles,
		viewport: viewport.New(80, 20),
	}
}

func (p *profilePage) setSize(w, h int) {
	p.viewport.Width = w
	p.viewport.Height = h - 2
	p.render()
}

func (p *profilePage) load() tea.Cmd {
	p.loading = true
	ctx, client := p.ctx, p.client
	return func() tea.Msg {
		v, err := profile.Load(ctx, client)
		return profileMsg{view: v, err: err}
	}
}

func (p *profilePage) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case profileMsg:
		p.loading = false
		if msg.err != nil {
			return func() tea.Msg { return errMsg{err: msg.err} }
		}
		p.data = msg.view
		p.render()
		return nil
	}
	var cmd tea.Cmd
	p.viewport, cmd = p.viewport.Update(msg)
	return cmd
}

func (p *profilePage) render() {
	if p.data == nil {
		return
	}
	emp := p.data.Employee

	var sb strings.Builder
	sb.WriteString(p.styles.Bold.Render(emp.Name) + " " + p.styles.Muted.Render("<"+emp.Email+">") + "\n")
	sb.WriteString("role: " + string(emp.Role) + "\n")
	if emp.IsBlocked {
		sb.WriteString(p.styles.Error.Render("blocked: "+emp.BlockedReason) + "\n")
	}
	sb.WriteString("\n")

	sections := p.data.Sections()
	if len(sections) == 0 {
		sb.WriteString(p.styles.Muted.Render("no company data") + "\n")
	}
	for _, s := range sections {
		sb.WriteString(fmt.Sprintf("%s %s\n",
			p.styles.Badge.Render(s.Name),
			p.styles.Muted.Render(fmt.Sprintf("%d entries", s.Count))))
	}

	if vibe, ok := p.data.LatestVibe(); ok {
		sb.WriteString("\n" + p.styles.Bold.Render("Latest vibe") +
			fmt.Sprintf(": %d/5 on %s", vibe.VibeScore, vibe.ResponseDate))
		if vibe.Comment != "" {
			sb.WriteString("\n" + p.styles.Subtitle.Render(vibe.Comment))
		}
		sb.WriteString("\n")
	}

	p.viewport.SetContent(sb.String())
}

func (p *profilePage) view() string {
	if p.loading && p.data == nil {
		return p.styles.Muted.Render("loading profile...")
	}
	if p.data == nil {
		return p.styles.Muted.Render("profile unavailable")
	}
	return p.styles.Title.Render("Profile") + "\n" + p.viewport.View()
}
