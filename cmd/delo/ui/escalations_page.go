package ui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"deloconnect/internal/api"
	"deloconnect/internal/listview"
	"deloconnect/internal/types"
)

type escalationsMsg struct {
	chains []types.EscalatedChain
	err    error
}

// escalationsPage lists escalated chains. Selecting one opens the chat
// of the chain's first session.
type escalationsPage struct {
	ctx    context.Context
	client *api.Client
	styles Styles

	list    *listview.Model[types.EscalatedChain]
	cursor  int
	loading bool
	loaded  bool

	width, height int
}

func newEscalationsPage(ctx context.Context, client *api.Client, styles Styles) *escalationsPage {
	lv := listview.New(
		func(c types.EscalatedChain) []string {
			return []string{c.ChainID, c.EmployeeID, c.EscalationReason}
		},
		map[string]func(types.EscalatedChain) string{
			"escalated": func(c types.EscalatedChain) string { return c.EscalatedAt },
			"employee":  func(c types.EscalatedChain) string { return c.EmployeeID },
		},
	)
	return &escalationsPage{ctx: ctx, client: client, styles: styles, list: lv}
}

func (p *escalationsPage) setSize(w, h int) { p.width, p.height = w, h }

func (p *escalationsPage) capturing() bool { return false }

func (p *escalationsPage) load() tea.Cmd {
	p.loading = true
	ctx, client := p.ctx, p.client
	return func() tea.Msg {
		chains, err := client.EscalatedChains(ctx)
		return escalationsMsg{chains: chains, err: err}
	}
}

func (p *escalationsPage) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case escalationsMsg:
		p.loading = false
		if msg.err != nil {
			return func() tea.Msg { return errMsg{err: msg.err} }
		}
		p.loaded = true
		p.list.SetItems(msg.chains)
		if n := len(p.list.PageItems()); p.cursor >= n {
			p.cursor = 0
		}
		return nil

	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			return p.load()
		case "s":
			p.list.SortBy("escalated")
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
		case "right", "l":
			p.list.NextPage()
		case "enter":
			items := p.list.PageItems()
			if p.cursor < len(items) {
				return p.openChain(items[p.cursor].ChainID)
			}
		}
	}
	return nil
}

// openChain resolves the chain's first session and opens its chat.
func (p *escalationsPage) openChain(chainID string) tea.Cmd {
	ctx, client := p.ctx, p.client
	return func() tea.Msg {
		chain, err := client.ChainDetails(ctx, chainID)
		if err != nil {
			return errMsg{err: err}
		}
		s, ok := chain.PrimarySession()
		if !ok {
			return errMsg{err: fmt.Errorf("chain %s has no sessions", chainID)}
		}
		return openChatMsg{session: s}
	}
}

func (p *escalationsPage) view() string {
	if p.loading && !p.loaded {
		return p.styles.Muted.Render("loading escalations...")
	}

	out := p.styles.Title.Render("Escalations") + "\n"
	items := p.list.PageItems()
	if len(items) == 0 {
		return out + p.styles.Muted.Render("no escalated chains")
	}

	table := NewSimpleTable("", []string{"Chain", "Employee", "Reason", "Escalated"})
	for _, c := range items {
		table.AddRow(c.ChainID, c.EmployeeID, c.EscalationReason, c.EscalatedAt)
	}
	out += highlightRow(table.View(p.styles), p.cursor, p.styles)

	out += p.styles.Muted.Render(fmt.Sprintf("page %d of %d · %d chains · enter open chat",
		p.list.Page(), p.list.TotalPages(), p.list.Len()))
	return out
}
