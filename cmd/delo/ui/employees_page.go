package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"deloconnect/internal/api"
	"deloconnect/internal/listview"
	"deloconnect/internal/types"
)

type employeesMsg struct {
	users []types.Employee
	err   error
}

type userToggledMsg struct {
	blocked bool
	err     error
}

// employeesPage lists platform users with search and pagination, and
// supports blocking and unblocking inline.
type employeesPage struct {
	ctx    context.Context
	client *api.Client
	styles Styles

	list      *listview.Model[types.Employee]
	search    textinput.Model
	searching bool

	// blocking holds the user id a block-reason prompt is open for.
	blocking string
	reason   textinput.Model

	cursor  int
	loading bool
	loaded  bool

	width, height int
}

func newEmployeesPage(ctx context.Context, client *api.Client, styles Styles) *employeesPage {
	ti := textinput.New()
	ti.Placeholder = "search employees"
	ti.CharLimit = 64

	reason := textinput.New()
	reason.Placeholder = "block reason"
	reason.CharLimit = 200

	lv := listview.New(
		func(e types.Employee) []string {
			return []string{e.UserID, e.Name, e.Email, string(e.Role)}
		},
		map[string]func(types.Employee) string{
			"name": func(e types.Employee) string { return e.Name },
			"role": func(e types.Employee) string { return string(e.Role) },
		},
	)

	return &employeesPage{
		ctx:    ctx,
		client: client,
		styles: styles,
		list:   lv,
		search: ti,
		reason: reason,
	}
}

func (p *employeesPage) setSize(w, h int) {
	p.width, p.height = w, h
	p.search.Width = w - 4
	p.reason.Width = w - 4
}

func (p *employeesPage) capturing() bool { return p.searching || p.blocking != "" }

func (p *employeesPage) load() tea.Cmd {
	p.loading = true
	ctx, client := p.ctx, p.client
	return func() tea.Msg {
		users, err := client.ListUsers(ctx)
		return employeesMsg{users: users, err: err}
	}
}

func (p *employeesPage) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case employeesMsg:
		p.loading = false
		if msg.err != nil {
			return func() tea.Msg { return errMsg{err: msg.err} }
		}
		p.loaded = true
		p.list.SetItems(msg.users)
		p.clampCursor()
		return nil

	case userToggledMsg:
		if msg.err != nil {
			return func() tea.Msg { return errMsg{err: msg.err} }
		}
		return p.load()

	case tea.KeyMsg:
		if p.blocking != "" {
			switch msg.Type {
			case tea.KeyEsc:
				p.blocking = ""
				p.reason.Reset()
				p.reason.Blur()
			case tea.KeyEnter:
				userID, reason := p.blocking, p.reason.Value()
				p.blocking = ""
				p.reason.Reset()
				p.reason.Blur()
				ctx, client := p.ctx, p.client
				return func() tea.Msg {
					err := client.BlockUser(ctx, userID, reason)
					return userToggledMsg{blocked: true, err: err}
				}
			default:
				var cmd tea.Cmd
				p.reason, cmd = p.reason.Update(msg)
				return cmd
			}
			return nil
		}

		if p.searching {
			switch msg.Type {
			case tea.KeyEsc, tea.KeyEnter:
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
		case "n":
			p.list.SortBy("name")
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
		case "b":
			if e, ok := p.selected(); ok && !e.IsBlocked {
				p.blocking = e.UserID
				return p.reason.Focus()
			}
		case "u":
			if e, ok := p.selected(); ok && e.IsBlocked {
				ctx, client := p.ctx, p.client
				userID := e.UserID
				return func() tea.Msg {
					err := client.UnblockUser(ctx, userID)
					return userToggledMsg{blocked: false, err: err}
				}
			}
		}
	}
	return nil
}

func (p *employeesPage) selected() (types.Employee, bool) {
	items := p.list.PageItems()
	if p.cursor < len(items) {
		return items[p.cursor], true
	}
	return types.Employee{}, false
}

func (p *employeesPage) clampCursor() {
	if n := len(p.list.PageItems()); p.cursor >= n {
		p.cursor = n - 1
	}
	if p.cursor < 0 {
		p.cursor = 0
	}
}

func (p *employeesPage) view() string {
	if p.loading && !p.loaded {
		return p.styles.Muted.Render("loading employees...")
	}

	out := p.styles.Title.Render("Employees") + "\n"
	if p.searching || p.search.Value() != "" {
		out += p.search.View() + "\n"
	}

	items := p.list.PageItems()
	if len(items) == 0 {
		return out + p.styles.Muted.Render("no employees")
	}

	table := NewSimpleTable("", []string{"ID", "Name", "Email", "Role", "Blocked"})
	for _, e := range items {
		blocked := ""
		if e.IsBlocked {
			blocked = "yes: " + e.BlockedReason
		}
		table.AddRow(e.UserID, e.Name, e.Email, string(e.Role), blocked)
	}
	out += highlightRow(table.View(p.styles), p.cursor, p.styles)

	if p.blocking != "" {
		out += "\n" + p.styles.Modal.Render("Block "+p.blocking+"\n"+p.reason.View())
	}

	out += p.styles.Muted.Render(fmt.Sprintf("page %d of %d · %d employees · / search · b block · u unblock",
		p.list.Page(), p.list.TotalPages(), p.list.Len()))
	return out
}
