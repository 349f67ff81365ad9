package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"deloconnect/internal/api"
	"deloconnect/internal/config"
)

type loginDoneMsg struct {
	err error
}

// loginPage collects an access token. No backend call happens until a
// token is saved.
type loginPage struct {
	cfg    *config.Config
	client *api.Client
	styles Styles
	input  textinput.Model
}

func newLoginPage(cfg *config.Config, client *api.Client, styles Styles) *loginPage {
	ti := textinput.New()
	ti.Placeholder = "access token"
	ti.EchoMode = textinput.EchoPassword
	ti.CharLimit = 512
	return &loginPage{cfg: cfg, client: client, styles: styles, input: ti}
}

func (p *loginPage) init() tea.Cmd {
	return p.input.Focus()
}

func (p *loginPage) update(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEnter {
		token := strings.TrimSpace(p.input.Value())
		if token == "" {
			return func() tea.Msg { return loginDoneMsg{err: fmt.Errorf("token is required")} }
		}
		p.client.SetToken(token)
		p.cfg.AccessToken = token
		cfg := p.cfg
		return func() tea.Msg { return loginDoneMsg{err: cfg.Save()} }
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return cmd
}

func (p *loginPage) view() string {
	return p.styles.Title.Render("Sign in") + "\n" +
		p.styles.Body.Render("Paste an admin access token to connect.") + "\n\n" +
		p.input.View()
}
