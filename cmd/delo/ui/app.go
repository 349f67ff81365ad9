package ui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"deloconnect/internal/api"
	"deloconnect/internal/config"
	"deloconnect/internal/logging"
	"deloconnect/internal/store"
	"deloconnect/internal/types"
)

// Page identifies one dashboard screen.
type Page int

const (
	PageSessions Page = iota
	PageEmployees
	PageEscalations
	PageChat
	PageProfile
	PageWellbeing
	PageLogin
)

func (p Page) String() string {
	switch p {
	case PageSessions:
		return "sessions"
	case PageEmployees:
		return "employees"
	case PageEscalations:
		return "escalations"
	case PageChat:
		return "chat"
	case PageProfile:
		return "profile"
	case PageWellbeing:
		return "wellbeing"
	case PageLogin:
		return "login"
	}
	return "unknown"
}

func pageFromString(s string) Page {
	for _, p := range []Page{PageSessions, PageEmployees, PageEscalations, PageProfile, PageWellbeing} {
		if p.String() == s {
			return p
		}
	}
	return PageSessions
}

// tabs in display order. Chat is entered from a list, not from the bar.
var tabPages = []Page{PageSessions, PageEmployees, PageEscalations, PageProfile, PageWellbeing}

// openChatMsg switches to the chat page for the given session.
type openChatMsg struct {
	session types.Session
}

// employeesPollMsg drives the periodic employee-list refetch while the
// employees page is visible. gen ties a tick to the visit that started
// it so leaving and re-entering the page does not stack tickers.
type employeesPollMsg struct {
	gen int
}

// errMsg carries a background failure into the toast.
type errMsg struct {
	err error
}

// App is the root dashboard model.
type App struct {
	ctx    context.Context
	styles Styles
	cfg    *config.Config
	client *api.Client
	prefs  *store.PrefsStore
	log    *logging.Logger

	page    Page
	width   int
	height  int
	pollGen int

	sessions    *sessionsPage
	employees   *employeesPage
	escalations *escalationsPage
	chat        *chatPage
	profile     *profilePage
	wellbeing   *wellbeingPage
	login       *loginPage

	toast Toast
}

// NewApp wires the dashboard. When no access token is configured the
// app starts on the login page and performs no backend calls until a
// token is saved.
func NewApp(ctx context.Context, cfg *config.Config, client *api.Client, prefs *store.PrefsStore) *App {
	theme := cfg.Theme
	if theme == "" && prefs != nil {
		theme = prefs.Get(store.KeyTheme, "")
	}
	var styles Styles
	switch theme {
	case "dark":
		styles = NewStyles(DarkTheme())
	case "light":
		styles = NewStyles(LightTheme())
	default:
		styles = DefaultStyles()
	}
	a := &App{
		ctx:         ctx,
		styles:      styles,
		cfg:         cfg,
		client:      client,
		prefs:       prefs,
		log:         logging.Get(logging.CategoryUI),
		sessions:    newSessionsPage(ctx, client, styles),
		employees:   newEmployeesPage(ctx, client, styles),
		escalations: newEscalationsPage(ctx, client, styles),
		profile:     newProfilePage(ctx, client, styles),
		wellbeing:   newWellbeingPage(styles),
		login:       newLoginPage(cfg, client, styles),
	}
	if !client.HasToken() {
		a.page = PageLogin
	} else if prefs != nil {
		a.page = pageFromString(prefs.Get(store.KeyLastPage, "sessions"))
	}
	return a
}

func (a *App) Init() tea.Cmd {
	if a.page == PageLogin {
		return a.login.init()
	}
	return a.loadPage(a.page)
}

// loadPage returns the fetch command for a page, if it has one.
func (a *App) loadPage(p Page) tea.Cmd {
	switch p {
	case PageSessions:
		return a.sessions.load()
	case PageEmployees:
		a.pollGen++
		return tea.Batch(a.employees.load(), a.pollTick())
	case PageEscalations:
		return a.escalations.load()
	case PageProfile:
		return a.profile.load()
	}
	return nil
}

// capturing reports whether the active page owns raw key input.
func (a *App) capturing() bool {
	switch a.page {
	case PageLogin:
		return true
	case PageChat:
		return a.chat != nil && a.chat.capturing()
	case PageSessions:
		return a.sessions.capturing()
	case PageEmployees:
		return a.employees.capturing()
	case PageEscalations:
		return a.escalations.capturing()
	}
	return false
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		w, h := ContentWidth(msg.Width), ContentHeight(msg.Height)
		a.sessions.setSize(w, h)
		a.employees.setSize(w, h)
		a.escalations.setSize(w, h)
		a.profile.setSize(w, h)
		a.wellbeing.setSize(w, h)
		if a.chat != nil {
			a.chat.setSize(w, h)
		}
		return a, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return a, a.quit()
		}
		if !a.capturing() {
			switch msg.String() {
			case "q":
				return a, a.quit()
			case "1", "2", "3", "4", "5":
				idx := int(msg.String()[0] - '1')
				return a, a.switchTo(tabPages[idx])
			case "tab":
				return a, a.switchTo(a.nextTab())
			case "T":
				a.toggleTheme()
				return a, nil
			}
		}
		if msg.Type == tea.KeyEsc && a.page == PageChat {
			a.closeChat()
			return a, a.switchTo(PageSessions)
		}

	case openChatMsg:
		a.closeChat()
		a.chat = newChatPage(a.ctx, a.client, a.cfg, a.prefs, a.styles, msg.session)
		a.chat.setSize(ContentWidth(a.width), ContentHeight(a.height))
		a.page = PageChat
		return a, a.chat.init()

	case loginDoneMsg:
		if msg.err != nil {
			return a, a.toast.Show(msg.err.Error(), ToastError)
		}
		a.page = PageSessions
		return a, a.loadPage(PageSessions)

	case employeesPollMsg:
		if msg.gen == a.pollGen && a.page == PageEmployees {
			return a, tea.Batch(a.employees.load(), a.pollTick())
		}
		return a, nil

	case errMsg:
		a.log.Warn("background error: %v", msg.err)
		if errors.Is(msg.err, api.ErrUnauthorized) || errors.Is(msg.err, api.ErrNoToken) {
			// Expired or missing token: stop fetching and route to
			// sign-in. Nothing else is issued until a token is saved.
			a.closeChat()
			a.page = PageLogin
			return a, tea.Batch(a.login.init(),
				a.toast.Show("session expired; sign in again", ToastError))
		}
		return a, a.toast.Show(msg.err.Error(), ToastError)

	case toastExpiredMsg:
		a.toast.Update(msg)
		return a, nil
	}

	// Route everything else to the active page.
	var cmd tea.Cmd
	switch a.page {
	case PageLogin:
		cmd = a.login.update(msg)
	case PageSessions:
		cmd = a.sessions.update(msg)
	case PageEmployees:
		cmd = a.employees.update(msg)
	case PageEscalations:
		cmd = a.escalations.update(msg)
	case PageChat:
		if a.chat != nil {
			var toastCmd tea.Cmd
			cmd, toastCmd = a.chat.update(msg, &a.toast)
			if toastCmd != nil {
				cmd = tea.Batch(cmd, toastCmd)
			}
		}
	case PageProfile:
		cmd = a.profile.update(msg)
	case PageWellbeing:
		cmd = a.wellbeing.update(msg)
	}
	return a, cmd
}

// toggleTheme flips light/dark, persists the choice and restyles every
// page.
func (a *App) toggleTheme() {
	name := "dark"
	if a.styles.Theme.IsDark {
		name = "light"
		a.styles = NewStyles(LightTheme())
	} else {
		a.styles = NewStyles(DarkTheme())
	}
	if a.prefs != nil {
		if err := a.prefs.Set(store.KeyTheme, name); err != nil {
			a.log.Debug("persisting theme: %v", err)
		}
	}
	a.sessions.styles = a.styles
	a.employees.styles = a.styles
	a.escalations.styles = a.styles
	a.profile.styles = a.styles
	a.profile.render()
	a.wellbeing.styles = a.styles
	a.wellbeing.render()
	a.login.styles = a.styles
	if a.chat != nil {
		a.chat.styles = a.styles
		a.chat.refresh()
	}
}

func (a *App) pollTick() tea.Cmd {
	gen := a.pollGen
	return tea.Tick(a.cfg.PollInterval(), func(time.Time) tea.Msg {
		return employeesPollMsg{gen: gen}
	})
}

func (a *App) nextTab() Page {
	for i, p := range tabPages {
		if p == a.page {
			return tabPages[(i+1)%len(tabPages)]
		}
	}
	return PageSessions
}

func (a *App) switchTo(p Page) tea.Cmd {
	if a.page == PageChat && p != PageChat {
		a.closeChat()
	}
	a.page = p
	if a.prefs != nil && p != PageChat && p != PageLogin {
		if err := a.prefs.Set(store.KeyLastPage, p.String()); err != nil {
			a.log.Debug("persisting last page: %v", err)
		}
	}
	return a.loadPage(p)
}

func (a *App) closeChat() {
	if a.chat != nil {
		a.chat.close()
		a.chat = nil
	}
}

func (a *App) quit() tea.Cmd {
	a.closeChat()
	return tea.Quit
}

func (a *App) View() string {
	header := a.styles.Header.Render("DeloConnect")
	if a.page == PageLogin {
		return header + "\n\n" + a.login.view() + "\n" + a.footer()
	}

	var tabs string
	for _, p := range tabPages {
		style := a.styles.Tab
		if p == a.page || (a.page == PageChat && p == PageSessions) {
			style = a.styles.ActiveTab
		}
		tabs += style.Render(p.String())
	}

	var body string
	switch a.page {
	case PageSessions:
		body = a.sessions.view()
	case PageEmployees:
		body = a.employees.view()
	case PageEscalations:
		body = a.escalations.view()
	case PageChat:
		if a.chat != nil {
			body = a.chat.view()
		}
	case PageProfile:
		body = a.profile.view()
	case PageWellbeing:
		body = a.wellbeing.view()
	}

	return header + "\n" + tabs + "\n" + a.styles.Content.Render(body) + "\n" + a.footer()
}

func (a *App) footer() string {
	help := "1-5 pages · tab next · T theme · q quit"
	if a.page == PageChat {
		help = "i compose · e escalate · c complete · x cancel · ctrl+o sidebar · esc back"
	}
	line := a.styles.Footer.Render(help)
	if t := a.toast.View(a.styles); t != "" {
		line += "  " + t
	}
	return line
}

// Run starts the dashboard program and blocks until it exits.
func Run(ctx context.Context, cfg *config.Config, client *api.Client, prefs *store.PrefsStore) error {
	p := tea.NewProgram(
		NewApp(ctx, cfg, client, prefs),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	return err
}
