package ui

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"deloconnect/internal/api"
	"deloconnect/internal/chat"
	"deloconnect/internal/config"
	"deloconnect/internal/profile"
	"deloconnect/internal/types"
)

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestSessionsPageRendersBuckets(t *testing.T) {
	p := newSessionsPage(context.Background(), nil, DefaultStyles())

	p.update(bucketsMsg{buckets: &api.SessionBuckets{
		Active:  []types.Session{{SessionID: "S1", EmployeeID: "E1", Status: types.SessionActive}},
		Pending: []types.Session{{SessionID: "S2", EmployeeID: "E2", Status: types.SessionPending}},
	}})

	view := p.view()
	if !strings.Contains(view, "S1") || !strings.Contains(view, "S2") {
		t.Fatalf("view missing sessions:\n%s", view)
	}
}

func TestSessionsPagePagination(t *testing.T) {
	p := newSessionsPage(context.Background(), nil, DefaultStyles())

	sessions := make([]types.Session, 23)
	for i := range sessions {
		sessions[i] = types.Session{SessionID: fmt.Sprintf("S%02d", i), Status: types.SessionActive}
	}
	p.update(bucketsMsg{buckets: &api.SessionBuckets{Active: sessions}})

	if !strings.Contains(p.view(), "page 1 of 3") {
		t.Fatalf("expected 3 pages for 23 sessions:\n%s", p.view())
	}

	p.update(keyMsg("l"))
	if !strings.Contains(p.view(), "page 2 of 3") {
		t.Fatalf("right key should advance a page")
	}
}

func TestSessionsPageEnterOpensChat(t *testing.T) {
	p := newSessionsPage(context.Background(), nil, DefaultStyles())
	p.update(bucketsMsg{buckets: &api.SessionBuckets{
		Active: []types.Session{{SessionID: "S1", ChatID: "chat_1"}},
	}})

	cmd := p.update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter on a row should produce a command")
	}
	msg, ok := cmd().(openChatMsg)
	if !ok {
		t.Fatalf("expected openChatMsg, got %T", cmd())
	}
	if msg.session.ChatID != "chat_1" {
		t.Fatalf("wrong session: %+v", msg.session)
	}
}

func newTestChatPage() *chatPage {
	return &chatPage{
		ctx:       context.Background(),
		styles:    DefaultStyles(),
		vm:        chat.NewViewModel(nil, "chat_1"),
		viewport:  viewport.New(80, 20),
		composer:  textinput.New(),
		notes:     textinput.New(),
		feedState: chat.FeedConnected,
	}
}

func TestChatPageActionSuccessResetsModal(t *testing.T) {
	p := newTestChatPage()
	var toast Toast

	p.update(keyMsg("e"), &toast)
	if p.action != api.ActionEscalate {
		t.Fatalf("e should open the escalate modal, got %q", p.action)
	}
	p.update(keyMsg("followup"), &toast)
	if p.notes.Value() != "followup" {
		t.Fatalf("notes input not captured: %q", p.notes.Value())
	}

	_, toastCmd := p.update(sessionActionMsg{action: api.ActionEscalate}, &toast)
	if p.action != "" {
		t.Error("modal should close on success")
	}
	if p.notes.Value() != "" {
		t.Error("notes should reset on success")
	}
	if toastCmd == nil {
		t.Fatal("success should raise a toast")
	}
	if !strings.Contains(toast.View(p.styles), "escalated") {
		t.Errorf("toast should confirm the action: %q", toast.View(p.styles))
	}
}

func TestChatPageActionFailureKeepsModal(t *testing.T) {
	p := newTestChatPage()
	var toast Toast

	p.update(keyMsg("c"), &toast)
	p.update(keyMsg("done"), &toast)

	p.update(sessionActionMsg{action: api.ActionComplete, err: fmt.Errorf("boom")}, &toast)
	if p.action != api.ActionComplete {
		t.Error("modal should stay open on failure")
	}
	if p.notes.Value() != "done" {
		t.Error("notes should survive a failed submit")
	}
}

func TestChatPageStaleIndicator(t *testing.T) {
	p := newTestChatPage()

	if strings.Contains(p.view(), "may be stale") {
		t.Fatal("connected feed should not show the stale indicator")
	}

	p.feedState = chat.FeedBackoff
	if !strings.Contains(p.view(), "may be stale") {
		t.Fatal("backoff feed should show the stale indicator")
	}
}

func TestToastLifecycle(t *testing.T) {
	var toast Toast
	styles := DefaultStyles()

	if cmd := toast.Show("saved", ToastSuccess); cmd == nil {
		t.Fatal("Show should schedule an expiry")
	}
	if !strings.Contains(toast.View(styles), "saved") {
		t.Fatal("toast should be visible after Show")
	}

	// A replaced toast ignores the old expiry.
	toast.Show("again", ToastInfo)
	toast.Update(toastExpiredMsg{id: 1})
	if toast.View(styles) == "" {
		t.Fatal("stale expiry should not dismiss the replacement toast")
	}

	toast.Update(toastExpiredMsg{id: 2})
	if toast.View(styles) != "" {
		t.Fatal("matching expiry should dismiss the toast")
	}
}

func TestLoginRequiresToken(t *testing.T) {
	cfg := &config.Config{}
	client := api.NewClientWith("http://localhost", "", time.Second)
	p := newLoginPage(cfg, client, DefaultStyles())
	p.init()

	cmd := p.update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter should produce a result")
	}
	done, ok := cmd().(loginDoneMsg)
	if !ok {
		t.Fatalf("expected loginDoneMsg, got %T", cmd())
	}
	if done.err == nil {
		t.Fatal("empty token must be rejected")
	}
	if client.HasToken() {
		t.Fatal("no token should be set on a rejected submit")
	}
}

func TestProfilePageRendersLoadedView(t *testing.T) {
	p := newProfilePage(context.Background(), nil, DefaultStyles())
	p.setSize(100, 40)

	p.update(profileMsg{view: &profile.View{Employee: types.Employee{
		Name:  "Lena Fischer",
		Email: "lena@example.com",
		Role:  types.RoleHR,
		CompanyData: &types.CompanyData{
			Vibemeter: []types.VibemeterEntry{{ResponseDate: "2026-08-30", VibeScore: 4}},
		},
	}}})

	out := p.view()
	if !strings.Contains(out, "Profile") {
		t.Fatalf("missing title:\n%s", out)
	}
	if !strings.Contains(out, "Lena Fischer") {
		t.Fatal("loaded employee should render")
	}
	if !strings.Contains(out, "Vibemeter") {
		t.Fatal("non-empty sections should render")
	}
}

func TestWellbeingPageView(t *testing.T) {
	p := newWellbeingPage(DefaultStyles())
	p.setSize(100, 40)

	view := p.view()
	if !strings.Contains(view, "Mood score") {
		t.Fatalf("missing mood score:\n%s", view)
	}
	if !strings.Contains(view, "Department Mood") {
		t.Fatal("missing heatmap table")
	}
}
