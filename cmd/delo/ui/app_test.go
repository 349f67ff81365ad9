package ui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"deloconnect/internal/api"
	"deloconnect/internal/config"
)

func TestAppStartsOnLoginWithoutToken(t *testing.T) {
	client := api.NewClientWith("http://localhost", "", time.Second)
	a := NewApp(context.Background(), &config.Config{}, client, nil)

	if a.page != PageLogin {
		t.Fatalf("expected login page without a token, got %v", a.page)
	}
	if !strings.Contains(a.View(), "Sign in") {
		t.Fatal("login page should render the sign-in prompt")
	}
}

func TestAppTabSwitching(t *testing.T) {
	client := api.NewClientWith("http://localhost", "tok", time.Second)
	a := NewApp(context.Background(), &config.Config{}, client, nil)

	if a.page != PageSessions {
		t.Fatalf("expected sessions page with a token, got %v", a.page)
	}

	a.Update(keyMsg("3"))
	if a.page != PageEscalations {
		t.Fatalf("key 3 should open escalations, got %v", a.page)
	}

	a.Update(tea.KeyMsg{Type: tea.KeyTab})
	if a.page != PageProfile {
		t.Fatalf("tab should advance to profile, got %v", a.page)
	}
}

func TestAppUnauthorizedRoutesToLogin(t *testing.T) {
	client := api.NewClientWith("http://localhost", "tok", time.Second)
	a := NewApp(context.Background(), &config.Config{}, client, nil)

	if a.page != PageSessions {
		t.Fatalf("expected sessions page with a token, got %v", a.page)
	}

	a.Update(errMsg{err: &api.StatusError{StatusCode: 401, Path: "admin/sessions"}})
	if a.page != PageLogin {
		t.Fatalf("a 401 should land on the login page, got %v", a.page)
	}
	if !strings.Contains(a.View(), "Sign in") {
		t.Fatal("login page should render after an auth failure")
	}
}

func TestAppThemeToggle(t *testing.T) {
	t.Setenv("COLORFGBG", "")
	t.Setenv("DELO_DARK_MODE", "")

	client := api.NewClientWith("http://localhost", "tok", time.Second)
	a := NewApp(context.Background(), &config.Config{Theme: "light"}, client, nil)

	a.Update(keyMsg("T"))
	if !a.styles.Theme.IsDark {
		t.Fatal("T should flip the light theme to dark")
	}
	if !a.sessions.styles.Theme.IsDark {
		t.Fatal("pages should pick up the new theme")
	}
}
