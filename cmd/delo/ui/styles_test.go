package ui

import "testing"

func TestDetectTheme(t *testing.T) {
	t.Setenv("COLORFGBG", "")

	t.Setenv("DELO_DARK_MODE", "1")
	if !DetectTheme().IsDark {
		t.Fatalf("expected dark theme when DELO_DARK_MODE=1")
	}

	t.Setenv("DELO_DARK_MODE", "")
	if DetectTheme().IsDark {
		t.Fatalf("expected light theme when DELO_DARK_MODE is unset")
	}
}

func TestDetectThemeFromColorFGBG(t *testing.T) {
	t.Setenv("DELO_DARK_MODE", "")

	t.Setenv("COLORFGBG", "15;0")
	if !DetectTheme().IsDark {
		t.Fatalf("expected dark theme for black background")
	}

	t.Setenv("COLORFGBG", "0;15")
	if DetectTheme().IsDark {
		t.Fatalf("expected light theme for white background")
	}
}
