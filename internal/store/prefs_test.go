package store

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T) *PrefsStore {
	t.Helper()
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestGetSetRoundTrip(t *testing.T) {
	s := openStore(t)

	assert.Equal(t, "dark", s.Get(KeyTheme, "dark"), "unset key returns default")
	require.NoError(t, s.Set(KeyTheme, "light"))
	assert.Equal(t, "light", s.Get(KeyTheme, "dark"))

	// Overwrite.
	require.NoError(t, s.Set(KeyTheme, "dark"))
	assert.Equal(t, "dark", s.Get(KeyTheme, "light"))
}

func TestBoolPrefs(t *testing.T) {
	s := openStore(t)

	assert.True(t, s.GetBool(KeySidebarOpen, true))
	require.NoError(t, s.SetBool(KeySidebarOpen, false))
	assert.False(t, s.GetBool(KeySidebarOpen, true))

	// Garbage value falls back to the default.
	require.NoError(t, s.Set(KeySidebarOpen, "maybe"))
	assert.True(t, s.GetBool(KeySidebarOpen, true))
}

func TestPrefsSurviveReopen(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, s.Set(KeyLastPage, "sessions"))
	require.NoError(t, s.Close())

	s2, err := Open(dir)
	require.NoError(t, err)
	defer s2.Close()
	assert.Equal(t, "sessions", s2.Get(KeyLastPage, ""))
}

func TestHistoryOrderAndTrim(t *testing.T) {
	s := openStore(t)

	require.NoError(t, s.AppendHistory("chat", "")) // empty lines dropped
	for i := 0; i < historyLimit+10; i++ {
		require.NoError(t, s.AppendHistory("chat", fmt.Sprintf("msg-%03d", i)))
	}
	require.NoError(t, s.AppendHistory("search", "unrelated"))

	got, err := s.History("chat", 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"msg-109", "msg-108", "msg-107"}, got, "newest first")

	all, err := s.History("chat", 0)
	require.NoError(t, err)
	assert.Len(t, all, historyLimit, "history is bounded")

	other, err := s.History("search", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"unrelated"}, other, "contexts are isolated")
}
