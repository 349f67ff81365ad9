package chat

import (
	"context"
	"errors"
	"testing"

	"deloconnect/internal/api"
	"deloconnect/internal/types"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBackend is an in-memory Backend with per-call failure switches.
type fakeBackend struct {
	history    *api.ChatHistory
	historyErr error
	sendErr    error
	actionErr  error
	actions    []string
	sentTexts  []string
	chainCalls []string
}

func (f *fakeBackend) GetChatHistory(ctx context.Context, chatID string) (*api.ChatHistory, error) {
	if f.historyErr != nil {
		return nil, f.historyErr
	}
	return f.history, nil
}

func (f *fakeBackend) SendChatMessage(ctx context.Context, chatID string, sender types.Sender, message string) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sentTexts = append(f.sentTexts, message)
	return nil
}

func (f *fakeBackend) SessionAction(ctx context.Context, sessionID string, action api.Action, notes string) error {
	if f.actionErr != nil {
		return f.actionErr
	}
	f.actions = append(f.actions, sessionID+":"+string(action))
	return nil
}

func (f *fakeBackend) ChainAction(ctx context.Context, chainID string, action api.Action, notes string) error {
	if f.actionErr != nil {
		return f.actionErr
	}
	f.chainCalls = append(f.chainCalls, chainID+":"+string(action))
	return nil
}

func texts(ms []types.Message) []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.Text
	}
	return out
}

func TestHistoryReplacesWholesale(t *testing.T) {
	backend := &fakeBackend{history: &api.ChatHistory{ChatID: "chat_1", Messages: []types.Message{
		{Sender: types.SenderBot, Text: "h1", Timestamp: "2025-03-01T10:00:00Z"},
		{Sender: types.SenderEmployee, Text: "h2", Timestamp: "2025-03-01T10:00:05Z"},
	}}}
	vm := NewViewModel(backend, "chat_1")

	require.NoError(t, vm.LoadHistory(context.Background()))
	if diff := cmp.Diff([]string{"h1", "h2"}, texts(vm.Messages())); diff != "" {
		t.Fatalf("history mismatch (-want +got):\n%s", diff)
	}

	// Each live event after the merge appends exactly one message at the
	// end, preserving prior order.
	vm.ApplyLive(types.Message{Sender: types.SenderHR, Text: "l1", Timestamp: "2025-03-01T10:00:01Z"})
	if diff := cmp.Diff([]string{"h1", "h2", "l1"}, texts(vm.Messages())); diff != "" {
		t.Fatalf("live append mismatch (-want +got):\n%s", diff)
	}
}

func TestPreHistoryBufferIsMergedNotDropped(t *testing.T) {
	backend := &fakeBackend{history: &api.ChatHistory{ChatID: "chat_1", Messages: []types.Message{
		{Sender: types.SenderBot, Text: "h1", Timestamp: "2025-03-01T10:00:00Z"},
		{Sender: types.SenderBot, Text: "h2", Timestamp: "2025-03-01T10:00:10Z"},
	}}}
	vm := NewViewModel(backend, "chat_1")

	// Socket delivers before the history call resolves.
	vm.ApplyLive(types.Message{Sender: types.SenderHR, Text: "mid", Timestamp: "2025-03-01T10:00:05Z"})
	vm.ApplyLive(types.Message{Sender: types.SenderHR, Text: "late", Timestamp: "2025-03-01T10:00:20Z"})

	require.NoError(t, vm.LoadHistory(context.Background()))
	if diff := cmp.Diff([]string{"h1", "mid", "h2", "late"}, texts(vm.Messages())); diff != "" {
		t.Fatalf("merge mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeDeduplicatesByIdentity(t *testing.T) {
	dup := types.Message{Sender: types.SenderBot, Text: "same", Timestamp: "2025-03-01T10:00:00Z"}
	backend := &fakeBackend{history: &api.ChatHistory{ChatID: "chat_1", Messages: []types.Message{dup}}}
	vm := NewViewModel(backend, "chat_1")

	vm.ApplyLive(dup)
	require.NoError(t, vm.LoadHistory(context.Background()))
	assert.Len(t, vm.Messages(), 1)

	// Replayed live duplicate after the merge is also suppressed.
	vm.ApplyLive(dup)
	assert.Len(t, vm.Messages(), 1)
}

func TestHistoryFailureLeavesListEmptyAndBufferIntact(t *testing.T) {
	backend := &fakeBackend{historyErr: errors.New("boom")}
	vm := NewViewModel(backend, "chat_1")
	vm.ApplyLive(types.Message{Sender: types.SenderHR, Text: "buffered", Timestamp: "2025-03-01T10:00:00Z"})

	require.Error(t, vm.LoadHistory(context.Background()))
	assert.Empty(t, vm.Messages())
	assert.False(t, vm.Loaded())

	// Retry succeeds and the buffered event still lands.
	backend.historyErr = nil
	backend.history = &api.ChatHistory{ChatID: "chat_1", Messages: nil}
	require.NoError(t, vm.LoadHistory(context.Background()))
	assert.Equal(t, []string{"buffered"}, texts(vm.Messages()))
}

func TestSendOptimisticWithRollback(t *testing.T) {
	backend := &fakeBackend{history: &api.ChatHistory{ChatID: "chat_1"}}
	vm := NewViewModel(backend, "chat_1")
	require.NoError(t, vm.LoadHistory(context.Background()))

	require.NoError(t, vm.Send(context.Background(), types.SenderHR, "hello", "2025-03-01T10:00:00Z"))
	assert.Equal(t, []string{"hello"}, texts(vm.Messages()))
	assert.Equal(t, []string{"hello"}, backend.sentTexts)

	backend.sendErr = errors.New("network down")
	require.Error(t, vm.Send(context.Background(), types.SenderHR, "lost", "2025-03-01T10:00:01Z"))
	assert.Equal(t, []string{"hello"}, texts(vm.Messages()), "failed send must roll back")
}

func TestLifecycleActionsOptimisticWithRollback(t *testing.T) {
	backend := &fakeBackend{}
	vm := NewViewModel(backend, "chat_1")
	vm.AttachSession(types.Session{SessionID: "S1", ChatID: "chat_1", Status: types.SessionActive})

	require.NoError(t, vm.Complete(context.Background(), "all good"))
	s, ok := vm.Session()
	require.True(t, ok)
	assert.Equal(t, types.SessionCompleted, s.Status)
	assert.Equal(t, []string{"S1:complete"}, backend.actions)

	// Failed cancel restores the previous status.
	vm.AttachSession(types.Session{SessionID: "S2", ChatID: "chat_1", Status: types.SessionActive})
	backend.actionErr = errors.New("rejected")
	require.Error(t, vm.Cancel(context.Background(), "nope"))
	s, _ = vm.Session()
	assert.Equal(t, types.SessionActive, s.Status, "failed action must roll back status")
}

func TestEscalateKeepsStatus(t *testing.T) {
	backend := &fakeBackend{}
	vm := NewViewModel(backend, "chat_1")
	vm.AttachSession(types.Session{SessionID: "S1", Status: types.SessionActive})

	require.NoError(t, vm.Escalate(context.Background(), "needs a human"))
	s, _ := vm.Session()
	assert.Equal(t, types.SessionActive, s.Status, "escalation is orthogonal to status")
	assert.Equal(t, []string{"S1:escalate"}, backend.actions)
}

func TestActionWithoutSession(t *testing.T) {
	vm := NewViewModel(&fakeBackend{}, "chat_1")
	require.Error(t, vm.Complete(context.Background(), ""))
}

func TestEscalateChain(t *testing.T) {
	backend := &fakeBackend{}
	vm := NewViewModel(backend, "chat_1")
	require.NoError(t, vm.EscalateChain(context.Background(), "CH1", "pattern of low vibe scores"))
	assert.Equal(t, []string{"CH1:escalate"}, backend.chainCalls)
}
