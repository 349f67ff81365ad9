package chat

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"deloconnect/internal/api"
	"deloconnect/internal/logging"
	"deloconnect/internal/types"

	"github.com/google/uuid"
)

// Backend is the slice of the REST client the view-model needs.
type Backend interface {
	GetChatHistory(ctx context.Context, chatID string) (*api.ChatHistory, error)
	SendChatMessage(ctx context.Context, chatID string, sender types.Sender, message string) error
	SessionAction(ctx context.Context, sessionID string, action api.Action, notes string) error
	ChainAction(ctx context.Context, chainID string, action api.Action, notes string) error
}

// ViewModel is the one shared chat/session view-model behind every chat
// route. It owns the message list for a chat and applies one consistent
// policy everywhere:
//
//   - Live events that arrive before history resolves are buffered, then
//     merged into the fetched history by timestamp (arrival order breaks
//     ties) and deduplicated by message identity. Nothing received on the
//     feed is silently dropped by the history replacing the list.
//   - After the merge the list is arrival-ordered: each live event appends
//     exactly one message at the end.
//   - Mutations (send, lifecycle actions) update local state optimistically
//     and roll back when the POST fails.
type ViewModel struct {
	mu sync.Mutex

	backend Backend
	chatID  string

	session *types.Session // metadata, nil until attached

	messages []types.Message
	seen     map[string]struct{}
	buffered []types.Message
	loaded   bool
	nextSeq  uint64
}

// NewViewModel creates a view-model for a resolved chat id.
func NewViewModel(backend Backend, chatID string) *ViewModel {
	return &ViewModel{
		backend: backend,
		chatID:  chatID,
		seen:    make(map[string]struct{}),
	}
}

// ChatID returns the resolved chat id.
func (vm *ViewModel) ChatID() string { return vm.chatID }

// AttachSession associates session metadata for lifecycle actions.
func (vm *ViewModel) AttachSession(s types.Session) {
	vm.mu.Lock()
	vm.session = &s
	vm.mu.Unlock()
}

// Session returns a copy of the attached session metadata.
func (vm *ViewModel) Session() (types.Session, bool) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	if vm.session == nil {
		return types.Session{}, false
	}
	return *vm.session, true
}

// LoadHistory fetches the full message history and merges it with any live
// events buffered while the fetch was in flight. On failure the message
// list is left empty and untouched; buffered events keep accumulating so a
// retry still merges them.
func (vm *ViewModel) LoadHistory(ctx context.Context) error {
	history, err := vm.backend.GetChatHistory(ctx, vm.chatID)
	if err != nil {
		return fmt.Errorf("history load for %s: %w", vm.chatID, err)
	}

	vm.mu.Lock()
	defer vm.mu.Unlock()

	vm.messages = vm.messages[:0]
	vm.seen = make(map[string]struct{})

	merged := make([]types.Message, 0, len(history.Messages)+len(vm.buffered))
	for _, m := range history.Messages {
		m.Seq = vm.nextSeqLocked()
		merged = append(merged, m)
	}
	merged = append(merged, vm.buffered...)
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Before(merged[j])
	})

	for _, m := range merged {
		vm.appendLocked(m)
	}
	dropped := len(merged) - len(vm.messages)
	if dropped > 0 {
		logging.Get(logging.CategoryChat).Debug("merge deduplicated %d message(s) for %s", dropped, vm.chatID)
	}

	vm.buffered = nil
	vm.loaded = true
	return nil
}

// ApplyLive ingests one live-feed message. Before history resolves the
// message is buffered for the merge; afterwards it appends to the end of the
// list unless its identity was already seen.
func (vm *ViewModel) ApplyLive(m types.Message) {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	m.Seq = vm.nextSeqLocked()
	if !vm.loaded {
		vm.buffered = append(vm.buffered, m)
		return
	}
	vm.appendLocked(m)
}

// Messages returns a copy of the current list in display order.
func (vm *ViewModel) Messages() []types.Message {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	out := make([]types.Message, len(vm.messages))
	copy(out, vm.messages)
	return out
}

// Loaded reports whether the history merge has happened.
func (vm *ViewModel) Loaded() bool {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.loaded
}

// Send posts a message. The message appears locally at once with a
// client-assigned id so a failed POST can roll back exactly this entry.
func (vm *ViewModel) Send(ctx context.Context, sender types.Sender, text, timestamp string) error {
	m := types.Message{
		ID:        uuid.NewString(),
		Sender:    sender,
		Text:      text,
		Timestamp: timestamp,
	}

	vm.mu.Lock()
	m.Seq = vm.nextSeqLocked()
	vm.appendLocked(m)
	vm.mu.Unlock()

	if err := vm.backend.SendChatMessage(ctx, vm.chatID, sender, text); err != nil {
		vm.removeByID(m.ID)
		return fmt.Errorf("send failed: %w", err)
	}
	return nil
}

// Escalate marks the attached session as requiring HR attention.
func (vm *ViewModel) Escalate(ctx context.Context, notes string) error {
	return vm.sessionAction(ctx, api.ActionEscalate, notes, types.SessionActive)
}

// Complete completes the attached session.
func (vm *ViewModel) Complete(ctx context.Context, notes string) error {
	return vm.sessionAction(ctx, api.ActionComplete, notes, types.SessionCompleted)
}

// Cancel cancels the attached session.
func (vm *ViewModel) Cancel(ctx context.Context, notes string) error {
	return vm.sessionAction(ctx, api.ActionCancel, notes, types.SessionCancelled)
}

// sessionAction applies the optimistic-with-rollback policy shared by all
// lifecycle actions. Escalation keeps the status (it is an orthogonal flag
// on the backend); complete/cancel move the status optimistically and
// restore it when the POST fails. The authoritative status still comes from
// the next fetch.
func (vm *ViewModel) sessionAction(ctx context.Context, action api.Action, notes string, optimistic types.SessionStatus) error {
	vm.mu.Lock()
	if vm.session == nil {
		vm.mu.Unlock()
		return fmt.Errorf("no session attached to chat %s", vm.chatID)
	}
	sessionID := vm.session.SessionID
	previous := vm.session.Status
	if action != api.ActionEscalate {
		vm.session.Status = optimistic
		vm.session.Notes = notes
	}
	vm.mu.Unlock()

	if err := vm.backend.SessionAction(ctx, sessionID, action, notes); err != nil {
		vm.mu.Lock()
		if vm.session != nil {
			vm.session.Status = previous
		}
		vm.mu.Unlock()
		return fmt.Errorf("%s failed: %w", action, err)
	}
	return nil
}

// EscalateChain escalates a whole chain; used by the escalations screen
// where no single session is attached.
func (vm *ViewModel) EscalateChain(ctx context.Context, chainID, notes string) error {
	if err := vm.backend.ChainAction(ctx, chainID, api.ActionEscalate, notes); err != nil {
		return fmt.Errorf("escalate failed: %w", err)
	}
	return nil
}

// appendLocked appends m unless its identity key was already seen.
// Callers hold vm.mu.
func (vm *ViewModel) appendLocked(m types.Message) {
	key := m.Key()
	if _, dup := vm.seen[key]; dup {
		return
	}
	vm.seen[key] = struct{}{}
	vm.messages = append(vm.messages, m)
}

func (vm *ViewModel) nextSeqLocked() uint64 {
	vm.nextSeq++
	return vm.nextSeq
}

func (vm *ViewModel) removeByID(id string) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	for i, m := range vm.messages {
		if m.ID == id {
			delete(vm.seen, m.Key())
			vm.messages = append(vm.messages[:i], vm.messages[i+1:]...)
			return
		}
	}
}
