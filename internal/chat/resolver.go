// Package chat implements the chat/session view-model: resolving an entry
// identifier to a chat, loading history, keeping the thread live over a
// WebSocket feed, and driving session lifecycle actions.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"deloconnect/internal/logging"
	"deloconnect/internal/types"
)

// ChatIDPrefix marks a raw chat identifier. Anything carrying it is used
// directly without any lookup calls.
const ChatIDPrefix = "chat_"

// ErrUnresolved means the identifier matched nothing in any lookup path.
// No retry is attempted; the view moves to its error state.
var ErrUnresolved = errors.New("could not resolve chat")

// Lookup is the slice of the REST client the resolver needs.
type Lookup interface {
	ListSessions(ctx context.Context) ([]types.Session, error)
	ListSessionsByStatus(ctx context.Context, status string) ([]types.Session, error)
	ChainsForEmployee(ctx context.Context, employeeID string) ([]types.Chain, error)
}

// Resolver maps entry-route identifiers onto concrete chat ids.
type Resolver struct {
	lookup Lookup
}

// NewResolver creates a resolver over the given lookup backend.
func NewResolver(lookup Lookup) *Resolver {
	return &Resolver{lookup: lookup}
}

// ResolveChatID resolves an identifier that is either a raw chat id or a
// session id.
//
// Precedence:
//  1. An id with the chat prefix is used directly; no lookup is issued.
//  2. Otherwise the id is treated as a session id and searched among
//     active/pending sessions first, then among completed ones. The two
//     lookups are sequential: the completed list is only fetched when the
//     first misses.
func (r *Resolver) ResolveChatID(ctx context.Context, id string) (string, error) {
	if id == "" {
		return "", fmt.Errorf("%w: empty identifier", ErrUnresolved)
	}
	if strings.HasPrefix(id, ChatIDPrefix) {
		return id, nil
	}

	log := logging.Get(logging.CategoryChat)

	sessions, err := r.lookup.ListSessions(ctx)
	if err != nil {
		return "", fmt.Errorf("session lookup failed: %w", err)
	}
	if chatID, ok := findChat(sessions, id); ok {
		return chatID, nil
	}

	log.Debug("session %s not in active/pending, trying completed", id)
	completed, err := r.lookup.ListSessionsByStatus(ctx, "completed")
	if err != nil {
		return "", fmt.Errorf("completed-session lookup failed: %w", err)
	}
	if chatID, ok := findChat(completed, id); ok {
		return chatID, nil
	}

	return "", fmt.Errorf("%w: session %s not found", ErrUnresolved, id)
}

// ResolveChain resolves an employee id plus chain id to the chat of the
// chain's representative (first) session.
func (r *Resolver) ResolveChain(ctx context.Context, employeeID, chainID string) (string, error) {
	chains, err := r.lookup.ChainsForEmployee(ctx, employeeID)
	if err != nil {
		return "", fmt.Errorf("chain lookup failed: %w", err)
	}
	for _, chain := range chains {
		if chain.ChainID != chainID {
			continue
		}
		if s, ok := chain.PrimarySession(); ok && s.ChatID != "" {
			return s.ChatID, nil
		}
		return "", fmt.Errorf("%w: chain %s has no session with a chat", ErrUnresolved, chainID)
	}
	return "", fmt.Errorf("%w: chain %s not found for employee %s", ErrUnresolved, chainID, employeeID)
}

func findChat(sessions []types.Session, sessionID string) (string, bool) {
	for _, s := range sessions {
		if s.SessionID == sessionID && s.ChatID != "" {
			return s.ChatID, true
		}
	}
	return "", false
}
