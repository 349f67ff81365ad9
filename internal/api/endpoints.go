package api

import (
	"context"
	"fmt"

	"deloconnect/internal/types"

	"golang.org/x/sync/errgroup"
)

// Action is a session/chain lifecycle action.
type Action string

const (
	ActionComplete Action = "complete"
	ActionEscalate Action = "escalate"
	ActionCancel   Action = "cancel"
)

// Valid reports whether the action is one the backend accepts.
func (a Action) Valid() bool {
	switch a {
	case ActionComplete, ActionEscalate, ActionCancel:
		return true
	}
	return false
}

// ChatHistory is the payload of GET chat/history/{chatId}.
type ChatHistory struct {
	ChatID   string          `json:"chatId"`
	Messages []types.Message `json:"messages"`
}

// SessionBuckets is the combined result of the three concurrent
// status-bucket fetches.
type SessionBuckets struct {
	Active    []types.Session
	Pending   []types.Session
	Completed []types.Session
}

// ListSessions returns all sessions visible to the admin role.
func (c *Client) ListSessions(ctx context.Context) ([]types.Session, error) {
	var out []types.Session
	if err := c.get(ctx, "admin/sessions", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListSessionsByStatus returns one status bucket: active, pending or
// completed.
func (c *Client) ListSessionsByStatus(ctx context.Context, status string) ([]types.Session, error) {
	var out []types.Session
	if err := c.get(ctx, "admin/sessions/"+status, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FetchSessionBuckets fetches the three status buckets concurrently and
// combines them after all resolve.
func (c *Client) FetchSessionBuckets(ctx context.Context) (*SessionBuckets, error) {
	buckets := &SessionBuckets{}
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		buckets.Active, err = c.ListSessionsByStatus(ctx, "active")
		return
	})
	g.Go(func() (err error) {
		buckets.Pending, err = c.ListSessionsByStatus(ctx, "pending")
		return
	})
	g.Go(func() (err error) {
		buckets.Completed, err = c.ListSessionsByStatus(ctx, "completed")
		return
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return buckets, nil
}

// GetChatHistory loads the full message history for a chat.
func (c *Client) GetChatHistory(ctx context.Context, chatID string) (*ChatHistory, error) {
	var out ChatHistory
	if err := c.get(ctx, "chat/history/"+chatID, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SendChatMessage posts a message into a chat.
func (c *Client) SendChatMessage(ctx context.Context, chatID string, sender types.Sender, message string) error {
	body := map[string]string{
		"chatId":  chatID,
		"sender":  string(sender),
		"message": message,
	}
	return c.post(ctx, "chat/message", body, nil)
}

// ChainsForEmployee returns all chains belonging to an employee.
func (c *Client) ChainsForEmployee(ctx context.Context, employeeID string) ([]types.Chain, error) {
	var out []types.Chain
	if err := c.get(ctx, "admin/chains/employee/"+employeeID, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ChainDetails returns one chain with its sessions resolved.
func (c *Client) ChainDetails(ctx context.Context, chainID string) (*types.Chain, error) {
	var out types.Chain
	if err := c.get(ctx, "admin/chains/"+chainID+"/details", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SessionAction posts a lifecycle action against a session with free-text
// notes.
func (c *Client) SessionAction(ctx context.Context, sessionID string, action Action, notes string) error {
	if !action.Valid() {
		return fmt.Errorf("unknown session action %q", action)
	}
	body := map[string]string{"notes": notes}
	return c.post(ctx, fmt.Sprintf("admin/sessions/%s/%s", sessionID, action), body, nil)
}

// ChainAction posts a lifecycle action against a chain.
func (c *Client) ChainAction(ctx context.Context, chainID string, action Action, notes string) error {
	if !action.Valid() {
		return fmt.Errorf("unknown chain action %q", action)
	}
	body := map[string]string{"notes": notes}
	return c.post(ctx, fmt.Sprintf("admin/chains/%s/%s", chainID, action), body, nil)
}

// ListUsers returns all platform users.
func (c *Client) ListUsers(ctx context.Context) ([]types.Employee, error) {
	var out []types.Employee
	if err := c.get(ctx, "admin/list-users", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateUserRequest is the body for POST admin/create-user.
type CreateUserRequest struct {
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      types.Role `json:"role"`
	ManagerID string     `json:"managerId,omitempty"`
}

// CreateUser provisions a new user account.
func (c *Client) CreateUser(ctx context.Context, req CreateUserRequest) (*types.Employee, error) {
	var out types.Employee
	if err := c.post(ctx, "admin/create-user", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// BlockUser blocks a user with a reason.
func (c *Client) BlockUser(ctx context.Context, userID, reason string) error {
	body := map[string]string{"userId": userID, "reason": reason}
	return c.post(ctx, "admin/block-user", body, nil)
}

// UnblockUser lifts a block.
func (c *Client) UnblockUser(ctx context.Context, userID string) error {
	body := map[string]string{"userId": userID}
	return c.post(ctx, "admin/unblock-user", body, nil)
}

// EscalatedChains returns the denormalized escalation list.
func (c *Client) EscalatedChains(ctx context.Context) ([]types.EscalatedChain, error) {
	var out []types.EscalatedChain
	if err := c.get(ctx, "admin/escalated-chains", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListMeetings returns scheduled meetings.
func (c *Client) ListMeetings(ctx context.Context) ([]types.Meeting, error) {
	var out []types.Meeting
	if err := c.get(ctx, "admin/meetings", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Profile returns the composite profile payload for the authenticated
// employee.
func (c *Client) Profile(ctx context.Context) (*types.Employee, error) {
	var out types.Employee
	if err := c.get(ctx, "employee/profile", &out); err != nil {
		return nil, err
	}
	return &out, nil
}
