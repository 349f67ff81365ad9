// Package types defines the DeloConnect domain entities as consumed from the
// backend API. All entities are owned by the backend; the console holds
// transient copies scoped to the view that fetched them.
package types

import (
	"fmt"
	"time"
)

// Role is an account role on the platform.
type Role string

const (
	RoleEmployee Role = "employee"
	RoleHR       Role = "hr"
	RoleAdmin    Role = "admin"
)

// SessionStatus is the lifecycle status of a single session.
// Transitions (backend-enforced, consumed as-is here):
// pending -> active -> {completed | cancelled}.
type SessionStatus string

const (
	SessionPending   SessionStatus = "pending"
	SessionActive    SessionStatus = "active"
	SessionCompleted SessionStatus = "completed"
	SessionCancelled SessionStatus = "cancelled"
)

// ChainStatus is the lifecycle status of a chain of sessions.
type ChainStatus string

const (
	ChainActive    ChainStatus = "active"
	ChainCompleted ChainStatus = "completed"
	ChainEscalated ChainStatus = "escalated"
	ChainCancelled ChainStatus = "cancelled"
)

// Sender identifies the author of a chat message.
type Sender string

const (
	SenderBot      Sender = "bot"
	SenderEmployee Sender = "emp"
	SenderHR       Sender = "hr"
	SenderSystem   Sender = "system"
)

// Employee is a platform user as returned by admin/list-users and
// employee/profile.
type Employee struct {
	UserID        string       `json:"userId"`
	Name          string       `json:"name"`
	Email         string       `json:"email"`
	Role          Role         `json:"role"`
	ManagerID     string       `json:"managerId,omitempty"`
	IsBlocked     bool         `json:"isBlocked"`
	BlockedAt     string       `json:"blockedAt,omitempty"`
	BlockedBy     string       `json:"blockedBy,omitempty"`
	BlockedReason string       `json:"blockedReason,omitempty"`
	LastPing      string       `json:"lastPing,omitempty"`
	CompanyData   *CompanyData `json:"companyData,omitempty"`
}

// CompanyData is the composite per-employee payload fanned out to the
// profile sections. Sections with no entries are omitted from display.
type CompanyData struct {
	Activity    []ActivityEntry    `json:"activity,omitempty"`
	Leave       []LeaveEntry       `json:"leave,omitempty"`
	Onboarding  []OnboardingEntry  `json:"onboarding,omitempty"`
	Performance []PerformanceEntry `json:"performance,omitempty"`
	Rewards     []RewardEntry      `json:"rewards,omitempty"`
	Vibemeter   []VibemeterEntry   `json:"vibemeter,omitempty"`
}

// ActivityEntry is one row of workplace activity telemetry.
type ActivityEntry struct {
	Date          string  `json:"date"`
	TeamsMessages int     `json:"teams_messages"`
	Emails        int     `json:"emails"`
	Meetings      int     `json:"meetings"`
	WorkHours     float64 `json:"work_hours"`
}

// LeaveEntry is one leave record.
type LeaveEntry struct {
	LeaveType string `json:"leave_type"`
	LeaveDays int    `json:"leave_days"`
	StartDate string `json:"leave_start_date"`
	EndDate   string `json:"leave_end_date"`
}

// OnboardingEntry is one onboarding feedback record.
type OnboardingEntry struct {
	JoiningDate    string `json:"joining_date"`
	Feedback       string `json:"onboarding_feedback"`
	MentorAssigned bool   `json:"mentor_assigned"`
	TrainingDone   bool   `json:"initial_training_completed"`
}

// PerformanceEntry is one review-cycle record.
type PerformanceEntry struct {
	ReviewPeriod    string `json:"review_period"`
	Rating          int    `json:"performance_rating"`
	ManagerFeedback string `json:"manager_feedback"`
	PromotionWanted bool   `json:"promotion_consideration"`
}

// RewardEntry is one recognition record.
type RewardEntry struct {
	AwardType    string `json:"award_type"`
	AwardDate    string `json:"award_date"`
	RewardPoints int    `json:"reward_points"`
}

// VibemeterEntry is one self-reported wellbeing score.
type VibemeterEntry struct {
	ResponseDate string `json:"response_date"`
	VibeScore    int    `json:"vibe_score"`
	Comment      string `json:"comment,omitempty"`
}

// Session is a single scheduled interaction tied to exactly one chat.
type Session struct {
	SessionID   string        `json:"session_id"`
	EmployeeID  string        `json:"employee_id"`
	ChatID      string        `json:"chat_id"`
	Status      SessionStatus `json:"status"`
	ScheduledAt string        `json:"scheduled_at"`
	CompletedAt string        `json:"completed_at,omitempty"`
	CancelledAt string        `json:"cancelled_at,omitempty"`
	CancelledBy string        `json:"cancelled_by,omitempty"`
	Notes       string        `json:"notes,omitempty"`
}

// Chain groups one or more sessions for an employee. The first session in
// SessionIDs order is treated as the chain's representative session for
// display and chat resolution.
type Chain struct {
	ChainID    string      `json:"chain_id"`
	EmployeeID string      `json:"employee_id"`
	SessionIDs []string    `json:"session_ids"`
	Sessions   []Session   `json:"sessions,omitempty"`
	Status     ChainStatus `json:"status"`
	CreatedAt  string      `json:"created_at,omitempty"`
	UpdatedAt  string      `json:"updated_at,omitempty"`
	Notes      string      `json:"notes,omitempty"`
}

// PrimarySession returns the chain's representative session, or false when
// the chain has no resolved sessions.
func (c Chain) PrimarySession() (Session, bool) {
	if len(c.Sessions) == 0 {
		return Session{}, false
	}
	return c.Sessions[0], true
}

// EscalatedChain is the read-only denormalized row backing the escalation
// list screen.
type EscalatedChain struct {
	ChainID          string   `json:"chain_id"`
	EmployeeID       string   `json:"employee_id"`
	SessionIDs       []string `json:"session_ids"`
	EscalationReason string   `json:"escalation_reason"`
	EscalatedAt      string   `json:"escalated_at"`
}

// Meeting is a scheduled HR meeting.
type Meeting struct {
	MeetID      string `json:"meet_id"`
	UserID      string `json:"user_id"`
	EmployeeID  string `json:"employee_id,omitempty"`
	ScheduledAt string `json:"scheduled_at"`
	Status      string `json:"status"`
	MeetingLink string `json:"meeting_link,omitempty"`
	Location    string `json:"location,omitempty"`
	Duration    int    `json:"duration"`
}

// Message is one entry in a chat thread. Timestamp is the backend's ISO-8601
// string; Seq is assigned locally on insertion and records arrival order.
// ID is set for locally originated messages only.
type Message struct {
	ID        string `json:"id,omitempty"`
	Sender    Sender `json:"sender"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
	Seq       uint64 `json:"-"`
}

// Key returns the identity used for deduplicating a message across the
// history fetch and the live feed. Locally sent messages carry a uuid and
// dedup on that alone.
func (m Message) Key() string {
	if m.ID != "" {
		return m.ID
	}
	return fmt.Sprintf("%s|%s|%s", m.Sender, m.Timestamp, m.Text)
}

// Time parses the message timestamp. Zero time when absent or malformed so
// that ordering falls back to arrival order.
func (m Message) Time() time.Time {
	if m.Timestamp == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, m.Timestamp); err == nil {
			return t
		}
	}
	return time.Time{}
}

// Before reports whether m orders before other under the console's one
// ordering contract: timestamp first, arrival order as the tie-break.
// Messages with unparseable timestamps compare as zero time and therefore
// sort by arrival alone.
func (m Message) Before(other Message) bool {
	mt, ot := m.Time(), other.Time()
	if mt.Equal(ot) {
		return m.Seq < other.Seq
	}
	return mt.Before(ot)
}
