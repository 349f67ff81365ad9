package main

import (
	"fmt"

	"deloconnect/cmd/delo/ui"
	"deloconnect/internal/api"
	"deloconnect/internal/listview"
	"deloconnect/internal/types"

	"github.com/spf13/cobra"
)

var (
	sessionStatus string
	sessionNotes  string
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List sessions and drive their lifecycle",
	RunE:  listSessions,
}

var sessionEscalateCmd = &cobra.Command{
	Use:   "escalate [session-id]",
	Short: "Escalate a session to HR",
	Args:  cobra.ExactArgs(1),
	RunE:  func(cmd *cobra.Command, args []string) error { return sessionAction(cmd, args[0], api.ActionEscalate) },
}

var sessionCompleteCmd = &cobra.Command{
	Use:   "complete [session-id]",
	Short: "Mark a session completed",
	Args:  cobra.ExactArgs(1),
	RunE:  func(cmd *cobra.Command, args []string) error { return sessionAction(cmd, args[0], api.ActionComplete) },
}

var sessionCancelCmd = &cobra.Command{
	Use:   "cancel [session-id]",
	Short: "Cancel a session",
	Args:  cobra.ExactArgs(1),
	RunE:  func(cmd *cobra.Command, args []string) error { return sessionAction(cmd, args[0], api.ActionCancel) },
}

func sessionListModel() *listview.Model[types.Session] {
	return listview.New(
		func(s types.Session) []string { return []string{s.SessionID, s.EmployeeID, s.ChatID} },
		map[string]func(types.Session) string{
			"scheduled": func(s types.Session) string { return s.ScheduledAt },
			"status":    func(s types.Session) string { return string(s.Status) },
			"employee":  func(s types.Session) string { return s.EmployeeID },
		},
	)
}

func listSessions(cmd *cobra.Command, args []string) error {
	client, _, err := loadClient()
	if err != nil {
		return err
	}

	var sessions []types.Session
	if sessionStatus == "" {
		// All three buckets fetched concurrently, combined after all
		// resolve.
		buckets, err := client.FetchSessionBuckets(cmd.Context())
		if err != nil {
			return err
		}
		sessions = append(sessions, buckets.Active...)
		sessions = append(sessions, buckets.Pending...)
		sessions = append(sessions, buckets.Completed...)
	} else {
		sessions, err = client.ListSessionsByStatus(cmd.Context(), sessionStatus)
		if err != nil {
			return err
		}
	}

	m := sessionListModel()
	m.SetItems(sessions)
	m.SortBy("scheduled")

	table := ui.NewSimpleTable(
		fmt.Sprintf("Sessions (%d)", m.Len()),
		[]string{"Session", "Employee", "Chat", "Status", "Scheduled"})
	for _, s := range m.All() {
		table.AddRow(s.SessionID, s.EmployeeID, s.ChatID, string(s.Status), s.ScheduledAt)
	}
	fmt.Print(table.View(ui.DefaultStyles()))
	return nil
}

func sessionAction(cmd *cobra.Command, sessionID string, action api.Action) error {
	client, _, err := loadClient()
	if err != nil {
		return err
	}
	if err := client.SessionAction(cmd.Context(), sessionID, action, sessionNotes); err != nil {
		return fmt.Errorf("%s %s: %w", action, sessionID, err)
	}
	fmt.Printf("Session %s: %s ok\n", sessionID, action)
	return nil
}

func init() {
	sessionsCmd.Flags().StringVar(&sessionStatus, "status", "", "one bucket only (active|pending|completed)")
	sessionsCmd.PersistentFlags().StringVar(&sessionNotes, "notes", "", "free-text notes for lifecycle actions")

	sessionsCmd.AddCommand(sessionEscalateCmd)
	sessionsCmd.AddCommand(sessionCompleteCmd)
	sessionsCmd.AddCommand(sessionCancelCmd)
}
