package main

import (
	"fmt"

	"deloconnect/cmd/delo/ui"
	"deloconnect/internal/listview"
	"deloconnect/internal/types"

	"github.com/spf13/cobra"
)

var meetingsCmd = &cobra.Command{
	Use:   "meetings",
	Short: "List scheduled HR meetings",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := loadClient()
		if err != nil {
			return err
		}
		meetings, err := client.ListMeetings(cmd.Context())
		if err != nil {
			return err
		}

		m := listview.New(
			func(mt types.Meeting) []string { return []string{mt.MeetID, mt.UserID, mt.Location} },
			map[string]func(types.Meeting) string{
				"scheduled": func(mt types.Meeting) string { return mt.ScheduledAt },
				"status":    func(mt types.Meeting) string { return mt.Status },
			},
		)
		m.SetItems(meetings)
		m.SortBy("scheduled")

		table := ui.NewSimpleTable(
			fmt.Sprintf("Meetings (%d)", m.Len()),
			[]string{"Meeting", "User", "Scheduled", "Status", "Where", "Minutes"})
		for _, mt := range m.All() {
			where := mt.Location
			if mt.MeetingLink != "" {
				where = mt.MeetingLink
			}
			table.AddRow(mt.MeetID, mt.UserID, mt.ScheduledAt, mt.Status, where, fmt.Sprintf("%d", mt.Duration))
		}
		fmt.Print(table.View(ui.DefaultStyles()))
		return nil
	},
}
