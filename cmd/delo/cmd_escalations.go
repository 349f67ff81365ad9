package main

import (
	"fmt"
	"strings"

	"deloconnect/cmd/delo/ui"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

var escalationsCmd = &cobra.Command{
	Use:   "escalations",
	Short: "List chains escalated to HR",
	RunE:  listEscalations,
}

var escalationsShowCmd = &cobra.Command{
	Use:   "show [chain-id]",
	Short: "Show one escalated chain with its sessions and notes",
	Args:  cobra.ExactArgs(1),
	RunE:  showEscalation,
}

func listEscalations(cmd *cobra.Command, args []string) error {
	client, _, err := loadClient()
	if err != nil {
		return err
	}
	chains, err := client.EscalatedChains(cmd.Context())
	if err != nil {
		return err
	}

	table := ui.NewSimpleTable(
		fmt.Sprintf("Escalated chains (%d)", len(chains)),
		[]string{"Chain", "Employee", "Sessions", "Escalated", "Reason"})
	for _, c := range chains {
		table.AddRow(c.ChainID, c.EmployeeID, fmt.Sprintf("%d", len(c.SessionIDs)), c.EscalatedAt, c.EscalationReason)
	}
	fmt.Print(table.View(ui.DefaultStyles()))
	return nil
}

func showEscalation(cmd *cobra.Command, args []string) error {
	client, _, err := loadClient()
	if err != nil {
		return err
	}
	chain, err := client.ChainDetails(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	styles := ui.DefaultStyles()
	var sb strings.Builder
	sb.WriteString(styles.Title.Render("Chain "+chain.ChainID) + "\n")
	sb.WriteString(fmt.Sprintf("Employee: %s   Status: %s\n\n", chain.EmployeeID, chain.Status))

	table := ui.NewSimpleTable("Sessions", []string{"Session", "Chat", "Status", "Scheduled"})
	for _, s := range chain.Sessions {
		table.AddRow(s.SessionID, s.ChatID, string(s.Status), s.ScheduledAt)
	}
	sb.WriteString(table.View(styles))

	if chain.Notes != "" {
		// Notes are free text and often pasted markdown; render them.
		renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
		if err == nil {
			if out, err := renderer.Render(chain.Notes); err == nil {
				sb.WriteString(styles.Subtitle.Render("Notes") + "\n" + out)
			}
		}
	}

	fmt.Print(sb.String())
	return nil
}

func init() {
	escalationsCmd.AddCommand(escalationsShowCmd)
}
