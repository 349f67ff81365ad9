package main

import (
	"fmt"
	"strconv"

	"deloconnect/cmd/delo/ui"
	"deloconnect/internal/wellbeing"

	"github.com/spf13/cobra"
)

var wellbeingTop int

var wellbeingCmd = &cobra.Command{
	Use:   "wellbeing",
	Short: "Company wellbeing dashboard",
	Long: `Renders the wellbeing dashboard: overall mood score, risk buckets,
a per-department mood heatmap and the employees most in need of a
check-in.`,
	RunE: runWellbeing,
}

func runWellbeing(cmd *cobra.Command, args []string) error {
	ds := wellbeing.DefaultDataset()
	styles := ui.DefaultStyles()

	fmt.Println(styles.Title.Render("Wellbeing"))
	fmt.Printf("Mood score: %.0f / 100\n", wellbeing.MoodScore(ds))

	b := wellbeing.BucketRisks(ds)
	fmt.Printf("Risk: %s high, %d medium, %d low\n\n",
		styles.Error.Render(strconv.Itoa(len(b.High))), len(b.Medium), len(b.Low))

	heat := ui.NewSimpleTable("Department Mood", []string{"Department", "Avg Vibe", "Headcount"})
	for _, d := range wellbeing.Heatmap(ds) {
		heat.AddRow(d.Department, fmt.Sprintf("%.2f", d.AvgVibe), strconv.Itoa(d.Headcount))
	}
	fmt.Println(heat.View(styles))

	prio := ui.NewSimpleTable("Priority Check-ins", []string{"ID", "Name", "Department", "Avg Vibe", "Leave Days", "Risk"})
	for _, p := range wellbeing.PriorityEmployees(ds, wellbeingTop) {
		prio.AddRow(
			p.Record.EmployeeID,
			p.Record.Name,
			p.Record.Department,
			fmt.Sprintf("%.2f", p.Record.AvgVibe()),
			strconv.Itoa(p.Record.LeaveDays),
			string(p.Risk),
		)
	}
	fmt.Println(prio.View(styles))
	return nil
}

func init() {
	wellbeingCmd.Flags().IntVar(&wellbeingTop, "top", 5, "how many priority employees to list")
}
