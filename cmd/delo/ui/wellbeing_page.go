package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"deloconnect/internal/wellbeing"
)

// wellbeingPage renders the wellbeing dashboard from the static dataset.
type wellbeingPage struct {
	styles   Styles
	dataset  wellbeing.Dataset
	viewport viewport.Model
	rendered bool
}

func newWellbeingPage(styles Styles) *wellbeingPage {
	return &wellbeingPage{
		styles:   styles,
		dataset:  wellbeing.DefaultDataset(),
		viewport: viewport.New(80, 20),
	}
}

func (p *wellbeingPage) setSize(w, h int) {
	p.viewport.Width = w
	p.viewport.Height = h - 2
	p.render()
}

func (p *wellbeingPage) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	p.viewport, cmd = p.viewport.Update(msg)
	return cmd
}

func (p *wellbeingPage) render() {
	ds := p.dataset
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Mood score: %s / 100\n", p.styles.Bold.Render(fmt.Sprintf("%.0f", wellbeing.MoodScore(ds)))))

	b := wellbeing.BucketRisks(ds)
	sb.WriteString(fmt.Sprintf("Risk: %s high, %d medium, %d low\n\n",
		p.styles.Error.Render(strconv.Itoa(len(b.High))), len(b.Medium), len(b.Low)))

	heat := NewSimpleTable("Department Mood", []string{"Department", "Avg Vibe", "Headcount"})
	for _, d := range wellbeing.Heatmap(ds) {
		heat.AddRow(d.Department, fmt.Sprintf("%.2f", d.AvgVibe), strconv.Itoa(d.Headcount))
	}
	sb.WriteString(heat.View(p.styles))

	prio := NewSimpleTable("Priority Check-ins", []string{"ID", "Name", "Avg Vibe", "Leave", "Risk"})
	for _, pr := range wellbeing.PriorityEmployees(ds, 5) {
		prio.AddRow(pr.Record.EmployeeID, pr.Record.Name,
			fmt.Sprintf("%.2f", pr.Record.AvgVibe()),
			strconv.Itoa(pr.Record.LeaveDays), string(pr.Risk))
	}
	sb.WriteString(prio.View(p.styles))

	p.viewport.SetContent(sb.String())
	p.rendered = true
}

func (p *wellbeingPage) view() string {
	if !p.rendered {
		p.render()
	}
	return p.styles.Title.Render("Wellbeing") + "\n" + p.viewport.View()
}
