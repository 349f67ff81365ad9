// Package wellbeing renders the wellbeing dashboard's derived views. All
// numbers come from a static in-memory dataset; no backend call is made for
// this screen.
package wellbeing

// Record is one employee's wellbeing snapshot in the fixture dataset.
type Record struct {
	EmployeeID   string
	Name         string
	Department   string
	VibeScores   []int // most recent last, 1 (low) .. 5 (high)
	LeaveDays    int
	AvgWorkHours float64
}

// Dataset is the dashboard's input.
type Dataset struct {
	Employees []Record
}

// DefaultDataset returns the fixture backing the dashboard.
func DefaultDataset() Dataset {
	return Dataset{Employees: []Record{
		{EmployeeID: "EMP001", Name: "Priya Nair", Department: "Engineering", VibeScores: []int{4, 4, 5, 4}, LeaveDays: 4, AvgWorkHours: 7.8},
		{EmployeeID: "EMP002", Name: "Marcus Webb", Department: "Engineering", VibeScores: []int{3, 2, 2, 1}, LeaveDays: 14, AvgWorkHours: 10.2},
		{EmployeeID: "EMP003", Name: "Sofia Reyes", Department: "Engineering", VibeScores: []int{5, 4, 4, 5}, LeaveDays: 6, AvgWorkHours: 8.1},
		{EmployeeID: "EMP004", Name: "Daniel Okafor", Department: "Sales", VibeScores: []int{3, 3, 4, 3}, LeaveDays: 8, AvgWorkHours: 8.6},
		{EmployeeID: "EMP005", Name: "Hana Kim", Department: "Sales", VibeScores: []int{2, 2, 3, 2}, LeaveDays: 11, AvgWorkHours: 9.4},
		{EmployeeID: "EMP006", Name: "Tom Briggs", Department: "Sales", VibeScores: []int{4, 5, 4, 4}, LeaveDays: 3, AvgWorkHours: 7.9},
		{EmployeeID: "EMP007", Name: "Lena Fischer", Department: "HR", VibeScores: []int{4, 4, 3, 4}, LeaveDays: 5, AvgWorkHours: 7.5},
		{EmployeeID: "EMP008", Name: "Ravi Patel", Department: "HR", VibeScores: []int{3, 4, 4, 4}, LeaveDays: 7, AvgWorkHours: 8.0},
		{EmployeeID: "EMP009", Name: "Chloe Martin", Department: "Finance", VibeScores: []int{2, 1, 2, 2}, LeaveDays: 16, AvgWorkHours: 10.8},
		{EmployeeID: "EMP010", Name: "Victor Huang", Department: "Finance", VibeScores: []int{4, 3, 4, 3}, LeaveDays: 6, AvgWorkHours: 8.4},
		{EmployeeID: "EMP011", Name: "Amara Diallo", Department: "Finance", VibeScores: []int{5, 5, 4, 5}, LeaveDays: 2, AvgWorkHours: 7.6},
		{EmployeeID: "EMP012", Name: "Jonas Lindqvist", Department: "Operations", VibeScores: []int{3, 3, 2, 3}, LeaveDays: 9, AvgWorkHours: 9.1},
	}}
}

// AvgVibe returns the mean vibe score, or 0 for an empty history.
func (r Record) AvgVibe() float64 {
	if len(r.VibeScores) == 0 {
		return 0
	}
	sum := 0
	for _, s := range r.VibeScores {
		sum += s
	}
	return float64(sum) / float64(len(r.VibeScores))
}
