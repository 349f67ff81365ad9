package wellbeing

import "sort"

// RiskLevel buckets an employee by average vibe score.
type RiskLevel string

const (
	RiskHigh   RiskLevel = "high"   // avg <= 2.0
	RiskMedium RiskLevel = "medium" // avg <= 3.5
	RiskLow    RiskLevel = "low"
)

// RiskFor buckets one record.
func RiskFor(r Record) RiskLevel {
	avg := r.AvgVibe()
	switch {
	case avg <= 2.0:
		return RiskHigh
	case avg <= 3.5:
		return RiskMedium
	default:
		return RiskLow
	}
}

// MoodScore is the company-wide aggregate: the mean of every employee's
// average vibe, scaled to 0-100.
func MoodScore(ds Dataset) float64 {
	if len(ds.Employees) == 0 {
		return 0
	}
	sum := 0.0
	for _, r := range ds.Employees {
		sum += r.AvgVibe()
	}
	return sum / float64(len(ds.Employees)) / 5.0 * 100.0
}

// RiskBuckets counts employees per risk level and lists their ids.
type RiskBuckets struct {
	High   []string
	Medium []string
	Low    []string
}

// BucketRisks partitions the dataset.
func BucketRisks(ds Dataset) RiskBuckets {
	var b RiskBuckets
	for _, r := range ds.Employees {
		switch RiskFor(r) {
		case RiskHigh:
			b.High = append(b.High, r.EmployeeID)
		case RiskMedium:
			b.Medium = append(b.Medium, r.EmployeeID)
		default:
			b.Low = append(b.Low, r.EmployeeID)
		}
	}
	return b
}

// DepartmentMood is one heatmap cell.
type DepartmentMood struct {
	Department string
	AvgVibe    float64
	Headcount  int
}

// Heatmap aggregates average vibe per department, worst first.
func Heatmap(ds Dataset) []DepartmentMood {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, r := range ds.Employees {
		sums[r.Department] += r.AvgVibe()
		counts[r.Department]++
	}
	out := make([]DepartmentMood, 0, len(sums))
	for dept, sum := range sums {
		out = append(out, DepartmentMood{
			Department: dept,
			AvgVibe:    sum / float64(counts[dept]),
			Headcount:  counts[dept],
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AvgVibe == out[j].AvgVibe {
			return out[i].Department < out[j].Department
		}
		return out[i].AvgVibe < out[j].AvgVibe
	})
	return out
}

// Priority is one row of the priority-employee ranking.
type Priority struct {
	Record Record
	Risk   RiskLevel
}

// PriorityEmployees ranks employees most-in-need first: lowest average vibe,
// then most leave days as the tie-break. n caps the result; n <= 0 returns
// everyone.
func PriorityEmployees(ds Dataset, n int) []Priority {
	ranked := make([]Record, len(ds.Employees))
	copy(ranked, ds.Employees)
	sort.SliceStable(ranked, func(i, j int) bool {
		ai, aj := ranked[i].AvgVibe(), ranked[j].AvgVibe()
		if ai == aj {
			return ranked[i].LeaveDays > ranked[j].LeaveDays
		}
		return ai < aj
	})
	if n > 0 && n < len(ranked) {
		ranked = ranked[:n]
	}
	out := make([]Priority, len(ranked))
	for i, r := range ranked {
		out[i] = Priority{Record: r, Risk: RiskFor(r)}
	}
	return out
}
