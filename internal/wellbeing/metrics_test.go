package wellbeing

import (
	"math"
	"testing"
)

func rec(id, dept string, scores ...int) Record {
	return Record{EmployeeID: id, Department: dept, VibeScores: scores}
}

func TestRiskBucketBoundaries(t *testing.T) {
	cases := []struct {
		scores []int
		want   RiskLevel
	}{
		{[]int{2, 2}, RiskHigh},   // avg 2.0 is still high
		{[]int{2, 3}, RiskMedium}, // avg 2.5
		{[]int{3, 4}, RiskMedium}, // avg 3.5 is still medium
		{[]int{4, 4}, RiskLow},
		{nil, RiskHigh}, // no data reads as worst case
	}
	for _, tc := range cases {
		if got := RiskFor(rec("E", "D", tc.scores...)); got != tc.want {
			t.Fatalf("scores %v: expected %s, got %s", tc.scores, tc.want, got)
		}
	}
}

func TestMoodScore(t *testing.T) {
	ds := Dataset{Employees: []Record{
		rec("A", "Eng", 5, 5),
		rec("B", "Eng", 3, 3),
	}}
	// (5+3)/2 = 4 of 5 -> 80.
	if got := MoodScore(ds); math.Abs(got-80.0) > 1e-9 {
		t.Fatalf("expected mood 80, got %f", got)
	}
	if MoodScore(Dataset{}) != 0 {
		t.Fatalf("empty dataset must score 0")
	}
}

func TestHeatmapWorstFirst(t *testing.T) {
	ds := Dataset{Employees: []Record{
		rec("A", "Eng", 5),
		rec("B", "Eng", 3),
		rec("C", "Sales", 2),
		rec("D", "Finance", 2),
	}}
	hm := Heatmap(ds)
	if len(hm) != 3 {
		t.Fatalf("expected 3 departments, got %d", len(hm))
	}
	// Finance and Sales tie at 2.0; name order breaks the tie.
	if hm[0].Department != "Finance" || hm[1].Department != "Sales" || hm[2].Department != "Eng" {
		t.Fatalf("unexpected heatmap order: %+v", hm)
	}
	if hm[2].AvgVibe != 4.0 || hm[2].Headcount != 2 {
		t.Fatalf("bad Eng aggregate: %+v", hm[2])
	}
}

func TestPriorityRanking(t *testing.T) {
	ds := Dataset{Employees: []Record{
		{EmployeeID: "A", VibeScores: []int{4}},
		{EmployeeID: "B", VibeScores: []int{2}, LeaveDays: 3},
		{EmployeeID: "C", VibeScores: []int{2}, LeaveDays: 12},
		{EmployeeID: "D", VibeScores: []int{3}},
	}}
	top := PriorityEmployees(ds, 3)
	if len(top) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(top))
	}
	// C before B: same vibe, more leave days.
	if top[0].Record.EmployeeID != "C" || top[1].Record.EmployeeID != "B" || top[2].Record.EmployeeID != "D" {
		t.Fatalf("unexpected ranking: %v, %v, %v", top[0].Record.EmployeeID, top[1].Record.EmployeeID, top[2].Record.EmployeeID)
	}
	if top[0].Risk != RiskHigh {
		t.Fatalf("expected high risk for lowest vibe, got %s", top[0].Risk)
	}

	if got := len(PriorityEmployees(ds, 0)); got != 4 {
		t.Fatalf("n<=0 must return everyone, got %d", got)
	}
}

func TestDefaultDatasetIsSane(t *testing.T) {
	ds := DefaultDataset()
	if len(ds.Employees) == 0 {
		t.Fatalf("fixture dataset is empty")
	}
	b := BucketRisks(ds)
	if len(b.High) == 0 || len(b.Low) == 0 {
		t.Fatalf("fixture must span risk levels: %+v", b)
	}
	if len(b.High)+len(b.Medium)+len(b.Low) != len(ds.Employees) {
		t.Fatalf("buckets must partition the dataset")
	}
}
