package listview

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type row struct {
	Name  string
	Email string
	Role  string
	Score int
}

func newModel() *Model[row] {
	return New(
		func(r row) []string { return []string{r.Name, r.Email} },
		map[string]func(row) string{
			"name":  func(r row) string { return r.Name },
			"score": func(r row) string { return fmt.Sprintf("%d", r.Score) },
		},
	)
}

func rows(n int) []row {
	out := make([]row, n)
	for i := range out {
		out[i] = row{Name: fmt.Sprintf("user-%02d", i), Email: fmt.Sprintf("u%d@x.io", i), Role: "employee", Score: i}
	}
	return out
}

func names(rs []row) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.Name
	}
	return out
}

func TestPaginationInvariant(t *testing.T) {
	m := newModel()

	// 23 items, page size 10: 3 pages, last page holds 3.
	m.SetItems(rows(23))
	if m.TotalPages() != 3 {
		t.Fatalf("expected 3 pages for 23 items, got %d", m.TotalPages())
	}
	m.SetPage(3)
	if got := len(m.PageItems()); got != 3 {
		t.Fatalf("expected 3 items on last page, got %d", got)
	}

	// Every valid page holds min(P, N-(page-1)*P) items.
	for _, tc := range []struct{ n, p, pages int }{{0, 10, 1}, {1, 10, 1}, {10, 10, 1}, {11, 10, 2}, {100, 10, 10}} {
		m.SetItems(rows(tc.n))
		if m.TotalPages() != tc.pages {
			t.Fatalf("n=%d: expected %d pages, got %d", tc.n, tc.pages, m.TotalPages())
		}
		total := 0
		for page := 1; page <= m.TotalPages(); page++ {
			m.SetPage(page)
			total += len(m.PageItems())
		}
		if total != tc.n {
			t.Fatalf("n=%d: pages covered %d items", tc.n, total)
		}
	}
}

func TestPageResetsWhenSetShrinks(t *testing.T) {
	m := newModel()
	m.SetItems(rows(25))
	m.SetPage(3)

	// 15 rows still span two pages; the reset goes to the first page,
	// not the nearest surviving one.
	m.SetItems(rows(15))
	if m.Page() != 1 {
		t.Fatalf("page must reset to 1 after shrink, got %d", m.Page())
	}
	if len(m.PageItems()) != DefaultPageSize {
		t.Fatalf("expected a full first page after shrink, got %d", len(m.PageItems()))
	}

	// A refresh that keeps the current page in range leaves it alone.
	m.SetPage(2)
	m.SetItems(rows(15))
	if m.Page() != 2 {
		t.Fatalf("in-range page must survive a refresh, got %d", m.Page())
	}
}

func TestSortIdempotenceAndToggle(t *testing.T) {
	m := newModel()
	m.SetItems([]row{{Name: "charlie"}, {Name: "alice"}, {Name: "bob"}})

	m.SortBy("name")
	once := names(m.All())
	m.SortBy("score") // switch away
	m.SortBy("name")  // back: ascending again
	if diff := cmp.Diff(once, names(m.All())); diff != "" {
		t.Fatalf("same sort applied twice diverged (-first +second):\n%s", diff)
	}

	m.SortBy("name") // toggle to descending
	want := []string{"charlie", "bob", "alice"}
	if diff := cmp.Diff(want, names(m.All())); diff != "" {
		t.Fatalf("descending mismatch (-want +got):\n%s", diff)
	}
}

func TestNumericSortFallback(t *testing.T) {
	m := newModel()
	m.SetItems([]row{{Name: "a", Score: 100}, {Name: "b", Score: 9}, {Name: "c", Score: 25}})
	m.SortBy("score")
	want := []string{"b", "c", "a"} // 9 < 25 < 100, not "100" < "25" < "9"
	if diff := cmp.Diff(want, names(m.All())); diff != "" {
		t.Fatalf("numeric sort mismatch (-want +got):\n%s", diff)
	}
}

func TestSearchAcrossFields(t *testing.T) {
	m := newModel()
	m.SetItems([]row{
		{Name: "Ada Lovelace", Email: "ada@delo.io"},
		{Name: "Grace Hopper", Email: "grace@delo.io"},
	})

	m.SetSearch("GRACE")
	if m.Len() != 1 || m.All()[0].Name != "Grace Hopper" {
		t.Fatalf("case-insensitive name search failed: %v", names(m.All()))
	}

	m.SetSearch("ada@")
	if m.Len() != 1 || m.All()[0].Name != "Ada Lovelace" {
		t.Fatalf("email search failed: %v", names(m.All()))
	}

	m.SetSearch("")
	if m.Len() != 2 {
		t.Fatalf("clearing search must restore the full set")
	}
}

func TestEqualityFilterRecomputesFromAuthoritative(t *testing.T) {
	m := newModel()
	items := []row{{Name: "a", Role: "hr"}, {Name: "b", Role: "employee"}, {Name: "c", Role: "hr"}}
	m.SetItems(items)

	m.SetFilter(func(r row) bool { return r.Role == "hr" })
	if m.Len() != 2 {
		t.Fatalf("expected 2 hr rows, got %d", m.Len())
	}

	m.SetFilter(nil)
	if m.Len() != 3 {
		t.Fatalf("clearing filter must restore the authoritative set, got %d", m.Len())
	}
}

func TestSearchResetsToFirstPage(t *testing.T) {
	m := newModel()
	m.SetItems(rows(30))
	m.SetPage(3)
	m.SetSearch("user")
	if m.Page() != 1 {
		t.Fatalf("search must reset to page 1, got %d", m.Page())
	}
}
