// Package listview implements the client-side working set behind every list
// screen: single-key sort, substring search, equality filtering and
// fixed-size pagination over a collection fetched from the backend. The
// working set is always recomputed from the authoritative fetched slice;
// nothing is mutated in place.
package listview

import (
	"sort"
	"strconv"
	"strings"
)

// DefaultPageSize is the fixed page size used by every list screen.
const DefaultPageSize = 10

// Direction is a sort direction.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

// Model holds one list screen's working set. T is the row type; rows are
// addressed through extractor funcs so the model stays independent of the
// entities it pages.
type Model[T any] struct {
	items    []T
	working  []T
	pageSize int
	page     int // 1-based

	search       string
	searchFields func(T) []string

	filter func(T) bool

	sortKey  string
	sortDir  Direction
	sortVals map[string]func(T) string
}

// New creates a model with the default page size. searchFields extracts the
// 2-3 fields substring search runs over; sortVals maps sort keys to the
// string value compared for that key.
func New[T any](searchFields func(T) []string, sortVals map[string]func(T) string) *Model[T] {
	return &Model[T]{
		pageSize:     DefaultPageSize,
		page:         1,
		searchFields: searchFields,
		sortVals:     sortVals,
	}
}

// SetPageSize overrides the page size; values below 1 are ignored.
func (m *Model[T]) SetPageSize(n int) {
	if n < 1 {
		return
	}
	m.pageSize = n
	m.recompute()
}

// SetItems replaces the authoritative collection.
func (m *Model[T]) SetItems(items []T) {
	m.items = items
	m.recompute()
}

// SetSearch sets the substring query. Matching is case-insensitive across
// the configured fields. Search resets to the first page.
func (m *Model[T]) SetSearch(q string) {
	m.search = strings.ToLower(strings.TrimSpace(q))
	m.page = 1
	m.recompute()
}

// SetFilter installs an equality filter (nil clears it) and resets to the
// first page.
func (m *Model[T]) SetFilter(f func(T) bool) {
	m.filter = f
	m.page = 1
	m.recompute()
}

// SortBy sorts by the named key. Sorting by the current key again toggles
// the direction; a new key starts ascending. Unknown keys are ignored.
func (m *Model[T]) SortBy(key string) {
	if _, ok := m.sortVals[key]; !ok {
		return
	}
	if m.sortKey == key {
		if m.sortDir == Ascending {
			m.sortDir = Descending
		} else {
			m.sortDir = Ascending
		}
	} else {
		m.sortKey = key
		m.sortDir = Ascending
	}
	m.recompute()
}

// SortState returns the current sort key and direction.
func (m *Model[T]) SortState() (string, Direction) {
	return m.sortKey, m.sortDir
}

// recompute rebuilds the working set from the authoritative items.
func (m *Model[T]) recompute() {
	working := make([]T, 0, len(m.items))
	for _, item := range m.items {
		if m.filter != nil && !m.filter(item) {
			continue
		}
		if m.search != "" && !m.matches(item) {
			continue
		}
		working = append(working, item)
	}

	if m.sortKey != "" {
		value := m.sortVals[m.sortKey]
		sort.SliceStable(working, func(i, j int) bool {
			less := compareValues(value(working[i]), value(working[j]))
			if m.sortDir == Descending {
				return less > 0
			}
			return less < 0
		})
	}

	m.working = working

	// The page resets to the first one when the working set shrinks out
	// from under it, so the screen never lands on a page that stopped
	// existing.
	if m.page > m.TotalPages() {
		m.page = 1
	}
}

func (m *Model[T]) matches(item T) bool {
	if m.searchFields == nil {
		return true
	}
	for _, f := range m.searchFields(item) {
		if strings.Contains(strings.ToLower(f), m.search) {
			return true
		}
	}
	return false
}

// compareValues orders strings numerically when both parse as numbers and
// lexicographically otherwise.
func compareValues(a, b string) int {
	fa, errA := strconv.ParseFloat(a, 64)
	fb, errB := strconv.ParseFloat(b, 64)
	if errA == nil && errB == nil {
		switch {
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(a, b)
}

// Len returns the size of the filtered working set.
func (m *Model[T]) Len() int { return len(m.working) }

// TotalPages is ceil(N/P), or 1 for an empty set.
func (m *Model[T]) TotalPages() int {
	if len(m.working) == 0 {
		return 1
	}
	return (len(m.working) + m.pageSize - 1) / m.pageSize
}

// Page returns the current 1-based page number.
func (m *Model[T]) Page() int { return m.page }

// SetPage jumps to a page, clamped into the valid range.
func (m *Model[T]) SetPage(p int) {
	if p < 1 {
		p = 1
	}
	if p > m.TotalPages() {
		p = m.TotalPages()
	}
	m.page = p
}

// NextPage advances one page, clamped at the last.
func (m *Model[T]) NextPage() { m.SetPage(m.page + 1) }

// PrevPage steps back one page, clamped at the first.
func (m *Model[T]) PrevPage() { m.SetPage(m.page - 1) }

// PageItems returns the rows on the current page.
func (m *Model[T]) PageItems() []T {
	start := (m.page - 1) * m.pageSize
	if start >= len(m.working) {
		return nil
	}
	end := start + m.pageSize
	if end > len(m.working) {
		end = len(m.working)
	}
	return m.working[start:end]
}

// All returns the full filtered, sorted working set.
func (m *Model[T]) All() []T { return m.working }
