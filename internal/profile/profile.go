// Package profile implements the composite employee profile view-model: one
// aggregate fetch fanned out to the presentational sections.
package profile

import (
	"context"
	"fmt"

	"deloconnect/internal/types"
)

// Backend is the slice of the REST client this view-model needs.
type Backend interface {
	Profile(ctx context.Context) (*types.Employee, error)
}

// Section is one presentational card of the profile screen.
type Section struct {
	Name  string
	Count int
}

// View holds one loaded profile.
type View struct {
	Employee types.Employee
}

// Load fetches the composite payload. Auth failures surface unchanged so
// the caller can gate on api.ErrUnauthorized.
func Load(ctx context.Context, backend Backend) (*View, error) {
	emp, err := backend.Profile(ctx)
	if err != nil {
		return nil, fmt.Errorf("profile load: %w", err)
	}
	return &View{Employee: *emp}, nil
}

// Sections returns the optional sections that have at least one entry,
// in display order. Sections with no data are simply not rendered.
func (v *View) Sections() []Section {
	cd := v.Employee.CompanyData
	if cd == nil {
		return nil
	}
	all := []Section{
		{Name: "Activity", Count: len(cd.Activity)},
		{Name: "Leave", Count: len(cd.Leave)},
		{Name: "Onboarding", Count: len(cd.Onboarding)},
		{Name: "Performance", Count: len(cd.Performance)},
		{Name: "Rewards", Count: len(cd.Rewards)},
		{Name: "Vibemeter", Count: len(cd.Vibemeter)},
	}
	out := make([]Section, 0, len(all))
	for _, s := range all {
		if s.Count > 0 {
			out = append(out, s)
		}
	}
	return out
}

// LatestVibe returns the most recent vibemeter entry, by response date
// string order (dates are ISO and compare lexicographically).
func (v *View) LatestVibe() (types.VibemeterEntry, bool) {
	cd := v.Employee.CompanyData
	if cd == nil || len(cd.Vibemeter) == 0 {
		return types.VibemeterEntry{}, false
	}
	latest := cd.Vibemeter[0]
	for _, e := range cd.Vibemeter[1:] {
		if e.ResponseDate > latest.ResponseDate {
			latest = e
		}
	}
	return latest, true
}
