// Package selection tracks which external-item labels are active
// across the three feed taxonomies. A label is visible iff present in
// its taxonomy's set; a fresh load starts with everything selected.
package selection

import (
	"sort"

	"github.com/amslee/postcal/internal/models"
)

// Taxonomy names the selection set a toggle applies to. Day-level
// observance subcategories and monthly observance categories share one
// set, matching how the original filter keyed both.
type Taxonomy string

const (
	TaxonomyEvent         Taxonomy = "event"
	TaxonomyHoliday       Taxonomy = "holiday"
	TaxonomyObservance    Taxonomy = "observance"
	TaxonomyObservanceSub Taxonomy = "observance-sub"
)

// State holds the active-label sets plus the full derived label lists,
// which are needed to answer "is everything selected" and for the
// select-all operation.
type State struct {
	events      map[string]bool
	holidays    map[string]bool
	observances map[string]bool

	allEvents      []string
	allHolidays    []string
	allObservances []string
}

// DeriveLabels extracts the distinct values of field across records,
// sorted ascending. Empty values are skipped.
func DeriveLabels(records []models.ExternalItem, field func(models.ExternalItem) string) []string {
	seen := make(map[string]bool)
	var labels []string
	for _, r := range records {
		v := field(r)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		labels = append(labels, v)
	}
	sort.Strings(labels)
	return labels
}

// NewAllSelected builds a State with every derived label active, the
// initial condition after a fresh feed load.
func NewAllSelected(eventLabels, holidayLabels, observanceLabels []string) *State {
	s := &State{
		events:         make(map[string]bool),
		holidays:       make(map[string]bool),
		observances:    make(map[string]bool),
		allEvents:      eventLabels,
		allHolidays:    holidayLabels,
		allObservances: observanceLabels,
	}
	s.SelectAll(true)
	return s
}

func (s *State) setFor(tax Taxonomy) map[string]bool {
	switch tax {
	case TaxonomyEvent:
		return s.events
	case TaxonomyHoliday:
		return s.holidays
	default:
		return s.observances
	}
}

// Toggle sets label membership in the named taxonomy's set.
func (s *State) Toggle(tax Taxonomy, label string, selected bool) {
	set := s.setFor(tax)
	if selected {
		set[label] = true
	} else {
		delete(set, label)
	}
}

// Selected reports whether label is active in the named taxonomy.
func (s *State) Selected(tax Taxonomy, label string) bool {
	return s.setFor(tax)[label]
}

// SelectAll sets every derived label's membership across all
// taxonomies in one call.
func (s *State) SelectAll(selected bool) {
	for _, l := range s.allEvents {
		s.Toggle(TaxonomyEvent, l, selected)
	}
	for _, l := range s.allHolidays {
		s.Toggle(TaxonomyHoliday, l, selected)
	}
	for _, l := range s.allObservances {
		s.Toggle(TaxonomyObservance, l, selected)
	}
}

// IsEverythingSelected reports whether every derived label across all
// taxonomies is currently active.
func (s *State) IsEverythingSelected() bool {
	return s.SelectedCount() == s.TotalCount()
}

// SelectedCount counts active labels across all taxonomies.
func (s *State) SelectedCount() int {
	n := 0
	for _, l := range s.allEvents {
		if s.events[l] {
			n++
		}
	}
	for _, l := range s.allHolidays {
		if s.holidays[l] {
			n++
		}
	}
	for _, l := range s.allObservances {
		if s.observances[l] {
			n++
		}
	}
	return n
}

// TotalCount counts all derived labels across all taxonomies.
func (s *State) TotalCount() int {
	return len(s.allEvents) + len(s.allHolidays) + len(s.allObservances)
}

// EventLabels returns the derived event categories.
func (s *State) EventLabels() []string { return s.allEvents }

// HolidayLabels returns the derived holiday categories.
func (s *State) HolidayLabels() []string { return s.allHolidays }

// ObservanceLabels returns the derived observance labels.
func (s *State) ObservanceLabels() []string { return s.allObservances }
