package feeds

import (
	"time"

	"github.com/amslee/postcal/internal/calendar"
	"github.com/amslee/postcal/internal/logger"
	"github.com/amslee/postcal/internal/models"
	"github.com/amslee/postcal/internal/selection"
)

// Tagged is an external item annotated with the feed it came from, so
// renderers can pick the right badge color.
type Tagged struct {
	models.ExternalItem
	Kind models.FeedKind `json:"kind"`
}

// displayDate returns the calendar date a record lands on. The feeds
// record start dates offset +1 relative to display, so one day is
// subtracted from the parsed Start Date before comparing to a cell.
func displayDate(item models.ExternalItem) (string, bool) {
	t, err := ParseStartDate(item.StartDate)
	if err != nil {
		logger.Warn("skipping record with bad start date", "subject", item.DisplaySubject(), "err", err)
		return "", false
	}
	return t.AddDate(0, 0, -1).Format(calendar.DateLayout), true
}

// VisibleOn returns the external items that land on the given cell
// date under the active selection, events first, then holidays, then
// day-level observances.
func VisibleOn(date string, set *Set, sel *selection.State) []Tagged {
	var out []Tagged

	for _, e := range set.Events {
		if d, ok := displayDate(e); ok && d == date && sel.Selected(selection.TaxonomyEvent, e.DisplayCategory()) {
			out = append(out, Tagged{ExternalItem: e, Kind: models.FeedEvents})
		}
	}
	for _, h := range set.Holidays {
		if d, ok := displayDate(h); ok && d == date && sel.Selected(selection.TaxonomyHoliday, h.DisplayCategory()) {
			out = append(out, Tagged{ExternalItem: h, Kind: models.FeedHolidays})
		}
	}
	for _, o := range set.Observances {
		if o.Category != "Day" && o.Category != "Cultural" {
			continue
		}
		if !sel.Selected(selection.TaxonomyObservance, o.SubcategoryOrGeneral()) {
			continue
		}
		if d, ok := displayDate(o); ok && d == date {
			out = append(out, Tagged{ExternalItem: o, Kind: models.FeedObservances})
		}
	}
	return out
}

// MonthlyObservances returns the Category=="Month" records whose
// offset-adjusted start date falls within the given month and whose
// label is active. These go in a separate monthly panel, never into a
// day cell.
func MonthlyObservances(year int, month time.Month, set *Set, sel *selection.State) []models.ExternalItem {
	var out []models.ExternalItem
	for _, o := range set.Observances {
		if o.Category != "Month" {
			continue
		}
		if !sel.Selected(selection.TaxonomyObservance, o.SubcategoryOrGeneral()) {
			continue
		}
		t, err := ParseStartDate(o.StartDate)
		if err != nil {
			logger.Warn("skipping record with bad start date", "subject", o.DisplaySubject(), "err", err)
			continue
		}
		adjusted := t.AddDate(0, 0, -1)
		if adjusted.Year() == year && adjusted.Month() == month {
			out = append(out, o)
		}
	}
	return out
}

// NewSelection derives the three taxonomies' labels from a feed set
// and returns the all-selected initial state. Records without a
// Category derive and match under the "Uncategorized" fallback so they
// still appear on the calendar. Observance labels merge day-level
// subcategories with monthly categories, which share one selection
// set.
func NewSelection(set *Set) *selection.State {
	eventLabels := selection.DeriveLabels(set.Events, func(e models.ExternalItem) string { return e.DisplayCategory() })
	holidayLabels := selection.DeriveLabels(set.Holidays, func(h models.ExternalItem) string { return h.DisplayCategory() })

	obsLabels := selection.DeriveLabels(set.Observances, func(o models.ExternalItem) string {
		switch o.Category {
		case "Day", "Cultural", "Month":
			return o.SubcategoryOrGeneral()
		default:
			return ""
		}
	})

	return selection.NewAllSelected(eventLabels, holidayLabels, obsLabels)
}
