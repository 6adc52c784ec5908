package calendar

import (
	"fmt"
	"time"
)

// DateLayout is the canonical YYYY-MM-DD form used as the lookup key
// everywhere in the core.
const DateLayout = "2006-01-02"

// Cell is one slot in a rendered calendar grid. A padding cell has
// Day == 0 and an empty Date.
type Cell struct {
	Date    string // canonical YYYY-MM-DD, empty for padding
	Day     int    // day of month, 0 for padding
	Weekday time.Weekday
	Today   bool
}

// Empty reports whether the cell is grid padding rather than a date.
func (c Cell) Empty() bool {
	return c.Day == 0
}

// DateKey formats a local calendar date as the canonical zero-padded
// key.
func DateKey(year int, month time.Month, day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", year, int(month), day)
}

// ParseDate parses a canonical date key.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.Local).Day()
}

// MonthGrid returns the fixed 42-cell (6 week) grid for a month.
// Cells before the 1st and after the last day are padding, so the
// first non-padding cell's index equals the weekday of the 1st.
func MonthGrid(year int, month time.Month) []Cell {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	starting := int(first.Weekday())
	days := DaysIn(year, month)
	today := time.Now()

	cells := make([]Cell, 42)
	for i := starting; i < starting+days; i++ {
		day := i - starting + 1
		date := first.AddDate(0, 0, day-1)
		cells[i] = Cell{
			Date:    DateKey(year, month, day),
			Day:     day,
			Weekday: date.Weekday(),
			Today: day == today.Day() &&
				month == today.Month() &&
				year == today.Year(),
		}
	}
	return cells
}

// WeekGrid returns the 7 cells for the week containing anchor,
// starting on the Sunday on or before it. An unparseable anchor falls
// back to today so a bad date never propagates into the displayed
// range.
func WeekGrid(anchor string) []Cell {
	t, err := ParseDate(anchor)
	if err != nil {
		t = time.Now()
	}
	start := t.AddDate(0, 0, -int(t.Weekday()))
	today := time.Now().Format(DateLayout)

	cells := make([]Cell, 7)
	for i := range cells {
		d := start.AddDate(0, 0, i)
		key := d.Format(DateLayout)
		cells[i] = Cell{
			Date:    key,
			Day:     d.Day(),
			Weekday: d.Weekday(),
			Today:   key == today,
		}
	}
	return cells
}
