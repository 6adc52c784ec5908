package calendar

import (
	"testing"
	"time"
)

func TestMonthGrid_Shape(t *testing.T) {
	tests := []struct {
		name        string
		year        int
		month       time.Month
		daysInMonth int
		firstIndex  int // weekday of the 1st
	}{
		{"feb non-leap", 2023, time.February, 28, 3},  // Feb 1 2023 is a Wednesday
		{"feb leap", 2024, time.February, 29, 4},      // Feb 1 2024 is a Thursday
		{"starts sunday", 2024, time.December, 31, 0}, // Dec 1 2024 is a Sunday
		{"starts saturday", 2025, time.March, 31, 6},  // Mar 1 2025 is a Saturday
		{"thirty days", 2024, time.April, 30, 1},      // Apr 1 2024 is a Monday
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cells := MonthGrid(tt.year, tt.month)

			if len(cells) != 42 {
				t.Fatalf("expected 42 cells, got %d", len(cells))
			}

			nonEmpty := 0
			firstIndex := -1
			for i, c := range cells {
				if !c.Empty() {
					nonEmpty++
					if firstIndex == -1 {
						firstIndex = i
					}
				}
			}

			if nonEmpty != tt.daysInMonth {
				t.Errorf("expected %d day cells, got %d", tt.daysInMonth, nonEmpty)
			}
			if firstIndex != tt.firstIndex {
				t.Errorf("expected first day at index %d, got %d", tt.firstIndex, firstIndex)
			}

			first := cells[tt.firstIndex]
			if first.Day != 1 {
				t.Errorf("first non-empty cell should be day 1, got %d", first.Day)
			}
			want := DateKey(tt.year, tt.month, 1)
			if first.Date != want {
				t.Errorf("expected date %s, got %s", want, first.Date)
			}
		})
	}
}

func TestMonthGrid_DatesAreCanonical(t *testing.T) {
	cells := MonthGrid(2024, time.March)
	for _, c := range cells {
		if c.Empty() {
			continue
		}
		parsed, err := ParseDate(c.Date)
		if err != nil {
			t.Fatalf("cell date %q not canonical: %v", c.Date, err)
		}
		if parsed.Day() != c.Day {
			t.Errorf("cell day %d does not match date %s", c.Day, c.Date)
		}
	}
}

func TestMonthGrid_MarksToday(t *testing.T) {
	now := time.Now()
	cells := MonthGrid(now.Year(), now.Month())

	found := false
	for _, c := range cells {
		if c.Today {
			found = true
			if c.Day != now.Day() {
				t.Errorf("today marked on day %d, want %d", c.Day, now.Day())
			}
		}
	}
	if !found {
		t.Error("no cell marked as today in the current month")
	}
}

func TestWeekGrid_Properties(t *testing.T) {
	tests := []struct {
		anchor    string
		wantStart string
	}{
		{"2024-03-16", "2024-03-10"}, // Saturday anchor
		{"2024-03-10", "2024-03-10"}, // Sunday anchor is its own week start
		{"2024-03-13", "2024-03-10"}, // mid-week
		{"2024-12-31", "2024-12-29"}, // year boundary
	}

	for _, tt := range tests {
		t.Run(tt.anchor, func(t *testing.T) {
			cells := WeekGrid(tt.anchor)

			if len(cells) != 7 {
				t.Fatalf("expected 7 cells, got %d", len(cells))
			}
			if cells[0].Date != tt.wantStart {
				t.Errorf("expected week start %s, got %s", tt.wantStart, cells[0].Date)
			}
			if cells[0].Weekday != time.Sunday {
				t.Errorf("week should start on Sunday, got %s", cells[0].Weekday)
			}

			// Consecutive dates
			prev, _ := ParseDate(cells[0].Date)
			for _, c := range cells[1:] {
				cur, err := ParseDate(c.Date)
				if err != nil {
					t.Fatalf("bad cell date %q: %v", c.Date, err)
				}
				if cur.Sub(prev) != 24*time.Hour {
					t.Errorf("dates not consecutive: %s then %s", prev.Format(DateLayout), c.Date)
				}
				prev = cur
			}

			// Anchor within range
			if tt.anchor < cells[0].Date || tt.anchor > cells[6].Date {
				t.Errorf("anchor %s outside week [%s, %s]", tt.anchor, cells[0].Date, cells[6].Date)
			}
		})
	}
}

func TestWeekGrid_InvalidAnchorFallsBackToToday(t *testing.T) {
	cells := WeekGrid("not-a-date")

	if len(cells) != 7 {
		t.Fatalf("expected 7 cells, got %d", len(cells))
	}
	today := time.Now().Format(DateLayout)
	if today < cells[0].Date || today > cells[6].Date {
		t.Errorf("fallback week [%s, %s] does not contain today %s", cells[0].Date, cells[6].Date, today)
	}
}

func TestDateKey_ZeroPadded(t *testing.T) {
	if got := DateKey(2024, time.March, 5); got != "2024-03-05" {
		t.Errorf("expected 2024-03-05, got %s", got)
	}
	if got := DateKey(2024, time.November, 15); got != "2024-11-15" {
		t.Errorf("expected 2024-11-15, got %s", got)
	}
}

func TestDaysIn(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2023, time.February, 28},
		{2024, time.February, 29},
		{2024, time.April, 30},
		{2024, time.January, 31},
	}
	for _, tt := range tests {
		if got := DaysIn(tt.year, tt.month); got != tt.want {
			t.Errorf("DaysIn(%d, %s) = %d, want %d", tt.year, tt.month, got, tt.want)
		}
	}
}
