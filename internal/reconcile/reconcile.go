// Package reconcile joins the calendar grid with the content store and
// the filtered external feeds, producing the per-cell views every
// renderer (TUI, CLI output, HTTP API) consumes.
package reconcile

import (
	"strings"
	"time"

	"github.com/amslee/postcal/internal/calendar"
	"github.com/amslee/postcal/internal/feeds"
	"github.com/amslee/postcal/internal/models"
	"github.com/amslee/postcal/internal/selection"
	"github.com/amslee/postcal/internal/storage"
)

// DayView is one calendar cell with everything attached to it.
type DayView struct {
	Cell  calendar.Cell        `json:"cell"`
	Posts []models.ContentItem `json:"posts,omitempty"`
	Items []feeds.Tagged       `json:"items,omitempty"`
}

// MonthView is the full 42-cell month plus the monthly observance
// panel.
type MonthView struct {
	Year       int                   `json:"year"`
	Month      time.Month            `json:"month"`
	Days       []DayView             `json:"days"`
	MonthlyObs []models.ExternalItem `json:"monthly_observances,omitempty"`
}

// Month builds the reconciled month view. Store read errors propagate;
// feed problems have already degraded to empty slices upstream.
func Month(year int, month time.Month, store storage.Provider, set *feeds.Set, sel *selection.State) (MonthView, error) {
	cells := calendar.MonthGrid(year, month)
	days := make([]DayView, len(cells))
	for i, cell := range cells {
		view := DayView{Cell: cell}
		if !cell.Empty() {
			posts, err := store.PostsForDate(cell.Date)
			if err != nil {
				return MonthView{}, err
			}
			view.Posts = posts
			view.Items = feeds.VisibleOn(cell.Date, set, sel)
		}
		days[i] = view
	}
	return MonthView{
		Year:       year,
		Month:      month,
		Days:       days,
		MonthlyObs: feeds.MonthlyObservances(year, month, set, sel),
	}, nil
}

// Week builds the reconciled 7-day view for the week containing
// anchor.
func Week(anchor string, store storage.Provider, set *feeds.Set, sel *selection.State) ([]DayView, error) {
	cells := calendar.WeekGrid(anchor)
	days := make([]DayView, len(cells))
	for i, cell := range cells {
		posts, err := store.PostsForDate(cell.Date)
		if err != nil {
			return nil, err
		}
		days[i] = DayView{
			Cell:  cell,
			Posts: posts,
			Items: feeds.VisibleOn(cell.Date, set, sel),
		}
	}
	return days, nil
}

// Day builds the reconciled view for a single date.
func Day(date string, store storage.Provider, set *feeds.Set, sel *selection.State) (DayView, error) {
	posts, err := store.PostsForDate(date)
	if err != nil {
		return DayView{}, err
	}
	t, err := calendar.ParseDate(date)
	if err != nil {
		return DayView{}, err
	}
	return DayView{
		Cell: calendar.Cell{
			Date:    date,
			Day:     t.Day(),
			Weekday: t.Weekday(),
			Today:   date == time.Now().Format(calendar.DateLayout),
		},
		Posts: posts,
		Items: feeds.VisibleOn(date, set, sel),
	}, nil
}

var platformColors = map[models.Platform]string{
	models.PlatformFacebook:  "#3b5998",
	models.PlatformInstagram: "#e1306c",
	models.PlatformTwitter:   "#1da1f2",
	models.PlatformLinkedIn:  "#0077b5",
	models.PlatformTikTok:    "#000000",
	models.PlatformThreads:   "#000000",
}

const defaultPlatformColor = "#999999"

var categoryColors = map[string]string{
	"Holiday":   "#ff9999",
	"Event":     "#99ff99",
	"Promotion": "#9999ff",
	"Day":       "#ffcc66",
	"Cultural":  "#cc99ff",
}

const defaultCategoryColor = "#cccccc"

// PlatformColor returns the badge color for a post's platform, with a
// neutral default for unmapped values.
func PlatformColor(p models.Platform) string {
	if c, ok := platformColors[models.Platform(strings.ToLower(string(p)))]; ok {
		return c
	}
	return defaultPlatformColor
}

// CategoryColor returns the badge color for an external item category,
// with a neutral default for unmapped values.
func CategoryColor(category string) string {
	if c, ok := categoryColors[category]; ok {
		return c
	}
	return defaultCategoryColor
}

var platformGlyphs = map[models.Platform]string{
	models.PlatformFacebook:  "f",
	models.PlatformInstagram: "ig",
	models.PlatformTwitter:   "tw",
	models.PlatformLinkedIn:  "in",
	models.PlatformTikTok:    "tt",
	models.PlatformThreads:   "th",
}

// PlatformGlyph returns the short marker shown on a post placeholder.
func PlatformGlyph(p models.Platform) string {
	if g, ok := platformGlyphs[models.Platform(strings.ToLower(string(p)))]; ok {
		return g
	}
	return "*"
}
