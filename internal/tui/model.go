package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/amslee/postcal/internal/calendar"
	"github.com/amslee/postcal/internal/feeds"
	"github.com/amslee/postcal/internal/models"
	"github.com/amslee/postcal/internal/planner"
	"github.com/amslee/postcal/internal/reconcile"
	"github.com/amslee/postcal/internal/selection"
	"github.com/amslee/postcal/internal/storage"
)

type SessionState int

const (
	StateCalendar SessionState = iota
	StateDay
	StatePostForm
	StateMoveForm
	StatePopulateForm
	StateJumpForm
	StateFilterForm
	StateConfirmReset
	StateConfirmDelete
)

// PostFormModel backs the huh add/edit form.
type PostFormModel struct {
	Platform    string
	Content     string
	Description string
	PostTime    string
	Status      string
}

// PopulateFormModel backs the huh auto-populate form.
type PopulateFormModel struct {
	Total         string
	PerWeek       string
	AllowWeekends bool
	Distribution  string
}

// JumpFormModel backs the go-to-date form. Form models live on the
// heap so huh's bound pointers survive the value copies bubbletea
// makes of the model between updates.
type JumpFormModel struct {
	Date string
}

// MoveFormModel backs the move-post form.
type MoveFormModel struct {
	Date string
}

// FilterFormModel backs the category picker, one label list per
// taxonomy.
type FilterFormModel struct {
	Events      []string
	Holidays    []string
	Observances []string
}

type Model struct {
	store    storage.Provider
	feedSet  *feeds.Set
	sel      *selection.State
	platform planner.PlatformPolicy

	state SessionState
	keys  KeyMap
	help  help.Model

	year     int
	month    time.Month
	view     reconcile.MonthView
	weekMode bool
	weekDays []reconcile.DayView

	cursor int // index into the 42-cell grid (or 0..6 in week mode)

	form         *huh.Form
	postForm     *PostFormModel
	populateForm *PopulateFormModel
	jumpForm     *JumpFormModel
	moveForm     *MoveFormModel
	filterForm   *FilterFormModel

	editingID  string // post being edited, empty for create
	deletingID string
	movingID   string
	dayCursor  int // selected post inside the day panel

	statusMsg string
	quitting  bool
	width     int
	height    int
}

func NewModel(store storage.Provider, set *feeds.Set, sel *selection.State, platform planner.PlatformPolicy) Model {
	now := time.Now()
	m := Model{
		store:    store,
		feedSet:  set,
		sel:      sel,
		platform: platform,
		state:    StateCalendar,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		year:     now.Year(),
		month:    now.Month(),
	}
	m.refresh()
	m.cursor = m.indexOfToday()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

// refresh rebuilds the reconciled views after any mutation or
// navigation.
func (m *Model) refresh() {
	view, err := reconcile.Month(m.year, m.month, m.store, m.feedSet, m.sel)
	if err != nil {
		m.statusMsg = err.Error()
		return
	}
	m.view = view

	if m.weekMode {
		anchor := m.selectedDate()
		if anchor == "" {
			anchor = time.Now().Format(calendar.DateLayout)
		}
		days, err := reconcile.Week(anchor, m.store, m.feedSet, m.sel)
		if err != nil {
			m.statusMsg = err.Error()
			return
		}
		m.weekDays = days
	}
}

func (m *Model) indexOfToday() int {
	for i, day := range m.view.Days {
		if day.Cell.Today {
			return i
		}
	}
	// Month not containing today: select the 1st.
	for i, day := range m.view.Days {
		if !day.Cell.Empty() {
			return i
		}
	}
	return 0
}

// selectedDate returns the date key under the cursor, or empty for a
// padding cell.
func (m *Model) selectedDate() string {
	if m.weekMode {
		if m.cursor >= 0 && m.cursor < len(m.weekDays) {
			return m.weekDays[m.cursor].Cell.Date
		}
		return ""
	}
	if m.cursor >= 0 && m.cursor < len(m.view.Days) {
		return m.view.Days[m.cursor].Cell.Date
	}
	return ""
}

func (m *Model) selectedDay() reconcile.DayView {
	if m.weekMode {
		if m.cursor >= 0 && m.cursor < len(m.weekDays) {
			return m.weekDays[m.cursor]
		}
		return reconcile.DayView{}
	}
	if m.cursor >= 0 && m.cursor < len(m.view.Days) {
		return m.view.Days[m.cursor]
	}
	return reconcile.DayView{}
}

func (m *Model) gotoMonth(year int, month time.Month) {
	m.year = year
	m.month = month
	m.refresh()
	m.cursor = m.indexOfToday()
}

func (m *Model) gotoDate(date string) {
	t, err := calendar.ParseDate(date)
	if err != nil {
		// Invalid input: keep the prior view untouched.
		m.statusMsg = err.Error()
		return
	}
	m.year = t.Year()
	m.month = t.Month()
	m.weekMode = false
	m.refresh()
	for i, day := range m.view.Days {
		if day.Cell.Date == date {
			m.cursor = i
			return
		}
	}
}

func (m *Model) selectedPost() (models.ContentItem, bool) {
	day := m.selectedDay()
	if m.dayCursor >= 0 && m.dayCursor < len(day.Posts) {
		return day.Posts[m.dayCursor], true
	}
	return models.ContentItem{}, false
}
