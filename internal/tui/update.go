package tui

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/amslee/postcal/internal/models"
	"github.com/amslee/postcal/internal/planner"
	"github.com/amslee/postcal/internal/selection"
	"github.com/amslee/postcal/internal/storage"
	"github.com/amslee/postcal/internal/validation"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) && !m.inForm() {
			m.quitting = true
			return m, tea.Quit
		}
	}

	switch m.state {
	case StateCalendar:
		return m.updateCalendar(msg)
	case StateDay:
		return m.updateDay(msg)
	case StatePostForm, StatePopulateForm, StateJumpForm, StateMoveForm, StateFilterForm:
		return m.updateForm(msg)
	case StateConfirmReset:
		return m.updateConfirmReset(msg)
	case StateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}
	return m, nil
}

func (m Model) inForm() bool {
	switch m.state {
	case StatePostForm, StatePopulateForm, StateJumpForm, StateMoveForm, StateFilterForm:
		return true
	}
	return false
}

func (m Model) updateCalendar(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	cols := 7
	limit := len(m.view.Days)
	if m.weekMode {
		limit = len(m.weekDays)
	}

	switch {
	case key.Matches(keyMsg, m.keys.Left):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, m.keys.Right):
		if m.cursor < limit-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, m.keys.Up):
		if !m.weekMode && m.cursor-cols >= 0 {
			m.cursor -= cols
		}
	case key.Matches(keyMsg, m.keys.Down):
		if !m.weekMode && m.cursor+cols < limit {
			m.cursor += cols
		}
	case key.Matches(keyMsg, m.keys.PrevMonth):
		prev := time.Date(m.year, m.month, 1, 0, 0, 0, 0, time.Local).AddDate(0, -1, 0)
		m.gotoMonth(prev.Year(), prev.Month())
	case key.Matches(keyMsg, m.keys.NextMonth):
		next := time.Date(m.year, m.month, 1, 0, 0, 0, 0, time.Local).AddDate(0, 1, 0)
		m.gotoMonth(next.Year(), next.Month())
	case key.Matches(keyMsg, m.keys.Today):
		now := time.Now()
		m.gotoMonth(now.Year(), now.Month())
	case key.Matches(keyMsg, m.keys.WeekView):
		m.weekMode = !m.weekMode
		if m.weekMode {
			m.cursor = 0
		} else {
			m.cursor = m.indexOfToday()
		}
		m.refresh()
	case key.Matches(keyMsg, m.keys.Jump):
		m.newJumpForm()
		return m, m.form.Init()
	case key.Matches(keyMsg, m.keys.Add):
		if m.selectedDate() != "" {
			m.newPostForm(nil)
			return m, m.form.Init()
		}
	case key.Matches(keyMsg, m.keys.Populate):
		m.newPopulateForm()
		return m, m.form.Init()
	case key.Matches(keyMsg, m.keys.Filter):
		m.newFilterForm()
		if m.state == StateFilterForm {
			return m, m.form.Init()
		}
	case key.Matches(keyMsg, m.keys.Reset):
		m.state = StateConfirmReset
	case key.Matches(keyMsg, m.keys.Enter):
		if m.selectedDate() != "" {
			m.dayCursor = 0
			m.state = StateDay
		}
	case key.Matches(keyMsg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m Model) updateDay(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	day := m.selectedDay()
	switch {
	case key.Matches(keyMsg, m.keys.Back):
		m.state = StateCalendar
	case key.Matches(keyMsg, m.keys.Up):
		if m.dayCursor > 0 {
			m.dayCursor--
		}
	case key.Matches(keyMsg, m.keys.Down):
		if m.dayCursor < len(day.Posts)-1 {
			m.dayCursor++
		}
	case key.Matches(keyMsg, m.keys.Add):
		m.newPostForm(nil)
		return m, m.form.Init()
	case key.Matches(keyMsg, m.keys.Edit):
		if post, ok := m.selectedPost(); ok {
			m.newPostForm(&post)
			return m, m.form.Init()
		}
	case key.Matches(keyMsg, m.keys.Delete):
		if post, ok := m.selectedPost(); ok {
			m.deletingID = post.ID
			m.state = StateConfirmDelete
		}
	case key.Matches(keyMsg, m.keys.Move):
		if post, ok := m.selectedPost(); ok {
			m.movingID = post.ID
			m.newMoveForm()
			return m, m.form.Init()
		}
	}
	return m, nil
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && key.Matches(keyMsg, m.keys.Back) {
		m.form = nil
		m.state = StateCalendar
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		switch m.state {
		case StatePostForm:
			m.submitPostForm()
		case StatePopulateForm:
			m.submitPopulateForm()
		case StateJumpForm:
			m.gotoDate(m.jumpForm.Date)
			m.state = StateCalendar
		case StateMoveForm:
			m.submitMoveForm()
		case StateFilterForm:
			m.submitFilterForm()
		}
		m.form = nil
		m.refresh()
	}
	return m, cmd
}

func (m *Model) submitPostForm() {
	pf := m.postForm
	post := models.ContentItem{
		Date:           m.selectedDate(),
		Platform:       models.Platform(pf.Platform),
		Content:        pf.Content,
		Description:    pf.Description,
		PostTime:       pf.PostTime,
		ApprovalStatus: models.ApprovalStatus(pf.Status),
	}

	if m.editingID != "" {
		post.Date = "" // keep the stored date unless moved explicitly
		if _, err := m.store.UpdatePost(m.editingID, post); err != nil {
			m.statusMsg = err.Error()
		} else {
			m.statusMsg = "post updated"
		}
		m.state = StateDay
		return
	}

	if err := validation.ValidatePost(post); err != nil {
		m.statusMsg = err.Error()
		m.state = StateCalendar
		return
	}
	if _, err := m.store.AddPost(post); err != nil {
		m.statusMsg = err.Error()
	} else {
		m.statusMsg = "post added"
	}
	m.state = StateCalendar
}

func (m *Model) submitPopulateForm() {
	pf := m.populateForm
	total, err := strconv.Atoi(pf.Total)
	if err != nil {
		m.statusMsg = "invalid total"
		m.state = StateCalendar
		return
	}
	perWeek, _ := strconv.Atoi(pf.PerWeek)

	posts, err := planner.Apply(m.store, planner.Options{
		Year:          m.year,
		Month:         m.month,
		PostsPerWeek:  perWeek,
		TotalPosts:    total,
		AllowWeekends: pf.AllowWeekends,
		Distribution:  planner.Distribution(pf.Distribution),
		Platform:      m.platform,
	})
	if err != nil {
		m.statusMsg = err.Error()
	} else {
		m.statusMsg = fmt.Sprintf("auto-populated %d posts", len(posts))
	}
	m.state = StateCalendar
}

func (m *Model) submitMoveForm() {
	if err := validation.ValidateDate(m.moveForm.Date); err != nil {
		m.statusMsg = err.Error()
		m.movingID = ""
		m.state = StateCalendar
		return
	}

	_, err := m.store.MovePost(m.movingID, m.moveForm.Date)
	switch {
	case errors.Is(err, storage.ErrPostNotFound):
		m.statusMsg = "post not found"
	case err != nil:
		m.statusMsg = err.Error()
	default:
		m.statusMsg = "post moved"
	}
	m.movingID = ""
	m.dayCursor = 0
	m.state = StateCalendar
}

// submitFilterForm replaces the active-label sets with the picker's
// choices.
func (m *Model) submitFilterForm() {
	ff := m.filterForm
	m.sel.SelectAll(false)
	for _, l := range ff.Events {
		m.sel.Toggle(selection.TaxonomyEvent, l, true)
	}
	for _, l := range ff.Holidays {
		m.sel.Toggle(selection.TaxonomyHoliday, l, true)
	}
	for _, l := range ff.Observances {
		m.sel.Toggle(selection.TaxonomyObservance, l, true)
	}
	m.statusMsg = fmt.Sprintf("%d/%d categories shown", m.sel.SelectedCount(), m.sel.TotalCount())
	m.state = StateCalendar
}

func (m Model) updateConfirmReset(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case "y", "Y":
		if err := m.store.ReplaceAll(nil); err != nil {
			m.statusMsg = err.Error()
		} else {
			m.statusMsg = "calendar cleared"
		}
		m.state = StateCalendar
		m.refresh()
	case "n", "N", "esc":
		m.state = StateCalendar
	}
	return m, nil
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case "y", "Y":
		if _, err := m.store.DeletePost(m.deletingID); err != nil {
			m.statusMsg = err.Error()
		} else {
			m.statusMsg = "post deleted"
		}
		m.deletingID = ""
		m.dayCursor = 0
		m.state = StateDay
		m.refresh()
	case "n", "N", "esc":
		m.state = StateDay
	}
	return m, nil
}
