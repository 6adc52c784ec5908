package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/amslee/postcal/internal/reconcile"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StatePostForm, StatePopulateForm, StateJumpForm, StateMoveForm, StateFilterForm:
		content = m.form.View()
	case StateDay:
		content = m.viewDay()
	case StateConfirmReset:
		content = m.viewConfirm(dangerStyle.Render("Remove every scheduled post?"))
	case StateConfirmDelete:
		content = m.viewConfirm(dangerStyle.Render("Delete this post?"))
	default:
		if m.weekMode {
			content = m.viewWeek()
		} else {
			content = m.viewMonth()
		}
	}

	parts := []string{m.viewTitle(), content}
	if m.statusMsg != "" {
		parts = append(parts, statusStyle.Render(m.statusMsg))
	}
	parts = append(parts, m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) viewTitle() string {
	title := fmt.Sprintf("%s %d", m.month, m.year)
	if m.weekMode {
		title += "  (week view)"
	}
	filters := dimStyle.Render(fmt.Sprintf("  %d/%d categories", m.sel.SelectedCount(), m.sel.TotalCount()))
	return titleStyle.Render(title) + filters
}

func (m Model) viewMonth() string {
	var header []string
	for _, name := range []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"} {
		header = append(header, weekdayStyle.Width(cellWidth(m.width)).Render(name))
	}

	rows := []string{lipgloss.JoinHorizontal(lipgloss.Top, header...)}
	for week := 0; week < 6; week++ {
		var cells []string
		for dow := 0; dow < 7; dow++ {
			i := week*7 + dow
			cells = append(cells, m.renderCell(m.view.Days[i], i == m.cursor))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	if len(m.view.MonthlyObs) > 0 {
		var names []string
		for _, o := range m.view.MonthlyObs {
			names = append(names, o.DisplaySubject())
		}
		rows = append(rows, dimStyle.Render("This month: "+strings.Join(names, ", ")))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) viewWeek() string {
	var cells []string
	for i, day := range m.weekDays {
		label := fmt.Sprintf("%s %d", day.Cell.Weekday.String()[:3], day.Cell.Day)
		body := label + "\n" + m.cellBody(day)
		style := cellStyle
		if i == m.cursor {
			style = selectedCellStyle
		}
		cells = append(cells, style.Width(cellWidth(m.width)).Render(body))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func cellWidth(total int) int {
	if total <= 0 {
		return 12
	}
	w := total/7 - 2
	if w < 8 {
		w = 8
	}
	if w > 18 {
		w = 18
	}
	return w
}

func (m Model) renderCell(day reconcile.DayView, selected bool) string {
	style := cellStyle
	switch {
	case selected:
		style = selectedCellStyle
	case day.Cell.Empty():
		style = emptyCellStyle
	}

	if day.Cell.Empty() {
		return style.Width(cellWidth(m.width)).Render(" ")
	}

	num := fmt.Sprintf("%d", day.Cell.Day)
	if day.Cell.Today {
		num = todayNumStyle.Render(num)
	}
	return style.Width(cellWidth(m.width)).Render(num + "\n" + m.cellBody(day))
}

// cellBody renders the post glyphs and external-item badges for one
// cell.
func (m Model) cellBody(day reconcile.DayView) string {
	var marks []string
	for _, p := range day.Posts {
		marks = append(marks, badgeStyle(reconcile.PlatformColor(p.Platform)).Render(reconcile.PlatformGlyph(p.Platform)))
	}
	for _, item := range day.Items {
		marks = append(marks, badgeStyle(reconcile.CategoryColor(item.Category)).Render("•"))
	}
	if len(marks) == 0 {
		return " "
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, marks...)
}

func (m Model) viewDay() string {
	day := m.selectedDay()
	lines := []string{titleStyle.Render(fmt.Sprintf("%s (%s)", day.Cell.Date, day.Cell.Weekday))}

	if len(day.Posts) == 0 && len(day.Items) == 0 {
		lines = append(lines, dimStyle.Render("nothing scheduled"))
	}
	for i, p := range day.Posts {
		cursor := "  "
		if i == m.dayCursor {
			cursor = "> "
		}
		preview := p.Content
		if preview == "" {
			preview = "New content"
		}
		line := fmt.Sprintf("%s[%s] %s", cursor, p.Platform, preview)
		if p.PostTime != "" {
			line += " @ " + p.PostTime
		}
		line += dimStyle.Render("  " + string(p.ApprovalStatus))
		lines = append(lines, line)
	}
	for _, item := range day.Items {
		detail := item.DisplaySubject()
		if item.Location != "" {
			detail += " - " + item.Location
		}
		lines = append(lines, "  "+badgeStyle(reconcile.CategoryColor(item.Category)).Render(item.DisplayCategory())+" "+detail)
	}

	lines = append(lines, "", dimStyle.Render("a add · e edit · d delete · m move · esc back"))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) viewConfirm(prompt string) string {
	return lipgloss.JoinVertical(lipgloss.Center,
		prompt,
		"",
		"[y] Yes",
		"[n] No",
	)
}
