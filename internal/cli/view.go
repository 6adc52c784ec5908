package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/amslee/postcal/internal/calendar"
	"github.com/amslee/postcal/internal/reconcile"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	todayStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

type DayCmd struct {
	Date string `arg:"" optional:"" help:"Date (YYYY-MM-DD), defaults to today."`
}

func (c *DayCmd) Run(ctx *Context) error {
	if err := ctx.loadStore(); err != nil {
		return err
	}

	date := c.Date
	if date == "" {
		date = time.Now().Format(calendar.DateLayout)
	}

	set, sel := ctx.Feeds()
	view, err := reconcile.Day(date, ctx.Store, set, sel)
	if err != nil {
		return err
	}

	fmt.Println(headerStyle.Render(fmt.Sprintf("%s (%s)", view.Cell.Date, view.Cell.Weekday)))
	printDay(view)
	return nil
}

func printDay(view reconcile.DayView) {
	if len(view.Posts) == 0 && len(view.Items) == 0 {
		fmt.Println(dimStyle.Render("  nothing scheduled"))
		return
	}
	for _, p := range view.Posts {
		line := fmt.Sprintf("  [%s] %s", p.Platform, preview(p.Content))
		if p.PostTime != "" {
			line += " @ " + p.PostTime
		}
		line += dimStyle.Render(fmt.Sprintf("  (%s, %s)", p.ApprovalStatus, p.ID))
		fmt.Println(line)
	}
	for _, item := range view.Items {
		fmt.Printf("  * %s %s\n", item.DisplaySubject(), dimStyle.Render("["+item.DisplayCategory()+"]"))
	}
}

func preview(content string) string {
	if content == "" {
		return "New content"
	}
	words := strings.Fields(content)
	if len(words) > 10 {
		return strings.Join(words[:10], " ") + "..."
	}
	return content
}

type WeekCmd struct {
	Date string `arg:"" optional:"" help:"Any date within the week, defaults to today."`
}

func (c *WeekCmd) Run(ctx *Context) error {
	if err := ctx.loadStore(); err != nil {
		return err
	}

	anchor := c.Date
	if anchor == "" {
		anchor = time.Now().Format(calendar.DateLayout)
	}

	set, sel := ctx.Feeds()
	days, err := reconcile.Week(anchor, ctx.Store, set, sel)
	if err != nil {
		return err
	}

	for _, view := range days {
		name := view.Cell.Weekday.String()[:3]
		header := fmt.Sprintf("%s %s", name, view.Cell.Date)
		if view.Cell.Today {
			fmt.Println(todayStyle.Render(header))
		} else {
			fmt.Println(headerStyle.Render(header))
		}
		printDay(view)
	}
	return nil
}

type MonthCmd struct {
	Month string `arg:"" optional:"" help:"Month (YYYY-MM), defaults to the current month."`
}

func (c *MonthCmd) Run(ctx *Context) error {
	if err := ctx.loadStore(); err != nil {
		return err
	}

	year, month, err := parseMonthArg(c.Month)
	if err != nil {
		return err
	}

	set, sel := ctx.Feeds()
	view, err := reconcile.Month(year, month, ctx.Store, set, sel)
	if err != nil {
		return err
	}

	fmt.Println(headerStyle.Render(fmt.Sprintf("%s %d", month, year)))
	for _, day := range view.Days {
		if day.Cell.Empty() || (len(day.Posts) == 0 && len(day.Items) == 0) {
			continue
		}
		fmt.Println(headerStyle.Render(day.Cell.Date))
		printDay(day)
	}

	if len(view.MonthlyObs) > 0 {
		fmt.Println(headerStyle.Render("Monthly observances"))
		for _, o := range view.MonthlyObs {
			fmt.Printf("  %s\n", o.DisplaySubject())
		}
	}
	return nil
}

func parseMonthArg(s string) (int, time.Month, error) {
	if s == "" {
		now := time.Now()
		return now.Year(), now.Month(), nil
	}
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month %q: expected YYYY-MM", s)
	}
	return t.Year(), t.Month(), nil
}
