// Package exporter renders scheduled posts as an iCalendar file so the
// plan can be loaded into an external calendar app.
package exporter

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/amslee/postcal/internal/calendar"
	"github.com/amslee/postcal/internal/models"
)

const productID = "-//postcal//content calendar//EN"

// WriteICS writes the posts as all-day VEVENTs. Posts with an
// unparseable date are skipped; a post with a PostTime gets a timed
// event instead of an all-day one.
func WriteICS(w io.Writer, name string, posts []models.ContentItem) error {
	fmt.Fprintln(w, "BEGIN:VCALENDAR")
	fmt.Fprintln(w, "VERSION:2.0")
	fmt.Fprintf(w, "PRODID:%s\n", productID)
	fmt.Fprintf(w, "X-WR-CALNAME:%s\n", name)
	fmt.Fprintln(w, "CALSCALE:GREGORIAN")

	stamp := time.Now().UTC().Format("20060102T150405Z")
	for _, post := range posts {
		date, err := calendar.ParseDate(post.Date)
		if err != nil {
			continue
		}

		fmt.Fprintln(w, "BEGIN:VEVENT")
		fmt.Fprintf(w, "UID:%s@postcal\n", post.ID)
		fmt.Fprintf(w, "DTSTAMP:%s\n", stamp)

		if start, ok := timedStart(date, post.PostTime); ok {
			fmt.Fprintf(w, "DTSTART:%s\n", start.Format("20060102T150405"))
			fmt.Fprintf(w, "DTEND:%s\n", start.Add(30*time.Minute).Format("20060102T150405"))
		} else {
			fmt.Fprintf(w, "DTSTART;VALUE=DATE:%s\n", date.Format("20060102"))
			fmt.Fprintf(w, "DTEND;VALUE=DATE:%s\n", date.AddDate(0, 0, 1).Format("20060102"))
		}

		fmt.Fprintf(w, "SUMMARY:%s\n", escapeText(summary(post)))
		if post.Description != "" {
			fmt.Fprintf(w, "DESCRIPTION:%s\n", escapeText(post.Description))
		}
		fmt.Fprintf(w, "CATEGORIES:%s\n", escapeText(string(post.Platform)))
		fmt.Fprintln(w, "END:VEVENT")
	}

	fmt.Fprintln(w, "END:VCALENDAR")
	return nil
}

func summary(post models.ContentItem) string {
	text := post.Content
	if text == "" {
		text = "New content"
	}
	words := strings.Fields(text)
	if len(words) > 10 {
		text = strings.Join(words[:10], " ") + "..."
	}
	return fmt.Sprintf("[%s] %s", post.Platform, text)
}

func timedStart(date time.Time, postTime string) (time.Time, bool) {
	t, err := time.Parse("15:04", postTime)
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, time.Local), true
}

func escapeText(s string) string {
	r := strings.NewReplacer("\\", "\\\\", ";", "\\;", ",", "\\,", "\n", "\\n")
	return r.Replace(s)
}
