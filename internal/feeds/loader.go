// Package feeds owns the CSV collaborator boundary: loading the three
// external-item feeds and filtering them against the active category
// selection for a given calendar date.
package feeds

import (
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/amslee/postcal/internal/logger"
	"github.com/amslee/postcal/internal/models"
)

// Start Date layouts accepted from feed files. The original feeds were
// US-formatted exports, so slash and long-month forms appear alongside
// the canonical one.
var startDateLayouts = []string{
	"2006-01-02",
	"1/2/2006",
	"01/02/2006",
	"January 2, 2006",
	"Jan 2, 2006",
}

// ParseStartDate parses a feed Start Date in any accepted layout.
func ParseStartDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range startDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable start date %q", s)
}

// Set holds the three immutable feeds for one load. A failed load
// leaves the corresponding slice empty; the calendar renders without
// those items rather than not at all.
type Set struct {
	Events      []models.ExternalItem
	Holidays    []models.ExternalItem
	Observances []models.ExternalItem
}

// Load reads all three feeds. Individual feed failures degrade to an
// empty slice with a warning; Load itself never fails.
func Load(eventsSrc, holidaysSrc, observancesSrc string) *Set {
	set := &Set{}
	set.Events = loadOne(eventsSrc, models.FeedEvents)
	set.Holidays = loadOne(holidaysSrc, models.FeedHolidays)
	set.Observances = loadOne(observancesSrc, models.FeedObservances)
	return set
}

func loadOne(src string, kind models.FeedKind) []models.ExternalItem {
	if src == "" {
		return nil
	}
	items, err := LoadFeed(src)
	if err != nil {
		logger.Warn("feed unavailable, continuing without it", "feed", string(kind), "source", src, "err", err)
		return nil
	}
	logger.Debug("feed loaded", "feed", string(kind), "records", len(items))
	return items
}

// LoadFeed reads one CSV feed from a file path or http(s) URL and maps
// its header-named columns onto ExternalItems.
func LoadFeed(src string) ([]models.ExternalItem, error) {
	r, err := open(src)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return parseCSV(r)
}

func open(src string) (io.ReadCloser, error) {
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		resp, err := http.Get(src)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch feed: %w", err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("failed to fetch feed: status %d", resp.StatusCode)
		}
		return resp.Body, nil
	}

	f, err := os.Open(src)
	if err != nil {
		return nil, fmt.Errorf("failed to open feed: %w", err)
	}
	return f, nil
}

func parseCSV(r io.Reader) ([]models.ExternalItem, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // ragged exports are common, tolerate them

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read feed header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, h := range header {
		col[strings.TrimSpace(h)] = i
	}

	field := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var items []models.ExternalItem
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// One malformed row must not abort the rest of the feed.
			logger.Warn("skipping malformed feed row", "err", err)
			continue
		}
		items = append(items, models.ExternalItem{
			Subject:     field(row, "Subject"),
			Category:    field(row, "Category"),
			Subcategory: field(row, "Subcategory"),
			StartDate:   field(row, "Start Date"),
			EndDate:     field(row, "End Date"),
			Location:    field(row, "Location"),
			Notes:       field(row, "Notes"),
			Description: field(row, "Description"),
			URL:         field(row, "URL"),
		})
	}
	return items, nil
}
