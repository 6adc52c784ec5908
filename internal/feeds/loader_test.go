package feeds

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFeed(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "feed.csv")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("write feed: %v", err)
	}
	return path
}

func TestParseStartDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"2024-03-16", "2024-03-16", true},
		{"3/16/2024", "2024-03-16", true},
		{"03/16/2024", "2024-03-16", true},
		{"March 16, 2024", "2024-03-16", true},
		{"Mar 16, 2024", "2024-03-16", true},
		{" 2024-03-16 ", "2024-03-16", true},
		{"16.03.2024", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseStartDate(tt.in)
			if tt.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tt.ok {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if got.Format("2006-01-02") != tt.want {
				t.Errorf("got %s, want %s", got.Format("2006-01-02"), tt.want)
			}
		})
	}
}

func TestLoadFeed(t *testing.T) {
	path := writeFeed(t, strings.Join([]string{
		"Subject,Category,Subcategory,Start Date,End Date,Location,Description",
		"Spring Sale,Promotion,Retail,2024-03-16,2024-03-20,Online,Big discount",
		" Trimmed , Event ,,2024-04-01,,,",
	}, "\n"))

	items, err := LoadFeed(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 records, got %d", len(items))
	}

	first := items[0]
	if first.Subject != "Spring Sale" || first.Category != "Promotion" || first.StartDate != "2024-03-16" {
		t.Errorf("unexpected record: %+v", first)
	}
	if first.Location != "Online" || first.Description != "Big discount" {
		t.Errorf("unexpected record: %+v", first)
	}

	if items[1].Subject != "Trimmed" || items[1].Category != "Event" {
		t.Errorf("fields not trimmed: %+v", items[1])
	}
}

func TestLoadFeed_RaggedRows(t *testing.T) {
	path := writeFeed(t, strings.Join([]string{
		"Subject,Category,Start Date",
		"Short Row,Event",
		"Full Row,Event,2024-05-01",
	}, "\n"))

	items, err := LoadFeed(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 records, got %d", len(items))
	}
	if items[0].StartDate != "" {
		t.Errorf("missing column should yield empty field, got %q", items[0].StartDate)
	}
	if items[1].StartDate != "2024-05-01" {
		t.Errorf("got %q", items[1].StartDate)
	}
}

func TestLoadFeed_MissingColumns(t *testing.T) {
	path := writeFeed(t, strings.Join([]string{
		"Subject,Start Date",
		"No Category Here,2024-05-01",
	}, "\n"))

	items, err := LoadFeed(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if items[0].Category != "" {
		t.Errorf("absent header should map to empty field, got %q", items[0].Category)
	}
}

func TestLoadFeed_MissingFile(t *testing.T) {
	if _, err := LoadFeed(filepath.Join(t.TempDir(), "nope.csv")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoad_DegradesPerFeed(t *testing.T) {
	good := writeFeed(t, "Subject,Category,Start Date\nLaunch,Event,2024-03-16\n")

	set := Load(good, filepath.Join(t.TempDir(), "missing.csv"), "")
	if len(set.Events) != 1 {
		t.Errorf("expected 1 event, got %d", len(set.Events))
	}
	if len(set.Holidays) != 0 {
		t.Errorf("failed feed should be empty, got %d", len(set.Holidays))
	}
	if len(set.Observances) != 0 {
		t.Errorf("blank source should be empty, got %d", len(set.Observances))
	}
}
