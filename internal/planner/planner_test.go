package planner

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/amslee/postcal/internal/models"
	"github.com/amslee/postcal/internal/storage"
)

func rangeDays(from, to int) []int {
	var out []int
	for d := from; d <= to; d++ {
		out = append(out, d)
	}
	return out
}

func TestSelectDays(t *testing.T) {
	tests := []struct {
		name      string
		available []int
		total     int
		dist      Distribution
		want      []int
	}{
		{"even spreads with floor stride", rangeDays(1, 28), 4, DistributionEven, []int{1, 8, 15, 22}},
		{"front takes first n", rangeDays(1, 28), 4, DistributionFrontLoaded, []int{1, 2, 3, 4}},
		{"back takes last n", rangeDays(1, 28), 4, DistributionBackLoaded, []int{25, 26, 27, 28}},
		{"even uneven stride", rangeDays(1, 10), 3, DistributionEven, []int{1, 4, 7}},
		{"even single", rangeDays(1, 28), 1, DistributionEven, []int{1}},
		{"total exceeds candidates", []int{3, 4, 5}, 10, DistributionEven, []int{3, 4, 5}},
		{"total exceeds candidates front", []int{3, 4, 5}, 10, DistributionFrontLoaded, []int{3, 4, 5}},
		{"zero total", rangeDays(1, 28), 0, DistributionEven, nil},
		{"negative total", rangeDays(1, 28), -2, DistributionBackLoaded, nil},
		{"no candidates", nil, 5, DistributionEven, nil},
		{"default policy is even", rangeDays(1, 28), 4, "", []int{1, 8, 15, 22}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SelectDays(tt.available, tt.total, tt.dist)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SelectDays() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSelectDays_DoesNotMutateInput(t *testing.T) {
	available := rangeDays(1, 10)
	before := append([]int(nil), available...)
	SelectDays(available, 3, DistributionFrontLoaded)
	if !reflect.DeepEqual(available, before) {
		t.Errorf("candidate slice mutated: %v", available)
	}
}

func TestAvailableDays(t *testing.T) {
	// March 2025 starts on a Saturday with 31 days.
	t.Run("weekdays only", func(t *testing.T) {
		days := AvailableDays(2025, time.March, false)
		if len(days) != 21 {
			t.Fatalf("expected 21 weekdays, got %d", len(days))
		}
		if days[0] != 3 {
			t.Errorf("first weekday should be Monday the 3rd, got %d", days[0])
		}
		for _, d := range days {
			wd := time.Date(2025, time.March, d, 0, 0, 0, 0, time.Local).Weekday()
			if wd == time.Saturday || wd == time.Sunday {
				t.Errorf("day %d is a weekend day (%s)", d, wd)
			}
		}
	})

	t.Run("weekends included", func(t *testing.T) {
		days := AvailableDays(2025, time.March, true)
		if len(days) != 31 {
			t.Fatalf("expected all 31 days, got %d", len(days))
		}
		if days[0] != 1 || days[30] != 31 {
			t.Errorf("expected 1..31, got %d..%d", days[0], days[30])
		}
	})
}

func TestBuild(t *testing.T) {
	opts := Options{
		Year:          2024,
		Month:         time.June,
		TotalPosts:    5,
		AllowWeekends: true,
		Distribution:  DistributionEven,
		Platform:      PlatformPolicy{Fixed: models.PlatformInstagram},
	}
	posts := Build(opts)

	if len(posts) != 5 {
		t.Fatalf("expected 5 posts, got %d", len(posts))
	}

	seen := make(map[string]bool)
	for _, p := range posts {
		if p.ID == "" {
			t.Error("post has no ID")
		}
		if seen[p.ID] {
			t.Errorf("duplicate ID %s", p.ID)
		}
		seen[p.ID] = true
		if !strings.HasPrefix(p.Date, "2024-06-") {
			t.Errorf("post dated outside the month: %s", p.Date)
		}
		if p.Platform != models.PlatformInstagram {
			t.Errorf("expected fixed platform, got %s", p.Platform)
		}
		if p.Content != autoContent {
			t.Errorf("unexpected content %q", p.Content)
		}
		if p.ApprovalStatus != models.StatusDraft {
			t.Errorf("expected draft status, got %s", p.ApprovalStatus)
		}
	}
}

func TestPickPlatform(t *testing.T) {
	t.Run("random stays within known platforms", func(t *testing.T) {
		for i := 0; i < 50; i++ {
			p := pickPlatform(PlatformPolicy{Random: true})
			if !models.ValidPlatform(p) {
				t.Fatalf("random pick produced unknown platform %q", p)
			}
		}
	})

	t.Run("fixed wins", func(t *testing.T) {
		if p := pickPlatform(PlatformPolicy{Fixed: models.PlatformTikTok}); p != models.PlatformTikTok {
			t.Errorf("expected tiktok, got %s", p)
		}
	})

	t.Run("empty policy falls back to sentinel", func(t *testing.T) {
		if p := pickPlatform(PlatformPolicy{}); p != models.PlatformAutoPopulated {
			t.Errorf("expected sentinel platform, got %s", p)
		}
	})
}

func newTestStore(t *testing.T) storage.Provider {
	t.Helper()
	store := storage.NewJSONStoreWithKV(storage.NewMemKV())
	if err := store.Init(); err != nil {
		t.Fatalf("init store: %v", err)
	}
	return store
}

func TestApply_ReplacesMonth(t *testing.T) {
	store := newTestStore(t)

	manual := models.ContentItem{Date: "2024-06-10", Platform: models.PlatformTwitter, Content: "launch thread"}
	if _, err := store.AddPost(manual); err != nil {
		t.Fatalf("seed post: %v", err)
	}
	other := models.ContentItem{Date: "2024-07-01", Platform: models.PlatformFacebook, Content: "outside target month"}
	kept, err := store.AddPost(other)
	if err != nil {
		t.Fatalf("seed post: %v", err)
	}

	posts, err := Apply(store, Options{
		Year:          2024,
		Month:         time.June,
		TotalPosts:    4,
		AllowWeekends: true,
		Platform:      PlatformPolicy{Fixed: models.PlatformLinkedIn},
	})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if len(posts) != 4 {
		t.Fatalf("expected 4 generated posts, got %d", len(posts))
	}

	all, err := store.AllPosts()
	if err != nil {
		t.Fatalf("all posts: %v", err)
	}
	if len(all) != 5 {
		t.Fatalf("expected 4 generated + 1 untouched post, got %d", len(all))
	}
	for _, p := range all {
		if strings.HasPrefix(p.Date, "2024-06-") && p.Content == "launch thread" {
			t.Error("manual June post survived the replace")
		}
	}
	if _, err := store.GetPost(kept.ID); err != nil {
		t.Errorf("July post should be untouched: %v", err)
	}
}

func TestApply_ZeroTotalClearsMonth(t *testing.T) {
	store := newTestStore(t)
	if _, err := store.AddPost(models.ContentItem{Date: "2024-06-05", Platform: models.PlatformThreads}); err != nil {
		t.Fatalf("seed post: %v", err)
	}

	posts, err := Apply(store, Options{Year: 2024, Month: time.June, TotalPosts: 0})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if len(posts) != 0 {
		t.Errorf("expected no generated posts, got %d", len(posts))
	}

	all, err := store.AllPosts()
	if err != nil {
		t.Fatalf("all posts: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("month should be cleared, found %d posts", len(all))
	}
}

func TestApply_RejectsUnknownFixedPlatform(t *testing.T) {
	store := newTestStore(t)
	_, err := Apply(store, Options{
		Year:       2024,
		Month:      time.June,
		TotalPosts: 2,
		Platform:   PlatformPolicy{Fixed: "myspace"},
	})
	if err == nil {
		t.Fatal("expected error for unknown platform")
	}
}
