// Package planner implements the auto-populate distributor: selecting
// which days of a month receive an auto-generated post placeholder and
// applying the result to the content store as a full-month replace.
package planner

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/amslee/postcal/internal/calendar"
	"github.com/amslee/postcal/internal/models"
	"github.com/amslee/postcal/internal/storage"
)

type Distribution string

const (
	DistributionEven        Distribution = "even"
	DistributionFrontLoaded Distribution = "front-loaded"
	DistributionBackLoaded  Distribution = "back-loaded"
)

// PlatformPolicy decides what platform auto-generated posts get.
type PlatformPolicy struct {
	Random bool
	Fixed  models.Platform
}

// DefaultPlatformPolicy assigns a uniform-random platform per post.
var DefaultPlatformPolicy = PlatformPolicy{Random: true}

const autoContent = "Auto-generated content"

type Options struct {
	Year  int
	Month time.Month

	// PostsPerWeek is informational only; the distribution policies do
	// not enforce it as a hard constraint.
	PostsPerWeek  int
	TotalPosts    int
	AllowWeekends bool
	Distribution  Distribution
	Platform      PlatformPolicy
}

// AvailableDays returns the candidate day numbers 1..daysInMonth,
// excluding Saturdays and Sundays unless allowWeekends is set.
func AvailableDays(year int, month time.Month, allowWeekends bool) []int {
	days := calendar.DaysIn(year, month)
	var out []int
	for day := 1; day <= days; day++ {
		wd := time.Date(year, month, day, 0, 0, 0, 0, time.Local).Weekday()
		if !allowWeekends && (wd == time.Saturday || wd == time.Sunday) {
			continue
		}
		out = append(out, day)
	}
	return out
}

// SelectDays picks total days from the candidates under the given
// policy. Requests beyond the candidate count degrade to all
// candidates; for the even policy the total is clamped first so the
// stride is never zero.
func SelectDays(available []int, total int, dist Distribution) []int {
	if total <= 0 || len(available) == 0 {
		return nil
	}
	if total > len(available) {
		total = len(available)
	}

	switch dist {
	case DistributionFrontLoaded:
		return append([]int(nil), available[:total]...)
	case DistributionBackLoaded:
		return append([]int(nil), available[len(available)-total:]...)
	default:
		interval := len(available) / total
		var out []int
		for i := 0; i < len(available) && len(out) < total; i += interval {
			out = append(out, available[i])
		}
		return out
	}
}

// Build constructs the placeholder posts for the selected days. IDs
// are assigned here so the result can be stored as-is.
func Build(opts Options) []models.ContentItem {
	available := AvailableDays(opts.Year, opts.Month, opts.AllowWeekends)
	days := SelectDays(available, opts.TotalPosts, opts.Distribution)

	posts := make([]models.ContentItem, 0, len(days))
	for _, day := range days {
		posts = append(posts, models.ContentItem{
			ID:             models.NewID(),
			Date:           calendar.DateKey(opts.Year, opts.Month, day),
			Platform:       pickPlatform(opts.Platform),
			Content:        autoContent,
			ApprovalStatus: models.StatusDraft,
		})
	}
	return posts
}

func pickPlatform(policy PlatformPolicy) models.Platform {
	if policy.Random {
		all := models.Platforms()
		return all[rand.Intn(len(all))]
	}
	if policy.Fixed != "" {
		return policy.Fixed
	}
	return models.PlatformAutoPopulated
}

// Apply clears the target month's existing posts and inserts the
// generated placeholders in one persisted step. A non-positive
// TotalPosts still clears the month.
func Apply(store storage.Provider, opts Options) ([]models.ContentItem, error) {
	if opts.Distribution == "" {
		opts.Distribution = DistributionEven
	}
	if !opts.Platform.Random && opts.Platform.Fixed != "" && !models.ValidPlatform(opts.Platform.Fixed) {
		return nil, fmt.Errorf("invalid platform %q", opts.Platform.Fixed)
	}

	posts := Build(opts)
	if err := store.ReplaceMonth(opts.Year, opts.Month, posts); err != nil {
		return nil, err
	}
	return posts, nil
}
