// Package validation checks user-supplied content item fields before
// they reach the store.
package validation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/amslee/postcal/internal/calendar"
	"github.com/amslee/postcal/internal/models"
)

// ValidateDate checks a canonical YYYY-MM-DD date key.
func ValidateDate(date string) error {
	if _, err := calendar.ParseDate(date); err != nil {
		return err
	}
	return nil
}

// ValidatePostTime checks an optional HH:MM time of day. Empty is
// allowed.
func ValidatePostTime(postTime string) error {
	if postTime == "" {
		return nil
	}
	parts := strings.Split(postTime, ":")
	if len(parts) != 2 {
		return fmt.Errorf("invalid post time %q: expected HH:MM", postTime)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return fmt.Errorf("invalid hour in post time %q", postTime)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return fmt.Errorf("invalid minute in post time %q", postTime)
	}
	return nil
}

// ValidatePost checks the fields of a content item that user input can
// set.
func ValidatePost(post models.ContentItem) error {
	if err := ValidateDate(post.Date); err != nil {
		return err
	}
	if post.Platform != "" && !models.ValidPlatform(post.Platform) {
		return fmt.Errorf("invalid platform %q", post.Platform)
	}
	if err := ValidatePostTime(post.PostTime); err != nil {
		return err
	}
	return nil
}
