package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Platform string

const (
	PlatformFacebook  Platform = "facebook"
	PlatformInstagram Platform = "instagram"
	PlatformTwitter   Platform = "twitter"
	PlatformLinkedIn  Platform = "linkedin"
	PlatformTikTok    Platform = "tiktok"
	PlatformThreads   Platform = "threads"

	// PlatformAutoPopulated marks a placeholder whose platform has not
	// been assigned yet.
	PlatformAutoPopulated Platform = "auto-populated"
)

// Platforms lists the assignable platforms, excluding the
// auto-populated sentinel.
func Platforms() []Platform {
	return []Platform{
		PlatformFacebook,
		PlatformInstagram,
		PlatformTwitter,
		PlatformLinkedIn,
		PlatformTikTok,
		PlatformThreads,
	}
}

// ValidPlatform reports whether p is an assignable platform or the
// auto-populated sentinel.
func ValidPlatform(p Platform) bool {
	if p == PlatformAutoPopulated {
		return true
	}
	for _, known := range Platforms() {
		if p == known {
			return true
		}
	}
	return false
}

type ApprovalStatus string

const (
	StatusDraft     ApprovalStatus = "Draft"
	StatusInReview  ApprovalStatus = "In Review"
	StatusApproved  ApprovalStatus = "Approved"
	StatusScheduled ApprovalStatus = "Scheduled"
	StatusPublished ApprovalStatus = "Published"
)

// ContentItem is a user-authored or auto-generated post draft bound to
// one calendar date. Date is the sole bucketing key and always uses the
// zero-padded YYYY-MM-DD form.
type ContentItem struct {
	ID             string         `json:"id"`
	Date           string         `json:"date"`
	Platform       Platform       `json:"platform"`
	Content        string         `json:"content"`
	Description    string         `json:"description,omitempty"`
	PostTime       string         `json:"post_time,omitempty"` // HH:MM
	ApprovalStatus ApprovalStatus `json:"approval_status"`
}

// NewID returns a fresh content item ID. The millisecond prefix keeps
// IDs roughly sortable by creation time; the uuid suffix avoids
// collisions when auto-populate creates many items within one instant.
func NewID() string {
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), uuid.New().String()[:8])
}
