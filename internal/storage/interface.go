package storage

import (
	"errors"
	"time"

	"github.com/amslee/postcal/internal/models"
)

// ErrPostNotFound is returned by operations that reference an unknown
// post ID. Callers treat it as a no-op signal, never a crash.
var ErrPostNotFound = errors.New("post not found")

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Posts
	AddPost(post models.ContentItem) (models.ContentItem, error)
	GetPost(id string) (models.ContentItem, error)
	AllPosts() ([]models.ContentItem, error)
	UpdatePost(id string, post models.ContentItem) (models.ContentItem, error)
	DeletePost(id string) (bool, error)
	PostsForDate(date string) ([]models.ContentItem, error)
	MovePost(id, newDate string) (models.ContentItem, error)

	// Bulk
	ReplaceAll(posts []models.ContentItem) error
	ReplaceMonth(year int, month time.Month, posts []models.ContentItem) error

	// Utils
	GetConfigPath() string
}
