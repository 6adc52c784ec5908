// Package migration copies the post collection between store backends,
// so a calendar started on the JSON store can move to SQLite and back.
package migration

import (
	"fmt"

	"github.com/amslee/postcal/internal/storage"
)

// Migrate initializes the destination store and copies every post from
// the source into it in insertion order. The destination must not
// already exist; the source is left untouched.
func Migrate(src, dst storage.Provider) (int, error) {
	if err := src.Load(); err != nil {
		return 0, fmt.Errorf("failed to open source store: %w", err)
	}
	posts, err := src.AllPosts()
	if err != nil {
		return 0, fmt.Errorf("failed to read source store: %w", err)
	}

	if err := dst.Init(); err != nil {
		return 0, err
	}
	if err := dst.ReplaceAll(posts); err != nil {
		return 0, fmt.Errorf("failed to write destination store: %w", err)
	}
	return len(posts), nil
}
