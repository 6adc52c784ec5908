package storage

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/amslee/postcal/internal/models"
)

// SnapshotKey is the KV key holding the serialized post collection.
const SnapshotKey = "contentCalendar"

// JSONStore keeps the whole post collection in memory as an ordered
// slice and re-serializes it through the KV store after every
// mutation. Insertion order is preserved so per-date listings are
// stable.
type JSONStore struct {
	path  string
	kv    KV
	posts []models.ContentItem
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

// NewJSONStoreWithKV builds a store over an explicit KV backend.
// Tests use this with MemKV.
func NewJSONStoreWithKV(kv KV) *JSONStore {
	return &JSONStore{kv: kv}
}

func (s *JSONStore) Init() error {
	if err := s.openKV(); err != nil {
		return err
	}
	if _, ok := s.kv.Get(SnapshotKey); ok {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}
	s.posts = []models.ContentItem{}
	return s.persist()
}

// Load deserializes the collection snapshot. An absent or empty stored
// value yields an empty collection rather than an error.
func (s *JSONStore) Load() error {
	if err := s.openKV(); err != nil {
		return err
	}

	raw, ok := s.kv.Get(SnapshotKey)
	if !ok || raw == "" {
		s.posts = []models.ContentItem{}
		return nil
	}
	var posts []models.ContentItem
	if err := json.Unmarshal([]byte(raw), &posts); err != nil {
		return fmt.Errorf("failed to parse post collection: %w", err)
	}
	s.posts = posts
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) openKV() error {
	if s.kv != nil {
		return nil
	}
	kv, err := NewFileKV(s.path)
	if err != nil {
		return err
	}
	s.kv = kv
	return nil
}

func (s *JSONStore) persist() error {
	data, err := json.Marshal(s.posts)
	if err != nil {
		return fmt.Errorf("failed to serialize post collection: %w", err)
	}
	return s.kv.Set(SnapshotKey, string(data))
}

func (s *JSONStore) loaded() error {
	if s.posts == nil {
		return fmt.Errorf("storage not loaded")
	}
	return nil
}

func (s *JSONStore) AddPost(post models.ContentItem) (models.ContentItem, error) {
	if err := s.loaded(); err != nil {
		return models.ContentItem{}, err
	}

	if post.ID == "" {
		post.ID = models.NewID()
	}
	if post.ApprovalStatus == "" {
		post.ApprovalStatus = models.StatusDraft
	}
	s.posts = append(s.posts, post)
	if err := s.persist(); err != nil {
		return models.ContentItem{}, err
	}
	return post, nil
}

func (s *JSONStore) GetPost(id string) (models.ContentItem, error) {
	if err := s.loaded(); err != nil {
		return models.ContentItem{}, err
	}

	for _, p := range s.posts {
		if p.ID == id {
			return p, nil
		}
	}
	return models.ContentItem{}, ErrPostNotFound
}

func (s *JSONStore) AllPosts() ([]models.ContentItem, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}

	posts := make([]models.ContentItem, len(s.posts))
	copy(posts, s.posts)
	return posts, nil
}

// UpdatePost overwrites the editable fields of the post with the given
// ID. The ID itself is always retained; the stored date changes only
// when the patch carries one.
func (s *JSONStore) UpdatePost(id string, post models.ContentItem) (models.ContentItem, error) {
	if err := s.loaded(); err != nil {
		return models.ContentItem{}, err
	}

	for i, p := range s.posts {
		if p.ID != id {
			continue
		}
		post.ID = id
		if post.Date == "" {
			post.Date = p.Date
		}
		if post.ApprovalStatus == "" {
			post.ApprovalStatus = models.StatusDraft
		}
		s.posts[i] = post
		if err := s.persist(); err != nil {
			return models.ContentItem{}, err
		}
		return post, nil
	}
	return models.ContentItem{}, ErrPostNotFound
}

func (s *JSONStore) DeletePost(id string) (bool, error) {
	if err := s.loaded(); err != nil {
		return false, err
	}

	for i, p := range s.posts {
		if p.ID == id {
			s.posts = append(s.posts[:i], s.posts[i+1:]...)
			if err := s.persist(); err != nil {
				return false, err
			}
			return true, nil
		}
	}
	return false, nil
}

func (s *JSONStore) PostsForDate(date string) ([]models.ContentItem, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}

	var posts []models.ContentItem
	for _, p := range s.posts {
		if p.Date == date {
			posts = append(posts, p)
		}
	}
	return posts, nil
}

// MovePost rebinds a post to a new date in a single persisted step,
// the explicit replacement for drag-and-drop between day cells.
func (s *JSONStore) MovePost(id, newDate string) (models.ContentItem, error) {
	if err := s.loaded(); err != nil {
		return models.ContentItem{}, err
	}

	for i, p := range s.posts {
		if p.ID == id {
			p.Date = newDate
			s.posts[i] = p
			if err := s.persist(); err != nil {
				return models.ContentItem{}, err
			}
			return p, nil
		}
	}
	return models.ContentItem{}, ErrPostNotFound
}

func (s *JSONStore) ReplaceAll(posts []models.ContentItem) error {
	if err := s.loaded(); err != nil {
		return err
	}

	s.posts = make([]models.ContentItem, len(posts))
	copy(s.posts, posts)
	return s.persist()
}

// ReplaceMonth drops every post dated within the target month and
// appends the replacements, persisting once so no partial state is
// observable.
func (s *JSONStore) ReplaceMonth(year int, month time.Month, posts []models.ContentItem) error {
	if err := s.loaded(); err != nil {
		return err
	}

	prefix := fmt.Sprintf("%04d-%02d-", year, int(month))
	kept := s.posts[:0:0]
	for _, p := range s.posts {
		if !strings.HasPrefix(p.Date, prefix) {
			kept = append(kept, p)
		}
	}
	s.posts = append(kept, posts...)
	return s.persist()
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
