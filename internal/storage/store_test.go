package storage

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/amslee/postcal/internal/models"
)

// providers builds one fresh, initialized store per backend so every
// Provider behavior is checked against both implementations.
func providers(t *testing.T) map[string]Provider {
	t.Helper()

	jsonStore := NewJSONStoreWithKV(NewMemKV())
	if err := jsonStore.Init(); err != nil {
		t.Fatalf("init json store: %v", err)
	}

	sqliteStore := NewSQLiteStore(filepath.Join(t.TempDir(), "postcal.db"))
	if err := sqliteStore.Init(); err != nil {
		t.Fatalf("init sqlite store: %v", err)
	}
	t.Cleanup(func() { sqliteStore.Close() })

	return map[string]Provider{
		"json":   jsonStore,
		"sqlite": sqliteStore,
	}
}

func TestProvider_AddAndGet(t *testing.T) {
	for name, store := range providers(t) {
		t.Run(name, func(t *testing.T) {
			added, err := store.AddPost(models.ContentItem{
				Date:     "2024-06-10",
				Platform: models.PlatformInstagram,
				Content:  "product teaser",
				PostTime: "09:30",
			})
			if err != nil {
				t.Fatalf("add: %v", err)
			}
			if added.ID == "" {
				t.Fatal("expected generated ID")
			}
			if added.ApprovalStatus != models.StatusDraft {
				t.Errorf("expected draft default, got %s", added.ApprovalStatus)
			}

			got, err := store.GetPost(added.ID)
			if err != nil {
				t.Fatalf("get: %v", err)
			}
			if !reflect.DeepEqual(got, added) {
				t.Errorf("got %+v, want %+v", got, added)
			}
		})
	}
}

func TestProvider_GetMissing(t *testing.T) {
	for name, store := range providers(t) {
		t.Run(name, func(t *testing.T) {
			_, err := store.GetPost("no-such-id")
			if !errors.Is(err, ErrPostNotFound) {
				t.Errorf("expected ErrPostNotFound, got %v", err)
			}
		})
	}
}

func TestProvider_UpdatePost(t *testing.T) {
	for name, store := range providers(t) {
		t.Run(name, func(t *testing.T) {
			added, err := store.AddPost(models.ContentItem{Date: "2024-06-10", Platform: models.PlatformTwitter, Content: "v1"})
			if err != nil {
				t.Fatalf("add: %v", err)
			}

			updated, err := store.UpdatePost(added.ID, models.ContentItem{
				Platform:       models.PlatformLinkedIn,
				Content:        "v2",
				ApprovalStatus: models.StatusApproved,
			})
			if err != nil {
				t.Fatalf("update: %v", err)
			}
			if updated.ID != added.ID {
				t.Errorf("update changed ID: %s -> %s", added.ID, updated.ID)
			}
			if updated.Date != "2024-06-10" {
				t.Errorf("empty patch date should keep stored date, got %s", updated.Date)
			}
			if updated.Platform != models.PlatformLinkedIn || updated.Content != "v2" {
				t.Errorf("fields not updated: %+v", updated)
			}

			got, err := store.GetPost(added.ID)
			if err != nil {
				t.Fatalf("get: %v", err)
			}
			if got.ApprovalStatus != models.StatusApproved {
				t.Errorf("status not persisted, got %s", got.ApprovalStatus)
			}

			if _, err := store.UpdatePost("ghost", models.ContentItem{Content: "x"}); !errors.Is(err, ErrPostNotFound) {
				t.Errorf("expected ErrPostNotFound for unknown id, got %v", err)
			}
		})
	}
}

func TestProvider_DeletePost(t *testing.T) {
	for name, store := range providers(t) {
		t.Run(name, func(t *testing.T) {
			added, err := store.AddPost(models.ContentItem{Date: "2024-06-11", Platform: models.PlatformFacebook})
			if err != nil {
				t.Fatalf("add: %v", err)
			}

			deleted, err := store.DeletePost(added.ID)
			if err != nil {
				t.Fatalf("delete: %v", err)
			}
			if !deleted {
				t.Error("expected delete to report true")
			}

			if _, err := store.GetPost(added.ID); !errors.Is(err, ErrPostNotFound) {
				t.Errorf("deleted post still retrievable: %v", err)
			}

			deleted, err = store.DeletePost(added.ID)
			if err != nil {
				t.Fatalf("second delete: %v", err)
			}
			if deleted {
				t.Error("second delete should report false")
			}
		})
	}
}

func TestProvider_PostsForDate(t *testing.T) {
	for name, store := range providers(t) {
		t.Run(name, func(t *testing.T) {
			for _, p := range []models.ContentItem{
				{Date: "2024-06-10", Platform: models.PlatformInstagram, Content: "first"},
				{Date: "2024-06-11", Platform: models.PlatformTwitter, Content: "other day"},
				{Date: "2024-06-10", Platform: models.PlatformThreads, Content: "second"},
			} {
				if _, err := store.AddPost(p); err != nil {
					t.Fatalf("add: %v", err)
				}
			}

			posts, err := store.PostsForDate("2024-06-10")
			if err != nil {
				t.Fatalf("posts for date: %v", err)
			}
			if len(posts) != 2 {
				t.Fatalf("expected 2 posts, got %d", len(posts))
			}
			// Insertion order is part of the contract.
			if posts[0].Content != "first" || posts[1].Content != "second" {
				t.Errorf("posts out of insertion order: %q, %q", posts[0].Content, posts[1].Content)
			}

			empty, err := store.PostsForDate("2024-06-12")
			if err != nil {
				t.Fatalf("posts for date: %v", err)
			}
			if len(empty) != 0 {
				t.Errorf("expected no posts, got %d", len(empty))
			}
		})
	}
}

func TestProvider_MovePost(t *testing.T) {
	for name, store := range providers(t) {
		t.Run(name, func(t *testing.T) {
			added, err := store.AddPost(models.ContentItem{Date: "2024-06-10", Platform: models.PlatformTikTok, Content: "drag me"})
			if err != nil {
				t.Fatalf("add: %v", err)
			}

			moved, err := store.MovePost(added.ID, "2024-06-20")
			if err != nil {
				t.Fatalf("move: %v", err)
			}
			if moved.Date != "2024-06-20" {
				t.Errorf("expected new date, got %s", moved.Date)
			}
			if moved.Content != "drag me" {
				t.Errorf("move changed content: %q", moved.Content)
			}

			old, err := store.PostsForDate("2024-06-10")
			if err != nil {
				t.Fatalf("posts for date: %v", err)
			}
			if len(old) != 0 {
				t.Errorf("post still on old date")
			}

			if _, err := store.MovePost("ghost", "2024-06-21"); !errors.Is(err, ErrPostNotFound) {
				t.Errorf("expected ErrPostNotFound, got %v", err)
			}
		})
	}
}

func TestProvider_ReplaceMonth(t *testing.T) {
	for name, store := range providers(t) {
		t.Run(name, func(t *testing.T) {
			for _, p := range []models.ContentItem{
				{Date: "2024-06-05", Platform: models.PlatformInstagram, Content: "june old"},
				{Date: "2024-07-05", Platform: models.PlatformTwitter, Content: "july keeps"},
			} {
				if _, err := store.AddPost(p); err != nil {
					t.Fatalf("add: %v", err)
				}
			}

			replacement := []models.ContentItem{
				{ID: models.NewID(), Date: "2024-06-03", Platform: models.PlatformLinkedIn, Content: "june new", ApprovalStatus: models.StatusDraft},
			}
			if err := store.ReplaceMonth(2024, time.June, replacement); err != nil {
				t.Fatalf("replace month: %v", err)
			}

			all, err := store.AllPosts()
			if err != nil {
				t.Fatalf("all posts: %v", err)
			}
			if len(all) != 2 {
				t.Fatalf("expected 2 posts after replace, got %d", len(all))
			}
			contents := map[string]bool{}
			for _, p := range all {
				contents[p.Content] = true
			}
			if contents["june old"] {
				t.Error("old June post survived the replace")
			}
			if !contents["june new"] || !contents["july keeps"] {
				t.Errorf("unexpected posts after replace: %v", contents)
			}
		})
	}
}

func TestProvider_ReplaceAll(t *testing.T) {
	for name, store := range providers(t) {
		t.Run(name, func(t *testing.T) {
			if _, err := store.AddPost(models.ContentItem{Date: "2024-06-05", Platform: models.PlatformThreads}); err != nil {
				t.Fatalf("add: %v", err)
			}
			if err := store.ReplaceAll(nil); err != nil {
				t.Fatalf("replace all: %v", err)
			}
			all, err := store.AllPosts()
			if err != nil {
				t.Fatalf("all posts: %v", err)
			}
			if len(all) != 0 {
				t.Errorf("expected empty store, got %d posts", len(all))
			}
		})
	}
}

func TestJSONStore_PersistsAcrossLoads(t *testing.T) {
	kv := NewMemKV()

	store := NewJSONStoreWithKV(kv)
	if err := store.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	added, err := store.AddPost(models.ContentItem{Date: "2024-06-10", Platform: models.PlatformInstagram, Content: "persisted"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	reopened := NewJSONStoreWithKV(kv)
	if err := reopened.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}
	got, err := reopened.GetPost(added.ID)
	if err != nil {
		t.Fatalf("get after reload: %v", err)
	}
	if !reflect.DeepEqual(got, added) {
		t.Errorf("reloaded post differs: got %+v, want %+v", got, added)
	}
}

func TestJSONStore_InitTwiceFails(t *testing.T) {
	kv := NewMemKV()
	if err := NewJSONStoreWithKV(kv).Init(); err != nil {
		t.Fatalf("first init: %v", err)
	}
	if err := NewJSONStoreWithKV(kv).Init(); err == nil {
		t.Error("second init should fail")
	}
}

func TestJSONStore_LoadWithoutSnapshotYieldsEmpty(t *testing.T) {
	store := NewJSONStoreWithKV(NewMemKV())
	if err := store.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}
	all, err := store.AllPosts()
	if err != nil {
		t.Fatalf("all posts: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("expected empty collection, got %d", len(all))
	}
}

func TestFileKV_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")

	kv, err := NewFileKV(path)
	if err != nil {
		t.Fatalf("new file kv: %v", err)
	}
	if err := kv.Set(SnapshotKey, `[{"id":"x"}]`); err != nil {
		t.Fatalf("set: %v", err)
	}

	reopened, err := NewFileKV(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	v, ok := reopened.Get(SnapshotKey)
	if !ok || v != `[{"id":"x"}]` {
		t.Errorf("got %q (ok=%v)", v, ok)
	}

	if err := reopened.Remove(SnapshotKey); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, ok := reopened.Get(SnapshotKey); ok {
		t.Error("key still present after remove")
	}
}

func TestSQLiteStore_InitTwiceFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "postcal.db")
	store := NewSQLiteStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("first init: %v", err)
	}
	store.Close()

	if err := NewSQLiteStore(path).Init(); err == nil {
		t.Error("second init should fail")
	}
}

func TestSQLiteStore_LoadRequiresInit(t *testing.T) {
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "missing.db"))
	if err := store.Load(); err == nil {
		t.Error("load of uninitialized store should fail")
	}
}
