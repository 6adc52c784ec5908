package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/amslee/postcal/internal/models"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS posts (
	id TEXT PRIMARY KEY,
	date TEXT NOT NULL,
	platform TEXT NOT NULL,
	content TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	post_time TEXT NOT NULL DEFAULT '',
	approval_status TEXT NOT NULL DEFAULT 'Draft',
	position INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_posts_date ON posts(date);
`

// SQLiteStore implements Provider over a SQLite file. The position
// column preserves insertion order so listings match the JSON store.
type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

func (s *SQLiteStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'postcal init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to verify schema: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) nextPosition(tx *sql.Tx) (int, error) {
	var pos sql.NullInt64
	if err := tx.QueryRow("SELECT MAX(position) FROM posts").Scan(&pos); err != nil {
		return 0, err
	}
	return int(pos.Int64) + 1, nil
}

func (s *SQLiteStore) AddPost(post models.ContentItem) (models.ContentItem, error) {
	if post.ID == "" {
		post.ID = models.NewID()
	}
	if post.ApprovalStatus == "" {
		post.ApprovalStatus = models.StatusDraft
	}

	tx, err := s.db.Begin()
	if err != nil {
		return models.ContentItem{}, err
	}
	defer tx.Rollback()

	pos, err := s.nextPosition(tx)
	if err != nil {
		return models.ContentItem{}, err
	}

	_, err = tx.Exec(`
		INSERT INTO posts (id, date, platform, content, description, post_time, approval_status, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		post.ID, post.Date, post.Platform, post.Content, post.Description, post.PostTime, post.ApprovalStatus, pos,
	)
	if err != nil {
		return models.ContentItem{}, err
	}
	if err := tx.Commit(); err != nil {
		return models.ContentItem{}, err
	}
	return post, nil
}

func (s *SQLiteStore) GetPost(id string) (models.ContentItem, error) {
	row := s.db.QueryRow(`
		SELECT id, date, platform, content, description, post_time, approval_status
		FROM posts WHERE id = ?`, id)

	post, err := scanPost(row)
	if err == sql.ErrNoRows {
		return models.ContentItem{}, ErrPostNotFound
	}
	if err != nil {
		return models.ContentItem{}, err
	}
	return post, nil
}

func (s *SQLiteStore) AllPosts() ([]models.ContentItem, error) {
	rows, err := s.db.Query(`
		SELECT id, date, platform, content, description, post_time, approval_status
		FROM posts ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPosts(rows)
}

func (s *SQLiteStore) UpdatePost(id string, post models.ContentItem) (models.ContentItem, error) {
	existing, err := s.GetPost(id)
	if err != nil {
		return models.ContentItem{}, err
	}

	post.ID = id
	if post.Date == "" {
		post.Date = existing.Date
	}
	if post.ApprovalStatus == "" {
		post.ApprovalStatus = models.StatusDraft
	}

	_, err = s.db.Exec(`
		UPDATE posts SET date = ?, platform = ?, content = ?, description = ?, post_time = ?, approval_status = ?
		WHERE id = ?`,
		post.Date, post.Platform, post.Content, post.Description, post.PostTime, post.ApprovalStatus, id,
	)
	if err != nil {
		return models.ContentItem{}, err
	}
	return post, nil
}

func (s *SQLiteStore) DeletePost(id string) (bool, error) {
	res, err := s.db.Exec("DELETE FROM posts WHERE id = ?", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *SQLiteStore) PostsForDate(date string) ([]models.ContentItem, error) {
	rows, err := s.db.Query(`
		SELECT id, date, platform, content, description, post_time, approval_status
		FROM posts WHERE date = ? ORDER BY position`, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPosts(rows)
}

func (s *SQLiteStore) MovePost(id, newDate string) (models.ContentItem, error) {
	res, err := s.db.Exec("UPDATE posts SET date = ? WHERE id = ?", newDate, id)
	if err != nil {
		return models.ContentItem{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return models.ContentItem{}, err
	}
	if n == 0 {
		return models.ContentItem{}, ErrPostNotFound
	}
	return s.GetPost(id)
}

func (s *SQLiteStore) ReplaceAll(posts []models.ContentItem) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM posts"); err != nil {
		return err
	}
	if err := insertPosts(tx, posts, 1); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *SQLiteStore) ReplaceMonth(year int, month time.Month, posts []models.ContentItem) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	prefix := fmt.Sprintf("%04d-%02d-%%", year, int(month))
	if _, err := tx.Exec("DELETE FROM posts WHERE date LIKE ?", prefix); err != nil {
		return err
	}

	pos, err := s.nextPosition(tx)
	if err != nil {
		return err
	}
	if err := insertPosts(tx, posts, pos); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}

func (s *SQLiteStore) GetDB() *sql.DB {
	return s.db
}

func insertPosts(tx *sql.Tx, posts []models.ContentItem, startPos int) error {
	stmt, err := tx.Prepare(`
		INSERT INTO posts (id, date, platform, content, description, post_time, approval_status, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, p := range posts {
		if p.ID == "" {
			p.ID = models.NewID()
		}
		if p.ApprovalStatus == "" {
			p.ApprovalStatus = models.StatusDraft
		}
		if _, err := stmt.Exec(p.ID, p.Date, p.Platform, p.Content, p.Description, p.PostTime, p.ApprovalStatus, startPos+i); err != nil {
			return err
		}
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (models.ContentItem, error) {
	var p models.ContentItem
	var platform, status string
	err := row.Scan(&p.ID, &p.Date, &platform, &p.Content, &p.Description, &p.PostTime, &status)
	if err != nil {
		return models.ContentItem{}, err
	}
	p.Platform = models.Platform(platform)
	p.ApprovalStatus = models.ApprovalStatus(status)
	return p, nil
}

func scanPosts(rows *sql.Rows) ([]models.ContentItem, error) {
	var posts []models.ContentItem
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}
