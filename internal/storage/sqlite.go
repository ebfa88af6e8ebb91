package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/nikbrunner/pathmark/internal/model"
)

const currentSchemaVersion = 2

// SQLiteStorage implements Store using a SQLite database.
type SQLiteStorage struct {
	db   *sql.DB
	path string
}

// NewSQLiteStorage creates a new SQLiteStorage with the given database path.
func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w", pragma, err)
		}
	}

	s := &SQLiteStorage{db: db, path: path}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating %s: %w", path, err)
	}

	return s, nil
}

// Path returns the database file path.
func (s *SQLiteStorage) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// SchemaVersion returns the applied schema version.
func (s *SQLiteStorage) SchemaVersion() (int, error) {
	var version int
	err := s.db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&version)
	return version, err
}

// migrate runs database migrations.
func (s *SQLiteStorage) migrate() error {
	version, err := s.SchemaVersion()
	if err != nil {
		// Table doesn't exist or is empty, start fresh
		version = 0
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}

	if version < currentSchemaVersion {
		if err := s.migrateV2(); err != nil {
			return err
		}
	}

	return nil
}

// migrateV1 creates the initial schema.
func (s *SQLiteStorage) migrateV1() error {
	schema := `
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS bookmarks (
			id INTEGER PRIMARY KEY,
			name TEXT,
			path TEXT NOT NULL UNIQUE,
			description TEXT,
			created_at TEXT NOT NULL
		);

		INSERT OR REPLACE INTO schema_version (version) VALUES (1);
	`
	_, err := s.db.Exec(schema)
	return err
}

// migrateV2 adds visited_at for last-visit tracking.
func (s *SQLiteStorage) migrateV2() error {
	migration := `
		ALTER TABLE bookmarks ADD COLUMN visited_at TEXT;
		UPDATE schema_version SET version = 2;
	`
	_, err := s.db.Exec(migration)
	return err
}

const bookmarkColumns = `id, name, path, description, created_at, visited_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBookmark(row rowScanner) (model.Bookmark, error) {
	var b model.Bookmark
	var name, description sql.NullString
	var createdAtStr string
	var visitedAtStr sql.NullString

	if err := row.Scan(&b.ID, &name, &b.Path, &description, &createdAtStr, &visitedAtStr); err != nil {
		return model.Bookmark{}, err
	}

	b.Name = name.String
	b.Description = description.String
	b.CreatedAt, _ = time.Parse(time.RFC3339, createdAtStr)

	if visitedAtStr.Valid {
		t, err := time.Parse(time.RFC3339, visitedAtStr.String)
		if err == nil {
			b.VisitedAt = &t
		}
	}

	return b, nil
}

func (s *SQLiteStorage) List() ([]model.Bookmark, error) {
	rows, err := s.db.Query(`SELECT ` + bookmarkColumns + ` FROM bookmarks ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookmarks := []model.Bookmark{}
	for rows.Next() {
		b, err := scanBookmark(rows)
		if err != nil {
			return nil, err
		}
		bookmarks = append(bookmarks, b)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return bookmarks, nil
}

func (s *SQLiteStorage) get(query string, arg any) (model.Bookmark, error) {
	b, err := scanBookmark(s.db.QueryRow(`SELECT `+bookmarkColumns+` FROM bookmarks WHERE `+query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Bookmark{}, ErrNotFound
	}
	return b, err
}

func (s *SQLiteStorage) Get(id int64) (model.Bookmark, error) {
	return s.get("id = ?", id)
}

func (s *SQLiteStorage) GetByPath(path string) (model.Bookmark, error) {
	return s.get("path = ?", path)
}

func (s *SQLiteStorage) Create(b model.Bookmark) (model.Bookmark, error) {
	if _, err := s.GetByPath(b.Path); err == nil {
		return model.Bookmark{}, ErrDuplicatePath
	} else if !errors.Is(err, ErrNotFound) {
		return model.Bookmark{}, err
	}

	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now()
	}

	res, err := s.db.Exec(`
		INSERT INTO bookmarks (name, path, description, created_at, visited_at)
		VALUES (?, ?, ?, ?, ?)
	`, nullable(b.Name), b.Path, nullable(b.Description), b.CreatedAt.Format(time.RFC3339), formatTime(b.VisitedAt))
	if err != nil {
		return model.Bookmark{}, translate(err)
	}

	b.ID, err = res.LastInsertId()
	if err != nil {
		return model.Bookmark{}, err
	}
	return b, nil
}

func (s *SQLiteStorage) Update(b model.Bookmark) error {
	existing, err := s.GetByPath(b.Path)
	if err == nil && existing.ID != b.ID {
		return ErrDuplicatePath
	} else if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}

	res, err := s.db.Exec(`
		UPDATE bookmarks SET name = ?, path = ?, description = ?, visited_at = ?
		WHERE id = ?
	`, nullable(b.Name), b.Path, nullable(b.Description), formatTime(b.VisitedAt), b.ID)
	if err != nil {
		return translate(err)
	}
	return expectOne(res)
}

func (s *SQLiteStorage) Delete(id int64) error {
	res, err := s.db.Exec(`DELETE FROM bookmarks WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return expectOne(res)
}

func (s *SQLiteStorage) MarkVisited(id int64, at time.Time) error {
	res, err := s.db.Exec(`UPDATE bookmarks SET visited_at = ? WHERE id = ?`, at.Format(time.RFC3339), id)
	if err != nil {
		return err
	}
	return expectOne(res)
}

func expectOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// translate maps a uniqueness violation that slipped past the pre-check
// (another process inserted the same path) onto ErrDuplicatePath.
func translate(err error) error {
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return ErrDuplicatePath
	}
	return err
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func formatTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(time.RFC3339)
}
