// Package metrics keeps privacy-conscious visitor counts and contact
// submission outcomes in SQLite. Raw IPs and message content are never
// stored.
package metrics

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// timestamps are stored as UTC text so SQLite date functions and string
// comparison agree
const timeLayout = "2006-01-02 15:04:05"

// Visit is one tracked page view.
type Visit struct {
	ID        int64     `json:"id"`
	HashedIP  string    `json:"hashed_ip"`
	UserAgent string    `json:"user_agent"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
}

type PathCount struct {
	Path  string `json:"path"`
	Views int64  `json:"views"`
}

// Stats summarises the store.
type Stats struct {
	TotalVisitors    int64            `json:"total_visitors"`
	UniqueVisitors   int64            `json:"unique_visitors"`
	VisitorsToday    int64            `json:"visitors_today"`
	VisitorsThisWeek int64            `json:"visitors_this_week"`
	TopPaths         []PathCount      `json:"top_paths"`
	RecentVisitors   []Visit          `json:"recent_visitors"`
	Outcomes         map[string]int64 `json:"contact_outcomes"`
}

// Store is the SQLite-backed metrics store.
type Store struct {
	db   *sql.DB
	salt string
	now  func() time.Time
}

// Open opens (creating if needed) the database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open metrics database: %w", err)
	}
	// writes come from background goroutines; SQLite serialises them anyway
	db.SetMaxOpenConns(1)

	s, err := New(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// New wraps an open database and migrates it. Each Store gets a fresh
// random salt, so IP hashes cannot be joined across restarts.
func New(db *sql.DB) (*Store, error) {
	salt, err := randomHex(32)
	if err != nil {
		return nil, fmt.Errorf("failed to generate hashing salt: %w", err)
	}

	s := &Store{db: db, salt: salt, now: time.Now}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate metrics tables: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	query := `
	CREATE TABLE IF NOT EXISTS visitors (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		hashed_ip  TEXT NOT NULL,
		user_agent TEXT NOT NULL DEFAULT '',
		path       TEXT NOT NULL,
		timestamp  TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_visitors_timestamp ON visitors(timestamp);

	CREATE TABLE IF NOT EXISTS contact_outcomes (
		id        TEXT PRIMARY KEY,
		outcome   TEXT NOT NULL,
		timestamp TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(query)
	return err
}

func randomHex(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// HashIP returns a salted, truncated hash of ip. It is stable for the
// lifetime of the Store.
func (s *Store) HashIP(ip string) string {
	h := sha256.New()
	h.Write([]byte(ip + s.salt))
	return hex.EncodeToString(h.Sum(nil))[:16]
}

func (s *Store) stamp(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// RecordVisit stores a page view under the hashed ip.
func (s *Store) RecordVisit(ctx context.Context, ip, userAgent, path string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO visitors (hashed_ip, user_agent, path, timestamp)
		VALUES (?, ?, ?, ?)
	`, s.HashIP(ip), userAgent, path, s.stamp(s.now()))
	if err != nil {
		return fmt.Errorf("failed to record visit: %w", err)
	}
	return nil
}

// RecordOutcome stores how a contact submission ended.
func (s *Store) RecordOutcome(ctx context.Context, id, outcome string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO contact_outcomes (id, outcome, timestamp)
		VALUES (?, ?, ?)
	`, id, outcome, s.stamp(s.now()))
	if err != nil {
		return fmt.Errorf("failed to record contact outcome: %w", err)
	}
	return nil
}

// Cleanup deletes rows older than retention and returns how many went.
func (s *Store) Cleanup(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := s.stamp(s.now().Add(-retention))

	var total int64
	for _, table := range []string{"visitors", "contact_outcomes"} {
		result, err := s.db.ExecContext(ctx, "DELETE FROM "+table+" WHERE timestamp < ?", cutoff)
		if err != nil {
			return total, fmt.Errorf("failed to clean up %s: %w", table, err)
		}
		n, _ := result.RowsAffected()
		total += n
	}
	return total, nil
}

// Stats gathers the counters shown by the stats command.
func (s *Store) Stats(ctx context.Context, recent int) (*Stats, error) {
	stats := &Stats{Outcomes: map[string]int64{}}
	now := s.now().UTC()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	counts := []struct {
		dst   *int64
		query string
		args  []any
	}{
		{&stats.TotalVisitors, "SELECT COUNT(*) FROM visitors", nil},
		{&stats.UniqueVisitors, "SELECT COUNT(DISTINCT hashed_ip) FROM visitors", nil},
		{&stats.VisitorsToday, "SELECT COUNT(*) FROM visitors WHERE timestamp >= ?", []any{s.stamp(startOfDay)}},
		{&stats.VisitorsThisWeek, "SELECT COUNT(*) FROM visitors WHERE timestamp >= ?", []any{s.stamp(now.Add(-7 * 24 * time.Hour))}},
	}
	for _, c := range counts {
		if err := s.db.QueryRowContext(ctx, c.query, c.args...).Scan(c.dst); err != nil {
			return nil, fmt.Errorf("failed to count visitors: %w", err)
		}
	}

	var err error
	if stats.TopPaths, err = s.topPaths(ctx, 10); err != nil {
		return nil, err
	}
	if stats.RecentVisitors, err = s.recentVisits(ctx, recent); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, "SELECT outcome, COUNT(*) FROM contact_outcomes GROUP BY outcome")
	if err != nil {
		return nil, fmt.Errorf("failed to count contact outcomes: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var outcome string
		var n int64
		if err := rows.Scan(&outcome, &n); err != nil {
			return nil, fmt.Errorf("failed to scan contact outcome: %w", err)
		}
		stats.Outcomes[outcome] = n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return stats, nil
}

func (s *Store) topPaths(ctx context.Context, limit int) ([]PathCount, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT path, COUNT(*) AS views
		FROM visitors
		GROUP BY path
		ORDER BY views DESC, path ASC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load top paths: %w", err)
	}
	defer rows.Close()

	var paths []PathCount
	for rows.Next() {
		var p PathCount
		if err := rows.Scan(&p.Path, &p.Views); err != nil {
			return nil, fmt.Errorf("failed to scan path count: %w", err)
		}
		paths = append(paths, p)
	}
	return paths, rows.Err()
}

func (s *Store) recentVisits(ctx context.Context, limit int) ([]Visit, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, hashed_ip, user_agent, path, timestamp
		FROM visitors
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent visitors: %w", err)
	}
	defer rows.Close()

	var visits []Visit
	for rows.Next() {
		var v Visit
		var ts string
		if err := rows.Scan(&v.ID, &v.HashedIP, &v.UserAgent, &v.Path, &ts); err != nil {
			return nil, fmt.Errorf("failed to scan visitor: %w", err)
		}
		if v.Timestamp, err = time.Parse(timeLayout, ts); err != nil {
			return nil, fmt.Errorf("bad visitor timestamp %q: %w", ts, err)
		}
		visits = append(visits, v)
	}
	return visits, rows.Err()
}
