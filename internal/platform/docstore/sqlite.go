package docstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"zenith/internal/platform/clock"
	apperrors "zenith/internal/platform/errors"
	"zenith/internal/platform/id"
)

const defaultPollInterval = time.Second

// SQLite keeps every collection in one table of JSON documents. Writes from
// this process are published immediately; commits by other processes on the
// same file are picked up by polling PRAGMA data_version.
type SQLite struct {
	db    *sql.DB
	clock clock.Clock
	ids   id.Generator
	hub   *hub

	stopPoll context.CancelFunc
	pollDone chan struct{}
	once     sync.Once
}

type SQLiteOption func(*sqliteOptions)

type sqliteOptions struct {
	pollInterval time.Duration
}

// WithPollInterval sets how often foreign commits are checked for; zero
// disables polling.
func WithPollInterval(d time.Duration) SQLiteOption {
	return func(o *sqliteOptions) { o.pollInterval = d }
}

func OpenSQLite(dbPath string, clk clock.Clock, ids id.Generator, opts ...SQLiteOption) (*SQLite, error) {
	options := sqliteOptions{pollInterval: defaultPollInterval}
	for _, opt := range opts {
		opt(&options)
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	s := &SQLite{db: db, clock: clk, ids: ids, hub: newHub(), pollDone: make(chan struct{})}
	if err := s.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	pollCtx, cancel := context.WithCancel(context.Background())
	s.stopPoll = cancel
	if options.pollInterval > 0 {
		go s.poll(pollCtx, options.pollInterval)
	} else {
		close(s.pollDone)
	}
	return s, nil
}

func (s *SQLite) ensureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS documents (
			collection TEXT NOT NULL,
			id TEXT NOT NULL,
			created_at INTEGER NOT NULL,
			data TEXT NOT NULL,
			PRIMARY KEY (collection, id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_documents_created ON documents(collection, created_at)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

func (s *SQLite) Subscribe(ctx context.Context, collection string, order Order, onSnapshot SnapshotFunc, onError ErrorFunc) (func(), error) {
	return s.hub.subscribe(ctx, collection, order, s.load, onSnapshot, onError)
}

func (s *SQLite) load(ctx context.Context, collection string, order Order) ([]Document, error) {
	dir := "ASC"
	if order.Descending {
		dir = "DESC"
	}
	var query string
	var args []any
	if order.Field == "" || order.Field == FieldCreatedAt {
		query = fmt.Sprintf(`SELECT id, created_at, data FROM documents WHERE collection = ? ORDER BY created_at %s, rowid %s`, dir, dir)
		args = []any{collection}
	} else {
		query = fmt.Sprintf(`SELECT id, created_at, data FROM documents WHERE collection = ? ORDER BY json_extract(data, ?) %s, rowid %s`, dir, dir)
		args = []any{collection, jsonPath(order.Field)}
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", collection, err)
	}
	defer rows.Close()
	return scanDocuments(rows)
}

func (s *SQLite) Add(ctx context.Context, collection string, fields Fields) (string, error) {
	if fields == nil {
		fields = Fields{}
	}
	data, err := json.Marshal(fields)
	if err != nil {
		return "", fmt.Errorf("encode document: %w", err)
	}
	docID := s.ids.New()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO documents(collection, id, created_at, data) VALUES(?, ?, ?, ?)`,
		collection, docID, s.clock.Now().UnixNano(), string(data),
	)
	if err != nil {
		return "", fmt.Errorf("insert %s: %w", collection, err)
	}
	s.hub.publish(collection)
	return docID, nil
}

func (s *SQLite) Update(ctx context.Context, collection, docID string, fields Fields) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin update: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var raw string
	err = tx.QueryRowContext(ctx, `SELECT data FROM documents WHERE collection = ? AND id = ?`, collection, docID).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s/%s: %w", collection, docID, apperrors.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("read %s/%s: %w", collection, docID, err)
	}
	current := Fields{}
	if err := json.Unmarshal([]byte(raw), &current); err != nil {
		return fmt.Errorf("decode %s/%s: %w", collection, docID, err)
	}
	for k, v := range fields {
		current[k] = v
	}
	data, err := json.Marshal(current)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `UPDATE documents SET data = ? WHERE collection = ? AND id = ?`, string(data), collection, docID); err != nil {
		return fmt.Errorf("update %s/%s: %w", collection, docID, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit update: %w", err)
	}
	s.hub.publish(collection)
	return nil
}

func (s *SQLite) Delete(ctx context.Context, collection, docID string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE collection = ? AND id = ?`, collection, docID); err != nil {
		return fmt.Errorf("delete %s/%s: %w", collection, docID, err)
	}
	s.hub.publish(collection)
	return nil
}

func (s *SQLite) Find(ctx context.Context, collection, field string, value any) ([]Document, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, data FROM documents WHERE collection = ? AND json_extract(data, ?) = ? ORDER BY created_at ASC, rowid ASC`,
		collection, jsonPath(field), value,
	)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", collection, err)
	}
	defer rows.Close()
	return scanDocuments(rows)
}

func (s *SQLite) DeleteWhere(ctx context.Context, collection, field string, value any) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin batch delete: %w", err)
	}
	defer func() { _ = tx.Rollback() }()
	res, err := tx.ExecContext(ctx,
		`DELETE FROM documents WHERE collection = ? AND json_extract(data, ?) = ?`,
		collection, jsonPath(field), value,
	)
	if err != nil {
		return 0, fmt.Errorf("batch delete %s: %w", collection, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit batch delete: %w", err)
	}
	if n > 0 {
		s.hub.publish(collection)
	}
	return int(n), nil
}

func (s *SQLite) Close() error {
	var err error
	s.once.Do(func() {
		s.stopPoll()
		<-s.pollDone
		s.hub.close()
		err = s.db.Close()
	})
	return err
}

// poll watches PRAGMA data_version on a dedicated connection. The value
// changes whenever another connection commits.
func (s *SQLite) poll(ctx context.Context, interval time.Duration) {
	defer close(s.pollDone)
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return
	}
	defer conn.Close()

	var last int64
	if err := conn.QueryRowContext(ctx, `PRAGMA data_version`).Scan(&last); err != nil {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		var version int64
		if err := conn.QueryRowContext(ctx, `PRAGMA data_version`).Scan(&version); err != nil {
			continue
		}
		if version != last {
			last = version
			s.hub.publish("")
		}
	}
}

func scanDocuments(rows *sql.Rows) ([]Document, error) {
	out := []Document{}
	for rows.Next() {
		var (
			docID     string
			createdAt int64
			raw       string
		)
		if err := rows.Scan(&docID, &createdAt, &raw); err != nil {
			return nil, err
		}
		fields := Fields{}
		if err := json.Unmarshal([]byte(raw), &fields); err != nil {
			return nil, fmt.Errorf("decode %s: %w", docID, err)
		}
		out = append(out, Document{ID: docID, CreatedAt: time.Unix(0, createdAt), Fields: fields})
	}
	return out, rows.Err()
}

func jsonPath(field string) string {
	return `$."` + strings.ReplaceAll(field, `"`, ``) + `"`
}
