package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"mercator-hq/folio/pkg/journal"
)

var errRecordID = errors.New("record must have an ID")

// SQLiteConfig configures the SQLite backend.
type SQLiteConfig struct {
	// Path is the database file. ":memory:" opens a private in-memory database.
	Path string

	// MaxOpenConns is the maximum number of open connections.
	// Default: 4
	MaxOpenConns int

	// BusyTimeout is how long a writer waits on a locked database.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// SQLiteStorage implements journal.Storage on SQLite.
type SQLiteStorage struct {
	db        *sql.DB
	config    SQLiteConfig
	insertSQL *sql.Stmt
	logger    *slog.Logger
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS decisions (
	id             TEXT PRIMARY KEY,
	time_ns        INTEGER NOT NULL,
	document       TEXT NOT NULL DEFAULT '',
	operation      TEXT NOT NULL,
	container_id   TEXT NOT NULL DEFAULT '',
	container_type TEXT NOT NULL DEFAULT '',
	slot           TEXT NOT NULL DEFAULT '',
	element_id     TEXT NOT NULL DEFAULT '',
	element_type   TEXT NOT NULL DEFAULT '',
	element_name   TEXT NOT NULL DEFAULT '',
	allowed        INTEGER NOT NULL,
	codes          TEXT NOT NULL DEFAULT '[]',
	message        TEXT NOT NULL DEFAULT '',
	duration_ns    INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_decisions_time ON decisions(time_ns);
CREATE INDEX IF NOT EXISTS idx_decisions_container ON decisions(container_id);
CREATE INDEX IF NOT EXISTS idx_decisions_allowed ON decisions(allowed);
`

const selectColumns = `id, time_ns, document, operation, container_id, container_type, slot,
	element_id, element_type, element_name, allowed, codes, message, duration_ns`

// NewSQLiteStorage opens (creating if needed) the journal database.
func NewSQLiteStorage(cfg SQLiteConfig) (*SQLiteStorage, error) {
	if cfg.Path == "" {
		return nil, journal.NewStorageError("sqlite", "open", errors.New("database path cannot be empty"))
	}
	if cfg.MaxOpenConns <= 0 {
		cfg.MaxOpenConns = 4
	}
	if cfg.BusyTimeout <= 0 {
		cfg.BusyTimeout = 5 * time.Second
	}

	memory := cfg.Path == ":memory:"
	if !memory {
		if dir := filepath.Dir(cfg.Path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, journal.NewStorageError("sqlite", "open", err)
			}
		}
	}

	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(%d)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)",
		cfg.Path, cfg.BusyTimeout.Milliseconds())
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, journal.NewStorageError("sqlite", "open", err)
	}

	// Every connection to ":memory:" is a separate database.
	if memory {
		cfg.MaxOpenConns = 1
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxOpenConns)
	db.SetConnMaxLifetime(0)

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, journal.NewStorageError("sqlite", "schema", err)
	}

	insert, err := db.Prepare(`INSERT INTO decisions (` + selectColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		db.Close()
		return nil, journal.NewStorageError("sqlite", "prepare", err)
	}

	s := &SQLiteStorage{
		db:        db,
		config:    cfg,
		insertSQL: insert,
		logger:    slog.Default().With("component", "journal.storage.sqlite"),
	}
	s.logger.Debug("journal database opened", "path", cfg.Path)
	return s, nil
}

// Store inserts a record.
func (s *SQLiteStorage) Store(ctx context.Context, record *journal.Record) error {
	if record == nil || record.ID == "" {
		return journal.NewStorageError("sqlite", "store", errRecordID)
	}

	codes, err := json.Marshal(record.Codes)
	if err != nil {
		return journal.NewStorageError("sqlite", "store", err)
	}
	if record.Codes == nil {
		codes = []byte("[]")
	}

	_, err = s.insertSQL.ExecContext(ctx,
		record.ID,
		record.Time.UnixNano(),
		record.Document,
		record.Operation,
		record.ContainerID,
		record.ContainerType,
		record.Slot,
		record.ElementID,
		record.ElementType,
		record.ElementName,
		boolToInt(record.Allowed),
		string(codes),
		record.Message,
		int64(record.Duration),
	)
	if err != nil {
		return journal.NewStorageError("sqlite", "store", err)
	}
	return nil
}

// Query returns matching records ordered by time.
func (s *SQLiteStorage) Query(ctx context.Context, query *journal.Query) ([]*journal.Record, error) {
	where, args := buildWhere(query)

	order := "DESC"
	if query.Ascending() {
		order = "ASC"
	}

	stmt := "SELECT " + selectColumns + " FROM decisions" + where +
		" ORDER BY time_ns " + order + ", id " + order
	if query != nil && (query.Limit > 0 || query.Offset > 0) {
		limit := query.Limit
		if limit <= 0 {
			limit = -1
		}
		stmt += " LIMIT ? OFFSET ?"
		args = append(args, limit, query.Offset)
	}

	rows, err := s.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, journal.NewStorageError("sqlite", "query", err)
	}
	defer rows.Close()

	records := make([]*journal.Record, 0)
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, journal.NewStorageError("sqlite", "query", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, journal.NewStorageError("sqlite", "query", err)
	}
	return records, nil
}

// Count returns the number of matching records.
func (s *SQLiteStorage) Count(ctx context.Context, query *journal.Query) (int64, error) {
	where, args := buildWhere(query)

	var count int64
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM decisions"+where, args...).Scan(&count); err != nil {
		return 0, journal.NewStorageError("sqlite", "count", err)
	}
	return count, nil
}

// Delete removes matching records.
func (s *SQLiteStorage) Delete(ctx context.Context, query *journal.Query) (int64, error) {
	where, args := buildWhere(query)

	result, err := s.db.ExecContext(ctx, "DELETE FROM decisions"+where, args...)
	if err != nil {
		return 0, journal.NewStorageError("sqlite", "delete", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, journal.NewStorageError("sqlite", "delete", err)
	}
	return n, nil
}

// Backend returns "sqlite".
func (s *SQLiteStorage) Backend() string {
	return "sqlite"
}

// Close closes the prepared statement and the database.
func (s *SQLiteStorage) Close() error {
	if s.insertSQL != nil {
		s.insertSQL.Close()
	}
	return s.db.Close()
}

func buildWhere(query *journal.Query) (string, []any) {
	if query == nil {
		return "", nil
	}

	var conds []string
	var args []any
	add := func(cond string, arg any) {
		conds = append(conds, cond)
		args = append(args, arg)
	}

	if query.StartTime != nil {
		add("time_ns >= ?", query.StartTime.UnixNano())
	}
	if query.EndTime != nil {
		add("time_ns <= ?", query.EndTime.UnixNano())
	}
	if query.Operation != "" {
		add("operation = ?", query.Operation)
	}
	if query.Document != "" {
		add("document = ?", query.Document)
	}
	if query.ContainerID != "" {
		add("container_id = ?", query.ContainerID)
	}
	if query.ElementType != "" {
		add("element_type = ?", query.ElementType)
	}
	if query.Allowed != nil {
		add("allowed = ?", boolToInt(*query.Allowed))
	}
	if query.Code != "" {
		add("EXISTS (SELECT 1 FROM json_each(decisions.codes) WHERE json_each.value = ?)", query.Code)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func scanRecord(rows *sql.Rows) (*journal.Record, error) {
	var (
		r        journal.Record
		timeNS   int64
		allowed  int
		codes    string
		duration int64
	)
	err := rows.Scan(&r.ID, &timeNS, &r.Document, &r.Operation, &r.ContainerID, &r.ContainerType,
		&r.Slot, &r.ElementID, &r.ElementType, &r.ElementName, &allowed, &codes, &r.Message, &duration)
	if err != nil {
		return nil, err
	}

	r.Time = time.Unix(0, timeNS).UTC()
	r.Allowed = allowed != 0
	r.Duration = time.Duration(duration)
	if err := json.Unmarshal([]byte(codes), &r.Codes); err != nil {
		return nil, fmt.Errorf("decode codes of record %s: %w", r.ID, err)
	}
	if len(r.Codes) == 0 {
		r.Codes = nil
	}
	return &r, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
