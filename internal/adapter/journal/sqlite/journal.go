package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"decisionlab/internal/app/ports"
	"decisionlab/internal/domain/scenario"
)

// Journal stores turn records in a local sqlite file.
type Journal struct {
	db *sql.DB
}

func Open(path string) (*Journal, error) {
	if path == "" {
		return nil, fmt.Errorf("empty journal path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Journal{db: db}, nil
}

func (j *Journal) Close() error {
	return j.db.Close()
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA temp_store=MEMORY;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("pragma %q: %w", p, err)
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS turns (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			run INTEGER NOT NULL,
			turn INTEGER NOT NULL,
			family TEXT NOT NULL,
			decisions_json TEXT NOT NULL,
			expectation_json TEXT NOT NULL,
			actual_json TEXT NOT NULL,
			feedback TEXT NOT NULL,
			game_over INTEGER NOT NULL,
			game_over_reason TEXT NOT NULL,
			state_after_json TEXT NOT NULL,
			recorded_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS turns_session_idx ON turns(session_id, id);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}

func (j *Journal) Append(ctx context.Context, rec ports.TurnRecord) error {
	decisions, err := json.Marshal(rec.Decisions)
	if err != nil {
		return fmt.Errorf("marshal decisions: %w", err)
	}
	expectation, err := json.Marshal(rec.Expectation)
	if err != nil {
		return fmt.Errorf("marshal expectation: %w", err)
	}
	actual, err := json.Marshal(rec.Actual)
	if err != nil {
		return fmt.Errorf("marshal actual result: %w", err)
	}
	stateAfter, err := json.Marshal(rec.StateAfter)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	gameOver := 0
	if rec.GameOver {
		gameOver = 1
	}
	recordedAt := rec.RecordedAt
	if recordedAt.IsZero() {
		recordedAt = time.Now()
	}

	_, err = j.db.ExecContext(ctx, `INSERT INTO turns(
		session_id,run,turn,family,decisions_json,expectation_json,actual_json,feedback,game_over,game_over_reason,state_after_json,recorded_at
	) VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`,
		rec.SessionID, rec.Run, rec.Turn, string(rec.Family),
		string(decisions), string(expectation), string(actual), rec.Feedback,
		gameOver, rec.GameOverReason, string(stateAfter), recordedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert turn: %w", err)
	}
	return nil
}

func (j *Journal) ListBySession(ctx context.Context, sessionID string, limit int) ([]ports.TurnRecord, error) {
	const cols = `id,session_id,run,turn,family,decisions_json,expectation_json,actual_json,feedback,game_over,game_over_reason,state_after_json,recorded_at`
	var (
		rows *sql.Rows
		err  error
	)
	if limit > 0 {
		rows, err = j.db.QueryContext(ctx,
			`SELECT `+cols+` FROM (SELECT `+cols+` FROM turns WHERE session_id=? ORDER BY id DESC LIMIT ?) ORDER BY id ASC`,
			sessionID, limit)
	} else {
		rows, err = j.db.QueryContext(ctx, `SELECT `+cols+` FROM turns WHERE session_id=? ORDER BY id ASC`, sessionID)
	}
	if err != nil {
		return nil, fmt.Errorf("query turns: %w", err)
	}
	defer rows.Close()

	out := make([]ports.TurnRecord, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return out, nil
}

func scanRecord(rows *sql.Rows) (ports.TurnRecord, error) {
	var (
		id                                         int64
		rec                                        ports.TurnRecord
		family                                     string
		decisions, expectation, actual, stateAfter string
		gameOver                                   int
		recordedAt                                 string
	)
	if err := rows.Scan(&id, &rec.SessionID, &rec.Run, &rec.Turn, &family, &decisions, &expectation, &actual,
		&rec.Feedback, &gameOver, &rec.GameOverReason, &stateAfter, &recordedAt); err != nil {
		return ports.TurnRecord{}, fmt.Errorf("scan turn: %w", err)
	}
	rec.Family = scenario.Family(family)
	rec.GameOver = gameOver != 0
	if err := json.Unmarshal([]byte(decisions), &rec.Decisions); err != nil {
		return ports.TurnRecord{}, fmt.Errorf("decode decisions of turn %d: %w", id, err)
	}
	if err := json.Unmarshal([]byte(expectation), &rec.Expectation); err != nil {
		return ports.TurnRecord{}, fmt.Errorf("decode expectation of turn %d: %w", id, err)
	}
	if err := json.Unmarshal([]byte(actual), &rec.Actual); err != nil {
		return ports.TurnRecord{}, fmt.Errorf("decode actual result of turn %d: %w", id, err)
	}
	if err := json.Unmarshal([]byte(stateAfter), &rec.StateAfter); err != nil {
		return ports.TurnRecord{}, fmt.Errorf("decode state of turn %d: %w", id, err)
	}
	t, err := time.Parse(time.RFC3339Nano, recordedAt)
	if err != nil {
		return ports.TurnRecord{}, fmt.Errorf("decode recorded_at of turn %d: %w", id, err)
	}
	rec.RecordedAt = t
	return rec, nil
}
