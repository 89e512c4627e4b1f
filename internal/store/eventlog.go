package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"stagetimer-cli/internal/model"
)

// EventLog records every applied command for operator audit ("what
// exactly was sent during the show, and from where"). SQLite keeps it
// queryable after the fact without growing an unbounded JSON file.
type EventLog struct {
	db *sql.DB
}

// Event is one logged command application.
type Event struct {
	ID       int64         `json:"id"`
	TS       time.Time     `json:"ts"`
	Source   string        `json:"source"` // tui | ws | osc | cli
	Command  model.Command `json:"command"`
	Seq      int64         `json:"seq"` // canonical seq after apply
	Profile  string        `json:"profile,omitempty"`
	TimerRef string        `json:"timer,omitempty"`
}

func (s Store) eventLogPath() string { return filepath.Join(s.Dir, "events.sqlite") }

// OpenEventLog opens (creating if needed) the command log.
func (s Store) OpenEventLog(ctx context.Context) (*EventLog, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", s.eventLogPath())
	if err != nil {
		return nil, err
	}
	// WAL enables one writer + many readers; busy_timeout avoids
	// "database is locked" flakiness when the CLI reads mid-show.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	schema := `CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		ts_unixms INTEGER NOT NULL,
		source TEXT NOT NULL,
		command_json TEXT NOT NULL,
		seq INTEGER NOT NULL,
		profile TEXT NOT NULL DEFAULT '',
		timer TEXT NOT NULL DEFAULT ''
	);`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS idx_events_ts ON events(ts_unixms);`); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &EventLog{db: db}, nil
}

func (l *EventLog) Close() error { return l.db.Close() }

// Append logs one applied command with the canonical state it produced.
func (l *EventLog) Append(ctx context.Context, source string, cmd model.Command, after model.TimerState) error {
	cj, err := json.Marshal(cmd)
	if err != nil {
		return err
	}
	_, err = l.db.ExecContext(ctx,
		`INSERT INTO events (ts_unixms, source, command_json, seq, profile, timer) VALUES (?, ?, ?, ?, ?, ?)`,
		time.Now().UnixMilli(), source, string(cj), after.Seq, after.ProfileName, after.TimerName)
	return err
}

// List returns the most recent events, newest first.
func (l *EventLog) List(ctx context.Context, limit int) ([]Event, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := l.db.QueryContext(ctx,
		`SELECT id, ts_unixms, source, command_json, seq, profile, timer
		 FROM events ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var (
			e      Event
			tsMs   int64
			cmdRaw string
		)
		if err := rows.Scan(&e.ID, &tsMs, &e.Source, &cmdRaw, &e.Seq, &e.Profile, &e.TimerRef); err != nil {
			return nil, err
		}
		e.TS = time.UnixMilli(tsMs).UTC()
		if err := json.Unmarshal([]byte(cmdRaw), &e.Command); err != nil {
			// A corrupt row should not hide the rest of the log.
			e.Command = model.Command{}
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
