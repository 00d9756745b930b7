package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/pocketbase/dbx"
	_ "modernc.org/sqlite"

	"tableflip.dev/agenda/pkg/event"
)

// Backend is the durable storage boundary for the event store. Writes may be
// issued fire-and-forget; the store never rolls back its snapshot on a write
// failure.
type Backend interface {
	// Init opens the backing storage and creates the schema if absent.
	Init(ctx context.Context) error
	// LoadAll returns every persisted event in insertion order.
	LoadAll(ctx context.Context) ([]*event.Event, error)
	// Save inserts or replaces the event keyed by its ID.
	Save(ctx context.Context, e *event.Event) error
	// Delete removes the event with the given ID, if present.
	Delete(ctx context.Context, id string) error
	Close() error
}

const schema = `
CREATE TABLE IF NOT EXISTS events (
	id          TEXT PRIMARY KEY,
	title       TEXT NOT NULL,
	startTime   INTEGER,
	endTime     INTEGER,
	description TEXT
);`

// NewSQLiteBackend returns a Backend storing events in a sqlite file at path.
// Times are persisted as epoch milliseconds.
func NewSQLiteBackend(path string) Backend {
	return &sqliteBackend{path: path}
}

type sqliteBackend struct {
	path string
	db   *dbx.DB
}

type eventRow struct {
	ID          string         `db:"id"`
	Title       string         `db:"title"`
	Start       int64          `db:"startTime"`
	End         int64          `db:"endTime"`
	Description sql.NullString `db:"description"`
}

func (b *sqliteBackend) Init(ctx context.Context) error {
	db, err := dbx.Open("sqlite", b.path)
	if err != nil {
		return fmt.Errorf("open %s: %w", b.path, err)
	}
	if _, err := db.NewQuery(schema).WithContext(ctx).Execute(); err != nil {
		_ = db.Close()
		return fmt.Errorf("create schema: %w", err)
	}
	b.db = db
	return nil
}

func (b *sqliteBackend) LoadAll(ctx context.Context) ([]*event.Event, error) {
	rows := []eventRow{}
	err := b.db.NewQuery(
		"SELECT id, title, startTime, endTime, description FROM events ORDER BY rowid",
	).WithContext(ctx).All(&rows)
	if err != nil {
		return nil, fmt.Errorf("load events: %w", err)
	}

	all := make([]*event.Event, 0, len(rows))
	for _, r := range rows {
		e := &event.Event{
			ID:    r.ID,
			Title: r.Title,
			Start: time.UnixMilli(r.Start),
			End:   time.UnixMilli(r.End),
		}
		if r.Description.Valid {
			e.Description = r.Description.String
		}
		all = append(all, e)
	}
	return all, nil
}

func (b *sqliteBackend) Save(ctx context.Context, e *event.Event) error {
	_, err := b.db.NewQuery(`
INSERT INTO events (id, title, startTime, endTime, description)
VALUES ({:id}, {:title}, {:start}, {:end}, {:description})
ON CONFLICT(id) DO UPDATE SET
	title = {:title},
	startTime = {:start},
	endTime = {:end},
	description = {:description}`).
		Bind(dbx.Params{
			"id":          e.ID,
			"title":       e.Title,
			"start":       e.Start.UnixMilli(),
			"end":         e.End.UnixMilli(),
			"description": nullable(e.Description),
		}).
		WithContext(ctx).
		Execute()
	if err != nil {
		return fmt.Errorf("save event %s: %w", e.ID, err)
	}
	return nil
}

func (b *sqliteBackend) Delete(ctx context.Context, id string) error {
	_, err := b.db.Delete("events", dbx.HashExp{"id": id}).WithContext(ctx).Execute()
	if err != nil {
		return fmt.Errorf("delete event %s: %w", id, err)
	}
	return nil
}

func (b *sqliteBackend) Close() error {
	if b.db == nil {
		return nil
	}
	return b.db.Close()
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
