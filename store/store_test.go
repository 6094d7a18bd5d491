package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/goliatone/go-docmap/internal/identity"
)

func TestStore_SaveAndGetRun(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	started := time.Date(2023, 5, 10, 9, 0, 0, 0, time.UTC)
	runUUID := identity.RunUUID("docmap-1", started.Format(time.RFC3339))
	runID := runUUID.String()
	run := Run{
		ID:          runID,
		DocmapID:    "docmap-1",
		Source:      "https://example.org/docmap.json",
		StartedAt:   started,
		FinishedAt:  started.Add(2 * time.Second),
		ItemCount:   2,
		FailedCount: 1,
		Items: []Item{
			{
				ID:       identity.ItemUUID(runUUID, 0).String(),
				Position: 0,
				URL:      "https://example.org/review-1",
				XML:      []byte("<root><body><p>ok</p></body></root>"),
			},
			{
				ID:       identity.ItemUUID(runUUID, 1).String(),
				Position: 1,
				URL:      "https://example.org/review-2",
				Failure:  "malformed markup",
			},
		},
	}

	if err := s.SaveRun(ctx, run); err != nil {
		t.Fatalf("SaveRun() error = %v", err)
	}

	got, err := s.GetRun(ctx, runID)
	if err != nil {
		t.Fatalf("GetRun() error = %v", err)
	}
	if got.DocmapID != "docmap-1" || got.ItemCount != 2 || got.FailedCount != 1 {
		t.Fatalf("GetRun() returned %+v", got)
	}
	if len(got.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(got.Items))
	}
	if got.Items[0].Position != 0 || string(got.Items[0].XML) != "<root><body><p>ok</p></body></root>" {
		t.Fatalf("first item = %+v", got.Items[0])
	}
	if got.Items[1].Failure != "malformed markup" {
		t.Fatalf("second item = %+v", got.Items[1])
	}
}

func TestStore_GetRunMissing(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.GetRun(context.Background(), "nope"); !errors.Is(err, ErrRunNotFound) {
		t.Fatalf("expected ErrRunNotFound, got %v", err)
	}
}

func TestStore_ListRuns(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2023, 5, 10, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		started := base.Add(time.Duration(i) * time.Hour)
		run := Run{
			ID:        identity.RunUUID("docmap-list", started.Format(time.RFC3339)).String(),
			DocmapID:  "docmap-list",
			StartedAt: started,
		}
		if err := s.SaveRun(ctx, run); err != nil {
			t.Fatalf("SaveRun() error = %v", err)
		}
	}

	runs, err := s.ListRuns(ctx, 2)
	if err != nil {
		t.Fatalf("ListRuns() error = %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if !runs[0].StartedAt.After(runs[1].StartedAt) {
		t.Fatalf("expected newest first, got %v then %v", runs[0].StartedAt, runs[1].StartedAt)
	}
	if len(runs[0].Items) != 0 {
		t.Fatalf("ListRuns() should not load items, got %d", len(runs[0].Items))
	}
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	if _, err := Open("mysql", "dsn"); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}

func newTestStore(t *testing.T) *Store {
	t.Helper()

	sqldb, err := sql.Open("sqlite3", "file:"+t.Name()+"?mode=memory&cache=shared&_fk=1")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = sqldb.Close() })

	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { _ = db.Close() })

	s := New(db, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.CreateTables(ctx); err != nil {
		t.Fatalf("create tables: %v", err)
	}
	return s
}
