// Package store archives processing runs in a Bun-backed database so that
// conversion outcomes can be inspected after the fact.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/goliatone/go-docmap/internal/logging"
	"github.com/goliatone/go-docmap/pkg/interfaces"
)

// Run is one archived invocation of the processing pipeline.
type Run struct {
	ID          string
	DocmapID    string
	Source      string
	StartedAt   time.Time
	FinishedAt  time.Time
	ItemCount   int
	FailedCount int
	Items       []Item
}

// Item records the outcome for a single content item within a run.
type Item struct {
	ID       string
	RunID    string
	Position int
	URL      string
	XML      []byte
	Failure  string
}

// Store persists runs and their items.
type Store struct {
	db     *bun.DB
	logger interfaces.Logger
}

// New constructs a store over an existing Bun database handle.
func New(db *bun.DB, logger interfaces.Logger) *Store {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Store{db: db, logger: logger}
}

// Open connects to the archive database, selecting the Bun dialect from the
// driver name. Supported drivers are "sqlite3" and "postgres".
func Open(driver, dsn string) (*bun.DB, error) {
	sqldb, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", driver, err)
	}
	switch driver {
	case "sqlite3":
		return bun.NewDB(sqldb, sqlitedialect.New()), nil
	case "postgres":
		return bun.NewDB(sqldb, pgdialect.New()), nil
	default:
		_ = sqldb.Close()
		return nil, fmt.Errorf("store: unsupported driver %q", driver)
	}
}

// CreateTables provisions the run archive tables when missing.
func (s *Store) CreateTables(ctx context.Context) error {
	if s.db == nil {
		return errors.New("store: requires a database")
	}
	if _, err := s.db.NewCreateTable().Model((*runModel)(nil)).IfNotExists().Exec(ctx); err != nil {
		return fmt.Errorf("store: create runs table: %w", err)
	}
	if _, err := s.db.NewCreateTable().Model((*itemModel)(nil)).IfNotExists().Exec(ctx); err != nil {
		return fmt.Errorf("store: create run items table: %w", err)
	}
	return nil
}

// SaveRun archives a run with its item outcomes.
func (s *Store) SaveRun(ctx context.Context, run Run) error {
	if s.db == nil {
		return errors.New("store: requires a database")
	}

	model := modelFromRun(run)
	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(&model).Exec(ctx); err != nil {
			return err
		}
		for i := range run.Items {
			item := modelFromItem(run.Items[i], run.ID)
			if _, err := tx.NewInsert().Model(&item).Exec(ctx); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("store: save run %s: %w", run.ID, err)
	}

	s.logger.Debug("run archived", "run_id", run.ID, "items", len(run.Items))
	return nil
}

// GetRun loads an archived run and its items.
func (s *Store) GetRun(ctx context.Context, id string) (Run, error) {
	if s.db == nil {
		return Run{}, errors.New("store: requires a database")
	}

	var model runModel
	if err := s.db.NewSelect().Model(&model).Where("id = ?", id).Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, ErrRunNotFound
		}
		return Run{}, fmt.Errorf("store: load run %s: %w", id, err)
	}

	var items []itemModel
	if err := s.db.NewSelect().Model(&items).
		Where("run_id = ?", id).
		Order("position ASC").
		Scan(ctx); err != nil {
		return Run{}, fmt.Errorf("store: load run items %s: %w", id, err)
	}

	run := modelToRun(&model)
	for i := range items {
		run.Items = append(run.Items, modelToItem(&items[i]))
	}
	return run, nil
}

// ListRuns returns archived runs newest first, without their items.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if s.db == nil {
		return nil, errors.New("store: requires a database")
	}
	if limit <= 0 {
		limit = 50
	}

	var models []runModel
	if err := s.db.NewSelect().Model(&models).
		Order("started_at DESC").
		Limit(limit).
		Scan(ctx); err != nil {
		return nil, fmt.Errorf("store: list runs: %w", err)
	}

	runs := make([]Run, 0, len(models))
	for i := range models {
		runs = append(runs, modelToRun(&models[i]))
	}
	return runs, nil
}

type runModel struct {
	bun.BaseModel `bun:"table:docmap_runs"`

	ID          string    `bun:",pk"`
	DocmapID    string    `bun:"docmap_id"`
	Source      string    `bun:"source"`
	StartedAt   time.Time `bun:"started_at"`
	FinishedAt  time.Time `bun:"finished_at"`
	ItemCount   int       `bun:"item_count"`
	FailedCount int       `bun:"failed_count"`
}

type itemModel struct {
	bun.BaseModel `bun:"table:docmap_run_items"`

	ID       string `bun:",pk"`
	RunID    string `bun:"run_id"`
	Position int    `bun:"position"`
	URL      string `bun:"url"`
	XML      []byte `bun:"xml"`
	Failure  string `bun:"failure"`
}

func modelFromRun(run Run) runModel {
	return runModel{
		ID:          run.ID,
		DocmapID:    run.DocmapID,
		Source:      run.Source,
		StartedAt:   run.StartedAt.UTC(),
		FinishedAt:  run.FinishedAt.UTC(),
		ItemCount:   run.ItemCount,
		FailedCount: run.FailedCount,
	}
}

func modelToRun(model *runModel) Run {
	return Run{
		ID:          model.ID,
		DocmapID:    model.DocmapID,
		Source:      model.Source,
		StartedAt:   model.StartedAt,
		FinishedAt:  model.FinishedAt,
		ItemCount:   model.ItemCount,
		FailedCount: model.FailedCount,
	}
}

func modelFromItem(item Item, runID string) itemModel {
	return itemModel{
		ID:       item.ID,
		RunID:    runID,
		Position: item.Position,
		URL:      item.URL,
		XML:      item.XML,
		Failure:  item.Failure,
	}
}

func modelToItem(model *itemModel) Item {
	return Item{
		ID:       model.ID,
		RunID:    model.RunID,
		Position: model.Position,
		URL:      model.URL,
		XML:      model.XML,
		Failure:  model.Failure,
	}
}
