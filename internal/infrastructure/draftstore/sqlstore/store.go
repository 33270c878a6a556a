package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/BraceroInSabot/ArquiVia-sub000/internal/core/domain"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "pgx"
)

// Store keeps classification drafts in SQLite (local, default) or Postgres (shared).
type Store struct {
	db     *sql.DB
	driver string
}

func New(db *sql.DB, driver string) *Store {
	return &Store{db: db, driver: driver}
}

func OpenDB(driver, dsn string) (*sql.DB, error) {
	switch driver {
	case DriverSQLite:
		if dir := filepath.Dir(dsn); dsn != ":memory:" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create draft store dir: %w", err)
			}
		}
	case DriverPostgres:
	default:
		return nil, fmt.Errorf("unsupported draft store driver %q", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	if driver == DriverSQLite {
		// A single connection serializes writers on the database file.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(5)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(30 * time.Minute)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) EnsureSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if s.driver == DriverPostgres {
		if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, int64(2026031001)); err != nil {
			return fmt.Errorf("acquire schema lock: %w", err)
		}
	}

	const query = `
CREATE TABLE IF NOT EXISTS classification_drafts (
	document_id INTEGER PRIMARY KEY,
	original_classification TEXT NOT NULL,
	current_classification TEXT NOT NULL,
	original_categories TEXT NOT NULL,
	current_categories TEXT NOT NULL,
	stashed_reviewer TEXT,
	reviewer_pending BOOLEAN NOT NULL DEFAULT FALSE,
	updated_at TEXT NOT NULL
)`
	if _, err := tx.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("execute schema ddl: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema tx: %w", err)
	}
	return nil
}

func (s *Store) Put(ctx context.Context, draft domain.Draft) error {
	row, err := encodeDraft(draft)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, s.rebind(`
INSERT INTO classification_drafts (
	document_id, original_classification, current_classification, original_categories,
	current_categories, stashed_reviewer, reviewer_pending, updated_at
) VALUES (?,?,?,?,?,?,?,?)
ON CONFLICT (document_id) DO UPDATE SET
	original_classification = excluded.original_classification,
	current_classification = excluded.current_classification,
	original_categories = excluded.original_categories,
	current_categories = excluded.current_categories,
	stashed_reviewer = excluded.stashed_reviewer,
	reviewer_pending = excluded.reviewer_pending,
	updated_at = excluded.updated_at
`),
		draft.DocumentID, row.originalClassification, row.currentClassification, row.originalCategories,
		row.currentCategories, row.stashedReviewer, draft.ReviewerPending, row.updatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert draft: %w", err)
	}
	return nil
}

const selectDraft = `
SELECT document_id, original_classification, current_classification, original_categories,
	current_categories, stashed_reviewer, reviewer_pending, updated_at
FROM classification_drafts`

func (s *Store) Get(ctx context.Context, documentID int) (*domain.Draft, error) {
	row := s.db.QueryRowContext(ctx, s.rebind(selectDraft+` WHERE document_id = ?`), documentID)
	draft, err := scanDraft(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrDraftNotFound, "get draft", fmt.Errorf("document %d", documentID))
		}
		return nil, fmt.Errorf("get draft: %w", err)
	}
	return draft, nil
}

func (s *Store) List(ctx context.Context) ([]domain.Draft, error) {
	rows, err := s.db.QueryContext(ctx, selectDraft+` ORDER BY updated_at DESC, document_id`)
	if err != nil {
		return nil, fmt.Errorf("list drafts: %w", err)
	}
	defer rows.Close()

	drafts := make([]domain.Draft, 0)
	for rows.Next() {
		draft, err := scanDraft(rows)
		if err != nil {
			return nil, fmt.Errorf("scan draft: %w", err)
		}
		drafts = append(drafts, *draft)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate drafts: %w", err)
	}
	return drafts, nil
}

func (s *Store) Delete(ctx context.Context, documentID int) error {
	res, err := s.db.ExecContext(ctx, s.rebind(`DELETE FROM classification_drafts WHERE document_id = ?`), documentID)
	if err != nil {
		return fmt.Errorf("delete draft: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete draft rows affected: %w", err)
	}
	if affected == 0 {
		return domain.WrapError(domain.ErrDraftNotFound, "delete draft", fmt.Errorf("document %d", documentID))
	}
	return nil
}

// rebind rewrites ? placeholders into $N for Postgres.
func (s *Store) rebind(query string) string {
	if s.driver != DriverPostgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

type draftRow struct {
	originalClassification string
	currentClassification  string
	originalCategories     string
	currentCategories      string
	stashedReviewer        sql.NullString
	updatedAt              string
}

func encodeDraft(draft domain.Draft) (draftRow, error) {
	var row draftRow
	fields := []struct {
		name  string
		value any
		dst   *string
	}{
		{"original classification", draft.OriginalClassification, &row.originalClassification},
		{"current classification", draft.CurrentClassification, &row.currentClassification},
		{"original categories", nonNilIDs(draft.OriginalCategories), &row.originalCategories},
		{"current categories", nonNilIDs(draft.CurrentCategories), &row.currentCategories},
	}
	for _, f := range fields {
		raw, err := json.Marshal(f.value)
		if err != nil {
			return draftRow{}, fmt.Errorf("marshal %s: %w", f.name, err)
		}
		*f.dst = string(raw)
	}
	if draft.StashedReviewer != nil {
		raw, err := json.Marshal(draft.StashedReviewer)
		if err != nil {
			return draftRow{}, fmt.Errorf("marshal stashed reviewer: %w", err)
		}
		row.stashedReviewer = sql.NullString{String: string(raw), Valid: true}
	}
	updatedAt := draft.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}
	row.updatedAt = updatedAt.UTC().Format(time.RFC3339Nano)
	return row, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDraft(sc scanner) (*domain.Draft, error) {
	var (
		draft domain.Draft
		row   draftRow
	)
	if err := sc.Scan(
		&draft.DocumentID, &row.originalClassification, &row.currentClassification, &row.originalCategories,
		&row.currentCategories, &row.stashedReviewer, &draft.ReviewerPending, &row.updatedAt,
	); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(row.originalClassification), &draft.OriginalClassification); err != nil {
		return nil, fmt.Errorf("unmarshal original classification: %w", err)
	}
	if err := json.Unmarshal([]byte(row.currentClassification), &draft.CurrentClassification); err != nil {
		return nil, fmt.Errorf("unmarshal current classification: %w", err)
	}
	if err := json.Unmarshal([]byte(row.originalCategories), &draft.OriginalCategories); err != nil {
		return nil, fmt.Errorf("unmarshal original categories: %w", err)
	}
	if err := json.Unmarshal([]byte(row.currentCategories), &draft.CurrentCategories); err != nil {
		return nil, fmt.Errorf("unmarshal current categories: %w", err)
	}
	if row.stashedReviewer.Valid && row.stashedReviewer.String != "" {
		var reviewer domain.UserRef
		if err := json.Unmarshal([]byte(row.stashedReviewer.String), &reviewer); err != nil {
			return nil, fmt.Errorf("unmarshal stashed reviewer: %w", err)
		}
		draft.StashedReviewer = &reviewer
	}
	updatedAt, err := time.Parse(time.RFC3339Nano, row.updatedAt)
	if err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}
	draft.UpdatedAt = updatedAt
	return &draft, nil
}

func nonNilIDs(ids []int) []int {
	if ids == nil {
		return []int{}
	}
	return ids
}
