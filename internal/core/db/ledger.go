package db

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// Ingestion status values.
const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

// Ingestion is one ledger row: the outcome of reading a single document.
type Ingestion struct {
	IngestID    string    `db:"ingest_id" yaml:"ingest_id"`
	Source      string    `db:"source" yaml:"source"`
	Checksum    string    `db:"checksum" yaml:"checksum"`
	SizeBytes   int64     `db:"size_bytes" yaml:"size_bytes"`
	UpdateMode  string    `db:"update_mode" yaml:"update_mode,omitempty"`
	Status      string    `db:"status" yaml:"status"`
	ErrorKind   string    `db:"error_kind" yaml:"error_kind,omitempty"`
	ErrorPath   string    `db:"error_path" yaml:"error_path,omitempty"`
	ErrorDetail string    `db:"error_detail" yaml:"error_detail,omitempty"`
	StartedAt   time.Time `db:"started_at" yaml:"started_at"`
	DurationMs  int64     `db:"duration_ms" yaml:"duration_ms"`

	// Counts holds the records a successful ingestion added, per collection.
	Counts []CollectionCount `db:"-" yaml:"counts,omitempty"`
}

// CollectionCount is the number of records added to one collection.
type CollectionCount struct {
	Collection string `db:"collection" yaml:"collection"`
	Records    int    `db:"records" yaml:"records"`
}

// Ledger records ingestion attempts.
type Ledger struct {
	db *sqlx.DB
	q  *Queries
}

// NewLedger returns a ledger over a migrated database.
func NewLedger(db *sqlx.DB) (*Ledger, error) {
	q, err := LoadQueries(db)
	if err != nil {
		return nil, err
	}
	return &Ledger{db: db, q: q}, nil
}

// Record stores ing and its non-zero counts in one transaction.
func (l *Ledger) Record(ing Ingestion) error {
	tx, err := l.db.Beginx()
	if err != nil {
		return fmt.Errorf("begin ledger transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = l.q.ExecTx(tx, "insert-ingestion",
		ing.IngestID, ing.Source, ing.Checksum, ing.SizeBytes, ing.UpdateMode,
		ing.Status, ing.ErrorKind, ing.ErrorPath, ing.ErrorDetail,
		timestamp(l.db.DriverName(), ing.StartedAt), ing.DurationMs,
	)
	if err != nil {
		return fmt.Errorf("insert ingestion %s: %w", ing.IngestID, err)
	}

	for _, c := range ing.Counts {
		if c.Records == 0 {
			continue
		}
		if _, err := l.q.ExecTx(tx, "insert-ingestion-count", ing.IngestID, c.Collection, c.Records); err != nil {
			return fmt.Errorf("insert count %s/%s: %w", ing.IngestID, c.Collection, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit ledger transaction: %w", err)
	}
	return nil
}

// List returns up to limit ingestions, newest first.
func (l *Ledger) List(limit int) ([]Ingestion, error) {
	var rows []Ingestion
	if err := l.q.Select("list-ingestions", &rows, limit); err != nil {
		return nil, fmt.Errorf("list ingestions: %w", err)
	}
	for i := range rows {
		if err := l.q.Select("list-ingestion-counts", &rows[i].Counts, rows[i].IngestID); err != nil {
			return nil, fmt.Errorf("list counts for %s: %w", rows[i].IngestID, err)
		}
		rows[i].StartedAt = rows[i].StartedAt.UTC()
	}
	return rows, nil
}

// SeenChecksum reports whether a document with this checksum was already
// ingested successfully.
func (l *Ledger) SeenChecksum(checksum string) (bool, error) {
	var n int
	if err := l.q.Get("count-checksum", &n, checksum); err != nil {
		return false, fmt.Errorf("look up checksum: %w", err)
	}
	return n > 0, nil
}
