package db

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
)

func openTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	conn, err := Open("sqlite://" + filepath.Join(t.TempDir(), "ledger.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	if err := MigrateUp(conn); err != nil {
		t.Fatalf("MigrateUp: %v", err)
	}
	return conn
}

func openTestLedger(t *testing.T) *Ledger {
	t.Helper()
	l, err := NewLedger(openTestDB(t))
	if err != nil {
		t.Fatalf("NewLedger: %v", err)
	}
	return l
}

func TestOpen_UnsupportedScheme(t *testing.T) {
	if _, err := Open("mysql://localhost/otds"); err == nil {
		t.Fatal("expected error for mysql scheme")
	}
}

func TestMigrateUp_Idempotent(t *testing.T) {
	conn := openTestDB(t)
	if err := MigrateUp(conn); err != nil {
		t.Fatalf("second MigrateUp: %v", err)
	}

	statuses, err := MigrateStatus(conn)
	if err != nil {
		t.Fatalf("MigrateStatus: %v", err)
	}
	if len(statuses) != 2 {
		t.Fatalf("expected 2 migrations, got %d", len(statuses))
	}
	for _, s := range statuses {
		if !s.Applied || s.AppliedAt == nil {
			t.Errorf("migration %s not applied", s.ID)
		}
	}
	if statuses[0].ID != "001_ingestions.sql" {
		t.Errorf("expected 001_ingestions.sql first, got %s", statuses[0].ID)
	}
}

func TestSplitStatements(t *testing.T) {
	sql := "-- header\nCREATE TABLE a (x INTEGER);\n\n-- second\nCREATE INDEX i ON a (x)\n"
	got := splitStatements(sql)
	if len(got) != 2 {
		t.Fatalf("expected 2 statements, got %d: %q", len(got), got)
	}
	if !strings.HasPrefix(got[0], "CREATE TABLE") || !strings.HasPrefix(got[1], "CREATE INDEX") {
		t.Errorf("unexpected statements %q", got)
	}
}

func TestLedger_RecordAndList(t *testing.T) {
	l := openTestLedger(t)
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	first := Ingestion{
		IngestID:   "018e0000-0000-7000-8000-000000000001",
		Source:     "/feeds/a.xml",
		Checksum:   "aaaa",
		SizeBytes:  1024,
		UpdateMode: "New",
		Status:     StatusOK,
		StartedAt:  base,
		DurationMs: 12,
		Counts: []CollectionCount{
			{Collection: "accommodations", Records: 3},
			{Collection: "brands", Records: 0},
			{Collection: "products", Records: 1},
		},
	}
	second := Ingestion{
		IngestID:    "018e0000-0000-7000-8000-000000000002",
		Source:      "/feeds/b.xml",
		Checksum:    "bbbb",
		SizeBytes:   10,
		Status:      StatusFailed,
		ErrorKind:   "schema_violation",
		ErrorPath:   "/OTDS",
		ErrorDetail: "missing attribute",
		StartedAt:   base.Add(time.Minute),
		DurationMs:  1,
	}
	for _, ing := range []Ingestion{first, second} {
		if err := l.Record(ing); err != nil {
			t.Fatalf("Record(%s): %v", ing.IngestID, err)
		}
	}

	got, err := l.List(10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(got))
	}
	if got[0].IngestID != second.IngestID {
		t.Errorf("expected newest first, got %s", got[0].IngestID)
	}
	if got[0].ErrorKind != "schema_violation" || got[0].ErrorPath != "/OTDS" {
		t.Errorf("unexpected error columns %+v", got[0])
	}
	if len(got[0].Counts) != 0 {
		t.Errorf("failed ingestion should carry no counts, got %v", got[0].Counts)
	}
	if !got[1].StartedAt.Equal(base) {
		t.Errorf("StartedAt = %v, want %v", got[1].StartedAt, base)
	}
	// zero counts are not stored; remaining ones are ordered by collection
	want := []CollectionCount{{"accommodations", 3}, {"products", 1}}
	if len(got[1].Counts) != len(want) {
		t.Fatalf("counts = %v, want %v", got[1].Counts, want)
	}
	for i := range want {
		if got[1].Counts[i] != want[i] {
			t.Errorf("counts[%d] = %v, want %v", i, got[1].Counts[i], want[i])
		}
	}

	limited, err := l.List(1)
	if err != nil {
		t.Fatalf("List(1): %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("expected limit to apply, got %d rows", len(limited))
	}
}

func TestLedger_SeenChecksum(t *testing.T) {
	l := openTestLedger(t)
	now := time.Now()

	records := []Ingestion{
		{IngestID: "018e0000-0000-7000-8000-000000000010", Source: "a", Checksum: "ok-sum", Status: StatusOK, StartedAt: now},
		{IngestID: "018e0000-0000-7000-8000-000000000011", Source: "b", Checksum: "failed-sum", Status: StatusFailed, StartedAt: now},
	}
	for _, r := range records {
		if err := l.Record(r); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	tests := []struct {
		checksum string
		want     bool
	}{
		{"ok-sum", true},
		{"failed-sum", false},
		{"unknown", false},
	}
	for _, tt := range tests {
		got, err := l.SeenChecksum(tt.checksum)
		if err != nil {
			t.Fatalf("SeenChecksum(%s): %v", tt.checksum, err)
		}
		if got != tt.want {
			t.Errorf("SeenChecksum(%s) = %v, want %v", tt.checksum, got, tt.want)
		}
	}
}

func TestLedger_DuplicateIDRejected(t *testing.T) {
	l := openTestLedger(t)
	ing := Ingestion{IngestID: "018e0000-0000-7000-8000-000000000020", Source: "a", Checksum: "c", Status: StatusOK, StartedAt: time.Now()}
	if err := l.Record(ing); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := l.Record(ing); err == nil {
		t.Fatal("expected primary key violation on second Record")
	}
}
