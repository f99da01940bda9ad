package ingest

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/solatis/otds/internal/catalog"
	"github.com/solatis/otds/internal/core/config"
	"github.com/solatis/otds/internal/core/db"
	"github.com/solatis/otds/internal/core/logging"
	"github.com/solatis/otds/internal/core/metrics"
	"github.com/solatis/otds/internal/markup"
	"github.com/solatis/otds/internal/types"
)

const ns = `xmlns="http://otds-group.org/otds"`

var (
	newDoc   = `<OTDS ` + ns + `><Brands><Brand Key="SUN"/></Brands></OTDS>`
	mergeDoc = `<OTDS ` + ns + ` UpdateMode="Merge"><Brands UpdateMode="Merge"><Brand Key="MOON"/></Brands></OTDS>`
)

// memLedger keeps ledger rows in memory.
type memLedger struct {
	rows []db.Ingestion
}

func (l *memLedger) Record(ing db.Ingestion) error {
	l.rows = append(l.rows, ing)
	return nil
}

func (l *memLedger) SeenChecksum(checksum string) (bool, error) {
	for _, r := range l.rows {
		if r.Checksum == checksum && r.Status == db.StatusOK {
			return true, nil
		}
	}
	return false, nil
}

func newService(t *testing.T, ledger Ledger, m *metrics.Metrics) *Service {
	t.Helper()
	cfg := config.Default().Ingest
	svc, err := NewService(catalog.New(markup.NewDialect()), cfg, ledger, m, logging.Discard())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestNewService_UnknownGate(t *testing.T) {
	cfg := config.IngestConfig{SchemaGate: "xsd"}
	if _, err := NewService(catalog.New(markup.NewDialect()), cfg, nil, nil, nil); err == nil {
		t.Fatal("expected error for unknown gate")
	}
}

func TestIngest_Success(t *testing.T) {
	ledger := &memLedger{}
	m := metrics.New()
	svc := newService(t, ledger, m)

	res, err := svc.Ingest(context.Background(), "a.xml", []byte(newDoc))
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if res.Added.Brands != 1 || res.Added.Total() != 1 {
		t.Errorf("unexpected added counts %+v", res.Added)
	}
	if res.UpdateMode != "New" {
		t.Errorf("UpdateMode = %q, want New", res.UpdateMode)
	}
	if len(res.Checksum) != 64 {
		t.Errorf("expected hex sha256 checksum, got %q", res.Checksum)
	}
	if _, err := types.ParseIngestID(string(res.IngestID)); err != nil {
		t.Errorf("invalid ingest id: %v", err)
	}

	if len(ledger.rows) != 1 {
		t.Fatalf("expected 1 ledger row, got %d", len(ledger.rows))
	}
	row := ledger.rows[0]
	if row.Status != db.StatusOK || row.IngestID != string(res.IngestID) || row.Source != "a.xml" {
		t.Errorf("unexpected ledger row %+v", row)
	}

	if got := testutil.ToFloat64(m.IngestionsTotal.WithLabelValues("ok")); got != 1 {
		t.Errorf("ingestions_total{ok} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.CatalogRecords.WithLabelValues("brands")); got != 1 {
		t.Errorf("catalog_records{brands} = %v, want 1", got)
	}
}

func TestIngest_Failure(t *testing.T) {
	ledger := &memLedger{}
	m := metrics.New()
	svc := newService(t, ledger, m)

	tests := []struct {
		name     string
		doc      string
		wantErr  error
		wantKind string
	}{
		{"no root element", `just text`, types.ErrSchemaViolation, "schema_violation"},
		{"foreign root", `<Catalog ` + ns + `/>`, types.ErrSchemaViolation, "schema_violation"},
		{"delete mode", `<OTDS ` + ns + ` UpdateMode="Delete"/>`, types.ErrUnsupportedFeature, "unsupported_feature"},
	}
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := svc.Ingest(context.Background(), tt.name, []byte(tt.doc))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if res == nil {
				t.Fatal("expected result for attempted ingestion")
			}
			row := ledger.rows[i]
			if row.Status != db.StatusFailed || row.ErrorKind != tt.wantKind {
				t.Errorf("unexpected ledger row %+v", row)
			}
			if row.ErrorPath == "" {
				t.Errorf("expected error location in ledger row")
			}
		})
	}

	if got := testutil.ToFloat64(m.IngestionsTotal.WithLabelValues("schema_violation")); got != 2 {
		t.Errorf("ingestions_total{schema_violation} = %v, want 2", got)
	}
	if !svc.Catalog().Empty() {
		t.Error("failed documents must not add records")
	}
}

func TestIngest_Sequence(t *testing.T) {
	svc := newService(t, &memLedger{}, nil)
	ctx := context.Background()

	if _, err := svc.Ingest(ctx, "new.xml", []byte(newDoc)); err != nil {
		t.Fatalf("new: %v", err)
	}
	if _, err := svc.Ingest(ctx, "again.xml", []byte(newDoc)); !errors.Is(err, types.ErrOverwriteConflict) {
		t.Fatalf("second New document: err = %v, want overwrite conflict", err)
	}
	res, err := svc.Ingest(ctx, "merge.xml", []byte(mergeDoc))
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if res.Added.Brands != 1 {
		t.Errorf("merge added %d brands, want 1", res.Added.Brands)
	}
	if got := svc.Catalog().Brands().Keys(); len(got) != 2 || got[0] != "SUN" || got[1] != "MOON" {
		t.Errorf("brand keys = %v, want [SUN MOON]", got)
	}
}

func TestIngest_Duplicate(t *testing.T) {
	ledger := &memLedger{}
	m := metrics.New()
	svc := newService(t, ledger, m)
	ctx := context.Background()

	first, err := svc.Ingest(ctx, "a.xml", []byte(mergeDoc))
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	if first.Duplicate {
		t.Error("first ingestion reported as duplicate")
	}
	second, _ := svc.Ingest(ctx, "b.xml", []byte(mergeDoc))
	if second == nil || !second.Duplicate {
		t.Fatalf("expected duplicate result, got %+v", second)
	}
	if second.Checksum != first.Checksum {
		t.Errorf("checksums differ for identical documents")
	}
	if got := testutil.ToFloat64(m.DuplicatesTotal); got != 1 {
		t.Errorf("duplicates_total = %v, want 1", got)
	}
}

func TestIngestFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "feed.xml")
	if err := os.WriteFile(path, []byte(newDoc), 0o644); err != nil {
		t.Fatal(err)
	}

	svc := newService(t, nil, nil)
	res, err := svc.IngestFile(context.Background(), path)
	if err != nil {
		t.Fatalf("IngestFile: %v", err)
	}
	if res.Source != path || res.Size != int64(len(newDoc)) {
		t.Errorf("unexpected result %+v", res)
	}

	if _, err := svc.IngestFile(context.Background(), filepath.Join(dir, "missing.xml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestIngestFile_TooLarge(t *testing.T) {
	path := filepath.Join(t.TempDir(), "big.xml")
	if err := os.WriteFile(path, []byte(newDoc), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := config.IngestConfig{SchemaGate: GateRoot, MaxFileSize: 16}
	svc, err := NewService(catalog.New(markup.NewDialect()), cfg, nil, nil, logging.Discard())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.IngestFile(context.Background(), path); !errors.Is(err, ErrTooLarge) {
		t.Fatalf("err = %v, want ErrTooLarge", err)
	}
}

func TestIngest_Cancelled(t *testing.T) {
	svc := newService(t, nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := svc.Ingest(ctx, "a.xml", []byte(newDoc)); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestIngest_Logging(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.Default().Ingest
	svc, err := NewService(catalog.New(markup.NewDialect()), cfg, nil, nil, logging.NewWithWriter("info", "json", &buf))
	if err != nil {
		t.Fatal(err)
	}
	res, err := svc.Ingest(context.Background(), "a.xml", []byte(newDoc))
	if err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{`"msg":"ingestion finished"`, `"ingest_id":"` + string(res.IngestID) + `"`, `"brands":1`} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %s:\n%s", want, out)
		}
	}
}

func TestIngest_SQLiteLedger(t *testing.T) {
	conn, err := db.Open("sqlite://" + filepath.Join(t.TempDir(), "ledger.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()
	if err := db.MigrateUp(conn); err != nil {
		t.Fatal(err)
	}
	ledger, err := db.NewLedger(conn)
	if err != nil {
		t.Fatal(err)
	}

	svc := newService(t, ledger, nil)
	if _, err := svc.Ingest(context.Background(), "a.xml", []byte(newDoc)); err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	rows, err := ledger.List(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 || len(rows[0].Counts) != 1 || rows[0].Counts[0].Collection != "brands" {
		t.Fatalf("unexpected ledger contents %+v", rows)
	}
}
