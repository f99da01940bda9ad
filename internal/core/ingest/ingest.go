// internal/core/ingest/ingest.go
package ingest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/solatis/otds/internal/catalog"
	"github.com/solatis/otds/internal/core/config"
	"github.com/solatis/otds/internal/core/db"
	"github.com/solatis/otds/internal/core/metrics"
	"github.com/solatis/otds/internal/markup"
	"github.com/solatis/otds/internal/types"
)

/*
 * Single-writer ingestion of OTDS documents into a Catalog.
 *
 * Every document passes through the same steps:
 *
 *   read      size check against ingest.max_file_size, SHA-256 checksum
 *   gate      optional structural validation before the catalog sees it
 *   parse     Catalog.Parse; records become visible as they are built
 *   account   ledger row, metrics, one log line with the outcome
 *
 * A Service owns its catalog. Ingestions are serialized by a mutex, so the
 * watch command and a batch run may share one Service. A failed parse is
 * still accounted for: the ledger keeps the error kind and location, and the
 * records added before the failure are counted in the result.
 */

// Schema gates selectable by ingest.schema_gate.
const (
	GateRoot = "root"
	GateNone = "none"
)

// ErrTooLarge is returned for documents above the configured size limit.
var ErrTooLarge = errors.New("document exceeds max_file_size")

// Ledger stores the outcome of every ingestion.
type Ledger interface {
	Record(ing db.Ingestion) error
	SeenChecksum(checksum string) (bool, error)
}

// Result describes one ingestion, successful or not.
type Result struct {
	IngestID   types.IngestID
	Source     string
	Checksum   string
	Size       int64
	UpdateMode string
	Duplicate  bool
	Added      catalog.Stats
	Duration   time.Duration
}

// Service reads documents into a catalog.
type Service struct {
	mu sync.Mutex

	catalog     *catalog.Catalog
	gate        markup.Validator
	maxFileSize int64

	ledger  Ledger
	metrics *metrics.Metrics
	logger  *slog.Logger

	now func() time.Time
}

// NewService returns a service feeding cat. ledger and m may be nil.
func NewService(cat *catalog.Catalog, cfg config.IngestConfig, ledger Ledger, m *metrics.Metrics, logger *slog.Logger) (*Service, error) {
	var gate markup.Validator
	switch cfg.SchemaGate {
	case GateRoot:
		gate = markup.RootValidator{Dialect: cat.Dialect()}
	case GateNone, "":
	default:
		return nil, fmt.Errorf("unknown schema gate %q", cfg.SchemaGate)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		catalog:     cat,
		gate:        gate,
		maxFileSize: cfg.MaxFileSize,
		ledger:      ledger,
		metrics:     m,
		logger:      logger,
		now:         time.Now,
	}, nil
}

// Catalog returns the catalog the service writes to. Callers must not read
// it while an ingestion is running.
func (s *Service) Catalog() *catalog.Catalog { return s.catalog }

// IngestFile reads the document at path.
func (s *Service) IngestFile(ctx context.Context, path string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if s.maxFileSize > 0 && info.Size() > s.maxFileSize {
		return nil, fmt.Errorf("%s: %w (%d > %d bytes)", path, ErrTooLarge, info.Size(), s.maxFileSize)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return s.Ingest(ctx, path, data)
}

// Ingest reads one document held in memory. source names it in the ledger
// and in logs. The returned Result is non-nil whenever the document was
// attempted, including when err is a parse failure.
func (s *Service) Ingest(ctx context.Context, source string, data []byte) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.maxFileSize > 0 && int64(len(data)) > s.maxFileSize {
		return nil, fmt.Errorf("%s: %w (%d > %d bytes)", source, ErrTooLarge, len(data), s.maxFileSize)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sum := sha256.Sum256(data)
	res := &Result{
		IngestID: types.NewIngestID(),
		Source:   source,
		Checksum: hex.EncodeToString(sum[:]),
		Size:     int64(len(data)),
	}
	log := s.logger.With("ingest_id", res.IngestID, "source", source)

	if s.ledger != nil {
		seen, err := s.ledger.SeenChecksum(res.Checksum)
		if err != nil {
			return nil, err
		}
		res.Duplicate = seen
	}

	log.Info("ingestion started", "checksum", res.Checksum, "size_bytes", res.Size, "duplicate", res.Duplicate)
	if res.Duplicate && s.metrics != nil {
		s.metrics.IncDuplicates()
	}

	started := s.now()
	before := s.catalog.Stats()
	parseErr := s.parse(data, res)
	res.Added = s.catalog.Stats().Sub(before)
	res.Duration = s.now().Sub(started)

	if err := s.account(res, started, parseErr); err != nil {
		log.Error("ledger write failed", "error", err)
		if parseErr == nil {
			return res, err
		}
	}

	if parseErr != nil {
		attrs := []any{"kind", types.KindName(parseErr), "error", parseErr, "duration", res.Duration}
		var located *types.Error
		if errors.As(parseErr, &located) {
			attrs = append(attrs, "path", located.Path)
		}
		log.Error("ingestion failed", attrs...)
		return res, parseErr
	}

	attrs := []any{"update_mode", res.UpdateMode, "duration", res.Duration}
	for _, c := range res.Added.Collections() {
		attrs = append(attrs, c.Collection, c.Records)
	}
	log.Info("ingestion finished", attrs...)
	return res, nil
}

func (s *Service) parse(data []byte, res *Result) error {
	doc, err := markup.ReadBytes(data)
	if err != nil {
		return err
	}
	if s.gate != nil {
		if err := s.gate.Validate(doc); err != nil {
			return err
		}
	}
	if root, err := markup.Root(doc, s.catalog.Dialect()); err == nil {
		if mode, err := root.UpdateMode(); err == nil {
			res.UpdateMode = string(mode)
		}
	}
	return s.catalog.Parse(doc)
}

// account writes the ledger row and updates metrics.
func (s *Service) account(res *Result, started time.Time, parseErr error) error {
	if s.metrics != nil {
		s.metrics.RecordIngest(types.KindName(parseErr), res.Duration, int(res.Size), s.now())
		for _, c := range s.catalog.Stats().Collections() {
			s.metrics.SetRecords(c.Collection, c.Records)
		}
	}
	if s.ledger == nil {
		return nil
	}

	ing := db.Ingestion{
		IngestID:   string(res.IngestID),
		Source:     res.Source,
		Checksum:   res.Checksum,
		SizeBytes:  res.Size,
		UpdateMode: res.UpdateMode,
		Status:     db.StatusOK,
		StartedAt:  started,
		DurationMs: res.Duration.Milliseconds(),
	}
	if parseErr != nil {
		ing.Status = db.StatusFailed
		ing.ErrorKind = types.KindName(parseErr)
		ing.ErrorDetail = parseErr.Error()
		var located *types.Error
		if errors.As(parseErr, &located) {
			ing.ErrorPath = located.Path
			ing.ErrorDetail = located.Detail
		}
	}
	for _, c := range res.Added.Collections() {
		ing.Counts = append(ing.Counts, db.CollectionCount{Collection: c.Collection, Records: c.Records})
	}
	return s.ledger.Record(ing)
}
