package ingestors

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"cluster-analytics/internal/models"
	"cluster-analytics/internal/shared/loggers"
	"cluster-analytics/internal/shared/metrics"
	"cluster-analytics/internal/shared/ulid"
	"cluster-analytics/internal/stores"
	"cluster-analytics/internal/streams"
)

const (
	maxSnapshotBytes = 8 * 1024 * 1024
	maxHostLen       = 64
)

const (
	FormatJSON = "json"
)

// IngestResult summarizes one accepted snapshot. SkippedCount is the number
// of records dropped for schema violations (non-string host, non-integer
// start timestamp); those are not errors.
type IngestResult struct {
	SnapshotID   string
	RecordCount  int
	SkippedCount int
}

//go:generate mockgen -source=ingestion_service.go -destination=./mocks/ingestion_service_mock.go -package=mocks
type IngestionService interface {
	// IngestSnapshot validates and stores a raw session snapshot from JSON
	// format and queues it for statistics recomputation.
	IngestSnapshot(ctx context.Context, idempotencyKey string, format string, r io.Reader) (*IngestResult, error)
}

type ingestionService struct {
	snapshotStore   stores.SnapshotStore
	rebuildProducer streams.ClusterRebuildProducer
}

func NewIngestionService(snapshotStore stores.SnapshotStore, rebuildProducer streams.ClusterRebuildProducer) IngestionService {
	return &ingestionService{
		snapshotStore:   snapshotStore,
		rebuildProducer: rebuildProducer,
	}
}

func (s *ingestionService) IngestSnapshot(ctx context.Context, idempotencyKey string, format string, r io.Reader) (*IngestResult, error) {
	logger := loggers.Ctx(ctx)
	logger.Debug().Msgf("started ingesting snapshot with idempotency key: %s, format: %s", idempotencyKey, format)

	records, skipped, err := s.validateSnapshot(format, r)
	if err != nil {
		return nil, err
	}

	snapshotID := strings.TrimSpace(idempotencyKey)
	if snapshotID == "" {
		snapshotID = ulid.NewULID()
	}

	snapshot := &models.SessionSnapshot{
		SnapshotID: snapshotID,
		ReceivedAt: time.Now().UTC(),
		Records:    records,
	}

	if err := s.snapshotStore.Put(ctx, snapshot); err != nil {
		if errors.Is(err, stores.ErrSnapshotAlreadyExist) {
			svcError := errSnapshotAlreadyProcessed(err)
			metricSnapshotIngestedTotal.WithLabelValues(svcError.Code).Inc()
			return nil, svcError
		}
		return nil, errInternalSnapshotStoreFailed(err)
	}

	if err := s.rebuildProducer.Produce(ctx, snapshot); err != nil {
		return nil, errInternalRebuildPublisherFailed(err)
	}

	metricSnapshotIngestedTotal.WithLabelValues(metrics.ValueNoError).Inc()
	metricRecordsSkippedTotal.Add(float64(skipped))
	return &IngestResult{
		SnapshotID:   snapshotID,
		RecordCount:  len(records),
		SkippedCount: skipped,
	}, nil
}

func (s *ingestionService) validateSnapshot(format string, r io.Reader) ([]models.SessionRecord, int, error) {
	if r == nil {
		return nil, 0, errValidationFailed("empty request body", nil)
	}

	buf, err := s.readWithLimit(r, maxSnapshotBytes)
	if err != nil {
		return nil, 0, err
	}

	if !strings.Contains(strings.ToLower(format), FormatJSON) {
		return nil, 0, errValidationFailed(fmt.Sprintf("unsupported input format: %q", format), nil)
	}

	return s.parseJSON(buf)
}

// readWithLimit reads up to max+1 bytes from r and checks if it exceeds max.
func (s *ingestionService) readWithLimit(r io.Reader, max int) ([]byte, error) {
	buf, err := io.ReadAll(io.LimitReader(r, int64(max+1)))
	if err != nil {
		return nil, errValidationFailed("failed to read request body", err)
	}
	if len(buf) > max {
		return nil, errValidationFailed("snapshot too large: must be <= 8MB", nil)
	}
	return buf, nil
}

// parseJSON decodes {"sessions": [...]} into typed records. Records whose
// host is not a string or whose start timestamp is not an integer are schema
// violations: dropped silently, counted, never fatal. An empty session list
// is a valid snapshot; every aggregate query degrades gracefully on it.
func (s *ingestionService) parseJSON(buf []byte) ([]models.SessionRecord, int, error) {
	var payload struct {
		Sessions []map[string]any `json:"sessions"`
	}
	decoder := json.NewDecoder(bytes.NewReader(buf))
	decoder.UseNumber()
	if err := decoder.Decode(&payload); err != nil {
		return nil, 0, errValidationFailed("invalid json", err)
	}

	records := make([]models.SessionRecord, 0, len(payload.Sessions))
	skipped := 0
	for _, obj := range payload.Sessions {
		record, ok := s.objectToRecord(obj)
		if !ok {
			skipped++
			continue
		}
		records = append(records, record)
	}

	return records, skipped, nil
}

func (s *ingestionService) objectToRecord(obj map[string]any) (models.SessionRecord, bool) {
	host, ok := obj["host"].(string)
	if !ok || host == "" || len(host) > maxHostLen {
		return models.SessionRecord{}, false
	}

	startNumber, ok := obj["startTime"].(json.Number)
	if !ok {
		return models.SessionRecord{}, false
	}
	startMillis, err := startNumber.Int64()
	if err != nil {
		return models.SessionRecord{}, false
	}

	// A missing or non-integer end timestamp means the session is open.
	var endMillis int64
	if endNumber, ok := obj["endTime"].(json.Number); ok {
		if v, err := endNumber.Int64(); err == nil {
			endMillis = v
		}
	}

	return models.SessionRecord{
		Host:            host,
		StartTimeMillis: startMillis,
		EndTimeMillis:   endMillis,
	}, true
}
