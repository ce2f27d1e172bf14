package stores

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"cluster-analytics/internal/models"
	"cluster-analytics/internal/shared/filestorages"
)

var (
	ErrReportNotFound = errors.New("report not found")
)

// ReportStore persists the latest computed cluster report. Each recompute
// replaces the previous report atomically; Get returns ErrReportNotFound
// until the first snapshot has been processed.
//
//go:generate mockgen -source=report_store.go -destination=./mocks/report_store_mock.go -package=mocks
type ReportStore interface {
	Upsert(ctx context.Context, report *models.ClusterReport) error
	Get(ctx context.Context) (*models.ClusterReport, error)
}

type reportStore struct {
	fileStorage filestorages.FileStorage
	key         string
}

func NewReportStore(fileStorage filestorages.FileStorage) ReportStore {
	return &reportStore{fileStorage: fileStorage, key: "reports/latest.json"}
}

func (s *reportStore) Upsert(ctx context.Context, report *models.ClusterReport) error {
	jsonData, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	_, err = s.fileStorage.Put(ctx, s.key, bytes.NewReader(jsonData), filestorages.PutOptions{AllowOverwrite: true})
	if err != nil {
		return fmt.Errorf("failed to put report: %w", err)
	}
	return nil
}

func (s *reportStore) Get(ctx context.Context) (*models.ClusterReport, error) {
	readCloser, err := s.fileStorage.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, filestorages.ErrFileNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, fmt.Errorf("failed to get report: %w", err)
	}

	defer readCloser.Close()
	data, err := io.ReadAll(readCloser)
	if err != nil {
		return nil, fmt.Errorf("failed to read report: %w", err)
	}

	var report models.ClusterReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal report: %w", err)
	}
	return &report, nil
}
