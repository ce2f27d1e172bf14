package fetchers

import (
	"context"
	"sync"
	"time"

	"cluster-analytics/internal/ingestors"
	"cluster-analytics/internal/shared/loggers"
	"cluster-analytics/internal/shared/metrics"
	"cluster-analytics/internal/shared/svcerrors"
	"cluster-analytics/internal/shared/ulid"
)

// Poller periodically pulls a session snapshot from the upstream endpoint
// and hands it to the ingestion pipeline. Each poll ingests under a fresh
// snapshot id, so consecutive polls always trigger a recompute.
type Poller interface {
	Start(ctx context.Context)
	Stop()
}

type poller struct {
	fetcher          SessionFetcher
	ingestionService ingestors.IngestionService
	interval         time.Duration

	wg sync.WaitGroup

	stopOnce sync.Once
	stopCh   chan struct{}

	logger loggers.Logger
}

func NewPoller(fetcher SessionFetcher, ingestionService ingestors.IngestionService, interval time.Duration, logger loggers.Logger) Poller {
	return &poller{
		fetcher:          fetcher,
		ingestionService: ingestionService,
		interval:         interval,
		stopCh:           make(chan struct{}),
		logger:           logger,
	}
}

// Start runs the poll loop in the background. The first poll fires
// immediately so a fresh deployment does not wait a full interval for data.
func (p *poller) Start(ctx context.Context) {
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()

		p.pollOnce(ctx)

		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-p.stopCh:
				return
			case <-ticker.C:
				p.pollOnce(ctx)
			}
		}
	}()
}

// Stop waits for the poll loop to finish (best called during app shutdown).
func (p *poller) Stop() {
	p.stopOnce.Do(func() { close(p.stopCh) })
	p.wg.Wait()
}

func (p *poller) pollOnce(ctx context.Context) {
	ctx = p.logger.With().
		Str(loggers.FieldRequestID, ulid.NewULID()).
		Logger().WithContext(ctx)
	logger := loggers.Ctx(ctx)

	body, err := p.fetcher.FetchSessions(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("failed to fetch sessions")
		metricPollTotal.WithLabelValues(codeFetchFailed).Inc()
		return
	}
	defer body.Close()

	result, err := p.ingestionService.IngestSnapshot(ctx, "", ingestors.FormatJSON, body)
	if err != nil {
		svcErr, ok := svcerrors.AsServiceError(err)
		if !ok {
			svcErr = svcerrors.NewInternalErrorUndefined(err)
		}
		logger.Error().
			Err(svcErr.Cause).
			Str(loggers.FieldErrorCode, svcErr.Code).
			Msg("failed to ingest fetched snapshot")
		metricPollTotal.WithLabelValues(svcErr.Code).Inc()
		return
	}

	logger.Info().
		Str(loggers.FieldSnapshotID, result.SnapshotID).
		Int("recordCount", result.RecordCount).
		Int("skippedCount", result.SkippedCount).
		Msg("ingested fetched snapshot")
	metricPollTotal.WithLabelValues(metrics.ValueNoError).Inc()
}
