package fetchers_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"cluster-analytics/internal/fetchers"
	fetchermocks "cluster-analytics/internal/fetchers/mocks"
	"cluster-analytics/internal/ingestors"
	ingestormocks "cluster-analytics/internal/ingestors/mocks"
	"cluster-analytics/internal/shared/loggers"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func pollerLogger(t *testing.T) loggers.Logger {
	t.Helper()
	logger, err := loggers.New("error")
	require.NoError(t, err)
	return logger
}

func TestPoller_IngestsFetchedSnapshot(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fetcher := fetchermocks.NewMockSessionFetcher(ctrl)
	ingestionService := ingestormocks.NewMockIngestionService(ctrl)

	done := make(chan struct{}, 1)
	fetcher.EXPECT().
		FetchSessions(gomock.Any()).
		Return(io.NopCloser(strings.NewReader(`{"sessions":[]}`)), nil).
		MinTimes(1)
	ingestionService.EXPECT().
		IngestSnapshot(gomock.Any(), "", ingestors.FormatJSON, gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ string, _ io.Reader) (*ingestors.IngestResult, error) {
			select {
			case done <- struct{}{}:
			default:
			}
			return &ingestors.IngestResult{SnapshotID: "generated"}, nil
		}).
		MinTimes(1)

	poller := fetchers.NewPoller(fetcher, ingestionService, time.Hour, pollerLogger(t))
	poller.Start(context.Background())
	defer poller.Stop()

	// The first poll fires immediately, well before the hour interval.
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for the first poll")
	}
}

func TestPoller_FetchFailureDoesNotStopPolling(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fetcher := fetchermocks.NewMockSessionFetcher(ctrl)
	ingestionService := ingestormocks.NewMockIngestionService(ctrl)

	done := make(chan struct{}, 1)
	first := fetcher.EXPECT().
		FetchSessions(gomock.Any()).
		Return(nil, errors.New("upstream down"))
	fetcher.EXPECT().
		FetchSessions(gomock.Any()).
		After(first).
		DoAndReturn(func(_ context.Context) (io.ReadCloser, error) {
			select {
			case done <- struct{}{}:
			default:
			}
			return io.NopCloser(strings.NewReader(`{"sessions":[]}`)), nil
		}).
		MinTimes(1)
	ingestionService.EXPECT().
		IngestSnapshot(gomock.Any(), "", ingestors.FormatJSON, gomock.Any()).
		Return(&ingestors.IngestResult{}, nil).
		AnyTimes()

	poller := fetchers.NewPoller(fetcher, ingestionService, 10*time.Millisecond, pollerLogger(t))
	poller.Start(context.Background())
	defer poller.Stop()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("poller did not survive the fetch failure")
	}
}

func TestPoller_StopIsIdempotent(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fetcher := fetchermocks.NewMockSessionFetcher(ctrl)
	ingestionService := ingestormocks.NewMockIngestionService(ctrl)

	fetcher.EXPECT().
		FetchSessions(gomock.Any()).
		Return(io.NopCloser(strings.NewReader(`{"sessions":[]}`)), nil).
		AnyTimes()
	ingestionService.EXPECT().
		IngestSnapshot(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&ingestors.IngestResult{}, nil).
		AnyTimes()

	poller := fetchers.NewPoller(fetcher, ingestionService, time.Hour, pollerLogger(t))
	poller.Start(context.Background())
	poller.Stop()
	poller.Stop()
}
