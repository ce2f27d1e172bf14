package streams

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	aggregatormocks "cluster-analytics/internal/aggregators/mocks"
	"cluster-analytics/internal/events"
	"cluster-analytics/internal/models"
	"cluster-analytics/internal/shared/loggers"
	"cluster-analytics/internal/shared/svcerrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func testLogger(t *testing.T) loggers.Logger {
	t.Helper()
	logger, err := loggers.New("error")
	require.NoError(t, err)
	return logger
}

func TestClusterRebuildConsumer_ProcessesEvents(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	queue := NewPartitionedQueue[events.ClusterRebuildEvent]()
	aggregationService := aggregatormocks.NewMockAggregationService(ctrl)
	consumer := NewClusterRebuildConsumer(queue, aggregationService, testLogger(t))

	var mu sync.Mutex
	var snapshotIDs []string
	done := make(chan struct{}, 2)
	aggregationService.EXPECT().
		Recompute(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, event *events.ClusterRebuildEvent) *svcerrors.ServiceError {
			mu.Lock()
			snapshotIDs = append(snapshotIDs, event.SnapshotID)
			mu.Unlock()
			done <- struct{}{}
			return nil
		}).
		Times(2)

	consumer.Start(context.Background())
	defer consumer.Stop()

	producer := NewClusterRebuildProducer(queue, "campus")
	require.NoError(t, producer.Produce(context.Background(), &models.SessionSnapshot{SnapshotID: "snap-1"}))
	require.NoError(t, producer.Produce(context.Background(), &models.SessionSnapshot{SnapshotID: "snap-2"}))

	for i := 0; i < 2; i++ {
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for events to be consumed")
		}
	}

	mu.Lock()
	defer mu.Unlock()
	// Same source means same partition, so order is preserved.
	assert.Equal(t, []string{"snap-1", "snap-2"}, snapshotIDs)
}

func TestClusterRebuildConsumer_SurvivesRecomputeFailure(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	queue := NewPartitionedQueue[events.ClusterRebuildEvent]()
	aggregationService := aggregatormocks.NewMockAggregationService(ctrl)
	consumer := NewClusterRebuildConsumer(queue, aggregationService, testLogger(t))

	done := make(chan struct{}, 2)
	first := aggregationService.EXPECT().
		Recompute(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *events.ClusterRebuildEvent) *svcerrors.ServiceError {
			done <- struct{}{}
			return svcerrors.NewInternalErrorUndefined(errors.New("boom"))
		})
	aggregationService.EXPECT().
		Recompute(gomock.Any(), gomock.Any()).
		After(first).
		DoAndReturn(func(_ context.Context, _ *events.ClusterRebuildEvent) *svcerrors.ServiceError {
			done <- struct{}{}
			return nil
		})

	consumer.Start(context.Background())
	defer consumer.Stop()

	producer := NewClusterRebuildProducer(queue, "campus")
	require.NoError(t, producer.Produce(context.Background(), &models.SessionSnapshot{SnapshotID: "snap-1"}))
	require.NoError(t, producer.Produce(context.Background(), &models.SessionSnapshot{SnapshotID: "snap-2"}))

	for i := 0; i < 2; i++ {
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for events to be consumed")
		}
	}
}

func TestClusterRebuildConsumer_SurvivesPanic(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	queue := NewPartitionedQueue[events.ClusterRebuildEvent]()
	aggregationService := aggregatormocks.NewMockAggregationService(ctrl)
	consumer := NewClusterRebuildConsumer(queue, aggregationService, testLogger(t))

	done := make(chan struct{}, 1)
	first := aggregationService.EXPECT().
		Recompute(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *events.ClusterRebuildEvent) *svcerrors.ServiceError {
			panic("rebuild exploded")
		})
	aggregationService.EXPECT().
		Recompute(gomock.Any(), gomock.Any()).
		After(first).
		DoAndReturn(func(_ context.Context, _ *events.ClusterRebuildEvent) *svcerrors.ServiceError {
			done <- struct{}{}
			return nil
		})

	consumer.Start(context.Background())
	defer consumer.Stop()

	producer := NewClusterRebuildProducer(queue, "campus")
	require.NoError(t, producer.Produce(context.Background(), &models.SessionSnapshot{SnapshotID: "snap-1"}))
	require.NoError(t, producer.Produce(context.Background(), &models.SessionSnapshot{SnapshotID: "snap-2"}))

	// The worker must keep consuming after the panic.
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("worker did not survive the panic")
	}
}

func TestClusterRebuildConsumer_StopIsIdempotent(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	queue := NewPartitionedQueue[events.ClusterRebuildEvent]()
	aggregationService := aggregatormocks.NewMockAggregationService(ctrl)
	consumer := NewClusterRebuildConsumer(queue, aggregationService, testLogger(t))

	consumer.Start(context.Background())
	consumer.Stop()
	consumer.Stop()
}
