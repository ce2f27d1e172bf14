package streams

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"

	"cluster-analytics/internal/aggregators"
	"cluster-analytics/internal/events"
	"cluster-analytics/internal/shared/loggers"
	"cluster-analytics/internal/shared/metrics"
	"cluster-analytics/internal/shared/svcerrors"
	"cluster-analytics/internal/shared/ulid"
)

//go:generate mockgen -source=cluster_rebuild_consumer.go -destination=./mocks/cluster_rebuild_consumer_mock.go -package=mocks
type ClusterRebuildConsumer interface {
	Start(ctx context.Context)
	Stop()
}

type clusterRebuildConsumer struct {
	queue              *PartitionedQueue[events.ClusterRebuildEvent]
	aggregationService aggregators.AggregationService

	wg sync.WaitGroup

	stopOnce sync.Once
	stopCh   chan struct{}

	logger loggers.Logger
}

func NewClusterRebuildConsumer(queue *PartitionedQueue[events.ClusterRebuildEvent], aggregationService aggregators.AggregationService, logger loggers.Logger) ClusterRebuildConsumer {
	return &clusterRebuildConsumer{
		queue:              queue,
		aggregationService: aggregationService,
		stopCh:             make(chan struct{}),
		logger:             logger,
	}
}

// Start spawns one worker per partition. One worker per partition is what
// keeps rebuilds of a given cluster source sequential.
func (consumer *clusterRebuildConsumer) Start(ctx context.Context) {
	for partitionIndex := 0; partitionIndex < consumer.queue.PartitionCount(); partitionIndex++ {
		partitionIndex := partitionIndex
		ch := consumer.queue.partitions[partitionIndex]
		consumer.wg.Add(1)
		go func() {
			defer consumer.wg.Done()

			consumer.runPartitionWorker(ctx, partitionIndex, ch)
		}()
	}
}

// Stop waits for workers to stop (best called during app shutdown).
func (consumer *clusterRebuildConsumer) Stop() {
	consumer.stopOnce.Do(func() { close(consumer.stopCh) })
	consumer.wg.Wait()
}

func (consumer *clusterRebuildConsumer) runPartitionWorker(ctx context.Context, partitionIndex int, ch <-chan events.ClusterRebuildEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-consumer.stopCh:
			return
		case event := <-ch:
			consumer.handleEvent(ctx, partitionIndex, event)
		}
	}
}

func (consumer *clusterRebuildConsumer) handleEvent(ctx context.Context, partitionIndex int, event events.ClusterRebuildEvent) {
	// A panicking rebuild must not take the partition worker down.
	defer func() {
		if r := recover(); r != nil {
			loggers.Ctx(ctx).Error().
				Bytes(loggers.FieldErrorStack, debug.Stack()).
				Msgf("consumer panic recovered: %v", r)

			var panicErr error
			if err, ok := r.(error); ok {
				panicErr = err
			} else {
				panicErr = fmt.Errorf("%v", r)
			}

			svcErr := svcerrors.NewInternalErrorPanic(panicErr)
			metricRebuildConsumedTotal.WithLabelValues(streamClusterRebuild, svcErr.Code).Inc()
		}
	}()

	ctx = consumer.logger.With().
		Str(loggers.FieldPartitionId, fmt.Sprintf("%d", partitionIndex)).
		Str(loggers.FieldRequestID, ulid.NewULID()).
		Logger().WithContext(ctx)

	if svcError := consumer.aggregationService.Recompute(ctx, &event); svcError != nil {
		metricRebuildConsumedTotal.WithLabelValues(streamClusterRebuild, svcError.Code).Inc()
		return
	}
	metricRebuildConsumedTotal.WithLabelValues(streamClusterRebuild, metrics.ValueNoError).Inc()
}
