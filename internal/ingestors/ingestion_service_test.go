package ingestors_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"cluster-analytics/internal/ingestors"
	"cluster-analytics/internal/models"
	"cluster-analytics/internal/shared/svcerrors"
	"cluster-analytics/internal/stores"
	storemocks "cluster-analytics/internal/stores/mocks"
	streammocks "cluster-analytics/internal/streams/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestIngestSnapshot_ErrValidationFailed_InvalidFormat(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	snapshotStore := storemocks.NewMockSnapshotStore(ctrl)
	rebuildProducer := streammocks.NewMockClusterRebuildProducer(ctrl)
	service := ingestors.NewIngestionService(snapshotStore, rebuildProducer)

	ctx := context.Background()
	body := bytes.NewReader([]byte(`{"sessions":[]}`))
	result, err := service.IngestSnapshot(ctx, "key1", "xml", body)

	require.Error(t, err, "expected error")
	svcErr, ok := svcerrors.AsServiceError(err)
	require.True(t, ok, "expected ServiceError")
	assert.Equal(t, "ING_1000", svcErr.Code)
	assert.Equal(t, "invalid_argument", svcErr.Category)
	assert.Nil(t, result, "expected nil result on error")
}

func TestIngestSnapshot_ErrValidationFailed_InvalidJSON(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	snapshotStore := storemocks.NewMockSnapshotStore(ctrl)
	rebuildProducer := streammocks.NewMockClusterRebuildProducer(ctrl)
	service := ingestors.NewIngestionService(snapshotStore, rebuildProducer)

	ctx := context.Background()
	invalidJSON := bytes.NewReader([]byte(`{invalid json}`))
	result, err := service.IngestSnapshot(ctx, "key1", "json", invalidJSON)

	require.Error(t, err, "expected error")
	svcErr, ok := svcerrors.AsServiceError(err)
	require.True(t, ok, "expected ServiceError")
	assert.Equal(t, "ING_1000", svcErr.Code)
	assert.Equal(t, "invalid_argument", svcErr.Category)
	assert.Nil(t, result, "expected nil result on error")
}

func TestIngestSnapshot_ErrValidationFailed_SnapshotTooLarge(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	snapshotStore := storemocks.NewMockSnapshotStore(ctrl)
	rebuildProducer := streammocks.NewMockClusterRebuildProducer(ctrl)
	service := ingestors.NewIngestionService(snapshotStore, rebuildProducer)

	ctx := context.Background()
	// Body one byte over the 8MB limit
	oversized := strings.NewReader(strings.Repeat("x", 8*1024*1024+1))
	result, err := service.IngestSnapshot(ctx, "key1", "json", oversized)

	require.Error(t, err, "expected error")
	svcErr, ok := svcerrors.AsServiceError(err)
	require.True(t, ok, "expected ServiceError")
	assert.Equal(t, "ING_1000", svcErr.Code)
	assert.Contains(t, svcErr.Message, "too large")
	assert.Nil(t, result, "expected nil result on error")
}

func TestIngestSnapshot_Success(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	snapshotStore := storemocks.NewMockSnapshotStore(ctrl)
	rebuildProducer := streammocks.NewMockClusterRebuildProducer(ctrl)
	service := ingestors.NewIngestionService(snapshotStore, rebuildProducer)

	payload := `{"sessions":[
		{"host":"z1r1p1","startTime":1700000000000,"endTime":1700003600000},
		{"host":"z1r1p2","startTime":1700000000000}
	]}`

	var stored *models.SessionSnapshot
	snapshotStore.EXPECT().
		Put(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, snapshot *models.SessionSnapshot) error {
			stored = snapshot
			return nil
		})
	rebuildProducer.EXPECT().
		Produce(gomock.Any(), gomock.Any()).
		Return(nil)

	ctx := context.Background()
	result, err := service.IngestSnapshot(ctx, "key1", "application/json", strings.NewReader(payload))

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "key1", result.SnapshotID)
	assert.Equal(t, 2, result.RecordCount)
	assert.Equal(t, 0, result.SkippedCount)

	require.NotNil(t, stored)
	assert.Equal(t, "key1", stored.SnapshotID)
	require.Len(t, stored.Records, 2)
	assert.Equal(t, "z1r1p1", stored.Records[0].Host)
	assert.Equal(t, int64(1_700_003_600_000), stored.Records[0].EndTimeMillis)
	assert.Equal(t, int64(0), stored.Records[1].EndTimeMillis, "missing endTime is the open sentinel")
}

func TestIngestSnapshot_BlankIdempotencyKey_GeneratesSnapshotID(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	snapshotStore := storemocks.NewMockSnapshotStore(ctrl)
	rebuildProducer := streammocks.NewMockClusterRebuildProducer(ctrl)
	service := ingestors.NewIngestionService(snapshotStore, rebuildProducer)

	snapshotStore.EXPECT().Put(gomock.Any(), gomock.Any()).Return(nil)
	rebuildProducer.EXPECT().Produce(gomock.Any(), gomock.Any()).Return(nil)

	ctx := context.Background()
	result, err := service.IngestSnapshot(ctx, "   ", "json", strings.NewReader(`{"sessions":[]}`))

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.NotEmpty(t, result.SnapshotID)
	assert.NotEqual(t, "   ", result.SnapshotID)
}

func TestIngestSnapshot_SkipsMalformedRecords(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	snapshotStore := storemocks.NewMockSnapshotStore(ctrl)
	rebuildProducer := streammocks.NewMockClusterRebuildProducer(ctrl)
	service := ingestors.NewIngestionService(snapshotStore, rebuildProducer)

	payload := `{"sessions":[
		{"host":123,"startTime":1700000000000},
		{"host":"z1r1p1","startTime":"not-a-number"},
		{"host":"z1r1p1","startTime":1700000000000}
	]}`

	snapshotStore.EXPECT().Put(gomock.Any(), gomock.Any()).Return(nil)
	rebuildProducer.EXPECT().Produce(gomock.Any(), gomock.Any()).Return(nil)

	ctx := context.Background()
	result, err := service.IngestSnapshot(ctx, "key1", "json", strings.NewReader(payload))

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, 1, result.RecordCount)
	assert.Equal(t, 2, result.SkippedCount)
}

func TestIngestSnapshot_EmptySessionList_IsValid(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	snapshotStore := storemocks.NewMockSnapshotStore(ctrl)
	rebuildProducer := streammocks.NewMockClusterRebuildProducer(ctrl)
	service := ingestors.NewIngestionService(snapshotStore, rebuildProducer)

	snapshotStore.EXPECT().Put(gomock.Any(), gomock.Any()).Return(nil)
	rebuildProducer.EXPECT().Produce(gomock.Any(), gomock.Any()).Return(nil)

	ctx := context.Background()
	result, err := service.IngestSnapshot(ctx, "key1", "json", strings.NewReader(`{"sessions":[]}`))

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, 0, result.RecordCount)
}

func TestIngestSnapshot_ErrSnapshotAlreadyProcessed(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	snapshotStore := storemocks.NewMockSnapshotStore(ctrl)
	rebuildProducer := streammocks.NewMockClusterRebuildProducer(ctrl)
	service := ingestors.NewIngestionService(snapshotStore, rebuildProducer)

	snapshotStore.EXPECT().
		Put(gomock.Any(), gomock.Any()).
		Return(stores.ErrSnapshotAlreadyExist)

	ctx := context.Background()
	result, err := service.IngestSnapshot(ctx, "key1", "json", strings.NewReader(`{"sessions":[]}`))

	require.Error(t, err)
	svcErr, ok := svcerrors.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, "ING_1001", svcErr.Code)
	assert.Equal(t, "resource_conflict", svcErr.Category)
	assert.Equal(t, 409, svcErr.HttpStatusCode)
	assert.Nil(t, result)
}

func TestIngestSnapshot_ErrInternalSnapshotStoreFailed(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	snapshotStore := storemocks.NewMockSnapshotStore(ctrl)
	rebuildProducer := streammocks.NewMockClusterRebuildProducer(ctrl)
	service := ingestors.NewIngestionService(snapshotStore, rebuildProducer)

	snapshotStore.EXPECT().
		Put(gomock.Any(), gomock.Any()).
		Return(errors.New("disk full"))

	ctx := context.Background()
	result, err := service.IngestSnapshot(ctx, "key1", "json", strings.NewReader(`{"sessions":[]}`))

	require.Error(t, err)
	svcErr, ok := svcerrors.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, "ING_9000", svcErr.Code)
	assert.True(t, svcErr.IsInternalError())
	assert.Nil(t, result)
}

func TestIngestSnapshot_ErrInternalRebuildPublisherFailed(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	snapshotStore := storemocks.NewMockSnapshotStore(ctrl)
	rebuildProducer := streammocks.NewMockClusterRebuildProducer(ctrl)
	service := ingestors.NewIngestionService(snapshotStore, rebuildProducer)

	snapshotStore.EXPECT().Put(gomock.Any(), gomock.Any()).Return(nil)
	rebuildProducer.EXPECT().
		Produce(gomock.Any(), gomock.Any()).
		Return(errors.New("queue closed"))

	ctx := context.Background()
	result, err := service.IngestSnapshot(ctx, "key1", "json", strings.NewReader(`{"sessions":[]}`))

	require.Error(t, err)
	svcErr, ok := svcerrors.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, "ING_9001", svcErr.Code)
	assert.True(t, svcErr.IsInternalError())
	assert.Nil(t, result)
}
