package stores

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"cluster-analytics/internal/models"
	"cluster-analytics/internal/shared/filestorages"
	"cluster-analytics/internal/shared/filestorages/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestNewSnapshotStore(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockFileStorage := mocks.NewMockFileStorage(ctrl)
	store := NewSnapshotStore(mockFileStorage)

	assert.NotNil(t, store)
}

func TestSnapshotStore_Put_Success(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockFileStorage := mocks.NewMockFileStorage(ctrl)
	store := NewSnapshotStore(mockFileStorage)

	ctx := context.Background()
	snapshot := &models.SessionSnapshot{
		SnapshotID: "snapshot-123",
		ReceivedAt: time.Date(2025, 12, 22, 9, 0, 0, 0, time.UTC),
		Records: []models.SessionRecord{
			{Host: "z1r1p1", StartTimeMillis: 1_700_000_000_000, EndTimeMillis: 1_700_003_600_000},
		},
	}

	mockFileStorage.EXPECT().
		Put(ctx, "snapshots/snapshot-123.json", gomock.Any(), filestorages.PutOptions{AllowOverwrite: false}).
		DoAndReturn(func(_ context.Context, key string, r io.Reader, _ filestorages.PutOptions) (*filestorages.PutResult, error) {
			data, err := io.ReadAll(r)
			require.NoError(t, err)

			var decoded models.SessionSnapshot
			require.NoError(t, json.Unmarshal(data, &decoded))
			assert.Equal(t, snapshot.SnapshotID, decoded.SnapshotID)
			require.Len(t, decoded.Records, 1)
			assert.Equal(t, "z1r1p1", decoded.Records[0].Host)

			return &filestorages.PutResult{FileKey: key}, nil
		})

	err := store.Put(ctx, snapshot)
	require.NoError(t, err)
}

func TestSnapshotStore_Put_AlreadyExists(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockFileStorage := mocks.NewMockFileStorage(ctrl)
	store := NewSnapshotStore(mockFileStorage)

	ctx := context.Background()
	mockFileStorage.EXPECT().
		Put(ctx, gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, filestorages.ErrFileAlreadyExists)

	err := store.Put(ctx, &models.SessionSnapshot{SnapshotID: "snapshot-123"})
	assert.ErrorIs(t, err, ErrSnapshotAlreadyExist)
}

func TestSnapshotStore_Put_StorageError(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockFileStorage := mocks.NewMockFileStorage(ctrl)
	store := NewSnapshotStore(mockFileStorage)

	ctx := context.Background()
	storageErr := errors.New("disk full")
	mockFileStorage.EXPECT().
		Put(ctx, gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, storageErr)

	err := store.Put(ctx, &models.SessionSnapshot{SnapshotID: "snapshot-123"})
	require.Error(t, err)
	assert.ErrorIs(t, err, storageErr)
	assert.NotErrorIs(t, err, ErrSnapshotAlreadyExist)
}
