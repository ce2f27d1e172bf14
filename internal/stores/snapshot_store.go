package stores

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"cluster-analytics/internal/models"
	"cluster-analytics/internal/shared/filestorages"
)

var (
	ErrSnapshotAlreadyExist = errors.New("snapshot already exists")
)

// SnapshotStore keeps every ingested raw snapshot. Put is an atomic
// create-if-not-exists, so re-sending a snapshot under the same idempotency
// key is detected and rejected rather than recomputed.
//
//go:generate mockgen -source=snapshot_store.go -destination=./mocks/snapshot_store_mock.go -package=mocks
type SnapshotStore interface {
	Put(ctx context.Context, snapshot *models.SessionSnapshot) error
}

type snapshotStore struct {
	fileStorage filestorages.FileStorage
	dir         string
}

func NewSnapshotStore(fileStorage filestorages.FileStorage) SnapshotStore {
	return &snapshotStore{fileStorage: fileStorage, dir: "snapshots"}
}

func (s *snapshotStore) Put(ctx context.Context, snapshot *models.SessionSnapshot) error {
	jsonData, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	key := fmt.Sprintf("%s/%s.json", s.dir, snapshot.SnapshotID)

	_, err = s.fileStorage.Put(ctx, key, bytes.NewReader(jsonData), filestorages.PutOptions{AllowOverwrite: false})
	if err != nil {
		if errors.Is(err, filestorages.ErrFileAlreadyExists) {
			return ErrSnapshotAlreadyExist
		}
		return fmt.Errorf("failed to put snapshot: %w", err)
	}
	return nil
}
