package ingestors

import (
	"fmt"

	"cluster-analytics/internal/shared/svcerrors"
)

// IngestionService errors
const (
	codeValidationFailed         = "ING_1000"
	codeSnapshotAlreadyProcessed = "ING_1001"

	codeInternalSnapshotStoreFailed   = "ING_9000"
	codeInternalRebuildPublisherFailed = "ING_9001"
)

// errValidationFailed returns an error for snapshot validation failures.
func errValidationFailed(msg string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeValidationFailed, msg, cause)
}

// errSnapshotAlreadyProcessed returns an error when a snapshot with the same
// idempotency key has already been ingested.
func errSnapshotAlreadyProcessed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewResourceConflictError(codeSnapshotAlreadyProcessed, "snapshot already processed", cause)
}

// errInternalSnapshotStoreFailed returns an error when a snapshot store operation fails.
func errInternalSnapshotStoreFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalSnapshotStoreFailed, fmt.Errorf("snapshotStoreFailed: %w", cause))
}

// errInternalRebuildPublisherFailed returns an error when publishing a rebuild event fails.
func errInternalRebuildPublisherFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalRebuildPublisherFailed, fmt.Errorf("rebuildPublisherFailed: %w", cause))
}
