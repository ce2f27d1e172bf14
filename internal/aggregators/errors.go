package aggregators

import (
	"fmt"

	"cluster-analytics/internal/shared/svcerrors"
)

const (
	codeInternalReportStoreFailed = "AGG_9000"
)

// errInternalReportStoreFailed returns an error when a report store operation fails.
func errInternalReportStoreFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalReportStoreFailed, fmt.Errorf("reportStoreFailed: %w", cause))
}
