package reporters

import (
	"fmt"

	"cluster-analytics/internal/shared/svcerrors"
)

// ReportService errors
const (
	codeReportNotComputed = "RPT_1000"

	codeInternalReportStoreFailed = "RPT_9000"
)

// errReportNotComputed returns an error when no report has been computed yet.
func errReportNotComputed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewNotFoundError(codeReportNotComputed, "no report computed yet", cause)
}

// errInternalReportStoreFailed returns an error when a report store read fails.
func errInternalReportStoreFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalReportStoreFailed, fmt.Errorf("reportStoreFailed: %w", cause))
}
