package fetchers

// Fetcher errors. The poller never surfaces errors to a caller; the code is
// only used as a metric label.
const (
	codeFetchFailed = "FET_9000"
)
