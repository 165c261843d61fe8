package batch

import "errors"

// ErrNoData is returned if the data directory holds no data files at all.
var ErrNoData = errors.New("no data files found")

// ErrCountMismatch is returned if the number of data files drifted from
// the expected count.
var ErrCountMismatch = errors.New("file count mismatch")

// ErrVerifyFailed is returned if at least one manifest entry could not
// be confirmed.
var ErrVerifyFailed = errors.New("manifest verification failed")
