package analysis

import "errors"

// ErrStoreWrite indicates a write to the analysis store could not be
// durably committed. Always surfaced to the caller, never swallowed.
var ErrStoreWrite = errors.New("analysis store write failed")
