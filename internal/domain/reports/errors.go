package reports

import "errors"

// ErrNotFound indicates the report does not exist in the metadata store.
var ErrNotFound = errors.New("report not found")
