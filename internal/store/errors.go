package store

import "errors"

// ErrUnavailable means the count-history database could not be opened,
// written, or read. Counting keeps working without history; the CLI
// downgrades this to a warning rather than failing the run.
var ErrUnavailable = errors.New("store: count history unavailable")
