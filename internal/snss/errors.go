package snss

import "errors"

// Error kinds returned by Parse. All are fatal: a non-nil error means no
// Result was produced. Wrap with errors.Is against these sentinels rather
// than string-matching.
var (
	// ErrBadMagic means the leading 4 bytes were not "SNSS".
	ErrBadMagic = errors.New("snss: bad magic header")

	// ErrUnsupportedVersion means the version field was not 1 or 3.
	ErrUnsupportedVersion = errors.New("snss: unsupported version")

	// ErrTruncatedFrame means a record's declared size ran past the
	// available bytes. Does not apply to a truncated size header at EOF,
	// which is treated as clean termination instead.
	ErrTruncatedFrame = errors.New("snss: truncated frame")

	// ErrTruncatedField means a known opcode's handler could not read a
	// field it required from its record-local payload.
	ErrTruncatedField = errors.New("snss: truncated field")

	// ErrIO means the underlying reader failed for a reason other than
	// frame or field truncation (header read failure, disk error, ...).
	ErrIO = errors.New("snss: io error")
)
