package firefox

import "errors"

// Sentinel errors for the Firefox recovery-file boundary. Firefox support
// is deliberately shallow: a tab count shelled out to two external tools,
// nothing more.
var (
	ErrToolNotFound = errors.New("firefox: required external tool not found")
	ErrNoProfile    = errors.New("firefox: no recovery file found")
)
