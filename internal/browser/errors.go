package browser

import "errors"

// Sentinel errors for the discovery boundary. Distinct from — and never
// confused with — the snss package's decode-error taxonomy: these describe
// failures to find a path, not failures to decode what's at one.
var (
	ErrUnsupportedPlatform    = errors.New("browser: unsupported platform")
	ErrBrowserNotAvailable    = errors.New("browser: not available on this platform")
	ErrUnknownBrowser         = errors.New("browser: unknown browser type")
	ErrFirefoxProfileNotFound = errors.New("browser: no firefox profile found")
	ErrSessionFileNotFound    = errors.New("browser: no session file found")
)
