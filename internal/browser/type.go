package browser

// Type identifies a browser family. Families that share Chromium's session
// format answer true from IsChromiumBased.
type Type string

const (
	Auto     Type = "auto"
	Chrome   Type = "chrome"
	Chromium Type = "chromium"
	Edge     Type = "edge"
	Brave    Type = "brave"
	Vivaldi  Type = "vivaldi"
	Firefox  Type = "firefox"
	Safari   Type = "safari"
)

// Browser is a resolved browser installation: a family plus the filesystem
// path this invocation will read from (a session path, a profile directory,
// ...depending on what the caller asked for).
type Browser struct {
	Type Type
	Name string
	Path string
}

// AllTypes lists every concrete (non-Auto) browser family this package
// knows how to locate.
func AllTypes() []Type {
	return []Type{Chrome, Chromium, Edge, Brave, Vivaldi, Firefox, Safari}
}
