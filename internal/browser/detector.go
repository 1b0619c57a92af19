package browser

// Detector locates installed browsers by probing their well-known session
// directories. Each call does fresh filesystem probes — a Detector holds no
// state of its own and is safe to reuse across invocations.
type Detector struct{}

// NewDetector returns a ready-to-use Detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Detect probes every known browser family and returns the ones whose
// session (or, for Firefox, profile) directory actually exists on disk.
func (d *Detector) Detect() []Browser {
	var found []Browser
	for _, t := range AllTypes() {
		b, err := d.GetBrowser(t)
		if err != nil {
			continue
		}
		found = append(found, *b)
	}
	return found
}

// GetBrowser resolves a single browser type to a Browser with its session
// path populated, failing if that family isn't present on this machine.
func (d *Detector) GetBrowser(t Type) (*Browser, error) {
	switch t {
	case Firefox:
		root, err := FirefoxProfileRoot()
		if err != nil {
			return nil, err
		}
		if !fileExists(root) {
			return nil, ErrFirefoxProfileNotFound
		}
		return &Browser{Type: t, Name: "firefox", Path: root}, nil
	case Chrome, Chromium, Edge, Brave, Vivaldi:
		path, err := GetSessionPath(t)
		if err != nil {
			return nil, err
		}
		if !fileExists(path) {
			return nil, ErrBrowserNotAvailable
		}
		return &Browser{Type: t, Name: string(t), Path: path}, nil
	case Safari:
		return nil, ErrBrowserNotAvailable
	default:
		return nil, ErrUnknownBrowser
	}
}
