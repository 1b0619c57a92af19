package browser

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// GetSessionPath returns the session directory path for a given browser
// type on the current platform. This is where Chromium-family
// browsers write their SNSS Session_*/Tabs_* files.
func GetSessionPath(browserType Type) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	switch runtime.GOOS {
	case "linux":
		return getLinuxSessionPath(home, browserType)
	case "darwin":
		return getDarwinSessionPath(home, browserType)
	case "windows":
		return getWindowsSessionPath(browserType)
	default:
		return "", ErrUnsupportedPlatform
	}
}

func getLinuxSessionPath(home string, browserType Type) (string, error) {
	switch browserType {
	case Chrome:
		return filepath.Join(home, ".config/google-chrome/Default/Sessions"), nil
	case Chromium:
		return filepath.Join(home, ".config/chromium/Default/Sessions"), nil
	case Edge:
		return filepath.Join(home, ".config/microsoft-edge/Default/Sessions"), nil
	case Brave:
		return filepath.Join(home, ".config/BraveSoftware/Brave-Browser/Default/Sessions"), nil
	case Vivaldi:
		return filepath.Join(home, ".config/vivaldi/Default/Sessions"), nil
	case Firefox, Safari:
		return "", ErrBrowserNotAvailable
	default:
		return "", ErrUnknownBrowser
	}
}

func getDarwinSessionPath(home string, browserType Type) (string, error) {
	switch browserType {
	case Chrome:
		return filepath.Join(home, "Library/Application Support/Google/Chrome/Default/Sessions"), nil
	case Chromium:
		return filepath.Join(home, "Library/Application Support/Chromium/Default/Sessions"), nil
	case Edge:
		return filepath.Join(home, "Library/Application Support/Microsoft Edge/Default/Sessions"), nil
	case Brave:
		return filepath.Join(home, "Library/Application Support/BraveSoftware/Brave-Browser/Default/Sessions"), nil
	case Vivaldi:
		return filepath.Join(home, "Library/Application Support/Vivaldi/Default/Sessions"), nil
	case Firefox, Safari:
		return "", ErrBrowserNotAvailable
	default:
		return "", ErrUnknownBrowser
	}
}

func getWindowsSessionPath(browserType Type) (string, error) {
	appData := os.Getenv("LOCALAPPDATA")
	if appData == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		appData = filepath.Join(home, "AppData/Local")
	}

	switch browserType {
	case Chrome:
		return filepath.Join(appData, `Google\Chrome\User Data\Default\Sessions`), nil
	case Chromium:
		return filepath.Join(appData, `Chromium\User Data\Default\Sessions`), nil
	case Edge:
		return filepath.Join(appData, `Microsoft\Edge\User Data\Default\Sessions`), nil
	case Brave:
		return filepath.Join(appData, `BraveSoftware\Brave-Browser\User Data\Default\Sessions`), nil
	case Vivaldi:
		return filepath.Join(appData, `Vivaldi\User Data\Default\Sessions`), nil
	case Firefox, Safari:
		return "", ErrBrowserNotAvailable
	default:
		return "", ErrUnknownBrowser
	}
}

// IsChromiumBased returns true if the browser uses Chromium's SNSS session
// format and so can be decoded by the snss package at all.
func IsChromiumBased(browserType Type) bool {
	switch browserType {
	case Chrome, Chromium, Edge, Brave, Vivaldi:
		return true
	default:
		return false
	}
}

// FindLatestSessionFile walks sessionDir (non-recursively — Chromium never
// nests session files) and returns the path of the file named Session_* or
// Tabs_* with the greatest modification time.
func FindLatestSessionFile(sessionDir string) (string, error) {
	entries, err := os.ReadDir(sessionDir)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSessionFileNotFound, err)
	}

	var latestPath string
	var latestMTime int64

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasPrefix(name, "Session_") && !strings.HasPrefix(name, "Tabs_") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if mtime := info.ModTime().Unix(); mtime > latestMTime {
			latestMTime = mtime
			latestPath = filepath.Join(sessionDir, name)
		}
	}

	if latestPath == "" {
		return "", fmt.Errorf("%w: in %s", ErrSessionFileNotFound, sessionDir)
	}
	return latestPath, nil
}

// FirefoxProfileRoot returns the directory under which Firefox keeps its
// profile directories on the current platform.
func FirefoxProfileRoot() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	switch runtime.GOOS {
	case "linux":
		return filepath.Join(home, ".mozilla/firefox"), nil
	case "darwin":
		return filepath.Join(home, "Library/Application Support/Firefox/Profiles"), nil
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData == "" {
			appData = filepath.Join(home, "AppData/Roaming")
		}
		return filepath.Join(appData, "Mozilla/Firefox/Profiles"), nil
	default:
		return "", ErrUnsupportedPlatform
	}
}

// GetFirefoxProfilePath returns the most relevant Firefox profile directory
// under profileBaseDir: the .default-release/.default profile if one
// exists, else the most recently modified profile directory.
func GetFirefoxProfilePath(profileBaseDir string) (string, error) {
	if !fileExists(profileBaseDir) {
		return "", ErrFirefoxProfileNotFound
	}

	entries, err := os.ReadDir(profileBaseDir)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFirefoxProfileNotFound, err)
	}

	var mostRecentPath string
	var mostRecentTime int64

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		name := entry.Name()
		if strings.HasSuffix(name, ".default-release") || strings.HasSuffix(name, ".default") {
			return filepath.Join(profileBaseDir, name), nil
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}
		if mtime := info.ModTime().Unix(); mtime > mostRecentTime {
			mostRecentTime = mtime
			mostRecentPath = filepath.Join(profileBaseDir, name)
		}
	}

	if mostRecentPath != "" {
		return mostRecentPath, nil
	}
	return "", ErrFirefoxProfileNotFound
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
