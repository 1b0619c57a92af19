// Package firefox shells out to lz4jsoncat and jq to recover a tab count
// from Firefox's session recovery file. Firefox stores sessions in a
// custom lz4-framed JSON blob that the snss package has no business
// parsing, so this package never attempts anything beyond a tab count.
package firefox

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/kappa/open-tab-tracker/internal/browser"
)

const (
	lz4jsoncat = "lz4jsoncat"
	jq         = "jq"
)

// CheckDeps verifies that the external tools this package shells out to are
// on $PATH, returning a typed, actionable error naming whichever is missing.
func CheckDeps() error {
	if _, err := exec.LookPath(lz4jsoncat); err != nil {
		return fmt.Errorf("%w: %s (install from https://github.com/andikleen/lz4json)", ErrToolNotFound, lz4jsoncat)
	}
	if _, err := exec.LookPath(jq); err != nil {
		return fmt.Errorf("%w: %s (install from https://github.com/jqlang/jq)", ErrToolNotFound, jq)
	}
	return nil
}

// RecoveryFile locates the sessionstore-backups/recovery.jsonlz4 file for
// the first Firefox profile under profileRoot that has one.
func RecoveryFile(profileRoot string) (string, error) {
	profiles, err := filepath.Glob(filepath.Join(profileRoot, "*.default*"))
	if err != nil || len(profiles) == 0 {
		return "", fmt.Errorf("%w: no profiles under %s", ErrNoProfile, profileRoot)
	}

	for _, profile := range profiles {
		candidate := filepath.Join(profile, "sessionstore-backups", "recovery.jsonlz4")
		if fileExists(candidate) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: no recovery.jsonlz4 in any profile under %s", ErrNoProfile, profileRoot)
}

// TabCount decodes recoveryFile through lz4jsoncat then counts tabs across
// all windows with a jq query, returning the total.
func TabCount(recoveryFile string) (int, error) {
	if err := CheckDeps(); err != nil {
		return 0, err
	}

	var unpacked bytes.Buffer
	cat := exec.Command(lz4jsoncat, recoveryFile)
	cat.Stdout = &unpacked
	if err := cat.Run(); err != nil {
		return 0, fmt.Errorf("firefox: %s failed: %w", lz4jsoncat, err)
	}

	var counted bytes.Buffer
	query := exec.Command(jq, "[.windows[].tabs | length] | add")
	query.Stdin = &unpacked
	query.Stdout = &counted
	if err := query.Run(); err != nil {
		return 0, fmt.Errorf("firefox: %s failed: %w", jq, err)
	}

	n, err := strconv.Atoi(strings.TrimSpace(counted.String()))
	if err != nil {
		return 0, fmt.Errorf("firefox: unexpected jq output %q: %w", counted.String(), err)
	}
	return n, nil
}

// Count is the end-to-end convenience path: find a profile under the
// platform's Firefox profile root, then its recovery file, then its count.
func Count() (int, error) {
	root, err := browser.FirefoxProfileRoot()
	if err != nil {
		return 0, err
	}
	recoveryFile, err := RecoveryFile(root)
	if err != nil {
		return 0, err
	}
	return TabCount(recoveryFile)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
