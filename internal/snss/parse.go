// Package snss decodes Chrome's SNSS session-recovery log format and
// replays it into a normalized tab/window/group graph.
//
// Adapted from https://github.com/lemnos/chrome-session-dump, which in turn
// documents itself against Chromium's session_service_commands.cc. This
// package never logs and never prints; every fatal condition is returned as
// an error wrapping one of the sentinels in errors.go.
package snss

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/kappa/open-tab-tracker/internal/models"
)

var snssMagic = [4]byte{'S', 'N', 'S', 'S'}

// Parse decodes r as an SNSS session log and reconstructs the final
// tab/window/group graph: frames are popped off the stream one at a time,
// replayed into the state store, and projected into a Result once the log
// is exhausted. A non-nil error means no partial Result is produced.
func Parse(r io.Reader) (models.Result, error) {
	br := bufio.NewReader(r)

	var hdr [4]byte
	if _, err := io.ReadFull(br, hdr[:]); err != nil {
		return models.Result{}, fmt.Errorf("%w: reading magic header: %v", ErrIO, err)
	}
	if hdr != snssMagic {
		return models.Result{}, ErrBadMagic
	}

	var verBuf [4]byte
	if _, err := io.ReadFull(br, verBuf[:]); err != nil {
		return models.Result{}, fmt.Errorf("%w: reading version: %v", ErrIO, err)
	}
	version := binary.LittleEndian.Uint32(verBuf[:])
	if version != 1 && version != 3 {
		return models.Result{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}

	s := newStore()
	for {
		fr, ok, err := nextFrame(br)
		if err != nil {
			return models.Result{}, err
		}
		if !ok {
			break
		}
		if err := dispatch(s, fr.typ, fr.payload); err != nil {
			return models.Result{}, fmt.Errorf("snss: command %d: %w", fr.typ, err)
		}
	}

	return s.materialize(), nil
}

// ParseFile opens path and parses it as an SNSS session log, closing the
// file on every exit path including error.
func ParseFile(path string) (models.Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return models.Result{}, fmt.Errorf("%w: %v", ErrIO, err)
	}
	defer f.Close()
	return Parse(f)
}
