package snss

import (
	"errors"
	"fmt"
	"io"
)

// frame is one popped command: its opcode and the payload bytes local to it.
type frame struct {
	typ     uint8
	payload []byte
}

// nextFrame pops the next command from the log stream. The
// boolean return is false only on clean EOF (no more frames, no error). A
// truncated size header at EOF is tolerated as clean EOF; anything truncated
// past that point is a hard ErrTruncatedFrame.
func nextFrame(r io.Reader) (frame, bool, error) {
	var sizeBuf [2]byte
	if _, err := io.ReadFull(r, sizeBuf[:]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return frame{}, false, nil
		}
		return frame{}, false, fmt.Errorf("%w: reading frame size: %v", ErrIO, err)
	}
	size := uint16(sizeBuf[0]) | uint16(sizeBuf[1])<<8
	if size == 0 {
		return frame{}, false, fmt.Errorf("%w: zero-length frame", ErrTruncatedFrame)
	}

	var typBuf [1]byte
	if _, err := io.ReadFull(r, typBuf[:]); err != nil {
		return frame{}, false, fmt.Errorf("%w: reading command type: %v", ErrTruncatedFrame, err)
	}

	payload := make([]byte, int(size)-1)
	if len(payload) > 0 {
		if _, err := io.ReadFull(r, payload); err != nil {
			return frame{}, false, fmt.Errorf("%w: reading command payload: %v", ErrTruncatedFrame, err)
		}
	}

	return frame{typ: typBuf[0], payload: payload}, true, nil
}
