package snss

import "unicode/utf16"

// reader is the primitive reader: fixed-width little-endian
// integer and padded-string decoding over a finite byte buffer with a
// cursor. Every read either succeeds and advances the cursor, or returns
// ErrTruncatedField and leaves the cursor in an undefined position — callers
// must stop reading the record on the first error.
type reader struct {
	buf []byte
	pos int
}

func newReader(buf []byte) *reader {
	return &reader{buf: buf}
}

func (r *reader) take(n int) ([]byte, error) {
	if n < 0 || r.pos+n > len(r.buf) {
		return nil, ErrTruncatedField
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

func (r *reader) u8() (uint8, error) {
	b, err := r.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *reader) u16() (uint16, error) {
	b, err := r.take(2)
	if err != nil {
		return 0, err
	}
	return uint16(b[0]) | uint16(b[1])<<8, nil
}

func (r *reader) u32() (uint32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24, nil
}

func (r *reader) u64() (uint64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}
	var v uint64
	for i := 7; i >= 0; i-- {
		v = v<<8 | uint64(b[i])
	}
	return v, nil
}

// align4 rounds n up to the next multiple of 4, matching Chrome's 32-bit
// alignment of pickled data. Computed in 64-bit arithmetic so a hostile
// size field near the u32 max can't wrap around to a small value.
func align4(n uint64) uint64 {
	if rem := n % 4; rem != 0 {
		return n + (4 - rem)
	}
	return n
}

// string reads a u32 size S followed by ceil(S/4)*4 bytes, returning the
// first S bytes decoded as UTF-8. Padding bytes are consumed but ignored.
func (r *reader) string() (string, error) {
	sz, err := r.u32()
	if err != nil {
		return "", err
	}
	padded := align4(uint64(sz))
	if padded > uint64(len(r.buf)) {
		return "", ErrTruncatedField
	}
	b, err := r.take(int(padded))
	if err != nil {
		return "", err
	}
	return string(b[:sz]), nil
}

// string16 reads a u32 unit-count N followed by ceil(2N/4)*4 bytes,
// interpreting the first 2N bytes as UTF-16LE code units. An unpaired
// surrogate becomes U+FFFD, since a Go string can't carry one; the
// producer only emits well-formed UTF-16, so this never comes up.
func (r *reader) string16() (string, error) {
	units, err := r.u32()
	if err != nil {
		return "", err
	}
	byteLen := uint64(units) * 2
	padded := align4(byteLen)
	if padded > uint64(len(r.buf)) {
		return "", ErrTruncatedField
	}
	b, err := r.take(int(padded))
	if err != nil {
		return "", err
	}
	codeUnits := make([]uint16, units)
	for i := range codeUnits {
		codeUnits[i] = uint16(b[2*i]) | uint16(b[2*i+1])<<8
	}
	return string(utf16.Decode(codeUnits)), nil
}
