package snss

import "unicode/utf16"

// builder assembles a raw SNSS byte stream one record at a time, without
// going anywhere near the package's own decoder — tests construct the wire
// format independently so a bug in Parse can't also hide in the fixture.
type builder struct {
	buf []byte
}

func newBuilder(version uint32) *builder {
	b := &builder{}
	b.buf = append(b.buf, 'S', 'N', 'S', 'S')
	b.buf = append(b.buf, u32le(version)...)
	return b
}

func (b *builder) bytes() []byte { return b.buf }

func (b *builder) record(typ uint8, payload []byte) *builder {
	size := uint16(len(payload) + 1)
	b.buf = append(b.buf, byte(size), byte(size>>8))
	b.buf = append(b.buf, typ)
	b.buf = append(b.buf, payload...)
	return b
}

func u32le(v uint32) []byte {
	return []byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)}
}

func u64le(v uint64) []byte {
	b := make([]byte, 8)
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> (8 * i))
	}
	return b
}

func pad4(b []byte) []byte {
	for len(b)%4 != 0 {
		b = append(b, 0)
	}
	return b
}

func strPayload(s string) []byte {
	out := u32le(uint32(len(s)))
	out = append(out, pad4([]byte(s))...)
	return out
}

func str16Payload(s string) []byte {
	units := utf16.Encode([]rune(s))
	out := u32le(uint32(len(units)))
	raw := make([]byte, 0, len(units)*2)
	for _, u := range units {
		raw = append(raw, byte(u), byte(u>>8))
	}
	out = append(out, pad4(raw)...)
	return out
}

func payload(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// Record builders, one per opcode this package recognizes.

func recSetTabWindow(win, tab uint32) []byte {
	return payload(u32le(win), u32le(tab))
}

func recUpdateTabNavigation(tab, histIdx uint32, url, title string) []byte {
	return payload(u32le(0), u32le(tab), u32le(histIdx), strPayload(url), str16Payload(title))
}

func recSetSelectedNavigationIndex(tab, idx uint32) []byte {
	return payload(u32le(tab), u32le(idx))
}

func recSetSelectedTabInIndex(win, idx uint32) []byte {
	return payload(u32le(win), u32le(idx))
}

func recSetTabIndexInWindow(tab, idx uint32) []byte {
	return payload(u32le(tab), u32le(idx))
}

func recTabClosed(tab uint32) []byte {
	return payload(u32le(tab))
}

func recWindowClosed(win uint32) []byte {
	return payload(u32le(win))
}

func recSetActiveWindow(win uint32) []byte {
	return payload(u32le(win))
}

func recSetTabGroup(tab uint32, high, low uint64) []byte {
	return payload(u32le(tab), u32le(0), u64le(high), u64le(low))
}

func recSetTabGroupMetadata2(high, low uint64, name string) []byte {
	return payload(u32le(0), u64le(high), u64le(low), str16Payload(name))
}
