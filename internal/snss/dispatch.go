package snss

// SNSS command opcodes, named after Chromium's session_service_commands.cc.
// See https://source.chromium.org/chromium/chromium/src/+/master:components/sessions/core/session_service_commands.cc
const (
	cmdSetTabWindow               = 0
	cmdSetTabIndexInWindow        = 2
	cmdUpdateTabNavigation        = 6
	cmdSetSelectedNavigationIndex = 7
	cmdSetSelectedTabInIndex      = 8
	cmdTabClosed                  = 16
	cmdWindowClosed               = 17
	cmdSetActiveWindow            = 20
	cmdLastActiveTime             = 21
	cmdSetTabGroup                = 25
	cmdSetTabGroupMetadata2       = 27
)

// dispatch classifies one command by opcode and mutates the store
// accordingly. Unknown opcodes are silently skipped — the
// caller has already captured the frame's payload bytes using the outer
// size field, so there's nothing left to do here. A handler that can't read
// a field it needs from its own payload returns ErrTruncatedField; it never
// reads past the end of its own payload slice into the next record.
func dispatch(s *store, typ uint8, payload []byte) error {
	r := newReader(payload)

	switch typ {
	case cmdUpdateTabNavigation:
		if _, err := r.u32(); err != nil { // inner size, re-stated and ignored
			return err
		}
		id, err := r.u32()
		if err != nil {
			return err
		}
		histIdx, err := r.u32()
		if err != nil {
			return err
		}
		url, err := r.string()
		if err != nil {
			return err
		}
		title, err := r.string16()
		if err != nil {
			return err
		}
		s.getTab(id).setHistory(histIdx, url, title)

	case cmdSetSelectedTabInIndex:
		id, err := r.u32()
		if err != nil {
			return err
		}
		idx, err := r.u32()
		if err != nil {
			return err
		}
		s.getWindow(id).activeTabIdx = idx

	case cmdSetTabGroupMetadata2:
		if _, err := r.u32(); err != nil { // size
			return err
		}
		high, err := r.u64()
		if err != nil {
			return err
		}
		low, err := r.u64()
		if err != nil {
			return err
		}
		name, err := r.string16()
		if err != nil {
			return err
		}
		s.getGroup(high, low).name = name

	case cmdSetTabGroup:
		id, err := r.u32()
		if err != nil {
			return err
		}
		if _, err := r.u32(); err != nil { // struct padding on the wire
			return err
		}
		high, err := r.u64()
		if err != nil {
			return err
		}
		low, err := r.u64()
		if err != nil {
			return err
		}
		s.getTab(id).group = s.getGroup(high, low)

	case cmdSetTabWindow:
		win, err := r.u32()
		if err != nil {
			return err
		}
		id, err := r.u32()
		if err != nil {
			return err
		}
		// Registering the window here, not at materialization, is what
		// keeps window enumeration in stream order.
		s.getWindow(win)
		s.getTab(id).win = win

	case cmdWindowClosed:
		id, err := r.u32()
		if err != nil {
			return err
		}
		s.getWindow(id).deleted = true

	case cmdTabClosed:
		id, err := r.u32()
		if err != nil {
			return err
		}
		s.getTab(id).deleted = true

	case cmdSetTabIndexInWindow:
		id, err := r.u32()
		if err != nil {
			return err
		}
		idx, err := r.u32()
		if err != nil {
			return err
		}
		s.getTab(id).idx = idx

	case cmdSetActiveWindow:
		id, err := r.u32()
		if err != nil {
			return err
		}
		s.activeWindow = s.getWindow(id)

	case cmdSetSelectedNavigationIndex:
		id, err := r.u32()
		if err != nil {
			return err
		}
		idx, err := r.u32()
		if err != nil {
			return err
		}
		s.getTab(id).currentHistoryIdx = idx

	case cmdLastActiveTime:
		// Reserved; recognized but ignored.

	default:
		// Unknown opcode: forward compatibility, nothing to do.
	}

	return nil
}
