package snss

import "fmt"

// historyItem is one navigation entry on a tab, keyed by its sparse index.
type historyItem struct {
	idx   uint32
	url   string
	title string
}

// tab is the replay-time entity for a single tab. group is resolved lazily:
// it's a pointer into the store's group table, not a copy, so a later
// SetTabGroupMetadata2 naming the group is visible through every tab that
// already bound to it.
type tab struct {
	id                uint32
	win               uint32
	idx               uint32
	deleted           bool
	currentHistoryIdx uint32
	group             *group
	history           []*historyItem
}

// setHistory upserts the history entry at idx, overwriting url/title if one
// already exists there.
func (t *tab) setHistory(idx uint32, url, title string) {
	for _, h := range t.history {
		if h.idx == idx {
			h.url = url
			h.title = title
			return
		}
	}
	t.history = append(t.history, &historyItem{idx: idx, url: url, title: title})
}

// window is the replay-time entity for a single browser window.
type window struct {
	id           uint32
	activeTabIdx uint32
	deleted      bool
	tabs         []*tab
}

// group is the replay-time entity for a tab group, identified by a 128-bit
// (high, low) pair.
type group struct {
	high, low uint64
	name      string
}

// store is the in-memory, single-writer state store. All
// entities are created lazily on first reference; getTab/getWindow/getGroup
// are the only ways to obtain one, so two references to the same id always
// return the same pointer.
type store struct {
	tabs        map[uint32]*tab
	windows     map[uint32]*window
	windowOrder []uint32
	groups      map[string]*group

	activeWindow *window
}

func newStore() *store {
	return &store{
		tabs:    make(map[uint32]*tab),
		windows: make(map[uint32]*window),
		groups:  make(map[string]*group),
	}
}

func (s *store) getTab(id uint32) *tab {
	if t, ok := s.tabs[id]; ok {
		return t
	}
	t := &tab{id: id}
	s.tabs[id] = t
	return t
}

func (s *store) getWindow(id uint32) *window {
	if w, ok := s.windows[id]; ok {
		return w
	}
	w := &window{id: id}
	s.windows[id] = w
	s.windowOrder = append(s.windowOrder, id)
	return w
}

// groupKey is the lowercase hex concatenation of (high, low) used to look up
// a group's identity.
func groupKey(high, low uint64) string {
	return fmt.Sprintf("%x%x", high, low)
}

func (s *store) getGroup(high, low uint64) *group {
	key := groupKey(high, low)
	if g, ok := s.groups[key]; ok {
		return g
	}
	g := &group{high: high, low: low}
	s.groups[key] = g
	return g
}
