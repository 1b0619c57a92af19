package snss

import (
	"sort"

	"github.com/kappa/open-tab-tracker/internal/models"
)

// materialize runs once at EOF: it orders and projects the
// store into the public Result model. Window enumeration order follows
// first-insertion order into the window table, which is stable because the
// only order-sensitive insertion — the implicit window 0 created below for
// tabs that never got an explicit SetTabWindow — always appends to the end
// of windowOrder exactly once, regardless of which tab triggers it.
func (s *store) materialize() models.Result {
	for _, t := range s.tabs {
		sort.Slice(t.history, func(i, j int) bool {
			return t.history[i].idx < t.history[j].idx
		})
		w := s.getWindow(t.win)
		w.tabs = append(w.tabs, t)
	}

	for _, w := range s.windows {
		sort.Slice(w.tabs, func(i, j int) bool {
			if w.tabs[i].idx != w.tabs[j].idx {
				return w.tabs[i].idx < w.tabs[j].idx
			}
			return w.tabs[i].id < w.tabs[j].id
		})
	}

	result := models.Result{Windows: make([]models.ResultWindow, 0, len(s.windowOrder))}

	for _, id := range s.windowOrder {
		w := s.windows[id]
		rw := models.ResultWindow{
			Active:  w == s.activeWindow,
			Deleted: w.deleted,
			Tabs:    make([]models.ResultTab, 0, len(w.tabs)),
		}

		var visible uint32
		for _, t := range w.tabs {
			rt := models.ResultTab{
				Active:  !t.deleted && visible == w.activeTabIdx,
				Deleted: t.deleted,
				History: make([]models.ResultHistoryItem, 0, len(t.history)),
			}
			if t.group != nil {
				rt.Group = t.group.name
			}

			for _, h := range t.history {
				rt.History = append(rt.History, models.ResultHistoryItem{URL: h.url, Title: h.title})
				if h.idx == t.currentHistoryIdx {
					rt.URL = h.url
					rt.Title = h.title
					break
				}
			}

			rw.Tabs = append(rw.Tabs, rt)
			if !t.deleted {
				visible++
			}
		}

		result.Windows = append(result.Windows, rw)
	}

	return result
}
