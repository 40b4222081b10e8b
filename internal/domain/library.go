package domain

// HistoryLimit caps the recently-viewed list.
const HistoryLimit = 20

// CompareCapacity is the size of the side-by-side comparison set.
const CompareCapacity = 2

// Bookmarks is the user's saved list, most recently added first.
type Bookmarks struct {
	items []MovieSummary
}

// NewBookmarks builds a bookmark list from a persisted snapshot, dropping
// duplicate ids while keeping the first occurrence.
func NewBookmarks(items []MovieSummary) *Bookmarks {
	return &Bookmarks{items: dedupe(items)}
}

// Toggle removes the movie when present, otherwise prepends it. It reports
// whether the movie is bookmarked afterwards.
func (b *Bookmarks) Toggle(m MovieSummary) bool {
	if i := indexOf(b.items, m.ID); i >= 0 {
		b.items = removeAt(b.items, i)
		return false
	}
	b.items = prepend(b.items, m)
	return true
}

// Contains reports whether id is bookmarked.
func (b *Bookmarks) Contains(id int) bool { return indexOf(b.items, id) >= 0 }

// Len returns the number of bookmarks.
func (b *Bookmarks) Len() int { return len(b.items) }

// Items returns a copy of the list.
func (b *Bookmarks) Items() []MovieSummary { return clone(b.items) }

// History is the recently viewed list, newest first, capped at HistoryLimit.
type History struct {
	items []MovieSummary
}

// NewHistory builds a history list from a persisted snapshot.
func NewHistory(items []MovieSummary) *History {
	items = dedupe(items)
	if len(items) > HistoryLimit {
		items = items[:HistoryLimit]
	}
	return &History{items: items}
}

// Record moves m to the front, evicting the oldest entry past the cap.
func (h *History) Record(m MovieSummary) {
	if i := indexOf(h.items, m.ID); i >= 0 {
		h.items = removeAt(h.items, i)
	}
	h.items = prepend(h.items, m)
	if len(h.items) > HistoryLimit {
		h.items = h.items[:HistoryLimit]
	}
}

// Len returns the number of entries.
func (h *History) Len() int { return len(h.items) }

// Items returns a copy of the list.
func (h *History) Items() []MovieSummary { return clone(h.items) }

// CompareSet holds at most CompareCapacity movies in insertion order. Adding
// past capacity evicts the oldest entry.
type CompareSet struct {
	items []MovieSummary
}

// Toggle removes m when present, otherwise appends it. It reports whether m is
// in the set afterwards.
func (c *CompareSet) Toggle(m MovieSummary) bool {
	if i := indexOf(c.items, m.ID); i >= 0 {
		c.items = removeAt(c.items, i)
		return false
	}
	if len(c.items) >= CompareCapacity {
		c.items = c.items[len(c.items)-CompareCapacity+1:]
	}
	c.items = append(clone(c.items), m)
	return true
}

// Contains reports whether id is being compared.
func (c *CompareSet) Contains(id int) bool { return indexOf(c.items, id) >= 0 }

// Len returns the number of movies in the set.
func (c *CompareSet) Len() int { return len(c.items) }

// Items returns a copy of the set, oldest first.
func (c *CompareSet) Items() []MovieSummary { return clone(c.items) }

// FindByID returns the first movie with the given id.
func FindByID(items []MovieSummary, id int) (MovieSummary, bool) {
	if i := indexOf(items, id); i >= 0 {
		return items[i], true
	}
	return MovieSummary{}, false
}

func indexOf(items []MovieSummary, id int) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}

func removeAt(items []MovieSummary, i int) []MovieSummary {
	out := make([]MovieSummary, 0, len(items)-1)
	out = append(out, items[:i]...)
	return append(out, items[i+1:]...)
}

func prepend(items []MovieSummary, m MovieSummary) []MovieSummary {
	out := make([]MovieSummary, 0, len(items)+1)
	out = append(out, m)
	return append(out, items...)
}

func dedupe(items []MovieSummary) []MovieSummary {
	seen := make(map[int]struct{}, len(items))
	out := make([]MovieSummary, 0, len(items))
	for _, m := range items {
		if _, ok := seen[m.ID]; ok {
			continue
		}
		seen[m.ID] = struct{}{}
		out = append(out, m)
	}
	return out
}

func clone(items []MovieSummary) []MovieSummary {
	out := make([]MovieSummary, len(items))
	copy(out, items)
	return out
}
