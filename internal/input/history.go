package input

import (
	"strconv"
	"strings"
	"sync"

	"github.com/emirpasic/gods/maps/linkedhashmap"

	util "github.com/bietkhonhungvandi212/fitsim/internal/utils"
)

// Entry is one distinct (pages, frames) input pair.
type Entry struct {
	Pages  []int `json:"pages"`
	Frames []int `json:"frames"`
}

// Label renders the entry the way the history picker shows it.
func (e Entry) Label() string {
	return join(e.Pages) + " && " + join(e.Frames)
}

// History keeps distinct inputs in first-seen order. Safe for concurrent use.
type History struct {
	mu      sync.RWMutex
	entries *linkedhashmap.Map // label -> Entry
}

func NewHistory() *History {
	return &History{entries: linkedhashmap.New()}
}

// Add records pages and frames unless an identical pair exists.
// It returns the entry's position and whether it was new.
func (h *History) Add(pages, frames []int) (int, bool) {
	e := Entry{Pages: clone(pages), Frames: clone(frames)}
	label := e.Label()

	h.mu.Lock()
	defer h.mu.Unlock()
	if _, found := h.entries.Get(label); found {
		for i, k := range h.entries.Keys() {
			if k.(string) == label {
				return i, false
			}
		}
	}
	h.entries.Put(label, e)
	return h.entries.Size() - 1, true
}

// Get returns the entry at position idx.
func (h *History) Get(idx int) (Entry, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if idx < 0 || idx >= h.entries.Size() {
		return Entry{}, util.InvalidInput(util.MsgInvalidHistory, idx)
	}
	return h.entries.Values()[idx].(Entry), nil
}

func (h *History) List() []Entry {
	h.mu.RLock()
	defer h.mu.RUnlock()
	values := h.entries.Values()
	out := make([]Entry, len(values))
	for i, v := range values {
		out[i] = v.(Entry)
	}
	return out
}

func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.entries.Size()
}

func join(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

func clone(values []int) []int {
	out := make([]int, len(values))
	copy(out, values)
	return out
}
